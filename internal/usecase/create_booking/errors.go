package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrDateBlocked возвращается, когда дата полностью закрыта для бронирования
	ErrDateBlocked = errors.New("create_booking: date is blocked")

	// ErrSlotNotOffered возвращается, когда слот не предлагается в этот день недели
	ErrSlotNotOffered = errors.New("create_booking: slot is not offered on this weekday")

	// ErrSlotTaken возвращается, когда слот уже удержан оплаченным бронированием
	ErrSlotTaken = errors.New("create_booking: slot is already taken")

	// ErrPaymentInit возвращается, когда не удалось создать платёжную сессию
	// Бронирование при этом существует в статусе pending и может быть оплачено повторно
	ErrPaymentInit = errors.New("create_booking: payment initiation failed")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
