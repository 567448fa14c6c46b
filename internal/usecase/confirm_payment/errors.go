package confirm_payment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("confirm_payment: invalid input data")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("confirm_payment: booking not found")

	// ErrNotConfirmed возвращается, когда шлюз ещё не подтвердил оплату заказа
	ErrNotConfirmed = errors.New("confirm_payment: payment is not confirmed by gateway")

	// ErrSlotTaken возвращается, когда слот успел занять другой оплаченный
	// клиент: два pending бронирования на один слот конкурируют за оплату,
	// побеждает ровно одно
	ErrSlotTaken = errors.New("confirm_payment: slot taken by another paid booking")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_payment: internal error")
)
