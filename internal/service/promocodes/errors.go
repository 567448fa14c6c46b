package promocodes

import "errors"

var (
	// ErrInvalidInput - некорректные входные данные
	ErrInvalidInput = errors.New("invalid input")
	// ErrCodeExists - промокод с таким кодом уже существует
	ErrCodeExists = errors.New("promo code already exists")
	// ErrPromoNotFound - промокод не найден
	ErrPromoNotFound = errors.New("promo code not found")
	// ErrInternal - внутренняя ошибка сервиса
	ErrInternal = errors.New("internal service error")
)
