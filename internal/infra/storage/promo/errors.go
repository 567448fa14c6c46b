package promo

import "errors"

var (
	// ErrPromoNotFound возвращается, когда промокод не найден
	ErrPromoNotFound = errors.New("promo.repository: promo code not found")

	// ErrCodeExists возвращается при попытке создать промокод с занятым кодом
	ErrCodeExists = errors.New("promo.repository: promo code already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("promo.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("promo.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("promo.repository: failed to scan row")
)
