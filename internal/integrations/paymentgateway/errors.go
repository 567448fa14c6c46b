package paymentgateway

import "errors"

var (
	// ErrOrderNotFound возвращается, когда заказ не найден в шлюзе
	ErrOrderNotFound = errors.New("paymentgateway client: order not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("paymentgateway client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от шлюза
	ErrInvalidResponse = errors.New("paymentgateway client: invalid response")

	// ErrGatewayUnavailable возвращается, когда шлюз недоступен или вернул 5xx
	// Бронирование при этом остаётся pending и может быть оплачено повторно
	ErrGatewayUnavailable = errors.New("paymentgateway client: gateway unavailable")
)
