package paymentgateway

// Order заказ платёжного шлюза
type Order struct {
	ID           string `json:"id"`
	Amount       int64  `json:"amount"` // В минимальных единицах валюты (пайсы)
	Currency     string `json:"currency"`
	Receipt      string `json:"receipt"`
	Status       string `json:"status"`
	SessionToken string `json:"session_token"`
}

// OrderStatus статус заказа платёжного шлюза
type OrderStatus struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// IsPaid возвращает true, если шлюз подтвердил оплату заказа
// Любой другой статус трактуется как "ещё не подтверждено"
func (s *OrderStatus) IsPaid() bool {
	return s.Status == "paid"
}

// createOrderRequest тело запроса создания заказа
type createOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Customer struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Phone string `json:"phone"`
	} `json:"customer"`
}

// Customer данные плательщика для шлюза
type Customer struct {
	Name  string
	Email string
	Phone string
}

// ErrorResponse модель ошибки от платёжного шлюза
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
