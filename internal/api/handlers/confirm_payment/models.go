package confirm_payment

import (
	confirmPayment "github.com/m04kA/ACS-ConsultationService/internal/usecase/confirm_payment"
)

// ConfirmPaymentRequest HTTP request model
type ConfirmPaymentRequest struct {
	BookingID int64  `json:"bookingId"`
	OrderID   string `json:"orderId"`
}

// ConfirmPaymentResponse HTTP response model
type ConfirmPaymentResponse struct {
	BookingID   int64  `json:"bookingId"`
	Status      string `json:"status"`
	AlreadyPaid bool   `json:"alreadyPaid"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ConfirmPaymentRequest) ToUseCaseRequest() *confirmPayment.Request {
	return &confirmPayment.Request{
		BookingID: r.BookingID,
		OrderID:   r.OrderID,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *confirmPayment.Response) *ConfirmPaymentResponse {
	return &ConfirmPaymentResponse{
		BookingID:   resp.BookingID,
		Status:      "paid",
		AlreadyPaid: resp.AlreadyPaid,
	}
}
