package list_bookings

import (
	"net/url"
	"time"

	"github.com/m04kA/ACS-ConsultationService/internal/domain"
	"github.com/m04kA/ACS-ConsultationService/internal/service/bookings/models"
)

// StatsResponse сводка по бронированиям за период
type StatsResponse struct {
	From        string  `json:"from"`
	To          string  `json:"to"`
	Total       int     `json:"total"`
	Paid        int     `json:"paid"`
	Upcoming    int     `json:"upcoming"`
	Completed   int     `json:"completed"`
	Cancelled   int     `json:"cancelled"`
	PaidRevenue float64 `json:"paidRevenue"`
}

// parseListQuery разбирает query параметры списка бронирований
func parseListQuery(query url.Values) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{}

	if v := query.Get("from"); v != "" {
		from, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			return nil, err
		}
		req.StartDate = &from
	}
	if v := query.Get("to"); v != "" {
		to, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			return nil, err
		}
		req.EndDate = &to
	}
	if v := query.Get("paymentStatus"); v != "" {
		req.PaymentStatus = &v
	}
	if v := query.Get("status"); v != "" {
		req.Status = &v
	}
	return req, nil
}

// fromDomainStats конвертирует сводку в HTTP response
func fromDomainStats(from, to time.Time, stats *domain.BookingStats) *StatsResponse {
	return &StatsResponse{
		From:        from.Format(domain.DateFormat),
		To:          to.Format(domain.DateFormat),
		Total:       stats.Total,
		Paid:        stats.Paid,
		Upcoming:    stats.Upcoming,
		Completed:   stats.Completed,
		Cancelled:   stats.Cancelled,
		PaidRevenue: stats.PaidRevenue,
	}
}
