package domain

// Business validation constants
const (
	MinConcernLength    = 10
	MaxConcernLength    = 2000
	MaxNameLength       = 100
	MaxSlotLabelLength  = 50
	MaxNotesLength      = 1000
	MinDiscountPercent  = 1
	MaxDiscountPercent  = 100
	MinPromoMaxUses     = 1
	MaxTestimonialText  = 1000
	MinRating           = 1
	MaxRating           = 5
)

// MinChargeAmount минимальная сумма платежа в единицах валюты
// Скидка или округление никогда не опускают счёт до нуля или ниже:
// платёжный шлюз не принимает нулевые заказы
const MinChargeAmount = 1.0

// DefaultCurrency валюта по умолчанию
const DefaultCurrency = "INR"

// AllowedDurations допустимые длительности консультации в минутах
var AllowedDurations = []int{30, 45, 60}

// IsAllowedDuration проверяет, что длительность входит в разрешённый набор
func IsAllowedDuration(minutes int) bool {
	for _, d := range AllowedDurations {
		if d == minutes {
			return true
		}
	}
	return false
}

// IsValidConsultationType проверяет допустимость типа консультации
func IsValidConsultationType(t ConsultationType) bool {
	return t == ConsultationNormal || t == ConsultationUrgent
}

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveLifecycleStatuses статусы, в которых консультация ещё актуальна
var ActiveLifecycleStatuses = []BookingStatus{
	StatusUpcoming,
}
