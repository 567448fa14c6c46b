package domain

import "time"

// Testimonial отзыв клиента
// Публично отдаются только одобренные отзывы
type Testimonial struct {
	ID        int64
	Author    string
	Text      string
	Rating    int // 1-5
	Approved  bool
	CreatedAt time.Time
}
