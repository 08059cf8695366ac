package domain

import "time"

type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
)

type PayoutStatus string

const (
	PayoutPending PayoutStatus = "pending"
	PayoutPaid    PayoutStatus = "paid"
)

// Booking is one course lesson purchase as recorded by the booking flow.
// Price is kept as the raw string the source wrote ("1.250,00 TL" and
// friends); the earnings aggregator owns the sanitizing.
type Booking struct {
	ID            int64         `json:"id"`
	CourseID      int64         `json:"course_id"`
	StudentName   string        `json:"student_name"`
	Price         string        `json:"price"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	PayoutStatus  PayoutStatus  `json:"payout_status"`
	CreatedAt     time.Time     `json:"created_at"`
}
