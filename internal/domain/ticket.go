package domain

import "time"

const TicketStatusActive = "aktif"

// Ticket is a festival ticket sale as recorded by the ticketing flow. The
// source system is Turkish: Status carries "aktif" for a live sale and
// DiscountedPrice is the raw localized price string.
type Ticket struct {
	ID              int64     `json:"id"`
	SellerID        int64     `json:"seller_id"`
	DiscountedPrice string    `json:"discounted_price"`
	FestivalName    string    `json:"festival_name"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}
