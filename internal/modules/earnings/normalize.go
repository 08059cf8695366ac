package earnings

import (
	"strconv"
	"strings"
	"time"

	"dancehub/internal/domain"
)

// tickets carry no named buyer in the source model
const ticketBuyerLabel = "Festival katılımcısı"

const fallbackFestivalName = "Festival"

// sanitizeAmount turns a localized price string ("1.250,00 TL") into a
// non-negative amount. Everything but digits and dots is stripped, then
// the longest numeric prefix is parsed. Malformed input yields 0; this
// path never returns an error, a broken record must not sink the whole
// report.
func sanitizeAmount(raw string) float64 {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return 0
	}

	// longest prefix that is still a valid number: digits, at most one dot
	end := 0
	seenDot := false
	for i, r := range cleaned {
		if r == '.' {
			if seenDot {
				break
			}
			seenDot = true
		}
		end = i + 1
	}
	prefix := strings.TrimSuffix(cleaned[:end], ".")
	if prefix == "" {
		return 0
	}

	amount, err := strconv.ParseFloat(prefix, 64)
	if err != nil || amount < 0 {
		return 0
	}
	return amount
}

// normalizeBooking maps one course booking onto the ledger. Payout status
// wins over payment status: money already forwarded to the subject is
// "paid" regardless of what the student-side flag says.
func normalizeBooking(b domain.Booking, courseNames map[int64]string, now time.Time) Transaction {
	status := StatusPending
	switch {
	case b.PayoutStatus == domain.PayoutPaid:
		status = StatusPaid
	case b.PaymentStatus == domain.PaymentPaid:
		status = StatusConfirmed
	}

	date := b.CreatedAt
	if date.IsZero() {
		date = now
	}

	itemName := courseNames[b.CourseID]
	if itemName == "" {
		itemName = "Kurs"
	}

	return Transaction{
		ID:          b.ID,
		StudentName: b.StudentName,
		ItemName:    itemName,
		Amount:      sanitizeAmount(b.Price),
		Date:        date,
		Status:      status,
		Type:        TypeCourse,
	}
}

func normalizeTicket(t domain.Ticket, now time.Time) Transaction {
	status := StatusCancelled
	if t.Status == domain.TicketStatusActive {
		status = StatusConfirmed
	}

	date := t.CreatedAt
	if date.IsZero() {
		date = now
	}

	itemName := t.FestivalName
	if itemName == "" {
		itemName = fallbackFestivalName
	}

	return Transaction{
		ID:          t.ID,
		StudentName: ticketBuyerLabel,
		ItemName:    itemName,
		Amount:      sanitizeAmount(t.DiscountedPrice),
		Date:        date,
		Status:      status,
		Type:        TypeTicket,
	}
}
