package earnings

import "time"

type Kind string

const (
	KindSchool     Kind = "school"
	KindInstructor Kind = "instructor"
)

type TransactionStatus string

const (
	StatusConfirmed TransactionStatus = "confirmed"
	StatusPending   TransactionStatus = "pending"
	StatusPaid      TransactionStatus = "paid"
	StatusCancelled TransactionStatus = "cancelled"
)

type TransactionType string

const (
	TypeCourse TransactionType = "course"
	TypeTicket TransactionType = "ticket"
)

// Transaction is the normalized ledger entry both earning sources merge
// into. Derived, never persisted.
type Transaction struct {
	ID          int64             `json:"id"`
	StudentName string            `json:"student_name"`
	ItemName    string            `json:"item_name"`
	Amount      float64           `json:"amount"`
	Date        time.Time         `json:"date"`
	Status      TransactionStatus `json:"status"`
	Type        TransactionType   `json:"type"`
}

type Summary struct {
	TotalGross    float64 `json:"total_gross"`
	MonthlyGross  float64 `json:"monthly_gross"`
	PendingAmount float64 `json:"pending_amount"`
	PaidAmount    float64 `json:"paid_amount"`
}

type Report struct {
	Summary      Summary       `json:"summary"`
	Transactions []Transaction `json:"transactions"`
}
