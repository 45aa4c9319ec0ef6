package domain

type TransactionStatus string

const (
	TransactionStatusActive    TransactionStatus = "ACTIVE"
	TransactionStatusOverdue   TransactionStatus = "OVERDUE"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusCancelled TransactionStatus = "CANCELLED"
)

type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "UNPAID"
	PaymentStatusPaid   PaymentStatus = "PAID"
)

type Transaction struct {
	ID               int32  `json:"id"`
	Code             string `json:"code"`
	UnitID           int32  `json:"unit_id"`
	CustomerName     string `json:"customer_name"`
	CustomerPhone    string `json:"customer_phone"`
	CustomerIDNumber string `json:"customer_id_number"`
	CustomerAddress  string `json:"customer_address"`
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date"`
	StartTime        string `json:"start_time"`
	EndTime          string `json:"end_time"`
	// Rate captured from the unit when the transaction is created.
	// Cost and penalty always use the snapshot, not the live unit rate.
	DailyRate     int64             `json:"daily_rate"`
	FullDays      int64             `json:"full_days"`
	ExtraHours    int64             `json:"extra_hours"`
	TotalCost     int64             `json:"total_cost"`
	Penalty       int64             `json:"penalty"`
	PaidAmount    int64             `json:"paid_amount"`
	Status        TransactionStatus `json:"status"`
	PaymentStatus PaymentStatus     `json:"payment_status"`
	Notes         string            `json:"notes"`
	CreatedBy     int32             `json:"created_by"`
	CompletedOn   *string           `json:"completed_on,omitempty"`
	CreatedOn     string            `json:"created_on"`
	UpdatedOn     string            `json:"updated_on"`
}

// AmountDue is what the customer owes in total
func (t *Transaction) AmountDue() int64 {
	return t.TotalCost + t.Penalty
}

// Outstanding is the part of AmountDue not yet settled, such as a late fee
// added after the rental was paid up front
func (t *Transaction) Outstanding() int64 {
	if rest := t.AmountDue() - t.PaidAmount; rest > 0 {
		return rest
	}
	return 0
}

// IsOpen reports whether the motorcycle has not been returned yet
func (t *Transaction) IsOpen() bool {
	return t.Status == TransactionStatusActive || t.Status == TransactionStatusOverdue
}

// TransactionFilter narrows transaction listings
type TransactionFilter struct {
	Status        string
	PaymentStatus string
	UnitID        int32
	Query         string // matches code, customer name or phone
}
