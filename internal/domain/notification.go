package domain

// Notification is an entry in the admin notification feed.
// AdminID 0 means the entry is visible to every admin.
type Notification struct {
	ID         int32             `json:"id"`
	AdminID    int32             `json:"admin_id"`
	Title      string            `json:"title"`
	Message    string            `json:"message"`
	IsRead     bool              `json:"is_read"`
	Attributes map[string]string `json:"attributes"`
	CreatedOn  string            `json:"created_on"`
}

const (
	NotificationTypeTransactionCreated   = "TRANSACTION_CREATED"
	NotificationTypeTransactionFinished  = "TRANSACTION_FINISHED"
	NotificationTypeTransactionCancelled = "TRANSACTION_CANCELLED"
	NotificationTypeTransactionOverdue   = "TRANSACTION_OVERDUE"
	NotificationTypeOverdueReminder      = "OVERDUE_REMINDER"
)
