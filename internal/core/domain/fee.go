package domain

// RecurrenceType is how often a recurring fee is re-issued.
type RecurrenceType string

const (
	RecurrenceWeekly  RecurrenceType = "weekly"
	RecurrenceMonthly RecurrenceType = "monthly"
	RecurrenceYearly  RecurrenceType = "yearly"
)

// BasicFeeInfo is a row of the fee list.
type BasicFeeInfo struct {
	ID      int       `json:"id"`
	Name    string    `json:"name"`
	Amount  int64     `json:"amount"`
	DueDate NaiveTime `json:"due_date"`
}

// DetailedFeeInfo is the fee detail screen's view of one fee.
type DetailedFeeInfo struct {
	ID             int             `json:"id"`
	Name           string          `json:"name"`
	Amount         int64           `json:"amount"`
	IsRequired     bool            `json:"is_required"`
	CreatedAt      NaiveTime       `json:"created_at"`
	DueDate        NaiveTime       `json:"due_date"`
	RecurrenceType *RecurrenceType `json:"recurrence_type,omitempty"`
	Assignments    []FeeRoomInfo   `json:"fee_assignments,omitempty"`
}

// FeeInput is the payload of add_fee and edit_fee_info.
type FeeInput struct {
	Name           string          `json:"name"`
	Amount         int64           `json:"amount"`
	DueDate        NaiveTime       `json:"due_date"`
	IsRequired     bool            `json:"is_required"`
	IsRecurring    bool            `json:"is_recurring"`
	RecurrenceType *RecurrenceType `json:"recurrence_type,omitempty"`
}

// FeeRoomInfo is one fee assigned to one room.
type FeeRoomInfo struct {
	AssignmentID int        `json:"assignment_id"`
	RoomNumber   int        `json:"room_number"`
	FeeID        int        `json:"fee_id"`
	FeeName      string     `json:"fee_name"`
	FeeAmount    int64      `json:"fee_amount"`
	DueDate      NaiveTime  `json:"due_date"`
	PaymentDate  *NaiveTime `json:"payment_date,omitempty"`
	IsPaid       bool       `json:"is_paid"`
}

// Paid reports whether a payment was recorded for the assignment.
func (f FeeRoomInfo) Paid() bool {
	return f.PaymentDate != nil && !f.PaymentDate.IsZero()
}
