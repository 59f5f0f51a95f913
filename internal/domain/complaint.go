package domain

import "time"

// ComplaintStatus tracks a complaint through its handling lifecycle.
type ComplaintStatus string

const (
	StatusPending    ComplaintStatus = "pending"
	StatusInProgress ComplaintStatus = "in_progress"
	StatusResolved   ComplaintStatus = "resolved"
	StatusRejected   ComplaintStatus = "rejected"
)

// Valid reports whether s is a known status.
func (s ComplaintStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved, StatusRejected:
		return true
	default:
		return false
	}
}

// Complaint is a citizen complaint as stored.
type Complaint struct {
	ID            string          `db:"id"             json:"id"`
	UserID        string          `db:"user_id"        json:"user_id"`
	Title         string          `db:"title"          json:"title"`
	Description   string          `db:"description"    json:"description"`
	Category      string          `db:"category"       json:"category"`
	Source        SourceKind      `db:"source"         json:"source"`
	AttachmentURL *string         `db:"attachment_url" json:"attachment_url,omitempty"`
	Priority      Priority        `db:"priority"       json:"priority"`
	PriorityStage string          `db:"priority_stage" json:"priority_stage"`
	Status        ComplaintStatus `db:"status"         json:"status"`
	CreatedAt     time.Time       `db:"created_at"     json:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"     json:"updated_at"`
}

// PriorityCount is one row of the per-priority dashboard aggregate.
type PriorityCount struct {
	Priority Priority `db:"priority" json:"priority"`
	Count    int      `db:"count"    json:"count"`
}

// ComplaintEvent is published when a complaint has been classified.
type ComplaintEvent struct {
	EventID     string    `json:"event_id"`
	EventType   string    `json:"event_type"`
	ComplaintID string    `json:"complaint_id"`
	UserID      string    `json:"user_id"`
	Category    string    `json:"category"`
	Priority    Priority  `json:"priority"`
	Stage       string    `json:"stage"`
	Timestamp   time.Time `json:"timestamp"`
}

// EventComplaintClassified is the event type for classified complaints.
const EventComplaintClassified = "COMPLAINT_CLASSIFIED"
