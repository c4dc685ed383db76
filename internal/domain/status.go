package domain

// Status is a free-form kitchen workflow marker. The store accepts any
// non-empty string; the constants below are the conventional values.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)
