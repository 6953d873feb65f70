package Models

import "gorm.io/gorm"

// Completion statuses. scheduled is the resting state of an untouched
// occurrence; not_applicable is set only for non-working days.
const (
	StatusScheduled     = "scheduled"
	StatusCompleted     = "completed"
	StatusPartial       = "partial"
	StatusNotDone       = "not_done"
	StatusPending       = "pending"
	StatusNotApplicable = "not_applicable"
)

// Approval statuses, orthogonal to the completion status.
const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

// CompletionRecord holds at most one row per (assignment_id, scheduled_date).
// Later submissions overwrite, they never append. Dates are stored as
// YYYY-MM-DD strings in the organization timezone.
type CompletionRecord struct {
	gorm.Model
	AssignmentID      uint     `json:"assignment_id" gorm:"index;not null"`
	ScheduledDate     string   `json:"scheduled_date" gorm:"type:varchar(10);not null"`
	CompletionDate    string   `json:"completion_date" gorm:"type:varchar(10)"`
	Status            string   `json:"status" gorm:"type:varchar(20);not null"`
	QuantityCompleted *float64 `json:"quantity_completed"`
	Notes             string   `json:"notes" gorm:"type:text"`
	ApprovalStatus    *string  `json:"approval_status" gorm:"type:varchar(10)"`
	ApproverComment   string   `json:"approver_comment" gorm:"type:text"`
	ApprovedByID      *uint    `json:"approved_by_id"`
}

func (CompletionRecord) TableName() string {
	return "completion_records"
}

// SetupCompletionRecordIndexes enforces the one-row-per-key invariant the
// upsert relies on.
func SetupCompletionRecordIndexes(db *gorm.DB) error {
	return db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_assignment_scheduled ON completion_records (assignment_id, scheduled_date) WHERE deleted_at IS NULL").Error
}
