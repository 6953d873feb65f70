package Scheduler

import (
	"strings"

	"Cadence/Models"
)

// ValidationError is a rejected submission. Nothing is persisted when one
// is returned; the code is stable for API clients, the message is for
// humans.
type ValidationError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

const (
	CodeNotesRequired    = "notes-required"
	CodeQuantityRequired = "quantity-required"
	CodeInvalidStatus    = "invalid-status"
	CodeCommentRequired  = "comment-required-for-rejection"
	CodeNotApprovable    = "status-not-approvable"
)

// Submission is what a person records against one occurrence. Status may be
// left empty to have it derived from quantity vs. the task benchmark
// (automatic mode); a non-empty status is taken as-is and quantity becomes
// informational only (manual mode).
type Submission struct {
	Status   string   `json:"status"`
	Quantity *float64 `json:"quantity_completed"`
	Notes    string   `json:"notes"`
}

// DeriveStatus maps a submitted quantity onto a completion status. With a
// benchmark B: completed when Q >= B, partial when 0 < Q < B, not_done when
// Q is zero or unset. Without one: completed when Q > 0, else not_done.
func DeriveStatus(quantity, benchmark *float64) string {
	q := 0.0
	if quantity != nil {
		q = *quantity
	}
	if benchmark != nil {
		b := *benchmark
		switch {
		case q >= b:
			return Models.StatusCompleted
		case q > 0:
			return Models.StatusPartial
		default:
			return Models.StatusNotDone
		}
	}
	if q > 0 {
		return Models.StatusCompleted
	}
	return Models.StatusNotDone
}

// Resolve validates a submission against its task and returns the final
// status to persist. not_applicable is never accepted from a caller; it is
// reserved for non-working days. pending is a legal explicit submission
// (deferring the item) and, like partial and not_done, requires notes.
func Resolve(task Models.Task, sub Submission) (string, error) {
	status := sub.Status
	if status == "" {
		status = DeriveStatus(sub.Quantity, task.Benchmark)
	} else {
		switch status {
		case Models.StatusCompleted, Models.StatusPartial, Models.StatusNotDone, Models.StatusPending:
		default:
			return "", &ValidationError{Code: CodeInvalidStatus, Message: "status " + status + " cannot be submitted"}
		}
	}

	if task.Benchmark != nil && sub.Quantity == nil {
		return "", &ValidationError{Code: CodeQuantityRequired, Message: "task has a benchmark, quantity is required"}
	}

	switch status {
	case Models.StatusNotDone, Models.StatusPartial, Models.StatusPending:
		if strings.TrimSpace(sub.Notes) == "" {
			return "", &ValidationError{Code: CodeNotesRequired, Message: "notes are required for status " + status}
		}
	}

	return status, nil
}
