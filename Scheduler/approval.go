package Scheduler

import (
	"strings"

	"Cadence/Models"
)

// Approvable reports whether a record in this status can enter the
// approval workflow. Only resolved outcomes get manager sign-off.
func Approvable(status string) bool {
	switch status {
	case Models.StatusCompleted, Models.StatusPartial, Models.StatusNotDone:
		return true
	}
	return false
}

// Approve marks the record approved. The comment is optional. Approval
// never touches the completion status itself.
func Approve(record *Models.CompletionRecord, approverID uint, comment string) error {
	if !Approvable(record.Status) {
		return &ValidationError{Code: CodeNotApprovable, Message: "a " + record.Status + " record cannot be approved"}
	}
	status := Models.ApprovalApproved
	record.ApprovalStatus = &status
	record.ApproverComment = comment
	record.ApprovedByID = &approverID
	return nil
}

// Reject marks the record rejected. A comment is mandatory so the assignee
// knows what to rework.
func Reject(record *Models.CompletionRecord, approverID uint, comment string) error {
	if !Approvable(record.Status) {
		return &ValidationError{Code: CodeNotApprovable, Message: "a " + record.Status + " record cannot be rejected"}
	}
	if strings.TrimSpace(comment) == "" {
		return &ValidationError{Code: CodeCommentRequired, Message: "rejection requires a comment"}
	}
	status := Models.ApprovalRejected
	record.ApprovalStatus = &status
	record.ApproverComment = comment
	record.ApprovedByID = &approverID
	return nil
}
