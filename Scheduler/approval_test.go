package Scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Cadence/Models"
)

func TestApproveSetsApprovalOnly(t *testing.T) {
	record := Models.CompletionRecord{Status: Models.StatusCompleted}

	require.NoError(t, Approve(&record, 7, ""))
	require.NotNil(t, record.ApprovalStatus)
	assert.Equal(t, Models.ApprovalApproved, *record.ApprovalStatus)
	assert.Equal(t, Models.StatusCompleted, record.Status)
	require.NotNil(t, record.ApprovedByID)
	assert.Equal(t, uint(7), *record.ApprovedByID)
}

func TestRejectRequiresComment(t *testing.T) {
	record := Models.CompletionRecord{Status: Models.StatusPartial}

	err := Reject(&record, 7, "")
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, CodeCommentRequired, validationErr.Code)
	assert.Nil(t, record.ApprovalStatus)
}

func TestRejectKeepsStatus(t *testing.T) {
	record := Models.CompletionRecord{Status: Models.StatusPartial}

	require.NoError(t, Reject(&record, 7, "needs rework"))
	require.NotNil(t, record.ApprovalStatus)
	assert.Equal(t, Models.ApprovalRejected, *record.ApprovalStatus)
	assert.Equal(t, Models.StatusPartial, record.Status)
	assert.Equal(t, "needs rework", record.ApproverComment)
}

func TestOnlyResolvedOutcomesAreApprovable(t *testing.T) {
	for _, status := range []string{Models.StatusScheduled, Models.StatusPending, Models.StatusNotApplicable} {
		record := Models.CompletionRecord{Status: status}

		err := Approve(&record, 7, "")
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, CodeNotApprovable, validationErr.Code)

		err = Reject(&record, 7, "no")
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, CodeNotApprovable, validationErr.Code)
	}
}
