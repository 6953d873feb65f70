package Scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"Cadence/Models"
)

func TestBuildDailySummaryBuckets(t *testing.T) {
	taskA := makeTask(1, Models.RecurrenceDaily, "", day(2024, time.January, 8))
	taskB := makeTask(2, Models.RecurrenceDaily, "", day(2024, time.January, 8))
	input := AgendaInput{
		Assignments: []Models.TaskAssignment{
			makeAssignment(1, day(2024, time.January, 8), taskA),
			makeAssignment(2, day(2024, time.January, 8), taskB),
		},
		Records: []Models.CompletionRecord{
			{AssignmentID: 1, ScheduledDate: "2024-01-10", Status: Models.StatusCompleted},
			{AssignmentID: 1, ScheduledDate: "2024-01-08", Status: Models.StatusCompleted},
			{AssignmentID: 1, ScheduledDate: "2024-01-09", Status: Models.StatusNotDone, Notes: "supplier closed"},
			{AssignmentID: 2, ScheduledDate: "2024-01-08", Status: Models.StatusPartial},
			{AssignmentID: 2, ScheduledDate: "2024-01-09", Status: Models.StatusPending, Notes: "deferred"},
		},
		Location: time.UTC,
	}
	user := Models.User{Model: gorm.Model{ID: 1}, Name: "Dana"}

	summary := BuildDailySummary(input, user, day(2024, time.January, 10))

	assert.Equal(t, "2024-01-10", summary.Date)
	assert.Equal(t, uint(1), summary.UserID)
	assert.Equal(t, "Dana", summary.UserName)

	// Due today: task A completed, task B untouched. Everything before
	// Jan 10 is resolved except task B's pending Jan 9 item, which is the
	// single carry-forward.
	assert.Equal(t, 1, summary.Completed)
	assert.Equal(t, 1, summary.Scheduled)
	assert.Equal(t, 1, summary.Pending)
	assert.Equal(t, 1, summary.CarriedForward)
	require.Len(t, summary.Items, 3)
}

func TestBuildDailySummaryNotesFlowThrough(t *testing.T) {
	task := makeTask(1, Models.RecurrenceDaily, "", day(2024, time.January, 9))
	input := AgendaInput{
		Assignments: []Models.TaskAssignment{makeAssignment(1, day(2024, time.January, 9), task)},
		Records: []Models.CompletionRecord{
			{AssignmentID: 1, ScheduledDate: "2024-01-09", Status: Models.StatusNotDone, Notes: "no access"},
		},
		Location: time.UTC,
	}

	summary := BuildDailySummary(input, Models.User{Model: gorm.Model{ID: 1}}, day(2024, time.January, 9))
	require.Len(t, summary.Items, 1)
	assert.Equal(t, "no access", summary.Items[0].Notes)
	assert.Equal(t, 1, summary.NotDone)
}
