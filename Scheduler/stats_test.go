package Scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"Cadence/Models"
)

func approved() *string {
	s := Models.ApprovalApproved
	return &s
}

func TestMonthlyCompletionCountsApprovedCompletions(t *testing.T) {
	input := StatsInput{
		Records: []Models.CompletionRecord{
			{AssignmentID: 1, ScheduledDate: "2024-03-04", Status: Models.StatusCompleted, ApprovalStatus: approved()},
			{AssignmentID: 1, ScheduledDate: "2024-03-05", Status: Models.StatusCompleted}, // not approved
			{AssignmentID: 1, ScheduledDate: "2024-03-06", Status: Models.StatusPartial, ApprovalStatus: approved()},
		},
		Location: time.UTC,
	}

	stats := MonthlyCompletion(input, day(2024, time.March, 1), day(2024, time.March, 31))
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.Completed)
	assert.Equal(t, 33, stats.Percentage)
}

func TestMonthlyCompletionDeduplicatesKeys(t *testing.T) {
	input := StatsInput{
		Records: []Models.CompletionRecord{
			{AssignmentID: 1, ScheduledDate: "2024-03-04", Status: Models.StatusCompleted, ApprovalStatus: approved()},
			{AssignmentID: 1, ScheduledDate: "2024-03-04", Status: Models.StatusNotDone},
		},
		Location: time.UTC,
	}

	stats := MonthlyCompletion(input, day(2024, time.March, 1), day(2024, time.March, 31))
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.Completed)
	assert.Equal(t, 100, stats.Percentage)
}

func TestMonthlyCompletionIncludesLateCompletions(t *testing.T) {
	// Due in February, acted on in March: the completion date pulls it
	// into the March period.
	input := StatsInput{
		Records: []Models.CompletionRecord{
			{AssignmentID: 1, ScheduledDate: "2024-02-28", CompletionDate: "2024-03-01", Status: Models.StatusCompleted, ApprovalStatus: approved()},
		},
		Location: time.UTC,
	}

	stats := MonthlyCompletion(input, day(2024, time.March, 1), day(2024, time.March, 31))
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.Completed)
}

func TestMonthlyCompletionExcludesLeaveDays(t *testing.T) {
	input := StatsInput{
		Records: []Models.CompletionRecord{
			{AssignmentID: 1, ScheduledDate: "2024-03-04", Status: Models.StatusCompleted, ApprovalStatus: approved()},
			{AssignmentID: 1, ScheduledDate: "2024-03-11", Status: Models.StatusNotDone},
		},
		Leaves: []Models.PersonalHoliday{{
			UserID:    1,
			StartDate: "2024-03-11",
			EndDate:   "2024-03-15",
			Status:    Models.LeaveApproved,
		}},
		Location: time.UTC,
	}

	stats := MonthlyCompletion(input, day(2024, time.March, 1), day(2024, time.March, 31))
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.Completed)
	assert.Equal(t, 100, stats.Percentage)
}

func TestMonthlyCompletionFullLeaveMonthIsZero(t *testing.T) {
	input := StatsInput{
		Assignments: []Models.TaskAssignment{{Model: gorm.Model{ID: 1}}},
		Leaves: []Models.PersonalHoliday{{
			UserID:    1,
			StartDate: "2024-03-01",
			EndDate:   "2024-03-31",
			Status:    Models.LeaveApproved,
		}},
		Location: time.UTC,
	}

	stats := MonthlyCompletion(input, day(2024, time.March, 1), day(2024, time.March, 31))
	assert.Equal(t, 0, stats.Total)
	assert.Equal(t, 0, stats.Percentage)
}

func TestMonthlyCompletionFallsBackToAssignmentCount(t *testing.T) {
	input := StatsInput{
		Assignments: []Models.TaskAssignment{
			{Model: gorm.Model{ID: 1}},
			{Model: gorm.Model{ID: 2}},
		},
		Location: time.UTC,
	}

	stats := MonthlyCompletion(input, day(2024, time.March, 1), day(2024, time.March, 31))
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 0, stats.Completed)
	assert.Equal(t, 0, stats.Percentage)
}
