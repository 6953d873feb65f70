package Calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"Cadence/Models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIsWorkingDayDefault(t *testing.T) {
	decision := IsWorkingDay(DayData{}, day(2024, time.January, 2))
	assert.True(t, decision.IsWorkingDay)
	assert.Empty(t, decision.Reason)
}

func TestPublicHolidayWinsFirst(t *testing.T) {
	data := DayData{
		PublicHolidays: []Models.PublicHoliday{{Name: "Labour Day", Date: "2024-05-01"}},
		OrgWeeklyOffs:  []Models.OrgWeeklyOff{{Weekday: 3}}, // May 1 2024 is a Wednesday
	}

	decision := IsWorkingDay(data, day(2024, time.May, 1))
	assert.False(t, decision.IsWorkingDay)
	assert.Equal(t, "Labour Day", decision.Reason)
}

func TestOrgWeeklyOff(t *testing.T) {
	data := DayData{OrgWeeklyOffs: []Models.OrgWeeklyOff{{Weekday: 0}}}

	sunday := IsWorkingDay(data, day(2024, time.January, 7))
	assert.False(t, sunday.IsWorkingDay)
	assert.Equal(t, "weekly off", sunday.Reason)

	monday := IsWorkingDay(data, day(2024, time.January, 8))
	assert.True(t, monday.IsWorkingDay)
}

func TestPersonOverrideReplacesOrgDefault(t *testing.T) {
	// Org takes Sundays off, this person takes Wednesdays instead.
	data := DayData{
		OrgWeeklyOffs:   []Models.OrgWeeklyOff{{Weekday: 0}},
		PersonWeeklyOff: []Models.PersonWeeklyOff{{UserID: 1, Weekday: 3}},
	}

	assert.True(t, IsWorkingDay(data, day(2024, time.January, 7)).IsWorkingDay)   // Sunday
	assert.False(t, IsWorkingDay(data, day(2024, time.January, 10)).IsWorkingDay) // Wednesday
}

func TestApprovedLeaveRange(t *testing.T) {
	data := DayData{
		PersonalLeaves: []Models.PersonalHoliday{{
			UserID:    1,
			StartDate: "2024-02-05",
			EndDate:   "2024-02-09",
			Status:    Models.LeaveApproved,
		}},
	}

	decision := IsWorkingDay(data, day(2024, time.February, 7))
	assert.False(t, decision.IsWorkingDay)
	assert.Equal(t, "on leave", decision.Reason)

	assert.True(t, IsWorkingDay(data, day(2024, time.February, 4)).IsWorkingDay)
	assert.True(t, IsWorkingDay(data, day(2024, time.February, 10)).IsWorkingDay)
}

func TestPendingLeaveDoesNotCount(t *testing.T) {
	data := DayData{
		PersonalLeaves: []Models.PersonalHoliday{{
			UserID:    1,
			StartDate: "2024-02-05",
			EndDate:   "2024-02-09",
			Status:    Models.LeavePending,
		}},
	}

	assert.True(t, IsWorkingDay(data, day(2024, time.February, 7)).IsWorkingDay)
	assert.False(t, OnApprovedLeave(data.PersonalLeaves, day(2024, time.February, 7)))
}
