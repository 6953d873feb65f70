package Calendar

import (
	"time"

	"Cadence/Models"
)

// DayData is the calendar context for one person, preloaded by the caller.
// The policy itself does no I/O.
type DayData struct {
	PublicHolidays  []Models.PublicHoliday
	OrgWeeklyOffs   []Models.OrgWeeklyOff
	PersonWeeklyOff []Models.PersonWeeklyOff
	PersonalLeaves  []Models.PersonalHoliday
}

// Decision is the working-day verdict with a display reason for the
// non-working cases.
type Decision struct {
	IsWorkingDay bool   `json:"is_working_day"`
	Reason       string `json:"reason,omitempty"`
}

const DateLayout = "2006-01-02"

// IsWorkingDay decides whether date is a working day for the person the
// data belongs to. Checks run in precedence order, first hit wins:
// public holiday, then weekly off (a person override replaces the org
// default entirely), then approved leave.
func IsWorkingDay(data DayData, date time.Time) Decision {
	day := date.Format(DateLayout)
	weekday := int(date.Weekday())

	for _, h := range data.PublicHolidays {
		if h.Date == day {
			return Decision{IsWorkingDay: false, Reason: h.Name}
		}
	}

	if len(data.PersonWeeklyOff) > 0 {
		for _, off := range data.PersonWeeklyOff {
			if off.Weekday == weekday {
				return Decision{IsWorkingDay: false, Reason: "weekly off"}
			}
		}
	} else {
		for _, off := range data.OrgWeeklyOffs {
			if off.Weekday == weekday {
				return Decision{IsWorkingDay: false, Reason: "weekly off"}
			}
		}
	}

	for _, leave := range data.PersonalLeaves {
		if leave.Status != Models.LeaveApproved {
			continue
		}
		if day >= leave.StartDate && day <= leave.EndDate {
			return Decision{IsWorkingDay: false, Reason: "on leave"}
		}
	}

	return Decision{IsWorkingDay: true}
}

// OnApprovedLeave reports whether the person is on approved leave on date,
// ignoring holidays and weekly offs.
func OnApprovedLeave(leaves []Models.PersonalHoliday, date time.Time) bool {
	day := date.Format(DateLayout)
	for _, leave := range leaves {
		if leave.Status == Models.LeaveApproved && day >= leave.StartDate && day <= leave.EndDate {
			return true
		}
	}
	return false
}
