package Scheduler

import (
	"math"
	"time"

	"Cadence/Calendar"
	"Cadence/Models"
	"Cadence/Recurrence"
)

// StatsInput is the historical snapshot stats are rolled up from,
// preloaded for one person.
type StatsInput struct {
	Assignments []Models.TaskAssignment
	Records     []Models.CompletionRecord
	Leaves      []Models.PersonalHoliday
	Location    *time.Location
}

type CompletionStats struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	Percentage int `json:"percentage"`
}

// MonthlyCompletion rolls completions over [monthStart, monthEnd] into a
// completion percentage. A record counts toward the period when either its
// scheduled or completion date falls in range; dates on approved leave are
// excluded entirely. Completed means status completed AND manager
// approved — the one canonical weighting, with no partial credit.
func MonthlyCompletion(in StatsInput, monthStart, monthEnd time.Time) CompletionStats {
	loc := in.Location
	if loc == nil {
		loc = time.UTC
	}
	start := Recurrence.Midnight(monthStart, loc)
	end := Recurrence.Midnight(monthEnd, loc)
	startStr := start.Format(Calendar.DateLayout)
	endStr := end.Format(Calendar.DateLayout)

	inRange := func(day string) bool {
		return day != "" && day >= startStr && day <= endStr
	}
	onLeave := func(day string) bool {
		d, err := time.ParseInLocation(Calendar.DateLayout, day, loc)
		if err != nil {
			return false
		}
		return Calendar.OnApprovedLeave(in.Leaves, d)
	}

	seen := make(map[string]bool)
	stats := CompletionStats{}
	for i := range in.Records {
		record := &in.Records[i]
		if !inRange(record.ScheduledDate) && !inRange(record.CompletionDate) {
			continue
		}
		if onLeave(record.ScheduledDate) {
			continue
		}
		key := recordKey(record.AssignmentID, record.ScheduledDate)
		if seen[key] {
			continue
		}
		seen[key] = true
		stats.Total++
		if record.Status == Models.StatusCompleted &&
			record.ApprovalStatus != nil && *record.ApprovalStatus == Models.ApprovalApproved {
			stats.Completed++
		}
	}

	// No records yet: fall back to the assignment count, unless the whole
	// period is excluded by approved leave.
	if stats.Total == 0 {
		if hasWorkableDay(in.Leaves, start, end) {
			stats.Total = len(in.Assignments)
		}
	}

	if stats.Total > 0 {
		stats.Percentage = int(math.Round(float64(stats.Completed) / float64(stats.Total) * 100))
	}
	return stats
}

func hasWorkableDay(leaves []Models.PersonalHoliday, start, end time.Time) bool {
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if !Calendar.OnApprovedLeave(leaves, d) {
			return true
		}
	}
	return false
}
