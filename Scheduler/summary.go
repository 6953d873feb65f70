package Scheduler

import (
	"time"

	"Cadence/Models"
)

// DailySummary is the per-person, per-day rollup handed to the
// notification collaborator. The engine computes it; rendering and
// delivery happen elsewhere.
type DailySummary struct {
	Date           string        `json:"date"`
	UserID         uint          `json:"user_id"`
	UserName       string        `json:"user_name"`
	Scheduled      int           `json:"scheduled"`
	Completed      int           `json:"completed"`
	Partial        int           `json:"partial"`
	NotDone        int           `json:"not_done"`
	Pending        int           `json:"pending"`
	CarriedForward int           `json:"carried_forward"`
	Items          []SummaryItem `json:"items"`
}

type SummaryItem struct {
	TaskName string `json:"task_name"`
	DueDate  string `json:"due_date"`
	Status   string `json:"status"`
	Notes    string `json:"notes,omitempty"`
}

// BuildDailySummary builds the day's agenda for the user and counts each
// occurrence into its status bucket. Carried-forward items are counted
// both in their status bucket and in CarriedForward.
func BuildDailySummary(in AgendaInput, user Models.User, date time.Time) DailySummary {
	agenda := BuildDailyAgenda(in, date)

	summary := DailySummary{
		Date:           agenda.Date,
		UserID:         user.ID,
		UserName:       user.Name,
		CarriedForward: len(agenda.PendingFromPast),
	}

	tally := func(occurrences []Occurrence) {
		for _, occurrence := range occurrences {
			switch occurrence.Status {
			case Models.StatusCompleted:
				summary.Completed++
			case Models.StatusPartial:
				summary.Partial++
			case Models.StatusNotDone:
				summary.NotDone++
			case Models.StatusPending:
				summary.Pending++
			default:
				summary.Scheduled++
			}
			item := SummaryItem{
				TaskName: occurrence.TaskName,
				DueDate:  occurrence.DueDate,
				Status:   occurrence.Status,
			}
			if occurrence.Record != nil {
				item.Notes = occurrence.Record.Notes
			}
			summary.Items = append(summary.Items, item)
		}
	}
	tally(agenda.DueToday)
	tally(agenda.PendingFromPast)

	return summary
}
