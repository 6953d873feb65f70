package Scheduler

import (
	"fmt"
	"time"

	"Cadence/Calendar"
	"Cadence/Models"
	"Cadence/Recurrence"
)

// DefaultLookbackDays bounds the carry-forward scan when the earliest
// assignment is older than this.
const DefaultLookbackDays = 90

// Occurrence is one due-date instance of an assigned task, with the
// current completion state attached when a record exists.
type Occurrence struct {
	AssignmentID uint                     `json:"assignment_id"`
	TaskID       uint                     `json:"task_id"`
	TaskName     string                   `json:"task_name"`
	Category     string                   `json:"category"`
	Benchmark    *float64                 `json:"benchmark"`
	DueDate      string                   `json:"due_date"`
	Status       string                   `json:"status"`
	Record       *Models.CompletionRecord `json:"record,omitempty"`
}

// AgendaInput is the data snapshot an agenda is built from, preloaded for
// one person. Building an agenda reads this snapshot and nothing else, and
// never mutates it.
type AgendaInput struct {
	Assignments  []Models.TaskAssignment // Task preloaded on each
	Records      []Models.CompletionRecord
	Calendar     Calendar.DayData
	Location     *time.Location
	LookbackDays int
}

type Agenda struct {
	Date            string       `json:"date"`
	DueToday        []Occurrence `json:"due_today"`
	PendingFromPast []Occurrence `json:"pending_from_past"`
}

// DayAgenda is one day of a range agenda (carry-forward is a today-only
// concept and is not repeated per day).
type DayAgenda struct {
	Date  string       `json:"date"`
	Items []Occurrence `json:"items"`
}

func recordKey(assignmentID uint, date string) string {
	return fmt.Sprintf("%d|%s", assignmentID, date)
}

func (in AgendaInput) location() *time.Location {
	if in.Location != nil {
		return in.Location
	}
	return time.UTC
}

func (in AgendaInput) recordIndex() map[string]*Models.CompletionRecord {
	index := make(map[string]*Models.CompletionRecord, len(in.Records))
	for i := range in.Records {
		r := &in.Records[i]
		index[recordKey(r.AssignmentID, r.ScheduledDate)] = r
	}
	return index
}

// BuildDailyAgenda assembles the person's task list for one date: every
// active assignment due on that date, plus unresolved occurrences carried
// forward from past working days. Pure and idempotent; recording an
// outcome is a separate explicit action.
func BuildDailyAgenda(in AgendaInput, date time.Time) Agenda {
	loc := in.location()
	day := Recurrence.Midnight(date, loc)
	index := in.recordIndex()

	agenda := Agenda{Date: day.Format(Calendar.DateLayout)}

	for _, assignment := range in.Assignments {
		if !assignment.Task.Active {
			continue
		}
		if !Recurrence.Applies(assignment.Task, day, loc) {
			continue
		}
		agenda.DueToday = append(agenda.DueToday, makeOccurrence(assignment, agenda.Date, index))
	}

	agenda.PendingFromPast = carryForward(in, day, index)
	return agenda
}

// carryForward scans backward from the day before the target date to the
// earliest assignment (bounded by the lookback window) and collects
// occurrences on working days that are still unresolved. Each keeps its
// original due date, so a late completion is written against the day it
// was actually due.
func carryForward(in AgendaInput, day time.Time, index map[string]*Models.CompletionRecord) []Occurrence {
	loc := in.location()

	lookback := in.LookbackDays
	if lookback <= 0 {
		lookback = DefaultLookbackDays
	}
	horizon := day.AddDate(0, 0, -lookback)
	if earliest, ok := earliestAssignment(in.Assignments, loc); ok && earliest.After(horizon) {
		horizon = earliest
	}

	var pending []Occurrence
	for d := horizon; d.Before(day); d = d.AddDate(0, 0, 1) {
		if !Calendar.IsWorkingDay(in.Calendar, d).IsWorkingDay {
			continue
		}
		dateStr := d.Format(Calendar.DateLayout)
		for _, assignment := range in.Assignments {
			if !assignment.Task.Active {
				continue
			}
			if !Recurrence.Applies(assignment.Task, d, loc) {
				continue
			}
			record := index[recordKey(assignment.ID, dateStr)]
			if record != nil && record.Status != Models.StatusPending && record.Status != Models.StatusScheduled {
				continue
			}
			pending = append(pending, makeOccurrence(assignment, dateStr, index))
		}
	}
	return pending
}

// BuildMonthlyAgenda expands every active assignment over [from, to]
// inclusive, one entry per applicable day.
func BuildMonthlyAgenda(in AgendaInput, from, to time.Time) []DayAgenda {
	loc := in.location()
	index := in.recordIndex()

	var days []DayAgenda
	end := Recurrence.Midnight(to, loc)
	for d := Recurrence.Midnight(from, loc); !d.After(end); d = d.AddDate(0, 0, 1) {
		dateStr := d.Format(Calendar.DateLayout)
		agenda := DayAgenda{Date: dateStr}
		for _, assignment := range in.Assignments {
			if !assignment.Task.Active {
				continue
			}
			if !Recurrence.Applies(assignment.Task, d, loc) {
				continue
			}
			agenda.Items = append(agenda.Items, makeOccurrence(assignment, dateStr, index))
		}
		days = append(days, agenda)
	}
	return days
}

func makeOccurrence(assignment Models.TaskAssignment, dateStr string, index map[string]*Models.CompletionRecord) Occurrence {
	occurrence := Occurrence{
		AssignmentID: assignment.ID,
		TaskID:       assignment.TaskID,
		TaskName:     assignment.Task.Name,
		Category:     assignment.Task.Category,
		Benchmark:    assignment.Task.Benchmark,
		DueDate:      dateStr,
		Status:       Models.StatusScheduled,
	}
	if record := index[recordKey(assignment.ID, dateStr)]; record != nil {
		occurrence.Status = record.Status
		occurrence.Record = record
	}
	return occurrence
}

func earliestAssignment(assignments []Models.TaskAssignment, loc *time.Location) (time.Time, bool) {
	var earliest time.Time
	found := false
	for _, a := range assignments {
		day := Recurrence.Midnight(a.CreatedAt.In(loc), loc)
		if !found || day.Before(earliest) {
			earliest = day
			found = true
		}
	}
	return earliest, found
}
