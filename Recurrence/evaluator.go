package Recurrence

import (
	"log"
	"time"

	"Cadence/Models"
)

// Applies reports whether the task is due on the calendar day containing
// date in loc. The check generates the occurrence window for that single
// day and tests for a non-empty result; it never compares UTC instants
// directly, which would drift at day boundaries.
//
// Any config or construction failure evaluates to false with a logged
// warning. Scheduling never hard-fails for one bad task definition.
func Applies(task Models.Task, date time.Time, loc *time.Location) bool {
	dayStart := Midnight(date, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	occ, err := OccurrencesBetween(task, dayStart, dayEnd, loc)
	if err != nil {
		log.Printf("Task %d: recurrence evaluation skipped: %v", task.ID, err)
		return false
	}
	return len(occ) > 0
}

// OccurrencesBetween enumerates the task's due dates in [from, to), as
// local midnights in loc.
func OccurrencesBetween(task Models.Task, from, to time.Time, loc *time.Location) ([]time.Time, error) {
	recurrenceType := task.RecurrenceType
	if recurrenceType == "" {
		recurrenceType = Models.RecurrenceNone
	}

	anchor := Midnight(task.CreatedAt.In(loc), loc)
	from = Midnight(from, loc)
	to = Midnight(to, loc)

	// A one-off task is due exactly on its creation day, both projected
	// into loc.
	if recurrenceType == Models.RecurrenceNone {
		if !anchor.Before(from) && anchor.Before(to) {
			return []time.Time{anchor}, nil
		}
		return nil, nil
	}

	cfg, err := ParseConfig(recurrenceType, task.RecurrenceConfig)
	if err != nil {
		return nil, err
	}

	frequency := recurrenceType
	if recurrenceType == Models.RecurrenceCustom {
		frequency = cfg.Frequency
	}

	last := to.AddDate(0, 0, -1)
	if cfg.Until != "" {
		until, _ := time.Parse("2006-01-02", cfg.Until)
		untilDay := time.Date(until.Year(), until.Month(), until.Day(), 0, 0, 0, 0, loc)
		if untilDay.Before(last) {
			last = untilDay
		}
	}

	// Without an occurrence-count cutoff the walk can start at the query
	// window; with one it has to start at the anchor to number the
	// occurrences correctly.
	start := anchor
	if cfg.Count == 0 && from.After(anchor) {
		start = from
	}

	var result []time.Time
	seen := 0
	for d := start; !d.After(last); d = d.AddDate(0, 0, 1) {
		if !matches(frequency, cfg, anchor, d) {
			continue
		}
		seen++
		if cfg.Count > 0 && seen > cfg.Count {
			break
		}
		if !d.Before(from) {
			result = append(result, d)
		}
	}
	return result, nil
}

// Midnight returns the local midnight of the calendar day containing t
// in loc.
func Midnight(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

func matches(frequency string, cfg Config, anchor, d time.Time) bool {
	if d.Before(anchor) {
		return false
	}
	switch frequency {
	case Models.RecurrenceDaily:
		return civilDays(anchor, d)%cfg.Interval == 0
	case Models.RecurrenceWeekly:
		weeks := civilDays(weekStart(anchor), weekStart(d)) / 7
		if weeks%cfg.Interval != 0 {
			return false
		}
		set := cfg.Weekdays
		if len(set) == 0 {
			set = []time.Weekday{anchor.Weekday()}
		}
		for _, wd := range set {
			if d.Weekday() == wd {
				return true
			}
		}
		return false
	case Models.RecurrenceMonthly:
		months := (d.Year()-anchor.Year())*12 + int(d.Month()-anchor.Month())
		if months%cfg.Interval != 0 {
			return false
		}
		return matchesDayPattern(cfg, anchor, d)
	case Models.RecurrenceYearly:
		if (d.Year()-anchor.Year())%cfg.Interval != 0 {
			return false
		}
		month := cfg.Month
		if month == 0 {
			month = anchor.Month()
		}
		if d.Month() != month {
			return false
		}
		return matchesDayPattern(cfg, anchor, d)
	default:
		return false
	}
}

// matchesDayPattern resolves the within-month part shared by monthly and
// yearly rules: either a fixed day-of-month or a relative weekday pattern
// like "first Monday" / "last Friday".
func matchesDayPattern(cfg Config, anchor, d time.Time) bool {
	if cfg.Ordinal != 0 && cfg.Weekday != nil {
		if d.Weekday() != *cfg.Weekday {
			return false
		}
		if cfg.Ordinal == -1 {
			return d.Day() > daysInMonth(d)-7
		}
		return (d.Day()-1)/7+1 == cfg.Ordinal
	}

	dayOfMonth := cfg.DayOfMonth
	if dayOfMonth == 0 {
		dayOfMonth = anchor.Day()
	}
	// Months without the target day (e.g. the 31st in February) simply
	// produce no occurrence.
	return d.Day() == dayOfMonth
}

// civilDays counts calendar days between two local midnights. Going
// through UTC-normalized dates keeps DST transitions from skewing the
// division.
func civilDays(a, b time.Time) int {
	au := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bu := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bu.Sub(au).Hours() / 24)
}

// weekStart returns the Sunday starting the week containing d. Weeks start
// on Sunday to match the 0=Sunday weekday convention used throughout.
func weekStart(d time.Time) time.Time {
	return d.AddDate(0, 0, -int(d.Weekday()))
}

func daysInMonth(d time.Time) int {
	return time.Date(d.Year(), d.Month()+1, 0, 0, 0, 0, 0, d.Location()).Day()
}
