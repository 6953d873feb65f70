package Recurrence

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"Cadence/Models"
)

// ConfigError marks a recurrence definition that cannot be evaluated. The
// evaluator turns it into "does not apply" instead of surfacing it, so one
// bad task definition never breaks agenda building.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "invalid recurrence config: " + e.Reason
}

// Config is the decoded, normalized recurrence configuration. Legacy field
// aliases are folded into the canonical fields here, once at load time, so
// the evaluator never branches on field presence.
type Config struct {
	Interval int

	// End condition. Zero values mean "never ends". When both a stop date
	// and an occurrence count are set, whichever cuts off first wins.
	Until string // YYYY-MM-DD, inclusive
	Count int

	// Weekly: weekday set, 0=Sunday..6=Saturday.
	Weekdays []time.Weekday

	// Monthly/yearly fixed patterns. DayOfMonth falls back to the anchor
	// day when unset.
	DayOfMonth int
	Month      time.Month

	// Relative weekday patterns ("first Monday", "last Friday"):
	// Ordinal in {1,2,3,4,-1}, Weekday set when the pattern is in use.
	Ordinal int
	Weekday *time.Weekday

	// Custom only: the effective frequency the rest of the fields apply to.
	Frequency string
}

// rawConfig is the wire shape, including the legacy aliases older task rows
// still carry. New-style fields take precedence when both are present.
type rawConfig struct {
	Interval int `json:"interval"`

	Until   string `json:"until"`
	EndDate string `json:"end_date"` // legacy alias of until

	Count       int `json:"count"`
	Occurrences int `json:"occurrences"` // legacy alias of count

	Weekdays []int `json:"weekdays"`
	Days     []int `json:"days"` // legacy alias of weekdays

	DayOfMonth int `json:"day_of_month"`
	Day        int `json:"day"` // legacy alias of day_of_month

	Month   int    `json:"month"`
	Ordinal int    `json:"ordinal"`
	Weekday *int   `json:"weekday"`
	Freq    string `json:"frequency"`
}

// ParseConfig decodes and normalizes a task's recurrence config for the
// given recurrence type. An empty config is valid for the plain types and
// yields the defaults (interval 1, never ends); custom requires a config
// naming its frequency.
func ParseConfig(recurrenceType string, raw datatypes.JSON) (Config, error) {
	cfg := Config{Interval: 1}

	if len(raw) == 0 || string(raw) == "null" {
		if recurrenceType == Models.RecurrenceCustom {
			return cfg, &ConfigError{Reason: "custom recurrence has no config"}
		}
		return cfg, nil
	}

	var rc rawConfig
	if err := json.Unmarshal(raw, &rc); err != nil {
		return cfg, &ConfigError{Reason: err.Error()}
	}

	if rc.Interval < 0 {
		return cfg, &ConfigError{Reason: "negative interval"}
	}
	if rc.Interval > 0 {
		cfg.Interval = rc.Interval
	}

	cfg.Until = rc.Until
	if cfg.Until == "" {
		cfg.Until = rc.EndDate
	}
	if cfg.Until != "" {
		if _, err := time.Parse("2006-01-02", cfg.Until); err != nil {
			return cfg, &ConfigError{Reason: "bad until date " + cfg.Until}
		}
	}

	cfg.Count = rc.Count
	if cfg.Count == 0 {
		cfg.Count = rc.Occurrences
	}
	if cfg.Count < 0 {
		return cfg, &ConfigError{Reason: "negative occurrence count"}
	}

	days := rc.Weekdays
	if len(days) == 0 {
		days = rc.Days
	}
	for _, d := range days {
		if d < 0 || d > 6 {
			return cfg, &ConfigError{Reason: fmt.Sprintf("weekday %d out of range", d)}
		}
		cfg.Weekdays = append(cfg.Weekdays, time.Weekday(d))
	}

	cfg.DayOfMonth = rc.DayOfMonth
	if cfg.DayOfMonth == 0 {
		cfg.DayOfMonth = rc.Day
	}
	if cfg.DayOfMonth < 0 || cfg.DayOfMonth > 31 {
		return cfg, &ConfigError{Reason: fmt.Sprintf("day of month %d out of range", cfg.DayOfMonth)}
	}

	if rc.Month != 0 {
		if rc.Month < 1 || rc.Month > 12 {
			return cfg, &ConfigError{Reason: fmt.Sprintf("month %d out of range", rc.Month)}
		}
		cfg.Month = time.Month(rc.Month)
	}

	if rc.Ordinal != 0 || rc.Weekday != nil {
		if rc.Ordinal < -1 || rc.Ordinal == 0 || rc.Ordinal > 4 {
			return cfg, &ConfigError{Reason: fmt.Sprintf("ordinal %d out of range", rc.Ordinal)}
		}
		if rc.Weekday == nil {
			return cfg, &ConfigError{Reason: "ordinal without weekday"}
		}
		if *rc.Weekday < 0 || *rc.Weekday > 6 {
			return cfg, &ConfigError{Reason: fmt.Sprintf("weekday %d out of range", *rc.Weekday)}
		}
		wd := time.Weekday(*rc.Weekday)
		cfg.Ordinal = rc.Ordinal
		cfg.Weekday = &wd
	}

	if recurrenceType == Models.RecurrenceCustom {
		switch rc.Freq {
		case Models.RecurrenceDaily, Models.RecurrenceWeekly, Models.RecurrenceMonthly, Models.RecurrenceYearly:
			cfg.Frequency = rc.Freq
		default:
			return cfg, &ConfigError{Reason: "custom recurrence with unknown frequency " + rc.Freq}
		}
	}

	return cfg, nil
}
