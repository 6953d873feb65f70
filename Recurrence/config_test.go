package Recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"Cadence/Models"
)

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig(Models.RecurrenceDaily, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Interval)
	assert.Empty(t, cfg.Until)
	assert.Zero(t, cfg.Count)
}

func TestParseConfigLegacyAliases(t *testing.T) {
	cfg, err := ParseConfig(Models.RecurrenceWeekly, datatypes.JSON(`{"days":[1,3],"end_date":"2025-06-30","occurrences":5}`))
	require.NoError(t, err)
	assert.Equal(t, []time.Weekday{time.Monday, time.Wednesday}, cfg.Weekdays)
	assert.Equal(t, "2025-06-30", cfg.Until)
	assert.Equal(t, 5, cfg.Count)
}

func TestParseConfigNewStyleWinsOverLegacy(t *testing.T) {
	cfg, err := ParseConfig(Models.RecurrenceWeekly, datatypes.JSON(`{"weekdays":[5],"days":[1,3],"until":"2025-01-01","end_date":"2030-12-31","count":2,"occurrences":9}`))
	require.NoError(t, err)
	assert.Equal(t, []time.Weekday{time.Friday}, cfg.Weekdays)
	assert.Equal(t, "2025-01-01", cfg.Until)
	assert.Equal(t, 2, cfg.Count)
}

func TestParseConfigDayAliases(t *testing.T) {
	cfg, err := ParseConfig(Models.RecurrenceMonthly, datatypes.JSON(`{"day":15}`))
	require.NoError(t, err)
	assert.Equal(t, 15, cfg.DayOfMonth)

	cfg, err = ParseConfig(Models.RecurrenceMonthly, datatypes.JSON(`{"day_of_month":20,"day":15}`))
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.DayOfMonth)
}

func TestParseConfigRelativePattern(t *testing.T) {
	cfg, err := ParseConfig(Models.RecurrenceMonthly, datatypes.JSON(`{"ordinal":-1,"weekday":5}`))
	require.NoError(t, err)
	assert.Equal(t, -1, cfg.Ordinal)
	require.NotNil(t, cfg.Weekday)
	assert.Equal(t, time.Friday, *cfg.Weekday)
}

func TestParseConfigCustomFrequency(t *testing.T) {
	cfg, err := ParseConfig(Models.RecurrenceCustom, datatypes.JSON(`{"frequency":"weekly","interval":2,"weekdays":[0]}`))
	require.NoError(t, err)
	assert.Equal(t, Models.RecurrenceWeekly, cfg.Frequency)
	assert.Equal(t, 2, cfg.Interval)
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name           string
		recurrenceType string
		raw            string
	}{
		{"custom without config", Models.RecurrenceCustom, ""},
		{"custom unknown frequency", Models.RecurrenceCustom, `{"frequency":"hourly"}`},
		{"weekday out of range", Models.RecurrenceWeekly, `{"weekdays":[7]}`},
		{"negative interval", Models.RecurrenceDaily, `{"interval":-1}`},
		{"bad until date", Models.RecurrenceDaily, `{"until":"soon"}`},
		{"ordinal out of range", Models.RecurrenceMonthly, `{"ordinal":5,"weekday":1}`},
		{"ordinal without weekday", Models.RecurrenceMonthly, `{"ordinal":2}`},
		{"month out of range", Models.RecurrenceYearly, `{"month":13}`},
		{"not json", Models.RecurrenceDaily, `{nope`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var raw datatypes.JSON
			if tt.raw != "" {
				raw = datatypes.JSON(tt.raw)
			}
			_, err := ParseConfig(tt.recurrenceType, raw)
			var configErr *ConfigError
			require.ErrorAs(t, err, &configErr)
		})
	}
}
