package Recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"Cadence/Models"
)

func makeTask(recurrenceType, config string, createdAt time.Time) Models.Task {
	task := Models.Task{
		Model:          gorm.Model{ID: 1, CreatedAt: createdAt},
		Name:           "test task",
		RecurrenceType: recurrenceType,
		Active:         true,
	}
	if config != "" {
		task.RecurrenceConfig = datatypes.JSON(config)
	}
	return task
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAppliesNoneOnlyOnCreationDay(t *testing.T) {
	task := makeTask(Models.RecurrenceNone, "", time.Date(2024, time.March, 5, 14, 30, 0, 0, time.UTC))

	assert.True(t, Applies(task, day(2024, time.March, 5), time.UTC))
	assert.False(t, Applies(task, day(2024, time.March, 4), time.UTC))
	assert.False(t, Applies(task, day(2024, time.March, 6), time.UTC))
}

func TestAppliesNoneNormalizesToTimezone(t *testing.T) {
	// Created 23:30 UTC on Jan 1, which is already Jan 2 at UTC+2.
	eet := time.FixedZone("EET", 2*3600)
	task := makeTask(Models.RecurrenceNone, "", time.Date(2024, time.January, 1, 23, 30, 0, 0, time.UTC))

	assert.True(t, Applies(task, time.Date(2024, time.January, 2, 0, 0, 0, 0, eet), eet))
	assert.False(t, Applies(task, time.Date(2024, time.January, 1, 0, 0, 0, 0, eet), eet))
}

func TestAppliesDailyInterval(t *testing.T) {
	task := makeTask(Models.RecurrenceDaily, `{"interval":2}`, day(2024, time.January, 1))

	assert.True(t, Applies(task, day(2024, time.January, 1), time.UTC))
	assert.False(t, Applies(task, day(2024, time.January, 2), time.UTC))
	assert.True(t, Applies(task, day(2024, time.January, 3), time.UTC))
	assert.False(t, Applies(task, day(2023, time.December, 31), time.UTC))
}

func TestAppliesWeeklyWeekdaySet(t *testing.T) {
	// Anchor Monday 2024-01-01, due Mondays and Wednesdays.
	task := makeTask(Models.RecurrenceWeekly, `{"weekdays":[1,3]}`, day(2024, time.January, 1))

	assert.True(t, Applies(task, day(2024, time.January, 1), time.UTC))  // Mon
	assert.False(t, Applies(task, day(2024, time.January, 2), time.UTC)) // Tue
	assert.True(t, Applies(task, day(2024, time.January, 3), time.UTC))  // Wed
	assert.True(t, Applies(task, day(2024, time.January, 8), time.UTC))  // next Mon
	assert.False(t, Applies(task, day(2024, time.January, 7), time.UTC)) // Sun
}

func TestAppliesWeeklyInterval(t *testing.T) {
	// Every other week, Mondays only.
	task := makeTask(Models.RecurrenceWeekly, `{"weekdays":[1],"interval":2}`, day(2024, time.January, 1))

	assert.True(t, Applies(task, day(2024, time.January, 1), time.UTC))
	assert.False(t, Applies(task, day(2024, time.January, 8), time.UTC))
	assert.True(t, Applies(task, day(2024, time.January, 15), time.UTC))
}

func TestAppliesWeeklyUntilDate(t *testing.T) {
	task := makeTask(Models.RecurrenceWeekly, `{"weekdays":[1,3],"until":"2024-01-03"}`, day(2024, time.January, 1))

	assert.True(t, Applies(task, day(2024, time.January, 3), time.UTC))
	assert.False(t, Applies(task, day(2024, time.January, 8), time.UTC))
}

func TestAppliesWeeklyOccurrenceCount(t *testing.T) {
	// Mondays and Wednesdays, three occurrences total: Jan 1, 3, 8.
	task := makeTask(Models.RecurrenceWeekly, `{"weekdays":[1,3],"count":3}`, day(2024, time.January, 1))

	assert.True(t, Applies(task, day(2024, time.January, 8), time.UTC))
	assert.False(t, Applies(task, day(2024, time.January, 10), time.UTC))
}

func TestAppliesMonthlyFixedDay(t *testing.T) {
	task := makeTask(Models.RecurrenceMonthly, `{"day_of_month":15}`, day(2024, time.January, 1))

	assert.True(t, Applies(task, day(2024, time.January, 15), time.UTC))
	assert.True(t, Applies(task, day(2024, time.February, 15), time.UTC))
	assert.False(t, Applies(task, day(2024, time.January, 16), time.UTC))
}

func TestAppliesMonthlyDay31SkipsShortMonths(t *testing.T) {
	task := makeTask(Models.RecurrenceMonthly, `{"day_of_month":31}`, day(2024, time.January, 1))

	occurrences, err := OccurrencesBetween(task, day(2024, time.January, 1), day(2024, time.April, 1), time.UTC)
	require.NoError(t, err)
	assert.Equal(t, []time.Time{day(2024, time.January, 31), day(2024, time.March, 31)}, occurrences)
}

func TestAppliesMonthlyFirstMonday(t *testing.T) {
	task := makeTask(Models.RecurrenceMonthly, `{"ordinal":1,"weekday":1}`, day(2024, time.January, 1))

	// January 2024 has five Mondays; exactly one date matches.
	occurrences, err := OccurrencesBetween(task, day(2024, time.January, 1), day(2024, time.February, 1), time.UTC)
	require.NoError(t, err)
	require.Len(t, occurrences, 1)
	assert.Equal(t, day(2024, time.January, 1), occurrences[0])

	assert.True(t, Applies(task, day(2024, time.February, 5), time.UTC))
	assert.False(t, Applies(task, day(2024, time.February, 12), time.UTC))
}

func TestAppliesMonthlyLastFriday(t *testing.T) {
	task := makeTask(Models.RecurrenceMonthly, `{"ordinal":-1,"weekday":5}`, day(2024, time.January, 1))

	assert.True(t, Applies(task, day(2024, time.January, 26), time.UTC))
	assert.False(t, Applies(task, day(2024, time.January, 19), time.UTC))
	assert.True(t, Applies(task, day(2024, time.February, 23), time.UTC))
}

func TestAppliesYearlyFixed(t *testing.T) {
	task := makeTask(Models.RecurrenceYearly, `{"month":6,"day_of_month":15}`, day(2023, time.January, 1))

	assert.True(t, Applies(task, day(2023, time.June, 15), time.UTC))
	assert.True(t, Applies(task, day(2024, time.June, 15), time.UTC))
	assert.False(t, Applies(task, day(2024, time.June, 14), time.UTC))
	assert.False(t, Applies(task, day(2024, time.July, 15), time.UTC))
}

func TestAppliesYearlyRelativeWeekday(t *testing.T) {
	// Second Tuesday of November.
	task := makeTask(Models.RecurrenceYearly, `{"month":11,"ordinal":2,"weekday":2}`, day(2023, time.January, 1))

	assert.True(t, Applies(task, day(2024, time.November, 12), time.UTC))
	assert.False(t, Applies(task, day(2024, time.November, 5), time.UTC))
}

func TestAppliesYearlyDefaultsToAnchor(t *testing.T) {
	task := makeTask(Models.RecurrenceYearly, `{}`, day(2023, time.April, 20))

	assert.True(t, Applies(task, day(2025, time.April, 20), time.UTC))
	assert.False(t, Applies(task, day(2025, time.April, 21), time.UTC))
}

func TestAppliesCustomResolvesFrequency(t *testing.T) {
	task := makeTask(Models.RecurrenceCustom, `{"frequency":"weekly","weekdays":[5]}`, day(2024, time.January, 1))

	assert.True(t, Applies(task, day(2024, time.January, 5), time.UTC))
	assert.False(t, Applies(task, day(2024, time.January, 4), time.UTC))
}

func TestAppliesMalformedCustomNeverApplies(t *testing.T) {
	missing := makeTask(Models.RecurrenceCustom, "", day(2024, time.January, 1))
	garbage := makeTask(Models.RecurrenceCustom, `{"frequency":"fortnightly"}`, day(2024, time.January, 1))

	for d := 0; d < 14; d++ {
		assert.False(t, Applies(missing, day(2024, time.January, 1+d), time.UTC))
		assert.False(t, Applies(garbage, day(2024, time.January, 1+d), time.UTC))
	}
}

func TestOccurrencesBetweenWindow(t *testing.T) {
	task := makeTask(Models.RecurrenceDaily, `{"interval":3}`, day(2024, time.January, 1))

	occurrences, err := OccurrencesBetween(task, day(2024, time.January, 5), day(2024, time.January, 15), time.UTC)
	require.NoError(t, err)
	assert.Equal(t, []time.Time{
		day(2024, time.January, 7),
		day(2024, time.January, 10),
		day(2024, time.January, 13),
	}, occurrences)
}

func TestOccurrencesBeforeAnchorEmpty(t *testing.T) {
	task := makeTask(Models.RecurrenceDaily, "", day(2024, time.June, 1))

	occurrences, err := OccurrencesBetween(task, day(2024, time.May, 1), day(2024, time.May, 31), time.UTC)
	require.NoError(t, err)
	assert.Empty(t, occurrences)
}
