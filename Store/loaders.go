package Store

import (
	"Cadence/Calendar"
	"Cadence/Models"
	"Cadence/Scheduler"

	"gorm.io/gorm"
)

// LoadAgendaInput preloads everything the scheduling engine needs for one
// person: assignments with their tasks, completion records, and the four
// calendar sources. The engine itself stays free of I/O.
func LoadAgendaInput(db *gorm.DB, userID uint) (Scheduler.AgendaInput, error) {
	input := Scheduler.AgendaInput{Location: Models.OrgLocation}

	if err := db.Preload("Task").Where("assignee_id = ?", userID).Find(&input.Assignments).Error; err != nil {
		return input, err
	}

	if len(input.Assignments) > 0 {
		ids := make([]uint, 0, len(input.Assignments))
		for _, a := range input.Assignments {
			ids = append(ids, a.ID)
		}
		if err := db.Where("assignment_id IN ?", ids).Find(&input.Records).Error; err != nil {
			return input, err
		}
	}

	calendar, err := LoadDayData(db, userID)
	if err != nil {
		return input, err
	}
	input.Calendar = calendar

	return input, nil
}

// LoadDayData preloads the calendar context CalendarPolicy evaluates over.
func LoadDayData(db *gorm.DB, userID uint) (Calendar.DayData, error) {
	var data Calendar.DayData
	if err := db.Find(&data.PublicHolidays).Error; err != nil {
		return data, err
	}
	if err := db.Find(&data.OrgWeeklyOffs).Error; err != nil {
		return data, err
	}
	if err := db.Where("user_id = ?", userID).Find(&data.PersonWeeklyOff).Error; err != nil {
		return data, err
	}
	if err := db.Where("user_id = ?", userID).Find(&data.PersonalLeaves).Error; err != nil {
		return data, err
	}
	return data, nil
}

// LoadStatsInput preloads the snapshot StatsAggregator rolls up.
func LoadStatsInput(db *gorm.DB, userID uint) (Scheduler.StatsInput, error) {
	agenda, err := LoadAgendaInput(db, userID)
	if err != nil {
		return Scheduler.StatsInput{}, err
	}
	return Scheduler.StatsInput{
		Assignments: agenda.Assignments,
		Records:     agenda.Records,
		Leaves:      agenda.Calendar.PersonalLeaves,
		Location:    agenda.Location,
	}, nil
}
