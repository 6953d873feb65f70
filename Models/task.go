package Models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Recurrence types a task can carry. The shape of RecurrenceConfig depends
// on this value; see the Recurrence package for the decoded form.
const (
	RecurrenceNone    = "none"
	RecurrenceDaily   = "daily"
	RecurrenceWeekly  = "weekly"
	RecurrenceMonthly = "monthly"
	RecurrenceYearly  = "yearly"
	RecurrenceCustom  = "custom"
)

type Task struct {
	gorm.Model
	Name             string         `json:"name"`
	Category         string         `json:"category"`
	Benchmark        *float64       `json:"benchmark"`
	RecurrenceType   string         `json:"recurrence_type" gorm:"default:none"`
	RecurrenceConfig datatypes.JSON `json:"recurrence_config"`
	CreatedByID      uint           `json:"created_by_id"`
	Active           bool           `json:"active" gorm:"default:true"`
}

func (Task) TableName() string {
	return "tasks"
}

// TaskAssignment binds a task to an assignee. One assignment yields one
// occurrence per applicable date.
type TaskAssignment struct {
	gorm.Model
	TaskID       uint `json:"task_id" gorm:"index;not null"`
	AssigneeID   uint `json:"assignee_id" gorm:"index;not null"`
	AssignedByID uint `json:"assigned_by_id"`
	Delegated    bool `json:"delegated" gorm:"default:false"`

	Task Task `json:"task" gorm:"foreignKey:TaskID"`
}

func (TaskAssignment) TableName() string {
	return "task_assignments"
}
