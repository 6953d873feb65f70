package Models

import "gorm.io/gorm"

// PublicHoliday is an org-wide non-working date.
type PublicHoliday struct {
	gorm.Model
	Name string `json:"name"`
	Date string `json:"date" gorm:"type:varchar(10);index;not null"`
}

// OrgWeeklyOff marks a weekday (0=Sunday..6=Saturday) as the organization
// default day off.
type OrgWeeklyOff struct {
	gorm.Model
	Weekday int `json:"weekday" gorm:"uniqueIndex;not null"`
}

// PersonWeeklyOff overrides the org weekly-offs for one person. When any
// override rows exist for a person they replace the org defaults entirely,
// they do not merge with them.
type PersonWeeklyOff struct {
	gorm.Model
	UserID  uint `json:"user_id" gorm:"index;not null"`
	Weekday int  `json:"weekday" gorm:"not null"`
}

// PersonalHoliday is a leave range. Only approved ranges count as
// non-working days.
type PersonalHoliday struct {
	gorm.Model
	UserID    uint   `json:"user_id" gorm:"index;not null"`
	StartDate string `json:"start_date" gorm:"type:varchar(10);not null"`
	EndDate   string `json:"end_date" gorm:"type:varchar(10);not null"`
	Reason    string `json:"reason"`
	Status    string `json:"status" gorm:"type:varchar(10);default:pending"`
}

const (
	LeavePending  = "pending"
	LeaveApproved = "approved"
	LeaveRejected = "rejected"
)
