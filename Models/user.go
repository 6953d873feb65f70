package Models

import "gorm.io/gorm"

// Permission levels: 1 = member, 2 = manager, 3 = admin.
const (
	PermissionMember  = 1
	PermissionManager = 2
	PermissionAdmin   = 3
)

type User struct {
	gorm.Model
	Name       string `json:"name"`
	Email      string `json:"email" gorm:"uniqueIndex"`
	Password   []byte `json:"-"`
	Permission int    `json:"permission" gorm:"default:1"`
	IsApproved int    `json:"is_approved" gorm:"default:0"`
}
