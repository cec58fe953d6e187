package models

import "time"

type EmployeeLogin struct {
	ID         int64      `gorm:"primaryKey" json:"id"`
	Email      string     `gorm:"not null;index" json:"email"`
	Name       string     `json:"name"`
	LoginTime  *time.Time `json:"login_time"`
	LogoutTime *time.Time `json:"logout_time"`
}

func (EmployeeLogin) TableName() string {
	return "employee_login"
}

type UserPerm struct {
	ID              int64  `gorm:"primaryKey" json:"id"`
	Name            string `json:"name"`
	Email           string `gorm:"not null;index" json:"email"`
	Role            string `json:"role"`
	PermissionRoles string `json:"permission_roles"`
}

func (UserPerm) TableName() string {
	return "user_perms"
}
