package model

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// SysUser 后台账号
type SysUser struct {
	BaseModel
	Email        string `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:255;not null"` // bcrypt
	Name         string `gorm:"size:100;not null"`
	Role         string `gorm:"size:20;default:'user'"`
	LastLoginAt  *time.Time
}

func (SysUser) TableName() string {
	return "sys_users"
}

// IsAdmin 是否为管理员
func (u *SysUser) IsAdmin() bool {
	return u.Role == RoleAdmin
}
