// Package accessrepo reads the role-based access control tables and resolves
// a user id into the permission codes granted by the user's live roles.
package accessrepo

import "time"

type RoleDTO struct {
	ID          int64  `gorm:"primaryKey"`
	Name        string `gorm:"size:100;uniqueIndex;not null"`
	Description *string
	IsActive    bool `gorm:"not null;default:true"`
}

func (RoleDTO) TableName() string {
	return "roles"
}

type PermissionDTO struct {
	ID          int64  `gorm:"primaryKey"`
	Code        string `gorm:"size:100;uniqueIndex;not null"`
	Description *string
}

func (PermissionDTO) TableName() string {
	return "permissions"
}

type RolePermissionDTO struct {
	RoleID       int64 `gorm:"primaryKey"`
	PermissionID int64 `gorm:"primaryKey"`

	Role       *RoleDTO       `gorm:"foreignKey:RoleID;constraint:OnDelete:CASCADE"`
	Permission *PermissionDTO `gorm:"foreignKey:PermissionID;constraint:OnDelete:CASCADE"`
}

func (RolePermissionDTO) TableName() string {
	return "role_permissions"
}

// UserDTO is the part of the account table the engine reads: who to mail.
type UserDTO struct {
	ID       int64   `gorm:"primaryKey"`
	Username string  `gorm:"size:100;uniqueIndex;not null"`
	Email    string  `gorm:"size:255;not null;default:''"`
	FullName *string `gorm:"size:200"`
	IsActive bool    `gorm:"not null;default:true"`
}

func (UserDTO) TableName() string {
	return "app_users"
}

type UserRoleDTO struct {
	UserID     int64      `gorm:"primaryKey"`
	RoleID     int64      `gorm:"primaryKey"`
	AssignedAt time.Time  `gorm:"not null"`
	ExpiresAt  *time.Time `gorm:"index"`

	Role *RoleDTO `gorm:"foreignKey:RoleID;constraint:OnDelete:CASCADE"`
}

func (UserRoleDTO) TableName() string {
	return "user_roles"
}
