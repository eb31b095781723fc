// file: internals/features/users/user/model/user_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserModel struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`
	UserName string    `gorm:"type:varchar(50);not null;uniqueIndex:ux_users_user_name;column:user_name" json:"user_name"`
	FullName *string   `gorm:"type:varchar(100);column:full_name" json:"full_name,omitempty"`
	Email    string    `gorm:"type:varchar(255);not null;uniqueIndex:ux_users_email;column:email" json:"email"`
	Password string    `gorm:"type:varchar(250);not null;column:password" json:"-"`

	// owner = role global lintas club (operator platform); authority di dalam
	// club selalu dari club_members, bukan dari sini
	Role string `gorm:"type:varchar(20);not null;default:'user';column:role" json:"role"`

	IsActive bool `gorm:"not null;default:true;column:is_active" json:"is_active"`

	CreatedAt time.Time      `gorm:"not null;default:now();column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now();column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

func (UserModel) TableName() string { return "users" }

// UserDeviceModel: registrasi push token per (user, device). Upsert
// idempotent; flag "sudah register" hidup di row ini, bukan di memori proses.
type UserDeviceModel struct {
	UserDeviceID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:user_device_id" json:"user_device_id"`
	UserDeviceUserID   uuid.UUID `gorm:"type:uuid;not null;column:user_device_user_id;uniqueIndex:ux_user_devices_user_device" json:"user_device_user_id"`
	UserDeviceDeviceID string    `gorm:"type:varchar(191);not null;column:user_device_device_id;uniqueIndex:ux_user_devices_user_device" json:"user_device_device_id"`

	UserDevicePushToken    string    `gorm:"type:text;not null;column:user_device_push_token" json:"user_device_push_token"`
	UserDevicePlatform     string    `gorm:"type:varchar(16);not null;column:user_device_platform" json:"user_device_platform"`
	UserDeviceRegisteredAt time.Time `gorm:"not null;default:now();column:user_device_registered_at" json:"user_device_registered_at"`

	UserDeviceCreatedAt time.Time `gorm:"not null;default:now();column:user_device_created_at;autoCreateTime" json:"user_device_created_at"`
	UserDeviceUpdatedAt time.Time `gorm:"not null;default:now();column:user_device_updated_at;autoUpdateTime" json:"user_device_updated_at"`
}

func (UserDeviceModel) TableName() string { return "user_devices" }
