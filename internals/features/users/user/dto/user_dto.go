// file: internals/features/users/user/dto/user_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "klubku_backend/internals/features/users/user/model"
)

/* =========================
   REQUEST
   ========================= */

type RegisterRequest struct {
	UserName string  `json:"user_name" validate:"required,min=3,max=50"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	FullName *string `json:"full_name,omitempty" validate:"omitempty,max=100"`
}

func (r *RegisterRequest) Normalize() {
	r.UserName = strings.ToLower(strings.TrimSpace(r.UserName))
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if r.FullName != nil {
		v := strings.TrimSpace(*r.FullName)
		if v == "" {
			r.FullName = nil
		} else {
			r.FullName = &v
		}
	}
}

type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"` // user_name atau email
	Password   string `json:"password" validate:"required"`
}

func (r *LoginRequest) Normalize() { r.Identifier = strings.ToLower(strings.TrimSpace(r.Identifier)) }

// RegisterDeviceRequest: upsert idempotent per (user, device).
type RegisterDeviceRequest struct {
	DeviceID  string `json:"device_id" validate:"required,max=191"`
	PushToken string `json:"push_token" validate:"required"`
	Platform  string `json:"platform" validate:"required,oneof=android ios web"`
}

func (r *RegisterDeviceRequest) Normalize() {
	r.DeviceID = strings.TrimSpace(r.DeviceID)
	r.PushToken = strings.TrimSpace(r.PushToken)
	r.Platform = strings.ToLower(strings.TrimSpace(r.Platform))
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

/* =========================
   RESPONSE
   ========================= */

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	UserName  string    `json:"user_name"`
	FullName  *string   `json:"full_name,omitempty"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func FromUserModel(m *model.UserModel) UserResponse {
	return UserResponse{
		ID:        m.ID,
		UserName:  m.UserName,
		FullName:  m.FullName,
		Email:     m.Email,
		Role:      m.Role,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
	}
}

type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}
