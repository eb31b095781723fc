package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EventModel struct {
	EventID          uuid.UUID `gorm:"column:event_id;type:uuid;default:gen_random_uuid();primaryKey" json:"event_id"`
	EventClubID      uuid.UUID `gorm:"column:event_club_id;type:uuid;not null;index:idx_events_club_id" json:"event_club_id"`
	EventTitle       string    `gorm:"column:event_title;type:varchar(255);not null" json:"event_title"`
	EventSlug        string    `gorm:"column:event_slug;type:varchar(100);not null" json:"event_slug"`
	EventDescription string    `gorm:"column:event_description;type:text" json:"event_description"`
	EventLocation    string    `gorm:"column:event_location;type:varchar(255)" json:"event_location"`

	// kapasitas approved application event ini
	EventCapacity      int `gorm:"column:event_capacity;not null;default:0" json:"event_capacity"`
	EventApprovedCount int `gorm:"column:event_approved_count;not null;default:0;check:event_approved_count >= 0" json:"event_approved_count"`

	EventCreatedBy *uuid.UUID `gorm:"column:event_created_by;type:uuid" json:"event_created_by"` // boleh null

	EventCreatedAt time.Time      `gorm:"column:event_created_at;type:timestamptz;autoCreateTime" json:"event_created_at"`
	EventUpdatedAt time.Time      `gorm:"column:event_updated_at;type:timestamptz;autoUpdateTime" json:"event_updated_at"`
	EventDeletedAt gorm.DeletedAt `gorm:"column:event_deleted_at;type:timestamptz;index" json:"event_deleted_at,omitempty"`
}

func (EventModel) TableName() string { return "events" }

// HasApproveCapacity: masih ada slot approved? Kapasitas 0 = tanpa batas.
func (m *EventModel) HasApproveCapacity() bool {
	return m.EventCapacity <= 0 || m.EventApprovedCount < m.EventCapacity
}

type EventSessionModel struct {
	EventSessionID      uuid.UUID `gorm:"column:event_session_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"event_session_id"`
	EventSessionEventID uuid.UUID `gorm:"column:event_session_event_id;type:uuid;not null;index:idx_event_sessions_event" json:"event_session_event_id"`
	EventSessionClubID  uuid.UUID `gorm:"column:event_session_club_id;type:uuid;not null" json:"event_session_club_id"`
	EventSessionTitle   string    `gorm:"column:event_session_title;type:varchar(255);not null" json:"event_session_title"`

	EventSessionStartTime time.Time `gorm:"column:event_session_start_time;not null" json:"event_session_start_time"`
	EventSessionEndTime   time.Time `gorm:"column:event_session_end_time;not null" json:"event_session_end_time"`
	EventSessionLocation  string    `gorm:"column:event_session_location;type:varchar(255)" json:"event_session_location"`

	EventSessionCreatedAt time.Time `gorm:"column:event_session_created_at;autoCreateTime" json:"event_session_created_at"`
	EventSessionUpdatedAt time.Time `gorm:"column:event_session_updated_at;autoUpdateTime" json:"event_session_updated_at"`
}

func (EventSessionModel) TableName() string { return "event_sessions" }
