// file: internals/features/activities/events/dto/event_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "klubku_backend/internals/features/activities/events/model"
)

type CreateEventRequest struct {
	EventTitle       string `json:"event_title" validate:"required,min=3,max=255"`
	EventSlug        string `json:"event_slug" validate:"required,min=3,max=100"`
	EventDescription string `json:"event_description"`
	EventLocation    string `json:"event_location" validate:"max=255"`
	EventCapacity    int    `json:"event_capacity" validate:"gte=0"`
}

func (r *CreateEventRequest) Normalize() {
	r.EventTitle = strings.TrimSpace(r.EventTitle)
	r.EventSlug = strings.ToLower(strings.TrimSpace(r.EventSlug))
	r.EventDescription = strings.TrimSpace(r.EventDescription)
	r.EventLocation = strings.TrimSpace(r.EventLocation)
}

type CreateEventSessionRequest struct {
	EventSessionTitle     string    `json:"event_session_title" validate:"required,max=255"`
	EventSessionStartTime time.Time `json:"event_session_start_time" validate:"required"`
	EventSessionEndTime   time.Time `json:"event_session_end_time" validate:"required,gtfield=EventSessionStartTime"`
	EventSessionLocation  string    `json:"event_session_location" validate:"max=255"`
}

type EventResponse struct {
	EventID            uuid.UUID `json:"event_id"`
	EventClubID        uuid.UUID `json:"event_club_id"`
	EventTitle         string    `json:"event_title"`
	EventSlug          string    `json:"event_slug"`
	EventDescription   string    `json:"event_description,omitempty"`
	EventLocation      string    `json:"event_location,omitempty"`
	EventCapacity      int       `json:"event_capacity"`
	EventApprovedCount int       `json:"event_approved_count"`
	EventCreatedAt     time.Time `json:"event_created_at"`
}

func FromEventModel(m *model.EventModel) EventResponse {
	return EventResponse{
		EventID:            m.EventID,
		EventClubID:        m.EventClubID,
		EventTitle:         m.EventTitle,
		EventSlug:          m.EventSlug,
		EventDescription:   m.EventDescription,
		EventLocation:      m.EventLocation,
		EventCapacity:      m.EventCapacity,
		EventApprovedCount: m.EventApprovedCount,
		EventCreatedAt:     m.EventCreatedAt,
	}
}
