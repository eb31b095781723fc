// file: internals/features/activities/courses/dto/course_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	model "klubku_backend/internals/features/activities/courses/model"
)

type CreateCourseRequest struct {
	CourseTitle                  string     `json:"course_title" validate:"required,min=3,max=255"`
	CourseSlug                   string     `json:"course_slug" validate:"required,min=3,max=100"`
	CourseCoachID                *uuid.UUID `json:"course_coach_id,omitempty"`
	CourseCapacity               int        `json:"course_capacity" validate:"gte=0"`
	CourseMinConsecutiveSessions int        `json:"course_min_consecutive_sessions" validate:"gte=1"`
	CourseIsRecurring            bool       `json:"course_is_recurring"`
	CourseRecurringWeekdays      []int64    `json:"course_recurring_weekdays,omitempty" validate:"omitempty,dive,gte=0,lte=6"`
	CourseAllowsDirectEnroll     bool       `json:"course_allows_direct_enroll"`
}

func (r *CreateCourseRequest) Normalize() {
	r.CourseTitle = strings.TrimSpace(r.CourseTitle)
	r.CourseSlug = strings.ToLower(strings.TrimSpace(r.CourseSlug))
}

type CreateCourseSessionRequest struct {
	CourseSessionTitle     string    `json:"course_session_title" validate:"max=255"`
	CourseSessionStartTime time.Time `json:"course_session_start_time" validate:"required"`
	CourseSessionEndTime   time.Time `json:"course_session_end_time" validate:"required,gtfield=CourseSessionStartTime"`
	CourseSessionLocation  string    `json:"course_session_location" validate:"max=255"`
	CourseSessionCapacity  int       `json:"course_session_capacity" validate:"gte=0"`
}

type CourseResponse struct {
	CourseID                     uuid.UUID  `json:"course_id"`
	CourseClubID                 uuid.UUID  `json:"course_club_id"`
	CourseTitle                  string     `json:"course_title"`
	CourseSlug                   string     `json:"course_slug"`
	CourseCoachID                *uuid.UUID `json:"course_coach_id,omitempty"`
	CourseCapacity               int        `json:"course_capacity"`
	CourseApprovedCount          int        `json:"course_approved_count"`
	CourseMinConsecutiveSessions int        `json:"course_min_consecutive_sessions"`
	CourseIsRecurring            bool       `json:"course_is_recurring"`
	CourseRecurringWeekdays      []int64    `json:"course_recurring_weekdays,omitempty"`
	CourseAllowsDirectEnroll     bool       `json:"course_allows_direct_enroll"`
	CourseCreatedAt              time.Time  `json:"course_created_at"`
}

func FromCourseModel(m *model.CourseModel) CourseResponse {
	return CourseResponse{
		CourseID:                     m.CourseID,
		CourseClubID:                 m.CourseClubID,
		CourseTitle:                  m.CourseTitle,
		CourseSlug:                   m.CourseSlug,
		CourseCoachID:                m.CourseCoachID,
		CourseCapacity:               m.CourseCapacity,
		CourseApprovedCount:          m.CourseApprovedCount,
		CourseMinConsecutiveSessions: m.CourseMinConsecutiveSessions,
		CourseIsRecurring:            m.CourseIsRecurring,
		CourseRecurringWeekdays:      []int64(m.CourseRecurringWeekdays),
		CourseAllowsDirectEnroll:     m.CourseAllowsDirectEnroll,
		CourseCreatedAt:              m.CourseCreatedAt,
	}
}

type CourseSessionResponse struct {
	CourseSessionID            uuid.UUID `json:"course_session_id"`
	CourseSessionCourseID      uuid.UUID `json:"course_session_course_id"`
	CourseSessionTitle         string    `json:"course_session_title,omitempty"`
	CourseSessionStartTime     time.Time `json:"course_session_start_time"`
	CourseSessionEndTime       time.Time `json:"course_session_end_time"`
	CourseSessionLocation      string    `json:"course_session_location,omitempty"`
	CourseSessionEnrolledCount int       `json:"course_session_enrolled_count"`
	CourseSessionCapacity      int       `json:"course_session_capacity"`
}

func FromCourseSessionModel(m *model.CourseSessionModel) CourseSessionResponse {
	return CourseSessionResponse{
		CourseSessionID:            m.CourseSessionID,
		CourseSessionCourseID:      m.CourseSessionCourseID,
		CourseSessionTitle:         m.CourseSessionTitle,
		CourseSessionStartTime:     m.CourseSessionStartTime,
		CourseSessionEndTime:       m.CourseSessionEndTime,
		CourseSessionLocation:      m.CourseSessionLocation,
		CourseSessionEnrolledCount: m.CourseSessionEnrolledCount,
		CourseSessionCapacity:      m.CourseSessionCapacity,
	}
}

func ToRecurringWeekdays(in []int64) pq.Int64Array { return pq.Int64Array(in) }
