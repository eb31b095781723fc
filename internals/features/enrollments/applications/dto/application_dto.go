// file: internals/features/enrollments/applications/dto/application_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	model "klubku_backend/internals/features/enrollments/applications/model"
)

/* =========================
   REQUEST
   ========================= */

// Apply membership (club/team). Relationship yang diminta ikut di body;
// final tetap keputusan reviewer saat approve.
type ApplyMembershipRequest struct {
	TargetID     uuid.UUID `json:"target_id" validate:"required"`
	Relationship string    `json:"relationship" validate:"required,oneof=admin staff coach player"`
	Note         *string   `json:"note,omitempty"`
}

func (r *ApplyMembershipRequest) Normalize() {
	r.Relationship = strings.ToLower(strings.TrimSpace(r.Relationship))
	if r.Note != nil {
		v := strings.TrimSpace(*r.Note)
		if v == "" {
			r.Note = nil
		} else {
			r.Note = &v
		}
	}
}

// Apply course/event. SessionIDs opsional: kosong = mulai dari sesi pertama
// yang belum lewat saat apply.
type ApplyEnrollmentRequest struct {
	TargetID   uuid.UUID   `json:"target_id" validate:"required"`
	SessionIDs []uuid.UUID `json:"session_ids,omitempty" validate:"omitempty,dive,required"`
}

// AdminDirectEnrollRequest: staff mendaftarkan subject langsung (skip pending)
// untuk course offline/non-recurring.
type AdminDirectEnrollRequest struct {
	SubjectID  uuid.UUID   `json:"subject_id" validate:"required"`
	TargetID   uuid.UUID   `json:"target_id" validate:"required"`
	SessionIDs []uuid.UUID `json:"session_ids,omitempty" validate:"omitempty,dive,required"`
}

// ApproveRequest: approval membership membawa relationship final (opsional;
// default relationship yang diminta subject).
type ApproveRequest struct {
	Relationship *string `json:"relationship,omitempty" validate:"omitempty,oneof=admin staff coach player"`
}

type RejectRequest struct {
	Reason string `json:"reason" validate:"required,min=3"`
}

func (r *RejectRequest) Normalize() { r.Reason = strings.TrimSpace(r.Reason) }

type ApplicationListQuery struct {
	Status *string `query:"status"`
	Kind   *string `query:"kind"`
}

/* =========================
   RESPONSE
   ========================= */

type ApplicationResponse struct {
	ApplicationID        uuid.UUID               `json:"application_id"`
	ApplicationClubID    uuid.UUID               `json:"application_club_id"`
	ApplicationKind      model.ApplicationKind   `json:"application_kind"`
	ApplicationSubjectID uuid.UUID               `json:"application_subject_id"`
	ApplicationTargetID  uuid.UUID               `json:"application_target_id"`
	ApplicationStatus    model.ApplicationStatus `json:"application_status"`

	ApplicationRejectReason *string        `json:"application_reject_reason,omitempty"`
	ApplicationRelationship *string        `json:"application_relationship,omitempty"`
	ApplicationRequested    datatypes.JSON `json:"application_requested_sessions,omitempty"`
	ApplicationReviewerID   *uuid.UUID     `json:"application_reviewer_id,omitempty"`

	ApplicationAppliedAt  time.Time  `json:"application_applied_at"`
	ApplicationApprovedAt *time.Time `json:"application_approved_at,omitempty"`
	ApplicationRejectedAt *time.Time `json:"application_rejected_at,omitempty"`
	ApplicationCanceledAt *time.Time `json:"application_canceled_at,omitempty"`
	ApplicationCreatedAt  time.Time  `json:"application_created_at"`
}

func FromApplicationModel(m *model.ApplicationModel) ApplicationResponse {
	return ApplicationResponse{
		ApplicationID:           m.ApplicationID,
		ApplicationClubID:       m.ApplicationClubID,
		ApplicationKind:         m.ApplicationKind,
		ApplicationSubjectID:    m.ApplicationSubjectID,
		ApplicationTargetID:     m.ApplicationTargetID,
		ApplicationStatus:       m.ApplicationStatus,
		ApplicationRejectReason: m.ApplicationRejectReason,
		ApplicationRelationship: m.ApplicationRelationship,
		ApplicationRequested:    m.ApplicationRequestedSessions,
		ApplicationReviewerID:   m.ApplicationReviewerID,
		ApplicationAppliedAt:    m.ApplicationAppliedAt,
		ApplicationApprovedAt:   m.ApplicationApprovedAt,
		ApplicationRejectedAt:   m.ApplicationRejectedAt,
		ApplicationCanceledAt:   m.ApplicationCanceledAt,
		ApplicationCreatedAt:    m.ApplicationCreatedAt,
	}
}

type SessionEnrollmentResponse struct {
	SessionEnrollmentID            uuid.UUID                     `json:"session_enrollment_id"`
	SessionEnrollmentApplicationID uuid.UUID                     `json:"session_enrollment_application_id"`
	SessionEnrollmentSessionID     uuid.UUID                     `json:"session_enrollment_session_id"`
	SessionEnrollmentFromTime      time.Time                     `json:"session_enrollment_from_time"`
	SessionEnrollmentToTime        time.Time                     `json:"session_enrollment_to_time"`
	SessionEnrollmentStatus        model.SessionEnrollmentStatus `json:"session_enrollment_status"`
	SessionEnrollmentIsMakeUp      bool                          `json:"session_enrollment_is_make_up"`
}

func FromSessionEnrollmentModel(m *model.SessionEnrollmentModel) SessionEnrollmentResponse {
	return SessionEnrollmentResponse{
		SessionEnrollmentID:            m.SessionEnrollmentID,
		SessionEnrollmentApplicationID: m.SessionEnrollmentApplicationID,
		SessionEnrollmentSessionID:     m.SessionEnrollmentSessionID,
		SessionEnrollmentFromTime:      m.SessionEnrollmentFromTime,
		SessionEnrollmentToTime:        m.SessionEnrollmentToTime,
		SessionEnrollmentStatus:        m.SessionEnrollmentStatus,
		SessionEnrollmentIsMakeUp:      m.SessionEnrollmentIsMakeUp,
	}
}

func FromSessionEnrollmentModels(ms []model.SessionEnrollmentModel) []SessionEnrollmentResponse {
	out := make([]SessionEnrollmentResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromSessionEnrollmentModel(&ms[i]))
	}
	return out
}

// ApproveEnrollmentResponse: application + sesi yang ter-materialize.
type ApproveEnrollmentResponse struct {
	Application ApplicationResponse         `json:"application"`
	Enrollments []SessionEnrollmentResponse `json:"session_enrollments"`
}
