// file: internals/features/leaves/dto/leave_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "klubku_backend/internals/features/leaves/model"
)

/* =========================
   REQUEST
   ========================= */

type RequestLeaveRequest struct {
	EnrollmentID uuid.UUID `json:"enrollment_id" validate:"required"`
	Reason       *string   `json:"reason,omitempty"`
}

func (r *RequestLeaveRequest) Normalize() {
	if r.Reason != nil {
		v := strings.TrimSpace(*r.Reason)
		if v == "" {
			r.Reason = nil
		} else {
			r.Reason = &v
		}
	}
}

type ApproveLeaveRequest struct {
	MakeUpSessionID *uuid.UUID `json:"make_up_session_id,omitempty"`
}

type RejectLeaveRequest struct {
	Reason string `json:"reason" validate:"required,min=3"`
}

func (r *RejectLeaveRequest) Normalize() { r.Reason = strings.TrimSpace(r.Reason) }

/* =========================
   RESPONSE
   ========================= */

type LeaveResponse struct {
	LeaveRequestID           uuid.UUID         `json:"leave_request_id"`
	LeaveRequestCourseID     uuid.UUID         `json:"leave_request_course_id"`
	LeaveRequestSessionID    uuid.UUID         `json:"leave_request_session_id"`
	LeaveRequestEnrollmentID uuid.UUID         `json:"leave_request_enrollment_id"`
	LeaveRequestSubjectID    uuid.UUID         `json:"leave_request_subject_id"`
	LeaveRequestStatus       model.LeaveStatus `json:"leave_request_status"`
	LeaveRequestReason       *string           `json:"leave_request_reason,omitempty"`

	LeaveRequestMakeUpSessionID    *uuid.UUID `json:"leave_request_make_up_session_id,omitempty"`
	LeaveRequestMakeUpEnrollmentID *uuid.UUID `json:"leave_request_make_up_enrollment_id,omitempty"`

	LeaveRequestResolverID  *uuid.UUID `json:"leave_request_resolver_id,omitempty"`
	LeaveRequestRejectNote  *string    `json:"leave_request_reject_note,omitempty"`
	LeaveRequestRequestedAt time.Time  `json:"leave_request_requested_at"`
	LeaveRequestResolvedAt  *time.Time `json:"leave_request_resolved_at,omitempty"`
}

func FromLeaveModel(m *model.LeaveRequestModel) LeaveResponse {
	return LeaveResponse{
		LeaveRequestID:                 m.LeaveRequestID,
		LeaveRequestCourseID:           m.LeaveRequestCourseID,
		LeaveRequestSessionID:          m.LeaveRequestSessionID,
		LeaveRequestEnrollmentID:       m.LeaveRequestEnrollmentID,
		LeaveRequestSubjectID:          m.LeaveRequestSubjectID,
		LeaveRequestStatus:             m.LeaveRequestStatus,
		LeaveRequestReason:             m.LeaveRequestReason,
		LeaveRequestMakeUpSessionID:    m.LeaveRequestMakeUpSessionID,
		LeaveRequestMakeUpEnrollmentID: m.LeaveRequestMakeUpEnrollmentID,
		LeaveRequestResolverID:         m.LeaveRequestResolverID,
		LeaveRequestRejectNote:         m.LeaveRequestRejectNote,
		LeaveRequestRequestedAt:        m.LeaveRequestRequestedAt,
		LeaveRequestResolvedAt:         m.LeaveRequestResolvedAt,
	}
}
