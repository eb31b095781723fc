// file: internals/features/payments/dto/payment_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	model "klubku_backend/internals/features/payments/model"
)

/* =========================
   REQUEST
   ========================= */

// SubmitEvidenceRequest: field form non-file yang menempel di multipart
// upload bukti transfer.
type SubmitEvidenceRequest struct {
	Amount   *int64  `json:"amount" form:"amount" validate:"omitempty,gt=0"`
	BankName *string `json:"bank_name" form:"bank_name"`
	Note     *string `json:"note" form:"note"`
}

func (r *SubmitEvidenceRequest) Normalize() {
	if r.BankName != nil {
		v := strings.TrimSpace(*r.BankName)
		if v == "" {
			r.BankName = nil
		} else {
			r.BankName = &v
		}
	}
	if r.Note != nil {
		v := strings.TrimSpace(*r.Note)
		if v == "" {
			r.Note = nil
		} else {
			r.Note = &v
		}
	}
}

// ReviewRequest: keputusan reviewer atas evidence versi tertentu.
// EvidenceVersion wajib supaya keputusan atas bukti lama otomatis gugur.
type ReviewRequest struct {
	Decision        string  `json:"decision" validate:"required,oneof=approve reject"`
	EvidenceVersion int     `json:"evidence_version" validate:"required,gte=1"`
	Reason          *string `json:"reason,omitempty"`
}

func (r *ReviewRequest) Normalize() {
	r.Decision = strings.ToLower(strings.TrimSpace(r.Decision))
	if r.Reason != nil {
		v := strings.TrimSpace(*r.Reason)
		if v == "" {
			r.Reason = nil
		} else {
			r.Reason = &v
		}
	}
}

type SetManualRequest struct {
	Target string `json:"target" validate:"required,oneof=paid unpaid"`
}

func (r *SetManualRequest) Normalize() { r.Target = strings.ToLower(strings.TrimSpace(r.Target)) }

/* =========================
   RESPONSE
   ========================= */

type PaymentResponse struct {
	PaymentID            uuid.UUID           `json:"payment_id"`
	PaymentApplicationID uuid.UUID           `json:"payment_application_id"`
	PaymentStatus        model.PaymentStatus `json:"payment_status"`

	PaymentEvidenceURL     *string        `json:"payment_evidence_url,omitempty"`
	PaymentEvidencePayload datatypes.JSON `json:"payment_evidence_payload,omitempty"`
	PaymentEvidenceVersion int            `json:"payment_evidence_version"`

	PaymentRejectReason *string    `json:"payment_reject_reason,omitempty"`
	PaymentReviewerID   *uuid.UUID `json:"payment_reviewer_id,omitempty"`

	PaymentSubmittedAt *time.Time `json:"payment_submitted_at,omitempty"`
	PaymentReviewedAt  *time.Time `json:"payment_reviewed_at,omitempty"`
	PaymentRefundedAt  *time.Time `json:"payment_refunded_at,omitempty"`
}

func FromPaymentModel(m *model.PaymentModel) PaymentResponse {
	return PaymentResponse{
		PaymentID:              m.PaymentID,
		PaymentApplicationID:   m.PaymentApplicationID,
		PaymentStatus:          m.PaymentStatus,
		PaymentEvidenceURL:     m.PaymentEvidenceURL,
		PaymentEvidencePayload: m.PaymentEvidencePayload,
		PaymentEvidenceVersion: m.PaymentEvidenceVersion,
		PaymentRejectReason:    m.PaymentRejectReason,
		PaymentReviewerID:      m.PaymentReviewerID,
		PaymentSubmittedAt:     m.PaymentSubmittedAt,
		PaymentReviewedAt:      m.PaymentReviewedAt,
		PaymentRefundedAt:      m.PaymentRefundedAt,
	}
}
