// file: internals/features/payments/model/payment_model.go
package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* ======================================================
   ENUM mapping (Postgres: payment_status)
====================================================== */

type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRejected PaymentStatus = "rejected"
	PaymentRefund   PaymentStatus = "refund"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentUnpaid, PaymentPending, PaymentPaid, PaymentRejected, PaymentRefund:
		return true
	}
	return false
}

// Refund = terminal; tidak ada jalan keluar lagi, termasuk manual override.
func (s PaymentStatus) Terminal() bool { return s == PaymentRefund }

var (
	ErrIllegalSourceState = errors.New("payment status tidak mengizinkan operasi ini")
	ErrStaleEvidence      = errors.New("evidence sudah diganti; review harus re-fetch dulu")
	ErrReasonRequired     = errors.New("reject reason wajib diisi")
	ErrManualTarget       = errors.New("manual override hanya boleh ke paid/unpaid")
)

/* ======================================================
   Model: application_payments (1:1 dengan applications)
====================================================== */

type PaymentModel struct {
	PaymentID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:payment_id" json:"payment_id"`

	PaymentClubID        uuid.UUID `gorm:"type:uuid;not null;column:payment_club_id" json:"payment_club_id"`
	PaymentApplicationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_payments_application;column:payment_application_id" json:"payment_application_id"`

	PaymentStatus PaymentStatus `gorm:"type:payment_status;not null;default:'unpaid';column:payment_status" json:"payment_status"`

	// bukti transfer: URL gambar + payload bebas (nominal, bank, catatan)
	PaymentEvidenceURL     *string        `gorm:"type:text;column:payment_evidence_url" json:"payment_evidence_url,omitempty"`
	PaymentEvidencePayload datatypes.JSON `gorm:"column:payment_evidence_payload" json:"payment_evidence_payload,omitempty"`

	// versi naik setiap submit; review membawa versi yang dia lihat supaya
	// keputusan atas evidence lama otomatis gugur
	PaymentEvidenceVersion int `gorm:"not null;default:0;column:payment_evidence_version" json:"payment_evidence_version"`

	PaymentRejectReason *string    `gorm:"type:text;column:payment_reject_reason" json:"payment_reject_reason,omitempty"`
	PaymentReviewerID   *uuid.UUID `gorm:"type:uuid;column:payment_reviewer_id" json:"payment_reviewer_id,omitempty"`

	PaymentSubmittedAt *time.Time `gorm:"column:payment_submitted_at" json:"payment_submitted_at,omitempty"`
	PaymentReviewedAt  *time.Time `gorm:"column:payment_reviewed_at" json:"payment_reviewed_at,omitempty"`
	PaymentRefundedAt  *time.Time `gorm:"column:payment_refunded_at" json:"payment_refunded_at,omitempty"`

	PaymentCreatedAt time.Time      `gorm:"not null;default:now();column:payment_created_at;autoCreateTime" json:"payment_created_at"`
	PaymentUpdatedAt time.Time      `gorm:"not null;default:now();column:payment_updated_at;autoUpdateTime" json:"payment_updated_at"`
	PaymentDeletedAt gorm.DeletedAt `gorm:"column:payment_deleted_at;index" json:"payment_deleted_at,omitempty"`
}

func (PaymentModel) TableName() string { return "application_payments" }

/* ======================================================
   Guard transisi (pure)
====================================================== */

// CanSubmitEvidence: submit hanya legal dari unpaid|rejected. Dipakai
// sebelum side effect eksternal (simpan file) supaya submit yang bakal
// ditolak tidak meninggalkan file.
func (m *PaymentModel) CanSubmitEvidence() bool {
	return m.PaymentStatus == PaymentUnpaid || m.PaymentStatus == PaymentRejected
}

// SubmitEvidence: unpaid|rejected → pending. Naikkan versi evidence supaya
// review yang masih memegang versi lama gugur.
func (m *PaymentModel) SubmitEvidence(url string, payload datatypes.JSON, now time.Time) error {
	if !m.CanSubmitEvidence() {
		return ErrIllegalSourceState
	}
	m.PaymentStatus = PaymentPending
	m.PaymentEvidenceURL = &url
	m.PaymentEvidencePayload = payload
	m.PaymentEvidenceVersion++
	m.PaymentRejectReason = nil
	t := now
	m.PaymentSubmittedAt = &t
	return nil
}

// ReviewApprove: pending → paid, hanya untuk versi evidence yang sedang berlaku.
func (m *PaymentModel) ReviewApprove(reviewerID uuid.UUID, evidenceVersion int, now time.Time) error {
	if m.PaymentStatus != PaymentPending {
		return ErrIllegalSourceState
	}
	if evidenceVersion != m.PaymentEvidenceVersion {
		return ErrStaleEvidence
	}
	m.PaymentStatus = PaymentPaid
	m.PaymentReviewerID = &reviewerID
	t := now
	m.PaymentReviewedAt = &t
	return nil
}

// ReviewReject: pending → rejected, reason wajib, evidence tetap disimpan.
func (m *PaymentModel) ReviewReject(reviewerID uuid.UUID, evidenceVersion int, reason string, now time.Time) error {
	if reason == "" {
		return ErrReasonRequired
	}
	if m.PaymentStatus != PaymentPending {
		return ErrIllegalSourceState
	}
	if evidenceVersion != m.PaymentEvidenceVersion {
		return ErrStaleEvidence
	}
	m.PaymentStatus = PaymentRejected
	m.PaymentReviewerID = &reviewerID
	m.PaymentRejectReason = &reason
	t := now
	m.PaymentReviewedAt = &t
	return nil
}

// SetManually: bypass untuk rekonsiliasi cash/offline. Legal dari semua state
// non-terminal, target hanya paid/unpaid.
func (m *PaymentModel) SetManually(reviewerID uuid.UUID, target PaymentStatus, now time.Time) error {
	if target != PaymentPaid && target != PaymentUnpaid {
		return ErrManualTarget
	}
	if m.PaymentStatus.Terminal() {
		return ErrIllegalSourceState
	}
	m.PaymentStatus = target
	m.PaymentReviewerID = &reviewerID
	t := now
	m.PaymentReviewedAt = &t
	return nil
}

// Refund: paid → refund (terminal, administratif).
func (m *PaymentModel) Refund(reviewerID uuid.UUID, now time.Time) error {
	if m.PaymentStatus != PaymentPaid {
		return ErrIllegalSourceState
	}
	m.PaymentStatus = PaymentRefund
	m.PaymentReviewerID = &reviewerID
	t := now
	m.PaymentRefundedAt = &t
	return nil
}
