package model

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newUnpaid() *PaymentModel {
	return &PaymentModel{
		PaymentID:            uuid.New(),
		PaymentClubID:        uuid.New(),
		PaymentApplicationID: uuid.New(),
		PaymentStatus:        PaymentUnpaid,
	}
}

func TestSubmitEvidenceLegalSources(t *testing.T) {
	now := time.Now()

	m := newUnpaid()
	if err := m.SubmitEvidence("/uploads/evidence/a.webp", nil, now); err != nil {
		t.Fatalf("submit dari unpaid: %v", err)
	}
	if m.PaymentStatus != PaymentPending || m.PaymentEvidenceVersion != 1 {
		t.Fatalf("state setelah submit: %+v", m)
	}

	// pending → submit lagi dilarang
	if err := m.SubmitEvidence("/x.webp", nil, now); !errors.Is(err, ErrIllegalSourceState) {
		t.Fatalf("submit dari pending = %v, want ErrIllegalSourceState", err)
	}

	// rejected → boleh resubmit, versi naik, reason lama dibersihkan
	reviewer := uuid.New()
	if err := m.ReviewReject(reviewer, 1, "blurry image", now); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if err := m.SubmitEvidence("/y.webp", nil, now); err != nil {
		t.Fatalf("resubmit dari rejected: %v", err)
	}
	if m.PaymentEvidenceVersion != 2 || m.PaymentRejectReason != nil {
		t.Fatalf("resubmit tidak mereset siklus: %+v", m)
	}
}

// CanSubmitEvidence dipakai controller untuk menolak submit SEBELUM file
// bukti disimpan ke disk; hasilnya harus persis sama dengan guard
// SubmitEvidence sendiri.
func TestCanSubmitEvidenceMatchesGuard(t *testing.T) {
	cases := map[PaymentStatus]bool{
		PaymentUnpaid:   true,
		PaymentRejected: true,
		PaymentPending:  false,
		PaymentPaid:     false,
		PaymentRefund:   false,
	}
	for status, want := range cases {
		m := newUnpaid()
		m.PaymentStatus = status
		if got := m.CanSubmitEvidence(); got != want {
			t.Errorf("CanSubmitEvidence dari %s = %v, mau %v", status, got, want)
		}
		err := m.SubmitEvidence("/z.webp", nil, time.Now())
		if want && err != nil {
			t.Errorf("SubmitEvidence dari %s: %v", status, err)
		}
		if !want && !errors.Is(err, ErrIllegalSourceState) {
			t.Errorf("SubmitEvidence dari %s = %v, mau ErrIllegalSourceState", status, err)
		}
	}
}

func TestReviewRequiresPendingAndFreshEvidence(t *testing.T) {
	now := time.Now()
	reviewer := uuid.New()

	m := newUnpaid()
	if err := m.ReviewApprove(reviewer, 0, now); !errors.Is(err, ErrIllegalSourceState) {
		t.Fatalf("approve dari unpaid = %v", err)
	}

	_ = m.SubmitEvidence("/a.webp", nil, now)

	// reviewer masih memegang versi 0 (sebelum resubmit) → gugur
	if err := m.ReviewApprove(reviewer, 0, now); !errors.Is(err, ErrStaleEvidence) {
		t.Fatalf("approve dgn versi lama = %v, want ErrStaleEvidence", err)
	}
	if m.PaymentStatus != PaymentPending {
		t.Fatalf("review gugur tidak boleh mengubah status")
	}

	if err := m.ReviewReject(reviewer, 1, "", now); !errors.Is(err, ErrReasonRequired) {
		t.Fatalf("reject tanpa reason = %v", err)
	}

	if err := m.ReviewApprove(reviewer, 1, now); err != nil {
		t.Fatalf("approve versi berlaku: %v", err)
	}
	if m.PaymentStatus != PaymentPaid {
		t.Fatalf("status = %s, want paid", m.PaymentStatus)
	}
}

// Skenario penuh: submit → reject("blurry image") → resubmit → approve.
func TestResubmitAfterRejectCycle(t *testing.T) {
	now := time.Now()
	reviewer := uuid.New()

	m := newUnpaid()
	if err := m.SubmitEvidence("/a.webp", nil, now); err != nil {
		t.Fatal(err)
	}
	if err := m.ReviewReject(reviewer, 1, "blurry image", now); err != nil {
		t.Fatal(err)
	}
	if m.PaymentStatus != PaymentRejected {
		t.Fatalf("status = %s, want rejected", m.PaymentStatus)
	}
	if err := m.SubmitEvidence("/b.webp", nil, now); err != nil {
		t.Fatal(err)
	}
	if err := m.ReviewApprove(reviewer, 2, now); err != nil {
		t.Fatal(err)
	}
	if m.PaymentStatus != PaymentPaid {
		t.Fatalf("status = %s, want paid", m.PaymentStatus)
	}
}

func TestManualOverrideAndRefund(t *testing.T) {
	now := time.Now()
	reviewer := uuid.New()

	m := newUnpaid()
	if err := m.SetManually(reviewer, PaymentRejected, now); !errors.Is(err, ErrManualTarget) {
		t.Fatalf("manual ke rejected = %v, want ErrManualTarget", err)
	}
	if err := m.SetManually(reviewer, PaymentPaid, now); err != nil {
		t.Fatalf("manual unpaid→paid: %v", err)
	}
	if err := m.SetManually(reviewer, PaymentUnpaid, now); err != nil {
		t.Fatalf("manual paid→unpaid: %v", err)
	}

	// refund hanya dari paid
	if err := m.Refund(reviewer, now); !errors.Is(err, ErrIllegalSourceState) {
		t.Fatalf("refund dari unpaid = %v", err)
	}
	_ = m.SetManually(reviewer, PaymentPaid, now)
	if err := m.Refund(reviewer, now); err != nil {
		t.Fatalf("refund dari paid: %v", err)
	}
	if m.PaymentStatus != PaymentRefund {
		t.Fatalf("status = %s, want refund", m.PaymentStatus)
	}

	// refund = terminal, manual override pun ditolak
	if err := m.SetManually(reviewer, PaymentUnpaid, now); !errors.Is(err, ErrIllegalSourceState) {
		t.Fatalf("manual dari refund = %v", err)
	}
}
