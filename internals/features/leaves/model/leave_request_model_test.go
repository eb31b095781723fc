package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func newLeave() *LeaveRequestModel {
	return &LeaveRequestModel{
		LeaveRequestID:           uuid.New(),
		LeaveRequestClubID:       uuid.New(),
		LeaveRequestCourseID:     uuid.New(),
		LeaveRequestSessionID:    uuid.New(),
		LeaveRequestEnrollmentID: uuid.New(),
		LeaveRequestSubjectID:    uuid.New(),
		LeaveRequestStatus:       LeaveRequested,
		LeaveRequestRequestedAt:  time.Now(),
	}
}

func TestGuardRequestable(t *testing.T) {
	start := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)

	if err := GuardRequestable(start, start.Add(-2*time.Hour)); err != nil {
		t.Fatalf("sebelum sesi mulai: %v", err)
	}
	if err := GuardRequestable(start, start); err != ErrSessionStarted {
		t.Fatalf("tepat saat mulai: err = %v, mau ErrSessionStarted", err)
	}
	if err := GuardRequestable(start, start.Add(time.Minute)); err != ErrSessionStarted {
		t.Fatalf("setelah mulai: err = %v, mau ErrSessionStarted", err)
	}
}

func TestMarkApproved(t *testing.T) {
	now := time.Now()
	resolver := uuid.New()
	makeUp := uuid.New()

	lr := newLeave()
	if err := lr.MarkApproved(resolver, &makeUp, now); err != nil {
		t.Fatal(err)
	}
	if lr.LeaveRequestStatus != LeaveApproved {
		t.Fatalf("status = %s", lr.LeaveRequestStatus)
	}
	if lr.LeaveRequestMakeUpSessionID == nil || *lr.LeaveRequestMakeUpSessionID != makeUp {
		t.Fatal("make_up_session_id tidak tersimpan")
	}
	if lr.LeaveRequestResolvedAt == nil {
		t.Fatal("resolved_at kosong")
	}

	// approve tanpa sesi pengganti juga sah
	lr2 := newLeave()
	if err := lr2.MarkApproved(resolver, nil, now); err != nil {
		t.Fatal(err)
	}
	if lr2.LeaveRequestMakeUpSessionID != nil {
		t.Fatal("make_up_session_id harus nil")
	}

	// terminal: approve ulang ditolak
	if err := lr.MarkApproved(resolver, nil, now); err != ErrNotRequested {
		t.Fatalf("approve ulang: err = %v, mau ErrNotRequested", err)
	}
}

func TestMarkRejected(t *testing.T) {
	now := time.Now()
	resolver := uuid.New()

	lr := newLeave()
	if err := lr.MarkRejected(resolver, "  ", now); err != ErrReasonRequired {
		t.Fatalf("catatan kosong: err = %v, mau ErrReasonRequired", err)
	}
	if lr.LeaveRequestStatus != LeaveRequested {
		t.Fatal("status berubah padahal reject gagal")
	}

	if err := lr.MarkRejected(resolver, "jadwal pengganti penuh", now); err != nil {
		t.Fatal(err)
	}
	if lr.LeaveRequestStatus != LeaveRejected {
		t.Fatalf("status = %s", lr.LeaveRequestStatus)
	}
	if lr.LeaveRequestRejectNote == nil || *lr.LeaveRequestRejectNote != "jadwal pengganti penuh" {
		t.Fatal("reject_note tidak tersimpan")
	}

	// rejected bersifat terminal
	if err := lr.MarkApproved(resolver, nil, now); err != ErrNotRequested {
		t.Fatalf("rejected→approved: err = %v, mau ErrNotRequested", err)
	}
}
