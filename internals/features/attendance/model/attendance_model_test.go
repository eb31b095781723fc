package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func newRecord() *AttendanceRecordModel {
	return &AttendanceRecordModel{
		AttendanceRecordID:           uuid.New(),
		AttendanceRecordClubID:       uuid.New(),
		AttendanceRecordSessionID:    uuid.New(),
		AttendanceRecordEnrollmentID: uuid.New(),
		AttendanceRecordSubjectID:    uuid.New(),
		AttendanceRecordStatus:       AttendanceUnknown,
	}
}

func TestRollCallFromUnknown(t *testing.T) {
	now := time.Now()
	coach := uuid.New()

	rec := newRecord()
	changed, err := rec.SetRollCall(AttendancePresent, coach, now)
	if err != nil || !changed {
		t.Fatalf("unknown→present: changed=%v err=%v", changed, err)
	}
	if rec.AttendanceRecordStatus != AttendancePresent {
		t.Fatalf("status = %s", rec.AttendanceRecordStatus)
	}
	if rec.AttendanceRecordMarkedBy == nil || *rec.AttendanceRecordMarkedBy != coach {
		t.Fatal("marked_by tidak terisi")
	}

	rec = newRecord()
	if changed, err := rec.SetRollCall(AttendanceAbsent, coach, now); err != nil || !changed {
		t.Fatalf("unknown→absent: changed=%v err=%v", changed, err)
	}
}

func TestRollCallIdempotentSameValue(t *testing.T) {
	now := time.Now()
	coach := uuid.New()

	rec := newRecord()
	if _, err := rec.SetRollCall(AttendancePresent, coach, now); err != nil {
		t.Fatal(err)
	}
	changed, err := rec.SetRollCall(AttendancePresent, coach, now.Add(time.Minute))
	if err != nil {
		t.Fatalf("set nilai sama harus no-op, err=%v", err)
	}
	if changed {
		t.Fatal("set nilai sama tidak boleh dianggap berubah")
	}
	if rec.AttendanceRecordStatus != AttendancePresent {
		t.Fatalf("status berubah: %s", rec.AttendanceRecordStatus)
	}
}

func TestRollCallToggleOffAndSwitch(t *testing.T) {
	now := time.Now()
	coach := uuid.New()

	rec := newRecord()
	rec.SetRollCall(AttendancePresent, coach, now)

	// present → absent langsung dilarang
	if _, err := rec.SetRollCall(AttendanceAbsent, coach, now); err != ErrInvalidTransition {
		t.Fatalf("present→absent: err = %v, mau ErrInvalidTransition", err)
	}

	// toggle off dulu, baru set ulang
	changed, err := rec.SetRollCall(AttendanceUnknown, coach, now)
	if err != nil || !changed {
		t.Fatalf("present→unknown: changed=%v err=%v", changed, err)
	}
	if _, err := rec.SetRollCall(AttendanceAbsent, coach, now); err != nil {
		t.Fatalf("unknown→absent setelah toggle: %v", err)
	}
}

func TestLeaveIsSystemOwned(t *testing.T) {
	now := time.Now()
	coach := uuid.New()

	rec := newRecord()
	rec.SetRollCall(AttendancePresent, coach, now)

	// approval leave menimpa nilai roll-call apapun
	rec.MarkLeave(now)
	if rec.AttendanceRecordStatus != AttendanceLeave {
		t.Fatalf("status = %s", rec.AttendanceRecordStatus)
	}
	if rec.AttendanceRecordMarkedBy != nil {
		t.Fatal("marked_by harus kosong utk tulisan sistem")
	}

	// roll-call di atas leave ditolak
	for _, target := range []AttendanceStatus{AttendanceUnknown, AttendancePresent, AttendanceAbsent} {
		if _, err := rec.SetRollCall(target, coach, now); err != ErrLeaveLocked {
			t.Fatalf("leave→%s: err = %v, mau ErrLeaveLocked", target, err)
		}
	}

	// idempotent
	rec.MarkLeave(now.Add(time.Hour))
	if rec.AttendanceRecordStatus != AttendanceLeave {
		t.Fatal("MarkLeave kedua mengubah status")
	}
}
