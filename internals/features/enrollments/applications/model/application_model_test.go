package model

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm/schema"
)

func newPending(subject uuid.UUID) *ApplicationModel {
	return &ApplicationModel{
		ApplicationID:        uuid.New(),
		ApplicationClubID:    uuid.New(),
		ApplicationKind:      KindCourseEnrollment,
		ApplicationSubjectID: subject,
		ApplicationTargetID:  uuid.New(),
		ApplicationStatus:    ApplicationPending,
		ApplicationAppliedAt: time.Now(),
	}
}

func TestMarkApproved(t *testing.T) {
	reviewer := uuid.New()
	now := time.Now()

	m := newPending(uuid.New())
	if err := m.MarkApproved(reviewer, now); err != nil {
		t.Fatalf("MarkApproved dari pending: %v", err)
	}
	if m.ApplicationStatus != ApplicationApproved {
		t.Fatalf("status = %s, want approved", m.ApplicationStatus)
	}
	if m.ApplicationReviewerID == nil || *m.ApplicationReviewerID != reviewer {
		t.Fatalf("reviewer tidak ter-stamp")
	}
	if m.ApplicationApprovedAt == nil || !m.ApplicationApprovedAt.Equal(now) {
		t.Fatalf("approved_at tidak ter-stamp")
	}

	// approve kedua → kalah race (StaleState di controller)
	if err := m.MarkApproved(reviewer, now); !errors.Is(err, ErrNotPending) {
		t.Fatalf("approve dua kali = %v, want ErrNotPending", err)
	}
}

func TestMarkRejected(t *testing.T) {
	reviewer := uuid.New()
	now := time.Now()

	m := newPending(uuid.New())
	if err := m.MarkRejected(reviewer, "", now); !errors.Is(err, ErrReasonRequired) {
		t.Fatalf("reject tanpa reason = %v, want ErrReasonRequired", err)
	}
	if m.ApplicationStatus != ApplicationPending {
		t.Fatalf("reject gagal tidak boleh mengubah status")
	}

	if err := m.MarkRejected(reviewer, "kuota penuh", now); err != nil {
		t.Fatalf("MarkRejected: %v", err)
	}
	if m.ApplicationStatus != ApplicationRejected || m.ApplicationRejectReason == nil {
		t.Fatalf("rejected state tidak lengkap: %+v", m)
	}

	// rejected → approved dilarang
	if err := m.MarkApproved(reviewer, now); !errors.Is(err, ErrNotPending) {
		t.Fatalf("rejected→approved = %v, want ErrNotPending", err)
	}
}

func TestMarkCanceled(t *testing.T) {
	subject := uuid.New()
	now := time.Now()

	m := newPending(subject)
	if err := m.MarkCanceled(uuid.New(), now); !errors.Is(err, ErrNotSubject) {
		t.Fatalf("cancel oleh orang lain = %v, want ErrNotSubject", err)
	}
	if err := m.MarkCanceled(subject, now); err != nil {
		t.Fatalf("MarkCanceled: %v", err)
	}
	if m.ApplicationStatus != ApplicationCanceled || m.ApplicationCanceledAt == nil {
		t.Fatalf("canceled state tidak lengkap: %+v", m)
	}
	// canceled = terminal
	if err := m.MarkCanceled(subject, now); !errors.Is(err, ErrNotPending) {
		t.Fatalf("cancel dua kali = %v, want ErrNotPending", err)
	}
}

func TestStatusTerminal(t *testing.T) {
	cases := map[ApplicationStatus]bool{
		ApplicationPending:  false,
		ApplicationApproved: true,
		ApplicationRejected: true,
		ApplicationCanceled: true,
	}
	for s, want := range cases {
		if got := s.Terminal(); got != want {
			t.Errorf("%s.Terminal() = %v, want %v", s, got, want)
		}
	}
}

func TestKindSideEffectGroups(t *testing.T) {
	if !KindClubMembership.IsMembership() || !KindTeamMembership.IsMembership() {
		t.Fatalf("membership kinds salah klasifikasi")
	}
	if !KindCourseEnrollment.IsEnrollment() || !KindEventApplication.IsEnrollment() {
		t.Fatalf("enrollment kinds salah klasifikasi")
	}
	if KindClubMembership.IsEnrollment() || KindCourseEnrollment.IsMembership() {
		t.Fatalf("kind overlap antara membership dan enrollment")
	}
	if ApplicationKind("lecture").Valid() {
		t.Fatalf("kind tak dikenal lolos Valid()")
	}
}

// Aturan "maksimal satu pending per (club, kind, subject, target)" tidak boleh
// bergantung pada pre-read controller saja: dua apply bersamaan lolos
// pre-read dua-duanya, jadi harus ada partial unique index yang menahan
// insert kedua.
func TestPendingUniqueIndexDeclared(t *testing.T) {
	s, err := schema.Parse(&ApplicationModel{}, &sync.Map{}, schema.NamingStrategy{})
	if err != nil {
		t.Fatalf("schema.Parse: %v", err)
	}
	idx, ok := s.ParseIndexes()["ux_applications_pending"]
	if !ok {
		t.Fatalf("index ux_applications_pending tidak dideklarasikan di model")
	}
	if idx.Class != "UNIQUE" {
		t.Fatalf("ux_applications_pending harus UNIQUE, dapat %q", idx.Class)
	}
	if idx.Where != "application_status = 'pending'" {
		t.Fatalf("predicate index salah: %q", idx.Where)
	}
	want := []string{"application_club_id", "application_kind", "application_subject_id", "application_target_id"}
	if len(idx.Fields) != len(want) {
		t.Fatalf("jumlah kolom index = %d, mau %d", len(idx.Fields), len(want))
	}
	for i, f := range idx.Fields {
		if f.DBName != want[i] {
			t.Fatalf("kolom index ke-%d = %s, mau %s", i, f.DBName, want[i])
		}
	}
}
