package model

import (
	"testing"

	"github.com/google/uuid"

	"klubku_backend/internals/constants"
)

func TestCanApproveRelationship(t *testing.T) {
	// staff hanya bisa di-approve admin
	if err := CanApproveRelationship(constants.RelationshipAdmin, constants.RelationshipStaff); err != nil {
		t.Fatalf("admin approve staff: %v", err)
	}
	for _, caller := range []string{constants.RelationshipStaff, constants.RelationshipCoach, constants.RelationshipPlayer} {
		if err := CanApproveRelationship(caller, constants.RelationshipStaff); err != ErrNotReviewer {
			t.Fatalf("%s approve staff: err = %v, mau ErrNotReviewer", caller, err)
		}
	}

	// coach/player bisa di-approve admin/staff/coach
	for _, caller := range constants.ReviewerRelationships {
		if err := CanApproveRelationship(caller, constants.RelationshipPlayer); err != nil {
			t.Fatalf("%s approve player: %v", caller, err)
		}
	}
	if err := CanApproveRelationship(constants.RelationshipPlayer, constants.RelationshipCoach); err != ErrNotReviewer {
		t.Fatalf("player approve coach: err = %v, mau ErrNotReviewer", err)
	}
}

func TestCanRemove(t *testing.T) {
	admin := &ClubMemberModel{ClubMemberRelationship: constants.RelationshipAdmin}
	player := &ClubMemberModel{ClubMemberRelationship: constants.RelationshipPlayer}

	if err := admin.CanRemove(constants.RelationshipAdmin); err != nil {
		t.Fatalf("admin melepas admin: %v", err)
	}
	if err := admin.CanRemove(constants.RelationshipStaff); err != ErrRemoveAdminForbidden {
		t.Fatalf("staff melepas admin: err = %v, mau ErrRemoveAdminForbidden", err)
	}
	if err := player.CanRemove(constants.RelationshipStaff); err != nil {
		t.Fatalf("staff melepas player: %v", err)
	}
	if err := player.CanRemove(constants.RelationshipPlayer); err != ErrNotReviewer {
		t.Fatalf("player melepas player: err = %v, mau ErrNotReviewer", err)
	}
}

// Gabung team men-stamp row membership yang sudah ada — bukan insert row
// club_members kedua, yang pasti bentrok dengan ux_club_members_club_user.
func TestJoinTeamStampsExistingRow(t *testing.T) {
	teamID := uuid.New()
	appID := uuid.New()
	member := &ClubMemberModel{
		ClubMemberID:            uuid.New(),
		ClubMemberRelationship:  constants.RelationshipPlayer,
		ClubMemberApplicationID: uuid.New(),
	}

	if err := member.JoinTeam(teamID, appID); err != nil {
		t.Fatalf("JoinTeam: %v", err)
	}
	if member.ClubMemberTeamID == nil || *member.ClubMemberTeamID != teamID {
		t.Fatalf("team tidak ter-stamp: %v", member.ClubMemberTeamID)
	}
	if member.ClubMemberApplicationID != appID {
		t.Fatalf("application audit tidak di-update: %s", member.ClubMemberApplicationID)
	}

	// join ulang ke team yang sama → conflict
	if err := member.JoinTeam(teamID, uuid.New()); err != ErrAlreadyInTeam {
		t.Fatalf("join ulang: err = %v, mau ErrAlreadyInTeam", err)
	}

	// pindah ke team lain boleh
	otherTeam := uuid.New()
	if err := member.JoinTeam(otherTeam, uuid.New()); err != nil {
		t.Fatalf("pindah team: %v", err)
	}
	if *member.ClubMemberTeamID != otherTeam {
		t.Fatalf("team tidak berpindah: %v", *member.ClubMemberTeamID)
	}
}
