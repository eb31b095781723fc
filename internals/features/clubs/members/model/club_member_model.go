// file: internals/features/clubs/members/model/club_member_model.go
package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"klubku_backend/internals/constants"
)

var (
	ErrRemoveAdminForbidden = errors.New("hanya admin lain yang boleh melepas admin")
	ErrNotReviewer          = errors.New("caller tidak punya hak review di club ini")
	ErrAlreadyInTeam        = errors.New("member sudah tergabung di team ini")
)

// ClubMemberModel: satu row per relationship aktif user↔club. Dibuat saat
// application membership di-approve; soft-delete saat remove (riwayat tetap).
type ClubMemberModel struct {
	ClubMemberID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:club_member_id" json:"club_member_id"`

	ClubMemberClubID uuid.UUID `gorm:"type:uuid;not null;column:club_member_club_id;uniqueIndex:ux_club_members_club_user,where:club_member_deleted_at IS NULL" json:"club_member_club_id"`
	ClubMemberUserID uuid.UUID `gorm:"type:uuid;not null;column:club_member_user_id;uniqueIndex:ux_club_members_club_user,where:club_member_deleted_at IS NULL" json:"club_member_user_id"`

	// team opsional; terisi utk approval team_membership
	ClubMemberTeamID *uuid.UUID `gorm:"type:uuid;column:club_member_team_id" json:"club_member_team_id,omitempty"`

	// admin | staff | coach | player
	ClubMemberRelationship string `gorm:"type:varchar(16);not null;column:club_member_relationship" json:"club_member_relationship"`

	// application yang melahirkan membership ini (audit)
	ClubMemberApplicationID uuid.UUID `gorm:"type:uuid;not null;column:club_member_application_id" json:"club_member_application_id"`

	ClubMemberJoinedAt  time.Time  `gorm:"not null;default:now();column:club_member_joined_at" json:"club_member_joined_at"`
	ClubMemberRemovedBy *uuid.UUID `gorm:"type:uuid;column:club_member_removed_by" json:"club_member_removed_by,omitempty"`

	ClubMemberCreatedAt time.Time      `gorm:"not null;default:now();column:club_member_created_at;autoCreateTime" json:"club_member_created_at"`
	ClubMemberUpdatedAt time.Time      `gorm:"not null;default:now();column:club_member_updated_at;autoUpdateTime" json:"club_member_updated_at"`
	ClubMemberDeletedAt gorm.DeletedAt `gorm:"column:club_member_deleted_at;index" json:"club_member_deleted_at,omitempty"`
}

func (ClubMemberModel) TableName() string { return "club_members" }

/* ======================================================
   Authority guards (pure)

   - approve staff → hanya admin
   - approve coach/player → admin, staff, atau coach
   - remove admin → hanya admin lain
====================================================== */

// CanApproveRelationship: apakah caller dengan relationship callerRel boleh
// meng-approve application yang meminta relationship targetRel.
func CanApproveRelationship(callerRel, targetRel string) error {
	switch targetRel {
	case constants.RelationshipAdmin, constants.RelationshipStaff:
		if callerRel != constants.RelationshipAdmin {
			return ErrNotReviewer
		}
	default:
		if !constants.IsReviewerRelationship(callerRel) {
			return ErrNotReviewer
		}
	}
	return nil
}

// CanRemove: apakah caller boleh melepas membership target.
func (m *ClubMemberModel) CanRemove(callerRel string) error {
	if m.ClubMemberRelationship == constants.RelationshipAdmin {
		if callerRel != constants.RelationshipAdmin {
			return ErrRemoveAdminForbidden
		}
		return nil
	}
	if !constants.IsReviewerRelationship(callerRel) {
		return ErrNotReviewer
	}
	return nil
}

// JoinTeam: approval team_membership TIDAK membuat row club_members baru —
// (club_id, user_id) unik selama aktif — melainkan men-stamp team di row
// membership yang sudah ada.
func (m *ClubMemberModel) JoinTeam(teamID uuid.UUID, applicationID uuid.UUID) error {
	if m.ClubMemberTeamID != nil && *m.ClubMemberTeamID == teamID {
		return ErrAlreadyInTeam
	}
	m.ClubMemberTeamID = &teamID
	m.ClubMemberApplicationID = applicationID
	return nil
}
