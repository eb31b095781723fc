package constants

import "fmt"

// Relationship seorang member terhadap club (hasil approval membership).
const (
	RelationshipAdmin  = "admin"
	RelationshipStaff  = "staff"
	RelationshipCoach  = "coach"
	RelationshipPlayer = "player"
	RelationshipNA     = "na"
)

// Template pesan error role
const (
	ErrOnlyAdminsCanAccess = "❌ Hanya admin club yang boleh mengakses fitur %s."
	ErrOnlyStaffCanAccess  = "❌ Hanya staff, coach, atau admin club yang boleh mengakses fitur %s."
	ErrOnlyMemberCanAccess = "❌ Hanya member club yang boleh mengakses fitur %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorStaff(feature string) string {
	return fmt.Sprintf(ErrOnlyStaffCanAccess, feature)
}

func RoleErrorMember(feature string) string {
	return fmt.Sprintf(ErrOnlyMemberCanAccess, feature)
}

// ==========================
// ✅ Grouped Relationship Slices
// ==========================
var (
	AllRelationships = []string{
		RelationshipAdmin,
		RelationshipStaff,
		RelationshipCoach,
		RelationshipPlayer,
	}

	// Boleh me-review pengajuan coach/player.
	ReviewerRelationships = []string{
		RelationshipAdmin,
		RelationshipStaff,
		RelationshipCoach,
	}

	// Hanya admin yang boleh approve staff & melepas admin lain.
	AdminOnly = []string{
		RelationshipAdmin,
	}
)

func IsReviewerRelationship(rel string) bool {
	for _, r := range ReviewerRelationships {
		if r == rel {
			return true
		}
	}
	return false
}
