// file: internals/helpers/auth/authz_strict.go
package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type crEntry struct {
	ClubID       uuid.UUID
	Relationship string
}

// GetUserIDFromToken membaca user_id hasil hydrate middleware AuthJWT.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	v := c.Locals(LocUserID)
	if v == nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "user_id tidak ditemukan di token")
	}
	s, ok := v.(string)
	if !ok {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "user_id format tidak didukung")
	}
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "user_id tidak valid")
	}
	return id, nil
}

func parseClubRolesStrict(c *fiber.Ctx) ([]crEntry, error) {
	v := c.Locals(LocClubRoles) // HARUS dari middleware verifikasi JWT
	if v == nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, LocClubRoles+" tidak ditemukan di token")
	}
	arr, ok := v.([]interface{})
	if !ok {
		return nil, fiber.NewError(fiber.StatusBadRequest, LocClubRoles+" format tidak didukung")
	}
	out := make([]crEntry, 0, len(arr))
	for _, it := range arr {
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}
		var e crEntry
		if s, ok := m["club_id"].(string); ok {
			if id, err := uuid.Parse(strings.TrimSpace(s)); err == nil {
				e.ClubID = id
			}
		}
		if s, ok := m["relationship"].(string); ok {
			e.Relationship = strings.ToLower(strings.TrimSpace(s))
		}
		if e.ClubID != uuid.Nil && e.Relationship != "" {
			out = append(out, e)
		}
	}
	if len(out) == 0 {
		return nil, fiber.NewError(fiber.StatusUnauthorized, LocClubRoles+" kosong/invalid")
	}
	return out, nil
}

// RelationshipInClubClaim membaca relationship caller pada club tertentu dari
// klaim token. "" kalau tidak ada. Catatan: ini fast-path saja; keputusan
// authorize/remove tetap diverifikasi terhadap membership row di DB.
func RelationshipInClubClaim(c *fiber.Ctx, clubID uuid.UUID) string {
	entries, err := parseClubRolesStrict(c)
	if err != nil {
		return ""
	}
	for _, e := range entries {
		if e.ClubID == clubID {
			return e.Relationship
		}
	}
	return ""
}

// EnsureMemberClubClaim menolak caller yang tokennya tidak membawa
// relationship apa pun pada club tsb.
func EnsureMemberClubClaim(c *fiber.Ctx, clubID uuid.UUID) error {
	if RelationshipInClubClaim(c, clubID) == "" {
		return fiber.NewError(fiber.StatusForbidden, "Anda bukan member club ini")
	}
	return nil
}
