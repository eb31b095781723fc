package middleware

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"klubku_backend/internals/constants"
	helperAuth "klubku_backend/internals/helpers/auth"
)

// parseClubIDParam membaca :club_id dari path.
func parseClubIDParam(c *fiber.Ctx) (uuid.UUID, error) {
	raw := strings.TrimSpace(c.Params("club_id"))
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "club_id path tidak valid")
	}
	return id, nil
}

// IsClubAdmin menolak caller yang klaim tokennya bukan admin di club :club_id.
// Klaim hanyalah gerbang awal; controller tetap memverifikasi membership row.
func IsClubAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		clubID, err := parseClubIDParam(c)
		if err != nil {
			return err
		}
		rel := helperAuth.RelationshipInClubClaim(c, clubID)
		if rel != constants.RelationshipAdmin {
			log.Printf("[AUTHZ] reject non-admin: club_id=%s rel=%q path=%s", clubID, rel, c.Path())
			return fiber.NewError(fiber.StatusForbidden, constants.RoleErrorAdmin("ini"))
		}
		return c.Next()
	}
}

// IsClubMember fast-path untuk route user ber-scope club: tolak caller yang
// tokennya tidak membawa relationship apa pun di :club_id. Controller tetap
// memverifikasi ke row club_members.
func IsClubMember() fiber.Handler {
	return func(c *fiber.Ctx) error {
		clubID, err := parseClubIDParam(c)
		if err != nil {
			return err
		}
		if err := helperAuth.EnsureMemberClubClaim(c, clubID); err != nil {
			log.Printf("[AUTHZ] reject non-member: club_id=%s path=%s", clubID, c.Path())
			return err
		}
		return c.Next()
	}
}

// IsClubReviewer mengizinkan admin/staff/coach club :club_id.
func IsClubReviewer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		clubID, err := parseClubIDParam(c)
		if err != nil {
			return err
		}
		rel := helperAuth.RelationshipInClubClaim(c, clubID)
		if !constants.IsReviewerRelationship(rel) {
			log.Printf("[AUTHZ] reject non-reviewer: club_id=%s rel=%q path=%s", clubID, rel, c.Path())
			return fiber.NewError(fiber.StatusForbidden, constants.RoleErrorStaff("ini"))
		}
		return c.Next()
	}
}
