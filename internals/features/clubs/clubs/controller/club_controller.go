// file: internals/features/clubs/clubs/controller/club_controller.go
package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"klubku_backend/internals/constants"
	dto "klubku_backend/internals/features/clubs/clubs/dto"
	model "klubku_backend/internals/features/clubs/clubs/model"
	memberModel "klubku_backend/internals/features/clubs/members/model"
	appModel "klubku_backend/internals/features/enrollments/applications/model"
	helper "klubku_backend/internals/helpers"
	helperAuth "klubku_backend/internals/helpers/auth"
)

type ClubController struct {
	DB *gorm.DB
}

func parseClubIDPath(c *fiber.Ctx) (uuid.UUID, error) {
	raw := strings.TrimSpace(c.Params("club_id"))
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, helper.JsonError(c, fiber.StatusBadRequest, "club_id path tidak valid")
	}
	return id, nil
}

/* ======================================================
   CREATE — POST /api/u/clubs

   Pembuat club otomatis jadi admin: application club_membership
   langsung approved + membership row, satu transaksi.
====================================================== */

func (ctl *ClubController) Create(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var body dto.CreateClubRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	body.Normalize()
	if fieldErrs := helper.ValidateStruct(&body); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	tx := ctl.DB.WithContext(c.Context()).Begin()
	if tx.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to start transaction")
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	club := model.ClubModel{
		ClubName:        body.ClubName,
		ClubSlug:        body.ClubSlug,
		ClubDescription: body.ClubDescription,
		ClubLocation:    body.ClubLocation,
		ClubLogoURL:     body.ClubLogoURL,
		ClubCreatedBy:   &userID,
	}
	if err := tx.Create(&club).Error; err != nil {
		tx.Rollback()
		if helper.IsUniqueViolation(err) {
			return helper.JsonErrorCode(c, fiber.StatusConflict, helper.ErrCodeConflict, "Slug club sudah dipakai")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to create club")
	}

	now := time.Now()
	adminRel := constants.RelationshipAdmin
	app := appModel.ApplicationModel{
		ApplicationClubID:    club.ClubID,
		ApplicationKind:      appModel.KindClubMembership,
		ApplicationSubjectID: userID,
		ApplicationTargetID:  club.ClubID,
		ApplicationStatus:    appModel.ApplicationApproved,
		ApplicationAppliedAt: now,
	}
	app.ApplicationApprovedAt = &now
	app.ApplicationReviewerID = &userID
	app.StampRelationship(adminRel)
	if err := tx.Create(&app).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to create founder application")
	}

	member := memberModel.ClubMemberModel{
		ClubMemberClubID:        club.ClubID,
		ClubMemberUserID:        userID,
		ClubMemberRelationship:  adminRel,
		ClubMemberApplicationID: app.ApplicationID,
		ClubMemberJoinedAt:      now,
	}
	if err := tx.Create(&member).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to create founder membership")
	}

	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to commit")
	}

	log.Printf("[ClubCreate] club_id=%s by=%s", club.ClubID, userID)
	return helper.JsonCreated(c, "Club dibuat", dto.FromClubModel(&club))
}

/* ======================================================
   LIST / DETAIL — GET /api/public/clubs, /api/public/clubs/:club_id
====================================================== */

func (ctl *ClubController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)
	q := ctl.DB.WithContext(c.Context()).Model(&model.ClubModel{})

	if s := strings.TrimSpace(c.Query("q")); s != "" {
		q = q.Where("club_name ILIKE ?", "%"+s+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to count clubs")
	}
	var rows []model.ClubModel
	if err := q.Order("club_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to list clubs")
	}
	out := make([]dto.ClubResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.FromClubModel(&rows[i]))
	}
	p := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "daftar club", out, &p)
}

func (ctl *ClubController) Detail(c *fiber.Ctx) error {
	clubID, err := parseClubIDPath(c)
	if err != nil {
		return err
	}
	var club model.ClubModel
	if err := ctl.DB.WithContext(c.Context()).Where("club_id = ?", clubID).First(&club).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Club tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load club")
	}
	return helper.JsonOK(c, "detail club", dto.FromClubModel(&club))
}

/* ======================================================
   UPDATE — PATCH /api/a/clubs/:club_id
====================================================== */

func (ctl *ClubController) Update(c *fiber.Ctx) error {
	clubID, err := parseClubIDPath(c)
	if err != nil {
		return err
	}
	var body dto.UpdateClubRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	if fieldErrs := helper.ValidateStruct(&body); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	updates := map[string]any{}
	if body.ClubName != nil {
		updates["club_name"] = strings.TrimSpace(*body.ClubName)
	}
	if body.ClubDescription != nil {
		updates["club_description"] = strings.TrimSpace(*body.ClubDescription)
	}
	if body.ClubLocation != nil {
		updates["club_location"] = strings.TrimSpace(*body.ClubLocation)
	}
	if body.ClubLogoURL != nil {
		updates["club_logo_url"] = strings.TrimSpace(*body.ClubLogoURL)
	}
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "tidak ada field yang diubah")
	}

	res := ctl.DB.WithContext(c.Context()).
		Model(&model.ClubModel{}).
		Where("club_id = ?", clubID).
		Updates(updates)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to update club")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Club tidak ditemukan")
	}

	var club model.ClubModel
	if err := ctl.DB.WithContext(c.Context()).Where("club_id = ?", clubID).First(&club).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to reload club")
	}
	return helper.JsonUpdated(c, "Club diperbarui", dto.FromClubModel(&club))
}

/* ======================================================
   TEAMS — POST /api/a/clubs/:club_id/teams, GET /api/public/clubs/:club_id/teams
====================================================== */

func (ctl *ClubController) CreateTeam(c *fiber.Ctx) error {
	clubID, err := parseClubIDPath(c)
	if err != nil {
		return err
	}
	var body dto.CreateTeamRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	body.Normalize()
	if fieldErrs := helper.ValidateStruct(&body); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	team := model.TeamModel{
		TeamClubID: clubID,
		TeamName:   body.TeamName,
		TeamSlug:   body.TeamSlug,
	}
	if err := ctl.DB.WithContext(c.Context()).Create(&team).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonErrorCode(c, fiber.StatusConflict, helper.ErrCodeConflict, "Slug team sudah dipakai")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to create team")
	}
	return helper.JsonCreated(c, "Team dibuat", dto.FromTeamModel(&team))
}

func (ctl *ClubController) ListTeams(c *fiber.Ctx) error {
	clubID, err := parseClubIDPath(c)
	if err != nil {
		return err
	}
	var rows []model.TeamModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("team_club_id = ?", clubID).
		Order("team_name ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to list teams")
	}
	out := make([]dto.TeamResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.FromTeamModel(&rows[i]))
	}
	return helper.JsonOK(c, "daftar team", out)
}
