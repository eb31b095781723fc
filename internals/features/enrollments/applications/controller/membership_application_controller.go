// file: internals/features/enrollments/applications/controller/membership_application_controller.go
package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"klubku_backend/internals/constants"
	clubModel "klubku_backend/internals/features/clubs/clubs/model"
	memberModel "klubku_backend/internals/features/clubs/members/model"
	dto "klubku_backend/internals/features/enrollments/applications/dto"
	model "klubku_backend/internals/features/enrollments/applications/model"
	helper "klubku_backend/internals/helpers"
	helperAuth "klubku_backend/internals/helpers/auth"
)

type MembershipApplicationController struct {
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

func parseApplicationIDPath(c *fiber.Ctx) (uuid.UUID, error) {
	raw := strings.TrimSpace(c.Params("id"))
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, helper.JsonError(c, fiber.StatusBadRequest, "application_id path tidak valid")
	}
	return id, nil
}

// relationshipInClubDB: sumber kebenaran authority = row club_members, bukan
// klaim token (token hanya fast-path di middleware).
func relationshipInClubDB(tx *gorm.DB, clubID, userID uuid.UUID) (string, error) {
	var member memberModel.ClubMemberModel
	err := tx.
		Where("club_member_club_id = ? AND club_member_user_id = ?", clubID, userID).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return member.ClubMemberRelationship, nil
}

/* ======================================================
   APPLY (club / team) — POST /api/u/clubs/:club_id/memberships/apply
====================================================== */

func (ctl *MembershipApplicationController) Apply(c *fiber.Ctx) error {
	clubID, err := parseClubIDPath(c)
	if err != nil {
		return err
	}
	subjectID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var body dto.ApplyMembershipRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	body.Normalize()
	if fieldErrs := helper.ValidateStruct(&body); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	kind := model.KindClubMembership
	targetID := clubID
	if body.TargetID != uuid.Nil && body.TargetID != clubID {
		// target ≠ club berarti tim di dalam club
		kind = model.KindTeamMembership
		targetID = body.TargetID
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

	// club harus ada
	var club clubModel.ClubModel
	if err := tx.Where("club_id = ?", clubID).First(&club).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Club tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load club")
	}
	if kind == model.KindTeamMembership {
		var team clubModel.TeamModel
		if err := tx.Where("team_id = ? AND team_club_id = ?", targetID, clubID).First(&team).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.JsonError(c, fiber.StatusNotFound, "Team tidak ditemukan di club ini")
			}
			return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load team")
		}
	}

	// duplicate guard: pending application atau membership aktif → Conflict.
	// Rejected/canceled lama tidak menghalangi re-apply.
	var pendingCount int64
	if err := tx.Model(&model.ApplicationModel{}).
		Where("application_club_id = ? AND application_kind = ? AND application_subject_id = ? AND application_target_id = ?",
			clubID, kind, subjectID, targetID).
		Where("application_status = ?", model.ApplicationPending).
		Count(&pendingCount).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to check duplicates")
	}
	if pendingCount > 0 {
		tx.Rollback()
		return helper.JsonErrorCode(c, fiber.StatusConflict, helper.ErrCodeConflict, "Masih ada pengajuan pending untuk target ini")
	}
	rel, err := relationshipInClubDB(tx, clubID, subjectID)
	if err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to check membership")
	}
	switch kind {
	case model.KindClubMembership:
		if rel != "" {
			tx.Rollback()
			return helper.JsonErrorCode(c, fiber.StatusConflict, helper.ErrCodeConflict, "Anda sudah menjadi member club ini")
		}
	case model.KindTeamMembership:
		// team membership mensyaratkan club membership lebih dulu
		if rel == "" {
			tx.Rollback()
			return helper.JsonErrorCode(c, fiber.StatusConflict, helper.ErrCodeConflict, "Anda belum menjadi member club ini")
		}
	}

	now := time.Now()
	app := model.ApplicationModel{
		ApplicationClubID:    clubID,
		ApplicationKind:      kind,
		ApplicationSubjectID: subjectID,
		ApplicationTargetID:  targetID,
		ApplicationStatus:    model.ApplicationPending,
		ApplicationAppliedAt: now,
	}
	app.StampRelationship(body.Relationship)

	if err := tx.Create(&app).Error; err != nil {
		tx.Rollback()
		if helper.IsUniqueViolation(err) {
			return helper.JsonErrorCode(c, fiber.StatusConflict, helper.ErrCodeConflict, "Pengajuan duplikat")
		}
		log.Printf("[MembershipApply] create failed: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to create application")
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to commit")
	}

	log.Printf("[MembershipApply] club_id=%s subject_id=%s kind=%s application_id=%s",
		clubID, subjectID, kind, app.ApplicationID)
	return helper.JsonCreated(c, "Pengajuan membership terkirim", dto.FromApplicationModel(&app))
}

/* ======================================================
   APPROVE — POST /api/a/clubs/:club_id/memberships/:id/approve
====================================================== */

func (ctl *MembershipApplicationController) Approve(c *fiber.Ctx) error {
	clubID, err := parseClubIDPath(c)
	if err != nil {
		return err
	}
	appID, err := parseApplicationIDPath(c)
	if err != nil {
		return err
	}
	reviewerID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var body dto.ApproveRequest
	_ = c.BodyParser(&body) // body opsional
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

	// 1) application FOR UPDATE — serialisasi race approve/reject
	var app model.ApplicationModel
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("application_id = ? AND application_club_id = ?", appID, clubID).
		Where("application_kind IN ?", []model.ApplicationKind{model.KindClubMembership, model.KindTeamMembership}).
		First(&app).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Application tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load application")
	}

	// 2) authority dari membership row reviewer
	callerRel, err := relationshipInClubDB(tx, clubID, reviewerID)
	if err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load reviewer membership")
	}

	targetRel := constants.RelationshipPlayer
	if app.ApplicationRelationship != nil {
		targetRel = *app.ApplicationRelationship
	}
	if body.Relationship != nil {
		targetRel = *body.Relationship
	}
	if err := memberModel.CanApproveRelationship(callerRel, targetRel); err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusForbidden, constants.RoleErrorStaff("approve membership"))
	}

	now := time.Now()
	if err := app.MarkApproved(reviewerID, now); err != nil {
		tx.Rollback()
		return helper.JsonErrorCode(c, fiber.StatusConflict, helper.ErrCodeStaleState, "Application sudah diproses reviewer lain; silakan re-fetch")
	}
	app.StampRelationship(targetRel)

	if err := tx.Model(&model.ApplicationModel{}).
		Where("application_id = ?", app.ApplicationID).
		Updates(map[string]any{
			"application_status":       app.ApplicationStatus,
			"application_reviewer_id":  app.ApplicationReviewerID,
			"application_relationship": app.ApplicationRelationship,
			"application_approved_at":  app.ApplicationApprovedAt,
		}).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to update application")
	}

	// 3) side effect pada club_members
	if app.ApplicationKind == model.KindTeamMembership {
		// member row sudah ada (club membership = prasyarat team); stamp
		// team-nya, jangan insert row kedua ((club_id, user_id) unik).
		var member memberModel.ClubMemberModel
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("club_member_club_id = ? AND club_member_user_id = ?", clubID, app.ApplicationSubjectID).
			First(&member).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.JsonErrorCode(c, fiber.StatusConflict, helper.ErrCodeConflict, "Subject bukan lagi member club ini")
			}
			return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load membership")
		}
		if err := member.JoinTeam(app.ApplicationTargetID, app.ApplicationID); err != nil {
			tx.Rollback()
			return helper.JsonErrorCode(c, fiber.StatusConflict, helper.ErrCodeConflict, "Member sudah tergabung di team ini")
		}
		if err := tx.Model(&memberModel.ClubMemberModel{}).
			Where("club_member_id = ?", member.ClubMemberID).
			Updates(map[string]any{
				"club_member_team_id":        member.ClubMemberTeamID,
				"club_member_application_id": member.ClubMemberApplicationID,
			}).Error; err != nil {
			tx.Rollback()
			return helper.JsonError(c, fiber.StatusInternalServerError, "failed to update membership")
		}
	} else {
		member := memberModel.ClubMemberModel{
			ClubMemberClubID:        clubID,
			ClubMemberUserID:        app.ApplicationSubjectID,
			ClubMemberRelationship:  targetRel,
			ClubMemberApplicationID: app.ApplicationID,
			ClubMemberJoinedAt:      now,
		}
		if err := tx.Create(&member).Error; err != nil {
			tx.Rollback()
			if helper.IsUniqueViolation(err) {
				return helper.JsonErrorCode(c, fiber.StatusConflict, helper.ErrCodeConflict, "User sudah menjadi member club ini")
			}
			return helper.JsonError(c, fiber.StatusInternalServerError, "failed to create membership")
		}
	}

	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to commit")
	}

	log.Printf("[MembershipApprove] application_id=%s reviewer_id=%s relationship=%s", appID, reviewerID, targetRel)
	return helper.JsonUpdated(c, "Membership di-approve", dto.FromApplicationModel(&app))
}

/* ======================================================
   REJECT — POST /api/a/clubs/:club_id/memberships/:id/reject
====================================================== */

func (ctl *MembershipApplicationController) Reject(c *fiber.Ctx) error {
	clubID, err := parseClubIDPath(c)
	if err != nil {
		return err
	}
	appID, err := parseApplicationIDPath(c)
	if err != nil {
		return err
	}
	reviewerID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var body dto.RejectRequest
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

	var app model.ApplicationModel
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("application_id = ? AND application_club_id = ?", appID, clubID).
		Where("application_kind IN ?", []model.ApplicationKind{model.KindClubMembership, model.KindTeamMembership}).
		First(&app).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Application tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load application")
	}

	callerRel, err := relationshipInClubDB(tx, clubID, reviewerID)
	if err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load reviewer membership")
	}
	targetRel := constants.RelationshipPlayer
	if app.ApplicationRelationship != nil {
		targetRel = *app.ApplicationRelationship
	}
	if err := memberModel.CanApproveRelationship(callerRel, targetRel); err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusForbidden, constants.RoleErrorStaff("reject membership"))
	}

	if err := app.MarkRejected(reviewerID, body.Reason, time.Now()); err != nil {
		tx.Rollback()
		if errors.Is(err, model.ErrReasonRequired) {
			return helper.JsonValidationError(c, map[string][]string{"reason": {"wajib diisi"}})
		}
		return helper.JsonErrorCode(c, fiber.StatusConflict, helper.ErrCodeStaleState, "Application sudah diproses reviewer lain; silakan re-fetch")
	}

	if err := tx.Model(&model.ApplicationModel{}).
		Where("application_id = ?", app.ApplicationID).
		Updates(map[string]any{
			"application_status":        app.ApplicationStatus,
			"application_reviewer_id":   app.ApplicationReviewerID,
			"application_reject_reason": app.ApplicationRejectReason,
			"application_rejected_at":   app.ApplicationRejectedAt,
		}).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to update application")
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to commit")
	}

	return helper.JsonUpdated(c, "Membership ditolak", dto.FromApplicationModel(&app))
}

/* ======================================================
   CANCEL — POST /api/u/clubs/:club_id/memberships/:id/cancel
====================================================== */

func (ctl *MembershipApplicationController) Cancel(c *fiber.Ctx) error {
	clubID, err := parseClubIDPath(c)
	if err != nil {
		return err
	}
	appID, err := parseApplicationIDPath(c)
	if err != nil {
		return err
	}
	subjectID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
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

	var app model.ApplicationModel
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("application_id = ? AND application_club_id = ?", appID, clubID).
		First(&app).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Application tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load application")
	}

	if err := app.MarkCanceled(subjectID, time.Now()); err != nil {
		tx.Rollback()
		if errors.Is(err, model.ErrNotSubject) {
			return helper.JsonError(c, fiber.StatusForbidden, "Hanya pemilik pengajuan yang boleh cancel")
		}
		return helper.JsonErrorCode(c, fiber.StatusConflict, helper.ErrCodeStaleState, "Application sudah diproses; tidak bisa cancel")
	}

	if err := tx.Model(&model.ApplicationModel{}).
		Where("application_id = ?", app.ApplicationID).
		Updates(map[string]any{
			"application_status":      app.ApplicationStatus,
			"application_canceled_at": app.ApplicationCanceledAt,
		}).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to update application")
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to commit")
	}

	return helper.JsonUpdated(c, "Pengajuan dibatalkan", dto.FromApplicationModel(&app))
}

/* ======================================================
   REMOVE MEMBER — DELETE /api/a/clubs/:club_id/members/:member_id
====================================================== */

func (ctl *MembershipApplicationController) RemoveMember(c *fiber.Ctx) error {
	clubID, err := parseClubIDPath(c)
	if err != nil {
		return err
	}
	rawMemberID := strings.TrimSpace(c.Params("member_id"))
	memberID, err := uuid.Parse(rawMemberID)
	if err != nil || memberID == uuid.Nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "member_id path tidak valid")
	}
	reviewerID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
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

	var target memberModel.ClubMemberModel
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("club_member_id = ? AND club_member_club_id = ?", memberID, clubID).
		First(&target).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Member tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load member")
	}

	callerRel, err := relationshipInClubDB(tx, clubID, reviewerID)
	if err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load reviewer membership")
	}
	if err := target.CanRemove(callerRel); err != nil {
		tx.Rollback()
		if errors.Is(err, memberModel.ErrRemoveAdminForbidden) {
			return helper.JsonError(c, fiber.StatusForbidden, "Hanya admin lain yang boleh melepas admin")
		}
		return helper.JsonError(c, fiber.StatusForbidden, constants.RoleErrorStaff("remove member"))
	}

	if err := tx.Model(&memberModel.ClubMemberModel{}).
		Where("club_member_id = ?", target.ClubMemberID).
		Update("club_member_removed_by", reviewerID).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to stamp remover")
	}
	// soft delete: riwayat membership tetap tersimpan
	if err := tx.Delete(&target).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to remove member")
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to commit")
	}

	log.Printf("[MembershipRemove] club_id=%s member_id=%s by=%s", clubID, memberID, reviewerID)
	return helper.JsonDeleted(c, "Member dilepas dari club", fiber.Map{"club_member_id": target.ClubMemberID})
}

/* ======================================================
   LIST — GET /api/a/clubs/:club_id/memberships
====================================================== */

func (ctl *MembershipApplicationController) List(c *fiber.Ctx) error {
	clubID, err := parseClubIDPath(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 20, 100)

	var qry dto.ApplicationListQuery
	if err := c.QueryParser(&qry); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "query tidak valid")
	}

	q := ctl.DB.WithContext(c.Context()).
		Model(&model.ApplicationModel{}).
		Where("application_club_id = ?", clubID).
		Where("application_kind IN ?", []model.ApplicationKind{model.KindClubMembership, model.KindTeamMembership})

	if qry.Status != nil {
		st := model.ApplicationStatus(strings.ToLower(strings.TrimSpace(*qry.Status)))
		if !st.Valid() {
			return helper.JsonError(c, fiber.StatusBadRequest, "status filter tidak valid")
		}
		q = q.Where("application_status = ?", st)
	}
	if qry.Kind != nil {
		k := model.ApplicationKind(strings.ToLower(strings.TrimSpace(*qry.Kind)))
		if k != model.KindClubMembership && k != model.KindTeamMembership {
			return helper.JsonError(c, fiber.StatusBadRequest, "kind filter tidak valid")
		}
		q = q.Where("application_kind = ?", k)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to count applications")
	}

	var rows []model.ApplicationModel
	if err := q.Order("application_applied_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to list applications")
	}

	out := make([]dto.ApplicationResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.FromApplicationModel(&rows[i]))
	}
	p := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "daftar pengajuan membership", out, &p)
}
