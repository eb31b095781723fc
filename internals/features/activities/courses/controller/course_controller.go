// file: internals/features/activities/courses/controller/course_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "klubku_backend/internals/features/activities/courses/dto"
	model "klubku_backend/internals/features/activities/courses/model"
	helper "klubku_backend/internals/helpers"
)

type CourseController struct {
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

func parseCourseIDPath(c *fiber.Ctx) (uuid.UUID, error) {
	raw := strings.TrimSpace(c.Params("course_id"))
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, helper.JsonError(c, fiber.StatusBadRequest, "course_id path tidak valid")
	}
	return id, nil
}

// POST /api/a/clubs/:club_id/courses
func (ctl *CourseController) Create(c *fiber.Ctx) error {
	clubID, err := parseClubIDPath(c)
	if err != nil {
		return err
	}
	var body dto.CreateCourseRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	body.Normalize()
	if fieldErrs := helper.ValidateStruct(&body); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	course := model.CourseModel{
		CourseClubID:                 clubID,
		CourseTitle:                  body.CourseTitle,
		CourseSlug:                   body.CourseSlug,
		CourseCoachID:                body.CourseCoachID,
		CourseCapacity:               body.CourseCapacity,
		CourseMinConsecutiveSessions: body.CourseMinConsecutiveSessions,
		CourseIsRecurring:            body.CourseIsRecurring,
		CourseRecurringWeekdays:      dto.ToRecurringWeekdays(body.CourseRecurringWeekdays),
		CourseAllowsDirectEnroll:     body.CourseAllowsDirectEnroll,
	}
	if err := ctl.DB.WithContext(c.Context()).Create(&course).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonErrorCode(c, fiber.StatusConflict, helper.ErrCodeConflict, "Slug course sudah dipakai")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to create course")
	}
	return helper.JsonCreated(c, "Course dibuat", dto.FromCourseModel(&course))
}

// GET /api/public/clubs/:club_id/courses
func (ctl *CourseController) List(c *fiber.Ctx) error {
	clubID, err := parseClubIDPath(c)
	if err != nil {
		return err
	}
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.WithContext(c.Context()).
		Model(&model.CourseModel{}).
		Where("course_club_id = ?", clubID)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to count courses")
	}
	var rows []model.CourseModel
	if err := q.Order("course_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to list courses")
	}
	out := make([]dto.CourseResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.FromCourseModel(&rows[i]))
	}
	p := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "daftar course", out, &p)
}

// GET /api/public/clubs/:club_id/courses/:course_id
func (ctl *CourseController) Detail(c *fiber.Ctx) error {
	clubID, err := parseClubIDPath(c)
	if err != nil {
		return err
	}
	courseID, err := parseCourseIDPath(c)
	if err != nil {
		return err
	}
	var course model.CourseModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("course_id = ? AND course_club_id = ?", courseID, clubID).
		First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Course tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load course")
	}
	return helper.JsonOK(c, "detail course", dto.FromCourseModel(&course))
}

// POST /api/a/clubs/:club_id/courses/:course_id/sessions
func (ctl *CourseController) CreateSession(c *fiber.Ctx) error {
	clubID, err := parseClubIDPath(c)
	if err != nil {
		return err
	}
	courseID, err := parseCourseIDPath(c)
	if err != nil {
		return err
	}
	var body dto.CreateCourseSessionRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	if fieldErrs := helper.ValidateStruct(&body); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	var course model.CourseModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("course_id = ? AND course_club_id = ?", courseID, clubID).
		First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Course tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load course")
	}

	session := model.CourseSessionModel{
		CourseSessionCourseID:  courseID,
		CourseSessionClubID:    clubID,
		CourseSessionTitle:     strings.TrimSpace(body.CourseSessionTitle),
		CourseSessionStartTime: body.CourseSessionStartTime,
		CourseSessionEndTime:   body.CourseSessionEndTime,
		CourseSessionLocation:  strings.TrimSpace(body.CourseSessionLocation),
		CourseSessionCapacity:  body.CourseSessionCapacity,
	}
	if err := ctl.DB.WithContext(c.Context()).Create(&session).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	return helper.JsonCreated(c, "Sesi dibuat", dto.FromCourseSessionModel(&session))
}

// GET /api/public/clubs/:club_id/courses/:course_id/sessions
func (ctl *CourseController) ListSessions(c *fiber.Ctx) error {
	clubID, err := parseClubIDPath(c)
	if err != nil {
		return err
	}
	courseID, err := parseCourseIDPath(c)
	if err != nil {
		return err
	}
	var rows []model.CourseSessionModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("course_session_course_id = ? AND course_session_club_id = ?", courseID, clubID).
		Order("course_session_start_time ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to list sessions")
	}
	out := make([]dto.CourseSessionResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.FromCourseSessionModel(&rows[i]))
	}
	return helper.JsonOK(c, "daftar sesi course", out)
}
