// file: internals/features/activities/events/controller/event_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "klubku_backend/internals/features/activities/events/dto"
	model "klubku_backend/internals/features/activities/events/model"
	helper "klubku_backend/internals/helpers"
	helperAuth "klubku_backend/internals/helpers/auth"
)

type EventController struct {
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

func parseEventIDPath(c *fiber.Ctx) (uuid.UUID, error) {
	raw := strings.TrimSpace(c.Params("event_id"))
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, helper.JsonError(c, fiber.StatusBadRequest, "event_id path tidak valid")
	}
	return id, nil
}

// POST /api/a/clubs/:club_id/events
func (ctl *EventController) Create(c *fiber.Ctx) error {
	clubID, err := parseClubIDPath(c)
	if err != nil {
		return err
	}
	creatorID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var body dto.CreateEventRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	body.Normalize()
	if fieldErrs := helper.ValidateStruct(&body); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	event := model.EventModel{
		EventClubID:      clubID,
		EventTitle:       body.EventTitle,
		EventSlug:        body.EventSlug,
		EventDescription: body.EventDescription,
		EventLocation:    body.EventLocation,
		EventCapacity:    body.EventCapacity,
		EventCreatedBy:   &creatorID,
	}
	if err := ctl.DB.WithContext(c.Context()).Create(&event).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonErrorCode(c, fiber.StatusConflict, helper.ErrCodeConflict, "Slug event sudah dipakai")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to create event")
	}
	return helper.JsonCreated(c, "Event dibuat", dto.FromEventModel(&event))
}

// GET /api/public/clubs/:club_id/events
func (ctl *EventController) List(c *fiber.Ctx) error {
	clubID, err := parseClubIDPath(c)
	if err != nil {
		return err
	}
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.WithContext(c.Context()).
		Model(&model.EventModel{}).
		Where("event_club_id = ?", clubID)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to count events")
	}
	var rows []model.EventModel
	if err := q.Order("event_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to list events")
	}
	out := make([]dto.EventResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.FromEventModel(&rows[i]))
	}
	p := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "daftar event", out, &p)
}

// GET /api/public/clubs/:club_id/events/:event_id
func (ctl *EventController) Detail(c *fiber.Ctx) error {
	clubID, err := parseClubIDPath(c)
	if err != nil {
		return err
	}
	eventID, err := parseEventIDPath(c)
	if err != nil {
		return err
	}
	var event model.EventModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("event_id = ? AND event_club_id = ?", eventID, clubID).
		First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Event tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load event")
	}
	return helper.JsonOK(c, "detail event", dto.FromEventModel(&event))
}

// POST /api/a/clubs/:club_id/events/:event_id/sessions
func (ctl *EventController) CreateSession(c *fiber.Ctx) error {
	clubID, err := parseClubIDPath(c)
	if err != nil {
		return err
	}
	eventID, err := parseEventIDPath(c)
	if err != nil {
		return err
	}
	var body dto.CreateEventSessionRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	if fieldErrs := helper.ValidateStruct(&body); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	var event model.EventModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("event_id = ? AND event_club_id = ?", eventID, clubID).
		First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Event tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load event")
	}

	session := model.EventSessionModel{
		EventSessionEventID:   eventID,
		EventSessionClubID:    clubID,
		EventSessionTitle:     strings.TrimSpace(body.EventSessionTitle),
		EventSessionStartTime: body.EventSessionStartTime,
		EventSessionEndTime:   body.EventSessionEndTime,
		EventSessionLocation:  strings.TrimSpace(body.EventSessionLocation),
	}
	if err := ctl.DB.WithContext(c.Context()).Create(&session).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to create event session")
	}
	return helper.JsonCreated(c, "Sesi event dibuat", session)
}

// GET /api/public/clubs/:club_id/events/:event_id/sessions
func (ctl *EventController) ListSessions(c *fiber.Ctx) error {
	clubID, err := parseClubIDPath(c)
	if err != nil {
		return err
	}
	eventID, err := parseEventIDPath(c)
	if err != nil {
		return err
	}
	var rows []model.EventSessionModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("event_session_event_id = ? AND event_session_club_id = ?", eventID, clubID).
		Order("event_session_start_time ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to list event sessions")
	}
	return helper.JsonOK(c, "daftar sesi event", rows)
}
