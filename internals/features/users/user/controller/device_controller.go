// file: internals/features/users/user/controller/device_controller.go
package controller

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dto "klubku_backend/internals/features/users/user/dto"
	model "klubku_backend/internals/features/users/user/model"
	helper "klubku_backend/internals/helpers"
	helperAuth "klubku_backend/internals/helpers/auth"
)

type DeviceController struct {
	DB *gorm.DB
}

func helperAuthUserID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return uuid.Nil, helper.FromFiberError(c, err)
	}
	return id, nil
}

/* ======================================================
   REGISTER DEVICE — POST /api/u/users/devices

   Idempotent: panggilan ulang dengan (user, device) yang sama hanya
   memperbarui token. Tidak ada flag "sudah register" di memori proses.
====================================================== */

func (ctl *DeviceController) RegisterDevice(c *fiber.Ctx) error {
	userID, err := helperAuthUserID(c)
	if err != nil {
		return err
	}

	var body dto.RegisterDeviceRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	body.Normalize()
	if fieldErrs := helper.ValidateStruct(&body); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	now := time.Now()
	device := model.UserDeviceModel{
		UserDeviceUserID:       userID,
		UserDeviceDeviceID:     body.DeviceID,
		UserDevicePushToken:    body.PushToken,
		UserDevicePlatform:     body.Platform,
		UserDeviceRegisteredAt: now,
	}

	if err := ctl.DB.WithContext(c.Context()).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_device_user_id"},
				{Name: "user_device_device_id"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"user_device_push_token",
				"user_device_platform",
				"user_device_registered_at",
			}),
		}).
		Create(&device).Error; err != nil {
		log.Printf("[RegisterDevice] upsert failed: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to register device")
	}

	return helper.JsonOK(c, "Device terdaftar", fiber.Map{
		"device_id": device.UserDeviceDeviceID,
		"platform":  device.UserDevicePlatform,
	})
}
