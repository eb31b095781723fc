// file: internals/features/users/user/controller/auth_controller.go
package controller

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"klubku_backend/internals/configs"
	memberModel "klubku_backend/internals/features/clubs/members/model"
	dto "klubku_backend/internals/features/users/user/dto"
	model "klubku_backend/internals/features/users/user/model"
	helper "klubku_backend/internals/helpers"
)

type AuthController struct {
	DB *gorm.DB
}

const (
	accessTokenTTL  = 24 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

// signAccessToken: access token membawa identitas + club_roles fast-path.
func signAccessToken(secret string, user *model.UserModel, clubRoles []fiber.Map, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"id":           user.ID.String(),
		"user_name":    user.UserName,
		"roles_global": []string{user.Role},
		"club_roles":   clubRoles,
		"iat":          now.Unix(),
		"exp":          now.Add(accessTokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// signRefreshToken: sengaja kurus — identitas + penanda typ saja, umur lebih
// panjang, secret terpisah dari access token.
func signRefreshToken(secret string, userID uuid.UUID, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"id":  userID.String(),
		"typ": "refresh",
		"iat": now.Unix(),
		"exp": now.Add(refreshTokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func parseRefreshToken(secret, raw string) (uuid.UUID, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("metode tanda tangan tidak dikenal")
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return uuid.Nil, errors.New("refresh token tidak valid")
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errors.New("refresh token tidak valid")
	}
	if typ, _ := claims["typ"].(string); typ != "refresh" {
		return uuid.Nil, errors.New("bukan refresh token")
	}
	rawID, _ := claims["id"].(string)
	id, err := uuid.Parse(rawID)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, errors.New("refresh token tidak valid")
	}
	return id, nil
}

func (ctl *AuthController) clubRolesClaim(db *gorm.DB, userID uuid.UUID) ([]fiber.Map, error) {
	var members []memberModel.ClubMemberModel
	if err := db.Where("club_member_user_id = ?", userID).Find(&members).Error; err != nil {
		return nil, err
	}
	clubRoles := make([]fiber.Map, 0, len(members))
	for _, m := range members {
		clubRoles = append(clubRoles, fiber.Map{
			"club_id":      m.ClubMemberClubID.String(),
			"relationship": m.ClubMemberRelationship,
		})
	}
	return clubRoles, nil
}

/* ======================================================
   REGISTER — POST /api/public/auth/register
====================================================== */

func (ctl *AuthController) Register(c *fiber.Ctx) error {
	var body dto.RegisterRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	body.Normalize()
	if fieldErrs := helper.ValidateStruct(&body); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to hash password")
	}

	user := model.UserModel{
		UserName: body.UserName,
		FullName: body.FullName,
		Email:    body.Email,
		Password: string(hashed),
		Role:     "user",
		IsActive: true,
	}
	if err := ctl.DB.WithContext(c.Context()).Create(&user).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonErrorCode(c, fiber.StatusConflict, helper.ErrCodeConflict, "user_name atau email sudah terdaftar")
		}
		log.Printf("[Register] create failed: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to create user")
	}

	log.Printf("[Register] user_id=%s user_name=%s", user.ID, user.UserName)
	return helper.JsonCreated(c, "Registrasi berhasil", dto.FromUserModel(&user))
}

/* ======================================================
   LOGIN — POST /api/public/auth/login
====================================================== */

func (ctl *AuthController) Login(c *fiber.Ctx) error {
	var body dto.LoginRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	body.Normalize()
	if fieldErrs := helper.ValidateStruct(&body); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	db := ctl.DB.WithContext(c.Context())

	var user model.UserModel
	if err := db.
		Where("user_name = ? OR email = ?", body.Identifier, body.Identifier).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Identifier atau password salah")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load user")
	}
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Akun dinonaktifkan")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.Password)); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Identifier atau password salah")
	}

	// club_roles claim dari membership rows — fast-path authorize di middleware
	clubRoles, err := ctl.clubRolesClaim(db, user.ID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load memberships")
	}

	now := time.Now()
	access, err := signAccessToken(configs.JWTSecret, &user, clubRoles, now)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to sign token")
	}
	refresh, err := signRefreshToken(configs.JWTRefreshSecret, user.ID, now)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to sign refresh token")
	}

	log.Printf("[Login] user_id=%s clubs=%d", user.ID, len(clubRoles))
	return helper.JsonOK(c, "Login berhasil", dto.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         dto.FromUserModel(&user),
	})
}

/* ======================================================
   REFRESH — POST /api/public/auth/refresh
====================================================== */

// Refresh menukar refresh token yang masih hidup dengan pasangan token baru
// (refresh di-rotate). club_roles dibangun ulang dari row club_members supaya
// perubahan relationship sejak login ikut terbawa.
func (ctl *AuthController) Refresh(c *fiber.Ctx) error {
	var body dto.RefreshRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	if fieldErrs := helper.ValidateStruct(&body); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	userID, err := parseRefreshToken(configs.JWTRefreshSecret, body.RefreshToken)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token tidak valid atau kedaluwarsa")
	}

	db := ctl.DB.WithContext(c.Context())
	var user model.UserModel
	if err := db.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "User tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load user")
	}
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Akun dinonaktifkan")
	}

	clubRoles, err := ctl.clubRolesClaim(db, user.ID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load memberships")
	}

	now := time.Now()
	access, err := signAccessToken(configs.JWTSecret, &user, clubRoles, now)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to sign token")
	}
	refresh, err := signRefreshToken(configs.JWTRefreshSecret, user.ID, now)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to sign refresh token")
	}

	log.Printf("[Refresh] user_id=%s", user.ID)
	return helper.JsonOK(c, "Token diperbarui", dto.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         dto.FromUserModel(&user),
	})
}

/* ======================================================
   ME — GET /api/u/users/me
====================================================== */

func (ctl *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helperAuthUserID(c)
	if err != nil {
		return err
	}
	var user model.UserModel
	if err := ctl.DB.WithContext(c.Context()).Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load user")
	}
	return helper.JsonOK(c, "profil", dto.FromUserModel(&user))
}
