// file: internals/features/clubs/clubs/dto/club_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "klubku_backend/internals/features/clubs/clubs/model"
)

type CreateClubRequest struct {
	ClubName        string `json:"club_name" validate:"required,min=3,max=255"`
	ClubSlug        string `json:"club_slug" validate:"required,min=3,max=100"`
	ClubDescription string `json:"club_description"`
	ClubLocation    string `json:"club_location" validate:"max=255"`
	ClubLogoURL     string `json:"club_logo_url"`
}

func (r *CreateClubRequest) Normalize() {
	r.ClubName = strings.TrimSpace(r.ClubName)
	r.ClubSlug = strings.ToLower(strings.TrimSpace(r.ClubSlug))
	r.ClubDescription = strings.TrimSpace(r.ClubDescription)
	r.ClubLocation = strings.TrimSpace(r.ClubLocation)
	r.ClubLogoURL = strings.TrimSpace(r.ClubLogoURL)
}

type UpdateClubRequest struct {
	ClubName        *string `json:"club_name" validate:"omitempty,min=3,max=255"`
	ClubDescription *string `json:"club_description"`
	ClubLocation    *string `json:"club_location" validate:"omitempty,max=255"`
	ClubLogoURL     *string `json:"club_logo_url"`
}

type CreateTeamRequest struct {
	TeamName string `json:"team_name" validate:"required,min=2,max=255"`
	TeamSlug string `json:"team_slug" validate:"required,min=2,max=100"`
}

func (r *CreateTeamRequest) Normalize() {
	r.TeamName = strings.TrimSpace(r.TeamName)
	r.TeamSlug = strings.ToLower(strings.TrimSpace(r.TeamSlug))
}

type ClubResponse struct {
	ClubID          uuid.UUID `json:"club_id"`
	ClubName        string    `json:"club_name"`
	ClubSlug        string    `json:"club_slug"`
	ClubDescription string    `json:"club_description,omitempty"`
	ClubLocation    string    `json:"club_location,omitempty"`
	ClubLogoURL     string    `json:"club_logo_url,omitempty"`
	ClubCreatedAt   time.Time `json:"club_created_at"`
}

func FromClubModel(m *model.ClubModel) ClubResponse {
	return ClubResponse{
		ClubID:          m.ClubID,
		ClubName:        m.ClubName,
		ClubSlug:        m.ClubSlug,
		ClubDescription: m.ClubDescription,
		ClubLocation:    m.ClubLocation,
		ClubLogoURL:     m.ClubLogoURL,
		ClubCreatedAt:   m.ClubCreatedAt,
	}
}

type TeamResponse struct {
	TeamID     uuid.UUID `json:"team_id"`
	TeamClubID uuid.UUID `json:"team_club_id"`
	TeamName   string    `json:"team_name"`
	TeamSlug   string    `json:"team_slug"`
}

func FromTeamModel(m *model.TeamModel) TeamResponse {
	return TeamResponse{
		TeamID:     m.TeamID,
		TeamClubID: m.TeamClubID,
		TeamName:   m.TeamName,
		TeamSlug:   m.TeamSlug,
	}
}
