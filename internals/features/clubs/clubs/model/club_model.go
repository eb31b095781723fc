package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClubModel struct {
	ClubID          uuid.UUID `gorm:"column:club_id;type:uuid;default:gen_random_uuid();primaryKey" json:"club_id"`
	ClubName        string    `gorm:"column:club_name;type:varchar(255);not null" json:"club_name"`
	ClubSlug        string    `gorm:"column:club_slug;type:varchar(100);not null;uniqueIndex:ux_clubs_slug" json:"club_slug"`
	ClubDescription string    `gorm:"column:club_description;type:text" json:"club_description"`
	ClubLocation    string    `gorm:"column:club_location;type:varchar(255)" json:"club_location"`
	ClubLogoURL     string    `gorm:"column:club_logo_url;type:text" json:"club_logo_url"`

	ClubCreatedBy *uuid.UUID `gorm:"column:club_created_by;type:uuid" json:"club_created_by"` // boleh null

	ClubCreatedAt time.Time      `gorm:"column:club_created_at;type:timestamptz;autoCreateTime" json:"club_created_at"`
	ClubUpdatedAt time.Time      `gorm:"column:club_updated_at;type:timestamptz;autoUpdateTime" json:"club_updated_at"`
	ClubDeletedAt gorm.DeletedAt `gorm:"column:club_deleted_at;type:timestamptz;index" json:"club_deleted_at,omitempty"`
}

func (ClubModel) TableName() string { return "clubs" }

// TeamModel: tim di dalam club; target application kind=team_membership.
type TeamModel struct {
	TeamID     uuid.UUID `gorm:"column:team_id;type:uuid;default:gen_random_uuid();primaryKey" json:"team_id"`
	TeamClubID uuid.UUID `gorm:"column:team_club_id;type:uuid;not null;index:idx_teams_club_id" json:"team_club_id"`
	TeamName   string    `gorm:"column:team_name;type:varchar(255);not null" json:"team_name"`
	TeamSlug   string    `gorm:"column:team_slug;type:varchar(100);not null" json:"team_slug"`

	TeamCreatedAt time.Time      `gorm:"column:team_created_at;type:timestamptz;autoCreateTime" json:"team_created_at"`
	TeamUpdatedAt time.Time      `gorm:"column:team_updated_at;type:timestamptz;autoUpdateTime" json:"team_updated_at"`
	TeamDeletedAt gorm.DeletedAt `gorm:"column:team_deleted_at;type:timestamptz;index" json:"team_deleted_at,omitempty"`
}

func (TeamModel) TableName() string { return "teams" }
