package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/freshvale-inc/freshvale/internal/shared/constants"
)

// ZoneModel represents the database persistence model for delivery zones.
// Boundary, pincodes, service days and verticals are stored as JSON payloads;
// matching happens in memory against the reconstructed entity.
type ZoneModel struct {
	ID               uint   `gorm:"primarykey"`
	SID              string `gorm:"column:sid;uniqueIndex;not null;size:50;comment:Stripe-style ID: zone_xxx"`
	Code             string `gorm:"uniqueIndex;not null;size:30"`
	Name             string `gorm:"not null;size:100"`
	HubID            uint   `gorm:"not null;index:idx_hub_zone"`
	Boundary         datatypes.JSON
	Pincodes         datatypes.JSON
	ServiceDays      datatypes.JSON
	ServiceTimeStart int `gorm:"not null;default:0"`
	ServiceTimeEnd   int `gorm:"not null;default:1439"`
	Verticals        datatypes.JSON
	IsActive         bool `gorm:"not null;default:true;index:idx_zone_active"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (ZoneModel) TableName() string {
	return constants.TableZones
}
