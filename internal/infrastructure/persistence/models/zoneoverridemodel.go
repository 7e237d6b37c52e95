package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/freshvale-inc/freshvale/internal/shared/constants"
)

// ZoneOverrideModel represents the database persistence model for zone
// overrides. TargetKind + TargetID store the tagged target union.
type ZoneOverrideModel struct {
	ID         uint   `gorm:"primarykey"`
	SID        string `gorm:"column:sid;uniqueIndex;not null;size:50;comment:Stripe-style ID: zov_xxx"`
	TargetKind string `gorm:"not null;size:10;index:idx_override_target,priority:1"`
	TargetID   uint   `gorm:"not null;index:idx_override_target,priority:2"`
	ZoneID     uint   `gorm:"not null;index:idx_override_zone"`
	Reason     string `gorm:"not null;size:500"`
	ExpiresAt  *time.Time
	IsActive   bool `gorm:"not null;default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (ZoneOverrideModel) TableName() string {
	return constants.TableZoneOverrides
}
