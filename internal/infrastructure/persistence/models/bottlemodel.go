package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/freshvale-inc/freshvale/internal/shared/constants"
)

// BottleModel represents the database persistence model for reusable bottles.
type BottleModel struct {
	ID            uint    `gorm:"primarykey"`
	SID           string  `gorm:"column:sid;uniqueIndex;not null;size:50;comment:Stripe-style ID: btl_xxx"`
	Status        string  `gorm:"not null;size:20;index:idx_bottle_status"`
	DepositAmount float64 `gorm:"not null;default:0"`
	UserID        *uint   `gorm:"index:idx_bottle_user"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (BottleModel) TableName() string {
	return constants.TableBottles
}

// BottleLogModel is one row of the append-only bottle ledger. Rows are only
// ever inserted; there is no update path.
type BottleLogModel struct {
	ID            uint    `gorm:"primarykey"`
	BottleID      uint    `gorm:"not null;index:idx_log_bottle"`
	Action        string  `gorm:"not null;size:20"`
	Condition     string  `gorm:"size:20"`
	DepositAmount float64 `gorm:"not null;default:0"`
	RefundAmount  float64 `gorm:"not null;default:0"`
	OccurredAt    time.Time
	CreatedAt     time.Time
}

// TableName specifies the table name for GORM
func (BottleLogModel) TableName() string {
	return constants.TableBottleLogs
}
