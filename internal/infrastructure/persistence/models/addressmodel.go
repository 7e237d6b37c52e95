package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/freshvale-inc/freshvale/internal/shared/constants"
)

// AddressModel represents the database persistence model for delivery
// addresses. Latitude/longitude are optional; pincode-only addresses resolve
// through the zone pincode set.
type AddressModel struct {
	ID        uint   `gorm:"primarykey"`
	SID       string `gorm:"column:sid;uniqueIndex;not null;size:50;comment:Stripe-style ID: adr_xxx"`
	UserID    uint   `gorm:"not null;index:idx_user_address"`
	Line1     string `gorm:"not null;size:255"`
	Pincode   string `gorm:"not null;size:10;index:idx_address_pincode"`
	Latitude  *float64
	Longitude *float64
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (AddressModel) TableName() string {
	return constants.TableAddresses
}
