package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/freshvale-inc/freshvale/internal/shared/constants"
)

// SubscriptionModel represents the database persistence model for subscriptions
// This is the anti-corruption layer between domain and database
type SubscriptionModel struct {
	ID               uint      `gorm:"primarykey"`
	SID              string    `gorm:"column:sid;uniqueIndex;not null;size:50;comment:Stripe-style ID: sub_xxx"`
	UUID             string    `gorm:"uniqueIndex;not null;size:36"`
	UserID           uint      `gorm:"not null;index:idx_user_subscription"`
	PlanID           uint      `gorm:"not null"`
	PlanFrequency    string    `gorm:"not null;size:20"`
	BillingCycle     string    `gorm:"not null;size:20"`
	Status           string    `gorm:"not null;size:20;index:idx_status"`
	StartDate        time.Time `gorm:"not null"`
	VacationStart    *time.Time
	VacationEnd      *time.Time
	PausedUntil      *time.Time
	NextDeliveryDate *time.Time `gorm:"index:idx_next_delivery"`
	AutoRenew        bool       `gorm:"default:false"`
	AddressID        uint       `gorm:"not null;index:idx_address_subscription"`
	Vertical         string     `gorm:"not null;size:30"`
	Items            datatypes.JSON
	BottlesIssued    int `gorm:"not null;default:0"`
	BottlesReturned  int `gorm:"not null;default:0"`
	CancelledAt      *time.Time
	CancelReason     *string `gorm:"size:500"`
	Version          int     `gorm:"not null;default:1"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (SubscriptionModel) TableName() string {
	return constants.TableSubscriptions
}

// BeforeCreate hook for GORM
func (s *SubscriptionModel) BeforeCreate(tx *gorm.DB) error {
	if s.Version == 0 {
		s.Version = 1
	}
	return nil
}
