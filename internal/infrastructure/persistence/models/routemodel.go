package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/freshvale-inc/freshvale/internal/shared/constants"
)

// RouteModel represents the database persistence model for delivery routes.
// Stops live in their own table so the sequence can be replaced atomically.
type RouteModel struct {
	ID        uint   `gorm:"primarykey"`
	SID       string `gorm:"column:sid;uniqueIndex;not null;size:50;comment:Stripe-style ID: route_xxx"`
	HubID     uint   `gorm:"not null;index:idx_hub_route"`
	Name      string `gorm:"not null;size:100"`
	DriverID  *uint  `gorm:"index:idx_route_driver"`
	IsActive  bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (RouteModel) TableName() string {
	return constants.TableRoutes
}

// RouteStopModel is one row of a route's visiting order. The unique index on
// (route_id, sequence) enforces density at the storage level.
type RouteStopModel struct {
	ID        uint `gorm:"primarykey"`
	RouteID   uint `gorm:"not null;uniqueIndex:idx_route_sequence,priority:1"`
	AddressID uint `gorm:"not null;index:idx_stop_address"`
	Sequence  int  `gorm:"not null;uniqueIndex:idx_route_sequence,priority:2"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for GORM
func (RouteStopModel) TableName() string {
	return constants.TableRouteStops
}
