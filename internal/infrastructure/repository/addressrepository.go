package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/freshvale-inc/freshvale/internal/domain/zone"
	"github.com/freshvale-inc/freshvale/internal/infrastructure/persistence/models"
	"github.com/freshvale-inc/freshvale/internal/shared/db"
	"github.com/freshvale-inc/freshvale/internal/shared/logger"
)

type AddressRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewAddressRepository(
	db *gorm.DB,
	logger logger.Interface,
) zone.AddressRepository {
	return &AddressRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

func toAddress(model *models.AddressModel) *zone.Address {
	addr := &zone.Address{
		ID:      model.ID,
		SID:     model.SID,
		UserID:  model.UserID,
		Line1:   model.Line1,
		Pincode: model.Pincode,
	}
	if model.Latitude != nil && model.Longitude != nil {
		addr.Coordinate = &zone.Coordinate{Lat: *model.Latitude, Lng: *model.Longitude}
	}
	return addr
}

func (r *AddressRepositoryImpl) GetByID(ctx context.Context, id uint) (*zone.Address, error) {
	var model models.AddressModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get address by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get address: %w", err)
	}

	return toAddress(&model), nil
}

func (r *AddressRepositoryImpl) GetByIDs(ctx context.Context, ids []uint) ([]*zone.Address, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var addressModels []*models.AddressModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("id IN ?", ids).
		Find(&addressModels).Error; err != nil {
		r.logger.Errorw("failed to get addresses by IDs", "error", err)
		return nil, fmt.Errorf("failed to get addresses: %w", err)
	}

	addrs := make([]*zone.Address, 0, len(addressModels))
	for _, model := range addressModels {
		addrs = append(addrs, toAddress(model))
	}
	return addrs, nil
}
