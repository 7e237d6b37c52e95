package mappers

import (
	"encoding/json"
	"fmt"

	"github.com/freshvale-inc/freshvale/internal/domain/subscription"
	vo "github.com/freshvale-inc/freshvale/internal/domain/subscription/valueobjects"
	"github.com/freshvale-inc/freshvale/internal/infrastructure/persistence/models"
)

type SubscriptionMapper interface {
	ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error)
	ToModel(entity *subscription.Subscription) (*models.SubscriptionModel, error)
	ToEntities(models []*models.SubscriptionModel) ([]*subscription.Subscription, error)
}

type SubscriptionMapperImpl struct{}

func NewSubscriptionMapper() SubscriptionMapper {
	return &SubscriptionMapperImpl{}
}

// itemRow is the JSON shape of one subscription line item.
type itemRow struct {
	ProductSID string `json:"product_sid"`
	Quantity   int    `json:"quantity"`
}

func (m *SubscriptionMapperImpl) ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error) {
	if model == nil {
		return nil, nil
	}

	var rows []itemRow
	if model.Items != nil {
		if err := json.Unmarshal(model.Items, &rows); err != nil {
			return nil, fmt.Errorf("failed to unmarshal subscription items: %w", err)
		}
	}
	items := make([]subscription.Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, subscription.Item{ProductSID: row.ProductSID, Quantity: row.Quantity})
	}

	entity, err := subscription.Reconstruct(subscription.ReconstructParams{
		ID:               model.ID,
		SID:              model.SID,
		UUID:             model.UUID,
		UserID:           model.UserID,
		PlanID:           model.PlanID,
		PlanFrequency:    vo.PlanFrequency(model.PlanFrequency),
		BillingCycle:     vo.BillingCycle(model.BillingCycle),
		Status:           vo.SubscriptionStatus(model.Status),
		StartDate:        model.StartDate,
		VacationStart:    model.VacationStart,
		VacationEnd:      model.VacationEnd,
		PausedUntil:      model.PausedUntil,
		NextDeliveryDate: model.NextDeliveryDate,
		AutoRenew:        model.AutoRenew,
		AddressID:        model.AddressID,
		Vertical:         model.Vertical,
		Items:            items,
		BottlesIssued:    model.BottlesIssued,
		BottlesReturned:  model.BottlesReturned,
		CancelledAt:      model.CancelledAt,
		CancelReason:     model.CancelReason,
		Version:          model.Version,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct subscription entity: %w", err)
	}

	return entity, nil
}

func (m *SubscriptionMapperImpl) ToModel(entity *subscription.Subscription) (*models.SubscriptionModel, error) {
	if entity == nil {
		return nil, nil
	}

	items := entity.Items()
	rows := make([]itemRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, itemRow{ProductSID: item.ProductSID, Quantity: item.Quantity})
	}
	itemsJSON, err := json.Marshal(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal subscription items: %w", err)
	}

	return &models.SubscriptionModel{
		ID:               entity.ID(),
		SID:              entity.SID(),
		UUID:             entity.UUID(),
		UserID:           entity.UserID(),
		PlanID:           entity.PlanID(),
		PlanFrequency:    entity.PlanFrequency().String(),
		BillingCycle:     entity.BillingCycle().String(),
		Status:           entity.Status().String(),
		StartDate:        entity.StartDate(),
		VacationStart:    entity.VacationStart(),
		VacationEnd:      entity.VacationEnd(),
		PausedUntil:      entity.PausedUntil(),
		NextDeliveryDate: entity.NextDeliveryDate(),
		AutoRenew:        entity.AutoRenew(),
		AddressID:        entity.AddressID(),
		Vertical:         entity.Vertical(),
		Items:            itemsJSON,
		BottlesIssued:    entity.BottlesIssued(),
		BottlesReturned:  entity.BottlesReturned(),
		CancelledAt:      entity.CancelledAt(),
		CancelReason:     entity.CancelReason(),
		Version:          entity.Version(),
		CreatedAt:        entity.CreatedAt(),
		UpdatedAt:        entity.UpdatedAt(),
	}, nil
}

func (m *SubscriptionMapperImpl) ToEntities(subscriptionModels []*models.SubscriptionModel) ([]*subscription.Subscription, error) {
	entities := make([]*subscription.Subscription, 0, len(subscriptionModels))
	for _, model := range subscriptionModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
