package dto

import (
	"time"

	"github.com/freshvale-inc/freshvale/internal/domain/subscription"
	"github.com/freshvale-inc/freshvale/internal/shared/biztime"
)

// ItemDTO is one subscription line item.
type ItemDTO struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// SubscriptionDTO is the serializable subscription view.
type SubscriptionDTO struct {
	SID              string    `json:"id"`
	Status           string    `json:"status"`
	BillingCycle     string    `json:"billing_cycle"`
	PlanFrequency    string    `json:"plan_frequency"`
	Vertical         string    `json:"vertical"`
	StartDate        string    `json:"start_date"`
	VacationStart    *string   `json:"vacation_start,omitempty"`
	VacationEnd      *string   `json:"vacation_end,omitempty"`
	PausedUntil      *string   `json:"paused_until,omitempty"`
	NextDeliveryDate *string   `json:"next_delivery_date,omitempty"`
	AutoRenew        bool      `json:"auto_renew"`
	Items            []ItemDTO `json:"items"`
	BottlesIssued    int       `json:"bottles_issued"`
	BottlesReturned  int       `json:"bottles_returned"`
	CancelReason     *string   `json:"cancel_reason,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := biztime.FormatDate(*t)
	return &s
}

// ToSubscriptionDTO maps the aggregate to its DTO.
func ToSubscriptionDTO(sub *subscription.Subscription) *SubscriptionDTO {
	if sub == nil {
		return nil
	}

	items := sub.Items()
	itemDTOs := make([]ItemDTO, 0, len(items))
	for _, item := range items {
		itemDTOs = append(itemDTOs, ItemDTO{ProductID: item.ProductSID, Quantity: item.Quantity})
	}

	return &SubscriptionDTO{
		SID:              sub.SID(),
		Status:           sub.Status().String(),
		BillingCycle:     sub.BillingCycle().String(),
		PlanFrequency:    sub.PlanFrequency().String(),
		Vertical:         sub.Vertical(),
		StartDate:        biztime.FormatDate(sub.StartDate()),
		VacationStart:    formatDate(sub.VacationStart()),
		VacationEnd:      formatDate(sub.VacationEnd()),
		PausedUntil:      formatDate(sub.PausedUntil()),
		NextDeliveryDate: formatDate(sub.NextDeliveryDate()),
		AutoRenew:        sub.AutoRenew(),
		Items:            itemDTOs,
		BottlesIssued:    sub.BottlesIssued(),
		BottlesReturned:  sub.BottlesReturned(),
		CancelReason:     sub.CancelReason(),
		CreatedAt:        sub.CreatedAt(),
		UpdatedAt:        sub.UpdatedAt(),
	}
}
