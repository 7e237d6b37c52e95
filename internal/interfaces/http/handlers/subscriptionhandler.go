package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/freshvale-inc/freshvale/internal/application/subscription/usecases"
	"github.com/freshvale-inc/freshvale/internal/domain/subscription"
	"github.com/freshvale-inc/freshvale/internal/interfaces/http/middleware"
	"github.com/freshvale-inc/freshvale/internal/shared/biztime"
	"github.com/freshvale-inc/freshvale/internal/shared/id"
	"github.com/freshvale-inc/freshvale/internal/shared/logger"
	"github.com/freshvale-inc/freshvale/internal/shared/utils"
)

// SubscriptionHandler handles subscription lifecycle operations
type SubscriptionHandler struct {
	getUseCase           *usecases.GetSubscriptionUseCase
	listUseCase          *usecases.ListSubscriptionsUseCase
	updateUseCase        *usecases.UpdateSubscriptionUseCase
	pauseUseCase         *usecases.PauseSubscriptionUseCase
	resumeUseCase        *usecases.ResumeSubscriptionUseCase
	cancelUseCase        *usecases.CancelSubscriptionUseCase
	setVacationUseCase   *usecases.SetVacationUseCase
	clearVacationUseCase *usecases.ClearVacationUseCase
	scheduleUseCase      *usecases.GetDeliveryScheduleUseCase
	logger               logger.Interface
}

// NewSubscriptionHandler creates a new subscription handler
func NewSubscriptionHandler(
	getUC *usecases.GetSubscriptionUseCase,
	listUC *usecases.ListSubscriptionsUseCase,
	updateUC *usecases.UpdateSubscriptionUseCase,
	pauseUC *usecases.PauseSubscriptionUseCase,
	resumeUC *usecases.ResumeSubscriptionUseCase,
	cancelUC *usecases.CancelSubscriptionUseCase,
	setVacationUC *usecases.SetVacationUseCase,
	clearVacationUC *usecases.ClearVacationUseCase,
	scheduleUC *usecases.GetDeliveryScheduleUseCase,
	logger logger.Interface,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		getUseCase:           getUC,
		listUseCase:          listUC,
		updateUseCase:        updateUC,
		pauseUseCase:         pauseUC,
		resumeUseCase:        resumeUC,
		cancelUseCase:        cancelUC,
		setVacationUseCase:   setVacationUC,
		clearVacationUseCase: clearVacationUC,
		scheduleUseCase:      scheduleUC,
		logger:               logger,
	}
}

// PauseRequest carries the optional resume-by date.
type PauseRequest struct {
	PausedUntil *string `json:"paused_until"` // YYYY-MM-DD
}

// CancelRequest carries the optional cancellation reason.
type CancelRequest struct {
	Reason string `json:"reason"`
}

// VacationRequest sets the vacation window.
type VacationRequest struct {
	Start string `json:"start" binding:"required"` // YYYY-MM-DD
	End   string `json:"end" binding:"required"`   // YYYY-MM-DD
}

// UpdateSubscriptionRequest is a partial update; absent fields stay unchanged.
type UpdateSubscriptionRequest struct {
	Items        []ItemRequest `json:"items"`
	AddressID    *uint         `json:"address_id"`
	BillingCycle *string       `json:"billing_cycle" binding:"omitempty,oneof=weekly monthly"`
	AutoRenew    *bool         `json:"auto_renew"`
}

// ItemRequest is one subscription line item.
type ItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1,max=100"`
}

// resolveTarget extracts the caller and the addressed subscription from the
// request.
func (h *SubscriptionHandler) resolveTarget(c *gin.Context) (userID, subscriptionID uint, ok bool) {
	actor, exists := c.Get(middleware.ContextKeyUserID)
	if !exists {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return 0, 0, false
	}

	sid := c.Param("id")
	if err := id.ValidatePrefix(sid, id.PrefixSubscription); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid subscription ID format, expected sub_xxxxx")
		return 0, 0, false
	}

	subID, err := h.getUseCase.ResolveSID(c.Request.Context(), sid)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return 0, 0, false
	}

	return actor.(uint), subID, true
}

func (h *SubscriptionHandler) ListSubscriptions(c *gin.Context) {
	actor, exists := c.Get(middleware.ContextKeyUserID)
	if !exists {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	result, err := h.listUseCase.Execute(c.Request.Context(), usecases.ListSubscriptionsQuery{ActorID: actor.(uint)})
	if err != nil {
		h.logger.Errorw("failed to list subscriptions", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}

func (h *SubscriptionHandler) GetSubscription(c *gin.Context) {
	userID, subID, ok := h.resolveTarget(c)
	if !ok {
		return
	}

	result, err := h.getUseCase.Execute(c.Request.Context(), usecases.GetSubscriptionQuery{
		SubscriptionID: subID,
		ActorID:        userID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}

func (h *SubscriptionHandler) UpdateSubscription(c *gin.Context) {
	userID, subID, ok := h.resolveTarget(c)
	if !ok {
		return
	}

	var req UpdateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update subscription", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	cmd := usecases.UpdateSubscriptionCommand{
		SubscriptionID: subID,
		ActorID:        userID,
		AddressID:      req.AddressID,
		BillingCycle:   req.BillingCycle,
		AutoRenew:      req.AutoRenew,
		AsOf:           biztime.NowUTC(),
	}
	if req.Items != nil {
		items := make([]subscription.Item, 0, len(req.Items))
		for _, item := range req.Items {
			items = append(items, subscription.Item{ProductSID: item.ProductID, Quantity: item.Quantity})
		}
		cmd.Items = items
	}

	result, err := h.updateUseCase.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result, "Subscription updated successfully")
}

func (h *SubscriptionHandler) PauseSubscription(c *gin.Context) {
	userID, subID, ok := h.resolveTarget(c)
	if !ok {
		return
	}

	var req PauseRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	cmd := usecases.PauseSubscriptionCommand{
		SubscriptionID: subID,
		ActorID:        userID,
		AsOf:           biztime.NowUTC(),
	}
	if req.PausedUntil != nil {
		until, err := biztime.ParseDateInBizTimezone(*req.PausedUntil)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "paused_until must be YYYY-MM-DD")
			return
		}
		cmd.PausedUntil = &until
	}

	if err := h.pauseUseCase.Execute(c.Request.Context(), cmd); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, nil, "Subscription paused successfully")
}

func (h *SubscriptionHandler) ResumeSubscription(c *gin.Context) {
	userID, subID, ok := h.resolveTarget(c)
	if !ok {
		return
	}

	cmd := usecases.ResumeSubscriptionCommand{
		SubscriptionID: subID,
		ActorID:        userID,
		AsOf:           biztime.NowUTC(),
	}
	if err := h.resumeUseCase.Execute(c.Request.Context(), cmd); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, nil, "Subscription resumed successfully")
}

func (h *SubscriptionHandler) CancelSubscription(c *gin.Context) {
	userID, subID, ok := h.resolveTarget(c)
	if !ok {
		return
	}

	var req CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	cmd := usecases.CancelSubscriptionCommand{
		SubscriptionID: subID,
		ActorID:        userID,
		Reason:         req.Reason,
		AsOf:           biztime.NowUTC(),
	}
	if err := h.cancelUseCase.Execute(c.Request.Context(), cmd); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, nil, "Subscription cancelled successfully")
}

func (h *SubscriptionHandler) SetVacation(c *gin.Context) {
	userID, subID, ok := h.resolveTarget(c)
	if !ok {
		return
	}

	var req VacationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	start, err := biztime.ParseDateInBizTimezone(req.Start)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "start must be YYYY-MM-DD")
		return
	}
	end, err := biztime.ParseDateInBizTimezone(req.End)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "end must be YYYY-MM-DD")
		return
	}

	cmd := usecases.SetVacationCommand{
		SubscriptionID: subID,
		ActorID:        userID,
		Start:          start,
		End:            end,
		AsOf:           biztime.NowUTC(),
	}
	if err := h.setVacationUseCase.Execute(c.Request.Context(), cmd); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, nil, "Vacation window set successfully")
}

func (h *SubscriptionHandler) ClearVacation(c *gin.Context) {
	userID, subID, ok := h.resolveTarget(c)
	if !ok {
		return
	}

	cmd := usecases.ClearVacationCommand{
		SubscriptionID: subID,
		ActorID:        userID,
		AsOf:           biztime.NowUTC(),
	}
	if err := h.clearVacationUseCase.Execute(c.Request.Context(), cmd); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, nil, "Vacation window cleared successfully")
}

func (h *SubscriptionHandler) GetDeliverySchedule(c *gin.Context) {
	userID, subID, ok := h.resolveTarget(c)
	if !ok {
		return
	}

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "year is required")
		return
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "month is required")
		return
	}

	result, err := h.scheduleUseCase.Execute(c.Request.Context(), usecases.GetDeliveryScheduleQuery{
		SubscriptionID: subID,
		ActorID:        userID,
		Year:           year,
		Month:          month,
		AsOf:           biztime.NowUTC(),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}
