package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/freshvale-inc/freshvale/internal/application/bottle/usecases"
	"github.com/freshvale-inc/freshvale/internal/shared/biztime"
	"github.com/freshvale-inc/freshvale/internal/shared/id"
	"github.com/freshvale-inc/freshvale/internal/shared/logger"
	"github.com/freshvale-inc/freshvale/internal/shared/utils"
)

// BottleHandler records bottle returns collected by drivers.
type BottleHandler struct {
	returnUseCase *usecases.ReturnBottlesUseCase
	logger        logger.Interface
}

// NewBottleHandler creates a new bottle handler
func NewBottleHandler(returnUC *usecases.ReturnBottlesUseCase, logger logger.Interface) *BottleHandler {
	return &BottleHandler{
		returnUseCase: returnUC,
		logger:        logger,
	}
}

// ReturnBottlesRequest lists the collected bottles and their condition.
type ReturnBottlesRequest struct {
	BottleIDs []string `json:"bottle_ids" binding:"required,min=1"`
	Condition string   `json:"condition" binding:"required,oneof=good damaged"`
}

func (h *BottleHandler) ReturnBottles(c *gin.Context) {
	sid := c.Param("id")
	if err := id.ValidatePrefix(sid, id.PrefixSubscription); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid subscription ID format, expected sub_xxxxx")
		return
	}

	subID, err := h.returnUseCase.ResolveSID(c.Request.Context(), sid)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ReturnBottlesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	for _, bottleSID := range req.BottleIDs {
		if err := id.ValidatePrefix(bottleSID, id.PrefixBottle); err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "invalid bottle ID format, expected btl_xxxxx")
			return
		}
	}

	result, err := h.returnUseCase.Execute(c.Request.Context(), usecases.ReturnBottlesCommand{
		SubscriptionID: subID,
		BottleSIDs:     req.BottleIDs,
		Condition:      req.Condition,
		AsOf:           biztime.NowUTC(),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result, "Bottles returned successfully")
}
