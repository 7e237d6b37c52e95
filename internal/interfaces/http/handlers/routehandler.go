package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/freshvale-inc/freshvale/internal/application/route/usecases"
	"github.com/freshvale-inc/freshvale/internal/shared/biztime"
	"github.com/freshvale-inc/freshvale/internal/shared/id"
	"github.com/freshvale-inc/freshvale/internal/shared/logger"
	"github.com/freshvale-inc/freshvale/internal/shared/utils"
)

// RouteHandler handles delivery route sequencing operations
type RouteHandler struct {
	getUseCase          *usecases.GetRouteUseCase
	listUseCase         *usecases.ListRoutesUseCase
	addStopUseCase      *usecases.AddStopUseCase
	removeStopUseCase   *usecases.RemoveStopUseCase
	moveStopUseCase     *usecases.MoveStopUseCase
	saveSequenceUseCase *usecases.SaveSequenceUseCase
	logger              logger.Interface
}

// NewRouteHandler creates a new route handler
func NewRouteHandler(
	getUC *usecases.GetRouteUseCase,
	listUC *usecases.ListRoutesUseCase,
	addStopUC *usecases.AddStopUseCase,
	removeStopUC *usecases.RemoveStopUseCase,
	moveStopUC *usecases.MoveStopUseCase,
	saveSequenceUC *usecases.SaveSequenceUseCase,
	logger logger.Interface,
) *RouteHandler {
	return &RouteHandler{
		getUseCase:          getUC,
		listUseCase:         listUC,
		addStopUseCase:      addStopUC,
		removeStopUseCase:   removeStopUC,
		moveStopUseCase:     moveStopUC,
		saveSequenceUseCase: saveSequenceUC,
		logger:              logger,
	}
}

// StopRequest addresses one stop by its address.
type StopRequest struct {
	AddressID uint `json:"address_id" binding:"required"`
}

// MoveStopRequest moves the stop at a zero-based index one position.
type MoveStopRequest struct {
	Index     int    `json:"index" binding:"min=0"`
	Direction string `json:"direction" binding:"required,oneof=up down"`
}

// SaveSequenceRequest replaces the whole visiting order.
type SaveSequenceRequest struct {
	AddressIDs []uint `json:"address_ids" binding:"required,min=1"`
}

func (h *RouteHandler) resolveRoute(c *gin.Context) (uint, bool) {
	sid := c.Param("id")
	if err := id.ValidatePrefix(sid, id.PrefixRoute); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid route ID format, expected route_xxxxx")
		return 0, false
	}

	routeID, err := h.getUseCase.ResolveSID(c.Request.Context(), sid)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return 0, false
	}
	return routeID, true
}

func (h *RouteHandler) ListRoutes(c *gin.Context) {
	hubID, err := strconv.ParseUint(c.Query("hub_id"), 10, 64)
	if err != nil || hubID == 0 {
		utils.ErrorResponse(c, http.StatusBadRequest, "hub_id is required")
		return
	}

	result, err := h.listUseCase.Execute(c.Request.Context(), usecases.ListRoutesQuery{HubID: uint(hubID)})
	if err != nil {
		h.logger.Errorw("failed to list routes", "error", err, "hub_id", hubID)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}

func (h *RouteHandler) GetRoute(c *gin.Context) {
	routeID, ok := h.resolveRoute(c)
	if !ok {
		return
	}

	result, err := h.getUseCase.Execute(c.Request.Context(), usecases.GetRouteQuery{RouteID: routeID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}

func (h *RouteHandler) AddStop(c *gin.Context) {
	routeID, ok := h.resolveRoute(c)
	if !ok {
		return
	}

	var req StopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.addStopUseCase.Execute(c.Request.Context(), usecases.AddStopCommand{
		RouteID:   routeID,
		AddressID: req.AddressID,
		AsOf:      biztime.NowUTC(),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result, "Stop added successfully")
}

func (h *RouteHandler) RemoveStop(c *gin.Context) {
	routeID, ok := h.resolveRoute(c)
	if !ok {
		return
	}

	var req StopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.removeStopUseCase.Execute(c.Request.Context(), usecases.RemoveStopCommand{
		RouteID:   routeID,
		AddressID: req.AddressID,
		AsOf:      biztime.NowUTC(),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result, "Stop removed successfully")
}

func (h *RouteHandler) MoveStop(c *gin.Context) {
	routeID, ok := h.resolveRoute(c)
	if !ok {
		return
	}

	var req MoveStopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.moveStopUseCase.Execute(c.Request.Context(), usecases.MoveStopCommand{
		RouteID:   routeID,
		StopIndex: req.Index,
		Direction: req.Direction,
		AsOf:      biztime.NowUTC(),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result, "Stop moved successfully")
}

func (h *RouteHandler) SaveSequence(c *gin.Context) {
	routeID, ok := h.resolveRoute(c)
	if !ok {
		return
	}

	var req SaveSequenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.saveSequenceUseCase.Execute(c.Request.Context(), usecases.SaveSequenceCommand{
		RouteID:    routeID,
		AddressIDs: req.AddressIDs,
		AsOf:       biztime.NowUTC(),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result, "Route sequence saved successfully")
}
