package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	servdto "github.com/freshvale-inc/freshvale/internal/application/serviceability/dto"
	"github.com/freshvale-inc/freshvale/internal/application/serviceability/usecases"
	"github.com/freshvale-inc/freshvale/internal/shared/biztime"
	"github.com/freshvale-inc/freshvale/internal/shared/logger"
	"github.com/freshvale-inc/freshvale/internal/shared/utils"
)

// ServiceabilityHandler answers "which zone serves this address" queries.
type ServiceabilityHandler struct {
	resolveUseCase *usecases.ResolveZoneUseCase
	logger         logger.Interface
}

// NewServiceabilityHandler creates a new serviceability handler
func NewServiceabilityHandler(resolveUC *usecases.ResolveZoneUseCase, logger logger.Interface) *ServiceabilityHandler {
	return &ServiceabilityHandler{
		resolveUseCase: resolveUC,
		logger:         logger,
	}
}

func (h *ServiceabilityHandler) CheckServiceability(c *gin.Context) {
	addressID, err := strconv.ParseUint(c.Query("address_id"), 10, 64)
	if err != nil || addressID == 0 {
		utils.ErrorResponse(c, http.StatusBadRequest, "address_id is required")
		return
	}

	vertical := c.Query("vertical")
	if vertical == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "vertical is required")
		return
	}

	query := usecases.ResolveZoneQuery{
		AddressID:   uint(addressID),
		Vertical:    vertical,
		AsOf:        biztime.NowUTC(),
		BypassCache: c.Query("fresh") == "true",
	}

	res, err := h.resolveUseCase.Execute(c.Request.Context(), query)
	if err != nil {
		h.logger.Errorw("serviceability check failed", "error", err, "address_id", addressID)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, servdto.ResolutionDTO{
		Serviceable: res.Serviceable,
		Zone:        servdto.ToZoneDTO(res.Zone),
		MatchedBy:   string(res.MatchedBy),
		OverrideSID: res.OverrideSID,
	})
}
