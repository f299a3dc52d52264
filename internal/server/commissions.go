package server

import (
	"net/http"
	"strings"

	providerdomain "github.com/fennecpets/fennec/internal/provider/domain"
	"github.com/gin-gonic/gin"
)

type updateCommissionRequest struct {
	VetCommissionDa           *int64 `json:"vetCommissionDa"`
	DaycareHourlyCommissionDa *int64 `json:"daycareHourlyCommissionDa"`
	DaycareDailyCommissionDa  *int64 `json:"daycareDailyCommissionDa"`
	PetshopCommissionPercent  *int64 `json:"petshopCommissionPercent"`
}

func (s *Server) ListProviderCommissions(c *gin.Context) {
	isApproved, err := parseOptionalBool(c.Query("isApproved"))
	if err != nil {
		AbortWithError(c, newValidationError("isApproved", "invalid_isApproved", "invalid boolean"))
		return
	}

	commissions, err := s.providerSvc.ListCommissions(c.Request.Context(), providerdomain.ListCommissionsRequest{
		Query:      strings.TrimSpace(c.Query("q")),
		IsApproved: isApproved,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"providers": commissions})
}

func (s *Server) GetProviderCommission(c *gin.Context) {
	providerID, err := parseSnowflakeID("id", c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	commission, err := s.providerSvc.GetCommission(c.Request.Context(), providerID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, commission)
}

func (s *Server) UpdateProviderCommission(c *gin.Context) {
	providerID, err := parseSnowflakeID("id", c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req updateCommissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	commission, err := s.providerSvc.UpdateCommission(c.Request.Context(), providerID, providerdomain.UpdateCommissionRequest{
		VetCommissionDa:           req.VetCommissionDa,
		DaycareHourlyCommissionDa: req.DaycareHourlyCommissionDa,
		DaycareDailyCommissionDa:  req.DaycareDailyCommissionDa,
		PetshopCommissionPercent:  req.PetshopCommissionPercent,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, commission)
}

func (s *Server) ResetProviderCommission(c *gin.Context) {
	providerID, err := parseSnowflakeID("id", c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	commission, err := s.providerSvc.ResetCommission(c.Request.Context(), providerID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, commission)
}
