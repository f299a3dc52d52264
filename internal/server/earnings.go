package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	earningsdomain "github.com/fennecpets/fennec/internal/earnings/domain"
	"github.com/fennecpets/fennec/internal/earnings/monthkey"
	providerdomain "github.com/fennecpets/fennec/internal/provider/domain"
	"github.com/gin-gonic/gin"
)

const HeaderUserID = "X-User-Id"

type collectMonthRequest struct {
	ProviderID string  `json:"providerId"`
	Month      string  `json:"month"`
	Kind       string  `json:"kind"`
	Amount     *int64  `json:"amount"`
	Note       *string `json:"note"`
}

type adjustCollectionRequest struct {
	ProviderID string  `json:"providerId"`
	Month      string  `json:"month"`
	Kind       string  `json:"kind"`
	Amount     *int64  `json:"amount"`
	Note       *string `json:"note"`
}

type uncollectMonthRequest struct {
	ProviderID string `json:"providerId"`
	Month      string `json:"month"`
	Kind       string `json:"kind"`
}

func (s *Server) AdminMonthRow(c *gin.Context) {
	providerID, err := parseSnowflakeID("providerId", c.Query("providerId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	row, err := s.earningsSvc.MonthRow(c.Request.Context(), providerID, s.monthOrCurrent(c.Query("month")), kindOrVet(parseKindParam(c.Query("kind"))))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, row)
}

func (s *Server) AdminHistoryMonthly(c *gin.Context) {
	providerID, err := parseSnowflakeID("providerId", c.Query("providerId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	rows, err := s.earningsSvc.HistoryMonthly(c.Request.Context(), providerID, parseMonthsParam(c.Query("months")), kindOrVet(parseKindParam(c.Query("kind"))))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"months": rows})
}

func (s *Server) AdminGlobalStats(c *gin.Context) {
	stats, err := s.earningsSvc.GlobalStats(c.Request.Context(), parseMonthsParam(c.Query("months")), parseKindParam(c.Query("kind")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (s *Server) AdminCollectMonth(c *gin.Context) {
	var req collectMonthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	providerID, month, kind, err := resolveCollectionKey(req.ProviderID, req.Month, req.Kind)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	row, err := s.earningsSvc.Collect(c.Request.Context(), earningsdomain.CollectRequest{
		ProviderID: providerID,
		Month:      month,
		Kind:       kind,
		Amount:     req.Amount,
		Note:       req.Note,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, row)
}

func (s *Server) AdminUncollectMonth(c *gin.Context) {
	var req uncollectMonthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	providerID, month, kind, err := resolveCollectionKey(req.ProviderID, req.Month, req.Kind)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	row, err := s.earningsSvc.Uncollect(c.Request.Context(), providerID, month, kind)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, row)
}

func (s *Server) AdminAddCollection(c *gin.Context) {
	s.adjustCollection(c, s.earningsSvc.AddToCollection)
}

func (s *Server) AdminSubtractCollection(c *gin.Context) {
	s.adjustCollection(c, s.earningsSvc.SubtractFromCollection)
}

func (s *Server) adjustCollection(c *gin.Context, op func(ctx context.Context, req earningsdomain.AdjustRequest) (earningsdomain.MonthRow, error)) {
	var req adjustCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	providerID, month, kind, err := resolveCollectionKey(req.ProviderID, req.Month, req.Kind)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if req.Amount == nil {
		AbortWithError(c, newValidationError("amount", "invalid_amount", "amount is required"))
		return
	}

	row, err := op(c.Request.Context(), earningsdomain.AdjustRequest{
		ProviderID: providerID,
		Month:      month,
		Kind:       kind,
		Amount:     *req.Amount,
		Note:       req.Note,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, row)
}

func (s *Server) MyMonthRow(c *gin.Context) {
	profile, err := s.currentProvider(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	row, err := s.earningsSvc.MonthRow(c.Request.Context(), profile.ID, s.monthOrCurrent(c.Query("month")), kindOrProfile(parseKindParam(c.Query("kind")), profile))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, row)
}

func (s *Server) MyHistoryMonthly(c *gin.Context) {
	profile, err := s.currentProvider(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	rows, err := s.earningsSvc.HistoryMonthly(c.Request.Context(), profile.ID, parseMonthsParam(c.Query("months")), kindOrProfile(parseKindParam(c.Query("kind")), profile))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"months": rows})
}

// currentProvider resolves the calling provider from the user identity
// the gateway injects.
func (s *Server) currentProvider(c *gin.Context) (*providerdomain.ProviderProfile, error) {
	raw := strings.TrimSpace(c.GetHeader(HeaderUserID))
	if raw == "" {
		return nil, ErrUnauthorized
	}
	userID, err := snowflake.ParseString(raw)
	if err != nil || userID == 0 {
		return nil, ErrUnauthorized
	}
	return s.providerSvc.FindByUserID(c.Request.Context(), userID)
}

func (s *Server) monthOrCurrent(month string) string {
	if strings.TrimSpace(month) == "" {
		return monthkey.Format(s.clock.Now())
	}
	return month
}

func resolveCollectionKey(providerID, month, kind string) (snowflake.ID, string, providerdomain.Kind, error) {
	id, err := parseSnowflakeID("providerId", providerID)
	if err != nil {
		return 0, "", "", err
	}
	if strings.TrimSpace(month) == "" {
		return 0, "", "", newValidationError("month", "invalid_month", "month is required")
	}
	return id, month, kindOrVet(parseKindParam(kind)), nil
}

func kindOrVet(kind *providerdomain.Kind) providerdomain.Kind {
	if kind == nil {
		return providerdomain.KindVet
	}
	return *kind
}

func kindOrProfile(kind *providerdomain.Kind, profile *providerdomain.ProviderProfile) providerdomain.Kind {
	if kind == nil {
		return profile.Kind()
	}
	return *kind
}
