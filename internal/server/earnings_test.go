package server

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/fennecpets/fennec/internal/clock"
	earningsdomain "github.com/fennecpets/fennec/internal/earnings/domain"
	providerdomain "github.com/fennecpets/fennec/internal/provider/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type fakeEarningsService struct {
	lastProviderID snowflake.ID
	lastMonth      string
	lastMonths     int
	lastKind       providerdomain.Kind
	lastAmount     int64
	monthRowErr    error
}

func (f *fakeEarningsService) MonthRow(ctx context.Context, providerID snowflake.ID, month string, kind providerdomain.Kind) (earningsdomain.MonthRow, error) {
	f.lastProviderID = providerID
	f.lastMonth = month
	f.lastKind = kind
	if f.monthRowErr != nil {
		return earningsdomain.MonthRow{}, f.monthRowErr
	}
	return earningsdomain.MonthRow{Month: month, Kind: kind}, nil
}

func (f *fakeEarningsService) HistoryMonthly(ctx context.Context, providerID snowflake.ID, months int, kind providerdomain.Kind) ([]earningsdomain.MonthRow, error) {
	f.lastProviderID = providerID
	f.lastMonths = months
	f.lastKind = kind
	return []earningsdomain.MonthRow{}, nil
}

func (f *fakeEarningsService) Collect(ctx context.Context, req earningsdomain.CollectRequest) (earningsdomain.MonthRow, error) {
	f.lastProviderID = req.ProviderID
	f.lastMonth = req.Month
	f.lastKind = req.Kind
	return earningsdomain.MonthRow{Month: req.Month, Kind: req.Kind}, nil
}

func (f *fakeEarningsService) AddToCollection(ctx context.Context, req earningsdomain.AdjustRequest) (earningsdomain.MonthRow, error) {
	f.lastProviderID = req.ProviderID
	f.lastMonth = req.Month
	f.lastKind = req.Kind
	f.lastAmount = req.Amount
	return earningsdomain.MonthRow{Month: req.Month, Kind: req.Kind}, nil
}

func (f *fakeEarningsService) SubtractFromCollection(ctx context.Context, req earningsdomain.AdjustRequest) (earningsdomain.MonthRow, error) {
	f.lastProviderID = req.ProviderID
	f.lastMonth = req.Month
	f.lastKind = req.Kind
	f.lastAmount = req.Amount
	return earningsdomain.MonthRow{Month: req.Month, Kind: req.Kind}, nil
}

func (f *fakeEarningsService) Uncollect(ctx context.Context, providerID snowflake.ID, month string, kind providerdomain.Kind) (earningsdomain.MonthRow, error) {
	f.lastProviderID = providerID
	f.lastMonth = month
	f.lastKind = kind
	return earningsdomain.MonthRow{Month: month, Kind: kind}, nil
}

func (f *fakeEarningsService) GlobalStats(ctx context.Context, months int, kind *providerdomain.Kind) (earningsdomain.GlobalStats, error) {
	f.lastMonths = months
	if kind != nil {
		f.lastKind = *kind
	} else {
		f.lastKind = ""
	}
	return earningsdomain.GlobalStats{Months: months}, nil
}

type fakeProviderService struct {
	profile *providerdomain.ProviderProfile
}

func (f *fakeProviderService) ListCommissions(ctx context.Context, req providerdomain.ListCommissionsRequest) ([]providerdomain.ProviderCommission, error) {
	return nil, nil
}

func (f *fakeProviderService) GetCommission(ctx context.Context, providerID snowflake.ID) (providerdomain.ProviderCommission, error) {
	if f.profile == nil || f.profile.ID != providerID {
		return providerdomain.ProviderCommission{}, providerdomain.ErrNotFound
	}
	return providerdomain.ProviderCommission{ProviderID: providerID.String()}, nil
}

func (f *fakeProviderService) UpdateCommission(ctx context.Context, providerID snowflake.ID, req providerdomain.UpdateCommissionRequest) (providerdomain.ProviderCommission, error) {
	return f.GetCommission(ctx, providerID)
}

func (f *fakeProviderService) ResetCommission(ctx context.Context, providerID snowflake.ID) (providerdomain.ProviderCommission, error) {
	return f.GetCommission(ctx, providerID)
}

func (f *fakeProviderService) FindByUserID(ctx context.Context, userID snowflake.ID) (*providerdomain.ProviderProfile, error) {
	if f.profile == nil || f.profile.UserID != userID {
		return nil, providerdomain.ErrNotFound
	}
	return f.profile, nil
}

func newTestServer(earningsSvc earningsdomain.Service, providerSvc providerdomain.Service) *Server {
	gin.SetMode(gin.TestMode)

	srv := &Server{
		engine:      gin.New(),
		log:         zap.NewNop(),
		clock:       clock.NewFakeClock(time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)),
		earningsSvc: earningsSvc,
		providerSvc: providerSvc,
	}
	srv.engine.Use(ErrorHandlingMiddleware())
	srv.registerAPIRoutes()
	return srv
}

func doRequest(srv *Server, method, target, body string, header map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	resp := httptest.NewRecorder()
	srv.engine.ServeHTTP(resp, req)
	return resp
}

func TestAdminHistoryMonthsDefaults(t *testing.T) {
	earningsSvc := &fakeEarningsService{}
	srv := newTestServer(earningsSvc, &fakeProviderService{})

	resp := doRequest(srv, http.MethodGet, "/api/v1/earnings/admin/history-monthly?providerId=123456789", "", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if earningsSvc.lastMonths != 12 {
		t.Fatalf("expected default 12 months, got %d", earningsSvc.lastMonths)
	}

	// Malformed values silently fall back to the default.
	resp = doRequest(srv, http.MethodGet, "/api/v1/earnings/admin/history-monthly?providerId=123456789&months=abc", "", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if earningsSvc.lastMonths != 12 {
		t.Fatalf("expected fallback 12 months, got %d", earningsSvc.lastMonths)
	}

	resp = doRequest(srv, http.MethodGet, "/api/v1/earnings/admin/history-monthly?providerId=123456789&months=5&kind=daycare", "", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if earningsSvc.lastMonths != 5 {
		t.Fatalf("expected 5 months, got %d", earningsSvc.lastMonths)
	}
	if earningsSvc.lastKind != providerdomain.KindDaycare {
		t.Fatalf("expected daycare kind, got %s", earningsSvc.lastKind)
	}
}

func TestAdminMonthRowDefaultsToCurrentMonth(t *testing.T) {
	earningsSvc := &fakeEarningsService{}
	srv := newTestServer(earningsSvc, &fakeProviderService{})

	resp := doRequest(srv, http.MethodGet, "/api/v1/earnings/admin/earnings?providerId=123456789", "", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if earningsSvc.lastMonth != "2025-06" {
		t.Fatalf("expected current month 2025-06, got %q", earningsSvc.lastMonth)
	}
	if earningsSvc.lastKind != providerdomain.KindVet {
		t.Fatalf("expected vet default, got %s", earningsSvc.lastKind)
	}
}

func TestAdminMonthRowInvalidProviderID(t *testing.T) {
	srv := newTestServer(&fakeEarningsService{}, &fakeProviderService{})

	resp := doRequest(srv, http.MethodGet, "/api/v1/earnings/admin/earnings?providerId=not-a-number", "", nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestAdminMonthRowUnknownProviderMapsTo404(t *testing.T) {
	earningsSvc := &fakeEarningsService{monthRowErr: providerdomain.ErrNotFound}
	srv := newTestServer(earningsSvc, &fakeProviderService{})

	resp := doRequest(srv, http.MethodGet, "/api/v1/earnings/admin/earnings?providerId=123456789", "", nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestAdminAddCollectionRequiresAmount(t *testing.T) {
	srv := newTestServer(&fakeEarningsService{}, &fakeProviderService{})

	resp := doRequest(srv, http.MethodPost, "/api/v1/earnings/admin/add-collection",
		`{"providerId":"123456789","month":"2025-06","kind":"vet"}`, nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestAdminCollectMonthRequiresMonth(t *testing.T) {
	srv := newTestServer(&fakeEarningsService{}, &fakeProviderService{})

	resp := doRequest(srv, http.MethodPost, "/api/v1/earnings/admin/collect-month",
		`{"providerId":"123456789","kind":"vet"}`, nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestMyEndpointsRequireUserHeader(t *testing.T) {
	srv := newTestServer(&fakeEarningsService{}, &fakeProviderService{})

	resp := doRequest(srv, http.MethodGet, "/api/v1/earnings/me/earnings", "", nil)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
}

func TestMyMonthRowUsesProfileKind(t *testing.T) {
	profile := &providerdomain.ProviderProfile{
		ID:          snowflake.ID(42),
		UserID:      snowflake.ID(7),
		Specialties: datatypes.JSON([]byte(`{"kind":"daycare"}`)),
	}
	earningsSvc := &fakeEarningsService{}
	srv := newTestServer(earningsSvc, &fakeProviderService{profile: profile})

	resp := doRequest(srv, http.MethodGet, "/api/v1/earnings/me/earnings?month=2025-05", "",
		map[string]string{HeaderUserID: "7"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if earningsSvc.lastProviderID != profile.ID {
		t.Fatalf("expected provider %d, got %d", profile.ID, earningsSvc.lastProviderID)
	}
	if earningsSvc.lastKind != providerdomain.KindDaycare {
		t.Fatalf("expected daycare kind, got %s", earningsSvc.lastKind)
	}
}

func TestMyMonthRowUnknownUserMapsTo404(t *testing.T) {
	srv := newTestServer(&fakeEarningsService{}, &fakeProviderService{})

	resp := doRequest(srv, http.MethodGet, "/api/v1/earnings/me/earnings", "",
		map[string]string{HeaderUserID: "999"})
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestGetProviderCommissionNotFound(t *testing.T) {
	srv := newTestServer(&fakeEarningsService{}, &fakeProviderService{})

	resp := doRequest(srv, http.MethodGet, "/api/v1/admin/commissions/123456789", "", nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}
