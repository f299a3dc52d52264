package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/fennecpets/fennec/internal/clock"
	"github.com/fennecpets/fennec/internal/config"
	earningsdomain "github.com/fennecpets/fennec/internal/earnings/domain"
	"github.com/fennecpets/fennec/internal/observability"
	obsmiddleware "github.com/fennecpets/fennec/internal/observability/logger"
	obsmetrics "github.com/fennecpets/fennec/internal/observability/metrics"
	providerdomain "github.com/fennecpets/fennec/internal/provider/domain"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine      *gin.Engine
	cfg         config.Config
	db          *gorm.DB
	log         *zap.Logger
	clock       clock.Clock
	genID       *snowflake.Node
	earningsSvc earningsdomain.Service
	providerSvc providerdomain.Service
}

type ServerParams struct {
	fx.In

	Gin         *gin.Engine
	Cfg         config.Config
	DB          *gorm.DB
	Log         *zap.Logger
	Clock       clock.Clock
	GenID       *snowflake.Node
	EarningsSvc earningsdomain.Service
	ProviderSvc providerdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:      p.Gin,
		cfg:         p.Cfg,
		db:          p.DB,
		log:         p.Log.Named("http.server"),
		clock:       p.Clock,
		genID:       p.GenID,
		earningsSvc: p.EarningsSvc,
		providerSvc: p.ProviderSvc,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api/v1")

	// -------- Earnings (admin) --------
	admin := api.Group("/earnings/admin")
	admin.GET("/earnings", s.AdminMonthRow)
	admin.GET("/history-monthly", s.AdminHistoryMonthly)
	admin.GET("/global-stats", s.AdminGlobalStats)
	admin.POST("/collect-month", s.AdminCollectMonth)
	admin.POST("/uncollect-month", s.AdminUncollectMonth)
	admin.POST("/add-collection", s.AdminAddCollection)
	admin.POST("/subtract-collection", s.AdminSubtractCollection)

	// -------- Earnings (provider self-service) --------
	me := api.Group("/earnings/me")
	me.GET("/earnings", s.MyMonthRow)
	me.GET("/history-monthly", s.MyHistoryMonthly)

	// -------- Provider commissions --------
	commissions := api.Group("/admin/commissions")
	commissions.GET("", s.ListProviderCommissions)
	commissions.GET("/:id", s.GetProviderCommission)
	commissions.PATCH("/:id", s.UpdateProviderCommission)
	commissions.POST("/:id/reset", s.ResetProviderCommission)
}
