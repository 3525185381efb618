package server

import (
	"context"
	"net/http"
	"time"

	"github.com/agrilinklabs/agrilink/internal/actor"
	actordomain "github.com/agrilinklabs/agrilink/internal/actor/domain"
	"github.com/agrilinklabs/agrilink/internal/blog"
	blogdomain "github.com/agrilinklabs/agrilink/internal/blog/domain"
	"github.com/agrilinklabs/agrilink/internal/config"
	"github.com/agrilinklabs/agrilink/internal/document"
	documentdomain "github.com/agrilinklabs/agrilink/internal/document/domain"
	"github.com/agrilinklabs/agrilink/internal/link"
	linkdomain "github.com/agrilinklabs/agrilink/internal/link/domain"
	"github.com/agrilinklabs/agrilink/internal/mission"
	missiondomain "github.com/agrilinklabs/agrilink/internal/mission/domain"
	"github.com/agrilinklabs/agrilink/internal/notification"
	notificationdomain "github.com/agrilinklabs/agrilink/internal/notification/domain"
	"github.com/agrilinklabs/agrilink/internal/observability"
	obsmiddleware "github.com/agrilinklabs/agrilink/internal/observability/logger"
	obsmetrics "github.com/agrilinklabs/agrilink/internal/observability/metrics"
	obstracing "github.com/agrilinklabs/agrilink/internal/observability/tracing"
	"github.com/agrilinklabs/agrilink/internal/pricing"
	pricingdomain "github.com/agrilinklabs/agrilink/internal/pricing/domain"
	"github.com/agrilinklabs/agrilink/internal/pricingrule"
	"github.com/agrilinklabs/agrilink/internal/providers/email"
	"github.com/agrilinklabs/agrilink/internal/quote"
	quotedomain "github.com/agrilinklabs/agrilink/internal/quote/domain"
	"github.com/agrilinklabs/agrilink/internal/ratelimit"
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	config.Module,
	fx.Provide(registerGin),
	email.Module,
	ratelimit.Module,
	pricingrule.Module,
	pricing.Module,
	quote.Module,
	actor.Module,
	mission.Module,
	document.Module,
	blog.Module,
	notification.Module,
	link.Module,
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
	r.Use(obstracing.GinMiddleware())
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

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
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

type ServerParams struct {
	fx.In

	Gin   *gin.Engine
	Cfg   config.Config
	DB    *gorm.DB
	GenID *snowflake.Node

	PricingSvc      pricingdomain.Service
	QuoteSvc        quotedomain.Service
	ActorSvc        actordomain.Service
	MissionSvc      missiondomain.Service
	DocumentSvc     documentdomain.Service
	BlogSvc         blogdomain.Service
	NotificationSvc notificationdomain.Service
	LinkSvc         linkdomain.Service

	ObsMetrics   *obsmetrics.Metrics     `optional:"true"`
	QuoteLimiter *ratelimit.QuoteLimiter `optional:"true"`
}

type Server struct {
	engine *gin.Engine
	cfg    config.Config
	db     *gorm.DB
	genID  *snowflake.Node

	pricingSvc      pricingdomain.Service
	quoteSvc        quotedomain.Service
	actorSvc        actordomain.Service
	missionSvc      missiondomain.Service
	documentSvc     documentdomain.Service
	blogSvc         blogdomain.Service
	notificationSvc notificationdomain.Service
	linkSvc         linkdomain.Service

	obsMetrics   *obsmetrics.Metrics
	quoteLimiter *ratelimit.QuoteLimiter
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		db:              p.DB,
		genID:           p.GenID,
		pricingSvc:      p.PricingSvc,
		quoteSvc:        p.QuoteSvc,
		actorSvc:        p.ActorSvc,
		missionSvc:      p.MissionSvc,
		documentSvc:     p.DocumentSvc,
		blogSvc:         p.BlogSvc,
		notificationSvc: p.NotificationSvc,
		linkSvc:         p.LinkSvc,
		obsMetrics:      p.ObsMetrics,
		quoteLimiter:    p.QuoteLimiter,
	}

	svc.registerPublicRoutes()
	svc.registerAdminRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerPublicRoutes() {
	api := s.engine.Group("/api")

	api.POST("/quotes", s.QuoteRateLimit(), s.CreateQuote)
	api.GET("/posts", s.ListPublishedPosts)
	api.GET("/posts/:slug", s.GetPostBySlug)
	api.GET("/links", s.ListActiveLinks)
}

func (s *Server) registerAdminRoutes() {
	admin := s.engine.Group("/admin")
	admin.Use(s.AdminKeyRequired())

	admin.GET("/pricing", s.GetPricingSnapshot)
	admin.POST("/pricing/refresh", s.RefreshPricing)
	admin.PUT("/pricing/:dimension/:key", s.RecordPricingEdit)
	admin.POST("/pricing/:dimension/:key/commit", s.CommitPricingEdit)
	admin.DELETE("/pricing/:dimension/:key", s.CancelPricingEdit)

	admin.POST("/actors", s.CreateActor)
	admin.GET("/actors", s.ListActors)
	admin.GET("/actors/:id", s.GetActorByID)
	admin.PATCH("/actors/:id", s.UpdateActor)
	admin.DELETE("/actors/:id", s.DeleteActor)

	admin.POST("/missions", s.CreateMission)
	admin.GET("/missions", s.ListMissions)
	admin.GET("/missions/:id", s.GetMissionByID)
	admin.PATCH("/missions/:id", s.UpdateMission)
	admin.POST("/missions/:id/status", s.TransitionMission)
	admin.DELETE("/missions/:id", s.DeleteMission)

	admin.POST("/documents", s.CreateDocument)
	admin.GET("/documents", s.ListDocuments)
	admin.GET("/documents/:id", s.GetDocumentByID)
	admin.POST("/documents/:id/review", s.ReviewDocument)
	admin.DELETE("/documents/:id", s.DeleteDocument)

	admin.POST("/posts", s.CreatePost)
	admin.GET("/posts", s.ListPosts)
	admin.GET("/posts/:id", s.GetPostByID)
	admin.PATCH("/posts/:id", s.UpdatePost)
	admin.DELETE("/posts/:id", s.DeletePost)

	admin.POST("/notifications", s.CreateNotification)
	admin.GET("/notifications", s.ListNotifications)
	admin.POST("/notifications/:id/read", s.MarkNotificationRead)
	admin.POST("/notifications/read-all", s.MarkAllNotificationsRead)

	admin.POST("/links", s.CreateLink)
	admin.GET("/links", s.ListLinks)
	admin.GET("/links/:id", s.GetLinkByID)
	admin.PATCH("/links/:id", s.UpdateLink)
	admin.DELETE("/links/:id", s.DeleteLink)
}
