package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/swimfed-admin/swimfed-admin/internal/auth"
	"github.com/swimfed-admin/swimfed-admin/internal/config"
	"github.com/swimfed-admin/swimfed-admin/internal/edgecache"
	fiberlogger "github.com/swimfed-admin/swimfed-admin/internal/logger/adapter/fiber"
	"github.com/swimfed-admin/swimfed-admin/internal/notify"
	categoryhandler "github.com/swimfed-admin/swimfed-admin/internal/web/handler/admin/category"
	grouphandler "github.com/swimfed-admin/swimfed-admin/internal/web/handler/admin/group"
	permissionhandler "github.com/swimfed-admin/swimfed-admin/internal/web/handler/admin/permission"
	userhandler "github.com/swimfed-admin/swimfed-admin/internal/web/handler/admin/user"
	oidchandler "github.com/swimfed-admin/swimfed-admin/internal/web/handler/auth/oidc"
	"github.com/swimfed-admin/swimfed-admin/internal/web/handler/contact"
	"github.com/swimfed-admin/swimfed-admin/internal/web/handler/dashboard"
	livehandler "github.com/swimfed-admin/swimfed-admin/internal/web/handler/live"
	"github.com/swimfed-admin/swimfed-admin/internal/web/handler/login"
	"github.com/swimfed-admin/swimfed-admin/internal/web/handler/logout"
	meethandler "github.com/swimfed-admin/swimfed-admin/internal/web/handler/meet"
	newshandler "github.com/swimfed-admin/swimfed-admin/internal/web/handler/news"
	"github.com/swimfed-admin/swimfed-admin/internal/web/handler/public"
	recordhandler "github.com/swimfed-admin/swimfed-admin/internal/web/handler/record"
	seminarhandler "github.com/swimfed-admin/swimfed-admin/internal/web/handler/seminar"
)

const (
	// CheckAliveURI is the load balancer health endpoint.
	CheckAliveURI = "/checkalive"

	// MetricsURI exposes prometheus metrics.
	MetricsURI = "/metrics"
)

// Deps carries the outward-facing collaborators of the web service.
type Deps struct {
	// Publisher publishes public listings to the edge cache.
	Publisher edgecache.Publisher
	// Mailer sends approval and contact notifications. May be nil.
	Mailer notify.Mailer
	// Pusher announces live-stream starts. May be nil.
	Pusher notify.Pusher
	// OIDC is the social sign-in provider. Nil when social sign-in is disabled.
	OIDC *auth.OIDCProvider
}

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
	db           *gorm.DB
	authService  *auth.Service
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for graceful shutdown of the web service.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	// Wait interrupt or shutdown request through /shutdown
	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	// stop fiber http server
	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		err := s.App.Shutdown()
		if err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// New creates a new web service with the given configuration.
func New(cfg *config.Config, db *gorm.DB, deps Deps) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if db == nil {
		panic("db cannot be nil")
	}

	// create fiber app
	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
		},
	)

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New())
	}

	// access logging
	app.Use(fiberlogger.New(fiberlogger.Config{
		Config:        cfg.Log,
		CheckAliveURI: CheckAliveURI,
	}))

	// Initialize auth service
	authService := auth.NewService(db)

	// init web service
	service := &Service{
		cfg:         cfg,
		App:         app,
		db:          db,
		authService: authService,
	}

	service.alive.Store(true)

	app.Get(CheckAliveURI, func(c *fiber.Ctx) error {
		if !service.alive.Load() {
			return c.SendStatus(fiber.StatusServiceUnavailable)
		}

		return c.SendString("OK")
	})

	app.Get(MetricsURI, adaptor.HTTPHandler(promhttp.Handler()))

	// init handlers (they register their own routes with permission checks)
	initErr := func(name string, err error) {
		if err != nil {
			log.Fatal().Err(err).Str("handler", name).Msg("handler init failed")
		}
	}

	initErr("login", login.Handler.Init(app, cfg, db))
	initErr("logout", logout.Handler.Init(app, cfg, db))
	initErr("oidc", oidchandler.Handler.Init(app, cfg, db, deps.OIDC))
	initErr("dashboard", dashboard.Handler.Init(app, cfg, db, authService))
	initErr("admin/user", userhandler.Handler.Init(app, cfg, db, authService))
	initErr("admin/group", grouphandler.Handler.Init(app, cfg, db, authService))
	initErr("admin/category", categoryhandler.Handler.Init(app, cfg, db, authService))
	initErr("admin/permission", permissionhandler.Handler.Init(app, cfg, db, authService))
	initErr("news", newshandler.Handler.Init(app, cfg, db, authService, deps.Mailer))
	initErr("meet", meethandler.Handler.Init(app, cfg, db, authService, deps.Mailer))
	initErr("record", recordhandler.Handler.Init(app, cfg, db, authService, deps.Publisher, deps.Mailer))
	initErr("seminar", seminarhandler.Handler.Init(app, cfg, db, authService, deps.Publisher, deps.Mailer))
	initErr("live", livehandler.Handler.Init(app, cfg, db, authService, deps.Publisher, deps.Mailer, deps.Pusher))
	initErr("public", public.Handler.Init(app, cfg, db))
	initErr("contact", contact.Handler.Init(app, cfg, db, deps.Mailer))

	// redirect root to dashboard
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect(dashboard.Path)
	})

	return service
}
