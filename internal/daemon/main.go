// Package daemon assembles the application: database, session store, edge
// cache publisher, notification senders and the web service.
package daemon

import (
	"context"
	"fmt"

	sessionmysql "github.com/gofiber/storage/mysql/v2"
	"github.com/gofiber/storage/s3/v2"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/swimfed-admin/swimfed-admin/internal/auth"
	"github.com/swimfed-admin/swimfed-admin/internal/config"
	"github.com/swimfed-admin/swimfed-admin/internal/db/dsn"
	"github.com/swimfed-admin/swimfed-admin/internal/db/models"
	"github.com/swimfed-admin/swimfed-admin/internal/edgecache"
	"github.com/swimfed-admin/swimfed-admin/internal/notify"
	"github.com/swimfed-admin/swimfed-admin/internal/web"
	"github.com/swimfed-admin/swimfed-admin/internal/web/session"
)

// Daemon represents the main application daemon.
type Daemon struct {
	webService *web.Service
	directory  *edgecache.RedisDirectory
	listenAddr string
}

// Start starts the Daemon's web service.
func (d *Daemon) Start() error {
	defer func() {
		if err := d.directory.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close directory client")
		}
	}()

	return d.webService.Start(d.listenAddr)
}

// WaitShutdown blocks until the web service finished its graceful shutdown.
func (d *Daemon) WaitShutdown() {
	d.webService.WaitShutdown()
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) *Daemon {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil
	}

	dbDriver := gormmysql.Open(dsn.Create(cfg)) // open db with gorm mysql driver

	db, err := gorm.Open(dbDriver, &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	if err = db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.GroupMember{},
		&models.Category{},
		&models.Permission{},
		&models.News{},
		&models.Meet{},
		&models.Record{},
		&models.Seminar{},
		&models.Live{},
		&models.ContactMessage{},
	); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	seed(cfg, db)

	// Initialize fiber session store
	sessionStorage := sessionmysql.New(sessionmysql.Config{
		ConnectionURI: dsn.Create(cfg),
		Table:         "sessions",
	})

	session.Init(sessionStorage)

	// Pointer directory for the edge cache
	directory, err := edgecache.NewRedisDirectory(
		context.Background(),
		cfg.Directory.Addr,
		cfg.Directory.Password,
		cfg.Directory.DB,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect pointer directory")
	}

	// Blob store for published snapshots
	blobStorage := s3.New(s3.Config{
		Bucket:   cfg.BlobStore.Bucket,
		Region:   cfg.BlobStore.Region,
		Endpoint: cfg.BlobStore.Endpoint,
	})

	publisher := edgecache.NewService(blobStorage, directory, cfg.BlobStore.PublicBaseURL)

	deps := web.Deps{
		Publisher: publisher,
		Mailer:    newMailer(cfg),
		Pusher:    newPusher(cfg),
		OIDC:      newOIDCProvider(cfg, db),
	}

	return &Daemon{
		webService: web.New(cfg, db, deps),
		directory:  directory,
		listenAddr: fmt.Sprintf(":%d", cfg.Webserver.Port),
	}
}

// newMailer returns nil when transactional email is disabled.
func newMailer(cfg *config.Config) notify.Mailer {
	if !cfg.SMTP.Enabled {
		log.Info().Msg("transactional email disabled")
		return nil
	}

	return notify.NewSMTPMailer(notify.SMTPConfig{
		Enabled:  true,
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})
}

// newPusher returns nil when push messaging is disabled.
func newPusher(cfg *config.Config) notify.Pusher {
	if !cfg.Push.Enabled {
		log.Info().Msg("push messaging disabled")
		return nil
	}

	return notify.NewHTTPPusher(notify.PushConfig{
		Enabled:  true,
		Endpoint: cfg.Push.Endpoint,
		Token:    cfg.Push.Token,
	})
}

// newOIDCProvider returns nil when social sign-in is disabled.
func newOIDCProvider(cfg *config.Config, db *gorm.DB) *auth.OIDCProvider {
	if !cfg.OIDC.Enabled {
		log.Info().Msg("social sign-in disabled")
		return nil
	}

	provider, err := auth.NewOIDCProvider(context.Background(), &auth.OIDCConfig{
		Enabled:      cfg.OIDC.Enabled,
		ProviderURL:  cfg.OIDC.ProviderURL,
		ClientID:     cfg.OIDC.ClientID,
		ClientSecret: cfg.OIDC.ClientSecret,
		RedirectURL:  cfg.OIDC.RedirectURL,
		Scopes:       cfg.OIDC.Scopes,
	}, db)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init social sign-in provider")
	}

	return provider
}
