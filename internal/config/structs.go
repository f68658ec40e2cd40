package config

import (
	"time"

	"github.com/swimfed-admin/swimfed-admin/internal/logger"
)

// Session settings.
type Session struct {
	ExpiryTime time.Duration
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
	OIDC      OIDC
	Directory Directory
	BlobStore BlobStore
	SMTP      SMTP
	Push      Push
}

// Webserver implement webserver settings.
type Webserver struct {
	CleanPath      bool    // use clean path middleware to allow multi slash requests
	DisableRecover bool    // disable recover middleware
	Domain         string  // domain name for the webserver
	Port           int     // listening port for the webserver
	ShutDownTime   int     // wait time for shutdown
	URL            string  // base url for the webserver
	Session        Session // session settings
}

// OIDC holds the social identity provider settings.
type OIDC struct {
	Enabled      bool
	ProviderURL  string
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
}

// Directory holds the key-value pointer directory settings.
type Directory struct {
	Addr     string
	Password string
	DB       int
}

// BlobStore holds the blob object storage settings.
type BlobStore struct {
	Bucket   string
	Region   string
	Endpoint string
	// PublicBaseURL is the prefix under which stored object keys are
	// publicly reachable; published pointers are formed from it.
	PublicBaseURL string
}

// SMTP holds the transactional email settings.
type SMTP struct {
	Enabled  bool
	Host     string
	Port     int
	Username string
	Password string
	From     string
	// OfficeAddress receives contact-form submissions.
	OfficeAddress string
}

// Push holds the messaging-platform push API settings.
type Push struct {
	Enabled  bool
	Endpoint string
	Token    string
}
