package config

import (
	"time"

	"github.com/CryptoYield/CryptoYield/internal/logger"
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
	Redis     Redis
	Lock      Lock
}

// Webserver implement webserver settings.
type Webserver struct {
	DisableRecover  bool    // disable recover middleware
	Port            int     // listening port for the webserver
	ShutDownTime    int     // wait time for shutdown in seconds
	URL             string  // base url for the webserver
	TokenSecret     string  // HMAC secret for signing bearer tokens
	FunctionsPrefix string  // route prefix of the system functions, default /functions/v1
	Session         Session // session settings
}

// Redis holds the optional redis connection used for cluster wide leases.
type Redis struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

// Lock configures the leases serialising setup and reset.
type Lock struct {
	TTL time.Duration // lease lifetime; a crashed holder is taken over after it
}
