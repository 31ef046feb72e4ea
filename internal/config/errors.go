package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("toml config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrTokenSecretTooShort error if the bearer token signing secret is missing or too short.
	ErrTokenSecretTooShort = errors.New("toml config webserver.tokensecret must be at least 16 characters")

	// ErrUnknownGormEngine error if db.gormengine names an unsupported driver.
	ErrUnknownGormEngine = errors.New("toml config db.gormengine is not supported")

	// ErrEmptyRedisAddr error if redis is enabled without an address.
	ErrEmptyRedisAddr = errors.New("toml config redis.addr can not be empty when redis is enabled")
)
