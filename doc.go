// Package main provides the entry point of the CryptoYield administration service.
// It runs the first time setup of the platform, gates every other route until the
// system is initialized and lets administrators reset the investment, mining and
// transaction tables after a backup was written to the settings store.
// The service is a Fiber web server on top of gorm, see the app package for the
// available commands.
package main
