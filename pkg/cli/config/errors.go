package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrProfileNotFound = goerr.New("risk profile file not found")
)
