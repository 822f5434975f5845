package wallet

import "time"

// Default configuration values
const (
	DefaultMaxRetries = 3
	retryBackoff      = 50 * time.Millisecond
)
