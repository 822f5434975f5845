package subscription

import "time"

const (
	// defaultMaxRetries bounds the retry loop around transient storage
	// failures before they surface as ErrStorageUnavailable.
	defaultMaxRetries = 3
	retryBackoff      = 50 * time.Millisecond
)
