package common

import "time"

const (
	// MaxRequestBody limits JSON request bodies.
	MaxRequestBody = 1 << 20
	// MaxWebhookBody limits payment webhook payloads.
	MaxWebhookBody = 64 << 10
	// RequestTimeout bounds the datastore work of one request.
	RequestTimeout = 5 * time.Second
)
