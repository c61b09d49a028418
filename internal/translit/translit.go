// Package translit provides the core abstractions for the transliteration client.
// This package defines the Client interface that the remote service implementation
// (see internal/api) must implement, along with the message and language types
// shared by the session and the CLI.
package translit

import (
	"context"
)

// FailureMessage is the user-facing content of a Bot message that represents
// a failed transliteration call.
const FailureMessage = "Sorry, something went wrong. Please try again."

// Correction is a user-supplied (original text, corrected transliteration) pair.
type Correction struct {
	Key   string `json:"key"`   // Original input text
	Value string `json:"value"` // Corrected transliteration
}

// HealthStatus is the payload reported by the service health endpoint.
type HealthStatus struct {
	Status        string `json:"status"`
	Database      string `json:"database,omitempty"`
	FeedbackCount int    `json:"feedback_count,omitempty"`
	Error         string `json:"error,omitempty"`
}

// Healthy reports whether the service described itself as healthy.
func (h *HealthStatus) Healthy() bool {
	return h != nil && h.Status == "healthy"
}

// Client defines the interface for the remote transliteration service.
//
// Example usage:
//
//	client := api.NewClient(cfg)
//	result, err := client.Transliterate(ctx, "hello", translit.LanguagePunjabi)
type Client interface {
	// Transliterate sends text to the service and returns the transliterated result.
	// lang is LanguageAuto to let the service detect the direction.
	Transliterate(ctx context.Context, text string, lang Language) (string, error)

	// Contribute submits a correction. Only success or failure matters.
	Contribute(ctx context.Context, correction Correction) error

	// Health queries the service health endpoint.
	Health(ctx context.Context) (*HealthStatus, error)
}
