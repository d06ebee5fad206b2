// Package api holds the JSON envelopes shared by every handler.
package api

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error" example:"slot already reserved"`
}

// MessageResponse acknowledges an action that returns no entity.
type MessageResponse struct {
	Message string `json:"message" example:"reservation cancelled"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
