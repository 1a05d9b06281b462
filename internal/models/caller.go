package models

// Caller is the authenticated party behind one request: the actor plus the
// bearer token forwarded to the backend.
type Caller struct {
	Actor     Actor
	Token     string
	RequestID string
}
