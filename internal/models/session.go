package models

import "time"

// Session is the cached login profile for an issued token.
type Session struct {
	Actor       Actor     `json:"actor"`
	RoleLabel   string    `json:"roleLabel"`
	LandingView string    `json:"landingView"`
	IssuedAt    time.Time `json:"issuedAt"`
	ExpiresAt   time.Time `json:"expiresAt"`
}
