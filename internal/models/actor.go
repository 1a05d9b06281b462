package models

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Actor is the authenticated user acting on a request together with the
// jurisdiction they are scoped to.
type Actor struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Role         RoleID `json:"role"`
	State        string `json:"state,omitempty"`
	District     string `json:"district,omitempty"`
	Constituency string `json:"constituency,omitempty"`
}

// MissingJurisdiction returns the scopes the actor's role requires but the
// actor does not carry.
func (a Actor) MissingJurisdiction() []string {
	req := RequiresJurisdiction(a.Role)
	var missing []string
	if req.State && strings.TrimSpace(a.State) == "" {
		missing = append(missing, "state")
	}
	if req.District && strings.TrimSpace(a.District) == "" {
		missing = append(missing, "district")
	}
	return missing
}

// ActorClaims is the session token payload issued by the backend.
type ActorClaims struct {
	UserID       string `json:"user_id"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	State        string `json:"state,omitempty"`
	District     string `json:"district,omitempty"`
	Constituency string `json:"constituency,omitempty"`
	jwt.RegisteredClaims
}

// Actor converts verified claims into an Actor.
func (c *ActorClaims) Actor() Actor {
	id := c.UserID
	if id == "" {
		id = c.Subject
	}
	return Actor{
		ID:           id,
		Name:         c.Name,
		Role:         ParseRole(c.Role),
		State:        strings.TrimSpace(c.State),
		District:     strings.TrimSpace(c.District),
		Constituency: strings.TrimSpace(c.Constituency),
	}
}
