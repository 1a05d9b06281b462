package dto

import (
	"time"

	"github.com/noah-isme/erolls-portal/internal/models"
)

// LoginRequest is the portal login form.
type LoginRequest struct {
	Username     string `json:"username" validate:"required,min=3,max=64"`
	Password     string `json:"password" validate:"required,min=6,max=128"`
	Role         string `json:"role" validate:"required,max=16"`
	State        string `json:"state,omitempty" validate:"omitempty,max=64"`
	District     string `json:"district,omitempty" validate:"omitempty,max=64"`
	Constituency string `json:"constituency,omitempty" validate:"omitempty,max=64"`
}

// LoginResponse is returned after a successful login.
type LoginResponse struct {
	Token       string       `json:"token"`
	ExpiresAt   time.Time    `json:"expiresAt"`
	User        models.Actor `json:"user"`
	RoleLabel   string       `json:"roleLabel"`
	LandingView string       `json:"landingView"`
}

// MenuResponse carries the sidebar for the current role.
type MenuResponse struct {
	Role        models.RoleID     `json:"role"`
	RoleLabel   string            `json:"roleLabel"`
	LandingView string            `json:"landingView"`
	Items       []models.MenuItem `json:"items"`
}
