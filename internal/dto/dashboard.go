package dto

import "github.com/noah-isme/erolls-portal/internal/models"

// StateChartPoint is one bar of the national state distribution chart.
type StateChartPoint struct {
	State         string `json:"state"`
	FullStateName string `json:"fullStateName"`
	Electors      int64  `json:"electors"`
	Display       string `json:"display"`
}

// NationalDashboardResponse decorates the national dashboard for display.
type NationalDashboardResponse struct {
	models.NationalDashboard
	CardsDisplay map[string]string `json:"cardsDisplay"`
	StateChart   []StateChartPoint `json:"stateChart"`
}

// StateDashboardResponse decorates the state dashboard for display.
type StateDashboardResponse struct {
	models.StateDashboard
	CardsDisplay map[string]string `json:"cardsDisplay"`
}

// ERODashboardResponse decorates the application dashboard for display.
type ERODashboardResponse struct {
	models.ERODashboard
	Filter               string               `json:"filter"`
	FilteredApplications []models.Application `json:"filteredApplications"`
	CardsDisplay         map[string]string    `json:"cardsDisplay"`
}
