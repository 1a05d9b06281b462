package dto

import "github.com/noah-isme/erolls-portal/internal/models"

// ElectorSearchResponse wraps search results.
type ElectorSearchResponse struct {
	Type    models.ElectorSearchType `json:"type"`
	Query   string                   `json:"query"`
	Results []models.Elector         `json:"results"`
}

// BLOEntryRequest is the BLO elector data-entry form.
type BLOEntryRequest struct {
	FirstName      string `json:"firstName" validate:"required,max=64"`
	MiddleName     string `json:"middleName,omitempty" validate:"omitempty,max=64"`
	LastName       string `json:"lastName" validate:"required,max=64"`
	FirstNameLocal string `json:"firstNameLocal,omitempty" validate:"omitempty,max=64"`
	FatherName     string `json:"fatherName" validate:"required,max=128"`
	Gender         string `json:"gender" validate:"required,oneof=male female other"`
	DOB            string `json:"dob" validate:"required,datetime=2006-01-02"`
	Mobile         string `json:"mobile,omitempty" validate:"omitempty,len=10,numeric"`
	Email          string `json:"email,omitempty" validate:"omitempty,email"`
	AddressLine1   string `json:"addressLine1" validate:"required,max=256"`
	AddressLine2   string `json:"addressLine2,omitempty" validate:"omitempty,max=256"`
	City           string `json:"city" validate:"required,max=64"`
	Pincode        string `json:"pincode" validate:"required,len=6,numeric"`
	State          string `json:"state" validate:"required"`
	District       string `json:"district" validate:"required"`
	Constituency   string `json:"constituency" validate:"required"`
	Action         string `json:"action" validate:"required,oneof=draft submit"`
	SubmittedAt    string `json:"submittedAt,omitempty"`
	SubmittedBy    string `json:"submittedBy,omitempty"`
}

// DocumentUploadRequest describes an uploaded supporting document.
type DocumentUploadRequest struct {
	ElectorID    string `form:"electorId" validate:"required,max=64"`
	DocumentType string `form:"documentType" validate:"required,oneof=photo age_proof address_proof identity_proof other"`
}

// ScoresResponse carries the top and bottom ranked entities of a metric.
type ScoresResponse struct {
	Metric models.ScoreMetric `json:"metric"`
	Level  models.ScoreLevel  `json:"level"`
	State  string             `json:"state,omitempty"`
	Top    []models.ScoreItem `json:"top"`
	Bottom []models.ScoreItem `json:"bottom"`
}
