package handler

import (
	"strings"
	"time"

	"civreg/internal/registry/models"
	"civreg/pkg/domain"
	dErrors "civreg/pkg/domain-errors"
)

const dateLayout = "2006-01-02"

// EnrollRequest is the enrollment form as submitted by the presentation layer.
type EnrollRequest struct {
	NationalID     string `json:"national_id"`
	FullName       string `json:"full_name"`
	DateOfBirth    string `json:"date_of_birth"`
	Gender         string `json:"gender"`
	CurrentAddress string `json:"current_address"`
	BiometricToken string `json:"biometric_token"`
	PhoneNumber    string `json:"phone_number"`
	EmailAddress   string `json:"email_address"`
}

// Normalize trims surrounding whitespace from every field.
func (r *EnrollRequest) Normalize() {
	r.NationalID = strings.TrimSpace(r.NationalID)
	r.FullName = strings.TrimSpace(r.FullName)
	r.DateOfBirth = strings.TrimSpace(r.DateOfBirth)
	r.Gender = strings.TrimSpace(r.Gender)
	r.CurrentAddress = strings.TrimSpace(r.CurrentAddress)
	r.BiometricToken = strings.TrimSpace(r.BiometricToken)
	r.PhoneNumber = strings.TrimSpace(r.PhoneNumber)
	r.EmailAddress = strings.TrimSpace(r.EmailAddress)
}

func (r *EnrollRequest) ToCommand() (models.EnrollCommand, error) {
	id, err := domain.ParseNationalID(r.NationalID)
	if err != nil {
		return models.EnrollCommand{}, err
	}
	gender, err := domain.ParseGender(r.Gender)
	if err != nil {
		return models.EnrollCommand{}, err
	}
	dob, err := time.Parse(dateLayout, r.DateOfBirth)
	if err != nil {
		return models.EnrollCommand{}, dErrors.New(dErrors.CodeInvalidInput, "date of birth must be YYYY-MM-DD")
	}
	cmd := models.EnrollCommand{
		NationalID:     id,
		FullName:       r.FullName,
		DateOfBirth:    dob,
		Gender:         gender,
		CurrentAddress: r.CurrentAddress,
		BiometricToken: r.BiometricToken,
		PhoneNumber:    r.PhoneNumber,
		EmailAddress:   r.EmailAddress,
	}
	if err := cmd.Validate(); err != nil {
		return models.EnrollCommand{}, err
	}
	return cmd, nil
}

// UpdateRequest carries the mutable contact fields.
type UpdateRequest struct {
	CurrentAddress string `json:"current_address"`
	PhoneNumber    string `json:"phone_number"`
	EmailAddress   string `json:"email_address"`
}

func (r *UpdateRequest) ToCommand(id domain.NationalID) (models.UpdateCommand, error) {
	cmd := models.UpdateCommand{
		NationalID:     id,
		CurrentAddress: strings.TrimSpace(r.CurrentAddress),
		PhoneNumber:    strings.TrimSpace(r.PhoneNumber),
		EmailAddress:   strings.TrimSpace(r.EmailAddress),
	}
	if err := cmd.Validate(); err != nil {
		return models.UpdateCommand{}, err
	}
	return cmd, nil
}

// ResidentResponse renders dates as calendar days.
type ResidentResponse struct {
	NationalID     string `json:"national_id"`
	FullName       string `json:"full_name"`
	DateOfBirth    string `json:"date_of_birth"`
	Gender         string `json:"gender"`
	CurrentAddress string `json:"current_address"`
	BiometricToken string `json:"biometric_token"`
	PhoneNumber    string `json:"phone_number"`
	EmailAddress   string `json:"email_address"`
	EnrollmentDate string `json:"enrollment_date"`
}

func toResidentResponse(r *models.Resident) ResidentResponse {
	return ResidentResponse{
		NationalID:     r.NationalID.String(),
		FullName:       r.FullName,
		DateOfBirth:    r.DateOfBirth.Format(dateLayout),
		Gender:         r.Gender.String(),
		CurrentAddress: r.CurrentAddress,
		BiometricToken: r.BiometricToken,
		PhoneNumber:    r.PhoneNumber,
		EmailAddress:   r.EmailAddress,
		EnrollmentDate: r.EnrollmentDate.Format(dateLayout),
	}
}

type ListResidentsResponse struct {
	Residents []ResidentResponse `json:"residents"`
	Total     int                `json:"total"`
}
