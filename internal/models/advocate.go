package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Degree enumerates the credentials an advocate may hold.
type Degree string

const (
	DegreeMD  Degree = "MD"
	DegreePhD Degree = "PhD"
	DegreeMSW Degree = "MSW"
)

// Degrees lists every accepted credential in display order.
var Degrees = []Degree{DegreeMD, DegreePhD, DegreeMSW}

// Valid reports whether d is one of the accepted credentials.
func (d Degree) Valid() bool {
	for _, known := range Degrees {
		if d == known {
			return true
		}
	}
	return false
}

// Advocate is a single directory entry.
type Advocate struct {
	ID                *int64     `json:"id,omitempty" yaml:"id,omitempty"`
	FirstName         string     `json:"firstName" yaml:"firstName" validate:"required"`
	LastName          string     `json:"lastName" yaml:"lastName" validate:"required"`
	City              string     `json:"city" yaml:"city" validate:"required"`
	Degree            Degree     `json:"degree" yaml:"degree" validate:"required,degree"`
	Specialties       []string   `json:"specialties" yaml:"specialties" validate:"dive,required"`
	YearsOfExperience int        `json:"yearsOfExperience" yaml:"yearsOfExperience" validate:"min=0"`
	PhoneNumber       int64      `json:"phoneNumber" yaml:"phoneNumber" validate:"min=1000000000,max=9999999999"`
	CreatedAt         *time.Time `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
}

// FullName joins first and last name for display.
func (a Advocate) FullName() string {
	return a.FirstName + " " + a.LastName
}

// NewValidator returns a validator that understands the advocate tags, including "degree".
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("degree", func(fl validator.FieldLevel) bool {
		return Degree(fl.Field().String()).Valid()
	})
	return v
}
