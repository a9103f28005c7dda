// Package models file: models/exercise.go
package models

import (
	"errors"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// date must be two-digit groups separated by dashes, e.g. "01-01-24".
// Calendar validity is not checked; "99-99-99" is accepted.
var datePattern = regexp.MustCompile(`^\d\d-\d\d-\d\d$`)

// ----------------------- exercise entry -----------------------

// Exercise is one logged workout record embedded under a user document.
// The id is assigned by the store at creation and is unique across all
// users, which is what makes the share-link routes possible.
type Exercise struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name   string             `bson:"name" json:"name"`
	Reps   float64            `bson:"reps" json:"reps"`
	Weight float64            `bson:"weight" json:"weight"`
	Unit   string             `bson:"unit" json:"unit"`
	Date   string             `bson:"date" json:"date"`
}

// ----------------------- typed request schema -----------------------

// ExerciseRequest is the request body for creating or updating an entry.
// All five fields are required.
type ExerciseRequest struct {
	Name   string  `json:"name"`
	Reps   float64 `json:"reps"`
	Weight float64 `json:"weight"`
	Unit   string  `json:"unit"`
	Date   string  `json:"date"`
}

// Validate checks the request against the entry contract. The returned
// error names the first offending field; handlers log it and answer with
// a generic invalid-request response.
func (r *ExerciseRequest) Validate() error {
	if r.Name == "" {
		return errors.New("name must be a non-empty string")
	}
	if r.Reps <= 0 {
		return errors.New("reps must be a number greater than zero")
	}
	if r.Weight <= 0 {
		return errors.New("weight must be a number greater than zero")
	}
	if !validUnit(r.Unit) {
		return errors.New("unit must be lbs or kgs")
	}
	if !datePattern.MatchString(r.Date) {
		return errors.New("date must match DD-MM-YY")
	}
	return nil
}

// Entry converts a validated request into an embeddable exercise entry.
// The id is left empty for the store to assign.
func (r *ExerciseRequest) Entry() Exercise {
	return Exercise{
		Name:   r.Name,
		Reps:   r.Reps,
		Weight: r.Weight,
		Unit:   r.Unit,
		Date:   r.Date,
	}
}

// validUnit accepts lbs or kgs in any letter case.
func validUnit(unit string) bool {
	switch strings.ToLower(unit) {
	case "lbs", "kgs":
		return true
	}
	return false
}
