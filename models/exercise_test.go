// file: models/exercise_test.go

//go:build unit
// +build unit

package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

// baseRequest returns a request that passes validation; individual tests
// mutate one field at a time.
func baseRequest() ExerciseRequest {
	return ExerciseRequest{
		Name:   "Squat",
		Reps:   5,
		Weight: 225,
		Unit:   "lbs",
		Date:   "01-01-24",
	}
}

// Test: a fully valid body is accepted
func TestValidateExerciseRequest_Valid(t *testing.T) {
	req := baseRequest()
	assert.NoError(t, req.Validate())
}

// Test: units are accepted case-insensitively, anything else rejected
func TestValidateExerciseRequest_Units(t *testing.T) {
	for _, unit := range []string{"lbs", "kgs", "LBS", "KGS", "Lbs", "kGs"} {
		req := baseRequest()
		req.Unit = unit
		assert.NoError(t, req.Validate(), "unit %q should be accepted", unit)
	}
	for _, unit := range []string{"", "stones", "lb", "kg", "pounds"} {
		req := baseRequest()
		req.Unit = unit
		assert.Error(t, req.Validate(), "unit %q should be rejected", unit)
	}
}

// Test: date must be two-digit groups separated by dashes; no calendar check
func TestValidateExerciseRequest_Date(t *testing.T) {
	for _, date := range []string{"01-01-24", "31-12-99", "99-99-99"} {
		req := baseRequest()
		req.Date = date
		assert.NoError(t, req.Validate(), "date %q should be accepted", date)
	}
	for _, date := range []string{"", "1-01-24", "01/01/24", "01-01-2024", "aa-bb-cc", "010124"} {
		req := baseRequest()
		req.Date = date
		assert.Error(t, req.Validate(), "date %q should be rejected", date)
	}
}

// Test: reps and weight must be strictly positive
func TestValidateExerciseRequest_Numbers(t *testing.T) {
	req := baseRequest()
	req.Reps = 0
	assert.Error(t, req.Validate(), "zero reps should be rejected")

	req = baseRequest()
	req.Reps = -3
	assert.Error(t, req.Validate(), "negative reps should be rejected")

	req = baseRequest()
	req.Weight = 0
	assert.Error(t, req.Validate(), "zero weight should be rejected")

	req = baseRequest()
	req.Weight = -225
	assert.Error(t, req.Validate(), "negative weight should be rejected")

	// fractional values are numbers greater than zero and therefore fine
	req = baseRequest()
	req.Reps = 0.5
	req.Weight = 62.5
	assert.NoError(t, req.Validate())
}

// Test: name must be non-empty
func TestValidateExerciseRequest_Name(t *testing.T) {
	req := baseRequest()
	req.Name = ""
	assert.Error(t, req.Validate())
}

// Test: a missing field in the JSON body fails validation via its zero value
func TestValidateExerciseRequest_MissingFields(t *testing.T) {
	var req ExerciseRequest
	err := json.Unmarshal([]byte(`{"name":"Bench","reps":8,"unit":"kgs","date":"02-03-24"}`), &req)
	assert.NoError(t, err)
	assert.Error(t, req.Validate(), "missing weight should be rejected")
}

// Test: Entry copies the five fields and leaves the id for the store
func TestExerciseRequestEntry(t *testing.T) {
	req := baseRequest()
	entry := req.Entry()

	assert.True(t, entry.ID.IsZero(), "entry id should be unset until stored")
	assert.Equal(t, req.Name, entry.Name)
	assert.Equal(t, req.Reps, entry.Reps)
	assert.Equal(t, req.Weight, entry.Weight)
	assert.Equal(t, req.Unit, entry.Unit)
	assert.Equal(t, req.Date, entry.Date)
}
