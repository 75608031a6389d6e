package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingForm struct {
	PatientID string `validate:"required"`
	Time      string `validate:"required,len=5"`
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(bookingForm{PatientID: "pat-1", Time: "09:00"}))
	require.Error(t, Validate(bookingForm{}))
}

func TestFormatValidationError(t *testing.T) {
	err := Validate(bookingForm{Time: "9:00am"})
	require.Error(t, err)

	msg := FormatValidationError(err)
	assert.Contains(t, msg, "PatientID failed on 'required'")
	assert.Contains(t, msg, "Time failed on 'len'")

	// Non-validator errors pass through untouched.
	assert.Equal(t, assert.AnError.Error(), FormatValidationError(assert.AnError))
}
