package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_DefaultsAreValid(t *testing.T) {
	require.NoError(t, NewValidator(DefaultSettings()).ValidateAll())
}

func TestValidator_RejectsEmptyModel(t *testing.T) {
	s := DefaultSettings()
	s.FastModel = ""
	err := NewValidator(s).ValidateAll()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fast_model")
}

func TestValidator_RejectsInvertedThresholds(t *testing.T) {
	s := DefaultSettings()
	s.ComplexityThresholdLow = 80
	s.ComplexityThresholdHigh = 20
	err := NewValidator(s).ValidateAll()
	require.Error(t, err)
}

func TestValidator_RejectsOutOfRangeEscalationDepth(t *testing.T) {
	s := DefaultSettings()
	s.MaxEscalationDepth = 10
	err := NewValidator(s).ValidateAll()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_escalation_depth")
}

func TestValidator_RejectsEmptyDatabaseURL(t *testing.T) {
	s := DefaultSettings()
	s.Database.URL = ""
	err := NewValidator(s).ValidateAll()
	require.Error(t, err)
}
