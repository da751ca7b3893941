package config

import "fmt"

// Validator validates a fully loaded Settings with clear, field-scoped
// error messages.
type Validator struct {
	s *Settings
}

// NewValidator creates a validator for the given settings.
func NewValidator(s *Settings) *Validator {
	return &Validator{s: s}
}

// ValidateAll performs comprehensive validation, fail-fast at the first
// error.
func (v *Validator) ValidateAll() error {
	if err := v.validateModels(); err != nil {
		return err
	}
	if err := v.validateThresholds(); err != nil {
		return err
	}
	if err := v.validateQuality(); err != nil {
		return err
	}
	if err := v.validateTimeouts(); err != nil {
		return err
	}
	if err := v.validateCost(); err != nil {
		return err
	}
	if err := v.validateDatabase(); err != nil {
		return err
	}
	return nil
}

func (v *Validator) validateModels() error {
	s := v.s
	if s.FastModel == "" {
		return NewValidationError("fast_model", fmt.Errorf("%w: must not be empty", ErrMissingRequired))
	}
	if s.ComplexModel == "" {
		return NewValidationError("complex_model", fmt.Errorf("%w: must not be empty", ErrMissingRequired))
	}
	return nil
}

func (v *Validator) validateThresholds() error {
	s := v.s
	if s.ComplexityThresholdLow < 0 || s.ComplexityThresholdLow > 100 {
		return NewValidationError("complexity_threshold_low", fmt.Errorf("%w: must be between 0 and 100, got %d", ErrInvalidValue, s.ComplexityThresholdLow))
	}
	if s.ComplexityThresholdHigh < 0 || s.ComplexityThresholdHigh > 100 {
		return NewValidationError("complexity_threshold_high", fmt.Errorf("%w: must be between 0 and 100, got %d", ErrInvalidValue, s.ComplexityThresholdHigh))
	}
	if s.ComplexityThresholdLow > s.ComplexityThresholdHigh {
		return NewValidationError("complexity_threshold_low", fmt.Errorf("%w: must not exceed complexity_threshold_high", ErrInvalidValue))
	}
	return nil
}

func (v *Validator) validateQuality() error {
	s := v.s
	if s.QualityThreshold < 0 || s.QualityThreshold > 100 {
		return NewValidationError("quality_threshold", fmt.Errorf("%w: must be between 0 and 100, got %d", ErrInvalidValue, s.QualityThreshold))
	}
	if s.MaxEscalationDepth < 1 || s.MaxEscalationDepth > 5 {
		return NewValidationError("max_escalation_depth", fmt.Errorf("%w: must be between 1 and 5, got %d", ErrInvalidValue, s.MaxEscalationDepth))
	}
	return nil
}

func (v *Validator) validateTimeouts() error {
	s := v.s
	if s.LLMTimeout <= 0 {
		return NewValidationError("llm_timeout", fmt.Errorf("%w: must be positive, got %v", ErrInvalidValue, s.LLMTimeout))
	}
	return nil
}

func (v *Validator) validateCost() error {
	c := v.s.Cost
	for field, rate := range map[string]float64{
		"cost.flash_input": c.FlashInput, "cost.flash_output": c.FlashOutput,
		"cost.complex_input": c.ComplexInput, "cost.complex_output": c.ComplexOutput,
	} {
		if rate < 0 {
			return NewValidationError(field, fmt.Errorf("%w: must be non-negative, got %v", ErrInvalidValue, rate))
		}
	}
	return nil
}

func (v *Validator) validateDatabase() error {
	d := v.s.Database
	if d.URL == "" {
		return NewValidationError("database.url", fmt.Errorf("%w: must not be empty", ErrMissingRequired))
	}
	if d.PoolSize < 1 || d.PoolSize > 20 {
		return NewValidationError("database.pool_size", fmt.Errorf("%w: must be between 1 and 20, got %d", ErrInvalidValue, d.PoolSize))
	}
	return nil
}
