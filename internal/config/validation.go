// Package config provides configuration parsing and validation for go-minipaint.
// This file implements validation for configuration values.
package config

import (
	"fmt"
	"strings"

	"github.com/opd-ai/go-minipaint/internal/export"
	"github.com/opd-ai/go-minipaint/internal/session"
	"github.com/opd-ai/go-minipaint/internal/tool"
)

// maxDimension is the size above which a canvas or window draws a warning.
const maxDimension = 10000

// ValidationError represents a configuration validation error.
// It contains the field name and a description of the issue.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (ve ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ve.Field, ve.Message)
}

// ValidationResult holds the results of a configuration validation.
type ValidationResult struct {
	// Errors contains all validation errors found.
	Errors []ValidationError
	// Warnings contains non-fatal issues.
	Warnings []ValidationError
}

// IsValid returns true if there are no validation errors.
func (vr *ValidationResult) IsValid() bool {
	return len(vr.Errors) == 0
}

// Error returns a combined error message if there are errors, nil otherwise.
func (vr *ValidationResult) Error() error {
	if len(vr.Errors) == 0 {
		return nil
	}

	messages := make([]string, 0, len(vr.Errors))
	for _, e := range vr.Errors {
		messages = append(messages, e.Error())
	}
	return fmt.Errorf("validation failed: %s", strings.Join(messages, "; "))
}

// AddError adds a validation error.
func (vr *ValidationResult) AddError(field, message string) {
	vr.Errors = append(vr.Errors, ValidationError{Field: field, Message: message})
}

// AddWarning adds a validation warning.
func (vr *ValidationResult) AddWarning(field, message string) {
	vr.Warnings = append(vr.Warnings, ValidationError{Field: field, Message: message})
}

// Merge combines another ValidationResult into this one.
func (vr *ValidationResult) Merge(other *ValidationResult) {
	if other == nil {
		return
	}
	vr.Errors = append(vr.Errors, other.Errors...)
	vr.Warnings = append(vr.Warnings, other.Warnings...)
}

// Validator checks a Config for values the application cannot run with.
type Validator struct {
	// strictMode turns warnings into errors.
	strictMode bool
}

// NewValidator creates a new Validator with default settings.
func NewValidator() *Validator {
	return &Validator{}
}

// WithStrictMode enables strict validation where warnings are errors.
func (v *Validator) WithStrictMode(strict bool) *Validator {
	v.strictMode = strict
	return v
}

// Validate performs validation of a Config.
func (v *Validator) Validate(cfg *Config) *ValidationResult {
	result := &ValidationResult{}

	v.validateCanvas(&cfg.Canvas, result)
	v.validateHistory(&cfg.History, result)
	v.validateWindow(&cfg.Window, &cfg.Canvas, result)
	v.validateTools(&cfg.Tools, result)
	v.validateSave(&cfg.Save, result)
	if len(cfg.Palette) == 0 {
		result.AddError("palette", "must contain at least one color")
	}

	if v.strictMode {
		result.Errors = append(result.Errors, result.Warnings...)
		result.Warnings = nil
	}
	return result
}

func (v *Validator) validateCanvas(cc *CanvasConfig, result *ValidationResult) {
	if cc.Width <= 0 {
		result.AddError("canvas.width", fmt.Sprintf("must be positive, got %d", cc.Width))
	}
	if cc.Height <= 0 {
		result.AddError("canvas.height", fmt.Sprintf("must be positive, got %d", cc.Height))
	}
	if cc.Width > maxDimension {
		result.AddWarning("canvas.width", fmt.Sprintf("unusually large value %d", cc.Width))
	}
	if cc.Height > maxDimension {
		result.AddWarning("canvas.height", fmt.Sprintf("unusually large value %d", cc.Height))
	}
}

func (v *Validator) validateHistory(hc *HistoryConfig, result *ValidationResult) {
	if hc.Capacity < 1 {
		result.AddError("history.capacity", fmt.Sprintf("must be at least 1, got %d", hc.Capacity))
	}
	// Every snapshot is a full canvas copy.
	if hc.Capacity > 500 {
		result.AddWarning("history.capacity", fmt.Sprintf("%d snapshots may use a lot of memory", hc.Capacity))
	}
}

func (v *Validator) validateWindow(wc *WindowConfig, cc *CanvasConfig, result *ValidationResult) {
	if wc.Width <= 0 {
		result.AddError("window.width", fmt.Sprintf("must be positive, got %d", wc.Width))
	}
	if wc.Height <= 0 {
		result.AddError("window.height", fmt.Sprintf("must be positive, got %d", wc.Height))
	}
	if wc.ToolbarWidth < 0 {
		result.AddError("window.toolbar_width", fmt.Sprintf("must be non-negative, got %d", wc.ToolbarWidth))
	}
	if wc.HeaderHeight < 0 {
		result.AddError("window.header_height", fmt.Sprintf("must be non-negative, got %d", wc.HeaderHeight))
	}
	if wc.TargetFPS <= 0 {
		result.AddError("window.fps", fmt.Sprintf("must be positive, got %d", wc.TargetFPS))
	}

	origin := session.CanvasOrigin(wc.ToolbarWidth, wc.HeaderHeight)
	if wc.Width > 0 && wc.Height > 0 && (origin.X+cc.Width > wc.Width || origin.Y+cc.Height > wc.Height) {
		result.AddWarning("window", fmt.Sprintf("canvas %dx%d at (%d,%d) does not fit a %dx%d window",
			cc.Width, cc.Height, origin.X, origin.Y, wc.Width, wc.Height))
	}
}

func (v *Validator) validateTools(tc *ToolConfig, result *ValidationResult) {
	if !tc.Default.Valid() {
		result.AddError("tools.default", fmt.Sprintf("unknown tool %d", int(tc.Default)))
	}
	if tc.Width < tool.MinWidth || tc.Width > tool.MaxWidth {
		result.AddError("tools.width", fmt.Sprintf("must be between %d and %d, got %d", tool.MinWidth, tool.MaxWidth, tc.Width))
	}
	if tc.PreviewOpacity < 0 || tc.PreviewOpacity > 255 {
		result.AddError("tools.preview_opacity", fmt.Sprintf("must be between 0 and 255, got %d", tc.PreviewOpacity))
	}
}

func (v *Validator) validateSave(sc *SaveConfig, result *ValidationResult) {
	if _, err := export.ParseFormat(string(sc.Format)); err != nil {
		result.AddError("save.format", err.Error())
	}
	if strings.TrimSpace(sc.Dir) == "" {
		result.AddError("save.dir", "must not be empty")
	}
}

// ValidateConfig is a convenience function to validate a Config with default settings.
// Returns nil if the config is valid, or an error describing validation failures.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	validator := NewValidator()
	result := validator.Validate(cfg)
	return result.Error()
}

// ValidateConfigStrict validates a Config with strict mode enabled.
// Warnings are treated as errors.
func ValidateConfigStrict(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	validator := NewValidator().WithStrictMode(true)
	result := validator.Validate(cfg)
	return result.Error()
}
