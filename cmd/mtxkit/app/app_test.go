package app

import (
	"testing"

	"github.com/omicstation/mtxkit"
	"github.com/omicstation/mtxkit/pkg/logging"
	"github.com/omicstation/mtxkit/pkg/workflow"
)

// TestApp_New verifies app initialization.
func TestApp_New(t *testing.T) {
	app, err := New("1.0.0", "abc123", "2024-01-01", "test")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if app.Version() != "1.0.0" {
		t.Errorf("Version() = %s, want 1.0.0", app.Version())
	}
	if app.Commit() != "abc123" {
		t.Errorf("Commit() = %s, want abc123", app.Commit())
	}
	if app.Date() != "2024-01-01" {
		t.Errorf("Date() = %s, want 2024-01-01", app.Date())
	}
	if app.BuiltBy() != "test" {
		t.Errorf("BuiltBy() = %s, want test", app.BuiltBy())
	}
	if app.Logger() == nil {
		t.Error("Logger() returned nil")
	}
	if app.Config() == nil {
		t.Error("Config() returned nil")
	}
}

// TestApp_Options verifies functional options are applied.
func TestApp_Options(t *testing.T) {
	config := &Config{Format: "json", InputType: "filtered"}

	app, err := New("1.0.0", "test", "2024-01-01", "test",
		WithConfig(config),
		WithLogger(&logging.Nop),
	)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if app.Config() != config {
		t.Error("WithConfig() not applied")
	}
	if app.Logger() != &logging.Nop {
		t.Error("WithLogger() not applied")
	}
	if app.OutputFormat() != "json" {
		t.Errorf("OutputFormat() = %s, want json", app.OutputFormat())
	}
}

// TestApp_Kit verifies kit construction from app configuration.
func TestApp_Kit(t *testing.T) {
	config := &Config{
		OutputDir: t.TempDir(),
		InputType: "raw",
		Compress:  true,
	}

	app, err := New("2.0.0", "test", "2024-01-01", "test",
		WithConfig(config),
		WithLogger(&logging.Nop),
	)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	// Kit requires an inputs dir and sample, which come from command flags
	if _, err := app.Kit(); err == nil {
		t.Error("Kit() without inputs should fail validation")
	}

	kit, err := app.Kit(
		mtxkit.WithInputsDir("."),
		mtxkit.WithSample("s1"),
		mtxkit.WithWorkflowName("lamanno"),
	)
	if err != nil {
		t.Fatalf("Kit() with command options failed: %v", err)
	}
	if kit.Workflow() != workflow.LaManno {
		t.Errorf("Workflow() = %s, want lamanno", kit.Workflow())
	}
}
