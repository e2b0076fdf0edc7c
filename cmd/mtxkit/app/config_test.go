package app

import (
	"os"
	"testing"
)

// TestLoadConfig verifies basic config loading.
func TestLoadConfig(t *testing.T) {
	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if config == nil {
		t.Fatal("LoadConfig() returned nil config")
	}

	// Verify defaults are set
	// Note: LogLevel may be empty (triggers precedence logic in logger.go)
	// LogFormat should have a default
	if config.LogFormat == "" {
		t.Error("LogFormat not set to default")
	}
	if config.InputType == "" {
		t.Error("InputType not set to default")
	}
	if config.ProcessLabel == "" {
		t.Error("ProcessLabel not set to default")
	}
	if config.OutputDir == "" {
		t.Error("OutputDir not set to default")
	}
}

// TestConfig_EnvironmentVariables verifies environment variable loading.
func TestConfig_EnvironmentVariables(t *testing.T) {
	// Save original env
	oldVerbose := os.Getenv("VERBOSE")
	oldFormat := os.Getenv("FORMAT")
	defer func() {
		os.Setenv("VERBOSE", oldVerbose)
		os.Setenv("FORMAT", oldFormat)
	}()

	// Set test environment variables
	os.Setenv("VERBOSE", "true")
	os.Setenv("FORMAT", "json")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if !config.Verbose {
		t.Error("VERBOSE environment variable not loaded")
	}
	if config.Format != "json" {
		t.Errorf("FORMAT = %s, want json", config.Format)
	}
}

// TestConfig_AssemblyDefaults verifies assembly defaults from the environment.
func TestConfig_AssemblyDefaults(t *testing.T) {
	oldDir := os.Getenv("OUTPUT_DIR")
	oldType := os.Getenv("INPUT_TYPE")
	defer func() {
		os.Setenv("OUTPUT_DIR", oldDir)
		os.Setenv("INPUT_TYPE", oldType)
	}()

	os.Setenv("OUTPUT_DIR", "/data/bundles")
	os.Setenv("INPUT_TYPE", "filtered")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if config.OutputDir != "/data/bundles" {
		t.Errorf("OutputDir = %s, want /data/bundles", config.OutputDir)
	}
	if config.InputType != "filtered" {
		t.Errorf("InputType = %s, want filtered", config.InputType)
	}
}

// TestConfig_UpdateFromFlags verifies flag precedence over loaded values.
func TestConfig_UpdateFromFlags(t *testing.T) {
	config := &Config{
		Verbose:  false,
		Format:   "table",
		LogLevel: "info",
	}

	config.UpdateFromFlags(true, false, true, "yaml", "debug")

	if !config.Verbose {
		t.Error("Verbose flag not applied")
	}
	if !config.NoColor {
		t.Error("NoColor flag not applied")
	}
	if config.Format != "yaml" {
		t.Errorf("Format = %s, want yaml", config.Format)
	}
	if config.LogLevel != "debug" {
		t.Errorf("LogLevel = %s, want debug", config.LogLevel)
	}
}

// TestConfig_UpdateFromFlags_EmptyKeepsPrevious verifies unset string
// flags do not clobber values from env or config file.
func TestConfig_UpdateFromFlags_EmptyKeepsPrevious(t *testing.T) {
	config := &Config{
		Format:   "yaml",
		LogLevel: "trace",
	}

	config.UpdateFromFlags(false, false, false, "", "")

	if config.Format != "yaml" {
		t.Errorf("Format = %s, want yaml preserved", config.Format)
	}
	if config.LogLevel != "trace" {
		t.Errorf("LogLevel = %s, want trace preserved", config.LogLevel)
	}
}
