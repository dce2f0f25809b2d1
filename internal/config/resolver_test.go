package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"flowscribe/internal/config"
)

const (
	explicitConfigurationFileName = "explicit.toml"
	malformedConfigurationBody    = "llm = \"not a table\"\nllm.host = 1\n"
	sampleConfigurationBody       = "[paths]\noutput_dir = \"docs\"\n\n[llm]\nhost = \"http://filehost:11434\"\n\n[llm.options]\ntemperature = 0.2\nnum_ctx = 8192\n"
	filePermissions               = 0o644
)

func writeConfiguration(t *testing.T, path string, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), filePermissions); err != nil {
		t.Fatalf("write configuration: %v", err)
	}
}

func emptyEnvironment(string) string { return "" }

func TestResolveWithoutSourcesReturnsDefaults(t *testing.T) {
	resolver := config.Resolver{WorkingDirectory: t.TempDir(), Getenv: emptyEnvironment}
	resolved, err := resolver.Resolve("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(resolved, config.Defaults()) {
		t.Fatalf("expected built-in defaults, got %+v", resolved)
	}
}

func TestResolveMissingExplicitFileIsNotAnError(t *testing.T) {
	workingDirectory := t.TempDir()
	resolver := config.Resolver{WorkingDirectory: workingDirectory, Getenv: emptyEnvironment}
	resolved, err := resolver.Resolve(filepath.Join(workingDirectory, "missing.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved.LLM.Host != config.Defaults().LLM.Host {
		t.Fatalf("expected default host, got %q", resolved.LLM.Host)
	}
}

func TestResolveFileLayer(t *testing.T) {
	workingDirectory := t.TempDir()
	configurationPath := filepath.Join(workingDirectory, explicitConfigurationFileName)
	writeConfiguration(t, configurationPath, sampleConfigurationBody)

	resolver := config.Resolver{WorkingDirectory: workingDirectory, Getenv: emptyEnvironment}
	resolved, err := resolver.Resolve(configurationPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resolved.Paths.OutputDir != "docs" {
		t.Fatalf("expected output_dir from file, got %q", resolved.Paths.OutputDir)
	}
	if resolved.LLM.Host != "http://filehost:11434" {
		t.Fatalf("expected host from file, got %q", resolved.LLM.Host)
	}
	if resolved.LLM.Model != config.Defaults().LLM.Model {
		t.Fatalf("expected model untouched by file layer, got %q", resolved.LLM.Model)
	}
	if resolved.LLM.Options.Temperature == nil || *resolved.LLM.Options.Temperature != 0.2 {
		t.Fatalf("expected temperature 0.2, got %v", resolved.LLM.Options.Temperature)
	}
	if resolved.LLM.Options.NumCtx == nil || *resolved.LLM.Options.NumCtx != 8192 {
		t.Fatalf("expected num_ctx 8192, got %v", resolved.LLM.Options.NumCtx)
	}
	if resolved.LLM.Options.TopP != nil {
		t.Fatalf("expected top_p to stay absent, got %v", *resolved.LLM.Options.TopP)
	}
}

func TestResolveCandidateFileNames(t *testing.T) {
	workingDirectory := t.TempDir()
	writeConfiguration(t, filepath.Join(workingDirectory, "flowscribe-config.toml"), sampleConfigurationBody)

	resolver := config.Resolver{WorkingDirectory: workingDirectory, Getenv: emptyEnvironment}
	resolved, err := resolver.Resolve("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved.LLM.Host != "http://filehost:11434" {
		t.Fatalf("expected candidate file to be picked up, got host %q", resolved.LLM.Host)
	}
}

func TestResolveMalformedFileFails(t *testing.T) {
	workingDirectory := t.TempDir()
	configurationPath := filepath.Join(workingDirectory, explicitConfigurationFileName)
	writeConfiguration(t, configurationPath, malformedConfigurationBody)

	resolver := config.Resolver{WorkingDirectory: workingDirectory, Getenv: emptyEnvironment}
	_, err := resolver.Resolve(configurationPath)
	var configurationError *config.Error
	if !errors.As(err, &configurationError) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestResolveEnvironmentOverridesFile(t *testing.T) {
	workingDirectory := t.TempDir()
	configurationPath := filepath.Join(workingDirectory, explicitConfigurationFileName)
	writeConfiguration(t, configurationPath, sampleConfigurationBody)

	environment := map[string]string{
		config.HostEnvironmentVariable: "http://envhost:11434",
	}
	resolver := config.Resolver{
		WorkingDirectory: workingDirectory,
		Getenv:           func(name string) string { return environment[name] },
	}
	resolved, err := resolver.Resolve(configurationPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved.LLM.Host != "http://envhost:11434" {
		t.Fatalf("expected environment host to win, got %q", resolved.LLM.Host)
	}
	if resolved.LLM.Model != config.Defaults().LLM.Model {
		t.Fatalf("expected model untouched by environment, got %q", resolved.LLM.Model)
	}
}

func TestMergePartialOverride(t *testing.T) {
	var overlay config.Config
	overlay.LLM.Model = "mistral"

	merged := config.Merge(config.Defaults(), overlay)
	if merged.LLM.Model != "mistral" {
		t.Fatalf("expected model override, got %q", merged.LLM.Model)
	}
	if merged.LLM.Host != config.Defaults().LLM.Host {
		t.Fatalf("expected host retained from defaults, got %q", merged.LLM.Host)
	}
	if merged.Paths.OutputDir != config.Defaults().Paths.OutputDir {
		t.Fatalf("expected output dir retained from defaults, got %q", merged.Paths.OutputDir)
	}
}

func TestMergeOptionsAreIndependent(t *testing.T) {
	baseTemperature := 0.5
	var base config.Config
	base.LLM.Options.Temperature = &baseTemperature

	overlayContext := 4096
	var overlay config.Config
	overlay.LLM.Options.NumCtx = &overlayContext

	merged := config.Merge(base, overlay)
	if merged.LLM.Options.Temperature == nil || *merged.LLM.Options.Temperature != 0.5 {
		t.Fatalf("expected temperature retained, got %v", merged.LLM.Options.Temperature)
	}
	if merged.LLM.Options.NumCtx == nil || *merged.LLM.Options.NumCtx != 4096 {
		t.Fatalf("expected num_ctx overridden, got %v", merged.LLM.Options.NumCtx)
	}
	if merged.LLM.Options.RepeatPenalty != nil {
		t.Fatalf("expected repeat_penalty absent, got %v", *merged.LLM.Options.RepeatPenalty)
	}
}
