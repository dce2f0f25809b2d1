package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	// HostEnvironmentVariable overrides llm.host when set.
	HostEnvironmentVariable = "FS_LLM_HOST"
	// ModelEnvironmentVariable overrides llm.model when set.
	ModelEnvironmentVariable = "FS_LLM_MODEL"

	configurationFileType            = "toml"
	resolverWorkingDirectoryErrorFmt = "determine working directory: %w"
	configurationErrorFormat         = "configuration %s: %v"
)

// configurationFileCandidates are probed in order when no explicit
// configuration path is supplied.
var configurationFileCandidates = []string{"flowscribe.toml", "flowscribe-config.toml"}

// Error reports a configuration file that exists but cannot be parsed.
// It is fatal: resolution aborts before any processing starts.
type Error struct {
	Reference string
	Err       error
}

func (e *Error) Error() string {
	return fmt.Sprintf(configurationErrorFormat, e.Reference, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Resolver builds an effective Config from the layered sources. The zero
// value resolves candidate file names against the process working directory
// and reads the process environment.
type Resolver struct {
	WorkingDirectory string
	Getenv           func(string) string
}

// NewDefaultResolver returns a Resolver bound to the process working
// directory and environment.
func NewDefaultResolver() (Resolver, error) {
	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return Resolver{}, fmt.Errorf(resolverWorkingDirectoryErrorFmt, workingDirectoryError)
	}
	return Resolver{WorkingDirectory: workingDirectory, Getenv: os.Getenv}, nil
}

// Resolve merges defaults, the first existing configuration file (or the
// explicit path when given), and the recognized environment variables, lowest
// precedence first. Call-site overrides are applied separately via Merge.
func (resolver Resolver) Resolve(explicitPath string) (Config, error) {
	resolved := Defaults()

	fileLayer, fileLayerError := resolver.fileLayer(explicitPath)
	if fileLayerError != nil {
		return Config{}, fileLayerError
	}
	resolved = Merge(resolved, fileLayer)
	resolved = Merge(resolved, resolver.environmentLayer())
	return resolved, nil
}

func (resolver Resolver) fileLayer(explicitPath string) (Config, error) {
	configurationPath, found := resolver.findConfigurationFile(explicitPath)
	if !found {
		// A missing file is not an error; the layer is simply empty.
		return Config{}, nil
	}

	fileViper := viper.New()
	fileViper.SetConfigFile(configurationPath)
	fileViper.SetConfigType(configurationFileType)
	if readError := fileViper.ReadInConfig(); readError != nil {
		return Config{}, &Error{Reference: configurationPath, Err: readError}
	}
	return layerFromViper(fileViper), nil
}

func (resolver Resolver) findConfigurationFile(explicitPath string) (string, bool) {
	candidates := configurationFileCandidates
	if explicitPath != "" {
		candidates = []string{explicitPath}
	}
	for _, candidate := range candidates {
		candidatePath := candidate
		if !filepath.IsAbs(candidatePath) && resolver.WorkingDirectory != "" {
			candidatePath = filepath.Join(resolver.WorkingDirectory, candidate)
		}
		info, statError := os.Stat(candidatePath)
		if statError == nil && info.Mode().IsRegular() {
			return candidatePath, true
		}
	}
	return "", false
}

// layerFromViper lifts only the keys actually present in the file into a
// partial Config, so absent keys never shadow a lower layer during Merge.
func layerFromViper(fileViper *viper.Viper) Config {
	var layer Config
	if fileViper.IsSet("paths.input_path") {
		layer.Paths.InputPath = fileViper.GetString("paths.input_path")
	}
	if fileViper.IsSet("paths.output_dir") {
		layer.Paths.OutputDir = fileViper.GetString("paths.output_dir")
	}
	if fileViper.IsSet("prompts.profile") {
		layer.Prompts.Profile = fileViper.GetString("prompts.profile")
	}
	if fileViper.IsSet("prompts.system_prompt") {
		layer.Prompts.SystemPrompt = fileViper.GetString("prompts.system_prompt")
	}
	if fileViper.IsSet("prompts.user_prompt_template") {
		layer.Prompts.UserPromptTemplate = fileViper.GetString("prompts.user_prompt_template")
	}
	if fileViper.IsSet("generation.dry_run") {
		layer.Generation.DryRun = fileViper.GetBool("generation.dry_run")
	}
	if fileViper.IsSet("generation.verbose") {
		layer.Generation.Verbose = fileViper.GetBool("generation.verbose")
	}
	if fileViper.IsSet("llm.host") {
		layer.LLM.Host = fileViper.GetString("llm.host")
	}
	if fileViper.IsSet("llm.model") {
		layer.LLM.Model = fileViper.GetString("llm.model")
	}
	if fileViper.IsSet("llm.options.num_predict") {
		value := fileViper.GetInt("llm.options.num_predict")
		layer.LLM.Options.NumPredict = &value
	}
	if fileViper.IsSet("llm.options.temperature") {
		value := fileViper.GetFloat64("llm.options.temperature")
		layer.LLM.Options.Temperature = &value
	}
	if fileViper.IsSet("llm.options.top_p") {
		value := fileViper.GetFloat64("llm.options.top_p")
		layer.LLM.Options.TopP = &value
	}
	if fileViper.IsSet("llm.options.num_ctx") {
		value := fileViper.GetInt("llm.options.num_ctx")
		layer.LLM.Options.NumCtx = &value
	}
	if fileViper.IsSet("llm.options.repeat_penalty") {
		value := fileViper.GetFloat64("llm.options.repeat_penalty")
		layer.LLM.Options.RepeatPenalty = &value
	}
	return layer
}

func (resolver Resolver) environmentLayer() Config {
	getenv := resolver.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	var layer Config
	layer.LLM.Host = getenv(HostEnvironmentVariable)
	layer.LLM.Model = getenv(ModelEnvironmentVariable)
	return layer
}
