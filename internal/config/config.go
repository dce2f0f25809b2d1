package config

// Config is the effective configuration for one invocation. It is built by
// merging the four layers (defaults, file, environment, call-site overrides)
// and is never mutated afterwards; a new merge produces a new value.
type Config struct {
	Paths      Paths      `yaml:"paths"`
	Prompts    Prompts    `yaml:"prompts"`
	Generation Generation `yaml:"generation"`
	LLM        LLM        `yaml:"llm"`
}

type Paths struct {
	InputPath string `yaml:"input_path"`
	OutputDir string `yaml:"output_dir"`
}

type Prompts struct {
	Profile            string `yaml:"profile"`
	SystemPrompt       string `yaml:"system_prompt"`
	UserPromptTemplate string `yaml:"user_prompt_template"`
}

type Generation struct {
	DryRun  bool `yaml:"dry_run"`
	Verbose bool `yaml:"verbose"`
}

// Options holds the sparse generation tuning values. A nil field was never
// configured and must not be forwarded to the backend.
type Options struct {
	NumPredict    *int     `yaml:"num_predict,omitempty"`
	Temperature   *float64 `yaml:"temperature,omitempty"`
	TopP          *float64 `yaml:"top_p,omitempty"`
	NumCtx        *int     `yaml:"num_ctx,omitempty"`
	RepeatPenalty *float64 `yaml:"repeat_penalty,omitempty"`
}

type LLM struct {
	Host    string  `yaml:"host"`
	Model   string  `yaml:"model"`
	Options Options `yaml:"options"`
}

// Merge folds overlay into base field by field. A string overrides only when
// non-empty, a boolean only when true, and each tuning option only when its
// pointer is set. A higher layer wins only where it actually provides a value.
func Merge(base Config, overlay Config) Config {
	merged := base
	merged.Paths.InputPath = overrideString(base.Paths.InputPath, overlay.Paths.InputPath)
	merged.Paths.OutputDir = overrideString(base.Paths.OutputDir, overlay.Paths.OutputDir)
	merged.Prompts.Profile = overrideString(base.Prompts.Profile, overlay.Prompts.Profile)
	merged.Prompts.SystemPrompt = overrideString(base.Prompts.SystemPrompt, overlay.Prompts.SystemPrompt)
	merged.Prompts.UserPromptTemplate = overrideString(base.Prompts.UserPromptTemplate, overlay.Prompts.UserPromptTemplate)
	merged.Generation.DryRun = base.Generation.DryRun || overlay.Generation.DryRun
	merged.Generation.Verbose = base.Generation.Verbose || overlay.Generation.Verbose
	merged.LLM.Host = overrideString(base.LLM.Host, overlay.LLM.Host)
	merged.LLM.Model = overrideString(base.LLM.Model, overlay.LLM.Model)
	merged.LLM.Options = mergeOptions(base.LLM.Options, overlay.LLM.Options)
	return merged
}

func mergeOptions(base Options, overlay Options) Options {
	return Options{
		NumPredict:    overrideIntPointer(base.NumPredict, overlay.NumPredict),
		Temperature:   overrideFloatPointer(base.Temperature, overlay.Temperature),
		TopP:          overrideFloatPointer(base.TopP, overlay.TopP),
		NumCtx:        overrideIntPointer(base.NumCtx, overlay.NumCtx),
		RepeatPenalty: overrideFloatPointer(base.RepeatPenalty, overlay.RepeatPenalty),
	}
}

func overrideString(base string, overlay string) string {
	if overlay != "" {
		return overlay
	}
	return base
}

func overrideIntPointer(base *int, overlay *int) *int {
	if overlay != nil {
		value := *overlay
		return &value
	}
	return base
}

func overrideFloatPointer(base *float64, overlay *float64) *float64 {
	if overlay != nil {
		value := *overlay
		return &value
	}
	return base
}
