package flowscribe

const (
	rootCommandUse   = "flowscribe"
	rootCommandShort = "Generate Markdown docs for n8n workflow JSON definitions"

	generateCommandUse   = "generate INPUT"
	generateCommandShort = "Generate documentation for a workflow file or directory"
	dryRunCommandUse     = "dry-run INPUT"
	dryRunCommandShort   = "List workflows without generating docs"
	configCommandUse     = "config"
	configCommandShort   = "Configuration utilities"
	showCommandUse       = "show"
	showCommandShort     = "Show the fully resolved configuration"

	configFlagName         = "config"
	configFlagUsage        = "Path to flowscribe TOML config"
	outputDirFlagName      = "output-dir"
	outputDirFlagShorthand = "o"
	outputDirFlagUsage     = "Output directory root"
	modelFlagName          = "model"
	modelFlagShorthand     = "m"
	modelFlagUsage         = "LLM model name"
	hostFlagName           = "host"
	hostFlagUsage          = "LLM host URL"
	numPredictFlagName     = "num-predict"
	numPredictFlagUsage    = "Maximum number of tokens to generate"
	temperatureFlagName    = "temperature"
	temperatureFlagUsage   = "Sampling temperature"
	topPFlagName           = "top-p"
	topPFlagUsage          = "Nucleus sampling probability"
	numCtxFlagName         = "num-ctx"
	numCtxFlagUsage        = "Context window size"
	repeatPenaltyFlagName  = "repeat-penalty"
	repeatPenaltyFlagUsage = "Repetition penalty"
	systemPromptFlagName   = "system-prompt"
	systemPromptFlagUsage  = "Override the system prompt text"
	userPromptFlagName     = "user-prompt"
	userPromptFlagUsage    = "Override the user prompt template"
	promptProfileFlagName  = "prompt-profile"
	promptProfileFlagUsage = "Prompt profile name"
	verboseFlagName        = "verbose"
	verboseFlagShorthand   = "v"
	verboseFlagUsage       = "Enable debug logging"

	runSummaryFormat = "Processing complete. Total files: %d, succeeded: %d, failed: %d\n"
	dryRunNote       = "Dry run enabled; no files were generated.\n"
)

// Exit codes distinguish the error classes a caller can react to.
const (
	ExitSuccess = 0
	ExitUsage   = 1
	ExitConfig  = 2
	ExitLLM     = 3
	ExitRuntime = 4
)
