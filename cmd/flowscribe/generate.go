package flowscribe

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"flowscribe/internal/config"
	"flowscribe/internal/engine"
)

type generateOptions struct {
	configPath    string
	outputDir     string
	model         string
	host          string
	numPredict    int
	temperature   float64
	topP          float64
	numCtx        int
	repeatPenalty float64
	systemPrompt  string
	userPrompt    string
	promptProfile string
	verbose       bool
}

func newGenerateCommand() *cobra.Command {
	options := &generateOptions{}
	command := &cobra.Command{
		Use:   generateCommandUse,
		Short: generateCommandShort,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGeneration(cmd, options, args, false)
		},
	}
	registerSharedFlags(command, options)
	return command
}

func newDryRunCommand() *cobra.Command {
	options := &generateOptions{}
	command := &cobra.Command{
		Use:   dryRunCommandUse,
		Short: dryRunCommandShort,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGeneration(cmd, options, args, true)
		},
	}
	registerSharedFlags(command, options)
	return command
}

func registerSharedFlags(command *cobra.Command, options *generateOptions) {
	flags := command.Flags()
	flags.StringVar(&options.configPath, configFlagName, "", configFlagUsage)
	flags.StringVarP(&options.outputDir, outputDirFlagName, outputDirFlagShorthand, "", outputDirFlagUsage)
	flags.StringVarP(&options.model, modelFlagName, modelFlagShorthand, "", modelFlagUsage)
	flags.StringVar(&options.host, hostFlagName, "", hostFlagUsage)
	flags.IntVar(&options.numPredict, numPredictFlagName, 0, numPredictFlagUsage)
	flags.Float64Var(&options.temperature, temperatureFlagName, 0, temperatureFlagUsage)
	flags.Float64Var(&options.topP, topPFlagName, 0, topPFlagUsage)
	flags.IntVar(&options.numCtx, numCtxFlagName, 0, numCtxFlagUsage)
	flags.Float64Var(&options.repeatPenalty, repeatPenaltyFlagName, 0, repeatPenaltyFlagUsage)
	flags.StringVar(&options.systemPrompt, systemPromptFlagName, "", systemPromptFlagUsage)
	flags.StringVar(&options.userPrompt, userPromptFlagName, "", userPromptFlagUsage)
	flags.StringVar(&options.promptProfile, promptProfileFlagName, "", promptProfileFlagUsage)
	flags.BoolVarP(&options.verbose, verboseFlagName, verboseFlagShorthand, false, verboseFlagUsage)
}

// overrideLayer lifts only explicitly provided flags into the call-site
// layer; an untouched flag never overwrites a lower layer. pflag's Changed
// state is what "explicitly provided" means here.
func overrideLayer(flags *pflag.FlagSet, options *generateOptions, args []string, forceDryRun bool) config.Config {
	var layer config.Config
	if len(args) > 0 {
		layer.Paths.InputPath = args[0]
	}
	layer.Paths.OutputDir = options.outputDir
	layer.Prompts.Profile = options.promptProfile
	layer.Prompts.SystemPrompt = options.systemPrompt
	layer.Prompts.UserPromptTemplate = options.userPrompt
	layer.Generation.DryRun = forceDryRun
	layer.Generation.Verbose = options.verbose
	layer.LLM.Host = options.host
	layer.LLM.Model = options.model

	if flags.Changed(numPredictFlagName) {
		value := options.numPredict
		layer.LLM.Options.NumPredict = &value
	}
	if flags.Changed(temperatureFlagName) {
		value := options.temperature
		layer.LLM.Options.Temperature = &value
	}
	if flags.Changed(topPFlagName) {
		value := options.topP
		layer.LLM.Options.TopP = &value
	}
	if flags.Changed(numCtxFlagName) {
		value := options.numCtx
		layer.LLM.Options.NumCtx = &value
	}
	if flags.Changed(repeatPenaltyFlagName) {
		value := options.repeatPenalty
		layer.LLM.Options.RepeatPenalty = &value
	}
	return layer
}

func resolveEffectiveConfig(options *generateOptions, args []string, flags *pflag.FlagSet, forceDryRun bool) (config.Config, error) {
	resolver, resolverError := config.NewDefaultResolver()
	if resolverError != nil {
		return config.Config{}, resolverError
	}
	resolved, resolveError := resolver.Resolve(options.configPath)
	if resolveError != nil {
		return config.Config{}, resolveError
	}
	return config.Merge(resolved, overrideLayer(flags, options, args, forceDryRun)), nil
}

func runGeneration(command *cobra.Command, options *generateOptions, args []string, forceDryRun bool) error {
	merged, configError := resolveEffectiveConfig(options, args, command.Flags(), forceDryRun)
	if configError != nil {
		return configError
	}
	if merged.Paths.InputPath == "" {
		return errMissingInput
	}

	logger, loggerError := newLogger(merged.Generation.Verbose)
	if loggerError != nil {
		return loggerError
	}
	defer func() { _ = logger.Sync() }()

	documentEngine := engine.New(merged, logger)
	result, runError := documentEngine.RunBatch(command.Context(), merged.Paths.InputPath, merged.Paths.OutputDir)
	if runError != nil {
		return runError
	}

	if _, writeError := fmt.Fprintf(command.OutOrStdout(), runSummaryFormat, result.Total, result.Succeeded, result.Failed); writeError != nil {
		return writeError
	}
	if merged.Generation.DryRun {
		if _, writeError := fmt.Fprint(command.OutOrStdout(), dryRunNote); writeError != nil {
			return writeError
		}
	}
	return nil
}
