// Package flowscribe wires the cobra command surface around the engine.
package flowscribe

import (
	"errors"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"flowscribe/internal/config"
	"flowscribe/internal/llm"
)

var errMissingInput = errors.New("input path is required (argument or paths.input_path)")

// NewRootCommand assembles the full command tree.
func NewRootCommand() *cobra.Command {
	rootCommand := &cobra.Command{
		Use:           rootCommandUse,
		Short:         rootCommandShort,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCommand.AddCommand(newGenerateCommand())
	rootCommand.AddCommand(newDryRunCommand())
	rootCommand.AddCommand(newConfigCommand())
	return rootCommand
}

// Execute runs the CLI and maps the failure class onto an exit code.
func Execute() int {
	// A .env file, when present, feeds the environment override layer.
	_ = godotenv.Load()

	rootCommand := NewRootCommand()
	executionError := rootCommand.Execute()
	if executionError == nil {
		return ExitSuccess
	}

	logger := zap.Must(zap.NewProduction())
	logger.Error("command failed", zap.Error(executionError))
	_ = logger.Sync()
	return ExitCodeFor(executionError)
}

// ExitCodeFor classifies an error into the documented exit codes: usage,
// configuration, generation-backend, then everything else as runtime.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if errors.Is(err, errMissingInput) {
		return ExitUsage
	}
	var configurationError *config.Error
	if errors.As(err, &configurationError) {
		return ExitConfig
	}
	var networkError *llm.NetworkError
	var responseError *llm.ResponseError
	if errors.As(err, &networkError) || errors.As(err, &responseError) {
		return ExitLLM
	}
	return ExitRuntime
}

func newLogger(verbose bool) (*zap.Logger, error) {
	loggerConfiguration := zap.NewProductionConfig()
	if verbose {
		loggerConfiguration.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return loggerConfiguration.Build()
}
