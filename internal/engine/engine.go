// Package engine sequences discovery, loading, prompt building, generation
// and writing per input file, isolating failures at the file boundary and
// aggregating a run summary.
package engine

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"flowscribe/internal/config"
	"flowscribe/internal/llm"
	"flowscribe/internal/output"
	"flowscribe/internal/prompt"
	"flowscribe/internal/workflow"
)

const (
	noWorkflowsFoundReason = "no workflow JSON files found under %s"
	dryRunLogFormat        = "[dry run] would generate documentation for %s"
	processingLogFormat    = "processing file %d/%d: %s"
	processedFailureFormat = "failed processing %s: %s"
	processedSuccessFormat = "markdown exported: %s"
	interruptedLogLine     = "cancellation requested; stopping before next file"
	runSummaryMessage      = "processing complete"
)

// ProcessResult is the per-file outcome.
type ProcessResult struct {
	Workflow  string
	Succeeded bool
	Error     string
	Output    string
}

// RunResult aggregates one batch. Total counts only files actually attempted,
// so Total == Succeeded + Failed holds even after an interrupted run.
type RunResult struct {
	Total     int
	Succeeded int
	Failed    int
	Details   []ProcessResult
}

// Engine owns the per-run pipeline. It is unaware of threading: RunBatch
// blocks until the batch completes or the context is cancelled, and the two
// callbacks fire after each file on the engine's own control flow.
type Engine struct {
	Config config.Config
	Client llm.Client
	FS     afero.Fs
	Logger *zap.Logger

	// Progress reports (index, total) after each attempted file; Log reports
	// a free-text line. Either may be nil.
	Progress func(index int, total int)
	Log      func(line string)
}

// New wires an Engine with the shipped Ollama backend and the OS filesystem.
func New(configuration config.Config, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		Config: configuration,
		Client: llm.NewOllama(configuration.LLM.Host, configuration.LLM.Model, logger),
		FS:     afero.NewOsFs(),
		Logger: logger,
	}
}

// ProcessOne is the fault-isolation boundary: every failure in loading,
// prompt building, generation or writing is converted into a ProcessResult
// and never aborts the batch. In dry-run mode it stops right after the
// document loads, without contacting the backend or writing anything.
func (engine *Engine) ProcessOne(workflowPath string, baseInput string, outputRoot string) ProcessResult {
	document, loadError := workflow.Load(engine.fileSystem(), workflowPath)
	if loadError != nil {
		return engine.failure(workflowPath, loadError)
	}

	if engine.Config.Generation.DryRun {
		engine.logLine(fmt.Sprintf(dryRunLogFormat, workflowPath))
		return ProcessResult{Workflow: workflowPath}
	}

	builder := prompt.Builder{Config: engine.Config.Prompts}
	bundle, buildError := builder.Build(document)
	if buildError != nil {
		return engine.failure(workflowPath, buildError)
	}

	generated, generateError := engine.Client.Generate(
		context.Background(),
		llm.Request{System: bundle.System, User: bundle.User},
		llm.OptionsFromConfig(engine.Config.LLM.Options),
	)
	if generateError != nil {
		return engine.failure(workflowPath, generateError)
	}

	writtenPath, writeError := output.Write(engine.fileSystem(), outputRoot, baseInput, workflowPath, generated)
	if writeError != nil {
		return engine.failure(workflowPath, writeError)
	}

	engine.logLine(fmt.Sprintf(processedSuccessFormat, writtenPath))
	return ProcessResult{Workflow: workflowPath, Succeeded: true, Output: writtenPath}
}

// RunBatch discovers the input set and processes it strictly sequentially in
// discovery order. Zero discovered files fails the whole batch. Cancellation
// is polled only between files; the in-flight file always finishes and
// nothing already written is rolled back.
func (engine *Engine) RunBatch(ctx context.Context, inputPath string, outputRoot string) (RunResult, error) {
	discovered, discoverError := workflow.Discover(engine.fileSystem(), inputPath)
	if discoverError != nil {
		return RunResult{}, discoverError
	}
	if len(discovered) == 0 {
		return RunResult{}, &workflow.DiscoveryError{
			Path:   inputPath,
			Reason: fmt.Sprintf(noWorkflowsFoundReason, inputPath),
		}
	}

	baseInput := inputPath
	if info, statError := engine.fileSystem().Stat(inputPath); statError == nil && !info.IsDir() {
		baseInput = filepath.Dir(inputPath)
	}

	return engine.runSelection(ctx, discovered, baseInput, outputRoot), nil
}

// RunSelection processes an explicit, pre-discovered subset of files, for
// callers that let an operator pick from the discovered set. The zero-file
// and accounting rules match RunBatch.
func (engine *Engine) RunSelection(ctx context.Context, selection []string, baseInput string, outputRoot string) (RunResult, error) {
	if len(selection) == 0 {
		return RunResult{}, &workflow.DiscoveryError{
			Path:   baseInput,
			Reason: fmt.Sprintf(noWorkflowsFoundReason, baseInput),
		}
	}
	return engine.runSelection(ctx, selection, baseInput, outputRoot), nil
}

func (engine *Engine) runSelection(ctx context.Context, selection []string, baseInput string, outputRoot string) RunResult {
	var result RunResult
	total := len(selection)

	for index, workflowPath := range selection {
		select {
		case <-ctx.Done():
			engine.logLine(interruptedLogLine)
			result.Total = len(result.Details)
			return result
		default:
		}

		engine.logLine(fmt.Sprintf(processingLogFormat, index+1, total, workflowPath))
		processResult := engine.ProcessOne(workflowPath, baseInput, outputRoot)
		result.Details = append(result.Details, processResult)
		if processResult.Succeeded {
			result.Succeeded++
		} else {
			result.Failed++
			if processResult.Error != "" {
				engine.logLine(fmt.Sprintf(processedFailureFormat, workflowPath, processResult.Error))
			}
		}
		if engine.Progress != nil {
			engine.Progress(index+1, total)
		}
	}

	result.Total = len(result.Details)
	engine.Logger.Info(runSummaryMessage,
		zap.Int("total", result.Total),
		zap.Int("succeeded", result.Succeeded),
		zap.Int("failed", result.Failed),
	)
	return result
}

func (engine *Engine) failure(workflowPath string, err error) ProcessResult {
	engine.Logger.Error("workflow processing failed", zap.String("workflow", workflowPath), zap.Error(err))
	return ProcessResult{Workflow: workflowPath, Error: err.Error()}
}

func (engine *Engine) fileSystem() afero.Fs {
	if engine.FS != nil {
		return engine.FS
	}
	return afero.NewOsFs()
}

func (engine *Engine) logLine(line string) {
	engine.Logger.Info(line)
	if engine.Log != nil {
		engine.Log(line)
	}
}
