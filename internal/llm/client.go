// Package llm defines the generation capability consumed by the engine and
// ships the Ollama chat backend as its one concrete implementation. Other
// backends can be substituted without touching the engine.
package llm

import (
	"context"

	"flowscribe/internal/config"
)

// Request is one two-message exchange: system instruction then user message.
type Request struct {
	System string
	User   string
}

// Options carries the sparse tuning values forwarded to the backend. Absent
// fields are omitted from the outbound request entirely so the backend's own
// defaults apply.
type Options struct {
	NumPredict    *int     `json:"num_predict,omitempty"`
	Temperature   *float64 `json:"temperature,omitempty"`
	TopP          *float64 `json:"top_p,omitempty"`
	NumCtx        *int     `json:"num_ctx,omitempty"`
	RepeatPenalty *float64 `json:"repeat_penalty,omitempty"`
}

// Empty reports whether no tuning field is present.
func (o Options) Empty() bool {
	return o.NumPredict == nil && o.Temperature == nil && o.TopP == nil &&
		o.NumCtx == nil && o.RepeatPenalty == nil
}

// OptionsFromConfig maps the configured tuning values onto request options.
func OptionsFromConfig(configured config.Options) Options {
	return Options{
		NumPredict:    configured.NumPredict,
		Temperature:   configured.Temperature,
		TopP:          configured.TopP,
		NumCtx:        configured.NumCtx,
		RepeatPenalty: configured.RepeatPenalty,
	}
}

// Client is the pluggable generation boundary.
type Client interface {
	Generate(ctx context.Context, request Request, options Options) (string, error)
}
