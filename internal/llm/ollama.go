package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	chatEndpointPath   = "/api/chat"
	systemRole         = "system"
	userRole           = "user"
	requestTimeout     = 60 * time.Second
	bodyPreviewLimit   = 512
	missingContentNote = "missing message.content"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
	Options  *Options      `json:"options,omitempty"`
}

type chatResponse struct {
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
}

// Ollama is the shipped chat backend. It speaks the Ollama /api/chat
// protocol against a configured host.
type Ollama struct {
	Host       string
	Model      string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// NewOllama builds a client with the fixed request timeout.
func NewOllama(host string, model string, logger *zap.Logger) *Ollama {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ollama{
		Host:       host,
		Model:      model,
		HTTPClient: &http.Client{Timeout: requestTimeout},
		Logger:     logger,
	}
}

// Generate posts a non-streaming two-message chat exchange and returns the
// extracted text unmodified.
func (client *Ollama) Generate(ctx context.Context, request Request, options Options) (string, error) {
	payload := chatRequest{
		Model: client.Model,
		Messages: []chatMessage{
			{Role: systemRole, Content: request.System},
			{Role: userRole, Content: request.User},
		},
		Stream: false,
	}
	if !options.Empty() {
		payload.Options = &options
		client.Logger.Debug("using generation options", zap.Any("options", options))
	}

	encoded, marshalError := json.Marshal(payload)
	if marshalError != nil {
		return "", marshalError
	}

	endpoint := strings.TrimRight(client.Host, "/") + chatEndpointPath
	httpRequest, buildError := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if buildError != nil {
		return "", &NetworkError{Err: buildError}
	}
	httpRequest.Header.Set("Content-Type", "application/json")

	client.Logger.Debug("posting chat request", zap.String("endpoint", endpoint), zap.String("model", client.Model))
	httpResponse, doError := client.httpClient().Do(httpRequest)
	if doError != nil {
		return "", &NetworkError{Err: doError}
	}
	defer func(closer io.ReadCloser) { _ = closer.Close() }(httpResponse.Body)

	body, readError := io.ReadAll(httpResponse.Body)
	if readError != nil {
		return "", &NetworkError{Err: readError}
	}

	if httpResponse.StatusCode < 200 || httpResponse.StatusCode >= 300 {
		return "", &NetworkError{Status: httpResponse.StatusCode, Body: preview(body)}
	}

	var decoded chatResponse
	if decodeError := json.Unmarshal(body, &decoded); decodeError != nil {
		return "", &ResponseError{Reason: "invalid JSON body: " + preview(body)}
	}
	if decoded.Message.Content == "" {
		return "", &ResponseError{Reason: missingContentNote + ": " + preview(body)}
	}

	client.Logger.Debug("received generation", zap.Int("characters", len(decoded.Message.Content)))
	return decoded.Message.Content, nil
}

func (client *Ollama) httpClient() *http.Client {
	if client.HTTPClient != nil {
		return client.HTTPClient
	}
	return &http.Client{Timeout: requestTimeout}
}

func preview(body []byte) string {
	text := string(body)
	if len(text) <= bodyPreviewLimit {
		return text
	}
	runes := []rune(text)
	if len(runes) <= bodyPreviewLimit {
		return text
	}
	return string(runes[:bodyPreviewLimit]) + "…"
}
