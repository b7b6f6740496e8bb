package structure

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/menuscout/menuscout/internal/xerrors"
)

// DefaultModel is used when no model name is configured.
const DefaultModel = "llama3.1"

// structureTimeout bounds one structuring call; local models can be
// slow on long menus.
const structureTimeout = 45 * time.Second

// OllamaChat talks the Ollama /api/chat wire format: non-streaming
// chat with format "json" and near-deterministic decoding.
type OllamaChat struct {
	BaseURL    string
	Model      string
	HTTPClient *http.Client
	// Temperature passed through to the model; defaults to 0.1.
	Temperature float64
}

// NewOllamaChat fills in defaults for empty fields.
func NewOllamaChat(baseURL, model string) *OllamaChat {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	if strings.TrimSpace(model) == "" {
		model = DefaultModel
	}
	return &OllamaChat{BaseURL: baseURL, Model: model}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatOptions struct {
	Temperature float64 `json:"temperature"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Format   string        `json:"format"`
	Stream   bool          `json:"stream"`
	Options  chatOptions   `json:"options"`
}

type chatResponse struct {
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
}

// Complete posts one chat turn and returns the assistant content.
func (o *OllamaChat) Complete(ctx context.Context, system, user string) (string, error) {
	temp := o.Temperature
	if temp <= 0 {
		temp = 0.1
	}
	payload, err := json.Marshal(chatRequest{
		Model: o.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Format:  "json",
		Stream:  false,
		Options: chatOptions{Temperature: temp},
	})
	if err != nil {
		return "", xerrors.Wrap(xerrors.KindStructuringMalformed, err, "marshal chat request")
	}

	ctx, cancel := context.WithTimeout(ctx, structureTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.BaseURL, bytes.NewReader(payload))
	if err != nil {
		return "", xerrors.Wrap(xerrors.KindStructuringUnreachable, err, "new chat request")
	}
	req.Header.Set("Content-Type", "application/json")

	client := o.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: structureTimeout}
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", xerrors.Wrap(xerrors.KindStructuringUnreachable, err, "structuring service %s", o.BaseURL)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", xerrors.Wrap(xerrors.KindStructuringUnreachable, err, "read structuring response")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", xerrors.New(xerrors.KindStructuringUnreachable, "structuring service status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", xerrors.Wrap(xerrors.KindStructuringMalformed, err, "decode chat response")
	}
	if strings.TrimSpace(parsed.Message.Content) == "" {
		return "", xerrors.New(xerrors.KindStructuringMalformed, "empty assistant content")
	}
	return parsed.Message.Content, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
