// Package structure sends extracted text to an external
// text-to-structured-data service and parses the response into the menu
// shape. Two backends implement the same Chat interface: the native
// Ollama /api/chat wire format and any OpenAI-compatible endpoint.
package structure

import (
	"context"
	"strings"

	"github.com/menuscout/menuscout/internal/budget"
	"github.com/menuscout/menuscout/internal/menu"
	"github.com/menuscout/menuscout/internal/xerrors"
)

// DefaultBaseURL is the structuring endpoint used when none is
// configured. Matches a local Ollama install.
const DefaultBaseURL = "http://localhost:11434/api/chat"

// Chat is the minimal completion interface the structuring step needs.
// Implementations must return the assistant message content as a raw
// string and surface connectivity failures as structuring_unreachable
// errors.
type Chat interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Client reduces input to the character budget, calls the backend, and
// normalizes the JSON it returns.
type Client struct {
	Backend Chat
	// MaxChars bounds structuring input; zero means budget.DefaultMaxChars.
	MaxChars int
}

// NewClient wires the default Ollama backend. baseURL may be empty.
func NewClient(baseURL, model string) *Client {
	return &Client{Backend: NewOllamaChat(baseURL, model)}
}

const systemPrompt = `You convert restaurant menu text into strict JSON. ` +
	`Respond with a single JSON object and nothing else.`

const userPromptHeader = `Extract every menu item from the text below into this exact JSON shape:
{"starters": [], "main_courses": [], "desserts": [], "drinks": []}
Each array holds objects with keys "name", "price" and optionally "description".
Rules:
- Copy prices verbatim from the text, including the currency symbol.
- Use exactly "N/A" as the price when the text shows none.
- Never invent items, names or prices that are not in the text.
- Put items that fit no category into an extra top-level category key.

Menu text:
`

// Structure converts extracted text into a normalized Menu.
func (c *Client) Structure(ctx context.Context, text string) (menu.Menu, error) {
	reduced := budget.Reduce(text, c.MaxChars)
	content, err := c.Backend.Complete(ctx, systemPrompt, userPromptHeader+reduced)
	if err != nil {
		return menu.Menu{}, err
	}
	m, err := parseMenuJSON(content)
	if err != nil {
		return menu.Menu{}, xerrors.Wrap(xerrors.KindStructuringMalformed, err, "unparseable structuring output")
	}
	return m, nil
}

// parseMenuJSON parses the assistant content as a JSON object. When the
// model wraps the object in prose, the substring between the first '{'
// and the last '}' is salvaged and parsed again.
func parseMenuJSON(content string) (menu.Menu, error) {
	m, err := menu.PostProcess([]byte(content))
	if err == nil {
		return m, nil
	}
	start := strings.IndexByte(content, '{')
	end := strings.LastIndexByte(content, '}')
	if start >= 0 && end > start {
		if m, err2 := menu.PostProcess([]byte(content[start : end+1])); err2 == nil {
			return m, nil
		}
	}
	return menu.Menu{}, err
}
