// Package ai generates flashcard drafts from a topic using an OpenAI-style
// chat completions endpoint.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/kberg/flashdeck/internal/card"
	"github.com/kberg/flashdeck/internal/logger"
)

// Generator produces flashcard content for a topic.
type Generator interface {
	GenerateCards(ctx context.Context, topic string, cardType card.Type, count int) ([]card.Content, error)
}

// Client calls a chat completions API and parses the reply into cards.
type Client struct {
	apiKey     string
	apiURL     string
	model      string
	httpClient *http.Client
}

// NewClient creates a generation client. apiURL and model fall back to the
// OpenAI defaults when empty.
func NewClient(apiKey, apiURL, model string) *Client {
	if apiURL == "" {
		apiURL = "https://api.openai.com/v1/chat/completions"
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &Client{
		apiKey:     apiKey,
		apiURL:     apiURL,
		model:      model,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// generatedCard is the shape the model is asked to emit, a superset of all
// three variants.
type generatedCard struct {
	Term          string   `json:"term,omitempty"`
	Definition    string   `json:"definition,omitempty"`
	Statement     string   `json:"statement,omitempty"`
	Question      string   `json:"question,omitempty"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correct_answer,omitempty"`
}

// GenerateCards asks the model for count cards of the given type about topic.
// Cards that fail validation are skipped; an empty result is an error.
func (c *Client) GenerateCards(ctx context.Context, topic string, cardType card.Type, count int) ([]card.Content, error) {
	log := logger.FromContext(ctx).WithPrefix("ai")

	if c.apiKey == "" {
		return nil, fmt.Errorf("generation is not configured: missing API key")
	}
	if count < 1 {
		count = 1
	}
	if count > 20 {
		count = 20
	}

	request := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: "You create study flashcards. Reply with a JSON array only, no prose and no code fences."},
			{Role: "user", Content: buildPrompt(topic, cardType, count)},
		},
		Temperature: 0.7,
	}

	body, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	var response chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if response.Error != nil {
		return nil, fmt.Errorf("API error: %s", response.Error.Message)
	}
	if len(response.Choices) == 0 {
		return nil, fmt.Errorf("no response choices returned")
	}

	raw := stripCodeFences(response.Choices[0].Message.Content)

	var drafts []generatedCard
	if err := json.Unmarshal([]byte(raw), &drafts); err != nil {
		return nil, fmt.Errorf("model reply is not a JSON card array: %w", err)
	}

	var cards []card.Content
	for i, d := range drafts {
		content, err := d.toContent(cardType)
		if err != nil {
			log.Warn("skipping generated card %d: %v", i, err)
			continue
		}
		cards = append(cards, content)
	}
	if len(cards) == 0 {
		return nil, fmt.Errorf("model returned no usable cards")
	}
	return cards, nil
}

func buildPrompt(topic string, cardType card.Type, count int) string {
	switch cardType {
	case card.TypeTrueFalse:
		return fmt.Sprintf(
			"Create %d true/false flashcards about %q. "+
				"Each array element is an object with \"statement\" and \"correct_answer\" "+
				"where correct_answer is the string \"true\" or \"false\". Mix true and false statements.",
			count, topic)
	case card.TypeMultipleChoice:
		return fmt.Sprintf(
			"Create %d multiple choice flashcards about %q. "+
				"Each array element is an object with \"question\", \"options\" (an array of 3 or 4 distinct strings) "+
				"and \"correct_answer\" (exactly one of the options).",
			count, topic)
	default:
		return fmt.Sprintf(
			"Create %d term/definition flashcards about %q. "+
				"Each array element is an object with \"term\" and \"definition\". Keep definitions under 30 words.",
			count, topic)
	}
}

func (d generatedCard) toContent(cardType card.Type) (card.Content, error) {
	var content card.Content
	switch cardType {
	case card.TypeClassic:
		content = card.Classic{Term: d.Term, Definition: d.Definition}
	case card.TypeTrueFalse:
		content = card.TrueFalse{Statement: d.Statement, CorrectAnswer: strings.ToLower(d.CorrectAnswer)}
	case card.TypeMultipleChoice:
		content = card.MultipleChoice{Question: d.Question, Options: d.Options, CorrectAnswer: d.CorrectAnswer}
	default:
		return nil, fmt.Errorf("unknown card type %q", cardType)
	}
	if err := content.Validate(); err != nil {
		return nil, err
	}
	return content, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}
