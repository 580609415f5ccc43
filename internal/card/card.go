// Package card defines the closed set of flashcard variants and their
// validation and answer-checking rules.
package card

import (
	"encoding/json"
	"fmt"
)

// Type identifies a flashcard variant. The set is closed: every switch over
// Type in this package handles all three variants and rejects anything else.
type Type string

const (
	TypeClassic        Type = "classic"
	TypeTrueFalse      Type = "true_false"
	TypeMultipleChoice Type = "multiple_choice"
)

// ParseType parses a card type string, rejecting unknown values.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeClassic, TypeTrueFalse, TypeMultipleChoice:
		return Type(s), nil
	}
	return "", fmt.Errorf("unknown card type %q", s)
}

// Content is the variant payload of a flashcard. Implemented only by Classic,
// TrueFalse and MultipleChoice; the unexported method keeps the set closed.
type Content interface {
	CardType() Type
	Validate() error
	isContent()
}

// Classic is a term/definition card studied by flipping.
type Classic struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

func (Classic) CardType() Type { return TypeClassic }
func (Classic) isContent()     {}

func (c Classic) Validate() error {
	if c.Term == "" {
		return fmt.Errorf("term must not be empty")
	}
	if c.Definition == "" {
		return fmt.Errorf("definition must not be empty")
	}
	return nil
}

// TrueFalse is a statement judged true or false. CorrectAnswer holds the
// literal string "true" or "false".
type TrueFalse struct {
	Statement     string `json:"statement"`
	CorrectAnswer string `json:"correct_answer"`
}

func (TrueFalse) CardType() Type { return TypeTrueFalse }
func (TrueFalse) isContent()     {}

func (c TrueFalse) Validate() error {
	if c.Statement == "" {
		return fmt.Errorf("statement must not be empty")
	}
	if c.CorrectAnswer != "true" && c.CorrectAnswer != "false" {
		return fmt.Errorf("correct_answer must be %q or %q, got %q", "true", "false", c.CorrectAnswer)
	}
	return nil
}

// MultipleChoice is a question with 2-4 options, exactly one of them correct.
type MultipleChoice struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
}

func (MultipleChoice) CardType() Type { return TypeMultipleChoice }
func (MultipleChoice) isContent()     {}

func (c MultipleChoice) Validate() error {
	if c.Question == "" {
		return fmt.Errorf("question must not be empty")
	}
	if len(c.Options) < 2 || len(c.Options) > 4 {
		return fmt.Errorf("options must have 2-4 entries, got %d", len(c.Options))
	}
	seen := map[string]bool{}
	for i, opt := range c.Options {
		if opt == "" {
			return fmt.Errorf("option %d must not be empty", i)
		}
		if seen[opt] {
			return fmt.Errorf("duplicate option %q", opt)
		}
		seen[opt] = true
	}
	if !seen[c.CorrectAnswer] {
		return fmt.Errorf("correct_answer %q is not one of the options", c.CorrectAnswer)
	}
	return nil
}

// CheckAnswer reports whether the submitted answer is correct for the card.
// Classic cards are not answerable; true/false and multiple choice compare
// against CorrectAnswer. A value outside the option set is simply incorrect.
func CheckAnswer(content Content, answer string) (bool, error) {
	switch c := content.(type) {
	case Classic:
		return false, fmt.Errorf("classic cards do not take answers")
	case TrueFalse:
		return answer == c.CorrectAnswer, nil
	case MultipleChoice:
		return answer == c.CorrectAnswer, nil
	default:
		return false, fmt.Errorf("unhandled card content %T", content)
	}
}

// Marshal serializes card content for storage.
func Marshal(content Content) ([]byte, error) {
	return json.Marshal(content)
}

// Unmarshal deserializes card content for the given type.
func Unmarshal(t Type, data []byte) (Content, error) {
	switch t {
	case TypeClassic:
		var c Classic
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, err
		}
		return c, nil
	case TypeTrueFalse:
		var c TrueFalse
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, err
		}
		return c, nil
	case TypeMultipleChoice:
		var c MultipleChoice
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown card type %q", t)
	}
}
