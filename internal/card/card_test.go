package card_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kberg/flashdeck/internal/card"
)

func TestParseType(t *testing.T) {
	for _, s := range []string{"classic", "true_false", "multiple_choice"} {
		typ, err := card.ParseType(s)
		require.NoError(t, err)
		assert.Equal(t, card.Type(s), typ)
	}

	_, err := card.ParseType("fill_in_the_blank")
	assert.Error(t, err)
}

func TestClassicValidate(t *testing.T) {
	assert.NoError(t, card.Classic{Term: "ephemeral", Definition: "short-lived"}.Validate())
	assert.Error(t, card.Classic{Term: "", Definition: "short-lived"}.Validate())
	assert.Error(t, card.Classic{Term: "ephemeral", Definition: ""}.Validate())
}

func TestTrueFalseValidate(t *testing.T) {
	assert.NoError(t, card.TrueFalse{Statement: "The sky is blue", CorrectAnswer: "true"}.Validate())
	assert.NoError(t, card.TrueFalse{Statement: "Pigs fly", CorrectAnswer: "false"}.Validate())
	assert.Error(t, card.TrueFalse{Statement: "Pigs fly", CorrectAnswer: "no"}.Validate())
	assert.Error(t, card.TrueFalse{Statement: "", CorrectAnswer: "true"}.Validate())
}

func TestMultipleChoiceValidate(t *testing.T) {
	valid := card.MultipleChoice{
		Question:      "Capital of France?",
		Options:       []string{"Paris", "London", "Berlin"},
		CorrectAnswer: "Paris",
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name string
		c    card.MultipleChoice
	}{
		{"answer not in options", card.MultipleChoice{Question: "q", Options: []string{"a", "b"}, CorrectAnswer: "c"}},
		{"too few options", card.MultipleChoice{Question: "q", Options: []string{"a"}, CorrectAnswer: "a"}},
		{"too many options", card.MultipleChoice{Question: "q", Options: []string{"a", "b", "c", "d", "e"}, CorrectAnswer: "a"}},
		{"duplicate options", card.MultipleChoice{Question: "q", Options: []string{"a", "a"}, CorrectAnswer: "a"}},
		{"empty option", card.MultipleChoice{Question: "q", Options: []string{"a", ""}, CorrectAnswer: "a"}},
		{"empty question", card.MultipleChoice{Question: "", Options: []string{"a", "b"}, CorrectAnswer: "a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.c.Validate())
		})
	}
}

func TestCheckAnswer_TrueFalse(t *testing.T) {
	c := card.TrueFalse{Statement: "Water boils at 100C", CorrectAnswer: "true"}

	correct, err := card.CheckAnswer(c, "true")
	require.NoError(t, err)
	assert.True(t, correct)

	correct, err = card.CheckAnswer(c, "false")
	require.NoError(t, err)
	assert.False(t, correct)
}

func TestCheckAnswer_MultipleChoice(t *testing.T) {
	c := card.MultipleChoice{
		Question:      "Capital of France?",
		Options:       []string{"Paris", "London", "Berlin"},
		CorrectAnswer: "Paris",
	}

	correct, err := card.CheckAnswer(c, "Paris")
	require.NoError(t, err)
	assert.True(t, correct)

	correct, err = card.CheckAnswer(c, "London")
	require.NoError(t, err)
	assert.False(t, correct)

	// A value outside the option set is incorrect, never an error.
	correct, err = card.CheckAnswer(c, "Madrid")
	require.NoError(t, err)
	assert.False(t, correct)
}

func TestCheckAnswer_ClassicNotAnswerable(t *testing.T) {
	_, err := card.CheckAnswer(card.Classic{Term: "a", Definition: "b"}, "anything")
	assert.Error(t, err)
}

func TestMarshalRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		content card.Content
	}{
		{"classic", card.Classic{Term: "ephemeral", Definition: "short-lived"}},
		{"true_false", card.TrueFalse{Statement: "The sky is blue", CorrectAnswer: "true"}},
		{"multiple_choice", card.MultipleChoice{Question: "q", Options: []string{"a", "b"}, CorrectAnswer: "a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := card.Marshal(tt.content)
			require.NoError(t, err)

			got, err := card.Unmarshal(tt.content.CardType(), data)
			require.NoError(t, err)
			assert.Equal(t, tt.content, got)
		})
	}
}

func TestUnmarshal_UnknownType(t *testing.T) {
	_, err := card.Unmarshal(card.Type("essay"), []byte(`{}`))
	assert.Error(t, err)
}
