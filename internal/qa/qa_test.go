package qa

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"braill/internal/lang"
)

func TestUnconfiguredClientServesFallbacks(t *testing.T) {
	c := New("", nil)

	assert.Equal(t, "Hello! How can I help you?",
		c.Ask(context.Background(), "hello there", lang.English))
	assert.Equal(t, "I'm doing well, thank you for asking.",
		c.Ask(context.Background(), "how are you today", lang.English))
	assert.Equal(t, "My name is Braill, your personal assistant.",
		c.Ask(context.Background(), "what is your name", lang.English))
}

func TestFallbackHindi(t *testing.T) {
	c := New("", nil)

	assert.Equal(t, "नमस्ते! मैं आपकी कैसे मदद कर सकता हूं?",
		c.Ask(context.Background(), "नमस्ते", lang.Hindi))
}

func TestUnknownQuestionGetsApology(t *testing.T) {
	c := New("", nil)

	assert.Equal(t, lang.English.AnswerUnavailable(),
		c.Ask(context.Background(), "explain quantum entanglement", lang.English))
	assert.Equal(t, lang.Hindi.AnswerUnavailable(),
		c.Ask(context.Background(), "क्वांटम क्या है", lang.Hindi))
}
