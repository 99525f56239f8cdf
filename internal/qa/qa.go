// Package qa answers free-form questions through the chat-completion backend,
// degrading to a local small-talk table when the backend is unreachable or no
// API key is configured. Nothing here ever fails the conversation loop: the
// worst outcome is a spoken "I'm not sure about that".
package qa

import (
	"context"
	"log/slog"
	"strings"
	"time"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"braill/internal/lang"
)

// DefaultTimeout bounds one backend round trip.
const DefaultTimeout = 20 * time.Second

// Answerer is what the conversation controller depends on.
type Answerer interface {
	Ask(ctx context.Context, question string, l lang.Lang) string
}

// Client asks the chat-completion backend for short answers.
type Client struct {
	api        openai.Client
	configured bool
	timeout    time.Duration
	logger     *slog.Logger
}

// New creates a Client. An empty apiKey yields a client that only serves the
// local fallback answers.
func New(apiKey string, logger *slog.Logger, opts ...option.RequestOption) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Client{timeout: DefaultTimeout, logger: logger}
	if apiKey != "" {
		c.api = openai.NewClient(append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)...)
		c.configured = true
	}
	return c
}

const promptEN = "Give a very short answer (1-2 sentences). Don't describe actions or make up results. Just answer the question. Question: "
const promptHI = "बहुत छोटा उत्तर दें (1-2 वाक्य)। कोई काम करने के बारे में मत बताओ, सिर्फ जवाब दो। प्रश्न: "

// Ask returns a spoken-ready answer. Backend errors are logged and replaced
// by the fallback answer set.
func (c *Client) Ask(ctx context.Context, question string, l lang.Lang) string {
	if !c.configured {
		return fallback(question, l)
	}

	prompt := promptEN
	if l == lang.Hindi {
		prompt = promptHI
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt + question),
		},
		Model: openai.ChatModelGPT5Nano,
	})
	if err != nil {
		c.logger.Error("qa backend failed", "err", err)
		return fallback(question, l)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		c.logger.Warn("qa backend returned no answer")
		return fallback(question, l)
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content)
}

// smallTalk maps utterance fragments to canned answers, checked in order.
// This is the documented offline answer set for the most common exchanges.
var smallTalk = []struct {
	match  []string
	en, hi string
}{
	{
		match: []string{"hello", "नमस्ते", "hi braill"},
		en:    "Hello! How can I help you?",
		hi:    "नमस्ते! मैं आपकी कैसे मदद कर सकता हूं?",
	},
	{
		match: []string{"how are you", "कैसे हो"},
		en:    "I'm doing well, thank you for asking.",
		hi:    "मैं ठीक हूं, पूछने के लिए धन्यवाद।",
	},
	{
		match: []string{"your name", "तुम्हारा नाम"},
		en:    "My name is Braill, your personal assistant.",
		hi:    "मेरा नाम Braill है, मैं आपका सहायक हूं।",
	},
	{
		match: []string{"thank", "धन्यवाद", "शुक्रिया"},
		en:    "You're welcome!",
		hi:    "कोई बात नहीं!",
	},
}

func fallback(question string, l lang.Lang) string {
	q := strings.ToLower(question)
	for _, entry := range smallTalk {
		if lang.ContainsAny(q, entry.match) {
			if l == lang.Hindi {
				return entry.hi
			}
			return entry.en
		}
	}
	return l.AnswerUnavailable()
}
