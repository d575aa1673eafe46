// Package llmtest provides an in-memory chat model for tests.
package llmtest

import (
	"context"
	"errors"
	"sync"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// ChatModel answers every Generate call through Handler and records prompts.
type ChatModel struct {
	Handler func(prompt string) (string, error)

	mu      sync.Mutex
	prompts []string
}

var _ model.BaseChatModel = (*ChatModel)(nil)

// Reply returns a ChatModel that always answers with text.
func Reply(text string) *ChatModel {
	return &ChatModel{Handler: func(string) (string, error) { return text, nil }}
}

// Fail returns a ChatModel whose every call fails with err.
func Fail(err error) *ChatModel {
	return &ChatModel{Handler: func(string) (string, error) { return "", err }}
}

func (m *ChatModel) Generate(_ context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	var prompt string
	if len(input) > 0 {
		prompt = input[len(input)-1].Content
	}
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()

	text, err := m.Handler(prompt)
	if err != nil {
		return nil, err
	}
	return schema.AssistantMessage(text, nil), nil
}

func (m *ChatModel) Stream(context.Context, []*schema.Message, ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("llmtest: streaming not supported")
}

// Prompts returns every prompt seen so far.
func (m *ChatModel) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}

// Calls returns the number of Generate calls.
func (m *ChatModel) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}
