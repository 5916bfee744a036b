package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"devdeck/internal/assistant"
)

// ErrAssistantFailed wraps errors returned by the remote model.
var ErrAssistantFailed = errors.New("assistant request failed")

const (
	maxAssistantMessage   = 8000
	defaultAssistantSetup = "You are a concise assistant inside a developer productivity dashboard. " +
		"Answer programming and productivity questions briefly, using Markdown code blocks for code."
)

// AssistantService relays chat messages to the configured model.
type AssistantService interface {
	Enabled() bool
	Ask(ctx context.Context, message, extra string) (string, error)
}

type assistantService struct {
	generator assistant.Generator
	timeout   time.Duration
}

// NewAssistantService returns a service that is disabled when generator is nil.
func NewAssistantService(generator assistant.Generator, timeout time.Duration) AssistantService {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &assistantService{generator: generator, timeout: timeout}
}

func (s *assistantService) Enabled() bool {
	return s.generator != nil
}

func (s *assistantService) Ask(ctx context.Context, message, extra string) (string, error) {
	if !s.Enabled() {
		return "", fmt.Errorf("%w: assistant API key is not configured", ErrUnavailable)
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return "", fmt.Errorf("%w: message is required", ErrInvalidInput)
	}
	if len(message) > maxAssistantMessage {
		return "", fmt.Errorf("%w: message is too long", ErrInvalidInput)
	}

	system := defaultAssistantSetup
	if extra = strings.TrimSpace(extra); extra != "" {
		system += "\n\n" + extra
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	reply, err := s.generator.Generate(ctx, system, message)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrAssistantFailed, err)
	}
	return reply, nil
}
