package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	system, message string
	reply           string
	err             error
	block           bool
}

func (f *fakeGenerator) Generate(ctx context.Context, system, message string) (string, error) {
	f.system, f.message = system, message
	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return f.reply, f.err
}

func TestAssistantAsk(t *testing.T) {
	gen := &fakeGenerator{reply: "Use a map."}
	svc := NewAssistantService(gen, time.Second)

	reply, err := svc.Ask(context.Background(), "  How do I dedupe a slice?  ", "The user is writing Go.")
	require.NoError(t, err)
	assert.Equal(t, "Use a map.", reply)
	assert.Equal(t, "How do I dedupe a slice?", gen.message)
	assert.True(t, strings.HasSuffix(gen.system, "The user is writing Go."))

	_, err = svc.Ask(context.Background(), " ", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAssistantErrors(t *testing.T) {
	svc := NewAssistantService(nil, 0)
	assert.False(t, svc.Enabled())
	_, err := svc.Ask(context.Background(), "hi", "")
	assert.ErrorIs(t, err, ErrUnavailable)

	remote := errors.New("quota exceeded")
	svc = NewAssistantService(&fakeGenerator{err: remote}, time.Second)
	_, err = svc.Ask(context.Background(), "hi", "")
	assert.ErrorIs(t, err, ErrAssistantFailed)
	assert.ErrorIs(t, err, remote)

	svc = NewAssistantService(&fakeGenerator{block: true}, 10*time.Millisecond)
	_, err = svc.Ask(context.Background(), "hi", "")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
