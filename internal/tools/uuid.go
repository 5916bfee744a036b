package tools

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

const (
	// UUIDHistoryLimit caps how many generated values are remembered per owner.
	UUIDHistoryLimit = 10
	// MaxUUIDBatch is the largest number of UUIDs produced by one request.
	MaxUUIDBatch = 50
)

// UUIDFormat controls the textual rendering of generated UUIDs.
type UUIDFormat struct {
	Uppercase bool
	NoHyphens bool
}

func (f UUIDFormat) apply(s string) string {
	if f.NoHyphens {
		s = strings.ReplaceAll(s, "-", "")
	}
	if f.Uppercase {
		s = strings.ToUpper(s)
	}
	return s
}

// UUIDGenerator produces version 4 UUIDs and keeps a short per-owner history.
type UUIDGenerator struct {
	mu      sync.Mutex
	history map[string][]string
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{history: make(map[string][]string)}
}

// Generate returns n random UUIDs and records them, newest first, in owner's history.
func (g *UUIDGenerator) Generate(owner string, n int, format UUIDFormat) ([]string, error) {
	if n < 1 || n > MaxUUIDBatch {
		return nil, fmt.Errorf("%w: must be between 1 and %d", ErrInvalidCount, MaxUUIDBatch)
	}

	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		id, err := uuid.NewRandom()
		if err != nil {
			return nil, fmt.Errorf("generate uuid: %w", err)
		}
		out = append(out, format.apply(id.String()))
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	hist := g.history[owner]
	for _, id := range out {
		hist = append([]string{id}, hist...)
	}
	if len(hist) > UUIDHistoryLimit {
		hist = hist[:UUIDHistoryLimit]
	}
	g.history[owner] = hist

	return out, nil
}

// History returns a copy of owner's remembered UUIDs, newest first.
func (g *UUIDGenerator) History(owner string) []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	hist := g.history[owner]
	out := make([]string, len(hist))
	copy(out, hist)
	return out
}

func (g *UUIDGenerator) Clear(owner string) {
	g.mu.Lock()
	delete(g.history, owner)
	g.mu.Unlock()
}
