package credentials

import (
	"context"
	"os"
	"strings"

	"pixelperfect/internal/domain"
)

const (
	EnvAPIKey       = "API_KEY"
	EnvGeminiAPIKey = "GEMINI_API_KEY"
)

// Source resolves the model API key at call time.
type Source interface {
	APIKey(ctx context.Context) (string, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) (string, error)

func (f SourceFunc) APIKey(ctx context.Context) (string, error) {
	return f(ctx)
}

// Static is a fixed key, typically injected by tests or wiring code.
type Static string

func (s Static) APIKey(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	key := strings.TrimSpace(string(s))
	if key == "" {
		return "", &domain.MissingCredentialError{}
	}
	return key, nil
}

// Store reads the key from the first non-empty variable in names.
type Store struct {
	names  []string
	lookup func(string) (string, bool)
}

// NewStore builds an environment-backed Store. With no names it falls back to
// API_KEY then GEMINI_API_KEY.
func NewStore(names ...string) *Store {
	cleaned := make([]string, 0, len(names))
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			cleaned = append(cleaned, name)
		}
	}
	if len(cleaned) == 0 {
		cleaned = []string{EnvAPIKey, EnvGeminiAPIKey}
	}
	return &Store{names: cleaned, lookup: os.LookupEnv}
}

// WithLookup replaces the environment lookup, mainly for tests.
func (s *Store) WithLookup(lookup func(string) (string, bool)) *Store {
	out := *s
	out.lookup = lookup
	return &out
}

func (s *Store) APIKey(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	for _, name := range s.names {
		if v, ok := s.lookup(name); ok {
			if key := strings.TrimSpace(v); key != "" {
				return key, nil
			}
		}
	}
	return "", &domain.MissingCredentialError{Name: s.names[0]}
}
