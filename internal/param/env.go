package param

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/VonLan233/cute-illustration-agent/internal/log"
	"github.com/samber/do"
	"github.com/samber/lo"
)

type EnvFetcher struct{}

func NewEnvFetcher(i *do.Injector) (Fetcher, error) {
	return &EnvFetcher{}, nil
}

func (f *EnvFetcher) Fetch(ctx context.Context, key string) (string, error) {
	log.FromContextOrDiscard(ctx).WithGroup("env").Debug("fetching parameter", "key", key)

	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return "", fmt.Errorf("environment variable %s is not set", key)
	}
	return value, nil
}

// FetchAll reads a comma-separated list from a single variable.
func (f *EnvFetcher) FetchAll(ctx context.Context, key string) ([]string, error) {
	value, err := f.Fetch(ctx, key)
	if err != nil {
		return nil, err
	}
	parts := lo.Map(strings.Split(value, ","), func(s string, _ int) string {
		return strings.TrimSpace(s)
	})
	return lo.Compact(parts), nil
}
