package inject

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/VonLan233/cute-illustration-agent/internal/archive"
	"github.com/VonLan233/cute-illustration-agent/internal/feed"
	"github.com/VonLan233/cute-illustration-agent/internal/handle"
	"github.com/VonLan233/cute-illustration-agent/internal/handler"
	"github.com/VonLan233/cute-illustration-agent/internal/image"
	"github.com/VonLan233/cute-illustration-agent/internal/log"
	"github.com/VonLan233/cute-illustration-agent/internal/page"
	"github.com/VonLan233/cute-illustration-agent/internal/param"
	"github.com/VonLan233/cute-illustration-agent/internal/prompt"
	"github.com/VonLan233/cute-illustration-agent/internal/store"
	"github.com/samber/do"
)

func Setup(ctx context.Context) *do.Injector {
	logger := log.FromContextOrDiscard(ctx)

	injector := do.NewWithOpts(&do.InjectorOpts{
		Logf: func(format string, args ...any) {
			logger.Info(fmt.Sprintf(format, args...))
		},
	})

	do.Provide[param.Fetcher](injector, param.NewEnvFetcher)

	do.ProvideNamed[string](injector, "deepseek_api_key", require(ctx, "DEEPSEEK_API_KEY"))
	do.ProvideNamed[string](injector, "doubao_api_key", require(ctx, "DOUBAO_API_KEY"))
	do.ProvideNamed[string](injector, "deepseek_base_url", fallback(ctx, "DEEPSEEK_BASE_URL", "https://api.deepseek.com/v1"))
	do.ProvideNamed[string](injector, "deepseek_model", fallback(ctx, "DEEPSEEK_MODEL", "deepseek-chat"))
	do.ProvideNamed[string](injector, "doubao_base_url", fallback(ctx, "DOUBAO_BASE_URL", "https://visual.volcengineapi.com"))
	do.ProvideNamed[string](injector, "doubao_model", fallback(ctx, "DOUBAO_MODEL", "doubao-seedream-3-0-t2i-250415"))
	do.ProvideNamed[string](injector, "archive_dir", fallback(ctx, "ARCHIVE_DIR", ""))
	do.ProvideNamed[string](injector, "port", fallback(ctx, "PORT", "8080"))

	do.ProvideNamed[int](injector, "image_max_attempts", func(i *do.Injector) (int, error) {
		value, err := do.MustInvoke[param.Fetcher](i).Fetch(ctx, "IMAGE_MAX_ATTEMPTS")
		if err != nil {
			return 3, nil
		}
		return strconv.Atoi(value)
	})
	do.ProvideNamed[[]string](injector, "cors_origins", func(i *do.Injector) ([]string, error) {
		origins, err := do.MustInvoke[param.Fetcher](i).FetchAll(ctx, "CORS_ALLOW_ORIGINS")
		if err != nil {
			return []string{"*"}, nil
		}
		return origins, nil
	})

	do.Provide[store.Store](injector, func(i *do.Injector) (store.Store, error) {
		return store.NewMemory(), nil
	})
	do.Provide[prompt.Optimizer](injector, prompt.NewDeepSeekOptimizer)
	do.Provide[*image.SeedreamGenerator](injector, image.NewSeedreamGenerator)
	do.Provide[image.Generator](injector, image.NewRetrier)
	do.Provide[*archive.Archiver](injector, archive.NewArchiver)
	do.Provide[*feed.Generator](injector, feed.NewGenerator)
	do.Provide[*page.Templator](injector, page.NewTemplator)
	do.Provide[*handler.Handler](injector, handler.NewHandler)
	do.Provide[*handle.API](injector, handle.NewAPI)

	do.Provide[*http.Server](injector, func(i *do.Injector) (*http.Server, error) {
		api := do.MustInvoke[*handle.API](i)
		port := do.MustInvokeNamed[string](i, "port")
		return &http.Server{
			Addr:              ":" + port,
			Handler:           api.Routes(),
			ReadHeaderTimeout: 10 * time.Second,
			BaseContext: func(net.Listener) context.Context {
				return ctx
			},
		}, nil
	})

	return injector
}

func require(ctx context.Context, key string) func(*do.Injector) (string, error) {
	return func(i *do.Injector) (string, error) {
		return do.MustInvoke[param.Fetcher](i).Fetch(ctx, key)
	}
}

func fallback(ctx context.Context, key, def string) func(*do.Injector) (string, error) {
	return func(i *do.Injector) (string, error) {
		value, err := do.MustInvoke[param.Fetcher](i).Fetch(ctx, key)
		if err != nil {
			return def, nil
		}
		return value, nil
	}
}
