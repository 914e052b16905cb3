package feed

import (
	"context"
	"time"

	"github.com/VonLan233/cute-illustration-agent/internal/log"
	"github.com/VonLan233/cute-illustration-agent/internal/store"
	"github.com/gorilla/feeds"
	"github.com/samber/do"
)

const itemLimit = 50

type Generator struct {
	store store.Store
}

func NewGenerator(i *do.Injector) (*Generator, error) {
	return &Generator{store: do.MustInvoke[store.Store](i)}, nil
}

func (g *Generator) Generate(ctx context.Context) ([]byte, error) {
	log.FromContextOrDiscard(ctx).WithGroup("feed").Info("generating rss feed")

	feed := feeds.Feed{
		Title:       "Cute Illustration Agent",
		Description: "Recently generated illustrations",
		Link:        &feeds.Link{Href: "/"},
		Updated:     time.Now(),
	}

	for _, rec := range g.store.Recent(itemLimit) {
		feed.Add(&feeds.Item{
			Id:          rec.ID,
			Title:       rec.OriginalRequest.Theme,
			Description: rec.OptimizedPrompt,
			Link:        &feeds.Link{Href: rec.ImageURL},
			Created:     rec.CreatedAt,
			Updated:     rec.CreatedAt,
		})
	}

	feed.Sort(func(a, b *feeds.Item) bool {
		return a.Updated.Before(b.Updated)
	})
	rss, err := feed.ToRss()
	return []byte(rss), err
}
