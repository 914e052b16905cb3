package page

import (
	"bytes"
	"context"
	_ "embed"
	"html/template"
	"sync"

	"github.com/VonLan233/cute-illustration-agent/internal/log"
	"github.com/VonLan233/cute-illustration-agent/internal/store"
	"github.com/samber/do"
)

//go:embed assets/gallery.html
var galleryTmpl string

type Params struct {
	Records []store.Record
}

type Templator struct {
	tmpl *template.Template
	once sync.Once
}

func NewTemplator(i *do.Injector) (*Templator, error) {
	return &Templator{}, nil
}

func (g *Templator) Template(ctx context.Context, params Params) ([]byte, error) {
	g.once.Do(func() {
		g.tmpl = template.Must(template.New("gallery").Parse(galleryTmpl))
	})

	log.FromContextOrDiscard(ctx).WithGroup("templator").Info("generating gallery page", "records", len(params.Records))

	var data bytes.Buffer
	if err := g.tmpl.Execute(&data, params); err != nil {
		return nil, err
	}
	return data.Bytes(), nil
}
