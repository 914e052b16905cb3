package archive

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/VonLan233/cute-illustration-agent/internal/log"
	"github.com/samber/do"
)

type UploadParams struct {
	Name        string
	Data        []byte
	ContentType string
}

type Uploader interface {
	Upload(context.Context, UploadParams) error
}

type FileUploader struct {
	Dir string
}

func (u *FileUploader) Upload(ctx context.Context, params UploadParams) error {
	log.FromContextOrDiscard(ctx).WithGroup("file").Info("writing", "file", params.Name, "dir", u.Dir)
	return os.WriteFile(filepath.Join(u.Dir, params.Name), params.Data, 0600)
}

// Archiver keeps a local copy of generated images. Provider URLs are
// temporary, so without a copy a record's image reference goes stale within
// about an hour.
type Archiver struct {
	client   *http.Client
	uploader Uploader
}

func NewArchiver(i *do.Injector) (*Archiver, error) {
	dir := do.MustInvokeNamed[string](i, "archive_dir")
	if dir == "" {
		return &Archiver{}, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating archive directory: %w", err)
	}
	return &Archiver{
		client:   &http.Client{Timeout: time.Minute},
		uploader: &FileUploader{Dir: dir},
	}, nil
}

func (a *Archiver) Enabled() bool {
	return a.uploader != nil
}

func (a *Archiver) Archive(ctx context.Context, id, url string) error {
	if !a.Enabled() {
		return nil
	}
	logger := log.FromContextOrDiscard(ctx).WithGroup("archive").With("id", id)
	logger.Info("downloading image for archive")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("downloading image: unexpected status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	return a.uploader.Upload(ctx, UploadParams{
		Name:        id + ".png",
		Data:        data,
		ContentType: "image/png",
	})
}
