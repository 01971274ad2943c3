package registry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"recipebot/internal/common/fsutil"
)

// DefaultDownloadURL hosts the GPT4All model files.
const DefaultDownloadURL = "https://gpt4all.io/models/"

// Status is the outcome of one model download.
type Status string

const (
	StatusDownloaded Status = "downloaded"
	StatusSkipped    Status = "skipped"
	StatusFailed     Status = "failed"
)

// Result reports what happened to one requested file.
type Result struct {
	Name   string
	Path   string
	Status Status
	Bytes  int64
	Err    error
}

// Downloader fetches model files into a directory.
type Downloader struct {
	BaseURL string
	Client  *http.Client
	Logger  zerolog.Logger
}

// Download fetches each of names from BaseURL into dir. Files already present
// are skipped. A failure on one file does not stop the others; the returned
// error joins every per-file error.
func (d *Downloader) Download(ctx context.Context, dir string, names []string) ([]Result, error) {
	abs, err := fsutil.ResolveDir(dir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create model dir: %w", err)
	}
	base := d.BaseURL
	if base == "" {
		base = DefaultDownloadURL
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	cli := d.Client
	if cli == nil {
		cli = http.DefaultClient
	}

	var (
		results []Result
		errs    []error
	)
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		r := Result{Name: name, Path: filepath.Join(abs, name)}
		switch {
		case name == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, ".."):
			r.Status, r.Err = StatusFailed, fmt.Errorf("invalid model name %q", name)
		case fsutil.PathExists(r.Path):
			r.Status = StatusSkipped
			d.Logger.Info().Str("model", name).Msg("already exists, skipping")
		default:
			r.Bytes, r.Err = fetch(ctx, cli, base+name, r.Path)
			r.Status = StatusDownloaded
			if r.Err != nil {
				r.Status = StatusFailed
			}
		}
		if r.Err != nil {
			d.Logger.Warn().Err(r.Err).Str("model", name).Msg("download failed")
			errs = append(errs, fmt.Errorf("%s: %w", name, r.Err))
		} else if r.Status == StatusDownloaded {
			d.Logger.Info().Str("model", name).Int64("bytes", r.Bytes).Msg("downloaded")
		}
		results = append(results, r)
	}
	return results, errors.Join(errs...)
}

// fetch streams url into a temp file next to dst and renames it into place.
func fetch(ctx context.Context, cli *http.Client, url, dst string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	resp, err := cli.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("HTTP status code: %d", resp.StatusCode)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*.part")
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(tmp, resp.Body)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
		return 0, err
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		_ = os.Remove(tmp.Name())
		return 0, err
	}
	return n, nil
}
