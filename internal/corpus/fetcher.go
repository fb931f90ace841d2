// ABOUTME: Artifact fetcher that mirrors the published corpus dataset locally
// ABOUTME: Downloads missing files over HTTP with atomic temp-file writes
package corpus

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/mwatkins1970/leilan-portal/internal/util"
)

// RequiredArtifacts lists every file the store needs, relative to the
// corpus directory. The same relative path locates each file under the
// remote base URL.
var RequiredArtifacts = []string{
	"dialogue_chunks_mpnet.json",
	"dialogue_embeddings_mpnet.npy",
	"dialogue_metadata_mpnet.json",
	"essay_chunks_mpnet.json",
	"essay_embeddings_mpnet.npy",
	"essay_metadata_mpnet.json",
	"interview_chunks_mpnet.json",
	"interview_embeddings_mpnet.npy",
	"interview_metadata_mpnet.json",
	"subchunked/dialogue_texts_subchunked.json",
	"subchunked/dialogue_metadata_subchunked.json",
	"subchunked/essay_chunks_mpnet.json",
	"subchunked/essay_metadata_mpnet.json",
	"subchunked/interview_chunks_mpnet.json",
	"subchunked/interview_metadata_mpnet.json",
}

// ArtifactStatus reports the local state of one required artifact.
type ArtifactStatus struct {
	Path    string
	Present bool
	Size    int64
}

// Status checks each required artifact under dir without touching the network.
func Status(dir string) []ArtifactStatus {
	statuses := make([]ArtifactStatus, 0, len(RequiredArtifacts))
	for _, rel := range RequiredArtifacts {
		st := ArtifactStatus{Path: rel}
		if info, err := os.Stat(filepath.Join(dir, filepath.FromSlash(rel))); err == nil {
			st.Present = true
			st.Size = info.Size()
		}
		statuses = append(statuses, st)
	}
	return statuses
}

// Fetcher downloads corpus artifacts from a remote dataset mirror.
type Fetcher struct {
	BaseURL    string
	Client     *http.Client
	MaxRetries int
	RetryDelay time.Duration
	Quiet      bool
}

// NewFetcher creates a fetcher for the given base URL with default
// retry behavior.
func NewFetcher(baseURL string) *Fetcher {
	return &Fetcher{
		BaseURL:    baseURL,
		Client:     &http.Client{Timeout: 10 * time.Minute},
		MaxRetries: 3,
		RetryDelay: 2 * time.Second,
	}
}

// EnsureArtifacts downloads any missing required artifact into dir.
// Files already present are never re-fetched; the published dataset is
// immutable.
func (f *Fetcher) EnsureArtifacts(ctx context.Context, dir string) error {
	for _, rel := range RequiredArtifacts {
		local := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(local), 0o755); err != nil {
			return fmt.Errorf("creating artifact directory: %w", err)
		}
		if _, err := os.Stat(local); err == nil {
			continue
		}
		log.Printf("Downloading missing artifact %s", rel)
		if err := f.download(ctx, rel, local); err != nil {
			return fmt.Errorf("downloading %s: %w", rel, err)
		}
	}
	return nil
}

func (f *Fetcher) download(ctx context.Context, rel, local string) error {
	var lastErr error
	for attempt := 0; attempt <= f.MaxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(util.CalculateBackoff(f.RetryDelay, attempt))
		}
		if err := f.downloadOnce(ctx, rel, local); err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			if ctx.Err() != nil {
				return lastErr
			}
			continue
		}
		return nil
	}
	return lastErr
}

func (f *Fetcher) downloadOnce(ctx context.Context, rel, local string) error {
	url := f.BaseURL + "/" + rel
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}

	// Write to a temp file in the target directory so the final rename
	// is atomic and a failed download never leaves a partial artifact.
	tmp, err := os.CreateTemp(filepath.Dir(local), filepath.Base(local)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	var w io.Writer = tmp
	if !f.Quiet {
		bar := progressbar.NewOptions64(resp.ContentLength,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription(rel),
			progressbar.OptionSetWidth(32),
			progressbar.OptionShowBytes(true),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "=",
				SaucerHead:    ">",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
		)
		w = io.MultiWriter(tmp, bar)
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("writing %s: %w", local, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	return os.Rename(tmp.Name(), local)
}
