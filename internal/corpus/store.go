// ABOUTME: Read-only corpus store holding chunk texts, labels, and subchunk tables
// ABOUTME: Fetches missing artifacts, then loads and validates them at startup
package corpus

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/mwatkins1970/leilan-portal/internal/models"
)

// SubchunkTable pairs subchunk texts and embeddings with the parent
// chunk reference for each row. Embedding row i scores subchunk i,
// whose score rolls up to the parent chunk Parents[i] points at.
type SubchunkTable struct {
	Texts      []string
	Embeddings *models.Matrix
	Parents    []models.ParentRef
}

/// CategoryData holds one corpus category: the parent chunk texts, the
// per-chunk labels (dialogue only), and the subchunk table scored at
// query time.
type CategoryData struct {
	Chunks []string
	Meta   []models.ChunkMetadata
	Sub    SubchunkTable
}

// Store is the loaded corpus. It is immutable after Load returns and
// safe for concurrent readers without locking.
type Store struct {
	Dialogue  CategoryData
	Essay     CategoryData
	Interview CategoryData
}

// Options configures corpus loading.
type Options struct {
	Dir     string
	BaseURL string
	Quiet   bool
}

// Load ensures all required artifacts exist under opts.Dir, downloading
// any that are missing from opts.BaseURL, then parses them into a Store.
func Load(ctx context.Context, opts Options) (*Store, error) {
	fetcher := NewFetcher(opts.BaseURL)
	fetcher.Quiet = opts.Quiet
	return LoadWithFetcher(ctx, fetcher, opts.Dir)
}

// LoadWithFetcher is Load with a caller-configured fetcher. Any
// unreadable or inconsistent artifact fails the whole load: serving
// queries against a partial corpus would silently skew results.
func LoadWithFetcher(ctx context.Context, fetcher *Fetcher, dir string) (*Store, error) {
	if err := fetcher.EnsureArtifacts(ctx, dir); err != nil {
		return nil, err
	}

	s := &Store{}

	var labels []string
	if err := loadJSON(dir, "dialogue_metadata_mpnet.json", &labels); err != nil {
		return nil, err
	}
	s.Dialogue.Meta = make([]models.ChunkMetadata, len(labels))
	for i, label := range labels {
		s.Dialogue.Meta[i] = models.ParseLabel(label)
	}

	if err := loadJSON(dir, "dialogue_chunks_mpnet.json", &s.Dialogue.Chunks); err != nil {
		return nil, err
	}
	var err error
	s.Dialogue.Sub, err = loadSubchunks(dir,
		"subchunked/dialogue_texts_subchunked.json",
		"dialogue_embeddings_mpnet.npy",
		"subchunked/dialogue_metadata_subchunked.json")
	if err != nil {
		return nil, err
	}

	if err := loadJSON(dir, "essay_chunks_mpnet.json", &s.Essay.Chunks); err != nil {
		return nil, err
	}
	s.Essay.Sub, err = loadSubchunks(dir,
		"subchunked/essay_chunks_mpnet.json",
		"essay_embeddings_mpnet.npy",
		"subchunked/essay_metadata_mpnet.json")
	if err != nil {
		return nil, err
	}

	if err := loadJSON(dir, "interview_chunks_mpnet.json", &s.Interview.Chunks); err != nil {
		return nil, err
	}
	s.Interview.Sub, err = loadSubchunks(dir,
		"subchunked/interview_chunks_mpnet.json",
		"interview_embeddings_mpnet.npy",
		"subchunked/interview_metadata_mpnet.json")
	if err != nil {
		return nil, err
	}

	log.Printf("Corpus loaded: %d dialogue / %d essay / %d interview chunks",
		len(s.Dialogue.Chunks), len(s.Essay.Chunks), len(s.Interview.Chunks))
	return s, nil
}

func loadSubchunks(dir, textsFile, embeddingsFile, parentsFile string) (SubchunkTable, error) {
	var tbl SubchunkTable
	if err := loadJSON(dir, textsFile, &tbl.Texts); err != nil {
		return tbl, err
	}
	m, err := ReadMatrix(filepath.Join(dir, filepath.FromSlash(embeddingsFile)))
	if err != nil {
		return tbl, err
	}
	tbl.Embeddings = m
	if err := loadJSON(dir, parentsFile, &tbl.Parents); err != nil {
		return tbl, err
	}
	if m.Rows != len(tbl.Parents) {
		return tbl, fmt.Errorf("%s: %d embedding rows but %d parent refs",
			embeddingsFile, m.Rows, len(tbl.Parents))
	}
	// Subchunk texts are only used for display, so a count drift is
	// survivable; the parent mapping above is not.
	if len(tbl.Texts) != m.Rows {
		log.Printf("Warning: %s has %d subchunk texts for %d embeddings",
			textsFile, len(tbl.Texts), m.Rows)
	}
	return tbl, nil
}

func loadJSON(dir, rel string, v interface{}) error {
	path := filepath.Join(dir, filepath.FromSlash(rel))
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", rel, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", rel, err)
	}
	return nil
}
