// ABOUTME: Tests for artifacts command group
// ABOUTME: Exercises status, fetch, and wipe against a temporary cache directory

package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mwatkins1970/leilan-portal/internal/corpus"
)

// runCommand executes the root command with args and captures its output.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var output bytes.Buffer
	cmd.SetOut(&output)
	cmd.SetErr(&output)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return output.String(), err
}

// writeTestConfig writes a minimal config file pointing at dir and remote.
func writeTestConfig(t *testing.T, dir, remote string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "leilan.yaml")
	content := fmt.Sprintf("embeddings_dir: %s\n", dir)
	if remote != "" {
		content += fmt.Sprintf("remote_base_url: %s\n", remote)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func seedArtifact(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("creating artifact dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("seeding %s: %v", rel, err)
	}
}

func TestNewArtifactsCmd(t *testing.T) {
	cmd := NewArtifactsCmd()

	if cmd.Use != "artifacts" {
		t.Errorf("Use = %q, want %q", cmd.Use, "artifacts")
	}

	expectedSubcommands := []string{"status", "fetch", "wipe"}
	for _, name := range expectedSubcommands {
		t.Run(name, func(t *testing.T) {
			found := false
			for _, sub := range cmd.Commands() {
				if sub.Use == name {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("Subcommand %q not found", name)
			}
		})
	}
}

func TestArtifactsStatus_EmptyCache(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeTestConfig(t, dir, "")

	output, err := runCommand(t, "--config", cfgPath, "artifacts", "status")
	if err != nil {
		t.Fatalf("status error = %v", err)
	}

	if !strings.Contains(output, "missing") {
		t.Error("Output should mark artifacts as missing")
	}
	want := fmt.Sprintf("0/%d artifacts present", len(corpus.RequiredArtifacts))
	if !strings.Contains(output, want) {
		t.Errorf("Output should contain %q, got:\n%s", want, output)
	}
}

func TestArtifactsStatus_JSON(t *testing.T) {
	dir := t.TempDir()
	seedArtifact(t, dir, corpus.RequiredArtifacts[0], "[]")
	cfgPath := writeTestConfig(t, dir, "")

	output, err := runCommand(t, "--config", cfgPath, "--format", "json", "artifacts", "status")
	if err != nil {
		t.Fatalf("status error = %v", err)
	}

	var statuses []corpus.ArtifactStatus
	if err := json.Unmarshal([]byte(output), &statuses); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, output)
	}
	if len(statuses) != len(corpus.RequiredArtifacts) {
		t.Fatalf("got %d statuses, want %d", len(statuses), len(corpus.RequiredArtifacts))
	}

	present := 0
	for _, st := range statuses {
		if st.Present {
			present++
		}
	}
	if present != 1 {
		t.Errorf("present count = %d, want 1", present)
	}
}

func TestArtifactsFetch_DownloadsAll(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "data for %s", r.URL.Path)
	}))
	defer srv.Close()

	dir := t.TempDir()
	cfgPath := writeTestConfig(t, dir, srv.URL)

	if _, err := runCommand(t, "--config", cfgPath, "--quiet", "artifacts", "fetch"); err != nil {
		t.Fatalf("fetch error = %v", err)
	}

	for _, rel := range corpus.RequiredArtifacts {
		if _, err := os.Stat(filepath.Join(dir, rel)); err != nil {
			t.Errorf("artifact %s not downloaded: %v", rel, err)
		}
	}
}

func TestArtifactsWipe_RequiresConfirm(t *testing.T) {
	dir := t.TempDir()
	seedArtifact(t, dir, corpus.RequiredArtifacts[0], "[]")
	seedArtifact(t, dir, corpus.RequiredArtifacts[9], "[]")
	cfgPath := writeTestConfig(t, dir, "")

	output, err := runCommand(t, "--config", cfgPath, "artifacts", "wipe")
	if err != nil {
		t.Fatalf("wipe error = %v", err)
	}

	if !strings.Contains(output, "Run with --confirm to proceed") {
		t.Errorf("Output should ask for --confirm, got:\n%s", output)
	}
	if _, err := os.Stat(filepath.Join(dir, corpus.RequiredArtifacts[0])); err != nil {
		t.Error("wipe without --confirm must not delete artifacts")
	}
}

func TestArtifactsWipe_Confirmed(t *testing.T) {
	dir := t.TempDir()
	seedArtifact(t, dir, corpus.RequiredArtifacts[0], "[]")
	seedArtifact(t, dir, corpus.RequiredArtifacts[9], "[]")
	cfgPath := writeTestConfig(t, dir, "")

	output, err := runCommand(t, "--config", cfgPath, "artifacts", "wipe", "--confirm")
	if err != nil {
		t.Fatalf("wipe error = %v", err)
	}

	if !strings.Contains(output, "Removed 2 artifact(s)") {
		t.Errorf("Output should report removals, got:\n%s", output)
	}
	if _, err := os.Stat(filepath.Join(dir, corpus.RequiredArtifacts[0])); !os.IsNotExist(err) {
		t.Error("confirmed wipe should delete cached artifacts")
	}
}
