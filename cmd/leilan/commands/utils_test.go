// ABOUTME: Tests for shared utility functions used by CLI commands
// ABOUTME: Verifies truncate, byte formatting, validation, and template loading

package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mwatkins1970/leilan-portal/internal/config"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{
			name:   "short string unchanged",
			input:  "hello",
			maxLen: 10,
			want:   "hello",
		},
		{
			name:   "exact length unchanged",
			input:  "hello",
			maxLen: 5,
			want:   "hello",
		},
		{
			name:   "long string truncated",
			input:  "hello world",
			maxLen: 8,
			want:   "hello...",
		},
		{
			name:   "very short maxLen",
			input:  "hello",
			maxLen: 2,
			want:   "he",
		},
		{
			name:   "empty string",
			input:  "",
			maxLen: 10,
			want:   "",
		},
		{
			name:   "unicode truncated with ellipsis",
			input:  "你好世界你好世界",
			maxLen: 5,
			want:   "你好...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.input, tt.maxLen)
			if got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestValidatePositiveInt(t *testing.T) {
	tests := []struct {
		name      string
		n         int
		fieldName string
		wantErr   bool
	}{
		{
			name:      "positive value",
			n:         5,
			fieldName: "count",
			wantErr:   false,
		},
		{
			name:      "zero value",
			n:         0,
			fieldName: "max-tokens",
			wantErr:   true,
		},
		{
			name:      "negative value",
			n:         -1,
			fieldName: "max-tokens",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validatePositiveInt(tt.n, tt.fieldName)
			if (err != nil) != tt.wantErr {
				t.Errorf("validatePositiveInt(%d, %q) error = %v, wantErr %v", tt.n, tt.fieldName, err, tt.wantErr)
			}
			if tt.wantErr && err != nil {
				// Error message should contain the field name
				if !contains(err.Error(), tt.fieldName) {
					t.Errorf("Error message should contain field name %q: %v", tt.fieldName, err)
				}
			}
		})
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name  string
		input int64
		want  string
	}{
		{"zero", 0, "0 B"},
		{"bytes", 512, "512 B"},
		{"kibibytes", 1024, "1.0 KiB"},
		{"mebibytes", 1536 * 1024, "1.5 MiB"},
		{"gibibytes", 2 * 1024 * 1024 * 1024, "2.0 GiB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatBytes(tt.input)
			if got != tt.want {
				t.Errorf("formatBytes(%d) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLoadTemplate_Default(t *testing.T) {
	template, err := loadTemplate(&config.Config{})
	if err != nil {
		t.Fatalf("loadTemplate() error = %v", err)
	}
	if template != "" {
		t.Errorf("loadTemplate() = %q, want empty for built-in default", template)
	}
}

func TestLoadTemplate_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "template.txt")
	content := "custom <gpt> <opus> <essay> <interview>"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing template: %v", err)
	}

	template, err := loadTemplate(&config.Config{TemplateFile: path})
	if err != nil {
		t.Fatalf("loadTemplate() error = %v", err)
	}
	if template != content {
		t.Errorf("loadTemplate() = %q, want file contents", template)
	}
}

func TestLoadTemplate_MissingFile(t *testing.T) {
	cfg := &config.Config{TemplateFile: filepath.Join(t.TempDir(), "absent.txt")}

	if _, err := loadTemplate(cfg); err == nil {
		t.Error("loadTemplate() expected error for missing template file")
	}
}

// Helper function for test - checks if s contains substr
func contains(s, substr string) bool {
	return len(s) >= len(substr) && (s == substr || len(substr) == 0 || (len(s) > 0 && findSubstring(s, substr)))
}

func findSubstring(s, substr string) bool {
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
