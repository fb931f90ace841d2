// ABOUTME: Tests for ChunkMetadata label parsing
// ABOUTME: Verifies prefix mapping and subtype extraction for dialogue labels
package models

import "testing"

func TestParseLabel(t *testing.T) {
	tests := []struct {
		name        string
		label       string
		wantType    Category
		wantSubtype string
	}{
		{
			name:        "gpt3 davinci label",
			label:       "gpt3_davinci",
			wantType:    CategoryGPT,
			wantSubtype: "davinci",
		},
		{
			name:        "gpt3 text-davinci-003 label",
			label:       "gpt3_text-davinci-003",
			wantType:    CategoryGPT,
			wantSubtype: "text-davinci-003",
		},
		{
			name:        "opus transmission label",
			label:       "opus_transmission_042",
			wantType:    CategoryOpus,
			wantSubtype: "transmission_042",
		},
		{
			name:        "unknown prefix",
			label:       "claude_opus",
			wantType:    "",
			wantSubtype: "",
		},
		{
			name:        "no underscore",
			label:       "dialogue",
			wantType:    "",
			wantSubtype: "",
		},
		{
			name:        "empty label",
			label:       "",
			wantType:    "",
			wantSubtype: "",
		},
		{
			name:        "gpt3 with empty subtype",
			label:       "gpt3_",
			wantType:    CategoryGPT,
			wantSubtype: "",
		},
		{
			name:        "prefix match is exact not fuzzy",
			label:       "gpt35_turbo",
			wantType:    "",
			wantSubtype: "",
		},
		{
			name:        "case sensitive prefix",
			label:       "Opus_transmission",
			wantType:    "",
			wantSubtype: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := ParseLabel(tt.label)
			if meta.Label != tt.label {
				t.Errorf("Label = %q, want %q", meta.Label, tt.label)
			}
			if meta.Type != tt.wantType {
				t.Errorf("Type = %q, want %q", meta.Type, tt.wantType)
			}
			if meta.Subtype != tt.wantSubtype {
				t.Errorf("Subtype = %q, want %q", meta.Subtype, tt.wantSubtype)
			}
		})
	}
}
