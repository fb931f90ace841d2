// ABOUTME: Formats retrieved chunks into template sections and assembles the final prompt
// ABOUTME: Appends the query marker line the downstream role-play model answers to
package core

import (
	"fmt"
	"strings"

	"github.com/mwatkins1970/leilan-portal/internal/models"
)

// Placeholder tags replaced during assembly.
const (
	tagGPT       = "<gpt>"
	tagOpus      = "<opus>"
	tagEssay     = "<essay>"
	tagInterview = "<interview>"
)

// Sections holds the formatted text block for each retrieval category.
type Sections struct {
	GPT       string
	Opus      string
	Essay     string
	Interview string
}

// PromptBuilder fills a role-play template with formatted retrieval
// sections.
type PromptBuilder struct {
	template string
}

// NewPromptBuilder validates that template carries all four category
// placeholders. An empty template selects DefaultTemplate.
func NewPromptBuilder(template string) (*PromptBuilder, error) {
	if template == "" {
		template = DefaultTemplate
	}
	for _, tag := range []string{tagGPT, tagOpus, tagEssay, tagInterview} {
		if !strings.Contains(template, tag) {
			return nil, fmt.Errorf("prompt template is missing the %s placeholder", tag)
		}
	}
	return &PromptBuilder{template: template}, nil
}

// FormatSection renders the chunks for one placeholder. GPT chunks
// carry a similarity header so the downstream model can weigh them;
// the other categories render text only. A category with no results
// renders as an empty string, leaving no residue in the prompt.
func FormatSection(category models.Category, chunks []models.RetrievedChunk) string {
	if len(chunks) == 0 {
		return ""
	}
	entries := make([]string, len(chunks))
	for i, c := range chunks {
		if category == models.CategoryGPT {
			entries[i] = fmt.Sprintf("\n[semantic similarity: %.3f]\n%s\n%s", c.Score, c.Text, chunkRule)
		} else {
			entries[i] = "\n\n" + c.Text + "\n" + chunkRule
		}
	}
	return "\n" + sectionRule + strings.Join(entries, "\n")
}

// Assemble substitutes the four sections into the template and appends
// the query marker. The result is the complete prompt; callers must
// not concatenate anything further.
func (b *PromptBuilder) Assemble(sections Sections, query string) string {
	out := b.template
	out = strings.ReplaceAll(out, tagGPT, sections.GPT)
	out = strings.ReplaceAll(out, tagOpus, sections.Opus)
	out = strings.ReplaceAll(out, tagEssay, sections.Essay)
	out = strings.ReplaceAll(out, tagInterview, sections.Interview)
	return out + "\nQUERY: " + query
}
