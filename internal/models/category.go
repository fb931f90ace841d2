// ABOUTME: Category constants and per-category result caps for retrieval
// ABOUTME: The four corpus categories are fixed: gpt, opus, essay, interview
package models

// Category identifies one of the four retrieval corpora.
type Category string

const (
	CategoryGPT       Category = "gpt"
	CategoryOpus      Category = "opus"
	CategoryEssay     Category = "essay"
	CategoryInterview Category = "interview"
)

// IsValid reports whether c is one of the four known categories.
func (c Category) IsValid() bool {
	switch c {
	case CategoryGPT, CategoryOpus, CategoryEssay, CategoryInterview:
		return true
	}
	return false
}

// CategoryCaps holds the maximum number of chunks selected per category.
type CategoryCaps struct {
	GPT       int
	Opus      int
	Essay     int
	Interview int
}

// DefaultCaps returns the standard per-category result caps.
func DefaultCaps() CategoryCaps {
	return CategoryCaps{
		GPT:       10,
		Opus:      10,
		Essay:     5,
		Interview: 5,
	}
}
