// ABOUTME: ChunkMetadata classifies dialogue chunks by their label prefix
// ABOUTME: Labels like "gpt3_davinci" map to category gpt, "opus_*" to opus
package models

import "strings"

// ChunkMetadata describes the provenance of a single dialogue chunk.
// Type is empty for labels that match neither known prefix; such chunks
// are never selected into the gpt or opus buckets.
type ChunkMetadata struct {
	Label   string
	Type    Category
	Subtype string
}

// ParseLabel builds ChunkMetadata from a raw label string.
// A label has the form "<prefix>_<subtype>". Prefix "gpt3" maps to the
// gpt category and prefix "opus" to the opus category; anything else
// (including labels without an underscore) yields empty type and subtype.
func ParseLabel(label string) ChunkMetadata {
	meta := ChunkMetadata{Label: label}
	if label == "" || !strings.Contains(label, "_") {
		return meta
	}

	parts := strings.SplitN(label, "_", 2)
	switch parts[0] {
	case "gpt3":
		meta.Type = CategoryGPT
		meta.Subtype = parts[1]
	case "opus":
		meta.Type = CategoryOpus
		meta.Subtype = parts[1]
	}
	return meta
}
