// Package intent inspects a chat message and decides what the user wants
// produced: the output format, whether the message points back at earlier
// assistant output, and whether an image is being requested.
//
// Every function here is pure and total. A miss is reported as a zero value,
// never as an error.
package intent

import "strings"

// Confidence grades a format match. Matching is binary, so every non-nil
// DetectedFormat carries ConfidenceHigh.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// DetectedFormat is the output format a message asks for.
type DetectedFormat struct {
	FormatKey   string     `json:"formatKey" yaml:"formatKey"`
	FormatLabel string     `json:"formatLabel" yaml:"formatLabel"`
	Platform    string     `json:"platform" yaml:"platform"`
	Confidence  Confidence `json:"confidence" yaml:"confidence"`
}

// FormatOption is one entry of the format catalog.
type FormatOption struct {
	Key      string `json:"key" yaml:"key"`
	Label    string `json:"label" yaml:"label"`
	Platform string `json:"platform" yaml:"platform"`
}

// ReferenceType classifies what a back-reference points at.
type ReferenceType string

const (
	ReferenceNone     ReferenceType = ""
	ReferenceIdea     ReferenceType = "idea"
	ReferenceContent  ReferenceType = "content"
	ReferenceAnalysis ReferenceType = "analysis"
	ReferenceGeneral  ReferenceType = "general"
)

// ContextualReference is the outcome of back-reference detection.
// EnrichedPrompt always starts with the user's message verbatim.
type ContextualReference struct {
	HasReference   bool          `json:"hasContextualReference" yaml:"hasContextualReference"`
	ReferenceType  ReferenceType `json:"referenceType,omitempty" yaml:"referenceType,omitempty"`
	EnrichedPrompt string        `json:"enrichedPrompt" yaml:"enrichedPrompt"`
	// Item is the list entry the user pointed at, when one was resolved.
	Item string `json:"item,omitempty" yaml:"item,omitempty"`
}

// ImageGenerationIntent reports whether a message asks for an image.
// IsContextual is independent of IsImageRequest.
type ImageGenerationIntent struct {
	IsImageRequest bool   `json:"isImageRequest" yaml:"isImageRequest"`
	Prompt         string `json:"prompt" yaml:"prompt"`
	IsContextual   bool   `json:"isContextual" yaml:"isContextual"`
}

// Resolution bundles every classifier result for one message.
type Resolution struct {
	Message      string                `json:"message" yaml:"message"`
	Format       *DetectedFormat       `json:"format" yaml:"format"`
	Alternatives []FormatOption        `json:"alternatives,omitempty" yaml:"alternatives,omitempty"`
	Reference    ContextualReference   `json:"reference" yaml:"reference"`
	Image        ImageGenerationIntent `json:"image" yaml:"image"`
}

// Prompt returns the text to hand to a generation backend: the cleaned
// image prompt for image requests, otherwise the enriched prompt. A
// contextual image request that leaves nothing after cleaning ("gera uma
// imagem pra isso") takes the referenced content instead.
func (r Resolution) Prompt() string {
	if !r.Image.IsImageRequest {
		return r.Reference.EnrichedPrompt
	}
	if strings.TrimSpace(r.Image.Prompt) == "" && r.Image.IsContextual && r.Reference.HasReference {
		if r.Reference.Item != "" {
			return r.Reference.Item
		}
		return r.Reference.EnrichedPrompt
	}
	return r.Image.Prompt
}
