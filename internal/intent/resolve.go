package intent

import "github.com/pautahq/pauta/internal/chat"

// Resolve runs every classifier over message. Format and image detection
// look only at the message; reference detection also reads history.
func Resolve(history []chat.Message, message string) Resolution {
	res := Resolution{
		Message:   message,
		Format:    DetectFormat(message),
		Image:     DetectImageGenerationRequest(message),
		Reference: DetectContextualReference(history, message),
	}
	if res.Format != nil {
		res.Alternatives = AlternativeFormats(res.Format.FormatKey)
	}
	return res
}
