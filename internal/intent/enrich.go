package intent

import "fmt"

const (
	// PreviewBudget caps, in runes, how much prior content is forwarded.
	PreviewBudget = 800

	contextSeparator = "\n\n"
	ellipsis         = "..."

	itemTemplate    = `[Referência: o usuário está se referindo a este item da resposta anterior: "%s"]`
	previewTemplate = "[Contexto da resposta anterior: %s]"
)

// MaxEnrichmentRunes is the upper bound on the appended block, separator
// included, whatever the size of the referenced message.
var MaxEnrichmentRunes = runeLen(contextSeparator) + runeLen(itemTemplate) + PreviewBudget + runeLen(ellipsis)

// enrichWithItem appends a short note naming the resolved list entry.
func enrichWithItem(userMessage, item string) string {
	return userMessage + contextSeparator + fmt.Sprintf(itemTemplate, clip(item))
}

// enrichWithPreview appends a bounded excerpt of the referenced message.
func enrichWithPreview(userMessage, content string) string {
	return userMessage + contextSeparator + fmt.Sprintf(previewTemplate, clip(content))
}

func clip(s string) string {
	out, cut := truncateRunes(s, PreviewBudget)
	if cut {
		return out + ellipsis
	}
	return out
}
