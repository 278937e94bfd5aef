package intent

import (
	"regexp"
	"strings"

	"github.com/samber/lo"

	"github.com/pautahq/pauta/internal/chat"
	debuglog "github.com/pautahq/pauta/internal/log"
)

// minReferencedLength skips short acknowledgements ("Claro!", "Pronto.")
// when looking for the message a back-reference points at.
const minReferencedLength = 50

// referencePatterns run against lower-cased text with weekday names removed.
// Order is kept for logging; any hit counts.
var referencePatterns = []*regexp.Regexp{
	// demonstratives: "isso", "desenvolve essa", "nessa linha"
	regexp.MustCompile(`\b(?:isso|isto|disso|disto|nisso|nisto|esse|essa|esses|essas|desse|dessa|desses|dessas|nesse|nessa|aquilo|daquilo|aquele|aquela)\b`),
	// ordinal words: "a segunda opção", "o terceiro"
	regexp.MustCompile(`\b(?:primeir|segund|terceir|quart|quint|sext|s[eé]tim|oitav|non|d[eé]cim)[oa]\b`),
	regexp.MustCompile(`(?:^|[^\p{L}])(?:pen)?[uú]ltim[oa](?:$|[^\p{L}])`),
	// numbered references: "ideia 2", "opção número 3", "item nº 4"
	regexp.MustCompile(`\b(?:op[cç][aã]o|ideia|item|sugest[aã]o|t[oó]pico|tema|pauta|n[uú]mero)\s*(?:n[uú]mero\s*|n[º°o.]\s*)?\d{1,2}\b`),
	// a bare pick: "2", "a 3", "número 1"
	regexp.MustCompile(`^\s*(?:a|o|n[uú]mero|op[cç][aã]o)?\s*\d{1,2}\s*[.!]?\s*$`),
	// position words: "a de cima", "o anterior", "o que você sugeriu"
	regexp.MustCompile(`\b(?:acima|anterior|de cima)\b`),
	regexp.MustCompile(`\bque\s+(?:voc[eê]\s+)?(?:disse|mandou|sugeriu|escreveu|gerou|falou|criou|fez)\b`),
	// actions on prior output: "desenvolve mais", "transforma em carrossel"
	regexp.MustCompile(`\b(?:desenvolv|expand|aprofund|detalh|reescrev|refa[cçz]|resum|melhor)\w*\s+(?:ela|ele|elas|eles|mais)\b`),
	regexp.MustCompile(`\b(?:transform|adapt|convert)\w*\s+(?:em|para|pra)\s+`),
	// continuations and approvals: "continua", "gostei, manda ver"
	regexp.MustCompile(`^\s*(?:continua|continue|prossegue|prossiga)\b`),
	regexp.MustCompile(`^\s*(?:gostei|curti|amei|adorei)\b`),
}

var (
	ideaRe     = regexp.MustCompile(`\bideias?\b|\bsugest(?:[aã]o|[oõ]es)|\bop[cç](?:[aã]o|[oõ]es)|\btemas?\b|\bpautas?\b`)
	analysisRe = regexp.MustCompile(`\ban[aá]lises?\b|\bm[eé]tricas?\b|\bdados\b|\bresultados?\b|\bdesempenho\b|\bengajamento\b|\bperformance\b|\binsights?\b`)
	contentRe  = regexp.MustCompile(`\bposts?\b|\btextos?\b|\broteiros?\b|\blegendas?\b|carross(?:[eé]l|[eé]is)|\bconte[uú]dos?\b|\bthreads?\b|\bartigos?\b|\bcopy\b|\bnewsletter\b`)
)

// DetectContextualReference decides whether userMessage points back at
// earlier assistant output and, if so, appends that output as bracketed
// context. Without a reference the message is returned unchanged.
func DetectContextualReference(history []chat.Message, userMessage string) ContextualReference {
	none := ContextualReference{EnrichedPrompt: userMessage}
	if len(history) == 0 || strings.TrimSpace(userMessage) == "" {
		return none
	}

	lowered := withoutWeekdays(lower(userMessage))
	idx, ok := matchesAny(referencePatterns, lowered)
	if !ok {
		return none
	}
	debuglog.Debug(debuglog.Trace, "reference pattern %d matched\n", idx)

	referenced, _, found := lo.FindLastIndexOf(history, func(m chat.Message) bool {
		return m.Role == chat.RoleAssistant && runeLen(strings.TrimSpace(m.Content)) > minReferencedLength
	})
	if !found {
		debuglog.Debug(debuglog.Trace, "no assistant message long enough to reference\n")
		return none
	}

	ref := ContextualReference{
		HasReference:  true,
		ReferenceType: classifyReference(lowered, referenced.Content),
	}
	if item, ok := ExtractSpecificItem(userMessage, referenced.Content); ok {
		ref.Item = item
		ref.EnrichedPrompt = enrichWithItem(userMessage, item)
	} else {
		ref.EnrichedPrompt = enrichWithPreview(userMessage, strings.TrimSpace(referenced.Content))
	}
	return ref
}

func classifyReference(loweredMessage, referencedContent string) ReferenceType {
	if t := referenceTypeOf(loweredMessage); t != ReferenceNone {
		return t
	}
	if t := referenceTypeOf(lower(referencedContent)); t != ReferenceNone {
		return t
	}
	return ReferenceGeneral
}

func referenceTypeOf(lowered string) ReferenceType {
	switch {
	case ideaRe.MatchString(lowered):
		return ReferenceIdea
	case analysisRe.MatchString(lowered):
		return ReferenceAnalysis
	case contentRe.MatchString(lowered):
		return ReferenceContent
	}
	return ReferenceNone
}
