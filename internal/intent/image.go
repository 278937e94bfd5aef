package intent

import (
	"regexp"

	debuglog "github.com/pautahq/pauta/internal/log"
)

// Image patterns match the original message case-insensitively, since the
// same expressions are used to strip routing words out of the prompt.
var (
	imageCommandPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:^|\s)@(?:gerar_imagem|generate_image|imagem|image)\b`),
	}

	imageVerbPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:gera|gere|gerar|cria|crie|criar|faz|faça|faca|fazer|desenha|desenhe|desenhar|produz|produza|produzir|monta|monte|montar)\s+(?:(?:pra|para)\s+mim\s+)?(?:uma?\s+)?(?:nova\s+|outra\s+)?(?:imagem|imagens|arte|ilustra[cç][aã]o|foto|visual|thumbnail|thumb|capa|banner)\b`),
		regexp.MustCompile(`(?i)\b(?:preciso|quero|queria|gostaria)\s+(?:de\s+)?(?:uma?\s+)?(?:nova\s+|outra\s+)?(?:imagem|arte|ilustra[cç][aã]o|visual|foto|thumbnail|capa|banner)\b`),
		regexp.MustCompile(`(?i)\b(?:generate|create|make|draw)\s+(?:me\s+)?(?:an?\s+)?(?:image|picture|illustration)\b`),
	}

	// Broadest tier. Stripped last so it cannot eat into text the command
	// and verb passes have already reshaped.
	imageContextPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:baseada|baseado|inspirada|inspirado)\s+(?:nisso|nisto|nesse|nessa|neste|nesta|no\s+(?:post|texto|conte[uú]do|roteiro|carrossel)|na\s+(?:ideia|legenda|resposta))\b`),
		// a bare "isso" points back; a demonstrative only does when it names prior output
		regexp.MustCompile(`(?i)\b(?:pra|para|de|sobre)\s+(?:isso|isto)\b`),
		regexp.MustCompile(`(?i)\b(?:pra|para|sobre)\s+(?:esse|essa|este|esta)\s+(?:post|texto|conte[uú]do|roteiro|ideia|legenda|carrossel|tema|resposta)\b`),
		regexp.MustCompile(`(?i)\b(?:disso|disto|nisso|nisto)\b`),
		regexp.MustCompile(`(?i)\b(?:desse|dessa|deste|desta)\s+(?:post|texto|conte[uú]do|roteiro|ideia|legenda|carrossel|tema|resposta)\b`),
	}

	// glue left at the front once the routing words are gone: ": ", "de ", "sobre "
	leadingGlueRe = regexp.MustCompile(`(?i)^(?:[\s:,;.\-–—]|(?:de|sobre|com|mostrando|of|about)\s)+`)
)

// DetectImageGenerationRequest classifies message as an image request and
// returns a prompt with the routing words removed. When the message is not an
// image request the prompt is the message unchanged.
func DetectImageGenerationRequest(message string) ImageGenerationIntent {
	_, explicit := matchesAny(imageCommandPatterns, message)
	_, natural := matchesAny(imageVerbPatterns, message)
	_, contextual := matchesAny(imageContextPatterns, message)

	out := ImageGenerationIntent{
		IsImageRequest: explicit || natural,
		IsContextual:   contextual,
		Prompt:         message,
	}
	if !out.IsImageRequest {
		return out
	}

	debuglog.Debug(debuglog.Trace, "image request: explicit=%t natural=%t contextual=%t\n", explicit, natural, contextual)

	prompt := message
	for _, group := range [][]*regexp.Regexp{imageCommandPatterns, imageVerbPatterns, imageContextPatterns} {
		for _, re := range group {
			prompt = re.ReplaceAllString(prompt, " ")
		}
	}
	out.Prompt = leadingGlueRe.ReplaceAllString(collapseSpaces(prompt), "")
	return out
}
