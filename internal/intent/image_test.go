package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectImageGenerationRequest(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    ImageGenerationIntent
	}{
		{
			name:    "explicit command",
			message: "@imagem um gato astronauta",
			want:    ImageGenerationIntent{IsImageRequest: true, Prompt: "um gato astronauta"},
		},
		{
			name:    "verb plus contextual consumes everything",
			message: "gera uma imagem pra isso",
			want:    ImageGenerationIntent{IsImageRequest: true, IsContextual: true, Prompt: ""},
		},
		{
			name:    "empty",
			message: "",
			want:    ImageGenerationIntent{},
		},
		{
			name:    "english command with colon",
			message: "@image: a cat in space",
			want:    ImageGenerationIntent{IsImageRequest: true, Prompt: "a cat in space"},
		},
		{
			name:    "long command form",
			message: "@gerar_imagem café na mesa de madeira",
			want:    ImageGenerationIntent{IsImageRequest: true, Prompt: "café na mesa de madeira"},
		},
		{
			name:    "generate_image is not read as image",
			message: "@generate_image sunset",
			want:    ImageGenerationIntent{IsImageRequest: true, Prompt: "sunset"},
		},
		{
			name:    "natural language with leading preposition",
			message: "Gera uma imagem de um pôr do sol na praia",
			want:    ImageGenerationIntent{IsImageRequest: true, Prompt: "um pôr do sol na praia"},
		},
		{
			name:    "upper case",
			message: "GERA UMA IMAGEM de um cachorro",
			want:    ImageGenerationIntent{IsImageRequest: true, Prompt: "um cachorro"},
		},
		{
			name:    "verb and trailing contextual phrase",
			message: "cria uma ilustração minimalista para esse post",
			want:    ImageGenerationIntent{IsImageRequest: true, IsContextual: true, Prompt: "minimalista"},
		},
		{
			name:    "desire phrasing with contextual reference",
			message: "quero uma arte baseada nisso",
			want:    ImageGenerationIntent{IsImageRequest: true, IsContextual: true, Prompt: ""},
		},
		{
			name:    "contextual without request keeps message",
			message: "imagem disso",
			want:    ImageGenerationIntent{IsContextual: true, Prompt: "imagem disso"},
		},
		{
			name:    "descriptive demonstrative after com survives",
			message: "@imagem um cachorro com essa coleira azul",
			want:    ImageGenerationIntent{IsImageRequest: true, Prompt: "um cachorro com essa coleira azul"},
		},
		{
			name:    "descriptive demonstrative after sobre survives",
			message: "gera uma imagem de um gato sobre esta mesa",
			want:    ImageGenerationIntent{IsImageRequest: true, Prompt: "um gato sobre esta mesa"},
		},
		{
			name:    "demonstrative naming prior output is contextual",
			message: "cria uma arte dessa legenda",
			want:    ImageGenerationIntent{IsImageRequest: true, IsContextual: true, Prompt: ""},
		},
		{
			name:    "unrelated",
			message: "me explica o algoritmo do instagram",
			want:    ImageGenerationIntent{Prompt: "me explica o algoritmo do instagram"},
		},
		{
			name:    "email address is not a command",
			message: "manda para contato@imagem.com",
			want:    ImageGenerationIntent{Prompt: "manda para contato@imagem.com"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DetectImageGenerationRequest(tc.message))
		})
	}
}

func TestDetectImageGenerationRequest_ContextualIsIndependent(t *testing.T) {
	got := DetectImageGenerationRequest("faz uma arte sobre isso")
	assert.True(t, got.IsImageRequest)
	assert.True(t, got.IsContextual)

	got = DetectImageGenerationRequest("faz uma arte de um foguete")
	assert.True(t, got.IsImageRequest)
	assert.False(t, got.IsContextual)
	assert.Equal(t, "um foguete", got.Prompt)
}
