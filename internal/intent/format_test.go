package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFormat_ShortInputIsNil(t *testing.T) {
	for _, input := range []string{"", "a", "ok", "OK", "  oi  ", "é!"} {
		assert.Nil(t, DetectFormat(input), "input %q", input)
	}
}

func TestDetectFormat_CarouselAlwaysWins(t *testing.T) {
	inputs := []string{
		"carrossel",
		"Faz um CARROSSEL pro LinkedIn",
		"quero um carrossel sobre café especial",
		"transforma essa thread do twitter em Carrossel",
		"carrossel de 7 slides para o youtube",
		"quero 3 carrosséis",
	}
	for _, input := range inputs {
		got := DetectFormat(input)
		require.NotNil(t, got, "input %q", input)
		assert.Equal(t, FormatCarousel, got.FormatKey, "input %q", input)
		assert.Equal(t, PlatformInstagram, got.Platform, "input %q", input)
	}
}

func TestDetectFormat_Rules(t *testing.T) {
	tests := []struct {
		input    string
		key      string
		platform string
	}{
		{"escreve um post pro LinkedIn sobre liderança", FormatLinkedInPost, PlatformLinkedIn},
		{"post no linkedin", FormatLinkedInPost, PlatformLinkedIn},
		{"cria um post sobre café", FormatPost, PlatformInstagram},
		{"Publicação no Instagram sobre o lançamento", FormatPost, PlatformInstagram},
		{"faz uma thread sobre produtividade", FormatThread, PlatformTwitter},
		{"uma thread no twitter", FormatThread, PlatformTwitter},
		{"um tweet curto sobre o evento", FormatTweet, PlatformTwitter},
		{"roteiro de reels sobre skincare", FormatReels, PlatformInstagram},
		{"preciso de um vídeo curto para divulgar", FormatReels, PlatformInstagram},
		{"sequência de stories para o lançamento", FormatStories, PlatformInstagram},
		{"roteiro para vídeo do YouTube", FormatYouTubeScript, PlatformYouTube},
		{"newsletter semanal da marca", FormatNewsletter, PlatformNewsletter},
		{"um artigo para o blog", FormatBlogPost, PlatformBlog},
		{"legenda para a foto de ontem", FormatCaption, PlatformInstagram},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got := DetectFormat(tc.input)
			require.NotNil(t, got)
			assert.Equal(t, tc.key, got.FormatKey)
			assert.Equal(t, tc.platform, got.Platform)
			assert.Equal(t, ConfidenceHigh, got.Confidence)
			assert.NotEmpty(t, got.FormatLabel)
		})
	}
}

func TestDetectFormat_NoMatch(t *testing.T) {
	for _, input := range []string{
		"qual o melhor horário?",
		"obrigado!",
		"me explica como funciona o algoritmo",
	} {
		assert.Nil(t, DetectFormat(input), "input %q", input)
	}
}

func TestDetectFormat_Idempotent(t *testing.T) {
	for _, input := range []string{"cria um carrossel", "ok", "um tweet", "nada a ver"} {
		assert.Equal(t, DetectFormat(input), DetectFormat(input), "input %q", input)
	}
}

func TestFormats_CatalogOrderMatchesRules(t *testing.T) {
	formats := Formats()
	require.Len(t, formats, len(formatRules))
	assert.Equal(t, FormatCarousel, formats[0].Key)
	assert.Equal(t, FormatPost, formats[len(formats)-1].Key)

	seen := map[string]bool{}
	for _, f := range formats {
		assert.False(t, seen[f.Key], "duplicate key %q", f.Key)
		seen[f.Key] = true
	}
}

func TestAlternativeFormats(t *testing.T) {
	all := Formats()

	alts := AlternativeFormats(FormatCarousel)
	assert.Len(t, alts, len(all)-1)
	for _, a := range alts {
		assert.NotEqual(t, FormatCarousel, a.Key)
	}
	assert.Equal(t, all[1:], alts)

	assert.Equal(t, all, AlternativeFormats(""))
	assert.Equal(t, all, AlternativeFormats("not_a_format"))
}

func TestLookupFormat(t *testing.T) {
	opt, ok := LookupFormat(FormatTweet)
	require.True(t, ok)
	assert.Equal(t, "Tweet", opt.Label)

	_, ok = LookupFormat("fax")
	assert.False(t, ok)
}
