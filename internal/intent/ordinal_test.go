package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const threeIdeas = "1. Ideia A\n2. Ideia B\n3. Ideia C"

func TestExtractSpecificItem(t *testing.T) {
	tests := []struct {
		name      string
		message   string
		content   string
		want      string
		wantFound bool
	}{
		{"third", "a terceira", threeIdeas, "Ideia C", true},
		{"out of range", "a quinta", threeIdeas, "", false},
		{"first masculine", "o primeiro", threeIdeas, "Ideia A", true},
		{"capitalised", "Gostei da Segunda", threeIdeas, "Ideia B", true},
		{"digit", "desenvolve a 2", threeIdeas, "Ideia B", true},
		{"last", "a última", threeIdeas, "Ideia C", true},
		{"last without accent", "manda a ultima", threeIdeas, "Ideia C", true},
		{"penultimate", "prefiro a penúltima", threeIdeas, "Ideia B", true},
		{"bullets", "a segunda", "• Tema X\n• Tema Y", "Tema Y", true},
		{"dash bullets", "o primeiro", "Opções:\n- Café\n- Chá", "Café", true},
		{"paren enumerator", "a segunda", "Aqui vão:\n1) Café\n2) Chá", "Chá", true},
		{"numbered label wins over position", "a 1", "3. C\n1. A", "A", true},
		{"trims surrounding space", "a segunda", "1.   Um  \n2.   Dois   ", "Dois", true},
		{"weekday is not an ordinal", "posta na segunda-feira", threeIdeas, "", false},
		{"no position named", "desenvolve isso", threeIdeas, "", false},
		{"no list", "a segunda", "texto corrido sem nenhuma lista", "", false},
		{"empty message", "", threeIdeas, "", false},
		{"empty content", "a segunda", "", "", false},
		{"markdown rule is not a bullet", "a primeira", "---\ntexto", "", false},
		{"seconds are not an ordinal", "um reels de 30 segundos", threeIdeas, "", false},
		{"plural first is not an ordinal", "foca nos primeiros dias", threeIdeas, "", false},
		{"plural last is not an ordinal", "revisa os últimos parágrafos", threeIdeas, "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, found := ExtractSpecificItem(tc.message, tc.content)
			assert.Equal(t, tc.wantFound, found)
			assert.Equal(t, tc.want, got)
		})
	}
}

// "última" counts numbered and bulleted lines together. With mixed grammars
// the count can point at a line the user did not mean; this pins that
// behaviour rather than picking one grammar.
func TestExtractSpecificItem_LastCountsMixedEnumerators(t *testing.T) {
	content := "1. Ideia A\n2. Ideia B\n- detalhe solto"
	got, found := ExtractSpecificItem("a última", content)
	assert.True(t, found)
	assert.Equal(t, "detalhe solto", got)

	content = "1. Ideia A\n- sub a1\n- sub a2\n2. Ideia B"
	got, found = ExtractSpecificItem("a última", content)
	assert.True(t, found)
	assert.Equal(t, "Ideia B", got, "count is 4, no line numbered 4, so the fourth enumerator line is used")
}
