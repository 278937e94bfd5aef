package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/pautahq/pauta/internal/intent"
)

const ideaReply = "Aqui estão algumas ideias de conteúdo para a sua marca:\n" +
	"1. Bastidores da produção\n" +
	"2. Depoimentos de clientes\n" +
	"3. Dicas rápidas de uso"

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func TestParseFlags_Defaults(t *testing.T) {
	isolateHome(t)
	got, err := parseFlags([]string{"cria", "um", "carrossel"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "cria um carrossel", got.Message)
	assert.Equal(t, "fs", got.Store)
	assert.Equal(t, "text", got.Output)
	assert.Equal(t, ":8080", got.Address)
	assert.Equal(t, 128, got.ImageCacheSize)
}

func TestParseFlags_Stdin(t *testing.T) {
	isolateHome(t)
	got, err := parseFlags([]string{"-o", "json"}, strings.NewReader("  faz uma thread \n"))
	require.NoError(t, err)
	assert.Equal(t, "faz uma thread", got.Message)
	assert.Equal(t, "json", got.Output)
}

func TestParseFlags_ConfigFileFillsUnsetFlags(t *testing.T) {
	isolateHome(t)
	config := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(config, []byte("output: yaml\nsession: marca\naddress: \":9090\"\nlogLevel: 2\n"), 0o644))

	got, err := parseFlags([]string{"--config", config, "--session", "outra", "oi"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "yaml", got.Output, "file overrides a default")
	assert.Equal(t, "outra", got.Session, "explicit flag beats the file")
	assert.Equal(t, ":9090", got.Address)
	assert.Equal(t, 2, got.LogLevel)
}

func TestParseFlags_DefaultConfigLocation(t *testing.T) {
	home := isolateHome(t)
	dir := filepath.Join(home, ".config", "pauta")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("output: json\n"), 0o644))

	got, err := parseFlags([]string{"oi"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "json", got.Output)
}

func TestParseFlags_BadConfig(t *testing.T) {
	isolateHome(t)
	config := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(config, []byte("output: [unterminated\n"), 0o644))
	_, err := parseFlags([]string{"--config", config}, nil)
	assert.Error(t, err)
}

func TestParseFlags_InvalidChoice(t *testing.T) {
	isolateHome(t)
	_, err := parseFlags([]string{"--output", "xml"}, nil)
	assert.Error(t, err)
}

func TestRun_ListFormats(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Run(context.Background(), &Flags{ListFormats: true, Output: "json"}, "test", &out))

	var got []intent.FormatOption
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, intent.Formats(), got)
}

func TestRun_AlternativesText(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Run(context.Background(), &Flags{Alternatives: intent.FormatCarousel, Output: "text"}, "test", &out))
	assert.NotContains(t, out.String(), "carousel ")
	assert.Contains(t, out.String(), "reels")
}

func TestRun_Version(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Run(context.Background(), &Flags{Version: true}, "v1.2.3", &out))
	assert.Equal(t, "v1.2.3\n", out.String())
}

func TestRun_RequiresMessage(t *testing.T) {
	err := Run(context.Background(), &Flags{Output: "text"}, "test", &bytes.Buffer{})
	assert.Error(t, err)

	err = Run(context.Background(), &Flags{Assistant: "resposta"}, "test", &bytes.Buffer{})
	assert.Error(t, err)
}

func TestRun_ResolveText(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Run(context.Background(), &Flags{Message: "cria um carrossel sobre café", Output: "text"}, "test", &out))
	assert.Contains(t, out.String(), "(carousel, instagram)")
	assert.Contains(t, out.String(), "reference:    -")
	assert.True(t, strings.HasSuffix(out.String(), "cria um carrossel sobre café\n"))
}

func TestRun_SessionFlow(t *testing.T) {
	dataDir := t.TempDir()
	ctx := context.Background()
	base := Flags{Session: "marca", Store: "fs", DataDir: dataDir, Output: "yaml"}

	first := base
	first.Message = "me dá ideias de posts"
	require.NoError(t, Run(ctx, &first, "test", &bytes.Buffer{}))

	reply := base
	reply.Assistant = ideaReply
	require.NoError(t, Run(ctx, &reply, "test", &bytes.Buffer{}))

	second := base
	second.Message = "desenvolve a segunda ideia"
	var out bytes.Buffer
	require.NoError(t, Run(ctx, &second, "test", &out))

	var res intent.Resolution
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &res))
	assert.True(t, res.Reference.HasReference)
	assert.Equal(t, "Depoimentos de clientes", res.Reference.Item)

	_, err := os.Stat(filepath.Join(dataDir, "sessions", "marca.json"))
	assert.NoError(t, err)
}

func TestRun_HistoryFile(t *testing.T) {
	history := filepath.Join(t.TempDir(), "history.json")
	payload, err := json.Marshal([]map[string]string{{"role": "assistant", "content": ideaReply}})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(history, payload, 0o644))

	var out bytes.Buffer
	require.NoError(t, Run(context.Background(), &Flags{Message: "gostei da terceira", History: history, Output: "json"}, "test", &out))

	var res intent.Resolution
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	assert.Equal(t, "Dicas rápidas de uso", res.Reference.Item)
}
