package fsdb

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pautahq/pauta/internal/chat"
)

func TestSessions_GetMissingIsEmpty(t *testing.T) {
	db := NewDb(t.TempDir())

	session, err := db.Sessions.Get("nova")
	require.NoError(t, err)
	assert.Equal(t, "nova", session.Name)
	assert.True(t, session.IsEmpty())
	assert.Nil(t, session.GetLastMessage())
}

func TestSessions_AppendAndLoad(t *testing.T) {
	db := NewDb(t.TempDir())
	require.NoError(t, db.Configure())
	ctx := context.Background()

	require.NoError(t, db.Sessions.AppendMessages(ctx, "marca", chat.NewUserMessage("me dá ideias")))
	require.NoError(t, db.Sessions.AppendMessages(ctx, "marca", chat.NewAssistantMessage("1. A\n2. B")))

	msgs, err := db.Sessions.LoadMessages(ctx, "marca")
	require.NoError(t, err)
	assert.Equal(t, []chat.Message{
		{Role: chat.RoleUser, Content: "me dá ideias"},
		{Role: chat.RoleAssistant, Content: "1. A\n2. B"},
	}, msgs)

	assert.FileExists(t, filepath.Join(db.Dir, "sessions", "marca.json"))

	names, err := db.Sessions.ListSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"marca"}, names)
}

func TestSessions_RejectsPathNames(t *testing.T) {
	db := NewDb(t.TempDir())
	for _, name := range []string{"", "..", "../x", "a/b", `a\b`} {
		_, err := db.Sessions.Get(name)
		assert.True(t, errors.Is(err, ErrInvalidName), "name %q: %v", name, err)
	}
	err := db.Sessions.AppendMessages(context.Background(), "../escape", chat.NewUserMessage("x"))
	assert.True(t, errors.Is(err, ErrInvalidName))
}

func TestSessions_CorruptFile(t *testing.T) {
	db := NewDb(t.TempDir())
	require.NoError(t, db.Configure())
	require.NoError(t, os.WriteFile(filepath.Join(db.Dir, "sessions", "ruim.json"), []byte("{not json"), 0o644))

	_, err := db.Sessions.Get("ruim")
	assert.Error(t, err)
}

func TestSessions_ConcurrentAppends(t *testing.T) {
	db := NewDb(t.TempDir())
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, db.Sessions.AppendMessages(ctx, "paralela", chat.NewUserMessage("oi")))
		}()
	}
	wg.Wait()

	msgs, err := db.Sessions.LoadMessages(ctx, "paralela")
	require.NoError(t, err)
	assert.Len(t, msgs, 20)
}

func TestStorageEntity_GetNamesSkipsOtherFiles(t *testing.T) {
	dir := t.TempDir()
	entity := &StorageEntity{Dir: dir, FileExtension: ".json"}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.json"), []byte("{}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.json"), []byte("{}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte(""), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".a-123.tmp"), []byte(""), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.json"), 0o755))

	names, err := entity.GetNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)

	assert.True(t, entity.Exists("a"))
	require.NoError(t, entity.Delete("a"))
	assert.False(t, entity.Exists("a"))
	assert.NoError(t, entity.Delete("a"))
}

func TestStorageEntity_GetNamesMissingDir(t *testing.T) {
	entity := &StorageEntity{Dir: filepath.Join(t.TempDir(), "nope"), FileExtension: ".json"}
	names, err := entity.GetNames()
	require.NoError(t, err)
	assert.Empty(t, names)
}
