package supadb

import (
	"context"
	"time"

	"github.com/google/uuid"
	postgrest "github.com/supabase-community/postgrest-go"
	supabase "github.com/supabase-community/supabase-go"
)

type SessionRepository struct {
	client *supabase.Client
}

func (r *SessionRepository) List(ctx context.Context, limit uint) ([]Session, error) {
	_ = ctx
	var result []Session
	query := r.client.From(sessionsTable).Select("*", "", false).Order("updated_at", &postgrest.OrderOpts{Ascending: false})
	if limit > 0 {
		query = query.Limit(int(limit), "")
	}
	_, err := query.ExecuteTo(&result)
	return result, err
}

func (r *SessionRepository) Get(ctx context.Context, id uuid.UUID) (*Session, error) {
	_ = ctx
	var result []Session
	_, err := r.client.From(sessionsTable).Select("*", "", false).Eq("id", id.String()).Limit(1, "").ExecuteTo(&result)
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, nil
	}
	return &result[0], nil
}

func (r *SessionRepository) GetByTitle(ctx context.Context, title string) (*Session, error) {
	_ = ctx
	var result []Session
	_, err := r.client.From(sessionsTable).Select("*", "", false).Eq("title", title).
		Order("updated_at", &postgrest.OrderOpts{Ascending: false}).Limit(1, "").ExecuteTo(&result)
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, nil
	}
	return &result[0], nil
}

func (r *SessionRepository) Insert(ctx context.Context, payload map[string]any) (*Session, error) {
	_ = ctx
	var result []Session
	_, err := r.client.From(sessionsTable).Insert(payload, false, "", "representation", "").ExecuteTo(&result)
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, nil
	}
	return &result[0], nil
}

func (r *SessionRepository) Touch(ctx context.Context, id uuid.UUID) error {
	_ = ctx
	_, _, err := r.client.From(sessionsTable).Update(map[string]any{"updated_at": time.Now().UTC()}, "minimal", "").Eq("id", id.String()).Execute()
	return err
}

type MessageRepository struct {
	client *supabase.Client
}

// ListBySession returns a session's messages oldest first.
func (r *MessageRepository) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]Message, error) {
	_ = ctx
	var result []Message
	_, err := r.client.From(messagesTable).Select("*", "", false).Eq("session_id", sessionID.String()).
		Order("created_at", &postgrest.OrderOpts{Ascending: true}).ExecuteTo(&result)
	return result, err
}

func (r *MessageRepository) InsertMany(ctx context.Context, payload []map[string]any) ([]Message, error) {
	_ = ctx
	var result []Message
	_, err := r.client.From(messagesTable).Insert(payload, false, "", "representation", "").ExecuteTo(&result)
	return result, err
}
