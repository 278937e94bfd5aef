package supadb

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/pautahq/pauta/internal/chat"
	"github.com/pautahq/pauta/internal/i18n"
	debuglog "github.com/pautahq/pauta/internal/log"
)

type sessionRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*Session, error)
	GetByTitle(ctx context.Context, title string) (*Session, error)
	Insert(ctx context.Context, payload map[string]any) (*Session, error)
	Touch(ctx context.Context, id uuid.UUID) error
}

type messageRepository interface {
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]Message, error)
	InsertMany(ctx context.Context, payload []map[string]any) ([]Message, error)
}

// Store keeps chat histories in Supabase. A session is addressed either by
// its UUID or by its title.
type Store struct {
	sessions sessionRepository
	messages messageRepository
}

func NewStore(client *Client) *Store {
	return &Store{sessions: client.Sessions(), messages: client.Messages()}
}

// LoadMessages returns the history of a session, oldest first. An unknown
// session has an empty history.
func (s *Store) LoadMessages(ctx context.Context, sessionID string) ([]chat.Message, error) {
	session, err := s.lookup(ctx, sessionID)
	if err != nil || session == nil {
		return nil, err
	}

	rows, err := s.messages.ListBySession(ctx, session.ID)
	if err != nil {
		return nil, errors.Wrapf(err, i18n.T("supadb_error_list_messages"), sessionID)
	}
	return lo.FilterMap(rows, func(row Message, _ int) (chat.Message, bool) {
		return row.ToChat()
	}), nil
}

// AppendMessages stores messages, creating the session on first use.
func (s *Store) AppendMessages(ctx context.Context, sessionID string, messages ...chat.Message) error {
	if len(messages) == 0 {
		return nil
	}

	session, err := s.lookup(ctx, sessionID)
	if err != nil {
		return err
	}
	if session == nil {
		if session, err = s.create(ctx, sessionID); err != nil {
			return err
		}
	}

	payload := lo.Map(messages, func(msg chat.Message, _ int) map[string]any {
		return messagePayload(session.ID, msg)
	})
	if _, err = s.messages.InsertMany(ctx, payload); err != nil {
		return errors.Wrapf(err, i18n.T("supadb_error_insert_messages"), sessionID)
	}
	debuglog.Debug(debuglog.Detailed, "supadb: appended %d messages to %s\n", len(messages), session.ID)

	if err = s.sessions.Touch(ctx, session.ID); err != nil {
		debuglog.Debug(debuglog.Basic, "supadb: could not touch session %s: %v\n", session.ID, err)
	}
	return nil
}

func (s *Store) lookup(ctx context.Context, sessionID string) (*Session, error) {
	var (
		session *Session
		err     error
	)
	if id, parseErr := uuid.Parse(sessionID); parseErr == nil {
		session, err = s.sessions.Get(ctx, id)
	} else {
		session, err = s.sessions.GetByTitle(ctx, sessionID)
	}
	if err != nil {
		return nil, errors.Wrapf(err, i18n.T("supadb_error_get_session"), sessionID)
	}
	return session, nil
}

func (s *Store) create(ctx context.Context, sessionID string) (*Session, error) {
	payload := map[string]any{"title": sessionID}
	if id, err := uuid.Parse(sessionID); err == nil {
		payload["id"] = id.String()
	}
	session, err := s.sessions.Insert(ctx, payload)
	if err != nil {
		return nil, errors.Wrapf(err, i18n.T("supadb_error_create_session"), sessionID)
	}
	if session == nil {
		return nil, errors.Errorf(i18n.T("supadb_error_create_session"), sessionID)
	}
	return session, nil
}
