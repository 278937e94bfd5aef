package fsdb

import (
	"context"
	"encoding/json"
	"os"
	"sync"

	"github.com/pkg/errors"

	"github.com/pautahq/pauta/internal/chat"
	"github.com/pautahq/pauta/internal/i18n"
	debuglog "github.com/pautahq/pauta/internal/log"
)

type SessionsEntity struct {
	*StorageEntity

	mu sync.Mutex
}

// Session is a named chat history.
type Session struct {
	Name     string         `json:"name"`
	Messages []chat.Message `json:"messages"`
}

func (o *Session) IsEmpty() bool {
	return len(o.Messages) == 0
}

func (o *Session) Append(messages ...chat.Message) {
	o.Messages = append(o.Messages, messages...)
}

// GetLastMessage returns the most recent message, or nil.
func (o *Session) GetLastMessage() *chat.Message {
	if len(o.Messages) == 0 {
		return nil
	}
	return &o.Messages[len(o.Messages)-1]
}

// Get loads a session. A session that was never saved comes back empty.
func (o *SessionsEntity) Get(name string) (*Session, error) {
	session := &Session{Name: name}
	content, err := o.Load(name)
	if err != nil {
		if errors.Is(err, ErrInvalidName) {
			return nil, err
		}
		if os.IsNotExist(errors.Cause(err)) {
			return session, nil
		}
		return nil, err
	}
	if err = json.Unmarshal(content, session); err != nil {
		return nil, errors.Wrapf(err, i18n.T("fsdb_error_decode_session"), name)
	}
	session.Name = name
	return session, nil
}

func (o *SessionsEntity) SaveSession(session *Session) error {
	content, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return errors.Wrapf(err, i18n.T("fsdb_error_encode_session"), session.Name)
	}
	return o.Save(session.Name, content)
}

// LoadMessages returns the history of a session.
func (o *SessionsEntity) LoadMessages(_ context.Context, sessionID string) ([]chat.Message, error) {
	session, err := o.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return session.Messages, nil
}

// AppendMessages adds messages to a session, creating it if needed.
func (o *SessionsEntity) AppendMessages(_ context.Context, sessionID string, messages ...chat.Message) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	session, err := o.Get(sessionID)
	if err != nil {
		return err
	}
	session.Append(messages...)
	debuglog.Debug(debuglog.Detailed, "fsdb: session %s now has %d messages\n", sessionID, len(session.Messages))
	return o.SaveSession(session)
}

// ListSessions returns the names of stored sessions.
func (o *SessionsEntity) ListSessions(_ context.Context) ([]string, error) {
	return o.GetNames()
}
