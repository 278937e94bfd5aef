package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/pautahq/pauta/internal/chat"
	"github.com/pautahq/pauta/internal/i18n"
	"github.com/pautahq/pauta/internal/intent"
	debuglog "github.com/pautahq/pauta/internal/log"
)

var (
	ErrEmptyMessage = errors.New("empty message")
	ErrInvalidRole  = errors.New("invalid role")
	ErrNoStore      = errors.New("no session store")
)

// SessionStore persists conversation histories by session id.
type SessionStore interface {
	LoadMessages(ctx context.Context, sessionID string) ([]chat.Message, error)
	AppendMessages(ctx context.Context, sessionID string, messages ...chat.Message) error
}

// ChatRequest is one user turn. When Session is set the stored history is
// used and History is appended after it.
type ChatRequest struct {
	Session string         `json:"session,omitempty"`
	History []chat.Message `json:"history,omitempty"`
	Message string         `json:"message" binding:"required"`
}

type Router struct {
	store SessionStore
}

// NewRouter creates a router. store may be nil, in which case session
// requests fail with ErrNoStore.
func NewRouter(store SessionStore) *Router {
	return &Router{store: store}
}

func (o *Router) HasStore() bool {
	return o.store != nil
}

// Resolve classifies the request message against its history. The original
// message, not the enriched prompt, is what gets recorded in the session.
func (o *Router) Resolve(ctx context.Context, request ChatRequest) (res intent.Resolution, err error) {
	if strings.TrimSpace(request.Message) == "" {
		err = errors.Wrap(ErrEmptyMessage, i18n.T("cli_error_message_required"))
		return
	}

	history := request.History
	if request.Session != "" {
		var stored []chat.Message
		if stored, err = o.History(ctx, request.Session); err != nil {
			return
		}
		history = append(stored, request.History...)
	}

	res = intent.Resolve(history, request.Message)
	debuglog.Debug(debuglog.Detailed, "router: session=%q history=%d format=%v reference=%v image=%v\n",
		request.Session, len(history), res.Format != nil, res.Reference.HasReference, res.Image.IsImageRequest)

	if request.Session != "" {
		if err = o.store.AppendMessages(ctx, request.Session, chat.NewUserMessage(request.Message)); err != nil {
			err = fmt.Errorf(i18n.T("router_error_save_session"), request.Session, err)
		}
	}
	return
}

// Record appends a message to a session.
func (o *Router) Record(ctx context.Context, session string, msg chat.Message) error {
	if o.store == nil {
		return errors.Wrap(ErrNoStore, i18n.T("router_error_no_store"))
	}
	if !msg.Role.Valid() {
		return errors.Wrapf(ErrInvalidRole, i18n.T("router_error_invalid_role"), msg.Role)
	}
	if strings.TrimSpace(msg.Content) == "" {
		return errors.Wrap(ErrEmptyMessage, i18n.T("router_error_empty_reply"))
	}
	if err := o.store.AppendMessages(ctx, session, msg); err != nil {
		return fmt.Errorf(i18n.T("router_error_save_session"), session, err)
	}
	return nil
}

// RecordAssistant appends a reply produced elsewhere to a session.
func (o *Router) RecordAssistant(ctx context.Context, session, content string) error {
	return o.Record(ctx, session, chat.NewAssistantMessage(content))
}

// History returns the stored messages of a session.
func (o *Router) History(ctx context.Context, session string) ([]chat.Message, error) {
	if o.store == nil {
		return nil, errors.Wrap(ErrNoStore, i18n.T("router_error_no_store"))
	}
	msgs, err := o.store.LoadMessages(ctx, session)
	if err != nil {
		return nil, fmt.Errorf(i18n.T("router_error_load_session"), session, err)
	}
	return msgs, nil
}
