package supadb

import (
	"context"
	"fmt"
	"os"

	supabase "github.com/supabase-community/supabase-go"

	"github.com/pautahq/pauta/internal/i18n"
)

// Client wraps the Supabase SDK to expose typed helpers for chat history.
type Client struct {
	client *supabase.Client
}

// NewClient connects with an explicit project URL and service key.
func NewClient(url, key string) (*Client, error) {
	if url == "" || key == "" {
		return nil, fmt.Errorf("%s", i18n.T("supadb_error_credentials_missing"))
	}

	client, err := supabase.NewClient(url, key, nil)
	if err != nil {
		return nil, fmt.Errorf(i18n.T("supadb_error_connect"), err)
	}

	return &Client{client: client}, nil
}

// NewClientFromEnv instantiates the Supabase client when credentials are present.
func NewClientFromEnv() (*Client, error) {
	return NewClient(os.Getenv("SUPABASE_URL"), os.Getenv("SUPABASE_SERVICE_ROLE_KEY"))
}

// Ping verifies the Supabase connection with a one-row read.
func (c *Client) Ping(ctx context.Context) error {
	_ = ctx
	if c == nil || c.client == nil {
		return fmt.Errorf("%s", i18n.T("supadb_error_not_initialized"))
	}

	_, err := c.client.From(sessionsTable).Select("id", "", false).Limit(1, "").ExecuteTo(&[]Session{})
	return err
}

// Sessions returns a typed repository for session rows.
func (c *Client) Sessions() *SessionRepository {
	return &SessionRepository{client: c.client}
}

// Messages returns a typed repository for message rows.
func (c *Client) Messages() *MessageRepository {
	return &MessageRepository{client: c.client}
}
