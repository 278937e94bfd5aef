package imagecache

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"syscall"
	"time"

	"github.com/pautahq/pauta/internal/i18n"
)

// DefaultMaxBytes caps a single downloaded image.
const DefaultMaxBytes = 10 << 20

var (
	ErrUnsupportedScheme = errors.New("only http and https sources are allowed")
	ErrBlockedAddress    = errors.New("source resolves to a non-public address")
)

// Fetcher retrieves the raw bytes behind an image source.
type Fetcher interface {
	Fetch(ctx context.Context, src string) ([]byte, error)
}

// HTTPFetcher downloads images over HTTP(S). Connections to loopback,
// private, link-local and unspecified addresses are refused at dial time,
// so redirects and DNS answers cannot reach them either, unless
// AllowPrivate is set.
type HTTPFetcher struct {
	Client       *http.Client
	MaxBytes     int64
	AllowPrivate bool
}

func NewHTTPFetcher() *HTTPFetcher {
	f := &HTTPFetcher{MaxBytes: DefaultMaxBytes}

	dialer := &net.Dialer{Timeout: 10 * time.Second, Control: f.checkAddress}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = nil
	transport.DialContext = dialer.DialContext

	f.Client = &http.Client{Timeout: 30 * time.Second, Transport: transport}
	return f
}

func (f *HTTPFetcher) Fetch(ctx context.Context, src string) ([]byte, error) {
	parsed, err := url.Parse(src)
	if err != nil {
		return nil, fmt.Errorf(i18n.T("imagecache_error_request"), src, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf(i18n.T("imagecache_error_request"), src, ErrUnsupportedScheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf(i18n.T("imagecache_error_request"), src, err)
	}

	client := f.Client
	if client == nil {
		client = NewHTTPFetcher().Client
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf(i18n.T("imagecache_error_request"), src, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf(i18n.T("imagecache_error_status"), src, resp.StatusCode)
	}

	limit := f.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf(i18n.T("imagecache_error_request"), src, err)
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf(i18n.T("imagecache_error_too_large"), src, limit)
	}
	return body, nil
}

func (f *HTTPFetcher) checkAddress(_, address string, _ syscall.RawConn) error {
	if f.AllowPrivate {
		return nil
	}
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return err
	}
	if ip := net.ParseIP(host); ip == nil || !isPublic(ip) {
		return fmt.Errorf("%w: %s", ErrBlockedAddress, host)
	}
	return nil
}

func isPublic(ip net.IP) bool {
	return !(ip.IsLoopback() || ip.IsPrivate() || ip.IsUnspecified() ||
		ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() || ip.IsInterfaceLocalMulticast())
}
