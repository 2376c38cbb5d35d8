package eplugin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Werneck0live/simulador-trabalhista/internal/apperrors"
)

const (
	DefaultPageSize = 100
	mediaType       = "application/vnd.api+json"
)

// Client talks to the payroll API on behalf of one tenant account.
type Client struct {
	accountID string
	baseURL   string
	token     string
	pageSize  int
	http      *http.Client
	log       *slog.Logger
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }
func WithPageSize(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.pageSize = n
		}
	}
}
func WithLogger(l *slog.Logger) Option { return func(c *Client) { c.log = l } }

func NewClient(accountID, baseURL, token string, opts ...Option) *Client {
	c := &Client{
		accountID: accountID,
		baseURL:   strings.TrimRight(baseURL, "/"),
		token:     token,
		pageSize:  DefaultPageSize,
		http:      &http.Client{Timeout: 30 * time.Second},
		log:       slog.Default(),
	}
	for _, o := range opts {
		o(c)
	}
	c.log = c.log.With("cmp", "eplugin", "account", accountID)
	return c
}

func (c *Client) AccountID() string { return c.accountID }

// get issues one GET and decodes the JSON body into out. Transport errors and
// non-2xx answers come back as RemoteUnavailable.
func (c *Client) get(ctx context.Context, pathOrURL string, query url.Values, out any) error {
	target := pathOrURL
	if !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
		target = c.baseURL + "/" + strings.TrimLeft(target, "/")
	}
	if len(query) > 0 {
		sep := "?"
		if strings.Contains(target, "?") {
			sep = "&"
		}
		target += sep + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return apperrors.E(apperrors.KindRemoteUnavailable, "eplugin.get", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", mediaType)
	req.Header.Set("Content-Type", mediaType)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("eplugin_request_error", "url", target, "err", err)
		return apperrors.E(apperrors.KindRemoteUnavailable, "eplugin.get", err)
	}
	defer resp.Body.Close()

	c.log.Debug("eplugin_request", "url", target, "status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.log.Error("eplugin_bad_status", "url", target, "status", resp.StatusCode, "body", string(body))
		return apperrors.E(apperrors.KindRemoteUnavailable, "eplugin.get",
			fmt.Errorf("GET %s: status %d", target, resp.StatusCode))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.E(apperrors.KindRemoteUnavailable, "eplugin.get", fmt.Errorf("decode %s: %w", target, err))
	}
	return nil
}

// FetchAll reads every page of path at increasing offsets until a page comes
// back empty. Any failed page fails the whole call.
func (c *Client) FetchAll(ctx context.Context, path string, query url.Values, pageSize int) ([]Resource, error) {
	return c.fetchPages(ctx, path, query, pageSize, false)
}

// fetchPages pages sequentially. With followNext it also stops when the page
// carries no next link.
func (c *Client) fetchPages(ctx context.Context, path string, query url.Values, pageSize int, followNext bool) ([]Resource, error) {
	if pageSize <= 0 {
		pageSize = c.pageSize
	}
	var all []Resource
	for offset := 0; ; offset += pageSize {
		q := url.Values{}
		for k, v := range query {
			q[k] = v
		}
		q.Set("page[limit]", strconv.Itoa(pageSize))
		q.Set("page[offset]", strconv.Itoa(offset))

		var page collection
		if err := c.get(ctx, path, q, &page); err != nil {
			return nil, err
		}
		if len(page.Data) == 0 {
			break
		}
		all = append(all, page.Data...)
		if followNext && page.Links.Next == "" {
			break
		}
	}
	c.log.Debug("eplugin_fetch_all", "path", path, "total", len(all))
	return all, nil
}
