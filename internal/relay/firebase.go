package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// FirebaseCollectionPath is appended to the database URL for every push.
	FirebaseCollectionPath = "/assessments.json"

	defaultFirebaseTimeout = 10 * time.Second
	maxFirebaseReplyBytes  = 4 << 10
)

// FirebaseConfig configures the Realtime Database relay.
type FirebaseConfig struct {
	BaseURL string
	Secret  string
	Timeout time.Duration
	Client  *http.Client
}

// FirebaseRelay pushes submissions to a Firebase Realtime Database collection over its REST API.
type FirebaseRelay struct {
	client   *http.Client
	endpoint string
	target   string
	timeout  time.Duration
}

// NewFirebaseRelay builds a relay. An empty BaseURL yields a relay that always skips.
func NewFirebaseRelay(cfg FirebaseConfig) (*FirebaseRelay, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultFirebaseTimeout
	}

	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}

	relay := &FirebaseRelay{client: client, timeout: timeout}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return relay, nil
	}

	endpoint, err := BuildFirebaseURL(cfg.BaseURL, cfg.Secret)
	if err != nil {
		return nil, err
	}
	target, err := BuildFirebaseURL(cfg.BaseURL, "")
	if err != nil {
		return nil, err
	}

	relay.endpoint = endpoint
	relay.target = target
	return relay, nil
}

// BuildFirebaseURL appends the collection path and, when secret is set, the auth query parameter.
func BuildFirebaseURL(baseURL, secret string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return "", fmt.Errorf("invalid firebase url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("firebase url must be absolute: %q", baseURL)
	}

	parsed.Path = strings.TrimRight(parsed.Path, "/") + FirebaseCollectionPath
	parsed.RawPath = ""

	if secret != "" {
		query := parsed.Query()
		query.Set("auth", secret)
		parsed.RawQuery = query.Encode()
	}

	return parsed.String(), nil
}

// Name identifies the relay in logs and metrics.
func (r *FirebaseRelay) Name() string {
	return "firebase"
}

// Endpoint returns the collection URL without the auth parameter.
func (r *FirebaseRelay) Endpoint() string {
	return r.target
}

// Enabled reports whether a database URL was configured.
func (r *FirebaseRelay) Enabled() bool {
	return r.endpoint != ""
}

// Relay POSTs payload to the collection. Any non-2xx answer counts as a failure.
func (r *FirebaseRelay) Relay(ctx context.Context, payload []byte) Result {
	if !r.Enabled() {
		return Skipped(r.Name(), "remote store not configured")
	}

	start := time.Now()
	result := r.post(ctx, payload)
	result.Duration = time.Since(start)
	return result
}

func (r *FirebaseRelay) post(ctx context.Context, payload []byte) Result {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(payload))
	if err != nil {
		return Failed(r.Name(), 0, fmt.Errorf("create relay request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return Failed(r.Name(), 0, fmt.Errorf("send relay request: %w", redactURLError(err)))
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxFirebaseReplyBytes))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return Failed(r.Name(), resp.StatusCode, fmt.Errorf("remote store responded %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	var reply struct {
		Name string `json:"name"`
	}
	_ = json.Unmarshal(body, &reply)

	return Relayed(r.Name(), resp.StatusCode, reply.Name)
}

// redactURLError strips the request URL, which may carry the auth secret, from transport errors.
func redactURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s: %w", urlErr.Op, urlErr.Err)
	}
	return err
}
