// Package dispatch composes request envelopes and drives the send lifecycle:
// idle -> sending -> (settled: success | httpError | networkError). At most
// one request is in flight at a time.
package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"galcon/internal/credstore"
	"galcon/internal/model"
)

type State int

const (
	StateIdle State = iota
	StateSending
	StateSuccess
	StateHTTPError
	StateNetworkError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSending:
		return "sending"
	case StateSuccess:
		return "success"
	case StateHTTPError:
		return "httpError"
	case StateNetworkError:
		return "networkError"
	default:
		return "unknown"
	}
}

// ErrBusy is returned when a send is requested while another request is
// still in flight.
var ErrBusy = errors.New("a request is already in flight")

// MalformedInputError reports invalid JSON in the raw body editor. It is
// raised synchronously by BuildRequest, before any network activity.
type MalformedInputError struct {
	Err error
}

func (e *MalformedInputError) Error() string { return fmt.Sprintf("invalid json body: %v", e.Err) }
func (e *MalformedInputError) Unwrap() error { return e.Err }

// NetworkError reports a transport-level failure where no response was
// received. It is distinct from an HTTP error status, which settles as a
// normal ResponseEnvelope with OK=false.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return fmt.Sprintf("network error: %v", e.Err) }
func (e *NetworkError) Unwrap() error { return e.Err }

// HeaderValues carries the operator-supplied header inputs. All are optional;
// blank values are omitted from the request.
type HeaderValues struct {
	Name       string // galaxy-ap-name
	Secret     string // galaxy-ap-password
	SearchType string // galaxy-search-type (overrides the endpoint default)
	SessionID  string // galaxy-client-session-id
	ClientType string // galaxy-client-type
}

// Credentials returns the credential pair embedded in the header values.
func (h HeaderValues) Credentials() model.Credentials {
	return model.Credentials{
		Name:   strings.TrimSpace(h.Name),
		Secret: strings.TrimSpace(h.Secret),
	}
}

// Dispatcher issues requests against one base URL.
type Dispatcher struct {
	baseURL string
	client  *http.Client
	store   *credstore.Store
	log     zerolog.Logger

	mu    sync.Mutex
	state State
}

type Option func(*Dispatcher)

// WithTimeout bounds each request at the transport layer. The dispatcher
// itself imposes no timeout.
func WithTimeout(d time.Duration) Option {
	return func(dp *Dispatcher) { dp.client.Timeout = d }
}

// WithStore attaches the credential store used for write-through persistence.
func WithStore(s *credstore.Store) Option {
	return func(dp *Dispatcher) { dp.store = s }
}

func WithLogger(log zerolog.Logger) Option {
	return func(dp *Dispatcher) { dp.log = log }
}

func WithHTTPClient(c *http.Client) Option {
	return func(dp *Dispatcher) { dp.client = c }
}

func New(baseURL string, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		client:  &http.Client{},
		log:     zerolog.Nop(),
		state:   StateIdle,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Dispatcher) BaseURL() string { return d.baseURL }

// State reports the current lifecycle state.
func (d *Dispatcher) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Busy reports whether a request is in flight.
func (d *Dispatcher) Busy() bool { return d.State() == StateSending }

// BuildRequest composes the request envelope for ep. The raw editor wins
// over the collected document when it holds anything; invalid raw JSON is
// rejected here with a MalformedInputError, before the lifecycle leaves
// idle. Blank optional headers are omitted.
func (d *Dispatcher) BuildRequest(ep model.EndpointDescriptor, doc map[string]any, bodyRaw string, hv HeaderValues) (model.RequestEnvelope, error) {
	var body []byte
	if raw := strings.TrimSpace(bodyRaw); raw != "" {
		var check any
		if err := json.Unmarshal([]byte(raw), &check); err != nil {
			return model.RequestEnvelope{}, &MalformedInputError{Err: err}
		}
		body = []byte(raw)
	} else {
		b, err := json.Marshal(doc)
		if err != nil {
			return model.RequestEnvelope{}, fmt.Errorf("marshal document: %w", err)
		}
		body = b
	}

	headers := map[string]string{
		"Content-Type": "application/json",
	}
	searchType := strings.TrimSpace(hv.SearchType)
	if searchType == "" {
		searchType = strings.TrimSpace(ep.SearchType)
	}
	setIfPresent(headers, "galaxy-ap-name", hv.Name)
	setIfPresent(headers, "galaxy-ap-password", hv.Secret)
	setIfPresent(headers, "galaxy-search-type", searchType)
	setIfPresent(headers, "galaxy-client-session-id", hv.SessionID)
	setIfPresent(headers, "galaxy-client-type", hv.ClientType)

	method := strings.ToUpper(strings.TrimSpace(ep.Method))
	if method == "" {
		method = http.MethodPost
	}

	return model.RequestEnvelope{
		Method:  method,
		URL:     d.baseURL + ep.Path,
		Headers: headers,
		Body:    body,
	}, nil
}

func setIfPresent(headers map[string]string, name, val string) {
	if v := strings.TrimSpace(val); v != "" {
		headers[name] = v
	}
}

// Send issues the request and normalizes the outcome. When remember is set,
// the credential pair is persisted before the transport call (write-through:
// a crash mid-request cannot lose credentials meant to be remembered). A
// transport failure returns a *NetworkError; an HTTP error status settles
// as a ResponseEnvelope with OK=false.
func (d *Dispatcher) Send(ctx context.Context, req model.RequestEnvelope, remember bool, creds model.Credentials) (model.ResponseEnvelope, error) {
	d.mu.Lock()
	if d.state == StateSending {
		d.mu.Unlock()
		return model.ResponseEnvelope{}, ErrBusy
	}
	d.state = StateSending
	d.mu.Unlock()

	env, err := d.send(ctx, req, remember, creds)

	d.mu.Lock()
	switch {
	case err != nil:
		d.state = StateNetworkError
	case env.OK:
		d.state = StateSuccess
	default:
		d.state = StateHTTPError
	}
	d.mu.Unlock()

	return env, err
}

func (d *Dispatcher) send(ctx context.Context, req model.RequestEnvelope, remember bool, creds model.Credentials) (model.ResponseEnvelope, error) {
	if remember && d.store != nil {
		if err := d.store.Remember(creds); err != nil {
			// persistence trouble must not block the request
			d.log.Warn().Err(err).Msg("failed to persist credentials")
		}
	}

	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return model.ResponseEnvelope{}, &NetworkError{Err: err}
	}
	for k, v := range req.Headers {
		if strings.TrimSpace(v) != "" {
			httpReq.Header.Set(k, v)
		}
	}

	start := time.Now()
	resp, err := d.client.Do(httpReq)
	if err != nil {
		d.log.Error().Err(err).Str("url", req.URL).Msg("transport failure")
		return model.ResponseEnvelope{}, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.ResponseEnvelope{}, &NetworkError{Err: err}
	}

	env := model.ResponseEnvelope{
		OK:         resp.StatusCode >= 200 && resp.StatusCode < 300,
		Status:     resp.StatusCode,
		StatusText: resp.Status,
		Data:       decodeBody(raw),
	}
	d.log.Info().
		Str("method", req.Method).
		Str("url", req.URL).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("request settled")
	return env, nil
}

// decodeBody parses the payload as JSON; anything else is wrapped as
// {"raw": text} so the envelope shape stays uniform.
func decodeBody(raw []byte) any {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return map[string]any{"raw": ""}
	}
	var v any
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil || dec.More() {
		return map[string]any{"raw": string(raw)}
	}
	return v
}
