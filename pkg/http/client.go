package http

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/sony/gobreaker"
	charsetpkg "golang.org/x/net/html/charset"
)

// ErrCircuitOpen is returned when the client's circuit breaker rejects a call.
var ErrCircuitOpen = errors.New("circuit breaker open")

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http error: status %d", e.StatusCode)
}

// Client represents an HTTP client with configuration options.
type Client struct {
	baseURL            string
	client             *http.Client
	followRedirect     bool
	dismiss404         bool
	defaultHeaders     map[string]string
	defaultQueryParams map[string]string
	defaultContentType string
	defaultBackoff     *BackoffConfig
	logger             HTTPLogger
	breaker            *gobreaker.CircuitBreaker
}

// ClientOptions represents the configuration options for the HTTP client.
type ClientOptions struct {
	FollowRedirect      bool
	Dismiss404          bool
	DefaultHeaders      map[string]string
	DefaultQueryParams  map[string]string
	DefaultContentType  string
	MaxIdleConns        int
	MaxIdleConnsPerHost int
	IdleConnTimeout     time.Duration
	ConnectionTimeout   time.Duration
	ReadTimeout         time.Duration
	// Backoff is applied to every request that does not set its own. Nil means a single attempt.
	Backoff *BackoffConfig
	// Logger receives request, response and retry events. Nil disables HTTP logging.
	Logger HTTPLogger
	// CircuitBreaker wraps every attempt in a gobreaker circuit when set.
	CircuitBreaker *gobreaker.Settings
	// Transport replaces the default pooled transport, mainly for tests.
	Transport http.RoundTripper
}

// NewHttpClient creates a new HTTP client with the given base URL and configuration options.
func NewHttpClient(baseURL string, opts ClientOptions) *Client {
	if opts.MaxIdleConns == 0 {
		opts.MaxIdleConns = 200
	}
	if opts.MaxIdleConnsPerHost == 0 {
		opts.MaxIdleConnsPerHost = 20
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 60 * time.Second
	}
	if opts.ConnectionTimeout == 0 {
		opts.ConnectionTimeout = 60 * time.Second
	}
	if opts.DefaultContentType == "" {
		opts.DefaultContentType = "application/json"
	}

	transport := opts.Transport
	if transport == nil {
		transport = &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        opts.MaxIdleConns,
			MaxIdleConnsPerHost: opts.MaxIdleConnsPerHost,
			IdleConnTimeout:     opts.IdleConnTimeout,
			DialContext: (&net.Dialer{
				Timeout: opts.ConnectionTimeout,
			}).DialContext,
		}
	}

	client := &http.Client{
		Transport: transport,
		Timeout:   opts.ReadTimeout,
	}

	if !opts.FollowRedirect {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	var breaker *gobreaker.CircuitBreaker
	if opts.CircuitBreaker != nil {
		breaker = gobreaker.NewCircuitBreaker(*opts.CircuitBreaker)
	}

	return &Client{
		baseURL:            strings.TrimRight(baseURL, "/"),
		client:             client,
		followRedirect:     opts.FollowRedirect,
		dismiss404:         opts.Dismiss404,
		defaultHeaders:     opts.DefaultHeaders,
		defaultQueryParams: opts.DefaultQueryParams,
		defaultContentType: opts.DefaultContentType,
		defaultBackoff:     opts.Backoff,
		logger:             opts.Logger,
		breaker:            breaker,
	}
}

// Request creates a new Request object for the client.
func (hc *Client) Request() *Request {
	return NewHttpClientRequest(hc)
}

// Get sends a GET request to the specified path with optional query parameters, headers, and response types.
// It returns the success response, error response, status code, and error if any.
func (hc *Client) Get(ctx context.Context, path string, queryParams map[string]string, headers map[string]string, successResp any, errorResp any) (any, any, int, error) {
	return hc.doRequestWithBackoff(ctx, http.MethodGet, path, queryParams, headers, nil, successResp, errorResp, nil)
}

// Post sends a POST request to the specified path with optional query parameters, headers, and response types.
// It returns the success response, error response, status code, and error if any.
func (hc *Client) Post(ctx context.Context, path string, queryParams map[string]string, headers map[string]string, body any, successResp any, errorResp any) (any, any, int, error) {
	return hc.doRequestWithBackoff(ctx, http.MethodPost, path, queryParams, headers, body, successResp, errorResp, nil)
}

// rawResponse is what a single attempt hands back to the retry loop
type rawResponse struct {
	statusCode  int
	contentType string
	body        []byte
}

// doRequest performs one attempt: builds the request, executes it and reads the body.
// Non-2xx statuses are returned as data, not as errors, so the caller decides what is retryable.
func (hc *Client) doRequest(ctx context.Context, method, path string, queryParams map[string]string, headers map[string]string, body any) (*rawResponse, string, string, error) {
	requestURL := hc.buildURL(path)
	if query := hc.buildQueryString(queryParams); query != "" {
		requestURL += "?" + query
	}

	bodyReader, contentType, rawBody, err := hc.encodeBody(body)
	if err != nil {
		return nil, requestURL, "", err
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, bodyReader)
	if err != nil {
		return nil, requestURL, rawBody, err
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, v := range hc.defaultHeaders {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	if hc.logger != nil {
		hc.logger.LogRequest(method, requestURL, headers, rawBody)
	}

	resp, err := hc.client.Do(req)
	if err != nil {
		return nil, requestURL, rawBody, err
	}
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, requestURL, rawBody, err
	}

	respContentType := resp.Header.Get("Content-Type")
	if respContentType == "" {
		respContentType = hc.defaultContentType
	}

	return &rawResponse{
		statusCode:  resp.StatusCode,
		contentType: respContentType,
		body:        bodyBytes,
	}, requestURL, rawBody, nil
}

// attempt runs doRequest through the circuit breaker when one is configured.
// 5xx and 429 responses count as breaker failures.
func (hc *Client) attempt(ctx context.Context, method, path string, queryParams map[string]string, headers map[string]string, body any) (*rawResponse, string, string, error) {
	if hc.breaker == nil {
		return hc.doRequest(ctx, method, path, queryParams, headers, body)
	}

	var requestURL, rawBody string
	var raw *rawResponse
	_, err := hc.breaker.Execute(func() (interface{}, error) {
		var execErr error
		raw, requestURL, rawBody, execErr = hc.doRequest(ctx, method, path, queryParams, headers, body)
		if execErr != nil {
			return nil, execErr
		}
		if isRetryableStatus(raw.statusCode) {
			return nil, &StatusError{StatusCode: raw.statusCode}
		}
		return nil, nil
	})

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, hc.buildURL(path), "", fmt.Errorf("%w: %v", ErrCircuitOpen, err)
	}
	var statusErr *StatusError
	if err != nil && !errors.As(err, &statusErr) {
		return nil, requestURL, rawBody, err
	}
	return raw, requestURL, rawBody, nil
}

// handleResponse decodes the body into successResp or errorResp based on the status code
func (hc *Client) handleResponse(raw *rawResponse, successResp any, errorResp any) (any, any, int, error) {
	if raw.statusCode >= 200 && raw.statusCode < 300 {
		if successResp != nil {
			if err := hc.unmarshalResponse(raw.body, raw.contentType, successResp); err != nil {
				return nil, nil, raw.statusCode, fmt.Errorf("failed to decode response body: %w", err)
			}
		}
		return successResp, nil, raw.statusCode, nil
	}

	if raw.statusCode == http.StatusNotFound && hc.dismiss404 {
		return nil, nil, raw.statusCode, nil
	}

	if errorResp != nil && len(raw.body) > 0 {
		if err := hc.unmarshalResponse(raw.body, raw.contentType, errorResp); err != nil {
			errorResp = nil
		}
	} else {
		errorResp = nil
	}

	return nil, errorResp, raw.statusCode, &StatusError{StatusCode: raw.statusCode}
}

// encodeBody prepares the request body according to its type and the default content type
func (hc *Client) encodeBody(body any) (io.Reader, string, string, error) {
	if body == nil {
		return nil, "", "", nil
	}

	switch b := body.(type) {
	case string:
		return bytes.NewBufferString(b), "text/plain", b, nil
	case []byte:
		return bytes.NewBuffer(b), "application/octet-stream", "", nil
	}

	switch hc.defaultContentType {
	case "application/xml":
		xmlBody, err := xml.Marshal(body)
		if err != nil {
			return nil, "", "", fmt.Errorf("failed to marshal request body to XML: %w", err)
		}
		return bytes.NewBuffer(xmlBody), "application/xml", string(xmlBody), nil
	default:
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, "", "", fmt.Errorf("failed to marshal request body to JSON: %w", err)
		}
		return bytes.NewBuffer(jsonBody), "application/json", string(jsonBody), nil
	}
}

// unmarshalResponse unmarshals response body based on content type
func (hc *Client) unmarshalResponse(bodyBytes []byte, contentType string, target any) error {
	mainContentType := strings.TrimSpace(strings.Split(contentType, ";")[0])

	switch mainContentType {
	case "application/xml", "text/xml":
		dec := xml.NewDecoder(bytes.NewReader(bodyBytes))
		dec.CharsetReader = charsetpkg.NewReaderLabel
		return dec.Decode(target)
	case "text/plain":
		if strPtr, ok := target.(*string); ok {
			*strPtr = string(bodyBytes)
			return nil
		}
		return json.Unmarshal(bodyBytes, target)
	case "application/octet-stream":
		if bytePtr, ok := target.(*[]byte); ok {
			*bytePtr = bodyBytes
			return nil
		}
		return json.Unmarshal(bodyBytes, target)
	default:
		// raw gists are served as text/plain or application/octet-stream too, JSON is the fallback
		return json.Unmarshal(bodyBytes, target)
	}
}

// buildURL builds a normalized URL by properly handling baseURL and path
func (hc *Client) buildURL(path string) string {
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return strings.TrimRight(hc.baseURL, "/") + path
}

// buildQueryString merges default and request query parameters and encodes them
func (hc *Client) buildQueryString(params map[string]string) string {
	if len(params) == 0 && len(hc.defaultQueryParams) == 0 {
		return ""
	}

	values := url.Values{}
	for key, value := range hc.defaultQueryParams {
		values.Set(key, value)
	}
	for key, value := range params {
		values.Set(key, value)
	}
	return values.Encode()
}
