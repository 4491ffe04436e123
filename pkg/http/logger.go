package http

import (
	"city-api/pkg/log"

	"go.uber.org/zap"
)

// HTTPLogger receives the lifecycle events of outgoing requests
type HTTPLogger interface {
	// LogRequest is called before the request is sent with all request data formed
	LogRequest(method, url string, headers map[string]string, body string)

	// LogResponseSuccess is called after a 2xx response
	LogResponseSuccess(method, url string, headers map[string]string, body string, httpStatus int, responseBody string, latency int64)

	// LogResponseError is called after a transport failure or a non-2xx response
	LogResponseError(method, url string, headers map[string]string, body string, httpStatus int, responseBody string, latency int64, err error)

	// LogRequestRetry is called when a backoff is configured and another attempt is about to be made
	LogRequestRetry(method, url string, headers map[string]string, body string, httpStatus int, responseBody string, latency int64, err error, retryCount, maxRetries int)
}

// ZapLogger writes HTTP events through the application zap logger.
// Response bodies are truncated to MaxBodyLength characters.
type ZapLogger struct {
	Name          string
	MaxBodyLength int
}

// NewZapLogger creates a ZapLogger tagging every entry with the client name
func NewZapLogger(name string) *ZapLogger {
	return &ZapLogger{Name: name, MaxBodyLength: 512}
}

func (l *ZapLogger) truncate(body string) string {
	if l.MaxBodyLength <= 0 || len(body) <= l.MaxBodyLength {
		return body
	}
	return body[:l.MaxBodyLength] + "..."
}

func (l *ZapLogger) LogRequest(method, url string, _ map[string]string, body string) {
	log.Debug("http request",
		zap.String("client", l.Name),
		zap.String("method", method),
		zap.String("url", url),
		zap.String("body", l.truncate(body)))
}

func (l *ZapLogger) LogResponseSuccess(method, url string, _ map[string]string, _ string, httpStatus int, responseBody string, latency int64) {
	log.Debug("http response",
		zap.String("client", l.Name),
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", httpStatus),
		zap.Int64("latency_ms", latency),
		zap.String("response", l.truncate(responseBody)))
}

func (l *ZapLogger) LogResponseError(method, url string, _ map[string]string, _ string, httpStatus int, responseBody string, latency int64, err error) {
	log.Warn("http response error",
		zap.String("client", l.Name),
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", httpStatus),
		zap.Int64("latency_ms", latency),
		zap.String("response", l.truncate(responseBody)),
		zap.Error(err))
}

func (l *ZapLogger) LogRequestRetry(method, url string, _ map[string]string, _ string, httpStatus int, _ string, latency int64, err error, retryCount, maxRetries int) {
	log.Warn("http request retry",
		zap.String("client", l.Name),
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", httpStatus),
		zap.Int64("latency_ms", latency),
		zap.Int("retry", retryCount),
		zap.Int("max_retries", maxRetries),
		zap.Error(err))
}
