package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// RequestInterceptor may adjust an outgoing request. Returning a nil request
// keeps the one passed in; returning an error aborts the call as a local
// failure.
type RequestInterceptor func(req *http.Request) (*http.Request, error)

// ResponseInterceptor observes the outcome of one attempt. req and resp may be
// nil depending on how far the attempt got. The returned error replaces err;
// interceptors in this package always return err unchanged.
type ResponseInterceptor func(req *http.Request, resp *http.Response, err error) error

// PassThrough is the default request interceptor. Auth token injection will
// hook in here once the backend supports it.
func PassThrough(req *http.Request) (*http.Request, error) {
	return req, nil
}

type requestIDKey struct{}

// ContextWithRequestID attaches id to ctx. WithRequestID sends it instead of
// generating a fresh one, so a front end can correlate its own request with
// the backend call.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// WithRequestID stamps each request with an X-Request-ID unless one is
// already set. The id comes from the request context when present and is a
// random UUID otherwise.
func WithRequestID() RequestInterceptor {
	return func(req *http.Request) (*http.Request, error) {
		if req.Header.Get(RequestIDHeader) != "" {
			return req, nil
		}
		id, _ := req.Context().Value(requestIDKey{}).(string)
		if id == "" {
			id = uuid.NewString()
		}
		req.Header.Set(RequestIDHeader, id)
		return req, nil
	}
}

// LoggingInterceptor logs each failure under one of three categories and
// hands the error back untouched so callers keep the full error chain. Calls
// cancelled by the caller are logged at debug level only.
func LoggingInterceptor(logger *zap.Logger) ResponseInterceptor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(req *http.Request, resp *http.Response, err error) error {
		if err == nil {
			return nil
		}

		fields := make([]zap.Field, 0, 5)
		if req != nil {
			fields = append(fields, zap.String("path", req.URL.Path))
			if id := req.Header.Get(RequestIDHeader); id != "" {
				fields = append(fields, zap.String("request_id", id))
			}
		}

		if errors.Is(err, context.Canceled) {
			logger.Debug("request cancelled", fields...)
			return err
		}

		switch Classify(err) {
		case KindServer:
			var se *StatusError
			errors.As(err, &se)
			fields = append(fields,
				zap.Int("status", se.StatusCode),
				zap.String("detail", se.Detail),
			)
			logger.Error("api error", fields...)
		case KindNetwork:
			var ne *NetworkError
			errors.As(err, &ne)
			fields = append(fields, zap.Bool("timeout", ne.Timeout()), zap.Error(err))
			logger.Error("network error", fields...)
		default:
			fields = append(fields, zap.Error(err))
			logger.Error("request error", fields...)
		}
		return err
	}
}
