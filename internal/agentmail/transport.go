package agentmail

import (
	"io"
	"log"
	"net/http"
	"time"
)

// LoggingTransport logs method, URL, status and latency of every request.
// Request bodies of POST calls are logged as well; the Authorization
// header never is.
type LoggingTransport struct {
	Base   http.RoundTripper
	Logger *log.Logger
}

// NewDebugHTTPClient returns an *http.Client that logs through logger.
func NewDebugHTTPClient(logger *log.Logger) *http.Client {
	return &http.Client{Transport: &LoggingTransport{Logger: logger}}
}

func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	logger := t.Logger
	if logger == nil {
		logger = log.Default()
	}

	logger.Printf("-> %s %s", req.Method, req.URL.String())

	if req.Method == http.MethodPost && req.Body != nil && req.Body != http.NoBody {
		logBody(logger, req)
	}

	rt := t.Base
	if rt == nil {
		rt = http.DefaultTransport
	}
	resp, err := rt.RoundTrip(req)
	if err != nil {
		logger.Printf("<- error: %v (elapsed %v)", err, time.Since(start))
		return resp, err
	}

	logger.Printf("<- status: %d (elapsed %v)", resp.StatusCode, time.Since(start))
	return resp, nil
}

// logBody logs the request body read from a fresh copy, leaving the
// caller's request untouched.
func logBody(logger *log.Logger, req *http.Request) {
	if req.GetBody == nil {
		logger.Printf("request body: (not replayable)")
		return
	}
	body, err := req.GetBody()
	if err != nil {
		logger.Printf("request body: unavailable: %v", err)
		return
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		logger.Printf("request body: read failed: %v", err)
		return
	}
	logger.Printf("request body: %s", data)
}
