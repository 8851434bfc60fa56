package smsaero

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// loggingTransport logs every outgoing request at debug level with a
// correlation ID, the way a server-side request logger would, but on
// the client edge.
type loggingTransport struct {
	base http.RoundTripper
	log  *logrus.Logger
}

func newLoggingTransport(base http.RoundTripper, log *logrus.Logger) *loggingTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &loggingTransport{base: base, log: log}
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	id := uuid.NewString()
	start := time.Now()

	t.log.WithFields(logrus.Fields{
		"request_id": id,
		"method":     req.Method,
		"url":        req.URL.Redacted(),
	}).Debug("sending request")

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		t.log.WithFields(logrus.Fields{
			"request_id": id,
			"elapsed":    time.Since(start),
		}).WithError(err).Debug("request failed")
		return nil, err
	}

	t.log.WithFields(logrus.Fields{
		"request_id": id,
		"status":     resp.StatusCode,
		"elapsed":    time.Since(start),
	}).Debug("request completed")
	return resp, nil
}
