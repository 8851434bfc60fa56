package callback

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, h Handler) *httptest.Server {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	srv := httptest.NewServer(New("127.0.0.1:0", log, h).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func TestCallback_DecodesAndAcks(t *testing.T) {
	received := make(chan StatusCallback, 1)
	srv := newTestServer(t, func(cb StatusCallback) {
		received <- cb
	})

	body := `{"id": 12345, "number": "79031234567", "text": "hello", "status": 1, "extendStatus": "delivery", "dateSend": 1719139200}`
	resp, err := http.Post(srv.URL, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var ack struct {
		Success   bool   `json:"success"`
		Timestamp string `json:"timestamp"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ack))
	assert.True(t, ack.Success)
	assert.NotEmpty(t, ack.Timestamp)

	cb := <-received
	assert.Equal(t, int64(12345), cb.ID)
	assert.Equal(t, "79031234567", cb.Number)
	assert.Equal(t, 1, cb.Status)
	assert.Equal(t, "delivery", cb.ExtendStatus)
}

func TestCallback_RejectsBadPayload(t *testing.T) {
	srv := newTestServer(t, func(cb StatusCallback) {
		t.Error("handler must not run for an undecodable payload")
	})

	resp, err := http.Post(srv.URL, "application/json", strings.NewReader("not json"))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCallback_RejectsNonPost(t *testing.T) {
	srv := newTestServer(t, func(cb StatusCallback) {
		t.Error("handler must not run for a GET request")
	})

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestServer_Shutdown(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	srv := New("127.0.0.1:0", log, func(StatusCallback) {})

	done := make(chan error, 1)
	go func() { done <- srv.Start() }()

	require.NoError(t, srv.Shutdown(context.Background()))
	assert.ErrorIs(t, <-done, http.ErrServerClosed)
}
