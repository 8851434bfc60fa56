package smsaero

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitForStatus_ReturnsOnTerminalStatus(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status, extend := StatusQueued, "queue"
		if calls.Add(1) >= 3 {
			status, extend = StatusDelivered, "delivery"
		}
		fmt.Fprintf(w, `{"success": true, "data": {"id": 12345, "status": %d, "extendStatus": %q}}`, status, extend)
	}))
	t.Cleanup(srv.Close)
	c := newTestClient(t, srv.URL)

	msg, err := c.WaitForStatus(context.Background(), 12345, 10*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, StatusDelivered, msg.Status)
	assert.GreaterOrEqual(t, calls.Load(), int32(3))
}

func TestWaitForStatus_ImmediateWhenAlreadyTerminal(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fmt.Fprint(w, `{"success": true, "data": {"id": 12345, "status": 2, "extendStatus": "undelivery"}}`)
	}))
	t.Cleanup(srv.Close)
	c := newTestClient(t, srv.URL)

	msg, err := c.WaitForStatus(context.Background(), 12345, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, StatusNotDelivered, msg.Status)
	assert.Equal(t, int32(1), calls.Load())
}

func TestWaitForStatus_RejectedIsTerminal(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fmt.Fprintf(w, `{"success": true, "data": {"id": 12345, "status": %d, "extendStatus": "rejected"}}`, StatusRejected)
	}))
	t.Cleanup(srv.Close)
	c := newTestClient(t, srv.URL)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	msg, err := c.WaitForStatus(ctx, 12345, 10*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, msg.Status)
	assert.Equal(t, "rejected", msg.ExtendStatus)
	assert.Equal(t, int32(1), calls.Load())
}

func TestWaitForStatus_ContextCancel(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, `{"success": true, "data": {"id": 12345, "status": 0, "extendStatus": "queue"}}`)
	c := newTestClient(t, srv.URL)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.WaitForStatus(ctx, 12345, 10*time.Millisecond)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
