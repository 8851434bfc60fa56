package smsaero

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendBulk_ChunksRecipients(t *testing.T) {
	var (
		mu     sync.Mutex
		bodies []map[string]any
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		mu.Lock()
		bodies = append(bodies, body)
		mu.Unlock()
		_, _ = w.Write([]byte(`{"success": true, "data": {"id": 1}}`))
	}))
	t.Cleanup(srv.Close)
	c := newTestClient(t, srv.URL)

	phones := []int64{79031234501, 79031234502, 79031234503, 79031234504, 79031234505}
	results, err := c.SendBulk(context.Background(), phones, "test message", &BulkOptions{
		ChunkSize:  2,
		MaxWorkers: 2,
	})
	require.NoError(t, err)

	require.Len(t, results, 3)
	assert.Equal(t, []int64{79031234501, 79031234502}, results[0].Phones)
	assert.Equal(t, []int64{79031234505}, results[2].Phones)
	for _, r := range results {
		require.NoError(t, r.Err)
		require.NotNil(t, r.Message)
	}

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, bodies, 3)

	// Two-recipient chunks go out as "numbers", the final single
	// recipient as "number".
	var singles, plurals int
	for _, b := range bodies {
		if b["number"] != nil {
			singles++
		}
		if b["numbers"] != nil {
			plurals++
		}
	}
	assert.Equal(t, 1, singles)
	assert.Equal(t, 2, plurals)
}

func TestSendBulk_RespectsWorkerBound(t *testing.T) {
	var current, peak atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := current.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(30 * time.Millisecond)
		current.Add(-1)
		_, _ = w.Write([]byte(`{"success": true, "data": {"id": 1}}`))
	}))
	t.Cleanup(srv.Close)
	c := newTestClient(t, srv.URL)

	phones := make([]int64, 8)
	for i := range phones {
		phones[i] = 79031234500 + int64(i)
	}

	_, err := c.SendBulk(context.Background(), phones, "test message", &BulkOptions{
		ChunkSize:  1,
		MaxWorkers: 2,
	})
	require.NoError(t, err)
	assert.LessOrEqual(t, peak.Load(), int32(2), "no more than MaxWorkers requests may run at once")
}

func TestSendBulk_CancelledContext(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, `{"success": true, "data": {"id": 1}}`)
	c := newTestClient(t, srv.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := c.SendBulk(ctx, []int64{79031234501, 79031234502}, "test message", &BulkOptions{ChunkSize: 1})
	require.Error(t, err)
	for _, r := range results {
		assert.Error(t, r.Err)
	}
}

func TestSendBulk_ValidatesInput(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, `{"success": true}`)
	c := newTestClient(t, srv.URL)

	_, err := c.SendBulk(context.Background(), nil, "test message", nil)
	assert.Error(t, err)

	_, err = c.SendBulk(context.Background(), []int64{79031234567}, "x", nil)
	assert.Error(t, err)
}
