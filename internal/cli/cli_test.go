package cli

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	smsaero "github.com/smsaero/smsaero-go"
)

const (
	testEmail  = "admin@smsaero.ru"
	testAPIKey = "test_api_key_lX8APMlgliHvkHk04i7"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	root := New(&out, &errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func creds(gate string) []string {
	return []string{"--email", testEmail, "--api_key", testAPIKey, "--gate", gate}
}

func newAPIServer(t *testing.T, envelope string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(envelope))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSend_Success(t *testing.T) {
	srv := newAPIServer(t, `{"success": true, "data": {"id": 12345, "extendStatus": "queue"}}`)

	args := append([]string{"send", "--phone", "79031234567", "--message", "hello world"}, creds(srv.URL)...)
	out, _, err := execute(t, args...)

	require.NoError(t, err)
	assert.Contains(t, out, `"id": 12345`)
	assert.Contains(t, out, `"extendStatus": "queue"`)
}

func TestSend_APIErrorSurfaces(t *testing.T) {
	srv := newAPIServer(t, `{"result": "reject", "reason": "test reason"}`)

	args := append([]string{"send", "--phone", "79031234567", "--message", "hello world"}, creds(srv.URL)...)
	out, _, err := execute(t, args...)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "test reason")
	assert.Empty(t, out)
}

func TestSend_NoMoneyIsTyped(t *testing.T) {
	srv := newAPIServer(t, `{"result": "no credits"}`)

	args := append([]string{"send", "--phone", "79031234567", "--message", "hello world"}, creds(srv.URL)...)
	_, _, err := execute(t, args...)

	var noMoney *smsaero.NoMoneyError
	require.True(t, errors.As(err, &noMoney))
}

func TestSend_BulkChunking(t *testing.T) {
	srv := newAPIServer(t, `{"success": true, "data": {"id": 1}}`)

	args := append([]string{
		"send",
		"--phone", "79031234501", "--phone", "79031234502", "--phone", "79031234503",
		"--message", "hello world",
		"--chunk-size", "2",
	}, creds(srv.URL)...)
	out, _, err := execute(t, args...)

	require.NoError(t, err)
	// Two chunks mean two results in the output array.
	assert.Contains(t, out, "Phones")
}

func TestSend_RequiresFlags(t *testing.T) {
	_, _, err := execute(t, "send")
	require.Error(t, err)
}

func TestBalance(t *testing.T) {
	srv := newAPIServer(t, `{"success": true, "data": {"balance": 337.03}}`)

	args := append([]string{"balance"}, creds(srv.URL)...)
	out, _, err := execute(t, args...)

	require.NoError(t, err)
	assert.Contains(t, out, "337.03")
}

func TestAuth(t *testing.T) {
	srv := newAPIServer(t, `{"success": true, "data": null}`)

	args := append([]string{"auth"}, creds(srv.URL)...)
	out, _, err := execute(t, args...)

	require.NoError(t, err)
	assert.Contains(t, out, `"authorized": true`)
}

func TestMissingCredentials(t *testing.T) {
	t.Setenv("SMSAERO_EMAIL", "")
	t.Setenv("SMSAERO_API_KEY", "")

	_, _, err := execute(t, "balance")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "credentials are required")
}

func TestGroupDelete(t *testing.T) {
	srv := newAPIServer(t, `{"success": true, "data": null}`)

	args := append([]string{"group", "delete", "--id", "12345"}, creds(srv.URL)...)
	out, _, err := execute(t, args...)

	require.NoError(t, err)
	assert.Contains(t, out, `"success": true`)
}

func TestStatus(t *testing.T) {
	srv := newAPIServer(t, `{"success": true, "data": {"id": 12345, "status": 1, "extendStatus": "delivery"}}`)

	args := append([]string{"status", "--id", "12345"}, creds(srv.URL)...)
	out, _, err := execute(t, args...)

	require.NoError(t, err)
	assert.Contains(t, out, `"delivery"`)
}
