// Package smsaero is a client for the SmsAero HTTP API.
//
// A Client holds the account credentials and a lazily created HTTP
// session, and exposes one method per API operation. Failures surface
// as typed errors: *Error for API-level rejections, *NoMoneyError when
// the account balance is insufficient, and *ConnectionError when no
// gateway could be reached.
package smsaero

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultSignature is used for messages sent without an explicit
	// sender signature.
	DefaultSignature = "Sms Aero"

	// DefaultTimeout bounds a single gateway request when the caller's
	// context carries no deadline of its own.
	DefaultTimeout = 10 * time.Second

	userAgent = "SAGolangClient/1.0.0"
)

// defaultGates are tried in order until one answers.
func defaultGates() []string {
	return []string{
		"https://gate.smsaero.ru/v2/",
		"https://gate.smsaero.org/v2/",
		"https://gate.smsaero.net/v2/",
	}
}

// Client talks to the SmsAero API on behalf of one account.
type Client struct {
	email     string
	apiKey    string
	signature string
	timeout   time.Duration
	gates     []string
	testMode  atomic.Bool
	transport http.RoundTripper
	log       *logrus.Logger
	session   *session
}

// Option configures a Client at construction time.
type Option func(*Client)

// WithSignature overrides the default sender signature.
func WithSignature(sign string) Option {
	return func(c *Client) { c.signature = sign }
}

// WithTimeout sets the per-request timeout applied when the caller's
// context has no deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithGate replaces the built-in gateway list with a single gateway.
// Scheme defaults to https and a /v2/ path suffix is added if missing.
func WithGate(gate string) Option {
	return func(c *Client) { c.gates = []string{normalizeGate(gate)} }
}

// WithTestMode routes sms send/status/list calls to the test
// endpoints, which validate requests without delivering anything.
func WithTestMode() Option {
	return func(c *Client) { c.testMode.Store(true) }
}

// WithLogger installs the logger used for debug request logging. By
// default logging is discarded.
func WithLogger(log *logrus.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithTransport sets the base RoundTripper for the HTTP session.
// Mainly useful in tests.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) { c.transport = rt }
}

// New creates a Client for the given account email and API key.
func New(email, apiKey string, opts ...Option) (*Client, error) {
	c := &Client{
		email:     email,
		apiKey:    apiKey,
		signature: DefaultSignature,
		timeout:   DefaultTimeout,
		log:       discardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if email == "" {
		return nil, errors.New("email is required")
	}
	if err := validateAPIKey(apiKey); err != nil {
		return nil, err
	}
	if err := validateSignature(c.signature); err != nil {
		return nil, err
	}
	if c.timeout <= 0 {
		return nil, errors.New("timeout must be positive")
	}
	if len(c.gates) == 0 {
		c.gates = defaultGates()
	}

	c.session = newSession(func() *http.Client {
		return &http.Client{
			Transport: newLoggingTransport(c.transport, c.log),
		}
	})
	return c, nil
}

func discardLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// normalizeGate accepts "gate.example.com", "gate.example.com/v2" or a
// full URL and returns a gateway base URL ending in /v2/.
func normalizeGate(gate string) string {
	if !strings.Contains(gate, "://") {
		gate = "https://" + gate
	}
	gate = strings.TrimRight(gate, "/")
	if !strings.HasSuffix(gate, "/v2") {
		gate += "/v2"
	}
	return gate + "/"
}

// Gates returns the gateway base URLs the client will try, in order.
func (c *Client) Gates() []string {
	out := make([]string, len(c.gates))
	copy(out, c.gates)
	return out
}

// HTTPClient returns the underlying HTTP client, acquiring the session
// if it is not open yet.
func (c *Client) HTTPClient() *http.Client {
	return c.session.acquire()
}

// Close releases the HTTP session. It is idempotent; a request issued
// after Close transparently acquires a fresh session.
func (c *Client) Close() {
	c.session.close()
	c.log.Debug("session closed")
}

// SetTestMode toggles test mode at runtime.
func (c *Client) SetTestMode(enabled bool) {
	c.testMode.Store(enabled)
}

// TestMode reports whether test mode is active.
func (c *Client) TestMode() bool {
	return c.testMode.Load()
}

// smsSelector returns the selector for an sms operation, switched to
// its test counterpart when test mode is on.
func (c *Client) smsSelector(op string) string {
	if c.testMode.Load() {
		return "sms/test" + op
	}
	return "sms/" + op
}

// withTimeout wraps the context with the client timeout unless the
// caller already set a deadline.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}

// request performs one API call, trying each gateway in order. A
// transport failure or a non-JSON answer moves on to the next gateway;
// an API-level error aborts immediately. When every gateway fails the
// last transport error is wrapped in a *ConnectionError.
func (c *Client) request(ctx context.Context, selector string, payload any, page int) (json.RawMessage, error) {
	httpc := c.session.acquire()

	if payload == nil {
		payload = struct{}{}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request payload: %w", err)
	}

	var lastErr error
	for _, gate := range c.gates {
		data, err := c.post(ctx, httpc, gate, selector, body, page)
		if err != nil {
			var gerr *gatewayError
			if errors.As(err, &gerr) {
				c.log.WithField("gate", gate).WithError(gerr.err).Debug("gateway failed, trying next")
				lastErr = err
				if ctxErr := ctx.Err(); ctxErr != nil {
					return nil, &ConnectionError{Err: ctxErr}
				}
				continue
			}
			return nil, err
		}
		return data, nil
	}

	if lastErr == nil {
		lastErr = errors.New("no gateways configured")
	}
	return nil, &ConnectionError{Err: lastErr}
}

// post sends one JSON request to a single gateway and maps the
// response envelope to a typed outcome.
func (c *Client) post(ctx context.Context, httpc *http.Client, gate, selector string, body []byte, page int) (json.RawMessage, error) {
	rctx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	url := gate + selector
	if page > 0 {
		url += "?page=" + strconv.Itoa(page)
	}

	req, err := http.NewRequestWithContext(rctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.SetBasicAuth(c.email, c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := httpc.Do(req)
	if err != nil {
		return nil, &gatewayError{gate: gate, err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &gatewayError{gate: gate, err: err}
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		// A gateway answering with something other than JSON is
		// treated like an unreachable one.
		return nil, &gatewayError{gate: gate, err: fmt.Errorf("decode response: %w", err)}
	}
	return checkResponse(&env, raw)
}

// checkResponse extracts the data payload or maps the envelope's error
// markers to a typed error.
func checkResponse(env *envelope, raw []byte) (json.RawMessage, error) {
	switch {
	case env.Result == "no credits":
		return nil, &NoMoneyError{Message: env.Result, Payload: raw}
	case env.Result == "reject":
		return nil, &Error{Message: env.Reason, Payload: raw}
	case !env.Success:
		msg := env.Message
		if msg == "" {
			msg = "unknown error"
		}
		return nil, &Error{Message: msg, Payload: raw}
	}
	return env.Data, nil
}

// requestInto performs a request and decodes the data payload into out.
func (c *Client) requestInto(ctx context.Context, selector string, payload any, page int, out any) error {
	data, err := c.request(ctx, selector, payload, page)
	if err != nil {
		return err
	}
	if out == nil || len(data) == 0 || string(data) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s response: %w", selector, err)
	}
	return nil
}

func requestPage[T any](ctx context.Context, c *Client, selector string, payload any, page int) (*Page[T], error) {
	data, err := c.request(ctx, selector, payload, page)
	if err != nil {
		return nil, err
	}
	return decodePage[T](data)
}

// SendOptions carries the optional parameters of SendSMS.
type SendOptions struct {
	// Sign overrides the client's sender signature for this message.
	Sign string
	// DateToSend schedules the message instead of sending immediately.
	DateToSend time.Time
	// CallbackURL receives a POST whenever the message status changes.
	CallbackURL string
}

// Auth verifies the credentials. A nil error means the account is
// authorized.
func (c *Client) Auth(ctx context.Context) error {
	_, err := c.request(ctx, "auth", nil, 0)
	return err
}

// SendSMS sends a message to one or more recipients and returns the
// queued message as reported by the API.
func (c *Client) SendSMS(ctx context.Context, phones []int64, text string, opts *SendOptions) (*Message, error) {
	if err := validatePhones(phones); err != nil {
		return nil, err
	}
	if err := validateText(text); err != nil {
		return nil, err
	}
	if opts == nil {
		opts = &SendOptions{}
	}
	if err := validateCallbackURL(opts.CallbackURL); err != nil {
		return nil, err
	}
	sign := opts.Sign
	if sign == "" {
		sign = c.signature
	}

	req := sendRequest{
		Text:        text,
		Sign:        sign,
		CallbackURL: opts.CallbackURL,
	}
	req.Number, req.Numbers = splitNums(phones)
	if !opts.DateToSend.IsZero() {
		req.DateSend = opts.DateToSend.Unix()
	}

	var msg Message
	if err := c.requestInto(ctx, c.smsSelector("send"), req, 0, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// SMSStatus retrieves the current status of a sent message.
func (c *Client) SMSStatus(ctx context.Context, id int64) (*Message, error) {
	var msg Message
	if err := c.requestInto(ctx, c.smsSelector("status"), idRequest{ID: id}, 0, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// SMSListFilter narrows an SMSList query.
type SMSListFilter struct {
	Phones []int64
	Text   string
}

// SMSList returns a page of sent messages.
func (c *Client) SMSList(ctx context.Context, filter *SMSListFilter, page int) (*Page[Message], error) {
	if err := validatePage(page); err != nil {
		return nil, err
	}
	req := struct {
		Number  int64   `json:"number,omitempty"`
		Numbers []int64 `json:"numbers,omitempty"`
		Text    string  `json:"text,omitempty"`
	}{}
	if filter != nil {
		if len(filter.Phones) > 0 {
			if err := validatePhones(filter.Phones); err != nil {
				return nil, err
			}
			req.Number, req.Numbers = splitNums(filter.Phones)
		}
		req.Text = filter.Text
	}
	return requestPage[Message](ctx, c, c.smsSelector("list"), req, page)
}

// Balance returns the current account balance.
func (c *Client) Balance(ctx context.Context) (*Balance, error) {
	var b Balance
	if err := c.requestInto(ctx, "balance", nil, 0, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// BalanceAdd tops up the balance from a stored card.
func (c *Client) BalanceAdd(ctx context.Context, sum float64, cardID int64) (*BalanceAddResult, error) {
	var r BalanceAddResult
	if err := c.requestInto(ctx, "balance/add", balanceAddRequest{Sum: sum, CardID: cardID}, 0, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Cards lists the payment cards stored on the account.
func (c *Client) Cards(ctx context.Context) (*Page[Card], error) {
	return requestPage[Card](ctx, c, "cards", nil, 0)
}

// Tariffs returns the per-operator pricing for each channel.
func (c *Client) Tariffs(ctx context.Context) (Tariffs, error) {
	var t Tariffs
	if err := c.requestInto(ctx, "tariffs", nil, 0, &t); err != nil {
		return nil, err
	}
	return t, nil
}

// SignList returns a page of registered sender signatures.
func (c *Client) SignList(ctx context.Context, page int) (*Page[Sign], error) {
	if err := validatePage(page); err != nil {
		return nil, err
	}
	return requestPage[Sign](ctx, c, "sign/list", nil, page)
}

// GroupAdd creates a contact group.
func (c *Client) GroupAdd(ctx context.Context, name string) (*Group, error) {
	if name == "" {
		return nil, errors.New("group name cannot be empty")
	}
	var g Group
	if err := c.requestInto(ctx, "group/add", groupAddRequest{Name: name}, 0, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// GroupDelete removes a contact group.
func (c *Client) GroupDelete(ctx context.Context, id int64) error {
	_, err := c.request(ctx, "group/delete", idRequest{ID: id}, 0)
	return err
}

// GroupDeleteAll removes every contact group.
func (c *Client) GroupDeleteAll(ctx context.Context) error {
	_, err := c.request(ctx, "group/delete-all", nil, 0)
	return err
}

// GroupList returns a page of contact groups.
func (c *Client) GroupList(ctx context.Context, page int) (*Page[Group], error) {
	if err := validatePage(page); err != nil {
		return nil, err
	}
	return requestPage[Group](ctx, c, "group/list", nil, page)
}

// ContactParams carries the optional fields of ContactAdd.
type ContactParams struct {
	GroupID   int64
	Birthday  string
	Sex       string
	LastName  string
	FirstName string
	Surname   string
	Param1    string
	Param2    string
	Param3    string
}

// ContactAdd stores a contact on the account.
func (c *Client) ContactAdd(ctx context.Context, phone int64, params *ContactParams) (*Contact, error) {
	if err := validatePhones([]int64{phone}); err != nil {
		return nil, err
	}
	req := contactRequest{Number: phone}
	if params != nil {
		req.GroupID = params.GroupID
		req.Birthday = params.Birthday
		req.Sex = params.Sex
		req.LastName = params.LastName
		req.FirstName = params.FirstName
		req.Surname = params.Surname
		req.Param1 = params.Param1
		req.Param2 = params.Param2
		req.Param3 = params.Param3
	}
	var ct Contact
	if err := c.requestInto(ctx, "contact/add", req, 0, &ct); err != nil {
		return nil, err
	}
	return &ct, nil
}

// ContactDelete removes a contact.
func (c *Client) ContactDelete(ctx context.Context, id int64) error {
	_, err := c.request(ctx, "contact/delete", idRequest{ID: id}, 0)
	return err
}

// ContactDeleteAll removes every contact.
func (c *Client) ContactDeleteAll(ctx context.Context) error {
	_, err := c.request(ctx, "contact/delete-all", nil, 0)
	return err
}

// ContactFilter narrows a ContactList query.
type ContactFilter struct {
	Phone     int64
	GroupID   int64
	Birthday  string
	Sex       string
	Operator  string
	LastName  string
	FirstName string
	Surname   string
}

// ContactList returns a page of contacts.
func (c *Client) ContactList(ctx context.Context, filter *ContactFilter, page int) (*Page[Contact], error) {
	if err := validatePage(page); err != nil {
		return nil, err
	}
	req := contactRequest{}
	if filter != nil {
		req.Number = filter.Phone
		req.GroupID = filter.GroupID
		req.Birthday = filter.Birthday
		req.Sex = filter.Sex
		req.Operator = filter.Operator
		req.LastName = filter.LastName
		req.FirstName = filter.FirstName
		req.Surname = filter.Surname
	}
	return requestPage[Contact](ctx, c, "contact/list", req, page)
}

// BlacklistAdd puts one or more numbers on the blacklist.
func (c *Client) BlacklistAdd(ctx context.Context, phones []int64) (*BlacklistEntry, error) {
	if err := validatePhones(phones); err != nil {
		return nil, err
	}
	req := numbersRequest{}
	req.Number, req.Numbers = splitNums(phones)
	var e BlacklistEntry
	if err := c.requestInto(ctx, "blacklist/add", req, 0, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// BlacklistDelete removes an entry from the blacklist.
func (c *Client) BlacklistDelete(ctx context.Context, id int64) error {
	_, err := c.request(ctx, "blacklist/delete", idRequest{ID: id}, 0)
	return err
}

// BlacklistList returns a page of blacklisted numbers, optionally
// filtered by number.
func (c *Client) BlacklistList(ctx context.Context, phones []int64, page int) (*Page[BlacklistEntry], error) {
	if err := validatePage(page); err != nil {
		return nil, err
	}
	var payload any
	if len(phones) > 0 {
		if err := validatePhones(phones); err != nil {
			return nil, err
		}
		req := numbersRequest{}
		req.Number, req.Numbers = splitNums(phones)
		payload = req
	}
	return requestPage[BlacklistEntry](ctx, c, "blacklist/list", payload, page)
}

// HLRCheck starts a Home Location Register lookup for the numbers.
func (c *Client) HLRCheck(ctx context.Context, phones []int64) (*HLRResult, error) {
	if err := validatePhones(phones); err != nil {
		return nil, err
	}
	req := numbersRequest{}
	req.Number, req.Numbers = splitNums(phones)
	var r HLRResult
	if err := c.requestInto(ctx, "hlr/check", req, 0, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// HLRStatus retrieves the outcome of a previously started HLR lookup.
func (c *Client) HLRStatus(ctx context.Context, id int64) (*HLRResult, error) {
	var r HLRResult
	if err := c.requestInto(ctx, "hlr/status", idRequest{ID: id}, 0, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// NumberOperator identifies the mobile operator serving the numbers.
func (c *Client) NumberOperator(ctx context.Context, phones []int64) (*OperatorInfo, error) {
	if err := validatePhones(phones); err != nil {
		return nil, err
	}
	req := numbersRequest{}
	req.Number, req.Numbers = splitNums(phones)
	var info OperatorInfo
	if err := c.requestInto(ctx, "number/operator", req, 0, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// ViberSendParams describes a Viber sending. Either Phones or GroupID
// must be set.
type ViberSendParams struct {
	Sign        string
	Channel     string
	Text        string
	Phones      []int64
	GroupID     int64
	ImageSource string
	TextButton  string
	LinkButton  string
	DateSend    string
	SignSMS     string
	ChannelSMS  string
	TextSMS     string
	PriceSMS    int
}

// ViberSend sends a Viber message.
func (c *Client) ViberSend(ctx context.Context, params ViberSendParams) (*ViberMessage, error) {
	if params.Sign == "" || params.Channel == "" {
		return nil, errors.New("viber sign and channel are required")
	}
	if err := validateText(params.Text); err != nil {
		return nil, err
	}
	if len(params.Phones) == 0 && params.GroupID == 0 {
		return nil, errors.New("either phones or group id must be set")
	}

	req := viberSendRequest{
		GroupID:     params.GroupID,
		Sign:        params.Sign,
		Channel:     params.Channel,
		Text:        params.Text,
		ImageSource: params.ImageSource,
		TextButton:  params.TextButton,
		LinkButton:  params.LinkButton,
		DateSend:    params.DateSend,
		SignSMS:     params.SignSMS,
		ChannelSMS:  params.ChannelSMS,
		TextSMS:     params.TextSMS,
		PriceSMS:    params.PriceSMS,
	}
	if len(params.Phones) > 0 {
		if err := validatePhones(params.Phones); err != nil {
			return nil, err
		}
		req.Number, req.Numbers = splitNums(params.Phones)
	}

	var msg ViberMessage
	if err := c.requestInto(ctx, "viber/send", req, 0, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// ViberSignList returns the Viber sender signatures.
func (c *Client) ViberSignList(ctx context.Context) (*Page[Sign], error) {
	return requestPage[Sign](ctx, c, "viber/sign/list", nil, 0)
}

// ViberList returns a page of Viber sendings.
func (c *Client) ViberList(ctx context.Context, page int) (*Page[ViberMessage], error) {
	if err := validatePage(page); err != nil {
		return nil, err
	}
	return requestPage[ViberMessage](ctx, c, "viber/list", nil, page)
}

// ViberStatistics returns the per-recipient delivery records of a
// Viber sending.
func (c *Client) ViberStatistics(ctx context.Context, sendingID int64, page int) (*Page[ViberStatistic], error) {
	if err := validatePage(page); err != nil {
		return nil, err
	}
	return requestPage[ViberStatistic](ctx, c, "viber/statistic", viberStatisticsRequest{SendingID: sendingID}, page)
}
