package smsaero

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// envelope is the common response wrapper returned by every endpoint.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Result  string          `json:"result"`
	Reason  string          `json:"reason"`
}

// FlexInt decodes integers that some endpoints return as JSON strings
// (e.g. "totalCount": "138" next to "id": 12345).
type FlexInt int64

func (f *FlexInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("parse int %q: %w", s, err)
	}
	*f = FlexInt(n)
	return nil
}

// Cost decodes message costs, which the API returns either as a number
// (5.49) or as a string ("5.49") depending on the endpoint.
type Cost float64

func (c *Cost) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*c = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("parse cost %q: %w", s, err)
	}
	*c = Cost(v)
	return nil
}

// Message statuses as reported in the "status" field.
const (
	StatusQueued       = 0
	StatusDelivered    = 1
	StatusNotDelivered = 2
	StatusRejected     = 6
)

// Message describes a single SMS as returned by send, status and list
// endpoints.
type Message struct {
	ID           FlexInt `json:"id"`
	From         string  `json:"from"`
	Number       string  `json:"number"`
	Text         string  `json:"text"`
	Status       int     `json:"status"`
	ExtendStatus string  `json:"extendStatus"`
	Channel      string  `json:"channel"`
	Cost         Cost    `json:"cost"`
	DateCreate   int64   `json:"dateCreate"`
	DateSend     int64   `json:"dateSend"`
	DateAnswer   int64   `json:"dateAnswer,omitempty"`
}

// Balance is the account balance payload.
type Balance struct {
	Balance float64 `json:"balance"`
}

// BalanceAddResult confirms a balance top-up.
type BalanceAddResult struct {
	Sum float64 `json:"sum"`
}

// Card is a stored payment card.
type Card struct {
	ID     FlexInt `json:"id"`
	Number string  `json:"number"`
}

// Tariffs maps channel name to operator name to price.
type Tariffs map[string]map[string]string

// SignOperatorStatus is the moderation state of a signature for one
// mobile operator.
type SignOperatorStatus struct {
	Operator       FlexInt `json:"operator"`
	ExtendOperator string  `json:"extendOperator"`
	Status         int     `json:"status"`
	ExtendStatus   string  `json:"extendStatus"`
}

// Sign is a sender signature registered on the account.
type Sign struct {
	ID              FlexInt                       `json:"id"`
	Name            string                        `json:"name"`
	Status          int                           `json:"status"`
	ExtendStatus    string                        `json:"extendStatus"`
	StatusOperators map[string]SignOperatorStatus `json:"statusOperators,omitempty"`
}

// Group is a contact group.
type Group struct {
	ID            FlexInt `json:"id"`
	Name          string  `json:"name"`
	Count         FlexInt `json:"count"`
	CountContacts FlexInt `json:"countContacts"`
}

// GroupRef is the short group reference embedded in contact payloads.
type GroupRef struct {
	ID   FlexInt `json:"id"`
	Name string  `json:"name"`
}

// Contact is an address-book entry.
type Contact struct {
	ID              FlexInt    `json:"id"`
	Number          FlexInt    `json:"number"`
	Sex             string     `json:"sex"`
	LastName        string     `json:"lname"`
	FirstName       string     `json:"fname"`
	Surname         string     `json:"sname"`
	Param1          string     `json:"param1"`
	Param2          string     `json:"param2"`
	Param3          string     `json:"param3"`
	Operator        FlexInt    `json:"operator"`
	ExtendOperator  string     `json:"extendOperator"`
	Groups          []GroupRef `json:"groups,omitempty"`
	HLRStatus       int        `json:"hlrStatus,omitempty"`
	ExtendHLRStatus string     `json:"extendHlrStatus,omitempty"`
}

// BlacklistEntry is a blacklisted number.
type BlacklistEntry struct {
	ID        FlexInt `json:"id"`
	Number    string  `json:"number"`
	Sex       string  `json:"sex"`
	LastName  string  `json:"lname"`
	FirstName string  `json:"fname"`
	Surname   string  `json:"sname"`
}

// HLRResult is the outcome of a Home Location Register lookup.
type HLRResult struct {
	ID              FlexInt `json:"id"`
	Number          string  `json:"number"`
	HLRStatus       int     `json:"hlrStatus"`
	ExtendHLRStatus string  `json:"extendHlrStatus"`
}

// OperatorInfo identifies the mobile operator serving a number.
type OperatorInfo struct {
	Number         string  `json:"number"`
	Operator       FlexInt `json:"operator"`
	ExtendOperator string  `json:"extendOperator"`
}

// ViberMessage describes a Viber sending.
type ViberMessage struct {
	ID               FlexInt `json:"id"`
	Number           string  `json:"number"`
	Count            int     `json:"count"`
	Sign             string  `json:"sign"`
	Channel          string  `json:"channel"`
	Text             string  `json:"text"`
	Cost             Cost    `json:"cost"`
	Status           int     `json:"status"`
	ExtendStatus     string  `json:"extendStatus"`
	DateCreate       int64   `json:"dateCreate"`
	DateSend         int64   `json:"dateSend"`
	CountSend        int     `json:"countSend"`
	CountDelivered   int     `json:"countDelivered"`
	CountWrite       int     `json:"countWrite"`
	CountUndelivered int     `json:"countUndelivered"`
	CountError       int     `json:"countError"`
}

// ViberStatistic is a per-recipient delivery record for a Viber sending.
type ViberStatistic struct {
	Number       string `json:"number"`
	Status       int    `json:"status"`
	ExtendStatus string `json:"extendStatus"`
	DateSend     int64  `json:"dateSend"`
}

// Page is a decoded paginated payload. The API encodes list responses
// as an object keyed by item index ("0", "1", ...) with "links" and
// "totalCount" entries mixed in alongside.
type Page[T any] struct {
	Items      []T
	Links      map[string]string
	TotalCount int64
}

func decodePage[T any](data json.RawMessage) (*Page[T], error) {
	page := &Page[T]{}
	if len(data) == 0 || string(data) == "null" {
		return page, nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode page: %w", err)
	}

	indexes := make([]int, 0, len(raw))
	for k := range raw {
		if i, err := strconv.Atoi(k); err == nil {
			indexes = append(indexes, i)
		}
	}
	sort.Ints(indexes)

	for _, i := range indexes {
		var item T
		if err := json.Unmarshal(raw[strconv.Itoa(i)], &item); err != nil {
			return nil, fmt.Errorf("decode page item %d: %w", i, err)
		}
		page.Items = append(page.Items, item)
	}

	if links, ok := raw["links"]; ok {
		if err := json.Unmarshal(links, &page.Links); err != nil {
			return nil, fmt.Errorf("decode page links: %w", err)
		}
	}
	if tc, ok := raw["totalCount"]; ok {
		var n FlexInt
		if err := json.Unmarshal(tc, &n); err != nil {
			return nil, fmt.Errorf("decode page totalCount: %w", err)
		}
		page.TotalCount = int64(n)
	}
	return page, nil
}

// Request payloads.

type sendRequest struct {
	Number      int64   `json:"number,omitempty"`
	Numbers     []int64 `json:"numbers,omitempty"`
	Text        string  `json:"text"`
	Sign        string  `json:"sign"`
	CallbackURL string  `json:"callbackUrl,omitempty"`
	DateSend    int64   `json:"dateSend,omitempty"`
}

type idRequest struct {
	ID int64 `json:"id"`
}

type numbersRequest struct {
	Number  int64   `json:"number,omitempty"`
	Numbers []int64 `json:"numbers,omitempty"`
}

type balanceAddRequest struct {
	Sum    float64 `json:"sum"`
	CardID int64   `json:"cardId"`
}

type groupAddRequest struct {
	Name string `json:"name"`
}

type contactRequest struct {
	Number    int64  `json:"number"`
	GroupID   int64  `json:"groupId,omitempty"`
	Birthday  string `json:"birthday,omitempty"`
	Sex       string `json:"sex,omitempty"`
	Operator  string `json:"operator,omitempty"`
	LastName  string `json:"lname,omitempty"`
	FirstName string `json:"fname,omitempty"`
	Surname   string `json:"sname,omitempty"`
	Param1    string `json:"param1,omitempty"`
	Param2    string `json:"param2,omitempty"`
	Param3    string `json:"param3,omitempty"`
}

type viberSendRequest struct {
	Number      int64   `json:"number,omitempty"`
	Numbers     []int64 `json:"numbers,omitempty"`
	GroupID     int64   `json:"groupId,omitempty"`
	Sign        string  `json:"sign"`
	Channel     string  `json:"channel"`
	Text        string  `json:"text"`
	ImageSource string  `json:"imageSource,omitempty"`
	TextButton  string  `json:"textButton,omitempty"`
	LinkButton  string  `json:"linkButton,omitempty"`
	DateSend    string  `json:"dateSend,omitempty"`
	SignSMS     string  `json:"signSms,omitempty"`
	ChannelSMS  string  `json:"channelSms,omitempty"`
	TextSMS     string  `json:"textSms,omitempty"`
	PriceSMS    int     `json:"priceSms,omitempty"`
}

type viberStatisticsRequest struct {
	SendingID int64 `json:"sendingId"`
}

// splitNums fills the single/plural recipient fields the way the API
// expects: one recipient goes into "number", several into "numbers".
func splitNums(phones []int64) (number int64, numbers []int64) {
	if len(phones) == 1 {
		return phones[0], nil
	}
	return 0, phones
}
