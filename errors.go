package smsaero

import (
	"encoding/json"
	"fmt"
)

// Error is the base error type for every failure reported by the
// SmsAero API. It carries the server's human-readable message and the
// raw response payload the message was extracted from.
type Error struct {
	Message string
	Payload json.RawMessage
}

func (e *Error) Error() string {
	return "smsaero: " + e.Message
}

// NoMoneyError is returned when the account has insufficient funds to
// perform the requested operation.
type NoMoneyError struct {
	Message string
	Payload json.RawMessage
}

func (e *NoMoneyError) Error() string {
	return "smsaero: " + e.Message
}

// ConnectionError is returned when every configured gateway failed at
// the transport level. It wraps the last transport error observed.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("smsaero: all gateways are unavailable: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// gatewayError marks a failure that should trigger failover to the
// next gateway instead of aborting the request.
type gatewayError struct {
	gate string
	err  error
}

func (e *gatewayError) Error() string {
	return fmt.Sprintf("gateway %s: %v", e.gate, e.err)
}

func (e *gatewayError) Unwrap() error {
	return e.err
}
