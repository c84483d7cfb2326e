// Package rpc holds the JSON-RPC 2.0 wire types shared by servers and
// clients, and the client connection used to call a peer service.
package rpc

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/buzzblog/backend/internal/errs"
)

// Version is the only JSON-RPC version spoken.
const Version = "2.0"

// Request represents a JSON-RPC 2.0 request
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}

// Response represents a JSON-RPC 2.0 response
type Response struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *Error      `json:"error,omitempty"`
}

type rawResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *Error          `json:"error"`
}

// Error represents a JSON-RPC error
type Error struct {
	Code    int        `json:"code"`
	Message string     `json:"message"`
	Data    *ErrorData `json:"data,omitempty"`
}

// ErrorData identifies a typed service error on the wire.
type ErrorData struct {
	Entity string `json:"entity"`
	Kind   string `json:"kind"`
}

// Standard JSON-RPC error codes
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// Service error codes, one per errs.Kind
const (
	CodeServerError        = -32000
	CodeNotFound           = -32001
	CodeAlreadyExists      = -32002
	CodeInvalidAttributes  = -32003
	CodeNotAuthorized      = -32004
	CodeInvalidCredentials = -32005
	CodeConnectivity       = -32006
)

var kindCodes = map[errs.Kind]int{
	errs.Internal:           CodeServerError,
	errs.NotFound:           CodeNotFound,
	errs.AlreadyExists:      CodeAlreadyExists,
	errs.InvalidAttributes:  CodeInvalidAttributes,
	errs.NotAuthorized:      CodeNotAuthorized,
	errs.InvalidCredentials: CodeInvalidCredentials,
	errs.Connectivity:       CodeConnectivity,
}

// CodeOf returns the wire code for an error kind.
func CodeOf(kind errs.Kind) int {
	if code, ok := kindCodes[kind]; ok {
		return code
	}
	return CodeServerError
}

// NewError converts a handler error into its wire form. Untyped errors are
// reported as internal errors of entity.
func NewError(entity string, err error) *Error {
	var e *errs.Error
	if !errors.As(err, &e) {
		e = errs.Wrap(entity, errs.Internal, err)
	}
	return &Error{
		Code:    CodeOf(e.Kind),
		Message: err.Error(),
		Data:    &ErrorData{Entity: e.Entity, Kind: e.Kind.String()},
	}
}

// Err rebuilds the typed error carried by e.
func (e *Error) Err() error {
	if e.Data == nil {
		return fmt.Errorf("rpc error %d: %s", e.Code, e.Message)
	}
	kind := errs.ParseKind(e.Data.Kind)
	if kind == errs.Internal {
		return errs.Wrap(e.Data.Entity, kind, errors.New(e.Message))
	}
	return errs.New(e.Data.Entity, kind)
}

func (e *Error) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}
