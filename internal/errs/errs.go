// Package errs defines the typed errors exchanged between services.
//
// Every error carries the entity it is about ("follow", "post", ...) and a
// Kind. Handlers translate a peer's kinds into their own entity where the
// contract requires it and let everything else through unchanged.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies an error independently of the entity it concerns.
type Kind uint8

const (
	Internal Kind = iota
	NotFound
	AlreadyExists
	InvalidAttributes
	NotAuthorized
	InvalidCredentials
	Connectivity
)

var kindNames = map[Kind]string{
	Internal:           "internal",
	NotFound:           "not_found",
	AlreadyExists:      "already_exists",
	InvalidAttributes:  "invalid_attributes",
	NotAuthorized:      "not_authorized",
	InvalidCredentials: "invalid_credentials",
	Connectivity:       "connectivity",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "internal"
}

// ParseKind is the inverse of Kind.String. Unknown names map to Internal.
func ParseKind(name string) Kind {
	for k, n := range kindNames {
		if n == name {
			return k
		}
	}
	return Internal
}

// Error is an entity-scoped error of a given Kind.
type Error struct {
	Entity string
	Kind   Kind
	Err    error
}

// New creates an error without an underlying cause.
func New(entity string, kind Kind) *Error {
	return &Error{Entity: entity, Kind: kind}
}

// Wrap creates an error that records err as its cause.
func Wrap(entity string, kind Kind, err error) *Error {
	return &Error{Entity: entity, Kind: kind, Err: err}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Entity, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Entity, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error with the same entity and kind, so
// sentinels match wrapped and rebuilt instances alike.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Entity == e.Entity && t.Kind == e.Kind
}

// KindOf returns the kind of the first *Error in err's chain, or Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// EntityOf returns the entity of the first *Error in err's chain.
func EntityOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Entity
	}
	return ""
}

// IsKind reports whether err carries the given kind, whatever its entity.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// Unreachable reports a failed connection to a peer service.
func Unreachable(service string, err error) *Error {
	return Wrap(service, Connectivity, err)
}

var (
	UniquepairNotFound          = New("uniquepair", NotFound)
	UniquepairAlreadyExists     = New("uniquepair", AlreadyExists)
	UniquepairInvalidAttributes = New("uniquepair", InvalidAttributes)

	FollowNotFound      = New("follow", NotFound)
	FollowAlreadyExists = New("follow", AlreadyExists)
	FollowNotAuthorized = New("follow", NotAuthorized)

	LikeNotFound      = New("like", NotFound)
	LikeAlreadyExists = New("like", AlreadyExists)
	LikeNotAuthorized = New("like", NotAuthorized)

	PostNotFound          = New("post", NotFound)
	PostInvalidAttributes = New("post", InvalidAttributes)
	PostNotAuthorized     = New("post", NotAuthorized)

	AccountNotFound           = New("account", NotFound)
	AccountAlreadyExists      = New("account", AlreadyExists)
	AccountInvalidAttributes  = New("account", InvalidAttributes)
	AccountNotAuthorized      = New("account", NotAuthorized)
	AccountInvalidCredentials = New("account", InvalidCredentials)
)
