// Copyright 2025 The AVCF Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package avcf

import (
	"errors"
	"fmt"
)

// Kind categorizes an engine error for programmatic handling.
type Kind int

const (
	// KindUnknown indicates an unclassified engine error.
	KindUnknown Kind = iota

	// KindKey indicates a key management failure: key not found in the
	// keyring, or export/import failed.
	KindKey

	// KindCrypto indicates a mechanical hash/sign/verify failure.
	KindCrypto

	// KindContainer indicates a container failure: the external tool
	// reported an error, the format is unsupported, or the embedded tag
	// payload is malformed.
	KindContainer

	// KindValidation indicates malformed metadata fields.
	KindValidation
)

// String returns a human-readable name for the error kind.
func (k Kind) String() string {
	switch k {
	case KindKey:
		return "KeyError"
	case KindCrypto:
		return "CryptoError"
	case KindContainer:
		return "ContainerError"
	case KindValidation:
		return "ValidationError"
	default:
		return "EngineError"
	}
}

// Error is the single base type for all engine failures. "No AVCF block
// present" is never an Error; it is reported as the MISSING result status so
// callers can tell "nothing to verify" apart from "something malfunctioned".
type Error struct {
	// Kind categorizes the failure.
	Kind Kind
	// Op is the operation that failed, e.g. "sign" or "embed".
	Op string
	// Message is a human-readable description of what went wrong.
	Message string
	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s: %v", e.Kind, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Op, e.Message)
}

// Unwrap returns the underlying cause for error chain unwrapping.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewKeyError creates a key management error.
func NewKeyError(op, message string, err error) *Error {
	return &Error{Kind: KindKey, Op: op, Message: message, Err: err}
}

// NewCryptoError creates a cryptographic mechanism error.
func NewCryptoError(op, message string, err error) *Error {
	return &Error{Kind: KindCrypto, Op: op, Message: message, Err: err}
}

// NewContainerError creates a container adapter error.
func NewContainerError(op, message string, err error) *Error {
	return &Error{Kind: KindContainer, Op: op, Message: message, Err: err}
}

// NewValidationError creates a metadata validation error.
func NewValidationError(op, message string, err error) *Error {
	return &Error{Kind: KindValidation, Op: op, Message: message, Err: err}
}

// IsKind reports whether err is an engine Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// IsEngineError reports whether err is any engine Error.
func IsEngineError(err error) bool {
	var e *Error
	return errors.As(err, &e)
}
