// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package lms

import (
	"errors"
	"fmt"
)

// TransportError is a network, timeout, HTTP or JSON syntax failure. It says
// nothing about the content of a response.
type TransportError struct {
	Caller string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("[%s] %v", e.Caller, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransport reports whether err stems from the transport rather than from
// the content of a response.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

type FieldMissingError struct {
	Field string
}

func (e *FieldMissingError) Error() string {
	return fmt.Sprintf("field %q does not exist", e.Field)
}

type FieldKind string

const (
	KindUint   FieldKind = "uint"
	KindFloat  FieldKind = "float"
	KindString FieldKind = "string"
	KindArray  FieldKind = "array"
	KindRecord FieldKind = "record"
)

type FieldTypeMismatchError struct {
	Field string
	Kind  FieldKind
}

func (e *FieldTypeMismatchError) Error() string {
	return fmt.Sprintf("field %q is not a %s", e.Field, e.Kind)
}

// IsTypeMismatch reports whether err is a FieldTypeMismatchError.
func IsTypeMismatch(err error) bool {
	var tm *FieldTypeMismatchError
	return errors.As(err, &tm)
}

// EnumDecodeError is returned for a value outside the server's documented set.
type EnumDecodeError struct {
	Field string
	Value string
}

func (e *EnumDecodeError) Error() string {
	return fmt.Sprintf("field %q has unknown value %q", e.Field, e.Value)
}
