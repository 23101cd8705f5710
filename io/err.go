package io

import (
	"errors"

	"github.com/ezrec/ls8/translate"
)

var f = translate.From

var (
	// Load errors
	ErrFile    = errors.New(f("file not found"))
	ErrLiteral = errors.New(f("invalid number"))
	ErrRead    = errors.New(f("read failed"))
)

// ErrFileNotFound reports an image file that could not be read.
type ErrFileNotFound struct {
	Name string
	Err  error
}

func (err *ErrFileNotFound) Error() string {
	return f("file not found: %v", err.Name)
}

func (err *ErrFileNotFound) Unwrap() []error {
	return []error{ErrFile, err.Err}
}

// ErrInvalidLiteral reports a line that is not a binary literal.
type ErrInvalidLiteral struct {
	LineNo int
	Text   string
}

func (err *ErrInvalidLiteral) Error() string {
	return f("invalid number: %v", err.Text)
}

func (err *ErrInvalidLiteral) Is(target error) bool {
	return target == ErrLiteral
}
