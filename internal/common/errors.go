// Package common defines shared constants and sentinel errors used across
// the server, the HTTP layer and the CLI client. Callers should use errors.Is
// to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// Session token errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Document ingestion errors.
	ErrNoFile              = errors.New("no file part")
	ErrEmptyFilename       = errors.New("no selected file")
	ErrUnsupportedFileType = errors.New("file type not allowed")
	ErrEmptyText           = errors.New("file contains no readable text")
	ErrUnreadableDocument  = errors.New("error processing file")
)
