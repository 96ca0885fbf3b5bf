// Package client talks to the studynotes HTTP API.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface):
//     Register, Login, Logout, Ping, Upload, History and DownloadReport.
//  2. A concrete HTTP implementation (see HTTPClient) that keeps the session
//     cookie in a cookie jar for the lifetime of the process and maps error
//     responses to sentinel errors.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors that callers can match with
// errors.Is: ErrUnavailable, ErrNoData, and the shared common.ErrorUnauthorized,
// common.ErrorAlreadyExists and common.ErrorValidation. The server's message is
// kept in *APIError.
package client
