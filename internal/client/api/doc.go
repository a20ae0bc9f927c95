// Package api contains the client-side gateway for the ClinicLink backend.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the API interface) covering the
//     auth surface: Login, VerifyMFA, Register, Me, Logout, onboarding
//     completion, and credential-document upload helpers.
//  2. A concrete HTTP implementation (see HTTPClient) that is the single
//     choke point for backend calls: it injects the bearer token, attaches
//     JSON content headers, and translates error responses into a uniform
//     shape.
//
// # Error Handling
//
// Transport failures surface as common.ErrUnavailable. A 401 response
// clears the token store, fires the registered unauthorized callback, and
// surfaces common.ErrorUnauthorized; callers must not retry. Any other
// non-2xx response yields *Error carrying the HTTP status and, when the
// server supplies one, a field-level validation map.
package api
