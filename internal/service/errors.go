// Package service implements the business rules of the API: movie CRUD
// with episode-id uniqueness, the external catalog sync, user management
// with email uniqueness and password hashing, and token issuance. Services
// receive their stores and clients through constructors; handlers translate
// the sentinel errors below into HTTP statuses.
package service

import "errors"

// ErrEpisodeIDExists is returned when a create or update would give two
// movies the same episode id.
var ErrEpisodeIDExists = errors.New("a movie with this episode id already exists")

// ErrPasswordMismatch is returned by Register when the confirmation
// password does not match.
var ErrPasswordMismatch = errors.New("password and confirmation do not match")

// ErrInvalidCredentials is returned by Login for an unknown email or a
// wrong password. The two cases are deliberately indistinguishable.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrSyncFailed wraps any failure of an external catalog sync run, whether
// the upstream fetch or a mid-run persistence error. There is no automatic
// retry; the next scheduled run is the only recovery.
var ErrSyncFailed = errors.New("failed to sync with star wars api")
