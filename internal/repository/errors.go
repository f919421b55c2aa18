// Package repository contains the data access layer. This file defines the
// sentinel errors shared by the repositories so that the service and
// handler layers can map failure modes to HTTP statuses without string
// matching against driver errors.
package repository

import "errors"

// ErrMovieNotFound is returned when a movie cannot be found by id.
var ErrMovieNotFound = errors.New("movie not found")

// ErrUserNotFound is returned when a user cannot be found by id or email.
var ErrUserNotFound = errors.New("user not found")

// ErrEmailExists is returned when an insert or update would violate the
// unique index on users.email.
var ErrEmailExists = errors.New("email already exists")
