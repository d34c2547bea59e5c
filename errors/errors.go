/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Common sentinel errors
var (
	// ErrConfiguration is returned when CLI arguments or configuration values are missing or invalid
	ErrConfiguration = errors.New("invalid configuration")

	// ErrStoreUnavailable is returned when a session to the target store cannot be opened
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrWrite is returned when a populate write fails
	ErrWrite = errors.New("write failed")

	// ErrRead is returned when an index scan or a data fetch fails
	ErrRead = errors.New("read failed")

	// ErrSessionsFailed is returned when at least one load session failed
	ErrSessionsFailed = errors.New("load sessions failed")
)

// ConfigurationError represents a missing or invalid parameter
type ConfigurationError struct {
	Field   string
	Message string
}

func (e *ConfigurationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid configuration for %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid configuration: %s", e.Message)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// StoreUnavailableError represents a failure to open a session against the store
type StoreUnavailableError struct {
	Backend string
	Hosts   []string
	Err     error
}

func (e *StoreUnavailableError) Error() string {
	if len(e.Hosts) > 0 {
		return fmt.Sprintf("%s store at %s unavailable: %v", e.Backend, strings.Join(e.Hosts, ","), e.Err)
	}
	return fmt.Sprintf("%s store unavailable: %v", e.Backend, e.Err)
}

func (e *StoreUnavailableError) Is(target error) bool {
	return target == ErrStoreUnavailable
}

func (e *StoreUnavailableError) Unwrap() error {
	return e.Err
}

// WriteError represents a failed populate write. Row is the populate iteration
// that failed, or -1 for the index write.
type WriteError struct {
	Collection string
	RowKey     string
	Row        int
	Err        error
}

func (e *WriteError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("write to %s[%s] failed: %v", e.Collection, e.RowKey, e.Err)
	}
	return fmt.Sprintf("write of row %d to %s[%s] failed: %v", e.Row, e.Collection, e.RowKey, e.Err)
}

func (e *WriteError) Is(target error) bool {
	return target == ErrWrite
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// ReadError represents a failed bounded range read
type ReadError struct {
	Collection string
	RowKey     string
	Err        error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read of %s[%s] failed: %v", e.Collection, e.RowKey, e.Err)
}

func (e *ReadError) Is(target error) bool {
	return target == ErrRead
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// SessionsFailedError is returned by a load run after every session has been
// awaited and at least one of them failed. First is the failure of the
// lowest-numbered failed session.
type SessionsFailedError struct {
	Failed int
	Total  int
	First  error
}

func (e *SessionsFailedError) Error() string {
	return fmt.Sprintf("%d of %d sessions failed, first failure: %v", e.Failed, e.Total, e.First)
}

func (e *SessionsFailedError) Is(target error) bool {
	return target == ErrSessionsFailed
}

func (e *SessionsFailedError) Unwrap() error {
	return e.First
}

// Helper functions for creating errors

// NewConfigurationError creates a new ConfigurationError
func NewConfigurationError(field, message string) error {
	return &ConfigurationError{Field: field, Message: message}
}

// NewStoreUnavailableError creates a new StoreUnavailableError
func NewStoreUnavailableError(backend string, hosts []string, err error) error {
	return &StoreUnavailableError{Backend: backend, Hosts: hosts, Err: err}
}

// NewWriteError creates a new WriteError
func NewWriteError(collection, rowKey string, row int, err error) error {
	return &WriteError{Collection: collection, RowKey: rowKey, Row: row, Err: err}
}

// NewReadError creates a new ReadError
func NewReadError(collection, rowKey string, err error) error {
	return &ReadError{Collection: collection, RowKey: rowKey, Err: err}
}

// NewSessionsFailedError creates a new SessionsFailedError
func NewSessionsFailedError(failed, total int, first error) error {
	return &SessionsFailedError{Failed: failed, Total: total, First: first}
}

// IsConfigurationError checks if an error is a configuration error
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// IsStoreUnavailable checks if an error is a store unavailable error
func IsStoreUnavailable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable)
}

// IsWriteError checks if an error is a populate write error
func IsWriteError(err error) bool {
	return errors.Is(err, ErrWrite)
}

// IsReadError checks if an error is a scan or fetch error
func IsReadError(err error) bool {
	return errors.Is(err, ErrRead)
}

// IsSessionsFailed checks if an error reports failed load sessions
func IsSessionsFailed(err error) bool {
	return errors.Is(err, ErrSessionsFailed)
}
