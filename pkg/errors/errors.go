// Package errors defines the error taxonomy shared by the scheduler, the cache
// and the HTTP layer.
//
//	┌──────────────────────┬────────────────────────────────────────────────┐
//	│ Error                │ Raised when                                    │
//	├──────────────────────┼────────────────────────────────────────────────┤
//	│ ConfigurationError   │ missing work, reserved property, bad limit     │
//	│ DuplicateNameError   │ job name (or worker id) registered twice       │
//	│ NotFoundError        │ unknown job name or worker id                  │
//	│ CacheIOError         │ any failure of the durable mirror              │
//	└──────────────────────┴────────────────────────────────────────────────┘
//
// Every type has a constructor and an IsX predicate which sees through
// wrapping, so callers can test errors returned from several layers down.
package errors

import (
	"errors"
	"fmt"
)

type ConfigurationError struct {
	msg string
}

func (e *ConfigurationError) Error() string {
	return e.msg
}

func NewConfigurationError(format string, args ...any) error {
	return &ConfigurationError{msg: fmt.Sprintf(format, args...)}
}

func IsConfigurationError(err error) bool {
	var e *ConfigurationError
	return errors.As(err, &e)
}

type DuplicateNameError struct {
	Kind string
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("%s with name `%s` already exists", e.Kind, e.Name)
}

func NewDuplicateJobError(name string) error {
	return &DuplicateNameError{Kind: "job", Name: name}
}

func NewDuplicateWorkerError(id string) error {
	return &DuplicateNameError{Kind: "worker", Name: id}
}

func IsDuplicateNameError(err error) bool {
	var e *DuplicateNameError
	return errors.As(err, &e)
}

type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s `%s` not found", e.Kind, e.ID)
}

func NewJobNotFoundError(name string) error {
	return &NotFoundError{Kind: "job", ID: name}
}

func NewWorkerNotFoundError(id string) error {
	return &NotFoundError{Kind: "worker", ID: id}
}

func NewKeyNotFoundError(key string) error {
	return &NotFoundError{Kind: "key", ID: key}
}

func IsNotFoundError(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

// CacheIOError wraps a failure of the durable mirror. Op names the cache
// operation that failed (e.g. "addWorker").
type CacheIOError struct {
	Op  string
	Err error
}

func (e *CacheIOError) Error() string {
	return fmt.Sprintf("cache %s: %v", e.Op, e.Err)
}

func (e *CacheIOError) Unwrap() error {
	return e.Err
}

func NewCacheIOError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &CacheIOError{Op: op, Err: err}
}

func IsCacheIOError(err error) bool {
	var e *CacheIOError
	return errors.As(err, &e)
}
