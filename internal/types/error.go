// error.go
//
// Feedback, rating link and analytics service for multi-tenant business dashboards
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of smart-reviewer.
// smart-reviewer is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// smart-reviewer is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with smart-reviewer.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package types

import (
	"errors"
	"fmt"
)

// Failure kinds surfaced by the data-access layer. Callers match them with errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
	ErrConstraint = errors.New("constraint violation")
	ErrAuth       = errors.New("invalid credentials")
	ErrNotFound   = errors.New("not found")
)

// DataError is the structured failure returned by store operations.
type DataError struct {
	Op      string // store operation, e.g. "owners.create"
	Kind    error  // one of the Err* kinds above, nil for an unclassified store failure
	Message string
	Cause   error
}

func (e *DataError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "store failure"
		if e.Kind != nil {
			msg = e.Kind.Error()
		}
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Op, msg)
}

// Unwrap exposes both the kind and the underlying cause to errors.Is / errors.As.
func (e *DataError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// NewDataError builds a DataError of the given kind.
func NewDataError(op string, kind error, message string, cause error) *DataError {
	return &DataError{Op: op, Kind: kind, Message: message, Cause: cause}
}

// PublicMessage returns the text that is safe to show to an API client.
// Auth failures always read the same, whatever the cause.
func PublicMessage(err error) string {
	var de *DataError
	switch {
	case errors.Is(err, ErrAuth):
		return "Invalid credentials"
	case errors.As(err, &de) && de.Kind != nil && de.Message != "":
		return de.Message
	case errors.Is(err, ErrValidation):
		return "Invalid input"
	case errors.Is(err, ErrConflict):
		return "Resource already exists"
	case errors.Is(err, ErrConstraint):
		return "Referenced resource does not exist"
	case errors.Is(err, ErrNotFound):
		return "Resource not found"
	}
	return "Internal server error"
}

// CustomError carries an HTTP status out of middleware into the app error handler.
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}
