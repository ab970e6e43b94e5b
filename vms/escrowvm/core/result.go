// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package core

import (
	"encoding/json"
	"errors"
)

// Code is a stable numeric error code. Component codes start at 100; the
// operation surface reserves the low codes.
type Code uint32

const (
	// CodeInvalidOperation reports an unknown operation, a wrong number of
	// arguments or an undecodable argument.
	CodeInvalidOperation Code = 1
	// CodeInternal reports a storage or codec fault.
	CodeInternal Code = 2

	// SurfaceComponent names the operation surface in failed results.
	SurfaceComponent = "escrow"
)

// Result is the outcome of a single operation. A successful result carries a
// value, a failed one carries exactly one code.
type Result struct {
	Success   bool
	Value     any
	Code      Code
	Component string
	Message   string
}

func Ok(value any) Result {
	return Result{
		Success: true,
		Value:   value,
	}
}

func Fail(component string, code Code, err error) Result {
	r := Result{
		Code:      code,
		Component: component,
	}
	if err != nil {
		r.Message = err.Error()
	}
	return r
}

// Err rebuilds an error from a failed result.
func (r Result) Err() error {
	if r.Success {
		return nil
	}
	return &ResultError{
		Code:      r.Code,
		Component: r.Component,
		Message:   r.Message,
	}
}

type successJSON struct {
	Success bool `json:"success"`
	Value   any  `json:"value"`
}

type failureJSON struct {
	Success   bool   `json:"success"`
	Code      Code   `json:"code"`
	Component string `json:"component"`
	Message   string `json:"message,omitempty"`
}

func (r Result) MarshalJSON() ([]byte, error) {
	if r.Success {
		return json.Marshal(successJSON{
			Success: true,
			Value:   r.Value,
		})
	}
	return json.Marshal(failureJSON{
		Code:      r.Code,
		Component: r.Component,
		Message:   r.Message,
	})
}

func (r *Result) UnmarshalJSON(b []byte) error {
	var raw struct {
		Success   bool            `json:"success"`
		Value     json.RawMessage `json:"value"`
		Code      Code            `json:"code"`
		Component string          `json:"component"`
		Message   string          `json:"message"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*r = Result{
		Success:   raw.Success,
		Code:      raw.Code,
		Component: raw.Component,
		Message:   raw.Message,
	}
	if len(raw.Value) > 0 {
		r.Value = raw.Value
	}
	return nil
}

// ResultError is a failed result in error form.
type ResultError struct {
	Code      Code
	Component string
	Message   string
}

func (e *ResultError) Error() string {
	return e.Component + ": " + e.Message
}

// CodeEntry binds a sentinel error to its code.
type CodeEntry struct {
	Err  error
	Code Code
}

// Coder maps a component's sentinel errors onto its stable codes.
type Coder struct {
	component string
	entries   []CodeEntry
}

// NewCoder builds a code table. Entries are matched in order with errors.Is.
func NewCoder(component string, entries ...CodeEntry) *Coder {
	return &Coder{
		component: component,
		entries:   entries,
	}
}

func (c *Coder) Component() string {
	return c.component
}

// Code returns the code registered for err, if any.
func (c *Coder) Code(err error) (Code, bool) {
	for _, e := range c.entries {
		if errors.Is(err, e.Err) {
			return e.Code, true
		}
	}
	return 0, false
}

// Resolve converts err into a failed result using the first coder that knows
// it. Unknown errors are internal faults and the second return is false.
func Resolve(err error, coders ...*Coder) (Result, bool) {
	for _, c := range coders {
		if code, ok := c.Code(err); ok {
			return Fail(c.component, code, err), true
		}
	}
	return Fail(SurfaceComponent, CodeInternal, err), false
}
