// Package jq applies jq filters to rendered template output.
package jq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/itchyny/gojq"

	pkgerrors "github.com/arenner/weft/pkg/errors"
)

const (
	// DefaultTimeout bounds the execution time for a single filter (1 second)
	DefaultTimeout = 1 * time.Second

	// DefaultMaxInputSize is the maximum input size for a filter (10MB)
	DefaultMaxInputSize = 10 * 1024 * 1024
)

// Executor evaluates jq filters with timeout and input size limits.
type Executor struct {
	timeout      time.Duration
	maxInputSize int64
}

// NewExecutor creates an executor. Zero values select the defaults.
func NewExecutor(timeout time.Duration, maxInputSize int64) *Executor {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	if maxInputSize == 0 {
		maxInputSize = DefaultMaxInputSize
	}

	return &Executor{
		timeout:      timeout,
		maxInputSize: maxInputSize,
	}
}

// Execute runs a jq filter against the given data. An empty filter returns
// the data unchanged. A filter producing a single value returns that value;
// multiple values come back as an array.
func (e *Executor) Execute(ctx context.Context, filter string, data any) (any, error) {
	if filter == "" {
		return data, nil
	}

	if err := e.validateInputSize(data); err != nil {
		return nil, err
	}

	query, err := gojq.Parse(filter)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "parse error")
	}
	code, err := gojq.Compile(query)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "compile error")
	}

	execCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	var results []any
	iter := code.RunWithContext(execCtx, data)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := v.(error); isErr {
			if execCtx.Err() != nil {
				return nil, fmt.Errorf("filter timeout after %v", e.timeout)
			}
			return nil, err
		}
		results = append(results, v)
	}

	switch len(results) {
	case 0:
		return nil, nil
	case 1:
		return results[0], nil
	default:
		return results, nil
	}
}

// Validate compiles a jq filter without running it, catching syntax errors
// before any data is rendered.
func (e *Executor) Validate(filter string) error {
	if filter == "" {
		return nil
	}

	query, err := gojq.Parse(filter)
	if err != nil {
		return pkgerrors.Wrapf(err, "invalid jq filter %q", filter)
	}

	if _, err := gojq.Compile(query); err != nil {
		return pkgerrors.Wrap(err, "jq compilation failed")
	}

	return nil
}

func (e *Executor) validateInputSize(data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return pkgerrors.Wrap(err, "failed to marshal data")
	}

	if int64(len(jsonData)) > e.maxInputSize {
		return fmt.Errorf("data size (%d bytes) exceeds maximum (%d bytes)",
			len(jsonData), e.maxInputSize)
	}

	return nil
}
