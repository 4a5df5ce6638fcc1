// Package listparse normalizes list responses into a flat slice. The API
// returns either a bare JSON array or an envelope holding the list under
// "results" (paginated) or "data".
package listparse

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"sarb.backend/pkg/logger"
)

var ErrUnrecognizedShape = errors.New("unrecognized list response shape")

type Mode int

const (
	// Lenient turns an unknown shape into an empty list and logs a warning.
	Lenient Mode = iota
	// Strict reports an unknown shape as ErrUnrecognizedShape.
	Strict
)

func (m Mode) String() string {
	if m == Strict {
		return "strict"
	}
	return "lenient"
}

// Result is one normalized response. Next is the envelope's "next" link, if
// the server paginated the list.
type Result[T any] struct {
	Items []T
	Next  string
}

var envelopeKeys = []string{"results", "data"}

// Parse normalizes raw. Items is never nil on success.
func Parse[T any](ctx context.Context, raw []byte, mode Mode) (Result[T], error) {
	res, err := parse[T](raw)
	if err == nil {
		return res, nil
	}
	if mode == Strict {
		return Result[T]{}, err
	}
	logger.Warn(ctx, "Ignoring list response with unexpected shape", zap.Error(err), zap.Int("bytes", len(raw)))
	return Result[T]{Items: []T{}}, nil
}

func parse[T any](raw []byte) (Result[T], error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return Result[T]{}, fmt.Errorf("%w: empty body", ErrUnrecognizedShape)
	}

	switch raw[0] {
	case '[':
		items, err := decodeList[T](raw)
		return Result[T]{Items: items}, err
	case '{':
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(raw, &envelope); err != nil {
			return Result[T]{}, fmt.Errorf("%w: %v", ErrUnrecognizedShape, err)
		}
		for _, key := range envelopeKeys {
			list, ok := envelope[key]
			if !ok || !isArray(list) {
				continue
			}
			items, err := decodeList[T](list)
			if err != nil {
				return Result[T]{}, err
			}
			var next string
			_ = json.Unmarshal(envelope["next"], &next)
			return Result[T]{Items: items, Next: next}, nil
		}
		return Result[T]{}, fmt.Errorf("%w: object without a results or data list", ErrUnrecognizedShape)
	default:
		return Result[T]{}, fmt.Errorf("%w: expected an array or object", ErrUnrecognizedShape)
	}
}

func isArray(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '['
}

func decodeList[T any](raw []byte) ([]T, error) {
	items := []T{}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnrecognizedShape, err)
	}
	return items, nil
}
