// Package docstore is a hierarchical key-path document store. Values are
// JSON documents addressed by slash-separated paths such as
// "foodEntries/u1/2026-03-01/lunch". Writing a path replaces its whole
// subtree; reading a path returns the subtree reassembled.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidPath = errors.New("invalid path")

// Child is one direct child of a node.
type Child struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

// OrderByKey orders children by key in ReadOrdered.
const OrderByKey = "$key"

// Store is the document store used by the tracker service.
type Store interface {
	// Read returns the document at path, or nil when nothing is stored.
	Read(ctx context.Context, path string) (json.RawMessage, error)
	// ReadOrdered returns the children of path ordered by the named child
	// field (or by key), keeping only the last limitToLast entries when
	// limitToLast > 0.
	ReadOrdered(ctx context.Context, path, orderBy string, limitToLast int) ([]Child, error)
	// Write replaces the document at path.
	Write(ctx context.Context, path string, value any) error
	// Patch replaces only the named fields below path.
	Patch(ctx context.Context, path string, fields map[string]any) error
	// Append stores value under a new child id of path and returns the id.
	// Ids sort lexically in creation order.
	Append(ctx context.Context, path string, value any) (string, error)
	// Delete removes path and everything below it.
	Delete(ctx context.Context, path string) error
	// Apply runs ops in order as one transaction: either all of them take
	// effect or none does.
	Apply(ctx context.Context, ops ...Op) error
	Close() error
}

type OpKind int

const (
	OpWrite OpKind = iota
	OpPatch
	OpDelete
)

// Op is one mutation for Apply.
type Op struct {
	Kind   OpKind
	Path   string
	Value  any
	Fields map[string]any
}

func WriteOp(path string, value any) Op { return Op{Kind: OpWrite, Path: path, Value: value} }

func PatchOp(path string, fields map[string]any) Op {
	return Op{Kind: OpPatch, Path: path, Fields: fields}
}

func DeleteOp(path string) Op { return Op{Kind: OpDelete, Path: path} }

// Join builds a path from segments.
func Join(segments ...string) string {
	return strings.Join(segments, "/")
}

// splitPath validates path and returns its segments.
func splitPath(path string) ([]string, error) {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	segs := strings.Split(path, "/")
	for _, s := range segs {
		if err := validSegment(s); err != nil {
			return nil, fmt.Errorf("%w %q: %v", ErrInvalidPath, path, err)
		}
	}
	return segs, nil
}

func validSegment(s string) error {
	if s == "" {
		return errors.New("empty segment")
	}
	if strings.ContainsAny(s, ".#$[]\x00") {
		return fmt.Errorf("segment %q contains a reserved character", s)
	}
	return nil
}

// Get decodes the document at path into T. The bool is false when nothing
// is stored there.
func Get[T any](ctx context.Context, s Store, path string) (T, bool, error) {
	var out T
	raw, err := s.Read(ctx, path)
	if err != nil {
		return out, false, err
	}
	if raw == nil {
		return out, false, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, false, fmt.Errorf("decode %s: %w", path, err)
	}
	return out, true, nil
}

// Children decodes every child of path into a map keyed by child key.
func Children[T any](ctx context.Context, s Store, path string) (map[string]T, error) {
	out, _, err := Get[map[string]T](ctx, s, path)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = map[string]T{}
	}
	return out, nil
}

// Ordered decodes ReadOrdered results, preserving their order.
func Ordered[T any](ctx context.Context, s Store, path, orderBy string, limitToLast int) ([]Keyed[T], error) {
	children, err := s.ReadOrdered(ctx, path, orderBy, limitToLast)
	if err != nil {
		return nil, err
	}
	out := make([]Keyed[T], 0, len(children))
	for _, c := range children {
		var v T
		if err := json.Unmarshal(c.Value, &v); err != nil {
			return nil, fmt.Errorf("decode %s/%s: %w", path, c.Key, err)
		}
		out = append(out, Keyed[T]{Key: c.Key, Value: v})
	}
	return out, nil
}

// Keyed is a decoded child.
type Keyed[T any] struct {
	Key   string
	Value T
}
