package docstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Txn is a transaction over a flat, byte-ordered key space.
type Txn interface {
	Get(key string) ([]byte, bool, error)
	Put(key string, value []byte) error
	Delete(key string) error
	// Scan visits keys starting with prefix in ascending byte order.
	Scan(prefix string, fn func(key string, value []byte) error) error
}

// Backend provides transactions over a flat key space.
type Backend interface {
	View(ctx context.Context, fn func(Txn) error) error
	Update(ctx context.Context, fn func(Txn) error) error
	Close() error
}

// Tree implements Store on top of a Backend. Documents are flattened so
// every primitive value is stored as its own key holding JSON text; objects
// exist only through their leaves. Empty objects and nulls are not stored,
// and arrays are rejected.
type Tree struct {
	backend Backend
	newID   func() (string, error)
}

// NewTree wraps a backend. Append ids are UUIDv7 strings.
func NewTree(b Backend) *Tree {
	return &Tree{backend: b, newID: newV7}
}

func newV7() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return id.String(), nil
}

func (t *Tree) Close() error { return t.backend.Close() }

func (t *Tree) Read(ctx context.Context, path string) (json.RawMessage, error) {
	segs, err := splitPath(path)
	if err != nil {
		return nil, err
	}
	key := Join(segs...)
	var out json.RawMessage
	err = t.backend.View(ctx, func(tx Txn) error {
		raw, ok, err := tx.Get(key)
		if err != nil {
			return err
		}
		if ok {
			out = json.RawMessage(raw)
			return nil
		}
		root, found, err := loadSubtree(tx, key)
		if err != nil || !found {
			return err
		}
		out, err = json.Marshal(root)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return out, nil
}

func (t *Tree) ReadOrdered(ctx context.Context, path, orderBy string, limitToLast int) ([]Child, error) {
	segs, err := splitPath(path)
	if err != nil {
		return nil, err
	}
	key := Join(segs...)
	var root map[string]any
	err = t.backend.View(ctx, func(tx Txn) error {
		var err error
		root, _, err = loadSubtree(tx, key)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("read ordered %s: %w", key, err)
	}

	children := make([]Child, 0, len(root))
	sortKeys := make(map[string]any, len(root))
	for k, v := range root {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode %s/%s: %w", key, k, err)
		}
		children = append(children, Child{Key: k, Value: raw})
		if orderBy != "" && orderBy != OrderByKey {
			if m, ok := v.(map[string]any); ok {
				sortKeys[k] = m[orderBy]
			}
		}
	}
	sort.SliceStable(children, func(i, j int) bool {
		a, b := children[i].Key, children[j].Key
		if orderBy != "" && orderBy != OrderByKey {
			if c := compareValues(sortKeys[a], sortKeys[b]); c != 0 {
				return c < 0
			}
		}
		return a < b
	})
	if limitToLast > 0 && len(children) > limitToLast {
		children = children[len(children)-limitToLast:]
	}
	return children, nil
}

func (t *Tree) Write(ctx context.Context, path string, value any) error {
	changes, err := prepare(WriteOp(path, value))
	if err != nil {
		return err
	}
	if err := t.commit(ctx, changes); err != nil {
		return fmt.Errorf("write %s: %w", Join(changes[0].segs...), err)
	}
	return nil
}

func (t *Tree) Patch(ctx context.Context, path string, fields map[string]any) error {
	changes, err := prepare(PatchOp(path, fields))
	if err != nil {
		return err
	}
	if err := t.commit(ctx, changes); err != nil {
		return fmt.Errorf("patch %s: %w", strings.Trim(path, "/"), err)
	}
	return nil
}

// Apply encodes every op up front, then runs them in order inside one
// backend transaction.
func (t *Tree) Apply(ctx context.Context, ops ...Op) error {
	var changes []change
	for _, op := range ops {
		c, err := prepare(op)
		if err != nil {
			return err
		}
		changes = append(changes, c...)
	}
	if err := t.commit(ctx, changes); err != nil {
		return fmt.Errorf("apply %d ops: %w", len(ops), err)
	}
	return nil
}

// change is one node replacement, or a removal when remove is set.
type change struct {
	segs   []string
	leaves map[string][]byte
	remove bool
}

func prepare(op Op) ([]change, error) {
	segs, err := splitPath(op.Path)
	if err != nil {
		return nil, err
	}
	switch op.Kind {
	case OpWrite:
		leaves, err := flatten(Join(segs...), op.Value)
		if err != nil {
			return nil, err
		}
		return []change{{segs: segs, leaves: leaves}}, nil
	case OpPatch:
		names := make([]string, 0, len(op.Fields))
		for name := range op.Fields {
			names = append(names, name)
		}
		sort.Strings(names)
		out := make([]change, 0, len(names))
		for _, name := range names {
			child, err := splitPath(name)
			if err != nil {
				return nil, err
			}
			full := append(append([]string{}, segs...), child...)
			leaves, err := flatten(Join(full...), op.Fields[name])
			if err != nil {
				return nil, err
			}
			out = append(out, change{segs: full, leaves: leaves})
		}
		return out, nil
	case OpDelete:
		return []change{{segs: segs, remove: true}}, nil
	default:
		return nil, fmt.Errorf("unknown op kind %d", op.Kind)
	}
}

func (t *Tree) commit(ctx context.Context, changes []change) error {
	if len(changes) == 0 {
		return nil
	}
	return t.backend.Update(ctx, func(tx Txn) error {
		for _, c := range changes {
			if c.remove {
				if err := deleteSubtree(tx, Join(c.segs...)); err != nil {
					return err
				}
				continue
			}
			if err := replace(tx, c.segs, c.leaves); err != nil {
				return err
			}
		}
		return nil
	})
}

func (t *Tree) Append(ctx context.Context, path string, value any) (string, error) {
	if _, err := splitPath(path); err != nil {
		return "", err
	}
	id, err := t.newID()
	if err != nil {
		return "", err
	}
	if err := t.Write(ctx, Join(strings.Trim(path, "/"), id), value); err != nil {
		return "", err
	}
	return id, nil
}

func (t *Tree) Delete(ctx context.Context, path string) error {
	changes, err := prepare(DeleteOp(path))
	if err != nil {
		return err
	}
	if err := t.commit(ctx, changes); err != nil {
		return fmt.Errorf("delete %s: %w", Join(changes[0].segs...), err)
	}
	return nil
}

// replace clears the node at segs, any primitive stored at one of its
// ancestors, and stores leaves.
func replace(tx Txn, segs []string, leaves map[string][]byte) error {
	for i := 1; i < len(segs); i++ {
		if err := tx.Delete(Join(segs[:i]...)); err != nil {
			return err
		}
	}
	if err := deleteSubtree(tx, Join(segs...)); err != nil {
		return err
	}
	keys := make([]string, 0, len(leaves))
	for k := range leaves {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := tx.Put(k, leaves[k]); err != nil {
			return err
		}
	}
	return nil
}

func deleteSubtree(tx Txn, key string) error {
	if err := tx.Delete(key); err != nil {
		return err
	}
	var doomed []string
	err := tx.Scan(key+"/", func(k string, _ []byte) error {
		doomed = append(doomed, k)
		return nil
	})
	if err != nil {
		return err
	}
	for _, k := range doomed {
		if err := tx.Delete(k); err != nil {
			return err
		}
	}
	return nil
}

// loadSubtree reassembles everything stored below key.
func loadSubtree(tx Txn, key string) (map[string]any, bool, error) {
	prefix := key + "/"
	root := map[string]any{}
	found := false
	err := tx.Scan(prefix, func(k string, raw []byte) error {
		var v any
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("decode leaf %s: %w", k, err)
		}
		insert(root, strings.Split(strings.TrimPrefix(k, prefix), "/"), v)
		found = true
		return nil
	})
	return root, found, err
}

func insert(node map[string]any, segs []string, v any) {
	for _, s := range segs[:len(segs)-1] {
		next, ok := node[s].(map[string]any)
		if !ok {
			next = map[string]any{}
			node[s] = next
		}
		node = next
	}
	node[segs[len(segs)-1]] = v
}

// flatten encodes value and returns its primitive leaves keyed by full path.
func flatten(key string, value any) (map[string][]byte, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", key, err)
	}
	var generic any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&generic); err != nil {
		return nil, fmt.Errorf("encode %s: %w", key, err)
	}
	out := map[string][]byte{}
	if err := walk(key, generic, out); err != nil {
		return nil, err
	}
	return out, nil
}

func walk(key string, v any, out map[string][]byte) error {
	switch t := v.(type) {
	case nil:
		return nil
	case map[string]any:
		for k, child := range t {
			if err := validSegment(k); err != nil {
				return fmt.Errorf("%w %q: %v", ErrInvalidPath, key, err)
			}
			if err := walk(key+"/"+k, child, out); err != nil {
				return err
			}
		}
		return nil
	case []any:
		// Arrays would come back as objects keyed "0", "1", ...
		return fmt.Errorf("%w %q: arrays cannot be stored", ErrInvalidPath, key)
	default:
		raw, err := json.Marshal(t)
		if err != nil {
			return fmt.Errorf("encode %s: %w", key, err)
		}
		out[key] = raw
		return nil
	}
}

// compareValues orders child fields: missing, false, true, numbers, strings,
// then objects.
func compareValues(a, b any) int {
	ra, rb := rank(a), rank(b)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	switch av := a.(type) {
	case json.Number:
		x, _ := av.Float64()
		y, _ := b.(json.Number).Float64()
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
	case string:
		return strings.Compare(av, b.(string))
	}
	return 0
}

func rank(v any) int {
	switch t := v.(type) {
	case nil:
		return 0
	case bool:
		if t {
			return 2
		}
		return 1
	case json.Number:
		return 3
	case string:
		return 4
	default:
		return 5
	}
}
