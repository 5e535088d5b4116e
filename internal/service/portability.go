package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/saadjs/fittrack/internal/docstore"
)

// SnapshotVersion is bumped when the snapshot layout changes.
const SnapshotVersion = 1

// userRoots lists every store root that holds per-user records.
var userRoots = []string{
	rootUsers,
	rootGoals,
	rootMeasurements,
	rootFood,
	rootExercise,
	rootWater,
	rootCustomFoods,
	rootCustomExercises,
}

// Snapshot is a portable copy of everything one user owns. Data is keyed by
// store root and holds the raw subtree stored under that root for the user.
type Snapshot struct {
	Version    int                        `json:"version"`
	User       string                     `json:"user"`
	ExportedAt string                     `json:"exported_at"`
	Data       map[string]json.RawMessage `json:"data"`
}

type ImportMode string

const (
	ImportModeFail    ImportMode = "fail"
	ImportModeSkip    ImportMode = "skip"
	ImportModeMerge   ImportMode = "merge"
	ImportModeReplace ImportMode = "replace"
)

// ParseImportMode accepts the mode names case-insensitively. Empty means
// merge.
func ParseImportMode(mode string) (ImportMode, error) {
	m := ImportMode(strings.ToLower(strings.TrimSpace(mode)))
	switch m {
	case "":
		return ImportModeMerge, nil
	case ImportModeFail, ImportModeSkip, ImportModeMerge, ImportModeReplace:
		return m, nil
	default:
		return "", invalid("mode", "must be one of: fail, skip, merge, replace")
	}
}

type ImportOptions struct {
	Mode   ImportMode
	DryRun bool
}

// ImportReport counts roots, not individual records.
type ImportReport struct {
	Written   int      `json:"written"`
	Merged    int      `json:"merged"`
	Skipped   int      `json:"skipped"`
	Conflicts int      `json:"conflicts"`
	Warnings  []string `json:"warnings,omitempty"`
}

// Export reads every user root. Roots with nothing stored are left out.
func (s *Service) Export(ctx context.Context, userID string) (Snapshot, error) {
	if err := validateUser(userID); err != nil {
		return Snapshot{}, err
	}
	snap := Snapshot{
		Version:    SnapshotVersion,
		User:       userID,
		ExportedAt: s.opts.Now().UTC().Format(time.RFC3339),
		Data:       map[string]json.RawMessage{},
	}
	for _, root := range userRoots {
		raw, err := s.store.Read(ctx, userPath(root, userID))
		if err != nil {
			return Snapshot{}, fmt.Errorf("export %s: %w", root, err)
		}
		if raw != nil {
			snap.Data[root] = raw
		}
	}
	return snap, nil
}

// Import writes a snapshot into userID's records, which need not match the
// user it was exported from. All sections are written in one store
// transaction.
func (s *Service) Import(ctx context.Context, userID string, snap Snapshot, opts ImportOptions) (ImportReport, error) {
	var report ImportReport
	if err := validateUser(userID); err != nil {
		return report, err
	}
	if snap.Version != SnapshotVersion {
		return report, invalid("version", "unsupported snapshot version %d", snap.Version)
	}
	mode, err := ParseImportMode(string(opts.Mode))
	if err != nil {
		return report, err
	}
	known := make(map[string]bool, len(userRoots))
	for _, root := range userRoots {
		known[root] = true
	}
	for root := range snap.Data {
		if !known[root] {
			report.Warnings = append(report.Warnings, fmt.Sprintf("ignored unknown section %q", root))
		}
	}

	// Plan every root before touching the store so a conflict in fail mode
	// leaves existing data alone.
	type step struct {
		path  string
		raw   json.RawMessage
		merge bool
	}
	var plan []step
	for _, root := range userRoots {
		raw, ok := snap.Data[root]
		if !ok || isEmptyJSON(raw) {
			continue
		}
		path := userPath(root, userID)
		existing := false
		if mode != ImportModeReplace {
			cur, err := s.store.Read(ctx, path)
			if err != nil {
				return report, fmt.Errorf("import %s: %w", root, err)
			}
			existing = cur != nil
		}
		switch {
		case !existing:
			report.Written++
			plan = append(plan, step{path: path, raw: raw})
		case mode == ImportModeFail:
			report.Conflicts++
		case mode == ImportModeSkip:
			report.Skipped++
		default:
			report.Merged++
			plan = append(plan, step{path: path, raw: raw, merge: true})
		}
	}
	if report.Conflicts > 0 {
		return report, invalid("mode", "fail: %d section(s) already have data for user %s", report.Conflicts, userID)
	}
	if opts.DryRun {
		return report, nil
	}

	var ops []docstore.Op
	if mode == ImportModeReplace {
		for _, root := range userRoots {
			ops = append(ops, docstore.DeleteOp(userPath(root, userID)))
		}
	}
	for _, st := range plan {
		if !st.merge {
			ops = append(ops, docstore.WriteOp(st.path, st.raw))
			continue
		}
		var children map[string]json.RawMessage
		if err := json.Unmarshal(st.raw, &children); err != nil {
			return report, invalid("data", "%s must be an object", st.path)
		}
		fields := make(map[string]any, len(children))
		for k, v := range children {
			fields[k] = v
		}
		ops = append(ops, docstore.PatchOp(st.path, fields))
	}
	// One transaction: a failed write leaves the user's data as it was.
	if err := s.store.Apply(ctx, ops...); err != nil {
		if errors.Is(err, docstore.ErrInvalidPath) {
			return report, invalid("data", "%v", err)
		}
		s.log.Error("import failed", logFields(userID, "", err)...)
		return report, fmt.Errorf("import snapshot: %w", err)
	}
	s.log.Info("snapshot imported", logFields(userID, "", nil)...)
	return report, nil
}

func isEmptyJSON(raw json.RawMessage) bool {
	v := strings.TrimSpace(string(raw))
	return v == "" || v == "null" || v == "{}"
}
