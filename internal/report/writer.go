// Package report persists run artifacts: per-kind snapshots of the
// production collections and the outcome ledger of a sync run. Artifacts
// land as pretty-printed JSON under a single output directory so runs
// can be inspected and diffed afterwards.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/closeops/schemasync/pkg/errors"
	"github.com/closeops/schemasync/pkg/reconcile"
	"github.com/closeops/schemasync/pkg/schema"
)

// ResultsFile is the filename of the sync outcome ledger.
const ResultsFile = "sync_results.json"

// Writer persists artifacts under a base directory.
type Writer struct {
	dir string
}

// NewWriter returns a Writer rooted at dir. The directory is created on
// first write.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Dir returns the base directory artifacts are written to.
func (w *Writer) Dir() string {
	return w.dir
}

// SnapshotPath returns the snapshot filename for a kind, e.g.
// data/lead_custom_field_prod.json.
func (w *Writer) SnapshotPath(kind schema.Kind) string {
	return filepath.Join(w.dir, fmt.Sprintf("%s_prod.json", kind))
}

// WriteSnapshot persists one production collection as fetched.
func (w *Writer) WriteSnapshot(kind schema.Kind, collection any) error {
	return w.writeJSON(w.SnapshotPath(kind), collection)
}

// WriteResult persists the outcome ledger of a run.
func (w *Writer) WriteResult(res *reconcile.Result) error {
	return w.writeJSON(filepath.Join(w.dir, ResultsFile), res)
}

func (w *Writer) writeJSON(path string, v any) error {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return errors.WrapIO("create directory", w.dir, err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.WrapParse("json", path, err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}
