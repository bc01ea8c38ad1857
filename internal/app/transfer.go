package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/alexanderramin/syllabus/internal/engine"
	"github.com/alexanderramin/syllabus/internal/tracker"
	"github.com/alexanderramin/syllabus/internal/userdata"
)

var (
	// ErrInvalidImport wraps every structural problem of an import file.
	ErrInvalidImport = errors.New("invalid import file")

	// ErrImportCancelled is returned when a schema warning was declined.
	ErrImportCancelled = errors.New("import cancelled")
)

// ExportFilename is the default name for an export taken at now.
func ExportFilename(now time.Time) string {
	return "syllabus-data-" + now.Format("2006-01-02") + ".json"
}

// Export writes the current user data with an exportDate stamp.
func (a *App) Export(ctx context.Context, w io.Writer) error {
	start := a.now()
	doc := a.Snapshot()
	exported := start.UTC()
	doc.ExportDate = &exported

	data, err := userdata.Encode(doc)
	if err == nil {
		_, err = w.Write(append(data, '\n'))
	}
	a.observe(ctx, "export", start, err, nil)
	return err
}

// ImportResult summarizes an applied import.
type ImportResult struct {
	Subjects       int
	CustomSubjects int
	Report         engine.Report
}

// Import replaces the session with an exported document. A file written
// under another schema is applied only if confirm accepts the warning;
// a nil confirm declines. A read-only session fails before confirm is
// asked.
func (a *App) Import(ctx context.Context, raw []byte, confirm func(*userdata.SchemaWarning) bool) (*ImportResult, error) {
	if !a.owner {
		return nil, tracker.ErrReadOnly
	}
	doc, errs := userdata.ValidateImport(raw)
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidImport, errors.Join(errs...))
	}
	if w := userdata.CheckSchema(doc); w != nil {
		if confirm == nil || !confirm(w) {
			return nil, ErrImportCancelled
		}
	}

	var res ImportResult
	err := a.Do(ctx, "import", func(t *tracker.Tracker) error {
		graph, report := engine.MergeWithReport(a.catalog, doc)
		if err := t.Replace(graph, doc.Progress, domain.CoalesceStr(doc.Theme, t.Theme())); err != nil {
			return err
		}
		a.noteReport(report)
		res = ImportResult{Subjects: graph.Len(), CustomSubjects: len(doc.CustomSubjects) - len(report.SkippedSubjects), Report: report}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Reset drops all customizations and progress, leaving the bare catalog.
func (a *App) Reset(ctx context.Context) error {
	return a.Do(ctx, "reset", func(t *tracker.Tracker) error {
		return t.Reset(engine.Merge(a.catalog, nil))
	})
}

// ClearCache forgets the locally cached document, including edits that
// never reached the remote. The running session is unchanged.
func (a *App) ClearCache(ctx context.Context) error {
	start := a.now()
	err := a.cache.Clear(ctx)
	a.observe(ctx, "clear_cache", start, err, nil)
	return err
}
