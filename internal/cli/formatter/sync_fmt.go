package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/syllabus/internal/repository"
	"github.com/alexanderramin/syllabus/internal/syncer"
)

// SyncIndicator returns the one-line sync state, e.g. "● Synced 3m ago".
func SyncIndicator(st syncer.Status) string {
	switch st.State {
	case syncer.StateSynced:
		return StyleGreen.Render("● " + st.Message)
	case syncer.StateDirty:
		return StyleYellow.Render("◐ " + st.Message)
	case syncer.StateOffline:
		return StyleDim.Render("○ " + st.Message)
	default:
		return StyleDim.Render("? " + st.Message)
	}
}

// FormatSyncStatus renders the current state plus the most recent attempts.
func FormatSyncStatus(st syncer.Status, history []*repository.SyncRecord, now time.Time) string {
	var b strings.Builder
	b.WriteString(SyncIndicator(st) + "\n")
	if st.LastError != "" {
		b.WriteString(StyleRed.Render("last error: "+st.LastError) + "\n")
	}
	if len(history) == 0 {
		return b.String()
	}

	b.WriteString("\n")
	rows := make([][]string, 0, len(history))
	for _, r := range history {
		sha := r.RemoteSHA
		if len(sha) > 7 {
			sha = sha[:7]
		}
		rows = append(rows, []string{
			HumanTimestampFrom(r.StartedAt, now),
			outcomeLabel(r.Outcome),
			Dim(sha),
			fmt.Sprintf("%dms", r.Duration.Milliseconds()),
			r.Error,
		})
	}
	b.WriteString(RenderTable([]string{"WHEN", "OUTCOME", "SHA", "TOOK", "ERROR"}, rows))
	return b.String()
}

func outcomeLabel(o repository.SyncOutcome) string {
	switch o {
	case repository.SyncPushed:
		return StyleGreen.Render("↑ pushed")
	case repository.SyncPulled:
		return StyleBlue.Render("↓ pulled")
	case repository.SyncUnchanged:
		return StyleDim.Render("= unchanged")
	case repository.SyncConflict:
		return StyleYellow.Render("⚠ conflict")
	case repository.SyncFailed:
		return StyleRed.Render("✖ failed")
	default:
		return Dim(string(o))
	}
}
