package syncer

import (
	"fmt"
	"time"
)

// State summarizes where local data stands relative to the remote.
type State string

const (
	StateOffline State = "offline"
	StateDirty   State = "dirty"
	StateSynced  State = "synced"
	StateUnknown State = "unknown"
)

// Status is a display-ready sync state.
type Status struct {
	State      State
	Message    string
	LastSynced *time.Time
	LastError  string
}

func syncedMessage(now, last time.Time) string {
	minutes := int(now.Sub(last) / time.Minute)
	if minutes <= 0 {
		return "Just synced"
	}
	return fmt.Sprintf("Synced %dm ago", minutes)
}
