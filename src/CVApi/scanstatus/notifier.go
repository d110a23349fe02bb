package scanstatus

import (
	"github.com/clipvault/clipvault/src/CVApi/types"
)

// Kind classifies a terminal-state batch.
type Kind string

const (
	KindSucceeded Kind = "succeeded"
	KindFailed    Kind = "failed"
	KindCancelled Kind = "cancelled"
)

// IsTerminal reports whether a scan status admits no further automatic
// transition.
func IsTerminal(status string) bool {
	switch status {
	case types.ScanSucceeded, types.ScanFailed, types.ScanCancelled:
		return true
	}
	return false
}

// Subscriber receives one call per terminal kind per observed snapshot, with
// every channel record that just transitioned into that state.
type Subscriber func(kind Kind, records []types.ScanStatus)

// Notifier diffs successive full snapshots of one guild's scan statuses and
// emits batched terminal-state transitions. It holds no locks; the caller must
// deliver snapshots for a guild from a single goroutine.
type Notifier struct {
	last map[string]string // channel id -> last observed status
	sub  Subscriber
}

func NewNotifier(sub Subscriber) *Notifier {
	return &Notifier{sub: sub}
}

// Observe processes the next snapshot. The first snapshot after construction
// only seeds tracking, so scans that were already terminal before observation
// began never fire.
func (n *Notifier) Observe(snapshot []types.ScanStatus) {
	next := make(map[string]string, len(snapshot))
	for _, s := range snapshot {
		next[s.ChannelID] = s.Status
	}

	if n.last == nil {
		n.last = next
		return
	}

	var succeeded, failed, cancelled []types.ScanStatus
	for _, s := range snapshot {
		prev, seen := n.last[s.ChannelID]
		if seen && prev == s.Status {
			continue
		}
		switch s.Status {
		case types.ScanSucceeded:
			succeeded = append(succeeded, s)
		case types.ScanFailed:
			failed = append(failed, s)
		case types.ScanCancelled:
			cancelled = append(cancelled, s)
		}
	}

	// Channels absent from this snapshot drop out of tracking silently.
	n.last = next

	if n.sub == nil {
		return
	}
	if len(succeeded) > 0 {
		n.sub(KindSucceeded, succeeded)
	}
	if len(failed) > 0 {
		n.sub(KindFailed, failed)
	}
	if len(cancelled) > 0 {
		n.sub(KindCancelled, cancelled)
	}
}
