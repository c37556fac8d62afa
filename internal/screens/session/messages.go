package session

import (
	"time"

	sess "github.com/abhisek/mockinterview/internal/session"
)

// op names the machine event a reply belongs to.
type op int

const (
	opSubmit op = iota
	opStart
	opStop
	opReset
)

// replyMsg is sent when a machine event has been applied.
type replyMsg struct {
	Op    op
	Reply sess.Reply
	// Auto is set when the recording limit stopped the capture.
	Auto bool
}

// recordTickMsg is sent every second while recording to refresh the timer.
type recordTickMsg time.Time

// recordLimitMsg fires when a recording reaches the maximum length. Gen
// ties it to the recording it was scheduled for.
type recordLimitMsg struct {
	Gen int
}

// restartMsg starts a new interview, e.g. from the dashboard.
type restartMsg struct{}
