// Package ui provides the Bubble Tea TUI for the arena terminal.
package ui

import (
	feedDomain "github.com/agentarena/arena-terminal/business/feed/domain"
)

// Message types for TUI updates

// TickMsg is sent periodically for animations and snapshot refresh.
type TickMsg struct{}

// SnapshotMsg signals that a poller or pager published new data; the view
// re-reads service snapshots on the next render.
type SnapshotMsg struct{}

// FeedEventMsg carries one newly mapped live feed event.
type FeedEventMsg struct {
	Event feedDomain.Event
}

// FeedStatusMsg is sent when the feed connection state changes.
type FeedStatusMsg struct {
	Connected bool
}

// ErrorMsg is sent when an operation fails.
type ErrorMsg struct {
	Error error
}

// TxResultMsg carries the outcome of a submitted wallet transaction.
type TxResultMsg struct {
	Hash   string
	Status string
	Error  string
}

// DetailLoadedMsg carries an on-demand detail fetch result (match thread,
// bounty detail or agent profile).
type DetailLoadedMsg struct {
	Detail any
	Err    error
}
