package history

import "time"

// Command is one undoable edit (spec.md 4.6: "{id, type, description,
// timestamp, execute(), undo(), optional canMergeWith(), optional
// mergeWith()}").
type Command interface {
	ID() string
	Description() string
	Timestamp() time.Time
	Execute()
	Undo()
}

// Mergeable is implemented by commands that can coalesce with an
// immediately-following command of the same kind (e.g. two drag-to-move
// edits on the same clip inside the merge window).
type Mergeable interface {
	Command
	// CanMergeWith reports whether other may replace this command's stack
	// entry rather than push its own.
	CanMergeWith(other Command) bool
	// MergeWith returns a new command that applies other's end-state but
	// preserves this command's original "oldValue" snapshot, so a single
	// undo restores the state from before the first of the two edits.
	MergeWith(other Command) Command
}

// base holds the bookkeeping every concrete command embeds: an id, a
// human-readable description, and the instant it was constructed (used to
// test merge-window membership).
type base struct {
	id        string
	desc      string
	timestamp time.Time
}

func newBase(id, desc string, now time.Time) base {
	return base{id: id, desc: desc, timestamp: now}
}

func (b base) ID() string          { return b.id }
func (b base) Description() string { return b.desc }
func (b base) Timestamp() time.Time { return b.timestamp }

// CommandGroup bundles several already-executed commands into one
// undoable unit (spec.md 4.6 "Grouping"). Its own Execute runs children
// forward; Undo runs them in reverse.
type CommandGroup struct {
	base
	Children []Command
}

// NewCommandGroup constructs an empty group; callers append to Children
// via History.BeginGroup/EndGroup rather than directly.
func NewCommandGroup(id, desc string, now time.Time) *CommandGroup {
	return &CommandGroup{base: newBase(id, desc, now)}
}

// Execute runs every child's Execute in the order they were appended. Used
// when a group is replayed (redo).
func (g *CommandGroup) Execute() {
	for _, c := range g.Children {
		c.Execute()
	}
}

// Undo runs every child's Undo in reverse order.
func (g *CommandGroup) Undo() {
	for i := len(g.Children) - 1; i >= 0; i-- {
		g.Children[i].Undo()
	}
}

var _ Command = (*CommandGroup)(nil)
