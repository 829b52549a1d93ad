package history

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// DefaultMaxDepth and DefaultMergeWindow are spec.md 4.6's defaults: a
// 100-entry undo stack and a 300 ms window for coalescing same-target
// edits.
const (
	DefaultMaxDepth    = 100
	DefaultMergeWindow = 300 * time.Millisecond
)

// History is the undo/redo engine (spec.md 4.6): two stacks, a bounded
// depth, a merge window, and an optional command-grouping mode.
type History struct {
	Logger *logrus.Logger

	MaxDepth    int
	MergeWindow time.Duration

	undo []Command
	redo []Command

	group *CommandGroup

	now    func() time.Time
	nextID func() string
}

// New constructs a History with spec.md's default depth and merge window.
func New(logger *logrus.Logger) *History {
	return &History{
		Logger:      logger,
		MaxDepth:    DefaultMaxDepth,
		MergeWindow: DefaultMergeWindow,
		now:         time.Now,
		nextID:      func() string { return uuid.NewString() },
	}
}

// NewID returns a fresh command id, for callers constructing concrete
// Command values to pass to Execute.
func (h *History) NewID() string { return h.nextID() }

// Now returns the timestamp a newly constructed command should carry.
func (h *History) Now() time.Time { return h.now() }

// Execute runs cmd (unless skipExecute is set, e.g. a command already
// applied by a caller that wants it recorded without reapplying it) and
// records it per spec.md 4.6's execute() algorithm: grouping mode appends
// to the open group; otherwise a same-target Mergeable command within
// MergeWindow collapses into the existing top-of-stack entry; otherwise
// cmd is pushed fresh and the redo stack is cleared.
func (h *History) Execute(cmd Command, skipExecute bool) {
	if h.group != nil {
		if !skipExecute {
			cmd.Execute()
		}
		h.group.Children = append(h.group.Children, cmd)
		return
	}

	if n := len(h.undo); n > 0 {
		if top, ok := h.undo[n-1].(Mergeable); ok && top.CanMergeWith(cmd) {
			if cmd.Timestamp().Sub(top.Timestamp()) <= h.MergeWindow {
				h.undo[n-1] = top.MergeWith(cmd)
				if !skipExecute {
					cmd.Execute()
				}
				return
			}
		}
	}

	if !skipExecute {
		cmd.Execute()
	}
	h.push(cmd)
}

// push appends cmd to the undo stack, clears redo, and trims the oldest
// entry once MaxDepth is exceeded.
func (h *History) push(cmd Command) {
	h.undo = append(h.undo, cmd)
	h.redo = h.redo[:0]
	if max := h.MaxDepth; max > 0 && len(h.undo) > max {
		h.undo = h.undo[len(h.undo)-max:]
	}
}

// Undo pops the most recent undo entry, calls its Undo, and pushes it to
// redo. Reports whether anything was undone.
func (h *History) Undo() bool {
	n := len(h.undo)
	if n == 0 {
		return false
	}
	cmd := h.undo[n-1]
	h.undo = h.undo[:n-1]
	cmd.Undo()
	h.redo = append(h.redo, cmd)
	if h.Logger != nil {
		h.Logger.WithField("command", cmd.Description()).Debug("history: undo")
	}
	return true
}

// Redo pops the most recent redo entry, re-runs its Execute, and pushes it
// back to undo. Reports whether anything was redone.
func (h *History) Redo() bool {
	n := len(h.redo)
	if n == 0 {
		return false
	}
	cmd := h.redo[n-1]
	h.redo = h.redo[:n-1]
	cmd.Execute()
	h.undo = append(h.undo, cmd)
	if h.Logger != nil {
		h.Logger.WithField("command", cmd.Description()).Debug("history: redo")
	}
	return true
}

// BeginGroup opens a new CommandGroup; subsequent Execute calls append to
// it instead of pushing to the undo stack directly. Nested grouping is not
// supported (spec.md 4.6 describes a single open group at a time); calling
// BeginGroup while a group is already open panics, the same discipline
// willow's own scene graph guarded double-initialization with.
func (h *History) BeginGroup(desc string) {
	if h.group != nil {
		panic(fmt.Sprintf("history: BeginGroup(%q) called while group %q is still open", desc, h.group.Description()))
	}
	h.group = NewCommandGroup(h.nextID(), desc, h.now())
}

// EndGroup closes the open group, pushing it to the undo stack (or
// discarding it, if nothing was ever executed inside it).
func (h *History) EndGroup() {
	g := h.group
	h.group = nil
	if g == nil || len(g.Children) == 0 {
		return
	}
	h.push(g)
}

// CancelGroup closes the open group and unwinds every already-executed
// child in reverse order, leaving the timeline as if the group never
// happened. The group itself is discarded, not pushed.
func (h *History) CancelGroup() {
	g := h.group
	h.group = nil
	if g == nil {
		return
	}
	g.Undo()
}

// InGroup reports whether a group is currently open.
func (h *History) InGroup() bool { return h.group != nil }

// CanUndo and CanRedo report whether Undo/Redo would do anything.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// UndoStackSize and RedoStackSize expose the stack depths, mainly for
// tests asserting the bounded-depth law (spec.md 8 "History laws").
func (h *History) UndoStackSize() int { return len(h.undo) }
func (h *History) RedoStackSize() int { return len(h.redo) }
