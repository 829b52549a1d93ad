// Package history implements the History Engine (spec.md 4.6): a
// Command/CommandGroup model over a bounded undo/redo double-stack, with a
// merge window for coalescing rapid same-target edits and a grouping mode
// for bundling several direct-mutator calls into one undoable transaction.
//
// Commands never mutate a timeline.World directly themselves except
// through its "Direct" mutator methods, which never record history. That
// split is deliberate (spec.md 4.6 "Reentrancy"): the user-facing edit API
// records history, the mutator API does not, and commands are the only
// bridge between the two.
package history
