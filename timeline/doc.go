// Package timeline holds the editing data model: materials, tracks, clips,
// transitions, and per-clip effects, plus the World arena that owns them.
//
// Entities are addressed by generation-counted handles (TrackID, ClipID,
// TransitionID, EffectID, MaterialID) rather than live pointers, so a
// handle captured by a history command stays meaningful (or detectably
// stale) across later mutations. World's exported mutators are "direct
// mutators": they never record history. The history package wraps them in
// undoable commands; everything else (tests, the export pipeline) may call
// them directly when undo is not wanted.
package timeline
