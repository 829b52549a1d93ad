// Package composition implements the Composition Pipeline (spec.md 4.4):
// given a frame time and a timeline snapshot, it resolves what is active
// (transition, video clip, overlays, subtitles), dispatches the right
// render.Context program, intercepts through the Effect Chain Engine when a
// clip carries effects, and composites sticker/subtitle layers on top.
//
// It is grounded on Scene.traverse/Scene.Draw (render.go, scene.go): the
// same shape of "resolve what's active, dispatch the right
// program, fall through to post-processing, then overlays" generalized from
// a recursive node-tree walk keyed by Node.Type to a timeline query keyed by
// timeline time (timeline.ActiveClips, timeline.TransitionAt).
package composition
