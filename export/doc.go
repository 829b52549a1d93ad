// Package export implements the Export pipeline (spec.md 4.4 "Export
// pipeline" / spec.md 6 "Export API"): a frame-exact iteration over
// [0, totalFrames) that seeks every active media element to the exact
// timeline time for frame i, composites it through an isolated
// composition.Pipeline, and hands the result to a host-provided encoder.
//
// Exporter owns its own render.Context, effects.Chain, and VideoPool
// (spec.md 5 "Shared-resource policy": "Export uses its own isolated
// Render Context and Effect Chain instance to avoid polluting the
// player's GL state") so it never contends with a live playback.Controller
// for the same decoded media handles. It never touches a history.History
// either: export renders a Timeline snapshot, it does not edit one.
package export
