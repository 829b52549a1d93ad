// Package playback implements the Playback Scheduler (spec.md 4.5): a
// wallclock-to-timeline-time Clock, a bounded VideoPool of decoded media
// elements with LRU eviction and lookahead warmup, and a Controller that
// ticks once per render frame to keep the right elements bound, seeked,
// and playing.
//
// Decoding itself is a host concern (spec.md 1 names the HLS demuxer only
// as a contract); playback depends on the Decoder interface a host
// application implements, and otherwise only touches timeline state
// through timeline.World's read-only query API.
package playback
