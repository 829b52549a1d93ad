package timeline

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// EventKind tags a change-notification payload. The kinds below are grouped
// by entity (clip, track, transition, effect, keyframe, subtitle), with one
// donburi EventType registered per group, following the same
// Publish/Subscribe bridge ecs/donburi.go sets up for willow's interaction
// events (spec.md 9 "reactive property access -> explicit query API").
type EventKind uint8

const (
	EventClipAdded EventKind = iota
	EventClipRemoved
	EventClipUpdated
	EventClipMoved
	EventClipSplit
	EventTrackAdded
	EventTrackRemoved
	EventTrackToggled
	EventTransitionAdded
	EventTransitionRemoved
	EventEffectAdded
	EventEffectRemoved
	EventEffectUpdated
	EventKeyframeAdded
	EventKeyframeRemoved
	EventKeyframeUpdated
	EventSubtitleAdded
	EventSubtitleRemoved
	EventSubtitleUpdated
)

// Event is the payload delivered to subscribers. ID is whichever handle
// kind the mutation concerns, carried as `any` since the handle type
// varies by Kind (ClipID for clip events, TrackID for track events, ...).
type Event struct {
	Kind EventKind
	ID   any
}

var clipEventType = events.NewEventType[Event]()
var trackEventType = events.NewEventType[Event]()
var transitionEventType = events.NewEventType[Event]()
var effectEventType = events.NewEventType[Event]()
var keyframeEventType = events.NewEventType[Event]()
var subtitleEventType = events.NewEventType[Event]()

// eventTypeFor routes a Kind to the donburi EventType grouping it belongs
// to. Grouping by entity kind (rather than one EventType per exact Kind)
// keeps the number of donburi registrations small while still letting
// Subscribe filter by the caller's requested Kind before invoking fn.
func eventTypeFor(kind EventKind) *events.EventType[Event] {
	switch kind {
	case EventClipAdded, EventClipRemoved, EventClipUpdated, EventClipMoved, EventClipSplit:
		return clipEventType
	case EventTrackAdded, EventTrackRemoved, EventTrackToggled:
		return trackEventType
	case EventTransitionAdded, EventTransitionRemoved:
		return transitionEventType
	case EventEffectAdded, EventEffectRemoved, EventEffectUpdated:
		return effectEventType
	case EventKeyframeAdded, EventKeyframeRemoved, EventKeyframeUpdated:
		return keyframeEventType
	case EventSubtitleAdded, EventSubtitleRemoved, EventSubtitleUpdated:
		return subtitleEventType
	default:
		return clipEventType
	}
}

// bus owns the donburi world used purely as an event-dispatch substrate
// (no archetype queries: see DESIGN.md for why the entity arena itself is
// typed slices, not donburi components).
type bus struct {
	world donburi.World
}

func newBus() *bus {
	return &bus{world: donburi.NewWorld()}
}

func (b *bus) publish(kind EventKind, id any) {
	eventTypeFor(kind).Publish(b.world, Event{Kind: kind, ID: id})
}

// subscribe registers fn for every event published through kind's grouping,
// but fn is only invoked when the published Kind matches exactly.
func (b *bus) subscribe(kind EventKind, fn func(Event)) {
	eventTypeFor(kind).Subscribe(b.world, func(w donburi.World, ev Event) {
		if ev.Kind == kind {
			fn(ev)
		}
	})
}

// flush delivers every event published since the last flush to subscribers.
// The World's direct mutators only publish, after updating the arena, so a
// delivered event never precedes the state it reports; delivery happens
// when the caller invokes World.Flush.
func (b *bus) flush() {
	events.ProcessAllEvents(b.world)
}
