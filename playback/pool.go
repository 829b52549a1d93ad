package playback

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/kaelstudio/motif/timeline"
)

// DefaultCapacity is the VideoPool's default slot count (spec.md 4.5
// "Media Pool": "Capacity N (default 6)").
const DefaultCapacity = 6

// preloadTimeout bounds how long a single Preload waits for the Decoder's
// readiness channel (spec.md 4.5: "a 10 s timeout").
const preloadTimeout = 10 * time.Second

// poolSlot is one VideoPool entry: a decoded media element plus the
// intrusive doubly-linked list pointers the MRU/LRU ordering needs
// (spec.md 4.5 "Media Pool": "intrusive doubly-linked list ... for O(1)
// eviction").
type poolSlot struct {
	materialID timeline.MaterialID
	source     timeline.MaterialSource
	handle     Handle
	ready      bool
	lastUsed   time.Time

	prev, next *poolSlot
}

// VideoPool is the Playback Scheduler's bounded cache of decoded media
// elements (spec.md 4.5 "Media Pool (VideoPool)"), grounded on the
// teacher's renderTexturePool bucketing idiom (rendertarget.go) combined
// with node.go's intrusive list bookkeeping, generalized from a
// singly-linked free list to a doubly-linked MRU/LRU list.
type VideoPool struct {
	Logger  *logrus.Logger
	Decoder Decoder

	mu       sync.Mutex
	capacity int
	slots    map[timeline.MaterialID]*poolSlot
	head     *poolSlot // most recently used
	tail     *poolSlot // least recently used

	group singleflight.Group
}

// NewVideoPool constructs a VideoPool with the given capacity (0 means
// DefaultCapacity) backed by decoder.
func NewVideoPool(capacity int, decoder Decoder, logger *logrus.Logger) *VideoPool {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &VideoPool{
		Logger:   logger,
		Decoder:  decoder,
		capacity: capacity,
		slots:    make(map[timeline.MaterialID]*poolSlot, capacity),
	}
}

// Has reports whether id currently has a slot, ready or still loading
// (spec.md 4.5 "has(id) is O(1)").
func (p *VideoPool) Has(id timeline.MaterialID) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.slots[id]
	return ok
}

// Get returns the handle if id's slot is ready, moving it to the head of
// the MRU list (spec.md 4.5 "get(id) returns the element if ready, moves
// node to head").
func (p *VideoPool) Get(id timeline.MaterialID) (Handle, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, ok := p.slots[id]
	if !ok || !s.ready {
		return nil, false
	}
	s.lastUsed = time.Now()
	p.moveToHeadLocked(s)
	return s.handle, true
}

// Preload begins (or joins) loading id from source, evicting the LRU slot
// first if the pool is full and id is new. Concurrent callers for the
// same id share one in-flight load (spec.md 4.5: "Deduplicates concurrent
// requests via pending-map").
func (p *VideoPool) Preload(ctx context.Context, id timeline.MaterialID, source timeline.MaterialSource) error {
	_, err, _ := p.group.Do(id.String(), func() (interface{}, error) {
		return nil, p.load(ctx, id, source)
	})
	return err
}

func (p *VideoPool) load(ctx context.Context, id timeline.MaterialID, source timeline.MaterialSource) error {
	p.mu.Lock()
	if s, ok := p.slots[id]; ok {
		ready := s.ready
		p.mu.Unlock()
		// An existing slot is either ready or belongs to a load still in
		// flight: both failure paths below remove their slot, and
		// singleflight.Group.Do shares one in-flight load among callers
		// with the same key. Either way there is nothing to load here.
		if ready {
			return nil
		}
		return nil
	}
	if len(p.slots) >= p.capacity {
		p.evictLRULocked()
	}
	p.mu.Unlock()

	loadCtx, cancel := context.WithTimeout(ctx, preloadTimeout)
	defer cancel()

	handle, readyCh := p.Decoder.Open(loadCtx, source)
	s := &poolSlot{materialID: id, source: source, handle: handle, lastUsed: time.Now()}

	p.mu.Lock()
	p.slots[id] = s
	p.pushHeadLocked(s)
	p.mu.Unlock()

	select {
	case loadErr := <-readyCh:
		p.mu.Lock()
		defer p.mu.Unlock()
		if loadErr != nil {
			p.removeSlotLocked(s)
			return loadErr
		}
		s.ready = true
		return nil
	case <-loadCtx.Done():
		p.mu.Lock()
		defer p.mu.Unlock()
		p.removeSlotLocked(s)
		return loadCtx.Err()
	}
}

// Evict releases every slot whose material is not in keep (spec.md 4.5
// "evict(keepSet) releases everything not in the set").
func (p *VideoPool) Evict(keep map[timeline.MaterialID]bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for id, s := range p.slots {
		if !keep[id] {
			p.removeSlotLocked(s)
		}
	}
}

// Destroy releases every slot unconditionally. Called when the owning
// Controller shuts down.
func (p *VideoPool) Destroy() {
	p.Evict(nil)
}

func (p *VideoPool) evictLRULocked() {
	if p.tail == nil {
		return
	}
	victim := p.tail
	if p.Logger != nil {
		p.Logger.WithField("material", victim.materialID.String()).Debug("playback: evicting LRU slot")
	}
	p.Decoder.SetPlaying(victim.handle, false)
	p.removeSlotLocked(victim)
}

func (p *VideoPool) pushHeadLocked(s *poolSlot) {
	s.prev, s.next = nil, p.head
	if p.head != nil {
		p.head.prev = s
	}
	p.head = s
	if p.tail == nil {
		p.tail = s
	}
}

func (p *VideoPool) unlinkLocked(s *poolSlot) {
	if s.prev != nil {
		s.prev.next = s.next
	} else {
		p.head = s.next
	}
	if s.next != nil {
		s.next.prev = s.prev
	} else {
		p.tail = s.prev
	}
	s.prev, s.next = nil, nil
}

func (p *VideoPool) moveToHeadLocked(s *poolSlot) {
	if p.head == s {
		return
	}
	p.unlinkLocked(s)
	p.pushHeadLocked(s)
}

func (p *VideoPool) removeSlotLocked(s *poolSlot) {
	p.unlinkLocked(s)
	delete(p.slots, s.materialID)
	p.Decoder.Close(s.handle)
}
