package playback

import (
	"testing"
	"time"
)

func fixedNow(base *time.Time) func() time.Time {
	return func() time.Time { return *base }
}

func TestClockCurrentTimeAdvancesWhilePlaying(t *testing.T) {
	now := time.Unix(0, 0)
	c := NewClock(10)
	c.now = fixedNow(&now)

	c.Play()
	now = now.Add(2 * time.Second)

	if got := c.CurrentTime(); got != 2 {
		t.Errorf("CurrentTime = %v, want 2", got)
	}
}

func TestClockCurrentTimeFrozenWhilePaused(t *testing.T) {
	now := time.Unix(0, 0)
	c := NewClock(10)
	c.now = fixedNow(&now)

	c.Play()
	now = now.Add(3 * time.Second)
	c.Pause()
	now = now.Add(5 * time.Second)

	if got := c.CurrentTime(); got != 3 {
		t.Errorf("CurrentTime = %v, want 3 (frozen at pause)", got)
	}
}

func TestClockCurrentTimeClampsToDuration(t *testing.T) {
	now := time.Unix(0, 0)
	c := NewClock(5)
	c.now = fixedNow(&now)

	c.Play()
	now = now.Add(100 * time.Second)

	if got := c.CurrentTime(); got != 5 {
		t.Errorf("CurrentTime = %v, want 5 (clamped to duration)", got)
	}
}

func TestClockSeekWhilePlayingResetsEpoch(t *testing.T) {
	now := time.Unix(0, 0)
	c := NewClock(10)
	c.now = fixedNow(&now)

	c.Play()
	now = now.Add(2 * time.Second)
	c.Seek(7)
	now = now.Add(1 * time.Second)

	if got := c.CurrentTime(); got != 8 {
		t.Errorf("CurrentTime = %v, want 8 (7 + 1s elapsed since seek)", got)
	}
}

func TestClockCheckEndedFiresOnceThenRewinds(t *testing.T) {
	now := time.Unix(0, 0)
	c := NewClock(4)
	c.now = fixedNow(&now)

	var endedCount int
	c.OnEnded(func() { endedCount++ })

	c.Play()
	now = now.Add(4 * time.Second)

	if !c.CheckEnded() {
		t.Fatal("expected CheckEnded to report true at duration")
	}
	if endedCount != 1 {
		t.Errorf("onEnded fired %d times, want 1", endedCount)
	}
	if c.IsPlaying() {
		t.Error("expected clock to be paused after CheckEnded")
	}
	if got := c.CurrentTime(); got != 0 {
		t.Errorf("CurrentTime after CheckEnded = %v, want 0 (rewound)", got)
	}
	if c.CheckEnded() {
		t.Error("expected CheckEnded not to fire again without replaying")
	}
}

func TestClockCheckEndedFalseWhilePaused(t *testing.T) {
	c := NewClock(4)
	if c.CheckEnded() {
		t.Error("expected CheckEnded to be false on a fresh paused clock")
	}
}
