package effects

import (
	"math"
	"testing"

	"github.com/kaelstudio/motif/timeline"
)

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

// TestIntensityEnvelopeScenario is spec.md 8 scenario 6: flash effect,
// startTime=1, duration=1, enter={easeIn,0.2}, exit={easeOut,0.2}, base
// intensity 1.0.
func TestIntensityEnvelopeScenario(t *testing.T) {
	e := timeline.EffectInstance{
		StartTime: 1,
		Duration:  1,
		Intensity: 1.0,
		Enter:     timeline.EffectTransition{Kind: timeline.EnvelopeEaseIn, Duration: 0.2},
		Exit:      timeline.EffectTransition{Kind: timeline.EnvelopeEaseOut, Duration: 0.2},
		Enabled:   true,
	}

	tests := []struct {
		timeInClip float64
		want       float64
	}{
		{1.1, 0.25},
		{1.5, 1.0},
		{1.9, 0.75},
	}
	for _, tt := range tests {
		got := intensityAt(e, tt.timeInClip)
		if !almostEqual(got, tt.want) {
			t.Errorf("intensityAt(t=%v) = %v, want %v", tt.timeInClip, got, tt.want)
		}
	}
}

func TestEnvelopeCurveNoneIsAlwaysFull(t *testing.T) {
	for _, p := range []float64{-1, 0, 0.3, 1, 2} {
		if got := envelopeCurve(timeline.EnvelopeNone, p); got != 1 {
			t.Errorf("envelopeCurve(None, %v) = %v, want 1", p, got)
		}
	}
}

func TestEnvelopeCurveBoundaries(t *testing.T) {
	kinds := []timeline.EnvelopeKind{
		timeline.EnvelopeFade, timeline.EnvelopeEaseIn, timeline.EnvelopeEaseOut,
		timeline.EnvelopeEaseInOut, timeline.EnvelopeBounce,
	}
	for _, k := range kinds {
		if got := envelopeCurve(k, 0); got != 0 {
			t.Errorf("envelopeCurve(%v, 0) = %v, want 0", k, got)
		}
		if got := envelopeCurve(k, 1); got != 1 {
			t.Errorf("envelopeCurve(%v, 1) = %v, want 1", k, got)
		}
	}
}
