package anim

import "testing"

func TestEvaluateZeroKeyframesUsesDefaults(t *testing.T) {
	got := Evaluate(nil, 5)
	want := defaultTransform()
	if got != want {
		t.Errorf("Evaluate(nil, 5) = %+v, want default %+v", got, want)
	}
}

func TestEvaluateHoldsBeforeFirstAndAfterLast(t *testing.T) {
	tracks := []AnimationTrack{
		{Property: Opacity, Enabled: true, Keyframes: []Keyframe{
			{Time: 1, Value: 0.2},
			{Time: 3, Value: 0.8},
		}},
	}
	if got := Evaluate(tracks, 0).Opacity; got != 0.2 {
		t.Errorf("before first keyframe: Opacity = %v, want 0.2 (hold, not extrapolate)", got)
	}
	if got := Evaluate(tracks, 10).Opacity; got != 0.8 {
		t.Errorf("after last keyframe: Opacity = %v, want 0.8 (hold, not extrapolate)", got)
	}
}

func TestEvaluateExactBoundaryCondition(t *testing.T) {
	kfs := []Keyframe{
		{Time: 0, Value: 10},
		{Time: 1, Value: 20},
		{Time: 2.5, Value: -5},
	}
	tracks := []AnimationTrack{{Property: PositionX, Enabled: true, Keyframes: kfs}}
	for _, kf := range kfs {
		if got := Evaluate(tracks, kf.Time).X; got != kf.Value {
			t.Errorf("Evaluate at exact keyframe time %v: X = %v, want %v", kf.Time, got, kf.Value)
		}
	}
}

func TestEvaluateContinuousAcrossRange(t *testing.T) {
	tracks := []AnimationTrack{
		{Property: PositionX, Enabled: true, Keyframes: []Keyframe{
			{Time: 0, Value: 0},
			{Time: 1, Value: 100},
			{Time: 2, Value: -50},
		}},
	}
	const steps = 400
	var prev float64
	for i := 0; i <= steps; i++ {
		tt := 2.0 * float64(i) / steps
		cur := Evaluate(tracks, tt).X
		if i > 0 {
			// Continuity: no sample-to-sample jump larger than a single
			// step could plausibly produce on this piecewise-linear input.
			maxStep := 100.0 * (2.0 / steps) * 4
			if diff := cur - prev; diff > maxStep || diff < -maxStep {
				t.Fatalf("discontinuity at t=%v: prev=%v cur=%v", tt, prev, cur)
			}
		}
		prev = cur
	}
}

func TestBinarySearchKeyframe(t *testing.T) {
	kfs := []Keyframe{{Time: 0}, {Time: 1}, {Time: 2}, {Time: 5}}
	tests := []struct {
		t    float64
		want int
	}{
		{-1, -1},
		{0, 0},
		{0.5, 0},
		{1, 1},
		{4.9, 2},
		{5, 3},
		{10, 3},
	}
	for _, tt := range tests {
		if got := binarySearchKeyframe(kfs, tt.t); got != tt.want {
			t.Errorf("binarySearchKeyframe(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
	if got := binarySearchKeyframe(nil, 5); got != -1 {
		t.Errorf("binarySearchKeyframe(empty, 5) = %v, want -1", got)
	}
}

// TestAnimatedScaleKeyframes is scenario 3 from spec.md 8: two scale
// keyframes, easeInOutCubic, evaluated at the midpoint.
func TestAnimatedScaleKeyframes(t *testing.T) {
	tracks := []AnimationTrack{
		{Property: Scale, Enabled: true, Keyframes: []Keyframe{
			{Time: 0, Value: 1, Easing: Easing{Kind: EaseInOutCubic}},
			{Time: 2, Value: 2},
		}},
	}
	out := Evaluate(tracks, 1.0)
	if out.ScaleX < 1.499 || out.ScaleX > 1.501 {
		t.Errorf("ScaleX = %v, want ~1.5", out.ScaleX)
	}
	if out.ScaleY < 1.499 || out.ScaleY > 1.501 {
		t.Errorf("ScaleY = %v, want ~1.5", out.ScaleY)
	}

	m := MakeMatrix(out)
	if m[0] < 1.499 || m[0] > 1.501 {
		t.Errorf("matrix[0] (scaleX term) = %v, want ~1.5", m[0])
	}
	if m[5] < 1.499 || m[5] > 1.501 {
		t.Errorf("matrix[5] (scaleY term) = %v, want ~1.5", m[5])
	}
	if m[12] != 0 || m[13] != 0 {
		t.Errorf("matrix translation = (%v, %v), want (0, 0): no position, zero anchor", m[12], m[13])
	}
}

func TestScaleTrackOverridesScaleXY(t *testing.T) {
	tracks := []AnimationTrack{
		{Property: ScaleX, Enabled: true, Keyframes: []Keyframe{{Time: 0, Value: 3}}},
		{Property: ScaleY, Enabled: true, Keyframes: []Keyframe{{Time: 0, Value: 4}}},
		{Property: Scale, Enabled: true, Keyframes: []Keyframe{{Time: 0, Value: 2}}},
	}
	out := Evaluate(tracks, 0)
	if out.ScaleX != 2 || out.ScaleY != 2 {
		t.Errorf("scale track should override scale.x/scale.y uniformly, got (%v, %v), want (2, 2)", out.ScaleX, out.ScaleY)
	}
}

func TestScaleXYIndependentWithoutScaleTrack(t *testing.T) {
	tracks := []AnimationTrack{
		{Property: ScaleX, Enabled: true, Keyframes: []Keyframe{{Time: 0, Value: 3}}},
		{Property: ScaleY, Enabled: true, Keyframes: []Keyframe{{Time: 0, Value: 4}}},
	}
	out := Evaluate(tracks, 0)
	if out.ScaleX != 3 || out.ScaleY != 4 {
		t.Errorf("got (%v, %v), want (3, 4)", out.ScaleX, out.ScaleY)
	}
}

func TestOpacityClampedToUnitRange(t *testing.T) {
	tracks := []AnimationTrack{
		{Property: Opacity, Enabled: true, Keyframes: []Keyframe{{Time: 0, Value: 5}}},
	}
	if got := Evaluate(tracks, 0).Opacity; got != 1 {
		t.Errorf("Opacity = %v, want clamped to 1", got)
	}
}

func TestDisabledTrackIgnored(t *testing.T) {
	tracks := []AnimationTrack{
		{Property: PositionX, Enabled: false, Keyframes: []Keyframe{{Time: 0, Value: 999}}},
	}
	if got := Evaluate(tracks, 0).X; got != 0 {
		t.Errorf("disabled track should not affect output, got X = %v", got)
	}
}

func TestUpsertKeyframeReplacesSameTime(t *testing.T) {
	var track AnimationTrack
	track.UpsertKeyframe(Keyframe{ID: "a", Time: 1, Value: 10})
	track.UpsertKeyframe(Keyframe{ID: "b", Time: 0, Value: 5})
	track.UpsertKeyframe(Keyframe{ID: "c", Time: 1, Value: 99})

	if len(track.Keyframes) != 2 {
		t.Fatalf("len(Keyframes) = %v, want 2 (identical time replaces)", len(track.Keyframes))
	}
	if track.Keyframes[0].Time != 0 || track.Keyframes[1].Time != 1 {
		t.Fatalf("keyframes not time-sorted: %+v", track.Keyframes)
	}
	if track.Keyframes[1].ID != "c" || track.Keyframes[1].Value != 99 {
		t.Errorf("replacement did not take effect: %+v", track.Keyframes[1])
	}
}

func TestRemoveKeyframe(t *testing.T) {
	track := AnimationTrack{Keyframes: []Keyframe{{ID: "a", Time: 0}, {ID: "b", Time: 1}}}
	if !track.RemoveKeyframe("a") {
		t.Fatal("RemoveKeyframe(a) = false, want true")
	}
	if len(track.Keyframes) != 1 || track.Keyframes[0].ID != "b" {
		t.Fatalf("unexpected keyframes after removal: %+v", track.Keyframes)
	}
	if track.RemoveKeyframe("missing") {
		t.Error("RemoveKeyframe(missing) = true, want false")
	}
}
