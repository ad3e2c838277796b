package sampler

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-kick/internal/testutil"
)

func render(v *Voice, n int) (left, right []float64) {
	left = make([]float64, n)
	right = make([]float64, n)
	v.Render(left, right)
	return left, right
}

func TestVoiceSilentWithoutWaveform(t *testing.T) {
	v := NewVoice()
	if v.Active() != -1 {
		t.Fatalf("Active() = %d, want -1", v.Active())
	}

	v.Trigger()
	if v.State() != Playing {
		t.Fatalf("Trigger without waveform: state = %v, want playing", v.State())
	}

	left := testutil.Ones(64)
	right := testutil.Ones(64)
	v.Render(left, right)
	for i := range left {
		if left[i] != 0 || right[i] != 0 {
			t.Fatalf("sample %d = %v/%v, want silence", i, left[i], right[i])
		}
	}
}

func TestVoiceTriggerBeforeLoad(t *testing.T) {
	v := NewVoice()
	v.Trigger()
	render(v, 32)

	v.Load([]float64{0.5, 0.25, 0.125})
	left, right := render(v, 4)

	// Three samples sit inside the anti-click fade window.
	want := []float64{0.5, 0.25 * (1 - 1.0/FadeOutSamples), 0.125 * (1 - 2.0/FadeOutSamples), 0}
	testutil.RequireSliceNearlyEqual(t, left, want, 1e-15)
	testutil.RequireSliceNearlyEqual(t, right, want, 1e-15)
	if v.State() != Idle {
		t.Fatalf("state after the waveform ended = %v, want idle", v.State())
	}
}

func TestVoiceIdleIsSilent(t *testing.T) {
	v := NewVoice()
	v.Load(testutil.Ones(100))

	left, _ := render(v, 100)
	for i, x := range left {
		if x != 0 {
			t.Fatalf("idle voice produced %v at %d", x, i)
		}
	}
	if v.Position() != 0 {
		t.Fatalf("position advanced while idle: %d", v.Position())
	}
}

func TestVoicePlaysWithVolumeAndDuplicatesToStereo(t *testing.T) {
	v := NewVoice()
	wave := testutil.DeterministicNoise(1, 1, 2000)
	v.Load(wave)
	v.SetVolume(0.5)
	v.Trigger()

	left, right := render(v, 128)
	for i := range left {
		if left[i] != wave[i]*0.5 || right[i] != left[i] {
			t.Fatalf("sample %d = %v/%v, want %v", i, left[i], right[i], wave[i]*0.5)
		}
	}
	if v.Position() != 128 {
		t.Fatalf("Position() = %d, want 128", v.Position())
	}
}

func TestVoiceFadeOutAndEnd(t *testing.T) {
	v := NewVoice()
	v.Load(testutil.Ones(1000))
	v.Trigger()

	left, _ := render(v, 1200)

	fadeStart := 1000 - FadeOutSamples
	if left[fadeStart-1] != 1 {
		t.Fatalf("sample before fade = %v, want 1", left[fadeStart-1])
	}
	for k := range FadeOutSamples {
		want := 1 - float64(k)/FadeOutSamples
		if math.Abs(left[fadeStart+k]-want) > 1e-12 {
			t.Fatalf("fade sample %d = %v, want %v", k, left[fadeStart+k], want)
		}
	}
	for i := 1000; i < 1200; i++ {
		if left[i] != 0 {
			t.Fatalf("output after end at %d: %v", i, left[i])
		}
	}
	if v.State() != Idle {
		t.Fatalf("state after end = %v, want idle", v.State())
	}
}

func TestVoiceLoopingHasNoFade(t *testing.T) {
	v := NewVoice()
	v.Load(testutil.Ones(300))
	v.SetLooping(true)
	v.Trigger()

	left, _ := render(v, 1000)
	for i, x := range left {
		if x != 1 {
			t.Fatalf("looping sample %d = %v, want 1", i, x)
		}
	}
	if v.State() != Playing || v.Position() != 1000%300 {
		t.Fatalf("state=%v position=%d, want playing/%d", v.State(), v.Position(), 1000%300)
	}
}

func TestVoiceLengthRatio(t *testing.T) {
	tests := []struct {
		name  string
		ratio float64
		want  int
	}{
		{name: "half", ratio: 0.5, want: 500},
		{name: "below minimum", ratio: 0.01, want: 100},
		{name: "above maximum", ratio: 3, want: 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewVoice()
			v.Load(testutil.Ones(1000))
			v.SetLengthRatio(tt.ratio)
			v.Trigger()

			left, _ := render(v, 1500)
			played := 0
			for _, x := range left {
				if x != 0 {
					played++
				}
			}
			// The final fade sample is non-zero, so every played sample counts.
			if played != tt.want {
				t.Fatalf("played %d samples, want %d", played, tt.want)
			}
		})
	}
}

func TestVoiceStopWithoutRelease(t *testing.T) {
	v := NewVoice()
	v.Load(testutil.Ones(10000))
	v.Trigger()
	render(v, 64)

	v.Stop()
	if v.State() != Idle {
		t.Fatalf("state = %v, want idle", v.State())
	}

	left, _ := render(v, 64)
	for i, x := range left {
		if x != 0 {
			t.Fatalf("output after stop at %d: %v", i, x)
		}
	}
}

func TestVoiceReleaseTiming(t *testing.T) {
	const (
		sampleRate = 1000.0
		release    = 0.05
	)

	v := NewVoice()
	v.SetSampleRate(sampleRate)
	v.SetRelease(release)
	v.Load(testutil.Ones(10000))
	v.Trigger()
	render(v, 10)

	v.Stop()
	if v.State() != Releasing {
		t.Fatalf("state = %v, want releasing", v.State())
	}

	// A second Stop while releasing changes nothing.
	v.Stop()

	left, _ := render(v, 200)
	audible := 0
	prev := math.Inf(1)
	for _, x := range left {
		if x > prev {
			t.Fatal("release envelope must not rise")
		}
		prev = x
		if x != 0 {
			audible++
		}
	}

	want := int(release * sampleRate)
	if audible < want-1 || audible > want+1 {
		t.Fatalf("release lasted %d samples, want %d±1", audible, want)
	}
	if v.State() != Idle || v.Envelope() != 0 {
		t.Fatalf("state=%v envelope=%v, want idle/0", v.State(), v.Envelope())
	}
}

func TestVoiceStopWhenIdleIsNoop(t *testing.T) {
	v := NewVoice()
	v.Load(testutil.Ones(10))
	v.SetRelease(1)
	v.Stop()
	if v.State() != Idle {
		t.Fatalf("state = %v, want idle", v.State())
	}
}

func TestVoiceTriggerDuringReleaseRestarts(t *testing.T) {
	v := NewVoice()
	v.SetRelease(0.1)
	v.Load(testutil.Ones(10000))
	v.Trigger()
	v.Stop()
	render(v, 100)

	v.Trigger()
	if v.State() != Playing || v.Envelope() != 1 || v.Position() != 0 {
		t.Fatalf("state=%v envelope=%v position=%d", v.State(), v.Envelope(), v.Position())
	}
}

func TestVoiceSelectRoundTrip(t *testing.T) {
	v := NewVoice()
	a := v.Load([]float64{0.25, 0.25, 0.25})
	b := v.Load([]float64{0.75, 0.75, 0.75})
	if a != 0 || b != 1 || v.Len() != 2 {
		t.Fatalf("indices %d/%d len %d", a, b, v.Len())
	}

	v.Select(b)
	v.Trigger()
	left, _ := render(v, 1)
	if left[0] != 0.75 {
		t.Fatalf("waveform b output = %v, want 0.75", left[0])
	}

	v.Select(a)
	if v.Active() != a || v.State() != Idle || v.Position() != 0 || v.Envelope() != 1 {
		t.Fatalf("select did not reset: active=%d state=%v pos=%d env=%v",
			v.Active(), v.State(), v.Position(), v.Envelope())
	}

	v.Select(5)
	v.Select(-1)
	if v.Active() != a {
		t.Fatalf("out-of-range select changed active to %d", v.Active())
	}
}

func TestVoiceLoadCopies(t *testing.T) {
	v := NewVoice()
	src := []float64{0.5}
	v.Load(src)
	src[0] = 9

	v.Trigger()
	left, _ := render(v, 1)
	if left[0] != 0.5 {
		t.Fatalf("Load must copy input, got %v", left[0])
	}
}

func TestVoiceSetterClamps(t *testing.T) {
	v := NewVoice()
	v.SetVolume(-2)
	v.SetRelease(-1)
	v.SetSampleRate(0)
	v.SetLengthRatio(math.NaN())

	if v.Volume() != 0 || v.Release() != 0 || v.LengthRatio() != 1 {
		t.Fatalf("volume=%v release=%v ratio=%v", v.Volume(), v.Release(), v.LengthRatio())
	}
	if v.sampleRate != 44100 {
		t.Fatalf("sample rate = %v, want default", v.sampleRate)
	}
}

func TestStateString(t *testing.T) {
	for s, want := range map[State]string{Idle: "idle", Playing: "playing", Releasing: "releasing", State(7): "unknown"} {
		if s.String() != want {
			t.Fatalf("%d.String() = %q, want %q", int(s), s.String(), want)
		}
	}
}

func BenchmarkVoiceRender(b *testing.B) {
	v := NewVoice()
	v.Load(testutil.DeterministicNoise(1, 1, 44100))
	v.SetLooping(true)
	v.Trigger()

	left := make([]float64, 128)
	right := make([]float64, 128)
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		v.Render(left, right)
	}
}
