package encoder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakePin struct {
	state bool
}

func (p *fakePin) Get() bool      { return p.state }
func (p *fakePin) Set(v bool)     { p.state = v }

// sequence drives pinA/pinB through one full forward quadrature cycle:
// 00 -> 10 -> 11 -> 01 -> 00 (A leading B), which should yield +4 counts
// (4x decode).
func TestWheelForwardQuadrature(t *testing.T) {
	pinA := &fakePin{}
	pinB := &fakePin{}
	w := New(pinA, pinB, DefaultConfig())

	steps := []struct{ a, b bool }{
		{true, false},
		{true, true},
		{false, true},
		{false, false},
	}
	for _, st := range steps {
		pinA.state = st.a
		pinB.state = st.b
		w.Sample()
	}

	require.Equal(t, int64(4), w.Position())
}

func TestWheelReverseQuadrature(t *testing.T) {
	pinA := &fakePin{}
	pinB := &fakePin{}
	w := New(pinA, pinB, DefaultConfig())

	steps := []struct{ a, b bool }{
		{false, true},
		{true, true},
		{true, false},
		{false, false},
	}
	for _, st := range steps {
		pinA.state = st.a
		pinB.state = st.b
		w.Sample()
	}

	require.Equal(t, int64(-4), w.Position())
}

func TestWheelResetClearsPositionAndSpeed(t *testing.T) {
	pinA := &fakePin{}
	pinB := &fakePin{}
	w := New(pinA, pinB, DefaultConfig())
	pinA.state = true
	w.Sample()

	w.Reset()

	require.Equal(t, int64(0), w.Position())
	require.Equal(t, float32(0), w.SpeedMPS())
}

func TestWheelSpeedRequiresUpdateInterval(t *testing.T) {
	pinA := &fakePin{}
	pinB := &fakePin{}
	cfg := DefaultConfig()
	cfg.UpdateInterval = time.Hour
	w := New(pinA, pinB, cfg)

	require.Equal(t, float32(0), w.SpeedMPS())
}
