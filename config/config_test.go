package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
gains:
  kp_linear: 1.0
  kd_linear: 0.1
  kp_angular: 2.0
  kd_angular: 0.2
  kp_angular_side: 0.5
  ki_angular_side: 0.05
  kp_angular_front: 0.6
  ki_angular_front: 0.06
  kp_angular_diagonal: 0.7
  ki_angular_diagonal: 0.07
profile:
  linear_acceleration: 3.0
  linear_deceleration: 4.0
`

func writeSample(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "constants.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))
	return path
}

func TestLoadParsesGainsAndProfile(t *testing.T) {
	dir := t.TempDir()
	path := writeSample(t, dir)

	p, err := Load(path, zerolog.Nop())
	require.NoError(t, err)
	defer p.Close()

	got := p.Get()
	require.Equal(t, float32(1.0), got.KPLinear)
	require.Equal(t, float32(0.07), got.KIAngularDiagonal)
	require.Equal(t, float32(3.0), p.LinearAcceleration())
	require.Equal(t, float32(4.0), p.LinearDeceleration())
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), zerolog.Nop())
	require.Error(t, err)
}

func TestReloadPicksUpFileChanges(t *testing.T) {
	dir := t.TempDir()
	path := writeSample(t, dir)

	p, err := Load(path, zerolog.Nop())
	require.NoError(t, err)
	defer p.Close()

	updated := `
gains:
  kp_linear: 9.0
profile:
  linear_acceleration: 1.0
  linear_deceleration: 1.0
`
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o644))

	require.Eventually(t, func() bool {
		return p.Get().KPLinear == 9.0
	}, 2*time.Second, 10*time.Millisecond)
}
