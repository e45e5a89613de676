package telemetry

import (
	"encoding/json"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/pthm-cable/cyberfield/systems"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds the particle field state for replay.
type Snapshot struct {
	Version int   `json:"version"`
	RNGSeed int64 `json:"rng_seed"`

	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	Tick int64 `json:"tick"`

	Particles []ParticleState `json:"particles"`

	Bookmark *Bookmark `json:"bookmark,omitempty"`
}

// ParticleState holds one particle's complete state.
type ParticleState struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	VelX float64 `json:"vel_x"`
	VelY float64 `json:"vel_y"`

	Radius     float64  `json:"radius"`
	Color      [4]uint8 `json:"color"`
	Opacity    float64  `json:"opacity"`
	PulseDir   float64  `json:"pulse_dir"`
	PulseSpeed float64  `json:"pulse_speed"`
}

// CaptureSnapshot records the field's current state.
func CaptureSnapshot(f *systems.ParticleField, seed int64) *Snapshot {
	b := f.Bounds()
	snap := &Snapshot{
		Version: SnapshotVersion,
		RNGSeed: seed,
		Width:   b.Width,
		Height:  b.Height,
		Tick:    f.Ticks(),
	}
	for _, p := range f.Particles(nil) {
		snap.Particles = append(snap.Particles, ParticleState{
			X:          p.Pos.X,
			Y:          p.Pos.Y,
			VelX:       p.Vel.X,
			VelY:       p.Vel.Y,
			Radius:     p.Radius,
			Color:      [4]uint8{p.Color.R, p.Color.G, p.Color.B, p.Color.A},
			Opacity:    p.Opacity,
			PulseDir:   p.PulseDir,
			PulseSpeed: p.PulseSpeed,
		})
	}
	return snap
}

// Apply restores the snapshot's particles into f. The field must hold the
// same number of particles; positions are clamped into f's current bounds.
func (s *Snapshot) Apply(f *systems.ParticleField) error {
	if s.Version != SnapshotVersion {
		return fmt.Errorf("snapshot version %d, want %d", s.Version, SnapshotVersion)
	}
	ps := make([]systems.Particle, len(s.Particles))
	for i, st := range s.Particles {
		ps[i] = systems.Particle{
			Pos:        systems.Vec2{X: st.X, Y: st.Y},
			Vel:        systems.Vec2{X: st.VelX, Y: st.VelY},
			Radius:     st.Radius,
			Color:      color.RGBA{R: st.Color[0], G: st.Color[1], B: st.Color[2], A: st.Color[3]},
			Opacity:    st.Opacity,
			PulseDir:   st.PulseDir,
			PulseSpeed: st.PulseSpeed,
		}
	}
	return f.Restore(ps)
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("snapshot_%d", snapshot.Tick)
	if snapshot.Bookmark != nil {
		sanitized := strings.ReplaceAll(string(snapshot.Bookmark.Type), " ", "_")
		name = fmt.Sprintf("snapshot_%d_%s", snapshot.Tick, sanitized)
	}
	path := filepath.Join(dir, name+".json")

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return &snapshot, nil
}
