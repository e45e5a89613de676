package telemetry

import (
	"encoding/json"
	"image/color"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/cyberfield/systems"
)

func newSnapshotField(t *testing.T, seed int64) *systems.ParticleField {
	t.Helper()
	f, err := systems.NewParticleField(12, systems.Bounds{Width: 640, Height: 480},
		[]color.RGBA{{R: 0, G: 255, B: 255, A: 255}, {R: 255, G: 107, B: 107, A: 255}},
		systems.DefaultFieldOptions(), rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestSnapshotSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()

	f := newSnapshotField(t, 42)
	for i := 0; i < 50; i++ {
		f.Tick()
	}
	snapshot := CaptureSnapshot(f, 42)
	snapshot.Bookmark = &Bookmark{
		Type:        BookmarkConnectionSurge,
		Tick:        50,
		Description: "Test bookmark",
	}

	path, err := SaveSnapshot(snapshot, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if !strings.HasSuffix(path, "snapshot_50_connection_surge.json") {
		t.Errorf("unexpected snapshot name %s", path)
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if loaded.Version != SnapshotVersion || loaded.RNGSeed != 42 || loaded.Tick != 50 {
		t.Errorf("header mismatch: %+v", loaded)
	}
	if loaded.Width != 640 || loaded.Height != 480 {
		t.Errorf("bounds mismatch: %gx%g", loaded.Width, loaded.Height)
	}
	if len(loaded.Particles) != 12 {
		t.Fatalf("expected 12 particles, got %d", len(loaded.Particles))
	}
	if loaded.Particles[3] != snapshot.Particles[3] {
		t.Errorf("particle mismatch: %+v vs %+v", loaded.Particles[3], snapshot.Particles[3])
	}
	if loaded.Bookmark == nil || loaded.Bookmark.Type != BookmarkConnectionSurge {
		t.Error("bookmark not preserved")
	}
}

func TestSnapshotApplyReplays(t *testing.T) {
	src := newSnapshotField(t, 7)
	for i := 0; i < 30; i++ {
		src.Tick()
	}
	snap := CaptureSnapshot(src, 7)

	dst := newSnapshotField(t, 99)
	if err := snap.Apply(dst); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	for i := 0; i < 20; i++ {
		src.Tick()
		dst.Tick()
	}
	a, b := src.Particles(nil), dst.Particles(nil)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("particle %d diverged: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestSnapshotApplyRejectsMismatch(t *testing.T) {
	snap := CaptureSnapshot(newSnapshotField(t, 1), 1)

	snap.Version = SnapshotVersion + 1
	if err := snap.Apply(newSnapshotField(t, 2)); err == nil {
		t.Error("expected version mismatch error")
	}

	snap.Version = SnapshotVersion
	snap.Particles = snap.Particles[:5]
	if err := snap.Apply(newSnapshotField(t, 2)); err == nil {
		t.Error("expected count mismatch error")
	}
}

func TestSnapshotJSONFormat(t *testing.T) {
	snapshot := &Snapshot{
		Version: SnapshotVersion,
		RNGSeed: 123,
		Tick:    500,
		Particles: []ParticleState{
			{X: 100, Y: 200, Radius: 2, Color: [4]uint8{0, 255, 255, 255}, Opacity: 0.5, PulseDir: 1, PulseSpeed: 0.03},
		},
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		t.Fatalf("MarshalIndent failed: %v", err)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal to map failed: %v", err)
	}
	for _, key := range []string{"version", "rng_seed", "width", "height", "tick", "particles"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("missing key %q", key)
		}
	}
	if _, ok := raw["bookmark"]; ok {
		t.Error("empty bookmark should be omitted")
	}
}

func TestLoadSnapshotMissing(t *testing.T) {
	if _, err := LoadSnapshot(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSnapshot(bad); err == nil {
		t.Error("expected error for malformed file")
	}
}
