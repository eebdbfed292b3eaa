package worldlist

import (
	"bytes"
	"errors"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/klauspost/compress/gzip"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/vovakirdan/worldforge/internal/core"
	"github.com/vovakirdan/worldforge/internal/difficulty"
	"github.com/vovakirdan/worldforge/internal/storage"
	"github.com/vovakirdan/worldforge/internal/tagio"
	"github.com/vovakirdan/worldforge/internal/worldfile"
)

type memSource struct {
	files map[worldfile.Key][]byte
	reads int
}

func (s *memSource) Exists(path string, loc worldfile.Location) bool {
	_, ok := s.files[worldfile.Key{Path: path, Location: loc}]
	return ok
}

func (s *memSource) ReadAll(path string, loc worldfile.Location) ([]byte, error) {
	s.reads++
	buf, ok := s.files[worldfile.Key{Path: path, Location: loc}]
	if !ok {
		return nil, worldfile.ErrNotFound
	}
	return buf, nil
}

type staticIndex []storage.WorldRecord

func (i staticIndex) Worlds() ([]storage.WorldRecord, error) { return i, nil }

type death struct{ difficulty.Base }

func (death) Origin() string        { return "Calamity" }
func (death) Name() string          { return "Death" }
func (death) DisplayName() string   { return "Death Mode" }
func (death) TextColor() core.Color { return core.ColorMagenta }

func containerFor(t *testing.T, origin, name string) []byte {
	t.Helper()
	data := tagio.NewCompound()
	data.Set(difficulty.KeySource, origin)
	data.Set(difficulty.KeyName, name)
	e, err := tagio.NewModEntry(difficulty.SystemIdentity.Origin, difficulty.SystemIdentity.Name, data)
	if err != nil {
		t.Fatal(err)
	}
	buf, err := tagio.Marshal(nil, []tagio.ModEntry{e})
	if err != nil {
		t.Fatal(err)
	}
	return buf
}

func setup(t *testing.T, reg *difficulty.Registry) (*Lister, *memSource) {
	t.Helper()
	src := &memSource{files: map[worldfile.Key][]byte{
		{Path: "a.twld", Location: worldfile.Local}: containerFor(t, "Calamity", "Death"),
		{Path: "b.twld", Location: worldfile.Cloud}: containerFor(t, "Gone", "Mode"),
	}}
	index := staticIndex{
		{Name: "Classic World", Path: "c.wld", GameMode: 0, Width: 4200},
		{Name: "Master World", Path: "m.wld", GameMode: 2, Width: 8400},
		{Name: "Death World", Path: "a.wld", GameMode: 4, Width: 6400},
		{Name: "Gone World", Path: "b.wld", Cloud: true, GameMode: 4, Width: 4200},
		{Name: "Missing Tag", Path: "x.wld", GameMode: 4, Width: 4200},
	}
	logger := log.New(&bytes.Buffer{})
	reader := worldfile.NewReader(worldfile.NewCache(src), logger)
	return NewLister(index, reader, reg, logger), src
}

func TestEntries(t *testing.T) {
	reg := difficulty.NewRegistry()
	_ = reg.Register(death{})
	l, _ := setup(t, reg)

	entries, err := l.Entries()
	if err != nil {
		t.Fatalf("Entries() failed: %v", err)
	}

	tests := []struct {
		label    string
		color    core.Color
		unloaded bool
	}{
		{"Classic", core.ColorWhite, false},
		{"Master", core.ColorBrightRed, false},
		{"Death Mode", core.ColorMagenta, false},
		{UnloadedLabel, core.ColorGray, true},
		{UnloadedLabel, core.ColorGray, true},
	}
	for i, tc := range tests {
		e := entries[i]
		if e.Label != tc.label || e.Color != tc.color || e.Unloaded != tc.unloaded {
			t.Errorf("%s: label %q %v unloaded=%v, expected %q %v %v",
				e.Name, e.Label, e.Color, e.Unloaded, tc.label, tc.color, tc.unloaded)
		}
	}
	if entries[2].Size != core.SizeMedium || entries[3].Location != worldfile.Cloud {
		t.Errorf("unexpected size/location: %v %v", entries[2].Size, entries[3].Location)
	}
}

func TestLabelsAreMemoized(t *testing.T) {
	reg := difficulty.NewRegistry()
	l, src := setup(t, reg)

	first, _ := l.Entries()
	if first[2].Label != UnloadedLabel {
		t.Fatalf("expected unloaded before registration, got %q", first[2].Label)
	}
	reads := src.reads

	_ = reg.Register(death{})
	second, _ := l.Entries()
	if second[2].Label != UnloadedLabel {
		t.Error("label recomputed within the session")
	}
	if src.reads != reads {
		t.Errorf("reads = %d, expected %d", src.reads, reads)
	}

	l.Reset()
	third, _ := l.Entries()
	if third[2].Label != "Death Mode" {
		t.Errorf("label after Reset = %q", third[2].Label)
	}
}

func TestCorruptEntry(t *testing.T) {
	body, _ := bson.Marshal(bson.D{{Key: tagio.ModDataKey, Value: bson.A{
		bson.D{
			{Key: "mod", Value: difficulty.SystemIdentity.Origin},
			{Key: "name", Value: difficulty.SystemIdentity.Name},
			{Key: "data", Value: int32(7)},
		},
	}}})
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, _ = zw.Write(body)
	_ = zw.Close()

	src := &memSource{files: map[worldfile.Key][]byte{
		{Path: "bad.twld", Location: worldfile.Local}: buf.Bytes(),
	}}
	logger := log.New(&bytes.Buffer{})
	l := NewLister(staticIndex{{Name: "Bad", Path: "bad.wld", GameMode: 4}},
		worldfile.NewReader(worldfile.NewCache(src), logger), difficulty.NewRegistry(), logger)

	entries, err := l.Entries()
	if err != nil {
		t.Fatal(err)
	}
	var cerr *worldfile.CorruptCustomDataError
	if !errors.As(entries[0].Err, &cerr) {
		t.Errorf("Err = %v, expected CorruptCustomDataError", entries[0].Err)
	}
	if !entries[0].Unloaded {
		t.Error("corrupt entry should show as unloaded")
	}
}
