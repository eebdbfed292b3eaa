package tagio

import (
	"bytes"
	"errors"
	"testing"

	"github.com/klauspost/compress/gzip"
	"go.mongodb.org/mongo-driver/bson"
)

// gzipDoc compresses an arbitrary BSON document the way a container is written.
func gzipDoc(t *testing.T, doc bson.D) []byte {
	t.Helper()
	body, err := bson.Marshal(doc)
	if err != nil {
		t.Fatalf("bson.Marshal() failed: %v", err)
	}
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(body); err != nil {
		t.Fatalf("gzip write failed: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("gzip close failed: %v", err)
	}
	return buf.Bytes()
}

func TestMarshalStartsWithMagic(t *testing.T) {
	buf, err := Marshal(nil, nil)
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	if !HasMagic(buf) {
		t.Fatalf("container does not start with 0x1F 0x8B: % x", buf[:2])
	}
}

func TestModDataRoundTrip(t *testing.T) {
	data := NewCompound()
	data.Set("ModDifficultySource", "Calamity")
	data.Set("ModDifficultyName", "Death")

	entry, err := NewModEntry("WorldForge", "DifficultySystem", data)
	if err != nil {
		t.Fatalf("NewModEntry() failed: %v", err)
	}
	other, err := NewModEntry("Other", "System", NewCompound())
	if err != nil {
		t.Fatalf("NewModEntry() failed: %v", err)
	}

	root := NewCompound()
	root.Set("version", int32(1))
	buf, err := Marshal(root, []ModEntry{other, entry})
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}

	entries, err := Codec{}.ModData(buf)
	if err != nil {
		t.Fatalf("ModData() failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[1].Mod != "WorldForge" || entries[1].Name != "DifficultySystem" {
		t.Errorf("unexpected identity %s/%s", entries[1].Mod, entries[1].Name)
	}

	got, err := entries[1].Data()
	if err != nil {
		t.Fatalf("Data() failed: %v", err)
	}
	if s, ok := got.TryGetString("ModDifficultySource"); !ok || s != "Calamity" {
		t.Errorf("ModDifficultySource = %q, %v", s, ok)
	}
	if s, ok := got.TryGetString("ModDifficultyName"); !ok || s != "Death" {
		t.Errorf("ModDifficultyName = %q, %v", s, ok)
	}
}

func TestInflateRejectsUncompressed(t *testing.T) {
	_, err := Inflate([]byte("plain world file"))
	if !errors.Is(err, ErrNotCompressed) {
		t.Errorf("expected ErrNotCompressed, got %v", err)
	}
	_, err = Inflate([]byte{0x1F})
	if !errors.Is(err, ErrNotCompressed) {
		t.Errorf("expected ErrNotCompressed for short buffer, got %v", err)
	}
}

func TestInflateSizeLimit(t *testing.T) {
	prev := MaxInflatedSize
	MaxInflatedSize = 64
	t.Cleanup(func() { MaxInflatedSize = prev })

	buf := gzipDoc(t, bson.D{{Key: "pad", Value: string(make([]byte, 256))}})
	if _, err := Inflate(buf); !errors.Is(err, ErrTooLarge) {
		t.Errorf("expected ErrTooLarge, got %v", err)
	}

	small := gzipDoc(t, bson.D{{Key: "a", Value: "b"}})
	if _, err := Inflate(small); err != nil {
		t.Errorf("Inflate() of a small container failed: %v", err)
	}
}

func TestModDataMissingList(t *testing.T) {
	buf := gzipDoc(t, bson.D{{Key: "header", Value: "x"}})
	entries, err := Codec{}.ModData(buf)
	if err != nil {
		t.Fatalf("ModData() failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}
}

func TestModDataNotAList(t *testing.T) {
	buf := gzipDoc(t, bson.D{{Key: ModDataKey, Value: "broken"}})
	if _, err := (Codec{}).ModData(buf); err == nil {
		t.Error("expected error when modData is not a list")
	}
}

func TestEntryDataMalformed(t *testing.T) {
	buf := gzipDoc(t, bson.D{{Key: ModDataKey, Value: bson.A{
		bson.D{{Key: "mod", Value: "A"}, {Key: "name", Value: "B"}, {Key: "data", Value: "not a compound"}},
	}}})
	entries, err := Codec{}.ModData(buf)
	if err != nil {
		t.Fatalf("ModData() failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if _, err := entries[0].Data(); err == nil {
		t.Error("expected error decoding non-document data")
	}
}

func TestEntryWithoutData(t *testing.T) {
	buf := gzipDoc(t, bson.D{{Key: ModDataKey, Value: bson.A{
		bson.D{{Key: "mod", Value: "A"}, {Key: "name", Value: "B"}},
	}}})
	entries, err := Codec{}.ModData(buf)
	if err != nil {
		t.Fatalf("ModData() failed: %v", err)
	}
	data, err := entries[0].Data()
	if err != nil {
		t.Fatalf("Data() failed: %v", err)
	}
	if data.Len() != 0 {
		t.Errorf("expected empty compound, got %d fields", data.Len())
	}
}
