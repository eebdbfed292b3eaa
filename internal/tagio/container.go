package tagio

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/x/bsonx/bsoncore"
)

// ModDataKey names the list of per-system records in a container root.
const ModDataKey = "modData"

// Magic is the two-byte signature every container starts with (gzip).
var Magic = [2]byte{0x1F, 0x8B}

// ErrNotCompressed is returned when a buffer lacks the gzip signature.
var ErrNotCompressed = errors.New("tagio: missing compressed container signature")

// ErrTooLarge is returned when a container inflates past MaxInflatedSize.
var ErrTooLarge = errors.New("tagio: container too large")

// MaxInflatedSize caps the decompressed size of a container.
var MaxInflatedSize int64 = 16 << 20

// HasMagic reports whether buf starts with the container signature.
func HasMagic(buf []byte) bool {
	return len(buf) >= 2 && buf[0] == Magic[0] && buf[1] == Magic[1]
}

// ModEntry is one {mod, name, data} record from the modData list.
// Data is decoded lazily so that a broken record only fails its owner.
type ModEntry struct {
	Mod  string
	Name string
	data bson.RawValue
}

// NewModEntry builds a record for writing.
func NewModEntry(mod, name string, data *Compound) (ModEntry, error) {
	raw, err := bson.Marshal(data.D())
	if err != nil {
		return ModEntry{}, fmt.Errorf("tagio: marshal data for %s/%s: %w", mod, name, err)
	}
	return ModEntry{
		Mod:  mod,
		Name: name,
		data: bson.RawValue{Type: bson.TypeEmbeddedDocument, Value: raw},
	}, nil
}

// Data decodes the nested data record.
func (e ModEntry) Data() (*Compound, error) {
	if e.data.Type == 0 {
		return NewCompound(), nil
	}
	doc, ok := e.data.DocumentOK()
	if !ok {
		return nil, fmt.Errorf("tagio: data for %s/%s is %s, not a document", e.Mod, e.Name, e.data.Type)
	}
	var d bson.D
	if err := bson.Unmarshal(doc, &d); err != nil {
		return nil, fmt.Errorf("tagio: data for %s/%s: %w", e.Mod, e.Name, err)
	}
	return FromD(d), nil
}

// Inflate checks the signature, decompresses buf and validates the BSON root.
// The returned document can be queried without decoding it fully.
func Inflate(buf []byte) (bson.Raw, error) {
	if !HasMagic(buf) {
		return nil, ErrNotCompressed
	}
	zr, err := gzip.NewReader(bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("tagio: open gzip stream: %w", err)
	}
	defer zr.Close()

	body, err := io.ReadAll(io.LimitReader(zr, MaxInflatedSize+1))
	if err != nil {
		return nil, fmt.Errorf("tagio: inflate: %w", err)
	}
	if int64(len(body)) > MaxInflatedSize {
		return nil, ErrTooLarge
	}
	root := bson.Raw(body)
	if err := root.Validate(); err != nil {
		return nil, fmt.Errorf("tagio: invalid root document: %w", err)
	}
	return root, nil
}

// ModData lists the records under ModDataKey. A root without the list has
// no records. Only the identifying strings are read here.
func ModData(root bson.Raw) ([]ModEntry, error) {
	val, err := root.LookupErr(ModDataKey)
	if err != nil {
		if errors.Is(err, bsoncore.ErrElementNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("tagio: lookup %s: %w", ModDataKey, err)
	}
	arr, ok := val.ArrayOK()
	if !ok {
		return nil, fmt.Errorf("tagio: %s is %s, not a list", ModDataKey, val.Type)
	}
	values, err := arr.Values()
	if err != nil {
		return nil, fmt.Errorf("tagio: read %s: %w", ModDataKey, err)
	}

	entries := make([]ModEntry, 0, len(values))
	for i, v := range values {
		doc, ok := v.DocumentOK()
		if !ok {
			return nil, fmt.Errorf("tagio: %s[%d] is %s, not a compound", ModDataKey, i, v.Type)
		}
		mod, _ := doc.Lookup("mod").StringValueOK()
		name, _ := doc.Lookup("name").StringValueOK()
		data, _ := doc.LookupErr("data")
		entries = append(entries, ModEntry{Mod: mod, Name: name, data: data})
	}
	return entries, nil
}

// Codec decodes whole container buffers into their modData records.
type Codec struct{}

// ModData inflates buf and lists its records.
func (Codec) ModData(buf []byte) ([]ModEntry, error) {
	root, err := Inflate(buf)
	if err != nil {
		return nil, err
	}
	return ModData(root)
}

// Encode writes a container holding entries under ModDataKey plus any extra
// root fields.
func Encode(w io.Writer, root *Compound, entries []ModEntry) error {
	list := make(bson.A, 0, len(entries))
	for _, e := range entries {
		rec := bson.D{
			{Key: "mod", Value: e.Mod},
			{Key: "name", Value: e.Name},
		}
		if e.data.Type != 0 {
			rec = append(rec, bson.E{Key: "data", Value: e.data})
		}
		list = append(list, rec)
	}

	doc := NewCompound()
	for _, f := range root.D() {
		if f.Key != ModDataKey {
			doc.Set(f.Key, f.Value)
		}
	}
	doc.Set(ModDataKey, list)

	body, err := bson.Marshal(doc.D())
	if err != nil {
		return fmt.Errorf("tagio: marshal container: %w", err)
	}

	zw := gzip.NewWriter(w)
	if _, err := zw.Write(body); err != nil {
		zw.Close()
		return fmt.Errorf("tagio: compress container: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("tagio: compress container: %w", err)
	}
	return nil
}

// Marshal is Encode into a fresh buffer.
func Marshal(root *Compound, entries []ModEntry) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, root, entries); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
