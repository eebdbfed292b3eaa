package worldfile

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/worldforge/internal/difficulty"
	"github.com/vovakirdan/worldforge/internal/tagio"
)

// CorruptCustomDataError reports that a system's own record inside a world's
// tag container could not be read. Owner names the system the data belongs
// to.
type CorruptCustomDataError struct {
	Owner difficulty.Identity
	Path  string
	Err   error
}

func (e *CorruptCustomDataError) Error() string {
	return fmt.Sprintf("worldfile: error reading custom world data for %s in %s: %v", e.Owner, e.Path, e.Err)
}

func (e *CorruptCustomDataError) Unwrap() error {
	return e.Err
}

// Decoder extracts the per-system records from a tag container.
type Decoder interface {
	ModData(buf []byte) ([]tagio.ModEntry, error)
}

// Reader reads per-system tag records of world files through a Cache.
type Reader struct {
	cache   *Cache
	decoder Decoder
	logger  *log.Logger
}

// NewReader creates a Reader decoding with tagio. A nil logger means
// log.Default().
func NewReader(cache *Cache, logger *log.Logger) *Reader {
	if logger == nil {
		logger = log.Default()
	}
	return &Reader{cache: cache, decoder: tagio.Codec{}, logger: logger}
}

// WithDecoder replaces the container decoder.
func (r *Reader) WithDecoder(d Decoder) *Reader {
	r.decoder = d
	return r
}

// Cache returns the byte cache of the reader.
func (r *Reader) Cache() *Cache {
	return r.cache
}

// ReadTag returns the record owned by owner in the tag container of the
// world at path. A missing file, a container in another format or a missing
// record all yield (nil, nil). A record that exists but cannot be read
// yields a *CorruptCustomDataError.
func (r *Reader) ReadTag(path string, loc Location, owner difficulty.Identity) (*tagio.Compound, error) {
	path = WithExt(path, TagExt)

	if !r.cache.Source().Exists(path, loc) {
		return nil, nil
	}

	buf, err := r.cache.Read(Key{Path: path, Location: loc})
	if err != nil {
		r.logger.Debug("tag container unreadable", "path", path, "location", loc, "err", err)
		return nil, nil
	}
	if !tagio.HasMagic(buf) {
		return nil, nil
	}

	entries, err := r.decoder.ModData(buf)
	if err != nil {
		return nil, fmt.Errorf("worldfile: decode %s: %w", path, err)
	}

	for _, e := range entries {
		if e.Mod != owner.Origin || e.Name != owner.Name {
			continue
		}
		data, err := e.Data()
		if err != nil {
			cerr := &CorruptCustomDataError{Owner: owner, Path: path, Err: err}
			r.logger.Error("corrupt custom world data", "owner", owner, "path", path, "err", err)
			return nil, cerr
		}
		return data, nil
	}
	return nil, nil
}
