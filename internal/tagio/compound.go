// Package tagio reads and writes the structured tag container that carries
// per-system metadata next to a world file. A container is a gzip stream
// wrapping a single BSON document; the list under "modData" holds one
// {mod, name, data} record per owning system.
package tagio

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// Compound is an ordered, string-keyed tag record.
// The zero value is an empty record ready to use.
type Compound struct {
	d bson.D
}

// NewCompound creates an empty record.
func NewCompound() *Compound {
	return &Compound{}
}

// FromD wraps an existing BSON document.
func FromD(d bson.D) *Compound {
	return &Compound{d: d}
}

// D returns the underlying document for marshaling.
func (c *Compound) D() bson.D {
	if c == nil {
		return bson.D{}
	}
	if c.d == nil {
		return bson.D{}
	}
	return c.d
}

// Len returns the number of fields.
func (c *Compound) Len() int {
	if c == nil {
		return 0
	}
	return len(c.d)
}

// Set adds or replaces a field, keeping the original position on replace.
func (c *Compound) Set(key string, value any) {
	if sub, ok := value.(*Compound); ok {
		value = sub.D()
	}
	for i := range c.d {
		if c.d[i].Key == key {
			c.d[i].Value = value
			return
		}
	}
	c.d = append(c.d, bson.E{Key: key, Value: value})
}

// Get returns the raw field value.
func (c *Compound) Get(key string) (any, bool) {
	if c == nil {
		return nil, false
	}
	for _, e := range c.d {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// Has reports whether the field exists.
func (c *Compound) Has(key string) bool {
	_, ok := c.Get(key)
	return ok
}

// TryGetString returns the field only when it exists and holds a string.
func (c *Compound) TryGetString(key string) (string, bool) {
	v, ok := c.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// GetCompound returns a nested record. A missing key yields an empty record;
// a key holding something other than a document is an error.
func (c *Compound) GetCompound(key string) (*Compound, error) {
	v, ok := c.Get(key)
	if !ok {
		return NewCompound(), nil
	}
	return toCompound(key, v)
}

func toCompound(key string, v any) (*Compound, error) {
	switch t := v.(type) {
	case bson.D:
		return FromD(t), nil
	case *Compound:
		return t, nil
	case bson.M:
		d := make(bson.D, 0, len(t))
		for k, val := range t {
			d = append(d, bson.E{Key: k, Value: val})
		}
		return FromD(d), nil
	case bson.Raw:
		var d bson.D
		if err := bson.Unmarshal(t, &d); err != nil {
			return nil, fmt.Errorf("tagio: field %q: %w", key, err)
		}
		return FromD(d), nil
	default:
		return nil, fmt.Errorf("tagio: field %q holds %T, not a compound", key, v)
	}
}
