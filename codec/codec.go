// Package codec encodes benchmark reports for archives and command output.
//
// Archive blob names end in the codec extension followed by the compression
// extension, e.g. "<run>.json.zst".
package codec

import (
	"fmt"
	"slices"
)

// Codec encodes and decodes reports. Implementations are safe for
// concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
	// Ext returns the blob name extension, including the dot.
	Ext() string
}

// Default is the codec used for new archives.
var Default Codec = JSON{Indent: "  "}

var builtin = []Codec{Default, JSON{}}

// ByName returns a built-in codec: "json" (indented) or "json-compact".
func ByName(name string) (Codec, bool) {
	i := slices.IndexFunc(builtin, func(c Codec) bool { return c.Name() == name })
	if i < 0 {
		return nil, false
	}
	return builtin[i], true
}

// Names lists the built-in codec names.
func Names() []string {
	names := make([]string, len(builtin))
	for i, c := range builtin {
		names[i] = c.Name()
	}
	return names
}

// MustMarshal encodes v with c, or Default when c is nil, and panics on
// failure. Meant for tests and fixtures.
func MustMarshal(c Codec, v any) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("codec %s: %w", c.Name(), err))
	}
	return b
}
