// Package ecc provides the error correcting code encoders that can augment
// data words before they are rendered.
package ecc

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// None is the name that disables augmentation.
const None = "none"

// ErrUnknown is returned when an encoder name is not registered.
var ErrUnknown = errors.New("unknown ecc encoder")

// WordFunc returns the augmented form of a data word of the given width.
type WordFunc func(data []byte, width int) []byte

// AddressWordFunc returns the augmented form of a data word of the given width
// that is located at the given address.
type AddressWordFunc func(data []byte, width int, address uint64) []byte

// Encoder is an augmentation strategy. It wraps exactly one of the two
// function shapes, the shape is fixed when the encoder is created.
type Encoder struct {
	name        string
	description []string

	word        WordFunc
	addressWord AddressWordFunc
}

// New returns an encoder that only needs the data word and its width.
func New(name string, description []string, fn WordFunc) *Encoder {
	return &Encoder{
		name:        name,
		description: description,
		word:        fn,
	}
}

// NewAddressed returns an encoder that also takes the address of the word into account.
func NewAddressed(name string, description []string, fn AddressWordFunc) *Encoder {
	return &Encoder{
		name:        name,
		description: description,
		addressWord: fn,
	}
}

// Name returns the registry name of the encoder.
func (e *Encoder) Name() string {
	return e.name
}

// Description returns the help text lines of the encoder.
func (e *Encoder) Description() []string {
	return e.description
}

// UsesAddress returns whether the encoder includes the word address in its calculation.
func (e *Encoder) UsesAddress() bool {
	return e.addressWord != nil
}

// Encode augments the data word. The input slice is not modified.
func (e *Encoder) Encode(data []byte, width int, address uint64) []byte {
	if e.addressWord != nil {
		return e.addressWord(data, width, address)
	}
	return e.word(data, width)
}

var registry = map[string]*Encoder{}

// Register adds an encoder to the registry. It panics on duplicate names,
// registration is meant to happen during package initialization.
func Register(enc *Encoder) {
	name := strings.ToLower(enc.name)
	if name == None {
		panic("ecc: encoder name 'none' is reserved")
	}
	if _, ok := registry[name]; ok {
		panic(fmt.Sprintf("ecc: encoder '%s' registered twice", name))
	}
	registry[name] = enc
}

// Lookup returns the encoder registered for the name. The name 'none' and an
// empty name return a nil encoder without error.
func Lookup(name string) (*Encoder, error) {
	name = strings.ToLower(name)
	if name == "" || name == None {
		return nil, nil
	}

	enc, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w '%s'", ErrUnknown, name)
	}
	return enc, nil
}

// Names returns the sorted names of all registered encoders, including 'none'.
func Names() []string {
	names := make([]string, 0, len(registry)+1)
	names = append(names, None)
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names[1:])
	return names
}
