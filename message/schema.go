// ABOUTME: Schema is a declarative variant table for one outer message type; ControlID addresses one variant.
// ABOUTME: Msg is the tagged value travelling through pools: schema, variant index and the wrapped widget event.
package message

import (
	"fmt"
	"reflect"
	"strings"
)

// Schema declares an outer message type as a table of named variants, one per
// widget event channel. Variants are added with Define and the table is
// validated once by Seal; messages can only be built from a sealed schema.
type Schema struct {
	name     string
	variants []variant
	sealed   bool
}

type variant struct {
	name      string
	eventType reflect.Type
}

// NewSchema creates an empty, unsealed schema.
func NewSchema(name string) *Schema {
	return &Schema{name: name}
}

// Name returns the schema name.
func (s *Schema) Name() string {
	return s.name
}

// Variants returns the variant names in declaration order.
func (s *Schema) Variants() []string {
	names := make([]string, len(s.variants))
	for i, v := range s.variants {
		names[i] = v.name
	}
	return names
}

// VariantInfo describes one row of the variant table.
type VariantInfo struct {
	Name      string
	EventType string
}

// Table returns the variant table in declaration order.
func (s *Schema) Table() []VariantInfo {
	rows := make([]VariantInfo, len(s.variants))
	for i, v := range s.variants {
		rows[i] = VariantInfo{Name: v.name, EventType: v.eventType.String()}
	}
	return rows
}

// Sealed reports whether Seal has succeeded.
func (s *Schema) Sealed() bool {
	return s.sealed
}

// Seal validates the variant table and freezes it. The table must be
// non-empty and variant names must be unique and non-empty. Addresses are
// variant indexes, so each message is claimed by exactly one ControlID.
func (s *Schema) Seal() error {
	if s.sealed {
		return nil
	}
	if strings.TrimSpace(s.name) == "" {
		return fmt.Errorf("schema: empty name")
	}
	if len(s.variants) == 0 {
		return fmt.Errorf("schema %s: no variants", s.name)
	}
	seen := make(map[string]bool, len(s.variants))
	for _, v := range s.variants {
		if strings.TrimSpace(v.name) == "" {
			return fmt.Errorf("schema %s: variant with empty name", s.name)
		}
		if seen[v.name] {
			return fmt.Errorf("schema %s: duplicate variant %q", s.name, v.name)
		}
		seen[v.name] = true
	}
	s.sealed = true
	return nil
}

// MustSeal is Seal for package-level declarations; it panics on a malformed table.
func (s *Schema) MustSeal() *Schema {
	if err := s.Seal(); err != nil {
		panic(err)
	}
	return s
}

// ControlID addresses one widget's event channel inside an outer message
// type: the typed mapping E -> Msg for a single schema variant. Two ids are
// equal (==) iff they name the same variant of the same schema.
type ControlID[E any] struct {
	schema  *Schema
	variant int
}

// Define appends a variant carrying events of type E to the schema and
// returns its address. Defining on a sealed schema panics.
func Define[E any](s *Schema, name string) ControlID[E] {
	if s.sealed {
		panic(fmt.Sprintf("schema %s: define %q after seal", s.name, name))
	}
	s.variants = append(s.variants, variant{
		name:      name,
		eventType: reflect.TypeFor[E](),
	})
	return ControlID[E]{schema: s, variant: len(s.variants) - 1}
}

// Wrap builds the message for event e on this address.
func (id ControlID[E]) Wrap(e E) Msg {
	if id.schema == nil {
		panic("message: wrap with zero ControlID")
	}
	if !id.schema.sealed {
		panic(fmt.Sprintf("schema %s: wrap before seal", id.schema.name))
	}
	return Msg{schema: id.schema, variant: id.variant, event: e}
}

// Matches reports whether m is the variant this id constructs.
func (id ControlID[E]) Matches(m Msg) bool {
	return id.schema != nil && m.schema == id.schema && m.variant == id.variant
}

// IsZero reports whether the id was never defined.
func (id ControlID[E]) IsZero() bool {
	return id.schema == nil
}

// Name returns the variant name.
func (id ControlID[E]) Name() string {
	if id.schema == nil {
		return ""
	}
	return id.schema.variants[id.variant].name
}

// String returns "schema.Variant".
func (id ControlID[E]) String() string {
	if id.schema == nil {
		return "<nil>"
	}
	return id.schema.name + "." + id.Name()
}

// Same reports whether a and b address the same channel by wrapping a
// placeholder event with a and asking b to recognise it.
func Same[E any](a, b ControlID[E]) bool {
	if a.schema == nil || b.schema == nil {
		return a.schema == b.schema
	}
	var placeholder E
	return b.Matches(Msg{schema: a.schema, variant: a.variant, event: placeholder})
}

// Msg is an opaque tagged value: one variant of one schema wrapping that
// widget kind's event. The zero Msg belongs to no schema.
type Msg struct {
	schema  *Schema
	variant int
	event   any
}

// Schema returns the schema the message belongs to, or nil for the zero Msg.
func (m Msg) Schema() *Schema {
	return m.schema
}

// Variant returns the variant name, or "" for the zero Msg.
func (m Msg) Variant() string {
	if m.schema == nil {
		return ""
	}
	return m.schema.variants[m.variant].name
}

// Address returns "schema.Variant" for the message's channel.
func (m Msg) Address() string {
	if m.schema == nil {
		return "<nil>"
	}
	return m.schema.name + "." + m.Variant()
}

// Event returns the wrapped event.
func (m Msg) Event() any {
	return m.event
}

// String renders the message as "schema.Variant(event)".
func (m Msg) String() string {
	if m.schema == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s(%v)", m.Address(), m.event)
}
