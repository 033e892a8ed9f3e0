// Package registry implements the Format Registry and the FMT prepass that
// bootstraps it: resolving a type byte to a record layout (name, length,
// field names/codes, and a precompiled binary descriptor).
package registry

import (
	"strings"

	"github.com/joshuapare/dataflash/internal/format"
)

// FMTTypeCode is the type code of the FMT record itself.
const FMTTypeCode = 128

// FMTLength is the fixed total on-wire length of an FMT record, including
// its 3-byte header.
const FMTLength = 89

// Layout is the resolved schema for one type code: name, wire length,
// ordered field names/codes, and a precompiled descriptor.
type Layout struct {
	TypeCode   byte
	Name       string
	Length     int
	FieldNames []string
	FieldCodes []byte
	Descriptor format.Descriptor
}

// canonicalFMTLayout is the registry's permanent self-entry describing FMT
// records (spec §3 invariant: "the registry always contains a self-entry
// for the FMT record itself").
func canonicalFMTLayout() Layout {
	names := []string{"Type", "Length", "Name", "Format", "Columns"}
	codes := []byte{'B', 'B', 'n', 'N', 'Z'}
	desc, _ := format.Compile(names, codes)
	return Layout{
		TypeCode:   FMTTypeCode,
		Name:       "FMT",
		Length:     FMTLength,
		FieldNames: names,
		FieldCodes: codes,
		Descriptor: desc,
	}
}

// Snapshot is an immutable, read-only view of the Format Registry, shared
// across decoder workers without synchronization (spec §3 Ownership: "the
// Format Registry snapshot is shared read-only among workers; no worker
// mutates it").
type Snapshot struct {
	byCode map[byte]Layout
	byName map[string]byte
}

// Get resolves a type code to its layout.
func (s Snapshot) Get(typeCode byte) (Layout, bool) {
	l, ok := s.byCode[typeCode]
	return l, ok
}

// ResolveName resolves a record name to its type code.
func (s Snapshot) ResolveName(name string) (byte, bool) {
	code, ok := s.byName[name]
	return code, ok
}

// Len returns the number of registered layouts.
func (s Snapshot) Len() int { return len(s.byCode) }

// Builder accumulates layouts discovered during the FMT prepass. It is not
// safe for concurrent use; the prepass runs single-threaded, and Freeze
// hands workers an immutable Snapshot.
type Builder struct {
	byCode map[byte]Layout
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{byCode: make(map[byte]Layout)}
}

// Register adds or overwrites a layout. Duplicate type codes overwrite;
// the last definition wins (spec §4.2).
func (b *Builder) Register(l Layout) {
	b.byCode[l.TypeCode] = l
}

// Freeze produces an immutable Snapshot. If no self-entry for the FMT
// record exists, the canonical FMT layout is inserted (spec §4.2).
func (b *Builder) Freeze() Snapshot {
	if _, ok := b.byCode[FMTTypeCode]; !ok {
		b.Register(canonicalFMTLayout())
	}
	byName := make(map[string]byte, len(b.byCode))
	for code, l := range b.byCode {
		byName[l.Name] = code
	}
	return Snapshot{byCode: b.byCode, byName: byName}
}

// isAlphanumeric reports whether s consists only of ASCII letters and
// digits, and is non-empty.
func isAlphanumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		alnum := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if !alnum {
			return false
		}
	}
	return true
}

// newLayoutFromFMT builds a Layout from an FMT record's decoded fields,
// rejecting candidates whose NUL-trimmed name is not purely alphanumeric
// (spec §4.2; an intentional dialect-compatibility limit, see DESIGN.md).
func newLayoutFromFMT(typeCode byte, length int, nameRaw, formatRaw, columnsRaw []byte) (Layout, bool) {
	name := format.DecodeASCII(nameRaw)
	if !isAlphanumeric(name) {
		return Layout{}, false
	}
	formatStr := format.DecodeASCII(formatRaw)
	columnsStr := format.DecodeASCII(columnsRaw)

	codes := []byte(formatStr)
	var names []string
	if columnsStr != "" {
		names = strings.Split(columnsStr, ",")
	}

	desc, _ := format.Compile(names, codes)
	return Layout{
		TypeCode:   typeCode,
		Name:       name,
		Length:     length,
		FieldNames: names,
		FieldCodes: codes,
		Descriptor: desc,
	}, true
}
