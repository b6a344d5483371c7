package types

import "fmt"

// ExportType describes what a binding evaluates to: markup or anything else,
// available synchronously or only after an await.
//
// Значения упорядочены по приоритету; числовое значение и есть
// сохраняемая кодировка (2 бита).
type ExportType uint8

const (
	Other ExportType = iota
	DeferredOther
	Markup
	DeferredMarkup
)

// NumExportTypes is the size of the lattice.
const NumExportTypes = 4

func (t ExportType) String() string {
	switch t {
	case Other:
		return "other"
	case DeferredOther:
		return "deferred-other"
	case Markup:
		return "markup"
	case DeferredMarkup:
		return "deferred-markup"
	default:
		return fmt.Sprintf("ExportType(%d)", t)
	}
}

// Valid reports whether t is one of the four lattice values.
func (t ExportType) Valid() bool {
	return t < NumExportTypes
}

// IsMarkup reports Markup and DeferredMarkup.
func (t ExportType) IsMarkup() bool {
	return t == Markup || t == DeferredMarkup
}

// IsDeferred reports DeferredMarkup and DeferredOther.
func (t ExportType) IsDeferred() bool {
	return t == DeferredMarkup || t == DeferredOther
}

// Awaited is the type of `await x` for x of type t.
func Awaited(t ExportType) ExportType {
	switch t {
	case Markup:
		return DeferredMarkup
	case Other:
		return DeferredOther
	}
	return t
}

// Join merges the types of two control-flow branches.
func Join(a, b ExportType) ExportType {
	return max(a, b)
}

// ParseExportType is the inverse of String.
func ParseExportType(s string) (ExportType, error) {
	for t := Other; t < NumExportTypes; t++ {
		if t.String() == s {
			return t, nil
		}
	}
	return Other, fmt.Errorf("unknown export type %q", s)
}

// MarshalText lets Exports print as readable yaml/json.
func (t ExportType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid export type %d", uint8(t))
	}
	return []byte(t.String()), nil
}

func (t *ExportType) UnmarshalText(text []byte) error {
	v, err := ParseExportType(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
