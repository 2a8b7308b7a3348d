// Package codec converts store entities to and from the line-oriented text
// representation used by the flat-file repositories. One entity maps to one
// `;`-delimited line; the order product map nests `|`-separated id:qty pairs
// inside a single field.
package codec

// Field and pair delimiters of the persisted format. These are fixed by the
// file contract and must not change between releases.
const (
	FieldSep = ";"
	PairSep  = "|"
	KVSep    = ":"
)

// TimeLayout is the locale-independent timestamp format used in order lines.
const TimeLayout = "2006-01-02T15:04:05"

// LineCodec encodes one entity as one text line and decodes it back.
// Decode returns an error when the line does not split into the expected
// field count, a numeric field does not parse, or an enum symbol is unknown.
type LineCodec[T any] interface {
	Encode(v T) string
	Decode(line string) (T, error)
}
