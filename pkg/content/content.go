// Package content implements Content, the opaque {bytes, kind} carrier
// stored at each path of a ContentArea. Encoding and decoding between
// bytes and typed views is out of core scope (spec §1): a Content is
// constructed only through a caller-supplied ContentFactory and compared
// only by its raw bytes.
package content

import "github.com/nanovc/nanovc/pkg/textutil"

// Kind tags which polymorphic view a Content was constructed from.
type Kind int

const (
	// KindBytes is raw, untagged byte content.
	KindBytes Kind = iota
	// KindString is content constructed from a string, default charset UTF-8.
	KindString
	// KindEncodedString is string content with an explicit charset.
	KindEncodedString
)

// String returns the name of k, for diagnostics and asListString reprs.
func (k Kind) String() string {
	switch k {
	case KindBytes:
		return "Bytes"
	case KindString:
		return "String"
	case KindEncodedString:
		return "EncodedString"
	default:
		return "Unknown"
	}
}

// DefaultCharset is the charset attribute used for KindString content.
const DefaultCharset = "UTF-8"

// Content is an opaque carrier with two polymorphic views: AsByteArray
// returns the borrowed byte sequence; Kind reports which view constructed
// it. Equality of content is equality of bytes, never of Kind or Charset.
type Content struct {
	bytes   []byte
	kind    Kind
	charset string
}

// NewBytes builds Bytes-kind content. The caller's slice is not copied;
// pass only bytes the caller will not mutate afterward.
func NewBytes(b []byte) Content {
	return Content{bytes: b, kind: KindBytes}
}

// NewString builds String-kind content with DefaultCharset.
func NewString(s string) Content {
	return Content{bytes: []byte(s), kind: KindString, charset: DefaultCharset}
}

// NewEncodedString builds EncodedString-kind content with an explicit charset.
// The charset attribute is recorded at construction only; it plays no role
// in equality.
func NewEncodedString(s, charset string) Content {
	return Content{bytes: []byte(s), kind: KindEncodedString, charset: charset}
}

// AsByteArray returns the borrowed byte sequence backing c.
func (c Content) AsByteArray() []byte {
	return c.bytes
}

// Kind reports which polymorphic view constructed c.
func (c Content) Kind() Kind {
	return c.kind
}

// Charset reports the charset attribute recorded at construction; empty
// for KindBytes.
func (c Content) Charset() string {
	return c.charset
}

// String returns c's string view, valid for KindString and KindEncodedString.
func (c Content) String() string {
	return string(c.bytes)
}

// IsBinary reports whether c's bytes look binary (a null byte within the
// first textutil.BinarySniffLength bytes), the same heuristic Git uses to
// decide whether a blob is diffable text.
func (c Content) IsBinary() bool {
	return textutil.IsBinary(c.bytes)
}

// Equal reports whether c and other carry byte-for-byte identical content,
// per spec: "equality of content is equality of bytes".
func (c Content) Equal(other Content) bool {
	return bytesEqual(c.bytes, other.bytes)
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

// Repr renders c the way asListString expects: a quoted value for string
// content, the raw byte-derived string otherwise.
func (c Content) Repr() string {
	switch c.kind {
	case KindString, KindEncodedString:
		return "'" + string(c.bytes) + "'"
	case KindBytes:
		return string(c.bytes)
	default:
		return string(c.bytes)
	}
}

// Factory re-wraps interned bytes back into typed Content of the given
// kind, mirroring the host-supplied "content factory" of spec §1.
type Factory func(b []byte, kind Kind) Content

// DefaultFactory builds Content preserving kind for KindBytes and KindString,
// defaulting EncodedString back to DefaultCharset (the original charset is
// not carried by the snapshot, per spec §3: only bytes and kind are stored).
func DefaultFactory() Factory {
	return func(b []byte, kind Kind) Content {
		switch kind {
		case KindString:
			return Content{bytes: b, kind: KindString, charset: DefaultCharset}
		case KindEncodedString:
			return Content{bytes: b, kind: KindEncodedString, charset: DefaultCharset}
		case KindBytes:
			return Content{bytes: b, kind: KindBytes}
		default:
			return Content{bytes: b, kind: KindBytes}
		}
	}
}
