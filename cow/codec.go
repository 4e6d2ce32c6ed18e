package cow

import (
	"encoding/json"

	"github.com/vmihailenco/msgpack/v5"
)

// A Str serializes as a plain string scalar in every format; the active
// variant is not part of the wire representation. Decoding re-applies the
// construction policy to the decoded text with no borrow source available:
// short content decodes as Inlined, long content as Owned, and Borrowed is
// never a decode result.

// decodeString applies the no-borrow-source construction policy to text the
// decoder has handed over ownership of.
func decodeString(text string) Str {
	s := From(text)
	if s.IsBorrowed() {
		// The decoder's buffer is not a stable borrow source; take a
		// private copy.
		return Own(text)
	}

	return s
}

// MarshalText implements encoding.TextMarshaler.
func (s Str) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Str) UnmarshalText(text []byte) error {
	*s = decodeString(string(text))
	return nil
}

// MarshalJSON implements json.Marshaler, encoding the content as a JSON string.
func (s Str) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Str) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return err
	}
	*s = decodeString(text)

	return nil
}

// EncodeMsgpack implements msgpack.CustomEncoder, encoding the content as a
// msgpack string.
func (s Str) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.EncodeString(s.String())
}

// DecodeMsgpack implements msgpack.CustomDecoder.
func (s *Str) DecodeMsgpack(dec *msgpack.Decoder) error {
	text, err := dec.DecodeString()
	if err != nil {
		return err
	}
	*s = decodeString(text)

	return nil
}

var (
	_ msgpack.CustomEncoder = Str{}
	_ msgpack.CustomDecoder = (*Str)(nil)
)
