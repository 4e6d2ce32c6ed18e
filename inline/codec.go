package inline

import (
	"encoding/json"

	"github.com/vmihailenco/msgpack/v5"
)

// Serialization treats a Str as a plain string scalar; the fixed-size
// buffer layout is never part of the wire representation.

// MarshalText implements encoding.TextMarshaler.
func (s Str) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
// It fails with *errs.StringTooLongError when text exceeds MaxLen bytes.
func (s *Str) UnmarshalText(text []byte) error {
	decoded, err := From(text)
	if err != nil {
		return err
	}
	*s = decoded

	return nil
}

// MarshalJSON implements json.Marshaler, encoding the content as a JSON string.
func (s Str) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements json.Unmarshaler.
// It fails with *errs.StringTooLongError when the decoded string exceeds MaxLen bytes.
func (s *Str) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return err
	}

	decoded, err := FromString(text)
	if err != nil {
		return err
	}
	*s = decoded

	return nil
}

// EncodeMsgpack implements msgpack.CustomEncoder, encoding the content as a
// msgpack string.
func (s Str) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.EncodeString(s.String())
}

// DecodeMsgpack implements msgpack.CustomDecoder.
// It fails with *errs.StringTooLongError when the decoded string exceeds MaxLen bytes.
func (s *Str) DecodeMsgpack(dec *msgpack.Decoder) error {
	text, err := dec.DecodeString()
	if err != nil {
		return err
	}

	decoded, err := FromString(text)
	if err != nil {
		return err
	}
	*s = decoded

	return nil
}

var (
	_ msgpack.CustomEncoder = Str{}
	_ msgpack.CustomDecoder = (*Str)(nil)
)
