package smallstr

import "github.com/vmihailenco/msgpack/v5"

// A String serializes as a plain string scalar; the storage mode is not
// part of the wire representation. encoding/json picks these up through the
// encoding.TextMarshaler interfaces.

// MarshalText implements encoding.TextMarshaler.
func (s *String) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. The storage mode is
// re-derived from the decoded length.
func (s *String) UnmarshalText(text []byte) error {
	s.Reset()
	s.Write(text) //nolint:errcheck // never fails

	return nil
}

// EncodeMsgpack implements msgpack.CustomEncoder.
func (s *String) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.EncodeString(s.String())
}

// DecodeMsgpack implements msgpack.CustomDecoder.
func (s *String) DecodeMsgpack(dec *msgpack.Decoder) error {
	text, err := dec.DecodeString()
	if err != nil {
		return err
	}
	s.Reset()
	s.WriteString(text) //nolint:errcheck // never fails

	return nil
}

var (
	_ msgpack.CustomEncoder = (*String)(nil)
	_ msgpack.CustomDecoder = (*String)(nil)
)
