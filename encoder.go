package securesession

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"time"
)

// Payload schema: the plaintext that lives inside the AEAD envelope (or the
// signed claim of a JWS token). Versioned and append-only.
//
//	byte  0       payload version (currently 1)
//	byte  1       flags (bit 0: expires present)
//	8 bytes       expires as int64 UnixNano, big endian (iff bit 0 set)
//	4 bytes       entry count, uint32 big endian
//	per entry     2-byte key length, key, 4-byte value length, value
//
// Entries are written in sorted key order so the same transport always
// encodes to the same bytes.
const (
	payloadVersion     = 1
	payloadFlagExpires = 1 << 0
)

func encodeTransport(t *SessionTransport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte(payloadVersion)

	var flags byte
	if t.Expires != nil {
		flags |= payloadFlagExpires
	}
	buf.WriteByte(flags)

	if t.Expires != nil {
		if err := binary.Write(&buf, binary.BigEndian, t.Expires.UnixNano()); err != nil {
			return nil, err
		}
	}

	keys := t.Session.Keys()
	if err := binary.Write(&buf, binary.BigEndian, uint32(len(keys))); err != nil {
		return nil, err
	}

	for _, key := range keys {
		if len(key) > math.MaxUint16 {
			return nil, fmt.Errorf("session key of %d bytes exceeds encoding limit", len(key))
		}
		value, _ := t.Session.Get(key)
		if uint64(len(value)) > math.MaxUint32 {
			return nil, fmt.Errorf("session value of %d bytes exceeds encoding limit", len(value))
		}

		if err := binary.Write(&buf, binary.BigEndian, uint16(len(key))); err != nil {
			return nil, err
		}
		buf.WriteString(key)
		if err := binary.Write(&buf, binary.BigEndian, uint32(len(value))); err != nil {
			return nil, err
		}
		buf.Write(value)
	}

	return buf.Bytes(), nil
}

func decodeTransport(data []byte) (*SessionTransport, error) {
	reader := bytes.NewReader(data)

	version, err := reader.ReadByte()
	if err != nil {
		return nil, err
	}
	if version != payloadVersion {
		return nil, fmt.Errorf("unsupported payload version %d", version)
	}

	flags, err := reader.ReadByte()
	if err != nil {
		return nil, err
	}
	if flags&^payloadFlagExpires != 0 {
		return nil, errors.New("unknown payload flags")
	}

	transport := &SessionTransport{Session: NewSession()}

	if flags&payloadFlagExpires != 0 {
		var nanos int64
		if err := binary.Read(reader, binary.BigEndian, &nanos); err != nil {
			return nil, err
		}
		expires := time.Unix(0, nanos).UTC()
		transport.Expires = &expires
	}

	var count uint32
	if err := binary.Read(reader, binary.BigEndian, &count); err != nil {
		return nil, err
	}

	for i := uint32(0); i < count; i++ {
		var keyLen uint16
		if err := binary.Read(reader, binary.BigEndian, &keyLen); err != nil {
			return nil, err
		}
		key := make([]byte, keyLen)
		if _, err := io.ReadFull(reader, key); err != nil {
			return nil, err
		}

		var valueLen uint32
		if err := binary.Read(reader, binary.BigEndian, &valueLen); err != nil {
			return nil, err
		}
		// Bound the allocation by the bytes actually remaining.
		if int64(valueLen) > int64(reader.Len()) {
			return nil, errors.New("value length exceeds payload")
		}
		value := make([]byte, valueLen)
		if _, err := io.ReadFull(reader, value); err != nil {
			return nil, err
		}

		if _, occupied := transport.Session.Insert(string(key), value); occupied {
			return nil, fmt.Errorf("duplicate session key %q", key)
		}
	}

	if reader.Len() != 0 {
		return nil, errors.New("trailing bytes after payload")
	}

	return transport, nil
}
