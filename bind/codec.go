package bind

import (
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// 128-bit identifiers (UUID, ULID) are stored as opaque 16-byte columns:
// most-significant 64 bits first, each half big-endian.

// EncodeUint128 packs the two 64-bit halves of an identifier into a fresh
// 16-byte buffer, high half first.
func EncodeUint128(hi, lo uint64) []byte {
	buf := make([]byte, 16)
	binary.BigEndian.PutUint64(buf[:8], hi)
	binary.BigEndian.PutUint64(buf[8:], lo)
	return buf
}

// DecodeUint128 is the inverse of EncodeUint128.
func DecodeUint128(b []byte) (hi, lo uint64, err error) {
	if len(b) != 16 {
		return 0, 0, fmt.Errorf("sqlbind: identifier column holds %d bytes, want 16", len(b))
	}
	return binary.BigEndian.Uint64(b[:8]), binary.BigEndian.Uint64(b[8:]), nil
}

// EncodeUUID renders a UUID as its 16-byte column form.
func EncodeUUID(id uuid.UUID) []byte {
	return EncodeUint128(
		binary.BigEndian.Uint64(id[:8]),
		binary.BigEndian.Uint64(id[8:]),
	)
}

// DecodeUUID reads a UUID back from its 16-byte column form.
func DecodeUUID(b []byte) (uuid.UUID, error) {
	var id uuid.UUID
	if len(b) != 16 {
		return id, fmt.Errorf("sqlbind: uuid column holds %d bytes, want 16", len(b))
	}
	copy(id[:], b)
	return id, nil
}

// EncodeULID renders a ULID as its 16-byte column form. ULIDs are already
// laid out most-significant byte first.
func EncodeULID(id ulid.ULID) []byte {
	buf := make([]byte, 16)
	copy(buf, id[:])
	return buf
}

// DecodeULID reads a ULID back from its 16-byte column form.
func DecodeULID(b []byte) (ulid.ULID, error) {
	var id ulid.ULID
	if len(b) != 16 {
		return id, fmt.Errorf("sqlbind: ulid column holds %d bytes, want 16", len(b))
	}
	copy(id[:], b)
	return id, nil
}
