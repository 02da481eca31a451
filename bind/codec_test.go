package bind

import (
	"testing"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeUint128Layout(t *testing.T) {
	got := EncodeUint128(0x0102030405060708, 0x0807060504030201)
	want := []byte{
		0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08,
		0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01,
	}
	assert.Equal(t, want, got)
}

func TestUint128RoundTrip(t *testing.T) {
	buf := EncodeUint128(0xDEADBEEFCAFEBABE, 0x0123456789ABCDEF)
	hi, lo, err := DecodeUint128(buf)
	require.NoError(t, err)
	assert.Equal(t, uint64(0xDEADBEEFCAFEBABE), hi)
	assert.Equal(t, uint64(0x0123456789ABCDEF), lo)

	_, _, err = DecodeUint128(buf[:10])
	assert.Error(t, err)
}

func TestUUIDRoundTrip(t *testing.T) {
	id := uuid.MustParse("01020304-0506-0708-0807-060504030201")

	buf := EncodeUUID(id)
	require.Len(t, buf, 16)
	assert.Equal(t, []byte{
		0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08,
		0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01,
	}, buf)

	back, err := DecodeUUID(buf)
	require.NoError(t, err)
	assert.Equal(t, id, back)

	_, err = DecodeUUID([]byte{1, 2, 3})
	assert.Error(t, err)
}

func TestULIDRoundTrip(t *testing.T) {
	id := ulid.MustParse("01HZZZZZZZZZZZZZZZZZZZZZZZ")

	buf := EncodeULID(id)
	require.Len(t, buf, 16)

	back, err := DecodeULID(buf)
	require.NoError(t, err)
	assert.Equal(t, id, back)

	// Encoding hands out a copy, not the ULID's own backing array.
	buf[0] ^= 0xFF
	assert.NotEqual(t, buf[0], id[0])

	_, err = DecodeULID(buf[:4])
	assert.Error(t, err)
}
