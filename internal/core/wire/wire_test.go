package wire

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncoder_Layout(t *testing.T) {
	e := NewEncoder()
	e.WriteUint16(0x0201)
	e.WriteUint32(0x06050403)
	require.NoError(t, e.WriteString("hi"))

	// Little-endian integers, uint16 length prefix on strings.
	require.Equal(t, []byte{
		0x01, 0x02,
		0x03, 0x04, 0x05, 0x06,
		0x02, 0x00, 'h', 'i',
	}, e.Bytes())
}

func TestRoundTrip(t *testing.T) {
	e := NewEncoder()
	e.WriteUint8(7)
	e.WriteInt32(-42)
	e.WriteUint64(1 << 40)
	e.WriteFloat64(3.5)
	e.WriteFloat32(-1.25)
	e.WriteBool(true)
	require.NoError(t, e.WriteString("fix wiring"))
	require.NoError(t, e.WriteBytes([]byte{0xde, 0xad}))

	d := NewDecoder(e.Bytes())

	u8, err := d.ReadUint8()
	require.NoError(t, err)
	require.Equal(t, uint8(7), u8)

	i32, err := d.ReadInt32()
	require.NoError(t, err)
	require.Equal(t, int32(-42), i32)

	u64, err := d.ReadUint64()
	require.NoError(t, err)
	require.Equal(t, uint64(1<<40), u64)

	f64, err := d.ReadFloat64()
	require.NoError(t, err)
	require.Equal(t, 3.5, f64)

	f32, err := d.ReadFloat32()
	require.NoError(t, err)
	require.Equal(t, float32(-1.25), f32)

	b, err := d.ReadBool()
	require.NoError(t, err)
	require.True(t, b)

	s, err := d.ReadString()
	require.NoError(t, err)
	require.Equal(t, "fix wiring", s)

	raw, err := d.ReadBytes()
	require.NoError(t, err)
	require.Equal(t, []byte{0xde, 0xad}, raw)

	require.Zero(t, d.Remaining())
}

func TestDecoder_UnexpectedEnd(t *testing.T) {
	t.Run("short integer", func(t *testing.T) {
		d := NewDecoder([]byte{0x01, 0x02})
		_, err := d.ReadUint32()
		require.ErrorIs(t, err, ErrUnexpectedEnd)
	})

	t.Run("string prefix promises more than the buffer holds", func(t *testing.T) {
		d := NewDecoder([]byte{0x05, 0x00, 'a', 'b'})
		_, err := d.ReadString()
		require.ErrorIs(t, err, ErrUnexpectedEnd)
	})

	t.Run("empty buffer", func(t *testing.T) {
		d := NewDecoder(nil)
		_, err := d.ReadUint8()
		require.ErrorIs(t, err, ErrUnexpectedEnd)
	})
}

func TestDecoder_InvalidUTF8(t *testing.T) {
	d := NewDecoder([]byte{0x02, 0x00, 0xff, 0xfe})
	_, err := d.ReadString()
	require.ErrorIs(t, err, ErrInvalidUTF8)
}

func TestEncoder_ValueTooLarge(t *testing.T) {
	e := NewEncoder()
	err := e.WriteString(strings.Repeat("x", 1<<16))
	require.ErrorIs(t, err, ErrValueTooLarge)

	err = e.WriteBytes(make([]byte, 1<<16))
	require.ErrorIs(t, err, ErrValueTooLarge)
}

func TestEncoder_Reset(t *testing.T) {
	e := NewEncoder()
	e.WriteUint64(1)
	require.Equal(t, 8, e.Len())

	e.Reset()
	require.Zero(t, e.Len())
}

func BenchmarkEncoder(b *testing.B) {
	e := NewEncoder()
	for i := 0; i < b.N; i++ {
		e.Reset()
		e.WriteUint32(uint32(i))
		e.WriteFloat64(float64(i))
		_ = e.WriteString("task update")
	}
}
