package rolandqd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestBitBufferGetSetRoundTrip(t *testing.T) {
	buf := NewBitBuffer(make([]byte, 4))
	for k := 0; k < 32; k++ {
		buf.SetBit(k, k%3)
		assert.Equal(t, k%3&1, buf.GetBit(k), "bit %d", k)
	}
}

func TestBitBufferGetBitMSBFirst(t *testing.T) {
	buf := NewBitBuffer([]byte{0x80})
	assert.Equal(t, 1, buf.GetBit(0))
	for k := 1; k < 8; k++ {
		assert.Equal(t, 0, buf.GetBit(k), "bit %d", k)
	}
}

func TestBitBufferShiftLeftZeroIsNoop(t *testing.T) {
	data := []byte{0x12, 0x34, 0x56}
	buf := NewBitBuffer(data)
	buf.ShiftLeft(0)
	assert.Equal(t, []byte{0x12, 0x34, 0x56}, buf.Bytes())
}

func TestBitBufferShiftLeftKnownValue(t *testing.T) {
	buf := NewBitBuffer([]byte{0b10110000, 0b11000000})
	buf.ShiftLeft(4)
	assert.Equal(t, []byte{0b00001100, 0b00000000}, buf.Bytes())
}

func TestDropAndShiftByteAligned(t *testing.T) {
	data := []byte{0xAA, 0xBB, 0xCC}
	out := DropAndShift(data, 8)
	assert.Equal(t, []byte{0xBB, 0xCC}, out)
}

func TestDropAndShiftPastEndIsNil(t *testing.T) {
	data := []byte{0xAA}
	out := DropAndShift(data, 16)
	assert.Nil(t, out)
}

func TestDropAndShiftSubByteOffset(t *testing.T) {
	data := []byte{0b00001111, 0b00000000}
	out := DropAndShift(data, 4)
	require.Len(t, out, 2)
	assert.Equal(t, byte(0b11110000), out[0])
}

func TestBitBufferRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 8).Draw(t, "nbytes")
		data := rapid.SliceOfN(rapid.Byte(), n, n).Draw(t, "data")
		buf := NewBitBuffer(append([]byte(nil), data...))

		bits := make([]int, n*8)
		for k := range bits {
			bits[k] = buf.GetBit(k)
		}

		fresh := NewBitBuffer(make([]byte, n))
		for k, v := range bits {
			fresh.SetBit(k, v)
		}
		assert.Equal(t, data, fresh.Bytes())
	})
}
