package bit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCombineHighLow(t *testing.T) {
	assert.Equal(t, uint16(0xABCD), Combine(0xAB, 0xCD))
	assert.Equal(t, uint8(0xAB), High(0xABCD))
	assert.Equal(t, uint8(0xCD), Low(0xABCD))
}

func TestIsSet(t *testing.T) {
	assert.True(t, IsSet(0, 0x01))
	assert.False(t, IsSet(0, 0xFE))
	assert.True(t, IsSet(7, 0x80))
}

func TestIsSet16(t *testing.T) {
	assert.True(t, IsSet16(9, 0x0200))
	assert.False(t, IsSet16(9, 0x01FF))
}

func TestSetAndReset(t *testing.T) {
	assert.Equal(t, uint8(0x05), Set(2, 0x01))
	assert.Equal(t, uint8(0x01), Reset(2, 0x05))
	assert.Equal(t, Reset(2, 0x05), Clear(2, 0x05))
}

func TestGetBitValue(t *testing.T) {
	assert.Equal(t, uint8(1), GetBitValue(3, 0x08))
	assert.Equal(t, uint8(0), GetBitValue(3, 0xF7))
}

func TestExtractBits(t *testing.T) {
	assert.Equal(t, uint8(0x00), ExtractBits(0xE4, 1, 0), "palette entry for color index 0")
	assert.Equal(t, uint8(0x03), ExtractBits(0xE4, 7, 6), "palette entry for color index 3")
}
