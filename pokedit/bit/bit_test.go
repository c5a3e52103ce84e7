package bit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteHalfWord(t *testing.T) {
	bytes := make([]byte, 4)
	WriteHalfWord(bytes, 1, 0x1234)
	assert.Equal(t, []byte{0, 0x34, 0x12, 0}, bytes)
}

func TestReadHalfWord(t *testing.T) {
	bytes := []byte{0, 0x34, 0x12, 0}
	assert.Equal(t, uint16(0x1234), ReadHalfWord(bytes, 1))
}

func TestWriteWord(t *testing.T) {
	bytes := make([]byte, 6)
	WriteWord(bytes, 1, 0x12345678)
	assert.Equal(t, []byte{0, 0x78, 0x56, 0x34, 0x12, 0}, bytes)
}

func TestReadWord(t *testing.T) {
	bytes := []byte{0, 0x78, 0x56, 0x34, 0x12, 0}
	assert.Equal(t, uint32(0x12345678), ReadWord(bytes, 1))
}
