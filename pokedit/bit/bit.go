package bit

// ReadHalfWord reads a little-endian 16 bit value from bytes at offset.
func ReadHalfWord(bytes []byte, offset int) uint16 {
	return uint16(bytes[offset]) | uint16(bytes[offset+1])<<8
}

// WriteHalfWord writes value as little endian into bytes at offset.
func WriteHalfWord(bytes []byte, offset int, value uint16) {
	bytes[offset] = uint8(value)
	bytes[offset+1] = uint8(value >> 8)
}

// ReadWord reads a little-endian 32 bit value from bytes at offset.
func ReadWord(bytes []byte, offset int) uint32 {
	return uint32(bytes[offset]) |
		uint32(bytes[offset+1])<<8 |
		uint32(bytes[offset+2])<<16 |
		uint32(bytes[offset+3])<<24
}

// WriteWord writes value as little endian into bytes at offset.
func WriteWord(bytes []byte, offset int, value uint32) {
	bytes[offset] = uint8(value)
	bytes[offset+1] = uint8(value >> 8)
	bytes[offset+2] = uint8(value >> 16)
	bytes[offset+3] = uint8(value >> 24)
}
