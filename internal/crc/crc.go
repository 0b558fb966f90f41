package crc

// U8 folds one byte into crc.
func U8(data uint8, crc uint16) uint16 {
	for i := 0; i < 8; i++ {
		x16 := (data & 1) ^ (uint8(crc) & 1)
		data >>= 1

		var carry bool
		if x16 == 1 {
			crc ^= 0x4002
			carry = true
		}
		crc >>= 1
		if carry {
			crc |= 0x8000
		} else {
			crc &= 0x7fff
		}
	}
	return crc
}

// U16 folds a 16-bit value, low byte first.
func U16(v uint16, crc uint16) uint16 {
	crc = U8(uint8(v), crc)
	return U8(uint8(v>>8), crc)
}

// U32 folds a 32-bit value, low half first.
func U32(v uint32, crc uint16) uint16 {
	crc = S16(int16(v), crc)
	return S16(int16(v>>16), crc)
}

// S16 folds a signed 16-bit value by its two's complement bits.
func S16(v int16, crc uint16) uint16 {
	return U16(uint16(v), crc)
}
