package conv

// U32Hex writes n as 8 uppercase hex digits, zero-padded, no 0x prefix.
// buf must hold at least 8 bytes; shorter buffers yield an empty slice.
func U32Hex(buf []byte, n uint32) []byte {
	if len(buf) < 8 {
		return buf[:0]
	}
	const digits = "0123456789ABCDEF"
	i := len(buf)
	for j := 0; j < 8; j++ {
		i--
		buf[i] = digits[n&0xF]
		n >>= 4
	}
	return buf[i:]
}
