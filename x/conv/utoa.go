// Package conv formats integers into caller-provided buffers, without fmt
// or strconv, so status lines cost no allocations on the MCU.
package conv

// Utoa writes n in base 10 at the end of buf and returns the used tail.
// 20 bytes hold any uint64; 10 hold any uint32.
func Utoa(buf []byte, n uint64) []byte {
	if len(buf) == 0 {
		return buf[:0]
	}
	i := len(buf)
	if n == 0 {
		i--
		buf[i] = '0'
		return buf[i:]
	}
	for n > 0 && i > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return buf[i:]
}
