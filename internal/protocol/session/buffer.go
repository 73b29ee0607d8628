package session

import "unsafe"

// alignedBuffer returns a size-byte slice whose backing address is aligned
// to align. The driver layer beneath the filesystem treats the control
// files as raw blocks; writes from an unaligned buffer may be silently
// corrupted.
func alignedBuffer(size, align int) []byte {
	raw := make([]byte, size+align)
	off := 0
	if rem := int(uintptr(unsafe.Pointer(&raw[0])) & uintptr(align-1)); rem != 0 {
		off = align - rem
	}
	return raw[off : off+size]
}
