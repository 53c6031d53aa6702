package internal

import "sync"

// Row buffers start at 1 KiB: enough for most annotation and wiggle
// rows, while serialized coverage vectors grow them as needed and
// return the larger slice to the pool.
var bufPool = sync.Pool{New: func() interface{} {
	return make([]byte, 0, 1024)
}}

// ReserveByteBuffer fetches a length-0 byte slice from an internal
// pool for assembling output rows. Return it with ReleaseByteBuffer.
func ReserveByteBuffer() []byte {
	return bufPool.Get().([]byte)[:0]
}

// ReleaseByteBuffer returns the given slice of bytes to the internal
// pool from which ReserveByteBuffer can fetch it again.
func ReleaseByteBuffer(buf []byte) {
	bufPool.Put(buf)
}
