package wscan

import "sync"

// Buffer storage pool for streaming scanners of the default size.
var (
	bufferPool = sync.Pool{New: func() interface{} {
		b := make([]byte, DefaultBufferSize)
		return &b
	}}
)

// getBuffer returns storage of the given size and whether it came from the pool.
func getBuffer(size int) ([]byte, bool) {
	if size != DefaultBufferSize {
		return make([]byte, size), false
	}
	b := bufferPool.Get().(*[]byte)
	return *b, true
}

func putBuffer(b []byte) {
	if len(b) != DefaultBufferSize {
		return
	}
	bufferPool.Put(&b)
}
