package handler

import (
	"bytes"
	"sync"
)

// A serialized slot with bilingual names and a few image URLs lands around
// 1KB, so buffers start there. Buffers that grew past maxPooledBufferSize
// (large batch reports, transition pages) are dropped instead of pooled so
// one big response does not pin memory for the rest of the process.
const (
	initialBufferSize   = 1024
	maxPooledBufferSize = 64 * 1024
)

var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, initialBufferSize))
	},
}

func getBuffer() *bytes.Buffer {
	return bufferPool.Get().(*bytes.Buffer)
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > maxPooledBufferSize {
		return
	}
	buf.Reset()
	bufferPool.Put(buf)
}
