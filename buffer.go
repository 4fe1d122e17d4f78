package wscan

import (
	"errors"
	"io"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// maxConsecutiveEmptyReads matches bufio: a source that keeps returning
// (0, nil) is treated as broken.
const maxConsecutiveEmptyReads = 100

var errNegativeRead = errors.New("wscan: reader returned negative count from Read")

// buffer 保存数据源中尚未读取的字节, data[start:end] 是未读窗口.
// src 为 nil 时是固定数据源: data 就是全部输入, 永远不会重新填充.
type buffer struct {
	data  []byte
	start int
	end   int

	src    io.Reader
	err    error // sticky: io.EOF or *IOError
	logger log.Logger
}

func newStreamBuffer(src io.Reader, data []byte, logger log.Logger) buffer {
	return buffer{data: data, src: src, logger: logger}
}

func newFixedBuffer(data []byte, logger log.Logger) buffer {
	return buffer{data: data, end: len(data), logger: logger}
}

func (b *buffer) buffered() int { return b.end - b.start }

func (b *buffer) window() []byte { return b.data[b.start:b.end] }

// consume marks n unread bytes as read. n must not exceed buffered().
func (b *buffer) consume(n int) {
	b.start += n
	if b.start == b.end && b.src != nil {
		b.start, b.end = 0, 0
	}
}

// ensure makes at least n unread bytes available, refilling from the source
// as needed. It returns the number of buffered bytes; the result is smaller
// than n only together with io.EOF or an *IOError.
// n must not exceed the buffer capacity.
func (b *buffer) ensure(n int) (int, error) {
	for b.end-b.start < n {
		if b.err != nil {
			return b.end - b.start, b.err
		}
		if b.src == nil {
			b.err = io.EOF
			continue
		}
		if b.start > 0 && (len(b.data)-b.start < n || len(b.data)-b.end < len(b.data)/2) {
			b.compact()
		}
		b.fill()
	}
	return b.end - b.start, nil
}

// compact shifts the unread bytes to the front of data.
func (b *buffer) compact() {
	level.Debug(b.logger).Log("msg", "compacting scanner buffer", "shift", b.start, "buffered", b.end-b.start)
	copy(b.data, b.data[b.start:b.end])
	b.end -= b.start
	b.start = 0
}

// fill performs at most one successful read into the free tail of data.
func (b *buffer) fill() {
	for i := maxConsecutiveEmptyReads; i > 0; i-- {
		n, err := b.src.Read(b.data[b.end:])
		if n < 0 {
			panic(errNegativeRead)
		}
		b.end += n
		if err != nil {
			b.setErr(err)
			return
		}
		if n > 0 {
			level.Debug(b.logger).Log("msg", "refilled scanner buffer", "read", n, "buffered", b.end-b.start)
			return
		}
	}
	b.setErr(io.ErrNoProgress)
}

func (b *buffer) setErr(err error) {
	if err == io.EOF {
		b.err = io.EOF
		return
	}
	level.Debug(b.logger).Log("msg", "scanner source failed", "err", err)
	b.err = &IOError{Err: err}
}
