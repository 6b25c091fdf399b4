package salad

import (
	"encoding/binary"
	"io"
)

// writer and reader are small little-endian wire-format helpers with a
// sticky first error: once a call fails, every subsequent call is a no-op.
// Model files fix every integer width at u64 regardless of host word
// size, so these helpers carry no platform-dependent sizes.
type writer struct {
	w   io.Writer
	err error
}

func newWriter(w io.Writer) *writer { return &writer{w: w} }

func (w *writer) bytes(b []byte) {
	if w.err != nil {
		return
	}
	_, w.err = w.w.Write(b)
}

func (w *writer) byt(b byte) {
	w.bytes([]byte{b})
}

func (w *writer) u64(v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	w.bytes(buf[:])
}

// cstr writes s followed by a single NUL terminator; the delimiter
// string is stored NUL-terminated on disk.
func (w *writer) cstr(s string) {
	w.bytes([]byte(s))
	w.byt(0)
}

type reader struct {
	r   io.Reader
	err error
}

func newReader(r io.Reader) *reader { return &reader{r: r} }

func (r *reader) bytesN(n int) []byte {
	if r.err != nil {
		return nil
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.r, buf); err != nil {
		r.err = err
		return nil
	}
	return buf
}

func (r *reader) byt() byte {
	b := r.bytesN(1)
	if r.err != nil || len(b) == 0 {
		return 0
	}
	return b[0]
}

func (r *reader) u64() uint64 {
	b := r.bytesN(8)
	if r.err != nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

// cstr reads bytes up to and including a NUL terminator and returns the
// string without it. A short read (no terminator before EOF) is a sticky
// error, same as every other reader method here.
func (r *reader) cstr() string {
	if r.err != nil {
		return ""
	}
	var buf []byte
	for {
		b := r.bytesN(1)
		if r.err != nil {
			return ""
		}
		if b[0] == 0 {
			break
		}
		buf = append(buf, b[0])
	}
	return string(buf)
}
