package font

import "encoding/binary"

// reader reads big-endian values from a table. Reads past the end set a
// sticky overflow flag and return zero; callers check ok once after a
// batch of reads.
type reader struct {
	b        []byte
	off      int
	overflow bool
}

func newReader(b []byte) *reader { return &reader{b: b} }

func (r *reader) ok() bool { return !r.overflow }

func (r *reader) need(n int) bool {
	if r.overflow || n < 0 || r.off < 0 || r.off+n > len(r.b) {
		r.overflow = true
		return false
	}
	return true
}

func (r *reader) seek(off int) {
	if off < 0 || off > len(r.b) {
		r.overflow = true
		return
	}
	r.off = off
}

func (r *reader) skip(n int) {
	if r.need(n) {
		r.off += n
	}
}

func (r *reader) u8() uint8 {
	if !r.need(1) {
		return 0
	}
	v := r.b[r.off]
	r.off++
	return v
}

func (r *reader) i8() int8 { return int8(r.u8()) }

func (r *reader) u16() uint16 {
	if !r.need(2) {
		return 0
	}
	v := binary.BigEndian.Uint16(r.b[r.off:])
	r.off += 2
	return v
}

func (r *reader) i16() int16 { return int16(r.u16()) }

func (r *reader) u24() uint32 {
	if !r.need(3) {
		return 0
	}
	v := uint32(r.b[r.off])<<16 | uint32(r.b[r.off+1])<<8 | uint32(r.b[r.off+2])
	r.off += 3
	return v
}

func (r *reader) u32() uint32 {
	if !r.need(4) {
		return 0
	}
	v := binary.BigEndian.Uint32(r.b[r.off:])
	r.off += 4
	return v
}

func (r *reader) bytes(n int) []byte {
	if !r.need(n) {
		return nil
	}
	v := r.b[r.off : r.off+n]
	r.off += n
	return v
}

// f2dot14 reads a signed 2.14 fixed-point number.
func (r *reader) f2dot14() float64 {
	return float64(r.i16()) / (1 << 14)
}

// fixed reads a signed 16.16 fixed-point number.
func (r *reader) fixed() float64 {
	return float64(int32(r.u32())) / (1 << 16)
}

// u16At reads a big-endian uint16 at off without moving, reporting false
// when out of range.
func u16At(b []byte, off int) (uint16, bool) {
	if off < 0 || off+2 > len(b) {
		return 0, false
	}
	return binary.BigEndian.Uint16(b[off:]), true
}
