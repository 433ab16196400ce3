package font

import "sync"

// kernTable holds the horizontal format 0 subtables of a 'kern' table.
// The pair map is built on first lookup.
type kernTable struct {
	subtables [][]byte // raw pair arrays, 6 bytes per pair

	once  sync.Once
	pairs map[uint32]int16
}

func kernKey(left, right GlyphID) uint32 {
	return uint32(left)<<16 | uint32(right)
}

// parseKern validates the table layout. Both the Microsoft (version 0)
// and Apple (version 1.0) headers are accepted.
func parseKern(b []byte) (*kernTable, error) {
	r := newReader(b)
	k := &kernTable{}
	switch version := r.u16(); version {
	case 0:
		n := int(r.u16())
		for i := 0; i < n; i++ {
			start := r.off
			r.skip(2) // subtable version
			length := int(r.u16())
			coverage := r.u16()
			if !r.ok() || length < 6 || start+length > len(b) {
				// Some fonts store a single subtable with a wrong 16-bit length.
				if r.ok() && n == 1 {
					length = len(b) - start
				} else {
					return nil, malformed("kern", "subtable %d out of range", i)
				}
			}
			horizontal := coverage&0x1 != 0
			minimum := coverage&0x2 != 0
			cross := coverage&0x4 != 0
			if coverage>>8 == 0 && horizontal && !minimum && !cross {
				pairs, err := kernPairs(b[start+6 : start+length])
				if err != nil {
					return nil, err
				}
				k.subtables = append(k.subtables, pairs)
			}
			r.seek(start + length)
		}
	case 1:
		r.skip(2)
		n := int(r.u32())
		for i := 0; i < n; i++ {
			start := r.off
			length := int(r.u32())
			coverage := r.u16()
			r.skip(2) // tuple index
			if !r.ok() || length < 8 || start+length > len(b) {
				return nil, malformed("kern", "subtable %d out of range", i)
			}
			if coverage&0xE000 == 0 && coverage&0xFF == 0 {
				pairs, err := kernPairs(b[start+8 : start+length])
				if err != nil {
					return nil, err
				}
				k.subtables = append(k.subtables, pairs)
			}
			r.seek(start + length)
		}
	default:
		return nil, malformed("kern", "unknown version %d", version)
	}
	if !r.ok() {
		return nil, malformed("kern", "truncated table")
	}
	return k, nil
}

func kernPairs(b []byte) ([]byte, error) {
	r := newReader(b)
	n := int(r.u16())
	r.skip(6) // binary search header
	data := r.bytes(n * 6)
	if !r.ok() {
		return nil, malformed("kern", "%d pairs overrun the subtable", n)
	}
	return data, nil
}

// lookup returns the summed adjustment in font units.
func (k *kernTable) lookup(left, right GlyphID) int {
	if k == nil {
		return 0
	}
	k.once.Do(k.build)
	return int(k.pairs[kernKey(left, right)])
}

func (k *kernTable) build() {
	k.pairs = make(map[uint32]int16)
	for _, st := range k.subtables {
		r := newReader(st)
		for r.off < len(st) {
			l, rt, v := GlyphID(r.u16()), GlyphID(r.u16()), r.i16()
			k.pairs[kernKey(l, rt)] += v
		}
	}
}
