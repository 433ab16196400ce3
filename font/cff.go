package font

import (
	"strconv"
	"strings"
)

// CFF DICT operators used by the outline decoder.
const (
	dictCharStrings    = 17
	dictPrivate        = 18
	dictSubrs          = 19
	dictCharstringType = 12<<8 | 6
	dictROS            = 12<<8 | 30
	dictFDArray        = 12<<8 | 36
	dictFDSelect       = 12<<8 | 37
)

// cffFont holds the parts of a CFF table needed to draw glyphs.
type cffFont struct {
	charStrings [][]byte
	gsubrs      [][]byte
	subrs       [][]byte // local subrs of a name-keyed font

	// CID-keyed fonts select a Font DICT, and with it local subrs, per glyph.
	cid      bool
	fdSelect []uint8
	fdSubrs  [][][]byte
}

func parseCFF(b []byte) (*cffFont, error) {
	r := newReader(b)
	major := r.u8()
	r.skip(1) // minor
	hdrSize := int(r.u8())
	if !r.ok() || major != 1 {
		return nil, malformed("CFF ", "unsupported header (major version %d)", major)
	}
	r.seek(hdrSize)

	if _, err := parseIndex(r); err != nil { // Name INDEX
		return nil, err
	}
	topDicts, err := parseIndex(r)
	if err != nil {
		return nil, err
	}
	if _, err := parseIndex(r); err != nil { // String INDEX
		return nil, err
	}
	gsubrs, err := parseIndex(r)
	if err != nil {
		return nil, err
	}
	if len(topDicts) == 0 {
		return nil, malformed("CFF ", "no Top DICT")
	}
	top, err := parseDict(topDicts[0])
	if err != nil {
		return nil, err
	}
	if t, ok := top[dictCharstringType]; ok && len(t) == 1 && t[0] != 2 {
		return nil, malformed("CFF ", "charstring type %v not supported", t[0])
	}

	f := &cffFont{gsubrs: gsubrs}
	csOff, ok := dictInt(top, dictCharStrings, 0)
	if !ok {
		return nil, malformed("CFF ", "Top DICT has no CharStrings")
	}
	r.seek(csOff)
	if f.charStrings, err = parseIndex(r); err != nil {
		return nil, err
	}
	if len(f.charStrings) == 0 {
		return nil, malformed("CFF ", "no charstrings")
	}

	if _, ok := top[dictROS]; ok {
		f.cid = true
		if err := f.parseCID(b, top); err != nil {
			return nil, err
		}
		return f, nil
	}
	if f.subrs, err = parsePrivateSubrs(b, top); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *cffFont) parseCID(b []byte, top map[int][]float64) error {
	fdOff, ok := dictInt(top, dictFDArray, 0)
	if !ok {
		return malformed("CFF ", "CID font without FDArray")
	}
	r := newReader(b)
	r.seek(fdOff)
	fds, err := parseIndex(r)
	if err != nil {
		return err
	}
	f.fdSubrs = make([][][]byte, len(fds))
	for i, raw := range fds {
		fd, err := parseDict(raw)
		if err != nil {
			return err
		}
		if f.fdSubrs[i], err = parsePrivateSubrs(b, fd); err != nil {
			return err
		}
	}

	selOff, ok := dictInt(top, dictFDSelect, 0)
	if !ok {
		return malformed("CFF ", "CID font without FDSelect")
	}
	n := len(f.charStrings)
	f.fdSelect = make([]uint8, n)
	r.seek(selOff)
	switch format := r.u8(); format {
	case 0:
		copy(f.fdSelect, r.bytes(n))
	case 3:
		nRanges := int(r.u16())
		first := int(r.u16())
		for i := 0; i < nRanges; i++ {
			fd := r.u8()
			next := int(r.u16())
			if !r.ok() || first > next || next > n {
				return malformed("CFF ", "FDSelect range %d invalid", i)
			}
			for g := first; g < next; g++ {
				f.fdSelect[g] = fd
			}
			first = next
		}
	default:
		return malformed("CFF ", "FDSelect format %d not supported", format)
	}
	if !r.ok() {
		return malformed("CFF ", "FDSelect truncated")
	}
	for g, fd := range f.fdSelect {
		if int(fd) >= len(fds) {
			return malformed("CFF ", "glyph %d selects Font DICT %d of %d", g, fd, len(fds))
		}
	}
	return nil
}

// parsePrivateSubrs follows a Private operator to the local subrs INDEX.
func parsePrivateSubrs(b []byte, dict map[int][]float64) ([][]byte, error) {
	priv, ok := dict[dictPrivate]
	if !ok || len(priv) != 2 {
		return nil, nil
	}
	size, off := int(priv[0]), int(priv[1])
	if off < 0 || size < 0 || off+size > len(b) {
		return nil, malformed("CFF ", "Private DICT out of range")
	}
	pd, err := parseDict(b[off : off+size])
	if err != nil {
		return nil, err
	}
	subrOff, ok := dictInt(pd, dictSubrs, 0)
	if !ok {
		return nil, nil
	}
	r := newReader(b)
	r.seek(off + subrOff)
	return parseIndex(r)
}

// parseIndex reads a CFF INDEX and leaves r after it.
func parseIndex(r *reader) ([][]byte, error) {
	count := int(r.u16())
	if !r.ok() {
		return nil, malformed("CFF ", "truncated INDEX")
	}
	if count == 0 {
		return nil, nil
	}
	offSize := int(r.u8())
	if offSize < 1 || offSize > 4 {
		return nil, malformed("CFF ", "INDEX offSize %d", offSize)
	}
	offs := make([]int, count+1)
	for i := range offs {
		switch offSize {
		case 1:
			offs[i] = int(r.u8())
		case 2:
			offs[i] = int(r.u16())
		case 3:
			offs[i] = int(r.u24())
		case 4:
			offs[i] = int(r.u32())
		}
	}
	if !r.ok() {
		return nil, malformed("CFF ", "truncated INDEX offsets")
	}
	data := r.bytes(offs[count] - 1)
	if !r.ok() || offs[0] != 1 {
		return nil, malformed("CFF ", "INDEX data out of range")
	}
	items := make([][]byte, count)
	for i := 0; i < count; i++ {
		if offs[i+1] < offs[i] || offs[i+1]-1 > len(data) {
			return nil, malformed("CFF ", "INDEX offset %d out of order", i+1)
		}
		items[i] = data[offs[i]-1 : offs[i+1]-1]
	}
	return items, nil
}

// parseDict decodes a DICT into operator -> operands.
func parseDict(b []byte) (map[int][]float64, error) {
	dict := make(map[int][]float64)
	var operands []float64
	for i := 0; i < len(b); {
		b0 := b[i]
		switch {
		case b0 <= 21:
			op := int(b0)
			i++
			if b0 == 12 {
				if i >= len(b) {
					return nil, malformed("CFF ", "truncated DICT operator")
				}
				op = 12<<8 | int(b[i])
				i++
			}
			dict[op] = operands
			operands = nil
		case b0 == 28:
			if i+3 > len(b) {
				return nil, malformed("CFF ", "truncated DICT operand")
			}
			operands = append(operands, float64(int16(uint16(b[i+1])<<8|uint16(b[i+2]))))
			i += 3
		case b0 == 29:
			if i+5 > len(b) {
				return nil, malformed("CFF ", "truncated DICT operand")
			}
			v := int32(uint32(b[i+1])<<24 | uint32(b[i+2])<<16 | uint32(b[i+3])<<8 | uint32(b[i+4]))
			operands = append(operands, float64(v))
			i += 5
		case b0 == 30:
			v, n, err := parseReal(b[i+1:])
			if err != nil {
				return nil, err
			}
			operands = append(operands, v)
			i += 1 + n
		case b0 >= 32 && b0 <= 246:
			operands = append(operands, float64(int(b0)-139))
			i++
		case b0 >= 247 && b0 <= 254:
			if i+2 > len(b) {
				return nil, malformed("CFF ", "truncated DICT operand")
			}
			v := (int(b0)-247)*256 + int(b[i+1]) + 108
			if b0 >= 251 {
				v = -(int(b0)-251)*256 - int(b[i+1]) - 108
			}
			operands = append(operands, float64(v))
			i += 2
		default:
			return nil, malformed("CFF ", "reserved DICT byte %d", b0)
		}
	}
	return dict, nil
}

// parseReal decodes a nibble-packed real number and returns the bytes used.
func parseReal(b []byte) (float64, int, error) {
	var sb strings.Builder
	for i := 0; i < len(b); i++ {
		for _, nib := range [2]byte{b[i] >> 4, b[i] & 0x0F} {
			switch {
			case nib <= 9:
				sb.WriteByte('0' + nib)
			case nib == 0xA:
				sb.WriteByte('.')
			case nib == 0xB:
				sb.WriteByte('E')
			case nib == 0xC:
				sb.WriteString("E-")
			case nib == 0xE:
				sb.WriteByte('-')
			case nib == 0xF:
				v, err := strconv.ParseFloat(sb.String(), 64)
				if err != nil {
					return 0, 0, malformed("CFF ", "bad real %q", sb.String())
				}
				return v, i + 1, nil
			default:
				return 0, 0, malformed("CFF ", "reserved real nibble")
			}
		}
	}
	return 0, 0, malformed("CFF ", "unterminated real")
}

func dictInt(dict map[int][]float64, op, idx int) (int, bool) {
	v, ok := dict[op]
	if !ok || idx >= len(v) {
		return 0, false
	}
	return int(v[idx]), true
}

// subrBias returns the bias added to subroutine numbers.
func subrBias(count int) int {
	if count < 1240 {
		return 107
	}
	if count < 33900 {
		return 1131
	}
	return 32768
}
