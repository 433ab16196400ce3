package font

import (
	"math"

	"github.com/nullpops/awt/geom"
)

const (
	maxCallDepth  = 10
	maxStackDepth = 48
)

// Type 2 charstring operators.
const (
	csHstem      = 1
	csVstem      = 3
	csVmoveto    = 4
	csRlineto    = 5
	csHlineto    = 6
	csVlineto    = 7
	csRrcurveto  = 8
	csCallsubr   = 10
	csReturn     = 11
	csEscape     = 12
	csEndchar    = 14
	csHstemhm    = 18
	csHintmask   = 19
	csCntrmask   = 20
	csRmoveto    = 21
	csHmoveto    = 22
	csVstemhm    = 23
	csRcurveline = 24
	csRlinecurve = 25
	csVvcurveto  = 26
	csHhcurveto  = 27
	csShortint   = 28
	csCallgsubr  = 29
	csVhcurveto  = 30
	csHvcurveto  = 31
)

// Escaped (two-byte) operators.
const (
	csAnd    = 3
	csOr     = 4
	csNot    = 5
	csAbs    = 9
	csAdd    = 10
	csSub    = 11
	csDiv    = 12
	csNeg    = 14
	csEq     = 15
	csDrop   = 18
	csPut    = 20
	csGet    = 21
	csIfelse = 22
	csRandom = 23
	csMul    = 24
	csSqrt   = 26
	csDup    = 27
	csExch   = 28
	csIndex  = 29
	csRoll   = 30
	csHflex  = 34
	csFlex   = 35
	csHflex1 = 36
	csFlex1  = 37
)

type csError string

func (e csError) Error() string { return string(e) }

// csInterp runs one glyph program and records its outline in font units.
type csInterp struct {
	font  *cffFont
	subrs [][]byte

	stack     [maxStackDepth]float64
	n         int
	transient [32]float64

	x, y      float64
	nStems    int
	seenWidth bool
	open      bool
	path      *geom.Path
}

// outline decodes the charstring of gid.
func (f *cffFont) outline(gid GlyphID) (*geom.Path, error) {
	if int(gid) >= len(f.charStrings) {
		return nil, ErrGlyphOutOfRange
	}
	in := &csInterp{font: f, subrs: f.subrs, path: geom.NewPath()}
	if f.cid {
		in.subrs = f.fdSubrs[f.fdSelect[gid]]
	}
	if _, err := in.run(f.charStrings[gid], 0); err != nil {
		return nil, malformed("CFF ", "glyph %d: %v", gid, err)
	}
	in.closeContour()
	return in.path, nil
}

func (in *csInterp) push(v float64) error {
	if in.n >= maxStackDepth {
		return csError("argument stack overflow")
	}
	in.stack[in.n] = v
	in.n++
	return nil
}

func (in *csInterp) clear() { in.n = 0 }

func (in *csInterp) closeContour() {
	if in.open {
		in.path.Close()
		in.open = false
	}
}

func (in *csInterp) moveTo(dx, dy float64) {
	in.closeContour()
	in.x += dx
	in.y += dy
	in.path.MoveTo(in.x, in.y)
	in.open = true
}

func (in *csInterp) lineTo(dx, dy float64) {
	in.x += dx
	in.y += dy
	in.path.LineTo(in.x, in.y)
}

func (in *csInterp) curveTo(dx1, dy1, dx2, dy2, dx3, dy3 float64) {
	x1, y1 := in.x+dx1, in.y+dy1
	x2, y2 := x1+dx2, y1+dy2
	in.x, in.y = x2+dx3, y2+dy3
	in.path.CubicTo(x1, y1, x2, y2, in.x, in.y)
}

// width drops a leading advance-width operand the first time a
// stack-clearing operator sees more arguments than it takes.
func (in *csInterp) width(extra bool) []float64 {
	args := in.stack[:in.n]
	if !in.seenWidth {
		in.seenWidth = true
		if extra && len(args) > 0 {
			args = args[1:]
		}
	}
	return args
}

// run interprets code. It reports true once endchar has been seen.
func (in *csInterp) run(code []byte, depth int) (bool, error) {
	if depth > maxCallDepth {
		return false, csError("subroutine nesting too deep")
	}
	for i := 0; i < len(code); {
		b0 := code[i]
		i++
		switch {
		case b0 >= 32 && b0 <= 246:
			if err := in.push(float64(int(b0) - 139)); err != nil {
				return false, err
			}
			continue
		case b0 >= 247 && b0 <= 254:
			if i >= len(code) {
				return false, csError("truncated operand")
			}
			v := (int(b0)-247)*256 + int(code[i]) + 108
			if b0 >= 251 {
				v = -(int(b0)-251)*256 - int(code[i]) - 108
			}
			i++
			if err := in.push(float64(v)); err != nil {
				return false, err
			}
			continue
		case b0 == csShortint:
			if i+2 > len(code) {
				return false, csError("truncated operand")
			}
			v := int16(uint16(code[i])<<8 | uint16(code[i+1]))
			i += 2
			if err := in.push(float64(v)); err != nil {
				return false, err
			}
			continue
		case b0 == 255:
			if i+4 > len(code) {
				return false, csError("truncated operand")
			}
			v := int32(uint32(code[i])<<24 | uint32(code[i+1])<<16 | uint32(code[i+2])<<8 | uint32(code[i+3]))
			i += 4
			if err := in.push(float64(v) / (1 << 16)); err != nil {
				return false, err
			}
			continue
		}

		switch b0 {
		case csHstem, csVstem, csHstemhm, csVstemhm:
			args := in.width(in.n%2 == 1)
			in.nStems += len(args) / 2
			in.clear()

		case csHintmask, csCntrmask:
			args := in.width(in.n%2 == 1)
			in.nStems += len(args) / 2
			in.clear()
			i += (in.nStems + 7) / 8
			if i > len(code) {
				return false, csError("truncated hint mask")
			}

		case csRmoveto:
			args := in.width(in.n > 2)
			if len(args) < 2 {
				return false, csError("rmoveto needs 2 arguments")
			}
			in.moveTo(args[0], args[1])
			in.clear()

		case csHmoveto, csVmoveto:
			args := in.width(in.n > 1)
			if len(args) < 1 {
				return false, csError("moveto needs an argument")
			}
			if b0 == csHmoveto {
				in.moveTo(args[0], 0)
			} else {
				in.moveTo(0, args[0])
			}
			in.clear()

		case csRlineto:
			args := in.stack[:in.n]
			for j := 0; j+1 < len(args); j += 2 {
				in.lineTo(args[j], args[j+1])
			}
			in.clear()

		case csHlineto, csVlineto:
			horizontal := b0 == csHlineto
			for _, d := range in.stack[:in.n] {
				if horizontal {
					in.lineTo(d, 0)
				} else {
					in.lineTo(0, d)
				}
				horizontal = !horizontal
			}
			in.clear()

		case csRrcurveto:
			args := in.stack[:in.n]
			for j := 0; j+5 < len(args); j += 6 {
				in.curveTo(args[j], args[j+1], args[j+2], args[j+3], args[j+4], args[j+5])
			}
			in.clear()

		case csRcurveline:
			args := in.stack[:in.n]
			j := 0
			for ; j+7 < len(args); j += 6 {
				in.curveTo(args[j], args[j+1], args[j+2], args[j+3], args[j+4], args[j+5])
			}
			if j+1 < len(args) {
				in.lineTo(args[j], args[j+1])
			}
			in.clear()

		case csRlinecurve:
			args := in.stack[:in.n]
			j := 0
			for ; j+7 < len(args); j += 2 {
				in.lineTo(args[j], args[j+1])
			}
			if j+5 < len(args) {
				in.curveTo(args[j], args[j+1], args[j+2], args[j+3], args[j+4], args[j+5])
			}
			in.clear()

		case csHhcurveto:
			args := in.stack[:in.n]
			dy1 := 0.0
			if len(args)%2 == 1 {
				dy1, args = args[0], args[1:]
			}
			for j := 0; j+3 < len(args); j += 4 {
				in.curveTo(args[j], dy1, args[j+1], args[j+2], args[j+3], 0)
				dy1 = 0
			}
			in.clear()

		case csVvcurveto:
			args := in.stack[:in.n]
			dx1 := 0.0
			if len(args)%2 == 1 {
				dx1, args = args[0], args[1:]
			}
			for j := 0; j+3 < len(args); j += 4 {
				in.curveTo(dx1, args[j], args[j+1], args[j+2], 0, args[j+3])
				dx1 = 0
			}
			in.clear()

		case csHvcurveto, csVhcurveto:
			in.alternatingCurves(b0 == csHvcurveto)
			in.clear()

		case csCallsubr, csCallgsubr:
			if in.n < 1 {
				return false, csError("callsubr needs an argument")
			}
			in.n--
			subrs := in.subrs
			if b0 == csCallgsubr {
				subrs = in.font.gsubrs
			}
			idx := int(in.stack[in.n]) + subrBias(len(subrs))
			if idx < 0 || idx >= len(subrs) {
				return false, csError("subroutine index out of range")
			}
			done, err := in.run(subrs[idx], depth+1)
			if err != nil || done {
				return done, err
			}

		case csReturn:
			return false, nil

		case csEndchar:
			in.width(in.n == 1 || in.n == 5)
			in.closeContour()
			in.clear()
			return true, nil

		case csEscape:
			if i >= len(code) {
				return false, csError("truncated escape")
			}
			b1 := code[i]
			i++
			if err := in.escaped(b1); err != nil {
				return false, err
			}

		default:
			return false, csError("reserved operator")
		}
	}
	return false, nil
}

// alternatingCurves implements hvcurveto and vhcurveto.
func (in *csInterp) alternatingCurves(horizontal bool) {
	args := in.stack[:in.n]
	for j := 0; j+3 < len(args); j += 4 {
		last := 0.0
		if len(args)-j == 5 {
			last = args[j+4]
		}
		if horizontal {
			in.curveTo(args[j], 0, args[j+1], args[j+2], last, args[j+3])
		} else {
			in.curveTo(0, args[j], args[j+1], args[j+2], args[j+3], last)
		}
		horizontal = !horizontal
	}
}

func (in *csInterp) need(n int) error {
	if in.n < n {
		return csError("stack underflow")
	}
	return nil
}

func (in *csInterp) escaped(op byte) error {
	s := in.stack[:]
	switch op {
	case csHflex:
		if err := in.need(7); err != nil {
			return err
		}
		y0 := in.y
		in.curveTo(s[0], 0, s[1], s[2], s[3], 0)
		in.curveTo(s[4], 0, s[5], y0-in.y, s[6], 0)
		in.clear()
	case csFlex:
		if err := in.need(13); err != nil {
			return err
		}
		in.curveTo(s[0], s[1], s[2], s[3], s[4], s[5])
		in.curveTo(s[6], s[7], s[8], s[9], s[10], s[11])
		in.clear()
	case csHflex1:
		if err := in.need(9); err != nil {
			return err
		}
		y0 := in.y
		in.curveTo(s[0], s[1], s[2], s[3], s[4], 0)
		in.curveTo(s[5], 0, s[6], s[7], s[8], y0-(in.y+s[7]))
		in.clear()
	case csFlex1:
		if err := in.need(11); err != nil {
			return err
		}
		x0, y0 := in.x, in.y
		var dx, dy float64
		for j := 0; j < 10; j += 2 {
			dx += s[j]
			dy += s[j+1]
		}
		in.curveTo(s[0], s[1], s[2], s[3], s[4], s[5])
		x1, y1 := in.x+s[6], in.y+s[7]
		x2, y2 := x1+s[8], y1+s[9]
		x3, y3 := x2+s[10], y0
		if math.Abs(dx) <= math.Abs(dy) {
			x3, y3 = x0, y2+s[10]
		}
		in.x, in.y = x3, y3
		in.path.CubicTo(x1, y1, x2, y2, x3, y3)
		in.clear()
	default:
		return in.arith(op)
	}
	return nil
}

// arith implements the arithmetic and storage operators.
func (in *csInterp) arith(op byte) error {
	pop := func() float64 {
		in.n--
		return in.stack[in.n]
	}
	b2f := func(b bool) float64 {
		if b {
			return 1
		}
		return 0
	}
	switch op {
	case csAbs, csNeg, csNot, csSqrt, csDrop, csDup:
		if err := in.need(1); err != nil {
			return err
		}
	case csAnd, csOr, csAdd, csSub, csDiv, csMul, csEq, csExch, csPut:
		if err := in.need(2); err != nil {
			return err
		}
	case csIfelse:
		if err := in.need(4); err != nil {
			return err
		}
	case csGet, csIndex, csRoll, csRandom:
	default:
		return csError("reserved escaped operator")
	}

	switch op {
	case csAbs:
		in.stack[in.n-1] = math.Abs(in.stack[in.n-1])
	case csNeg:
		in.stack[in.n-1] = -in.stack[in.n-1]
	case csNot:
		in.stack[in.n-1] = b2f(in.stack[in.n-1] == 0)
	case csSqrt:
		in.stack[in.n-1] = math.Sqrt(math.Abs(in.stack[in.n-1]))
	case csDrop:
		in.n--
	case csDup:
		return in.push(in.stack[in.n-1])
	case csAnd:
		b, a := pop(), pop()
		return in.push(b2f(a != 0 && b != 0))
	case csOr:
		b, a := pop(), pop()
		return in.push(b2f(a != 0 || b != 0))
	case csAdd:
		b, a := pop(), pop()
		return in.push(a + b)
	case csSub:
		b, a := pop(), pop()
		return in.push(a - b)
	case csMul:
		b, a := pop(), pop()
		return in.push(a * b)
	case csDiv:
		b, a := pop(), pop()
		if b == 0 {
			return csError("division by zero")
		}
		return in.push(a / b)
	case csEq:
		b, a := pop(), pop()
		return in.push(b2f(a == b))
	case csExch:
		in.stack[in.n-1], in.stack[in.n-2] = in.stack[in.n-2], in.stack[in.n-1]
	case csIfelse:
		v2, v1, s2, s1 := pop(), pop(), pop(), pop()
		if v1 <= v2 {
			return in.push(s1)
		}
		return in.push(s2)
	case csPut:
		idx, v := int(pop()), pop()
		if idx < 0 || idx >= len(in.transient) {
			return csError("transient index out of range")
		}
		in.transient[idx] = v
	case csGet:
		if err := in.need(1); err != nil {
			return err
		}
		idx := int(pop())
		if idx < 0 || idx >= len(in.transient) {
			return csError("transient index out of range")
		}
		return in.push(in.transient[idx])
	case csIndex:
		if err := in.need(1); err != nil {
			return err
		}
		idx := int(pop())
		if idx < 0 {
			idx = 0
		}
		if idx >= in.n {
			return csError("index out of range")
		}
		return in.push(in.stack[in.n-1-idx])
	case csRoll:
		if err := in.need(2); err != nil {
			return err
		}
		j, count := int(pop()), int(pop())
		if count <= 0 || count > in.n {
			return csError("roll count out of range")
		}
		seg := in.stack[in.n-count : in.n]
		j %= count
		if j < 0 {
			j += count
		}
		rot := append(append([]float64(nil), seg[count-j:]...), seg[:count-j]...)
		copy(seg, rot)
	case csRandom:
		// Deterministic output; any value in (0, 1] is allowed.
		return in.push(0.5)
	}
	return nil
}
