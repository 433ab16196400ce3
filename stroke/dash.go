package stroke

import (
	"math"

	"github.com/nullpops/awt/geom"
)

// dashState walks a dash pattern.
type dashState struct {
	pattern []float64
	idx     int
	left    float64 // length remaining in pattern[idx]
}

// newDashState positions the walk phase units into the pattern.
func newDashState(pattern []float64, phase float64) dashState {
	var total float64
	for _, d := range pattern {
		total += d
	}
	phase = math.Mod(phase, total)
	if phase < 0 || math.IsNaN(phase) {
		if math.IsNaN(phase) {
			phase = 0
		} else {
			phase += total
		}
	}
	st := dashState{pattern: pattern}
	for phase >= pattern[st.idx] {
		phase -= pattern[st.idx]
		st.idx = (st.idx + 1) % len(pattern)
	}
	st.left = pattern[st.idx] - phase
	return st
}

func (st *dashState) on() bool { return st.idx%2 == 0 }

func (st *dashState) advance() {
	st.idx = (st.idx + 1) % len(st.pattern)
	st.left = st.pattern[st.idx]
}

// dashPolyline splits pl into the open polylines covered by the on
// intervals of the pattern. Each subpath restarts at phase. When a closed
// polyline starts and ends inside an on interval the two pieces are joined
// across the start point.
func dashPolyline(pl geom.Polyline, pattern []float64, phase float64) []geom.Polyline {
	st := newDashState(pattern, phase)
	startsOn := st.on()

	var out []geom.Polyline
	var cur []geom.Point
	if st.on() && len(pl.Points) > 0 {
		cur = []geom.Point{pl.Points[0]}
	}
	flush := func() {
		if len(cur) > 0 {
			out = append(out, geom.Polyline{Points: cur})
		}
		cur = nil
	}

	pl.Edges(false, func(a, b geom.Point) {
		seg := b.Sub(a)
		length := seg.Length()
		pos := 0.0
		for length-pos > st.left {
			pos += st.left
			pt := a.Add(seg.Mul(pos / length))
			if st.on() {
				cur = append(cur, pt)
				flush()
			} else {
				cur = []geom.Point{pt}
			}
			st.advance()
			// Zero-length entries toggle without consuming distance.
			for st.left == 0 {
				if st.on() {
					out = append(out, geom.Polyline{Points: []geom.Point{pt, pt}})
				}
				st.advance()
				if st.on() {
					cur = []geom.Point{pt}
				} else {
					cur = nil
				}
			}
		}
		st.left -= length - pos
		if st.on() {
			cur = append(cur, b)
		}
	})
	endsOn := st.on() && len(cur) > 0
	if pl.Closed && startsOn && endsOn {
		if len(out) == 0 {
			return []geom.Polyline{pl}
		}
		// Continue the final dash into the first one.
		out[0].Points = append(cur, out[0].Points[1:]...)
		return out
	}
	flush()
	return out
}

// dashAll applies pattern to every polyline.
func dashAll(lines []geom.Polyline, pattern []float64, phase float64) []geom.Polyline {
	var out []geom.Polyline
	for _, pl := range lines {
		out = append(out, dashPolyline(pl, pattern, phase)...)
	}
	return out
}
