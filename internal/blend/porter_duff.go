// Package blend implements the twelve Porter-Duff compositing rules on
// premultiplied 8-bit pixels.
//
// References:
//   - Porter-Duff: "Compositing Digital Images" (1984)
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
package blend

// Mode is a Porter-Duff rule. The order matches awt.Rule.
type Mode uint8

const (
	Clear           Mode = iota // 0
	Source                      // S
	Destination                 // D
	SourceOver                  // S + D*(1-Sa)
	DestinationOver             // S*(1-Da) + D
	SourceIn                    // S*Da
	DestinationIn               // D*Sa
	SourceOut                   // S*(1-Da)
	DestinationOut              // D*(1-Sa)
	SourceAtop                  // S*Da + D*(1-Sa)
	DestinationAtop             // S*(1-Da) + D*Sa
	Xor                         // S*(1-Da) + D*(1-Sa)
)

// Func blends one premultiplied source pixel onto one premultiplied
// destination pixel.
type Func func(sr, sg, sb, sa, dr, dg, db, da byte) (r, g, b, a byte)

var funcs = [...]Func{
	Clear:           blendClear,
	Source:          blendSource,
	Destination:     blendDestination,
	SourceOver:      blendSourceOver,
	DestinationOver: blendDestinationOver,
	SourceIn:        blendSourceIn,
	DestinationIn:   blendDestinationIn,
	SourceOut:       blendSourceOut,
	DestinationOut:  blendDestinationOut,
	SourceAtop:      blendSourceAtop,
	DestinationAtop: blendDestinationAtop,
	Xor:             blendXor,
}

// FuncFor returns the blend function for mode. Unknown modes get SourceOver.
func FuncFor(mode Mode) Func {
	if int(mode) < len(funcs) {
		return funcs[mode]
	}
	return blendSourceOver
}

func blendClear(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return 0, 0, 0, 0
}

func blendSource(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return sr, sg, sb, sa
}

func blendDestination(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return dr, dg, db, da
}

// blendSourceOver is the default rule.
func blendSourceOver(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	invSa := 255 - sa
	return addDiv255(sr, mulDiv255(dr, invSa)),
		addDiv255(sg, mulDiv255(dg, invSa)),
		addDiv255(sb, mulDiv255(db, invSa)),
		addDiv255(sa, mulDiv255(da, invSa))
}

func blendDestinationOver(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	invDa := 255 - da
	return addDiv255(mulDiv255(sr, invDa), dr),
		addDiv255(mulDiv255(sg, invDa), dg),
		addDiv255(mulDiv255(sb, invDa), db),
		addDiv255(mulDiv255(sa, invDa), da)
}

func blendSourceIn(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return mulDiv255(sr, da), mulDiv255(sg, da), mulDiv255(sb, da), mulDiv255(sa, da)
}

func blendDestinationIn(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return mulDiv255(dr, sa), mulDiv255(dg, sa), mulDiv255(db, sa), mulDiv255(da, sa)
}

func blendSourceOut(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	invDa := 255 - da
	return mulDiv255(sr, invDa), mulDiv255(sg, invDa), mulDiv255(sb, invDa), mulDiv255(sa, invDa)
}

func blendDestinationOut(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	invSa := 255 - sa
	return mulDiv255(dr, invSa), mulDiv255(dg, invSa), mulDiv255(db, invSa), mulDiv255(da, invSa)
}

// blendSourceAtop keeps the destination alpha.
func blendSourceAtop(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	invSa := 255 - sa
	return addDiv255(mulDiv255(sr, da), mulDiv255(dr, invSa)),
		addDiv255(mulDiv255(sg, da), mulDiv255(dg, invSa)),
		addDiv255(mulDiv255(sb, da), mulDiv255(db, invSa)),
		da
}

// blendDestinationAtop keeps the source alpha.
func blendDestinationAtop(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	invDa := 255 - da
	return addDiv255(mulDiv255(sr, invDa), mulDiv255(dr, sa)),
		addDiv255(mulDiv255(sg, invDa), mulDiv255(dg, sa)),
		addDiv255(mulDiv255(sb, invDa), mulDiv255(db, sa)),
		sa
}

func blendXor(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	invDa := 255 - da
	invSa := 255 - sa
	return addDiv255(mulDiv255(sr, invDa), mulDiv255(dr, invSa)),
		addDiv255(mulDiv255(sg, invDa), mulDiv255(dg, invSa)),
		addDiv255(mulDiv255(sb, invDa), mulDiv255(db, invSa)),
		addDiv255(mulDiv255(sa, invDa), mulDiv255(da, invSa))
}
