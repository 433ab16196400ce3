package awt

import (
	"fmt"
	"math"
)

// Rule is one of the twelve Porter-Duff compositing rules.
type Rule uint8

const (
	// Clear clears the destination.
	Clear Rule = iota
	// Src replaces the destination with the source.
	Src
	// Dst leaves the destination untouched.
	Dst
	// SrcOver draws the source over the destination.
	SrcOver
	// DstOver draws the destination over the source.
	DstOver
	// SrcIn keeps the source where the destination is.
	SrcIn
	// DstIn keeps the destination where the source is.
	DstIn
	// SrcOut keeps the source where the destination is not.
	SrcOut
	// DstOut keeps the destination where the source is not.
	DstOut
	// SrcAtop draws the source over the destination, inside it only.
	SrcAtop
	// DstAtop draws the destination over the source, inside it only.
	DstAtop
	// Xor keeps the parts of source and destination that do not overlap.
	Xor
)

var ruleNames = [...]string{
	Clear:   "Clear",
	Src:     "Src",
	Dst:     "Dst",
	SrcOver: "SrcOver",
	DstOver: "DstOver",
	SrcIn:   "SrcIn",
	DstIn:   "DstIn",
	SrcOut:  "SrcOut",
	DstOut:  "DstOut",
	SrcAtop: "SrcAtop",
	DstAtop: "DstAtop",
	Xor:     "Xor",
}

func (r Rule) String() string {
	if int(r) < len(ruleNames) {
		return ruleNames[r]
	}
	return fmt.Sprintf("Rule(%d)", uint8(r))
}

// Composite is a rule with an extra alpha that scales the source.
type Composite struct {
	Rule  Rule
	Alpha float64
}

// SrcOverComposite is the default composite.
var SrcOverComposite = Composite{Rule: SrcOver, Alpha: 1}

// NewComposite validates rule and alpha.
func NewComposite(rule Rule, alpha float64) (Composite, error) {
	c := Composite{Rule: rule, Alpha: alpha}
	if err := c.validate(); err != nil {
		return Composite{}, err
	}
	return c, nil
}

func (c Composite) validate() error {
	if int(c.Rule) >= len(ruleNames) {
		return fmt.Errorf("%w: rule %d", ErrInvalidComposite, uint8(c.Rule))
	}
	if !(c.Alpha >= 0 && c.Alpha <= 1) || math.IsNaN(c.Alpha) {
		return fmt.Errorf("%w: alpha %v outside [0, 1]", ErrInvalidComposite, c.Alpha)
	}
	return nil
}

// Derive returns c with a different alpha, as AlphaComposite.derive.
func (c Composite) Derive(alpha float64) (Composite, error) {
	return NewComposite(c.Rule, alpha)
}

func (c Composite) String() string {
	return fmt.Sprintf("%s(%g)", c.Rule, c.Alpha)
}
