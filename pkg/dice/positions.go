package dice

import "github.com/maflot/diceplot/pkg/errors"

// MaxDiceSides is the largest pip count a die face can represent.
const MaxDiceSides = 6

// pipOffsets holds the canonical die face layouts, indexed by the number of
// category levels in the figure. Offsets are relative to the cell center in
// data units. Static data rather than branching keeps the mapping auditable.
var pipOffsets = [MaxDiceSides + 1][][2]float64{
	1: {{0, 0}},
	2: {{-0.2, 0}, {0.2, 0}},
	3: {{-0.2, -0.2}, {0, 0.2}, {0.2, -0.2}},
	4: {{-0.2, -0.2}, {-0.2, 0.2}, {0.2, -0.2}, {0.2, 0.2}},
	5: {{-0.2, -0.2}, {-0.2, 0.2}, {0, 0}, {0.2, -0.2}, {0.2, 0.2}},
	6: {{-0.2, -0.3}, {-0.2, 0}, {-0.2, 0.3}, {0.2, -0.3}, {0.2, 0}, {0.2, 0.3}},
}

// PipOffsets returns the die face layout for count pips. count must be
// between 1 and MaxDiceSides.
func PipOffsets(count int) ([][2]float64, error) {
	if count < 1 || count > MaxDiceSides {
		return nil, errors.New(errors.ErrCodeLayoutOverflow,
			"no die face layout for %d pips (supported: 1-%d)", count, MaxDiceSides)
	}
	return pipOffsets[count], nil
}
