package tetris

// Kick names the corrective shift that made a rotation legal.
type Kick int

const (
	KickNone  Kick = iota // rotated in place
	KickRight             // anchor moved one column right
	KickLeft              // anchor moved one column left
	KickUp                // anchor moved one row up
)

func (k Kick) String() string {
	switch k {
	case KickNone:
		return "none"
	case KickRight:
		return "right"
	case KickLeft:
		return "left"
	case KickUp:
		return "up"
	default:
		return "unknown"
	}
}

// Rules holds the two rotation kick switches.
type Rules struct {
	WallKick  bool
	FloorKick bool
}

// DefaultRules enables both kicks.
func DefaultRules() Rules {
	return Rules{WallKick: true, FloorKick: true}
}

// ResolveRotation rotates p and searches for a legal placement. Candidates
// are tried in a fixed order: in place, one column right, one column left
// (wall kick), then one row up (floor kick). The first legal placement wins.
// When nothing fits, the original piece is returned with ok == false.
func ResolveRotation(b *Board, p ActivePiece, clockwise bool, rules Rules) (ActivePiece, Kick, bool) {
	rotated := p.Rotated(clockwise)
	if b.Fits(rotated.Cells()) {
		return rotated, KickNone, true
	}

	if rules.WallKick {
		if q := rotated.Moved(1, 0); b.Fits(q.Cells()) {
			return q, KickRight, true
		}
		if q := rotated.Moved(-1, 0); b.Fits(q.Cells()) {
			return q, KickLeft, true
		}
	}
	if rules.FloorKick {
		if q := rotated.Moved(0, -1); b.Fits(q.Cells()) {
			return q, KickUp, true
		}
	}

	// Revert through the inverse rotation.
	return rotated.Rotated(!clockwise), KickNone, false
}

// LandingRow returns the deepest anchor row p can reach by moving straight
// down from its current position.
func LandingRow(b *Board, p ActivePiece) int {
	probe := p.Clone()
	for b.Fits(probe.Moved(0, 1).Cells()) {
		probe.Anchor.Y++
	}
	return probe.Anchor.Y
}
