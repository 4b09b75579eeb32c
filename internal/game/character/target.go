package character

// SelectTarget returns the living opponent with the lowest Health+Armor.
// Ties go to the opponent that appears first.
//
// Postcondition: ok is false iff no opponent is alive.
func SelectTarget(opponents []*Character) (*Character, bool) {
	var best *Character
	for _, o := range opponents {
		if o == nil || !o.Alive() {
			continue
		}
		if best == nil || o.Health+o.Armor < best.Health+best.Armor {
			best = o
		}
	}
	return best, best != nil
}

// AnyAlive reports whether at least one character in cs is alive. Nil
// entries are skipped, as in SelectTarget.
func AnyAlive(cs []*Character) bool {
	for _, c := range cs {
		if c != nil && c.Alive() {
			return true
		}
	}
	return false
}
