package combat

// dealDamage applies raw damage to hp. Raw damage of zero or less still
// deals 1, and hp never drops below 0.
func dealDamage(hp, raw int) int {
	if raw < 1 {
		raw = 1
	}
	hp -= raw
	if hp < 0 {
		return 0
	}
	return hp
}

// attackDamage is what an attacker deals against a defense bonus.
func attackDamage(attack, defense int) int {
	dmg := attack - defense
	if dmg < 1 {
		return 1
	}
	return dmg
}
