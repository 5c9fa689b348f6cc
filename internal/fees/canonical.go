package fees

import "strings"

// digit→roman replacement passes, applied in this exact order. The order is
// observable behavior: "1" is replaced before "10" can ever match, so a class
// literally named "10" canonicalizes to "I0", not "X". Fee rows are keyed by
// whatever this function actually produces, so changing the order would
// silently detach existing fee structures from their classes.
// TODO(fees): agree with the office whether "10" should map to "X" and
// migrate fee_structures.class_name in the same change.
var romanPasses = [...][2]string{
	{"1", "I"},
	{"2", "II"},
	{"3", "III"},
	{"4", "IV"},
	{"5", "V"},
	{"6", "VI"},
	{"7", "VII"},
	{"8", "VIII"},
	{"9", "IX"},
	{"10", "X"},
}

// CanonicalClass normalizes a free-text class label into the key used by the
// fee-structure table: the leading "Grade " prefix is dropped, hyphens become
// spaces, and digits 1..10 are rewritten as upper-case roman numerals.
func CanonicalClass(name string) string {
	s := strings.TrimSpace(name)
	if len(s) >= 6 && strings.EqualFold(s[:6], "grade ") {
		s = s[6:]
	}
	s = strings.ReplaceAll(s, "-", " ")
	for _, p := range romanPasses {
		s = strings.ReplaceAll(s, p[0], p[1])
	}
	return strings.ToUpper(strings.TrimSpace(s))
}
