package fees

import "github.com/Spok95/school-admin/internal/models"

// ResolveConcession picks the concession that applies to a billing month:
// among records whose validity window [startMonth, endMonth) contains the
// month, the one with the latest startMonth wins. Months are zero-padded
// "YYYY-MM", so string comparison is chronological.
func ResolveConcession(concessions []models.Concession, month string) *models.Concession {
	var best *models.Concession
	for i := range concessions {
		c := &concessions[i]
		if c.StartMonth > month {
			continue
		}
		if c.EndMonth != "" && month >= c.EndMonth {
			continue
		}
		if best == nil || c.StartMonth > best.StartMonth {
			best = c
		}
	}
	return best
}

// ApplyConcession discounts a base fee, clamping at zero. A nil concession
// leaves the base fee untouched.
func ApplyConcession(base float64, c *models.Concession) float64 {
	if c == nil {
		return base
	}
	var final float64
	switch c.Mode {
	case models.ConcessionFixed:
		final = base - c.Amount
	case models.ConcessionPercentage:
		final = base * (1 - c.Amount/100)
	default:
		final = base
	}
	if final < 0 {
		return 0
	}
	return final
}
