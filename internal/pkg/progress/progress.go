// Package progress classifies indicator snapshots into status labels and
// computes normalized progress toward target. All functions are pure.
package progress

import (
	"fmt"
	"strings"

	"github.com/maxtwis/sdh-dashboard/internal/domain"
)

// IsNoData reports whether a value carries no information: NaN (absent or
// unparseable upstream) or the -999 sentinel the store uses.
func IsNoData(v float64) bool {
	return domain.IsNoData(v)
}

// Calculate returns progress in [0,100] as the fraction of the
// baseline→target distance covered by current. Overshoot clamps to 100,
// regression clamps to 0, and a zero baseline→target range yields 0.
func Calculate(current, baseline, target float64, dir domain.Direction) float64 {
	if IsNoData(current) || IsNoData(baseline) || IsNoData(target) {
		return 0
	}

	if dir == domain.DirectionReverse {
		if current <= target {
			return 100
		}
		if current > baseline {
			return 0
		}
		rng := baseline - target
		if rng == 0 {
			return 0
		}
		return clamp((baseline - current) / rng * 100)
	}

	if current >= target {
		return 100
	}
	rng := target - baseline
	if rng == 0 {
		return 0
	}
	return clamp((current - baseline) / rng * 100)
}

// Classify maps one snapshot to exactly one status label. The precedence
// is strict: degenerate inputs (no data, too little history, no movement)
// are decided before any trend comparison, and reaching the target while
// having moved away from the baseline still counts as getting worse.
func Classify(current, baseline, target float64, dir domain.Direction, numberOfYears int) domain.Status {
	if IsNoData(current) || IsNoData(baseline) || IsNoData(target) {
		return domain.StatusNoData
	}

	if numberOfYears <= 1 {
		return domain.StatusBaselineOnly
	}

	if current == baseline {
		return domain.StatusBaselineOnly
	}

	achieved := current >= target
	declined := current < baseline
	if dir == domain.DirectionReverse {
		achieved = current <= target
		declined = current > baseline
	}

	if achieved {
		if declined {
			return domain.StatusGettingWorse
		}
		return domain.StatusTargetAchieved
	}

	if declined {
		return domain.StatusGettingWorse
	}

	if Calculate(current, baseline, target, dir) >= 25 {
		return domain.StatusImproving
	}
	return domain.StatusLittleChange
}

// Indicator ids carrying index-like values that need two decimals.
var highPrecisionIDs = []string{"GINI"}

// FormatValue renders a value for display. Gini-class indicators and
// sub-unit index values get two decimals, everything else one.
func FormatValue(value float64, unit, indicatorID string) string {
	if IsNoData(value) {
		return "No data"
	}

	precision := 1
	for _, code := range highPrecisionIDs {
		if strings.Contains(strings.ToUpper(indicatorID), code) {
			precision = 2
		}
	}
	if strings.EqualFold(unit, "index") && value < 1 {
		precision = 2
	}

	return fmt.Sprintf("%.*f", precision, value)
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
