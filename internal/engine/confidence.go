package engine

import (
	"github.com/sells-group/valuation-cli/internal/archetype"
	"github.com/sells-group/valuation-cli/internal/model"
)

// Confidence penalties. Each applies independently and the score is
// clamped to [0, 100] at the end.
const (
	penaltyNoPrimary       = 25
	penaltyNoSecondary     = 10
	penaltyNoQualitative   = 10
	penaltyNoRetraitements = 10
	penaltyNegativeEBITDA  = 20
	penaltyNoOwnerComp     = 10
	penaltyNoRecurringData = 15
	penaltyNoAssetData     = 15
	penaltyNoGTV           = 15
)

// confidenceScore rates how well the supplied data supports the chosen
// methodology, from 0 (unusable) to 100 (complete).
func confidenceScore(a archetype.Archetype, fin model.FinancialData, m metricSet, q *model.QualitativeData, adjustments []model.Adjustment) int {
	score := 100

	if m.primary <= 0 {
		score -= penaltyNoPrimary
	}
	if m.secondary <= 0 {
		score -= penaltyNoSecondary
	}
	if q == nil {
		score -= penaltyNoQualitative
	}

	if a.EBITDABased() {
		if fin.Retraitements == nil {
			score -= penaltyNoRetraitements
		}
		if fin.EBITDA <= 0 {
			score -= penaltyNegativeEBITDA
		}
	}

	// Advisory and micro valuations hinge on owner pay being restated;
	// stacks with the generic missing-retraitements penalty.
	if a == archetype.Advisory || a == archetype.Micro {
		if !hasOwnerCompAdjustment(adjustments) {
			score -= penaltyNoOwnerComp
		}
	}

	if a == archetype.SaaSHyperGrowth && fin.ARR == 0 && fin.MRR == 0 {
		score -= penaltyNoRecurringData
	}
	if a.AssetHeavy() && fin.TotalAssets == 0 {
		score -= penaltyNoAssetData
	}
	if a == archetype.Marketplace && fin.GTV == 0 {
		score -= penaltyNoGTV
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

func hasOwnerCompAdjustment(adjustments []model.Adjustment) bool {
	for _, a := range adjustments {
		if a.Name == adjOwnerComp {
			return true
		}
	}
	return false
}
