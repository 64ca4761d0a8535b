package domain

// BudgetStatus is the three-tier severity of spending against budget.
type BudgetStatus string

const (
	BudgetOK   BudgetStatus = "ok"
	BudgetNear BudgetStatus = "near"
	BudgetOver BudgetStatus = "over"
)

// NearBudgetPercent is the exclusive threshold above which spending is "near".
const NearBudgetPercent = 80.0

// BudgetSummary is the derived budget view of a plan.
type BudgetSummary struct {
	Budget     float64      `json:"budget"`
	TotalSpent float64      `json:"totalSpent"`
	Remaining  float64      `json:"remaining"` // negative when over budget
	Percentage float64      `json:"percentage"`
	BarPercent float64      `json:"barPercentage"` // Percentage capped at 100
	Status     BudgetStatus `json:"status"`
}

// Summarize computes remaining amount, percentage used and status.
//   - percentage is 0 when budget is not positive.
//   - over:  totalSpent > budget
//   - near:  not over and percentage > 80
//   - ok:    otherwise (exactly 80% is ok)
func Summarize(budget, totalSpent float64) BudgetSummary {
	var pct float64
	if budget > 0 {
		pct = totalSpent * 100 / budget
	}

	status := BudgetOK
	switch {
	case totalSpent > budget:
		status = BudgetOver
	case pct > NearBudgetPercent:
		status = BudgetNear
	}

	return BudgetSummary{
		Budget:     budget,
		TotalSpent: totalSpent,
		Remaining:  budget - totalSpent,
		Percentage: pct,
		BarPercent: min(pct, 100),
		Status:     status,
	}
}
