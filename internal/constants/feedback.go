package constants

const (
	// Allocation and coaching thresholds:
	// - CatchUpMultiplier scales a goal's even daily share so an under-served goal
	//   can recover on later days, capped by what is still owed for the horizon.
	// - UnmetToleranceHours is how far below its pro-rated target a goal may land
	//   before it is reported as unmet.
	// - InfeasibleDeficitHours is the total shortfall above which the plan is
	//   called infeasible.
	CatchUpMultiplier      = 1.5
	UnmetToleranceHours    = 0.5
	InfeasibleDeficitHours = 10.0

	// Trade-off constants. Feasibility is judged against a fixed two-week
	// reference window independent of the planning horizon.
	TradeoffReferenceWeeks  = 2
	TradeoffFeasibleRatio   = 0.8
	TradeoffAffectedMinLoss = 0.5
)

func init() {
	if TradeoffFeasibleRatio <= 0 || TradeoffFeasibleRatio > 1 {
		panic("TradeoffFeasibleRatio must be in (0, 1]")
	}
	if CatchUpMultiplier < 1 {
		panic("CatchUpMultiplier must be at least 1")
	}
}
