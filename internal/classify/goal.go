package classify

// Status is the three-level goal adherence classification.
type Status string

const (
	StatusGreen  Status = "green"
	StatusYellow Status = "yellow"
	StatusRed    Status = "red"
)

const (
	calorieLow   = 0.9
	calorieHigh  = 1.1
	proteinFloor = 0.85
)

// GoalStatus classifies a patient's consumed calories and protein against
// their targets. Caloric deviation dominates: outside the [0.9, 1.1] band the
// status is red regardless of protein. Inside the band, protein below 85% of
// target degrades green to yellow. A calorie target of zero is undefined and
// reported as red rather than dividing.
func GoalStatus(consumedCalories, consumedProtein, targetCalories, targetProtein float64) Status {
	if targetCalories <= 0 {
		return StatusRed
	}
	ratio := consumedCalories / targetCalories
	if ratio < calorieLow || ratio > calorieHigh {
		return StatusRed
	}
	// No protein target set means no protein check to fail.
	if targetProtein > 0 && consumedProtein/targetProtein < proteinFloor {
		return StatusYellow
	}
	return StatusGreen
}
