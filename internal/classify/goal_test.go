package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGoalStatusGreen(t *testing.T) {
	// Ratio 1.0, protein ratio exactly at the 0.85 floor.
	assert.Equal(t, StatusGreen, GoalStatus(1000, 85, 1000, 100))
}

func TestGoalStatusRedOverBand(t *testing.T) {
	assert.Equal(t, StatusRed, GoalStatus(1200, 100, 1000, 100))
}

func TestGoalStatusRedUnderBand(t *testing.T) {
	assert.Equal(t, StatusRed, GoalStatus(800, 100, 1000, 100))
}

func TestGoalStatusYellowLowProtein(t *testing.T) {
	assert.Equal(t, StatusYellow, GoalStatus(1000, 70, 1000, 100))
}

func TestGoalStatusBandEdges(t *testing.T) {
	assert.Equal(t, StatusGreen, GoalStatus(900, 100, 1000, 100))
	assert.Equal(t, StatusGreen, GoalStatus(1100, 100, 1000, 100))
}

func TestGoalStatusZeroCalorieTarget(t *testing.T) {
	// Must not divide; undefined target reports red.
	assert.Equal(t, StatusRed, GoalStatus(1000, 100, 0, 100))
}

func TestGoalStatusNoProteinTarget(t *testing.T) {
	// Without a protein target there is no protein check to fail.
	assert.Equal(t, StatusGreen, GoalStatus(1000, 0, 1000, 0))
}
