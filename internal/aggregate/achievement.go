package aggregate

import "math"

// WeightProgressPercent reports how far current has moved from initial
// toward target. The direction is inferred: initial above target is a loss
// goal. The result is not clamped: overshoot gives >100 and regression <0.
// Equal initial and target weights give 0. Halves round toward +Inf, so a
// regression of -2.5 reports -2.
func WeightProgressPercent(current, target, initial float64) int {
	if initial == target {
		return 0
	}
	if initial > target {
		return roundHalfUp((initial - current) / (initial - target) * 100)
	}
	return roundHalfUp((current - initial) / (target - initial) * 100)
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

// Direction of a weight goal.
type Direction string

const (
	DirectionLoss Direction = "loss"
	DirectionGain Direction = "gain"
)

// GoalDirection is loss when initial is above target, gain otherwise.
func GoalDirection(initial, target float64) Direction {
	if initial > target {
		return DirectionLoss
	}
	return DirectionGain
}

type Achievement struct {
	ID          string `json:"id"`
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

var workoutBadges = []struct {
	threshold int
	badge     Achievement
}{
	{1, Achievement{ID: "first-workout", Icon: "trophy", Title: "First Workout", Description: "Completed your first exercise"}},
	{10, Achievement{ID: "dedicated-athlete", Icon: "trophy-fill", Title: "Dedicated Athlete", Description: "Completed 10 workouts"}},
	{50, Achievement{ID: "fitness-warrior", Icon: "trophy-fill", Title: "Fitness Warrior", Description: "Completed 50 workouts"}},
}

var weightBadges = []struct {
	threshold float64
	loss      Achievement
	gain      Achievement
}{
	{5,
		Achievement{ID: "lost-5kg", Icon: "star-fill", Title: "5kg Down!", Description: "Lost your first 5kg"},
		Achievement{ID: "gained-5kg", Icon: "star-fill", Title: "5kg Gained!", Description: "Gained your first 5kg"},
	},
	{10,
		Achievement{ID: "lost-10kg", Icon: "stars", Title: "Major Progress", Description: "Lost 10kg"},
		Achievement{ID: "gained-10kg", Icon: "stars", Title: "Major Progress", Description: "Gained 10kg"},
	},
}

// WeightHistory is the weight context for achievements.
type WeightHistory struct {
	Initial float64
	Current float64
	Target  float64
}

// Change is the movement in the goal's direction; positive means progress.
func (w WeightHistory) Change() float64 {
	if GoalDirection(w.Initial, w.Target) == DirectionLoss {
		return w.Initial - w.Current
	}
	return w.Current - w.Initial
}

// WorkoutAchievements unlocks every exercise-count badge whose threshold is
// met.
func WorkoutAchievements(exerciseCount int) []Achievement {
	out := make([]Achievement, 0, len(workoutBadges))
	for _, b := range workoutBadges {
		if exerciseCount >= b.threshold {
			out = append(out, b.badge)
		}
	}
	return out
}

// WeightAchievements unlocks every weight-change badge whose threshold is
// met, worded for the goal's direction.
func WeightAchievements(w WeightHistory) []Achievement {
	change := w.Change()
	dir := GoalDirection(w.Initial, w.Target)
	out := make([]Achievement, 0, len(weightBadges))
	for _, b := range weightBadges {
		if change < b.threshold {
			continue
		}
		if dir == DirectionLoss {
			out = append(out, b.loss)
		} else {
			out = append(out, b.gain)
		}
	}
	return out
}

// Achievements evaluates all badges. A nil weight history skips the weight
// badges.
func Achievements(exerciseCount int, weight *WeightHistory) []Achievement {
	out := WorkoutAchievements(exerciseCount)
	if weight != nil {
		out = append(out, WeightAchievements(*weight)...)
	}
	return out
}
