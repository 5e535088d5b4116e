package model

// MealName is one of the four diary sections a food entry is filed under.
type MealName string

const (
	MealBreakfast MealName = "breakfast"
	MealLunch     MealName = "lunch"
	MealDinner    MealName = "dinner"
	MealSnacks    MealName = "snacks"
)

// Meals lists the diary sections in display order.
var Meals = []MealName{MealBreakfast, MealLunch, MealDinner, MealSnacks}

func (m MealName) Valid() bool {
	for _, v := range Meals {
		if m == v {
			return true
		}
	}
	return false
}

const (
	CategoryCardio   = "cardio"
	CategoryStrength = "strength"
)

type FoodEntry struct {
	Name        string  `json:"name"`
	ServingSize float64 `json:"servingSize,omitempty"`
	ServingUnit string  `json:"servingUnit,omitempty"`
	Calories    float64 `json:"calories,omitempty"`
	Protein     float64 `json:"protein,omitempty"`
	Carbs       float64 `json:"carbs,omitempty"`
	Fat         float64 `json:"fat,omitempty"`
	IsCustom    bool    `json:"isCustom,omitempty"`
	Timestamp   int64   `json:"timestamp,omitempty"`
}

// Quantity is a measured value with its unit, e.g. 5 km or 40 kg.
type Quantity struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

type ExerciseEntry struct {
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Duration  int       `json:"duration,omitempty"`
	Notes     *string   `json:"notes,omitempty"`
	Distance  *Quantity `json:"distance,omitempty"`
	Intensity *string   `json:"intensity,omitempty"`
	MetValue  *float64  `json:"metValue,omitempty"`
	Sets      *int      `json:"sets,omitempty"`
	Reps      *int      `json:"reps,omitempty"`
	Weight    *Quantity `json:"weight,omitempty"`
	IsCustom  bool      `json:"isCustom,omitempty"`
	Timestamp int64     `json:"timestamp,omitempty"`
}

type WaterRecord struct {
	Glasses     int    `json:"glasses"`
	LastUpdated string `json:"lastUpdated,omitempty"`
}

type NutritionalGoals struct {
	Calories float64 `json:"calories,omitempty"`
	Protein  float64 `json:"protein,omitempty"`
	Carbs    float64 `json:"carbs,omitempty"`
	Fat      float64 `json:"fat,omitempty"`
}

type Preferences struct {
	Theme string `json:"theme,omitempty"`
}

type UserProfile struct {
	Username         string            `json:"username,omitempty"`
	Email            string            `json:"email,omitempty"`
	Age              *int              `json:"age,omitempty"`
	Weight           *float64          `json:"weight,omitempty"`
	Height           *float64          `json:"height,omitempty"`
	WaterGoal        *int              `json:"waterGoal,omitempty"`
	NutritionalGoals *NutritionalGoals `json:"nutritionalGoals,omitempty"`
	Preferences      *Preferences      `json:"preferences,omitempty"`
}

const (
	GoalTypeLose     = "lose"
	GoalTypeGain     = "gain"
	GoalTypeMaintain = "maintain"
)

type Goal struct {
	TargetWeight  float64  `json:"targetWeight"`
	GoalType      string   `json:"goalType"`
	InitialWeight *float64 `json:"initialWeight,omitempty"`
	Timestamp     int64    `json:"timestamp,omitempty"`
}

type Measurement struct {
	Weight    float64  `json:"weight"`
	BodyFat   *float64 `json:"bodyFat,omitempty"`
	Timestamp int64    `json:"timestamp,omitempty"`
}

// DatedMeasurement pairs a measurement with the date key it is stored under.
type DatedMeasurement struct {
	Date string `json:"date"`
	Measurement
}

type CustomExercise struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	MetValue    *float64 `json:"metValue,omitempty"`
	MuscleGroup string   `json:"muscleGroup,omitempty"`
	IsCustom    bool     `json:"isCustom"`
}

// Keyed wraps a record with the store key it was read from.
type Keyed[T any] struct {
	ID    string `json:"id"`
	Value T      `json:"value"`
}
