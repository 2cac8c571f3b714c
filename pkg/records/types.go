package records

// Exercise is one catalogue entry. Type is the catalogue spelling
// ("strength" or "distance-cardio").
type Exercise struct {
	Name string   `json:"name"`
	Type string   `json:"type"`
	Tags []string `json:"tags,omitempty"` // populated from exercise_tags
}

// Calories is one row of the nutrition table.
type Calories struct {
	Date     string `json:"date"`
	Calories int    `json:"calories"`
}

// Measurement is one row of the measurements table.
type Measurement struct {
	Date       string  `json:"date"`
	Weight     float64 `json:"weight"`
	WeightUnit string  `json:"weight_unit"`
}

// StrengthSet is one row of the strength_sets table.
type StrengthSet struct {
	Date     string  `json:"date"`
	Exercise string  `json:"exercise"`
	Weight   float64 `json:"weight"`
	Unit     string  `json:"unit"`
	Reps     int     `json:"reps"`
}

// EnduranceSet is one row of the endurance_sets table. Time and TimeUnit are
// nil when no duration was logged.
type EnduranceSet struct {
	Date         string   `json:"date"`
	Exercise     string   `json:"exercise"`
	Distance     float64  `json:"distance"`
	DistanceUnit string   `json:"distance_unit"`
	Time         *float64 `json:"time,omitempty"`
	TimeUnit     *string  `json:"time_unit,omitempty"`
	Speed        float64  `json:"speed"`
	SpeedUnit    string   `json:"speed_unit"`
}

// Batch holds every row produced by one journal load, in insertion order.
type Batch struct {
	Tags          []string
	Exercises     []Exercise
	Nutrition     []Calories
	Measurements  []Measurement
	StrengthSets  []StrengthSet
	EnduranceSets []EnduranceSet
}

// Counts is the number of rows per table.
type Counts struct {
	Tags          int `json:"tags"`
	Exercises     int `json:"exercises"`
	ExerciseTags  int `json:"exercise_tags"`
	Nutrition     int `json:"nutrition"`
	Measurements  int `json:"measurements"`
	StrengthSets  int `json:"strength_sets"`
	EnduranceSets int `json:"endurance_sets"`
}

// Counts reports how many rows InsertBatch writes for b.
func (b Batch) Counts() Counts {
	c := Counts{
		Tags:          len(b.Tags),
		Exercises:     len(b.Exercises),
		Nutrition:     len(b.Nutrition),
		Measurements:  len(b.Measurements),
		StrengthSets:  len(b.StrengthSets),
		EnduranceSets: len(b.EnduranceSets),
	}
	for _, e := range b.Exercises {
		c.ExerciseTags += len(e.Tags)
	}
	return c
}
