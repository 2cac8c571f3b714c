package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var (
	ErrExerciseNotFound = errors.New("exercise not found")
)

// Querier is satisfied by *sql.DB, *sql.Tx and *sql.Conn.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

const (
	listTagsStatement = `
	SELECT name FROM tags ORDER BY rowid
	`

	listExercisesStatement = `
	SELECT name, type FROM exercises ORDER BY rowid
	`

	listExerciseTagsStatement = `
	SELECT exercise, tag FROM exercise_tags ORDER BY rowid
	`

	getExerciseStatement = `
	SELECT name, type FROM exercises WHERE name = ?
	`

	listNutritionStatement = `
	SELECT date, calories FROM nutrition ORDER BY rowid
	`

	listMeasurementsStatement = `
	SELECT date, weight, weight_unit FROM measurements ORDER BY rowid
	`

	listStrengthSetsStatement = `
	SELECT date, exercise, weight, unit, reps
	FROM strength_sets
	WHERE exercise = ? OR ? = ''
	ORDER BY rowid
	`

	listEnduranceSetsStatement = `
	SELECT date, exercise, distance, distance_unit, time, time_unit, speed, speed_unit
	FROM endurance_sets
	WHERE exercise = ? OR ? = ''
	ORDER BY rowid
	`
)

// ListTags returns the catalogue tags in declaration order.
func ListTags(ctx context.Context, q Querier) ([]string, error) {
	rows, err := q.QueryContext(ctx, listTagsStatement)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("failed to scan tag row: %w", err)
		}
		tags = append(tags, tag)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tag rows: %w", err)
	}
	return tags, nil
}

// ListExercises returns every exercise with its tags, in declaration order.
func ListExercises(ctx context.Context, q Querier) ([]Exercise, error) {
	rows, err := q.QueryContext(ctx, listExercisesStatement)
	if err != nil {
		return nil, fmt.Errorf("failed to query exercises: %w", err)
	}
	defer rows.Close()

	var exercises []Exercise
	index := map[string]int{}
	for rows.Next() {
		var e Exercise
		if err := rows.Scan(&e.Name, &e.Type); err != nil {
			return nil, fmt.Errorf("failed to scan exercise row: %w", err)
		}
		index[e.Name] = len(exercises)
		exercises = append(exercises, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating exercise rows: %w", err)
	}
	rows.Close()

	tagRows, err := q.QueryContext(ctx, listExerciseTagsStatement)
	if err != nil {
		return nil, fmt.Errorf("failed to query exercise tags: %w", err)
	}
	defer tagRows.Close()

	for tagRows.Next() {
		var name, tag string
		if err := tagRows.Scan(&name, &tag); err != nil {
			return nil, fmt.Errorf("failed to scan exercise tag row: %w", err)
		}
		if i, ok := index[name]; ok {
			exercises[i].Tags = append(exercises[i].Tags, tag)
		}
	}
	if err = tagRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating exercise tag rows: %w", err)
	}

	return exercises, nil
}

// GetExercise returns one exercise by name, without tags.
func GetExercise(ctx context.Context, q Querier, name string) (Exercise, error) {
	rows, err := q.QueryContext(ctx, getExerciseStatement, name)
	if err != nil {
		return Exercise{}, fmt.Errorf("failed to query exercise %q: %w", name, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return Exercise{}, err
		}
		return Exercise{}, ErrExerciseNotFound
	}
	var e Exercise
	if err := rows.Scan(&e.Name, &e.Type); err != nil {
		return Exercise{}, fmt.Errorf("failed to scan exercise row: %w", err)
	}
	return e, nil
}

// ListNutrition returns all calorie rows in date order.
func ListNutrition(ctx context.Context, q Querier) ([]Calories, error) {
	rows, err := q.QueryContext(ctx, listNutritionStatement)
	if err != nil {
		return nil, fmt.Errorf("failed to query nutrition: %w", err)
	}
	defer rows.Close()

	var out []Calories
	for rows.Next() {
		var c Calories
		if err := rows.Scan(&c.Date, &c.Calories); err != nil {
			return nil, fmt.Errorf("failed to scan nutrition row: %w", err)
		}
		out = append(out, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating nutrition rows: %w", err)
	}
	return out, nil
}

// ListMeasurements returns all weight measurements in date order.
func ListMeasurements(ctx context.Context, q Querier) ([]Measurement, error) {
	rows, err := q.QueryContext(ctx, listMeasurementsStatement)
	if err != nil {
		return nil, fmt.Errorf("failed to query measurements: %w", err)
	}
	defer rows.Close()

	var out []Measurement
	for rows.Next() {
		var m Measurement
		if err := rows.Scan(&m.Date, &m.Weight, &m.WeightUnit); err != nil {
			return nil, fmt.Errorf("failed to scan measurement row: %w", err)
		}
		out = append(out, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating measurement rows: %w", err)
	}
	return out, nil
}

// ListStrengthSets returns strength sets for exercise, or for every exercise
// when exercise is empty.
func ListStrengthSets(ctx context.Context, q Querier, exercise string) ([]StrengthSet, error) {
	rows, err := q.QueryContext(ctx, listStrengthSetsStatement, exercise, exercise)
	if err != nil {
		return nil, fmt.Errorf("failed to query strength sets: %w", err)
	}
	defer rows.Close()

	var out []StrengthSet
	for rows.Next() {
		var s StrengthSet
		if err := rows.Scan(&s.Date, &s.Exercise, &s.Weight, &s.Unit, &s.Reps); err != nil {
			return nil, fmt.Errorf("failed to scan strength set row: %w", err)
		}
		out = append(out, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating strength set rows: %w", err)
	}
	return out, nil
}

// ListEnduranceSets returns endurance sets for exercise, or for every
// exercise when exercise is empty.
func ListEnduranceSets(ctx context.Context, q Querier, exercise string) ([]EnduranceSet, error) {
	rows, err := q.QueryContext(ctx, listEnduranceSetsStatement, exercise, exercise)
	if err != nil {
		return nil, fmt.Errorf("failed to query endurance sets: %w", err)
	}
	defer rows.Close()

	var out []EnduranceSet
	for rows.Next() {
		var s EnduranceSet
		err := rows.Scan(
			&s.Date,
			&s.Exercise,
			&s.Distance,
			&s.DistanceUnit,
			&s.Time,
			&s.TimeUnit,
			&s.Speed,
			&s.SpeedUnit,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan endurance set row: %w", err)
		}
		out = append(out, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating endurance set rows: %w", err)
	}
	return out, nil
}
