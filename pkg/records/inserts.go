package records

import (
	"context"
	"database/sql"
	"fmt"
)

// Execer is satisfied by *sql.DB, *sql.Tx and *sql.Conn.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

const (
	insertTagStatement = `
	INSERT INTO tags (name) VALUES (?)
	`

	insertExerciseStatement = `
	INSERT INTO exercises (name, type) VALUES (?, ?)
	`

	insertExerciseTagStatement = `
	INSERT INTO exercise_tags (exercise, tag) VALUES (?, ?)
	`

	insertCaloriesStatement = `
	INSERT INTO nutrition (date, calories) VALUES (?, ?)
	`

	insertMeasurementStatement = `
	INSERT INTO measurements (date, weight, weight_unit) VALUES (?, ?, ?)
	`

	insertStrengthSetStatement = `
	INSERT INTO strength_sets (date, exercise, weight, unit, reps)
	VALUES (?, ?, ?, ?, ?)
	`

	insertEnduranceSetStatement = `
	INSERT INTO endurance_sets (date, exercise, distance, distance_unit, time, time_unit, speed, speed_unit)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
)

// InsertBatch writes every row of b. Callers pass a transaction when the
// batch must land all-or-nothing.
func InsertBatch(ctx context.Context, ex Execer, b Batch) error {
	for _, tag := range b.Tags {
		if _, err := ex.ExecContext(ctx, insertTagStatement, tag); err != nil {
			return fmt.Errorf("failed to insert tag %q: %w", tag, err)
		}
	}

	for _, e := range b.Exercises {
		if err := InsertExercise(ctx, ex, e); err != nil {
			return err
		}
	}

	for _, c := range b.Nutrition {
		if _, err := ex.ExecContext(ctx, insertCaloriesStatement, c.Date, c.Calories); err != nil {
			return fmt.Errorf("failed to insert calories for %s: %w", c.Date, err)
		}
	}

	for _, m := range b.Measurements {
		if _, err := ex.ExecContext(ctx, insertMeasurementStatement, m.Date, m.Weight, m.WeightUnit); err != nil {
			return fmt.Errorf("failed to insert measurement for %s: %w", m.Date, err)
		}
	}

	for _, s := range b.StrengthSets {
		_, err := ex.ExecContext(
			ctx,
			insertStrengthSetStatement,
			s.Date,
			s.Exercise,
			s.Weight,
			s.Unit,
			s.Reps,
		)
		if err != nil {
			return fmt.Errorf("failed to insert strength set for %s/%s: %w", s.Date, s.Exercise, err)
		}
	}

	for _, s := range b.EnduranceSets {
		_, err := ex.ExecContext(
			ctx,
			insertEnduranceSetStatement,
			s.Date,
			s.Exercise,
			s.Distance,
			s.DistanceUnit,
			s.Time,
			s.TimeUnit,
			s.Speed,
			s.SpeedUnit,
		)
		if err != nil {
			return fmt.Errorf("failed to insert endurance set for %s/%s: %w", s.Date, s.Exercise, err)
		}
	}

	return nil
}

// InsertExercise writes the exercise row and one exercise_tags row per tag.
func InsertExercise(ctx context.Context, ex Execer, e Exercise) error {
	if _, err := ex.ExecContext(ctx, insertExerciseStatement, e.Name, e.Type); err != nil {
		return fmt.Errorf("failed to insert exercise %q: %w", e.Name, err)
	}
	for _, tag := range e.Tags {
		if _, err := ex.ExecContext(ctx, insertExerciseTagStatement, e.Name, tag); err != nil {
			return fmt.Errorf("failed to tag exercise %q with %q: %w", e.Name, tag, err)
		}
	}
	return nil
}
