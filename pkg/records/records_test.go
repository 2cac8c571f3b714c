package records

import (
	"context"
	"database/sql"
	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"
	"github.com/unowned-ai/ktl/pkg/db"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := db.OpenMemoryDB("records-test-" + uuid.NewString())
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}

	if err := db.InitializeSchema(testDB, db.TargetSchemaVersion); err != nil {
		t.Fatalf("Failed to initialize schema: %v", err)
	}

	return testDB
}

func sampleBatch() Batch {
	minutes := 25.0
	unit := "min"
	return Batch{
		Tags: []string{"legs", "push"},
		Exercises: []Exercise{
			{Name: "squat", Type: "strength", Tags: []string{"legs"}},
			{Name: "pushup", Type: "strength", Tags: []string{"push", "bodyweight"}},
			{Name: "run", Type: "distance-cardio"},
		},
		Nutrition: []Calories{
			{Date: "2024-01-01", Calories: 2100},
		},
		Measurements: []Measurement{
			{Date: "2024-01-01", Weight: 82.5, WeightUnit: "kg"},
		},
		StrengthSets: []StrengthSet{
			{Date: "2024-01-01", Exercise: "squat", Weight: 100, Unit: "kg", Reps: 5},
			{Date: "2024-01-01", Exercise: "pushup", Weight: 0, Unit: "kg", Reps: 20},
			{Date: "2024-01-02", Exercise: "squat", Weight: 105, Unit: "kg", Reps: 3},
		},
		EnduranceSets: []EnduranceSet{
			{Date: "2024-01-02", Exercise: "run", Distance: 5, DistanceUnit: "km", Speed: 5.5, SpeedUnit: "min/km"},
			{Date: "2024-01-03", Exercise: "run", Distance: 3, DistanceUnit: "km", Time: &minutes, TimeUnit: &unit, SpeedUnit: "min/km"},
		},
	}
}

func TestInsertBatch(t *testing.T) {
	testDB := setupTestDB(t)
	defer testDB.Close()
	ctx := context.Background()

	batch := sampleBatch()
	if err := InsertBatch(ctx, testDB, batch); err != nil {
		t.Fatalf("InsertBatch failed: %v", err)
	}

	tags, err := ListTags(ctx, testDB)
	if err != nil {
		t.Fatalf("ListTags failed: %v", err)
	}
	if !reflect.DeepEqual(tags, batch.Tags) {
		t.Errorf("Expected tags %v, got %v", batch.Tags, tags)
	}

	exercises, err := ListExercises(ctx, testDB)
	if err != nil {
		t.Fatalf("ListExercises failed: %v", err)
	}
	if !reflect.DeepEqual(exercises, batch.Exercises) {
		t.Errorf("Expected exercises %+v, got %+v", batch.Exercises, exercises)
	}

	nutrition, err := ListNutrition(ctx, testDB)
	if err != nil {
		t.Fatalf("ListNutrition failed: %v", err)
	}
	if !reflect.DeepEqual(nutrition, batch.Nutrition) {
		t.Errorf("Expected nutrition %+v, got %+v", batch.Nutrition, nutrition)
	}

	measurements, err := ListMeasurements(ctx, testDB)
	if err != nil {
		t.Fatalf("ListMeasurements failed: %v", err)
	}
	if !reflect.DeepEqual(measurements, batch.Measurements) {
		t.Errorf("Expected measurements %+v, got %+v", batch.Measurements, measurements)
	}

	strength, err := ListStrengthSets(ctx, testDB, "")
	if err != nil {
		t.Fatalf("ListStrengthSets failed: %v", err)
	}
	if !reflect.DeepEqual(strength, batch.StrengthSets) {
		t.Errorf("Expected strength sets %+v, got %+v", batch.StrengthSets, strength)
	}

	endurance, err := ListEnduranceSets(ctx, testDB, "run")
	if err != nil {
		t.Fatalf("ListEnduranceSets failed: %v", err)
	}
	if len(endurance) != 2 {
		t.Fatalf("Expected 2 endurance sets, got %d", len(endurance))
	}
	if endurance[0].Time != nil || endurance[0].TimeUnit != nil {
		t.Errorf("Expected NULL time for the first run, got %v %v", endurance[0].Time, endurance[0].TimeUnit)
	}
	if endurance[1].Time == nil || *endurance[1].Time != 25 || endurance[1].TimeUnit == nil || *endurance[1].TimeUnit != "min" {
		t.Errorf("Expected 25 min for the second run, got %+v", endurance[1])
	}
}

func TestListStrengthSets_FilterByExercise(t *testing.T) {
	testDB := setupTestDB(t)
	defer testDB.Close()
	ctx := context.Background()

	if err := InsertBatch(ctx, testDB, sampleBatch()); err != nil {
		t.Fatalf("InsertBatch failed: %v", err)
	}

	squats, err := ListStrengthSets(ctx, testDB, "squat")
	if err != nil {
		t.Fatalf("ListStrengthSets failed: %v", err)
	}
	if len(squats) != 2 {
		t.Fatalf("Expected 2 squat sets, got %d", len(squats))
	}
	for _, s := range squats {
		if s.Exercise != "squat" {
			t.Errorf("Expected only squat sets, got %+v", s)
		}
	}

	none, err := ListStrengthSets(ctx, testDB, "deadlift")
	if err != nil {
		t.Fatalf("ListStrengthSets failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("Expected no deadlift sets, got %d", len(none))
	}
}

func TestGetExercise(t *testing.T) {
	testDB := setupTestDB(t)
	defer testDB.Close()
	ctx := context.Background()

	if err := InsertBatch(ctx, testDB, sampleBatch()); err != nil {
		t.Fatalf("InsertBatch failed: %v", err)
	}

	e, err := GetExercise(ctx, testDB, "run")
	if err != nil {
		t.Fatalf("GetExercise failed: %v", err)
	}
	if e.Type != "distance-cardio" {
		t.Errorf("Expected type distance-cardio, got %s", e.Type)
	}

	_, err = GetExercise(ctx, testDB, "deadlift")
	if !errors.Is(err, ErrExerciseNotFound) {
		t.Errorf("Expected ErrExerciseNotFound, got: %v", err)
	}
}

func TestInsertBatch_RollbackLeavesNoRows(t *testing.T) {
	testDB := setupTestDB(t)
	defer testDB.Close()
	ctx := context.Background()

	tx, err := testDB.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("BeginTx failed: %v", err)
	}
	if err := InsertBatch(ctx, tx, sampleBatch()); err != nil {
		t.Fatalf("InsertBatch failed: %v", err)
	}
	if err := tx.Rollback(); err != nil {
		t.Fatalf("Rollback failed: %v", err)
	}

	exercises, err := ListExercises(ctx, testDB)
	if err != nil {
		t.Fatalf("ListExercises failed: %v", err)
	}
	if len(exercises) != 0 {
		t.Errorf("Expected no exercises after rollback, got %d", len(exercises))
	}
}

func TestBatchCounts(t *testing.T) {
	got := sampleBatch().Counts()
	want := Counts{
		Tags:          2,
		Exercises:     3,
		ExerciseTags:  3,
		Nutrition:     1,
		Measurements:  1,
		StrengthSets:  3,
		EnduranceSets: 2,
	}
	if got != want {
		t.Errorf("Counts() = %+v, want %+v", got, want)
	}
}

func TestRunQuery(t *testing.T) {
	testDB := setupTestDB(t)
	defer testDB.Close()
	ctx := context.Background()

	if err := InsertBatch(ctx, testDB, sampleBatch()); err != nil {
		t.Fatalf("InsertBatch failed: %v", err)
	}

	result, err := RunQuery(ctx, testDB, `
		SELECT exercise, SUM(weight * reps) AS volume, COUNT(*) AS sets
		FROM strength_sets
		WHERE exercise = ?
		GROUP BY exercise`, "squat")
	if err != nil {
		t.Fatalf("RunQuery failed: %v", err)
	}

	if !reflect.DeepEqual(result.Columns, []string{"exercise", "volume", "sets"}) {
		t.Errorf("Unexpected columns: %v", result.Columns)
	}
	want := [][]string{{"squat", "815", "2"}}
	if !reflect.DeepEqual(result.Strings(), want) {
		t.Errorf("Expected rows %v, got %v", want, result.Strings())
	}
}

func TestRunQuery_Empty(t *testing.T) {
	testDB := setupTestDB(t)
	defer testDB.Close()

	result, err := RunQuery(context.Background(), testDB, "SELECT name FROM tags")
	if err != nil {
		t.Fatalf("RunQuery failed: %v", err)
	}
	if len(result.Rows) != 0 {
		t.Errorf("Expected no rows, got %d", len(result.Rows))
	}
	if result.Rows == nil {
		t.Errorf("Expected an empty, non-nil row slice")
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, "NULL"},
		{"kg", "kg"},
		{[]byte("lbs"), "lbs"},
		{int64(42), "42"},
		{82.5, "82.5"},
		{100.0, "100"},
		{true, "true"},
	}
	for _, tt := range tests {
		if got := FormatValue(tt.in); got != tt.want {
			t.Errorf("FormatValue(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
