package journal

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/unowned-ai/ktl/pkg/records"
	"github.com/unowned-ai/ktl/pkg/sets"
	"gopkg.in/yaml.v3"
)

var weightPattern = regexp.MustCompile(`^([0-9]+(?:\.[0-9]+)?)\s*(\S*)$`)

type dateEntry struct {
	date  string
	value *yaml.Node
}

// Decode validates doc and converts it to the rows a store is built from.
// It stops at the first problem and returns it as a *LoadError.
func Decode(doc *yaml.Node) (records.Batch, error) {
	root, err := documentRoot(doc)
	if err != nil {
		return records.Batch{}, err
	}

	cat, err := decodeCatalogue(root)
	if err != nil {
		return records.Batch{}, err
	}

	batch := records.Batch{Tags: cat.Tags()}
	for _, e := range cat.Exercises() {
		batch.Exercises = append(batch.Exercises, records.Exercise{
			Name: e.Name,
			Type: e.Kind.String(),
			Tags: append([]string(nil), e.Tags...),
		})
	}

	journalNode := lookup(root, "journal")
	if isNull(journalNode) {
		return batch, nil
	}
	if !isMapping(journalNode) {
		return records.Batch{}, loadErrorf(ErrStructural, journalNode, "journal",
			"must be a mapping of date to entry, got %s", describe(journalNode))
	}

	entries, err := sortedEntries(journalNode)
	if err != nil {
		return records.Batch{}, err
	}
	for _, entry := range entries {
		if err := decodeEntry(cat, entry, &batch); err != nil {
			return records.Batch{}, err
		}
	}
	return batch, nil
}

// sortedEntries orders journal entries by the text of their date key.
func sortedEntries(journalNode *yaml.Node) ([]dateEntry, error) {
	dates, err := uniqueFields(journalNode, "journal", "date")
	if err != nil {
		return nil, err
	}
	entries := make([]dateEntry, 0, len(dates))
	for _, f := range dates {
		entries = append(entries, dateEntry{date: f.Key, value: f.Value})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].date < entries[j].date })
	return entries, nil
}

func decodeEntry(cat Catalogue, entry dateEntry, batch *records.Batch) error {
	path := "journal." + entry.date
	if isNull(entry.value) {
		return nil
	}
	if !isMapping(entry.value) {
		return loadErrorf(ErrTypeViolation, entry.value, path, "journal entry must be a mapping, got %s", describe(entry.value))
	}

	entryFields, err := uniqueFields(entry.value, path, "key")
	if err != nil {
		return err
	}

	var workout, nutrition, measurements *field
	for _, f := range entryFields {
		f := f
		switch f.Key {
		case "workout":
			workout = &f
		case "nutrition":
			nutrition = &f
		case "measurements":
			measurements = &f
		default:
			return loadErrorf(ErrSchemaViolation, f.KeyNode, path+"."+f.Key,
				"unknown key %q in journal entry (allowed: workout, nutrition, measurements)", f.Key)
		}
	}

	if workout != nil {
		if err := decodeWorkout(cat, entry.date, *workout, batch); err != nil {
			return err
		}
	}
	if nutrition != nil {
		if err := decodeNutrition(entry.date, *nutrition, batch); err != nil {
			return err
		}
	}
	if measurements != nil {
		if err := decodeMeasurements(entry.date, *measurements, batch); err != nil {
			return err
		}
	}
	return nil
}

func decodeWorkout(cat Catalogue, date string, w field, batch *records.Batch) error {
	path := "journal." + date + ".workout"
	if isNull(w.Value) {
		return nil
	}
	if !isMapping(w.Value) {
		return loadErrorf(ErrTypeViolation, w.Value, path, "must be a mapping of exercise to sets, got %s", describe(w.Value))
	}

	exercises, err := uniqueFields(w.Value, path, "exercise")
	if err != nil {
		return err
	}
	for _, f := range exercises {
		exPath := path + "." + f.Key
		exercise, ok := cat.Lookup(f.Key)
		if !ok {
			return loadErrorf(ErrReference, f.KeyNode, exPath,
				"exercise %q for date %q is not defined in config.exercises", f.Key, date)
		}

		texts, err := setTexts(f.Value, exPath)
		if err != nil {
			return err
		}
		if len(texts) == 0 {
			continue
		}

		parsed, err := sets.Parse(exercise.Kind, texts...)
		if err != nil {
			e := loadErrorf(ErrParse, f.Value, exPath, "%v", err)
			var pe *sets.ParseError
			if errors.As(err, &pe) {
				e.Msg = fmt.Sprintf("cannot read %s sets for %q: %s", pe.Grammar, f.Key, pe.Reason)
				if pe.Token != "" {
					e.Msg += fmt.Sprintf(" (in %q)", pe.Token)
				}
			}
			e.Err = err
			return e
		}

		for _, s := range parsed {
			switch s := s.(type) {
			case sets.StrengthSet:
				batch.StrengthSets = append(batch.StrengthSets, records.StrengthSet{
					Date:     date,
					Exercise: exercise.Name,
					Weight:   s.Value,
					Unit:     s.Unit,
					Reps:     s.Reps,
				})
			case sets.EnduranceSet:
				batch.EnduranceSets = append(batch.EnduranceSets, records.EnduranceSet{
					Date:         date,
					Exercise:     exercise.Name,
					Distance:     s.Distance,
					DistanceUnit: s.DistanceUnit,
					Speed:        s.Speed,
					SpeedUnit:    s.SpeedUnit,
				})
			default:
				return fmt.Errorf("unexpected set type %T for %s", s, exPath)
			}
		}
	}
	return nil
}

// setTexts accepts a scalar, a list of scalars or null (no sets logged).
func setTexts(n *yaml.Node, path string) ([]string, error) {
	switch {
	case isNull(n):
		return nil, nil
	case isScalar(n):
		return []string{n.Value}, nil
	case isSequence(n):
		texts := make([]string, 0, len(n.Content))
		for i, item := range n.Content {
			item = resolve(item)
			if isNull(item) {
				continue
			}
			if !isScalar(item) {
				return nil, loadErrorf(ErrTypeViolation, item, fmt.Sprintf("%s[%d]", path, i),
					"set text must be a string, got %s", describe(item))
			}
			texts = append(texts, item.Value)
		}
		return texts, nil
	default:
		return nil, loadErrorf(ErrTypeViolation, n, path, "must be set text or a list of set texts, got %s", describe(n))
	}
}

func decodeNutrition(date string, n field, batch *records.Batch) error {
	path := "journal." + date + ".nutrition"
	if isNull(n.Value) {
		return nil
	}
	if !isMapping(n.Value) {
		return loadErrorf(ErrTypeViolation, n.Value, path, "must be a mapping, got %s", describe(n.Value))
	}

	nutrients, err := uniqueFields(n.Value, path, "key")
	if err != nil {
		return err
	}
	for _, f := range nutrients {
		if f.Key != "calories" {
			return loadErrorf(ErrSchemaViolation, f.KeyNode, path+"."+f.Key,
				"unknown key %q in nutrition (allowed: calories)", f.Key)
		}
		calories, skip, err := decodeCalories(path+".calories", f)
		if err != nil {
			return err
		}
		if !skip {
			batch.Nutrition = append(batch.Nutrition, records.Calories{Date: date, Calories: calories})
		}
	}
	return nil
}

// decodeCalories reads either a bare number or a {min, max} range, which is
// stored as its truncated average. Bare numbers are truncated too and stored
// as integers, not as the text of the YAML value. Values must be finite and
// within [0, MaxCalories].
func decodeCalories(path string, f field) (int, bool, error) {
	v := f.Value
	switch {
	case isNull(v):
		return 0, true, nil
	case isNumber(v):
		x, err := calorieValue(v, path)
		if err != nil {
			return 0, false, err
		}
		return int(math.Trunc(x)), false, nil
	case isMapping(v):
		minNode, maxNode := lookup(v, "min"), lookup(v, "max")
		if len(v.Content) != 4 || minNode == nil || maxNode == nil {
			e := loadErrorf(ErrShape, v, path, "a calorie range must have exactly the keys min and max")
			e.Listing = listing(f.KeyNode, v)
			return 0, false, e
		}
		lo, err := rangeBound(minNode, path+".min")
		if err != nil {
			return 0, false, err
		}
		hi, err := rangeBound(maxNode, path+".max")
		if err != nil {
			return 0, false, err
		}
		return int(math.Trunc((lo + hi) / 2)), false, nil
	default:
		return 0, false, loadErrorf(ErrTypeViolation, v, path,
			"must be a number or a {min, max} range, got %s", describe(v))
	}
}

func rangeBound(n *yaml.Node, path string) (float64, error) {
	if !isNumber(n) {
		return 0, loadErrorf(ErrTypeViolation, n, path, "must be a number, got %s", describe(n))
	}
	return calorieValue(n, path)
}

// MaxCalories is the largest calorie value a journal may record.
const MaxCalories = math.MaxInt32

func calorieValue(n *yaml.Node, path string) (float64, error) {
	x, err := numberValue(n)
	if err != nil {
		return 0, loadErrorf(ErrTypeViolation, n, path, "must be a number: %v", err)
	}
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, loadErrorf(ErrTypeViolation, n, path, "must be a finite number, got %s", n.Value)
	}
	if x < 0 || x > MaxCalories {
		return 0, loadErrorf(ErrTypeViolation, n, path, "must be between 0 and %d, got %s", MaxCalories, n.Value)
	}
	return x, nil
}

func decodeMeasurements(date string, m field, batch *records.Batch) error {
	path := "journal." + date + ".measurements"
	if isNull(m.Value) {
		return nil
	}
	if !isMapping(m.Value) {
		return loadErrorf(ErrTypeViolation, m.Value, path, "must be a mapping, got %s", describe(m.Value))
	}

	measures, err := uniqueFields(m.Value, path, "key")
	if err != nil {
		return err
	}
	for _, f := range measures {
		if f.Key != "weight" {
			return loadErrorf(ErrSchemaViolation, f.KeyNode, path+"."+f.Key,
				"unknown key %q in measurements (allowed: weight)", f.Key)
		}
		if isNull(f.Value) {
			continue
		}
		measurement, err := decodeWeight(date, path+".weight", f.Value)
		if err != nil {
			return err
		}
		batch.Measurements = append(batch.Measurements, measurement)
	}
	return nil
}

func decodeWeight(date, path string, v *yaml.Node) (records.Measurement, error) {
	if !isScalar(v) {
		return records.Measurement{}, loadErrorf(ErrTypeViolation, v, path,
			"must be a weight such as 82.5kg, got %s", describe(v))
	}
	match := weightPattern.FindStringSubmatch(strings.TrimSpace(v.Value))
	if match == nil {
		return records.Measurement{}, loadErrorf(ErrTypeViolation, v, path,
			"must be a weight such as 82.5kg, got %q", v.Value)
	}
	weight, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return records.Measurement{}, loadErrorf(ErrTypeViolation, v, path, "invalid weight %q: %v", match[1], err)
	}
	unit := match[2]
	if unit != sets.Kg && unit != sets.Lbs {
		return records.Measurement{}, loadErrorf(ErrUnit, v, path, "has an invalid unit: %q (allowed: kg, lbs)", unit)
	}
	return records.Measurement{Date: date, Weight: weight, WeightUnit: unit}, nil
}
