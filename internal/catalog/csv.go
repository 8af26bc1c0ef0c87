package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Seed file names looked up in the catalog seed directory.
const (
	FoodsFile     = "foods.csv"
	ExercisesFile = "exercises.csv"
)

var (
	foodHeader     = []string{"name", "category", "serving_size", "calories", "protein", "fat", "carbs"}
	exerciseHeader = []string{"id", "name", "category", "met"}
)

// ParseFoods reads food rows from CSV. The first row must be the header
// name,category,serving_size,calories,protein,fat,carbs.
func ParseFoods(r io.Reader) ([]FoodItem, error) {
	records, err := readRecords(r, foodHeader)
	if err != nil {
		return nil, err
	}

	foods := make([]FoodItem, 0, len(records))
	for i, rec := range records {
		line := i + 2
		name := strings.TrimSpace(rec[0])
		if name == "" {
			return nil, fmt.Errorf("line %d: empty food name", line)
		}
		nums, err := parseFloats(rec[2:], line)
		if err != nil {
			return nil, err
		}
		foods = append(foods, FoodItem{
			Name:        name,
			Category:    strings.TrimSpace(rec[1]),
			ServingSize: nums[0],
			Calories:    nums[1],
			Protein:     nums[2],
			Fat:         nums[3],
			Carbs:       nums[4],
		})
	}
	return foods, nil
}

// ParseExercises reads exercise rows from CSV with header id,name,category,met.
// MET must be positive.
func ParseExercises(r io.Reader) ([]ExerciseItem, error) {
	records, err := readRecords(r, exerciseHeader)
	if err != nil {
		return nil, err
	}

	exercises := make([]ExerciseItem, 0, len(records))
	for i, rec := range records {
		line := i + 2
		id, err := strconv.ParseUint(strings.TrimSpace(rec[0]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid id %q", line, rec[0])
		}
		name := strings.TrimSpace(rec[1])
		if name == "" {
			return nil, fmt.Errorf("line %d: empty exercise name", line)
		}
		met, err := strconv.ParseFloat(strings.TrimSpace(rec[3]), 64)
		if err != nil || met <= 0 {
			return nil, fmt.Errorf("line %d: MET must be a positive number, got %q", line, rec[3])
		}
		exercises = append(exercises, ExerciseItem{
			ID:       uint(id),
			Name:     name,
			Category: strings.TrimSpace(rec[2]),
			MET:      met,
		})
	}
	return exercises, nil
}

// ParseFoodsFile opens path and parses it with ParseFoods.
func ParseFoodsFile(path string) ([]FoodItem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening foods file: %w", err)
	}
	defer f.Close()
	return ParseFoods(f)
}

// ParseExercisesFile opens path and parses it with ParseExercises.
func ParseExercisesFile(path string) ([]ExerciseItem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening exercises file: %w", err)
	}
	defer f.Close()
	return ParseExercises(f)
}

func readRecords(r io.Reader, header []string) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(header)
	cr.TrimLeadingSpace = true

	got, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	for i := range header {
		if strings.ToLower(strings.TrimSpace(got[i])) != header[i] {
			return nil, fmt.Errorf("invalid header format: expected %v, got %v", header, got)
		}
	}

	var records [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading record: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseFloats(fields []string, line int) ([]float64, error) {
	out := make([]float64, len(fields))
	for i, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := strconv.ParseFloat(f, 64)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("line %d: invalid number %q", line, f)
		}
		out[i] = v
	}
	return out, nil
}
