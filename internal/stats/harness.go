package stats

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// statsLabels maps each Stats field to the substring spec.md §6 says the
// reference ".stats" fixture's "Label: N" lines are matched against.
var statsLabels = map[string]func(*Stats) *int{
	"Number of fields across all struct types":                    func(s *Stats) *int { return &s.Fields },
	"Number of functions that return a value":                     func(s *Stats) *int { return &s.FunctionsReturningValue },
	"Number of function parameters":                                func(s *Stats) *int { return &s.Parameters },
	"Number of local variables":                                    func(s *Stats) *int { return &s.Locals },
	"Number of basic blocks":                                       func(s *Stats) *int { return &s.Blocks },
	"Number of instructions":                                       func(s *Stats) *int { return &s.Instructions },
	"Number of terminals":                                          func(s *Stats) *int { return &s.Terminators },
	"Number of locals and globals with int type":                   func(s *Stats) *int { return &s.Ints },
	"Number of locals and globals with struct type":                func(s *Stats) *int { return &s.Structs },
	"Number of locals and globals with pointer to int type":        func(s *Stats) *int { return &s.PointerToInt },
	"Number of locals and globals with pointer to struct type":     func(s *Stats) *int { return &s.PointerToStruct },
	"Number of locals and globals with pointer to function type":   func(s *Stats) *int { return &s.PointerToFunction },
	"Number of locals and globals with pointer to pointer type":    func(s *Stats) *int { return &s.PointerToPointer },
}

// ParseFile reads a ".stats" fixture and returns the Stats it encodes,
// matching each "Label: N" line to a field by substring per spec.md §6.
func ParseFile(path string) (Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return Stats{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var s Stats
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		colon := strings.LastIndex(line, ":")
		if colon < 0 {
			continue
		}
		label := strings.TrimSpace(line[:colon])
		value := strings.TrimSpace(line[colon+1:])
		n, err := strconv.Atoi(value)
		if err != nil {
			return Stats{}, fmt.Errorf("%s: non-integer value on line %q", path, line)
		}
		if field := matchLabel(&s, label); field != nil {
			*field = n
		}
	}
	if err := scanner.Err(); err != nil {
		return Stats{}, err
	}
	return s, nil
}

func matchLabel(s *Stats, label string) *int {
	for substr, getField := range statsLabels {
		if strings.Contains(label, substr) {
			return getField(s)
		}
	}
	return nil
}

// SamplePair is one (program, stats fixture) path pair discovered by Walk.
type SamplePair struct {
	Name      string
	JSONPath  string
	StatsPath string
}

// Walk discovers every "<name>.json" file directly in dir (subdirectories
// are not searched) that has a sibling "<name>.stats" fixture, in file-name
// order for deterministic test output.
// Grounded on the broader example pack's directory-walking command
// implementations (the teacher itself has no directory-walking test
// harness to ground this on; see DESIGN.md).
func Walk(dir string) ([]SamplePair, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var pairs []SamplePair
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		name := strings.TrimSuffix(e.Name(), ".json")
		statsPath := filepath.Join(dir, name+".stats")
		if _, err := os.Stat(statsPath); err != nil {
			continue
		}
		pairs = append(pairs, SamplePair{
			Name:      name,
			JSONPath:  filepath.Join(dir, e.Name()),
			StatsPath: statsPath,
		})
	}
	return pairs, nil
}
