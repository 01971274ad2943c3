package eval

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
)

// Task selects prompt construction and answer normalization.
type Task string

const (
	TaskBoolQ      Task = "boolq"
	TaskMultiClass Task = "multi_class"
)

// FieldMap names the record fields a dataset uses.
type FieldMap struct {
	Question string
	// Context holds one field for boolq and the option fields for multi_class.
	Context []string
	Answer  string
}

// Dataset describes a supported benchmark.
type Dataset struct {
	Name   string
	Task   Task
	Fields FieldMap
}

// Datasets are the supported benchmarks keyed by name.
var Datasets = map[string]Dataset{
	"google/boolq": {
		Name:   "google/boolq",
		Task:   TaskBoolQ,
		Fields: FieldMap{Question: "question", Context: []string{"passage"}, Answer: "answer"},
	},
	"lighteval/piqa": {
		Name:   "lighteval/piqa",
		Task:   TaskMultiClass,
		Fields: FieldMap{Question: "goal", Context: []string{"sol1", "sol2"}, Answer: "label"},
	},
}

// DatasetNames returns the supported dataset names sorted.
func DatasetNames() []string {
	names := make([]string, 0, len(Datasets))
	for n := range Datasets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// LookupDataset returns the dataset definition for name.
func LookupDataset(name string) (Dataset, error) {
	d, ok := Datasets[name]
	if !ok {
		return Dataset{}, fmt.Errorf("unknown dataset %q (supported: %v)", name, DatasetNames())
	}
	return d, nil
}

// Item is one dataset record.
type Item map[string]any

// ReadJSONL decodes one JSON object per non-empty line.
func ReadJSONL(r io.Reader) ([]Item, error) {
	var items []Item
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16<<20)
	line := 0
	for sc.Scan() {
		line++
		b := sc.Bytes()
		if len(bytes.TrimSpace(b)) == 0 {
			continue
		}
		var it Item
		if err := json.Unmarshal(b, &it); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		items = append(items, it)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// LoadJSONL reads a JSON Lines file.
func LoadJSONL(path string) ([]Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	items, err := ReadJSONL(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return items, nil
}
