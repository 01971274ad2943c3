package eval

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestReadJSONL(t *testing.T) {
	in := `{"question":"is it hot","passage":"sun","answer":true}

{"question":"is it cold","passage":"ice","answer":false}
`
	items, err := ReadJSONL(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadJSONL: %v", err)
	}
	if len(items) != 2 || items[1]["question"] != "is it cold" {
		t.Fatalf("items = %v", items)
	}
	if _, err := ReadJSONL(strings.NewReader("{\n")); err == nil || !strings.Contains(err.Error(), "line 1") {
		t.Fatalf("expected line error, got %v", err)
	}
}

func TestSampleDeterministicAndDistinct(t *testing.T) {
	a, err := Sample(100, 10, 42)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := Sample(100, 10, 42)
	seen := map[int]bool{}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("samples differ: %v vs %v", a, b)
		}
		if seen[a[i]] || a[i] < 0 || a[i] >= 100 {
			t.Fatalf("bad sample %v", a)
		}
		seen[a[i]] = true
	}
	if _, err := Sample(3, 4, 1); err == nil {
		t.Fatal("expected error for oversized sample")
	}
}

func TestBuildPrompt(t *testing.T) {
	boolq := Datasets["google/boolq"]
	got := BuildPrompt(boolq, Item{"question": "is water wet", "passage": "Water is a liquid."})
	want := "Answer the following question strictly with 'yes' or 'no'.\n\nContext: Water is a liquid.\nQuestion: is water wet\nAnswer:"
	if got != want {
		t.Fatalf("boolq prompt = %q", got)
	}
	piqa := Datasets["lighteval/piqa"]
	got = BuildPrompt(piqa, Item{"goal": "open a jar", "sol1": "twist lid", "sol2": "eat lid"})
	want = "Goal: open a jar\nOption 0: twist lid\nOption 1: eat lid\nAnswer with 0 or 1 only:"
	if got != want {
		t.Fatalf("piqa prompt = %q", got)
	}
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		task Task
		in   string
		want string
	}{
		{TaskBoolQ, " Yes, it is.", "yes"},
		{TaskBoolQ, "NO", "no"},
		{TaskBoolQ, "maybe", "unknown"},
		{TaskMultiClass, "The answer is 1.", "1"},
		{TaskMultiClass, "option 12 or 0", "0"},
		{TaskMultiClass, "none", "-1"},
	}
	for _, tc := range cases {
		if got := NormalizeAnswer(tc.task, tc.in); got != tc.want {
			t.Errorf("NormalizeAnswer(%s, %q) = %q, want %q", tc.task, tc.in, got, tc.want)
		}
	}
	if NormalizeGold(TaskBoolQ, true) != "yes" || NormalizeGold(TaskBoolQ, false) != "no" {
		t.Fatal("boolq gold")
	}
	if NormalizeGold(TaskMultiClass, float64(1)) != "1" {
		t.Fatal("multi_class gold")
	}
}

func TestRun(t *testing.T) {
	items := []Item{
		{"question": "q0", "passage": "p", "answer": true},
		{"question": "q1", "passage": "p", "answer": false},
		{"question": "q2", "passage": "p", "answer": true},
		{"question": "q3", "passage": "p", "answer": false},
	}
	// always says yes; q3 errors
	ans := AnswerFunc(func(_ context.Context, prompt string) (string, error) {
		if strings.Contains(prompt, "q3") {
			return "", errors.New("boom")
		}
		return "yes", nil
	})
	e := New(Datasets["google/boolq"], ans, Config{Seed: 7, SampleSize: 4, KeepFailures: 10, Logger: zerolog.Nop()})
	rep, err := e.Run(context.Background(), items)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rep.Total != 4 || rep.Correct != 2 || rep.Accuracy != 0.5 {
		t.Fatalf("report = %+v", rep)
	}
	if len(rep.Failures) != 2 {
		t.Fatalf("failures = %+v", rep.Failures)
	}
	var errored bool
	for _, f := range rep.Failures {
		if f.Err == "boom" {
			errored = true
		}
	}
	if !errored {
		t.Fatalf("errored item missing from failures: %+v", rep.Failures)
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	ans := AnswerFunc(func(context.Context, string) (string, error) {
		calls++
		cancel()
		return "0", nil
	})
	items := []Item{{"goal": "a", "label": float64(0)}, {"goal": "b", "label": float64(0)}, {"goal": "c", "label": float64(0)}}
	rep, err := New(Datasets["lighteval/piqa"], ans, Config{SampleSize: 3, Logger: zerolog.Nop()}).Run(ctx, items)
	if !errors.Is(err, context.Canceled) || calls != 1 || rep.Total != 1 || rep.Correct != 1 {
		t.Fatalf("rep=%+v err=%v calls=%d", rep, err, calls)
	}
}

func TestLookupDataset(t *testing.T) {
	if _, err := LookupDataset("google/boolq"); err != nil {
		t.Fatal(err)
	}
	if _, err := LookupDataset("squad"); err == nil {
		t.Fatal("expected error")
	}
}
