package nav

import (
	"strings"
	"testing"
)

type recScreen struct {
	name string
	log  *[]string
	last Params
}

func (s *recScreen) OnEnter(p Params) {
	s.last = p
	*s.log = append(*s.log, "enter:"+s.name)
}

func (s *recScreen) OnExit() { *s.log = append(*s.log, "exit:"+s.name) }

func newTestRouter(t *testing.T, ids ...ScreenID) (*Router, *[]string, map[ScreenID]*recScreen) {
	t.Helper()
	var log []string
	r := NewRouter()
	screens := make(map[ScreenID]*recScreen)
	for _, id := range ids {
		s := &recScreen{name: string(id), log: &log}
		screens[id] = s
		r.Register(id, s)
	}
	return r, &log, screens
}

func TestBackOnFreshRouterIsNoop(t *testing.T) {
	r, log, _ := newTestRouter(t, "a", "b")
	r.Start("a")
	*log = nil
	if r.Back() {
		t.Fatalf("expected Back to report no-op")
	}
	if r.Active() != "a" {
		t.Fatalf("active=%q", r.Active())
	}
	if len(*log) != 0 {
		t.Fatalf("hooks invoked on no-op back: %v", *log)
	}
}

func TestShowThenBackRestores(t *testing.T) {
	r, log, _ := newTestRouter(t, "a", "b")
	r.Start("a")
	r.Show("b", nil)
	if r.Active() != "b" || !r.CanGoBack() {
		t.Fatalf("active=%q canBack=%v", r.Active(), r.CanGoBack())
	}
	if !r.Back() {
		t.Fatalf("expected back to succeed")
	}
	if r.Active() != "a" || len(r.History()) != 0 {
		t.Fatalf("active=%q history=%v", r.Active(), r.History())
	}
	want := "enter:a,exit:a,enter:b,exit:b"
	if got := strings.Join(*log, ","); got != want {
		t.Fatalf("hooks=%s want %s", got, want)
	}
}

func TestShowForgetNeverPushes(t *testing.T) {
	r, _, _ := newTestRouter(t, "a", "b", "c")
	r.Start("a")
	r.Show("b", nil)
	r.Show("c", nil, Forget())
	if h := r.History(); len(h) != 1 || h[0] != "a" {
		t.Fatalf("history=%v", h)
	}
	r.Show("a", nil, Forget())
	if h := r.History(); len(h) != 1 {
		t.Fatalf("history=%v", h)
	}
}

func TestShowSameScreenDoesNotPush(t *testing.T) {
	r, log, _ := newTestRouter(t, "a")
	r.Start("a")
	r.Show("a", Params{"x": "y"})
	if r.CanGoBack() {
		t.Fatalf("history should stay empty")
	}
	if got := strings.Join(*log, ","); got != "enter:a,enter:a" {
		t.Fatalf("hooks=%s", got)
	}
}

func TestRevisitKeepsEarlierEntry(t *testing.T) {
	r, _, _ := newTestRouter(t, "a", "b")
	r.Start("a")
	r.Show("b", nil)
	r.Show("a", nil)
	if h := r.History(); len(h) != 2 || h[0] != "a" || h[1] != "b" {
		t.Fatalf("history=%v", h)
	}
	if !r.Back() || r.Active() != "b" {
		t.Fatalf("active=%q after back", r.Active())
	}
	if !r.Back() || r.Active() != "a" || r.CanGoBack() {
		t.Fatalf("active=%q history=%v", r.Active(), r.History())
	}
}

func TestBackPopsInLIFOOrder(t *testing.T) {
	r, _, _ := newTestRouter(t, "a", "b", "c")
	r.Start("a")
	for _, s := range []ScreenID{"b", "c", "a", "b"} {
		r.Show(s, nil)
	}
	// history is a,b,c,a with b active
	for _, w := range []ScreenID{"a", "c", "b", "a"} {
		r.Back()
		if r.Active() != w {
			t.Fatalf("active=%q want %q", r.Active(), w)
		}
	}
	if r.Back() {
		t.Fatalf("expected empty history")
	}
}

func TestParamsReachTarget(t *testing.T) {
	r, _, screens := newTestRouter(t, "a", "b")
	r.Start("a")
	r.Show("b", Params{"mode": "themealdb"})
	if got := screens["b"].last.String("mode"); got != "themealdb" {
		t.Fatalf("mode=%q", got)
	}
	if got := Params(nil).String("mode"); got != "" {
		t.Fatalf("nil params gave %q", got)
	}
}

func TestBackAvailableSignal(t *testing.T) {
	r, _, _ := newTestRouter(t, "a", "b")
	var seen []bool
	r.OnBackAvailable(func(ok bool) { seen = append(seen, ok) })
	r.Start("a")
	r.Show("b", nil)
	r.Back()
	r.Back()
	want := []bool{false, true, false}
	if len(seen) != len(want) {
		t.Fatalf("seen=%v want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("seen=%v want %v", seen, want)
		}
	}
}

func TestUnknownScreenPanics(t *testing.T) {
	r, _, _ := newTestRouter(t, "a")
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	r.Show("missing", nil)
}

func TestDuplicateRegisterPanics(t *testing.T) {
	r, _, _ := newTestRouter(t, "a")
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	r.Register("a", BaseScreen{})
}
