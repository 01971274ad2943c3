package mealdb

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestExtractDishName(t *testing.T) {
	cases := map[string]string{
		"how to cook Chicken Chop":  "chicken chop",
		"Recipe for Arrabiata?":     "arrabiata",
		"  make Beef Stew!!  ":      "beef stew",
		"how do you cook laksa.":    "laksa",
		"Prepare nasi lemak,":       "nasi lemak",
		"Sushi":                     "sushi",
		"how to make pancakes":      "pancakes",
		"what is good to eat today": "what is good to eat today",
	}
	for in, want := range cases {
		if got := ExtractDishName(in); got != want {
			t.Errorf("ExtractDishName(%q) = %q, want %q", in, got, want)
		}
	}
}

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return New(Options{BaseURL: ts.URL, Logger: zerolog.Nop()})
}

func TestGenerateFormatsFirstMeal(t *testing.T) {
	var query string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search.php" {
			t.Errorf("path = %s", r.URL.Path)
		}
		query = r.URL.Query().Get("s")
		io.WriteString(w, `{"meals":[{
			"strMeal":"Spicy Arrabiata Penne",
			"strInstructions":"Boil water.\nAdd pasta.\n",
			"strIngredient1":"penne rigate","strMeasure1":"1 pound",
			"strIngredient2":"olive oil","strMeasure2":"1/4 cup",
			"strIngredient3":"","strMeasure3":" ",
			"strIngredient4":null,"strMeasure4":null,
			"strIngredient5":"salt","strMeasure5":null
		},{"strMeal":"Other"}]}`)
	})
	res := c.Generate(context.Background(), "recipe for Arrabiata?")
	if res.Failed() {
		t.Fatalf("unexpected failure: %s", res.Failure)
	}
	if query != "arrabiata" {
		t.Fatalf("query = %q", query)
	}
	want := "Recipe for Spicy Arrabiata Penne:\n\nIngredients:\n- 1 pound penne rigate\n- 1/4 cup olive oil\n- salt\n\nInstructions:\nBoil water. Add pasta."
	if res.Text != want {
		t.Fatalf("got:\n%q\nwant:\n%q", res.Text, want)
	}
}

func TestGenerateNoMeals(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"meals":null}`)
	})
	res := c.Generate(context.Background(), "cook unicorn")
	if res.Failed() || res.Text != "Sorry, I couldn't find any recipes for that." {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestGenerateStatusError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	if got := c.Generate(context.Background(), "laksa").String(); got != "Error: Received status code 502" {
		t.Fatalf("got %q", got)
	}
}

func TestGenerateTransportError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()
	c := New(Options{BaseURL: url, Logger: zerolog.Nop()})
	got := c.Generate(context.Background(), "laksa").String()
	if !strings.HasPrefix(got, "Error communicating with TheMealDB: ") {
		t.Fatalf("got %q", got)
	}
}

func TestGenerateBadJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `not json`)
	})
	got := c.Generate(context.Background(), "laksa").String()
	if !strings.HasPrefix(got, "Error communicating with TheMealDB: decode response") {
		t.Fatalf("got %q", got)
	}
}

func TestRateLimitedClientHonoursContext(t *testing.T) {
	c := New(Options{BaseURL: "http://127.0.0.1:1", RatePerSecond: 0.001, Burst: 1, Logger: zerolog.Nop()})
	// drain the single token
	c.limiter.Allow()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := c.Search(ctx, "x"); err == nil {
		t.Fatal("expected limiter error for canceled context")
	}
}
