// Package mealdb answers recipe questions from the public TheMealDB search
// API.
package mealdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"recipebot/internal/collab"
)

// DefaultBaseURL is the free-tier API root.
const DefaultBaseURL = "https://www.themealdb.com/api/json/v1/1"

const (
	defaultTimeout = 10 * time.Second
	maxIngredients = 20

	noMealsMessage = "Sorry, I couldn't find any recipes for that."
	failurePrefix  = "Error communicating with TheMealDB"
)

var dishPrefixes = []string{
	"how to cook ",
	"how do you cook ",
	"recipe for ",
	"make ",
	"prepare ",
	"cook ",
	"how to make ",
}

// ExtractDishName strips a leading request phrase such as "recipe for " and
// trailing punctuation. Text without a known prefix is returned lowercased
// and trimmed.
func ExtractDishName(prompt string) string {
	p := strings.ToLower(strings.TrimSpace(prompt))
	for _, prefix := range dishPrefixes {
		if strings.HasPrefix(p, prefix) {
			return strings.TrimRight(strings.TrimSpace(p[len(prefix):]), "?.,!")
		}
	}
	return p
}

// Options configures a Client.
type Options struct {
	BaseURL string
	Timeout time.Duration
	// RatePerSecond bounds outbound requests; zero disables throttling.
	RatePerSecond float64
	Burst         int
	HTTPClient    *http.Client
	Logger        zerolog.Logger
}

// Client is a collab.Generator backed by TheMealDB.
type Client struct {
	base    string
	timeout time.Duration
	http    *http.Client
	limiter *rate.Limiter
	log     zerolog.Logger
}

// New returns a Client with defaults applied to unset options.
func New(opts Options) *Client {
	c := &Client{
		base:    strings.TrimRight(opts.BaseURL, "/"),
		timeout: opts.Timeout,
		http:    opts.HTTPClient,
		log:     opts.Logger.With().Str("component", "mealdb").Logger(),
	}
	if c.base == "" {
		c.base = DefaultBaseURL
	}
	if c.timeout <= 0 {
		c.timeout = defaultTimeout
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	if opts.RatePerSecond > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.RatePerSecond), burst)
	}
	return c
}

// Meal is the subset of a search hit the bot renders. Ingredient and measure
// slots are flattened in index order.
type Meal struct {
	Name         string
	Instructions string
	Ingredients  []string
}

// Generate looks the dish up and renders the first hit.
func (c *Client) Generate(ctx context.Context, prompt string) collab.Result {
	meal, status, err := c.Search(ctx, ExtractDishName(prompt))
	switch {
	case err != nil:
		c.log.Warn().Err(err).Msg("search failed")
		return collab.Failf(failurePrefix, err)
	case status != http.StatusOK:
		return collab.Fail(fmt.Sprintf("Error: Received status code %d", status))
	case meal == nil:
		return collab.OK(noMealsMessage)
	}
	return collab.OK(meal.Format())
}

// Search queries search.php for dish. A nil meal with a 200 status means no
// hit. Non-200 responses are reported through status, not err.
func (c *Client) Search(ctx context.Context, dish string) (*Meal, int, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, 0, err
		}
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	u := c.base + "/search.php?" + url.Values{"s": {dish}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, 0, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, resp.StatusCode, nil
	}

	var body struct {
		Meals []map[string]any `json:"meals"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4<<20)).Decode(&body); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("decode response: %w", err)
	}
	if len(body.Meals) == 0 {
		return nil, resp.StatusCode, nil
	}
	m := parseMeal(body.Meals[0])
	c.log.Debug().Str("dish", dish).Str("meal", m.Name).Msg("search hit")
	return &m, resp.StatusCode, nil
}

func str(raw map[string]any, key string) string {
	s, _ := raw[key].(string)
	return s
}

func parseMeal(raw map[string]any) Meal {
	m := Meal{
		Name:         str(raw, "strMeal"),
		Instructions: strings.TrimSpace(strings.ReplaceAll(str(raw, "strInstructions"), "\n", " ")),
	}
	if m.Name == "" {
		m.Name = "Unknown"
	}
	for i := 1; i <= maxIngredients; i++ {
		ing := str(raw, fmt.Sprintf("strIngredient%d", i))
		if strings.TrimSpace(ing) == "" {
			continue
		}
		measure := str(raw, fmt.Sprintf("strMeasure%d", i))
		m.Ingredients = append(m.Ingredients, strings.TrimSpace(measure+" "+ing))
	}
	return m
}

// Format renders the meal as shown to the user.
func (m Meal) Format() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Recipe for %s:\n\nIngredients:\n", m.Name)
	for i, ing := range m.Ingredients {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("- ")
		b.WriteString(ing)
	}
	b.WriteString("\n\nInstructions:\n")
	b.WriteString(m.Instructions)
	return b.String()
}
