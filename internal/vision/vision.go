// Package vision names the dish in a photo. It asks a zero-shot image
// classifier to pick from a fixed dish list and falls back to a free-form
// caption when no label is confident enough.
package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"recipebot/internal/common/fsutil"
)

// SingaporeDishes are the zero-shot candidate labels.
var SingaporeDishes = []string{
	"Hainanese chicken rice",
	"Laksa",
	"Char kway teow",
	"Chilli crab",
	"Satay",
	"Roti prata",
	"Bak kut teh",
	"Nasi lemak",
	"Kaya toast",
	"Fish head curry",
	"Mee siam",
	"Chicken rice",
	"Wanton mee",
	"Hokkien mee",
	"Popiah",
	"Ice kacang",
	"Chendol",
	"Tau huay",
	"Carrot cake",
	"Otah",
}

// Default hosted models.
const (
	DefaultBaseURL         = "https://router.huggingface.co/hf-inference/models"
	DefaultClassifierModel = "openai/clip-vit-base-patch32"
	DefaultCaptionModel    = "Salesforce/blip-image-captioning-base"
)

const (
	// minConfidence is the score a label must exceed to be used.
	minConfidence = 0.3
	maxWords      = 10
	truncateWords = 6
	maxImageBytes = 20 << 20
)

// Options configures a Captioner.
type Options struct {
	BaseURL         string
	ClassifierModel string
	CaptionModel    string
	Token           string
	Timeout         time.Duration
	HTTPClient      *http.Client
	Logger          zerolog.Logger
}

// Captioner implements collab.Captioner against hosted inference endpoints.
type Captioner struct {
	opts Options
	http *http.Client
	log  zerolog.Logger
}

// New returns a Captioner with defaults applied to unset options.
func New(opts Options) *Captioner {
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.ClassifierModel == "" {
		opts.ClassifierModel = DefaultClassifierModel
	}
	if opts.CaptionModel == "" {
		opts.CaptionModel = DefaultCaptionModel
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	cli := opts.HTTPClient
	if cli == nil {
		cli = &http.Client{}
	}
	return &Captioner{opts: opts, http: cli, log: opts.Logger.With().Str("component", "vision").Logger()}
}

// Caption names the dish in the image at imagePath. A non-empty prompt is
// offered as an extra candidate label and prefixed to a fallback caption.
func (c *Captioner) Caption(ctx context.Context, imagePath, prompt string) (string, bool) {
	img, err := readImage(imagePath)
	if err != nil {
		c.log.Warn().Err(err).Str("path", imagePath).Msg("read image")
		return "", false
	}
	prompt = strings.TrimSpace(prompt)
	labels := SingaporeDishes
	if prompt != "" {
		labels = append([]string{prompt}, SingaporeDishes...)
	}
	label, score, err := c.classify(ctx, img, labels)
	if err != nil {
		c.log.Warn().Err(err).Msg("zero-shot classification failed")
	} else if score > minConfidence {
		c.log.Debug().Str("label", label).Float64("score", score).Msg("classified")
		return label, true
	}

	caption, err := c.caption(ctx, img)
	if err != nil {
		c.log.Warn().Err(err).Msg("captioning failed")
		return "", false
	}
	if prompt != "" {
		caption = prompt + ". " + caption
	}
	caption = Truncate(caption)
	return caption, caption != ""
}

// Truncate shortens captions of more than ten words to their first six,
// dropping a trailing comma.
func Truncate(caption string) string {
	words := strings.Fields(caption)
	if len(words) <= maxWords {
		return caption
	}
	return strings.TrimRight(strings.Join(words[:truncateWords], " "), ",")
}

func readImage(path string) ([]byte, error) {
	if !fsutil.IsFile(path) {
		return nil, fmt.Errorf("%s is not an image file", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	b, err := io.ReadAll(io.LimitReader(f, maxImageBytes+1))
	if err != nil {
		return nil, err
	}
	if len(b) > maxImageBytes {
		return nil, fmt.Errorf("image larger than %d bytes", maxImageBytes)
	}
	return b, nil
}

type labelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

func (c *Captioner) classify(ctx context.Context, img []byte, labels []string) (string, float64, error) {
	payload := map[string]any{
		"inputs":     base64.StdEncoding.EncodeToString(img),
		"parameters": map[string]any{"candidate_labels": labels},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", 0, err
	}
	var out []labelScore
	if err := c.post(ctx, c.opts.ClassifierModel, "application/json", body, &out); err != nil {
		return "", 0, err
	}
	var best labelScore
	for _, ls := range out {
		if ls.Score > best.Score {
			best = ls
		}
	}
	return best.Label, best.Score, nil
}

func (c *Captioner) caption(ctx context.Context, img []byte) (string, error) {
	var out []struct {
		GeneratedText string `json:"generated_text"`
	}
	if err := c.post(ctx, c.opts.CaptionModel, http.DetectContentType(img), img, &out); err != nil {
		return "", err
	}
	if len(out) == 0 {
		return "", fmt.Errorf("empty caption response")
	}
	return strings.TrimSpace(out[0].GeneratedText), nil
}

func (c *Captioner) post(ctx context.Context, model, contentType string, body []byte, into any) error {
	ctx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.BaseURL+"/"+model, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)
	if c.opts.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.opts.Token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%s: %s: %s", model, resp.Status, strings.TrimSpace(string(b)))
	}
	if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
		return fmt.Errorf("decode %s response: %w", model, err)
	}
	return nil
}
