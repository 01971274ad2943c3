package app

import (
	"context"
	"net/http"

	"recipebot/internal/common/fsutil"
	"recipebot/internal/dispatch"
	"recipebot/internal/llm"
	"recipebot/pkg/types"
)

// statusError carries an HTTP status for the API layer.
type statusError struct {
	code int
	msg  string
}

func (e statusError) Error() string   { return e.msg }
func (e statusError) StatusCode() int { return e.code }

var errTranscriptsDisabled = statusError{code: http.StatusNotFound, msg: "transcripts are disabled"}

// Modes lists the chat backends.
func (a *App) Modes() []types.ModeInfo {
	out := make([]types.ModeInfo, 0, len(dispatch.Modes))
	for _, m := range dispatch.Modes {
		out = append(out, types.ModeInfo{Mode: string(m.Mode), Label: m.Label, NeedsParams: m.NeedsParams})
	}
	return out
}

// Chat answers one turn and records it when transcripts are enabled.
func (a *App) Chat(ctx context.Context, req types.ChatRequest) (types.ChatResponse, error) {
	mode := dispatch.ParseMode(req.Mode)
	resp := types.ChatResponse{Mode: string(mode)}

	if a.Chatlog != nil {
		if req.SessionID == "" {
			sess, err := a.Chatlog.NewSession(ctx, string(mode))
			if err != nil {
				return resp, err
			}
			req.SessionID = sess.ID
		} else if _, err := a.Chatlog.Session(ctx, req.SessionID); err != nil {
			return resp, err
		}
		resp.SessionID = req.SessionID
	}

	resp.Reply = a.Dispatcher.Reply(ctx, mode, req.Text, dispatch.Options{
		Params:    paramsFromRequest(req.Params),
		ImagePath: req.ImagePath,
	})
	// Backends report an expired context as reply text. The turn is not recorded.
	if err := ctx.Err(); err != nil {
		return resp, err
	}
	queued, running := a.Assistant.Busy()
	a.log.Debug().Str("mode", resp.Mode).Int("llm_queued", queued).Int("llm_running", running).Msg("chat turn")

	if a.Chatlog != nil {
		if err := a.Chatlog.Append(ctx, req.SessionID, req.Text, resp.Reply); err != nil {
			a.log.Warn().Err(err).Str("session", req.SessionID).Msg("record turn")
		}
	}
	return resp, nil
}

func paramsFromRequest(p *types.GenerationParams) *llm.Params {
	if p == nil {
		return nil
	}
	return &llm.Params{
		Model:          p.Model,
		MaxTurns:       p.MaxTurns,
		Temperature:    p.Temperature,
		TopK:           p.TopK,
		TopP:           p.TopP,
		MaxTokens:      p.MaxTokens,
		RepeatPenalty:  p.RepeatPenalty,
		GlobalPrompt:   p.GlobalPrompt,
		NegativePrompt: p.NegativePrompt,
	}
}

// Recipes lists the local recipe collection.
func (a *App) Recipes() ([]types.Recipe, error) {
	dishes, err := a.Store.Dishes()
	if err != nil {
		return nil, err
	}
	out := make([]types.Recipe, 0, len(dishes))
	for _, d := range dishes {
		out = append(out, types.Recipe{ID: d.ID, Name: d.Name(), Keywords: d.Keywords})
	}
	return out, nil
}

// Recipe returns one recipe; recipes.ErrDishNotFound when absent.
func (a *App) Recipe(id string) (types.RecipeResponse, error) {
	d, text, err := a.Store.Lookup(id)
	if err != nil {
		return types.RecipeResponse{}, err
	}
	return types.RecipeResponse{ID: d.ID, Name: d.Name(), Text: text}, nil
}

// Match resolves free text to a dish id.
func (a *App) Match(q string) types.MatchResponse {
	id, ok := a.Matcher.FindDish(q)
	return types.MatchResponse{Query: q, DishID: id, Found: ok}
}

// Transcript returns a recorded session.
func (a *App) Transcript(ctx context.Context, id string) (types.TranscriptResponse, error) {
	if a.Chatlog == nil {
		return types.TranscriptResponse{}, errTranscriptsDisabled
	}
	sess, err := a.Chatlog.Session(ctx, id)
	if err != nil {
		return types.TranscriptResponse{}, err
	}
	turns, err := a.Chatlog.Turns(ctx, id)
	if err != nil {
		return types.TranscriptResponse{}, err
	}
	out := types.TranscriptResponse{SessionID: sess.ID, Mode: sess.Mode, Turns: make([]types.Turn, 0, len(turns))}
	for _, t := range turns {
		out.Turns = append(out.Turns, types.Turn{Role: t.Role, Text: t.Text, CreatedUnix: t.CreatedAt.Unix()})
	}
	return out, nil
}

// Ready reports whether the recipe directory exists and the transcript
// database answers.
func (a *App) Ready() bool {
	if !fsutil.PathExists(a.Store.Dir()) {
		return false
	}
	if a.Chatlog != nil && a.Chatlog.Ping(context.Background()) != nil {
		return false
	}
	return true
}
