package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"recipebot/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Modes() []types.ModeInfo
	Chat(ctx context.Context, req types.ChatRequest) (types.ChatResponse, error)
	Recipes() ([]types.Recipe, error)
	Recipe(id string) (types.RecipeResponse, error)
	Match(q string) types.MatchResponse
	Transcript(ctx context.Context, id string) (types.TranscriptResponse, error)
	Ready() bool
}

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
			MaxAge:         300,
		}))
	}
	r.Use(MetricsMiddleware)
	r.Use(requestLogger)

	r.Get("/modes", handleModes(svc))
	r.Post("/chat", handleChat(svc))
	r.Get("/recipes", handleRecipes(svc))
	r.Get("/recipes/{id}", handleRecipe(svc))
	r.Get("/match", handleMatch(svc))
	r.Get("/sessions/{id}", handleTranscript(svc))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("not ready"))
	})
	r.Handle("/metrics", promhttp.Handler())

	MountSwagger(r)
	return r
}

// handleModes godoc
// @Summary      List chat modes
// @Tags         chat
// @Produce      json
// @Success      200  {object}  types.ModesResponse
// @Router       /modes [get]
func handleModes(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, types.ModesResponse{Modes: svc.Modes()})
	}
}

// handleChat godoc
// @Summary      Answer one chat turn
// @Description  Routes the text to the backend named by mode and returns its reply. Backend failures are returned as reply text.
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        request  body      types.ChatRequest  true  "Chat turn"
// @Success      200      {object}  types.ChatResponse
// @Failure      400      {object}  types.ErrorResponse
// @Failure      404      {object}  types.ErrorResponse
// @Failure      415      {object}  types.ErrorResponse
// @Failure      429      {object}  types.ErrorResponse
// @Router       /chat [post]
func handleChat(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ct := r.Header.Get("Content-Type")
		if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
			writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		var req types.ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if strings.TrimSpace(req.Text) == "" {
			writeJSONError(w, http.StatusBadRequest, "text is required")
			return
		}
		if lim := chatLimiter; lim != nil && !lim.Allow() {
			IncrementBackpressure("chat_rate")
			writeJSONError(w, http.StatusTooManyRequests, "too many chat requests")
			return
		}

		ctx, cancel := withBase(serverBaseCtx, r.Context())
		defer cancel()
		if chatTimeout > 0 {
			var tcancel context.CancelFunc
			ctx, tcancel = context.WithTimeout(ctx, chatTimeout)
			defer tcancel()
		}

		resp, err := svc.Chat(ctx, req)
		if err != nil {
			if r.Context().Err() != nil {
				return
			}
			if errors.Is(err, context.DeadlineExceeded) {
				writeJSONError(w, http.StatusGatewayTimeout, "chat timed out")
				return
			}
			status := statusFor(err)
			if status >= 500 {
				zlog.Error().Err(err).Str("mode", req.Mode).Msg("chat failed")
			}
			writeJSONError(w, status, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// handleRecipes godoc
// @Summary      List local recipes
// @Tags         recipes
// @Produce      json
// @Success      200  {object}  types.RecipesResponse
// @Failure      500  {object}  types.ErrorResponse
// @Router       /recipes [get]
func handleRecipes(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.Recipes()
		if err != nil {
			writeJSONError(w, statusFor(err), err.Error())
			return
		}
		writeJSON(w, http.StatusOK, types.RecipesResponse{Recipes: list})
	}
}

// handleRecipe godoc
// @Summary      Get a local recipe
// @Tags         recipes
// @Produce      json
// @Param        id   path      string  true  "Dish id"
// @Success      200  {object}  types.RecipeResponse
// @Failure      404  {object}  types.ErrorResponse
// @Router       /recipes/{id} [get]
func handleRecipe(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := svc.Recipe(chi.URLParam(r, "id"))
		if err != nil {
			writeJSONError(w, statusFor(err), err.Error())
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

// handleMatch godoc
// @Summary      Match text to a local dish
// @Tags         recipes
// @Produce      json
// @Param        q    query     string  true  "Free text"
// @Success      200  {object}  types.MatchResponse
// @Failure      400  {object}  types.ErrorResponse
// @Router       /match [get]
func handleMatch(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		if strings.TrimSpace(q) == "" {
			writeJSONError(w, http.StatusBadRequest, "q is required")
			return
		}
		writeJSON(w, http.StatusOK, svc.Match(q))
	}
}

// handleTranscript godoc
// @Summary      Get a chat transcript
// @Tags         chat
// @Produce      json
// @Param        id   path      string  true  "Session id"
// @Success      200  {object}  types.TranscriptResponse
// @Failure      404  {object}  types.ErrorResponse
// @Router       /sessions/{id} [get]
func handleTranscript(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tr, err := svc.Transcript(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeJSONError(w, statusFor(err), err.Error())
			return
		}
		writeJSON(w, http.StatusOK, tr)
	}
}
