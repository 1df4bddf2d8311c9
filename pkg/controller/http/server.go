package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/goerr/v2"

	"github.com/fintel-lab/pentarisk/pkg/domain/model"
	"github.com/fintel-lab/pentarisk/pkg/domain/types"
	"github.com/fintel-lab/pentarisk/pkg/usecase"
	"github.com/fintel-lab/pentarisk/pkg/utils/async"
	"github.com/fintel-lab/pentarisk/pkg/utils/errutil"
	"github.com/fintel-lab/pentarisk/pkg/utils/logging"
)

type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
}

func New(uc *usecase.UseCases) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", healthHandler)

	r.Route("/api/analyses", func(r chi.Router) {
		r.Post("/", s.createAnalysisHandler)
		r.Get("/", s.listAnalysesHandler)
		r.Get("/{reportID}", s.getAnalysisHandler)
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

type createAnalysisRequest struct {
	Company string `json:"company"`
	Ticker  string `json:"ticker"`
}

// createAnalysisHandler creates a report and kicks off the analysis in the
// background. The response is 202 with the running report.
func (s *Server) createAnalysisHandler(w http.ResponseWriter, r *http.Request) {
	var req createAnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}
	if req.Company == "" {
		errutil.HandleHTTP(r.Context(), w, goerr.New("company is required"), http.StatusBadRequest)
		return
	}

	rep, err := s.uc.Analysis.StartAnalysis(r.Context(), model.Target{
		Company: req.Company,
		Ticker:  req.Ticker,
	})
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to start analysis"), http.StatusInternalServerError)
		return
	}

	async.Dispatch(r.Context(), func(ctx context.Context) error {
		return s.uc.Analysis.RunReport(ctx, rep.ID)
	})

	respondJSON(w, r, http.StatusAccepted, rep)
}

func (s *Server) getAnalysisHandler(w http.ResponseWriter, r *http.Request) {
	id := types.ReportID(chi.URLParam(r, "reportID"))
	if err := id.Validate(); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid report ID"), http.StatusBadRequest)
		return
	}

	rep, err := s.uc.Repository().Report().Get(r.Context(), id)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to get report"), http.StatusInternalServerError)
		return
	}
	if rep == nil {
		errutil.HandleHTTP(r.Context(), w, goerr.New("report not found", goerr.V("id", id)), http.StatusNotFound)
		return
	}

	respondJSON(w, r, http.StatusOK, rep)
}

func (s *Server) listAnalysesHandler(w http.ResponseWriter, r *http.Request) {
	reports, err := s.uc.Repository().Report().List(r.Context())
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to list reports"), http.StatusInternalServerError)
		return
	}
	if reports == nil {
		reports = []*model.Report{}
	}

	respondJSON(w, r, http.StatusOK, map[string]any{"analyses": reports})
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data) //nolint:errcheck // header already committed
}
