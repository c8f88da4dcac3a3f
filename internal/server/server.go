package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/iwvelando/rent-or-buy/internal/cache"
	"github.com/iwvelando/rent-or-buy/internal/config"
	"github.com/iwvelando/rent-or-buy/internal/forecast"
	"github.com/iwvelando/rent-or-buy/internal/history"
	"github.com/iwvelando/rent-or-buy/internal/optimizer"
	"github.com/iwvelando/rent-or-buy/pkg/constants"
	"github.com/iwvelando/rent-or-buy/pkg/datetime"
	"github.com/iwvelando/rent-or-buy/pkg/loans"
	"github.com/iwvelando/rent-or-buy/pkg/output"
	"github.com/iwvelando/rent-or-buy/pkg/projection"
	"github.com/iwvelando/rent-or-buy/pkg/validation"
	"go.uber.org/zap"
)

// Options wires the handler's collaborators. Cache and History are optional.
type Options struct {
	MaxBodySize  int64
	Version      string
	Cache        cache.Cache
	History      *history.Store
	HistoryLimit int
	// Now labels months when a request has no start date.
	Now func() time.Time
}

type handler struct {
	logger       *zap.Logger
	maxBodySize  int64
	version      string
	cache        cache.Cache
	history      *history.Store
	historyLimit int
	now          func() time.Time
}

// NewHandler constructs the HTTP handler that serves the JSON API.
func NewHandler(logger *zap.Logger, opts Options) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if opts.MaxBodySize <= 0 {
		opts.MaxBodySize = constants.DefaultMaxBodySizeBytes
	}
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = constants.DefaultHistoryLimit
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	trimmedVersion := strings.TrimSpace(opts.Version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:       logger,
		maxBodySize:  opts.MaxBodySize,
		version:      trimmedVersion,
		cache:        opts.Cache,
		history:      opts.History,
		historyLimit: opts.HistoryLimit,
		now:          opts.Now,
	}

	mux := http.NewServeMux()

	// Engine endpoints
	mux.HandleFunc("POST /api/schedule", h.handleSchedule)
	mux.HandleFunc("POST /api/project", h.handleProject)
	mux.HandleFunc("POST /api/compare", h.handleCompare)
	mux.HandleFunc("POST /api/chart", h.handleChart)

	// Scenario file upload, the same input the CLI reads
	mux.HandleFunc("POST /api/forecast", h.handleForecast)

	// Run history
	mux.HandleFunc("GET /api/runs", h.handleListRuns)
	mux.HandleFunc("GET /api/runs/{id}", h.handleGetRun)

	mux.HandleFunc("GET /api/version", h.handleVersion)

	return mux
}

// projectRequest is the body of the projection endpoints.
type projectRequest struct {
	Property      projection.PropertyParameters   `json:"property"`
	Loan          loans.LoanParameters            `json:"loan"`
	Rent          projection.RentParameters       `json:"rent"`
	Investment    projection.InvestmentParameters `json:"investment"`
	HorizonMonths int                             `json:"horizonMonths,omitempty"`
	HorizonYears  int                             `json:"horizonYears,omitempty"`
	StartDate     string                          `json:"startDate,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

type scheduleResponse struct {
	RunID                string                  `json:"runId,omitempty"`
	MonthlyPayment       float64                 `json:"monthlyPayment"`
	Installment          float64                 `json:"installment"`
	TermMonths           int                     `json:"termMonths"`
	TotalInterest        float64                 `json:"totalInterest"`
	TotalPaid            float64                 `json:"totalPaid"`
	InitialRepaymentRate float64                 `json:"initialRepaymentRate"`
	Rows                 []loans.AmortizationRow `json:"rows"`
}

type projectResponse struct {
	RunID string `json:"runId,omitempty"`
	forecast.Forecast
}

type compareResponse struct {
	RunID      string            `json:"runId,omitempty"`
	Strategies []strategySummary `json:"strategies"`
}

type strategySummary struct {
	Strategy projection.Strategy `json:"strategy"`
	Summary  projection.Summary  `json:"summary"`
}

type forecastResponse struct {
	Scenarios []string            `json:"scenarios"`
	Results   []forecast.Forecast `json:"results"`
	CSV       string              `json:"csv"`
	Warnings  []string            `json:"warnings,omitempty"`
	Duration  string              `json:"duration"`
}

func (h *handler) handleSchedule(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSchedule"

	var params loans.LoanParameters
	if !h.decode(w, r, &params, op) {
		return
	}

	serveCached(h, w, r, op, cachedRun[scheduleResponse]{
		kind:    "schedule",
		request: params,
		compute: func() (scheduleResponse, error) {
			result, err := loans.ComputeSchedule(params)
			if err != nil {
				return scheduleResponse{}, err
			}
			totals := result.Totals()
			return scheduleResponse{
				MonthlyPayment:       result.MonthlyPayment,
				Installment:          result.Installment().InexactFloat64(),
				TermMonths:           result.TermMonths,
				TotalInterest:        totals.TotalInterest.InexactFloat64(),
				TotalPaid:            totals.TotalPaid.InexactFloat64(),
				InitialRepaymentRate: result.InitialRepaymentRate(),
				Rows:                 result.Schedule(),
			}, nil
		},
		summary: func(response scheduleResponse) any {
			return map[string]any{
				"monthlyPayment": response.MonthlyPayment,
				"termMonths":     response.TermMonths,
				"totalInterest":  response.TotalInterest,
			}
		},
		respond: func(response scheduleResponse, runID string) any {
			response.RunID = runID
			return response
		},
	})
}

func (h *handler) handleProject(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleProject"

	var req projectRequest
	if !h.decode(w, r, &req, op) {
		return
	}
	// Month labels depend on the start month, so it is part of the cache key.
	if req.StartDate == "" {
		req.StartDate = datetime.CurrentMonth(h.now())
	}

	serveCached(h, w, r, op, cachedRun[forecast.Forecast]{
		kind:    "project",
		request: req,
		compute: func() (forecast.Forecast, error) {
			return h.run(req)
		},
		summary: func(result forecast.Forecast) any {
			return result.Summary
		},
		respond: func(result forecast.Forecast, runID string) any {
			return projectResponse{RunID: runID, Forecast: result}
		},
	})
}

func (h *handler) handleCompare(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCompare"

	var req projectRequest
	if !h.decode(w, r, &req, op) {
		return
	}

	serveCached(h, w, r, op, cachedRun[[]strategySummary]{
		kind:    "compare",
		request: req,
		compute: func() ([]strategySummary, error) {
			params, _, err := h.parameters(req)
			if err != nil {
				return nil, err
			}
			results, err := projection.CompareStrategies(params.Property, params.Loan, params.Rent,
				params.Investment, params.HorizonMonths)
			if err != nil {
				return nil, err
			}

			strategies := make([]strategySummary, 0, len(results))
			for _, result := range results {
				strategies = append(strategies, strategySummary{
					Strategy: result.Strategy,
					Summary:  result.Summary,
				})
			}
			return strategies, nil
		},
		summary: func(strategies []strategySummary) any {
			return strategies
		},
		respond: func(strategies []strategySummary, runID string) any {
			return compareResponse{RunID: runID, Strategies: strategies}
		},
	})
}

func (h *handler) handleChart(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleChart"

	var req projectRequest
	if !h.decode(w, r, &req, op) {
		return
	}

	result, err := h.run(req)
	if err != nil {
		h.respondEngineError(w, err, op)
		return
	}

	var png []byte
	switch kind := r.URL.Query().Get("kind"); kind {
	case "", "networth":
		result.Name = "scenario"
		png, err = output.NetWorthChart([]forecast.Forecast{result})
	case "payment":
		png, err = output.PaymentCurveChart(result.PaymentCurve)
	default:
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("unknown chart kind %q", kind), "kind", op)
		return
	}
	if errors.Is(err, output.ErrNoChartData) {
		h.respondErrorWithOp(w, http.StatusBadRequest, "nothing to chart for a cash purchase", "kind", op)
		return
	}
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), "", op)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		h.logger.Error("failed to write chart", zap.String("op", op), zap.Error(err))
	}
}

func (h *handler) handleForecast(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleForecast"

	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	if err := r.ParseMultipartForm(h.maxBodySize); err != nil {
		if tooLarge(err) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxBodySize), "", op)
			return
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), "", op)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, "missing configuration file", "file", op)
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", op),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to read configuration: %v", err), "", op)
		return
	}

	cfg, err := config.LoadConfigurationFromReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), "", op)
		return
	}
	warnings := cfg.ValidateConfiguration()

	runner, err := optimizer.NewRunner(h.logger, cfg)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to initialize optimizer: %v", err), "", op)
		return
	}
	optimizationResult, err := runner.Run()
	if err != nil {
		h.respondEngineError(w, fmt.Errorf("optimizer execution failed: %w", err), op)
		return
	}

	results, err := forecast.GetForecastWithFixedTime(h.logger, *cfg, h.now())
	if err != nil {
		h.respondEngineError(w, fmt.Errorf("failed to compute forecast: %w", err), op)
		return
	}
	optimizationResult.Apply(results)

	elapsed := time.Since(start)
	response := forecastResponse{
		Scenarios: extractScenarioNames(results),
		Results:   results,
		CSV:       output.CsvString(results),
		Warnings:  warnings,
		Duration:  elapsed.String(),
	}

	h.logger.Info("forecast computed",
		zap.String("op", op),
		zap.Int("scenarios", len(response.Scenarios)),
		zap.Int("warnings", len(warnings)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) handleListRuns(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleListRuns"
	if h.history == nil {
		h.respondErrorWithOp(w, http.StatusNotFound, "run history is disabled", "", op)
		return
	}

	limit := h.historyLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("invalid limit %q", raw), "limit", op)
			return
		}
		limit = min(n, h.historyLimit)
	}

	runs, err := h.history.List(r.Context(), limit)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), "", op)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
}

func (h *handler) handleGetRun(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleGetRun"
	if h.history == nil {
		h.respondErrorWithOp(w, http.StatusNotFound, "run history is disabled", "", op)
		return
	}

	run, err := h.history.Get(r.Context(), r.PathValue("id"))
	if errors.Is(err, history.ErrNotFound) {
		h.respondErrorWithOp(w, http.StatusNotFound, err.Error(), "id", op)
		return
	}
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), "", op)
		return
	}
	h.writeJSON(w, http.StatusOK, run)
}

func (h *handler) handleVersion(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// run projects a request and labels its months.
func (h *handler) run(req projectRequest) (forecast.Forecast, error) {
	params, startDate, err := h.parameters(req)
	if err != nil {
		return forecast.Forecast{}, err
	}
	return forecast.Run(params, startDate)
}

// parameters resolves the horizon, strategy and start date of a request.
func (h *handler) parameters(req projectRequest) (config.Parameters, string, error) {
	horizon := req.HorizonMonths
	if horizon == 0 {
		horizon = req.HorizonYears * constants.MonthsPerYear
	}

	strategy, err := projection.ParseStrategy(string(req.Investment.Strategy))
	if err != nil {
		return config.Parameters{}, "", err
	}
	investment := req.Investment
	investment.Strategy = strategy

	startDate := datetime.CurrentMonth(h.now())
	if req.StartDate != "" {
		if _, err := time.Parse(constants.DateTimeLayout, req.StartDate); err != nil {
			return config.Parameters{}, "", &validation.InvalidParameterError{
				Field: "startDate", Value: req.StartDate, Reason: "must be formatted as YYYY-MM",
			}
		}
		startDate = req.StartDate
	}

	return config.Parameters{
		Property:      req.Property,
		Loan:          req.Loan,
		Rent:          req.Rent,
		Investment:    investment,
		HorizonMonths: horizon,
	}, startDate, nil
}

// cachedRun describes a cacheable engine endpoint. Only the payload is
// cached; every response is recorded and carries its own run ID.
type cachedRun[T any] struct {
	kind    string
	request any
	compute func() (T, error)
	// summary is the result stored in the run history.
	summary func(T) any
	respond func(payload T, runID string) any
}

// serveCached takes the payload from the cache when possible and otherwise
// computes and stores it, then records the run and writes the response.
func serveCached[T any](h *handler, w http.ResponseWriter, r *http.Request, op string, run cachedRun[T]) {
	ctx := r.Context()

	var (
		payload T
		key     string
		hit     bool
	)
	if h.cache != nil {
		var err error
		key, err = cache.Key(run.kind, run.request)
		if err != nil {
			h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), "", op)
			return
		}
		body, ok, err := h.cache.Get(ctx, key)
		if err != nil {
			h.logger.Warn("cache lookup failed", zap.String("op", op), zap.Error(err))
		}
		if ok {
			if err := json.Unmarshal(body, &payload); err != nil {
				h.logger.Warn("ignoring unreadable cache entry", zap.String("op", op), zap.String("key", key), zap.Error(err))
			} else {
				h.logger.Debug("cache hit", zap.String("op", op), zap.String("key", key))
				hit = true
			}
		}
	}

	if !hit {
		var err error
		payload, err = run.compute()
		if err != nil {
			h.respondEngineError(w, err, op)
			return
		}
		if h.cache != nil {
			if body, err := json.Marshal(payload); err != nil {
				h.logger.Warn("failed to encode cache entry", zap.String("op", op), zap.Error(err))
			} else if err := h.cache.Set(ctx, key, body); err != nil {
				h.logger.Warn("cache store failed", zap.String("op", op), zap.Error(err))
			}
		}
	}

	if h.cache != nil {
		if hit {
			w.Header().Set("X-Cache", "HIT")
		} else {
			w.Header().Set("X-Cache", "MISS")
		}
	}

	runID := h.record(ctx, run.kind, run.request, run.summary(payload), op)
	h.writeJSON(w, http.StatusOK, run.respond(payload, runID))
}

// record saves a run and returns its ID, or "" when history is disabled or
// the write fails.
func (h *handler) record(ctx context.Context, kind string, request, result any, op string) string {
	if h.history == nil {
		return ""
	}
	run, err := h.history.Save(ctx, kind, request, result)
	if err != nil {
		h.logger.Warn("failed to record run", zap.String("op", op), zap.Error(err))
		return ""
	}
	return run.ID
}

// decode reads a JSON body, rejecting unknown fields so misspelt inputs are
// not silently zero.
func (h *handler) decode(w http.ResponseWriter, r *http.Request, dst any, op string) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		if tooLarge(err) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxBodySize), "", op)
			return false
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), "", op)
		return false
	}
	return true
}

func (h *handler) respondEngineError(w http.ResponseWriter, err error, op string) {
	status := http.StatusInternalServerError
	if errors.Is(err, validation.ErrInvalidParameters) {
		status = http.StatusBadRequest
	}
	field, _ := validation.Field(err)
	h.respondErrorWithOp(w, status, err.Error(), field, op)
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg, field, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("field", field),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, errorResponse{Error: msg, Field: field})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

func tooLarge(err error) bool {
	var maxBytesErr *http.MaxBytesError
	return errors.As(err, &maxBytesErr)
}

func extractScenarioNames(results []forecast.Forecast) []string {
	names := make([]string, 0, len(results))
	for _, scenario := range results {
		names = append(names, scenario.Name)
	}
	return names
}
