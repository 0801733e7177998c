package handlers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/dfs-optimizer/internal/models"
	"github.com/jstittsworth/dfs-optimizer/internal/optimizer"
	"github.com/jstittsworth/dfs-optimizer/internal/services"
	"github.com/jstittsworth/dfs-optimizer/pkg/config"
	"github.com/jstittsworth/dfs-optimizer/pkg/logger"
	"github.com/jstittsworth/dfs-optimizer/pkg/utils"
)

// OptimizerHandler serves the lineup-generation endpoints: POST /optimize
// runs the generator, GET /optimize/runs/:id replays a past run's audit
// record, grounded on the teacher's handlers.OptimizerHandler request shape.
type OptimizerHandler struct {
	cfg     *config.Config
	cache   *services.CacheService
	history *services.HistoryService
	wsHub   *services.WebSocketHub
}

func NewOptimizerHandler(cfg *config.Config, cache *services.CacheService, history *services.HistoryService, wsHub *services.WebSocketHub) *OptimizerHandler {
	return &OptimizerHandler{cfg: cfg, cache: cache, history: history, wsHub: wsHub}
}

// assignedSlotDTO / lineupDTO are the wire shapes for §6's response: an
// ordered, positional array matching the site/sport roster template.
type assignedSlotDTO struct {
	Slot     string  `json:"slot"`
	PlayerID string  `json:"playerId"`
	FullName string  `json:"fullName"`
	Position string  `json:"position"`
	Team     string  `json:"team"`
	Salary   int     `json:"salary"`
	FPPG     float64 `json:"fppg"`
}

type lineupDTO struct {
	Slots       []assignedSlotDTO `json:"slots"`
	SalaryTotal int               `json:"salaryTotal"`
	FPPGTotal   float64           `json:"fppgTotal"`
}

type optimizeResponseDTO struct {
	RunID   string      `json:"runId"`
	Lineups []lineupDTO `json:"lineups"`
}

func toLineupDTO(l optimizer.Lineup) lineupDTO {
	slots := make([]assignedSlotDTO, len(l.Slots))
	for i, a := range l.Slots {
		slots[i] = assignedSlotDTO{
			Slot:     a.Slot.Label,
			PlayerID: a.Player.ID,
			FullName: a.Player.FullName,
			Position: a.Player.ProviderPosition,
			Team:     a.Player.Team,
			Salary:   a.Player.Salary,
			FPPG:     a.Player.FPPG,
		}
	}
	return lineupDTO{Slots: slots, SalaryTotal: l.SalaryTotal, FPPGTotal: l.FPPGTotal}
}

// OptimizeLineups handles POST /api/v1/optimize.
func (h *OptimizerHandler) OptimizeLineups(c *gin.Context) {
	var req optimizer.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "invalid request body", err.Error())
		return
	}

	template, players, cc, err := optimizer.Normalize(req)
	if err != nil {
		h.sendNormalizeError(c, err)
		return
	}

	digest := requestDigest(template, players, cc)
	runLog := logger.WithRunContext(digest, string(cc.Site), string(cc.Sport))

	ctx := c.Request.Context()
	if cached, ok := h.lookupCache(ctx, digest); ok {
		runLog.Info("served optimize request from cache")
		c.JSON(http.StatusOK, optimizeResponseDTO{RunID: "cached:" + digest, Lineups: cached})
		return
	}

	backend := h.breakerWrappedBackend(cc.SolverName)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	gen := optimizer.NewGenerator(template, players, cc, backend, rng)

	timeout := h.cfg.SolverTimeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	solveCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	lineups, err := gen.Run(solveCtx)
	elapsed := time.Since(start)

	runID := uuid.NewString()
	run := &models.OptimizationRun{
		ID:                       runID,
		Site:                     string(cc.Site),
		Sport:                    string(cc.Sport),
		Solver:                   cc.SolverName,
		RequestDigest:            digest,
		NumberOfLineupsRequested: cc.NumberOfLineups,
		LineupsProduced:          len(lineups),
		DurationMillis:           elapsed.Milliseconds(),
	}
	if err != nil {
		run.Failed = true
		run.ErrorMessage = err.Error()
	}
	if h.history != nil {
		if recErr := h.history.Record(context.Background(), run); recErr != nil {
			runLog.WithError(recErr).Warn("failed to persist run history")
		}
	}

	if err != nil {
		runLog.WithError(err).Error("lineup generation failed")
		utils.SendError(c, http.StatusInternalServerError, utils.NewAppError(utils.ErrCodeOptimization, "lineup generation failed", err.Error()))
		return
	}

	dtos := make([]lineupDTO, len(lineups))
	for i, l := range lineups {
		dtos[i] = toLineupDTO(l)
		if h.wsHub != nil {
			h.wsHub.BroadcastToRun(runID, "lineup", dtos[i])
		}
	}
	if h.wsHub != nil {
		h.wsHub.BroadcastToRun(runID, "done", gin.H{"count": len(dtos)})
	}

	h.storeCache(ctx, digest, dtos)

	runLog.WithFields(logrus.Fields{"lineups": len(dtos), "run_id": runID}).Info("optimize request completed")
	c.JSON(http.StatusOK, optimizeResponseDTO{RunID: runID, Lineups: dtos})
}

// GetRun handles GET /api/v1/optimize/runs/:id — the audit record only;
// the lineups themselves are never persisted (see internal/models/run.go).
func (h *OptimizerHandler) GetRun(c *gin.Context) {
	if h.history == nil {
		utils.SendNotFound(c, "run history is not configured")
		return
	}
	id := c.Param("id")
	run, err := h.history.Get(c.Request.Context(), id)
	if err != nil {
		utils.SendNotFound(c, "run not found")
		return
	}
	c.JSON(http.StatusOK, run)
}

// ListRuns handles GET /api/v1/optimize/runs (admin, authenticated).
func (h *OptimizerHandler) ListRuns(c *gin.Context) {
	if h.history == nil {
		utils.SendNotFound(c, "run history is not configured")
		return
	}
	runs, err := h.history.List(c.Request.Context(), 50)
	if err != nil {
		utils.SendInternalError(c, "failed to list runs")
		return
	}
	c.JSON(http.StatusOK, runs)
}

func (h *OptimizerHandler) sendNormalizeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, optimizer.ErrInvalidSite), errors.Is(err, optimizer.ErrInvalidSport),
		errors.Is(err, optimizer.ErrUnsupportedCombination), errors.Is(err, optimizer.ErrIncorrectTeamName),
		errors.Is(err, optimizer.ErrIncorrectPositionName):
		utils.SendValidationError(c, "invalid optimize request", err.Error())
	case errors.Is(err, optimizer.ErrEmptyPlayerPool):
		utils.SendError(c, http.StatusUnprocessableEntity, utils.NewAppError(utils.ErrCodeOptimization, "empty player pool after filtering", err.Error()))
	default:
		utils.SendValidationError(c, "invalid optimize request", err.Error())
	}
}

func (h *OptimizerHandler) breakerWrappedBackend(solverName string) optimizer.Backend {
	base := optimizer.NewBackend(solverName)
	maxRequests := h.cfg.BreakerMaxRequests
	timeout := h.cfg.BreakerTimeout
	if maxRequests == 0 {
		maxRequests = 3
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return services.NewBreakerBackend(base, maxRequests, timeout, logger.Get())
}

func (h *OptimizerHandler) lookupCache(ctx context.Context, digest string) ([]lineupDTO, bool) {
	if h.cache == nil {
		return nil, false
	}
	var cached []lineupDTO
	if err := h.cache.Get(ctx, services.RunCacheKey(digest), &cached); err != nil {
		return nil, false
	}
	return cached, true
}

func (h *OptimizerHandler) storeCache(ctx context.Context, digest string, dtos []lineupDTO) {
	if h.cache == nil {
		return
	}
	if err := h.cache.Set(ctx, services.RunCacheKey(digest), dtos, 10*time.Minute); err != nil {
		logger.Get().WithError(err).Warn("failed to cache optimize result")
	}
}

// requestDigest hashes the normalized template/pool/constraints so that
// identical requests (by resolved meaning, not raw JSON) share a cache
// entry.
func requestDigest(template optimizer.RosterTemplate, players []optimizer.Player, cc optimizer.CoreConstraints) string {
	payload, _ := json.Marshal(struct {
		Template optimizer.RosterTemplate
		Players  []optimizer.Player
		CC       optimizer.CoreConstraints
	}{template, players, cc})
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}
