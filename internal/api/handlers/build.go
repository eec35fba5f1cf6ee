package handlers

import (
	"net/http"
	"sync"

	"ldes-planner/internal/analysis"
	"ldes-planner/internal/api/models"
	"ldes-planner/internal/config"
	"ldes-planner/internal/data"
	"ldes-planner/internal/opt"
	"ldes-planner/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const defaultTolerance = 1e-6

// BuildHandler constructs planning models from case configs and caches them
// by id for follow-up validation requests.
type BuildHandler struct {
	mu     sync.Mutex
	builds map[string]*buildEntry
}

type buildEntry struct {
	model   *opt.Model
	summary models.BuildResponse
}

func NewBuildHandler() *BuildHandler {
	return &BuildHandler{builds: map[string]*buildEntry{}}
}

// Build handles POST /api/v1/build
func (h *BuildHandler) Build(c *gin.Context) {
	var req models.BuildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
		return
	}

	cfg, err := config.Load(req.ConfigPath)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_CONFIG", err)
		return
	}
	in, err := data.LoadCase(cfg)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_INPUTS", err)
		return
	}

	m := opt.New()
	pm, err := storage.Build(m, in)
	if err != nil {
		respondError(c, http.StatusUnprocessableEntity, "BUILD_FAILED", err)
		return
	}

	resp := models.BuildResponse{
		BuildID:     uuid.NewString(),
		Case:        in.CaseName,
		Periods:     pm.Periods,
		RepPeriods:  pm.RepPeriods,
		Timesteps:   in.Timesteps,
		Variables:   m.NumVars(),
		Constraints: m.NumConstraints(),
		Families:    m.FamilyCensus(),
	}

	h.mu.Lock()
	h.builds[resp.BuildID] = &buildEntry{model: m, summary: resp}
	h.mu.Unlock()

	c.JSON(http.StatusOK, resp)
}

// Get handles GET /api/v1/build/:id
func (h *BuildHandler) Get(c *gin.Context) {
	entry, ok := h.lookup(c.Param("id"))
	if !ok {
		respondNotFound(c)
		return
	}
	c.JSON(http.StatusOK, entry.summary)
}

// Validate handles POST /api/v1/build/:id/validate
func (h *BuildHandler) Validate(c *gin.Context) {
	entry, ok := h.lookup(c.Param("id"))
	if !ok {
		respondNotFound(c)
		return
	}

	var req models.ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
		return
	}
	tol := req.Tolerance
	if tol == 0 {
		tol = defaultTolerance
	}

	rep, err := analysis.CheckAssignment(entry.model, req.Assignment, tol)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ASSIGNMENT", err)
		return
	}
	c.JSON(http.StatusOK, models.ValidateResponse{
		BuildID:    entry.summary.BuildID,
		Feasible:   rep.Feasible(),
		Checked:    rep.Checked,
		Skipped:    rep.Skipped,
		Violations: rep.Violations,
	})
}

func (h *BuildHandler) lookup(id string) (*buildEntry, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	entry, ok := h.builds[id]
	return entry, ok
}

func respondError(c *gin.Context, status int, code string, err error) {
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: err.Error(),
		},
	})
}

func respondNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "NOT_FOUND",
			Message: "no build with that id",
		},
	})
}
