package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/alexanderramin/studyplanner/internal/contract"
	"github.com/alexanderramin/studyplanner/internal/service"
)

type handlers struct {
	planner service.PlannerService
	logger  *zap.Logger
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// POST /api/schedule/generate
func (h *handlers) generate(c *gin.Context) {
	var req contract.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}

	schedule, err := h.planner.Generate(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "schedule": schedule})
}

// POST /api/schedule/adapt
func (h *handlers) adapt(c *gin.Context) {
	var req contract.AdaptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}

	adapted, err := h.planner.Adapt(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "adaptedSchedule": adapted})
}

// GET /api/schedules/:id
func (h *handlers) getSchedule(c *gin.Context) {
	schedule, err := h.planner.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "schedule": schedule})
}

// GET /api/schedules/:id/versions
func (h *handlers) listVersions(c *gin.Context) {
	versions, err := h.planner.Versions(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "versions": versions})
}

// GET /api/schedules/:id/versions/:version
func (h *handlers) getVersion(c *gin.Context) {
	version, err := strconv.Atoi(c.Param("version"))
	if err != nil || version < 1 {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Version must be a positive integer", Details: c.Param("version")})
		return
	}

	schedule, err := h.planner.GetVersion(c.Request.Context(), c.Param("id"), version)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "schedule": schedule})
}

func badBody(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid request body", Details: err.Error()})
}

func (h *handlers) fail(c *gin.Context, err error) {
	pe, ok := contract.AsPlanError(err)
	if !ok {
		h.logger.Error("unclassified planner error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "Internal server error", Details: err.Error()})
		return
	}
	c.JSON(pe.HTTPStatus(), errorResponse{Error: pe.Message, Details: pe.Details})
}
