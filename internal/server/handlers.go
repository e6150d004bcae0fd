package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mkrogh/studyplan/internal/domain"
	"github.com/mkrogh/studyplan/internal/intelligence"
	"github.com/mkrogh/studyplan/internal/llm"
	"github.com/mkrogh/studyplan/internal/repository"
	"github.com/mkrogh/studyplan/internal/schedule"
	"go.uber.org/zap"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.String(http.StatusOK, "studyplan backend running")
}

// chatRequest is the pass-through proxy body. Messages must be an array of
// role-tagged messages; everything else about the upstream call (model,
// temperature, auth) is fixed server-side.
type chatRequest struct {
	Messages []llm.Message `json:"messages"`
}

func (s *Server) handleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Messages == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must contain 'messages' as an array"})
		return
	}

	resp, err := s.chat.Complete(c.Request.Context(), req.Messages)
	if err != nil {
		s.log.Warn("chat proxy upstream failure", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream model provider failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"content": resp.Content})
}

// planResponse is the generation endpoint body. When the model's output
// could not be decoded, parsed is false and raw carries the full text.
type planResponse struct {
	Parsed bool         `json:"parsed"`
	Plan   *domain.Plan `json:"plan,omitempty"`
	Raw    string       `json:"raw,omitempty"`
}

func (s *Server) handleGeneratePlan(c *gin.Context) {
	var input domain.GenerationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := input.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := s.plans.Generate(c.Request.Context(), input)
	switch {
	case errors.Is(err, intelligence.ErrSuperseded):
		c.JSON(http.StatusConflict, gin.H{"error": "superseded by a newer generation request"})
		return
	case err != nil:
		s.log.Warn("plan generation failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "model backend not responding"})
		return
	}

	resp := planResponse{Parsed: result.Parsed, Raw: result.Raw}
	if result.Parsed {
		resp.Plan = &result.Plan
		resp.Raw = ""
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleLastPlan(c *gin.Context) {
	record, err := s.plans.Last(c.Request.Context())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no stored plan"})
			return
		}
		s.log.Error("loading stored plan failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load stored plan"})
		return
	}
	c.JSON(http.StatusOK, record)
}

func (s *Server) handleWeekDays(c *gin.Context) {
	week, err := strconv.Atoi(c.Param("week"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "week must be an integer"})
		return
	}

	record, err := s.plans.Last(c.Request.Context())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no stored plan"})
			return
		}
		s.log.Error("loading stored plan failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load stored plan"})
		return
	}

	for _, entry := range record.Plan.WeeklySchedule {
		if entry.Week == week {
			days := schedule.PlanDays(entry, record.Input.CleanDifficultTopics())
			c.JSON(http.StatusOK, gin.H{"week": week, "days": days})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "week not present in stored plan"})
}
