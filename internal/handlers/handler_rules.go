package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/finledger/posting_engine/internal/apperrors"
	portssvc "github.com/finledger/posting_engine/internal/core/ports/services"
	"github.com/finledger/posting_engine/internal/dto"
	"github.com/finledger/posting_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ruleHandler handles HTTP requests for posting rule management.
type ruleHandler struct {
	ruleService portssvc.RuleSvcFacade
}

// newRuleHandler creates a new ruleHandler.
func newRuleHandler(ruleService portssvc.RuleSvcFacade) *ruleHandler {
	return &ruleHandler{
		ruleService: ruleService,
	}
}

// createRule creates a posting rule with its line templates.
func (h *ruleHandler) createRule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")

	req := dto.CreateRuleRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for CreateRule", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorIDFromCtx(c.Request.Context())
	if !ok {
		logger.Error("Actor ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	rule, err := h.ruleService.CreateRule(c.Request.Context(), tenantID, req, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating rule", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create rule", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create rule"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToRuleResponse(rule))
}

// getRule retrieves a rule and its line templates.
func (h *ruleHandler) getRule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")
	ruleID := c.Param("ruleID")

	rule, err := h.ruleService.GetRuleByID(c.Request.Context(), tenantID, ruleID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Rule not found"})
			return
		}
		logger.Error("Failed to get rule", slog.String("rule_id", ruleID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve rule"})
		return
	}

	c.JSON(http.StatusOK, dto.ToRuleResponse(rule))
}

// listRules lists a tenant's rules, optionally filtered by modelCode.
func (h *ruleHandler) listRules(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")

	var modelCode *string
	if mc := c.Query("modelCode"); mc != "" {
		modelCode = &mc
	}

	rules, err := h.ruleService.ListRules(c.Request.Context(), tenantID, modelCode)
	if err != nil {
		logger.Error("Failed to list rules", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list rules"})
		return
	}

	resp := dto.ListRulesResponse{Rules: make([]dto.RuleResponse, 0, len(rules))}
	for i := range rules {
		resp.Rules = append(resp.Rules, dto.ToRuleResponse(&rules[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// deactivateRule soft-deletes a rule.
func (h *ruleHandler) deactivateRule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")
	ruleID := c.Param("ruleID")

	actorID, ok := middleware.GetActorIDFromCtx(c.Request.Context())
	if !ok {
		logger.Error("Actor ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.ruleService.DeactivateRule(c.Request.Context(), tenantID, ruleID, actorID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Rule not found"})
			return
		}
		logger.Error("Failed to deactivate rule", slog.String("rule_id", ruleID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate rule"})
		return
	}

	c.Status(http.StatusNoContent)
}

// registerRuleRoutes registers rule management routes on the tenant group.
func registerRuleRoutes(tenants *gin.RouterGroup, ruleService portssvc.RuleSvcFacade) {
	handler := newRuleHandler(ruleService)

	rules := tenants.Group("/rules")
	{
		rules.POST("", handler.createRule)
		rules.GET("", handler.listRules)
		rules.GET("/:ruleID", handler.getRule)
		rules.DELETE("/:ruleID", handler.deactivateRule)
	}
}
