package handlers

import (
	"context"
	"net/http"

	"loanservicing/internal/pkg/consts"
	"loanservicing/internal/pkg/store/models"
	"loanservicing/internal/service/collection"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CollectionServiceInterface interface {
	CreateRule(ctx context.Context, rule *models.CollectionRules) (*models.CollectionRules, error)
	UpdateRule(ctx context.Context, ruleID primitive.ObjectID, rule *models.CollectionRules) error
	SetRuleActive(ctx context.Context, ruleID primitive.ObjectID, active bool) error
	ListRules(ctx context.Context) ([]models.CollectionRules, error)
	ListDispatches(ctx context.Context, loanID primitive.ObjectID) ([]models.ReminderDispatches, error)
	RunPass(ctx context.Context) (*collection.PassSummary, error)
}

type CollectionHandler struct {
	collection CollectionServiceInterface
}

func NewCollectionHandler(collectionService CollectionServiceInterface) *CollectionHandler {
	return &CollectionHandler{collection: collectionService}
}

type RulePayload struct {
	Name            string `json:"name" binding:"required"`
	OffsetDays      int32  `json:"offsetDays"`
	Channel         string `json:"channel" binding:"omitempty,oneof=WHATSAPP EMAIL SMS"`
	MessageTemplate string `json:"messageTemplate" binding:"required"`
	Active          *bool  `json:"active"`
}

func (p *RulePayload) toModel() *models.CollectionRules {
	active := true
	if p.Active != nil {
		active = *p.Active
	}
	return &models.CollectionRules{
		Name:            p.Name,
		OffsetDays:      p.OffsetDays,
		Channel:         consts.ReminderChannel(p.Channel),
		MessageTemplate: p.MessageTemplate,
		Active:          active,
	}
}

func (h *CollectionHandler) CreateRule(c *gin.Context) {
	var payload RulePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rule, err := h.collection.CreateRule(c.Request.Context(), payload.toModel())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toRuleResponse(rule))
}

func (h *CollectionHandler) UpdateRule(c *gin.Context) {
	ruleID, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	var payload RulePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.collection.UpdateRule(c.Request.Context(), ruleID, payload.toModel()); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": true})
}

// DeactivateRule turns the rule off instead of deleting it, keeping the
// dispatch history attributable.
func (h *CollectionHandler) DeactivateRule(c *gin.Context) {
	ruleID, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	if err := h.collection.SetRuleActive(c.Request.Context(), ruleID, false); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"active": false})
}

func (h *CollectionHandler) ListRules(c *gin.Context) {
	rules, err := h.collection.ListRules(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	responses := make([]RuleResponse, 0, len(rules))
	for i := range rules {
		responses = append(responses, toRuleResponse(&rules[i]))
	}
	c.JSON(http.StatusOK, gin.H{"rules": responses})
}

func (h *CollectionHandler) RunPass(c *gin.Context) {
	summary, err := h.collection.RunPass(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *CollectionHandler) ListDispatches(c *gin.Context) {
	loanID, err := primitive.ObjectIDFromHex(c.Query("loanId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid loanId"})
		return
	}

	dispatches, err := h.collection.ListDispatches(c.Request.Context(), loanID)
	if err != nil {
		writeError(c, err)
		return
	}

	responses := make([]DispatchResponse, 0, len(dispatches))
	for i := range dispatches {
		responses = append(responses, toDispatchResponse(&dispatches[i]))
	}
	c.JSON(http.StatusOK, gin.H{"dispatches": responses})
}
