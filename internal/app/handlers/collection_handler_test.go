package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"loanservicing/internal/pkg/consts"
	"loanservicing/internal/pkg/store/models"
	"loanservicing/internal/service/collection"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCollectionService struct {
	mock.Mock
}

func (m *MockCollectionService) CreateRule(ctx context.Context, rule *models.CollectionRules) (*models.CollectionRules, error) {
	args := m.Called(ctx, rule)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CollectionRules), args.Error(1)
}

func (m *MockCollectionService) UpdateRule(ctx context.Context, ruleID primitive.ObjectID, rule *models.CollectionRules) error {
	args := m.Called(ctx, ruleID, rule)
	return args.Error(0)
}

func (m *MockCollectionService) SetRuleActive(ctx context.Context, ruleID primitive.ObjectID, active bool) error {
	args := m.Called(ctx, ruleID, active)
	return args.Error(0)
}

func (m *MockCollectionService) ListRules(ctx context.Context) ([]models.CollectionRules, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CollectionRules), args.Error(1)
}

func (m *MockCollectionService) ListDispatches(ctx context.Context, loanID primitive.ObjectID) ([]models.ReminderDispatches, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReminderDispatches), args.Error(1)
}

func (m *MockCollectionService) RunPass(ctx context.Context) (*collection.PassSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*collection.PassSummary), args.Error(1)
}

func collectionRouter(handler *CollectionHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/collection-rules", handler.CreateRule)
	router.GET("/collection-rules", handler.ListRules)
	router.PUT("/collection-rules/:id", handler.UpdateRule)
	router.DELETE("/collection-rules/:id", handler.DeactivateRule)
	router.POST("/collection/run", handler.RunPass)
	router.GET("/collection/dispatches", handler.ListDispatches)
	return router
}

func TestCreateRuleHandler(t *testing.T) {
	t.Run("created with default active", func(t *testing.T) {
		service := new(MockCollectionService)
		handler := NewCollectionHandler(service)
		ruleID := primitive.NewObjectID()
		service.On("CreateRule", mock.Anything, mock.MatchedBy(func(rule *models.CollectionRules) bool {
			return rule.OffsetDays == -3 && rule.Active
		})).Return(&models.CollectionRules{
			ID:              ruleID,
			Name:            "three days before",
			OffsetDays:      -3,
			Channel:         consts.ChannelWhatsApp,
			MessageTemplate: "Hello {name}",
			Active:          true,
		}, nil).Once()

		w := postJSON(collectionRouter(handler), "/collection-rules", RulePayload{
			Name:            "three days before",
			OffsetDays:      -3,
			MessageTemplate: "Hello {name}",
		})

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp RuleResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, ruleID.Hex(), resp.ID)
	})

	t.Run("offset out of range maps to 400", func(t *testing.T) {
		service := new(MockCollectionService)
		handler := NewCollectionHandler(service)
		service.On("CreateRule", mock.Anything, mock.Anything).
			Return(nil, consts.ErrorInvalidRuleOffset).Once()

		w := postJSON(collectionRouter(handler), "/collection-rules", RulePayload{
			Name:            "way out",
			OffsetDays:      120,
			MessageTemplate: "Hello {name}",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown channel rejected at the boundary", func(t *testing.T) {
		handler := NewCollectionHandler(new(MockCollectionService))

		w := postJSON(collectionRouter(handler), "/collection-rules", gin.H{
			"name":            "pigeon post",
			"channel":         "PIGEON",
			"messageTemplate": "Hello {name}",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRunPassHandler(t *testing.T) {
	service := new(MockCollectionService)
	handler := NewCollectionHandler(service)
	service.On("RunPass", mock.Anything).Return(&collection.PassSummary{
		LoansScanned:  4,
		RemindersSent: 2,
		SkippedFired:  1,
	}, nil).Once()

	w := postJSON(collectionRouter(handler), "/collection/run", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t,
		`{"loansScanned":4,"remindersSent":2,"skippedFired":1,"skippedLocked":0,"senderFailures":0}`,
		w.Body.String())
}

func TestListDispatchesHandler(t *testing.T) {
	t.Run("requires a loanId", func(t *testing.T) {
		handler := NewCollectionHandler(new(MockCollectionService))

		req, _ := http.NewRequest(http.MethodGet, "/collection/dispatches", nil)
		w := httptest.NewRecorder()
		collectionRouter(handler).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("lists fired history", func(t *testing.T) {
		service := new(MockCollectionService)
		handler := NewCollectionHandler(service)
		loanID := primitive.NewObjectID()
		service.On("ListDispatches", mock.Anything, loanID).Return([]models.ReminderDispatches{
			{ID: primitive.NewObjectID(), LoanID: loanID, InstallmentIndex: 0, Channel: consts.ChannelWhatsApp},
		}, nil).Once()

		req, _ := http.NewRequest(http.MethodGet, "/collection/dispatches?loanId="+loanID.Hex(), nil)
		w := httptest.NewRecorder()
		collectionRouter(handler).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
