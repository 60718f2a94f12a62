package loan_requests

import (
	"context"
	"fmt"
	"testing"

	"loanservicing/internal/pkg/consts"
	"loanservicing/internal/pkg/store/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, document interface{}) (*mongo.InsertOneResult, error) {
	args := m.Called(ctx, document)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mongo.InsertOneResult), args.Error(1)
}

func (m *MockRepository) FindOne(ctx context.Context, filter interface{}, opt *options.FindOneOptions) (models.LoanRequests, error) {
	args := m.Called(ctx, filter, opt)
	return args.Get(0).(models.LoanRequests), args.Error(1)
}

func (m *MockRepository) Find(ctx context.Context, filter interface{}) ([]models.LoanRequests, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LoanRequests), args.Error(1)
}

func (m *MockRepository) UpdateOne(ctx context.Context, filter interface{}, update interface{}) error {
	args := m.Called(ctx, filter, update)
	return args.Error(0)
}

func (m *MockRepository) UpdateOneRaw(ctx context.Context, filter interface{}, update interface{}) (*mongo.UpdateResult, error) {
	args := m.Called(ctx, filter, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mongo.UpdateResult), args.Error(1)
}

func setupTest() (*LoanRequestRepository, *MockRepository) {
	mockRepo := new(MockRepository)
	return NewLoanRequestRepositoryWithInterface(mockRepo), mockRepo
}

func TestGetRequestByID(t *testing.T) {
	requestRepo, mockRepo := setupTest()
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		expected := models.LoanRequests{
			ID:           primitive.NewObjectID(),
			NationalID:   "52998224725",
			Principal:    5000,
			MonthlyRate:  0.05,
			Installments: 12,
			Status:       consts.RequestStatusPending,
		}
		mockRepo.On("FindOne", ctx, bson.M{"_id": expected.ID}, mock.AnythingOfType("*options.FindOneOptions")).
			Return(expected, nil).Once()

		request, err := requestRepo.GetRequestByID(ctx, expected.ID)

		assert.NoError(t, err)
		assert.Equal(t, &expected, request)
		mockRepo.AssertExpectations(t)
	})

	t.Run("No Document Found", func(t *testing.T) {
		requestID := primitive.NewObjectID()
		mockRepo.On("FindOne", ctx, bson.M{"_id": requestID}, mock.AnythingOfType("*options.FindOneOptions")).
			Return(models.LoanRequests{}, mongo.ErrNoDocuments).Once()

		request, err := requestRepo.GetRequestByID(ctx, requestID)

		assert.ErrorIs(t, err, consts.ErrorRequestNotFound)
		assert.Nil(t, request)
		mockRepo.AssertExpectations(t)
	})
}

func TestTransitionStatus(t *testing.T) {
	requestRepo, mockRepo := setupTest()
	ctx := context.Background()
	requestID := primitive.NewObjectID()

	t.Run("Transition wins", func(t *testing.T) {
		mockRepo.On("UpdateOneRaw", ctx,
			bson.M{"_id": requestID, "status": consts.RequestStatusPending},
			mock.Anything,
		).Return(&mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil).Once()

		moved, err := requestRepo.TransitionStatus(ctx, requestID,
			consts.RequestStatusPending, consts.RequestStatusApproved, "")

		assert.NoError(t, err)
		assert.True(t, moved)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Request no longer in source status", func(t *testing.T) {
		mockRepo.On("UpdateOneRaw", ctx,
			bson.M{"_id": requestID, "status": consts.RequestStatusPending},
			mock.Anything,
		).Return(&mongo.UpdateResult{MatchedCount: 0, ModifiedCount: 0}, nil).Once()

		moved, err := requestRepo.TransitionStatus(ctx, requestID,
			consts.RequestStatusPending, consts.RequestStatusRejected, "insufficient score")

		assert.NoError(t, err)
		assert.False(t, moved)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Update Error", func(t *testing.T) {
		testErr := fmt.Errorf("database error")
		mockRepo.On("UpdateOneRaw", ctx,
			bson.M{"_id": requestID, "status": consts.RequestStatusWaitingDocs},
			mock.Anything,
		).Return(nil, testErr).Once()

		moved, err := requestRepo.TransitionStatus(ctx, requestID,
			consts.RequestStatusWaitingDocs, consts.RequestStatusApproved, "")

		assert.ErrorIs(t, err, testErr)
		assert.False(t, moved)
		mockRepo.AssertExpectations(t)
	})
}

func TestCreateRequest(t *testing.T) {
	requestRepo, mockRepo := setupTest()
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		request := &models.LoanRequests{NationalID: "52998224725", Principal: 5000}
		insertedID := primitive.NewObjectID()
		mockRepo.On("Create", ctx, request).
			Return(&mongo.InsertOneResult{InsertedID: insertedID}, nil).Once()

		id, err := requestRepo.CreateRequest(ctx, request)

		assert.NoError(t, err)
		assert.Equal(t, insertedID, id)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Create Error", func(t *testing.T) {
		request := &models.LoanRequests{NationalID: "52998224725"}
		testErr := fmt.Errorf("database error")
		mockRepo.On("Create", ctx, request).Return(nil, testErr).Once()

		id, err := requestRepo.CreateRequest(ctx, request)

		assert.ErrorIs(t, err, testErr)
		assert.Equal(t, primitive.NilObjectID, id)
		mockRepo.AssertExpectations(t)
	})
}

