package loans

import (
	"context"
	"fmt"
	"testing"
	"time"

	"loanservicing/internal/pkg/consts"
	"loanservicing/internal/pkg/store/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Mock for repository.MongoRepository
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

func (m *MockRepository) FindOne(ctx context.Context, filter interface{}, opt *options.FindOneOptions) (models.Loans, error) {
	args := m.Called(ctx, filter, opt)
	return args.Get(0).(models.Loans), args.Error(1)
}

func (m *MockRepository) Find(ctx context.Context, filter interface{}) ([]models.Loans, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Loans), args.Error(1)
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

// Create a new LoanRepository with a mocked store
func setupTest() (*LoanRepository, *MockRepository) {
	mockRepo := new(MockRepository)
	return NewLoanRepositoryWithInterface(mockRepo), mockRepo
}

func createSampleLoan() models.Loans {
	start := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	return models.Loans{
		ID:                   primitive.NewObjectID(),
		RequestID:            primitive.NewObjectID(),
		CustomerID:           primitive.NewObjectID(),
		Principal:            5000,
		MonthlyRate:          0.05,
		NegotiatedMultiplier: 1.0,
		TotalOwed:            5250,
		StartDate:            start,
		Installments: []models.Installment{
			{Index: 0, Amount: 437.50, DueDate: start.AddDate(0, 0, 30), Status: consts.InstallmentStatusOpen},
			{Index: 1, Amount: 437.50, DueDate: start.AddDate(0, 0, 60), Status: consts.InstallmentStatusOpen},
		},
		CreatedAt: start,
	}
}

func TestGetLoanByID(t *testing.T) {
	loanRepo, mockRepo := setupTest()
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		expectedLoan := createSampleLoan()
		mockRepo.On("FindOne", ctx, bson.M{"_id": expectedLoan.ID}, mock.AnythingOfType("*options.FindOneOptions")).
			Return(expectedLoan, nil).Once()

		loan, err := loanRepo.GetLoanByID(ctx, expectedLoan.ID)

		assert.NoError(t, err)
		assert.Equal(t, &expectedLoan, loan)
		mockRepo.AssertExpectations(t)
	})

	t.Run("No Document Found", func(t *testing.T) {
		loanID := primitive.NewObjectID()
		mockRepo.On("FindOne", ctx, bson.M{"_id": loanID}, mock.AnythingOfType("*options.FindOneOptions")).
			Return(models.Loans{}, mongo.ErrNoDocuments).Once()

		loan, err := loanRepo.GetLoanByID(ctx, loanID)

		assert.ErrorIs(t, err, consts.ErrorLoanNotFound)
		assert.Nil(t, loan)
		mockRepo.AssertExpectations(t)
	})

	t.Run("FindOne Error", func(t *testing.T) {
		loanID := primitive.NewObjectID()
		testErr := fmt.Errorf("database error")
		mockRepo.On("FindOne", ctx, bson.M{"_id": loanID}, mock.AnythingOfType("*options.FindOneOptions")).
			Return(models.Loans{}, testErr).Once()

		loan, err := loanRepo.GetLoanByID(ctx, loanID)

		assert.ErrorIs(t, err, testErr)
		assert.Nil(t, loan)
		mockRepo.AssertExpectations(t)
	})
}

func TestCreateLoan(t *testing.T) {
	loanRepo, mockRepo := setupTest()
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		loan := createSampleLoan()
		insertedID := primitive.NewObjectID()
		mockRepo.On("Create", ctx, &loan).
			Return(&mongo.InsertOneResult{InsertedID: insertedID}, nil).Once()

		id, err := loanRepo.CreateLoan(ctx, &loan)

		assert.NoError(t, err)
		assert.Equal(t, insertedID, id)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Create Error", func(t *testing.T) {
		loan := createSampleLoan()
		testErr := fmt.Errorf("database error")
		mockRepo.On("Create", ctx, &loan).Return(nil, testErr).Once()

		id, err := loanRepo.CreateLoan(ctx, &loan)

		assert.ErrorIs(t, err, testErr)
		assert.Equal(t, primitive.NilObjectID, id)
		mockRepo.AssertExpectations(t)
	})
}

func TestMarkInstallmentPaid(t *testing.T) {
	loanRepo, mockRepo := setupTest()
	ctx := context.Background()
	loanID := primitive.NewObjectID()
	paidAt := time.Date(2026, 2, 8, 12, 0, 0, 0, time.UTC)

	t.Run("Settles open installment", func(t *testing.T) {
		mockRepo.On("UpdateOneRaw", ctx, mock.Anything, mock.Anything).
			Return(&mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil).Once()

		settled, err := loanRepo.MarkInstallmentPaid(ctx, loanID, 0, 437.50, "receipt-001", paidAt)

		assert.NoError(t, err)
		assert.True(t, settled)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Already paid installment does not match", func(t *testing.T) {
		mockRepo.On("UpdateOneRaw", ctx, mock.Anything, mock.Anything).
			Return(&mongo.UpdateResult{MatchedCount: 0, ModifiedCount: 0}, nil).Once()

		settled, err := loanRepo.MarkInstallmentPaid(ctx, loanID, 0, 437.50, "receipt-001", paidAt)

		assert.NoError(t, err)
		assert.False(t, settled)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Update Error", func(t *testing.T) {
		testErr := fmt.Errorf("database error")
		mockRepo.On("UpdateOneRaw", ctx, mock.Anything, mock.Anything).
			Return(nil, testErr).Once()

		settled, err := loanRepo.MarkInstallmentPaid(ctx, loanID, 0, 437.50, "receipt-001", paidAt)

		assert.ErrorIs(t, err, testErr)
		assert.False(t, settled)
		mockRepo.AssertExpectations(t)
	})
}

func TestSetTotalOwed(t *testing.T) {
	loanRepo, mockRepo := setupTest()
	ctx := context.Background()
	loanID := primitive.NewObjectID()

	t.Run("Success", func(t *testing.T) {
		mockRepo.On("UpdateOneRaw", ctx, bson.M{"_id": loanID}, mock.MatchedBy(func(update interface{}) bool {
			set := update.(bson.M)["$set"].(bson.M)
			return set["totalOwed"] == 1312.50
		})).Return(&mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil).Once()

		err := loanRepo.SetTotalOwed(ctx, loanID, 1312.50)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Loan not found", func(t *testing.T) {
		mockRepo.On("UpdateOneRaw", ctx, bson.M{"_id": loanID}, mock.Anything).
			Return(&mongo.UpdateResult{MatchedCount: 0}, nil).Once()

		err := loanRepo.SetTotalOwed(ctx, loanID, 1312.50)

		assert.ErrorIs(t, err, consts.ErrorLoanNotFound)
		mockRepo.AssertExpectations(t)
	})
}

func TestReplaceUnpaidInstallments(t *testing.T) {
	loanRepo, mockRepo := setupTest()
	ctx := context.Background()
	loanID := primitive.NewObjectID()
	proposalID := primitive.NewObjectID()
	renegotiatedAt := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	newInstallments := []models.Installment{
		{Index: 0, Amount: 437.50, Status: consts.InstallmentStatusPaid},
		{Index: 1, Amount: 900.00, Status: consts.InstallmentStatusOpen},
	}

	t.Run("Success", func(t *testing.T) {
		mockRepo.On("UpdateOneRaw", ctx, bson.M{"_id": loanID}, mock.Anything).
			Return(&mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil).Once()

		err := loanRepo.ReplaceUnpaidInstallments(ctx, loanID, newInstallments, 5400, 0.04, proposalID, renegotiatedAt)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Loan not found", func(t *testing.T) {
		mockRepo.On("UpdateOneRaw", ctx, bson.M{"_id": loanID}, mock.Anything).
			Return(&mongo.UpdateResult{MatchedCount: 0}, nil).Once()

		err := loanRepo.ReplaceUnpaidInstallments(ctx, loanID, newInstallments, 5400, 0.04, proposalID, renegotiatedAt)

		assert.ErrorIs(t, err, consts.ErrorLoanNotFound)
		mockRepo.AssertExpectations(t)
	})
}
