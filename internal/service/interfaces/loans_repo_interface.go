package interfaces

import (
	"context"
	"time"

	"loanservicing/internal/pkg/store/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type LoanRepositoryInterface interface {
	CreateLoan(ctx context.Context, loan *models.Loans) (primitive.ObjectID, error)
	GetLoanByID(ctx context.Context, loanID primitive.ObjectID) (*models.Loans, error)
	GetLoansByCustomer(ctx context.Context, customerID primitive.ObjectID) ([]models.Loans, error)
	ListLoansWithOpenInstallments(ctx context.Context) ([]models.Loans, error)
	MarkInstallmentPaid(
		ctx context.Context,
		loanID primitive.ObjectID,
		index int32,
		paidAmount float64,
		proofRef string,
		paidAt time.Time,
	) (bool, error)
	SetTotalOwed(ctx context.Context, loanID primitive.ObjectID, totalOwed float64) error
	ReplaceUnpaidInstallments(
		ctx context.Context,
		loanID primitive.ObjectID,
		installments []models.Installment,
		newTotalOwed float64,
		monthlyRate float64,
		acceptedProposalID primitive.ObjectID,
		renegotiatedAt time.Time,
	) error
}

type LoanStoreInterface interface {
	Create(ctx context.Context, document interface{}) (*mongo.InsertOneResult, error)
	FindOne(ctx context.Context, filter interface{}, opt *options.FindOneOptions) (models.Loans, error)
	Find(ctx context.Context, filter interface{}) ([]models.Loans, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}) error
	UpdateOneRaw(ctx context.Context, filter interface{}, update interface{}) (*mongo.UpdateResult, error)
}
