package loans

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"loanservicing/internal/pkg/consts"
	mongodb "loanservicing/internal/pkg/db/mongo"
	"loanservicing/internal/pkg/logger"
	"loanservicing/internal/pkg/store/models"
	"loanservicing/internal/pkg/store/repository"
	"loanservicing/internal/service/interfaces"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type LoanRepository struct {
	repo interfaces.LoanStoreInterface
}

func NewLoanRepository(client *mongodb.MongoClient) *LoanRepository {
	collection := client.Database.Collection(consts.LoansCollection)
	repo := repository.NewMongoRepository[models.Loans](collection)
	return &LoanRepository{repo: repo}
}

func NewLoanRepositoryWithInterface(repo interfaces.LoanStoreInterface) *LoanRepository {
	return &LoanRepository{repo: repo}
}

func (r *LoanRepository) CreateLoan(ctx context.Context, loan *models.Loans) (primitive.ObjectID, error) {
	result, err := r.repo.Create(ctx, loan)
	if err != nil {
		logger.CtxError(ctx, "Failed to create loan", err,
			slog.String("request_id", loan.RequestID.Hex()))
		return primitive.NilObjectID, err
	}

	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("inserted id is not an ObjectID")
	}
	return id, nil
}

func (r *LoanRepository) GetLoanByID(ctx context.Context, loanID primitive.ObjectID) (*models.Loans, error) {
	filter := bson.M{"_id": loanID}
	loan, err := r.repo.FindOne(ctx, filter, options.FindOne())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, consts.ErrorLoanNotFound
		}
		logger.CtxError(ctx, "Error fetching loan", err, slog.String("loan_id", loanID.Hex()))
		return nil, err
	}
	return &loan, nil
}

func (r *LoanRepository) GetLoansByCustomer(ctx context.Context, customerID primitive.ObjectID) ([]models.Loans, error) {
	return r.repo.Find(ctx, bson.M{"customerId": customerID})
}

func (r *LoanRepository) ListLoansWithOpenInstallments(ctx context.Context) ([]models.Loans, error) {
	filter := bson.M{"installments": bson.M{"$elemMatch": bson.M{"status": consts.InstallmentStatusOpen}}}
	return r.repo.Find(ctx, filter)
}

// MarkInstallmentPaid settles one installment with a status-guarded positional
// update. Returns false when the installment was not OPEN, so a double payment
// never overwrites the first settlement.
func (r *LoanRepository) MarkInstallmentPaid(
	ctx context.Context,
	loanID primitive.ObjectID,
	index int32,
	paidAmount float64,
	proofRef string,
	paidAt time.Time,
) (bool, error) {
	filter := bson.M{
		"_id": loanID,
		"installments": bson.M{"$elemMatch": bson.M{
			"index":  index,
			"status": consts.InstallmentStatusOpen,
		}},
	}
	set := bson.M{
		"installments.$.status":     consts.InstallmentStatusPaid,
		"installments.$.paidAt":     paidAt,
		"installments.$.paidAmount": paidAmount,
		"updatedAt":                 time.Now().UTC(),
	}
	if proofRef != "" {
		set["installments.$.paymentProof"] = proofRef
	}
	update := bson.M{"$set": set}

	result, err := r.repo.UpdateOneRaw(ctx, filter, update)
	if err != nil {
		logger.CtxError(ctx, "Failed to mark installment paid", err,
			slog.String("loan_id", loanID.Hex()),
			slog.Int("installment_index", int(index)),
		)
		return false, err
	}
	return result.ModifiedCount > 0, nil
}

// SetTotalOwed rewrites the cached total after a drift repair.
func (r *LoanRepository) SetTotalOwed(ctx context.Context, loanID primitive.ObjectID, totalOwed float64) error {
	update := bson.M{"$set": bson.M{
		"totalOwed": totalOwed,
		"updatedAt": time.Now().UTC(),
	}}

	result, err := r.repo.UpdateOneRaw(ctx, bson.M{"_id": loanID}, update)
	if err != nil {
		logger.CtxError(ctx, "Failed to set loan total owed", err,
			slog.String("loan_id", loanID.Hex()))
		return err
	}
	if result.MatchedCount == 0 {
		return consts.ErrorLoanNotFound
	}
	return nil
}

// ReplaceUnpaidInstallments swaps the whole installment array for the given
// one. Callers are expected to pass paid installments through untouched and
// replace only the open tail.
func (r *LoanRepository) ReplaceUnpaidInstallments(
	ctx context.Context,
	loanID primitive.ObjectID,
	installments []models.Installment,
	newTotalOwed float64,
	monthlyRate float64,
	acceptedProposalID primitive.ObjectID,
	renegotiatedAt time.Time,
) error {
	update := bson.M{"$set": bson.M{
		"installments":       installments,
		"totalOwed":          newTotalOwed,
		"monthlyRate":        monthlyRate,
		"acceptedProposalId": acceptedProposalID,
		"renegotiatedAt":     renegotiatedAt,
		"updatedAt":          time.Now().UTC(),
	}}

	result, err := r.repo.UpdateOneRaw(ctx, bson.M{"_id": loanID}, update)
	if err != nil {
		logger.CtxError(ctx, "Failed to replace loan installments", err,
			slog.String("loan_id", loanID.Hex()))
		return err
	}
	if result.MatchedCount == 0 {
		return consts.ErrorLoanNotFound
	}
	return nil
}
