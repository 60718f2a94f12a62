package dispatches

import (
	"context"
	"log/slog"

	"loanservicing/internal/pkg/consts"
	mongodb "loanservicing/internal/pkg/db/mongo"
	"loanservicing/internal/pkg/logger"
	"loanservicing/internal/pkg/store/models"
	"loanservicing/internal/pkg/store/repository"
	"loanservicing/internal/service/interfaces"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DispatchRepository struct {
	repo interfaces.DispatchStoreInterface
}

func NewDispatchRepository(client *mongodb.MongoClient) *DispatchRepository {
	collection := client.Database.Collection(consts.ReminderDispatchesCollection)
	repo := repository.NewMongoRepository[models.ReminderDispatches](collection)
	return &DispatchRepository{repo: repo}
}

func NewDispatchRepositoryWithInterface(repo interfaces.DispatchStoreInterface) *DispatchRepository {
	return &DispatchRepository{repo: repo}
}

func (r *DispatchRepository) RecordDispatch(ctx context.Context, dispatch *models.ReminderDispatches) error {
	_, err := r.repo.Create(ctx, dispatch)
	if err != nil {
		logger.CtxError(ctx, "Failed to record reminder dispatch", err,
			slog.String("loan_id", dispatch.LoanID.Hex()),
			slog.String("rule_id", dispatch.RuleID.Hex()),
		)
		return err
	}
	return nil
}

// HasDispatch reports whether a reminder for this (installment, rule) pair was
// already delivered. The record is only written after a successful send, so a
// failed delivery stays eligible for the next pass.
func (r *DispatchRepository) HasDispatch(ctx context.Context, loanID primitive.ObjectID, installmentIndex int32, ruleID primitive.ObjectID) (bool, error) {
	filter := bson.M{
		"loanId":           loanID,
		"installmentIndex": installmentIndex,
		"ruleId":           ruleID,
	}
	count, err := r.repo.CountDocuments(ctx, filter)
	if err != nil {
		logger.CtxError(ctx, "Error checking reminder dispatch", err,
			slog.String("loan_id", loanID.Hex()),
			slog.String("rule_id", ruleID.Hex()),
		)
		return false, err
	}
	return count > 0, nil
}

func (r *DispatchRepository) ListDispatchesByLoan(ctx context.Context, loanID primitive.ObjectID) ([]models.ReminderDispatches, error) {
	return r.repo.Find(ctx, bson.M{"loanId": loanID})
}
