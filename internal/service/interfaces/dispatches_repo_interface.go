package interfaces

import (
	"context"

	"loanservicing/internal/pkg/store/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type DispatchRepositoryInterface interface {
	RecordDispatch(ctx context.Context, dispatch *models.ReminderDispatches) error
	HasDispatch(ctx context.Context, loanID primitive.ObjectID, installmentIndex int32, ruleID primitive.ObjectID) (bool, error)
	ListDispatchesByLoan(ctx context.Context, loanID primitive.ObjectID) ([]models.ReminderDispatches, error)
}

type DispatchStoreInterface interface {
	Create(ctx context.Context, document interface{}) (*mongo.InsertOneResult, error)
	FindOne(ctx context.Context, filter interface{}, opt *options.FindOneOptions) (models.ReminderDispatches, error)
	Find(ctx context.Context, filter interface{}) ([]models.ReminderDispatches, error)
	CountDocuments(ctx context.Context, filter interface{}) (int64, error)
}
