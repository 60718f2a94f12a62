package interfaces

import (
	"context"

	"loanservicing/internal/pkg/store/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type InteractionRepositoryInterface interface {
	LogInteraction(ctx context.Context, entry *models.InteractionLogs) error
	ListInteractionsByCustomer(ctx context.Context, customerID primitive.ObjectID) ([]models.InteractionLogs, error)
}

type InteractionStoreInterface interface {
	Create(ctx context.Context, document interface{}) (*mongo.InsertOneResult, error)
	Find(ctx context.Context, filter interface{}) ([]models.InteractionLogs, error)
}
