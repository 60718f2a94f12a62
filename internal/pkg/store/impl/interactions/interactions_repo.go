package interactions

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

type InteractionRepository struct {
	repo interfaces.InteractionStoreInterface
}

func NewInteractionRepository(client *mongodb.MongoClient) *InteractionRepository {
	collection := client.Database.Collection(consts.InteractionLogsCollection)
	repo := repository.NewMongoRepository[models.InteractionLogs](collection)
	return &InteractionRepository{repo: repo}
}

func NewInteractionRepositoryWithInterface(repo interfaces.InteractionStoreInterface) *InteractionRepository {
	return &InteractionRepository{repo: repo}
}

func (r *InteractionRepository) LogInteraction(ctx context.Context, entry *models.InteractionLogs) error {
	_, err := r.repo.Create(ctx, entry)
	if err != nil {
		logger.CtxError(ctx, "Failed to log customer interaction", err,
			slog.String("customer_id", entry.CustomerID.Hex()))
		return err
	}
	return nil
}

func (r *InteractionRepository) ListInteractionsByCustomer(ctx context.Context, customerID primitive.ObjectID) ([]models.InteractionLogs, error) {
	return r.repo.Find(ctx, bson.M{"customerId": customerID})
}
