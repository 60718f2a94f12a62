package collection_rules

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

type CollectionRuleRepository struct {
	repo interfaces.CollectionRuleStoreInterface
}

func NewCollectionRuleRepository(client *mongodb.MongoClient) *CollectionRuleRepository {
	collection := client.Database.Collection(consts.CollectionRulesCollection)
	repo := repository.NewMongoRepository[models.CollectionRules](collection)
	return &CollectionRuleRepository{repo: repo}
}

func NewCollectionRuleRepositoryWithInterface(repo interfaces.CollectionRuleStoreInterface) *CollectionRuleRepository {
	return &CollectionRuleRepository{repo: repo}
}

func (r *CollectionRuleRepository) CreateRule(ctx context.Context, rule *models.CollectionRules) (primitive.ObjectID, error) {
	result, err := r.repo.Create(ctx, rule)
	if err != nil {
		logger.CtxError(ctx, "Failed to create collection rule", err,
			slog.String("rule_name", rule.Name))
		return primitive.NilObjectID, err
	}

	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("inserted id is not an ObjectID")
	}
	return id, nil
}

func (r *CollectionRuleRepository) GetRuleByID(ctx context.Context, ruleID primitive.ObjectID) (*models.CollectionRules, error) {
	rule, err := r.repo.FindOne(ctx, bson.M{"_id": ruleID}, options.FindOne())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, consts.ErrorRuleNotFound
		}
		logger.CtxError(ctx, "Error fetching collection rule", err, slog.String("rule_id", ruleID.Hex()))
		return nil, err
	}
	return &rule, nil
}

func (r *CollectionRuleRepository) ListActiveRules(ctx context.Context) ([]models.CollectionRules, error) {
	return r.repo.Find(ctx, bson.M{"active": true})
}

func (r *CollectionRuleRepository) ListAllRules(ctx context.Context) ([]models.CollectionRules, error) {
	return r.repo.Find(ctx, bson.M{})
}

func (r *CollectionRuleRepository) UpdateRule(ctx context.Context, ruleID primitive.ObjectID, rule *models.CollectionRules) error {
	return r.repo.UpdateOne(ctx, bson.M{"_id": ruleID}, bson.M{
		"name":            rule.Name,
		"offsetDays":      rule.OffsetDays,
		"channel":         rule.Channel,
		"messageTemplate": rule.MessageTemplate,
		"active":          rule.Active,
		"updatedAt":       time.Now().UTC(),
	})
}

func (r *CollectionRuleRepository) SetRuleActive(ctx context.Context, ruleID primitive.ObjectID, active bool) error {
	return r.repo.UpdateOne(ctx, bson.M{"_id": ruleID}, bson.M{
		"active":    active,
		"updatedAt": time.Now().UTC(),
	})
}
