package interfaces

import (
	"context"

	"loanservicing/internal/pkg/store/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CollectionRuleRepositoryInterface interface {
	CreateRule(ctx context.Context, rule *models.CollectionRules) (primitive.ObjectID, error)
	GetRuleByID(ctx context.Context, ruleID primitive.ObjectID) (*models.CollectionRules, error)
	ListActiveRules(ctx context.Context) ([]models.CollectionRules, error)
	ListAllRules(ctx context.Context) ([]models.CollectionRules, error)
	UpdateRule(ctx context.Context, ruleID primitive.ObjectID, rule *models.CollectionRules) error
	SetRuleActive(ctx context.Context, ruleID primitive.ObjectID, active bool) error
}

type CollectionRuleStoreInterface interface {
	Create(ctx context.Context, document interface{}) (*mongo.InsertOneResult, error)
	FindOne(ctx context.Context, filter interface{}, opt *options.FindOneOptions) (models.CollectionRules, error)
	Find(ctx context.Context, filter interface{}) ([]models.CollectionRules, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}) error
}
