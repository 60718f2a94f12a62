package interfaces

import (
	"context"

	"loanservicing/internal/pkg/store/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CustomerRepositoryInterface interface {
	CreateCustomer(ctx context.Context, customer *models.Customers) (primitive.ObjectID, error)
	GetCustomerByID(ctx context.Context, customerID primitive.ObjectID) (*models.Customers, error)
	GetCustomerByNationalID(ctx context.Context, nationalID string) (*models.Customers, error)
	GetCustomerByPhone(ctx context.Context, phone string) (*models.Customers, error)
	SetIdentityVerified(ctx context.Context, customerID primitive.ObjectID, verified bool) error
	SetScore(ctx context.Context, customerID primitive.ObjectID, score int32) error
	SetPreApprovedOffer(ctx context.Context, customerID primitive.ObjectID, offer *models.PreApprovedOffer) error
}

type CustomerStoreInterface interface {
	Create(ctx context.Context, document interface{}) (*mongo.InsertOneResult, error)
	FindOne(ctx context.Context, filter interface{}, opt *options.FindOneOptions) (models.Customers, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}) error
	UpdateOneRaw(ctx context.Context, filter interface{}, update interface{}) (*mongo.UpdateResult, error)
}
