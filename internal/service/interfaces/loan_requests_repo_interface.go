package interfaces

import (
	"context"

	"loanservicing/internal/pkg/consts"
	"loanservicing/internal/pkg/store/models"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LoanRequestRepositoryInterface interface {
	CreateRequest(ctx context.Context, request *models.LoanRequests) (primitive.ObjectID, error)
	GetRequestByID(ctx context.Context, requestID primitive.ObjectID) (*models.LoanRequests, error)
	ListRequestsByStatus(ctx context.Context, status consts.RequestStatus) ([]models.LoanRequests, error)
	ListRequestsByCustomer(ctx context.Context, customerID primitive.ObjectID) ([]models.LoanRequests, error)
	TransitionStatus(
		ctx context.Context,
		requestID primitive.ObjectID,
		from consts.RequestStatus,
		to consts.RequestStatus,
		reason string,
	) (bool, error)
	SetSupplementalRequest(ctx context.Context, requestID primitive.ObjectID, req models.SupplementalRequest) error
	AttachSupplementalDocument(ctx context.Context, requestID primitive.ObjectID, doc models.SupplementalDocument) error
}

type LoanRequestStoreInterface interface {
	Create(ctx context.Context, document interface{}) (*mongo.InsertOneResult, error)
	FindOne(ctx context.Context, filter interface{}, opt *options.FindOneOptions) (models.LoanRequests, error)
	Find(ctx context.Context, filter interface{}) ([]models.LoanRequests, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}) error
	UpdateOneRaw(ctx context.Context, filter interface{}, update interface{}) (*mongo.UpdateResult, error)
}
