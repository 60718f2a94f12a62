package loan_requests

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

type LoanRequestRepository struct {
	repo interfaces.LoanRequestStoreInterface
}

func NewLoanRequestRepository(client *mongodb.MongoClient) *LoanRequestRepository {
	collection := client.Database.Collection(consts.LoanRequestsCollection)
	repo := repository.NewMongoRepository[models.LoanRequests](collection)
	return &LoanRequestRepository{repo: repo}
}

func NewLoanRequestRepositoryWithInterface(repo interfaces.LoanRequestStoreInterface) *LoanRequestRepository {
	return &LoanRequestRepository{repo: repo}
}

func (r *LoanRequestRepository) CreateRequest(ctx context.Context, request *models.LoanRequests) (primitive.ObjectID, error) {
	result, err := r.repo.Create(ctx, request)
	if err != nil {
		logger.CtxError(ctx, "Failed to create loan request", err,
			slog.String("national_id", request.NationalID))
		return primitive.NilObjectID, err
	}

	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("inserted id is not an ObjectID")
	}
	return id, nil
}

func (r *LoanRequestRepository) GetRequestByID(ctx context.Context, requestID primitive.ObjectID) (*models.LoanRequests, error) {
	filter := bson.M{"_id": requestID}
	request, err := r.repo.FindOne(ctx, filter, options.FindOne())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, consts.ErrorRequestNotFound
		}
		logger.CtxError(ctx, "Error fetching loan request", err, slog.String("request_id", requestID.Hex()))
		return nil, err
	}
	return &request, nil
}

func (r *LoanRequestRepository) ListRequestsByStatus(ctx context.Context, status consts.RequestStatus) ([]models.LoanRequests, error) {
	return r.repo.Find(ctx, bson.M{"status": status})
}

func (r *LoanRequestRepository) ListRequestsByCustomer(ctx context.Context, customerID primitive.ObjectID) ([]models.LoanRequests, error) {
	return r.repo.Find(ctx, bson.M{"customerId": customerID})
}

// TransitionStatus moves a request from one status to another with a
// compare-and-set filter, so two concurrent decisions cannot both win.
// Returns false when the request was not in the expected source status.
func (r *LoanRequestRepository) TransitionStatus(
	ctx context.Context,
	requestID primitive.ObjectID,
	from consts.RequestStatus,
	to consts.RequestStatus,
	reason string,
) (bool, error) {
	now := time.Now().UTC()

	filter := bson.M{"_id": requestID, "status": from}
	set := bson.M{
		"status":    to,
		"updatedAt": now,
	}
	if to == consts.RequestStatusRejected && reason != "" {
		set["rejectionReason"] = reason
	}

	update := bson.M{
		"$set": set,
		"$push": bson.M{"statusHistory": models.StatusChange{
			From:      from,
			To:        to,
			Reason:    reason,
			ChangedAt: now,
		}},
	}

	result, err := r.repo.UpdateOneRaw(ctx, filter, update)
	if err != nil {
		logger.CtxError(ctx, "Failed to transition loan request status", err,
			slog.String("request_id", requestID.Hex()),
			slog.String("from", string(from)),
			slog.String("to", string(to)),
		)
		return false, err
	}
	return result.ModifiedCount > 0, nil
}

func (r *LoanRequestRepository) SetSupplementalRequest(ctx context.Context, requestID primitive.ObjectID, req models.SupplementalRequest) error {
	return r.repo.UpdateOne(ctx, bson.M{"_id": requestID}, bson.M{
		"supplementalRequest": req,
		"updatedAt":           time.Now().UTC(),
	})
}

func (r *LoanRequestRepository) AttachSupplementalDocument(ctx context.Context, requestID primitive.ObjectID, doc models.SupplementalDocument) error {
	return r.repo.UpdateOne(ctx, bson.M{"_id": requestID}, bson.M{
		"supplementalRequest.document": doc,
		"updatedAt":                    time.Now().UTC(),
	})
}
