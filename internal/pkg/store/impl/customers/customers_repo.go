package customers

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

type CustomerRepository struct {
	repo interfaces.CustomerStoreInterface
}

func NewCustomerRepository(client *mongodb.MongoClient) *CustomerRepository {
	collection := client.Database.Collection(consts.CustomersCollection)
	repo := repository.NewMongoRepository[models.Customers](collection)
	return &CustomerRepository{repo: repo}
}

func NewCustomerRepositoryWithInterface(repo interfaces.CustomerStoreInterface) *CustomerRepository {
	return &CustomerRepository{repo: repo}
}

func (r *CustomerRepository) CreateCustomer(ctx context.Context, customer *models.Customers) (primitive.ObjectID, error) {
	result, err := r.repo.Create(ctx, customer)
	if err != nil {
		logger.CtxError(ctx, "Failed to create customer", err,
			slog.String("national_id", customer.NationalID))
		return primitive.NilObjectID, err
	}

	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("inserted id is not an ObjectID")
	}
	return id, nil
}

func (r *CustomerRepository) GetCustomerByID(ctx context.Context, customerID primitive.ObjectID) (*models.Customers, error) {
	return r.findOne(ctx, bson.M{"_id": customerID})
}

func (r *CustomerRepository) GetCustomerByNationalID(ctx context.Context, nationalID string) (*models.Customers, error) {
	return r.findOne(ctx, bson.M{"nationalId": nationalID})
}

func (r *CustomerRepository) GetCustomerByPhone(ctx context.Context, phone string) (*models.Customers, error) {
	return r.findOne(ctx, bson.M{"phone": phone})
}

func (r *CustomerRepository) findOne(ctx context.Context, filter bson.M) (*models.Customers, error) {
	customer, err := r.repo.FindOne(ctx, filter, options.FindOne())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, consts.ErrorCustomerNotFound
		}
		logger.CtxError(ctx, "Error fetching customer", err)
		return nil, err
	}
	return &customer, nil
}

func (r *CustomerRepository) SetIdentityVerified(ctx context.Context, customerID primitive.ObjectID, verified bool) error {
	return r.repo.UpdateOne(ctx, bson.M{"_id": customerID}, bson.M{
		"identityVerified": verified,
		"updatedAt":        time.Now().UTC(),
	})
}

func (r *CustomerRepository) SetScore(ctx context.Context, customerID primitive.ObjectID, score int32) error {
	return r.repo.UpdateOne(ctx, bson.M{"_id": customerID}, bson.M{
		"score":     score,
		"updatedAt": time.Now().UTC(),
	})
}

func (r *CustomerRepository) SetPreApprovedOffer(ctx context.Context, customerID primitive.ObjectID, offer *models.PreApprovedOffer) error {
	return r.repo.UpdateOne(ctx, bson.M{"_id": customerID}, bson.M{
		"preApprovedOffer": offer,
		"updatedAt":        time.Now().UTC(),
	})
}
