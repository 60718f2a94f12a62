package proposals

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

type ProposalRepository struct {
	repo interfaces.ProposalStoreInterface
}

func NewProposalRepository(client *mongodb.MongoClient) *ProposalRepository {
	collection := client.Database.Collection(consts.ProposalsCollection)
	repo := repository.NewMongoRepository[models.RenegotiationProposals](collection)
	return &ProposalRepository{repo: repo}
}

func NewProposalRepositoryWithInterface(repo interfaces.ProposalStoreInterface) *ProposalRepository {
	return &ProposalRepository{repo: repo}
}

func (r *ProposalRepository) CreateProposal(ctx context.Context, proposal *models.RenegotiationProposals) (primitive.ObjectID, error) {
	result, err := r.repo.Create(ctx, proposal)
	if err != nil {
		logger.CtxError(ctx, "Failed to create renegotiation proposal", err,
			slog.String("loan_id", proposal.LoanID.Hex()))
		return primitive.NilObjectID, err
	}

	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("inserted id is not an ObjectID")
	}
	return id, nil
}

func (r *ProposalRepository) GetProposalByID(ctx context.Context, proposalID primitive.ObjectID) (*models.RenegotiationProposals, error) {
	proposal, err := r.repo.FindOne(ctx, bson.M{"_id": proposalID}, options.FindOne())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, consts.ErrorProposalNotFound
		}
		logger.CtxError(ctx, "Error fetching proposal", err, slog.String("proposal_id", proposalID.Hex()))
		return nil, err
	}
	return &proposal, nil
}

func (r *ProposalRepository) ListProposalsByLoan(ctx context.Context, loanID primitive.ObjectID) ([]models.RenegotiationProposals, error) {
	return r.repo.Find(ctx, bson.M{"loanId": loanID})
}

// ResolveProposal moves a proposal out of one status with a compare-and-set
// filter. Returns false when the proposal was not in the expected status.
func (r *ProposalRepository) ResolveProposal(
	ctx context.Context,
	proposalID primitive.ObjectID,
	from consts.ProposalStatus,
	to consts.ProposalStatus,
	resolvedAt time.Time,
) (bool, error) {
	filter := bson.M{"_id": proposalID, "status": from}
	update := bson.M{"$set": bson.M{
		"status":     to,
		"resolvedAt": resolvedAt,
	}}

	result, err := r.repo.UpdateOneRaw(ctx, filter, update)
	if err != nil {
		logger.CtxError(ctx, "Failed to resolve proposal", err,
			slog.String("proposal_id", proposalID.Hex()),
			slog.String("to", string(to)),
		)
		return false, err
	}
	return result.ModifiedCount > 0, nil
}

// ExpireStaleProposals marks every pending proposal past its expiry window.
func (r *ProposalRepository) ExpireStaleProposals(ctx context.Context, now time.Time) (int64, error) {
	filter := bson.M{
		"status":    consts.ProposalStatusPending,
		"expiresAt": bson.M{"$lt": now},
	}
	update := bson.M{"$set": bson.M{
		"status":     consts.ProposalStatusExpired,
		"resolvedAt": now,
	}}

	result, err := r.repo.Update(ctx, filter, update)
	if err != nil {
		logger.CtxError(ctx, "Failed to expire stale proposals", err)
		return 0, err
	}
	return result.ModifiedCount, nil
}
