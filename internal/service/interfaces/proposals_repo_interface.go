package interfaces

import (
	"context"
	"time"

	"loanservicing/internal/pkg/consts"
	"loanservicing/internal/pkg/store/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProposalRepositoryInterface interface {
	CreateProposal(ctx context.Context, proposal *models.RenegotiationProposals) (primitive.ObjectID, error)
	GetProposalByID(ctx context.Context, proposalID primitive.ObjectID) (*models.RenegotiationProposals, error)
	ListProposalsByLoan(ctx context.Context, loanID primitive.ObjectID) ([]models.RenegotiationProposals, error)
	ResolveProposal(
		ctx context.Context,
		proposalID primitive.ObjectID,
		from consts.ProposalStatus,
		to consts.ProposalStatus,
		resolvedAt time.Time,
	) (bool, error)
	ExpireStaleProposals(ctx context.Context, now time.Time) (int64, error)
}

type ProposalStoreInterface interface {
	Create(ctx context.Context, document interface{}) (*mongo.InsertOneResult, error)
	FindOne(ctx context.Context, filter interface{}, opt *options.FindOneOptions) (models.RenegotiationProposals, error)
	Find(ctx context.Context, filter interface{}) ([]models.RenegotiationProposals, error)
	UpdateOneRaw(ctx context.Context, filter interface{}, update interface{}) (*mongo.UpdateResult, error)
	Update(ctx context.Context, filter interface{}, update interface{}) (*mongo.UpdateResult, error)
}
