package interfaces

import (
	"context"

	"loanservicing/internal/pkg/consts"
)

// IdentityVerifier checks a national ID against the external verification bureau.
type IdentityVerifier interface {
	VerifyIdentity(ctx context.Context, nationalID string, fullName string) (bool, error)
}

// IntentClassifier labels an inbound customer message with an intent.
type IntentClassifier interface {
	Classify(ctx context.Context, message string) (consts.MessageIntent, error)
}
