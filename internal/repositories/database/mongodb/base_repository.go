// Package mongodb implements the repositories on a MongoDB database.
package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/invoice_generator_app/internal/apperrors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	documentsCollection = "invoices"
	usersCollection     = "users"
)

// translate maps driver errors onto the apperrors sentinels.
func translate(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return apperrors.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return apperrors.ErrDuplicate
	case mongo.IsTimeout(err), mongo.IsNetworkError(err):
		return fmt.Errorf("%s: %w: %v", op, apperrors.ErrUnavailable, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

type healthChecker struct {
	client *mongo.Client
}

func (h healthChecker) Ping(ctx context.Context) error {
	return h.client.Ping(ctx, readpref.Primary())
}

func (h healthChecker) Name() string { return "mongodb" }
