package mongodb

import (
	"context"

	"github.com/SscSPs/invoice_generator_app/internal/apperrors"
	"github.com/SscSPs/invoice_generator_app/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_generator_app/internal/core/ports/repositories"
	"github.com/SscSPs/invoice_generator_app/internal/models"
	"github.com/SscSPs/invoice_generator_app/internal/utils/mapping"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoUserRepository struct {
	users *mongo.Collection
}

func newMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{users: db.Collection(usersCollection)}
}

var _ portsrepo.UserRepositoryFacade = (*MongoUserRepository)(nil)

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M, op string) (*domain.User, error) {
	var m models.User
	if err := r.users.FindOne(ctx, filter).Decode(&m); err != nil {
		return nil, translate(err, op)
	}
	u := mapping.ToDomainUser(m)
	return &u, nil
}

func (r *MongoUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": userID}, "failed to find user by id")
}

func (r *MongoUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email}, "failed to find user by email")
}

func (r *MongoUserRepository) FindUserByProviderDetails(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"authProvider": string(provider), "providerUserId": providerUserID}, "failed to find user by provider")
}

func (r *MongoUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	_, err := r.users.InsertOne(ctx, mapping.ToModelUser(user))
	return translate(err, "failed to save user")
}

func (r *MongoUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	res, err := r.users.ReplaceOne(ctx, bson.M{"_id": user.UserID}, mapping.ToModelUser(user))
	if err != nil {
		return translate(err, "failed to update user")
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
