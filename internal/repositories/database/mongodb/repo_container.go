package mongodb

import (
	portsrepo "github.com/SscSPs/invoice_generator_app/internal/core/ports/repositories"
	"go.mongodb.org/mongo-driver/mongo"
)

// NewRepositoryProvider builds the repositories on db. Indexes are created by
// the migrations in migrations/mongodb.
func NewRepositoryProvider(db *mongo.Database) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		DocumentRepo: newMongoDocumentRepository(db),
		UserRepo:     newMongoUserRepository(db),
		Health:       healthChecker{client: db.Client()},
	}
}
