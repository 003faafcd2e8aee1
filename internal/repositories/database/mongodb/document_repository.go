package mongodb

import (
	"context"
	"regexp"
	"time"

	"github.com/SscSPs/invoice_generator_app/internal/apperrors"
	"github.com/SscSPs/invoice_generator_app/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_generator_app/internal/core/ports/repositories"
	"github.com/SscSPs/invoice_generator_app/internal/models"
	"github.com/SscSPs/invoice_generator_app/internal/utils/mapping"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"
)

// sortColumns maps API sort fields to stored field paths.
var sortColumns = map[string]string{
	"createdAt":  "createdAt",
	"updatedAt":  "updatedAt",
	"date":       "date",
	"number":     "number",
	"grandTotal": "pricing.grandTotal",
}

type MongoDocumentRepository struct {
	docs *mongo.Collection
}

func newMongoDocumentRepository(db *mongo.Database) *MongoDocumentRepository {
	return &MongoDocumentRepository{docs: db.Collection(documentsCollection)}
}

var _ portsrepo.DocumentRepositoryFacade = (*MongoDocumentRepository)(nil)

func (r *MongoDocumentRepository) findOne(ctx context.Context, filter bson.M) (*domain.Document, error) {
	var rec models.DocumentRecord
	if err := r.docs.FindOne(ctx, filter).Decode(&rec); err != nil {
		return nil, translate(err, "failed to find document")
	}
	doc := mapping.ToDomainDocument(rec)
	return &doc, nil
}

func (r *MongoDocumentRepository) decodeAll(ctx context.Context, cur *mongo.Cursor) ([]domain.Document, error) {
	defer cur.Close(ctx)
	out := []domain.Document{}
	for cur.Next(ctx) {
		var rec models.DocumentRecord
		if err := cur.Decode(&rec); err != nil {
			return nil, translate(err, "failed to decode document")
		}
		out = append(out, mapping.ToDomainDocument(rec))
	}
	return out, translate(cur.Err(), "failed to iterate documents")
}

func (r *MongoDocumentRepository) FindDocumentByID(ctx context.Context, ownerID, documentID string) (*domain.Document, error) {
	return r.findOne(ctx, bson.M{"_id": documentID, "createdBy": ownerID})
}

func (r *MongoDocumentRepository) FindPublicDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	return r.findOne(ctx, bson.M{"_id": documentID})
}

func (r *MongoDocumentRepository) FindDocuments(ctx context.Context, query domain.DocumentQuery) ([]domain.Document, int64, error) {
	query = query.Normalize()
	filter := bson.M{"createdBy": query.OwnerID}
	if query.Kind != "" {
		filter["kind"] = string(query.Kind)
	}
	if query.Status != "" {
		filter["status"] = string(query.Status)
	}

	field, desc := query.SortField()
	column, ok := sortColumns[field]
	if !ok {
		column = "createdAt"
	}
	direction := 1
	if desc {
		direction = -1
	}
	opts := options.Find().
		SetSort(bson.D{{Key: column, Value: direction}, {Key: "_id", Value: 1}}).
		SetSkip(int64(query.Offset())).
		SetLimit(int64(query.Limit))

	var (
		docs  []domain.Document
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cur, err := r.docs.Find(gctx, filter, opts)
		if err != nil {
			return translate(err, "failed to list documents")
		}
		docs, err = r.decodeAll(gctx, cur)
		return err
	})
	g.Go(func() error {
		n, err := r.docs.CountDocuments(gctx, filter)
		total = n
		return translate(err, "failed to count documents")
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return docs, total, nil
}

func (r *MongoDocumentRepository) SearchDocuments(ctx context.Context, ownerID, query string, limit int) ([]domain.Document, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	filter := bson.M{
		"createdBy": ownerID,
		"$or": bson.A{
			bson.M{"number": pattern},
			bson.M{"client.name": pattern},
			bson.M{"client.company": pattern},
			bson.M{"project.name": pattern},
		},
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}, {Key: "createdAt", Value: 1}}).
		SetLimit(int64(limit))
	cur, err := r.docs.Find(ctx, filter, opts)
	if err != nil {
		return nil, translate(err, "failed to search documents")
	}
	return r.decodeAll(ctx, cur)
}

type statusGroup struct {
	Status string               `bson:"_id"`
	Count  int                  `bson:"count"`
	Total  primitive.Decimal128 `bson:"total"`
}

func (r *MongoDocumentRepository) DocumentStats(ctx context.Context, ownerID string) (domain.DocumentStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"createdBy": ownerID}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$status",
			"count": bson.M{"$sum": 1},
			"total": bson.M{"$sum": "$pricing.grandTotal"},
		}}},
	}
	cur, err := r.docs.Aggregate(ctx, pipeline)
	if err != nil {
		return domain.DocumentStats{}, translate(err, "failed to aggregate documents")
	}
	defer cur.Close(ctx)

	var groups []statusGroup
	if err := cur.All(ctx, &groups); err != nil {
		return domain.DocumentStats{}, translate(err, "failed to decode statistics")
	}

	stats := domain.DocumentStats{ByStatus: make(map[domain.DocumentStatus]domain.StatusSummary)}
	for _, g := range groups {
		status := domain.DocumentStatus(g.Status)
		total := mapping.FromDecimal128(g.Total)
		stats.ByStatus[status] = domain.StatusSummary{Count: g.Count, Total: total}
		stats.TotalDocuments += g.Count
		if status == domain.StatusPaid {
			stats.TotalRevenue = total
		}
	}
	return stats, nil
}

func (r *MongoDocumentRepository) FindDocumentByIdempotencyKey(ctx context.Context, ownerID, key string) (*domain.Document, error) {
	if key == "" {
		return nil, apperrors.ErrNotFound
	}
	return r.findOne(ctx, bson.M{"createdBy": ownerID, "idempotencyKey": key})
}

func (r *MongoDocumentRepository) DocumentNumbers(ctx context.Context, ownerID string, kind domain.DocumentKind) ([]string, error) {
	raw, err := r.docs.Distinct(ctx, "number", bson.M{"createdBy": ownerID, "kind": string(kind)})
	if err != nil {
		return nil, translate(err, "failed to list document numbers")
	}
	numbers := make([]string, 0, len(raw))
	for _, v := range raw {
		if n, ok := v.(string); ok {
			numbers = append(numbers, n)
		}
	}
	return numbers, nil
}

func (r *MongoDocumentRepository) SaveDocument(ctx context.Context, doc domain.Document) error {
	_, err := r.docs.InsertOne(ctx, mapping.ToDocumentRecord(doc))
	return translate(err, "failed to save document")
}

func (r *MongoDocumentRepository) UpdateDocument(ctx context.Context, doc domain.Document) error {
	res, err := r.docs.ReplaceOne(ctx, bson.M{"_id": doc.DocumentID, "createdBy": doc.CreatedBy}, mapping.ToDocumentRecord(doc))
	if err != nil {
		return translate(err, "failed to update document")
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *MongoDocumentRepository) UpdateDocumentStatus(ctx context.Context, ownerID, documentID string, from, to domain.DocumentStatus, updatedAt time.Time) error {
	res, err := r.docs.UpdateOne(ctx,
		bson.M{"_id": documentID, "createdBy": ownerID, "status": string(from)},
		bson.M{"$set": bson.M{"status": string(to), "updatedAt": updatedAt, "lastUpdatedBy": ownerID}},
	)
	if err != nil {
		return translate(err, "failed to update document status")
	}
	if res.MatchedCount > 0 {
		return nil
	}
	// Either the document is gone or its status moved on.
	if _, err := r.FindDocumentByID(ctx, ownerID, documentID); err != nil {
		return err
	}
	return apperrors.ErrConflict
}

func (r *MongoDocumentRepository) DeleteDocument(ctx context.Context, ownerID, documentID string) error {
	res, err := r.docs.DeleteOne(ctx, bson.M{"_id": documentID, "createdBy": ownerID})
	if err != nil {
		return translate(err, "failed to delete document")
	}
	if res.DeletedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
