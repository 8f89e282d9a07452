package content

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cibnlibrary/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// pageDocument is one page in the cms_pages collection, keyed by page name.
type pageDocument struct {
	Key                models.PageKey `bson:"_id"`
	models.PageContent `bson:",inline"`
}

// MongoStore persists page content in MongoDB.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore creates a store on the cms_pages collection of db.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{coll: db.Collection("cms_pages")}
}

func newContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}

func (s *MongoStore) Page(ctx context.Context, key models.PageKey) (*models.PageContent, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var doc pageDocument
	err := s.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page %s: %w", key, err)
	}
	return &doc.PageContent, nil
}

func (s *MongoStore) Pages(ctx context.Context) (models.CMSPages, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	cursor, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list pages: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []pageDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode pages: %w", err)
	}
	pages := make(models.CMSPages, len(docs))
	for _, doc := range docs {
		if doc.Key.Valid() {
			pages[doc.Key] = doc.PageContent
		}
	}
	return pages, nil
}

func (s *MongoStore) SavePage(ctx context.Context, key models.PageKey, page models.PageContent) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	doc := pageDocument{Key: key, PageContent: page}
	opts := options.Replace().SetUpsert(true)
	if _, err := s.coll.ReplaceOne(ctx, bson.M{"_id": key}, doc, opts); err != nil {
		return fmt.Errorf("failed to save page %s: %w", key, err)
	}
	return nil
}
