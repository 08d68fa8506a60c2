// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taibuivan/bookshelf/internal/platform/dberr"
)

// CollectionBooks is the MongoDB collection holding book documents.
const CollectionBooks = "books"

// bookDocument is the persisted document shape.
type bookDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Title        string             `bson:"title"`
	Comments     []string           `bson:"comments"`
	CommentCount int                `bson:"commentcount"`
}

func (doc *bookDocument) toBook() *Book {
	comments := doc.Comments
	if comments == nil {
		comments = []string{}
	}
	return &Book{ID: doc.ID.Hex(), Title: doc.Title, Comments: comments, CommentCount: doc.CommentCount}
}

// MongoRepository implements [Repository] on a MongoDB collection.
type MongoRepository struct {
	collection *mongo.Collection
}

// NewMongoRepository creates a repository over the books collection of db.
func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{collection: db.Collection(CollectionBooks)}
}

// ListBooks returns every book projected to id, title and count, in natural order.
func (repository *MongoRepository) ListBooks(ctx context.Context) ([]*Summary, error) {
	projection := options.Find().SetProjection(bson.D{
		{Key: "_id", Value: 1},
		{Key: "title", Value: 1},
		{Key: "commentcount", Value: 1},
	})

	cursor, err := repository.collection.Find(ctx, bson.D{}, projection)
	if err != nil {
		return nil, dberr.Wrap(err, "list_books")
	}
	defer cursor.Close(ctx)

	summaries := []*Summary{}
	for cursor.Next(ctx) {
		var doc bookDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, dberr.Wrap(err, "decode_book_summary")
		}
		summaries = append(summaries, &Summary{ID: doc.ID.Hex(), Title: doc.Title, CommentCount: doc.CommentCount})
	}

	if err := cursor.Err(); err != nil {
		return nil, dberr.Wrap(err, "list_books")
	}

	return summaries, nil
}

// CreateBook inserts a document with an explicit empty log and zero count.
func (repository *MongoRepository) CreateBook(ctx context.Context, title string) (*Book, error) {
	doc := bookDocument{ID: primitive.NewObjectID(), Title: title, Comments: []string{}, CommentCount: 0}

	if _, err := repository.collection.InsertOne(ctx, doc); err != nil {
		return nil, dberr.Wrap(err, "create_book")
	}

	return doc.toBook(), nil
}

// GetBook finds a document by ObjectID. Ids that are not 24-hex ObjectIDs are absent.
func (repository *MongoRepository) GetBook(ctx context.Context, id string) (*Book, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var doc bookDocument
	err = repository.collection.FindOne(ctx, bson.D{{Key: "_id", Value: objectID}}).Decode(&doc)
	return decoded(&doc, err, "get_book")
}

// AppendComment pushes the comment and increments the count in one atomic update.
func (repository *MongoRepository) AppendComment(ctx context.Context, id, comment string) (*Book, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	update := bson.D{
		{Key: "$push", Value: bson.D{{Key: "comments", Value: comment}}},
		{Key: "$inc", Value: bson.D{{Key: "commentcount", Value: 1}}},
	}
	after := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc bookDocument
	err = repository.collection.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: objectID}}, update, after).Decode(&doc)
	return decoded(&doc, err, "append_comment")
}

// DeleteBook removes one document and reports whether it existed.
func (repository *MongoRepository) DeleteBook(ctx context.Context, id string) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	result, err := repository.collection.DeleteOne(ctx, bson.D{{Key: "_id", Value: objectID}})
	if err != nil {
		return false, dberr.Wrap(err, "delete_book")
	}

	return result.DeletedCount > 0, nil
}

// DeleteAllBooks removes every document and returns the count.
func (repository *MongoRepository) DeleteAllBooks(ctx context.Context) (int64, error) {
	result, err := repository.collection.DeleteMany(ctx, bson.D{})
	if err != nil {
		return 0, dberr.Wrap(err, "delete_all_books")
	}

	return result.DeletedCount, nil
}

// decoded converts a single-document result into the repository contract.
func decoded(doc *bookDocument, err error, action string) (*Book, error) {
	if dberr.IsNotFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	return doc.toBook(), nil
}
