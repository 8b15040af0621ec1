package repository

import (
	"context"
	"time"

	"quizmaster-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type FlashcardRepository struct {
	Col *mongo.Collection
}

func NewFlashcardRepository(db *mongo.Database) *FlashcardRepository {
	return &FlashcardRepository{Col: db.Collection("flashcards")}
}

func (r *FlashcardRepository) Create(ctx context.Context, deck *models.Flashcard) error {
	if deck.ID == "" {
		deck.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.Col.InsertOne(ctx, deck)
	return err
}

func (r *FlashcardRepository) FindByID(ctx context.Context, id string) (*models.Flashcard, error) {
	var deck models.Flashcard
	if err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&deck); err != nil {
		return nil, err
	}
	return &deck, nil
}

func (r *FlashcardRepository) FindAll(ctx context.Context) ([]models.Flashcard, error) {
	return r.find(ctx, bson.M{}, nil)
}

func (r *FlashcardRepository) FindPublic(ctx context.Context) ([]models.Flashcard, error) {
	return r.find(ctx, bson.M{"is_public": true}, nil)
}

func (r *FlashcardRepository) FindByCreator(ctx context.Context, userID string) ([]models.Flashcard, error) {
	return r.find(ctx, bson.M{"created_by": userID}, nil)
}

func (r *FlashcardRepository) FindByTag(ctx context.Context, tag string) ([]models.Flashcard, error) {
	return r.find(ctx, bson.M{"tags": tag}, nil)
}

func (r *FlashcardRepository) SearchByTitle(ctx context.Context, keyword string) ([]models.Flashcard, error) {
	filter := bson.M{"title": bson.M{"$regex": primitive.Regex{Pattern: keyword, Options: "i"}}}
	return r.find(ctx, filter, nil)
}

func (r *FlashcardRepository) FindRecent(ctx context.Context, limit int) ([]models.Flashcard, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	return r.find(ctx, bson.M{}, opts)
}

func (r *FlashcardRepository) Count(ctx context.Context) (int64, error) {
	return r.Col.CountDocuments(ctx, bson.M{})
}

func (r *FlashcardRepository) CountCreatedAfter(ctx context.Context, after time.Time) (int64, error) {
	return r.Col.CountDocuments(ctx, bson.M{"created_at": bson.M{"$gte": after}})
}

func (r *FlashcardRepository) Delete(ctx context.Context, id string) error {
	_, err := r.Col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *FlashcardRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Flashcard, error) {
	var cur *mongo.Cursor
	var err error
	if opts != nil {
		cur, err = r.Col.Find(ctx, filter, opts)
	} else {
		cur, err = r.Col.Find(ctx, filter)
	}
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var decks []models.Flashcard
	for cur.Next(ctx) {
		var d models.Flashcard
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		decks = append(decks, d)
	}
	return decks, cur.Err()
}
