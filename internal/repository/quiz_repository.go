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

type QuizRepository struct {
	Col *mongo.Collection
}

func NewQuizRepository(db *mongo.Database) *QuizRepository {
	return &QuizRepository{Col: db.Collection("quizzes")}
}

func (r *QuizRepository) Create(ctx context.Context, quiz *models.Quiz) error {
	if quiz.ID == "" {
		quiz.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.Col.InsertOne(ctx, quiz)
	return err
}

func (r *QuizRepository) FindByID(ctx context.Context, id string) (*models.Quiz, error) {
	var quiz models.Quiz
	if err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&quiz); err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *QuizRepository) FindAll(ctx context.Context) ([]models.Quiz, error) {
	return r.find(ctx, bson.M{}, nil)
}

func (r *QuizRepository) FindPublic(ctx context.Context) ([]models.Quiz, error) {
	return r.find(ctx, bson.M{"is_public": true}, nil)
}

func (r *QuizRepository) FindByCreator(ctx context.Context, userID string) ([]models.Quiz, error) {
	return r.find(ctx, bson.M{"created_by": userID}, nil)
}

func (r *QuizRepository) FindByTag(ctx context.Context, tag string) ([]models.Quiz, error) {
	return r.find(ctx, bson.M{"tags": tag}, nil)
}

// SearchByTitle matches the keyword anywhere in the title, case-insensitive.
func (r *QuizRepository) SearchByTitle(ctx context.Context, keyword string) ([]models.Quiz, error) {
	filter := bson.M{"title": bson.M{"$regex": primitive.Regex{Pattern: keyword, Options: "i"}}}
	return r.find(ctx, filter, nil)
}

// FindRecent returns the newest quizzes by creation time.
func (r *QuizRepository) FindRecent(ctx context.Context, limit int) ([]models.Quiz, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	return r.find(ctx, bson.M{}, opts)
}

func (r *QuizRepository) Count(ctx context.Context) (int64, error) {
	return r.Col.CountDocuments(ctx, bson.M{})
}

func (r *QuizRepository) CountCreatedAfter(ctx context.Context, after time.Time) (int64, error) {
	return r.Col.CountDocuments(ctx, bson.M{"created_at": bson.M{"$gte": after}})
}

func (r *QuizRepository) Delete(ctx context.Context, id string) error {
	_, err := r.Col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *QuizRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Quiz, error) {
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

	var quizzes []models.Quiz
	for cur.Next(ctx) {
		var q models.Quiz
		if err := cur.Decode(&q); err != nil {
			return nil, err
		}
		quizzes = append(quizzes, q)
	}
	return quizzes, cur.Err()
}
