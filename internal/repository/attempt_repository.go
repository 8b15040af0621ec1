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

type AttemptRepository struct {
	Col *mongo.Collection
}

func NewAttemptRepository(db *mongo.Database) *AttemptRepository {
	return &AttemptRepository{Col: db.Collection("quiz_attempts")}
}

func (r *AttemptRepository) Create(ctx context.Context, attempt *models.QuizAttempt) error {
	if attempt.ID == "" {
		attempt.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.Col.InsertOne(ctx, attempt)
	return err
}

func (r *AttemptRepository) FindByID(ctx context.Context, id string) (*models.QuizAttempt, error) {
	var attempt models.QuizAttempt
	if err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&attempt); err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *AttemptRepository) FindByUser(ctx context.Context, userID string) ([]models.QuizAttempt, error) {
	cur, err := r.Col.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var attempts []models.QuizAttempt
	for cur.Next(ctx) {
		var a models.QuizAttempt
		if err := cur.Decode(&a); err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}
	return attempts, cur.Err()
}

// Complete transitions the attempt to completed and writes the scorecard in
// one conditional update. The completed=false filter makes the check-and-set
// atomic: when two submissions race, exactly one matches and the loser gets
// mongo.ErrNoDocuments.
func (r *AttemptRepository) Complete(ctx context.Context, id string, card bson.M) (*models.QuizAttempt, error) {
	filter := bson.M{"_id": id, "completed": false}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.QuizAttempt
	err := r.Col.FindOneAndUpdate(ctx, filter, bson.M{"$set": card}, opts).Decode(&updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *AttemptRepository) DeleteByQuiz(ctx context.Context, quizID string) error {
	_, err := r.Col.DeleteMany(ctx, bson.M{"quiz_id": quizID})
	return err
}

func (r *AttemptRepository) Count(ctx context.Context) (int64, error) {
	return r.Col.CountDocuments(ctx, bson.M{})
}

func (r *AttemptRepository) CountCreatedAfter(ctx context.Context, after time.Time) (int64, error) {
	return r.Col.CountDocuments(ctx, bson.M{"started_at": bson.M{"$gte": after}})
}
