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

type StudyRepository struct {
	Col *mongo.Collection
}

func NewStudyRepository(db *mongo.Database) *StudyRepository {
	return &StudyRepository{Col: db.Collection("flashcard_studies")}
}

func (r *StudyRepository) Create(ctx context.Context, study *models.FlashcardStudy) error {
	if study.ID == "" {
		study.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.Col.InsertOne(ctx, study)
	return err
}

func (r *StudyRepository) FindByID(ctx context.Context, id string) (*models.FlashcardStudy, error) {
	var study models.FlashcardStudy
	if err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&study); err != nil {
		return nil, err
	}
	return &study, nil
}

func (r *StudyRepository) FindByUser(ctx context.Context, userID string) ([]models.FlashcardStudy, error) {
	cur, err := r.Col.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var studies []models.FlashcardStudy
	for cur.Next(ctx) {
		var s models.FlashcardStudy
		if err := cur.Decode(&s); err != nil {
			return nil, err
		}
		studies = append(studies, s)
	}
	return studies, cur.Err()
}

// Complete is the same conditional completion as AttemptRepository.Complete;
// the completed=false filter keeps double submission atomic.
func (r *StudyRepository) Complete(ctx context.Context, id string, summary bson.M) (*models.FlashcardStudy, error) {
	filter := bson.M{"_id": id, "completed": false}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.FlashcardStudy
	err := r.Col.FindOneAndUpdate(ctx, filter, bson.M{"$set": summary}, opts).Decode(&updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *StudyRepository) DeleteByFlashcard(ctx context.Context, flashcardID string) error {
	_, err := r.Col.DeleteMany(ctx, bson.M{"flashcard_id": flashcardID})
	return err
}

func (r *StudyRepository) Count(ctx context.Context) (int64, error) {
	return r.Col.CountDocuments(ctx, bson.M{})
}

func (r *StudyRepository) CountCreatedAfter(ctx context.Context, after time.Time) (int64, error) {
	return r.Col.CountDocuments(ctx, bson.M{"started_at": bson.M{"$gte": after}})
}
