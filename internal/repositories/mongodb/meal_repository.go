package mongodb

import (
	"context"
	"fmt"
	"time"

	"macrobox/internal/models"
	"macrobox/internal/repositories/interfaces"
	"macrobox/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mealRepository struct {
	collection *mongo.Collection
}

func NewMealRepository(db *mongo.Database) interfaces.MealRepository {
	return &mealRepository{
		collection: db.Collection("meals"),
	}
}

func (r *mealRepository) Create(ctx context.Context, meal *models.Meal) error {
	if meal.ID.IsZero() {
		meal.ID = primitive.NewObjectID()
	}
	meal.CreatedAt = time.Now()
	meal.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, meal)
	if err != nil {
		return fmt.Errorf("failed to create meal: %w", err)
	}

	return nil
}

func (r *mealRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Meal, error) {
	var meal models.Meal
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&meal)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("meal not found")
		}
		return nil, fmt.Errorf("failed to get meal: %w", err)
	}

	return &meal, nil
}

func (r *mealRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.Meal, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to get meals: %w", err)
	}
	defer cursor.Close(ctx)

	var meals []*models.Meal
	if err := cursor.All(ctx, &meals); err != nil {
		return nil, fmt.Errorf("failed to decode meals: %w", err)
	}

	return meals, nil
}

func (r *mealRepository) Update(ctx context.Context, meal *models.Meal) error {
	meal.UpdatedAt = time.Now()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": meal.ID}, meal)
	if err != nil {
		return fmt.Errorf("failed to update meal: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("meal not found")
	}

	return nil
}

func (r *mealRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete meal: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("meal not found")
	}

	return nil
}

func (r *mealRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Meal, int64, error) {
	filter := bson.M{}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count meals: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list meals: %w", err)
	}
	defer cursor.Close(ctx)

	var meals []*models.Meal
	if err := cursor.All(ctx, &meals); err != nil {
		return nil, 0, fmt.Errorf("failed to decode meals: %w", err)
	}

	return meals, total, nil
}

func (r *mealRepository) ListFeatured(ctx context.Context) ([]*models.Meal, error) {
	opts := options.Find().SetSort(bson.D{{Key: "featured_order", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"is_featured": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list featured meals: %w", err)
	}
	defer cursor.Close(ctx)

	var meals []*models.Meal
	if err := cursor.All(ctx, &meals); err != nil {
		return nil, fmt.Errorf("failed to decode meals: %w", err)
	}

	return meals, nil
}
