package mongodb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"macrobox/internal/models"
	"macrobox/internal/repositories/interfaces"
	"macrobox/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type couponRepository struct {
	collection *mongo.Collection
	cache      CacheService
}

func NewCouponRepository(db *mongo.Database, cache CacheService) interfaces.CouponRepository {
	return &couponRepository{
		collection: db.Collection("coupons"),
		cache:      cache,
	}
}

func (r *couponRepository) Create(ctx context.Context, coupon *models.Coupon) error {
	if coupon.ID.IsZero() {
		coupon.ID = primitive.NewObjectID()
	}
	coupon.Code = strings.ToUpper(strings.TrimSpace(coupon.Code))
	coupon.CreatedAt = time.Now()
	coupon.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, coupon)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("coupon code already exists")
		}
		return fmt.Errorf("failed to create coupon: %w", err)
	}

	return nil
}

func (r *couponRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Coupon, error) {
	var coupon models.Coupon
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&coupon)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("coupon not found")
		}
		return nil, fmt.Errorf("failed to get coupon: %w", err)
	}

	return &coupon, nil
}

func (r *couponRepository) GetByCode(ctx context.Context, code string) (*models.Coupon, error) {
	code = strings.ToUpper(strings.TrimSpace(code))

	// Try cache first
	cacheKey := couponCacheKey(code)
	var cached models.Coupon
	if err := r.cache.Get(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	var coupon models.Coupon
	err := r.collection.FindOne(ctx, bson.M{"code": code}).Decode(&coupon)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("coupon not found")
		}
		return nil, fmt.Errorf("failed to get coupon: %w", err)
	}

	r.cache.Set(ctx, cacheKey, &coupon, utils.CouponCacheTTL)

	return &coupon, nil
}

func (r *couponRepository) Update(ctx context.Context, coupon *models.Coupon) error {
	coupon.Code = strings.ToUpper(strings.TrimSpace(coupon.Code))
	coupon.UpdatedAt = time.Now()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": coupon.ID}, coupon)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("coupon code already exists")
		}
		return fmt.Errorf("failed to update coupon: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("coupon not found")
	}

	r.cache.Delete(ctx, couponCacheKey(coupon.Code))

	return nil
}

func (r *couponRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	coupon, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete coupon: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("coupon not found")
	}

	r.cache.Delete(ctx, couponCacheKey(coupon.Code))

	return nil
}

func (r *couponRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Coupon, int64, error) {
	filter := bson.M{}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count coupons: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list coupons: %w", err)
	}
	defer cursor.Close(ctx)

	var coupons []*models.Coupon
	if err := cursor.All(ctx, &coupons); err != nil {
		return nil, 0, fmt.Errorf("failed to decode coupons: %w", err)
	}

	return coupons, total, nil
}

func (r *couponRepository) ListActive(ctx context.Context) ([]*models.Coupon, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"is_active": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list active coupons: %w", err)
	}
	defer cursor.Close(ctx)

	var coupons []*models.Coupon
	if err := cursor.All(ctx, &coupons); err != nil {
		return nil, fmt.Errorf("failed to decode coupons: %w", err)
	}

	return coupons, nil
}

func (r *couponRepository) SetActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	coupon, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	_, err = r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"is_active": active, "updated_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to update coupon status: %w", err)
	}

	r.cache.Delete(ctx, couponCacheKey(coupon.Code))

	return nil
}

// RedeemOnce records one use of the coupon by the given user. The usage
// limits are re-asserted inside the update filters, so two concurrent
// redeemers racing for the last remaining use cannot both succeed: the
// loser matches zero documents and gets ErrCouponExhausted.
func (r *couponRepository) RedeemOnce(ctx context.Context, couponID, userID primitive.ObjectID) error {
	coupon, err := r.GetByID(ctx, couponID)
	if err != nil {
		return err
	}

	perUser := coupon.UsageLimitPerUser
	if perUser <= 0 {
		perUser = utils.DefaultUsageLimitPerUser
	}

	totalLimitClause := bson.A{
		bson.M{"usage_limit_total": 0},
		bson.M{"$expr": bson.M{"$lt": bson.A{"$used_count", "$usage_limit_total"}}},
	}

	// First attempt: the user already has a usage entry below their
	// per-user limit.
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{
			"_id":       couponID,
			"is_active": true,
			"used_by": bson.M{"$elemMatch": bson.M{
				"user":  userID,
				"count": bson.M{"$lt": perUser},
			}},
			"$or": totalLimitClause,
		},
		bson.M{
			"$inc": bson.M{"used_count": 1, "used_by.$.count": 1},
			"$set": bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to redeem coupon: %w", err)
	}

	if result.ModifiedCount == 0 {
		// Second attempt: first use by this user.
		result, err = r.collection.UpdateOne(
			ctx,
			bson.M{
				"_id":          couponID,
				"is_active":    true,
				"used_by.user": bson.M{"$ne": userID},
				"$or":          totalLimitClause,
			},
			bson.M{
				"$inc":  bson.M{"used_count": 1},
				"$push": bson.M{"used_by": models.CouponUsage{User: userID, Count: 1}},
				"$set":  bson.M{"updated_at": time.Now()},
			},
		)
		if err != nil {
			return fmt.Errorf("failed to redeem coupon: %w", err)
		}
		if result.ModifiedCount == 0 {
			return interfaces.ErrCouponExhausted
		}
	}

	// Deactivate once the total limit is reached.
	if coupon.UsageLimitTotal > 0 {
		_, err = r.collection.UpdateOne(
			ctx,
			bson.M{
				"_id":   couponID,
				"$expr": bson.M{"$gte": bson.A{"$used_count", "$usage_limit_total"}},
			},
			bson.M{"$set": bson.M{"is_active": false, "updated_at": time.Now()}},
		)
		if err != nil {
			return fmt.Errorf("failed to deactivate exhausted coupon: %w", err)
		}
	}

	r.cache.Delete(ctx, couponCacheKey(coupon.Code))

	return nil
}

func couponCacheKey(code string) string {
	return "coupon:code:" + code
}
