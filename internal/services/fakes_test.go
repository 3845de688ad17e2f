package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"macrobox/internal/models"
	"macrobox/internal/repositories/interfaces"
	"macrobox/internal/utils"
	"macrobox/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testLogger() *logger.Logger {
	log, err := logger.NewLogger(&logger.Config{
		Level:  "error",
		Format: "text",
		Output: "stdout",
	})
	if err != nil {
		panic(err)
	}
	return log
}

// fakeCouponRepo mirrors the conditional-update semantics of the real
// repository in memory.
type fakeCouponRepo struct {
	mu      sync.Mutex
	coupons map[primitive.ObjectID]*models.Coupon
}

func newFakeCouponRepo(coupons ...*models.Coupon) *fakeCouponRepo {
	repo := &fakeCouponRepo{coupons: make(map[primitive.ObjectID]*models.Coupon)}
	for _, c := range coupons {
		if c.ID.IsZero() {
			c.ID = primitive.NewObjectID()
		}
		repo.coupons[c.ID] = c
	}
	return repo
}

func (r *fakeCouponRepo) Create(ctx context.Context, coupon *models.Coupon) error {
	if coupon.ID.IsZero() {
		coupon.ID = primitive.NewObjectID()
	}
	for _, c := range r.coupons {
		if c.Code == coupon.Code {
			return fmt.Errorf("coupon code already exists")
		}
	}
	r.coupons[coupon.ID] = coupon
	return nil
}

func (r *fakeCouponRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Coupon, error) {
	if c, ok := r.coupons[id]; ok {
		return c, nil
	}
	return nil, errors.New("coupon not found")
}

func (r *fakeCouponRepo) GetByCode(ctx context.Context, code string) (*models.Coupon, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, c := range r.coupons {
		if c.Code == code {
			return c, nil
		}
	}
	return nil, errors.New("coupon not found")
}

func (r *fakeCouponRepo) Update(ctx context.Context, coupon *models.Coupon) error {
	if _, ok := r.coupons[coupon.ID]; !ok {
		return errors.New("coupon not found")
	}
	r.coupons[coupon.ID] = coupon
	return nil
}

func (r *fakeCouponRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := r.coupons[id]; !ok {
		return errors.New("coupon not found")
	}
	delete(r.coupons, id)
	return nil
}

func (r *fakeCouponRepo) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Coupon, int64, error) {
	var out []*models.Coupon
	for _, c := range r.coupons {
		out = append(out, c)
	}
	return out, int64(len(out)), nil
}

func (r *fakeCouponRepo) ListActive(ctx context.Context) ([]*models.Coupon, error) {
	var out []*models.Coupon
	for _, c := range r.coupons {
		if c.IsActive {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCouponRepo) SetActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	c, ok := r.coupons[id]
	if !ok {
		return errors.New("coupon not found")
	}
	c.IsActive = active
	return nil
}

func (r *fakeCouponRepo) RedeemOnce(ctx context.Context, couponID, userID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.coupons[couponID]
	if !ok {
		return errors.New("coupon not found")
	}
	if !c.IsActive {
		return interfaces.ErrCouponExhausted
	}
	if c.UsageLimitTotal > 0 && c.UsedCount >= c.UsageLimitTotal {
		return interfaces.ErrCouponExhausted
	}
	perUser := c.UsageLimitPerUser
	if perUser <= 0 {
		perUser = utils.DefaultUsageLimitPerUser
	}
	if c.UsedTimesBy(userID) >= perUser {
		return interfaces.ErrCouponExhausted
	}

	c.UsedCount++
	found := false
	for i := range c.UsedBy {
		if c.UsedBy[i].User == userID {
			c.UsedBy[i].Count++
			found = true
			break
		}
	}
	if !found {
		c.UsedBy = append(c.UsedBy, models.CouponUsage{User: userID, Count: 1})
	}
	if c.UsageLimitTotal > 0 && c.UsedCount >= c.UsageLimitTotal {
		c.IsActive = false
	}
	return nil
}

type fakeOrderRepo struct {
	orders map[primitive.ObjectID]*models.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[primitive.ObjectID]*models.Order)}
}

func (r *fakeOrderRepo) Create(ctx context.Context, order *models.Order) error {
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	order.CreatedAt = time.Now()
	order.UpdatedAt = time.Now()
	stored := *order
	r.orders[order.ID] = &stored
	return nil
}

func (r *fakeOrderRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	if o, ok := r.orders[id]; ok {
		copied := *o
		return &copied, nil
	}
	return nil, errors.New("order not found")
}

func (r *fakeOrderRepo) Update(ctx context.Context, order *models.Order) error {
	if _, ok := r.orders[order.ID]; !ok {
		return errors.New("order not found")
	}
	order.UpdatedAt = time.Now()
	stored := *order
	r.orders[order.ID] = &stored
	return nil
}

func (r *fakeOrderRepo) ListByUser(ctx context.Context, userID primitive.ObjectID, limit int64) ([]*models.Order, error) {
	var out []*models.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			copied := *o
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Order, int64, error) {
	var out []*models.Order
	for _, o := range r.orders {
		copied := *o
		out = append(out, &copied)
	}
	return out, int64(len(out)), nil
}

type fakeMealRepo struct {
	meals map[primitive.ObjectID]*models.Meal
}

func newFakeMealRepo(meals ...*models.Meal) *fakeMealRepo {
	repo := &fakeMealRepo{meals: make(map[primitive.ObjectID]*models.Meal)}
	for _, m := range meals {
		if m.ID.IsZero() {
			m.ID = primitive.NewObjectID()
		}
		repo.meals[m.ID] = m
	}
	return repo
}

func (r *fakeMealRepo) Create(ctx context.Context, meal *models.Meal) error {
	if meal.ID.IsZero() {
		meal.ID = primitive.NewObjectID()
	}
	r.meals[meal.ID] = meal
	return nil
}

func (r *fakeMealRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Meal, error) {
	if m, ok := r.meals[id]; ok {
		return m, nil
	}
	return nil, errors.New("meal not found")
}

func (r *fakeMealRepo) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.Meal, error) {
	var out []*models.Meal
	for _, id := range ids {
		if m, ok := r.meals[id]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMealRepo) Update(ctx context.Context, meal *models.Meal) error {
	r.meals[meal.ID] = meal
	return nil
}

func (r *fakeMealRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(r.meals, id)
	return nil
}

func (r *fakeMealRepo) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Meal, int64, error) {
	var out []*models.Meal
	for _, m := range r.meals {
		out = append(out, m)
	}
	return out, int64(len(out)), nil
}

func (r *fakeMealRepo) ListFeatured(ctx context.Context) ([]*models.Meal, error) {
	var out []*models.Meal
	for _, m := range r.meals {
		if m.IsFeatured {
			out = append(out, m)
		}
	}
	return out, nil
}

// fakeGateway accepts exactly one signature value and can be told to
// fail order creation.
type fakeGateway struct {
	orderID     string
	validSig    string
	failNext    bool
	created     int
	lastMinor   int64
	lastReceipt string
}

func (g *fakeGateway) Provider() string { return "fake" }
func (g *fakeGateway) KeyID() string    { return "key_test" }

func (g *fakeGateway) CreateOrder(ctx context.Context, amountMinorUnits int64, currency, receipt string) (string, error) {
	if g.failNext {
		return "", errors.New("gateway down")
	}
	g.created++
	g.lastMinor = amountMinorUnits
	g.lastReceipt = receipt
	return g.orderID, nil
}

func (g *fakeGateway) VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) bool {
	return signature == g.validSig
}
