package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestValidityWindowPrefersValidTo(t *testing.T) {
	validTo := time.Date(2026, 8, 31, 0, 0, 0, 0, time.Local)
	expires := time.Date(2026, 8, 15, 12, 0, 0, 0, time.Local)
	c := &Coupon{ValidTo: &validTo, ExpiresAt: &expires}

	_, to := c.ValidityWindow()
	require.NotNil(t, to)
	assert.Equal(t, time.Date(2026, 8, 31, 23, 59, 59, 999000000, time.Local), *to)
}

func TestValidityWindowFallsBackToExpiresAt(t *testing.T) {
	expires := time.Date(2026, 8, 15, 12, 0, 0, 0, time.Local)
	c := &Coupon{ExpiresAt: &expires}

	_, to := c.ValidityWindow()
	require.NotNil(t, to)
	assert.Equal(t, expires, *to)
}

func TestValidityWindowUnbounded(t *testing.T) {
	c := &Coupon{}

	from, to := c.ValidityWindow()
	assert.Nil(t, from)
	assert.Nil(t, to)
}

func TestUsedTimesBy(t *testing.T) {
	userA := primitive.NewObjectID()
	userB := primitive.NewObjectID()
	c := &Coupon{UsedBy: []CouponUsage{{User: userA, Count: 2}}}

	assert.Equal(t, 2, c.UsedTimesBy(userA))
	assert.Equal(t, 0, c.UsedTimesBy(userB))
}
