package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

type MealTime string

const (
	MealTimeBreakfast MealTime = "breakfast"
	MealTimeLunch     MealTime = "lunch"
	MealTimeSnack     MealTime = "snack"
	MealTimeDinner    MealTime = "dinner"
)

type BodyMetrics struct {
	Height     *float64 `json:"height,omitempty" bson:"height,omitempty"`
	Weight     *float64 `json:"weight,omitempty" bson:"weight,omitempty"`
	Age        *int     `json:"age,omitempty" bson:"age,omitempty"`
	Gender     string   `json:"gender,omitempty" bson:"gender,omitempty"`
	Activity   string   `json:"activity,omitempty" bson:"activity,omitempty"`
	GoalWeight *float64 `json:"goal_weight,omitempty" bson:"goal_weight,omitempty"`
	Locked     bool     `json:"locked" bson:"locked"`
}

type DayPlanItem struct {
	Meal  primitive.ObjectID `json:"meal" bson:"meal" validate:"required"`
	Times []MealTime         `json:"times" bson:"times" validate:"required,min=1"`
}

type DayPlan struct {
	Date  time.Time     `json:"date" bson:"date" validate:"required"`
	Items []DayPlanItem `json:"items" bson:"items"`
}

type User struct {
	ID       primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name     string             `json:"name" bson:"name" validate:"required"`
	Email    string             `json:"email" bson:"email" validate:"required,email"`
	Password string             `json:"-" bson:"password"`
	Role     UserRole           `json:"role" bson:"role"`

	IsDeactivated bool       `json:"is_deactivated" bson:"is_deactivated"`
	DeactivatedAt *time.Time `json:"deactivated_at,omitempty" bson:"deactivated_at,omitempty"`
	IsFrozen      bool       `json:"is_frozen" bson:"is_frozen"`
	FrozenAt      *time.Time `json:"frozen_at,omitempty" bson:"frozen_at,omitempty"`

	EmailVerified        bool       `json:"email_verified" bson:"email_verified"`
	VerificationToken    string     `json:"-" bson:"verification_token,omitempty"`
	ResetPasswordToken   string     `json:"-" bson:"reset_password_token,omitempty"`
	ResetPasswordExpires *time.Time `json:"-" bson:"reset_password_expires,omitempty"`

	Favorites []primitive.ObjectID `json:"favorites" bson:"favorites"`

	BodyMetrics *BodyMetrics `json:"body_metrics,omitempty" bson:"body_metrics,omitempty"`
	DayPlans    []DayPlan    `json:"day_plans" bson:"day_plans"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
