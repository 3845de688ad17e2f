package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Migration struct {
	Version     int
	Description string
	Up          func(*mongo.Database) error
}

type Migrator struct {
	db         *mongo.Database
	migrations []Migration
}

func NewMigrator(db *mongo.Database) *Migrator {
	return &Migrator{
		db:         db,
		migrations: getMigrations(),
	}
}

func (m *Migrator) Up() error {
	currentVersion, err := m.getCurrentVersion()
	if err != nil {
		return err
	}

	for _, migration := range m.migrations {
		if migration.Version > currentVersion {
			log.Printf("Running migration %d: %s", migration.Version, migration.Description)

			if err := migration.Up(m.db); err != nil {
				return fmt.Errorf("migration %d failed: %w", migration.Version, err)
			}

			if err := m.updateVersion(migration.Version); err != nil {
				return fmt.Errorf("failed to update migration version: %w", err)
			}
		}
	}

	return nil
}

func (m *Migrator) getCurrentVersion() (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var doc struct {
		Version int `bson:"version"`
	}

	err := m.db.Collection("migrations").FindOne(ctx, bson.M{"_id": "schema"}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return doc.Version, nil
}

func (m *Migrator) updateVersion(version int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := m.db.Collection("migrations").UpdateOne(
		ctx,
		bson.M{"_id": "schema"},
		bson.M{"$set": bson.M{"version": version, "updated_at": time.Now()}},
		options.Update().SetUpsert(true),
	)
	return err
}

func getMigrations() []Migration {
	return []Migration{
		{
			Version:     1,
			Description: "Unique index on users.email",
			Up: func(db *mongo.Database) error {
				return createIndex(db, "users", mongo.IndexModel{
					Keys:    bson.D{{Key: "email", Value: 1}},
					Options: options.Index().SetUnique(true),
				})
			},
		},
		{
			Version:     2,
			Description: "Unique index on coupons.code",
			Up: func(db *mongo.Database) error {
				return createIndex(db, "coupons", mongo.IndexModel{
					Keys:    bson.D{{Key: "code", Value: 1}},
					Options: options.Index().SetUnique(true),
				})
			},
		},
		{
			Version:     3,
			Description: "Index on orders by user and creation time",
			Up: func(db *mongo.Database) error {
				return createIndex(db, "orders", mongo.IndexModel{
					Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
				})
			},
		},
		{
			Version:     4,
			Description: "Index on meals.is_featured",
			Up: func(db *mongo.Database) error {
				return createIndex(db, "meals", mongo.IndexModel{
					Keys: bson.D{{Key: "is_featured", Value: 1}, {Key: "featured_order", Value: 1}},
				})
			},
		},
	}
}

func createIndex(db *mongo.Database, collection string, model mongo.IndexModel) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := db.Collection(collection).Indexes().CreateOne(ctx, model)
	return err
}
