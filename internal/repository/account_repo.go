package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Werneck0live/simulador-trabalhista/internal/models"
)

const accountsCollection = "tenant_accounts"

// AccountRepository keeps the tenant accounts of the payroll API.
type AccountRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{coll: db.Collection(accountsCollection), now: time.Now}
}

func (r *AccountRepository) EnsureIndexes(ctx context.Context) error {
	model := mongo.IndexModel{
		Keys:    bson.D{{Key: "position", Value: 1}},
		Options: options.Index().SetName("idx_position"),
	}
	_, err := r.coll.Indexes().CreateOne(ctx, model)
	if err == nil {
		return nil
	}
	// Se já existir com outra opção, tenta dropar e recriar
	if ce, ok := err.(mongo.CommandError); ok && ce.Code == 85 { // IndexOptionsConflict
		if _, dropErr := r.coll.Indexes().DropOne(ctx, "idx_position"); dropErr != nil {
			return fmt.Errorf("drop index idx_position: %w", dropErr)
		}
		_, createErr := r.coll.Indexes().CreateOne(ctx, model)
		return createErr
	}
	return err
}

// List returns every account in probe order.
func (r *AccountRepository) List(ctx context.Context) ([]models.TenantAccount, error) {
	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	list := []models.TenantAccount{}
	for cur.Next(ctx) {
		var a models.TenantAccount
		if err := cur.Decode(&a); err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, cur.Err()
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (*models.TenantAccount, error) {
	var a models.TenantAccount
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Upsert creates the account or refreshes its token and position. It reports
// whether the account was created.
func (r *AccountRepository) Upsert(ctx context.Context, a *models.TenantAccount) (bool, error) {
	now := r.now().UTC()
	update := bson.M{
		"$set": bson.M{
			"credential": a.Credential,
			"position":   a.Position,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{"created_at": now},
	}
	res, err := r.coll.UpdateByID(ctx, a.ID, update, options.Update().SetUpsert(true))
	if err != nil {
		return false, err
	}
	return res.UpsertedCount > 0, nil
}

func (r *AccountRepository) Delete(ctx context.Context, id string) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
