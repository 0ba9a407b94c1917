package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"stockroom/internal/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestMongoRepositoriesRejectMalformedIDsWithoutQuerying(t *testing.T) {
	ctx := context.Background()
	users := NewMongoUserRepository(nil)
	products := NewMongoProductRepository(nil)

	_, err := users.GetByID(ctx, "123")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, users.Delete(ctx, "zzz"), ErrNotFound)
	assert.ErrorIs(t, users.Update(ctx, &models.User{ID: ""}), ErrNotFound)

	_, err = products.GetByID(ctx, "not-hex")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, products.Delete(ctx, "not-hex"), ErrNotFound)
	assert.ErrorIs(t, products.Update(ctx, &models.Product{ID: "x"}), ErrNotFound)
}

func TestTranslateMongoError(t *testing.T) {
	assert.NoError(t, translateMongoError(nil, "noop"))
	assert.ErrorIs(t, translateMongoError(mongo.ErrNoDocuments, "get user"), ErrNotFound)

	dup := mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key error"}}}
	assert.ErrorIs(t, translateMongoError(dup, "create user"), ErrDuplicate)

	other := errors.New("bad things")
	err := translateMongoError(other, "list users")
	assert.ErrorIs(t, err, other)
	assert.Contains(t, err.Error(), "failed to list users")
}

func TestDocumentsCarryObjectIDHex(t *testing.T) {
	oid := primitive.NewObjectID()
	phone := "123"
	u := userDocument{ID: oid, Name: "Amy", Email: "amy@x.com", Phone: &phone}.model()
	assert.Equal(t, oid.Hex(), u.ID)
	assert.Equal(t, &phone, u.Phone)

	now := time.Now().UTC()
	p := productDocument{ID: oid, Name: "Widget", MinStock: 3, CreatedAt: now}.model()
	assert.Equal(t, oid.Hex(), p.ID)
	assert.Equal(t, 3, p.MinStock)

	parsed, err := parseObjectID(oid.Hex())
	assert.NoError(t, err)
	assert.Equal(t, oid, parsed)
}
