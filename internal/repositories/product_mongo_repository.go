package repositories

import (
	"context"
	"time"

	"stockroom/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type productDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	Category    string             `bson:"category"`
	Price       float64            `bson:"price"`
	Stock       int                `bson:"stock"`
	MinStock    int                `bson:"min_stock"`
	Supplier    string             `bson:"supplier"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func newProductDocument(p *models.Product) productDocument {
	return productDocument{
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		Stock:       p.Stock,
		MinStock:    p.MinStock,
		Supplier:    p.Supplier,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (d productDocument) model() models.Product {
	return models.Product{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Description: d.Description,
		Category:    d.Category,
		Price:       d.Price,
		Stock:       d.Stock,
		MinStock:    d.MinStock,
		Supplier:    d.Supplier,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// MongoProductRepository stores products in a MongoDB collection.
type MongoProductRepository struct {
	coll *mongo.Collection
}

// NewMongoProductRepository creates a repository over the given collection.
func NewMongoProductRepository(coll *mongo.Collection) *MongoProductRepository {
	return &MongoProductRepository{coll: coll}
}

// GetAll retrieves all products in natural order.
func (r *MongoProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, translateMongoError(err, "list products")
	}
	var docs []productDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, translateMongoError(err, "decode products")
	}
	products := make([]models.Product, 0, len(docs))
	for _, d := range docs {
		products = append(products, d.model())
	}
	return products, nil
}

// GetByID retrieves a product by ObjectID hex.
func (r *MongoProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	var doc productDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, translateMongoError(err, "get product")
	}
	product := doc.model()
	return &product, nil
}

// Create inserts product and sets its ID from the generated ObjectID.
func (r *MongoProductRepository) Create(ctx context.Context, product *models.Product) error {
	res, err := r.coll.InsertOne(ctx, newProductDocument(product))
	if err != nil {
		return translateMongoError(err, "create product")
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		product.ID = oid.Hex()
	}
	return nil
}

// Update overwrites every mutable field of the stored product.
func (r *MongoProductRepository) Update(ctx context.Context, product *models.Product) error {
	oid, err := parseObjectID(product.ID)
	if err != nil {
		return err
	}
	doc := newProductDocument(product)
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"name":        doc.Name,
		"description": doc.Description,
		"category":    doc.Category,
		"price":       doc.Price,
		"stock":       doc.Stock,
		"min_stock":   doc.MinStock,
		"supplier":    doc.Supplier,
		"updated_at":  doc.UpdatedAt,
	}})
	if err != nil {
		return translateMongoError(err, "update product")
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the product with the given ID.
func (r *MongoProductRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return translateMongoError(err, "delete product")
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ReplaceAll deletes every product then inserts products. The two steps are
// not atomic.
func (r *MongoProductRepository) ReplaceAll(ctx context.Context, products []models.Product) error {
	if _, err := r.coll.DeleteMany(ctx, bson.M{}); err != nil {
		return translateMongoError(err, "clear products")
	}
	if len(products) == 0 {
		return nil
	}
	docs := make([]any, 0, len(products))
	for i := range products {
		docs = append(docs, newProductDocument(&products[i]))
	}
	res, err := r.coll.InsertMany(ctx, docs)
	if err != nil {
		return translateMongoError(err, "insert products")
	}
	for i, id := range res.InsertedIDs {
		if oid, ok := id.(primitive.ObjectID); ok && i < len(products) {
			products[i].ID = oid.Hex()
		}
	}
	return nil
}
