package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/paintcompare/marketplace-api/internal/core/domain"
)

const productsCollection = "products"

type ProductRepository struct {
	coll *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{coll: db.Collection(productsCollection)}
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	doc := bson.M{
		"name":        p.Name,
		"brand":       p.Brand,
		"color_hex":   p.ColorHex,
		"finish":      p.Finish,
		"size_liters": p.SizeLiters,
		"price":       p.Price,
		"supplier_id": p.SupplierID,
		"created_at":  p.CreatedAt,
		"updated_at":  p.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, storeErr("insert product", err)
	}

	created := *p
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrProductNotFound
	}

	var p domain.Product
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		return nil, storeErr("find product", err)
	}
	return &p, nil
}

// List returns a page of products matching filter and the total match count.
func (r *ProductRepository) List(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, int64, error) {
	query := bson.M{}
	if filter.Brand != "" {
		query["brand"] = filter.Brand
	}
	if filter.ColorHex != "" {
		query["color_hex"] = filter.ColorHex
	}
	if filter.Finish != "" {
		query["finish"] = filter.Finish
	}
	if filter.MaxPrice > 0 {
		query["price"] = bson.M{"$lte": filter.MaxPrice}
	}
	if filter.SupplierID != "" {
		query["supplier_id"] = filter.SupplierID
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, storeErr("count products", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "price", Value: 1}}).
		SetLimit(filter.Limit).
		SetSkip(filter.Offset)
	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, storeErr("list products", err)
	}
	defer cur.Close(ctx)

	var products []*domain.Product
	for cur.Next(ctx) {
		var p domain.Product
		if err := cur.Decode(&p); err != nil {
			return nil, 0, storeErr("decode product", err)
		}
		products = append(products, &p)
	}
	if err := cur.Err(); err != nil {
		return nil, 0, storeErr("list products", err)
	}
	return products, total, nil
}

func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	oid, err := primitive.ObjectIDFromHex(p.ID)
	if err != nil {
		return domain.ErrProductNotFound
	}

	update := bson.M{"$set": bson.M{
		"name":        p.Name,
		"brand":       p.Brand,
		"color_hex":   p.ColorHex,
		"finish":      p.Finish,
		"size_liters": p.SizeLiters,
		"price":       p.Price,
		"updated_at":  p.UpdatedAt,
	}}

	res, err := r.coll.UpdateByID(ctx, oid, update)
	if err != nil {
		return storeErr("update product", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrProductNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return storeErr("delete product", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}
