package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gradeshop/catalog-service/internal/domain"
)

type mongoCartRepository struct {
	collection *mongo.Collection
}

func NewMongoCartRepository(db *mongo.Database) CartRepository {
	return &mongoCartRepository{
		collection: db.Collection("cart_items"),
	}
}

// AddItem is a single pipeline upsert so the lookup-then-merge sequence
// cannot race: quantity becomes min(existing+requested, maxStock) and the
// unique (user, product, variant) index keeps the row count at one.
func (m *mongoCartRepository) AddItem(ctx context.Context, userID string, productID, variantID int64, requestedQty, maxStock int) (*domain.CartItem, error) {
	now := time.Now()

	filter := bson.M{
		"user_id":    userID,
		"product_id": productID,
		"variant_id": variantID,
	}

	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"user_id":    userID,
			"product_id": productID,
			"variant_id": variantID,
			"quantity": bson.M{"$min": bson.A{
				maxStock,
				bson.M{"$add": bson.A{
					bson.M{"$ifNull": bson.A{"$quantity", 0}},
					requestedQty,
				}},
			}},
			"added_at":   bson.M{"$ifNull": bson.A{"$added_at", now}},
			"updated_at": now,
		}}},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var item domain.CartItem
	if err := m.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&item); err != nil {
		return nil, fmt.Errorf("failed to upsert cart item: %w", err)
	}

	return &item, nil
}

func (m *mongoCartRepository) GetItems(ctx context.Context, userID string) ([]domain.CartItem, error) {
	filter := bson.M{"user_id": userID}
	opts := options.Find().SetSort(bson.D{{Key: "added_at", Value: 1}})

	cursor, err := m.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}
	defer cursor.Close(ctx)

	var items []domain.CartItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode cart items: %w", err)
	}

	return items, nil
}

func (m *mongoCartRepository) RemoveItem(ctx context.Context, userID string, productID, variantID int64) error {
	filter := bson.M{
		"user_id":    userID,
		"product_id": productID,
		"variant_id": variantID,
	}

	result, err := m.collection.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}

	if result.DeletedCount == 0 {
		return ErrCartItemNotFound
	}

	return nil
}

func (m *mongoCartRepository) Clear(ctx context.Context, userID string) error {
	if _, err := m.collection.DeleteMany(ctx, bson.M{"user_id": userID}); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

func (m *mongoCartRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "product_id", Value: 1},
				{Key: "variant_id", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "updated_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(90 * 24 * 60 * 60), // 90 days TTL
		},
	}

	_, err := m.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create cart indexes: %w", err)
	}

	return nil
}

type mongoWishlistRepository struct {
	collection *mongo.Collection
}

func NewMongoWishlistRepository(db *mongo.Database) WishlistRepository {
	return &mongoWishlistRepository{
		collection: db.Collection("wishlist_items"),
	}
}

func (m *mongoWishlistRepository) Toggle(ctx context.Context, userID string, productID int64) (bool, error) {
	filter := bson.M{"user_id": userID, "product_id": productID}

	result, err := m.collection.DeleteOne(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("failed to delete wishlist item: %w", err)
	}
	if result.DeletedCount > 0 {
		return false, nil
	}

	item := domain.WishlistItem{
		ID:        uuid.New().String(),
		UserID:    userID,
		ProductID: productID,
		AddedAt:   time.Now(),
	}

	_, err = m.collection.InsertOne(ctx, item)
	if err != nil {
		// A concurrent toggle inserted first; the unique index rejected the
		// duplicate, so this call removes instead.
		if mongo.IsDuplicateKeyError(err) {
			if _, delErr := m.collection.DeleteOne(ctx, filter); delErr != nil {
				return false, fmt.Errorf("failed to resolve concurrent toggle: %w", delErr)
			}
			return false, nil
		}
		return false, fmt.Errorf("failed to insert wishlist item: %w", err)
	}

	return true, nil
}

func (m *mongoWishlistRepository) List(ctx context.Context, userID string) ([]domain.WishlistItem, error) {
	filter := bson.M{"user_id": userID}
	opts := options.Find().SetSort(bson.D{{Key: "added_at", Value: -1}})

	cursor, err := m.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlist: %w", err)
	}
	defer cursor.Close(ctx)

	var items []domain.WishlistItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode wishlist: %w", err)
	}

	return items, nil
}

func (m *mongoWishlistRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "product_id", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := m.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create wishlist indexes: %w", err)
	}

	return nil
}

// EnsureIndexes creates the uniqueness and TTL indexes both repositories
// rely on. Callers run it once at startup.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	cart := &mongoCartRepository{collection: db.Collection("cart_items")}
	if err := cart.CreateIndexes(ctx); err != nil {
		return err
	}
	wishlist := &mongoWishlistRepository{collection: db.Collection("wishlist_items")}
	return wishlist.CreateIndexes(ctx)
}
