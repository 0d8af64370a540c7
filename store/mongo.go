package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/raushankrgupta/glory-storefront/models"
	"github.com/raushankrgupta/glory-storefront/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const maxCartAttempts = 3

// Mongo implements Store on top of the shared client in utils.
type Mongo struct {
	dbName string
}

// NewMongo expects utils.ConnectMongo to have succeeded.
func NewMongo(dbName string) *Mongo {
	return &Mongo{dbName: dbName}
}

func (m *Mongo) collection(name string) *mongo.Collection {
	return utils.GetCollection(m.dbName, name)
}

func (m *Mongo) GetRole(ctx context.Context, userID string) (*models.Role, error) {
	var role models.Role
	err := m.collection(models.RolesCollection).FindOne(ctx, bson.M{"_id": userID}).Decode(&role)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read role %s: %w", userID, err)
	}
	return &role, nil
}

func (m *Mongo) ListProducts(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	err := m.findAll(ctx, models.ProductsCollection, bson.D{{Key: "created_at", Value: -1}}, &out)
	return out, err
}

func (m *Mongo) ListModels(ctx context.Context) ([]models.VehicleModel, error) {
	var out []models.VehicleModel
	err := m.findAll(ctx, models.ModelsCollection, bson.D{{Key: "category", Value: 1}, {Key: "created_at", Value: 1}}, &out)
	return out, err
}

func (m *Mongo) ListVideos(ctx context.Context) ([]models.Video, error) {
	var out []models.Video
	err := m.findAll(ctx, models.VideosCollection, bson.D{{Key: "created_at", Value: -1}}, &out)
	return out, err
}

func (m *Mongo) ListHomepageImages(ctx context.Context) ([]models.HomepageImage, error) {
	var out []models.HomepageImage
	err := m.findAll(ctx, models.HomepageImagesCollection, bson.D{{Key: "order", Value: 1}, {Key: "created_at", Value: 1}}, &out)
	return out, err
}

func (m *Mongo) findAll(ctx context.Context, coll string, sort bson.D, out interface{}) error {
	findOptions := options.Find()
	findOptions.SetSort(sort)

	cursor, err := m.collection(coll).Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return fmt.Errorf("failed to query %s: %w", coll, err)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", coll, err)
	}
	return nil
}

func (m *Mongo) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	if err := m.findByID(ctx, models.ProductsCollection, id, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (m *Mongo) GetModel(ctx context.Context, id string) (*models.VehicleModel, error) {
	var vm models.VehicleModel
	if err := m.findByID(ctx, models.ModelsCollection, id, &vm); err != nil {
		return nil, err
	}
	return &vm, nil
}

func (m *Mongo) findByID(ctx context.Context, coll, id string, out interface{}) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	err = m.collection(coll).FindOne(ctx, bson.M{"_id": objID}).Decode(out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to read %s/%s: %w", coll, id, err)
	}
	return nil
}

func (m *Mongo) InsertProduct(ctx context.Context, p *models.Product) error {
	p.ID = primitive.NewObjectID()
	p.CreatedAt = time.Now().UTC()
	return m.insert(ctx, models.ProductsCollection, p)
}

func (m *Mongo) InsertVideo(ctx context.Context, v *models.Video) error {
	v.ID = primitive.NewObjectID()
	v.CreatedAt = time.Now().UTC()
	return m.insert(ctx, models.VideosCollection, v)
}

func (m *Mongo) InsertModel(ctx context.Context, vm *models.VehicleModel) error {
	vm.ID = primitive.NewObjectID()
	vm.CreatedAt = time.Now().UTC()
	if vm.Specs == nil {
		vm.Specs = map[string]interface{}{}
	}
	return m.insert(ctx, models.ModelsCollection, vm)
}

func (m *Mongo) InsertHomepageImage(ctx context.Context, img *models.HomepageImage) error {
	img.ID = primitive.NewObjectID()
	img.CreatedAt = time.Now().UTC()
	return m.insert(ctx, models.HomepageImagesCollection, img)
}

func (m *Mongo) insert(ctx context.Context, coll string, doc interface{}) error {
	if _, err := m.collection(coll).InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", coll, err)
	}
	return nil
}

func (m *Mongo) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := m.collection(models.CartsCollection).FindOne(ctx, bson.M{"_id": userID}).Decode(&cart)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return &models.Cart{UserID: userID, Items: []models.CartItem{}}, nil
		}
		return nil, fmt.Errorf("failed to read cart %s: %w", userID, err)
	}
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	return &cart, nil
}

// incrementPipeline bumps qty of the matching line by one, counting a missing
// or zero qty as one first.
func incrementPipeline(productID string) mongo.Pipeline {
	qty := bson.D{{Key: "$add", Value: bson.A{
		bson.D{{Key: "$max", Value: bson.A{
			bson.D{{Key: "$ifNull", Value: bson.A{"$$it.qty", 1}}},
			1,
		}}},
		1,
	}}}
	line := bson.D{{Key: "$cond", Value: bson.A{
		bson.D{{Key: "$eq", Value: bson.A{"$$it.id", productID}}},
		bson.D{{Key: "$mergeObjects", Value: bson.A{"$$it", bson.D{{Key: "qty", Value: qty}}}}},
		"$$it",
	}}}
	return mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "items", Value: bson.D{{Key: "$map", Value: bson.D{
				{Key: "input", Value: "$items"},
				{Key: "as", Value: "it"},
				{Key: "in", Value: line},
			}}}},
			{Key: "updated_at", Value: "$$NOW"},
		}}},
	}
}

func (m *Mongo) AddItem(ctx context.Context, userID string, item models.CartItem) (*models.Cart, error) {
	coll := m.collection(models.CartsCollection)
	after := options.FindOneAndUpdate().SetReturnDocument(options.After)
	item.Qty = 1

	for attempt := 0; attempt < maxCartAttempts; attempt++ {
		var cart models.Cart
		err := coll.FindOneAndUpdate(ctx,
			bson.M{"_id": userID, "items.id": item.ID},
			incrementPipeline(item.ID),
			after,
		).Decode(&cart)
		if err == nil {
			return &cart, nil
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("failed to increment cart item: %w", err)
		}

		// Not in the cart yet. The $ne guard makes a concurrent append of the
		// same product collide on _id instead of adding a duplicate line.
		err = coll.FindOneAndUpdate(ctx,
			bson.M{"_id": userID, "items.id": bson.M{"$ne": item.ID}},
			bson.M{
				"$push":        bson.M{"items": item},
				"$currentDate": bson.M{"updated_at": true},
			},
			options.FindOneAndUpdate().SetReturnDocument(options.After).SetUpsert(true),
		).Decode(&cart)
		if err == nil {
			return &cart, nil
		}
		if mongo.IsDuplicateKeyError(err) {
			continue
		}
		return nil, fmt.Errorf("failed to append cart item: %w", err)
	}
	return nil, ErrCartConflict
}

func (m *Mongo) RemoveItem(ctx context.Context, userID, productID string) (*models.Cart, error) {
	var cart models.Cart
	err := m.collection(models.CartsCollection).FindOneAndUpdate(ctx,
		bson.M{"_id": userID},
		bson.M{
			"$pull":        bson.M{"items": bson.M{"id": productID}},
			"$currentDate": bson.M{"updated_at": true},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&cart)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return &models.Cart{UserID: userID, Items: []models.CartItem{}}, nil
		}
		return nil, fmt.Errorf("failed to remove cart item: %w", err)
	}
	return &cart, nil
}

func (m *Mongo) ClearCart(ctx context.Context, userID string) error {
	_, err := m.collection(models.CartsCollection).UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{
			"$set":         bson.M{"items": bson.A{}},
			"$currentDate": bson.M{"updated_at": true},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
