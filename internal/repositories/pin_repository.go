package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/rakib99/pinnest/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrPinNotFound is returned when no pin document matches the given ID.
// A malformed ID cannot name an existing pin, so it maps to the same error.
var ErrPinNotFound = errors.New("pin not found")

// PinRepository defines the interface for pin data operations
type PinRepository interface {
	CreatePin(ctx context.Context, pin *models.Pin) error
	GetPinByID(ctx context.Context, id string) (*models.Pin, error)
	GetPinsByIDs(ctx context.Context, ids []string) ([]models.Pin, error)
	GetPinsByBoard(ctx context.Context, boardID uint, skip, limit int64) ([]models.Pin, int64, error)
	GetAllPins(ctx context.Context, skip, limit int64) ([]models.Pin, int64, error)
	UpdatePin(ctx context.Context, id string, pin *models.Pin) error
	DeletePin(ctx context.Context, id string) error
	IncrementLikesCount(ctx context.Context, pinID string) error
	DecrementLikesCount(ctx context.Context, pinID string) error
	IncrementSavesCount(ctx context.Context, pinID string) error
	DecrementSavesCount(ctx context.Context, pinID string) error
}

// MongoPinRepository implements PinRepository for MongoDB
type MongoPinRepository struct {
	collection *mongo.Collection
}

// NewMongoPinRepository creates a new MongoPinRepository
func NewMongoPinRepository(db *mongo.Database) *MongoPinRepository {
	return &MongoPinRepository{collection: db.Collection("pins")}
}

// CreatePin creates a new pin in MongoDB
func (r *MongoPinRepository) CreatePin(ctx context.Context, pin *models.Pin) error {
	pin.ID = primitive.NewObjectID()
	pin.CreatedAt = time.Now()
	pin.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, pin)
	return err
}

// GetPinByID retrieves a pin by ID from MongoDB
func (r *MongoPinRepository) GetPinByID(ctx context.Context, id string) (*models.Pin, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrPinNotFound
	}

	var pin models.Pin
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&pin)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPinNotFound
		}
		return nil, err
	}
	return &pin, nil
}

// GetPinsByIDs retrieves the pins that still exist among the given IDs.
// IDs with no backing document are silently absent from the result.
func (r *MongoPinRepository) GetPinsByIDs(ctx context.Context, ids []string) ([]models.Pin, error) {
	objIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		objID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		objIDs = append(objIDs, objID)
	}
	if len(objIDs) == 0 {
		return nil, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": objIDs}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var pins []models.Pin
	if err = cursor.All(ctx, &pins); err != nil {
		return nil, err
	}
	return pins, nil
}

// GetPinsByBoard retrieves pins on a board, newest first, with pagination
func (r *MongoPinRepository) GetPinsByBoard(ctx context.Context, boardID uint, skip, limit int64) ([]models.Pin, int64, error) {
	filter := bson.M{"board_id": boardID}
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var pins []models.Pin
	if err = cursor.All(ctx, &pins); err != nil {
		return nil, 0, err
	}
	return pins, total, nil
}

// GetAllPins retrieves all pins from MongoDB with pagination
func (r *MongoPinRepository) GetAllPins(ctx context.Context, skip, limit int64) ([]models.Pin, int64, error) {
	total, err := r.collection.CountDocuments(ctx, bson.D{})
	if err != nil {
		return nil, 0, err
	}

	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var pins []models.Pin
	if err = cursor.All(ctx, &pins); err != nil {
		return nil, 0, err
	}
	return pins, total, nil
}

// UpdatePin updates the mutable fields of an existing pin in MongoDB.
// Counter fields are deliberately excluded; they change only through the
// $inc helpers below.
func (r *MongoPinRepository) UpdatePin(ctx context.Context, id string, pin *models.Pin) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrPinNotFound
	}

	pin.UpdatedAt = time.Now()
	update := bson.M{
		"$set": bson.M{
			"board_id":    pin.BoardID,
			"title":       pin.Title,
			"description": pin.Description,
			"image_url":   pin.ImageURL,
			"link":        pin.Link,
			"visibility":  pin.Visibility,
			"is_draft":    pin.IsDraft,
			"updated_at":  pin.UpdatedAt,
		},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrPinNotFound
	}
	return nil
}

// DeletePin deletes a pin by ID from MongoDB
func (r *MongoPinRepository) DeletePin(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrPinNotFound
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrPinNotFound
	}
	return nil
}

// IncrementLikesCount increments the likes count of a pin by one
func (r *MongoPinRepository) IncrementLikesCount(ctx context.Context, pinID string) error {
	return r.incCounter(ctx, pinID, "likes_count", 1)
}

// DecrementLikesCount decrements the likes count of a pin by one, floored at zero
func (r *MongoPinRepository) DecrementLikesCount(ctx context.Context, pinID string) error {
	return r.incCounter(ctx, pinID, "likes_count", -1)
}

// IncrementSavesCount increments the saves count of a pin by one
func (r *MongoPinRepository) IncrementSavesCount(ctx context.Context, pinID string) error {
	return r.incCounter(ctx, pinID, "saves_count", 1)
}

// DecrementSavesCount decrements the saves count of a pin by one, floored at zero
func (r *MongoPinRepository) DecrementSavesCount(ctx context.Context, pinID string) error {
	return r.incCounter(ctx, pinID, "saves_count", -1)
}

// incCounter applies a relative delta to a counter field. Decrements filter on
// the counter being positive so the value can never go negative, even when a
// redundant decrement races a stale read; the update then simply matches
// nothing.
func (r *MongoPinRepository) incCounter(ctx context.Context, pinID, field string, delta int) error {
	objID, err := primitive.ObjectIDFromHex(pinID)
	if err != nil {
		return ErrPinNotFound
	}

	filter := bson.M{"_id": objID}
	if delta < 0 {
		filter[field] = bson.M{"$gt": 0}
	}
	_, err = r.collection.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{field: delta}})
	return err
}
