package models

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	FavouriteDbName  = "christianitatis"
	FavouriteColName = "favourites"
)

// SavedEvent is one entry of a user's saved-events set.
type SavedEvent struct {
	EventID string    `bson:"event_id" json:"event_id"`
	SavedAt time.Time `bson:"saved_at" json:"saved_at"`
}

// Favourite is the per-user document holding every event the user saved,
// keyed by event id so save/unsave are single-field updates.
type Favourite struct {
	ID        primitive.ObjectID    `bson:"_id,omitempty" json:"id"`
	UserID    uuid.UUID             `bson:"user_id" json:"user_id"`
	Items     map[string]SavedEvent `bson:"items" json:"items"`
	CreatedAt time.Time             `bson:"created_at,omitempty" json:"created_at,omitempty"`
	UpdatedAt time.Time             `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

type FavouriteRepo interface {
	SaveEvent(ctx context.Context, userID, eventID uuid.UUID) (*Favourite, error)
	UnsaveEvent(ctx context.Context, userID, eventID uuid.UUID) error
	GetFavourites(ctx context.Context, userID uuid.UUID) (*Favourite, error)
}

func (mdb *MongodbRepo) collection() *mongo.Collection {
	return mdb.mongodbClient.Database(FavouriteDbName).Collection(FavouriteColName)
}

func (mdb *MongodbRepo) SaveEvent(ctx context.Context, userID, eventID uuid.UUID) (*Favourite, error) {
	now := time.Now().UTC()
	filter := bson.M{"user_id": userID}

	update := bson.M{
		"$set": bson.M{
			"updated_at": now,
			fmt.Sprintf("items.%s", eventID): SavedEvent{
				EventID: eventID.String(),
				SavedAt: now,
			},
		},
		"$setOnInsert": bson.M{
			"user_id":    userID,
			"created_at": now,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var result Favourite
	if err := mdb.collection().FindOneAndUpdate(ctx, filter, update, opts).Decode(&result); err != nil {
		return nil, &RepositoryError{Op: "save event", Err: err}
	}

	return &result, nil
}

func (mdb *MongodbRepo) UnsaveEvent(ctx context.Context, userID, eventID uuid.UUID) error {
	filter := bson.M{"user_id": userID}
	update := bson.M{
		"$unset": bson.M{
			fmt.Sprintf("items.%s", eventID): "",
		},
		"$set": bson.M{
			"updated_at": time.Now().UTC(),
		},
	}

	if _, err := mdb.collection().UpdateOne(ctx, filter, update); err != nil {
		return &RepositoryError{Op: "unsave event", Err: err}
	}
	return nil
}

func (mdb *MongodbRepo) GetFavourites(ctx context.Context, userID uuid.UUID) (*Favourite, error) {
	var fav Favourite
	err := mdb.collection().FindOne(ctx, bson.M{"user_id": userID}).Decode(&fav)
	if err == mongo.ErrNoDocuments {
		// No document yet just means nothing saved.
		return &Favourite{UserID: userID, Items: map[string]SavedEvent{}}, nil
	}
	if err != nil {
		return nil, &RepositoryError{Op: "get favourites", Err: err}
	}

	return &fav, nil
}
