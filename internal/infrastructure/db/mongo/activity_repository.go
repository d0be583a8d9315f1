package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/paintcompare/marketplace-api/internal/core/domain"
)

const activityCollection = "login_activity"

// ActivityRepository persists the login audit trail written by the activity
// dispatcher.
type ActivityRepository struct {
	coll *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{coll: db.Collection(activityCollection)}
}

func (r *ActivityRepository) Record(ctx context.Context, activity domain.LoginActivity) error {
	doc := bson.M{
		"user_id": activity.UserID,
		"email":   activity.Email,
		"at":      activity.At,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return storeErr("insert login activity", err)
	}
	return nil
}
