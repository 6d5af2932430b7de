// Package uploadcounts provides the per-user upload count shown in user lists.
package uploadcounts

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Collection is the uploads collection counted.
const Collection = "uploads"

// PerUser returns the number of uploads owned by each of userIDs. Users with
// no uploads are absent from the map.
func PerUser(ctx context.Context, db *mongo.Database, userIDs []primitive.ObjectID) (map[primitive.ObjectID]int64, error) {
	result := make(map[primitive.ObjectID]int64)
	if len(userIDs) == 0 {
		return result, nil
	}

	pipeline := []bson.M{
		{"$match": bson.M{"user_id": bson.M{"$in": userIDs}}},
		{"$group": bson.M{"_id": "$user_id", "count": bson.M{"$sum": 1}}},
	}

	cur, err := db.Collection(Collection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var row struct {
			ID    primitive.ObjectID `bson:"_id"`
			Count int64              `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		result[row.ID] = row.Count
	}
	return result, cur.Err()
}
