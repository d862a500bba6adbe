package repository

import (
	"context"
	"errors"
	"time"

	"github.com/newcourse/newcourse/backend/course-service/internal/course"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the collection holding one document per course.
const CollectionName = "courses"

// MongoRepo implements Repository on a MongoDB collection. Course IDs are
// ObjectID hex strings stored in _id; lessons live in the embedded
// contentList array.
type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(col *mongo.Collection) *MongoRepo {
	return &MongoRepo{col: col}
}

func (m *MongoRepo) FindByID(ctx context.Context, id string) (*course.Course, error) {
	var c course.Course
	err := m.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, course.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (m *MongoRepo) FindAll(ctx context.Context) ([]*course.Course, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cur, err := m.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*course.Course{}
	for cur.Next(ctx) {
		var c course.Course
		if err := cur.Decode(&c); err != nil {
			return nil, err
		}
		out = append(out, &c)
	}
	return out, cur.Err()
}

// Save replaces the whole document in one write. The filter pins the version
// that was loaded; if another writer got there first the upsert collides on
// _id and the save fails with ErrConflict.
func (m *MongoRepo) Save(ctx context.Context, c *course.Course) (*course.Course, error) {
	now := time.Now().UTC()
	if c.ID == "" {
		c.ID = primitive.NewObjectID().Hex()
	}
	next := *c
	next.Version = c.Version + 1
	next.UpdatedAt = now
	if next.CreatedAt.IsZero() {
		next.CreatedAt = now
	}

	filter := bson.M{"_id": c.ID, "version": c.Version}
	if c.Version == 0 {
		// documents written before versioning have no version field
		filter["version"] = bson.M{"$in": bson.A{0, nil}}
	}
	_, err := m.col.ReplaceOne(ctx, filter, &next, options.Replace().SetUpsert(true))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, course.ErrConflict
		}
		return nil, err
	}
	*c = next
	return c, nil
}

func (m *MongoRepo) ExistsByID(ctx context.Context, id string) (bool, error) {
	n, err := m.col.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (m *MongoRepo) DeleteByID(ctx context.Context, id string) error {
	res, err := m.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return course.ErrNotFound
	}
	return nil
}
