package facilityRepo

import (
	"context"
	"fmt"
	"time"

	"flexspace/database"
	"flexspace/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoFacilityRepo implements FacilityRepository using MongoDB.
type MongoFacilityRepo struct {
	coll *mongo.Collection
}

// NewMongoFacilityRepo creates a new instance of FacilityRepository using MongoDB.
func NewMongoFacilityRepo() FacilityRepository {
	coll := database.DB().Collection("facilities")
	repo := &MongoFacilityRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create facility indexes: %v\n", err)
	}
	return repo
}

func (r *MongoFacilityRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "name", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new facility document.
func (r *MongoFacilityRepo) Create(ctx context.Context, facility *models.Facility) error {
	now := time.Now()
	facility.CreatedAt = now
	facility.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, facility); err != nil {
		return fmt.Errorf("failed to create facility: %w", err)
	}
	return nil
}

// GetByID retrieves a facility by its unique ID. Returns nil when missing.
func (r *MongoFacilityRepo) GetByID(ctx context.Context, id string) (*models.Facility, error) {
	var facility models.Facility
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&facility)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch facility %s: %w", id, err)
	}
	return &facility, nil
}

// GetAll returns every facility, name-ordered.
func (r *MongoFacilityRepo) GetAll(ctx context.Context) ([]models.Facility, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list facilities: %w", err)
	}
	defer cur.Close(ctx)

	var facilities []models.Facility
	if err := cur.All(ctx, &facilities); err != nil {
		return nil, fmt.Errorf("failed to decode facilities: %w", err)
	}
	return facilities, nil
}

// Update modifies an existing facility document.
func (r *MongoFacilityRepo) Update(ctx context.Context, facility *models.Facility) error {
	facility.UpdatedAt = time.Now()

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": facility.ID}, bson.M{"$set": facility})
	if err != nil {
		return fmt.Errorf("failed to update facility %s: %w", facility.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("facility with id %s not found", facility.ID)
	}
	return nil
}

// BumpBookingSeq increments the facility's bookingSeq counter. Used as the
// write anchor of admission-path transactions so concurrent admissions for
// the same facility have intersecting write sets.
func (r *MongoFacilityRepo) BumpBookingSeq(ctx context.Context, id string) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$inc": bson.M{"bookingSeq": 1}})
	if err != nil {
		return fmt.Errorf("failed to bump booking seq for facility %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("facility with id %s not found", id)
	}
	return nil
}

// Delete removes a facility document. Historic bookings keep their facilityId
// reference; the facility is referenced, never owned, by bookings.
func (r *MongoFacilityRepo) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete facility %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("facility with id %s not found", id)
	}
	return nil
}
