package programRepo

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

// MongoProgramRepo implements ProgramRepository using MongoDB.
type MongoProgramRepo struct {
	programColl *mongo.Collection
	appColl     *mongo.Collection
}

// NewMongoProgramRepo creates a new instance of ProgramRepository using MongoDB.
func NewMongoProgramRepo() ProgramRepository {
	db := database.DB()
	repo := &MongoProgramRepo{
		programColl: db.Collection("programs"),
		appColl:     db.Collection("program_applications"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create program indexes: %v\n", err)
	}
	return repo
}

func (r *MongoProgramRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := r.programColl.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}); err != nil {
		return fmt.Errorf("failed to create program indexes: %w", err)
	}

	if _, err := r.appColl.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "programId", Value: 1}, {Key: "userId", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("failed to create application indexes: %w", err)
	}
	return nil
}

// Create inserts a new program document.
func (r *MongoProgramRepo) Create(ctx context.Context, program *models.Program) error {
	now := time.Now()
	program.CreatedAt = now
	program.UpdatedAt = now

	if _, err := r.programColl.InsertOne(ctx, program); err != nil {
		return fmt.Errorf("failed to create program: %w", err)
	}
	return nil
}

// GetByID retrieves a program by ID. Returns nil when missing.
func (r *MongoProgramRepo) GetByID(ctx context.Context, id string) (*models.Program, error) {
	var program models.Program
	err := r.programColl.FindOne(ctx, bson.M{"id": id}).Decode(&program)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch program %s: %w", id, err)
	}
	return &program, nil
}

// GetAll returns every program, newest first.
func (r *MongoProgramRepo) GetAll(ctx context.Context) ([]models.Program, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.programColl.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list programs: %w", err)
	}
	defer cur.Close(ctx)

	var programs []models.Program
	if err := cur.All(ctx, &programs); err != nil {
		return nil, fmt.Errorf("failed to decode programs: %w", err)
	}
	return programs, nil
}

// Update modifies an existing program document.
func (r *MongoProgramRepo) Update(ctx context.Context, program *models.Program) error {
	program.UpdatedAt = time.Now()

	res, err := r.programColl.UpdateOne(ctx, bson.M{"id": program.ID}, bson.M{"$set": program})
	if err != nil {
		return fmt.Errorf("failed to update program %s: %w", program.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("program with id %s not found", program.ID)
	}
	return nil
}

// Delete removes a program document.
func (r *MongoProgramRepo) Delete(ctx context.Context, id string) error {
	res, err := r.programColl.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete program %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("program with id %s not found", id)
	}
	return nil
}

// IncEnrolled atomically adjusts the enrolled count.
func (r *MongoProgramRepo) IncEnrolled(ctx context.Context, id string, delta int) error {
	res, err := r.programColl.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$inc": bson.M{"enrolledCount": delta}})
	if err != nil {
		return fmt.Errorf("failed to adjust enrolled count for program %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("program with id %s not found", id)
	}
	return nil
}

// InsertApplication persists a new program application.
func (r *MongoProgramRepo) InsertApplication(ctx context.Context, app *models.ProgramApplication) error {
	if _, err := r.appColl.InsertOne(ctx, app); err != nil {
		return fmt.Errorf("failed to insert application: %w", err)
	}
	return nil
}

// GetApplicationByID retrieves an application by ID. Returns nil when missing.
func (r *MongoProgramRepo) GetApplicationByID(ctx context.Context, id string) (*models.ProgramApplication, error) {
	var app models.ProgramApplication
	err := r.appColl.FindOne(ctx, bson.M{"id": id}).Decode(&app)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch application %s: %w", id, err)
	}
	return &app, nil
}

// FindApplication returns a user's non-cancelled application for a program,
// or nil if none exists.
func (r *MongoProgramRepo) FindApplication(ctx context.Context, programID, userID string) (*models.ProgramApplication, error) {
	query := bson.M{
		"programId": programID,
		"userId":    userID,
		"status":    bson.M{"$ne": models.ApplicationStatusCancelled},
	}
	var app models.ProgramApplication
	err := r.appColl.FindOne(ctx, query).Decode(&app)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query application: %w", err)
	}
	return &app, nil
}

// ListApplications returns applications filtered by program and/or user.
func (r *MongoProgramRepo) ListApplications(ctx context.Context, programID, userID string) ([]models.ProgramApplication, error) {
	query := bson.M{}
	if programID != "" {
		query["programId"] = programID
	}
	if userID != "" {
		query["userId"] = userID
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.appColl.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer cur.Close(ctx)

	var apps []models.ProgramApplication
	if err := cur.All(ctx, &apps); err != nil {
		return nil, fmt.Errorf("failed to decode applications: %w", err)
	}
	return apps, nil
}

// UpdateApplicationStatus sets an application's status.
func (r *MongoProgramRepo) UpdateApplicationStatus(ctx context.Context, id, status string) error {
	res, err := r.appColl.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return fmt.Errorf("failed to update application %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("application with id %s not found", id)
	}
	return nil
}

// WithTransaction runs fn inside a MongoDB session transaction.
func (r *MongoProgramRepo) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	client := r.programColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
