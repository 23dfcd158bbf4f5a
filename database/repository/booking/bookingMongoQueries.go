// File: database/repository/booking/bookingMongoQueries.go
package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"flexspace/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// List returns bookings matching the filter, newest first.
func (r *MongoBookingRepo) List(ctx context.Context, filter ListFilter) ([]models.Booking, error) {
	query := bson.M{}
	if filter.FacilityID != "" {
		query["facilityId"] = filter.FacilityID
	}
	if filter.UserID != "" {
		query["userId"] = filter.UserID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.FromDate != "" {
		query["endDate"] = bson.M{"$gte": filter.FromDate}
	}
	if filter.ToDate != "" {
		query["startDate"] = bson.M{"$lte": filter.ToDate}
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer cur.Close(ctx)

	var bookings []models.Booking
	if err := cur.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

// ListActiveByFacility returns pending/approved bookings for a facility whose
// date range intersects [fromDate, toDate]. ISO date strings compare
// lexicographically, so range filters work directly on the stored strings.
func (r *MongoBookingRepo) ListActiveByFacility(ctx context.Context, facilityID, fromDate, toDate string) ([]models.Booking, error) {
	query := bson.M{
		"facilityId": facilityID,
		"status":     bson.M{"$in": bson.A{models.BookingStatusPending, models.BookingStatusApproved}},
		"startDate":  bson.M{"$lte": toDate},
		"endDate":    bson.M{"$gte": fromDate},
	}

	cur, err := r.coll.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query active bookings for facility %s: %w", facilityID, err)
	}
	defer cur.Close(ctx)

	var bookings []models.Booking
	if err := cur.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode active bookings: %w", err)
	}
	return bookings, nil
}

// FindRecentDuplicate returns a booking by the same user for the same facility
// and start slot created within the window, or nil if none exists.
func (r *MongoBookingRepo) FindRecentDuplicate(ctx context.Context, userID, facilityID, startDate, startTime string, window time.Duration) (*models.Booking, error) {
	query := bson.M{
		"userId":     userID,
		"facilityId": facilityID,
		"startDate":  startDate,
		"startTime":  startTime,
		"createdAt":  bson.M{"$gte": time.Now().Add(-window)},
	}

	var booking models.Booking
	err := r.coll.FindOne(ctx, query).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("duplicate-submission query failed: %w", err)
	}
	return &booking, nil
}

// CompleteElapsed transitions approved bookings whose endDate has fully
// elapsed to completed.
func (r *MongoBookingRepo) CompleteElapsed(ctx context.Context, today string) (int64, error) {
	filter := bson.M{
		"status":  models.BookingStatusApproved,
		"endDate": bson.M{"$lt": today},
	}
	update := bson.M{"$set": bson.M{"status": models.BookingStatusCompleted}}

	res, err := r.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("completion sweep failed: %w", err)
	}
	return res.ModifiedCount, nil
}
