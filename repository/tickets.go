package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/abhinandan-jain01/nearmart/apperrors"
	"github.com/abhinandan-jain01/nearmart/models"
)

type TicketFilter struct {
	CustomerID *primitive.ObjectID
	RetailerID *primitive.ObjectID
	AssignedTo *primitive.ObjectID
	Status     string
	Page       int64
	Limit      int64
}

type Tickets struct {
	coll *mongo.Collection
}

func NewTickets(coll *mongo.Collection) *Tickets {
	return &Tickets{coll: coll}
}

func (r *Tickets) Insert(ctx context.Context, ticket *models.SupportTicket) error {
	now := time.Now()
	ticket.CreatedAt = now
	ticket.UpdatedAt = now
	result, err := r.coll.InsertOne(ctx, ticket)
	if err != nil {
		return apperrors.Internal("error inserting ticket", err)
	}
	ticket.Id = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *Tickets) FindByID(ctx context.Context, id primitive.ObjectID) (*models.SupportTicket, error) {
	var ticket models.SupportTicket
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&ticket)
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.NotFound("ticket %s not found", id.Hex())
	}
	if err != nil {
		return nil, apperrors.Internal("error fetching ticket", err)
	}
	return &ticket, nil
}

func (r *Tickets) Update(ctx context.Context, ticket *models.SupportTicket) error {
	ticket.UpdatedAt = time.Now()
	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": ticket.Id}, ticket)
	if err != nil {
		return apperrors.Internal("error updating ticket", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.NotFound("ticket %s not found", ticket.Id.Hex())
	}
	return nil
}

func (r *Tickets) List(ctx context.Context, filter TicketFilter) ([]models.SupportTicket, int64, error) {
	query := bson.M{}
	if filter.CustomerID != nil {
		query["customerId"] = *filter.CustomerID
	}
	if filter.RetailerID != nil {
		query["retailerId"] = *filter.RetailerID
	}
	if filter.AssignedTo != nil {
		query["assignedTo"] = *filter.AssignedTo
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, apperrors.Internal("error counting tickets", err)
	}

	page, limit := normalizePage(filter.Page, filter.Limit)
	findOptions := options.Find().
		SetSkip((page - 1) * limit).
		SetLimit(limit).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.coll.Find(ctx, query, findOptions)
	if err != nil {
		return nil, 0, apperrors.Internal("error fetching tickets", err)
	}
	var tickets []models.SupportTicket
	if err := cursor.All(ctx, &tickets); err != nil {
		return nil, 0, apperrors.Internal("error parsing tickets", err)
	}
	return tickets, total, nil
}
