// Package services holds the business logic between the HTTP controllers and
// the MongoDB stores. Services depend on narrow store interfaces so the order
// and ticket lifecycles can be exercised against in-memory fakes.
package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/abhinandan-jain01/nearmart/models"
	"github.com/abhinandan-jain01/nearmart/repository"
)

type ProductStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	Insert(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	List(ctx context.Context, filter repository.ProductFilter) ([]models.Product, int64, error)
	DecrementStock(ctx context.Context, id primitive.ObjectID, qty int) error
	IncrementStock(ctx context.Context, id primitive.ObjectID, qty int) error
	InventorySummary(ctx context.Context, retailerID primitive.ObjectID) (*repository.InventorySummary, error)
	ListLowStock(ctx context.Context, retailerID primitive.ObjectID) ([]models.Product, error)
}

type OrderStore interface {
	Insert(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	FindByRazorpayOrderID(ctx context.Context, razorpayOrderID string) (*models.Order, error)
	Update(ctx context.Context, order *models.Order) error
	List(ctx context.Context, filter repository.OrderFilter) ([]models.Order, int64, error)
	StatusCounts(ctx context.Context, retailerID primitive.ObjectID) (map[models.OrderStatus]int64, error)
	RevenueSince(ctx context.Context, retailerID primitive.ObjectID, since time.Time) (float64, error)
	TopProducts(ctx context.Context, retailerID primitive.ObjectID, since time.Time, limit int64) ([]repository.ProductSales, error)
}

type CartStore interface {
	FindByCustomer(ctx context.Context, customerID primitive.ObjectID) (*models.Cart, error)
	Save(ctx context.Context, cart *models.Cart) error
	Delete(ctx context.Context, customerID primitive.ObjectID) error
}

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	Insert(ctx context.Context, user *models.User) error
	CountByRole(ctx context.Context, role string) (int64, error)
	SetActive(ctx context.Context, id primitive.ObjectID, active bool) error
}

type CustomerStore interface {
	Insert(ctx context.Context, customer *models.Customer) error
	FindByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Customer, error)
	UpdateProfile(ctx context.Context, userID primitive.ObjectID, firstName, lastName, phone string) error
	ApplyOrderDelta(ctx context.Context, userID primitive.ObjectID, orders int, amount float64) error
	AddFavoriteStore(ctx context.Context, userID, retailerID primitive.ObjectID) error
	RemoveFavoriteStore(ctx context.Context, userID, retailerID primitive.ObjectID) error
	AddFavoriteProduct(ctx context.Context, userID, productID primitive.ObjectID) error
	RemoveFavoriteProduct(ctx context.Context, userID, productID primitive.ObjectID) error
}

type RetailerStore interface {
	Insert(ctx context.Context, retailer *models.Retailer) error
	FindByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Retailer, error)
	UpdateProfile(ctx context.Context, userID primitive.ObjectID, businessName, description, phone string) error
	SetRating(ctx context.Context, userID primitive.ObjectID, average float64, total int) error
	ApplyOrderDelta(ctx context.Context, userID primitive.ObjectID, orders int, revenue float64) error
}

type ReviewStore interface {
	Insert(ctx context.Context, review *models.Review) error
	ListByRetailer(ctx context.Context, retailerID primitive.ObjectID, page, limit int64) ([]models.Review, int64, error)
	RatingSummary(ctx context.Context, retailerID primitive.ObjectID) (average float64, total int64, err error)
}

type TicketStore interface {
	Insert(ctx context.Context, ticket *models.SupportTicket) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.SupportTicket, error)
	Update(ctx context.Context, ticket *models.SupportTicket) error
	List(ctx context.Context, filter repository.TicketFilter) ([]models.SupportTicket, int64, error)
}

type LocationStore interface {
	Insert(ctx context.Context, location *models.Location) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Location, error)
	FindByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Location, error)
	Update(ctx context.Context, location *models.Location) error
	Delete(ctx context.Context, id, ownerID primitive.ObjectID) error
	Nearby(ctx context.Context, q repository.NearbyQuery) ([]models.Location, error)
}

// Notifier is the push side of the websocket hub. Delivery is fire-and-forget.
type Notifier interface {
	Push(userID string, eventType string, data interface{})
}

// Geocoder resolves a postal address to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (lng, lat float64, formatted string, err error)
}

// Mailer sends transactional email. Failures are logged, never surfaced.
type Mailer interface {
	SendOrderConfirmation(to string, order *models.Order) error
}
