package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/abhinandan-jain01/nearmart/models"
	"github.com/abhinandan-jain01/nearmart/repository"
)

// RetailerDashboard is the analytics payload for a retailer's dashboard view.
type RetailerDashboard struct {
	Stats        models.RetailerStats         `json:"stats"`
	StatusCounts map[models.OrderStatus]int64 `json:"statusCounts"`
	Revenue30d   float64                      `json:"revenue30d"`
	Inventory    *repository.InventorySummary `json:"inventory"`
	TopProducts  []repository.ProductSales    `json:"topProducts"`
}

// PlatformOverview is the admin-facing rollup across every retailer.
type PlatformOverview struct {
	TotalCustomers int64                        `json:"totalCustomers"`
	TotalRetailers int64                        `json:"totalRetailers"`
	TotalOrders    int64                        `json:"totalOrders"`
	StatusCounts   map[models.OrderStatus]int64 `json:"statusCounts"`
	Revenue30d     float64                      `json:"revenue30d"`
}

type AnalyticsService struct {
	orders    OrderStore
	products  ProductStore
	retailers RetailerStore
	users     UserStore
	now       func() time.Time
}

func NewAnalyticsService(orders OrderStore, products ProductStore, retailers RetailerStore, users UserStore) *AnalyticsService {
	return &AnalyticsService{orders: orders, products: products, retailers: retailers, users: users, now: time.Now}
}

func (s *AnalyticsService) RetailerDashboard(ctx context.Context, retailerID primitive.ObjectID) (*RetailerDashboard, error) {
	retailer, err := s.retailers.FindByUserID(ctx, retailerID)
	if err != nil {
		return nil, err
	}

	statusCounts, err := s.orders.StatusCounts(ctx, retailerID)
	if err != nil {
		return nil, err
	}

	since := s.now().AddDate(0, 0, -30)
	revenue, err := s.orders.RevenueSince(ctx, retailerID, since)
	if err != nil {
		return nil, err
	}

	inventory, err := s.products.InventorySummary(ctx, retailerID)
	if err != nil {
		return nil, err
	}

	topProducts, err := s.orders.TopProducts(ctx, retailerID, since, 5)
	if err != nil {
		return nil, err
	}

	return &RetailerDashboard{
		Stats:        retailer.Stats,
		StatusCounts: statusCounts,
		Revenue30d:   revenue,
		Inventory:    inventory,
		TopProducts:  topProducts,
	}, nil
}

// PlatformOverview aggregates across the whole platform. The zero ObjectID
// widens the order aggregations past the per-retailer scope.
func (s *AnalyticsService) PlatformOverview(ctx context.Context) (*PlatformOverview, error) {
	customers, err := s.users.CountByRole(ctx, models.RoleCustomer)
	if err != nil {
		return nil, err
	}
	retailers, err := s.users.CountByRole(ctx, models.RoleRetailer)
	if err != nil {
		return nil, err
	}

	statusCounts, err := s.orders.StatusCounts(ctx, primitive.NilObjectID)
	if err != nil {
		return nil, err
	}
	var totalOrders int64
	for _, count := range statusCounts {
		totalOrders += count
	}

	revenue, err := s.orders.RevenueSince(ctx, primitive.NilObjectID, s.now().AddDate(0, 0, -30))
	if err != nil {
		return nil, err
	}

	return &PlatformOverview{
		TotalCustomers: customers,
		TotalRetailers: retailers,
		TotalOrders:    totalOrders,
		StatusCounts:   statusCounts,
		Revenue30d:     revenue,
	}, nil
}
