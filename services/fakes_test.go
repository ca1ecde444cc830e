package services

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/abhinandan-jain01/nearmart/apperrors"
	"github.com/abhinandan-jain01/nearmart/models"
	"github.com/abhinandan-jain01/nearmart/repository"
)

// In-memory store fakes. Each one returns copies so tests cannot mutate the
// stored document through a returned pointer.

type fakeProducts struct {
	items map[primitive.ObjectID]*models.Product
}

func newFakeProducts(products ...*models.Product) *fakeProducts {
	f := &fakeProducts{items: map[primitive.ObjectID]*models.Product{}}
	for _, p := range products {
		if p.ID.IsZero() {
			p.ID = primitive.NewObjectID()
		}
		cp := *p
		f.items[p.ID] = &cp
	}
	return f
}

func (f *fakeProducts) stock(id primitive.ObjectID) int {
	return f.items[id].Stock
}

func (f *fakeProducts) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	p, ok := f.items[id]
	if !ok {
		return nil, apperrors.NotFound("product %s not found", id.Hex())
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProducts) Insert(ctx context.Context, product *models.Product) error {
	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	cp := *product
	f.items[product.ID] = &cp
	return nil
}

func (f *fakeProducts) Update(ctx context.Context, product *models.Product) error {
	if _, ok := f.items[product.ID]; !ok {
		return apperrors.NotFound("product %s not found", product.ID.Hex())
	}
	cp := *product
	f.items[product.ID] = &cp
	return nil
}

func (f *fakeProducts) List(ctx context.Context, filter repository.ProductFilter) ([]models.Product, int64, error) {
	var out []models.Product
	for _, p := range f.items {
		if filter.RetailerID != nil && p.RetailerID != *filter.RetailerID {
			continue
		}
		if filter.ActiveOnly && !p.IsActive {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.Name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Name)) {
			continue
		}
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (f *fakeProducts) DecrementStock(ctx context.Context, id primitive.ObjectID, qty int) error {
	p, ok := f.items[id]
	if !ok {
		return apperrors.NotFound("product %s not found", id.Hex())
	}
	if p.Stock < qty {
		return apperrors.Conflict("insufficient stock for product %s", id.Hex())
	}
	p.Stock -= qty
	return nil
}

func (f *fakeProducts) IncrementStock(ctx context.Context, id primitive.ObjectID, qty int) error {
	p, ok := f.items[id]
	if !ok {
		return apperrors.NotFound("product %s not found", id.Hex())
	}
	p.Stock += qty
	return nil
}

func (f *fakeProducts) InventorySummary(ctx context.Context, retailerID primitive.ObjectID) (*repository.InventorySummary, error) {
	summary := &repository.InventorySummary{}
	for _, p := range f.items {
		if p.RetailerID != retailerID {
			continue
		}
		summary.Total++
		if p.IsActive {
			summary.Active++
		}
		if p.Stock == 0 {
			summary.OutOfStock++
		} else if p.Stock < p.LowStockThreshold {
			summary.LowStock++
		}
	}
	return summary, nil
}

func (f *fakeProducts) ListLowStock(ctx context.Context, retailerID primitive.ObjectID) ([]models.Product, error) {
	var out []models.Product
	for _, p := range f.items {
		if p.RetailerID == retailerID && p.Stock < p.LowStockThreshold {
			out = append(out, *p)
		}
	}
	return out, nil
}

type fakeOrders struct {
	items     map[primitive.ObjectID]*models.Order
	insertErr error
}

func newFakeOrders(orders ...*models.Order) *fakeOrders {
	f := &fakeOrders{items: map[primitive.ObjectID]*models.Order{}}
	for _, o := range orders {
		if o.ID.IsZero() {
			o.ID = primitive.NewObjectID()
		}
		cp := *o
		f.items[o.ID] = &cp
	}
	return f
}

func (f *fakeOrders) Insert(ctx context.Context, order *models.Order) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	order.CreatedAt = time.Now()
	cp := *order
	f.items[order.ID] = &cp
	return nil
}

func (f *fakeOrders) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	o, ok := f.items[id]
	if !ok {
		return nil, apperrors.NotFound("order %s not found", id.Hex())
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrders) FindByRazorpayOrderID(ctx context.Context, razorpayOrderID string) (*models.Order, error) {
	for _, o := range f.items {
		if o.RazorpayOrderID == razorpayOrderID {
			cp := *o
			return &cp, nil
		}
	}
	return nil, apperrors.NotFound("order for gateway ID %s not found", razorpayOrderID)
}

func (f *fakeOrders) Update(ctx context.Context, order *models.Order) error {
	if _, ok := f.items[order.ID]; !ok {
		return apperrors.NotFound("order %s not found", order.ID.Hex())
	}
	cp := *order
	f.items[order.ID] = &cp
	return nil
}

func (f *fakeOrders) List(ctx context.Context, filter repository.OrderFilter) ([]models.Order, int64, error) {
	var out []models.Order
	for _, o := range f.items {
		if filter.CustomerID != nil && o.CustomerID != *filter.CustomerID {
			continue
		}
		if filter.RetailerID != nil && o.RetailerID != *filter.RetailerID {
			continue
		}
		if filter.Status != "" && string(o.Status) != filter.Status {
			continue
		}
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func (f *fakeOrders) StatusCounts(ctx context.Context, retailerID primitive.ObjectID) (map[models.OrderStatus]int64, error) {
	counts := map[models.OrderStatus]int64{}
	for _, o := range f.items {
		if retailerID.IsZero() || o.RetailerID == retailerID {
			counts[o.Status]++
		}
	}
	return counts, nil
}

func (f *fakeOrders) RevenueSince(ctx context.Context, retailerID primitive.ObjectID, since time.Time) (float64, error) {
	var revenue float64
	for _, o := range f.items {
		if !retailerID.IsZero() && o.RetailerID != retailerID {
			continue
		}
		if o.Status == models.OrderDelivered && o.CreatedAt.After(since) {
			revenue += o.TotalAmount
		}
	}
	return revenue, nil
}

func (f *fakeOrders) TopProducts(ctx context.Context, retailerID primitive.ObjectID, since time.Time, limit int64) ([]repository.ProductSales, error) {
	totals := map[primitive.ObjectID]*repository.ProductSales{}
	for _, o := range f.items {
		if o.RetailerID != retailerID || o.Status == models.OrderCancelled {
			continue
		}
		for _, item := range o.Items {
			row, ok := totals[item.ProductID]
			if !ok {
				row = &repository.ProductSales{ProductID: item.ProductID, Name: item.Name}
				totals[item.ProductID] = row
			}
			row.Quantity += int64(item.Quantity)
			row.Revenue += item.Price * float64(item.Quantity)
		}
	}
	var out []repository.ProductSales
	for _, row := range totals {
		out = append(out, *row)
	}
	return out, nil
}

type fakeCarts struct {
	items map[primitive.ObjectID]*models.Cart
}

func newFakeCarts() *fakeCarts {
	return &fakeCarts{items: map[primitive.ObjectID]*models.Cart{}}
}

func (f *fakeCarts) FindByCustomer(ctx context.Context, customerID primitive.ObjectID) (*models.Cart, error) {
	cart, ok := f.items[customerID]
	if !ok {
		return nil, apperrors.NotFound("cart not found")
	}
	cp := *cart
	cp.Items = append([]models.CartItem(nil), cart.Items...)
	return &cp, nil
}

func (f *fakeCarts) Save(ctx context.Context, cart *models.Cart) error {
	cp := *cart
	cp.Items = append([]models.CartItem(nil), cart.Items...)
	f.items[cart.CustomerID] = &cp
	return nil
}

func (f *fakeCarts) Delete(ctx context.Context, customerID primitive.ObjectID) error {
	delete(f.items, customerID)
	return nil
}

type fakeUsers struct {
	items map[primitive.ObjectID]*models.User
}

func newFakeUsers(users ...*models.User) *fakeUsers {
	f := &fakeUsers{items: map[primitive.ObjectID]*models.User{}}
	for _, u := range users {
		if u.Id.IsZero() {
			u.Id = primitive.NewObjectID()
		}
		cp := *u
		f.items[u.Id] = &cp
	}
	return f
}

func (f *fakeUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.items {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.NotFound("user not found")
}

func (f *fakeUsers) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := f.items[id]
	if !ok {
		return nil, apperrors.NotFound("user not found")
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) Insert(ctx context.Context, user *models.User) error {
	for _, u := range f.items {
		if u.Email == user.Email {
			return apperrors.Conflict("email already registered")
		}
	}
	if user.Id.IsZero() {
		user.Id = primitive.NewObjectID()
	}
	cp := *user
	f.items[user.Id] = &cp
	return nil
}

func (f *fakeUsers) CountByRole(ctx context.Context, role string) (int64, error) {
	var total int64
	for _, u := range f.items {
		if u.Role == role {
			total++
		}
	}
	return total, nil
}

func (f *fakeUsers) SetActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	u, ok := f.items[id]
	if !ok {
		return apperrors.NotFound("user not found")
	}
	u.IsActive = active
	return nil
}

type statsDelta struct {
	orders int
	amount float64
}

type fakeCustomers struct {
	items  map[primitive.ObjectID]*models.Customer
	deltas map[primitive.ObjectID][]statsDelta
}

func newFakeCustomers(customers ...*models.Customer) *fakeCustomers {
	f := &fakeCustomers{
		items:  map[primitive.ObjectID]*models.Customer{},
		deltas: map[primitive.ObjectID][]statsDelta{},
	}
	for _, c := range customers {
		cp := *c
		f.items[c.UserId] = &cp
	}
	return f
}

func (f *fakeCustomers) Insert(ctx context.Context, customer *models.Customer) error {
	if customer.Id.IsZero() {
		customer.Id = primitive.NewObjectID()
	}
	cp := *customer
	f.items[customer.UserId] = &cp
	return nil
}

func (f *fakeCustomers) FindByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Customer, error) {
	c, ok := f.items[userID]
	if !ok {
		return nil, apperrors.NotFound("customer profile not found")
	}
	cp := *c
	cp.FavoriteStores = append([]primitive.ObjectID(nil), c.FavoriteStores...)
	cp.FavoriteProducts = append([]primitive.ObjectID(nil), c.FavoriteProducts...)
	return &cp, nil
}

func (f *fakeCustomers) UpdateProfile(ctx context.Context, userID primitive.ObjectID, firstName, lastName, phone string) error {
	c, ok := f.items[userID]
	if !ok {
		return apperrors.NotFound("customer profile not found")
	}
	c.FirstName, c.LastName, c.Phone = firstName, lastName, phone
	return nil
}

func (f *fakeCustomers) ApplyOrderDelta(ctx context.Context, userID primitive.ObjectID, orders int, amount float64) error {
	f.deltas[userID] = append(f.deltas[userID], statsDelta{orders: orders, amount: amount})
	if c, ok := f.items[userID]; ok {
		c.Stats.TotalOrders += orders
		c.Stats.TotalSpent += amount
	}
	return nil
}

func (f *fakeCustomers) AddFavoriteStore(ctx context.Context, userID, retailerID primitive.ObjectID) error {
	c, ok := f.items[userID]
	if !ok {
		return apperrors.NotFound("customer profile not found")
	}
	c.FavoriteStores = addID(c.FavoriteStores, retailerID)
	return nil
}

func (f *fakeCustomers) RemoveFavoriteStore(ctx context.Context, userID, retailerID primitive.ObjectID) error {
	c, ok := f.items[userID]
	if !ok {
		return apperrors.NotFound("customer profile not found")
	}
	c.FavoriteStores = removeID(c.FavoriteStores, retailerID)
	return nil
}

func (f *fakeCustomers) AddFavoriteProduct(ctx context.Context, userID, productID primitive.ObjectID) error {
	c, ok := f.items[userID]
	if !ok {
		return apperrors.NotFound("customer profile not found")
	}
	c.FavoriteProducts = addID(c.FavoriteProducts, productID)
	return nil
}

func (f *fakeCustomers) RemoveFavoriteProduct(ctx context.Context, userID, productID primitive.ObjectID) error {
	c, ok := f.items[userID]
	if !ok {
		return apperrors.NotFound("customer profile not found")
	}
	c.FavoriteProducts = removeID(c.FavoriteProducts, productID)
	return nil
}

// addID mirrors $addToSet, removeID mirrors $pull.
func addID(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}

func removeID(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	out := ids[:0]
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}

type fakeRetailers struct {
	items  map[primitive.ObjectID]*models.Retailer
	deltas map[primitive.ObjectID][]statsDelta
}

func newFakeRetailers(retailers ...*models.Retailer) *fakeRetailers {
	f := &fakeRetailers{
		items:  map[primitive.ObjectID]*models.Retailer{},
		deltas: map[primitive.ObjectID][]statsDelta{},
	}
	for _, r := range retailers {
		cp := *r
		f.items[r.UserId] = &cp
	}
	return f
}

func (f *fakeRetailers) Insert(ctx context.Context, retailer *models.Retailer) error {
	if retailer.Id.IsZero() {
		retailer.Id = primitive.NewObjectID()
	}
	cp := *retailer
	f.items[retailer.UserId] = &cp
	return nil
}

func (f *fakeRetailers) FindByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Retailer, error) {
	r, ok := f.items[userID]
	if !ok {
		return nil, apperrors.NotFound("retailer profile not found")
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRetailers) UpdateProfile(ctx context.Context, userID primitive.ObjectID, businessName, description, phone string) error {
	r, ok := f.items[userID]
	if !ok {
		return apperrors.NotFound("retailer profile not found")
	}
	r.BusinessName, r.Description, r.Phone = businessName, description, phone
	return nil
}

func (f *fakeRetailers) SetRating(ctx context.Context, userID primitive.ObjectID, average float64, total int) error {
	r, ok := f.items[userID]
	if !ok {
		return apperrors.NotFound("retailer profile not found")
	}
	r.AverageRating = average
	r.TotalRatings = total
	return nil
}

func (f *fakeRetailers) ApplyOrderDelta(ctx context.Context, userID primitive.ObjectID, orders int, revenue float64) error {
	f.deltas[userID] = append(f.deltas[userID], statsDelta{orders: orders, amount: revenue})
	if r, ok := f.items[userID]; ok {
		r.Stats.TotalOrders += orders
		r.Stats.TotalRevenue += revenue
	}
	return nil
}

type fakeTickets struct {
	items map[primitive.ObjectID]*models.SupportTicket
}

func newFakeTickets(tickets ...*models.SupportTicket) *fakeTickets {
	f := &fakeTickets{items: map[primitive.ObjectID]*models.SupportTicket{}}
	for _, t := range tickets {
		if t.Id.IsZero() {
			t.Id = primitive.NewObjectID()
		}
		cp := *t
		f.items[t.Id] = &cp
	}
	return f
}

func (f *fakeTickets) Insert(ctx context.Context, ticket *models.SupportTicket) error {
	if ticket.Id.IsZero() {
		ticket.Id = primitive.NewObjectID()
	}
	cp := *ticket
	f.items[ticket.Id] = &cp
	return nil
}

func (f *fakeTickets) FindByID(ctx context.Context, id primitive.ObjectID) (*models.SupportTicket, error) {
	t, ok := f.items[id]
	if !ok {
		return nil, apperrors.NotFound("ticket %s not found", id.Hex())
	}
	cp := *t
	cp.Messages = append([]models.TicketMessage(nil), t.Messages...)
	return &cp, nil
}

func (f *fakeTickets) Update(ctx context.Context, ticket *models.SupportTicket) error {
	if _, ok := f.items[ticket.Id]; !ok {
		return apperrors.NotFound("ticket %s not found", ticket.Id.Hex())
	}
	cp := *ticket
	cp.Messages = append([]models.TicketMessage(nil), ticket.Messages...)
	f.items[ticket.Id] = &cp
	return nil
}

func (f *fakeTickets) List(ctx context.Context, filter repository.TicketFilter) ([]models.SupportTicket, int64, error) {
	var out []models.SupportTicket
	for _, t := range f.items {
		if filter.CustomerID != nil && t.CustomerID != *filter.CustomerID {
			continue
		}
		if filter.RetailerID != nil && (t.RetailerID == nil || *t.RetailerID != *filter.RetailerID) {
			continue
		}
		if filter.Status != "" && string(t.Status) != filter.Status {
			continue
		}
		out = append(out, *t)
	}
	return out, int64(len(out)), nil
}

type fakeLocations struct {
	items        map[primitive.ObjectID]*models.Location
	nearbyCalled bool
}

func newFakeLocations(locations ...*models.Location) *fakeLocations {
	f := &fakeLocations{items: map[primitive.ObjectID]*models.Location{}}
	for _, l := range locations {
		if l.Id.IsZero() {
			l.Id = primitive.NewObjectID()
		}
		cp := *l
		f.items[l.Id] = &cp
	}
	return f
}

func (f *fakeLocations) Insert(ctx context.Context, location *models.Location) error {
	if location.Id.IsZero() {
		location.Id = primitive.NewObjectID()
	}
	cp := *location
	f.items[location.Id] = &cp
	return nil
}

func (f *fakeLocations) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Location, error) {
	l, ok := f.items[id]
	if !ok {
		return nil, apperrors.NotFound("location %s not found", id.Hex())
	}
	cp := *l
	return &cp, nil
}

func (f *fakeLocations) FindByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Location, error) {
	var out []models.Location
	for _, l := range f.items {
		if l.OwnerID == ownerID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (f *fakeLocations) Update(ctx context.Context, location *models.Location) error {
	if _, ok := f.items[location.Id]; !ok {
		return apperrors.NotFound("location %s not found", location.Id.Hex())
	}
	cp := *location
	f.items[location.Id] = &cp
	return nil
}

func (f *fakeLocations) Delete(ctx context.Context, id, ownerID primitive.ObjectID) error {
	l, ok := f.items[id]
	if !ok || l.OwnerID != ownerID {
		return apperrors.NotFound("location %s not found", id.Hex())
	}
	delete(f.items, id)
	return nil
}

func (f *fakeLocations) Nearby(ctx context.Context, q repository.NearbyQuery) ([]models.Location, error) {
	f.nearbyCalled = true
	var out []models.Location
	for _, l := range f.items {
		if l.OwnerType != models.OwnerRetailer || !l.IsActive {
			continue
		}
		if q.Category != "" && l.BusinessCategory != q.Category {
			continue
		}
		if Haversine(q.Lat, q.Lng, l.Geo.Lat(), l.Geo.Lng()) > q.MaxDistance {
			continue
		}
		out = append(out, *l)
	}
	return out, nil
}

type fakeReviews struct {
	items []*models.Review
}

func (f *fakeReviews) Insert(ctx context.Context, review *models.Review) error {
	for _, r := range f.items {
		if r.RetailerID == review.RetailerID && r.CustomerID == review.CustomerID {
			return apperrors.Conflict("store already reviewed by this customer")
		}
	}
	if review.Id.IsZero() {
		review.Id = primitive.NewObjectID()
	}
	review.CreatedAt = time.Now()
	cp := *review
	f.items = append(f.items, &cp)
	return nil
}

func (f *fakeReviews) ListByRetailer(ctx context.Context, retailerID primitive.ObjectID, page, limit int64) ([]models.Review, int64, error) {
	var out []models.Review
	for _, r := range f.items {
		if r.RetailerID == retailerID {
			out = append(out, *r)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeReviews) RatingSummary(ctx context.Context, retailerID primitive.ObjectID) (float64, int64, error) {
	var sum, total int64
	for _, r := range f.items {
		if r.RetailerID == retailerID {
			sum += int64(r.Rating)
			total++
		}
	}
	if total == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(total), total, nil
}

type pushedEvent struct {
	userID    string
	eventType string
	data      interface{}
}

type fakeNotifier struct {
	events []pushedEvent
}

func (f *fakeNotifier) Push(userID string, eventType string, data interface{}) {
	f.events = append(f.events, pushedEvent{userID: userID, eventType: eventType, data: data})
}

func (f *fakeNotifier) eventTypes() []string {
	var out []string
	for _, e := range f.events {
		out = append(out, e.eventType)
	}
	return out
}

type fakeMailer struct {
	sent []string
}

func (f *fakeMailer) SendOrderConfirmation(to string, order *models.Order) error {
	f.sent = append(f.sent, to)
	return nil
}

type fakeGeocoder struct {
	lng, lat  float64
	formatted string
	err       error
}

func (f *fakeGeocoder) Geocode(ctx context.Context, address string) (float64, float64, string, error) {
	if f.err != nil {
		return 0, 0, "", f.err
	}
	return f.lng, f.lat, f.formatted, nil
}

type fakeGateway struct {
	orderID   string
	createErr error
	refundErr error
	refunds   []string
}

func (f *fakeGateway) CreateOrder(amountPaise int64, currency, receipt string, notes map[string]interface{}) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	return f.orderID, nil
}

func (f *fakeGateway) Refund(paymentID string, amountPaise int64) error {
	if f.refundErr != nil {
		return f.refundErr
	}
	f.refunds = append(f.refunds, paymentID)
	return nil
}
