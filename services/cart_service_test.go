package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/abhinandan-jain01/nearmart/apperrors"
	"github.com/abhinandan-jain01/nearmart/models"
)

func newCartFixture(stock int) (*CartService, *fakeProducts, *models.Product, primitive.ObjectID) {
	product := &models.Product{
		ID:         primitive.NewObjectID(),
		RetailerID: primitive.NewObjectID(),
		Name:       "Milk",
		Price:      45.50,
		Stock:      stock,
		IsActive:   true,
	}
	products := newFakeProducts(product)
	service := NewCartService(newFakeCarts(), products)
	return service, products, product, primitive.NewObjectID()
}

func TestCartGetCreatesEmptyCart(t *testing.T) {
	service, _, _, customerID := newCartFixture(10)

	cart, err := service.Get(context.Background(), customerID)
	require.NoError(t, err)
	assert.Equal(t, customerID, cart.CustomerID)
	assert.Empty(t, cart.Items)
}

func TestCartAddItemSnapshotsPrice(t *testing.T) {
	service, products, product, customerID := newCartFixture(10)

	cart, err := service.AddItem(context.Background(), customerID, product.ID, 2)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 45.50, cart.Items[0].Price)
	assert.Equal(t, 2, cart.Items[0].Quantity)

	// a later price change does not reprice the line
	repriced, _ := products.FindByID(context.Background(), product.ID)
	repriced.Price = 60
	require.NoError(t, products.Update(context.Background(), repriced))

	cart, err = service.Get(context.Background(), customerID)
	require.NoError(t, err)
	assert.Equal(t, 45.50, cart.Items[0].Price)
}

func TestCartAddItemMergesQuantity(t *testing.T) {
	service, _, product, customerID := newCartFixture(10)

	_, err := service.AddItem(context.Background(), customerID, product.ID, 2)
	require.NoError(t, err)
	cart, err := service.AddItem(context.Background(), customerID, product.ID, 3)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestCartAddItemChecksMergedQuantityAgainstStock(t *testing.T) {
	service, _, product, customerID := newCartFixture(5)

	_, err := service.AddItem(context.Background(), customerID, product.ID, 3)
	require.NoError(t, err)

	_, err = service.AddItem(context.Background(), customerID, product.ID, 3)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindConflict))

	cart, err := service.Get(context.Background(), customerID)
	require.NoError(t, err)
	assert.Equal(t, 3, cart.Items[0].Quantity)
}

func TestCartAddItemRejectsInactiveProduct(t *testing.T) {
	service, products, product, customerID := newCartFixture(10)
	delisted, _ := products.FindByID(context.Background(), product.ID)
	delisted.IsActive = false
	require.NoError(t, products.Update(context.Background(), delisted))

	_, err := service.AddItem(context.Background(), customerID, product.ID, 1)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindInvalid))
}

func TestCartAddItemRejectsZeroQuantity(t *testing.T) {
	service, _, product, customerID := newCartFixture(10)
	_, err := service.AddItem(context.Background(), customerID, product.ID, 0)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindInvalid))
}

func TestCartUpdateQuantity(t *testing.T) {
	service, _, product, customerID := newCartFixture(10)
	_, err := service.AddItem(context.Background(), customerID, product.ID, 2)
	require.NoError(t, err)

	cart, err := service.UpdateQuantity(context.Background(), customerID, product.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, cart.Items[0].Quantity)

	_, err = service.UpdateQuantity(context.Background(), customerID, product.ID, 11)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindConflict))
}

func TestCartUpdateQuantityZeroRemovesLine(t *testing.T) {
	service, _, product, customerID := newCartFixture(10)
	_, err := service.AddItem(context.Background(), customerID, product.ID, 2)
	require.NoError(t, err)

	cart, err := service.UpdateQuantity(context.Background(), customerID, product.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCartUpdateQuantityUnknownItem(t *testing.T) {
	service, _, product, customerID := newCartFixture(10)
	_, err := service.AddItem(context.Background(), customerID, product.ID, 1)
	require.NoError(t, err)

	_, err = service.UpdateQuantity(context.Background(), customerID, primitive.NewObjectID(), 2)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
}

func TestCartClear(t *testing.T) {
	service, _, product, customerID := newCartFixture(10)
	_, err := service.AddItem(context.Background(), customerID, product.ID, 2)
	require.NoError(t, err)

	require.NoError(t, service.Clear(context.Background(), customerID))

	cart, err := service.Get(context.Background(), customerID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}
