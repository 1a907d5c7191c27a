package postgres

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cistech/market/internal/domain"
)

func TestAddItemMergesQuantities(t *testing.T) {
	db := testDB(t)
	repo := NewBasketRepo(db)
	vendor := seedVendor(t, db, "200")
	buyer := seedUser(t, db, "201")
	p := seedProduct(t, db, vendor.ID, domain.ProductStatusApproved, "10.00", 5)

	item, err := repo.AddItem(ctxT(t), buyer.ID, p.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)

	item, err = repo.AddItem(ctxT(t), buyer.ID, p.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 4, item.Quantity)

	// combined total would exceed stock; the existing quantity survives
	_, err = repo.AddItem(ctxT(t), buyer.ID, p.ID, 2)
	var sErr *domain.StockError
	require.ErrorAs(t, err, &sErr)
	assert.Equal(t, 5, sErr.Available)
	assert.Equal(t, 6, sErr.Requested)

	b, err := repo.GetWithItems(ctxT(t), buyer.ID)
	require.NoError(t, err)
	require.Len(t, b.Items, 1)
	assert.Equal(t, 4, b.Items[0].Quantity)
}

func TestAddItemRejectsUnapproved(t *testing.T) {
	db := testDB(t)
	repo := NewBasketRepo(db)
	vendor := seedVendor(t, db, "202")
	buyer := seedUser(t, db, "203")
	p := seedProduct(t, db, vendor.ID, domain.ProductStatusPending, "10.00", 5)

	_, err := repo.AddItem(ctxT(t), buyer.ID, p.ID, 1)
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestAddItemMissingProduct(t *testing.T) {
	db := testDB(t)
	repo := NewBasketRepo(db)
	buyer := seedUser(t, db, "204")
	_, err := repo.AddItem(ctxT(t), buyer.ID, 999, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBasketTotalsFollowCurrentPrice(t *testing.T) {
	db := testDB(t)
	repo := NewBasketRepo(db)
	vendor := seedVendor(t, db, "205")
	buyer := seedUser(t, db, "206")
	p := seedProduct(t, db, vendor.ID, domain.ProductStatusApproved, "10.00", 10)

	_, err := repo.AddItem(ctxT(t), buyer.ID, p.ID, 3)
	require.NoError(t, err)

	b, err := repo.GetWithItems(ctxT(t), buyer.ID)
	require.NoError(t, err)
	assert.True(t, b.TotalPrice().Equal(decimal.RequireFromString("30.00")))

	// vendor repricing reflects immediately in the stored basket
	require.NoError(t, db.Model(&domain.Product{}).Where("id = ?", p.ID).
		Update("price", decimal.RequireFromString("12.50")).Error)

	b, err = repo.GetWithItems(ctxT(t), buyer.ID)
	require.NoError(t, err)
	assert.True(t, b.TotalPrice().Equal(decimal.RequireFromString("37.50")))
	assert.Equal(t, 3, b.TotalQuantity())
}

func TestUpdateItemSetsAbsoluteQuantity(t *testing.T) {
	db := testDB(t)
	repo := NewBasketRepo(db)
	vendor := seedVendor(t, db, "207")
	buyer := seedUser(t, db, "208")
	p := seedProduct(t, db, vendor.ID, domain.ProductStatusApproved, "10.00", 5)

	item, err := repo.AddItem(ctxT(t), buyer.ID, p.ID, 4)
	require.NoError(t, err)

	updated, err := repo.UpdateItem(ctxT(t), buyer.ID, item.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.Quantity)

	_, err = repo.UpdateItem(ctxT(t), buyer.ID, item.ID, 6)
	var sErr *domain.StockError
	require.ErrorAs(t, err, &sErr)
}

func TestBasketItemsAreScopedToOwner(t *testing.T) {
	db := testDB(t)
	repo := NewBasketRepo(db)
	vendor := seedVendor(t, db, "209")
	alice := seedUser(t, db, "210")
	bob := seedUser(t, db, "211")
	p := seedProduct(t, db, vendor.ID, domain.ProductStatusApproved, "10.00", 5)

	item, err := repo.AddItem(ctxT(t), alice.ID, p.ID, 2)
	require.NoError(t, err)

	_, err = repo.UpdateItem(ctxT(t), bob.ID, item.ID, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, repo.RemoveItem(ctxT(t), bob.ID, item.ID), domain.ErrNotFound)
}

func TestClearBasket(t *testing.T) {
	db := testDB(t)
	repo := NewBasketRepo(db)
	vendor := seedVendor(t, db, "212")
	buyer := seedUser(t, db, "213")
	p := seedProduct(t, db, vendor.ID, domain.ProductStatusApproved, "10.00", 5)

	_, err := repo.AddItem(ctxT(t), buyer.ID, p.ID, 2)
	require.NoError(t, err)
	require.NoError(t, repo.Clear(ctxT(t), buyer.ID))

	b, err := repo.GetWithItems(ctxT(t), buyer.ID)
	require.NoError(t, err)
	assert.Empty(t, b.Items)
}
