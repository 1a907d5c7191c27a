package postgres

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cistech/market/internal/domain"
)

func TestCreateOrderSnapshotsPriceAndDecrementsStock(t *testing.T) {
	db := testDB(t)
	repo := NewOrderRepo(db)
	vendor := seedVendor(t, db, "400")
	buyer := seedUser(t, db, "401")
	p := seedProduct(t, db, vendor.ID, domain.ProductStatusApproved, "20.00", 10)

	o, err := repo.Create(ctxT(t), buyer.ID, domain.OrderCreate{
		Address: "Main st 1",
		Items:   []domain.OrderItemInput{{ProductID: p.ID, Quantity: 3}},
	})
	require.NoError(t, err)
	require.Len(t, o.Items, 1)
	assert.True(t, o.TotalPrice.Equal(decimal.RequireFromString("60.00")))
	assert.Equal(t, domain.OrderStatusPending, o.Status)

	var fresh domain.Product
	require.NoError(t, db.First(&fresh, "id = ?", p.ID).Error)
	assert.Equal(t, 7, fresh.Quantity)

	// later repricing must not touch the placed order
	require.NoError(t, db.Model(&domain.Product{}).Where("id = ?", p.ID).
		Update("price", decimal.RequireFromString("99.00")).Error)

	got, err := repo.Get(ctxT(t), o.ID)
	require.NoError(t, err)
	assert.True(t, got.Items[0].UnitPrice.Equal(decimal.RequireFromString("20.00")))
	assert.True(t, got.TotalPrice.Equal(decimal.RequireFromString("60.00")))
}

func TestCreateOrderRollsBackOnInsufficientStock(t *testing.T) {
	db := testDB(t)
	repo := NewOrderRepo(db)
	vendor := seedVendor(t, db, "402")
	buyer := seedUser(t, db, "403")
	ok := seedProduct(t, db, vendor.ID, domain.ProductStatusApproved, "20.00", 10)
	low := seedProduct(t, db, vendor.ID, domain.ProductStatusApproved, "20.00", 1)

	_, err := repo.Create(ctxT(t), buyer.ID, domain.OrderCreate{
		Items: []domain.OrderItemInput{
			{ProductID: ok.ID, Quantity: 2},
			{ProductID: low.ID, Quantity: 5},
		},
	})
	var sErr *domain.StockError
	require.ErrorAs(t, err, &sErr)

	// the first line's decrement must be rolled back with the order
	var fresh domain.Product
	require.NoError(t, db.First(&fresh, "id = ?", ok.ID).Error)
	assert.Equal(t, 10, fresh.Quantity)

	var orders, items int64
	require.NoError(t, db.Model(&domain.Order{}).Count(&orders).Error)
	require.NoError(t, db.Model(&domain.OrderItem{}).Count(&items).Error)
	assert.Zero(t, orders)
	assert.Zero(t, items)
}

func TestCreateOrderRejectsUnapproved(t *testing.T) {
	db := testDB(t)
	repo := NewOrderRepo(db)
	vendor := seedVendor(t, db, "404")
	buyer := seedUser(t, db, "405")
	p := seedProduct(t, db, vendor.ID, domain.ProductStatusDraft, "20.00", 10)

	_, err := repo.Create(ctxT(t), buyer.ID, domain.OrderCreate{
		Items: []domain.OrderItemInput{{ProductID: p.ID, Quantity: 1}},
	})
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestOrderListByUserAndStatus(t *testing.T) {
	db := testDB(t)
	repo := NewOrderRepo(db)
	vendor := seedVendor(t, db, "406")
	buyer := seedUser(t, db, "407")
	p := seedProduct(t, db, vendor.ID, domain.ProductStatusApproved, "5.00", 100)

	first, err := repo.Create(ctxT(t), buyer.ID, domain.OrderCreate{
		Items: []domain.OrderItemInput{{ProductID: p.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	_, err = repo.Create(ctxT(t), buyer.ID, domain.OrderCreate{
		Items: []domain.OrderItemInput{{ProductID: p.ID, Quantity: 2}},
	})
	require.NoError(t, err)
	require.NoError(t, repo.UpdateStatus(ctxT(t), first.ID, domain.OrderStatusPaid))

	all, err := repo.ListByUser(ctxT(t), buyer.ID, "", 0, 10)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	paid, err := repo.ListByUser(ctxT(t), buyer.ID, domain.OrderStatusPaid, 0, 10)
	require.NoError(t, err)
	require.Len(t, paid, 1)
	assert.Equal(t, first.ID, paid[0].ID)
}
