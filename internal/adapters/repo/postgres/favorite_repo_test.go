package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cistech/market/internal/domain"
)

func TestFavoriteAddIsIdempotent(t *testing.T) {
	db := testDB(t)
	repo := NewFavoriteRepo(db)
	vendor := seedVendor(t, db, "300")
	buyer := seedUser(t, db, "301")
	p := seedProduct(t, db, vendor.ID, domain.ProductStatusApproved, "10.00", 5)

	first, err := repo.Add(ctxT(t), buyer.ID, p.ID)
	require.NoError(t, err)
	second, err := repo.Add(ctxT(t), buyer.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var n int64
	require.NoError(t, db.Model(&domain.Favorite{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestFavoriteAddMissingProduct(t *testing.T) {
	db := testDB(t)
	repo := NewFavoriteRepo(db)
	buyer := seedUser(t, db, "302")
	_, err := repo.Add(ctxT(t), buyer.ID, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFavoriteListProductsApprovedOnly(t *testing.T) {
	db := testDB(t)
	repo := NewFavoriteRepo(db)
	vendor := seedVendor(t, db, "303")
	buyer := seedUser(t, db, "304")
	approved := seedProduct(t, db, vendor.ID, domain.ProductStatusApproved, "10.00", 5)
	pending := seedProduct(t, db, vendor.ID, domain.ProductStatusPending, "10.00", 5)

	_, err := repo.Add(ctxT(t), buyer.ID, approved.ID)
	require.NoError(t, err)
	_, err = repo.Add(ctxT(t), buyer.ID, pending.ID)
	require.NoError(t, err)

	products, err := repo.ListProducts(ctxT(t), buyer.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, approved.ID, products[0].ID)
}

func TestFavoriteRemove(t *testing.T) {
	db := testDB(t)
	repo := NewFavoriteRepo(db)
	vendor := seedVendor(t, db, "305")
	buyer := seedUser(t, db, "306")
	p := seedProduct(t, db, vendor.ID, domain.ProductStatusApproved, "10.00", 5)

	_, err := repo.Add(ctxT(t), buyer.ID, p.ID)
	require.NoError(t, err)
	require.NoError(t, repo.Remove(ctxT(t), buyer.ID, p.ID))
	assert.ErrorIs(t, repo.Remove(ctxT(t), buyer.ID, p.ID), domain.ErrNotFound)
}
