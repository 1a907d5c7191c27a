package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cistech/market/internal/domain"
)

func TestAdminDeleteUserRefusesSuperadmin(t *testing.T) {
	deleted := false
	uc := &AdminUC{
		Users: &fakeUserRepo{
			FindByIDFn: func(ctx context.Context, id uint) (*domain.User, error) {
				return &domain.User{ID: id, UserType: domain.UserTypeSuperadmin}, nil
			},
			DeleteFn: func(ctx context.Context, id uint) error {
				deleted = true
				return nil
			},
		},
	}
	err := uc.DeleteUser(context.Background(), 1)
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Msg, "superadmin")
	assert.False(t, deleted)
}

func TestAdminDeleteUser(t *testing.T) {
	var deletedID uint
	uc := &AdminUC{
		Users: &fakeUserRepo{
			FindByIDFn: func(ctx context.Context, id uint) (*domain.User, error) {
				return &domain.User{ID: id, UserType: domain.UserTypeUser}, nil
			},
			DeleteFn: func(ctx context.Context, id uint) error {
				deletedID = id
				return nil
			},
		},
	}
	require.NoError(t, uc.DeleteUser(context.Background(), 4))
	assert.EqualValues(t, 4, deletedID)
}
