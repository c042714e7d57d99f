package service

import (
	"context"
	"errors"
	"testing"

	"github.com/segyhp/dealer-loans/internal/domain"
	"github.com/segyhp/dealer-loans/internal/mocks"
	customError "github.com/segyhp/dealer-loans/pkg/errors"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAddDealership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := NewDealershipService(env.dealerships, env.log)

	d, err := svc.AddDealership(ctx, DealershipRequest{Name: " Sur Motors ", Code: " sur ", Phone: "099"})
	require.NoError(t, err)
	assert.Equal(t, domain.Dealership{ID: 2, Name: "Sur Motors", Code: "SUR", Phone: "099"}, d)

	stored, err := svc.GetDealership(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, d, stored)

	_, err = svc.AddDealership(ctx, DealershipRequest{Name: "Other", Code: "acg"})
	assert.ErrorIs(t, err, customError.ErrAlreadyExists)

	all, err := svc.ListDealerships(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestAddDealership_IDIsMaxPlusOne(t *testing.T) {
	repo := &mocks.MockDealershipRepository{}
	repo.On("LoadAll", mock.Anything).Return([]domain.Dealership{
		{ID: 7, Code: "ACG"},
		{ID: 3, Code: "SUR"},
	}, nil)
	repo.On("Insert", mock.Anything, mock.MatchedBy(func(d domain.Dealership) bool {
		return d.ID == 8 && d.Code == "NOR"
	})).Return(nil)

	svc := NewDealershipService(repo, logrus.New())
	d, err := svc.AddDealership(context.Background(), DealershipRequest{Name: "Norte", Code: "NOR"})
	require.NoError(t, err)
	assert.Equal(t, 8, d.ID)
	repo.AssertExpectations(t)
}

func TestEditDealership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := NewDealershipService(env.dealerships, env.log)
	_, err := svc.AddDealership(ctx, DealershipRequest{Name: "Sur", Code: "SUR"})
	require.NoError(t, err)

	// Keeping its own code is allowed.
	d, err := svc.EditDealership(ctx, 1, DealershipRequest{Name: "ACG Renamed", Code: "ACG", Phone: "1"})
	require.NoError(t, err)
	assert.Equal(t, "ACG Renamed", d.Name)

	_, err = svc.EditDealership(ctx, 1, DealershipRequest{Name: "ACG", Code: "SUR"})
	assert.ErrorIs(t, err, customError.ErrAlreadyExists)

	_, err = svc.EditDealership(ctx, 9, DealershipRequest{Name: "Ghost", Code: "GHO"})
	assert.ErrorIs(t, err, customError.ErrNotFound)
}

func TestListDealerships_StorageError(t *testing.T) {
	repo := &mocks.MockDealershipRepository{}
	repo.On("LoadAll", mock.Anything).Return(nil, customError.WrapStorageError(errors.New("boom")))

	svc := NewDealershipService(repo, logrus.New())
	_, err := svc.ListDealerships(context.Background())
	assert.ErrorIs(t, err, customError.ErrStorage)
}
