package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/scalehouse/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProductRepo(db)
	ctx := context.Background()

	p := testutil.NewTestProduct("Rubber wood A", testutil.WithCode("wood-a"))
	require.NoError(t, repo.Create(ctx, p))

	fetched, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "WOOD-A", fetched.Code)
	assert.Equal(t, "Rubber wood A", fetched.Name)
	assert.True(t, p.CreatedAt.Equal(fetched.CreatedAt))
}

func TestProductRepo_GetByCode_Normalizes(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProductRepo(db)
	ctx := context.Background()

	p := testutil.NewTestProduct("Eucalyptus", testutil.WithCode("EUC01"))
	require.NoError(t, repo.Create(ctx, p))

	fetched, err := repo.GetByCode(ctx, " euc01 ")
	require.NoError(t, err)
	assert.Equal(t, p.ID, fetched.ID)
}

func TestProductRepo_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProductRepo(db)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.GetByCode(ctx, "NOPE")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "nonexistent"), ErrNotFound)
}

func TestProductRepo_DuplicateCodeRejected(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProductRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestProduct("A", testutil.WithCode("WOOD-A"))))
	assert.Error(t, repo.Create(ctx, testutil.NewTestProduct("B", testutil.WithCode("WOOD-A"))))
}

func TestProductRepo_ListOrderedByCode(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProductRepo(db)
	ctx := context.Background()

	for _, code := range []string{"WOOD-B", "EUC01", "WOOD-A"} {
		require.NoError(t, repo.Create(ctx, testutil.NewTestProduct(code, testutil.WithCode(code))))
	}

	products, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, "EUC01", products[0].Code)
	assert.Equal(t, "WOOD-A", products[1].Code)
	assert.Equal(t, "WOOD-B", products[2].Code)
}

func TestProductRepo_Update(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProductRepo(db)
	ctx := context.Background()

	p := testutil.NewTestProduct("Old name")
	require.NoError(t, repo.Create(ctx, p))
	p.Name = "New name"
	require.NoError(t, repo.Update(ctx, p))

	fetched, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "New name", fetched.Name)
}

func TestProductRepo_DeleteCascadesCards(t *testing.T) {
	db := testutil.NewTestDB(t)
	products := NewSQLiteProductRepo(db)
	cards := NewSQLitePriceCardRepo(db)
	ctx := context.Background()

	p := testutil.NewTestProduct("Wood")
	require.NoError(t, products.Create(ctx, p))
	c := testutil.NewTestPriceCard(p.ID)
	require.NoError(t, cards.Create(ctx, c))

	require.NoError(t, products.Delete(ctx, p.ID))
	_, err := cards.GetByID(ctx, c.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
