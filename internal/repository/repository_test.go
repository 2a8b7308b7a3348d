package repository_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmarket/storecore/internal/codec"
	"github.com/vmarket/storecore/internal/domain"
	"github.com/vmarket/storecore/internal/repository"
)

func productKey(p domain.Product) int64 { return p.ID }

func seedProducts() []domain.Product {
	return []domain.Product{
		{ID: 1, Name: "Laptop Basic", Price: 3200, Type: domain.ProductElectronic, StockQuantity: 10},
		{ID: 2, Name: "Clean Architecture", Price: 65.5, Type: domain.ProductBooks, StockQuantity: 25},
		{ID: 3, Name: "Casual Shirt", Price: 150, Type: domain.ProductClothing, StockQuantity: 20},
	}
}

func newRepo(t *testing.T, path string, seed func() []domain.Product) *repository.Repository[domain.Product] {
	t.Helper()
	return repository.New("product", path, codec.ProductCodec{}, productKey, seed)
}

func TestLoadSeedsWhenFileMissing(t *testing.T) {
	repo := newRepo(t, filepath.Join(t.TempDir(), "products.txt"), seedProducts)

	require.NoError(t, repo.LoadAll())
	assert.Equal(t, 3, repo.Count())

	p, ok := repo.FindByID(1)
	require.True(t, ok)
	assert.Equal(t, "Laptop Basic", p.Name)
}

func TestLoadSeedsWhenFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.txt")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	repo := newRepo(t, path, seedProducts)
	require.NoError(t, repo.LoadAll())
	assert.Equal(t, 3, repo.Count())
}

func TestLoadNoSeedLeavesStoreEmpty(t *testing.T) {
	repo := newRepo(t, filepath.Join(t.TempDir(), "products.txt"), nil)
	require.NoError(t, repo.LoadAll())
	assert.Zero(t, repo.Count())
}

func TestLoadParsesWellFormedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.txt")
	content := "1;Laptop Basic;3200;10;ELECTRONIC;work laptop\n" +
		"2;Clean Architecture;65.5;25;BOOKS;handbook\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	repo := newRepo(t, path, seedProducts)
	require.NoError(t, repo.LoadAll())

	// The seed must not fire for a non-empty file.
	assert.Equal(t, 2, repo.Count())

	p, ok := repo.FindByID(2)
	require.True(t, ok)
	assert.Equal(t, 65.5, p.Price)
	assert.Equal(t, 25, p.StockQuantity)
}

func TestLoadReportsLineNumberAndKeepsPartialProgress(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.txt")
	content := "1;Laptop Basic;3200;10;ELECTRONIC;work laptop\n" +
		"2;Clean Architecture;65.5;25;BOOKS;handbook\n" +
		"3;Casual Shirt;150;20;CLOTHING\n" // five fields
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	repo := newRepo(t, path, seedProducts)
	err := repo.LoadAll()
	require.Error(t, err)

	var pe *domain.PersistenceError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 3, pe.Line)
	assert.Equal(t, path, pe.File)

	// Lines decoded before the failure stay loaded.
	assert.Equal(t, 2, repo.Count())
	_, ok := repo.FindByID(3)
	assert.False(t, ok)
}

func TestLoadStopsAtFirstBadLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.txt")
	content := "1;Laptop Basic;3200;10;ELECTRONIC;work laptop\n" +
		"2;Clean Architecture;not-a-price;25;BOOKS;handbook\n" +
		"3;Casual Shirt;150;20;CLOTHING;cotton\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	repo := newRepo(t, path, seedProducts)
	err := repo.LoadAll()
	require.Error(t, err)

	var pe *domain.PersistenceError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 2, pe.Line)

	// Nothing past the failing line is populated.
	assert.Equal(t, 1, repo.Count())
}

func TestSaveAllRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.txt")

	src := newRepo(t, path, nil)
	for _, p := range seedProducts() {
		src.Save(p)
	}
	require.NoError(t, src.SaveAll())

	dst := newRepo(t, path, nil)
	require.NoError(t, dst.LoadAll())
	assert.Equal(t, src.Count(), dst.Count())
	assert.ElementsMatch(t, src.FindAll(), dst.FindAll())
}

func TestSaveAllOverwritesRemovedEntities(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.txt")

	repo := newRepo(t, path, nil)
	for _, p := range seedProducts() {
		repo.Save(p)
	}
	require.NoError(t, repo.SaveAll())

	// Deletion is in-memory only until the next full save.
	repo.Delete(2)
	require.NoError(t, repo.SaveAll())

	reloaded := newRepo(t, path, nil)
	require.NoError(t, reloaded.LoadAll())
	assert.Equal(t, 2, reloaded.Count())
	_, ok := reloaded.FindByID(2)
	assert.False(t, ok)
}

func TestSaveUpsertsByID(t *testing.T) {
	repo := newRepo(t, filepath.Join(t.TempDir(), "products.txt"), nil)

	repo.Save(domain.Product{ID: 5, Name: "Old Name", Price: 10, Type: domain.ProductBooks})
	repo.Save(domain.Product{ID: 5, Name: "New Name", Price: 12, Type: domain.ProductBooks})

	assert.Equal(t, 1, repo.Count())
	p, ok := repo.FindByID(5)
	require.True(t, ok)
	assert.Equal(t, "New Name", p.Name)
}

func TestFindAllReturnsDefensiveCopy(t *testing.T) {
	repo := newRepo(t, filepath.Join(t.TempDir(), "products.txt"), nil)
	repo.Save(domain.Product{ID: 1, Name: "Laptop Basic", Price: 3200, Type: domain.ProductElectronic})

	all := repo.FindAll()
	require.Len(t, all, 1)
	all[0].Name = "mutated"

	p, _ := repo.FindByID(1)
	assert.Equal(t, "Laptop Basic", p.Name)
}

func TestDelete(t *testing.T) {
	repo := newRepo(t, filepath.Join(t.TempDir(), "products.txt"), nil)
	repo.Save(domain.Product{ID: 1, Name: "Laptop Basic", Price: 3200, Type: domain.ProductElectronic})

	assert.True(t, repo.Delete(1))
	assert.False(t, repo.Delete(1))
	assert.Zero(t, repo.Count())
}

func TestMaxID(t *testing.T) {
	repo := newRepo(t, filepath.Join(t.TempDir(), "products.txt"), nil)
	assert.Zero(t, repo.MaxID())

	repo.Save(domain.Product{ID: 4, Name: "A", Price: 1, Type: domain.ProductBooks})
	repo.Save(domain.Product{ID: 9, Name: "B", Price: 1, Type: domain.ProductBooks})
	repo.Save(domain.Product{ID: 2, Name: "C", Price: 1, Type: domain.ProductBooks})
	assert.Equal(t, int64(9), repo.MaxID())
}
