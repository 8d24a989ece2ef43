package command

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	catalogdomain "github.com/tair/storefront/internal/catalog/domain"
	catalogrepo "github.com/tair/storefront/internal/catalog/repository"
	"github.com/tair/storefront/internal/favorites/domain"
	favoritesrepo "github.com/tair/storefront/internal/favorites/repository"
	identitydomain "github.com/tair/storefront/internal/identity/domain"
	identityrepo "github.com/tair/storefront/internal/identity/repository"
	"github.com/tair/storefront/pkg/httperr"
)

type favoritesFixture struct {
	db        *gorm.DB
	favorites *favoritesrepo.GormFavoritesRepository
	add       *AddItemHandler
}

func setupFavorites(t *testing.T) favoritesFixture {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, identityrepo.NewGormUserRepository(db).AutoMigrate())
	require.NoError(t, catalogrepo.NewGormCategoryRepository(db).AutoMigrate())
	products := catalogrepo.NewGormProductRepository(db)
	require.NoError(t, products.AutoMigrate())
	favorites := favoritesrepo.NewGormFavoritesRepository(db)
	require.NoError(t, favorites.AutoMigrate())

	require.NoError(t, db.Create(&identitydomain.User{
		Username: "alice", Email: "alice@example.com", Password: "x",
		PhoneNumber: "+77001234567", Status: "simple", IsActive: true,
		DateRegister: time.Now(),
	}).Error)
	require.NoError(t, db.Create(&identitydomain.User{
		Username: "bob", Email: "bob@example.com", Password: "x",
		PhoneNumber: "+77007654321", Status: "simple", IsActive: true,
		DateRegister: time.Now(),
	}).Error)
	require.NoError(t, db.Create(&catalogdomain.Category{CategoryName: "Electronics"}).Error)
	require.NoError(t, db.Create(&catalogdomain.SubCategory{SubcategoryName: "Phones", CategoryID: 1}).Error)
	require.NoError(t, db.Create(&catalogdomain.Product{
		ProductName: "Budget Phone", Price: 100, SubCategoryID: 1, Article: 1001, CreatedDate: time.Now(),
	}).Error)

	return favoritesFixture{db: db, favorites: favorites, add: NewAddItemHandler(favorites, products)}
}

func TestAddFavoriteIsIdempotent(t *testing.T) {
	f := setupFavorites(t)

	first, err := f.add.Handle(AddItemCommand{UserID: 1, ProductID: 1})
	require.NoError(t, err)
	second, err := f.add.Handle(AddItemCommand{UserID: 1, ProductID: 1})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	list, err := f.favorites.GetOrCreateByUser(1)
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
}

func TestAddFavoriteUnknownProduct(t *testing.T) {
	f := setupFavorites(t)

	_, err := f.add.Handle(AddItemCommand{UserID: 1, ProductID: 99})
	require.Error(t, err)
	assert.Equal(t, httperr.KindValidation, httperr.From(err).Kind)
}

func TestFavoritesListsAreSeparatePerUser(t *testing.T) {
	f := setupFavorites(t)

	_, err := f.add.Handle(AddItemCommand{UserID: 1, ProductID: 1})
	require.NoError(t, err)

	bob, err := f.favorites.GetOrCreateByUser(2)
	require.NoError(t, err)
	assert.Empty(t, bob.Items)
}

func TestRemoveForeignFavoriteReadsAsAbsent(t *testing.T) {
	f := setupFavorites(t)

	item, err := f.add.Handle(AddItemCommand{UserID: 1, ProductID: 1})
	require.NoError(t, err)

	remove := NewRemoveItemHandler(f.favorites)
	err = remove.Handle(RemoveItemCommand{ItemID: item.ID, UserID: 2})
	require.Error(t, err)
	assert.Equal(t, httperr.KindNotFound, httperr.From(err).Kind)

	// The owner can remove it
	require.NoError(t, remove.Handle(RemoveItemCommand{ItemID: item.ID, UserID: 1}))
	list, err := f.favorites.GetOrCreateByUser(1)
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

func TestUserDeleteCascadesToFavorites(t *testing.T) {
	f := setupFavorites(t)

	_, err := f.add.Handle(AddItemCommand{UserID: 1, ProductID: 1})
	require.NoError(t, err)

	require.NoError(t, identityrepo.NewGormUserRepository(f.db).Delete(1))

	var listCount, itemCount int64
	f.db.Model(&domain.Favorites{}).Count(&listCount)
	f.db.Model(&domain.FavoriteItem{}).Count(&itemCount)
	assert.Equal(t, int64(0), listCount)
	assert.Equal(t, int64(0), itemCount)
}
