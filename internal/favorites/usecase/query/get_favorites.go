package query

import (
	"github.com/tair/storefront/internal/favorites/domain"
)

// GetFavoritesQuery represents the query for the caller's favorites
type GetFavoritesQuery struct {
	UserID uint
}

// GetFavoritesHandler handles the favorites query, creating the list on
// first access.
type GetFavoritesHandler struct {
	favorites domain.FavoritesRepository
}

// NewGetFavoritesHandler creates a new get favorites handler
func NewGetFavoritesHandler(favorites domain.FavoritesRepository) *GetFavoritesHandler {
	return &GetFavoritesHandler{favorites: favorites}
}

// Handle executes the get favorites query
func (h *GetFavoritesHandler) Handle(q GetFavoritesQuery) (*domain.Favorites, error) {
	return h.favorites.GetOrCreateByUser(q.UserID)
}
