package handler

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/reelmate/reelmate-backend/internal/infrastructure/catalog"
)

type CatalogHandler struct {
	genres *catalog.GenreIndex
}

func NewCatalogHandler(genres *catalog.GenreIndex) *CatalogHandler {
	return &CatalogHandler{
		genres: genres,
	}
}

type genreEntry struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// GetGenres handles GET /catalog/genres
// @Summary Genre catalog
// @Description Known movie genres for building taste profiles
// @Tags catalog
// @Produce json
// @Success 200 {object} map[string][]genreEntry
// @Failure 502 {object} ErrorResponse
// @Router /catalog/genres [get]
func (h *CatalogHandler) GetGenres(c *gin.Context) {
	names, err := h.genres.All(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Error: "genre catalog unavailable",
		})
		return
	}

	entries := make([]genreEntry, 0, len(names))
	for id, name := range names {
		entries = append(entries, genreEntry{ID: id, Name: name})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })

	c.JSON(http.StatusOK, gin.H{"genres": entries})
}
