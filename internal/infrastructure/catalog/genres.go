package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	genreCacheKey = "catalog:genres"
	genreCacheTTL = 24 * time.Hour
)

// GenreIndex maps catalog genre ids to names. The mapping is fetched from
// the movie catalog API once per process, guarded for concurrent first
// access, and shared through Redis across instances. A failed load is
// retried on the next lookup instead of wedging the process.
type GenreIndex struct {
	httpClient *http.Client
	redis      *redis.Client
	apiKey     string
	baseURL    string

	mu     sync.RWMutex
	names  map[int]string
	loaded bool
}

// NewGenreIndex builds the index. redisClient may be nil; the index then
// keeps an in-process copy only.
func NewGenreIndex(redisClient *redis.Client, apiKey, baseURL string) *GenreIndex {
	return &GenreIndex{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		redis:      redisClient,
		apiKey:     apiKey,
		baseURL:    baseURL,
	}
}

// Name resolves a genre id to its canonical name.
func (g *GenreIndex) Name(ctx context.Context, id int) (string, bool) {
	if err := g.ensureLoaded(ctx); err != nil {
		log.Warn().Err(err).Msg("genre index unavailable")
		return "", false
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	name, ok := g.names[id]
	return name, ok
}

// All returns a copy of the full id-to-name mapping.
func (g *GenreIndex) All(ctx context.Context) (map[int]string, error) {
	if err := g.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make(map[int]string, len(g.names))
	for id, name := range g.names {
		out[id] = name
	}
	return out, nil
}

func (g *GenreIndex) ensureLoaded(ctx context.Context) error {
	g.mu.RLock()
	loaded := g.loaded
	g.mu.RUnlock()
	if loaded {
		return nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.loaded {
		return nil
	}

	names, err := g.loadFromRedis(ctx)
	if err != nil || names == nil {
		names, err = g.fetchFromCatalog(ctx)
		if err != nil {
			return err
		}
		g.storeInRedis(ctx, names)
	}

	g.names = names
	g.loaded = true
	return nil
}

func (g *GenreIndex) loadFromRedis(ctx context.Context) (map[int]string, error) {
	if g.redis == nil {
		return nil, nil
	}
	raw, err := g.redis.Get(ctx, genreCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Msg("genre cache read failed")
		}
		return nil, nil
	}
	var names map[int]string
	if err := json.Unmarshal(raw, &names); err != nil {
		return nil, nil
	}
	return names, nil
}

func (g *GenreIndex) storeInRedis(ctx context.Context, names map[int]string) {
	if g.redis == nil {
		return
	}
	raw, err := json.Marshal(names)
	if err != nil {
		return
	}
	if err := g.redis.Set(ctx, genreCacheKey, raw, genreCacheTTL).Err(); err != nil {
		log.Warn().Err(err).Msg("genre cache write failed")
	}
}

func (g *GenreIndex) fetchFromCatalog(ctx context.Context) (map[int]string, error) {
	url := fmt.Sprintf("%s/genre/movie/list?api_key=%s", g.baseURL, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch genre list: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog genre list returned status %d", resp.StatusCode)
	}

	var payload struct {
		Genres []struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
		} `json:"genres"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode genre list: %w", err)
	}

	names := make(map[int]string, len(payload.Genres))
	for _, genre := range payload.Genres {
		names[genre.ID] = genre.Name
	}
	return names, nil
}
