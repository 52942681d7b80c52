// Package catalog is the client for the external species catalog API.
// It resolves a numeric species ID to display data (name, image, types)
// and caches responses, since the catalog is immutable reference data.
package catalog

//go:generate mockgen -destination=mock/mock_client.go -package=catalogmock github.com/creatureworks/creature-api/internal/clients/catalog Client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/creatureworks/creature-api/internal/errors"
)

// SpeciesData is the catalog's view of a species.
type SpeciesData struct {
	ID    int32
	Name  string
	Image string
	Types []string
}

// Client defines the interface for species catalog lookups
type Client interface {
	// GetSpecies fetches species display data by numeric ID
	GetSpecies(ctx context.Context, speciesID int32) (*SpeciesData, error)
}

// Config contains configuration options for the catalog client.
type Config struct {
	// BaseURL for the species catalog API (optional, defaults to https://pokeapi.co/api/v2/)
	BaseURL string
	// HTTPTimeout for API requests (optional, defaults to 30 seconds)
	HTTPTimeout time.Duration
	// CacheTTL for cached species entries (optional, defaults to 24 hours)
	CacheTTL time.Duration
}

// Validate validates the Config and sets defaults if not provided.
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://pokeapi.co/api/v2/"
	}
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = 30 * time.Second
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 24 * time.Hour
	}
	return nil
}

type cacheEntry struct {
	data    *SpeciesData
	expires time.Time
}

type client struct {
	httpClient *http.Client
	baseURL    string
	cacheTTL   time.Duration

	mu    sync.RWMutex
	cache map[int32]cacheEntry
}

// New creates a new catalog client with the given configuration.
func New(cfg *Config) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &client{
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout},
		baseURL:    cfg.BaseURL,
		cacheTTL:   cfg.CacheTTL,
		cache:      make(map[int32]cacheEntry),
	}, nil
}

// speciesResponse mirrors the slice of the catalog payload we use.
type speciesResponse struct {
	ID      int32  `json:"id"`
	Name    string `json:"name"`
	Sprites struct {
		Other struct {
			OfficialArtwork struct {
				FrontDefault string `json:"front_default"`
			} `json:"official-artwork"`
		} `json:"other"`
		FrontDefault string `json:"front_default"`
	} `json:"sprites"`
	Types []struct {
		Type struct {
			Name string `json:"name"`
		} `json:"type"`
	} `json:"types"`
}

func (c *client) GetSpecies(ctx context.Context, speciesID int32) (*SpeciesData, error) {
	if speciesID <= 0 {
		return nil, errors.InvalidArgumentf("invalid species ID %d", speciesID)
	}

	if cached := c.fromCache(speciesID); cached != nil {
		return cached, nil
	}

	url := fmt.Sprintf("%spokemon/%d", c.baseURL, speciesID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build catalog request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "catalog request for species %d failed", speciesID)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errors.NotFoundf("species %d not found in catalog", speciesID)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Internalf("catalog returned status %d for species %d", resp.StatusCode, speciesID)
	}

	var payload speciesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.Wrapf(err, "failed to decode catalog response")
	}

	data := &SpeciesData{
		ID:    speciesID,
		Name:  payload.Name,
		Image: payload.Sprites.Other.OfficialArtwork.FrontDefault,
	}
	if data.Image == "" {
		data.Image = payload.Sprites.FrontDefault
	}
	for _, t := range payload.Types {
		data.Types = append(data.Types, t.Type.Name)
	}

	c.store(speciesID, data)
	return data, nil
}

func (c *client) fromCache(speciesID int32) *SpeciesData {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.cache[speciesID]
	if !ok || time.Now().After(entry.expires) {
		return nil
	}
	return entry.data
}

func (c *client) store(speciesID int32, data *SpeciesData) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache[speciesID] = cacheEntry{
		data:    data,
		expires: time.Now().Add(c.cacheTTL),
	}
}
