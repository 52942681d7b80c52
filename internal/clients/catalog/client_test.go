package catalog_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/creatureworks/creature-api/internal/clients/catalog"
	"github.com/creatureworks/creature-api/internal/errors"
)

type ClientTestSuite struct {
	suite.Suite
	server *httptest.Server
	client catalog.Client
	hits   atomic.Int64
	ctx    context.Context
}

func (s *ClientTestSuite) SetupTest() {
	s.hits.Store(0)
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.hits.Add(1)
		switch r.URL.Path {
		case "/pokemon/25":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"id": 25,
				"name": "pikachu",
				"sprites": {
					"front_default": "https://img.example/25-small.png",
					"other": {"official-artwork": {"front_default": "https://img.example/25.png"}}
				},
				"types": [{"type": {"name": "electric"}}]
			}`))
		case "/pokemon/7":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"id": 7,
				"name": "squirtle",
				"sprites": {"front_default": "https://img.example/7-small.png", "other": {"official-artwork": {"front_default": ""}}},
				"types": [{"type": {"name": "water"}}]
			}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	client, err := catalog.New(&catalog.Config{
		BaseURL:     s.server.URL + "/",
		HTTPTimeout: 5 * time.Second,
	})
	s.Require().NoError(err)
	s.client = client
	s.ctx = context.Background()
}

func (s *ClientTestSuite) TearDownTest() {
	s.server.Close()
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func (s *ClientTestSuite) TestGetSpecies() {
	data, err := s.client.GetSpecies(s.ctx, 25)
	s.Require().NoError(err)
	s.Equal(int32(25), data.ID)
	s.Equal("pikachu", data.Name)
	s.Equal("https://img.example/25.png", data.Image)
	s.Equal([]string{"electric"}, data.Types)
}

func (s *ClientTestSuite) TestGetSpeciesFallsBackToDefaultSprite() {
	data, err := s.client.GetSpecies(s.ctx, 7)
	s.Require().NoError(err)
	s.Equal("https://img.example/7-small.png", data.Image)
}

func (s *ClientTestSuite) TestGetSpeciesCaches() {
	_, err := s.client.GetSpecies(s.ctx, 25)
	s.Require().NoError(err)
	_, err = s.client.GetSpecies(s.ctx, 25)
	s.Require().NoError(err)

	s.Equal(int64(1), s.hits.Load())
}

func (s *ClientTestSuite) TestGetSpeciesNotFound() {
	_, err := s.client.GetSpecies(s.ctx, 9999)
	s.True(errors.IsNotFound(err))
}

func (s *ClientTestSuite) TestGetSpeciesInvalidID() {
	_, err := s.client.GetSpecies(s.ctx, 0)
	s.True(errors.IsInvalidArgument(err))
}
