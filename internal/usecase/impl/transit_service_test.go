package impl

import (
	"context"
	"testing"
	"time"

	"trackwise/config"
	"trackwise/internal/domain/entity"
	domainerrors "trackwise/internal/domain/errors"
	"trackwise/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTransitClient counts upstream fetches.
type fakeTransitClient struct {
	fetches int
	err     error
}

func (c *fakeTransitClient) StopArrivals(_ context.Context, stopID, routeID string) ([]*entity.StopArrival, error) {
	c.fetches++
	if c.err != nil {
		return nil, c.err
	}

	arrival := time.Now().Add(3 * time.Minute).UTC().Truncate(time.Second)

	return []*entity.StopArrival{
		{
			RouteID:         routeID,
			Destination:     "Inwood - 207 St",
			StopID:          stopID,
			ExpectedArrival: &arrival,
			VehicleRef:      "MTA_1234",
		},
	}, nil
}

func createTestTransitService(client *fakeTransitClient, cache *fakeCache) usecase.TransitUsecase {
	return NewTransitService(TransitServiceParams{
		Client: client,
		Cache:  cache,
		Config: &config.Config{},
		Logger: testLogger,
	})
}

func TestTransitService_CacheMissFetchesAndStores(t *testing.T) {
	client := &fakeTransitClient{}
	cache := newFakeCache()
	service := createTestTransitService(client, cache)

	arrivals, err := service.StopArrivals(context.Background(), "A01N", "A")
	require.NoError(t, err)
	require.Len(t, arrivals, 1)

	assert.Equal(t, "A01N", arrivals[0].StopID)
	assert.Equal(t, 1, client.fetches)
	assert.Contains(t, cache.entries, "transit:A01N:A")
}

func TestTransitService_CacheHitSkipsUpstream(t *testing.T) {
	client := &fakeTransitClient{}
	cache := newFakeCache()
	service := createTestTransitService(client, cache)

	_, err := service.StopArrivals(context.Background(), "A01N", "A")
	require.NoError(t, err)
	_, err = service.StopArrivals(context.Background(), "A01N", "A")
	require.NoError(t, err)

	assert.Equal(t, 1, client.fetches)
}

func TestTransitService_RouteFilterKeysSeparately(t *testing.T) {
	client := &fakeTransitClient{}
	cache := newFakeCache()
	service := createTestTransitService(client, cache)

	_, err := service.StopArrivals(context.Background(), "A01N", "A")
	require.NoError(t, err)
	_, err = service.StopArrivals(context.Background(), "A01N", "")
	require.NoError(t, err)

	assert.Equal(t, 2, client.fetches)
}

func TestTransitService_UpstreamErrorPropagates(t *testing.T) {
	client := &fakeTransitClient{err: domainerrors.ErrUpstreamUnavailable}
	service := createTestTransitService(client, newFakeCache())

	_, err := service.StopArrivals(context.Background(), "A01N", "A")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUpstreamUnavailable))
}
