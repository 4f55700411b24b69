package tool

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrirevive-backend/internal/geocode"
	"agrirevive-backend/internal/llm"
	"agrirevive-backend/internal/medicines"
	"agrirevive-backend/internal/recommend"
	"agrirevive-backend/internal/rotation"
)

type stubPlaces struct {
	places []geocode.Place
}

func (s stubPlaces) Search(context.Context, string) ([]geocode.Place, error) {
	return s.places, nil
}

func (s stubPlaces) Reverse(context.Context, float64, float64) (geocode.Place, error) {
	return geocode.Place{}, geocode.ErrNoResult
}

func newAdvisors(t *testing.T, client llm.Client) *Advisors {
	t.Helper()
	table, err := recommend.DefaultTable()
	require.NoError(t, err)
	crops, err := rotation.DefaultTable()
	require.NoError(t, err)
	return &Advisors{
		Fetcher:   recommend.NewFetcher(client, table, 0),
		Rotation:  rotation.NewAdvisor(crops),
		Medicines: medicines.NewService(client, 0),
		Places:    stubPlaces{places: []geocode.Place{{Lat: 18.52, Lon: 73.85, DisplayName: "Pune, Maharashtra, India", ShortName: "Pune"}}},
	}
}

func TestRecommendWasteFallsBack(t *testing.T) {
	a := newAdvisors(t, llm.PlaceholderClient{})
	_, out, err := a.RecommendWaste(context.Background(), nil, InputRecommendWaste{Category: "Rice", Quantity: 120, Address: "Nashik"})
	require.NoError(t, err)
	assert.Equal(t, recommend.SourceFallback, out.Outcome.Source)
	assert.Len(t, out.Outcome.Recommendations, 3)
}

func TestRecommendWasteValidatesInput(t *testing.T) {
	a := newAdvisors(t, llm.PlaceholderClient{})
	ctx := context.Background()

	_, _, err := a.RecommendWaste(ctx, nil, InputRecommendWaste{Quantity: 10})
	assert.Error(t, err)
	_, _, err = a.RecommendWaste(ctx, nil, InputRecommendWaste{Category: "rice"})
	assert.Error(t, err)
	_, _, err = a.RecommendWaste(ctx, nil, InputRecommendWaste{Category: "rice", Quantity: 1, Lat: 95, Lng: 10})
	assert.ErrorIs(t, err, geocode.ErrInvalidCoordinates)
}

func TestCropRotationTool(t *testing.T) {
	a := newAdvisors(t, llm.PlaceholderClient{})
	_, out, err := a.CropRotation(context.Background(), nil, InputCropRotation{PreviousCrop: "cotton"})
	require.NoError(t, err)
	assert.Equal(t, "Cotton (Kapas)", out.Advice.Name)

	_, _, err = a.CropRotation(context.Background(), nil, InputCropRotation{PreviousCrop: "kale"})
	assert.ErrorIs(t, err, rotation.ErrCropNotFound)
}

func TestMedicineLookupNotFoundIsResult(t *testing.T) {
	client := llm.ClientFunc(func(context.Context, llm.Request) (string, error) {
		return `{"status":"not_found"}`, nil
	})
	a := newAdvisors(t, client)
	_, out, err := a.MedicineLookup(context.Background(), nil, InputMedicineLookup{Name: "qwerty"})
	require.NoError(t, err)
	assert.False(t, out.Found)
	assert.Equal(t, "qwerty", out.Result.Query)
}

func TestClassifyAQITool(t *testing.T) {
	a := newAdvisors(t, llm.PlaceholderClient{})
	_, out, err := a.ClassifyAQI(context.Background(), nil, InputClassifyAQI{Value: 120})
	require.NoError(t, err)
	assert.Equal(t, "Unhealthy for Sensitive Groups", out.Status)

	_, _, err = a.ClassifyAQI(context.Background(), nil, InputClassifyAQI{Value: -3})
	assert.Error(t, err)
}

func TestRegisterOverInMemoryTransport(t *testing.T) {
	ctx := context.Background()
	server := mcp.NewServer(&mcp.Implementation{Name: "agrirevive-test", Version: "v0.0.1"}, nil)
	newAdvisors(t, llm.PlaceholderClient{}).Register(server)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	ss, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	defer ss.Close()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	defer cs.Close()

	tools, err := cs.ListTools(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, tools.Tools, 5)

	res, err := cs.CallTool(ctx, &mcp.CallToolParams{
		Name:      "search_places",
		Arguments: map[string]any{"query": "pune"},
	})
	require.NoError(t, err)
	assert.False(t, res.IsError)
}
