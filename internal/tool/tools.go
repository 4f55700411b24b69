package tool

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"agrirevive-backend/internal/aqi"
	"agrirevive-backend/internal/geocode"
	"agrirevive-backend/internal/medicines"
	"agrirevive-backend/internal/recommend"
	"agrirevive-backend/internal/rotation"
)

// Advisors are the services exposed as MCP tools.
type Advisors struct {
	Fetcher   *recommend.Fetcher
	Rotation  *rotation.Advisor
	Medicines *medicines.Service
	Places    geocode.Geocoder
}

// Register adds every tool to server.
func (a *Advisors) Register(server *mcp.Server) {
	mcp.AddTool(server, MetadataRecommendWaste, a.RecommendWaste)
	mcp.AddTool(server, MetadataCropRotation, a.CropRotation)
	mcp.AddTool(server, MetadataMedicineLookup, a.MedicineLookup)
	mcp.AddTool(server, MetadataClassifyAQI, a.ClassifyAQI)
	mcp.AddTool(server, MetadataSearchPlaces, a.SearchPlaces)
}

// MetadataRecommendWaste describes the recommend_waste_management tool.
var MetadataRecommendWaste = &mcp.Tool{
	Name: "recommend_waste_management",
	Description: "Recommend biofuel, composting and recycling options for a quantity of crop residue. " +
		"Falls back to curated data when the model is unavailable; the source field says which was used.",
}

// InputRecommendWaste is the input for RecommendWaste.
type InputRecommendWaste struct {
	Category string  `json:"category" jsonschema:"crop or waste category, for example rice or wheat"`
	Quantity float64 `json:"quantity" jsonschema:"quantity in kilograms, greater than zero"`
	Address  string  `json:"address,omitempty" jsonschema:"free-text location of the farm"`
	Lat      float64 `json:"lat,omitempty" jsonschema:"latitude in degrees"`
	Lng      float64 `json:"lng,omitempty" jsonschema:"longitude in degrees"`
}

// OutputRecommendWaste wraps the recommendation outcome.
type OutputRecommendWaste struct {
	Outcome recommend.Outcome `json:"outcome"`
}

// RecommendWaste runs the recommendation pipeline.
func (a *Advisors) RecommendWaste(ctx context.Context, _ *mcp.CallToolRequest, in InputRecommendWaste) (*mcp.CallToolResult, OutputRecommendWaste, error) {
	if strings.TrimSpace(in.Category) == "" {
		return nil, OutputRecommendWaste{}, errors.New("category is required")
	}
	if in.Quantity <= 0 {
		return nil, OutputRecommendWaste{}, errors.New("quantity must be greater than zero")
	}
	loc := recommend.Location{Address: in.Address}
	if in.Lat != 0 || in.Lng != 0 {
		if !geocode.ValidCoordinates(in.Lat, in.Lng) {
			return nil, OutputRecommendWaste{}, geocode.ErrInvalidCoordinates
		}
		lat, lng := in.Lat, in.Lng
		loc.Lat, loc.Lng = &lat, &lng
	}
	out := a.Fetcher.Fetch(ctx, recommend.Submission{
		Category: in.Category,
		Quantity: recommend.Quantity(in.Quantity),
		Location: loc,
	})
	return nil, OutputRecommendWaste{Outcome: out}, nil
}

// MetadataCropRotation describes the crop_rotation tool.
var MetadataCropRotation = &mcp.Tool{
	Name:        "crop_rotation",
	Description: "Suggest the next crops and organic fertilizers after a given previous crop.",
}

// InputCropRotation is the input for CropRotation.
type InputCropRotation struct {
	PreviousCrop string `json:"previousCrop" jsonschema:"key of the crop just harvested, for example wheat or pearl-millet"`
}

// OutputCropRotation wraps the rotation advice.
type OutputCropRotation struct {
	Advice rotation.Advice `json:"advice"`
}

// CropRotation looks up rotation advice.
func (a *Advisors) CropRotation(_ context.Context, _ *mcp.CallToolRequest, in InputCropRotation) (*mcp.CallToolResult, OutputCropRotation, error) {
	advice, err := a.Rotation.Advise(in.PreviousCrop)
	if err != nil {
		return nil, OutputCropRotation{}, fmt.Errorf("%s: %w", in.PreviousCrop, err)
	}
	return nil, OutputCropRotation{Advice: advice}, nil
}

// MetadataMedicineLookup describes the medicine_lookup tool.
var MetadataMedicineLookup = &mcp.Tool{
	Name:        "medicine_lookup",
	Description: "Look up a regulated medicine by name. Misspellings are corrected once before giving up.",
}

// InputMedicineLookup is the input for MedicineLookup.
type InputMedicineLookup struct {
	Name string `json:"name" jsonschema:"brand or generic medicine name"`
}

// OutputMedicineLookup wraps the lookup result.
type OutputMedicineLookup struct {
	Found  bool             `json:"found"`
	Result medicines.Result `json:"result"`
}

// MedicineLookup searches for a medicine. Not found is a normal result.
func (a *Advisors) MedicineLookup(ctx context.Context, _ *mcp.CallToolRequest, in InputMedicineLookup) (*mcp.CallToolResult, OutputMedicineLookup, error) {
	res, err := a.Medicines.Lookup(ctx, in.Name)
	if errors.Is(err, medicines.ErrNotFound) {
		return nil, OutputMedicineLookup{Found: false, Result: medicines.Result{Query: in.Name}}, nil
	}
	if err != nil {
		return nil, OutputMedicineLookup{}, err
	}
	return nil, OutputMedicineLookup{Found: true, Result: res}, nil
}

// MetadataClassifyAQI describes the classify_aqi tool.
var MetadataClassifyAQI = &mcp.Tool{
	Name:        "classify_aqi",
	Description: "Classify an air quality index reading into its health band with general advice.",
}

// InputClassifyAQI is the input for ClassifyAQI.
type InputClassifyAQI struct {
	Value float64 `json:"value" jsonschema:"AQI reading between 0 and 1000"`
}

// OutputClassifyAQI is the AQI band and advice.
type OutputClassifyAQI struct {
	Value           float64  `json:"value"`
	Status          string   `json:"status"`
	Recommendations []string `json:"recommendations"`
}

// ClassifyAQI classifies a reading.
func (a *Advisors) ClassifyAQI(_ context.Context, _ *mcp.CallToolRequest, in InputClassifyAQI) (*mcp.CallToolResult, OutputClassifyAQI, error) {
	report, err := aqi.Classify(in.Value)
	if err != nil {
		return nil, OutputClassifyAQI{}, err
	}
	return nil, OutputClassifyAQI{Value: report.Value, Status: report.Status, Recommendations: report.Recommendations}, nil
}

// MetadataSearchPlaces describes the search_places tool.
var MetadataSearchPlaces = &mcp.Tool{
	Name:        "search_places",
	Description: "Search OpenStreetMap for places matching a free-text query. Returns at most five hits.",
}

// InputSearchPlaces is the input for SearchPlaces.
type InputSearchPlaces struct {
	Query string `json:"query" jsonschema:"place name or address"`
}

// OutputSearchPlaces lists matching places.
type OutputSearchPlaces struct {
	Places []geocode.Place `json:"places"`
}

// SearchPlaces runs a place search.
func (a *Advisors) SearchPlaces(ctx context.Context, _ *mcp.CallToolRequest, in InputSearchPlaces) (*mcp.CallToolResult, OutputSearchPlaces, error) {
	places, err := a.Places.Search(ctx, in.Query)
	if err != nil {
		return nil, OutputSearchPlaces{}, err
	}
	return nil, OutputSearchPlaces{Places: places}, nil
}
