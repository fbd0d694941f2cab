package tigerweb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/TerritoryScout/TS-Backend/internal/geo/provider"
	"golang.org/x/time/rate"
)

const baseURL = "https://tigerweb.geo.census.gov/arcgis/rest/services/TIGERweb"

// layerSpec maps one hierarchy tier onto a TIGERweb map service layer and the
// attribute used to scope the query to a parent state.
type layerSpec struct {
	path        string
	parentField string
}

var layers = map[string]layerSpec{
	provider.TierState:  {path: "State_County/MapServer/0"},
	provider.TierCounty: {path: "State_County/MapServer/1", parentField: "STUSAB"},
	provider.TierCity:   {path: "Places_CouSub/MapServer/4", parentField: "STUSAB"},
	provider.TierZip:    {path: "PUMA_TAD_TAZ_UGA_ZCTA/MapServer/1", parentField: "STUSAB"},
}

// Client wraps the Census TIGERweb ArcGIS REST API. Requests are rate-limited
// because TIGERweb throttles aggressively and bans chatty clients.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewClient(requestsPerSecond float64) *Client {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 4
	}
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}
}

// Query fetches one tier's features as GeoJSON.
func (c *Client) Query(ctx context.Context, tier, parentKey string) (*provider.FeatureCollection, error) {
	spec, ok := layers[tier]
	if !ok {
		return nil, fmt.Errorf("%w: %s", provider.ErrTierNotSupported, tier)
	}

	where := "1=1"
	if spec.parentField != "" && parentKey != "" {
		where = fmt.Sprintf("%s = '%s'", spec.parentField, sanitizeParent(parentKey))
	}

	params := url.Values{}
	params.Set("where", where)
	params.Set("outFields", "NAME,BASENAME,GEOID")
	params.Set("returnGeometry", "true")
	params.Set("geometryPrecision", "4")
	params.Set("outSR", "4326")
	params.Set("f", "geojson")

	u := fmt.Sprintf("%s/%s/query?%s", baseURL, spec.path, params.Encode())

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tigerweb request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tigerweb returned HTTP %d for tier %s", resp.StatusCode, tier)
	}

	var fc provider.FeatureCollection
	if err := json.NewDecoder(resp.Body).Decode(&fc); err != nil {
		return nil, fmt.Errorf("decoding tigerweb response: %w", err)
	}
	if fc.Type == "" {
		fc.Type = "FeatureCollection"
	}
	return &fc, nil
}

// sanitizeParent strips quote characters from the parent key before it is
// interpolated into the ArcGIS where clause.
func sanitizeParent(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '\'' || r == '"' || r == ';' {
			continue
		}
		out = append(out, r)
	}
	return string(out)
}
