package chromiasdk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Brickle-Pickle/Chromia/pkg/colorx"
)

// DefaultColorInfoURL is the public color naming API.
const DefaultColorInfoURL = "https://www.thecolorapi.com"

// ColorInfoClient resolves a hex value to a named color via an upstream
// lookup service. Lookup never fails: when the upstream is unreachable
// or returns garbage, the details are computed locally instead.
type ColorInfoClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewColorInfoClient creates a lookup client against the public API.
func NewColorInfoClient() *ColorInfoClient {
	return &ColorInfoClient{
		BaseURL: DefaultColorInfoURL,
		HTTPClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// upstream response, trimmed to the fields Chromia reads.
type colorAPIResponse struct {
	Hex struct {
		Value string `json:"value"`
	} `json:"hex"`
	Name struct {
		Value string `json:"value"`
	} `json:"name"`
	RGB struct {
		Value string `json:"value"`
	} `json:"rgb"`
	HSL struct {
		Value string `json:"value"`
	} `json:"hsl"`
}

// Lookup fetches details for a hex color, falling back to local math on
// any upstream failure.
func (c *ColorInfoClient) Lookup(ctx context.Context, hex string) ColorDetails {
	clean := strings.TrimPrefix(strings.TrimSpace(hex), "#")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.BaseURL+"/id?hex="+url.QueryEscape(clean), nil)
	if err != nil {
		return localColorDetails(hex)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return localColorDetails(hex)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return localColorDetails(hex)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return localColorDetails(hex)
	}

	var upstream colorAPIResponse
	if err := json.Unmarshal(body, &upstream); err != nil || upstream.Hex.Value == "" {
		return localColorDetails(hex)
	}

	return ColorDetails{
		Hex:  upstream.Hex.Value,
		Name: upstream.Name.Value,
		RGB:  upstream.RGB.Value,
		HSL:  upstream.HSL.Value,
	}
}

// localColorDetails derives details from the hex value alone. The name
// falls back to the hex string since there is no naming table locally.
func localColorDetails(hex string) ColorDetails {
	rgb, err := colorx.ParseHex(strings.TrimSpace(hex))
	if err != nil {
		return ColorDetails{Hex: hex, Name: hex}
	}

	hsl := rgb.HSL()
	return ColorDetails{
		Hex:  rgb.Hex(),
		Name: rgb.Hex(),
		RGB:  fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B),
		HSL: fmt.Sprintf("hsl(%d, %d%%, %d%%)",
			int(math.Round(hsl.H)),
			int(math.Round(hsl.S*100)),
			int(math.Round(hsl.L*100))),
	}
}
