package chromiasdk

// ============================================================================
// Request Types
// ============================================================================

// CredentialsRequest carries a username and password for register/login.
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateColorRequest publishes a new community color.
type CreateColorRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// PaletteRequest creates or fully replaces a palette.
type PaletteRequest struct {
	Name   string         `json:"name"`
	Colors []PaletteColor `json:"colors"`
}

// ============================================================================
// Response Types
// ============================================================================

// UserInfo is the sanitized public view of an account.
type UserInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// AuthResponse is returned from a successful login.
type AuthResponse struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}

// Color is one published community color.
type Color struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	Author    string `json:"author"`
	CreatedAt string `json:"createdAt"`
}

// Pagination describes one page of the community feed.
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	HasMore    bool `json:"hasMore"`
	TotalPages int  `json:"totalPages"`
}

// CommunityColorsResponse is one page of the public feed.
type CommunityColorsResponse struct {
	Colors     []Color    `json:"colors"`
	Pagination Pagination `json:"pagination"`
}

// CountResponse carries the total number of published colors.
type CountResponse struct {
	Count int `json:"count"`
}

// PaletteColor is one entry inside a palette. The hex value travels
// under "color" to match the color endpoints.
type PaletteColor struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Palette is a saved color palette.
type Palette struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Colors    []PaletteColor `json:"colors"`
	Author    string         `json:"author"`
	CreatedAt string         `json:"createdAt"`
	UpdatedAt string         `json:"updatedAt"`
}

// MessageResponse is a bare confirmation message, returned from
// deletes.
type MessageResponse struct {
	Message string `json:"message"`
}

// ServerInfo is the root endpoint banner.
type ServerInfo struct {
	Message string `json:"message"`
	Version string `json:"version"`
	Status  string `json:"status"`
}

// HealthChecks reports the state of critical dependencies.
type HealthChecks struct {
	Database string `json:"database"`
}

// HealthResponse is returned from the livez and readyz probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// ColorDetails is the enriched view of a single color, shaped after the
// upstream color API's response with only the fields Chromia uses.
type ColorDetails struct {
	Hex  string `json:"hex"`
	Name string `json:"name"`
	RGB  string `json:"rgb"`
	HSL  string `json:"hsl"`
}
