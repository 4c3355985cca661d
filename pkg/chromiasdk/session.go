package chromiasdk

import (
	"context"
	"net/http"
	"sync"
)

// Session is an authenticated handle on a Chromia account. It is safe
// for concurrent use; the token and user snapshot sit behind a lock so
// a session can be shared across goroutines.
type Session struct {
	client *Client

	mu    sync.RWMutex
	token string
	user  UserInfo
}

func newSession(client *Client, token string, user UserInfo) *Session {
	return &Session{client: client, token: token, user: user}
}

// Token returns the bearer token backing this session.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the cached user snapshot from login. CurrentUser hits
// the server instead.
func (s *Session) User() UserInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// CurrentUser resolves the session against the server, confirming the
// token still maps to a live account.
func (s *Session) CurrentUser(ctx context.Context) (UserInfo, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/api/users/current", nil)
	if err != nil {
		return UserInfo{}, err
	}

	var user UserInfo
	if err := decodeJSON(resp, &user, http.StatusOK); err != nil {
		return UserInfo{}, err
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()

	return user, nil
}

// CreateColor publishes a new community color.
func (s *Session) CreateColor(ctx context.Context, name, hex string) (Color, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/api/colors/create", CreateColorRequest{
		Name:  name,
		Color: hex,
	})
	if err != nil {
		return Color{}, err
	}

	var color Color
	if err := decodeJSON(resp, &color, http.StatusCreated); err != nil {
		return Color{}, err
	}
	return color, nil
}

// OwnColors lists the colors this account has published, newest first.
func (s *Session) OwnColors(ctx context.Context) ([]Color, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/api/colors", nil)
	if err != nil {
		return nil, err
	}

	var colors []Color
	if err := decodeJSON(resp, &colors, http.StatusOK); err != nil {
		return nil, err
	}
	return colors, nil
}

// CreatePalette stores a new palette.
func (s *Session) CreatePalette(ctx context.Context, name string, colors []PaletteColor) (Palette, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/api/palettes/create", PaletteRequest{
		Name:   name,
		Colors: colors,
	})
	if err != nil {
		return Palette{}, err
	}

	var palette Palette
	if err := decodeJSON(resp, &palette, http.StatusCreated); err != nil {
		return Palette{}, err
	}
	return palette, nil
}

// OwnPalettes lists this account's palettes, newest first.
func (s *Session) OwnPalettes(ctx context.Context) ([]Palette, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/api/palettes", nil)
	if err != nil {
		return nil, err
	}

	var palettes []Palette
	if err := decodeJSON(resp, &palettes, http.StatusOK); err != nil {
		return nil, err
	}
	return palettes, nil
}

// Palette fetches one palette this account owns.
func (s *Session) Palette(ctx context.Context, id string) (Palette, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/api/palettes/"+id, nil)
	if err != nil {
		return Palette{}, err
	}

	var palette Palette
	if err := decodeJSON(resp, &palette, http.StatusOK); err != nil {
		return Palette{}, err
	}
	return palette, nil
}

// UpdatePalette replaces a palette's name and colors wholesale.
func (s *Session) UpdatePalette(ctx context.Context, id, name string, colors []PaletteColor) (Palette, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPut, "/api/palettes/"+id, PaletteRequest{
		Name:   name,
		Colors: colors,
	})
	if err != nil {
		return Palette{}, err
	}

	var palette Palette
	if err := decodeJSON(resp, &palette, http.StatusOK); err != nil {
		return Palette{}, err
	}
	return palette, nil
}

// DeletePalette removes a palette.
func (s *Session) DeletePalette(ctx context.Context, id string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/api/palettes/"+id, nil)
	if err != nil {
		return err
	}

	var msg MessageResponse
	return decodeJSON(resp, &msg, http.StatusOK)
}
