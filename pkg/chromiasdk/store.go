package chromiasdk

import (
	"context"
	"errors"
	"sync"
)

// Store is a client-side data store for applications built on the SDK.
// It owns the session, the palette cache, and the community feed, and
// notifies subscribers after every state change so UIs can re-render.
//
// Every async action follows the same shape: mark the concern loading,
// clear its error, do the work, record the result, and release the
// loading flag on every exit path.
type Store struct {
	client *Client
	creds  CredentialStore

	mu sync.RWMutex

	// auth
	session       *Session
	user          UserInfo
	authenticated bool
	authLoading   bool
	authError     error

	// palettes
	palettes        []Palette
	currentPalette  *Palette
	palettesLoading bool
	palettesError   error

	// own colors
	ownColors     []Color
	colorsLoading bool
	colorsError   error

	// community feed
	community           []Color
	communityPagination Pagination
	communitySearch     string
	communityLoading    bool
	communityError      error

	subscribers map[int]func()
	nextSubID   int
}

// NewStore builds a store around a server client and a credential
// store. Call Initialize before first use to pick up a persisted login.
func NewStore(client *Client, creds CredentialStore) *Store {
	return &Store{
		client:      client,
		creds:       creds,
		subscribers: make(map[int]func()),
	}
}

// State is an immutable snapshot of the store for rendering. Slices are
// shared with the store internals and must be treated as read-only.
type State struct {
	Authenticated bool
	User          UserInfo
	AuthLoading   bool
	AuthError     error

	Palettes        []Palette
	CurrentPalette  *Palette
	PalettesLoading bool
	PalettesError   error

	OwnColors     []Color
	ColorsLoading bool
	ColorsError   error

	CommunityColors     []Color
	CommunityPagination Pagination
	CommunityLoading    bool
	CommunityError      error
}

// Snapshot returns the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return State{
		Authenticated: s.authenticated,
		User:          s.user,
		AuthLoading:   s.authLoading,
		AuthError:     s.authError,

		Palettes:        s.palettes,
		CurrentPalette:  s.currentPalette,
		PalettesLoading: s.palettesLoading,
		PalettesError:   s.palettesError,

		OwnColors:     s.ownColors,
		ColorsLoading: s.colorsLoading,
		ColorsError:   s.colorsError,

		CommunityColors:     s.community,
		CommunityPagination: s.communityPagination,
		CommunityLoading:    s.communityLoading,
		CommunityError:      s.communityError,
	}
}

// Subscribe registers a change listener and returns an unsubscribe
// function. Listeners run synchronously after each state change, off
// the store lock.
func (s *Store) Subscribe(fn func()) func() {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

func (s *Store) notify() {
	s.mu.RLock()
	fns := make([]func(), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn()
	}
}

// Session returns the live session, or nil when logged out.
func (s *Store) Session() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// Initialize restores a persisted login, validating the stored token
// against the server. An invalid or expired credential is cleared
// silently; Initialize only errors on I/O trouble talking to the
// credential store.
func (s *Store) Initialize(ctx context.Context) error {
	cred, err := s.creds.Load()
	if err != nil {
		if errors.Is(err, ErrNoCredential) {
			return nil
		}
		return err
	}

	session := s.client.SessionFromToken(cred.Token, cred.User)
	user, err := session.CurrentUser(ctx)
	if err != nil {
		// Stale token. Drop it and stay logged out.
		_ = s.creds.Clear()
		return nil
	}

	s.mu.Lock()
	s.session = session
	s.user = user
	s.authenticated = true
	s.mu.Unlock()
	s.notify()

	return nil
}

// Login authenticates and persists the credential.
func (s *Store) Login(ctx context.Context, username, password string) error {
	s.mu.Lock()
	s.authLoading = true
	s.authError = nil
	s.mu.Unlock()
	s.notify()

	defer func() {
		s.mu.Lock()
		s.authLoading = false
		s.mu.Unlock()
		s.notify()
	}()

	session, err := s.client.Login(ctx, username, password)
	if err != nil {
		s.mu.Lock()
		s.authError = err
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.session = session
	s.user = session.User()
	s.authenticated = true
	s.mu.Unlock()

	return s.creds.Save(Credential{Token: session.Token(), User: session.User()})
}

// Register creates an account and immediately logs in with the same
// credentials.
func (s *Store) Register(ctx context.Context, username, password string) error {
	s.mu.Lock()
	s.authLoading = true
	s.authError = nil
	s.mu.Unlock()
	s.notify()

	defer func() {
		s.mu.Lock()
		s.authLoading = false
		s.mu.Unlock()
		s.notify()
	}()

	if _, err := s.client.Register(ctx, username, password); err != nil {
		s.mu.Lock()
		s.authError = err
		s.mu.Unlock()
		return err
	}

	session, err := s.client.Login(ctx, username, password)
	if err != nil {
		s.mu.Lock()
		s.authError = err
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.session = session
	s.user = session.User()
	s.authenticated = true
	s.mu.Unlock()

	return s.creds.Save(Credential{Token: session.Token(), User: session.User()})
}

// Logout clears the session, the credential, and all cached account
// data. The community feed survives since it is public.
func (s *Store) Logout() error {
	s.mu.Lock()
	s.session = nil
	s.user = UserInfo{}
	s.authenticated = false
	s.authError = nil
	s.palettes = nil
	s.currentPalette = nil
	s.ownColors = nil
	s.mu.Unlock()
	s.notify()

	return s.creds.Clear()
}

// ErrNotAuthenticated is returned from account actions while logged
// out.
var ErrNotAuthenticated = errors.New("chromiasdk: not authenticated")

func (s *Store) requireSession() (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil, ErrNotAuthenticated
	}
	return s.session, nil
}

// FetchCommunityColors loads one page of the public feed. reset starts
// the feed over from that page; otherwise the page is appended for
// infinite scrolling. The search term sticks until the next reset.
func (s *Store) FetchCommunityColors(ctx context.Context, page, limit int, search string, reset bool) error {
	s.mu.Lock()
	s.communityLoading = true
	s.communityError = nil
	if reset {
		s.communitySearch = search
	}
	s.mu.Unlock()
	s.notify()

	defer func() {
		s.mu.Lock()
		s.communityLoading = false
		s.mu.Unlock()
		s.notify()
	}()

	feed, err := s.client.CommunityColors(ctx, page, limit, search)
	if err != nil {
		s.mu.Lock()
		s.communityError = err
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	if reset || feed.Pagination.Page == 1 {
		s.community = feed.Colors
	} else {
		s.community = append(s.community, feed.Colors...)
	}
	s.communityPagination = feed.Pagination
	s.mu.Unlock()

	return nil
}

// LoadMoreCommunityColors fetches the next feed page, keeping the
// current search term. It is a no-op when everything is loaded or a
// load is already in flight.
func (s *Store) LoadMoreCommunityColors(ctx context.Context) error {
	s.mu.RLock()
	p := s.communityPagination
	search := s.communitySearch
	busy := s.communityLoading
	s.mu.RUnlock()

	if busy || !p.HasMore {
		return nil
	}
	return s.FetchCommunityColors(ctx, p.Page+1, p.Limit, search, false)
}

// FetchOwnColors refreshes the account's published colors.
func (s *Store) FetchOwnColors(ctx context.Context) error {
	session, err := s.requireSession()
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.colorsLoading = true
	s.colorsError = nil
	s.mu.Unlock()
	s.notify()

	defer func() {
		s.mu.Lock()
		s.colorsLoading = false
		s.mu.Unlock()
		s.notify()
	}()

	colors, err := session.OwnColors(ctx)
	if err != nil {
		s.mu.Lock()
		s.colorsError = err
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.ownColors = colors
	s.mu.Unlock()

	return nil
}

// CreateColor publishes a color and prepends it to the own-colors
// cache.
func (s *Store) CreateColor(ctx context.Context, name, hex string) (Color, error) {
	session, err := s.requireSession()
	if err != nil {
		return Color{}, err
	}

	s.mu.Lock()
	s.colorsLoading = true
	s.colorsError = nil
	s.mu.Unlock()
	s.notify()

	defer func() {
		s.mu.Lock()
		s.colorsLoading = false
		s.mu.Unlock()
		s.notify()
	}()

	color, err := session.CreateColor(ctx, name, hex)
	if err != nil {
		s.mu.Lock()
		s.colorsError = err
		s.mu.Unlock()
		return Color{}, err
	}

	s.mu.Lock()
	s.ownColors = append([]Color{color}, s.ownColors...)
	s.mu.Unlock()

	return color, nil
}

// FetchPalettes refreshes the account's palettes.
func (s *Store) FetchPalettes(ctx context.Context) error {
	session, err := s.requireSession()
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.palettesLoading = true
	s.palettesError = nil
	s.mu.Unlock()
	s.notify()

	defer func() {
		s.mu.Lock()
		s.palettesLoading = false
		s.mu.Unlock()
		s.notify()
	}()

	palettes, err := session.OwnPalettes(ctx)
	if err != nil {
		s.mu.Lock()
		s.palettesError = err
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.palettes = palettes
	s.mu.Unlock()

	return nil
}

// CreatePalette stores a palette and prepends it to the cache.
func (s *Store) CreatePalette(ctx context.Context, name string, colors []PaletteColor) (Palette, error) {
	session, err := s.requireSession()
	if err != nil {
		return Palette{}, err
	}

	s.mu.Lock()
	s.palettesLoading = true
	s.palettesError = nil
	s.mu.Unlock()
	s.notify()

	defer func() {
		s.mu.Lock()
		s.palettesLoading = false
		s.mu.Unlock()
		s.notify()
	}()

	palette, err := session.CreatePalette(ctx, name, colors)
	if err != nil {
		s.mu.Lock()
		s.palettesError = err
		s.mu.Unlock()
		return Palette{}, err
	}

	s.mu.Lock()
	s.palettes = append([]Palette{palette}, s.palettes...)
	s.mu.Unlock()

	return palette, nil
}

// FetchPalette loads one palette from the server and selects it as the
// current palette.
func (s *Store) FetchPalette(ctx context.Context, id string) (Palette, error) {
	session, err := s.requireSession()
	if err != nil {
		return Palette{}, err
	}

	s.mu.Lock()
	s.palettesLoading = true
	s.palettesError = nil
	s.mu.Unlock()
	s.notify()

	defer func() {
		s.mu.Lock()
		s.palettesLoading = false
		s.mu.Unlock()
		s.notify()
	}()

	palette, err := session.Palette(ctx, id)
	if err != nil {
		s.mu.Lock()
		s.palettesError = err
		s.mu.Unlock()
		return Palette{}, err
	}

	s.mu.Lock()
	p := palette
	s.currentPalette = &p
	s.mu.Unlock()

	return palette, nil
}

// UpdatePalette replaces a palette on the server and in the cache. The
// current palette follows along when it is the one edited.
func (s *Store) UpdatePalette(ctx context.Context, id, name string, colors []PaletteColor) (Palette, error) {
	session, err := s.requireSession()
	if err != nil {
		return Palette{}, err
	}

	s.mu.Lock()
	s.palettesLoading = true
	s.palettesError = nil
	s.mu.Unlock()
	s.notify()

	defer func() {
		s.mu.Lock()
		s.palettesLoading = false
		s.mu.Unlock()
		s.notify()
	}()

	palette, err := session.UpdatePalette(ctx, id, name, colors)
	if err != nil {
		s.mu.Lock()
		s.palettesError = err
		s.mu.Unlock()
		return Palette{}, err
	}

	s.mu.Lock()
	// Copy rather than patch in place; snapshots share the old slice.
	updated := make([]Palette, len(s.palettes))
	copy(updated, s.palettes)
	for i := range updated {
		if updated[i].ID == palette.ID {
			updated[i] = palette
			break
		}
	}
	s.palettes = updated
	if s.currentPalette != nil && s.currentPalette.ID == palette.ID {
		p := palette
		s.currentPalette = &p
	}
	s.mu.Unlock()

	return palette, nil
}

// DeletePalette removes a palette from the server and the cache.
func (s *Store) DeletePalette(ctx context.Context, id string) error {
	session, err := s.requireSession()
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.palettesLoading = true
	s.palettesError = nil
	s.mu.Unlock()
	s.notify()

	defer func() {
		s.mu.Lock()
		s.palettesLoading = false
		s.mu.Unlock()
		s.notify()
	}()

	if err := session.DeletePalette(ctx, id); err != nil {
		s.mu.Lock()
		s.palettesError = err
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	// Copy rather than filter in place; snapshots share the old slice.
	kept := make([]Palette, 0, len(s.palettes))
	for _, p := range s.palettes {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.palettes = kept
	if s.currentPalette != nil && s.currentPalette.ID == id {
		s.currentPalette = nil
	}
	s.mu.Unlock()

	return nil
}

// SetCurrentPalette selects the palette being viewed or edited. Pass
// nil to clear.
func (s *Store) SetCurrentPalette(p *Palette) {
	s.mu.Lock()
	s.currentPalette = p
	s.mu.Unlock()
	s.notify()
}

// ClearErrors resets all error flags.
func (s *Store) ClearErrors() {
	s.mu.Lock()
	s.authError = nil
	s.palettesError = nil
	s.colorsError = nil
	s.communityError = nil
	s.mu.Unlock()
	s.notify()
}
