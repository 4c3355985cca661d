package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Brickle-Pickle/Chromia/internal/chromia/service"
	"github.com/Brickle-Pickle/Chromia/internal/chromia/store/drivers/sqlite"
	"github.com/Brickle-Pickle/Chromia/pkg/chromiasdk"
	"github.com/Brickle-Pickle/Chromia/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// newTestServer spins up a full server on an in-memory database and
// returns an SDK client pointed at it.
func newTestServer(t *testing.T) (*chromiasdk.Client, *httptest.Server) {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	tokens, err := jwtx.NewHS256([]byte(testSecret), "chromia-test")
	require.NoError(t, err)

	logger := slog.New(slog.DiscardHandler)

	router := NewRouter(tokens, "test", st, logger)
	router.UserService = &service.UserService{Store: st, Tokens: tokens, Issuer: "chromia-test"}
	router.ColorService = &service.ColorService{Store: st}
	router.PaletteService = &service.PaletteService{Store: st}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return chromiasdk.NewClient(srv.URL), srv
}

func register(t *testing.T, client *chromiasdk.Client, username string) *chromiasdk.Session {
	t.Helper()

	ctx := context.Background()
	_, err := client.Register(ctx, username, "a decent password")
	require.NoError(t, err)

	session, err := client.Login(ctx, username, "a decent password")
	require.NoError(t, err)
	return session
}

func TestUserEndpoints(t *testing.T) {
	ctx := context.Background()
	client, _ := newTestServer(t)

	t.Run("register then login", func(t *testing.T) {
		user, err := client.Register(ctx, "alice", "a decent password")
		require.NoError(t, err)
		require.NotEmpty(t, user.ID)
		require.Equal(t, "alice", user.Username)

		session, err := client.Login(ctx, "alice", "a decent password")
		require.NoError(t, err)
		require.NotEmpty(t, session.Token())
		require.Equal(t, user.ID, session.User().ID)
	})

	t.Run("duplicate registration", func(t *testing.T) {
		_, err := client.Register(ctx, "alice", "other password")
		require.ErrorIs(t, err, chromiasdk.ErrDuplicateUser)
	})

	t.Run("bad credentials", func(t *testing.T) {
		_, err := client.Login(ctx, "alice", "wrong")
		require.ErrorIs(t, err, chromiasdk.ErrInvalidCredentials)

		_, err = client.Login(ctx, "nobody", "wrong")
		require.ErrorIs(t, err, chromiasdk.ErrInvalidCredentials)
	})

	t.Run("current user round trip", func(t *testing.T) {
		session, err := client.Login(ctx, "alice", "a decent password")
		require.NoError(t, err)

		user, err := session.CurrentUser(ctx)
		require.NoError(t, err)
		require.Equal(t, "alice", user.Username)
	})
}

func TestAuthMiddleware(t *testing.T) {
	ctx := context.Background()
	client, srv := newTestServer(t)

	t.Run("missing token", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/users/current")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("garbage token", func(t *testing.T) {
		session := client.SessionFromToken("not-a-jwt", chromiasdk.UserInfo{})
		_, err := session.CurrentUser(ctx)
		require.ErrorIs(t, err, chromiasdk.ErrUnauthenticated)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other, err := jwtx.NewHS256([]byte(strings.Repeat("x", 32)), "chromia-test")
		require.NoError(t, err)
		forged, err := other.Sign(jwtx.NewSessionClaims("someone", "someone", "chromia-test", jwtx.DefaultSessionTTL, time.Now()))
		require.NoError(t, err)

		session := client.SessionFromToken(forged, chromiasdk.UserInfo{})
		_, err = session.CurrentUser(ctx)
		require.ErrorIs(t, err, chromiasdk.ErrUnauthenticated)
	})

	t.Run("valid token for a deleted account", func(t *testing.T) {
		tokens, err := jwtx.NewHS256([]byte(testSecret), "chromia-test")
		require.NoError(t, err)
		orphan, err := tokens.Sign(jwtx.NewSessionClaims("01HGONE0000000000000000000", "ghost", "chromia-test", jwtx.DefaultSessionTTL, time.Now()))
		require.NoError(t, err)

		session := client.SessionFromToken(orphan, chromiasdk.UserInfo{})
		_, err = session.CurrentUser(ctx)
		require.ErrorIs(t, err, chromiasdk.ErrUnauthenticated)
	})
}

func TestColorEndpoints(t *testing.T) {
	ctx := context.Background()
	client, _ := newTestServer(t)
	session := register(t, client, "bob")

	t.Run("create and list own", func(t *testing.T) {
		color, err := session.CreateColor(ctx, "Deep Teal", "#004D4D")
		require.NoError(t, err)
		require.Equal(t, "#004d4d", color.Color)
		require.Equal(t, "bob", color.Author)
		require.NotEmpty(t, color.CreatedAt)

		own, err := session.OwnColors(ctx)
		require.NoError(t, err)
		require.Len(t, own, 1)
	})

	t.Run("validation errors", func(t *testing.T) {
		_, err := session.CreateColor(ctx, "Bad", "teal")
		require.ErrorIs(t, err, chromiasdk.ErrValidation)

		_, err = session.CreateColor(ctx, "", "#004d4d")
		require.ErrorIs(t, err, chromiasdk.ErrValidation)
	})

	t.Run("community feed needs no auth", func(t *testing.T) {
		for i := 0; i < 14; i++ {
			_, err := session.CreateColor(ctx, fmt.Sprintf("Shade %02d", i), "#00aabb")
			require.NoError(t, err)
		}

		feed, err := client.CommunityColors(ctx, 1, 12, "")
		require.NoError(t, err)
		require.Len(t, feed.Colors, 12)
		require.Equal(t, 15, feed.Pagination.Total)
		require.True(t, feed.Pagination.HasMore)
		require.Equal(t, 2, feed.Pagination.TotalPages)
	})

	t.Run("community search", func(t *testing.T) {
		feed, err := client.CommunityColors(ctx, 1, 12, "deep teal")
		require.NoError(t, err)
		require.Equal(t, 1, feed.Pagination.Total)
		require.Equal(t, "Deep Teal", feed.Colors[0].Name)
	})

	t.Run("count", func(t *testing.T) {
		count, err := client.ColorCount(ctx)
		require.NoError(t, err)
		require.Equal(t, 15, count)
	})

	t.Run("create requires auth", func(t *testing.T) {
		anon := client.SessionFromToken("", chromiasdk.UserInfo{})
		_, err := anon.CreateColor(ctx, "Nope", "#123456")
		require.ErrorIs(t, err, chromiasdk.ErrUnauthenticated)
	})
}

func TestPaletteEndpoints(t *testing.T) {
	ctx := context.Background()
	client, _ := newTestServer(t)
	owner := register(t, client, "carol")
	stranger := register(t, client, "dan")

	colors := []chromiasdk.PaletteColor{
		{Name: "Dusk", Color: "#2D1B4E"},
		{Name: "Glow", Color: "#ff5733"},
	}

	palette, err := owner.CreatePalette(ctx, "Sunset", colors)
	require.NoError(t, err)
	require.Equal(t, "carol", palette.Author)
	require.Equal(t, "#2d1b4e", palette.Colors[0].Color)

	t.Run("get and list", func(t *testing.T) {
		got, err := owner.Palette(ctx, palette.ID)
		require.NoError(t, err)
		require.Equal(t, "Sunset", got.Name)

		all, err := owner.OwnPalettes(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
	})

	t.Run("update replaces wholesale", func(t *testing.T) {
		updated, err := owner.UpdatePalette(ctx, palette.ID, "Dawn", []chromiasdk.PaletteColor{{Name: "Mist", Color: "#dddddd"}})
		require.NoError(t, err)
		require.Equal(t, "Dawn", updated.Name)
		require.Len(t, updated.Colors, 1)
	})

	t.Run("strangers get forbidden, missing ids get not found", func(t *testing.T) {
		_, err := stranger.Palette(ctx, palette.ID)
		require.ErrorIs(t, err, chromiasdk.ErrForbidden)

		_, err = stranger.Palette(ctx, "01HGONE0000000000000000000")
		require.ErrorIs(t, err, chromiasdk.ErrNotFound)

		_, err = stranger.UpdatePalette(ctx, palette.ID, "Hijack", colors)
		require.ErrorIs(t, err, chromiasdk.ErrForbidden)

		err = stranger.DeletePalette(ctx, palette.ID)
		require.ErrorIs(t, err, chromiasdk.ErrForbidden)
	})

	t.Run("validation errors", func(t *testing.T) {
		_, err := owner.CreatePalette(ctx, "", colors)
		require.ErrorIs(t, err, chromiasdk.ErrValidation)

		_, err = owner.CreatePalette(ctx, "Empty", nil)
		require.ErrorIs(t, err, chromiasdk.ErrValidation)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, owner.DeletePalette(ctx, palette.ID))

		_, err := owner.Palette(ctx, palette.ID)
		require.ErrorIs(t, err, chromiasdk.ErrNotFound)
	})
}

func TestSystemEndpoints(t *testing.T) {
	ctx := context.Background()
	client, srv := newTestServer(t)

	t.Run("root banner", func(t *testing.T) {
		info, err := client.ServerInfo(ctx)
		require.NoError(t, err)
		require.Equal(t, "Chromia API Server", info.Message)
		require.Equal(t, "Running", info.Status)
	})

	t.Run("unknown path under root", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/definitely/not/here")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("livez", func(t *testing.T) {
		health, err := client.Liveness(ctx)
		require.NoError(t, err)
		require.Equal(t, "ok", health.Status)
		require.Equal(t, "test", health.Version)
	})

	t.Run("readyz", func(t *testing.T) {
		health, err := client.Readiness(ctx)
		require.NoError(t, err)
		require.Equal(t, "ok", health.Status)
		require.Equal(t, "ok", health.Checks.Database)
	})
}

func TestLoginRateLimited(t *testing.T) {
	_, srv := newTestServer(t)

	body := `{"username":"ghost","password":"wrong"}`

	// The strict profile allows a burst of five; the sixth attempt from
	// the same IP must bounce.
	var last *http.Response
	for i := 0; i < 6; i++ {
		resp, err := http.Post(srv.URL+"/api/users/login", "application/json", strings.NewReader(body))
		require.NoError(t, err)
		if last != nil {
			last.Body.Close()
		}
		last = resp
	}
	defer last.Body.Close()

	require.Equal(t, http.StatusTooManyRequests, last.StatusCode)
	require.NotEmpty(t, last.Header.Get("Retry-After"))

	var errBody map[string]string
	require.NoError(t, json.NewDecoder(last.Body).Decode(&errBody))
	require.Equal(t, "rate_limit_exceeded", errBody["error"])
}
