package router_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/anonto42/tweeter/backend/internal/middleware"
	"github.com/anonto42/tweeter/backend/internal/models"
	"github.com/anonto42/tweeter/backend/internal/router"
	"github.com/anonto42/tweeter/backend/internal/testutil"
	"github.com/anonto42/tweeter/backend/internal/timezones"
	"github.com/anonto42/tweeter/backend/internal/validators"
	"github.com/anonto42/tweeter/backend/pkg/logger"
	"github.com/anonto42/tweeter/backend/pkg/metrics"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

type apiFixture struct {
	t        *testing.T
	db       *gorm.DB
	e        *echo.Echo
	verifier *middleware.JWTVerifier
}

func newAPIFixture(t *testing.T) *apiFixture {
	db := testutil.NewTestDB(t)
	verifier := middleware.NewJWTVerifier(testSecret)

	e := echo.New()
	e.Validator = validators.NewValidator()
	m := metrics.NewMetrics()
	e.Use(m.EchoMiddleware())

	err := router.SetupRoutes(e, router.Dependencies{
		Postgres:  db,
		Verifiers: []middleware.TokenVerifier{verifier},
		Metrics:   m,
		Log:       logger.NewWithOutput("test", "error", io.Discard),
	})
	require.NoError(t, err)

	return &apiFixture{t: t, db: db, e: e, verifier: verifier}
}

func (f *apiFixture) token(user *models.User) string {
	token, err := f.verifier.SignToken(user, time.Hour)
	require.NoError(f.t, err)
	return token
}

func (f *apiFixture) do(method, path, token, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestFollowToggleFlow(t *testing.T) {
	f := newAPIFixture(t)
	alice := testutil.CreateUser(t, f.db, "alice", "Alice")
	bob := testutil.CreateUser(t, f.db, "bob", "Bob")
	token := f.token(alice)

	rec := f.do(http.MethodPost, "/api/v1/users/bob/follow", token, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	compact := decode[models.UserCompact](t, rec)
	assert.Equal(t, models.UserCompact{ID: bob.ID, Username: "bob", FirstName: "Bob", Following: true}, compact)

	rec = f.do(http.MethodGet, "/api/v1/users/bob/followers", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	followers := decode[[]models.UserCompact](t, rec)
	require.Len(t, followers, 1)
	assert.Equal(t, "alice", followers[0].Username)

	rec = f.do(http.MethodGet, "/api/v1/notifications", f.token(bob), "")
	require.Equal(t, http.StatusOK, rec.Code)
	notifications := decode[[]models.Notification](t, rec)
	require.Len(t, notifications, 1)
	assert.Equal(t, bob.ID, notifications[0].OwnerID)
	assert.Equal(t, "f", notifications[0].Type)
	assert.Equal(t, "alice", notifications[0].ObjectID)

	rec = f.do(http.MethodPost, "/api/v1/users/bob/follow", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[models.UserCompact](t, rec).Following)

	rec = f.do(http.MethodGet, "/api/v1/users/alice/followings", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]models.UserCompact](t, rec))

	rec = f.do(http.MethodGet, "/api/v1/notifications", f.token(bob), "")
	assert.Len(t, decode[[]models.Notification](t, rec), 1)
}

func TestFollowErrors(t *testing.T) {
	f := newAPIFixture(t)
	alice := testutil.CreateUser(t, f.db, "alice", "Alice")
	testutil.CreateUser(t, f.db, "bob", "Bob")
	token := f.token(alice)

	tests := []struct {
		name   string
		path   string
		token  string
		status int
	}{
		{"anonymous", "/api/v1/users/bob/follow", "", http.StatusUnauthorized},
		{"invalid token", "/api/v1/users/bob/follow", "not-a-jwt", http.StatusUnauthorized},
		{"unknown user", "/api/v1/users/zed/follow", token, http.StatusNotFound},
		{"self", "/api/v1/users/alice/follow", token, http.StatusBadRequest},
		{"unknown artist", "/api/v1/artists/42/follow", token, http.StatusNotFound},
		{"non numeric artist", "/api/v1/artists/abc/follow", token, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(http.MethodPost, tt.path, tt.token, "")
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}

	rec := f.do(http.MethodPost, "/api/v1/users/alice/follow", token, "")
	assert.Contains(t, rec.Body.String(), "You cant follow yourself")

	var edges int64
	require.NoError(t, f.db.Model(&models.UserFollow{}).Count(&edges).Error)
	assert.Zero(t, edges)
}

func TestArtistFollowFlow(t *testing.T) {
	f := newAPIFixture(t)
	alice := testutil.CreateUser(t, f.db, "alice", "Alice")
	nina := testutil.CreateArtist(t, f.db, "Nina")
	token := f.token(alice)

	rec := f.do(http.MethodPost, "/api/v1/artists/1/follow", token, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	artist := decode[models.Artist](t, rec)
	assert.Equal(t, nina.ID, artist.ID)
	assert.Equal(t, "Nina", artist.Name)

	rec = f.do(http.MethodGet, "/api/v1/users/alice/artists", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	artists := decode[[]models.Artist](t, rec)
	require.Len(t, artists, 1)
	assert.Equal(t, "Nina", artists[0].Name)

	f.do(http.MethodPost, "/api/v1/artists/1/follow", token, "")
	rec = f.do(http.MethodGet, "/api/v1/users/alice/artists", "", "")
	assert.Empty(t, decode[[]models.Artist](t, rec))

	rec = f.do(http.MethodGet, "/api/v1/users/nobody/artists", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSearchEndpoint(t *testing.T) {
	f := newAPIFixture(t)
	alice := testutil.CreateUser(t, f.db, "alice", "Alice")
	testutil.CreateUser(t, f.db, "bob", "Bob")
	carol := testutil.CreateUser(t, f.db, "carol", "Carol")
	testutil.Follow(t, f.db, alice, carol)

	rec := f.do(http.MethodGet, "/api/v1/users/search", f.token(alice), "")
	require.Equal(t, http.StatusOK, rec.Code)
	users := decode[[]models.UserCompact](t, rec)
	require.Len(t, users, 3)
	assert.Equal(t, "carol", users[0].Username)
	assert.True(t, users[0].Following)

	rec = f.do(http.MethodGet, "/api/v1/users/search?ordering=-username", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	users = decode[[]models.UserCompact](t, rec)
	require.Len(t, users, 3)
	assert.Equal(t, []string{"carol", "bob", "alice"}, []string{users[0].Username, users[1].Username, users[2].Username})
	for _, u := range users {
		assert.False(t, u.Following)
	}

	rec = f.do(http.MethodGet, "/api/v1/users/search?username__icontains=O&first_name__icontains=b", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	users = decode[[]models.UserCompact](t, rec)
	require.Len(t, users, 1)
	assert.Equal(t, "bob", users[0].Username)

	rec = f.do(http.MethodGet, "/api/v1/users/search?ordering=email", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUserRetrieve(t *testing.T) {
	f := newAPIFixture(t)
	testutil.CreateUser(t, f.db, "alice", "Alice")

	rec := f.do(http.MethodGet, "/api/v1/users/alice", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]interface{}](t, rec)
	assert.Equal(t, "alice", body["username"])
	assert.Contains(t, body, "date_joined")
	assert.NotContains(t, body, "firebase_uid")

	rec = f.do(http.MethodGet, "/api/v1/users/nobody", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(http.MethodGet, "/api/v1/users/nobody/followers", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProfileEndpoints(t *testing.T) {
	f := newAPIFixture(t)
	alice := testutil.CreateUser(t, f.db, "alice", "Alice")
	testutil.CreateUser(t, f.db, "bob", "Bob")
	token := f.token(alice)

	rec := f.do(http.MethodGet, "/api/v1/users/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(http.MethodGet, "/api/v1/users/me", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", decode[models.User](t, rec).Username)

	rec = f.do(http.MethodPatch, "/api/v1/users/me", token, `{"bio":"hi","timezone":"Asia/Tokyo"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	user := decode[models.User](t, rec)
	assert.Equal(t, "hi", user.Bio)
	assert.Equal(t, "Asia/Tokyo", user.Timezone)
	assert.Equal(t, "Alice", user.FirstName)

	rec = f.do(http.MethodPatch, "/api/v1/users/me", token, `{"timezone":"Nowhere/Land"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(http.MethodPatch, "/api/v1/users/me", token, `{"username":"bob"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(http.MethodPut, "/api/v1/users/me", token, `{"bio":"missing required"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(http.MethodPut, "/api/v1/users/me", token, `{"username":"alicia","first_name":"Alicia"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	user = decode[models.User](t, rec)
	assert.Equal(t, "alicia", user.Username)
	assert.Equal(t, "", user.Bio)
	assert.Equal(t, "", user.Timezone)
}

func TestTimezonesEndpoint(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(http.MethodGet, "/api/v1/timezones", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	zones := decode[[]timezones.Timezone](t, rec)
	require.Len(t, zones, len(timezones.All()))
	assert.Equal(t, "0", zones[0].ID)
	assert.Equal(t, timezones.All()[0].Timezone, zones[0].Timezone)
}

func TestTweetEndpoints(t *testing.T) {
	f := newAPIFixture(t)
	alice := testutil.CreateUser(t, f.db, "alice", "Alice")
	bob := testutil.CreateUser(t, f.db, "bob", "Bob")

	rec := f.do(http.MethodPost, "/api/v1/tweets", "", `{"content":"hello"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(http.MethodPost, "/api/v1/tweets", f.token(alice), `{"content":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(http.MethodPost, "/api/v1/tweets", f.token(alice), `{"content":"hello"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	tweet := decode[models.Tweet](t, rec)
	assert.Equal(t, alice.ID, tweet.OwnerID)

	path := "/api/v1/tweets/" + jsonNumber(tweet.ID)

	rec = f.do(http.MethodPatch, path, f.token(bob), `{"content":"mine now"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(http.MethodPatch, path, f.token(alice), `{"content":"edited","owner":`+jsonNumber(bob.ID)+`}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = f.do(http.MethodGet, path, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	tweet = decode[models.Tweet](t, rec)
	assert.Equal(t, "edited", tweet.Content)
	assert.Equal(t, alice.ID, tweet.OwnerID)

	rec = f.do(http.MethodGet, "/api/v1/users/alice/tweets", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.Tweet](t, rec), 1)

	rec = f.do(http.MethodGet, "/api/v1/tweets/999", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func jsonNumber(id uint) string {
	b, _ := json.Marshal(id)
	return string(b)
}

func TestHealth(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", decode[map[string]string](t, rec)["status"])
}
