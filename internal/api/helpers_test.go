package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pageza/recipeshare/backend/config"
	"github.com/pageza/recipeshare/backend/internal/mocks"
	"github.com/pageza/recipeshare/backend/internal/models"
	"github.com/pageza/recipeshare/backend/internal/testdb"
)

const strongPassword = "Str0ng!Pass"

type testServer struct {
	t      *testing.T
	router *gin.Engine
	db     *gorm.DB
	deps   Deps
	store  *mocks.MockObjectStore

	mu    sync.Mutex
	links []string
}

func testConfig() *config.Config {
	return &config.Config{
		Environment:        config.Test,
		JWTSecret:          "test-secret",
		AccessTokenTTL:     15 * time.Minute,
		RefreshTokenTTL:    24 * time.Hour,
		ActivationTokenTTL: time.Hour,
		AppURL:             "http://localhost:8000",
	}
}

// newTestServer wires the real services over in-memory sqlite. Mail is
// captured and images go to a mock bucket.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ts := &testServer{t: t, db: testdb.SQLite(t), store: new(mocks.MockObjectStore)}

	mailer := new(mocks.MockEmailService)
	mailer.On("SendActivationEmail", mock.Anything, mock.Anything, mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) {
			ts.mu.Lock()
			defer ts.mu.Unlock()
			ts.links = append(ts.links, args.String(2))
		}).
		Return(nil).Maybe()

	ts.deps = NewDeps(ts.db, testConfig(), mailer, ts.store, nil)
	ts.router = gin.New()
	require.NoError(t, RegisterRoutes(ts.router, ts.deps))
	return ts
}

// lastActivationPath is the path part of the most recently mailed link.
func (ts *testServer) lastActivationPath() string {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	require.NotEmpty(ts.t, ts.links, "no activation mail sent")
	return strings.TrimPrefix(ts.links[len(ts.links)-1], "http://localhost:8000")
}

// createUser inserts an active user with a profile and returns an access token for it.
func (ts *testServer) createUser(username string, staff bool) (*models.User, string) {
	ts.t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(strongPassword), bcrypt.MinCost)
	require.NoError(ts.t, err)
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		IsActive:     true,
		IsStaff:      staff,
	}
	require.NoError(ts.t, ts.db.Create(user).Error)
	require.NoError(ts.t, ts.db.Omit("User").Create(&models.Profile{UserID: user.ID}).Error)

	pair, err := ts.deps.Auth.IssueTokenPair(user)
	require.NoError(ts.t, err)
	return user, pair.Access
}

func (ts *testServer) do(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	ts.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(ts.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

type errorBody struct {
	Error  string              `json:"error"`
	Fields map[string][]string `json:"fields"`
}

func fieldErrors(t *testing.T, w *httptest.ResponseRecorder) map[string][]string {
	t.Helper()
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	var body errorBody
	decode(t, w, &body)
	return body.Fields
}

func recipeBody(ingredients ...string) map[string]interface{} {
	lines := make([]map[string]interface{}, 0, len(ingredients))
	for _, name := range ingredients {
		lines = append(lines, map[string]interface{}{
			"ingredient_name": name,
			"quantity":        200,
			"unit":            "g",
		})
	}
	return map[string]interface{}{
		"name":           "Pancakes",
		"description":    "Fluffy breakfast pancakes",
		"prep_time":      10,
		"prep_time_unit": "minutes",
		"cook_time":      15,
		"servings":       4,
		"ingredients":    lines,
	}
}

type recipeJSON struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Image    *string `json:"image"`
	Category *struct {
		ID   uint   `json:"id"`
		Name string `json:"name"`
	} `json:"category"`
	Author struct {
		ID       uint   `json:"id"`
		Username string `json:"username"`
	} `json:"author"`
	Ingredients []struct {
		Ingredient struct {
			Name string `json:"name"`
		} `json:"ingredient"`
		Unit      string `json:"unit"`
		UnitLabel string `json:"unit_label"`
	} `json:"ingredients"`
}

func (ts *testServer) createRecipe(token string) recipeJSON {
	ts.t.Helper()
	w := ts.do(http.MethodPost, "/api/recipes/", recipeBody("Flour", "Milk"), token)
	require.Equal(ts.t, http.StatusCreated, w.Code, w.Body.String())
	var recipe recipeJSON
	decode(ts.t, w, &recipe)
	return recipe
}

func (ts *testServer) upload(path string, body *bytes.Buffer, contentType, token string) *httptest.ResponseRecorder {
	ts.t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", contentType)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}
