package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bbs-server/internal/command"
	"bbs-server/internal/model"
	"bbs-server/internal/privilege"
	"bbs-server/internal/service"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

// fakePostStore — хранилище постов в памяти для тестов обработчиков
type fakePostStore struct {
	posts     []model.Post
	nextID    int64
	bans      map[string]model.BannedIP
	duplicate bool
}

func newFakePostStore() *fakePostStore {
	return &fakePostStore{nextID: 1, bans: make(map[string]model.BannedIP)}
}

func (f *fakePostStore) CreatePost(ctx context.Context, post model.Post) (model.Post, error) {
	post.ID = f.nextID
	post.CreatedAt = time.Now()
	f.nextID++
	f.posts = append(f.posts, post)
	return post, nil
}

func (f *fakePostStore) ListPosts(ctx context.Context, limit, offset int) ([]model.PostView, error) {
	views := make([]model.PostView, 0, limit)
	for i := offset; i < len(f.posts) && len(views) < limit; i++ {
		views = append(views, model.PostView{Post: f.posts[i]})
	}
	return views, nil
}

func (f *fakePostStore) HasRecentDuplicate(ctx context.Context, authorID uuid.UUID, content string, window time.Duration) (bool, error) {
	return f.duplicate, nil
}

func (f *fakePostStore) GetBannedIP(ctx context.Context, ip string) (model.BannedIP, error) {
	b, ok := f.bans[ip]
	if !ok {
		return model.BannedIP{}, model.ErrNotFound
	}
	return b, nil
}

// stubTx — заглушка TxRunner для команд, которые отклоняются до открытия
// транзакции (незнакомое имя, нехватка привилегий и тому подобное)
type stubTx struct{}

func (stubTx) WithinTx(ctx context.Context, fn func(command.Store) error) error {
	panic("transaction must not be opened in this test")
}

// newTestRouter собирает маршруты поверх фейкового вызывающего,
// минуя JWT-мидлварь: она тестируется отдельно
func newTestRouter(h *Handler, user model.User) *gin.Engine {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(callerKey, user)
		c.Next()
	})
	router.GET("/posts", h.listPosts)
	router.POST("/posts", h.createPost)
	router.POST("/commands", h.executeCommand)
	return router
}

func activeCaller() model.User {
	return model.User{
		ID:       uuid.New(),
		Username: "poster",
		Level:    privilege.BlueID,
		IsActive: true,
	}
}

func TestCreatePost(t *testing.T) {
	t.Run("Successful creation", func(t *testing.T) {
		st := newFakePostStore()
		h := New(service.NewPostService(st), command.New(stubTx{}), nil, testSecret)
		router := newTestRouter(h, activeCaller())

		body, _ := json.Marshal(model.CreatePostRequest{Title: "Hi", Content: "First post"})
		req := httptest.NewRequest(http.MethodPost, "/posts", bytes.NewReader(body))
		req.Header.Set("X-Forwarded-For", "203.0.113.7")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)

		var post model.Post
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))
		assert.Equal(t, int64(1), post.ID)
		assert.Equal(t, "First post", post.Content)

		// IP записан в хранилище, но не отдается наружу
		assert.NotContains(t, w.Body.String(), "203.0.113.7")
		require.Len(t, st.posts, 1)
		require.NotNil(t, st.posts[0].IPAddress)
		assert.Equal(t, "203.0.113.7", *st.posts[0].IPAddress)
	})

	t.Run("Invalid body", func(t *testing.T) {
		h := New(service.NewPostService(newFakePostStore()), command.New(stubTx{}), nil, testSecret)
		router := newTestRouter(h, activeCaller())

		req := httptest.NewRequest(http.MethodPost, "/posts", bytes.NewReader([]byte(`{`)))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Banned IP", func(t *testing.T) {
		st := newFakePostStore()
		st.bans["198.51.100.4"] = model.BannedIP{IPAddress: "198.51.100.4", IsApprovedByAdmin: false}
		h := New(service.NewPostService(st), command.New(stubTx{}), nil, testSecret)
		router := newTestRouter(h, activeCaller())

		body, _ := json.Marshal(model.CreatePostRequest{Content: "spam"})
		req := httptest.NewRequest(http.MethodPost, "/posts", bytes.NewReader(body))
		req.Header.Set("X-Forwarded-For", "198.51.100.4")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Empty(t, st.posts)
	})

	t.Run("Duplicate post", func(t *testing.T) {
		st := newFakePostStore()
		st.duplicate = true
		h := New(service.NewPostService(st), command.New(stubTx{}), nil, testSecret)
		router := newTestRouter(h, activeCaller())

		body, _ := json.Marshal(model.CreatePostRequest{Content: "again"})
		req := httptest.NewRequest(http.MethodPost, "/posts", bytes.NewReader(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
	})
}

func TestListPosts(t *testing.T) {
	st := newFakePostStore()
	svc := service.NewPostService(st)
	for _, content := range []string{"one", "two", "three"} {
		_, err := svc.Create(context.Background(), activeCaller(), model.CreatePostRequest{Content: content}, "")
		require.NoError(t, err)
	}
	h := New(svc, command.New(stubTx{}), nil, testSecret)
	router := newTestRouter(h, activeCaller())

	req := httptest.NewRequest(http.MethodGet, "/posts?limit=2", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Posts []model.PostView `json:"posts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Posts, 2)
}

func TestExecuteCommand(t *testing.T) {
	t.Run("Missing text", func(t *testing.T) {
		h := New(service.NewPostService(newFakePostStore()), command.New(stubTx{}), nil, testSecret)
		router := newTestRouter(h, activeCaller())

		req := httptest.NewRequest(http.MethodPost, "/commands", bytes.NewReader([]byte(`{}`)))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Failed command still answers 200 with outcomes", func(t *testing.T) {
		h := New(service.NewPostService(newFakePostStore()), command.New(stubTx{}), nil, testSecret)
		router := newTestRouter(h, activeCaller())

		body, _ := json.Marshal(map[string]string{"text": "/frobnicate"})
		req := httptest.NewRequest(http.MethodPost, "/commands", bytes.NewReader(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var result command.Result
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		require.Len(t, result.Outcomes, 1)
		assert.Equal(t, command.SeverityError, result.Outcomes[0].Severity)
		assert.Equal(t, "Unknown command: frobnicate", result.Outcomes[0].Text)
		assert.False(t, result.ForceReauth)
	})

	t.Run("Privilege rejection happens before any transaction", func(t *testing.T) {
		h := New(service.NewPostService(newFakePostStore()), command.New(stubTx{}), nil, testSecret)
		router := newTestRouter(h, activeCaller())

		body, _ := json.Marshal(map[string]string{"text": "/clear"})
		req := httptest.NewRequest(http.MethodPost, "/commands", bytes.NewReader(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		// stubTx паникует при открытии транзакции: до нее не дошло
		require.Equal(t, http.StatusOK, w.Code)

		var result command.Result
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		require.Len(t, result.Outcomes, 1)
		assert.Contains(t, result.Outcomes[0].Text, "requires moderator or higher")
	})
}

func TestRequireLevel(t *testing.T) {
	h := New(service.NewPostService(newFakePostStore()), command.New(stubTx{}), nil, testSecret)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(callerKey, model.User{Username: "low", Level: privilege.Summit, IsActive: true})
		c.Next()
	})
	router.POST("/admin/ping", h.requireLevel(privilege.AdminOp), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/admin/ping", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCallerMiddlewareRejections(t *testing.T) {
	h := New(service.NewPostService(newFakePostStore()), command.New(stubTx{}), nil, testSecret)

	router := gin.New()
	router.GET("/protected", h.CallerMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	cases := map[string]string{
		"Missing header":    "",
		"Not a bearer":      "Basic dXNlcjpwYXNz",
		"Garbage token":     "Bearer not-a-jwt",
		"Wrong signing key": "Bearer " + signToken(t, uuid.New(), "another-secret"),
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestParseToken(t *testing.T) {
	h := New(nil, nil, nil, testSecret)
	userID := uuid.New()

	t.Run("Valid token", func(t *testing.T) {
		id, err := h.parseToken(signToken(t, userID, testSecret))
		require.NoError(t, err)
		assert.Equal(t, userID, id)
	})

	t.Run("Wrong secret", func(t *testing.T) {
		_, err := h.parseToken(signToken(t, userID, "another-secret"))
		assert.Error(t, err)
	})

	t.Run("Subject is not a UUID", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": "42",
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		signed, err := token.SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = h.parseToken(signed)
		assert.Error(t, err)
	})
}

func signToken(t *testing.T, userID uuid.UUID, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID.String(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestClientIP(t *testing.T) {
	get := func(xff, remoteAddr string) string {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Request.RemoteAddr = remoteAddr
		if xff != "" {
			c.Request.Header.Set("X-Forwarded-For", xff)
		}
		return clientIP(c)
	}

	t.Run("First X-Forwarded-For entry wins", func(t *testing.T) {
		assert.Equal(t, "203.0.113.7", get("203.0.113.7, 10.0.0.1", "192.0.2.1:5000"))
	})

	t.Run("Port in the X-Forwarded-For entry is stripped", func(t *testing.T) {
		// Иначе записанный адрес не совпал бы с аргументом /ban
		assert.Equal(t, "203.0.113.7", get("203.0.113.7:4567, 10.0.0.1", "192.0.2.1:5000"))
	})

	t.Run("Falls back to RemoteAddr without the port", func(t *testing.T) {
		assert.Equal(t, "192.0.2.1", get("", "192.0.2.1:5000"))
	})

	t.Run("RemoteAddr without a port passes through", func(t *testing.T) {
		assert.Equal(t, "192.0.2.1", get("", "192.0.2.1"))
	})
}
