package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-intranet/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

// storedBody mirrors the middleware's cached-response shape so the expected
// Set payload byte-matches what it writes.
type storedBody struct {
	Status int    `json:"status"`
	Body   string `json:"body"`
}

// idempotentRouter mounts the middleware the way the app does: behind auth,
// so the authenticated account id is already on the context. The handler
// echoes the account id, which lets the cross-account tests tell responses
// apart.
func idempotentRouter() (*gin.Engine, redismock.ClientMock) {
	gin.SetMode(gin.TestMode)
	client, mock := redismock.NewClientMock()
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if uid := c.GetHeader("X-Test-User"); uid != "" {
			c.Set("user_id", uid)
		}
		c.Next()
	})
	r.Use(middleware.Idempotency(client))
	r.POST("/requests", func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"requestId": "req-" + c.GetString("user_id")})
	})
	return r, mock
}

func postAs(r *gin.Engine, user, idempKey string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/requests", strings.NewReader("{}"))
	if user != "" {
		req.Header.Set("X-Test-User", user)
	}
	if idempKey != "" {
		req.Header.Set("Idempotency-Key", idempKey)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotency_NoKeyPassesThrough(t *testing.T) {
	r, mock := idempotentRouter()

	w := postAs(r, "user-a", "")

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// An unauthenticated request is never cached, even when it carries a key;
// without an account there is nothing safe to scope the entry to.
func TestIdempotency_NoAccountPassesThrough(t *testing.T) {
	r, mock := idempotentRouter()

	w := postAs(r, "", "abc")

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_FirstAttemptStoresUnderTheAccountKey(t *testing.T) {
	r, mock := idempotentRouter()

	cacheKey := "idemp:/requests:user-a:abc"
	lockKey := cacheKey + ":lock"

	mock.ExpectGet(cacheKey).RedisNil()
	mock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(true)

	payload, _ := json.Marshal(storedBody{
		Status: http.StatusCreated,
		Body:   `{"requestId":"req-user-a"}`,
	})
	mock.ExpectSet(cacheKey, payload, 24*time.Hour).SetVal("OK")
	mock.ExpectDel(lockKey).SetVal(1)

	w := postAs(r, "user-a", "abc")

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_ReplayReturnsTheStoredResponse(t *testing.T) {
	r, mock := idempotentRouter()

	stored, _ := json.Marshal(storedBody{
		Status: http.StatusCreated,
		Body:   `{"requestId":"req-user-a"}`,
	})
	mock.ExpectGet("idemp:/requests:user-a:abc").SetVal(string(stored))

	w := postAs(r, "user-a", "abc")

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"requestId":"req-user-a"}`, w.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Two accounts reusing the same client-chosen key must never share a cache
// entry: the second account gets its own response, not the first one's.
func TestIdempotency_AccountsDoNotShareKeys(t *testing.T) {
	r, mock := idempotentRouter()

	keyA := "idemp:/requests:user-a:shared-key"
	mock.ExpectGet(keyA).RedisNil()
	mock.ExpectSetNX(keyA+":lock", "locked", 30*time.Second).SetVal(true)
	payloadA, _ := json.Marshal(storedBody{
		Status: http.StatusCreated,
		Body:   `{"requestId":"req-user-a"}`,
	})
	mock.ExpectSet(keyA, payloadA, 24*time.Hour).SetVal("OK")
	mock.ExpectDel(keyA + ":lock").SetVal(1)

	keyB := "idemp:/requests:user-b:shared-key"
	mock.ExpectGet(keyB).RedisNil()
	mock.ExpectSetNX(keyB+":lock", "locked", 30*time.Second).SetVal(true)
	payloadB, _ := json.Marshal(storedBody{
		Status: http.StatusCreated,
		Body:   `{"requestId":"req-user-b"}`,
	})
	mock.ExpectSet(keyB, payloadB, 24*time.Hour).SetVal("OK")
	mock.ExpectDel(keyB + ":lock").SetVal(1)

	wA := postAs(r, "user-a", "shared-key")
	assert.Equal(t, http.StatusCreated, wA.Code)
	assert.JSONEq(t, `{"requestId":"req-user-a"}`, wA.Body.String())

	wB := postAs(r, "user-b", "shared-key")
	assert.Equal(t, http.StatusCreated, wB.Code)
	assert.JSONEq(t, `{"requestId":"req-user-b"}`, wB.Body.String())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_ConcurrentDuplicateIsRejected(t *testing.T) {
	r, mock := idempotentRouter()

	cacheKey := "idemp:/requests:user-a:abc"
	lockKey := cacheKey + ":lock"

	mock.ExpectGet(cacheKey).RedisNil()
	mock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(false)

	w := postAs(r, "user-a", "abc")

	assert.Equal(t, http.StatusConflict, w.Code)
	var resp map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "PROCESSING", resp["code"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
