package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"guardrail-quote/database"

	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type testEnv struct {
	Router   *gin.Engine
	Activity *database.ActivityLogger
}

func setupTest(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	require.NoError(t, database.InitDB(":memory:", database.AdminSeed{Username: "admin", Password: "admin123"}, logger))

	hash, err := bcrypt.GenerateFromPassword([]byte("sales123"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, database.CreateUser("sales", string(hash), database.RoleUser))

	activity := database.NewActivityLogger(database.DB, 64, logger)
	t.Cleanup(func() {
		activity.Close()
		database.Close()
	})

	store := cookie.NewStore([]byte("test-secret"))
	router := NewRouter(New(logger, activity), store, "gqtest", logger)
	return &testEnv{Router: router, Activity: activity}
}

func doRequest(r *gin.Engine, method, path string, body interface{}, cookie string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// login returns the session cookie header for username.
func login(t *testing.T, r *gin.Engine, username, password string) string {
	t.Helper()
	w := doRequest(r, http.MethodPost, "/login", map[string]string{"username": username, "password": password}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies[0].Name + "=" + cookies[0].Value
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result), w.Body.String())
	return result
}
