package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/fitlog/internal/db"
	"github.com/terraincognita07/fitlog/internal/i18n"
	"github.com/terraincognita07/fitlog/internal/llm"
	"github.com/terraincognita07/fitlog/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testSecretKey = "0123456789abcdef0123456789abcdef"

type stubModel struct {
	reply    string
	err      error
	chats    int
	generate int
	prompts  []string
}

func (model *stubModel) Chat(_ context.Context, _ string, _ []llm.Message, prompt string) (llm.Reply, error) {
	model.chats++
	model.prompts = append(model.prompts, prompt)
	if model.err != nil {
		return llm.Reply{}, model.err
	}
	return llm.Reply{Text: model.reply, Model: "stub-model", Usage: llm.Usage{PromptTokens: 10, CompletionTokens: 5}}, nil
}

func (model *stubModel) Generate(_ context.Context, _ string, prompt string) (llm.Reply, error) {
	model.generate++
	model.prompts = append(model.prompts, prompt)
	if model.err != nil {
		return llm.Reply{}, model.err
	}
	return llm.Reply{Text: model.reply, Model: "stub-model"}, nil
}

func (model *stubModel) Close() error {
	return nil
}

type testEnv struct {
	app      *fiber.App
	database *gorm.DB
	handler  *Handler
	model    *stubModel
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "fitlog-api-test.db"), logger)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	i18nManager, err := i18n.NewDefaultManager(i18n.LangHE)
	if err != nil {
		t.Fatalf("init i18n: %v", err)
	}

	model := &stubModel{reply: "**כל הכבוד** על השבוע"}
	handler, err := NewHandler(database, model, testSecretKey, time.UTC, i18nManager, false, logger)
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := fiber.New()
	app.Use(handler.LanguageMiddleware)
	RegisterRoutes(app, handler)
	return &testEnv{app: app, database: database, handler: handler, model: model}
}

func (env *testEnv) fixClock(at time.Time) {
	env.handler.now = func() time.Time { return at }
}

func createTestUser(t *testing.T, database *gorm.DB, email string, password string) models.User {
	t.Helper()

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	user := models.User{
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: string(passwordHash),
		DisplayName:  "Dana Levi",
		CreatedAt:    time.Now().UTC(),
	}
	if err := database.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

// signIn creates a user and returns its auth cookie header value.
func (env *testEnv) signIn(t *testing.T, email string) (models.User, string) {
	t.Helper()

	user := createTestUser(t, env.database, email, "StrongPass1")
	response := env.request(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": "StrongPass1",
	})
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected login status 200, got %d", response.StatusCode)
	}
	value := responseCookieValue(response.Cookies(), authCookieName)
	if value == "" {
		t.Fatal("auth cookie is missing in login response")
	}
	return user, authCookieName + "=" + value
}

func (env *testEnv) request(t *testing.T, method string, path string, cookie string, body any, headers ...string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	request := httptest.NewRequest(method, path, reader)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		request.Header.Set("Cookie", cookie)
	}
	for index := 0; index+1 < len(headers); index += 2 {
		request.Header.Set(headers[index], headers[index+1])
	}

	response, err := env.app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	return response
}

func decodeJSON(t *testing.T, response *http.Response, target any) {
	t.Helper()
	defer response.Body.Close()

	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
}

func readAPIError(t *testing.T, response *http.Response) string {
	t.Helper()

	payload := map[string]string{}
	decodeJSON(t, response, &payload)
	return payload["error"]
}

func responseCookieValue(cookies []*http.Cookie, name string) string {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie.Value
		}
	}
	return ""
}

func assertStatus(t *testing.T, response *http.Response, want int) {
	t.Helper()
	if response.StatusCode != want {
		body, _ := io.ReadAll(response.Body)
		t.Fatalf("expected status %d, got %d: %s", want, response.StatusCode, body)
	}
}
