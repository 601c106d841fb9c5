package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Indie-Creator-Community/reward-system/models"
	"github.com/Indie-Creator-Community/reward-system/service"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return env
}

func TestGetByDiscordID(t *testing.T) {
	users := new(service.MockUserService)
	ledger := new(service.MockLedgerService)
	router := NewRouter(users, ledger)

	t.Run("found", func(t *testing.T) {
		discordID := "123"
		users.On("GetByDiscordID", mock.Anything, "123").
			Return(&models.User{ID: "u-1", Name: "alice", DiscordID: &discordID, Coins: 42}, nil).Once()

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/user.getByDiscordId?discordId=123", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, "success", env.Status)
		user := env.Data["user"].(map[string]any)
		assert.Equal(t, "alice", user["name"])
		assert.Equal(t, float64(42), user["coins"])
	})

	t.Run("absent user is null, not an error", func(t *testing.T) {
		users.On("GetByDiscordID", mock.Anything, "999").Return(nil, nil).Once()

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/user.getByDiscordId?discordId=999", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, "success", env.Status)
		assert.Nil(t, env.Data["user"])
	})

	t.Run("missing parameter", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/user.getByDiscordId", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, "BAD_REQUEST", env.Error.Code)
	})
}

func TestSendCoinsByUserID(t *testing.T) {
	users := new(service.MockUserService)
	ledger := new(service.MockLedgerService)
	router := NewRouter(users, ledger)

	t.Run("success", func(t *testing.T) {
		ledger.On("CreditDiscord", mock.Anything, models.DiscordProfile{
			ID: "123", Username: "alice", Discriminator: "0001",
		}, int64(50)).Return(&models.User{ID: "u-1", Name: "alice", Coins: 50}, nil).Once()

		body := `{"user":{"id":"123","username":"alice","discriminator":"0001"},"coins":50}`
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/user.sendCoinsByUserId", strings.NewReader(body)))

		assert.Equal(t, http.StatusOK, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, "success", env.Status)
	})

	t.Run("invalid amount", func(t *testing.T) {
		ledger.On("CreditDiscord", mock.Anything, mock.Anything, int64(-5)).
			Return(nil, service.ErrInvalidAmount).Once()

		body := `{"user":{"id":"123","username":"alice"},"coins":-5}`
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/user.sendCoinsByUserId", strings.NewReader(body)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, "INVALID_AMOUNT", env.Error.Code)
	})
}

func TestSendCoinsByGithubID(t *testing.T) {
	users := new(service.MockUserService)
	ledger := new(service.MockLedgerService)
	router := NewRouter(users, ledger)

	t.Run("numeric string coins is parsed", func(t *testing.T) {
		profile := models.GithubProfile{
			ID:        "99",
			Login:     "octo",
			AvatarURL: "https://avatars.githubusercontent.com/u/99",
		}
		ledger.On("CreditGithub", mock.Anything, profile, int64(15)).
			Return(&models.User{ID: "u-1", Name: "octo", Coins: 15, Thumbnail: profile.AvatarURL}, nil).Once()

		body := `{"user":{"id":"99","login":"octo","avatarUrl":"https://avatars.githubusercontent.com/u/99"},"coins":"15"}`
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/user.sendCoinsByGithubId", strings.NewReader(body)))

		assert.Equal(t, http.StatusOK, rec.Code)
		env := decodeEnvelope(t, rec)
		user := env.Data["user"].(map[string]any)
		assert.Equal(t, "https://avatars.githubusercontent.com/u/99", user["thumbnail"])
	})

	t.Run("non-numeric coins rejected before the service is called", func(t *testing.T) {
		body := `{"user":{"id":"99","login":"octo"},"coins":"abc"}`
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/user.sendCoinsByGithubId", strings.NewReader(body)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, "INVALID_AMOUNT", env.Error.Code)
	})
}

func TestPayCoinsByUserID(t *testing.T) {
	users := new(service.MockUserService)
	ledger := new(service.MockLedgerService)
	router := NewRouter(users, ledger)

	sender := models.DiscordProfile{ID: "1", Username: "alice"}
	receiver := models.DiscordProfile{ID: "2", Username: "bob"}

	t.Run("success returns the receiver", func(t *testing.T) {
		ledger.On("Transfer", mock.Anything, sender, receiver, int64(30), "").
			Return(&models.User{ID: "u-2", Name: "bob", Coins: 30}, nil).Once()

		body := `{"sender":{"id":"1","username":"alice"},"receiver":{"id":"2","username":"bob"},"coins":30}`
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/user.payCoinsByUserId", strings.NewReader(body)))

		assert.Equal(t, http.StatusOK, rec.Code)
		env := decodeEnvelope(t, rec)
		got := env.Data["receiver"].(map[string]any)
		assert.Equal(t, "bob", got["name"])
		assert.Equal(t, float64(30), got["coins"])
	})

	t.Run("insufficient balance", func(t *testing.T) {
		ledger.On("Transfer", mock.Anything, sender, receiver, int64(500), "").
			Return(nil, service.ErrInsufficientBalance).Once()

		body := `{"sender":{"id":"1","username":"alice"},"receiver":{"id":"2","username":"bob"},"coins":500}`
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/user.payCoinsByUserId", strings.NewReader(body)))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, "INSUFFICIENT_BALANCE", env.Error.Code)
	})

	t.Run("dedup key replay maps to conflict", func(t *testing.T) {
		ledger.On("Transfer", mock.Anything, sender, receiver, int64(30), "retry-1").
			Return(nil, service.ErrDuplicateTransfer).Once()

		body := `{"sender":{"id":"1","username":"alice"},"receiver":{"id":"2","username":"bob"},"coins":30,"dedupKey":"retry-1"}`
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/user.payCoinsByUserId", strings.NewReader(body)))

		assert.Equal(t, http.StatusConflict, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, "DUPLICATE_TRANSFER", env.Error.Code)
	})

	t.Run("internal errors are not leaked", func(t *testing.T) {
		ledger.On("Transfer", mock.Anything, sender, receiver, int64(30), "").
			Return(nil, assert.AnError).Once()

		body := `{"sender":{"id":"1","username":"alice"},"receiver":{"id":"2","username":"bob"},"coins":30}`
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/user.payCoinsByUserId", strings.NewReader(body)))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, "INTERNAL", env.Error.Code)
		assert.NotContains(t, env.Error.Message, assert.AnError.Error())
	})
}

func TestCreateUser(t *testing.T) {
	users := new(service.MockUserService)
	ledger := new(service.MockLedgerService)
	router := NewRouter(users, ledger)

	t.Run("created", func(t *testing.T) {
		users.On("Create", mock.Anything, mock.MatchedBy(func(p models.CreateUserParams) bool {
			return p.Name == "alice" && p.Coins == nil
		})).Return(&models.User{ID: "u-1", Name: "alice"}, nil).Once()

		body := `{"name":"alice"}`
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/user.create", strings.NewReader(body)))

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("duplicate identity", func(t *testing.T) {
		users.On("Create", mock.Anything, mock.Anything).
			Return(nil, service.ErrDuplicateIdentity).Once()

		body := `{"name":"alice","discordId":"123"}`
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/user.create", strings.NewReader(body)))

		assert.Equal(t, http.StatusConflict, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, "DUPLICATE_IDENTITY", env.Error.Code)
	})

	t.Run("missing name", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/user.create", strings.NewReader(`{}`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
