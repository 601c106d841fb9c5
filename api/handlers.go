package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/Indie-Creator-Community/reward-system/models"
	"github.com/Indie-Creator-Community/reward-system/service"
)

// Handler exposes the user and ledger procedures over HTTP.
type Handler struct {
	users  service.UserService
	ledger service.LedgerService
}

// envelope is the uniform response shape: every code path returns either a
// success envelope or a classified error, never a bare body.
type envelope struct {
	Status string         `json:"status"`
	Data   map[string]any `json:"data,omitempty"`
	Error  *errorBody     `json:"error,omitempty"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respondWithJSON(w http.ResponseWriter, code int, payload envelope) {
	body, err := json.Marshal(payload)
	if err != nil {
		log.WithError(err).Error("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(body)
}

func respondWithData(w http.ResponseWriter, code int, data map[string]any) {
	respondWithJSON(w, code, envelope{Status: "success", Data: data})
}

// respondWithError maps the closed service error set onto HTTP statuses.
// Unclassified errors are logged in full and surfaced as a generic internal
// error; internal diagnostic text never reaches the caller.
func respondWithError(w http.ResponseWriter, err error) {
	var status int
	var code, message string

	switch {
	case errors.Is(err, service.ErrInvalidAmount):
		status, code, message = http.StatusBadRequest, "INVALID_AMOUNT", service.ErrInvalidAmount.Error()
	case errors.Is(err, service.ErrSelfTransfer):
		status, code, message = http.StatusBadRequest, "BAD_REQUEST", service.ErrSelfTransfer.Error()
	case errors.Is(err, service.ErrUserNotFound):
		status, code, message = http.StatusNotFound, "USER_NOT_FOUND", service.ErrUserNotFound.Error()
	case errors.Is(err, service.ErrDuplicateIdentity):
		status, code, message = http.StatusConflict, "DUPLICATE_IDENTITY", service.ErrDuplicateIdentity.Error()
	case errors.Is(err, service.ErrDuplicateTransfer):
		status, code, message = http.StatusConflict, "DUPLICATE_TRANSFER", service.ErrDuplicateTransfer.Error()
	case errors.Is(err, service.ErrInsufficientBalance):
		status, code, message = http.StatusUnprocessableEntity, "INSUFFICIENT_BALANCE", service.ErrInsufficientBalance.Error()
	case errors.Is(err, service.ErrUnavailable):
		status, code, message = http.StatusServiceUnavailable, "UNAVAILABLE", service.ErrUnavailable.Error()
	default:
		log.WithError(err).Error("Unhandled service error")
		status, code, message = http.StatusInternalServerError, "INTERNAL", "internal server error"
	}

	respondWithJSON(w, status, envelope{Status: "error", Error: &errorBody{Code: code, Message: message}})
}

func badRequest(w http.ResponseWriter, message string) {
	respondWithJSON(w, http.StatusBadRequest, envelope{
		Status: "error",
		Error:  &errorBody{Code: "BAD_REQUEST", Message: message},
	})
}

// GET /api/user.getByDiscordId?discordId=
func (h *Handler) getByDiscordID(w http.ResponseWriter, r *http.Request) {
	discordID := r.URL.Query().Get("discordId")
	if discordID == "" {
		badRequest(w, "discordId is required")
		return
	}

	user, err := h.users.GetByDiscordID(r.Context(), discordID)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondWithData(w, http.StatusOK, map[string]any{"user": user})
}

// GET /api/user.getByEmail?email=
func (h *Handler) getByEmail(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		badRequest(w, "email is required")
		return
	}

	user, err := h.users.GetByEmail(r.Context(), email)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondWithData(w, http.StatusOK, map[string]any{"user": user})
}

// GET /api/user.getByAccount?provider=&providerAccountId=
func (h *Handler) getByAccount(w http.ResponseWriter, r *http.Request) {
	provider := r.URL.Query().Get("provider")
	providerAccountID := r.URL.Query().Get("providerAccountId")
	if provider == "" || providerAccountID == "" {
		badRequest(w, "provider and providerAccountId are required")
		return
	}

	user, err := h.users.GetByAccount(r.Context(), provider, providerAccountID)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondWithData(w, http.StatusOK, map[string]any{"user": user})
}

// GET /api/user.getAll
func (h *Handler) getAll(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.GetAll(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	if users == nil {
		users = []*models.User{}
	}

	respondWithData(w, http.StatusOK, map[string]any{"users": users})
}

type createUserRequest struct {
	Name                 string  `json:"name"`
	Email                *string `json:"email"`
	DiscordID            *string `json:"discordId"`
	DiscordUserName      *string `json:"discordUserName"`
	DiscordDiscriminator *string `json:"discordDiscriminator"`
	Thumbnail            string  `json:"thumbnail"`
	Coins                *int64  `json:"coins"`
	GithubUserID         *string `json:"githubUserId"`
	GithubUsername       *string `json:"githubUsername"`
}

// POST /api/user.create
func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.Name == "" {
		badRequest(w, "name is required")
		return
	}

	user, err := h.users.Create(r.Context(), models.CreateUserParams{
		Name:                 req.Name,
		Email:                req.Email,
		DiscordID:            req.DiscordID,
		DiscordUserName:      req.DiscordUserName,
		DiscordDiscriminator: req.DiscordDiscriminator,
		GithubID:             req.GithubUserID,
		GithubUserName:       req.GithubUsername,
		Thumbnail:            req.Thumbnail,
		Coins:                req.Coins,
	})
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondWithData(w, http.StatusCreated, map[string]any{"user": user})
}

type sendCoinsByUserIDRequest struct {
	User  models.DiscordProfile `json:"user"`
	Coins int64                 `json:"coins"`
}

// POST /api/user.sendCoinsByUserId
func (h *Handler) sendCoinsByUserID(w http.ResponseWriter, r *http.Request) {
	var req sendCoinsByUserIDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.User.ID == "" {
		badRequest(w, "user.id is required")
		return
	}

	user, err := h.ledger.CreditDiscord(r.Context(), req.User, req.Coins)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondWithData(w, http.StatusOK, map[string]any{"user": user})
}

type sendCoinsByGithubIDRequest struct {
	User models.GithubProfile `json:"user"`
	// Coins arrives as a numeric string on this procedure.
	Coins string `json:"coins"`
}

// POST /api/user.sendCoinsByGithubId
func (h *Handler) sendCoinsByGithubID(w http.ResponseWriter, r *http.Request) {
	var req sendCoinsByGithubIDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.User.ID == "" {
		badRequest(w, "user.id is required")
		return
	}

	amount, err := strconv.ParseInt(req.Coins, 10, 64)
	if err != nil {
		respondWithError(w, service.ErrInvalidAmount)
		return
	}

	user, err := h.ledger.CreditGithub(r.Context(), req.User, amount)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondWithData(w, http.StatusOK, map[string]any{"user": user})
}

type payCoinsByUserIDRequest struct {
	Sender   models.DiscordProfile `json:"sender"`
	Receiver models.DiscordProfile `json:"receiver"`
	Coins    int64                 `json:"coins"`
	DedupKey string                `json:"dedupKey"`
}

// POST /api/user.payCoinsByUserId
func (h *Handler) payCoinsByUserID(w http.ResponseWriter, r *http.Request) {
	var req payCoinsByUserIDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.Sender.ID == "" || req.Receiver.ID == "" {
		badRequest(w, "sender.id and receiver.id are required")
		return
	}

	receiver, err := h.ledger.Transfer(r.Context(), req.Sender, req.Receiver, req.Coins, req.DedupKey)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondWithData(w, http.StatusOK, map[string]any{"receiver": receiver})
}
