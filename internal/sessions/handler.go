package sessions

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/lotus-studio/lotus/internal/platform/httpx"
)

// Handler wires HTTP endpoints for sessions and enrollment.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		validator: validator.New(),
	}
}

// MountRoutes registers session routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.handleList)
	r.Post("/", h.handleCreate)
	r.Get("/{id}", h.handleGet)
	r.Put("/{id}", h.handleUpdate)
	r.Delete("/{id}", h.handleDelete)
	r.Post("/{id}/participate/{userId}", h.handleParticipate)
	r.Delete("/{id}/participate/{userId}", h.handleUnparticipate)
}

type sessionRequest struct {
	Name        string    `json:"name" validate:"required,max=50"`
	Date        time.Time `json:"date" validate:"required"`
	TeacherID   *int64    `json:"teacher_id"`
	Description string    `json:"description" validate:"max=2500"`
}

type sessionResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Date        time.Time `json:"date"`
	TeacherID   *int64    `json:"teacher_id"`
	Description string    `json:"description"`
	Users       []int64   `json:"users"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toSessionResponse(session *Session) sessionResponse {
	users := session.Users
	if users == nil {
		users = []int64{}
	}
	return sessionResponse{
		ID:          session.ID,
		Name:        session.Name,
		Date:        session.Date,
		TeacherID:   session.TeacherID,
		Description: session.Description,
		Users:       users,
		CreatedAt:   session.CreatedAt,
		UpdatedAt:   session.UpdatedAt,
	}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list sessions", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	out := make([]sessionResponse, 0, len(sessions))
	for i := range sessions {
		out = append(out, toSessionResponse(&sessions[i]))
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "id must be numeric")
		return
	}
	session, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toSessionResponse(session))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	session := &Session{
		Name:        req.Name,
		Date:        req.Date,
		Description: req.Description,
		TeacherID:   req.TeacherID,
	}
	if err := h.service.Create(r.Context(), session); err != nil {
		h.logger.Error("create session", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toSessionResponse(session))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "id must be numeric")
		return
	}
	var req sessionRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	session := &Session{
		ID:          id,
		Name:        req.Name,
		Date:        req.Date,
		Description: req.Description,
		TeacherID:   req.TeacherID,
	}
	if err := h.service.Update(r.Context(), session); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toSessionResponse(session))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "id must be numeric")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) handleParticipate(w http.ResponseWriter, r *http.Request) {
	sessionID, userID, ok := participationIDs(w, r)
	if !ok {
		return
	}
	if err := h.service.Participate(r.Context(), sessionID, userID); err != nil {
		if errors.Is(err, ErrAlreadyParticipating) {
			httpx.Problem(w, http.StatusBadRequest, "Bad Request", "user already participates in this session")
			return
		}
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) handleUnparticipate(w http.ResponseWriter, r *http.Request) {
	sessionID, userID, ok := participationIDs(w, r)
	if !ok {
		return
	}
	if err := h.service.Unparticipate(r.Context(), sessionID, userID); err != nil {
		if errors.Is(err, ErrNotParticipating) {
			httpx.Problem(w, http.StatusBadRequest, "Bad Request", "user does not participate in this session")
			return
		}
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func participationIDs(w http.ResponseWriter, r *http.Request) (sessionID, userID int64, ok bool) {
	sessionID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "session id must be numeric")
		return 0, 0, false
	}
	userID, err = strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "user id must be numeric")
		return 0, 0, false
	}
	return sessionID, userID, true
}
