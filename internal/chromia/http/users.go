package http

import (
	"net/http"

	"github.com/Brickle-Pickle/Chromia/internal/chromia/domain"
	"github.com/Brickle-Pickle/Chromia/internal/chromia/service"
	"github.com/Brickle-Pickle/Chromia/pkg/chromiasdk"
	"github.com/Brickle-Pickle/Chromia/pkg/httpx"
)

type UsersHandler struct {
	UserService *service.UserService
}

func userInfo(u domain.User) chromiasdk.UserInfo {
	return chromiasdk.UserInfo{ID: u.ID, Username: u.Username}
}

// HandleRegister creates a new account.
func (h *UsersHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req chromiasdk.CredentialsRequest
	if err := httpx.ReadJSON(w, r, &req); err != nil {
		chromiasdk.ErrValidation.WithMessage("invalid request body").WriteError(w)
		return
	}

	user, err := h.UserService.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, userInfo(user))
}

// HandleLogin verifies credentials and returns a session token.
func (h *UsersHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req chromiasdk.CredentialsRequest
	if err := httpx.ReadJSON(w, r, &req); err != nil {
		chromiasdk.ErrValidation.WithMessage("invalid request body").WriteError(w)
		return
	}

	token, user, err := h.UserService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, chromiasdk.AuthResponse{
		Token: token,
		User:  userInfo(user),
	})
}

// HandleCurrent resolves the session back to a live account.
func (h *UsersHandler) HandleCurrent(w http.ResponseWriter, r *http.Request) {
	user, err := h.UserService.CurrentUser(r.Context(), httpx.UserIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, userInfo(user))
}
