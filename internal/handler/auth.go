package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/library-study-space/internal/config"
	"github.com/iliyamo/library-study-space/internal/model"
	"github.com/iliyamo/library-study-space/internal/service"
	"github.com/iliyamo/library-study-space/internal/utils"
)

// AuthHandler implements login for the fixed student/staff roster.
// This is demo-grade authentication: identities are seeded, tokens
// are short-lived access tokens only.
type AuthHandler struct {
	Cfg config.Config
	Lib *service.Library
}

func NewAuthHandler(cfg config.Config, lib *service.Library) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Lib: lib}
}

type loginReq struct {
	HolderID string `json:"holder_id"`
	Password string `json:"password"`
}

type holderPart struct {
	ID    model.HolderID `json:"id"`
	Name  string         `json:"name"`
	Email string         `json:"email"`
	Role  string         `json:"role"`
	Title string         `json:"title,omitempty"`
}

type authResp struct {
	Holder  holderPart `json:"holder"`
	Token   string     `json:"token"`
	Expires time.Time  `json:"expires"`
}

// Login verifies a holder ID and password and returns a signed
// access token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.HolderID = strings.ToUpper(strings.TrimSpace(req.HolderID))
	if req.HolderID == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "holder_id/password required"})
	}

	holder, err := h.Lib.Authenticate(model.HolderID(req.HolderID), req.Password)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, string(holder.ID), holder.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}
	return c.JSON(http.StatusOK, authResp{
		Holder:  holderPart{ID: holder.ID, Name: holder.Name, Email: holder.Email, Role: holder.Role, Title: holder.Title},
		Token:   access.Token,
		Expires: access.Exp,
	})
}

// Me returns the authenticated holder's record, including the
// current-session back-reference the dashboard polls.
func (h *AuthHandler) Me(c echo.Context) error {
	id, ok := holderID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	holder, err := h.Lib.Holder(id)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"holder":             holderPart{ID: holder.ID, Name: holder.Name, Email: holder.Email, Role: holder.Role, Title: holder.Title},
		"current_session_id": holder.CurrentSessionID,
	})
}
