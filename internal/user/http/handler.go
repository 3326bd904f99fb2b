package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/boat-rental-backend/internal/auth"
	"github.com/nekogravitycat/boat-rental-backend/internal/pkg/response"
	"github.com/nekogravitycat/boat-rental-backend/internal/user"
)

type UserHandler struct {
	userService user.Service
	jwtManager  *auth.JWTManager
	revoker     *auth.Revoker
}

func NewHandler(userService user.Service, jwtManager *auth.JWTManager, revoker *auth.Revoker) *UserHandler {
	return &UserHandler{
		userService: userService,
		jwtManager:  jwtManager,
		revoker:     revoker,
	}
}

func (h *UserHandler) issue(c *gin.Context, status int, u *user.User) {
	token, err := h.jwtManager.GenerateAccessToken(u.ID, u.Email, string(u.Role))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, status, AuthResponse{User: NewUserResponse(u), Token: token})
}

// Register creates an account and signs the new user in.
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	u, err := h.userService.Register(c.Request.Context(), req.Input())
	if err != nil {
		response.Error(c, err)
		return
	}
	h.issue(c, http.StatusCreated, u)
}

// Login authenticates a user using email and password.
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	u, err := h.userService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.issue(c, http.StatusOK, u)
}

// Logout revokes the token used for this request.
func (h *UserHandler) Logout(c *gin.Context) {
	h.revoker.Revoke(auth.GetTokenID(c), auth.GetTokenExpiry(c))
	response.NoContent(c)
}

// Me retrieves the profile of the currently authenticated user.
func (h *UserHandler) Me(c *gin.Context) {
	u, err := h.userService.GetByID(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			response.Abort(c, http.StatusUnauthorized, "user not found")
			return
		}
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, MeResponse{User: NewUserResponse(u)})
}
