package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskboard/internal/service"
	"taskboard/pkg/apierrors"
)

type AuthHandler struct {
	authSvc *service.AuthService
}

func NewAuthHandler(authSvc *service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

func (h *AuthHandler) Register(c *gin.Context) {
	lang := GetLang(c)

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidPayload, lang))
		return
	}

	user, err := h.authSvc.Register(c.Request.Context(), req.Name, req.PhoneNumber, req.Password)
	if err != nil {
		respondServiceError(c, err, apierrors.MsgFailRegister)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully", "user": user})
}

func (h *AuthHandler) Login(c *gin.Context) {
	lang := GetLang(c)

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidPayload, lang))
		return
	}

	user, token, err := h.authSvc.Login(c.Request.Context(), req.PhoneNumber, req.Password)
	if err != nil {
		respondServiceError(c, err, apierrors.MsgInvalidCredentials)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "user": user, "token": token})
}

// Profile returns the authenticated user.
func (h *AuthHandler) Profile(c *gin.Context) {
	lang := GetLang(c)

	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgInvalidCredentials, lang))
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateProfile changes the display name only. The phone number is
// identity and cannot be changed here.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	lang := GetLang(c)

	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgInvalidCredentials, lang))
		return
	}

	var req ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidPayload, lang))
		return
	}

	updated, err := h.authSvc.UpdateProfile(c.Request.Context(), user.ID, req.Name)
	if err != nil {
		respondServiceError(c, err, apierrors.MsgFailProfile)
		return
	}

	c.JSON(http.StatusOK, updated)
}
