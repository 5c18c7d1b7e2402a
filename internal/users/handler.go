package users

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"career-backend/internal/shared/auth"
	"career-backend/internal/shared/server/middleware"
	"career-backend/internal/shared/server/respond"
	"career-backend/internal/shared/telemetry"
)

var roleRedirects = map[string]string{
	RoleStudent: "/carpre",
	RoleMentor:  "/mentor",
	RoleAdmin:   "/admin",
}

type Handler struct {
	Svc           *Service
	Issuer        *auth.Issuer
	SecureCookies bool
}

func NewHandler(svc *Service, issuer *auth.Issuer, secureCookies bool) *Handler {
	return &Handler{Svc: svc, Issuer: issuer, SecureCookies: secureCookies}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/register", h.register)
	rg.POST("/auth/login", h.login)
	rg.POST("/auth/logout", h.logout)
	rg.GET("/me", h.me)
	rg.GET("/mentor/students", middleware.RequireRole(RoleMentor), h.listStudents)
	rg.GET("/students/:username", middleware.RequireRole(RoleMentor, RoleAdmin), h.getStudent)
}

type registerRequest struct {
	Role     string `json:"role"`
	Name     string `json:"name"`
	Username string `json:"username"`
	DOB      string `json:"dob"`
	Phone    string `json:"phno"`
	Mentor   string `json:"mentor"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		respond.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	user, err := h.Svc.Register(c.Request.Context(), Registration{
		Role:           req.Role,
		Name:           req.Name,
		Username:       req.Username,
		Secret:         req.DOB,
		Phone:          req.Phone,
		AssignedMentor: req.Mentor,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields):
			respond.Fail(c, http.StatusBadRequest, "Role, Name, Username, and DOB required")
		case errors.Is(err, ErrInvalidRole):
			respond.Fail(c, http.StatusBadRequest, "Invalid role")
		case errors.Is(err, ErrUsernameTaken):
			respond.Fail(c, http.StatusConflict, "Username already registered")
		default:
			telemetry.Error("users.register_failed", map[string]any{"error": err})
			respond.Fail(c, http.StatusInternalServerError, "Failed to register user")
		}
		return
	}
	respond.Message(c, fmt.Sprintf("%s registered successfully", titleCase(user.Role)))
}

type loginRequest struct {
	Username string `json:"username"`
	DOB      string `json:"dob"`
	UserType string `json:"user_type"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		respond.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	user, err := h.Svc.Authenticate(c.Request.Context(), req.UserType, req.Username, req.DOB)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields):
			respond.Fail(c, http.StatusBadRequest, "All fields required")
		case errors.Is(err, ErrInvalidCredentials):
			respond.Fail(c, http.StatusUnauthorized, "Invalid credentials")
		default:
			telemetry.Error("users.login_failed", map[string]any{"error": err})
			respond.Fail(c, http.StatusInternalServerError, "Database query failed")
		}
		return
	}

	token, err := h.Issuer.Sign(user.Username, user.Name, user.Role)
	if err != nil {
		telemetry.Error("users.token_failed", map[string]any{"error": err})
		respond.Fail(c, http.StatusInternalServerError, "Failed to start session")
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, int(h.Issuer.TTL().Seconds()), "/", "", h.SecureCookies, true)

	// The token travels only in the HttpOnly cookie.
	respond.JSON(c, http.StatusOK, gin.H{
		"success":  true,
		"message":  fmt.Sprintf("%s login successful", titleCase(user.Role)),
		"redirect": roleRedirects[user.Role],
		"user":     publicUser(user),
	})
}

func (h *Handler) logout(c *gin.Context) {
	middleware.ClearSessionCookie(c, h.SecureCookies)
	respond.Message(c, "Logged out")
}

func (h *Handler) me(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" || middleware.IsGuest(c) {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "Not logged in", nil)
		return
	}
	role := middleware.UserRoleFromContext(c)
	user := User{Username: userID, Name: middleware.UserNameFromContext(c), Role: role}
	if role != RoleAdmin {
		stored, err := h.Svc.Get(c.Request.Context(), userID)
		switch {
		case err == nil:
			user = stored
		case errors.Is(err, ErrNotFound):
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load user", nil)
			return
		}
	}
	respond.JSON(c, http.StatusOK, publicUser(user))
}

func (h *Handler) listStudents(c *gin.Context) {
	students, err := h.Svc.StudentsForMentor(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		telemetry.Error("users.list_students_failed", map[string]any{"error": err})
		respond.Fail(c, http.StatusInternalServerError, "Database error")
		return
	}
	out := make([]gin.H, 0, len(students))
	for _, s := range students {
		out = append(out, studentSummary(s))
	}
	respond.JSON(c, http.StatusOK, gin.H{"success": true, "students": out})
}

func (h *Handler) getStudent(c *gin.Context) {
	user, err := h.Svc.Get(c.Request.Context(), c.Param("username"))
	if err != nil || user.Role != RoleStudent {
		if err == nil || errors.Is(err, ErrNotFound) {
			respond.Fail(c, http.StatusNotFound, "Student not found")
			return
		}
		respond.Fail(c, http.StatusInternalServerError, "Database error")
		return
	}
	respond.JSON(c, http.StatusOK, studentSummary(user))
}

func publicUser(u User) gin.H {
	return gin.H{
		"name":     u.Name,
		"username": u.Username,
		"phno":     u.Phone,
		"type":     u.Role,
	}
}

func studentSummary(u User) gin.H {
	return gin.H{"id": u.Username, "name": u.Name, "phone": u.Phone}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// bindOptionalJSON treats an empty body as an empty object.
func bindOptionalJSON(c *gin.Context, dst any) error {
	if c.Request.ContentLength == 0 {
		return nil
	}
	return c.ShouldBindJSON(dst)
}
