package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/openstays/stay-booking/internal/audit"
	"github.com/openstays/stay-booking/internal/httperr"
	"github.com/openstays/stay-booking/internal/httpresp"
	"github.com/openstays/stay-booking/internal/middleware"
	"github.com/openstays/stay-booking/internal/models"
	"github.com/openstays/stay-booking/internal/session"
	"github.com/openstays/stay-booking/internal/validators"
)

type AuthHandler struct {
	db       *gorm.DB
	sessions *session.Store
	audit    *audit.Dispatcher
}

func NewAuthHandler(db *gorm.DB, sessions *session.Store, audit *audit.Dispatcher) *AuthHandler {
	return &AuthHandler{db: db, sessions: sessions, audit: audit}
}

// --------- Requests ---------

type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "All fields are required.")
		return
	}

	role := models.Role(strings.ToLower(strings.TrimSpace(req.Role)))
	if !role.Valid() {
		httperr.BadRequest(c, "invalid_role", "Role must be traveler or owner.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email_domain", "Email domain does not look valid.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Something went wrong.")
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         role,
	}

	// The unique index on email is the authority on duplicates; a
	// pre-check would still race with a concurrent signup.
	if err := h.db.Create(&user).Error; err != nil {
		if isDuplicate(err) {
			httperr.Conflict(c, "email_already_registered", "Email already registered.")
			return
		}
		httperr.Internal(c, "failed_to_create_user", "Something went wrong.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID: &user.ID,
		Action: "user_registered",
		Entity: "user",
	})

	httpresp.Created(c, gin.H{"user_id": user.ID})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Email and password are required.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	// Unknown email and wrong password answer identically so the
	// endpoint cannot be used to enumerate accounts.
	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "Invalid credentials.")
			return
		}
		httperr.Internal(c, "failed_to_login", "Something went wrong.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid credentials.")
		return
	}

	token, err := h.sessions.Create(c.Request.Context(), session.Data{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		Name:   user.Name,
	})
	if err != nil {
		httperr.Internal(c, "failed_to_create_session", "Something went wrong.")
		return
	}

	h.setSessionCookie(c, token, h.sessions.TTLSeconds())

	h.audit.Dispatch(audit.Event{
		UserID: &user.ID,
		Action: "user_logged_in",
		Entity: "user",
	})

	httpresp.OK(c, gin.H{
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	token := c.MustGet(middleware.ContextToken).(string)

	if err := h.sessions.Destroy(c.Request.Context(), token); err != nil {
		httperr.Internal(c, "failed_to_logout", "Something went wrong.")
		return
	}

	h.setSessionCookie(c, "", -1)
	httpresp.OK(c, gin.H{"message": "Logout successful"})
}

// Check reports authentication state without ever erroring: an
// anonymous caller is a normal answer, not a failure.
func (h *AuthHandler) Check(c *gin.Context) {
	anonymous := gin.H{"authenticated": false}

	token, err := c.Cookie(session.CookieName)
	if err != nil || token == "" {
		httpresp.OK(c, anonymous)
		return
	}

	data, err := h.sessions.Get(c.Request.Context(), token)
	if err != nil || data == nil {
		httpresp.OK(c, anonymous)
		return
	}

	// The session may outlive the account; confirm the user still exists.
	var user models.User
	if err := h.db.First(&user, data.UserID).Error; err != nil {
		httpresp.OK(c, anonymous)
		return
	}

	httpresp.OK(c, gin.H{
		"authenticated": true,
		"user": gin.H{
			"id":          user.ID,
			"name":        user.Name,
			"email":       user.Email,
			"role":        user.Role,
			"profile_pic": user.ProfilePic,
		},
	})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, token, maxAge, "/", "", false, true)
}
