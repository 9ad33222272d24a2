package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/glowbook/salon-api/internal/models"
	"github.com/glowbook/salon-api/internal/utils"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role"`
}

// Register creates an account. The role is caller-supplied; it must parse
// into the role enum and defaults to customer when empty.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role, err := models.ParseRole(req.Role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		ID:       primitive.NewObjectID(),
		Name:     req.Name,
		Email:    req.Email,
		Password: hashedPassword,
		Role:     role,
	}

	if err := h.Users.Create(c.Request.Context(), &user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists"})
			return
		}
		h.Log.WithError(err).Error("Failed to create user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	// Password stays out of the response via the model's json tag.
	c.JSON(http.StatusCreated, user)
}

// Login checks credentials and issues a signed token. Unknown email and
// wrong password produce the same response.
func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	user, err := h.Users.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		h.Log.WithError(err).Error("Failed to look up user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}
	if user == nil || !utils.CheckPasswordHash(req.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), string(user.Role))
	if err != nil {
		h.Log.WithError(err).Error("Failed to generate token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "role": user.Role, "user": user})
}

// Me returns the authenticated caller's profile.
func (h *Handler) Me(c *gin.Context) {
	id, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	user, err := h.Users.FindByID(c.Request.Context(), id)
	if err != nil {
		h.Log.WithError(err).Error("Failed to fetch user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// ListStaff returns all staff accounts, passwords excluded.
func (h *Handler) ListStaff(c *gin.Context) {
	staff, err := h.Users.FindByRole(c.Request.Context(), models.RoleStaff)
	if err != nil {
		h.Log.WithError(err).Error("Failed to fetch staff users")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch staff users"})
		return
	}
	if staff == nil {
		staff = make([]models.User, 0)
	}
	c.JSON(http.StatusOK, staff)
}

// DeleteStaff removes a staff account. Only accounts whose role is staff
// can be deleted this way.
func (h *Handler) DeleteStaff(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	user, err := h.Users.FindByID(c.Request.Context(), id)
	if err != nil {
		h.Log.WithError(err).Error("Failed to look up user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete staff user"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if user.Role != models.RoleStaff {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Can only delete staff accounts"})
		return
	}

	if _, err := h.Users.Delete(c.Request.Context(), id); err != nil {
		h.Log.WithError(err).Error("Failed to delete staff user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete staff user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Staff user deleted successfully"})
}
