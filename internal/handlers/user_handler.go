package handlers

import (
	"bytes"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openstays/stay-booking/internal/audit"
	"github.com/openstays/stay-booking/internal/dto"
	"github.com/openstays/stay-booking/internal/httperr"
	"github.com/openstays/stay-booking/internal/httpresp"
	"github.com/openstays/stay-booking/internal/images"
	"github.com/openstays/stay-booking/internal/middleware"
	"github.com/openstays/stay-booking/internal/models"
	"github.com/openstays/stay-booking/internal/storage"
)

type UserHandler struct {
	db      *gorm.DB
	uploads storage.Store
	audit   *audit.Dispatcher
}

func NewUserHandler(db *gorm.DB, uploads storage.Store, audit *audit.Dispatcher) *UserHandler {
	return &UserHandler{db: db, uploads: uploads, audit: audit}
}

// --------- Requests ---------

type UpdateProfileRequest struct {
	Name      string `json:"name" binding:"required"`
	Phone     string `json:"phone"`
	AboutMe   string `json:"about_me"`
	City      string `json:"city"`
	Country   string `json:"country"`
	Languages string `json:"languages"`
	Gender    string `json:"gender"`
}

// --------- Profile ---------

func (h *UserHandler) GetProfile(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "user_not_found", "User not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_profile", "Something went wrong.")
		return
	}

	resp := gin.H{
		"id":          user.ID,
		"name":        user.Name,
		"email":       user.Email,
		"role":        user.Role,
		"phone":       user.Phone,
		"about_me":    user.AboutMe,
		"city":        user.City,
		"country":     user.Country,
		"languages":   user.Languages,
		"gender":      user.Gender,
		"profile_pic": user.ProfilePic,
	}
	if user.ProfilePic != "" {
		resp["profile_pic_url"] = h.uploads.URL(user.ProfilePic)
	}

	httpresp.OK(c, resp)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Name is required.")
		return
	}

	updates := map[string]any{
		"name":      req.Name,
		"phone":     req.Phone,
		"about_me":  req.AboutMe,
		"city":      req.City,
		"country":   req.Country,
		"languages": req.Languages,
		"gender":    req.Gender,
	}

	if err := h.db.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
		httperr.Internal(c, "failed_to_update_profile", "Something went wrong.")
		return
	}

	httpresp.OK(c, gin.H{"message": "Profile updated successfully"})
}

func (h *UserHandler) UploadProfilePicture(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	fileHeader, err := c.FormFile("profilePicture")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "No file uploaded.")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_upload", "Something went wrong.")
		return
	}
	defer f.Close()

	normalized, err := images.Normalize(f)
	if err != nil {
		writeError(c, err, "failed_to_process_image")
		return
	}

	filename := uuid.NewString() + ".webp"
	if err := h.uploads.Save(c.Request.Context(), filename, bytes.NewReader(normalized), "image/webp"); err != nil {
		httperr.Internal(c, "failed_to_store_upload", "Something went wrong.")
		return
	}

	if err := h.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("profile_pic", filename).Error; err != nil {
		httperr.Internal(c, "failed_to_update_profile", "Something went wrong.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID: &userID,
		Action: "profile_picture_uploaded",
		Entity: "user",
	})

	httpresp.OK(c, gin.H{
		"message":  "Profile picture uploaded successfully",
		"filename": filename,
		"url":      h.uploads.URL(filename),
	})
}

// --------- Favorites ---------

type AddFavoriteRequest struct {
	PropertyID uint `json:"property_id" binding:"required"`
}

func (h *UserHandler) AddFavorite(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "property_id is required.")
		return
	}

	var property models.Property
	if err := h.db.First(&property, req.PropertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "property_not_found", "Property not found.")
			return
		}
		httperr.Internal(c, "failed_to_add_favorite", "Something went wrong.")
		return
	}

	// The composite unique index decides duplicates, including two
	// concurrent saves of the same property.
	fav := models.Favorite{UserID: userID, PropertyID: req.PropertyID}
	if err := h.db.Create(&fav).Error; err != nil {
		if isDuplicate(err) {
			httperr.Conflict(c, "already_favorited", "Property already in favorites.")
			return
		}
		httperr.Internal(c, "failed_to_add_favorite", "Something went wrong.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "favorite_added",
		Entity:   "property",
		EntityID: &req.PropertyID,
	})

	httpresp.OK(c, gin.H{"message": "Added to favorites"})
}

// RemoveFavorite is idempotent: removing an absent favorite succeeds.
func (h *UserHandler) RemoveFavorite(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	propertyID, err := strconv.ParseUint(c.Param("propertyId"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_property_id", "Property id must be numeric.")
		return
	}

	if err := h.db.
		Where("user_id = ? AND property_id = ?", userID, propertyID).
		Delete(&models.Favorite{}).Error; err != nil {
		httperr.Internal(c, "failed_to_remove_favorite", "Something went wrong.")
		return
	}

	pid := uint(propertyID)
	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "favorite_removed",
		Entity:   "property",
		EntityID: &pid,
	})

	httpresp.OK(c, gin.H{"message": "Removed from favorites"})
}

func (h *UserHandler) ListFavorites(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var ids []uint
	if err := h.db.Model(&models.Favorite{}).
		Where("user_id = ?", userID).
		Pluck("property_id", &ids).Error; err != nil {
		httperr.Internal(c, "failed_to_list_favorites", "Something went wrong.")
		return
	}

	// Nothing saved: skip the catalog entirely.
	if len(ids) == 0 {
		httpresp.OK(c, []dto.PropertyRow{})
		return
	}

	var rows []dto.PropertyRow
	if err := h.db.Model(&models.Property{}).
		Select("properties.*, users.name AS owner_name").
		Joins("JOIN users ON users.id = properties.owner_id").
		Where("properties.id IN ?", ids).
		Order("properties.created_at DESC").
		Scan(&rows).Error; err != nil {
		httperr.Internal(c, "failed_to_list_favorites", "Something went wrong.")
		return
	}

	httpresp.OK(c, rows)
}
