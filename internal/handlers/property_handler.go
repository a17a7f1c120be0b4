package handlers

import (
	"bytes"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/openstays/stay-booking/internal/audit"
	domain "github.com/openstays/stay-booking/internal/domain/booking"
	"github.com/openstays/stay-booking/internal/dto"
	"github.com/openstays/stay-booking/internal/httperr"
	"github.com/openstays/stay-booking/internal/httpresp"
	"github.com/openstays/stay-booking/internal/images"
	"github.com/openstays/stay-booking/internal/middleware"
	"github.com/openstays/stay-booking/internal/models"
	"github.com/openstays/stay-booking/internal/storage"
)

type PropertyHandler struct {
	db      *gorm.DB
	uploads storage.Store
	audit   *audit.Dispatcher
}

func NewPropertyHandler(db *gorm.DB, uploads storage.Store, audit *audit.Dispatcher) *PropertyHandler {
	return &PropertyHandler{db: db, uploads: uploads, audit: audit}
}

// --------- Requests ---------

type PropertyRequest struct {
	Name        string `json:"property_name" binding:"required"`
	Type        string `json:"property_type" binding:"required"`
	Description string `json:"description"`

	Location string `json:"location" binding:"required"`
	City     string `json:"city" binding:"required"`
	Country  string `json:"country" binding:"required"`

	PricePerNight float64 `json:"price_per_night" binding:"required,gt=0"`
	Bedrooms      int     `json:"bedrooms" binding:"required,min=1"`
	Bathrooms     int     `json:"bathrooms" binding:"required,min=1"`
	MaxGuests     int     `json:"max_guests" binding:"required,min=1"`

	Amenities []string `json:"amenities"`
	Images    []string `json:"images"`
}

// --------- Public catalog ---------

func (h *PropertyHandler) Search(c *gin.Context) {
	q := h.db.Model(&models.Property{}).
		Select("properties.*, users.name AS owner_name").
		Joins("JOIN users ON users.id = properties.owner_id")

	if location := strings.TrimSpace(c.Query("location")); location != "" {
		like := "%" + location + "%"
		q = q.Where(
			"properties.city ILIKE ? OR properties.country ILIKE ? OR properties.location ILIKE ?",
			like, like, like,
		)
	}

	if guestsStr := c.Query("guests"); guestsStr != "" {
		guests, err := strconv.Atoi(guestsStr)
		if err != nil || guests < 1 {
			httperr.BadRequest(c, "invalid_guests", "Guest count must be a positive number.")
			return
		}
		q = q.Where("properties.max_guests >= ?", guests)
	}

	startStr, endStr := c.Query("startDate"), c.Query("endDate")
	if startStr != "" && endStr != "" {
		start, err1 := time.Parse(domain.DateLayout, startStr)
		end, err2 := time.Parse(domain.DateLayout, endStr)
		if err1 != nil || err2 != nil || !end.After(start) {
			httperr.BadRequest(c, "invalid_dates", "Dates must be YYYY-MM-DD with end after start.")
			return
		}

		// Drop properties with an accepted stay crossing [start, end).
		booked := h.db.Model(&models.Booking{}).
			Select("property_id").
			Where(
				"status = ? AND start_date < ? AND end_date > ?",
				domain.StatusAccepted, end, start,
			)
		q = q.Where("properties.id NOT IN (?)", booked)
	}

	var rows []dto.PropertyRow
	if err := q.Order("properties.created_at DESC").Scan(&rows).Error; err != nil {
		httperr.Internal(c, "failed_to_search_properties", "Something went wrong.")
		return
	}

	httpresp.OK(c, rows)
}

func (h *PropertyHandler) GetByID(c *gin.Context) {
	id := c.Param("id")

	var row dto.PropertyDetail
	err := h.db.Model(&models.Property{}).
		Select("properties.*, users.name AS owner_name, users.phone AS owner_phone").
		Joins("JOIN users ON users.id = properties.owner_id").
		Where("properties.id = ?", id).
		First(&row).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "property_not_found", "Property not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_property", "Something went wrong.")
		return
	}

	httpresp.OK(c, row)
}

// --------- Owner catalog ---------

func (h *PropertyHandler) Create(c *gin.Context) {
	ownerID := c.MustGet(middleware.ContextUserID).(uint)

	var req PropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "All required fields must be provided.")
		return
	}

	property := models.Property{
		OwnerID:       ownerID,
		Name:          req.Name,
		Type:          req.Type,
		Description:   req.Description,
		Location:      req.Location,
		City:          req.City,
		Country:       req.Country,
		PricePerNight: req.PricePerNight,
		Bedrooms:      req.Bedrooms,
		Bathrooms:     req.Bathrooms,
		MaxGuests:     req.MaxGuests,
		Amenities:     asList(req.Amenities),
		Images:        asList(req.Images),
	}

	if err := h.db.Create(&property).Error; err != nil {
		httperr.Internal(c, "failed_to_create_property", "Something went wrong.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &ownerID,
		Action:   "property_created",
		Entity:   "property",
		EntityID: &property.ID,
	})

	httpresp.Created(c, gin.H{"property_id": property.ID})
}

func (h *PropertyHandler) Update(c *gin.Context) {
	ownerID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	property, ok := h.ownedProperty(c, id, ownerID)
	if !ok {
		return
	}

	var req PropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "All required fields must be provided.")
		return
	}

	property.Name = req.Name
	property.Type = req.Type
	property.Description = req.Description
	property.Location = req.Location
	property.City = req.City
	property.Country = req.Country
	property.PricePerNight = req.PricePerNight
	property.Bedrooms = req.Bedrooms
	property.Bathrooms = req.Bathrooms
	property.MaxGuests = req.MaxGuests
	property.Amenities = asList(req.Amenities)
	property.Images = asList(req.Images)

	if err := h.db.Save(property).Error; err != nil {
		httperr.Internal(c, "failed_to_update_property", "Something went wrong.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &ownerID,
		Action:   "property_updated",
		Entity:   "property",
		EntityID: &property.ID,
	})

	httpresp.OK(c, property)
}

func (h *PropertyHandler) Delete(c *gin.Context) {
	ownerID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	property, ok := h.ownedProperty(c, id, ownerID)
	if !ok {
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		// Open bookings die with the listing; travelers keep the
		// cancelled rows in their history.
		now := time.Now()
		if err := tx.Model(&models.Booking{}).
			Where("property_id = ? AND status <> ?", property.ID, domain.StatusCancelled).
			Updates(map[string]any{
				"status":       string(domain.StatusCancelled),
				"cancelled_at": &now,
			}).Error; err != nil {
			return err
		}

		if err := tx.Where("property_id = ?", property.ID).
			Delete(&models.Favorite{}).Error; err != nil {
			return err
		}

		return tx.Delete(property).Error
	})

	if err != nil {
		httperr.Internal(c, "failed_to_delete_property", "Something went wrong.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &ownerID,
		Action:   "property_deleted",
		Entity:   "property",
		EntityID: &property.ID,
	})

	httpresp.OK(c, gin.H{"message": "Property deleted successfully"})
}

func (h *PropertyHandler) ListMine(c *gin.Context) {
	ownerID := c.MustGet(middleware.ContextUserID).(uint)

	var properties []models.Property
	if err := h.db.
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&properties).Error; err != nil {
		httperr.Internal(c, "failed_to_list_properties", "Something went wrong.")
		return
	}

	httpresp.OK(c, properties)
}

// maxPropertyImages caps one upload batch.
const maxPropertyImages = 10

// UploadImages stores listing pictures and returns the generated
// filenames; the owner places them in the property's images field via
// Create or Update.
func (h *PropertyHandler) UploadImages(c *gin.Context) {
	ownerID := c.MustGet(middleware.ContextUserID).(uint)

	form, err := c.MultipartForm()
	if err != nil {
		httperr.BadRequest(c, "missing_files", "No files uploaded.")
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		httperr.BadRequest(c, "missing_files", "No files uploaded.")
		return
	}
	if len(files) > maxPropertyImages {
		httperr.BadRequest(c, "too_many_files", "Too many images in one upload.")
		return
	}

	filenames := make([]string, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			httperr.Internal(c, "failed_to_read_upload", "Something went wrong.")
			return
		}

		normalized, err := images.Normalize(f)
		f.Close()
		if err != nil {
			writeError(c, err, "failed_to_process_image")
			return
		}

		filename := uuid.NewString() + ".webp"
		if err := h.uploads.Save(c.Request.Context(), filename, bytes.NewReader(normalized), "image/webp"); err != nil {
			httperr.Internal(c, "failed_to_store_upload", "Something went wrong.")
			return
		}
		filenames = append(filenames, filename)
	}

	h.audit.Dispatch(audit.Event{
		UserID: &ownerID,
		Action: "property_images_uploaded",
		Entity: "property",
	})

	httpresp.OK(c, gin.H{"filenames": filenames})
}

// --------- Helpers ---------

// ownedProperty loads a property and enforces ownership, writing the
// error response itself when the check fails.
func (h *PropertyHandler) ownedProperty(c *gin.Context, id string, ownerID uint) (*models.Property, bool) {
	var property models.Property
	if err := h.db.First(&property, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "property_not_found", "Property not found.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_property", "Something went wrong.")
		return nil, false
	}

	if property.OwnerID != ownerID {
		httperr.Forbidden(c, "not_authorized", "Not authorized for this property.")
		return nil, false
	}

	return &property, true
}

func asList(values []string) pq.StringArray {
	if values == nil {
		return pq.StringArray{}
	}
	return pq.StringArray(values)
}
