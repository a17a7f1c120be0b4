package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/openstays/stay-booking/internal/httperr"
)

// businessStatus maps rule-violation codes raised in use cases to HTTP
// statuses and client-safe messages. Anything not listed is a server
// fault: logged in full, returned generic.
var businessStatus = map[string]struct {
	status  int
	message string
}{
	"invalid_request":          {http.StatusBadRequest, "Invalid request."},
	"invalid_dates":            {http.StatusBadRequest, "End date must be after start date."},
	"invalid_role":             {http.StatusBadRequest, "Role must be traveler or owner."},
	"invalid_email_domain":     {http.StatusBadRequest, "Email domain does not look valid."},
	"invalid_image":            {http.StatusBadRequest, "File is not a supported image."},
	"max_guests_exceeded":      {http.StatusBadRequest, "Property cannot accommodate that many guests."},
	"dates_unavailable":        {http.StatusBadRequest, "Property is not available for the selected dates."},
	"invalid_state":            {http.StatusBadRequest, "Booking is not in a state that allows this."},
	"invalid_credentials":      {http.StatusUnauthorized, "Invalid credentials."},
	"not_authorized":           {http.StatusForbidden, "Not authorized for this resource."},
	"property_not_found":       {http.StatusNotFound, "Property not found."},
	"booking_not_found":        {http.StatusNotFound, "Booking not found."},
	"user_not_found":           {http.StatusNotFound, "User not found."},
	"email_already_registered": {http.StatusConflict, "Email already registered."},
	"already_favorited":        {http.StatusConflict, "Property already in favorites."},
}

func writeError(c *gin.Context, err error, fallbackCode string) {
	if code := httperr.BusinessCode(err); code != "" {
		if m, ok := businessStatus[code]; ok {
			httperr.Write(c, m.status, code, m.message)
			return
		}
	}

	log.Printf("%s: %v", fallbackCode, err)
	httperr.Internal(c, fallbackCode, "Something went wrong.")
}

// isDuplicate reports whether an insert hit a unique index. Checked
// after Create so concurrent duplicates land on the same path as
// sequential ones.
func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
