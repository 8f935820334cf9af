package hotels

import "errors"

var (
	// ErrHotelNotFound is returned when no hotel matches the requested id
	ErrHotelNotFound = errors.New("hotel not found")

	// ErrNoFields is returned when an update carries no recognized field
	ErrNoFields = errors.New("no updates provided")

	// ErrNoIDs is returned when a bulk update targets an empty id list
	ErrNoIDs = errors.New("hotelIds array is required")

	// ErrInvalidStatus is returned when a status value is outside the enumeration
	ErrInvalidStatus = errors.New("invalid status value")

	// ErrMissingContent is returned when a note has no content
	ErrMissingContent = errors.New("note content is required")
)
