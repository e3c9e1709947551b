package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrSessionInvalidated ErrCode = "SESSION_INVALIDATED"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"
	ErrEmailTaken         ErrCode = "EMAIL_TAKEN"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrPermissionDenied ErrCode = "PERMISSION_DENIED"
	ErrUserAccessOnly   ErrCode = "USER_ACCESS_ONLY"
	ErrStaffAccessOnly  ErrCode = "STAFF_ACCESS_ONLY"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound        ErrCode = "NOT_FOUND"
	ErrUserNotFound    ErrCode = "USER_NOT_FOUND"
	ErrClassNotFound   ErrCode = "CLASS_NOT_FOUND"
	ErrTrainerNotFound ErrCode = "TRAINER_NOT_FOUND"
	ErrStaffNotFound   ErrCode = "STAFF_NOT_FOUND"
	ErrInvoiceNotFound ErrCode = "INVOICE_NOT_FOUND"

	ErrCarouselImageNotFound ErrCode = "CAROUSEL_IMAGE_NOT_FOUND"

	// ─── Administration ────────────────────────────────────────────────
	ErrCannotDeactivateSelf ErrCode = "CANNOT_DEACTIVATE_SELF"
	ErrInvoiceAlreadyPaid   ErrCode = "INVOICE_ALREADY_PAID"

	// ─── Booking ───────────────────────────────────────────────────────
	ErrClassFull        ErrCode = "CLASS_FULL"
	ErrAlreadyBooked    ErrCode = "ALREADY_BOOKED"
	ErrBookingNotFound  ErrCode = "BOOKING_NOT_FOUND"
	ErrAccountNotActive ErrCode = "ACCOUNT_NOT_ACTIVE"
	ErrNotBookingOwner  ErrCode = "NOT_BOOKING_OWNER"
	ErrInvalidSchedule  ErrCode = "INVALID_SCHEDULE"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrStorageUnavailable ErrCode = "STORAGE_UNAVAILABLE"
	ErrInternal           ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Invalid email or password."
	case ErrSessionInvalidated:
		return "Your session has ended. Please log in again."
	case ErrTokenRequired:
		return "An authentication token is required."
	case ErrTokenInvalid:
		return "The authentication token is invalid or expired."
	case ErrEmailTaken:
		return "This email is already registered."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrPermissionDenied:
		return "You do not have permission to perform this action."
	case ErrUserAccessOnly:
		return "This resource is restricted to members."
	case ErrStaffAccessOnly:
		return "This resource is restricted to staff."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid ID format."
	case ErrInvalidPayload:
		return "Invalid request payload."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Resource not found."
	case ErrUserNotFound:
		return "User not found."
	case ErrClassNotFound:
		return "Class not found."
	case ErrTrainerNotFound:
		return "Trainer not found or inactive."
	case ErrStaffNotFound:
		return "Staff account not found."
	case ErrInvoiceNotFound:
		return "Invoice not found."
	case ErrCarouselImageNotFound:
		return "Carousel image not found."

	// ─── Administration ────────────────────────────────────────────────
	case ErrCannotDeactivateSelf:
		return "You cannot deactivate your own account."
	case ErrInvoiceAlreadyPaid:
		return "This invoice has already been paid."

	// ─── Booking ───────────────────────────────────────────────────────
	case ErrClassFull:
		return "This class is already full."
	case ErrAlreadyBooked:
		return "You have already booked this class."
	case ErrBookingNotFound:
		return "Booking not found."
	case ErrAccountNotActive:
		return "Your account is not active yet. Please contact an admin."
	case ErrNotBookingOwner:
		return "You are not authorized to cancel this booking."
	case ErrInvalidSchedule:
		return "The class must end after it starts."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrStorageUnavailable:
		return "The booking service is temporarily unavailable. Please try again."
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
