package apperror

// Credential and session failures.
var (
	ErrInvalidCredentials  = New(KindUnauthorized, "InvalidCredentials", "Invalid email or password")
	ErrAccountBlocked      = New(KindForbidden, "AccountBlocked", "Your account has been blocked")
	ErrOtpExpiredOrInvalid = New(KindValidation, "OtpExpiredOrInvalid", "Invalid OTP or OTP has expired")
	ErrOtpMismatch         = New(KindValidation, "OtpMismatch", "Invalid OTP")
	ErrOtpDelivery         = New(KindInternal, "OtpDeliveryFailed", "Failed to send OTP, please try again")
	ErrOtpRateLimited      = New(KindTooManyRequests, "OtpRateLimited", "Too many OTP requests, please wait before retrying")
	ErrInvalidResetToken   = New(KindValidation, "InvalidResetToken", "Password reset token is invalid or has expired")
	ErrResetDelivery       = New(KindInternal, "ResetDeliveryFailed", "Failed to send password reset email")
	ErrIncorrectPassword   = New(KindUnauthorized, "IncorrectPassword", "Old password is incorrect")
	ErrUnauthorized        = New(KindUnauthorized, "Unauthorized", "Invalid or expired token")
	ErrForbidden           = New(KindForbidden, "Forbidden", "You do not have permission to perform this action")
)

// Users.
var (
	ErrUserNotFound   = New(KindNotFound, "UserNotFound", "User not found")
	ErrDuplicateEmail = New(KindConflict, "DuplicateEmail", "Email is already registered")
	ErrDuplicatePhone = New(KindConflict, "DuplicatePhone", "Phone number is already registered")
)

// Rooms and meetings.
var (
	ErrRoomNotFound        = New(KindNotFound, "RoomNotFound", "Room not found")
	ErrRoomUnavailable     = New(KindValidation, "RoomUnavailable", "Room is not available for booking")
	ErrRoomAlreadyBooked   = New(KindConflict, "RoomAlreadyBooked", "Room is already booked for the selected time")
	ErrDuplicateRoomName   = New(KindConflict, "DuplicateRoomName", "A room with this name already exists")
	ErrGalleryNotFound     = New(KindNotFound, "GalleryImageNotFound", "Gallery image not found")
	ErrMeetingNotFound     = New(KindNotFound, "MeetingNotFound", "Meeting not found")
	ErrMeetingCancelled    = New(KindConflict, "MeetingCancelled", "Meeting has been cancelled")
	ErrMeetingCompleted    = New(KindConflict, "MeetingCompleted", "Meeting has already taken place")
	ErrAttendeeNotFound    = New(KindValidation, "AttendeeNotFound", "One or more attendees do not exist")
	ErrNotMeetingOrganizer = New(KindForbidden, "NotMeetingOrganizer", "Only the organizer or an admin can change this meeting")
)

// Committees.
var (
	ErrCommitteeNotFound         = New(KindNotFound, "CommitteeNotFound", "Committee not found")
	ErrDuplicateCommitteeName    = New(KindConflict, "DuplicateCommitteeName", "A committee with this name already exists")
	ErrDuplicateActiveMembership = New(KindConflict, "DuplicateActiveMembership", "User is already an active member of this committee")
	ErrMembershipNotFound        = New(KindNotFound, "MembershipNotFound", "Committee member not found")
)

// Catalog entities.
var (
	ErrAmenityNotFound          = New(KindNotFound, "AmenityNotFound", "Amenity not found")
	ErrDuplicateAmenityName     = New(KindConflict, "DuplicateAmenityName", "An amenity with this name already exists")
	ErrAmenityQuantityNotFound  = New(KindNotFound, "AmenityQuantityNotFound", "Room amenity quantity not found")
	ErrDuplicateAmenityQuantity = New(KindConflict, "DuplicateAmenityQuantity", "This amenity is already assigned to the room")
	ErrLocationNotFound         = New(KindNotFound, "LocationNotFound", "Location not found")
	ErrDuplicateLocationName    = New(KindConflict, "DuplicateLocationName", "A location with this name already exists")
	ErrNotificationNotFound     = New(KindNotFound, "NotificationNotFound", "Notification not found")
)
