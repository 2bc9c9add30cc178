package constants

const ROLE_USER = "User"

// Default role given to a member added through membership synchronization.
const DEFAULT_COMMITTEE_ROLE = ROLE_USER

const (
	ACCESS_TOKEN_COOKIE  = "access_token"
	REFRESH_TOKEN_COOKIE = "refresh_token"
)

const (
	FOLDER_AVATAR  = "avatars"
	FOLDER_ROOM    = "rooms"
	FOLDER_GALLERY = "rooms/gallery"
)

const (
	RECENT_ACTIVITY_LIMIT = 6
	DEFAULT_PAGE_LIMIT    = 10
	MAX_PAGE_LIMIT        = 100
)

const (
	MISSING_LOGIN_INPUT       = "Email and password are required"
	MISSING_OTP_INPUT         = "Email and OTP are required"
	OTP_SENT                  = "OTP sent to your email"
	LOGIN_SUCCESS             = "User logged in successfully"
	LOGOUT_SUCCESS            = "User logged out successfully"
	TOKEN_REFRESHED           = "Access token refreshed"
	RESET_LINK_SENT           = "Password reset link sent to your email"
	PASSWORD_RESET            = "Password has been reset successfully"
	PASSWORD_CHANGED          = "Password changed successfully"
	USER_REGISTERED           = "User registered successfully"
	FETCH_SUCCESS             = "Fetched successfully"
	CREATE_SUCCESS            = "Created successfully"
	UPDATE_SUCCESS            = "Updated successfully"
	DELETE_SUCCESS            = "Deleted successfully"
	MEETING_BOOKED            = "Meeting booked successfully"
	MEETING_CANCELLED         = "Meeting cancelled successfully"
	MEMBERSHIPS_UPDATED       = "Committee memberships updated"
	NOTIFICATIONS_MARKED_READ = "Notifications marked as read"
	ROOM_LOGIN_SUCCESS        = "Room logged in successfully"
	INVALID_ID                = "Invalid id"
	MISSING_TOKEN             = "Missing token"
	INVALID_TOKEN             = "Invalid or expired token"
	NOT_ADMIN                 = "Admin access required"
)

const (
	NOTIFICATION_MEETING_BOOKED    = "Meeting Booked"
	NOTIFICATION_MEETING_UPDATED   = "Meeting Updated"
	NOTIFICATION_MEETING_CANCELLED = "Meeting Canceled"
)
