/*
Package errs provides custom error types and application-level error code constants.

These error codes are used to clearly identify specific business or system errors
both internally within the server and in communication with clients.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request header Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body JSON format is incorrect (e.g., syntax error).
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates that the request body contained extra content after valid JSON data.
	ErrExtraContentInBody = 1004

	// ErrFormParseFailed indicates failure to parse multipart or URL-encoded form data.
	ErrFormParseFailed = 1005

	// ErrRequestEntityTooLarge indicates that the request body size exceeded the server limit.
	ErrRequestEntityTooLarge = 1006

	// ErrRateLimitExceeded indicates that the request rate has exceeded the set limit.
	ErrRateLimitExceeded = 1007
)

// 21xx: Account Validation Errors
const (
	// ErrRegistrationIncomplete indicates that one of username, password or confirmation was empty.
	ErrRegistrationIncomplete = 2101

	// ErrUsernameExists indicates that the username being registered is already taken.
	ErrUsernameExists = 2102

	// ErrPasswordMismatch indicates that the password and its confirmation differ.
	ErrPasswordMismatch = 2103

	// ErrUsernameNotFound indicates that the username targeted by a password reset is not registered.
	ErrUsernameNotFound = 2104

	// ErrInvalidCredentials indicates that the username is unknown or the password does not match.
	ErrInvalidCredentials = 2105
)

// 22xx: Feature Input Errors
const (
	// ErrNoFileUploaded indicates that a nutrition analysis was requested without an image.
	ErrNoFileUploaded = 2201

	// ErrUnsupportedImage indicates that the uploaded file is not a jpg, jpeg or png image.
	ErrUnsupportedImage = 2202

	// ErrImageTooLarge indicates that the uploaded image exceeded the maximum size.
	ErrImageTooLarge = 2203

	// ErrInvalidAgeGroup indicates that the selected age group is not one of the fixed categories.
	ErrInvalidAgeGroup = 2204

	// ErrInvalidDisease indicates that a selected condition is not in the fixed list.
	ErrInvalidDisease = 2205
)

// 3xxx: Session and Authorization Errors
const (
	// ErrUnauthorized indicates that the session is not logged in.
	ErrUnauthorized = 3001

	// ErrInvalidNavigation indicates that the requested page change is not allowed from the current page.
	ErrInvalidNavigation = 3002
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified, general server internal error.
	ErrUnknown = 5000

	// ErrUserStoreFailed indicates that the user mapping could not be persisted.
	ErrUserStoreFailed = 5001
)
