/*
Package errs provides custom error types and application-level error code constants.

This file defines the map from error codes to the CustomError struct, used to standardize
HTTP responses and internal error handling.
*/
package errs

import "net/http"

// errorMap stores the detailed CustomError struct corresponding to every application error code.
// The key is the error code (int), and the value contains the user message and HTTP status code.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrInvalidParams:         {Code: ErrInvalidParams, Message: "Invalid request parameters."},
	ErrUnsupportedMediaType:  {Code: ErrUnsupportedMediaType, Message: "Unsupported request format."},
	ErrInvalidJSONFormat:     {Code: ErrInvalidJSONFormat, Message: "Unsupported request format."},
	ErrExtraContentInBody:    {Code: ErrExtraContentInBody, Message: "Request contains unexpected data."},
	ErrFormParseFailed:       {Code: ErrFormParseFailed, Message: "Failed to process uploaded data."},
	ErrRequestEntityTooLarge: {Code: ErrRequestEntityTooLarge, Message: "Request size is too large."},
	ErrRateLimitExceeded:     {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},

	// 21xx: Account Validation Errors
	ErrRegistrationIncomplete: {Code: ErrRegistrationIncomplete, Message: "Please enter a valid username and password"},
	ErrUsernameExists:         {Code: ErrUsernameExists, Message: "Username already exists"},
	ErrPasswordMismatch:       {Code: ErrPasswordMismatch, Message: "Passwords do not match"},
	ErrUsernameNotFound:       {Code: ErrUsernameNotFound, Message: "Username does not exist"},
	ErrInvalidCredentials:     {Code: ErrInvalidCredentials, Message: "Incorrect username or password"},

	// 22xx: Feature Input Errors
	ErrNoFileUploaded:   {Code: ErrNoFileUploaded, Message: "No file is uploaded!"},
	ErrUnsupportedImage: {Code: ErrUnsupportedImage, Message: "Please upload a jpg, jpeg or png image."},
	ErrImageTooLarge:    {Code: ErrImageTooLarge, Message: "Image is too large (max %d MB)."},
	ErrInvalidAgeGroup:  {Code: ErrInvalidAgeGroup, Message: "Please select a valid age group."},
	ErrInvalidDisease:   {Code: ErrInvalidDisease, Message: "Unknown condition selected: %s."},

	// 3xxx: Session and Authorization Errors
	ErrUnauthorized:      {Code: ErrUnauthorized, Message: "Please sign in to continue.", Status: http.StatusUnauthorized},
	ErrInvalidNavigation: {Code: ErrInvalidNavigation, Message: "That page is not available right now."},

	// 5xxx: Internal System Errors
	ErrUnknown:         {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
	ErrUserStoreFailed: {Code: ErrUserStoreFailed, Message: "Could not save account changes. Please try again.", Status: http.StatusInternalServerError},
}
