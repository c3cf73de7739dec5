/*
Package errs provides custom error types and application-level error code constants.

These error codes identify specific business or system errors both internally
and in responses sent to clients over the HTTP surface.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrRequestEntityTooLarge indicates that the request body size exceeded the server limit.
	ErrRequestEntityTooLarge = 1002

	// ErrRateLimitExceeded indicates that the request rate has exceeded the set limit.
	ErrRateLimitExceeded = 1003

	// ErrUnsupportedMediaType indicates that the request Content-Type is not acceptable.
	ErrUnsupportedMediaType = 1004

	// ErrInvalidJSONFormat indicates that the request body is not valid JSON or contains unknown fields.
	ErrInvalidJSONFormat = 1005

	// ErrExtraContentInBody indicates trailing content after the JSON document in the request body.
	ErrExtraContentInBody = 1006
)

// 2xxx: Room and Game Business Logic Errors
const (
	// ErrRoomNotFound indicates that the room id targeted by an operation does not exist.
	ErrRoomNotFound = 2101
)

// 3xxx: Identity and Session Errors
const (
	// ErrAuthFailed indicates that credential exchange or claim verification failed.
	ErrAuthFailed = 3001

	// ErrIdentityProviderUnavailable indicates that the upstream identity provider
	// could not be reached or returned an unusable response.
	ErrIdentityProviderUnavailable = 3002
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified server internal error.
	ErrUnknown = 5000

	// ErrCatalogUnavailable indicates that the external emote catalog could not be fetched.
	ErrCatalogUnavailable = 5001
)
