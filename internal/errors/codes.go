package errors

// Error code constants.
// Format: CATEGORY_SPECIFIC_DETAIL
// Frontends map these codes to display messages.

const (
	// ==================== Authentication (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"        // login required
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // wrong email/password
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"       // token expired
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"       // malformed or bad signature
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"       // token revoked by logout
	AuthUsernameExists     = "AUTH_USERNAME_EXISTS"     // duplicate username
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"        // duplicate email

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden    = "AUTHZ_FORBIDDEN"      // no access
	AuthzAdminOnly    = "AUTHZ_ADMIN_ONLY"     // admin role required
	AuthzOwnerOnly    = "AUTHZ_OWNER_ONLY"     // resource owned by another user
	AuthzRoleNotFound = "AUTHZ_ROLE_NOT_FOUND" // role missing from context

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput    = "VALIDATION_INVALID_INPUT"    // malformed request body
	ValidationInvalidID       = "VALIDATION_INVALID_ID"       // malformed ID parameter
	ValidationInvalidQuantity = "VALIDATION_INVALID_QUANTITY" // quantity below 1
	ValidationInvalidRange    = "VALIDATION_INVALID_RANGE"    // value out of range
	ValidationInvalidAction   = "VALIDATION_INVALID_ACTION"   // unknown cart action
	ValidationRequired        = "VALIDATION_REQUIRED"         // required field missing
	ValidationPasswordMismatch = "VALIDATION_PASSWORD_MISMATCH" // password confirmation differs

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"      // missing product/cart item/order
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS" // duplicate row
	ResourceConflict      = "RESOURCE_CONFLICT"       // constraint conflict

	// ==================== Cart / checkout (CART_) ====================
	CartEmpty = "CART_EMPTY" // checkout attempted with no items

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalConfigError   = "INTERNAL_CONFIG_ERROR"
)
