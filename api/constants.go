package api

const (
	// DefaultFilePermissions for temp directory creation
	DefaultFilePermissions = 0755

	// MaxErrorMessageLength truncates processing errors returned to clients
	MaxErrorMessageLength = 200

	// DefaultRotation is used by the rotate endpoint when none is given
	DefaultRotation = "CW"
)
