package hxbind

import "errors"

// Sentinel errors for binding operations.
var (
	ErrIncompatibleState = errors.New("hxbind: state is not compatible with bridge")
	ErrInvalidPath       = errors.New("hxbind: invalid property path")
	ErrNotFound          = errors.New("hxbind: value not found")
	ErrNotBound          = errors.New("hxbind: element is not bound")
	ErrInvalidManifest   = errors.New("hxbind: invalid manifest format")
	ErrManifestSignature = errors.New("hxbind: manifest signature verification failed")
)

// IsIncompatibleState checks if err is an incompatible-state error.
func IsIncompatibleState(err error) bool {
	return errors.Is(err, ErrIncompatibleState)
}

// IsInvalidPath checks if err is an invalid-path error.
func IsInvalidPath(err error) bool {
	return errors.Is(err, ErrInvalidPath)
}

// IsNotFound checks if err is a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsManifestError checks if err is a manifest format or signature error.
func IsManifestError(err error) bool {
	return errors.Is(err, ErrInvalidManifest) || errors.Is(err, ErrManifestSignature)
}
