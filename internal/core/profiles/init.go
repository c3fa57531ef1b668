// Package profiles registers the built-in reconciliation profiles.
// Import it for side effects:
//
//	import _ "github.com/JonMunkholm/recon/internal/core/profiles"
package profiles
