//go:build !swagger

package httpapi

import "github.com/go-chi/chi/v5"

// MountSwagger leaves r untouched; build with -tags=swagger to serve /swagger/.
func MountSwagger(_ chi.Router) {}
