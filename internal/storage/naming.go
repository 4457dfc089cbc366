package storage

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var extPattern = regexp.MustCompile(`^\.[a-z0-9]+$`)

// NewName produces the storage name for a new blob: a random uuid plus the
// extension of the client-supplied filename, so content-type inference keeps
// working later. The rest of the client name is discarded — storage paths are
// built from generated names only.
func NewName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(originalName)))
	if !extPattern.MatchString(ext) {
		ext = ""
	}
	return uuid.NewString() + ext
}
