package storage

import (
	"path"
	"strings"

	"github.com/satvik2131/lamars-truck-backend/internal/uuid"
)

// objectName builds "<folder>/<id><ext>" from the client file name.
// The extension is lower-cased and dropped when it is not a plain suffix.
func objectName(folder string, id uuid.UUID, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	if len(ext) > 6 || strings.ContainsAny(ext, " /\\?#%") {
		ext = ""
	}
	return joinKey(folder, id.String()+ext)
}

func joinKey(folder, name string) string {
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return name
	}
	return folder + "/" + name
}
