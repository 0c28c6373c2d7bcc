package backup

import (
	"io/fs"
	"time"

	"github.com/cockroachdb/errors"
)

// ManifestVersion is the manifest format written by this package.
const ManifestVersion = 1

// DefaultRetentionCount is the number of backups kept per document.
const DefaultRetentionCount = 5

// idLayout formats backup IDs. Nanoseconds keep IDs unique and sortable.
const idLayout = "20060102T150405.000000000"

const manifestName = "manifest.json"

// Sentinel errors for backup operations.
var (
	// ErrNoBackupsFound indicates no backups exist for the document.
	ErrNoBackupsFound = errors.New("no backups found")

	// ErrBackupCorrupted indicates the stored copy no longer matches the
	// hash in its manifest.
	ErrBackupCorrupted = errors.New("backup corrupted")
)

// Manifest describes one backup. It is stored as manifest.json next to the
// copied file.
type Manifest struct {
	Version      int         `json:"version"`
	CreatedAt    time.Time   `json:"created_at"`
	OriginalPath string      `json:"original_path"`
	FileName     string      `json:"file_name"`
	SHA256Hash   string      `json:"sha256_hash"`
	Size         int64       `json:"size"`
	Mode         fs.FileMode `json:"mode"`
	ToolVersion  string      `json:"gedcheck_version"`

	// ID is the directory name; it is filled in on load.
	ID string `json:"-"`
}
