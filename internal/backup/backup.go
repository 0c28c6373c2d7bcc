package backup

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/gedcheck/internal/paths"
	"github.com/thoreinstein/gedcheck/pkg/fileutil"
)

// Manager creates, lists, restores and prunes document backups.
type Manager struct {
	rootDir        string
	retentionCount int
	version        string
	now            func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithBackupDir sets the root backup directory.
func WithBackupDir(dir string) Option {
	return func(m *Manager) {
		m.rootDir = dir
	}
}

// WithRetentionCount sets the number of backups kept per document. Values
// below one are ignored.
func WithRetentionCount(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.retentionCount = n
		}
	}
}

// WithVersion records the gedcheck version in new manifests.
func WithVersion(v string) Option {
	return func(m *Manager) {
		m.version = v
	}
}

// NewManager creates a Manager rooted at paths.BackupDir unless overridden.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		rootDir:        paths.BackupDir(),
		retentionCount: DefaultRetentionCount,
		version:        "dev",
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Backup copies the document at path into a new backup and prunes the
// oldest ones beyond the retention count.
func (m *Manager) Backup(path string) (*Manifest, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "resolving %s", path)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, errors.Wrapf(err, "stat %s", path)
	}
	if info.IsDir() {
		return nil, errors.Newf("%s is a directory", path)
	}

	data, err := fileutil.ReadFile(abs)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}

	id, dir, err := m.newBackupDir(abs)
	if err != nil {
		return nil, err
	}

	name := filepath.Base(abs)
	if err := fileutil.AtomicWriteFile(filepath.Join(dir, name), data, info.Mode().Perm()); err != nil {
		os.RemoveAll(dir)
		return nil, errors.Wrap(err, "copying document")
	}

	manifest := &Manifest{
		Version:      ManifestVersion,
		CreatedAt:    m.now().UTC(),
		OriginalPath: abs,
		FileName:     name,
		SHA256Hash:   hashBytes(data),
		Size:         int64(len(data)),
		Mode:         info.Mode().Perm(),
		ToolVersion:  m.version,
		ID:           id,
	}
	encoded, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		os.RemoveAll(dir)
		return nil, errors.Wrap(err, "encoding manifest")
	}
	if err := fileutil.AtomicWriteFile(filepath.Join(dir, manifestName), append(encoded, '\n'), fileutil.DefaultPerm); err != nil {
		os.RemoveAll(dir)
		return nil, errors.Wrap(err, "writing manifest")
	}

	if err := m.Prune(abs, m.retentionCount); err != nil {
		return manifest, errors.Wrap(err, "pruning old backups")
	}
	return manifest, nil
}

// newBackupDir creates the directory for a new backup of abs. The ID is
// bumped by a nanosecond until it is unused.
func (m *Manager) newBackupDir(abs string) (string, string, error) {
	docDir := m.documentDir(abs)
	if err := paths.EnsureDir(docDir, paths.DefaultDirPerm); err != nil {
		return "", "", errors.Wrap(err, "creating backup directory")
	}

	t := m.now().UTC()
	for {
		id := t.Format(idLayout)
		dir := filepath.Join(docDir, id)
		err := os.Mkdir(dir, paths.DefaultDirPerm)
		if err == nil {
			return id, dir, nil
		}
		if !os.IsExist(err) {
			return "", "", errors.Wrap(err, "creating backup directory")
		}
		t = t.Add(time.Nanosecond)
	}
}

// Restore copies a backup over the document at path. An empty id restores
// the newest backup. The copy's hash is checked first.
func (m *Manager) Restore(path, id string) (*Manifest, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "resolving %s", path)
	}

	var manifest *Manifest
	if id == "" {
		manifests, err := m.List(abs)
		if err != nil {
			return nil, err
		}
		manifest = &manifests[0]
	} else {
		manifest, err = m.Get(abs, id)
		if err != nil {
			return nil, err
		}
	}

	src := filepath.Join(m.documentDir(abs), manifest.ID, manifest.FileName)
	data, err := os.ReadFile(src)
	if err != nil {
		return nil, errors.Wrapf(err, "reading backup %s", manifest.ID)
	}
	if hashBytes(data) != manifest.SHA256Hash {
		return nil, errors.Wrapf(ErrBackupCorrupted, "backup %s hash mismatch", manifest.ID)
	}

	if err := fileutil.AtomicWriteFile(manifest.OriginalPath, data, manifest.Mode); err != nil {
		return nil, errors.Wrapf(err, "restoring %s", manifest.OriginalPath)
	}
	return manifest, nil
}

// List returns the backups of the document at path, newest first.
func (m *Manager) List(path string) ([]Manifest, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "resolving %s", path)
	}

	entries, err := os.ReadDir(m.documentDir(abs))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrNoBackupsFound, "for %s", path)
		}
		return nil, errors.Wrap(err, "reading backup directory")
	}

	manifests := make([]Manifest, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		manifest, err := m.Get(abs, entry.Name())
		if err != nil {
			// Partial backups have no manifest.
			continue
		}
		manifests = append(manifests, *manifest)
	}

	if len(manifests) == 0 {
		return nil, errors.Wrapf(ErrNoBackupsFound, "for %s", path)
	}

	slices.SortFunc(manifests, func(a, b Manifest) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(b.ID, a.ID)
	})
	return manifests, nil
}

// Prune removes all but the newest keep backups of the document at path.
func (m *Manager) Prune(path string, keep int) error {
	if keep < 0 {
		return errors.New("keep must be non-negative")
	}

	manifests, err := m.List(path)
	if err != nil {
		if errors.Is(err, ErrNoBackupsFound) {
			return nil
		}
		return err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrapf(err, "resolving %s", path)
	}
	for _, old := range manifests[min(keep, len(manifests)):] {
		if err := os.RemoveAll(filepath.Join(m.documentDir(abs), old.ID)); err != nil {
			return errors.Wrapf(err, "removing backup %s", old.ID)
		}
	}
	return nil
}

// Get returns the manifest of one backup of the document at path.
func (m *Manager) Get(path, id string) (*Manifest, error) {
	if id == "" {
		return nil, errors.New("backup ID is required")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "resolving %s", path)
	}

	data, err := os.ReadFile(filepath.Join(m.documentDir(abs), id, manifestName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrNoBackupsFound, "backup %s", id)
		}
		return nil, errors.Wrap(err, "reading manifest")
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, errors.Wrapf(err, "parsing manifest %s", id)
	}
	manifest.ID = id
	return &manifest, nil
}

// documentDir returns the directory holding every backup of abs.
func (m *Manager) documentDir(abs string) string {
	return filepath.Join(m.rootDir, documentKey(abs))
}

// documentKey names a document's backup directory: its base name plus the
// first 12 hex digits of the SHA256 of its absolute path.
func documentKey(abs string) string {
	sum := sha256.Sum256([]byte(filepath.Clean(abs)))
	return filepath.Base(abs) + "-" + hex.EncodeToString(sum[:])[:12]
}

func hashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
