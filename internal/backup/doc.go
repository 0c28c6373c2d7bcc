// Package backup keeps copies of documents that gedcheck is about to
// overwrite, so an in-place repair can be undone.
//
// Each document gets its own directory under the backup root, keyed by its
// base name and a hash of its absolute path. Every backup is a timestamped
// subdirectory holding the copied file and a manifest:
//
//	<root>/
//	└── family.yaml-3f2a9c1b7d4e/
//	    └── 20260123T100712.000000000/
//	        ├── manifest.json
//	        └── family.yaml
//
// The manifest records the original path, mode and SHA256 of the copy.
// [Manager.Restore] refuses to restore a copy whose hash no longer matches.
//
//	mgr := backup.NewManager(backup.WithBackupDir(dir))
//	m, err := mgr.Backup("family.yaml")
//	...
//	err = mgr.Restore("family.yaml", m.ID)
//
// Backups beyond the retention count are pruned, oldest first, each time a
// new one is taken.
package backup
