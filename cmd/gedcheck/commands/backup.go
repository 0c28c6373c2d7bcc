package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/gedcheck/cmd"
	"github.com/thoreinstein/gedcheck/internal/backup"
	"github.com/thoreinstein/gedcheck/internal/errors"
	"github.com/thoreinstein/gedcheck/internal/logging"
	"github.com/thoreinstein/gedcheck/internal/prompt"
)

var (
	backupListJSON      bool
	backupRestoreChoose bool
)

func init() {
	backupListCmd.Flags().BoolVar(&backupListJSON, "json", false, "Output in JSON format")
	backupRestoreCmd.Flags().BoolVarP(&backupRestoreChoose, "choose", "i", false,
		"pick the backup from a numbered list")
	backupCmd.AddCommand(backupListCmd)
	backupCmd.AddCommand(backupCreateCmd)
	backupCmd.AddCommand(backupRestoreCmd)
	rootCmd.AddCommand(backupCmd)
}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage document backups",
	Long: `Manage the copies gedcheck takes before repair overwrites a document.

Backups live in the user state directory unless backup.dir is configured.
Only the newest backup.retention copies of each document are kept.`,
}

var backupListCmd = &cobra.Command{
	Use:   "list <file>",
	Short: "List backups of a document",
	Long:  `List the backups of a document, most recent first.`,
	Example: `  gedcheck backup list family.yaml
  gedcheck backup list --json family.yaml

  See Also:
    gedcheck backup restore - Restore from a backup`,
	Args: cobra.ExactArgs(1),
	RunE: runBackupList,
}

var backupCreateCmd = &cobra.Command{
	Use:   "create <file>",
	Short: "Back up a document now",
	Args:  cobra.ExactArgs(1),
	RunE:  runBackupCreate,
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore <file> [backup-id]",
	Short: "Restore a document from a backup",
	Long: `Restore a document from a backup. Without a backup ID the most recent
backup is used, or with --choose you pick one from a list. The copy is checked against the hash in its manifest
before the document is overwritten.`,
	Example: `  gedcheck backup restore family.yaml
  gedcheck backup restore family.yaml 20260123T100712.000000000
  gedcheck backup restore --choose family.yaml`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runBackupRestore,
}

// backupInfo is the JSON form of one backup.
type backupInfo struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`
	Size      int64  `json:"size"`
	Version   string `json:"gedcheck_version"`
}

func runBackupList(c *cobra.Command, args []string) error {
	w := c.OutOrStdout()
	manifests, err := appConfig.BackupManager(cmd.Version).List(args[0])
	if err != nil && !errors.Is(err, backup.ErrNoBackupsFound) {
		return errors.NewSystemError(err, "")
	}

	if backupListJSON {
		out := make([]backupInfo, len(manifests))
		for i, m := range manifests {
			out[i] = backupInfo{
				ID:        m.ID,
				CreatedAt: m.CreatedAt.Format(time.RFC3339),
				Size:      m.Size,
				Version:   m.ToolVersion,
			}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if len(manifests) == 0 {
		fmt.Fprintf(w, "No backups of %s\n", args[0])
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tSIZE\tVERSION")
	for _, m := range manifests {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n",
			color.GreenString(m.ID),
			m.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			m.Size,
			m.ToolVersion)
	}
	return tw.Flush()
}

func runBackupCreate(c *cobra.Command, args []string) error {
	manifest, err := appConfig.BackupManager(cmd.Version).Backup(args[0])
	if err != nil {
		return errors.NewUserError(err, "Check that the file exists")
	}
	logging.FromContext(c.Context()).Info("document backed up", "path", args[0], "id", manifest.ID)
	fmt.Fprintf(c.OutOrStdout(), "Backed up %s as %s\n", args[0], manifest.ID)
	return nil
}

func runBackupRestore(c *cobra.Command, args []string) error {
	mgr := appConfig.BackupManager(cmd.Version)

	var id string
	switch {
	case len(args) == 2:
		id = args[1]
	case backupRestoreChoose:
		chosen, err := chooseBackup(c, mgr, args[0])
		if err != nil {
			return err
		}
		id = chosen
	}

	manifest, err := mgr.Restore(args[0], id)
	if err != nil {
		if errors.Is(err, backup.ErrNoBackupsFound) {
			return errors.NewUserError(err, "Run: gedcheck backup list "+args[0])
		}
		return errors.NewSystemError(err, "")
	}

	fmt.Fprintf(c.OutOrStdout(), "%s Restored %s from %s\n", color.GreenString("✓"), manifest.OriginalPath, manifest.ID)
	return nil
}

// chooseBackup lists the backups of path and asks which one to restore.
func chooseBackup(c *cobra.Command, mgr *backup.Manager, path string) (string, error) {
	manifests, err := mgr.List(path)
	if err != nil {
		if errors.Is(err, backup.ErrNoBackupsFound) {
			return "", errors.NewUserError(err, "Run: gedcheck backup create "+path)
		}
		return "", errors.NewSystemError(err, "")
	}

	selector := prompt.NewSelector(c.InOrStdin(), c.OutOrStdout())
	chosen, err := prompt.Select(selector, "Backups of "+path+":", manifests, func(m backup.Manifest) string {
		return fmt.Sprintf("%s  %s  %d bytes", m.ID, m.CreatedAt.Local().Format("2006-01-02 15:04:05"), m.Size)
	})
	if err != nil {
		return "", errors.NewUserError(err, "Enter the number of a listed backup")
	}
	return chosen.ID, nil
}
