package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rcliao/training-journal/internal/csvio"
	"github.com/rcliao/training-journal/internal/ledger"
	"github.com/rcliao/training-journal/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import entries from CSV",
		Long: "Append entries from a CSV file in the export format. Rows are validated like add; " +
			"one bad row rejects the whole file. A file already imported is refused unless --force.",
		Args: cobra.MaximumNArgs(1),
		Run:  runImport,
	}

	cmd.Flags().Bool("force", false, "Import even if this file content was imported before")
	cmd.Flags().Bool("dry-run", false, "Validate and report without writing")

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	force, _ := cmd.Flags().GetBool("force")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	path := cfg.CSVFile
	if len(args) > 0 {
		path = args[0]
	}
	ctx := cmd.Context()

	sha, err := ledgerHash(path)
	if err != nil {
		exitErr("import", err)
	}

	l, err := openLedger()
	if err != nil {
		exitErr("open ledger", err)
	}
	defer l.Close()

	if prev, err := l.Seen(ctx, sha); err != nil {
		exitErr("import", err)
	} else if prev != nil && !force {
		exitErr("import", fmt.Errorf("%s was already imported as batch %s on %s (use --force)",
			path, prev.ID, prev.ImportedAt.Local().Format("2006-01-02 15:04")))
	}

	f, err := os.Open(path)
	if err != nil {
		exitErr("import", fmt.Errorf("%w: %v", store.ErrIO, err))
	}
	defer f.Close()

	rows, err := csvio.Read(f)
	if err != nil {
		exitErr("import", err)
	}

	if dryRun {
		printReply(cmd, fmt.Sprintf(`{"ok":true,"dry_run":true,"rows":%d}`, len(rows)),
			fmt.Sprintf("dry run: %d rows would be imported", len(rows)))
		return
	}

	added, err := openStore().AddBatch(ctx, csvio.ToAddParams(rows))
	if err != nil {
		exitErr("import", err)
	}

	imp, err := l.Record(ctx, filepath.Base(path), sha, len(added))
	if err != nil {
		log.Warn("import not recorded in ledger", "error", err)
	}
	batch := ""
	if imp != nil {
		batch = imp.ID
	}
	log.Info("imported", "file", path, "entries", len(added), "batch", batch)
	printReply(cmd, fmt.Sprintf(`{"ok":true,"imported":%d,"batch":%q}`, len(added), batch),
		fmt.Sprintf("imported %d entries (batch %s)", len(added), batch))
}

func ledgerHash(path string) (string, error) {
	sha, err := ledger.HashFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: csv file %s not found", store.ErrIO, path)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", store.ErrIO, err)
	}
	return sha, nil
}
