package cli

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcliao/training-journal/internal/csvio"
	"github.com/rcliao/training-journal/internal/model"
	"github.com/rcliao/training-journal/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export entries as CSV",
		Long:  "Write entries as CSV (date, exercise, weight, repetitions) to a file, or to stdout with --out -.",
		Run:   runExport,
	}

	addFilterFlags(cmd)
	cmd.Flags().StringP("out", "o", "", "Output file, - for stdout (default: csv_file from config)")
	cmd.Flags().String("lang", "", "Header language: ru or en (default: csv_lang from config)")

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	out, _ := cmd.Flags().GetString("out")
	lang, _ := cmd.Flags().GetString("lang")
	if out == "" {
		out = cfg.CSVFile
	}
	if lang == "" {
		lang = cfg.CSVLang
	}

	entries, err := openStore().List(cmd.Context(), filterParams(cmd))
	if err != nil {
		exitErr("export", err)
	}

	if out == "-" {
		if err := csvio.Write(cmd.OutOrStdout(), entries, lang); err != nil {
			exitErr("export", err)
		}
		return
	}

	if err := writeCSVFile(out, entries, lang); err != nil {
		exitErr("export", err)
	}
	log.Info("exported", "file", out, "entries", len(entries))
	printReply(cmd, fmt.Sprintf(`{"ok":true,"exported":%d,"file":%q}`, len(entries), out),
		fmt.Sprintf("exported %d entries to %s", len(entries), out))
}

func writeCSVFile(path string, entries []model.Entry, lang string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", store.ErrIO, err)
	}
	w := bufio.NewWriter(f)
	if err := csvio.Write(w, entries, lang); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("%w: %v", store.ErrIO, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrIO, err)
	}
	return nil
}
