package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/notes"
	"github.com/dustin/go-humanize"
)

// sniffLen is how many leading bytes content type detection looks at.
const sniffLen = 512

var (
	errNotPDF      = errors.New("only PDF files can be uploaded")
	errUploadLimit = errors.New("file exceeds the upload size limit")
)

// List prints the notes whose name contains the optional query.
func (a *App) List(ctx context.Context, args []string) error {
	opCtx, cancel := a.opContext(ctx)
	defer cancel()

	records := a.files.Search(opCtx, strings.Join(args, " "))
	if len(records) == 0 {
		a.println("No notes found.")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSIZE\tUPLOADED")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.ID, r.Name, humanize.IBytes(uint64(r.SizeBytes)), humanize.Time(r.CreatedAt))
	}
	return tw.Flush()
}

// Show writes the content of note args[0] to the file args[1].
func (a *App) Show(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	id, path := args[0], args[1]

	opCtx, cancel := a.opContext(ctx)
	defer cancel()

	f, err := a.files.Get(opCtx, id)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, f.Content, 0o600); err != nil {
		return fmt.Errorf("error writing %s: %w", path, err)
	}
	a.printf("%s (%s) saved to %s\n", f.Name, humanize.IBytes(uint64(len(f.Content))), path)
	return nil
}

// Usage prints how much of the store is used.
func (a *App) Usage(ctx context.Context, _ []string) error {
	opCtx, cancel := a.opContext(ctx)
	defer cancel()

	u, err := a.files.Usage(opCtx)
	if err != nil {
		return err
	}
	if !u.Bounded() {
		a.printf("%s used, no capacity limit\n", humanize.IBytes(uint64(u.Used)))
		return nil
	}
	a.printf("%s of %s used (%s free)\n",
		humanize.IBytes(uint64(u.Used)), humanize.IBytes(uint64(u.Capacity)), humanize.IBytes(uint64(u.Free())))
	return nil
}

// Upload stores the PDF at args[0]. The file must have a .pdf extension,
// look like a PDF and fit the configured upload limit.
func (a *App) Upload(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	path := args[0]

	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return errNotPDF
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("error opening %s: %w", path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("error reading %s: %w", path, err)
	}
	if a.opts.MaxUpload > 0 && info.Size() > a.opts.MaxUpload {
		return fmt.Errorf("%w: %s is larger than %s", errUploadLimit,
			humanize.IBytes(uint64(info.Size())), humanize.IBytes(uint64(a.opts.MaxUpload)))
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return fmt.Errorf("error reading %s: %w", path, err)
	}
	head = head[:n]
	if http.DetectContentType(head) != notes.AcceptedMimeType {
		return errNotPDF
	}

	opCtx, cancel := a.opContext(ctx)
	defer cancel()

	body := io.MultiReader(bytes.NewReader(head), file)
	rec, err := a.files.Upload(opCtx, filepath.Base(path), notes.AcceptedMimeType, body)
	if err != nil {
		if errors.Is(err, common.ErrCapacityExceeded) {
			return common.ErrCapacityExceeded
		}
		return err
	}
	a.printf("Uploaded %s as %s (%s).\n", rec.Name, rec.ID, humanize.IBytes(uint64(rec.SizeBytes)))
	return nil
}

// Delete removes note args[0] after confirmation.
func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	id := args[0]

	ok, err := Confirm(a.reader, "Delete "+id+"?", a.out)
	if err != nil {
		return err
	}
	if !ok {
		a.println("Cancelled.")
		return nil
	}

	opCtx, cancel := a.opContext(ctx)
	defer cancel()

	if err := a.files.Delete(opCtx, id); err != nil {
		return err
	}
	a.println("Deleted.")
	return nil
}

// Prune repairs divergence between the index and stored content.
func (a *App) Prune(ctx context.Context, _ []string) error {
	opCtx, cancel := a.opContext(ctx)
	defer cancel()

	report, err := a.files.Prune(opCtx)
	if err != nil {
		return err
	}
	a.printf("Removed %d dangling records and %d orphaned files.\n",
		len(report.DroppedRecords), len(report.OrphanedContent))
	return nil
}
