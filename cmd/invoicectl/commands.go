package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/ridwanfathin/invoice-explorer-service/internal/apiclient"
	"github.com/ridwanfathin/invoice-explorer-service/internal/domain"
	"github.com/ridwanfathin/invoice-explorer-service/internal/engine"
	"github.com/ridwanfathin/invoice-explorer-service/internal/repository"
	"github.com/ridwanfathin/invoice-explorer-service/internal/service"
	"github.com/urfave/cli/v2"
)

func newAPIClient(c *cli.Context) *apiclient.Client {
	return apiclient.NewClient(&apiclient.Config{
		BaseURL: c.String("api"),
		Timeout: c.Duration("timeout"),
	})
}

func newInvoiceService(c *cli.Context) *service.InvoiceServiceImpl {
	return service.NewInvoiceService(newAPIClient(c),
		repository.NewMemorySessionRepository(0),
		nil,
		nil)
}

func requireArg(c *cli.Context, name string) (string, error) {
	arg := c.Args().First()
	if arg == "" {
		return "", cli.Exit(fmt.Sprintf("missing %s argument", name), 2)
	}
	return arg, nil
}

func filesCommand() *cli.Command {
	return &cli.Command{
		Name:  "files",
		Usage: "list the files of the file API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "search", Usage: "case-insensitive name filter"},
			&cli.StringFlag{Name: "type", Usage: "file type filter", Value: domain.CategoryAll},
			&cli.StringFlag{Name: "sort", Usage: "name, type or size", Value: string(domain.SortByName)},
		},
		Action: func(c *cli.Context) error {
			listing, err := service.NewFileService(newAPIClient(c)).ListFiles(c.Context, domain.FileFilter{
				Search:   c.String("search"),
				Category: c.String("type"),
				SortBy:   domain.SortField(c.String("sort")),
			})
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tTYPE\tSIZE")
			for _, f := range listing.Files {
				fmt.Fprintf(w, "%s\t%s\t%s\n", f.Name, f.Type, service.FormatFileSize(f.Size))
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "%d of %d files\n", len(listing.Files), listing.Total)
			return nil
		},
	}
}

func showCommand() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "show the items and totals of an invoice file",
		ArgsUsage: "<file>",
		Action: func(c *cli.Context) error {
			fileName, err := requireArg(c, "file")
			if err != nil {
				return err
			}

			view, err := newInvoiceService(c).GetInvoice(c.Context, fileName)
			if err != nil {
				return err
			}
			return printInvoice(c.App.Writer, view.TaxMode, view.Invoice)
		},
	}
}

func uploadCommand() *cli.Command {
	return &cli.Command{
		Name:      "upload",
		Usage:     "upload a local JSON invoice document",
		ArgsUsage: "<path>",
		Action: func(c *cli.Context) error {
			path, err := requireArg(c, "path")
			if err != nil {
				return err
			}

			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()

			detailPath, err := service.NewFileService(newAPIClient(c)).UploadFile(c.Context, filepath.Base(path), f)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "uploaded %s (%s)\n", filepath.Base(path), detailPath)
			return nil
		},
	}
}

func downloadCommand() *cli.Command {
	return &cli.Command{
		Name:      "download",
		Usage:     "download a file, or its current content with --current",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "current", Usage: "export the current content as <name>_edited_<date>.json"},
			&cli.StringFlag{Name: "dir", Usage: "target directory", Value: "."},
		},
		Action: func(c *cli.Context) error {
			fileName, err := requireArg(c, "file")
			if err != nil {
				return err
			}

			svc := newInvoiceService(c)
			var download *service.FileDownload
			if c.Bool("current") {
				download, err = svc.ExportCurrent(c.Context, fileName)
			} else {
				download, err = svc.DownloadOriginal(c.Context, fileName)
			}
			if err != nil {
				return err
			}

			target := filepath.Join(c.String("dir"), filepath.Base(download.FileName))
			if err := os.WriteFile(target, download.Data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "saved %s (%d bytes)\n", target, len(download.Data))
			return nil
		},
	}
}

// fieldEdit is one --set value of the recalc command
type fieldEdit struct {
	Index int
	Field engine.Field
	Value string
}

// parseFieldEdit parses "index:Field=value"
func parseFieldEdit(raw string) (fieldEdit, error) {
	indexPart, rest, ok := strings.Cut(raw, ":")
	if !ok {
		return fieldEdit{}, fmt.Errorf("invalid edit %q: expected index:Field=value", raw)
	}
	field, value, ok := strings.Cut(rest, "=")
	if !ok || field == "" {
		return fieldEdit{}, fmt.Errorf("invalid edit %q: expected index:Field=value", raw)
	}
	index, err := strconv.Atoi(strings.TrimSpace(indexPart))
	if err != nil {
		return fieldEdit{}, fmt.Errorf("invalid edit %q: bad item index", raw)
	}
	return fieldEdit{Index: index, Field: engine.Field(strings.TrimSpace(field)), Value: value}, nil
}

func recalcCommand() *cli.Command {
	return &cli.Command{
		Name:      "recalc",
		Usage:     "edit and recalculate a local invoice document",
		ArgsUsage: "<path>",
		Description: "Deletes run first (indexes of the loaded list, highest first, each index once), then adds, " +
			"then field edits (indexes of the resulting list), then other charges.",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "set", Usage: "field edit as index:Field=value"},
			&cli.IntFlag{Name: "add", Usage: "number of default items to append"},
			&cli.IntSliceFlag{Name: "delete", Usage: "index of an item to delete"},
			&cli.StringFlag{Name: "other-charges", Usage: "manual other charges amount"},
			&cli.BoolFlag{Name: "write", Usage: "write the result back to the file"},
		},
		Action: func(c *cli.Context) error {
			path, err := requireArg(c, "path")
			if err != nil {
				return err
			}

			edits := make([]fieldEdit, 0, len(c.StringSlice("set")))
			for _, raw := range c.StringSlice("set") {
				edit, err := parseFieldEdit(raw)
				if err != nil {
					return cli.Exit(err.Error(), 2)
				}
				edits = append(edits, edit)
			}

			var otherCharges *string
			if c.IsSet("other-charges") {
				v := c.String("other-charges")
				otherCharges = &v
			}

			session, err := recalcFile(path, c.IntSlice("delete"), c.Int("add"), edits, otherCharges)
			if err != nil {
				return err
			}

			if err := printInvoice(c.App.Writer, session.TaxMode, session.Invoice()); err != nil {
				return err
			}

			if !session.HasChanges() {
				fmt.Fprintln(c.App.Writer, "no changes")
				return nil
			}
			if c.Bool("write") {
				if err := writeDocument(path, session.Working); err != nil {
					return err
				}
				fmt.Fprintf(c.App.Writer, "wrote %s\n", path)
			}
			return nil
		},
	}
}

// recalcFile loads a document and applies the edits in a fresh session
func recalcFile(path string, deletes []int, adds int, edits []fieldEdit, otherCharges *string) (*engine.Session, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc domain.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	session, err := engine.StartSession(filepath.Base(path), filepath.Base(path), &doc)
	if err != nil {
		return nil, err
	}

	sorted := append([]int(nil), deletes...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
	for i, index := range sorted {
		if i > 0 && sorted[i-1] == index {
			continue
		}
		if err := session.DeleteItem(index); err != nil {
			return nil, err
		}
	}

	for i := 0; i < adds; i++ {
		session.AddItem()
	}

	for _, edit := range edits {
		if err := session.ApplyFieldEdit(edit.Index, edit.Field, edit.Value); err != nil {
			return nil, err
		}
	}

	if otherCharges != nil {
		session.SetOtherCharges(*otherCharges)
	}

	return session, nil
}

func writeDocument(path string, doc *domain.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func printInvoice(out io.Writer, mode domain.TaxMode, inv *domain.Invoice) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)

	header := "SL\tDESCRIPTION\tHSN\tQTY\tUNIT\tPRICE\tDISC%\tTAXABLE\tGST%\t"
	for _, component := range mode.Components() {
		header += string(component) + "\t"
	}
	fmt.Fprintln(w, header+"TOTAL\t")

	for _, item := range inv.ItemList {
		row := fmt.Sprintf("%s\t%s\t%s\t%g\t%s\t%.2f\t%g\t%.2f\t%g\t",
			item.SlNo, item.PrdDesc, item.HsnCd, item.Qty, item.Unit, item.UnitPrice,
			item.Discount, item.AssAmt, item.GstRt)
		taxes := item.Taxes()
		for _, component := range mode.Components() {
			row += fmt.Sprintf("%.2f\t", taxes.Amount(component))
		}
		fmt.Fprintln(w, row+fmt.Sprintf("%.2f\t", item.TotItemVal))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	totals := engine.SumItems(inv.ItemList)
	fmt.Fprintf(out, "\n%s | items %d | taxable %.2f | item value %.2f\n", mode, len(inv.ItemList), totals.Taxable, totals.ItemValue)
	if v := inv.ValDtls; v != nil {
		fmt.Fprintf(out, "other charges %.2f | round off %.2f | invoice total %.2f\n", v.OthChrg, v.RndOffAmt, v.TotInvVal)
	}
	return nil
}
