// Copyright 2021, 2026 Tamas Gulacsi. All rights reserved.

// Command xlpaste pastes tabular files into .xlsx workbooks as named tables.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"unicode"

	"github.com/UNO-SOFT/xlutil"
	"github.com/UNO-SOFT/xlutil/source"
	"github.com/UNO-SOFT/xlutil/xlsx"
	"github.com/UNO-SOFT/zlog/v2"
	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"
	"github.com/peterbourgon/ff/v3/ffyaml"
)

var verbose zlog.VerboseVar
var logger = zlog.NewLogger(zlog.MaybeConsoleHandler(&verbose, os.Stderr)).SLog()

func main() {
	if err := Main(); err != nil {
		slog.Error("MAIN", "error", err)
		os.Exit(1)
	}
}

func Main() error {
	slog.SetDefault(logger)
	ffOpts := []ff.Option{
		ff.WithEnvVarPrefix("XLPASTE"),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ffyaml.Parser),
		ff.WithAllowMissingConfigFile(true),
	}

	fs := flag.NewFlagSet("xlpaste", flag.ContinueOnError)
	fs.Var(&verbose, "v", "logging verbosity")
	fs.String("config", "", "YAML config file")

	pasteCmd := newPasteCmd(ffOpts)
	sheetsCmd := &ffcli.Command{Name: "sheets", ShortUsage: "sheets <workbook.xlsx>",
		ShortHelp: "list the sheets and tables of a workbook",
		Exec: func(ctx context.Context, args []string) error {
			if len(args) != 1 {
				return flag.ErrHelp
			}
			return listSheets(args[0])
		},
	}
	catCmd := newCatCmd(ffOpts)

	app := ffcli.Command{Name: "xlpaste", FlagSet: fs, Options: ffOpts,
		ShortUsage:  "xlpaste [flags] <subcommand>",
		Subcommands: []*ffcli.Command{pasteCmd, sheetsCmd, catCmd},
		Exec: func(ctx context.Context, args []string) error {
			return flag.ErrHelp
		},
	}
	if err := app.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if err := app.Run(ctx); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, ffcli.DefaultUsageFunc(&app))
			return nil
		}
		return err
	}
	return nil
}

func newPasteCmd(ffOpts []ff.Option) *ffcli.Command {
	fs := flag.NewFlagSet("paste", flag.ContinueOnError)
	flagSheet := fs.String("sheet", "", "target sheet (default: first sheet), created if missing")
	flagAt := fs.String("at", "A1", "top-left cell of the pasted table")
	flagTable := fs.String("table", "", "table name (default: from the source file name)")
	flagOverwrite := fs.Bool("overwrite", false, "allow overwriting non-empty cells")
	flagIndex := fs.Bool("index", false, "paste the row index as the first column")
	flagHeaders := fs.Bool("headers", true, "the source's first row holds the column names")
	flagFrom := fs.String("from", "", "source sheet (default: first sheet)")
	flagEnc := fs.String("charset", xlutil.EncName, "source charset name")
	flagOut := fs.String("o", "", "output file name (default: overwrite the workbook)")
	fs.String("config", "", "YAML config file")

	return &ffcli.Command{Name: "paste", FlagSet: fs, Options: ffOpts,
		ShortUsage: "paste [flags] <workbook.xlsx> <source>",
		ShortHelp:  "paste a .csv, .xls or .xlsx source into a workbook as a table",
		Exec: func(ctx context.Context, args []string) error {
			if len(args) != 2 {
				return flag.ErrHelp
			}
			dest, src := args[0], args[1]
			book, err := source.Open(src, source.Options{Charset: *flagEnc, Headers: *flagHeaders})
			if err != nil {
				return err
			}
			from := *flagFrom
			if from == "" {
				if names := book.Names(); len(names) != 0 {
					from = names[0]
				}
			}
			ds, err := book.Get(from)
			if err != nil {
				return fmt.Errorf("%s: %w", src, err)
			}

			wb, err := xlsx.Open(dest, xlsx.WithLogger(logger))
			if errors.Is(err, xlutil.ErrFileNotFound) {
				logger.Info("creating new workbook", "path", dest)
				wb, err = xlsx.New(xlsx.WithLogger(logger)), nil
			}
			if err != nil {
				return err
			}
			defer wb.Close()

			sheet := *flagSheet
			if sheet == "" {
				sheet = wb.SheetNames()[0]
			} else if _, err := wb.Sheet(sheet); errors.Is(err, xlutil.ErrSheetNotFound) {
				if _, err = wb.CreateSheet(sheet); err != nil {
					return err
				}
			}
			table := *flagTable
			if table == "" {
				table = TableName(source.SheetName(src))
			}
			region, err := wb.Paste(sheet, ds, table, *flagAt, xlutil.PasteOptions{
				Overwrite: *flagOverwrite, Index: *flagIndex,
			})
			if err != nil {
				return err
			}
			logger.Info("pasted", "table", region.Name, "sheet", sheet, "range", region.Ref())

			out := *flagOut
			if out == "" {
				out = dest
			}
			return wb.SaveAs(out)
		},
	}
}

func listSheets(path string) error {
	wb, err := xlsx.Open(path, xlsx.WithLogger(logger))
	if err != nil {
		return err
	}
	defer wb.Close()
	bw := bufio.NewWriter(os.Stdout)
	for _, name := range wb.SheetNames() {
		fmt.Fprintln(bw, name)
	}
	tables, err := wb.Tables()
	if err != nil {
		return err
	}
	if len(tables) != 0 {
		fmt.Fprintf(bw, "\ntables: %s\n", strings.Join(tables, ", "))
	}
	return bw.Flush()
}

func newCatCmd(ffOpts []ff.Option) *ffcli.Command {
	fs := flag.NewFlagSet("cat", flag.ContinueOnError)
	flagSheet := fs.String("sheet", "", "sheet to print (default: all)")
	flagRange := fs.String("range", "", "print only this range of an .xlsx sheet, like A1:C9")
	flagEnc := fs.String("charset", xlutil.EncName, "source charset name")
	fs.String("config", "", "YAML config file")

	return &ffcli.Command{Name: "cat", FlagSet: fs, Options: ffOpts,
		ShortUsage: "cat [flags] <source>",
		ShortHelp:  "print sheets as tab separated text",
		Exec: func(ctx context.Context, args []string) error {
			if len(args) != 1 {
				return flag.ErrHelp
			}
			book := xlutil.NewBook()
			if *flagRange != "" {
				wb, err := xlsx.Open(args[0], xlsx.WithLogger(logger))
				if err != nil {
					return err
				}
				defer wb.Close()
				sheet := *flagSheet
				if sheet == "" {
					sheet = wb.SheetNames()[0]
				}
				ds, err := wb.ReadRange(sheet, *flagRange, false)
				if err != nil {
					return err
				}
				if err := book.Set(sheet, ds); err != nil {
					return err
				}
			} else {
				var err error
				if book, err = source.Open(args[0], source.Options{Charset: *flagEnc}); err != nil {
					return err
				}
			}
			bw := bufio.NewWriter(os.Stdout)
			for name, ds := range book.All() {
				if *flagSheet != "" && name != *flagSheet {
					continue
				}
				if book.Len() > 1 {
					fmt.Fprintf(bw, "# %s\n", name)
				}
				for _, row := range ds.Records() {
					for i, v := range row {
						if i != 0 {
							bw.WriteByte('\t')
						}
						if v != nil {
							fmt.Fprint(bw, v)
						}
					}
					bw.WriteByte('\n')
				}
			}
			return bw.Flush()
		},
	}
}

// TableName makes a valid table name of s: letters, digits and underscores,
// not starting with a digit.
func TableName(s string) string {
	var buf strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			buf.WriteRune(r)
		} else {
			buf.WriteByte('_')
		}
	}
	name := buf.String()
	if name == "" || unicode.IsDigit([]rune(name)[0]) {
		name = "_" + name
	}
	return name
}
