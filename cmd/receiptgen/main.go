// Command receiptgen renders document payload files to PDF.
//
// Each argument is a YAML or JSON payload whose "type" key names the
// document kind (receipt, invoice, statement, packing_list,
// commercial_invoice, certificate_of_origin, declaration,
// customs_document). The PDF is written next to the other outputs as
// <payload name>.pdf.
//
//	receiptgen -o out/ invoices/*.yaml
//	receiptgen -t packing_list --validate order.json
//	receiptgen --merge march.pdf invoices/*.yaml
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	flag "github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/lvillar/receipts"
	"github.com/lvillar/receipts/canvas"
	"github.com/lvillar/receipts/internal/payload"
	"github.com/lvillar/receipts/pageops"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Exit codes follow Unix conventions: 0=success, 1=general, 2=usage.
const (
	ExitSuccess = 0
	ExitGeneral = 1
	ExitUsage   = 2
	ExitIO      = 3
)

var errUsage = errors.New("usage")

type options struct {
	outDir     string
	kind       string
	pageSize   string
	fontNormal string
	fontBold   string
	validate   bool
	merge      string
	jobs       int
	verbose    bool
	version    bool
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "receiptgen:", err)
		os.Exit(exitCodeFor(err))
	}
}

// exitCodeFor maps an error to a process exit status.
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, errUsage),
		errors.Is(err, receipts.ErrMissingField),
		errors.Is(err, receipts.ErrUnknownKind),
		errors.Is(err, receipts.ErrInvalidParam),
		errors.Is(err, payload.ErrEmpty),
		errors.Is(err, payload.ErrNoKind),
		errors.Is(err, payload.ErrInputTooLarge):
		return ExitUsage
	case errors.Is(err, os.ErrNotExist), errors.Is(err, os.ErrPermission):
		return ExitIO
	}
	return ExitGeneral
}

func parseFlags(args []string, stderr io.Writer) (*options, []string, error) {
	o := &options{}
	fs := flag.NewFlagSet("receiptgen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVarP(&o.outDir, "out-dir", "o", ".", "directory the PDFs are written to")
	fs.StringVarP(&o.kind, "type", "t", "", "document type for payloads without a type key")
	fs.StringVar(&o.pageSize, "page-size", "", "page size, e.g. Letter or A4")
	fs.StringVar(&o.fontNormal, "font-normal", "", "TrueType font for regular text")
	fs.StringVar(&o.fontBold, "font-bold", "", "TrueType font for bold text")
	fs.BoolVar(&o.validate, "validate", false, "validate every PDF after writing it")
	fs.StringVar(&o.merge, "merge", "", "also combine every PDF, in argument order, into this file")
	fs.IntVarP(&o.jobs, "jobs", "j", runtime.NumCPU(), "payloads rendered concurrently")
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "log every step")
	fs.BoolVar(&o.version, "version", false, "print the version and exit")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: receiptgen [flags] payload.yaml...")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", errUsage, err)
	}
	return o, fs.Args(), nil
}

func run(args []string, stdout, stderr io.Writer) error {
	o, files, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	if o.version {
		fmt.Fprintln(stdout, "receiptgen", Version)
		return nil
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no payload files", errUsage)
	}

	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	var fallback receipts.Kind
	if o.kind != "" {
		if fallback, err = receipts.ParseKind(o.kind); err != nil {
			return err
		}
	}
	if err := os.MkdirAll(o.outDir, 0o755); err != nil {
		return fmt.Errorf("output directory: %w", err)
	}

	opts := []receipts.Option{receipts.WithLogger(log)}
	if o.pageSize != "" {
		opts = append(opts, receipts.WithPageSize(o.pageSize))
	}
	if o.fontNormal != "" || o.fontBold != "" {
		opts = append(opts, receipts.WithFont(canvas.FontConfig{
			Normal: canvas.FontSource{Path: o.fontNormal},
			Bold:   canvas.FontSource{Path: o.fontBold},
		}))
	}

	r := &renderer{outDir: o.outDir, fallback: fallback, opts: opts, validate: o.validate, log: log}
	outputs := make([]string, len(files))
	seen := make(map[string]string, len(files))
	for i, file := range files {
		outputs[i] = r.output(file)
		if prev, dup := seen[outputs[i]]; dup {
			return fmt.Errorf("%w: %s and %s both write %s", errUsage, prev, file, outputs[i])
		}
		seen[outputs[i]] = file
	}

	g := new(errgroup.Group)
	g.SetLimit(max(o.jobs, 1))
	for _, file := range files {
		g.Go(func() error {
			if err := r.render(file); err != nil {
				log.Error("render failed", "payload", file, "err", err)
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if o.merge == "" {
		return nil
	}
	if err := pageops.MergeFiles(o.merge, outputs...); err != nil {
		return err
	}
	log.Info("merged", "pdf", o.merge, "documents", len(outputs))
	return nil
}
