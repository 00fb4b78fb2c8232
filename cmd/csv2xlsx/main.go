// Command csv2xlsx converts CSV files into one spreadsheet, one sheet per
// file, streaming rows so that inputs of any length fit in memory.
//
//	csv2xlsx [flags] out.xlsx [name:]in.csv...
package main

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"iter"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"syscall"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/UNO-SOFT/zlog/v2"
	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/george-polevoy/JumboExcel/xl"
)

var verbose zlog.VerboseVar
var logger = zlog.NewLogger(zlog.MaybeConsoleHandler(&verbose, os.Stderr)).SLog()

func main() {
	if err := Main(); err != nil {
		logger.Error("MAIN", "error", err)
		os.Exit(1)
	}
}

type config struct {
	charset     string
	numbers     bool
	shared      bool
	freeze      bool
	relax       bool
	batch       int
	compression int
	creator     string
}

func Main() error {
	encName := os.Getenv("LANG")
	if i := strings.IndexByte(encName, '.'); i >= 0 {
		encName = strings.ToLower(encName[i+1:])
	}
	if encName == "" {
		encName = "utf-8"
	}

	var cfg config
	fs := flag.NewFlagSet("csv2xlsx", flag.ContinueOnError)
	fs.Var(&verbose, "v", "logging verbosity")
	fs.StringVar(&cfg.charset, "charset", encName, "csv charset name")
	fs.BoolVar(&cfg.numbers, "numbers", true, "write numeric fields as numbers")
	fs.BoolVar(&cfg.shared, "shared", true, "store text in the shared string table instead of inline")
	fs.BoolVar(&cfg.freeze, "freeze", true, "freeze the header row")
	fs.BoolVar(&cfg.relax, "relax-names", false, "allow sheet names longer than 31 characters")
	fs.IntVar(&cfg.batch, "batch", 10000, "rows per progress report")
	fs.IntVar(&cfg.compression, "z", 0, "deflate level 1-9 (0: default)")
	fs.StringVar(&cfg.creator, "creator", "", "document author")

	app := ffcli.Command{Name: "csv2xlsx", FlagSet: fs,
		ShortUsage: "csv2xlsx [flags] out.xlsx [name:]in.csv...",
		Options:    []ff.Option{ff.WithEnvVarPrefix("CSV2XLSX")},
		Exec: func(ctx context.Context, args []string) error {
			if len(args) < 2 {
				return flag.ErrHelp
			}
			if cfg.batch < 1 {
				return fmt.Errorf("batch size must be positive, got %d", cfg.batch)
			}
			return convert(ctx, cfg, args[0], args[1:])
		},
	}
	if err := app.Parse(os.Args[1:]); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return app.Run(ctx)
}

func convert(ctx context.Context, cfg config, out string, inputs []string) error {
	enc, err := getEncoding(cfg.charset)
	if err != nil {
		return err
	}
	logger.Debug("encoding", "charset", cfg.charset, "decoder", enc != nil)

	params := &xl.Parameters{SummaryBelow: true, SummaryRight: true}
	if cfg.freeze {
		if params.Freeze, err = xl.NewPaneFreeze(1, 0); err != nil {
			return err
		}
	}
	if cfg.relax {
		params.Compatibility |= xl.RelaxNameLength
	}

	sheets := make([]*xl.ProgressingWorksheet[progress], 0, len(inputs))
	var readErr error
	for i, fn := range inputs {
		sheetName := fmt.Sprintf("Sheet%d", i+1)
		if i := strings.IndexByte(fn, ':'); i >= 0 {
			sheetName, fn = fn[:i], fn[i+1:]
		} else if fn != "" && fn != "-" {
			sheetName = strings.TrimSuffix(filepath.Base(fn), ".csv")
		}
		src := source{sheet: sheetName, fn: fn, enc: enc, cfg: cfg, err: &readErr}
		sh, err := xl.NewProgressingWorksheet[progress](sheetName, params, src.rows)
		if err != nil {
			return fmt.Errorf("%q: %w", fn, err)
		}
		sheets = append(sheets, sh)
	}

	fh := os.Stdout
	if !(out == "" || out == "-") {
		if fh, err = os.Create(out); err != nil {
			return err
		}
		defer fh.Close()
	}
	bw := bufio.NewWriterSize(fh, 1<<20)

	opts := xl.DefaultOptions()
	opts.AppName = "csv2xlsx"
	opts.Creator = cfg.creator
	opts.CompressionLevel = cfg.compression
	opts.Logger = logger

	for p, err := range xl.WriteWithProgress(bw, slices.Values(sheets), opts) {
		if err != nil {
			return err
		}
		logger.Info("progress", "sheet", p.sheet, "rows", p.rows)
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	if readErr != nil {
		return readErr
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	return fh.Close()
}

func getEncoding(encName string) (encoding.Encoding, error) {
	encName = strings.ToLower(encName)
	if encName == "" || encName == "utf-8" || encName == "utf8" {
		return nil, nil
	}
	enc, err := htmlindex.Get(encName)
	if err != nil {
		err = fmt.Errorf("%q: %w", encName, err)
	}
	return enc, err
}

// progress is reported after every batch of rows.
type progress struct {
	sheet string
	rows  int
}

// source turns one CSV file into batches of rows. The first record is the
// header and is written in bold.
type source struct {
	sheet string
	fn    string
	enc   encoding.Encoding
	cfg   config
	err   *error
}

var headerStyle = &xl.Style{Font: xl.Font{Weight: xl.WeightBold}, Border: xl.BorderBottom}

func (s source) rows(write func(rows ...xl.RowElement) error) iter.Seq[progress] {
	return func(yield func(progress) bool) {
		fail := func(err error) {
			if *s.err == nil {
				*s.err = fmt.Errorf("%q: %w", s.fn, err)
			}
		}
		cr, closer, err := s.open()
		if err != nil {
			fail(err)
			return
		}
		defer closer.Close()

		batch := make([]xl.RowElement, 0, s.cfg.batch)
		var n int
		flush := func() bool {
			if len(batch) == 0 {
				return true
			}
			if err := write(batch...); err != nil {
				return false
			}
			n += len(batch)
			clear(batch)
			batch = batch[:0]
			return yield(progress{sheet: s.sheet, rows: n})
		}
		for {
			rec, err := cr.Read()
			if err != nil {
				if !errors.Is(err, io.EOF) {
					fail(err)
				}
				break
			}
			var style *xl.Style
			if n == 0 && len(batch) == 0 {
				style = headerStyle
			}
			batch = append(batch, s.row(rec, style))
			if len(batch) >= s.cfg.batch && !flush() {
				return
			}
		}
		flush()
	}
}

func (s source) row(rec []string, style *xl.Style) xl.Row {
	cells := make([]xl.Cell, len(rec))
	for i, f := range rec {
		cells[i] = s.cell(f, style)
	}
	return xl.Row{Cells: cells}
}

func (s source) cell(f string, style *xl.Style) xl.Cell {
	if f == "" {
		return xl.Empty()
	}
	if s.cfg.numbers && style == nil {
		if i, err := strconv.ParseInt(f, 10, 64); err == nil {
			return xl.Int(i, nil)
		}
		if d, err := strconv.ParseFloat(f, 64); err == nil && !strings.ContainsAny(f, "xXnN") {
			return xl.Decimal(d, nil)
		}
	}
	if s.cfg.shared {
		return xl.Shared(f, style)
	}
	return xl.Inline(f, style)
}

func (s source) open() (*csv.Reader, io.Closer, error) {
	fh := os.Stdin
	if !(s.fn == "" || s.fn == "-") {
		var err error
		if fh, err = os.Open(s.fn); err != nil {
			return nil, nil, err
		}
	}
	r := io.Reader(fh)
	if s.enc != nil {
		r = s.enc.NewDecoder().Reader(r)
	}
	br := bufio.NewReaderSize(r, 1<<20)
	b, err := br.Peek(1024)
	if err != nil && len(b) == 0 && !errors.Is(err, io.EOF) {
		fh.Close()
		return nil, nil, err
	}
	cr := csv.NewReader(br)
	cr.ReuseRecord = true
	cr.Comma = detectComma(b)
	cr.FieldsPerRecord = -1
	return cr, fh, nil
}

// detectComma returns the first field separator found outside quotes in
// the head of a file, or ',' if there is none.
func detectComma(head []byte) rune {
	quoted := false
	for _, c := range head {
		switch c {
		case '"':
			quoted = !quoted
		case ',', ';', '\t', '|':
			if !quoted {
				return rune(c)
			}
		}
	}
	return ','
}
