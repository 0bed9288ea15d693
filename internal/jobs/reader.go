// Package jobs reads job listings from files, SQLite databases and HTTP URLs
// and converts every row into a models.Record.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"

	"github.com/fr4nk3nst1ner/jobinsights/internal/client"
	"github.com/fr4nk3nst1ner/jobinsights/internal/logger"
	"github.com/fr4nk3nst1ner/jobinsights/internal/models"
)

// Supported source formats
const (
	FormatCSV    = "csv"
	FormatJSON   = "json"
	FormatYAML   = "yaml"
	FormatHTML   = "html"
	FormatSQLite = "sqlite"
)

const (
	sqliteScheme = "sqlite://"
	defaultTable = "jobs"
)

// ErrUnsupportedFormat is returned for sources whose format cannot be determined
var ErrUnsupportedFormat = errors.New("unsupported source format")

// LoadError is returned for any source that could not be read or decoded
type LoadError struct {
	Source string
	Err    error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	return fmt.Sprintf("loading %s: %v", e.Source, e.Err)
}

// Unwrap returns the underlying read or decode error.
func (e *LoadError) Unwrap() error {
	return e.Err
}

// Reader loads job listings. The zero value is not usable, use NewReader.
type Reader struct {
	httpClient  *http.Client
	table       string
	progressOut io.Writer
	log         *pterm.Logger
}

// Option configures a Reader
type Option func(*Reader)

// WithHTTPClient sets the client used for http:// and https:// sources
func WithHTTPClient(c *http.Client) Option {
	return func(r *Reader) { r.httpClient = c }
}

// WithTable sets the SQLite table read when the source does not name one
func WithTable(table string) Option {
	return func(r *Reader) {
		if table != "" {
			r.table = table
		}
	}
}

// WithProgress draws a progress bar on w while a file is read. nil disables it.
func WithProgress(w io.Writer) Option {
	return func(r *Reader) { r.progressOut = w }
}

// WithLogger overrides the package logger
func WithLogger(l *pterm.Logger) Option {
	return func(r *Reader) { r.log = l }
}

// NewReader creates a Reader
func NewReader(opts ...Option) *Reader {
	r := &Reader{
		httpClient: client.New(""),
		table:      defaultTable,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load reads every job listing behind source, in source order.
func (r *Reader) Load(ctx context.Context, source string) ([]models.Record, error) {
	rows, format, size, err := r.readRows(ctx, source)
	if err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}

	records := make([]models.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, models.NewRecord(row))
	}

	l := r.logger()
	if len(records) == 0 {
		l.Warn("source has no job listings", l.Args("source", source, "format", format))
	}
	l.Debug("loaded source", l.Args(
		"source", source,
		"format", format,
		"size", humanize.Bytes(uint64(size)),
		"records", len(records),
	))
	return records, nil
}

func (r *Reader) logger() *pterm.Logger {
	if r.log != nil {
		return r.log
	}
	return logger.Logger
}

func (r *Reader) readRows(ctx context.Context, source string) ([]map[string]string, string, int64, error) {
	if strings.HasPrefix(source, sqliteScheme) {
		path, table, err := r.parseSQLiteSource(source)
		if err != nil {
			return nil, FormatSQLite, 0, err
		}
		rows, size, err := readSQLite(ctx, path, table)
		return rows, FormatSQLite, size, err
	}

	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return r.readRemote(ctx, source)
	}

	format, ok := formatFromPath(source)
	if !ok {
		return nil, "", 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(source))
	}
	if format == FormatSQLite {
		rows, size, err := readSQLite(ctx, source, r.table)
		return rows, format, size, err
	}

	data, err := r.readFile(source)
	if err != nil {
		return nil, format, 0, err
	}
	rows, err := decode(format, data)
	return rows, format, int64(len(data)), err
}

func (r *Reader) readFile(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	if r.progressOut == nil {
		return io.ReadAll(file)
	}

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}
	bar := pb.New64(info.Size()).SetTemplate(pb.Full).SetWriter(r.progressOut).Start()
	defer bar.Finish()

	return io.ReadAll(bar.NewProxyReader(file))
}

func (r *Reader) readRemote(ctx context.Context, source string) ([]map[string]string, string, int64, error) {
	u, err := url.Parse(source)
	if err != nil {
		return nil, "", 0, err
	}

	data, contentType, err := client.Fetch(ctx, r.httpClient, source)
	if err != nil {
		return nil, "", 0, err
	}

	format, ok := formatFromPath(u.Path)
	if !ok {
		format, ok = formatFromContentType(contentType)
	}
	if !ok || format == FormatSQLite {
		return nil, "", 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, contentType)
	}

	rows, err := decode(format, data)
	return rows, format, int64(len(data)), err
}

func (r *Reader) parseSQLiteSource(source string) (string, string, error) {
	path, rawQuery, _ := strings.Cut(strings.TrimPrefix(source, sqliteScheme), "?")
	if path == "" {
		return "", "", errors.New("sqlite source has no path")
	}
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		return "", "", err
	}
	table := query.Get("table")
	if table == "" {
		table = r.table
	}
	return path, table, nil
}

func decode(format string, data []byte) ([]map[string]string, error) {
	switch format {
	case FormatCSV:
		return decodeCSV(data)
	case FormatJSON:
		return decodeJSON(data)
	case FormatYAML:
		return decodeYAML(data)
	case FormatHTML:
		return decodeHTML(data)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
}

func formatFromPath(path string) (string, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, true
	case ".json":
		return FormatJSON, true
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".html", ".htm":
		return FormatHTML, true
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, true
	}
	return "", false
}

func formatFromContentType(contentType string) (string, bool) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", false
	}
	switch mediaType {
	case "text/csv", "application/csv":
		return FormatCSV, true
	case "application/json", "text/json":
		return FormatJSON, true
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return FormatYAML, true
	case "text/html", "application/xhtml+xml":
		return FormatHTML, true
	}
	return "", false
}
