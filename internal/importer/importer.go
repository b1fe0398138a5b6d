// Package importer detects the format of ledger files dropped into the import
// directory and feeds them to the ledger service.
package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/sixtey7/fjledger/internal/model"
)

// Ledger is the part of the ledger service an Importer drives.
type Ledger interface {
	ImportLedger(text string, replace bool) (model.Update, error)
	ImportLegacy(text string, accountID uuid.UUID) (model.Update, error)
	ImportLegacyNewAccount(text string) (model.Update, error)
}

// Options tune a single import.
type Options struct {
	Replace   bool      // ledger format: clear existing data first
	AccountID uuid.UUID // legacy format: target account, uuid.Nil creates one
}

// Importer applies one file format to the ledger.
type Importer interface {
	Format() string
	Detect(text string) bool
	Import(l Ledger, text string, opts Options) (model.Update, error)
}

// Registry holds named importers, tried in registration order by Detect.
type Registry struct {
	importers map[string]Importer
	order     []string
}

// FileInfo describes a CSV file in the import directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// NewRegistry creates an empty importer registry.
func NewRegistry() *Registry {
	return &Registry{importers: make(map[string]Importer)}
}

// Register adds an importer. Panics on duplicate format.
func (r *Registry) Register(imp Importer) {
	key := strings.ToLower(imp.Format())
	if _, ok := r.importers[key]; ok {
		panic("duplicate importer format: " + key)
	}
	r.importers[key] = imp
	r.order = append(r.order, key)
}

// Get returns the importer for format, or nil.
func (r *Registry) Get(format string) Importer {
	return r.importers[strings.ToLower(format)]
}

// Formats lists registered format names in registration order.
func (r *Registry) Formats() []string {
	return append([]string(nil), r.order...)
}

// Detect returns the first importer that recognizes text, or nil.
func (r *Registry) Detect(text string) Importer {
	for _, key := range r.order {
		if imp := r.importers[key]; imp.Detect(text) {
			return imp
		}
	}
	return nil
}

// DefaultRegistry returns a registry with the ledger and legacy formats.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&LedgerImporter{})
	r.Register(&LegacyImporter{})
	return r
}

// ImportFile reads path and imports it with the named format, or the
// detected one when format is empty.
func (r *Registry) ImportFile(l Ledger, path, format string, opts Options) (model.Update, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Update{}, fmt.Errorf("reading %s: %w", path, err)
	}
	text := string(data)

	var imp Importer
	if format != "" {
		if imp = r.Get(format); imp == nil {
			return model.Update{}, fmt.Errorf("unknown import format %q", format)
		}
	} else if imp = r.Detect(text); imp == nil {
		return model.Update{}, fmt.Errorf("%s: unrecognized file format", filepath.Base(path))
	}

	u, err := imp.Import(l, text, opts)
	if err != nil {
		return model.Update{}, fmt.Errorf("importing %s as %s: %w", filepath.Base(path), imp.Format(), err)
	}
	return u, nil
}

// processedDir is the subdirectory of the import dir for processed files.
const processedDir = "processed"

// Scan returns CSV files directly inside importDir.
func Scan(importDir string) ([]FileInfo, error) {
	entries, err := os.ReadDir(importDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(e.Name()), ".csv") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(importDir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// MarkProcessed moves a file from importDir to importDir/processed/.
func MarkProcessed(importDir, fileName string) error {
	dstDir := filepath.Join(importDir, processedDir)
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	src := filepath.Join(importDir, fileName)
	dst := filepath.Join(dstDir, fileName)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}
