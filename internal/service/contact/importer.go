package contact

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/irfanmohammad01/real-estate-marketing/internal/domain"
	"github.com/irfanmohammad01/real-estate-marketing/internal/pkg/logger"
)

// importHeaders is the exact header set a contact CSV must carry, in any
// column order.
var importHeaders = []string{
	"first_name", "last_name", "email", "phone",
	"bhk_type", "furnishing_type", "location", "property_type", "power_backup_type",
}

// Import file validation errors, surfaced to the API before a job is queued.
var (
	ErrNotCSV       = errors.New("file must be a .csv")
	ErrEmptyFile    = errors.New("file is empty")
	ErrBadHeaders   = errors.New("missing or invalid CSV headers")
	ErrFileTooLarge = errors.New("file exceeds the maximum import size")
)

// RowError records one rejected CSV row.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportResult summarizes a completed import run.
type ImportResult struct {
	Imported int        `json:"imported"`
	Skipped  int        `json:"skipped"`
	Errors   []RowError `json:"errors,omitempty"`
}

// Importer runs CSV contact imports. ValidateFile is called synchronously
// by the API; Run executes later inside a background job.
type Importer struct {
	contacts *Service
	maxSize  int64
}

// NewImporter creates a CSV importer.
func NewImporter(contacts *Service, maxSize int64) *Importer {
	return &Importer{contacts: contacts, maxSize: maxSize}
}

// ValidateFile checks extension, size, non-emptiness and headers so the
// caller gets an immediate 4xx instead of a job that fails later.
func (im *Importer) ValidateFile(path string) error {
	if !strings.EqualFold(filepath.Ext(path), ".csv") {
		return ErrNotCSV
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.Size() == 0 {
		return ErrEmptyFile
	}
	if im.maxSize > 0 && info.Size() > im.maxSize {
		return ErrFileTooLarge
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	header, err := csv.NewReader(f).Read()
	if err != nil {
		return ErrEmptyFile
	}
	if _, err := headerIndex(header); err != nil {
		return err
	}
	return nil
}

// Run imports the file for the organization, collecting per-row errors
// instead of aborting. The temp file is deleted when the run finishes,
// whatever the outcome.
func (im *Importer) Run(ctx context.Context, orgID, path string) (*ImportResult, error) {
	defer func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			logger.Warn("import temp file not removed", "path", path, "error", err.Error())
		}
	}()

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, ErrEmptyFile
	}
	cols, err := headerIndex(header)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}
	rowNum := 1
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, RowError{Row: rowNum, Message: err.Error()})
			continue
		}

		in := rowInput(record, cols)
		if _, err := im.contacts.Create(ctx, orgID, in); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, RowError{Row: rowNum, Message: rowMessage(err)})
			continue
		}
		result.Imported++
	}

	logger.Info("contact import finished",
		"org_id", orgID,
		"imported", result.Imported,
		"skipped", result.Skipped)
	return result, nil
}

// headerIndex maps each required header to its column, rejecting files
// that miss any of them.
func headerIndex(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, want := range importHeaders {
		if _, ok := cols[want]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrBadHeaders, want)
		}
	}
	return cols, nil
}

func rowInput(record []string, cols map[string]int) Input {
	field := func(name string) string {
		i := cols[name]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}
	return Input{
		FirstName: field("first_name"),
		LastName:  field("last_name"),
		Email:     field("email"),
		Phone:     field("phone"),
		Preferences: domain.PreferenceNames{
			BhkType:         field("bhk_type"),
			FurnishingType:  field("furnishing_type"),
			Location:        field("location"),
			PropertyType:    field("property_type"),
			PowerBackupType: field("power_backup_type"),
		},
	}
}

// rowMessage keeps row errors short and free of wrapped prefixes.
func rowMessage(err error) string {
	switch {
	case errors.Is(err, ErrEmailTaken):
		return "duplicate email"
	case errors.Is(err, ErrUnknownValue):
		return err.Error()
	default:
		return strings.TrimPrefix(err.Error(), ErrValidation.Error()+": ")
	}
}
