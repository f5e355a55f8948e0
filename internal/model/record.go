package model

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/satvik2131/lamars-truck-backend/internal/validation"
)

// MaxImagesPerRecord caps how many images a multi-image record may reference.
const MaxImagesPerRecord = 10

// URLLayout selects how image URLs are laid out on a record.
type URLLayout string

const (
	// LayoutSingle stores exactly one URL under "imageUrl".
	LayoutSingle URLLayout = "single"
	// LayoutMulti stores one or more URLs under "imageUrls".
	LayoutMulti URLLayout = "multi"
)

func (l URLLayout) Valid() bool {
	return l == LayoutSingle || l == LayoutMulti
}

// Record is the persisted unit combining text metadata and the URLs of the
// images stored in the media store. ID and CreatedAt are set by the
// repository on creation.
type Record struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description" validate:"required"`
	ImageURL    string    `json:"imageUrl,omitempty" validate:"omitempty,url"`
	ImageURLs   []string  `json:"imageUrls,omitempty" validate:"omitempty,max=10,dive,required,url"`
	CreatedAt   time.Time `json:"createdAt"`
}

// URLs returns the record image URLs regardless of layout.
func (r Record) URLs() []string {
	if r.ImageURL != "" {
		return []string{r.ImageURL}
	}
	return r.ImageURLs
}

// ValidationError lists the fields that failed validation with the failed rule.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "invalid record: " + strings.Join(parts, ", ")
}

// textFields carries the client-supplied part of a record.
type textFields struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// ValidateText checks the client-supplied fields only, so callers can fail
// before any image leaves the process.
func ValidateText(name, description string) error {
	if err := validation.ValidateStruct(textFields{Name: name, Description: description}); err != nil {
		return &ValidationError{Fields: validation.ErrorsToMap(err)}
	}
	return nil
}

// NewRecord builds a record for the given layout and validates it.
func NewRecord(layout URLLayout, name, description string, urls []string) (*Record, error) {
	r := &Record{Name: name, Description: description}

	fields := map[string]string{}
	switch layout {
	case LayoutSingle:
		switch len(urls) {
		case 0:
			fields["imageUrl"] = "required"
		case 1:
			r.ImageURL = urls[0]
		default:
			fields["imageUrl"] = "max"
		}
	case LayoutMulti:
		if len(urls) == 0 {
			fields["imageUrls"] = "required"
		} else {
			r.ImageURLs = append([]string(nil), urls...)
		}
	default:
		return nil, fmt.Errorf("unknown url layout %q", layout)
	}

	if err := validation.ValidateStruct(r); err != nil {
		for k, v := range validation.ErrorsToMap(err) {
			fields[k] = v
		}
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}
	return r, nil
}
