package media

import (
	"fmt"
	"sort"
	"strings"
)

// Recognized field names, as they appear in the catalog.
const (
	FieldID               = "id"
	FieldTitle            = "title"
	FieldYear             = "year"
	FieldOriginalFilepath = "original_filepath"
	FieldAlbums           = "albums"
)

var recognizedFields = map[string]struct{}{
	FieldID:               {},
	FieldTitle:            {},
	FieldYear:             {},
	FieldOriginalFilepath: {},
	FieldAlbums:           {},
}

// Fields is the persisted record of an item. Empty values are omitted when
// the record is written.
type Fields struct {
	ID               string   `json:"id,omitempty"`
	Title            string   `json:"title,omitempty"`
	Year             string   `json:"year,omitempty"`
	OriginalFilepath string   `json:"original_filepath,omitempty"`
	Albums           []string `json:"albums,omitempty"`
}

// Item describes a photo or video. The identifier is set only once the item
// has been placed in the collection.
type Item struct {
	Kind             Kind
	Title            string
	Year             string
	OriginalFilepath string
	Albums           []string

	id string
}

// NewItem validates fields for kind and builds an item. A non-empty ID marks
// the item as already placed.
func NewItem(kind Kind, fields Fields) (*Item, error) {
	if !kind.Valid() {
		return nil, Wrap(ErrUnknownCategory, "media", "new item", fmt.Sprintf("%q is not a registered kind", kind), nil)
	}
	year := strings.TrimSpace(fields.Year)
	if year != "" {
		parsed, err := ParseYear(year)
		if err != nil {
			return nil, err
		}
		year = parsed
	}
	item := &Item{
		Kind:             kind,
		Title:            strings.TrimSpace(fields.Title),
		Year:             year,
		OriginalFilepath: fields.OriginalFilepath,
		id:               strings.TrimSpace(fields.ID),
	}
	if len(fields.Albums) > 0 {
		item.Albums = append([]string(nil), fields.Albums...)
	}
	return item, nil
}

// NewItemFromMap builds an item from loosely typed named values, rejecting any
// name outside the recognized field set before doing anything else.
func NewItemFromMap(kind Kind, values map[string]any) (*Item, error) {
	fields, err := FieldsFromMap(values)
	if err != nil {
		return nil, err
	}
	return NewItem(kind, fields)
}

// FieldsFromMap converts named values into Fields. Unknown names, non-string
// text values, and malformed years are validation errors.
func FieldsFromMap(values map[string]any) (Fields, error) {
	var unknown []string
	for name := range values {
		if _, ok := recognizedFields[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return Fields{}, Wrap(ErrValidation, "media", "validate fields", fmt.Sprintf("unknown field(s): %s", strings.Join(unknown, ", ")), nil)
	}

	var fields Fields
	var err error
	if fields.ID, err = stringField(values, FieldID); err != nil {
		return Fields{}, err
	}
	if fields.Title, err = stringField(values, FieldTitle); err != nil {
		return Fields{}, err
	}
	if fields.OriginalFilepath, err = stringField(values, FieldOriginalFilepath); err != nil {
		return Fields{}, err
	}
	if raw, ok := values[FieldYear]; ok && raw != nil {
		if fields.Year, err = ParseYear(raw); err != nil {
			return Fields{}, err
		}
	}
	if raw, ok := values[FieldAlbums]; ok && raw != nil {
		if fields.Albums, err = albumsField(raw); err != nil {
			return Fields{}, err
		}
	}
	return fields, nil
}

func stringField(values map[string]any, name string) (string, error) {
	raw, ok := values[name]
	if !ok || raw == nil {
		return "", nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", Wrap(ErrValidation, "media", "validate fields", fmt.Sprintf("field %s must be a string, got %T", name, raw), nil)
	}
	return s, nil
}

func albumsField(raw any) ([]string, error) {
	switch v := raw.(type) {
	case []string:
		return append([]string(nil), v...), nil
	case []any:
		albums := make([]string, 0, len(v))
		for _, entry := range v {
			s, ok := entry.(string)
			if !ok {
				return nil, Wrap(ErrValidation, "media", "validate fields", fmt.Sprintf("album entries must be strings, got %T", entry), nil)
			}
			albums = append(albums, s)
		}
		return albums, nil
	default:
		return nil, Wrap(ErrValidation, "media", "validate fields", fmt.Sprintf("albums must be a list of strings, got %T", raw), nil)
	}
}

// Identifier returns the item's path relative to the collection root, or an
// empty string when it has not been placed.
func (i *Item) Identifier() string {
	return i.id
}

// HasIdentifier reports whether the item has been placed.
func (i *Item) HasIdentifier() bool {
	return i.id != ""
}

// Addable reports whether the catalog can accept the item.
func (i *Item) Addable() bool {
	return i.HasIdentifier()
}

// AssignIdentifier records the placed path. Identifiers are immutable, so a
// second assignment fails.
func (i *Item) AssignIdentifier(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return Wrap(ErrValidation, "media", "assign identifier", "identifier cannot be empty", nil)
	}
	if i.id != "" {
		return Wrap(ErrValidation, "media", "assign identifier", fmt.Sprintf("item already placed as %s", i.id), nil)
	}
	i.id = id
	return nil
}

// Fields returns the persisted record for the item.
func (i *Item) Fields() Fields {
	fields := Fields{
		ID:               i.id,
		Title:            i.Title,
		Year:             i.Year,
		OriginalFilepath: i.OriginalFilepath,
	}
	if len(i.Albums) > 0 {
		fields.Albums = append([]string(nil), i.Albums...)
	}
	return fields
}
