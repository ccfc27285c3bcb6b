package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Kind tells how a record's body is interpreted.
type Kind string

const (
	KindNone Kind = "none"
	KindLink Kind = "link"
	KindPath Kind = "path"
	KindText Kind = "text"
)

// ParseKind parses a kind name. The empty string maps to KindNone.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return KindNone, nil
	case "link":
		return KindLink, nil
	case "path":
		return KindPath, nil
	case "text":
		return KindText, nil
	default:
		return "", fmt.Errorf("unknown note kind %q", s)
	}
}

// Label returns the list label for the kind. Plain notes have no label.
func (k Kind) Label() string {
	switch k {
	case KindLink, KindPath, KindText:
		return string(k)
	default:
		return ""
	}
}

// IsValid reports whether k is one of the known kinds.
func (k Kind) IsValid() bool {
	switch k {
	case KindNone, KindLink, KindPath, KindText:
		return true
	default:
		return false
	}
}

// Record is a single note.
type Record struct {
	Key       string
	ID        int
	CreatedAt time.Time
	Kind      Kind
	Title     string
	Body      string
	Active    bool
}

// recordJSON is the encoded form of a Record. A title or body that is not
// valid UTF-8 is carried base64 encoded in the matching raw field instead.
type recordJSON struct {
	ID        int       `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title,omitempty"`
	TitleRaw  []byte    `json:"title_raw,omitempty"`
	Body      string    `json:"body"`
	BodyRaw   []byte    `json:"body_raw,omitempty"`
	Active    bool      `json:"active"`
}

// MarshalJSON encodes the record without losing bytes of the title or body.
func (r Record) MarshalJSON() ([]byte, error) {
	enc := recordJSON{
		ID:        r.ID,
		CreatedAt: r.CreatedAt,
		Kind:      string(r.Kind),
		Title:     r.Title,
		Body:      r.Body,
		Active:    r.Active,
	}
	if !utf8.ValidString(r.Title) {
		enc.Title, enc.TitleRaw = "", []byte(r.Title)
	}
	if !utf8.ValidString(r.Body) {
		enc.Body, enc.BodyRaw = "", []byte(r.Body)
	}
	return json.Marshal(enc)
}

// UnmarshalJSON decodes a record. A missing kind reads as KindNone.
func (r *Record) UnmarshalJSON(data []byte) error {
	var dec recordJSON
	if err := json.Unmarshal(data, &dec); err != nil {
		return err
	}
	kind, err := ParseKind(dec.Kind)
	if err != nil {
		return err
	}

	r.ID = dec.ID
	r.CreatedAt = dec.CreatedAt
	r.Kind = kind
	r.Title = dec.Title
	if dec.TitleRaw != nil {
		r.Title = string(dec.TitleRaw)
	}
	r.Body = dec.Body
	if dec.BodyRaw != nil {
		r.Body = string(dec.BodyRaw)
	}
	r.Active = dec.Active
	return nil
}

// NewRecord creates an active record stamped with createdAt, truncated to the second.
func NewRecord(id int, kind Kind, title, body string, createdAt time.Time) *Record {
	return &Record{
		Key:       GenerateRecordKey(id),
		ID:        id,
		CreatedAt: createdAt.Truncate(time.Second),
		Kind:      kind,
		Title:     title,
		Body:      body,
		Active:    true,
	}
}

// SetKey sets the database key for this record.
func (r *Record) SetKey(key string) {
	r.Key = key
	if id, ok := ParseRecordKey(key); ok {
		r.ID = id
	}
}

// GetKey returns the database key for this record.
func (r *Record) GetKey() string {
	if r.Key == "" {
		return GenerateRecordKey(r.ID)
	}
	return r.Key
}

// DisplayTitle returns the text shown in listings.
func (r *Record) DisplayTitle() string {
	if r.Title != "" {
		return r.Title
	}
	return r.Body
}

// IsArchived returns true if the record was archived.
func (r *Record) IsArchived() bool {
	return !r.Active
}

// Clone returns a copy of the record.
func (r *Record) Clone() *Record {
	c := *r
	return &c
}

// GenerateRecordKey generates the database key for a record id.
// Ids are zero-padded so keys iterate in id order.
func GenerateRecordKey(id int) string {
	return fmt.Sprintf("%s:%010d", PrefixRecord, id)
}

// ParseRecordKey extracts the record id from a database key.
func ParseRecordKey(key string) (int, bool) {
	rest, ok := strings.CutPrefix(key, PrefixRecord+":")
	if !ok {
		return 0, false
	}
	id, err := strconv.Atoi(rest)
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}
