package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Kind Tests
// =============================================================================

func TestParseKind(t *testing.T) {
	tests := map[string]Kind{
		"":       KindNone,
		"none":   KindNone,
		"LINK":   KindLink,
		" path ": KindPath,
		"text":   KindText,
	}
	for in, want := range tests {
		got, err := ParseKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseKind("video")
	assert.Error(t, err)
}

func TestKindLabel(t *testing.T) {
	assert.Equal(t, "", KindNone.Label())
	assert.Equal(t, "link", KindLink.Label())
	assert.Equal(t, "path", KindPath.Label())
	assert.Equal(t, "text", KindText.Label())
}

func TestKindIsValid(t *testing.T) {
	for _, k := range []Kind{KindNone, KindLink, KindPath, KindText} {
		assert.True(t, k.IsValid(), k)
	}
	assert.False(t, Kind("").IsValid())
	assert.False(t, Kind("video").IsValid())
}

// =============================================================================
// Record Tests
// =============================================================================

func TestNewRecord(t *testing.T) {
	created := time.Date(2026, 2, 3, 4, 5, 6, 789, time.Local)
	r := NewRecord(3, KindLink, "Go docs", "https://go.dev", created)

	assert.Equal(t, 3, r.ID)
	assert.Equal(t, "note:0000000003", r.Key)
	assert.Equal(t, KindLink, r.Kind)
	assert.Equal(t, "Go docs", r.Title)
	assert.Equal(t, "https://go.dev", r.Body)
	assert.True(t, r.Active)
	assert.False(t, r.IsArchived())
	assert.True(t, created.Truncate(time.Second).Equal(r.CreatedAt))
	assert.Zero(t, r.CreatedAt.Nanosecond())
}

func TestRecordSetGetKey(t *testing.T) {
	r := &Record{}
	assert.Equal(t, "note:0000000000", r.GetKey())

	r.SetKey("note:0000000042")
	assert.Equal(t, 42, r.ID)
	assert.Equal(t, "note:0000000042", r.GetKey())

	// Foreign keys leave the id alone.
	r.SetKey("meta:version")
	assert.Equal(t, 42, r.ID)
}

func TestDisplayTitle(t *testing.T) {
	plain := &Record{Kind: KindNone, Body: "Take the dog for a walk"}
	assert.Equal(t, "Take the dog for a walk", plain.DisplayTitle())

	link := &Record{Kind: KindLink, Title: "Stack Overflow", Body: "https://stackoverflow.com"}
	assert.Equal(t, "Stack Overflow", link.DisplayTitle())
}

func TestRecordClone(t *testing.T) {
	r := NewRecord(0, KindNone, "", "original", time.Now())
	c := r.Clone()
	c.Body = "changed"
	c.Active = false

	assert.Equal(t, "original", r.Body)
	assert.True(t, r.Active)
}

func TestRecordJSON(t *testing.T) {
	r := NewRecord(1, KindPath, "Taxes", "/home/me/taxes", time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	r.Active = false

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": 1,
		"created_at": "2026-01-02T03:04:05Z",
		"kind": "path",
		"title": "Taxes",
		"body": "/home/me/taxes",
		"active": false
	}`, string(data))

	// Plain notes leave the title out.
	data, err = json.Marshal(NewRecord(0, KindNone, "", "hi", time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "title")
}

func TestRecordJSONKeepsInvalidUTF8(t *testing.T) {
	r := NewRecord(2, KindPath, "caf\xe9 menu", "/home/u/caf\xe9.txt", time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"body_raw"`)
	assert.Contains(t, string(data), `"title_raw"`)

	var got Record
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "/home/u/caf\xe9.txt", got.Body)
	assert.Equal(t, "caf\xe9 menu", got.Title)
	assert.Equal(t, KindPath, got.Kind)
	assert.True(t, got.Active)

	// Valid text stays in the plain fields.
	data, err = json.Marshal(NewRecord(0, KindNone, "", "café", time.Now()))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "_raw")
}

func TestRecordUnmarshalKind(t *testing.T) {
	var r Record
	require.NoError(t, json.Unmarshal([]byte(`{"id":4,"created_at":"2026-01-02T03:04:05Z","body":"old","active":true}`), &r))
	assert.Equal(t, KindNone, r.Kind)
	assert.Equal(t, 4, r.ID)

	require.NoError(t, json.Unmarshal([]byte(`{"id":5,"kind":"LINK","body":"https://go.dev"}`), &r))
	assert.Equal(t, KindLink, r.Kind)

	assert.Error(t, json.Unmarshal([]byte(`{"id":6,"kind":"video","body":"x"}`), &r))
}

// =============================================================================
// Key Tests
// =============================================================================

func TestParseRecordKey(t *testing.T) {
	id, ok := ParseRecordKey(GenerateRecordKey(1234))
	assert.True(t, ok)
	assert.Equal(t, 1234, id)

	for _, bad := range []string{"", "note:", "note:abc", "note:-1", "block:0000000001", "meta:version"} {
		_, ok := ParseRecordKey(bad)
		assert.False(t, ok, bad)
	}
}

func TestKeysSortInIDOrder(t *testing.T) {
	assert.Less(t, GenerateRecordKey(9), GenerateRecordKey(10))
	assert.Less(t, GenerateRecordKey(99), GenerateRecordKey(100))
}
