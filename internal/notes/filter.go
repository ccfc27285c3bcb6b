package notes

import (
	"time"

	"github.com/manav03panchal/recall/internal/model"
)

// CreatedSince keeps the records created at or after t.
func CreatedSince(records []*model.Record, t time.Time) []*model.Record {
	var out []*model.Record
	for _, r := range records {
		if !r.CreatedAt.Before(t) {
			out = append(out, r)
		}
	}
	return out
}

// IndexOf returns the display index of the record with id, or -1 when it is
// archived or absent.
func IndexOf(active []*model.Record, id int) int {
	for i, r := range active {
		if r.ID == id {
			return i
		}
	}
	return -1
}
