package models

import (
	"time"

	"github.com/gobuffalo/pop/v6"

	"github.com/claimwell/claims-api/api"
)

// GlobalCounter is a named, monotonically increasing counter. The claim
// number counter is the one piece of genuinely shared mutable state in the
// system; it is only ever incremented inside the transaction that consumes
// the number.
type GlobalCounter struct {
	ID        string    `db:"id"`
	Value     int       `db:"value"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// IncrementGlobalCounter atomically increments the named counter and returns
// its new value, creating the counter at 1 on first use. The upsert-increment
// is a single statement so concurrent transactions can never read the same
// value.
func IncrementGlobalCounter(tx *pop.Connection, name string) (int, error) {
	var counter GlobalCounter
	err := tx.RawQuery(
		`INSERT INTO global_counters (id, value, created_at, updated_at)
		 VALUES (?, 1, now(), now())
		 ON CONFLICT (id) DO UPDATE
		 SET value = global_counters.value + 1, updated_at = now()
		 RETURNING *`, name).First(&counter)
	if err != nil {
		return 0, appErrorFromDB(err, api.ErrorUpdateFailure)
	}

	return counter.Value, nil
}
