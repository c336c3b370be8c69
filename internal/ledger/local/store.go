// Package local keeps the ledger in a single bolt file, for use without
// any remote service.
package local

import (
	"bytes"
	"context"
	"encoding/gob"
	"fmt"
	"time"

	"github.com/boltdb/bolt"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/gastos/internal/transaction"
)

var bucketName = []byte("transactions")

// Keys are "YYYY-MM-DD/<uuid v7>" so a cursor walks entries by day and,
// within a day, in insertion order.
const dateLen = len(time.DateOnly)

type Store struct {
	db *bolt.DB
}

func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening bolt ledger %s: %w", path, err)
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating bucket: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// record is the gob-encoded value stored per transaction.
type record struct {
	Date        time.Time
	Description string
	Amount      int64
	Account     string
	Category    string
	Subcategory string
}

func (s *Store) QueryRange(ctx context.Context, start, end time.Time) ([]transaction.Transaction, error) {
	from := []byte(start.Format(time.DateOnly))
	to := end.Format(time.DateOnly)

	var txs []transaction.Transaction

	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketName).Cursor()

		for k, v := c.Seek(from); k != nil && len(k) >= dateLen && string(k[:dateLen]) <= to; k, v = c.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			var r record
			if err := gob.NewDecoder(bytes.NewReader(v)).Decode(&r); err != nil {
				return fmt.Errorf("decoding %s: %w", k, err)
			}

			txs = append(txs, transaction.Transaction{
				Date:        transaction.Day(r.Date),
				Description: r.Description,
				Amount:      r.Amount,
				Account:     transaction.Account(r.Account),
				Category:    r.Category,
				Subcategory: r.Subcategory,
			})
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("querying bolt ledger: %w", err)
	}

	return txs, nil
}

func (s *Store) Append(ctx context.Context, t transaction.Transaction) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("generating id: %w", err)
	}

	var val bytes.Buffer
	if err := gob.NewEncoder(&val).Encode(record{
		Date:        t.Date,
		Description: t.Description,
		Amount:      t.Amount,
		Account:     string(t.Account),
		Category:    t.Category,
		Subcategory: t.Subcategory,
	}); err != nil {
		return fmt.Errorf("encoding transaction: %w", err)
	}

	key := []byte(t.Date.Format(time.DateOnly) + "/" + id.String())

	if err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put(key, val.Bytes())
	}); err != nil {
		return fmt.Errorf("writing transaction: %w", err)
	}

	return nil
}
