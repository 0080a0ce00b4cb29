// Package loader bulk-loads users and status updates from CSV files.
//
// Rows go straight to the record store: only emptiness is checked, not the
// field rules applied by the service layer. Each row is committed on its own,
// so a load that stops half-way keeps the rows written before the stop.
package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"go.uber.org/zap"

	"go-socialnet/internal/domain"
)

const (
	MsgFileNotFound  = "File Not Found"
	MsgMissingColumn = "Parameter omitted in csv file!"
)

var (
	UserColumns   = []string{"USER_ID", "EMAIL", "NAME", "LASTNAME"}
	StatusColumns = []string{"STATUS_ID", "USER_ID", "STATUS_TEXT"}
)

// Report summarises one load.
type Report struct {
	Rows     int    `json:"rows"`     // data rows looked at
	Inserted int    `json:"inserted"` // rows written
	Failed   int    `json:"failed"`   // rows rejected by the store
	Aborted  bool   `json:"aborted"`  // load stopped before the end of input
	Reason   string `json:"reason,omitempty"`
}

// OK is true when the whole input was read and no row failed.
func (r Report) OK() bool { return !r.Aborted && r.Failed == 0 }

type Loader struct {
	store domain.Store
	log   *zap.Logger
	out   io.Writer
}

// New builds a loader; user-facing messages go to out (stdout when nil).
func New(store domain.Store, l *zap.Logger, out io.Writer) *Loader {
	if l == nil {
		l = zap.NewNop()
	}
	if out == nil {
		out = os.Stdout
	}
	return &Loader{store: store, log: l, out: out}
}

func (l *Loader) LoadUsers(ctx context.Context, path string) bool {
	return l.ImportUsersFile(ctx, path).OK()
}

func (l *Loader) LoadStatusUpdates(ctx context.Context, path string) bool {
	return l.ImportStatusUpdatesFile(ctx, path).OK()
}

func (l *Loader) ImportUsersFile(ctx context.Context, path string) Report {
	return l.fromFile(ctx, path, l.ImportUsers)
}

func (l *Loader) ImportStatusUpdatesFile(ctx context.Context, path string) Report {
	return l.fromFile(ctx, path, l.ImportStatusUpdates)
}

func (l *Loader) fromFile(ctx context.Context, path string, load func(context.Context, io.Reader) Report) Report {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintln(l.out, MsgFileNotFound)
			return Report{Aborted: true, Reason: MsgFileNotFound}
		}
		l.log.Error("open csv source", zap.String("path", path), zap.Error(err))
		return Report{Aborted: true, Reason: err.Error()}
	}
	defer f.Close()
	return load(ctx, f)
}

// ImportUsers reads USER_ID,EMAIL,NAME,LASTNAME rows from r.
func (l *Loader) ImportUsers(ctx context.Context, r io.Reader) Report {
	return l.run(ctx, r, UserColumns, func(row map[string]string) error {
		u := &domain.User{
			UserID:       row["USER_ID"],
			Email:        row["EMAIL"],
			UserName:     row["NAME"],
			UserLastName: row["LASTNAME"],
		}
		err := l.store.Transaction(ctx, func(tx domain.Store) error {
			return tx.Users().Create(ctx, u)
		})
		if err != nil {
			l.log.Error("failed to load user", zap.String("user_id", u.UserID), zap.Error(err))
			return err
		}
		l.log.Info("user loaded", zap.String("user_id", u.UserID))
		return nil
	})
}

// ImportStatusUpdates reads STATUS_ID,USER_ID,STATUS_TEXT rows from r. A
// row whose user does not exist is rejected.
func (l *Loader) ImportStatusUpdates(ctx context.Context, r io.Reader) Report {
	return l.run(ctx, r, StatusColumns, func(row map[string]string) error {
		st := &domain.Status{
			StatusID:   row["STATUS_ID"],
			UserID:     row["USER_ID"],
			StatusText: row["STATUS_TEXT"],
		}
		err := l.store.Transaction(ctx, func(tx domain.Store) error {
			ok, err := tx.Users().Exists(ctx, st.UserID)
			if err != nil {
				return err
			}
			if !ok {
				return domain.ErrMissingUser
			}
			return tx.Statuses().Create(ctx, st)
		})
		if err != nil {
			if errors.Is(err, domain.ErrMissingUser) {
				l.log.Error("no user for status", zap.String("status_id", st.StatusID), zap.String("user_id", st.UserID))
			} else {
				l.log.Error("failed to load status", zap.String("status_id", st.StatusID), zap.Error(err))
			}
			return err
		}
		l.log.Info("status loaded", zap.String("status_id", st.StatusID))
		return nil
	})
}

func (l *Loader) run(ctx context.Context, r io.Reader, required []string, insert func(map[string]string) error) Report {
	var rep Report
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return l.missingColumn(rep)
		}
		l.log.Error("read csv header", zap.Error(err))
		rep.Aborted, rep.Reason = true, err.Error()
		return rep
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		index[strings.TrimSpace(h)] = i
	}
	for _, col := range required {
		if _, ok := index[col]; !ok {
			return l.missingColumn(rep)
		}
	}

	for {
		if err := ctx.Err(); err != nil {
			rep.Aborted, rep.Reason = true, err.Error()
			return rep
		}
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return rep
		}
		if err != nil {
			l.log.Error("read csv row", zap.Int("row", rep.Rows+1), zap.Error(err))
			rep.Aborted, rep.Reason = true, err.Error()
			return rep
		}
		rep.Rows++

		if hasEmpty(rec) {
			l.log.Error("empty field in csv row", zap.Int("row", rep.Rows))
			rep.Aborted, rep.Reason = true, fmt.Sprintf("row %d has an empty field", rep.Rows)
			return rep
		}
		row := make(map[string]string, len(required))
		for _, col := range required {
			i := index[col]
			if i >= len(rec) {
				return l.missingColumn(rep)
			}
			row[col] = rec[i]
		}
		if err := insert(row); err != nil {
			rep.Failed++
			continue
		}
		rep.Inserted++
	}
}

func (l *Loader) missingColumn(rep Report) Report {
	fmt.Fprintln(l.out, MsgMissingColumn)
	rep.Aborted, rep.Reason = true, MsgMissingColumn
	return rep
}

func hasEmpty(rec []string) bool {
	for _, v := range rec {
		if v == "" {
			return true
		}
	}
	return false
}
