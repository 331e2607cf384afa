package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"coldcheck/internal/models"
	id "coldcheck/pkg/domain"
	"coldcheck/pkg/platform/sentinel"
	"coldcheck/pkg/platform/tx"
)

//go:embed schema.sql
var schemaSQL string

const defaultTxTimeout = 5 * time.Second

// Postgres error codes mapped to sentinel.ErrConstraint.
const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
	pgCheckViolation      = "23514"
)

// PostgresStore persists the hierarchy and reports in PostgreSQL.
type PostgresStore struct {
	db        *sql.DB
	txTimeout time.Duration
}

type PostgresOption func(*PostgresStore)

// WithTxTimeout bounds transactions started without a deadline on ctx.
func WithTxTimeout(d time.Duration) PostgresOption {
	return func(s *PostgresStore) {
		if d > 0 {
			s.txTimeout = d
		}
	}
}

// NewPostgres constructs a PostgreSQL-backed store.
func NewPostgres(db *sql.DB, opts ...PostgresOption) *PostgresStore {
	s := &PostgresStore{db: db, txTimeout: defaultTxTimeout}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Migrate creates the tables when they do not exist yet.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// RunInTx runs fn in a transaction carried on ctx. A transaction already on
// ctx is reused.
func (s *PostgresStore) RunInTx(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	if _, ok := tx.From(ctx); ok {
		return fn(ctx)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.txTimeout)
		defer cancel()
	}

	sqlTx, err := s.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("begin tx: %w", errors.Join(sentinel.ErrUnavailable, err))
	}
	defer func() {
		_ = sqlTx.Rollback()
	}()

	if err := fn(tx.WithTx(ctx, sqlTx)); err != nil {
		return err
	}
	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", mapPgError(err))
	}
	return nil
}

func (s *PostgresStore) readOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.RunInTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}, fn)
}

// -----------------------------------------------------------------------------
// Sections
// -----------------------------------------------------------------------------

func (s *PostgresStore) CreateSection(ctx context.Context, section *models.Section) error {
	return s.RunInTx(ctx, nil, func(ctx context.Context) error {
		q := tx.Executor(ctx, s.db)
		// The counter row lock serialises concurrent creates.
		var pos int
		err := q.QueryRowContext(ctx, `
			INSERT INTO position_counters (scope, next_position) VALUES ('sections', 1)
			ON CONFLICT (scope) DO UPDATE SET next_position = position_counters.next_position + 1
			RETURNING next_position - 1`,
		).Scan(&pos)
		if err != nil {
			return fmt.Errorf("claim section position: %w", err)
		}
		_, err = q.ExecContext(ctx, `
			INSERT INTO sections (id, name, position, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5)`,
			uuid.UUID(section.ID), section.Name, pos, section.CreatedAt, section.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert section: %w", mapPgError(err))
		}
		section.Position = pos
		return nil
	})
}

func (s *PostgresStore) UpdateSection(ctx context.Context, section *models.Section) error {
	res, err := tx.Executor(ctx, s.db).ExecContext(ctx,
		`UPDATE sections SET name = $2, updated_at = $3 WHERE id = $1`,
		uuid.UUID(section.ID), section.Name, section.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update section: %w", mapPgError(err))
	}
	return requireAffected(res)
}

// DeleteSection removes the section; units and contacts cascade.
func (s *PostgresStore) DeleteSection(ctx context.Context, sectionID id.SectionID) error {
	res, err := tx.Executor(ctx, s.db).ExecContext(ctx, `DELETE FROM sections WHERE id = $1`, uuid.UUID(sectionID))
	if err != nil {
		return fmt.Errorf("delete section: %w", mapPgError(err))
	}
	return requireAffected(res)
}

func (s *PostgresStore) FindSection(ctx context.Context, sectionID id.SectionID) (*models.Section, error) {
	var section models.Section
	err := tx.Executor(ctx, s.db).QueryRowContext(ctx,
		`SELECT id, name, position, created_at, updated_at FROM sections WHERE id = $1`,
		uuid.UUID(sectionID),
	).Scan((*uuid.UUID)(&section.ID), &section.Name, &section.Position, &section.CreatedAt, &section.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find section: %w", err)
	}
	return &section, nil
}

func (s *PostgresStore) ListSections(ctx context.Context) ([]*models.Section, error) {
	var out []*models.Section
	err := s.readOnly(ctx, func(ctx context.Context) error {
		q := tx.Executor(ctx, s.db)
		sections, byID, err := querySections(ctx, q)
		if err != nil {
			return err
		}
		units, err := queryUnits(ctx, q, `
			SELECT id, section_id, name, position, created_at, updated_at
			FROM units ORDER BY position, id`)
		if err != nil {
			return err
		}
		for _, u := range units {
			if parent, ok := byID[u.SectionID]; ok {
				parent.Units = append(parent.Units, u)
			}
		}
		contacts, err := queryContacts(ctx, q, `
			SELECT id, section_id, name, phone_number, position, created_at, updated_at
			FROM contacts ORDER BY position, id`)
		if err != nil {
			return err
		}
		for _, c := range contacts {
			if parent, ok := byID[c.SectionID]; ok {
				parent.Contacts = append(parent.Contacts, c)
			}
		}
		out = sections
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func querySections(ctx context.Context, q tx.Querier) ([]*models.Section, map[id.SectionID]*models.Section, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, name, position, created_at, updated_at
		FROM sections ORDER BY position, id`)
	if err != nil {
		return nil, nil, fmt.Errorf("list sections: %w", err)
	}
	defer rows.Close()

	sections := []*models.Section{}
	byID := make(map[id.SectionID]*models.Section)
	for rows.Next() {
		section := &models.Section{Units: []*models.Unit{}, Contacts: []*models.Contact{}}
		if err := rows.Scan((*uuid.UUID)(&section.ID), &section.Name, &section.Position, &section.CreatedAt, &section.UpdatedAt); err != nil {
			return nil, nil, fmt.Errorf("scan section: %w", err)
		}
		sections = append(sections, section)
		byID[section.ID] = section
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate sections: %w", err)
	}
	return sections, byID, nil
}

// -----------------------------------------------------------------------------
// Units
// -----------------------------------------------------------------------------

// CreateUnit claims the next position from the parent section row, which
// also locks it for the rest of the transaction.
func (s *PostgresStore) CreateUnit(ctx context.Context, unit *models.Unit) error {
	return s.RunInTx(ctx, nil, func(ctx context.Context) error {
		q := tx.Executor(ctx, s.db)
		pos, err := claimChildPosition(ctx, q, claimUnitPosition, unit.SectionID)
		if err != nil {
			return err
		}
		_, err = q.ExecContext(ctx, `
			INSERT INTO units (id, section_id, name, position, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			uuid.UUID(unit.ID), uuid.UUID(unit.SectionID), unit.Name, pos, unit.CreatedAt, unit.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert unit: %w", mapPgError(err))
		}
		unit.Position = pos
		return nil
	})
}

func (s *PostgresStore) UpdateUnit(ctx context.Context, unit *models.Unit) error {
	res, err := tx.Executor(ctx, s.db).ExecContext(ctx,
		`UPDATE units SET name = $3, updated_at = $4 WHERE id = $1 AND section_id = $2`,
		uuid.UUID(unit.ID), uuid.UUID(unit.SectionID), unit.Name, unit.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update unit: %w", mapPgError(err))
	}
	return requireAffected(res)
}

func (s *PostgresStore) DeleteUnit(ctx context.Context, unitID id.UnitID) error {
	res, err := tx.Executor(ctx, s.db).ExecContext(ctx, `DELETE FROM units WHERE id = $1`, uuid.UUID(unitID))
	if err != nil {
		return fmt.Errorf("delete unit: %w", mapPgError(err))
	}
	return requireAffected(res)
}

func (s *PostgresStore) FindUnit(ctx context.Context, unitID id.UnitID) (*models.Unit, error) {
	units, err := queryUnits(ctx, tx.Executor(ctx, s.db), `
		SELECT id, section_id, name, position, created_at, updated_at
		FROM units WHERE id = $1`, uuid.UUID(unitID))
	if err != nil {
		return nil, err
	}
	if len(units) == 0 {
		return nil, sentinel.ErrNotFound
	}
	return units[0], nil
}

func (s *PostgresStore) ListUnits(ctx context.Context, sectionID id.SectionID) ([]*models.Unit, error) {
	var out []*models.Unit
	err := s.readOnly(ctx, func(ctx context.Context) error {
		q := tx.Executor(ctx, s.db)
		if _, err := s.FindSection(ctx, sectionID); err != nil {
			return err
		}
		units, err := queryUnits(ctx, q, `
			SELECT id, section_id, name, position, created_at, updated_at
			FROM units WHERE section_id = $1 ORDER BY position, id`, uuid.UUID(sectionID))
		if err != nil {
			return err
		}
		out = units
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func queryUnits(ctx context.Context, q tx.Querier, query string, args ...any) ([]*models.Unit, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query units: %w", err)
	}
	defer rows.Close()

	units := []*models.Unit{}
	for rows.Next() {
		var u models.Unit
		if err := rows.Scan((*uuid.UUID)(&u.ID), (*uuid.UUID)(&u.SectionID), &u.Name, &u.Position, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan unit: %w", err)
		}
		units = append(units, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate units: %w", err)
	}
	return units, nil
}

// -----------------------------------------------------------------------------
// Contacts
// -----------------------------------------------------------------------------

func (s *PostgresStore) CreateContact(ctx context.Context, contact *models.Contact) error {
	return s.RunInTx(ctx, nil, func(ctx context.Context) error {
		q := tx.Executor(ctx, s.db)
		pos, err := claimChildPosition(ctx, q, claimContactPosition, contact.SectionID)
		if err != nil {
			return err
		}
		_, err = q.ExecContext(ctx, `
			INSERT INTO contacts (id, section_id, name, phone_number, position, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			uuid.UUID(contact.ID), uuid.UUID(contact.SectionID), contact.Name, contact.Phone, pos, contact.CreatedAt, contact.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert contact: %w", mapPgError(err))
		}
		contact.Position = pos
		return nil
	})
}

func (s *PostgresStore) UpdateContact(ctx context.Context, contact *models.Contact) error {
	res, err := tx.Executor(ctx, s.db).ExecContext(ctx,
		`UPDATE contacts SET name = $3, phone_number = $4, updated_at = $5 WHERE id = $1 AND section_id = $2`,
		uuid.UUID(contact.ID), uuid.UUID(contact.SectionID), contact.Name, contact.Phone, contact.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update contact: %w", mapPgError(err))
	}
	return requireAffected(res)
}

func (s *PostgresStore) DeleteContact(ctx context.Context, contactID id.ContactID) error {
	res, err := tx.Executor(ctx, s.db).ExecContext(ctx, `DELETE FROM contacts WHERE id = $1`, uuid.UUID(contactID))
	if err != nil {
		return fmt.Errorf("delete contact: %w", mapPgError(err))
	}
	return requireAffected(res)
}

func (s *PostgresStore) FindContact(ctx context.Context, contactID id.ContactID) (*models.Contact, error) {
	contacts, err := queryContacts(ctx, tx.Executor(ctx, s.db), `
		SELECT id, section_id, name, phone_number, position, created_at, updated_at
		FROM contacts WHERE id = $1`, uuid.UUID(contactID))
	if err != nil {
		return nil, err
	}
	if len(contacts) == 0 {
		return nil, sentinel.ErrNotFound
	}
	return contacts[0], nil
}

func queryContacts(ctx context.Context, q tx.Querier, query string, args ...any) ([]*models.Contact, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query contacts: %w", err)
	}
	defer rows.Close()

	contacts := []*models.Contact{}
	for rows.Next() {
		var c models.Contact
		if err := rows.Scan((*uuid.UUID)(&c.ID), (*uuid.UUID)(&c.SectionID), &c.Name, &c.Phone, &c.Position, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		contacts = append(contacts, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contacts: %w", err)
	}
	return contacts, nil
}

const (
	claimUnitPosition = `
		UPDATE sections SET next_unit_position = next_unit_position + 1
		WHERE id = $1 RETURNING next_unit_position - 1`
	claimContactPosition = `
		UPDATE sections SET next_contact_position = next_contact_position + 1
		WHERE id = $1 RETURNING next_contact_position - 1`
)

// claimChildPosition bumps a per-section high-water mark and returns the
// claimed position. A missing section is a constraint violation.
func claimChildPosition(ctx context.Context, q tx.Querier, query string, sectionID id.SectionID) (int, error) {
	var pos int
	err := q.QueryRowContext(ctx, query, uuid.UUID(sectionID)).Scan(&pos)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("parent section %s: %w", sectionID, sentinel.ErrConstraint)
		}
		return 0, fmt.Errorf("claim position: %w", err)
	}
	return pos, nil
}

// -----------------------------------------------------------------------------
// Reports
// -----------------------------------------------------------------------------

// CreateReport inserts the report and its entries in one transaction. Units
// referenced by entries are share-locked so they cannot vanish mid-insert.
func (s *PostgresStore) CreateReport(ctx context.Context, report *models.Report) error {
	return s.RunInTx(ctx, nil, func(ctx context.Context) error {
		q := tx.Executor(ctx, s.db)

		unitIDs := make([]string, 0, len(report.Entries))
		seen := make(map[id.UnitID]struct{}, len(report.Entries))
		for _, e := range report.Entries {
			if _, dup := seen[e.UnitID]; dup {
				return fmt.Errorf("duplicate entry for unit %s: %w", e.UnitID, sentinel.ErrConstraint)
			}
			seen[e.UnitID] = struct{}{}
			unitIDs = append(unitIDs, e.UnitID.String())
		}

		var found int
		if len(unitIDs) > 0 {
			rows, err := q.QueryContext(ctx,
				`SELECT id FROM units WHERE id = ANY($1::uuid[]) FOR SHARE`, pq.Array(unitIDs))
			if err != nil {
				return fmt.Errorf("check units: %w", err)
			}
			for rows.Next() {
				found++
			}
			closeErr := rows.Close()
			if err := rows.Err(); err != nil {
				return fmt.Errorf("check units: %w", err)
			}
			if closeErr != nil {
				return fmt.Errorf("check units: %w", closeErr)
			}
		}
		if found != len(unitIDs) {
			return fmt.Errorf("entry references unknown unit: %w", sentinel.ErrConstraint)
		}

		remarks := sql.NullString{String: report.Remarks, Valid: report.Remarks != ""}
		_, err := q.ExecContext(ctx, `
			INSERT INTO reports (id, report_date, time_slot, submitter_name, remarks, submitted_by, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			uuid.UUID(report.ID), report.Date, string(report.Slot), report.SubmitterName, remarks, report.SubmittedBy, report.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert report: %w", mapPgError(err))
		}

		for pos, e := range report.Entries {
			_, err := q.ExecContext(ctx, `
				INSERT INTO report_entries (id, report_id, unit_id, position, temperature_in_range, created_at)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				uuid.UUID(e.ID), uuid.UUID(report.ID), uuid.UUID(e.UnitID), pos, e.Compliant, e.CreatedAt,
			)
			if err != nil {
				return fmt.Errorf("insert entry: %w", mapPgError(err))
			}
		}

		resolved, err := loadEntries(ctx, q, []string{report.ID.String()})
		if err != nil {
			return err
		}
		byEntry := make(map[id.EntryID]*models.Entry, len(resolved))
		for _, e := range resolved {
			byEntry[e.ID] = e
		}
		for _, e := range report.Entries {
			if r, ok := byEntry[e.ID]; ok {
				e.Unit, e.Section = r.Unit, r.Section
			}
		}
		return nil
	})
}

func (s *PostgresStore) FindReport(ctx context.Context, reportID id.ReportID) (*models.Report, error) {
	var out *models.Report
	err := s.readOnly(ctx, func(ctx context.Context) error {
		reports, err := s.loadReports(ctx, `WHERE id = $1`, uuid.UUID(reportID))
		if err != nil {
			return err
		}
		if len(reports) == 0 {
			return sentinel.ErrNotFound
		}
		out = reports[0]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PostgresStore) ListReportsByDate(ctx context.Context, date models.Date) ([]*models.Report, error) {
	var out []*models.Report
	err := s.readOnly(ctx, func(ctx context.Context) error {
		reports, err := s.loadReports(ctx, `WHERE report_date = $1`, date)
		if err != nil {
			return err
		}
		out = reports
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteReport removes the report; entries cascade.
func (s *PostgresStore) DeleteReport(ctx context.Context, reportID id.ReportID) error {
	res, err := tx.Executor(ctx, s.db).ExecContext(ctx, `DELETE FROM reports WHERE id = $1`, uuid.UUID(reportID))
	if err != nil {
		return fmt.Errorf("delete report: %w", mapPgError(err))
	}
	return requireAffected(res)
}

func (s *PostgresStore) loadReports(ctx context.Context, where string, args ...any) ([]*models.Report, error) {
	q := tx.Executor(ctx, s.db)
	rows, err := q.QueryContext(ctx, `
		SELECT id, report_date, time_slot, submitter_name, remarks, submitted_by, created_at
		FROM reports `+where+`
		ORDER BY created_at DESC, seq DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}

	reports := []*models.Report{}
	byID := make(map[id.ReportID]*models.Report)
	ids := []string{}
	for rows.Next() {
		r := &models.Report{Entries: []*models.Entry{}}
		var slot string
		var remarks sql.NullString
		if err := rows.Scan((*uuid.UUID)(&r.ID), &r.Date, &slot, &r.SubmitterName, &remarks, &r.SubmittedBy, &r.CreatedAt); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan report: %w", err)
		}
		r.Slot = models.TimeSlot(slot)
		r.Remarks = remarks.String
		reports = append(reports, r)
		byID[r.ID] = r
		ids = append(ids, r.ID.String())
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("iterate reports: %w", err)
	}
	_ = rows.Close()

	if len(ids) == 0 {
		return reports, nil
	}
	entries, err := loadEntries(ctx, q, ids)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if r, ok := byID[e.ReportID]; ok {
			r.Entries = append(r.Entries, e)
		}
	}
	return reports, nil
}

// loadEntries returns the entries of the given reports in report then
// submission order, joined to their current unit and section. Entries whose
// unit is gone come back with nil Unit and Section.
func loadEntries(ctx context.Context, q tx.Querier, reportIDs []string) ([]*models.Entry, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT e.id, e.report_id, e.unit_id, e.temperature_in_range, e.created_at,
		       u.id, u.section_id, u.name, u.position, u.created_at, u.updated_at,
		       s.id, s.name, s.position, s.created_at, s.updated_at
		FROM report_entries e
		LEFT JOIN units u ON u.id = e.unit_id
		LEFT JOIN sections s ON s.id = u.section_id
		WHERE e.report_id = ANY($1::uuid[])
		ORDER BY e.report_id, e.position`, pq.Array(reportIDs))
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	entries := []*models.Entry{}
	for rows.Next() {
		var (
			e                              models.Entry
			unitID, unitSection, sectionID uuid.NullUUID
			unitName, sectionName          sql.NullString
			unitPos, sectionPos            sql.NullInt64
			unitCreated, unitUpdated       sql.NullTime
			sectionCreated, sectionUpdated sql.NullTime
		)
		err := rows.Scan(
			(*uuid.UUID)(&e.ID), (*uuid.UUID)(&e.ReportID), (*uuid.UUID)(&e.UnitID), &e.Compliant, &e.CreatedAt,
			&unitID, &unitSection, &unitName, &unitPos, &unitCreated, &unitUpdated,
			&sectionID, &sectionName, &sectionPos, &sectionCreated, &sectionUpdated,
		)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		if unitID.Valid {
			e.Unit = &models.Unit{
				ID:        id.UnitID(unitID.UUID),
				SectionID: id.SectionID(unitSection.UUID),
				Name:      unitName.String,
				Position:  int(unitPos.Int64),
				CreatedAt: unitCreated.Time,
				UpdatedAt: unitUpdated.Time,
			}
		}
		if sectionID.Valid {
			e.Section = &models.Section{
				ID:        id.SectionID(sectionID.UUID),
				Name:      sectionName.String,
				Position:  int(sectionPos.Int64),
				CreatedAt: sectionCreated.Time,
				UpdatedAt: sectionUpdated.Time,
			}
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return entries, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgForeignKeyViolation, pgUniqueViolation, pgCheckViolation:
			return errors.Join(sentinel.ErrConstraint, err)
		}
	}
	return err
}
