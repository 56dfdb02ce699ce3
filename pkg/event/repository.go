package event

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var ErrEventNotFound = errors.New("event not found")

const dateLayout = "2006-01-02"

type Repository interface {
	StoreEvent(ctx context.Context, event Event) (uuid.UUID, error)
	GetEvent(ctx context.Context, uid uuid.UUID) (*Event, error)
	GetAllEvents(ctx context.Context) ([]Event, error)
	GetEventsAnchoredUpTo(ctx context.Context, date time.Time) ([]Event, error)
	UpdateEvent(ctx context.Context, event Event) error
	DeleteEvent(ctx context.Context, uid uuid.UUID) error
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) StoreEvent(ctx context.Context, event Event) (uuid.UUID, error) {
	query := `INSERT INTO planner_event (
                            uid,
                            title,
                            description,
                            date,
                            start_time,
                            end_time,
                            repeat,
                            kind
						) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return uuid.Nil, err
	}
	defer stmt.Close()

	uid := uuid.New()
	_, err = stmt.ExecContext(ctx,
		uid.String(),
		event.Title,
		event.Description,
		event.Date.Format(dateLayout),
		timeOfDayToNullString(event.StartTime),
		timeOfDayToNullString(event.EndTime),
		string(event.Repeat),
		string(event.Kind),
	)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return uuid.Nil, err
	}

	return uid, nil
}

func (r *RepositoryImpl) GetEvent(ctx context.Context, uid uuid.UUID) (*Event, error) {
	query := `SELECT uid, title, description, date, start_time, end_time, repeat, kind
              FROM planner_event
              WHERE uid = ?`

	row := r.db.QueryRowContext(ctx, query, uid.String())
	event, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		err := fmt.Errorf("could not scan row: %w", err)
		log.Error(err)
		return nil, err
	}
	return event, nil
}

func (r *RepositoryImpl) GetAllEvents(ctx context.Context) ([]Event, error) {
	query := `SELECT uid, title, description, date, start_time, end_time, repeat, kind
              FROM planner_event
              ORDER BY date, start_time`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query planner events: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	return collectEvents(rows)
}

// GetEventsAnchoredUpTo returns every event whose anchor date is on or before
// the given date. These are the only possible candidates for that date's
// agenda: recurrence never applies backward, so later anchors cannot occur.
func (r *RepositoryImpl) GetEventsAnchoredUpTo(ctx context.Context, date time.Time) ([]Event, error) {
	query := `SELECT uid, title, description, date, start_time, end_time, repeat, kind
              FROM planner_event
              WHERE date <= ?
              ORDER BY date, start_time`

	rows, err := r.db.QueryContext(ctx, query, date.Format(dateLayout))
	if err != nil {
		err := fmt.Errorf("could not query planner events: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	return collectEvents(rows)
}

func (r *RepositoryImpl) UpdateEvent(ctx context.Context, event Event) error {
	query := `UPDATE planner_event
              SET title = ?, description = ?, date = ?, start_time = ?, end_time = ?, repeat = ?, kind = ?
              WHERE uid = ?`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return err
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx,
		event.Title,
		event.Description,
		event.Date.Format(dateLayout),
		timeOfDayToNullString(event.StartTime),
		timeOfDayToNullString(event.EndTime),
		string(event.Repeat),
		string(event.Kind),
		event.UID.String(),
	)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrEventNotFound
	}
	return nil
}

func (r *RepositoryImpl) DeleteEvent(ctx context.Context, uid uuid.UUID) error {
	query := `DELETE FROM planner_event WHERE uid = ?`
	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return err
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, uid.String())
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrEventNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*Event, error) {
	var uidString string
	var title string
	var description string
	var dateString string
	var startTime sql.NullString
	var endTime sql.NullString
	var repeat string
	var kind string

	if err := row.Scan(&uidString, &title, &description, &dateString, &startTime, &endTime, &repeat, &kind); err != nil {
		return nil, err
	}

	uid, err := uuid.Parse(uidString)
	if err != nil {
		return nil, fmt.Errorf("invalid uid in database: %w", err)
	}
	date, err := time.Parse(dateLayout, dateString)
	if err != nil {
		return nil, fmt.Errorf("invalid date in database: %w", err)
	}
	start, err := nullStringToTimeOfDay(startTime)
	if err != nil {
		return nil, err
	}
	end, err := nullStringToTimeOfDay(endTime)
	if err != nil {
		return nil, err
	}

	return &Event{
		UID:         uid,
		Title:       title,
		Description: description,
		Date:        date,
		StartTime:   start,
		EndTime:     end,
		Repeat:      Repeat(repeat),
		Kind:        Kind(kind),
	}, nil
}

func collectEvents(rows *sql.Rows) ([]Event, error) {
	events := make([]Event, 0, 10)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			err := fmt.Errorf("could not scan row: %w", err)
			log.Error(err)
			return nil, err
		}
		events = append(events, *event)
	}
	return events, rows.Err()
}

func timeOfDayToNullString(t *TimeOfDay) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.String(), Valid: true}
}

func nullStringToTimeOfDay(s sql.NullString) (*TimeOfDay, error) {
	if !s.Valid {
		return nil, nil
	}
	t, err := ParseTimeOfDay(s.String)
	if err != nil {
		return nil, fmt.Errorf("invalid time of day in database: %w", err)
	}
	return &t, nil
}
