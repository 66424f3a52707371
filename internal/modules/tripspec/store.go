// README: Trip specification store backed by PostgreSQL (spec row + wholesale leg replace).
package tripspec

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"farelink/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, spec *TripSpecification) error {
	_, err := s.db.Exec(ctx, `
        INSERT INTO trip_specifications (
            id, conversation_id, origin_code, origin_name, dest_code, dest_name,
            departure_date, return_date, trip_kind, adults, children, infants,
            cabin, is_complete, created_at, updated_at
        ) VALUES (
            $1, $2, $3, $4, $5, $6,
            $7, $8, $9, $10, $11, $12,
            $13, $14, $15, $16
        )`,
		string(spec.ID),
		string(spec.ConversationID),
		spec.OriginCode, spec.OriginName, spec.DestCode, spec.DestName,
		spec.DepartureDate, spec.ReturnDate,
		nullableKind(spec.TripKind),
		spec.Adults, spec.Children, spec.Infants,
		nullableCabin(spec.Cabin),
		spec.IsComplete,
		spec.CreatedAt, spec.UpdatedAt,
	)
	return err
}

func (s *Store) GetByConversation(ctx context.Context, conversationID types.ID) (*TripSpecification, error) {
	row := s.db.QueryRow(ctx, `
        SELECT id, conversation_id, origin_code, origin_name, dest_code, dest_name,
               departure_date, return_date, trip_kind, adults, children, infants,
               cabin, is_complete, created_at, updated_at
        FROM trip_specifications
        WHERE conversation_id = $1`, string(conversationID),
	)

	var spec TripSpecification
	var kind, cabin *string
	err := row.Scan(
		&spec.ID, &spec.ConversationID,
		&spec.OriginCode, &spec.OriginName, &spec.DestCode, &spec.DestName,
		&spec.DepartureDate, &spec.ReturnDate, &kind,
		&spec.Adults, &spec.Children, &spec.Infants,
		&cabin, &spec.IsComplete, &spec.CreatedAt, &spec.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if kind != nil {
		spec.TripKind = TripKind(*kind)
	}
	if cabin != nil {
		c := CabinClass(*cabin)
		spec.Cabin = &c
	}

	legs, err := s.legs(ctx, spec.ID)
	if err != nil {
		return nil, err
	}
	spec.Legs = legs
	return &spec, nil
}

func (s *Store) Update(ctx context.Context, spec *TripSpecification) error {
	tag, err := s.db.Exec(ctx, `
        UPDATE trip_specifications
        SET origin_code = $1, origin_name = $2, dest_code = $3, dest_name = $4,
            departure_date = $5, return_date = $6, trip_kind = $7,
            adults = $8, children = $9, infants = $10, cabin = $11,
            is_complete = $12, updated_at = $13
        WHERE id = $14`,
		spec.OriginCode, spec.OriginName, spec.DestCode, spec.DestName,
		spec.DepartureDate, spec.ReturnDate,
		nullableKind(spec.TripKind),
		spec.Adults, spec.Children, spec.Infants,
		nullableCabin(spec.Cabin),
		spec.IsComplete, spec.UpdatedAt,
		string(spec.ID),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ReplaceLegs swaps the full leg list in one transaction: delete-all, then
// re-insert. There is no partial leg update.
func (s *Store) ReplaceLegs(ctx context.Context, specID types.ID, legs []FlightLeg) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM flight_legs WHERE spec_id = $1`, string(specID)); err != nil {
		return err
	}
	for _, leg := range legs {
		_, err := tx.Exec(ctx, `
            INSERT INTO flight_legs (
                spec_id, sequence, origin_code, origin_name, dest_code, dest_name, departure_date
            ) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			string(specID), leg.Sequence,
			leg.OriginCode, leg.OriginName, leg.DestCode, leg.DestName,
			leg.DepartureDate,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// DeleteByConversation removes the specification and its legs (reset flow).
func (s *Store) DeleteByConversation(ctx context.Context, conversationID types.ID) error {
	_, err := s.db.Exec(ctx, `
        DELETE FROM trip_specifications WHERE conversation_id = $1`,
		string(conversationID),
	)
	return err
}

func (s *Store) legs(ctx context.Context, specID types.ID) ([]FlightLeg, error) {
	rows, err := s.db.Query(ctx, `
        SELECT sequence, origin_code, origin_name, dest_code, dest_name, departure_date
        FROM flight_legs
        WHERE spec_id = $1
        ORDER BY sequence`, string(specID),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var legs []FlightLeg
	for rows.Next() {
		var leg FlightLeg
		if err := rows.Scan(
			&leg.Sequence, &leg.OriginCode, &leg.OriginName,
			&leg.DestCode, &leg.DestName, &leg.DepartureDate,
		); err != nil {
			return nil, err
		}
		legs = append(legs, leg)
	}
	return legs, rows.Err()
}

func nullableKind(k TripKind) *string {
	if k == "" {
		return nil
	}
	v := string(k)
	return &v
}

func nullableCabin(c *CabinClass) *string {
	if c == nil {
		return nil
	}
	v := string(*c)
	return &v
}
