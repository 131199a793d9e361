package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PartyService manages party master data. Parties referenced by bookings are
// never hard-deleted; deactivation flips status to Inactive.
type PartyService interface {
	CreateParty(ctx context.Context, input PartyInput) (*Party, error)
	GetParty(ctx context.Context, partyID int) (*Party, error)
	UpdateParty(ctx context.Context, partyID int, input PartyInput) (*Party, error)
	GetParties(ctx context.Context, search string, page, limit int) (*PartyPage, error)
}

type PartyInput struct {
	Name    string       `json:"party_name"`
	Phone   string       `json:"party_phone"`
	Address string       `json:"party_address"`
	Status  EntityStatus `json:"status"`
}

type PartyPage struct {
	Data       []Party `json:"data"`
	Total      int     `json:"total"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
	TotalPages int     `json:"total_pages"`
}

type partyService struct {
	pool *pgxpool.Pool
}

func NewPartyService(pool *pgxpool.Pool) PartyService {
	return &partyService{pool: pool}
}

func validatePartyInput(input PartyInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return ValidationError{Field: "party_name", Msg: "is required"}
	}
	if input.Status != "" && input.Status != StatusActive && input.Status != StatusInactive {
		return ValidationError{Field: "status", Msg: "must be Active or Inactive"}
	}
	return nil
}

func (s *partyService) CreateParty(ctx context.Context, input PartyInput) (*Party, error) {
	if err := validatePartyInput(input); err != nil {
		return nil, err
	}
	status := input.Status
	if status == "" {
		status = StatusActive
	}

	var p Party
	err := s.pool.QueryRow(ctx, `
		INSERT INTO parties (party_name, party_phone, party_address, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, party_name, party_phone, party_address, status, created_at
	`, strings.TrimSpace(input.Name), input.Phone, input.Address, status).Scan(
		&p.ID, &p.Name, &p.Phone, &p.Address, &p.Status, &p.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create party: %w", err)
	}
	return &p, nil
}

func (s *partyService) GetParty(ctx context.Context, partyID int) (*Party, error) {
	var p Party
	err := s.pool.QueryRow(ctx,
		"SELECT id, party_name, party_phone, party_address, status, created_at FROM parties WHERE id = $1",
		partyID,
	).Scan(&p.ID, &p.Name, &p.Phone, &p.Address, &p.Status, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, NotFoundError{Resource: "party", Err: err}
		}
		return nil, fmt.Errorf("failed to fetch party %d: %w", partyID, err)
	}
	return &p, nil
}

func (s *partyService) UpdateParty(ctx context.Context, partyID int, input PartyInput) (*Party, error) {
	if err := validatePartyInput(input); err != nil {
		return nil, err
	}
	status := input.Status
	if status == "" {
		status = StatusActive
	}

	var p Party
	err := s.pool.QueryRow(ctx, `
		UPDATE parties
		SET party_name = $1, party_phone = $2, party_address = $3, status = $4
		WHERE id = $5
		RETURNING id, party_name, party_phone, party_address, status, created_at
	`, strings.TrimSpace(input.Name), input.Phone, input.Address, status, partyID).Scan(
		&p.ID, &p.Name, &p.Phone, &p.Address, &p.Status, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, NotFoundError{Resource: "party", Err: err}
		}
		return nil, fmt.Errorf("failed to update party %d: %w", partyID, err)
	}
	return &p, nil
}

func (s *partyService) GetParties(ctx context.Context, search string, page, limit int) (*PartyPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 20
	}

	where := "WHERE 1=1"
	var args []any
	if search != "" {
		args = append(args, "%"+search+"%")
		where += fmt.Sprintf(" AND (party_name ILIKE $%d OR party_phone ILIKE $%d)", len(args), len(args))
	}

	var total int
	if err := s.pool.QueryRow(ctx, "SELECT count(*) FROM parties "+where, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count parties: %w", err)
	}

	args = append(args, limit, (page-1)*limit)
	query := fmt.Sprintf(`
		SELECT id, party_name, party_phone, party_address, status, created_at
		FROM parties %s
		ORDER BY party_name
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query parties: %w", err)
	}
	defer rows.Close()

	parties := []Party{}
	for rows.Next() {
		var p Party
		if err := rows.Scan(&p.ID, &p.Name, &p.Phone, &p.Address, &p.Status, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan party: %w", err)
		}
		parties = append(parties, p)
	}

	return &PartyPage{
		Data:       parties,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: (total + limit - 1) / limit,
	}, nil
}
