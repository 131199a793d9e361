package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CompanyService reads the invoicing identities and their bank accounts.
type CompanyService interface {
	GetCompanies(ctx context.Context) ([]Company, error)
	GetCompany(ctx context.Context, companyID int) (*Company, error)
}

type companyService struct {
	pool *pgxpool.Pool
}

func NewCompanyService(pool *pgxpool.Pool) CompanyService {
	return &companyService{pool: pool}
}

func (s *companyService) GetCompanies(ctx context.Context) ([]Company, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, company_name, company_address, company_email, gst_no, pan_no, phone_number, status
		FROM companies
		WHERE status = 'Active'
		ORDER BY company_name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query companies: %w", err)
	}
	defer rows.Close()

	companies := []Company{}
	for rows.Next() {
		var c Company
		if err := rows.Scan(&c.ID, &c.Name, &c.Address, &c.Email, &c.GSTNo, &c.PANNo,
			&c.PhoneNumber, &c.Status); err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, c)
	}
	rows.Close()

	for i := range companies {
		banks, err := s.fetchBanks(ctx, companies[i].ID)
		if err != nil {
			return nil, err
		}
		companies[i].Banks = banks
	}
	return companies, nil
}

func (s *companyService) GetCompany(ctx context.Context, companyID int) (*Company, error) {
	var c Company
	err := s.pool.QueryRow(ctx, `
		SELECT id, company_name, company_address, company_email, gst_no, pan_no, phone_number, status
		FROM companies WHERE id = $1
	`, companyID).Scan(&c.ID, &c.Name, &c.Address, &c.Email, &c.GSTNo, &c.PANNo,
		&c.PhoneNumber, &c.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, NotFoundError{Resource: "company", Err: err}
		}
		return nil, fmt.Errorf("failed to fetch company %d: %w", companyID, err)
	}

	c.Banks, err = s.fetchBanks(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *companyService) fetchBanks(ctx context.Context, companyID int) ([]Bank, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, company_id, ac_holder_name, account_no, branch_name, ifsc_code, is_primary
		FROM banks
		WHERE company_id = $1
		ORDER BY is_primary DESC, id
	`, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query banks: %w", err)
	}
	defer rows.Close()

	banks := []Bank{}
	for rows.Next() {
		var b Bank
		if err := rows.Scan(&b.ID, &b.CompanyID, &b.HolderName, &b.AccountNo,
			&b.BranchName, &b.IFSCCode, &b.IsPrimary); err != nil {
			return nil, fmt.Errorf("failed to scan bank: %w", err)
		}
		banks = append(banks, b)
	}
	return banks, nil
}
