package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/brandscan"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ brandscan.BrandService = (*BrandService)(nil)

// BrandService implements brandscan.BrandService using SQLite. Scalar
// and JSON-encoded fields live on the brand row; products, policies,
// and FAQs live in child tables that are replaced wholesale on every
// save, so a stored brand always reflects exactly one scrape.
type BrandService struct {
	db *DB
}

// NewBrandService creates a new BrandService.
func NewBrandService(db *DB) *BrandService {
	return &BrandService{db: db}
}

// hashContext fingerprints the canonical JSON serialization of a brand
// context. BrandContext marshals deterministically, so equal contexts
// always produce equal hashes and a re-scrape that changed nothing can
// be detected by comparing hashes.
func hashContext(bcx *brandscan.BrandContext) (string, error) {
	buf, err := json.Marshal(bcx)
	if err != nil {
		return "", fmt.Errorf("failed to serialize brand context: %w", err)
	}
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, xxhash.Sum64(buf))
	return hex.EncodeToString(b), nil
}

// jsonColumn serializes a collection field for storage in a TEXT column.
func jsonColumn(v any) (string, error) {
	buf, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// SaveBrandContext upserts the context keyed by its base URL. Child
// rows are deleted and re-inserted inside one transaction, so readers
// never observe a half-replaced brand.
func (s *BrandService) SaveBrandContext(ctx context.Context, bcx *brandscan.BrandContext) (*brandscan.Brand, error) {
	if err := bcx.Validate(); err != nil {
		return nil, err
	}

	hash, err := hashContext(bcx)
	if err != nil {
		return nil, err
	}
	socials, err := jsonColumn(bcx.SocialHandles)
	if err != nil {
		return nil, err
	}
	emails, err := jsonColumn(bcx.ContactEmails)
	if err != nil {
		return nil, err
	}
	phones, err := jsonColumn(bcx.ContactPhones)
	if err != nil {
		return nil, err
	}
	links, err := jsonColumn(bcx.ImportantLinks)
	if err != nil {
		return nil, err
	}

	var name, about string
	if bcx.BrandName != nil {
		name = *bcx.BrandName
	}
	if bcx.AboutText != nil {
		about = *bcx.AboutText
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	brand := &brandscan.Brand{
		BaseURL:     bcx.BaseURL,
		Name:        name,
		ContextHash: hash,
		Context:     bcx,
	}
	now := time.Now().UTC()

	var existingID, createdAt string
	err = tx.QueryRowContext(ctx, `
		SELECT id, created_at FROM brands WHERE base_url = ?
	`, bcx.BaseURL).Scan(&existingID, &createdAt)

	switch {
	case err == sql.ErrNoRows:
		brand.ID = uuid.New().String()
		brand.CreatedAt = now
		brand.UpdatedAt = now

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO brands (id, base_url, name, about_text, social_handles, contact_emails, contact_phones, important_links, context_hash, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, brand.ID, brand.BaseURL, name, about, socials, emails, phones, links, hash,
			brand.CreatedAt.Format(time.RFC3339), brand.UpdatedAt.Format(time.RFC3339)); err != nil {
			return nil, err
		}

	case err != nil:
		return nil, err

	default:
		brand.ID = existingID
		if brand.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}
		brand.UpdatedAt = now

		if _, err := tx.ExecContext(ctx, `
			UPDATE brands
			SET name = ?, about_text = ?, social_handles = ?, contact_emails = ?, contact_phones = ?, important_links = ?, context_hash = ?, updated_at = ?
			WHERE id = ?
		`, name, about, socials, emails, phones, links, hash,
			brand.UpdatedAt.Format(time.RFC3339), brand.ID); err != nil {
			return nil, err
		}

		// Replace child rows wholesale.
		for _, table := range []string{"products", "policies", "faqs"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE brand_id = ?", brand.ID); err != nil {
				return nil, err
			}
		}
	}

	if err := insertChildren(ctx, tx, brand.ID, bcx); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return brand, nil
}

// insertChildren writes the products, hero products, policies, and FAQs
// of a context. Position columns preserve extraction order so reads
// reproduce the original slices exactly.
func insertChildren(ctx context.Context, tx *sql.Tx, brandID string, bcx *brandscan.BrandContext) error {
	for i, p := range bcx.Products {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO products (id, brand_id, position, title, handle, url, hero)
			VALUES (?, ?, ?, ?, ?, ?, 0)
		`, uuid.New().String(), brandID, i, p.Title, p.Handle, p.URL); err != nil {
			return err
		}
	}
	for i, h := range bcx.HeroProducts {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO products (id, brand_id, position, title, handle, url, hero)
			VALUES (?, ?, ?, ?, '', ?, 1)
		`, uuid.New().String(), brandID, i, h.Title, h.URL); err != nil {
			return err
		}
	}
	for i, p := range bcx.Policies {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO policies (id, brand_id, position, kind, url, content)
			VALUES (?, ?, ?, ?, ?, ?)
		`, uuid.New().String(), brandID, i, string(p.Kind), p.URL, p.Content); err != nil {
			return err
		}
	}
	for i, f := range bcx.FAQs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO faqs (id, brand_id, position, question, answer)
			VALUES (?, ?, ?, ?, ?)
		`, uuid.New().String(), brandID, i, f.Question, f.Answer); err != nil {
			return err
		}
	}
	return nil
}

// FindBrandByID retrieves a brand by ID, including its full context.
func (s *BrandService) FindBrandByID(ctx context.Context, id string) (*brandscan.Brand, error) {
	brand, err := s.findBrandBy(ctx, "id", id)
	if err != nil {
		return nil, err
	}
	if err := s.loadContext(ctx, brand); err != nil {
		return nil, err
	}
	return brand, nil
}

// FindBrandByBaseURL retrieves a brand by base URL, including its full
// context. The URL is normalized first, so "Acme.COM/shop" finds the
// brand stored as "https://acme.com".
func (s *BrandService) FindBrandByBaseURL(ctx context.Context, baseURL string) (*brandscan.Brand, error) {
	normalized, err := brandscan.NormalizeBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	brand, err := s.findBrandBy(ctx, "base_url", normalized)
	if err != nil {
		return nil, err
	}
	if err := s.loadContext(ctx, brand); err != nil {
		return nil, err
	}
	return brand, nil
}

// findBrandBy reads one brand row matched on column and rebuilds the
// scalar and JSON-encoded context fields. Child rows are loaded
// separately by loadContext.
func (s *BrandService) findBrandBy(ctx context.Context, column, value string) (*brandscan.Brand, error) {
	var brand brandscan.Brand
	var about, socials, emails, phones, links string
	var createdAt, updatedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, base_url, name, about_text, social_handles, contact_emails, contact_phones, important_links, context_hash, created_at, updated_at
		FROM brands
		WHERE `+column+` = ?
	`, value).Scan(&brand.ID, &brand.BaseURL, &brand.Name, &about, &socials, &emails, &phones, &links,
		&brand.ContextHash, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, brandscan.Errorf(brandscan.ENOTFOUND, "Brand not found.")
	}
	if err != nil {
		return nil, err
	}

	if brand.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if brand.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}

	bcx := brandscan.NewBrandContext(brand.BaseURL)
	if brand.Name != "" {
		name := brand.Name
		bcx.BrandName = &name
	}
	if about != "" {
		bcx.AboutText = &about
	}
	if err := json.Unmarshal([]byte(socials), &bcx.SocialHandles); err != nil {
		return nil, fmt.Errorf("failed to parse social_handles: %w", err)
	}
	if err := json.Unmarshal([]byte(emails), &bcx.ContactEmails); err != nil {
		return nil, fmt.Errorf("failed to parse contact_emails: %w", err)
	}
	if err := json.Unmarshal([]byte(phones), &bcx.ContactPhones); err != nil {
		return nil, fmt.Errorf("failed to parse contact_phones: %w", err)
	}
	if err := json.Unmarshal([]byte(links), &bcx.ImportantLinks); err != nil {
		return nil, fmt.Errorf("failed to parse important_links: %w", err)
	}
	brand.Context = bcx

	return &brand, nil
}

// loadContext fills the brand's context with its child rows.
func (s *BrandService) loadContext(ctx context.Context, brand *brandscan.Brand) error {
	if err := s.loadProducts(ctx, brand); err != nil {
		return err
	}
	if err := s.loadPolicies(ctx, brand); err != nil {
		return err
	}
	return s.loadFAQs(ctx, brand)
}

func (s *BrandService) loadProducts(ctx context.Context, brand *brandscan.Brand) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT title, handle, url, hero
		FROM products
		WHERE brand_id = ?
		ORDER BY hero ASC, position ASC
	`, brand.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var title, handle, url string
		var hero bool
		if err := rows.Scan(&title, &handle, &url, &hero); err != nil {
			return err
		}
		if hero {
			brand.Context.HeroProducts = append(brand.Context.HeroProducts, brandscan.HeroProduct{Title: title, URL: url})
		} else {
			brand.Context.Products = append(brand.Context.Products, brandscan.Product{Title: title, Handle: handle, URL: url})
		}
	}
	return rows.Err()
}

func (s *BrandService) loadPolicies(ctx context.Context, brand *brandscan.Brand) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT kind, url, content
		FROM policies
		WHERE brand_id = ?
		ORDER BY position ASC
	`, brand.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var kind string
		var policy brandscan.Policy
		if err := rows.Scan(&kind, &policy.URL, &policy.Content); err != nil {
			return err
		}
		policy.Kind = brandscan.PolicyKind(kind)
		brand.Context.Policies = append(brand.Context.Policies, policy)
	}
	return rows.Err()
}

func (s *BrandService) loadFAQs(ctx context.Context, brand *brandscan.Brand) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT question, answer
		FROM faqs
		WHERE brand_id = ?
		ORDER BY position ASC
	`, brand.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var faq brandscan.FAQ
		if err := rows.Scan(&faq.Question, &faq.Answer); err != nil {
			return err
		}
		brand.Context.FAQs = append(brand.Context.FAQs, faq)
	}
	return rows.Err()
}

// FindBrands retrieves brands matching the filter, newest first, plus
// the total count before pagination. Context is left nil on list rows;
// use FindBrandByID for the full record.
func (s *BrandService) FindBrands(ctx context.Context, filter brandscan.BrandFilter) ([]*brandscan.Brand, int, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT id, base_url, name, context_hash, created_at, updated_at, COUNT(*) OVER() FROM brands WHERE 1=1`)

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.BaseURL != nil {
		query.WriteString(" AND base_url = ?")
		args = append(args, *filter.BaseURL)
	}

	// RFC3339 is second-granular, so tie-break on id for a stable order.
	query.WriteString(" ORDER BY created_at DESC, id")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	brands := []*brandscan.Brand{}
	var n int
	for rows.Next() {
		var brand brandscan.Brand
		var createdAt, updatedAt string

		if err := rows.Scan(&brand.ID, &brand.BaseURL, &brand.Name, &brand.ContextHash,
			&createdAt, &updatedAt, &n); err != nil {
			return nil, 0, err
		}

		if brand.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, 0, err
		}
		if brand.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
			return nil, 0, err
		}

		brands = append(brands, &brand)
	}

	return brands, n, rows.Err()
}

// DeleteBrand permanently removes a brand. Child rows go with it via
// ON DELETE CASCADE.
func (s *BrandService) DeleteBrand(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM brands WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return brandscan.Errorf(brandscan.ENOTFOUND, "Brand not found.")
	}

	return nil
}
