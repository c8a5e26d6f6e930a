package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/mkumaran/trip-tracker/backend/internal/domain"
)

// Items, purchase places, and partners all share one shape: a unique name
// plus a single optional descriptive column. Rather than maintaining three
// copies of the same SQL, they share pgCatalogRepo and each entity gets a
// thin typed wrapper.

// ItemRepo defines the persistence operations for cargo Items.
type ItemRepo interface {
	List(ctx context.Context) ([]domain.Item, error)
	GetByID(ctx context.Context, id string) (domain.Item, error)
	Create(ctx context.Context, it domain.Item) (domain.Item, error)
	Update(ctx context.Context, it domain.Item) (domain.Item, error)
	Deactivate(ctx context.Context, id string) error
}

// PurchasePlaceRepo defines the persistence operations for PurchasePlaces.
type PurchasePlaceRepo interface {
	List(ctx context.Context) ([]domain.PurchasePlace, error)
	GetByID(ctx context.Context, id string) (domain.PurchasePlace, error)
	Create(ctx context.Context, p domain.PurchasePlace) (domain.PurchasePlace, error)
	Update(ctx context.Context, p domain.PurchasePlace) (domain.PurchasePlace, error)
	Deactivate(ctx context.Context, id string) error
}

// PartnerRepo defines the persistence operations for Partners.
type PartnerRepo interface {
	List(ctx context.Context) ([]domain.Partner, error)
	GetByID(ctx context.Context, id string) (domain.Partner, error)
	Create(ctx context.Context, p domain.Partner) (domain.Partner, error)
	Update(ctx context.Context, p domain.Partner) (domain.Partner, error)
	Deactivate(ctx context.Context, id string) error
}

// catalogRow is the common row shape of the three catalog tables.
type catalogRow struct {
	ID        string
	Name      string
	Extra     *string // description / location / contact_info
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// pgCatalogRepo implements name-keyed CRUD for one catalog table.
// table and extraCol are fixed at construction, never caller-supplied, so
// interpolating them into SQL is safe.
type pgCatalogRepo struct {
	db       db
	table    string
	idPrefix string
	extraCol string
}

func (r *pgCatalogRepo) columns() string {
	return fmt.Sprintf("id, name, %s, is_active, created_at, updated_at", r.extraCol)
}

func (r *pgCatalogRepo) list(ctx context.Context) ([]catalogRow, error) {
	q := fmt.Sprintf("SELECT %s FROM %s WHERE is_active ORDER BY name", r.columns(), r.table)

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.%s.List: %w", r.table, err)
	}
	defer rows.Close()

	var out []catalogRow
	for rows.Next() {
		c, err := scanCatalogRow(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.%s.List: scan: %w", r.table, err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.%s.List: rows: %w", r.table, err)
	}
	return out, nil
}

func (r *pgCatalogRepo) getByID(ctx context.Context, id string) (catalogRow, error) {
	q := fmt.Sprintf("SELECT %s FROM %s WHERE id = @id", r.columns(), r.table)

	c, err := scanCatalogRow(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return catalogRow{}, fmt.Errorf("repo.%s.GetByID: %w", r.table, err)
	}
	return c, nil
}

func (r *pgCatalogRepo) create(ctx context.Context, name string, extra *string) (catalogRow, error) {
	q := fmt.Sprintf(`
		INSERT INTO %s (id, name, %s)
		VALUES (@id, @name, @extra)
		RETURNING %s`, r.table, r.extraCol, r.columns())

	args := pgx.NamedArgs{"id": domain.NewID(r.idPrefix), "name": name, "extra": extra}

	c, err := scanCatalogRow(r.db.QueryRow(ctx, q, args))
	if err != nil {
		if isUniqueViolation(err) {
			return catalogRow{}, fmt.Errorf("repo.%s.Create: %w", r.table, domain.ErrDuplicate)
		}
		return catalogRow{}, fmt.Errorf("repo.%s.Create: %w", r.table, err)
	}
	return c, nil
}

func (r *pgCatalogRepo) update(ctx context.Context, row catalogRow) (catalogRow, error) {
	q := fmt.Sprintf(`
		UPDATE %s
		SET name = @name, %s = @extra, is_active = @is_active, updated_at = now()
		WHERE id = @id
		RETURNING %s`, r.table, r.extraCol, r.columns())

	args := pgx.NamedArgs{"id": row.ID, "name": row.Name, "extra": row.Extra, "is_active": row.IsActive}

	c, err := scanCatalogRow(r.db.QueryRow(ctx, q, args))
	if err != nil {
		if isUniqueViolation(err) {
			return catalogRow{}, fmt.Errorf("repo.%s.Update: %w", r.table, domain.ErrDuplicate)
		}
		return catalogRow{}, fmt.Errorf("repo.%s.Update: %w", r.table, err)
	}
	return c, nil
}

func (r *pgCatalogRepo) deactivate(ctx context.Context, id string) error {
	q := fmt.Sprintf("UPDATE %s SET is_active = false, updated_at = now() WHERE id = @id", r.table)

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.%s.Deactivate: %w", r.table, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.%s.Deactivate: %w", r.table, domain.ErrNotFound)
	}
	return nil
}

func scanCatalogRow(s scanner) (catalogRow, error) {
	var c catalogRow
	err := s.Scan(&c.ID, &c.Name, &c.Extra, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return catalogRow{}, domain.ErrNotFound
		}
		return catalogRow{}, err
	}
	return c, nil
}

// --- typed wrappers ---------------------------------------------------------

type pgItemRepo struct{ cat pgCatalogRepo }

// NewItemRepo constructs an ItemRepo backed by the provided db connection.
func NewItemRepo(db db) ItemRepo {
	return &pgItemRepo{cat: pgCatalogRepo{db: db, table: "items", idPrefix: "item", extraCol: "description"}}
}

func itemFromRow(c catalogRow) domain.Item {
	return domain.Item{ID: c.ID, Name: c.Name, Description: c.Extra,
		IsActive: c.IsActive, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
}

func (r *pgItemRepo) List(ctx context.Context) ([]domain.Item, error) {
	rows, err := r.cat.list(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]domain.Item, len(rows))
	for i, c := range rows {
		items[i] = itemFromRow(c)
	}
	return items, nil
}

func (r *pgItemRepo) GetByID(ctx context.Context, id string) (domain.Item, error) {
	c, err := r.cat.getByID(ctx, id)
	if err != nil {
		return domain.Item{}, err
	}
	return itemFromRow(c), nil
}

func (r *pgItemRepo) Create(ctx context.Context, it domain.Item) (domain.Item, error) {
	c, err := r.cat.create(ctx, it.Name, it.Description)
	if err != nil {
		return domain.Item{}, err
	}
	return itemFromRow(c), nil
}

func (r *pgItemRepo) Update(ctx context.Context, it domain.Item) (domain.Item, error) {
	c, err := r.cat.update(ctx, catalogRow{ID: it.ID, Name: it.Name, Extra: it.Description, IsActive: it.IsActive})
	if err != nil {
		return domain.Item{}, err
	}
	return itemFromRow(c), nil
}

func (r *pgItemRepo) Deactivate(ctx context.Context, id string) error {
	return r.cat.deactivate(ctx, id)
}

type pgPurchasePlaceRepo struct{ cat pgCatalogRepo }

// NewPurchasePlaceRepo constructs a PurchasePlaceRepo backed by the provided db connection.
func NewPurchasePlaceRepo(db db) PurchasePlaceRepo {
	return &pgPurchasePlaceRepo{cat: pgCatalogRepo{db: db, table: "purchase_places", idPrefix: "purchase_place", extraCol: "location"}}
}

func purchasePlaceFromRow(c catalogRow) domain.PurchasePlace {
	return domain.PurchasePlace{ID: c.ID, Name: c.Name, Location: c.Extra,
		IsActive: c.IsActive, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
}

func (r *pgPurchasePlaceRepo) List(ctx context.Context) ([]domain.PurchasePlace, error) {
	rows, err := r.cat.list(ctx)
	if err != nil {
		return nil, err
	}
	places := make([]domain.PurchasePlace, len(rows))
	for i, c := range rows {
		places[i] = purchasePlaceFromRow(c)
	}
	return places, nil
}

func (r *pgPurchasePlaceRepo) GetByID(ctx context.Context, id string) (domain.PurchasePlace, error) {
	c, err := r.cat.getByID(ctx, id)
	if err != nil {
		return domain.PurchasePlace{}, err
	}
	return purchasePlaceFromRow(c), nil
}

func (r *pgPurchasePlaceRepo) Create(ctx context.Context, p domain.PurchasePlace) (domain.PurchasePlace, error) {
	c, err := r.cat.create(ctx, p.Name, p.Location)
	if err != nil {
		return domain.PurchasePlace{}, err
	}
	return purchasePlaceFromRow(c), nil
}

func (r *pgPurchasePlaceRepo) Update(ctx context.Context, p domain.PurchasePlace) (domain.PurchasePlace, error) {
	c, err := r.cat.update(ctx, catalogRow{ID: p.ID, Name: p.Name, Extra: p.Location, IsActive: p.IsActive})
	if err != nil {
		return domain.PurchasePlace{}, err
	}
	return purchasePlaceFromRow(c), nil
}

func (r *pgPurchasePlaceRepo) Deactivate(ctx context.Context, id string) error {
	return r.cat.deactivate(ctx, id)
}

type pgPartnerRepo struct{ cat pgCatalogRepo }

// NewPartnerRepo constructs a PartnerRepo backed by the provided db connection.
func NewPartnerRepo(db db) PartnerRepo {
	return &pgPartnerRepo{cat: pgCatalogRepo{db: db, table: "partners", idPrefix: "partner", extraCol: "contact_info"}}
}

func partnerFromRow(c catalogRow) domain.Partner {
	return domain.Partner{ID: c.ID, Name: c.Name, ContactInfo: c.Extra,
		IsActive: c.IsActive, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
}

func (r *pgPartnerRepo) List(ctx context.Context) ([]domain.Partner, error) {
	rows, err := r.cat.list(ctx)
	if err != nil {
		return nil, err
	}
	partners := make([]domain.Partner, len(rows))
	for i, c := range rows {
		partners[i] = partnerFromRow(c)
	}
	return partners, nil
}

func (r *pgPartnerRepo) GetByID(ctx context.Context, id string) (domain.Partner, error) {
	c, err := r.cat.getByID(ctx, id)
	if err != nil {
		return domain.Partner{}, err
	}
	return partnerFromRow(c), nil
}

func (r *pgPartnerRepo) Create(ctx context.Context, p domain.Partner) (domain.Partner, error) {
	c, err := r.cat.create(ctx, p.Name, p.ContactInfo)
	if err != nil {
		return domain.Partner{}, err
	}
	return partnerFromRow(c), nil
}

func (r *pgPartnerRepo) Update(ctx context.Context, p domain.Partner) (domain.Partner, error) {
	c, err := r.cat.update(ctx, catalogRow{ID: p.ID, Name: p.Name, Extra: p.ContactInfo, IsActive: p.IsActive})
	if err != nil {
		return domain.Partner{}, err
	}
	return partnerFromRow(c), nil
}

func (r *pgPartnerRepo) Deactivate(ctx context.Context, id string) error {
	return r.cat.deactivate(ctx, id)
}
