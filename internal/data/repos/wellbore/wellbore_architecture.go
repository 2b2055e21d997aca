package wellbore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/wellbore-architecture/internal/domain/wellbore"
	"github.com/yungbote/wellbore-architecture/internal/platform/logger"
)

var (
	ErrNoConnection = errors.New("no database connection")
	ErrNotFound     = errors.New("record not found")
	// ErrCorrupt marks a row whose stored document does not match its key.
	ErrCorrupt = errors.New("stored record is corrupted")
	// ErrRowCount marks a write that did not affect exactly one row.
	ErrRowCount = errors.New("unexpected number of affected rows")
)

// WellBoreArchitectureRepo reads and writes WellBoreArchitectureTable. Every
// method runs on the connection or transaction it is given.
type WellBoreArchitectureRepo interface {
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
	Exists(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error)
	ListIDs(ctx context.Context, tx *gorm.DB) ([]uuid.UUID, error)
	ListMetaInfo(ctx context.Context, tx *gorm.DB) ([]*types.MetaInfo, error)
	ListLight(ctx context.Context, tx *gorm.DB) ([]*types.WellBoreArchitectureLight, error)
	ListAll(ctx context.Context, tx *gorm.DB) ([]*types.WellBoreArchitecture, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.WellBoreArchitecture, error)
	Insert(ctx context.Context, tx *gorm.DB, w *types.WellBoreArchitecture) error
	Update(ctx context.Context, tx *gorm.DB, w *types.WellBoreArchitecture) error
	DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (int64, error)
	DeleteAll(ctx context.Context, tx *gorm.DB) (int64, error)
	// DeleteModifiedBefore removes rows last modified before cutoff, and rows
	// with no modification date at all.
	DeleteModifiedBefore(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error)
}

type wellBoreArchitectureRepo struct {
	log *logger.Logger
}

func NewWellBoreArchitectureRepo(baseLog *logger.Logger) WellBoreArchitectureRepo {
	repoLog := baseLog.With("repo", "WellBoreArchitectureRepo")
	return &wellBoreArchitectureRepo{log: repoLog}
}

func column(name string) clause.Column { return clause.Column{Name: name} }

func idEq(id uuid.UUID) clause.Expression {
	return clause.Eq{Column: column("ID"), Value: id.String()}
}

func (r *wellBoreArchitectureRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	if tx == nil {
		return 0, ErrNoConnection
	}
	var count int64
	if err := tx.WithContext(ctx).Model(&types.Record{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *wellBoreArchitectureRepo) Exists(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
	if tx == nil {
		return false, ErrNoConnection
	}
	var count int64
	if err := tx.WithContext(ctx).
		Model(&types.Record{}).
		Where(idEq(id)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count >= 1, nil
}

func (r *wellBoreArchitectureRepo) ListIDs(ctx context.Context, tx *gorm.DB) ([]uuid.UUID, error) {
	if tx == nil {
		return nil, ErrNoConnection
	}
	var raw []string
	if err := tx.WithContext(ctx).Model(&types.Record{}).Pluck("ID", &raw).Error; err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(strings.TrimSpace(s))
		if err != nil {
			r.log.Warn("Skipping row with malformed ID", "id", s, "error", err)
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (r *wellBoreArchitectureRepo) ListMetaInfo(ctx context.Context, tx *gorm.DB) ([]*types.MetaInfo, error) {
	if tx == nil {
		return nil, ErrNoConnection
	}
	var rows []types.Record
	if err := tx.WithContext(ctx).
		Select([]string{"ID", "MetaInfo"}).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*types.MetaInfo, 0, len(rows))
	for _, row := range rows {
		mi, err := decodeMetaInfo(row.MetaInfo)
		if err != nil {
			r.log.Warn("Skipping row with undecodable MetaInfo", "id", row.ID, "error", err)
			continue
		}
		out = append(out, mi)
	}
	return out, nil
}

func (r *wellBoreArchitectureRepo) ListLight(ctx context.Context, tx *gorm.DB) ([]*types.WellBoreArchitectureLight, error) {
	if tx == nil {
		return nil, ErrNoConnection
	}
	var rows []types.Record
	if err := tx.WithContext(ctx).
		Select([]string{"ID", "MetaInfo", "Name", "Description", "CreationDate", "LastModificationDate"}).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*types.WellBoreArchitectureLight, 0, len(rows))
	for _, row := range rows {
		mi, err := decodeMetaInfo(row.MetaInfo)
		if err != nil {
			r.log.Warn("Skipping row with undecodable MetaInfo", "id", row.ID, "error", err)
			continue
		}
		out = append(out, &types.WellBoreArchitectureLight{
			MetaInfo:             mi,
			Name:                 nonEmpty(row.Name),
			Description:          nonEmpty(row.Description),
			CreationDate:         ParseDate(row.CreationDate),
			LastModificationDate: ParseDate(row.LastModificationDate),
		})
	}
	return out, nil
}

func (r *wellBoreArchitectureRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.WellBoreArchitecture, error) {
	if tx == nil {
		return nil, ErrNoConnection
	}
	var rows []types.Record
	if err := tx.WithContext(ctx).
		Select([]string{"ID", "WellBoreArchitecture"}).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*types.WellBoreArchitecture, 0, len(rows))
	for _, row := range rows {
		w, err := decodeArchitecture(row.WellBoreArchitecture)
		if err != nil {
			r.log.Warn("Skipping row with undecodable document", "id", row.ID, "error", err)
			continue
		}
		out = append(out, w)
	}
	return out, nil
}

func (r *wellBoreArchitectureRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.WellBoreArchitecture, error) {
	if tx == nil {
		return nil, ErrNoConnection
	}
	var rows []types.Record
	if err := tx.WithContext(ctx).
		Select([]string{"ID", "WellBoreArchitecture"}).
		Where(idEq(id)).
		Limit(1).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 || len(rows[0].WellBoreArchitecture) == 0 {
		return nil, ErrNotFound
	}
	w, err := decodeArchitecture(rows[0].WellBoreArchitecture)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if w.MetaInfo != nil && w.MetaInfo.ID != id {
		return nil, fmt.Errorf("%w: row %s holds document %s", ErrCorrupt, id, w.MetaInfo.ID)
	}
	return w, nil
}

func (r *wellBoreArchitectureRepo) Insert(ctx context.Context, tx *gorm.DB, w *types.WellBoreArchitecture) error {
	if tx == nil {
		return ErrNoConnection
	}
	row, err := ToRecord(w)
	if err != nil {
		return err
	}
	res := tx.WithContext(ctx).Create(row)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected != 1 {
		return fmt.Errorf("%w: insert affected %d rows", ErrRowCount, res.RowsAffected)
	}
	return nil
}

// Update replaces every column of the row keyed by w's ID.
func (r *wellBoreArchitectureRepo) Update(ctx context.Context, tx *gorm.DB, w *types.WellBoreArchitecture) error {
	if tx == nil {
		return ErrNoConnection
	}
	row, err := ToRecord(w)
	if err != nil {
		return err
	}
	res := tx.WithContext(ctx).
		Model(&types.Record{}).
		Where(idEq(w.ID())).
		Updates(map[string]any{
			"MetaInfo":             row.MetaInfo,
			"Name":                 row.Name,
			"Description":          row.Description,
			"CreationDate":         row.CreationDate,
			"LastModificationDate": row.LastModificationDate,
			"WellBoreArchitecture": row.WellBoreArchitecture,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected != 1 {
		return fmt.Errorf("%w: update affected %d rows", ErrRowCount, res.RowsAffected)
	}
	return nil
}

func (r *wellBoreArchitectureRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (int64, error) {
	if tx == nil {
		return 0, ErrNoConnection
	}
	res := tx.WithContext(ctx).Where(idEq(id)).Delete(&types.Record{})
	return res.RowsAffected, res.Error
}

func (r *wellBoreArchitectureRepo) DeleteAll(ctx context.Context, tx *gorm.DB) (int64, error) {
	if tx == nil {
		return 0, ErrNoConnection
	}
	res := tx.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&types.Record{})
	return res.RowsAffected, res.Error
}

func (r *wellBoreArchitectureRepo) DeleteModifiedBefore(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error) {
	if tx == nil {
		return 0, ErrNoConnection
	}
	res := tx.WithContext(ctx).
		Where(clause.Or(
			clause.Lt{Column: column("LastModificationDate"), Value: FormatDate(cutoff)},
			clause.Eq{Column: column("LastModificationDate"), Value: nil},
			clause.Eq{Column: column("LastModificationDate"), Value: ""},
		)).
		Delete(&types.Record{})
	return res.RowsAffected, res.Error
}

// ToRecord serializes w into its storage row. The listing columns are
// derived from the aggregate so they cannot drift from the document.
func ToRecord(w *types.WellBoreArchitecture) (*types.Record, error) {
	if w == nil || w.MetaInfo == nil {
		return nil, fmt.Errorf("record has no MetaInfo")
	}
	metaInfo, err := json.Marshal(w.MetaInfo)
	if err != nil {
		return nil, fmt.Errorf("encode MetaInfo: %w", err)
	}
	doc, err := json.Marshal(w)
	if err != nil {
		return nil, fmt.Errorf("encode WellBoreArchitecture: %w", err)
	}
	light := w.Light()
	return &types.Record{
		ID:                   w.MetaInfo.ID.String(),
		MetaInfo:             datatypes.JSON(metaInfo),
		Name:                 light.Name,
		Description:          light.Description,
		CreationDate:         formatDatePtr(light.CreationDate),
		LastModificationDate: formatDatePtr(light.LastModificationDate),
		WellBoreArchitecture: datatypes.JSON(doc),
	}, nil
}

func FormatDate(t time.Time) string {
	return t.UTC().Format(types.DateLayout)
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := FormatDate(*t)
	return &s
}

// ParseDate reads a date column. Missing or unparsable values yield nil.
func ParseDate(s *string) *time.Time {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	t, err := time.ParseInLocation(types.DateLayout, strings.TrimSpace(*s), time.UTC)
	if err != nil {
		return nil
	}
	return &t
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

func decodeMetaInfo(raw datatypes.JSON) (*types.MetaInfo, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("empty MetaInfo")
	}
	var mi types.MetaInfo
	if err := json.Unmarshal(raw, &mi); err != nil {
		return nil, err
	}
	return &mi, nil
}

func decodeArchitecture(raw datatypes.JSON) (*types.WellBoreArchitecture, error) {
	var w types.WellBoreArchitecture
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, err
	}
	return &w, nil
}
