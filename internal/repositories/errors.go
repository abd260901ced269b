package repositories

import (
	"context"
	"errors"

	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when no row matches the requested id.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateKey is returned when a write violates a unique index.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrForeignKey is returned when a write or delete violates a foreign key.
	ErrForeignKey = errors.New("foreign key violation")
	// ErrConcurrentUpdate is returned when the row changed between read and write.
	ErrConcurrentUpdate = errors.New("row was modified by another request")
)

// translate maps GORM's dialect-neutral errors onto the repository sentinels.
// The database must be opened with TranslateError enabled.
func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateKey
	case errors.Is(err, gorm.ErrForeignKeyViolated), isSQLiteRestrict(err):
		return ErrForeignKey
	}
	return err
}

// isSQLiteRestrict reports a parent delete blocked by an ON DELETE RESTRICT
// foreign key, which SQLite raises as SQLITE_CONSTRAINT_TRIGGER (1811) rather
// than SQLITE_CONSTRAINT_FOREIGNKEY (787). The GORM driver only maps the
// latter. Schemas migrated before the product foreign keys became NO ACTION
// still carry RESTRICT.
func isSQLiteRestrict(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintTrigger
}

// zeroRowsUpdated decides why a versioned update touched nothing: the row is
// gone, or someone else bumped its version first.
func zeroRowsUpdated(ctx context.Context, db *gorm.DB, model any, id uint) error {
	var count int64
	if err := conn(ctx, db).Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return translate(err)
	}
	if count == 0 {
		return ErrNotFound
	}
	return ErrConcurrentUpdate
}
