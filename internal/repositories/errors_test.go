package repositories

import (
	"fmt"
	"testing"

	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslate(t *testing.T) {
	restrict := sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintTrigger}
	unique := sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}

	assert.ErrorIs(t, translate(gorm.ErrRecordNotFound), ErrNotFound)
	assert.ErrorIs(t, translate(gorm.ErrDuplicatedKey), ErrDuplicateKey)
	assert.ErrorIs(t, translate(gorm.ErrForeignKeyViolated), ErrForeignKey)
	assert.ErrorIs(t, translate(restrict), ErrForeignKey)
	assert.ErrorIs(t, translate(fmt.Errorf("delete: %w", restrict)), ErrForeignKey)
	assert.NotErrorIs(t, translate(unique), ErrForeignKey)
}
