package db_models

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

func parseSchema(t *testing.T, model interface{}) *schema.Schema {
	t.Helper()
	s, err := schema.Parse(model, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)
	return s
}

// Account deletion must succeed while soft-deleted members and export
// history rows still carry the owner's id, so the owner columns have to
// stay plain indexed uuids with no foreign-key constraint for AutoMigrate
// to create.
func TestOwnerReferencesAreConstraintFree(t *testing.T) {
	for _, model := range []interface{}{&Member{}, &ExportHistory{}, &AuditLog{}} {
		s := parseSchema(t, model)
		assert.Empty(t, s.Relationships.Relations,
			"%s must not declare relationships that migrate into FK constraints", s.Name)
	}

	account := parseSchema(t, &Account{})
	assert.Empty(t, account.Relationships.Relations,
		"Account must not declare a back-reference to members")
}

func TestMemberRetainsOwnerColumn(t *testing.T) {
	s := parseSchema(t, &Member{})

	field, ok := s.FieldsByDBName["created_by_id"]
	require.True(t, ok)
	assert.Contains(t, field.Tag.Get("gorm"), "type:uuid")
	assert.Contains(t, field.Tag.Get("gorm"), "index")
}
