package domain

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

func TestRoleOrdering(t *testing.T) {
	t.Parallel()

	require.True(t, RoleSuperadmin.AtLeast(RoleAdmin))
	require.True(t, RoleAdmin.AtLeast(RoleAdmin))
	require.True(t, RoleAdmin.AtLeast(RoleUser))
	require.False(t, RoleUser.AtLeast(RoleAdmin))
	require.False(t, RoleAdmin.AtLeast(RoleSuperadmin))
	require.False(t, Role("root").AtLeast(RoleUser))
}

func TestRoleRejectsUnknownValues(t *testing.T) {
	t.Parallel()

	var in struct {
		Role Role `json:"role"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"role":"admin"}`), &in))
	require.Equal(t, RoleAdmin, in.Role)

	err := json.Unmarshal([]byte(`{"role":"owner"}`), &in)
	require.ErrorIs(t, err, ErrValidationConflict)

	_, err = ParseRole("Admin")
	require.Error(t, err)
}

func TestSystemTypeRejectsUnknownValues(t *testing.T) {
	t.Parallel()

	var p SectionPayload
	require.NoError(t, json.Unmarshal([]byte(`{"name":"A","system":"CORNER-STRUCTURE"}`), &p))
	require.Equal(t, SystemCornerStructure, *p.System)

	require.Error(t, json.Unmarshal([]byte(`{"name":"A","system":"WINDOW"}`), &p))
}

func TestSectionPayloadFieldsAppliesDefaults(t *testing.T) {
	t.Parallel()

	f := SectionPayload{Name: "S1"}.Fields()
	require.Equal(t, "S1", f.Name)
	require.Equal(t, DefaultWidth, f.Width)
	require.Equal(t, DefaultHeight, f.Height)
	require.Equal(t, DefaultPanels, f.Panels)
	require.Equal(t, DefaultQuantity, f.Quantity)
	require.Equal(t, DefaultGlassType, f.GlassType)
	require.Equal(t, DefaultPaintingType, f.PaintingType)
	require.Nil(t, f.RalColor)
	require.Nil(t, f.System)
	require.False(t, f.CornerLeft)
	require.False(t, f.ProfileRightBubble)
}

func TestSectionPayloadKeepsCrossVariantFields(t *testing.T) {
	t.Parallel()

	var p SectionPayload
	body := `{"name":"S","system":"SLIDE","rails":5,"book_system":"B25","cs_shape":"Trapezoid","width":3100}`
	require.NoError(t, json.Unmarshal([]byte(body), &p))

	f := p.Fields()
	require.Equal(t, 5, *f.Rails)
	require.Equal(t, "B25", *f.BookSystem)
	require.Equal(t, "Trapezoid", *f.CsShape)
	require.Equal(t, 3100.0, f.Width)
}

func TestProjectUpdateApplyIsPartial(t *testing.T) {
	t.Parallel()

	p := Project{Number: "N-1", Customer: "A"}
	number := "X"
	ProjectUpdate{Number: &number}.Apply(&p)

	require.Equal(t, "X", p.Number)
	require.Equal(t, "A", p.Customer)

	comments := "rush order"
	ProjectUpdate{ProjectDetails: ProjectDetails{Comments: &comments}}.Apply(&p)
	require.Equal(t, "X", p.Number)
	require.Equal(t, "rush order", *p.Comments)
}

func TestFreeTextColumnsAreUnbounded(t *testing.T) {
	t.Parallel()
	bounded := map[string]bool{"id": true, "project_id": true, "created_by": true, "name": true, "system": true}
	var cache sync.Map
	for _, model := range []any{&Project{}, &Section{}} {
		sch, err := schema.Parse(model, &cache, schema.NamingStrategy{})
		require.NoError(t, err)
		for _, f := range sch.Fields {
			if f.DBName == "" || f.DataType != schema.String || bounded[f.DBName] {
				continue
			}
			require.Zerof(t, f.Size, "%s.%s", sch.Table, f.DBName)
		}
	}
}
