package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"raluma-api/internal/domain"
)

func TestProjectListScopedByOwner(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	anna := f.mkUser(t, "anna", domain.RoleUser)
	boris := f.mkUser(t, "boris", domain.RoleUser)
	admin := f.mkUser(t, "admin", domain.RoleAdmin)
	root := f.mkUser(t, "root", domain.RoleSuperadmin)

	a1 := f.mkProject(t, anna, "A-1")
	a2 := f.mkProject(t, anna, "A-2")
	b1 := f.mkProject(t, boris, "B-1")

	got, err := f.projects.List(ctx, anna)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{a1.ID, a2.ID}, projectIDs(got))

	got, err = f.projects.List(ctx, boris)
	require.NoError(t, err)
	require.Equal(t, []string{b1.ID}, projectIDs(got))

	for _, actor := range []domain.Identity{admin, root} {
		got, err = f.projects.List(ctx, actor)
		require.NoError(t, err)
		require.ElementsMatch(t, []string{a1.ID, a2.ID, b1.ID}, projectIDs(got))
	}
}

func TestProjectListNewestFirst(t *testing.T) {
	f := setup(t)
	anna := f.mkUser(t, "anna", domain.RoleUser)
	first := f.mkProject(t, anna, "1")
	time.Sleep(5 * time.Millisecond)
	second := f.mkProject(t, anna, "2")

	got, err := f.projects.List(context.Background(), anna)
	require.NoError(t, err)
	require.Equal(t, []string{second.ID, first.ID}, projectIDs(got))
}

func TestProjectCreateForcesOwner(t *testing.T) {
	f := setup(t)
	anna := f.mkUser(t, "anna", domain.RoleUser)

	p, err := f.projects.Create(context.Background(), anna, domain.ProjectCreate{
		Number:   "N-7",
		Customer: "ACME",
		System:   ptr(domain.SystemBook),
		ProjectDetails: domain.ProjectDetails{
			Comments: ptr("call first"),
		},
	})
	require.NoError(t, err)
	require.Equal(t, anna.ID, p.CreatedBy)
	require.Equal(t, p.CreatedAt, p.UpdatedAt)

	got, err := f.projects.Get(context.Background(), anna, p.ID)
	require.NoError(t, err)
	require.Equal(t, domain.SystemBook, *got.System)
	require.Equal(t, "call first", *got.Comments)
	require.Empty(t, got.Sections)
}

func TestProjectUpdateIsPartial(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	anna := f.mkUser(t, "anna", domain.RoleUser)
	p, err := f.projects.Create(ctx, anna, domain.ProjectCreate{Number: "N-1", Customer: "A", Subtype: ptr("double")})
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	_, err = f.projects.Update(ctx, anna, p.ID, domain.ProjectUpdate{Number: ptr("X")})
	require.NoError(t, err)

	got, err := f.projects.Get(ctx, anna, p.ID)
	require.NoError(t, err)
	require.Equal(t, "X", got.Number)
	require.Equal(t, "A", got.Customer)
	require.Equal(t, "double", *got.Subtype)
	require.Equal(t, anna.ID, got.CreatedBy)
	require.True(t, got.UpdatedAt.After(p.UpdatedAt), "updated_at %v not after %v", got.UpdatedAt, p.UpdatedAt)
	require.WithinDuration(t, p.CreatedAt, got.CreatedAt, time.Millisecond)
}

func TestProjectUpdateWithEmptyPayloadStillBumpsUpdatedAt(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	anna := f.mkUser(t, "anna", domain.RoleUser)
	p := f.mkProject(t, anna, "N-1")

	time.Sleep(5 * time.Millisecond)
	got, err := f.projects.Update(ctx, anna, p.ID, domain.ProjectUpdate{})
	require.NoError(t, err)
	require.Equal(t, "N-1", got.Number)
	require.True(t, got.UpdatedAt.After(p.UpdatedAt))
}

func TestProjectAccessChecksExistenceFirst(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	anna := f.mkUser(t, "anna", domain.RoleUser)
	boris := f.mkUser(t, "boris", domain.RoleUser)
	admin := f.mkUser(t, "admin", domain.RoleAdmin)
	p := f.mkProject(t, anna, "A-1")

	_, err := f.projects.Get(ctx, boris, "does-not-exist")
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.projects.Get(ctx, boris, p.ID)
	require.ErrorIs(t, err, domain.ErrAccessDenied)

	_, err = f.projects.Update(ctx, boris, p.ID, domain.ProjectUpdate{Number: ptr("hijack")})
	require.ErrorIs(t, err, domain.ErrAccessDenied)
	require.ErrorIs(t, f.projects.Delete(ctx, boris, p.ID), domain.ErrAccessDenied)
	_, err = f.projects.Copy(ctx, boris, p.ID)
	require.ErrorIs(t, err, domain.ErrAccessDenied)

	require.ErrorIs(t, f.projects.Delete(ctx, boris, "does-not-exist"), domain.ErrNotFound)

	got, err := f.projects.Get(ctx, admin, p.ID)
	require.NoError(t, err)
	require.Equal(t, "A-1", got.Number)
}

func TestProjectDeleteCascadesToSections(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	anna := f.mkUser(t, "anna", domain.RoleUser)
	p := f.mkProject(t, anna, "A-1")
	f.mkSection(t, anna, p.ID, "S1")
	f.mkSection(t, anna, p.ID, "S2")

	require.NoError(t, f.projects.Delete(ctx, anna, p.ID))

	_, err := f.projects.Get(ctx, anna, p.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	var n int64
	require.NoError(t, f.db.Model(&domain.Section{}).Where("project_id = ?", p.ID).Count(&n).Error)
	require.Zero(t, n)
}

func TestProjectCopy(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	anna := f.mkUser(t, "anna", domain.RoleUser)
	admin := f.mkUser(t, "admin", domain.RoleAdmin)

	src, err := f.projects.Create(ctx, anna, domain.ProjectCreate{
		Number:   "R-100",
		Customer: "ACME",
		System:   ptr(domain.SystemSlide),
		Subtype:  ptr("triple"),
	})
	require.NoError(t, err)
	_, err = f.sections.Create(ctx, anna, src.ID, domain.SectionPayload{
		Name:       "left",
		System:     ptr(domain.SystemSlide),
		Width:      ptr(3150.5),
		RalColor:   ptr("RED"),
		Rails:      ptr(3),
		LockLeft:   ptr("RS3018 LATCH LOCK 1-POINT"),
		CornerLeft: ptr(true),
	})
	require.NoError(t, err)
	_, err = f.sections.Create(ctx, anna, src.ID, domain.SectionPayload{
		Name:       "fold",
		System:     ptr(domain.SystemBook),
		Doors:      ptr(2),
		AngleLeft:  ptr(90.0),
		BookSystem: ptr("B25"),
	})
	require.NoError(t, err)
	gap := f.mkSection(t, anna, src.ID, "gap")
	require.NoError(t, f.sections.Delete(ctx, anna, src.ID, gap.ID))
	f.mkSection(t, anna, src.ID, "last") // order 4

	clone, err := f.projects.Copy(ctx, admin, src.ID)
	require.NoError(t, err)
	require.NotEqual(t, src.ID, clone.ID)
	require.Equal(t, "R-100-copy", clone.Number)
	require.Equal(t, admin.ID, clone.CreatedBy)
	require.Equal(t, "ACME", clone.Customer)
	require.Equal(t, domain.SystemSlide, *clone.System)
	require.Equal(t, "triple", *clone.Subtype)

	want, err := f.projects.Get(ctx, anna, src.ID)
	require.NoError(t, err)
	got, err := f.projects.Get(ctx, admin, clone.ID)
	require.NoError(t, err)

	require.Len(t, got.Sections, len(want.Sections))
	for i := range want.Sections {
		require.NotEqual(t, want.Sections[i].ID, got.Sections[i].ID)
		require.Equal(t, clone.ID, got.Sections[i].ProjectID)
		require.Equal(t, want.Sections[i].Order, got.Sections[i].Order)
		require.Equal(t, want.Sections[i].SectionFields, got.Sections[i].SectionFields)
	}
	require.Equal(t, []int{1, 2, 4}, []int{got.Sections[0].Order, got.Sections[1].Order, got.Sections[2].Order})

	// the clone is the admin's, so its original owner no longer sees it
	_, err = f.projects.Get(ctx, anna, clone.ID)
	require.ErrorIs(t, err, domain.ErrAccessDenied)
}

func TestProjectCopyIsAllOrNothing(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	anna := f.mkUser(t, "anna", domain.RoleUser)
	src := f.mkProject(t, anna, "R-1")
	f.mkSection(t, anna, src.ID, "S1")
	f.mkSection(t, anna, src.ID, "S2")

	boom := errors.New("disk full")
	inserted := 0
	err := f.db.Callback().Create().Before("gorm:create").Register("test:fail_second_section", func(tx *gorm.DB) {
		if tx.Statement.Table != "sections" {
			return
		}
		inserted++
		if inserted == 2 {
			_ = tx.AddError(boom)
		}
	})
	require.NoError(t, err)

	_, err = f.projects.Copy(ctx, anna, src.ID)
	require.ErrorIs(t, err, boom)

	var projects, sections int64
	require.NoError(t, f.db.Model(&domain.Project{}).Count(&projects).Error)
	require.NoError(t, f.db.Model(&domain.Section{}).Count(&sections).Error)
	require.EqualValues(t, 1, projects)
	require.EqualValues(t, 2, sections)
}

func TestProjectCopyOfLongestNumber(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	anna := f.mkUser(t, "anna", domain.RoleUser)
	number := strings.Repeat("9", 255)
	src := f.mkProject(t, anna, number)

	clone, err := f.projects.Copy(ctx, anna, src.ID)
	require.NoError(t, err)
	require.Equal(t, number+"-copy", clone.Number)
	require.NotNil(t, clone.Sections)
	require.Empty(t, clone.Sections)

	again, err := f.projects.Copy(ctx, anna, clone.ID)
	require.NoError(t, err)
	stored, err := f.projects.Get(ctx, anna, again.ID)
	require.NoError(t, err)
	require.Equal(t, number+"-copy-copy", stored.Number)
	require.NotNil(t, stored.Sections)
}
