package schema

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"raluma-api/internal/domain"
)

var systemCol = clause.Column{Name: "system"}

// backfillSectionSystem copies the legacy project-level system onto sections
// that predate the per-section field.
func backfillSectionSystem(tx *gorm.DB) error {
	unset := clause.Or(
		clause.Eq{Column: systemCol, Value: nil},
		clause.Eq{Column: systemCol, Value: ""},
	)
	withSystem := tx.Model(&domain.Project{}).
		Select("id").
		Where(clause.Neq{Column: systemCol, Value: nil}).
		Where(clause.Neq{Column: systemCol, Value: ""})

	return tx.Model(&domain.Section{}).
		Where(unset).
		Where("project_id IN (?)", withSystem).
		UpdateColumn("system", tx.Model(&domain.Project{}).Select("system").Where("projects.id = sections.project_id")).
		Error
}

// Labels written by the first front end before system codes were fixed.
var legacySystemLabels = map[string]domain.SystemType{
	"СЛАЙД":  domain.SystemSlide,
	"КНИЖКА": domain.SystemBook,
	"ЛИФТ":   domain.SystemLift,
	"ЦС":     domain.SystemCornerStructure,
	"ДВЕРЬ":  domain.SystemDoor,
}

func relabelSystems(tx *gorm.DB) error {
	for _, model := range []any{&domain.Project{}, &domain.Section{}} {
		for old, code := range legacySystemLabels {
			err := tx.Model(model).
				Where(clause.Eq{Column: systemCol, Value: old}).
				UpdateColumn("system", string(code)).Error
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// Lock labels gained their article numbers.
var legacyLockLabels = map[string]string{
	"LATCH LOCK 1-POINT":          "RS3018 LATCH LOCK 1-POINT",
	"LATCH LOCK 2-POINT WITH KEY": "RS3019 LATCH LOCK 2-POINT WITH KEY",
}

func relabelLocks(tx *gorm.DB) error {
	for _, col := range []string{"lock", "lock_left", "lock_right"} {
		for old, label := range legacyLockLabels {
			err := tx.Model(&domain.Section{}).
				Where(clause.Eq{Column: clause.Column{Name: col}, Value: old}).
				UpdateColumn(col, label).Error
			if err != nil {
				return err
			}
		}
	}
	return nil
}
