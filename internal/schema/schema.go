// Package schema evolves the relational store at startup. Steps are additive
// and idempotent; a failing step is logged and the rest still run.
package schema

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	gormschema "gorm.io/gorm/schema"

	"raluma-api/internal/domain"
)

type Step struct {
	Name  string
	Apply func(tx *gorm.DB) error
}

// Steps is the fixed, ordered evolution list.
func Steps() []Step {
	steps := []Step{{Name: "create-tables", Apply: createTables}}
	steps = append(steps, columnSteps()...)
	return append(steps,
		Step{Name: "index sections(project_id, order)", Apply: sectionOrderIndex},
		Step{Name: "backfill-section-system", Apply: backfillSectionSystem},
		Step{Name: "relabel-system-labels", Apply: relabelSystems},
		Step{Name: "relabel-lock-labels", Apply: relabelLocks},
	)
}

// Run applies every step in its own transaction and returns the names of the
// steps that failed. Failures never stop the remaining steps.
func Run(ctx context.Context, db *gorm.DB, log *zap.Logger) []string {
	var failed []string
	for _, s := range Steps() {
		start := time.Now()
		err := db.WithContext(ctx).Transaction(s.Apply)
		if err != nil {
			log.Warn("schema step skipped", zap.String("step", s.Name), zap.Error(err))
			failed = append(failed, s.Name)
			continue
		}
		log.Debug("schema step done", zap.String("step", s.Name), zap.Duration("took", time.Since(start)))
	}
	log.Info("schema evolution finished", zap.Int("steps", len(Steps())), zap.Int("failed", len(failed)))
	return failed
}

var (
	models = []any{&domain.User{}, &domain.Project{}, &domain.Section{}}
	parsed sync.Map
)

func createTables(tx *gorm.DB) error {
	m := tx.Migrator()
	for _, model := range models {
		if m.HasTable(model) {
			continue
		}
		if err := m.CreateTable(model); err != nil {
			return err
		}
	}
	return nil
}

// columnSteps walks every model column; a table created by an older release
// gets whatever it lacks. Tables from createTables already carry them all.
func columnSteps() []Step {
	var steps []Step
	for _, model := range models {
		sch, err := gormschema.Parse(model, &parsed, gormschema.NamingStrategy{})
		if err != nil {
			steps = append(steps, Step{
				Name:  fmt.Sprintf("add-columns %T", model),
				Apply: func(*gorm.DB) error { return err },
			})
			continue
		}
		for _, col := range sch.DBNames {
			steps = append(steps, Step{Name: "add-column " + sch.Table + "." + col, Apply: addColumn(model, col)})
		}
	}
	return steps
}

func addColumn(model any, col string) func(tx *gorm.DB) error {
	return func(tx *gorm.DB) error {
		m := tx.Migrator()
		if m.HasColumn(model, col) {
			return nil
		}
		return m.AddColumn(model, col)
	}
}

const sectionOrderIndexName = "idx_sections_project_order"

func sectionOrderIndex(tx *gorm.DB) error {
	m := tx.Migrator()
	if m.HasIndex(&domain.Section{}, sectionOrderIndexName) {
		return nil
	}
	return m.CreateIndex(&domain.Section{}, sectionOrderIndexName)
}
