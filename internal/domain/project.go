package domain

import "time"

// Project is one customer order. CreatedBy is fixed at creation.
type Project struct {
	ID       string      `gorm:"primaryKey;size:26" json:"id"`
	Number   string      `gorm:"type:text;not null" json:"number"`
	Customer string      `gorm:"type:text;not null" json:"customer"`
	System   *SystemType `gorm:"size:32" json:"system"`
	Subtype  *string     `json:"subtype"`

	ExtraParts *string `gorm:"type:text" json:"extra_parts"`
	Comments   *string `gorm:"type:text" json:"comments"`

	ProductionStages  *int    `json:"production_stages"`
	CurrentStage      *int    `json:"current_stage"`
	Status            *string `json:"status"`
	GlassStatus       *string `json:"glass_status"`
	GlassInvoice      *string `json:"glass_invoice"`
	GlassReadyDate    *string `json:"glass_ready_date"`
	PaintStatus       *string `json:"paint_status"`
	PaintShipDate     *string `json:"paint_ship_date"`
	PaintReceivedDate *string `json:"paint_received_date"`
	OrderItems        *string `gorm:"type:text" json:"order_items"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	CreatedBy string    `gorm:"size:26;not null;index" json:"created_by"`

	Sections []Section `gorm:"foreignKey:ProjectID" json:"sections"`
}

func (Project) TableName() string { return "projects" }

// ProjectSummary is the list form of a project. The nil Sections shadows the
// embedded one, so listings carry no sections key.
type ProjectSummary struct {
	*Project
	Sections *struct{} `json:"sections,omitempty"`
}

func Summaries(ps []Project) []ProjectSummary {
	out := make([]ProjectSummary, len(ps))
	for i := range ps {
		out[i] = ProjectSummary{Project: &ps[i]}
	}
	return out
}

type ProjectCreate struct {
	Number   string      `json:"number"   binding:"required,max=255"`
	Customer string      `json:"customer" binding:"required,max=255"`
	System   *SystemType `json:"system"`
	Subtype  *string     `json:"subtype"`
	ProjectDetails
}

// ProjectUpdate is a partial merge: nil fields leave stored values untouched.
type ProjectUpdate struct {
	Number   *string     `json:"number"   binding:"omitempty,max=255"`
	Customer *string     `json:"customer" binding:"omitempty,max=255"`
	System   *SystemType `json:"system"`
	Subtype  *string     `json:"subtype"`
	ProjectDetails
}

// ProjectDetails carries the free-text and production tracking values.
type ProjectDetails struct {
	ExtraParts        *string `json:"extra_parts"`
	Comments          *string `json:"comments"`
	ProductionStages  *int    `json:"production_stages"`
	CurrentStage      *int    `json:"current_stage"`
	Status            *string `json:"status"`
	GlassStatus       *string `json:"glass_status"`
	GlassInvoice      *string `json:"glass_invoice"`
	GlassReadyDate    *string `json:"glass_ready_date"`
	PaintStatus       *string `json:"paint_status"`
	PaintShipDate     *string `json:"paint_ship_date"`
	PaintReceivedDate *string `json:"paint_received_date"`
	OrderItems        *string `json:"order_items"`
}

// Apply merges the present fields of u into p. It does not touch UpdatedAt.
func (u ProjectUpdate) Apply(p *Project) {
	if u.Number != nil {
		p.Number = *u.Number
	}
	if u.Customer != nil {
		p.Customer = *u.Customer
	}
	if u.System != nil {
		p.System = u.System
	}
	if u.Subtype != nil {
		p.Subtype = u.Subtype
	}
	u.ProjectDetails.merge(p)
}

func (d ProjectDetails) merge(p *Project) {
	mergeStr(&p.ExtraParts, d.ExtraParts)
	mergeStr(&p.Comments, d.Comments)
	mergeInt(&p.ProductionStages, d.ProductionStages)
	mergeInt(&p.CurrentStage, d.CurrentStage)
	mergeStr(&p.Status, d.Status)
	mergeStr(&p.GlassStatus, d.GlassStatus)
	mergeStr(&p.GlassInvoice, d.GlassInvoice)
	mergeStr(&p.GlassReadyDate, d.GlassReadyDate)
	mergeStr(&p.PaintStatus, d.PaintStatus)
	mergeStr(&p.PaintShipDate, d.PaintShipDate)
	mergeStr(&p.PaintReceivedDate, d.PaintReceivedDate)
	mergeStr(&p.OrderItems, d.OrderItems)
}

// NewProject builds the record for a create request owned by ownerID.
func (c ProjectCreate) NewProject(id, ownerID string, now time.Time) Project {
	p := Project{
		ID:        id,
		Number:    c.Number,
		Customer:  c.Customer,
		System:    c.System,
		Subtype:   c.Subtype,
		CreatedBy: ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	c.ProjectDetails.merge(&p)
	return p
}

func mergeStr(dst **string, v *string) {
	if v != nil {
		s := *v
		*dst = &s
	}
}

func mergeInt(dst **int, v *int) {
	if v != nil {
		n := *v
		*dst = &n
	}
}
