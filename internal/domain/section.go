package domain

// Section defaults applied whenever a payload leaves a field unset.
const (
	DefaultWidth        = 2000.0
	DefaultHeight       = 2400.0
	DefaultPanels       = 3
	DefaultQuantity     = 1
	DefaultGlassType    = "10MM TEMPERED CLEAR"
	DefaultPaintingType = "RAL standard"
)

// Section is one physical unit of a project. ProjectID never changes.
type Section struct {
	ID            string `gorm:"primaryKey;size:26" json:"id"`
	ProjectID     string `gorm:"size:26;not null;index:idx_sections_project_order,priority:1" json:"project_id"`
	Order         int    `gorm:"column:order;not null;index:idx_sections_project_order,priority:2" json:"order"`
	SectionFields `gorm:"embedded"`
}

func (Section) TableName() string { return "sections" }

// SectionFields is the full configuration of a section. Every field is always
// present; system-specific groups are stored regardless of System.
type SectionFields struct {
	Name   string      `gorm:"size:255;not null" json:"name"`
	System *SystemType `gorm:"size:32" json:"system"`

	Width         float64  `gorm:"not null" json:"width"`
	Height        float64  `gorm:"not null" json:"height"`
	Panels        int      `gorm:"not null" json:"panels"`
	Quantity      int      `gorm:"not null" json:"quantity"`
	GlassType     string   `gorm:"type:text;not null" json:"glass_type"`
	PaintingType  string   `gorm:"type:text;not null" json:"painting_type"`
	RalColor      *string  `json:"ral_color"`
	CornerLeft    bool     `gorm:"not null;default:false" json:"corner_left"`
	CornerRight   bool     `gorm:"not null;default:false" json:"corner_right"`
	ExternalWidth *float64 `json:"external_width"`
	ExtraParts    *string  `gorm:"type:text" json:"extra_parts"`
	Comments      *string  `gorm:"type:text" json:"comments"`

	// SLIDE
	Rails                 *int    `json:"rails"`
	Threshold             *string `json:"threshold"`
	FirstPanelInside      *string `json:"first_panel_inside"`
	UnusedTrack           *string `json:"unused_track"`
	InterGlassProfile     *string `json:"inter_glass_profile"`
	ProfileLeft           *string `json:"profile_left"`
	ProfileRight          *string `json:"profile_right"`
	Lock                  *string `json:"lock"`
	Handle                *string `json:"handle"`
	FloorLatchesLeft      bool    `gorm:"not null;default:false" json:"floor_latches_left"`
	FloorLatchesRight     bool    `gorm:"not null;default:false" json:"floor_latches_right"`
	HandleOffset          *int    `json:"handle_offset"`
	ProfileLeftWall       bool    `gorm:"not null;default:false" json:"profile_left_wall"`
	ProfileLeftLockBar    bool    `gorm:"not null;default:false" json:"profile_left_lock_bar"`
	ProfileLeftPBar       bool    `gorm:"not null;default:false" json:"profile_left_p_bar"`
	ProfileLeftHandleBar  bool    `gorm:"not null;default:false" json:"profile_left_handle_bar"`
	ProfileLeftBubble     bool    `gorm:"not null;default:false" json:"profile_left_bubble"`
	ProfileRightWall      bool    `gorm:"not null;default:false" json:"profile_right_wall"`
	ProfileRightLockBar   bool    `gorm:"not null;default:false" json:"profile_right_lock_bar"`
	ProfileRightPBar      bool    `gorm:"not null;default:false" json:"profile_right_p_bar"`
	ProfileRightHandleBar bool    `gorm:"not null;default:false" json:"profile_right_handle_bar"`
	ProfileRightBubble    bool    `gorm:"not null;default:false" json:"profile_right_bubble"`
	LockLeft              *string `json:"lock_left"`
	LockRight             *string `json:"lock_right"`
	HandleLeft            *string `json:"handle_left"`
	HandleRight           *string `json:"handle_right"`

	// BOOK
	Doors       *int     `json:"doors"`
	DoorSide    *string  `json:"door_side"`
	DoorType    *string  `json:"door_type"`
	DoorOpening *string  `json:"door_opening"`
	Compensator *string  `json:"compensator"`
	AngleLeft   *float64 `json:"angle_left"`
	AngleRight  *float64 `json:"angle_right"`
	BookSystem  *string  `json:"book_system"`
	BookSubtype *string  `json:"book_subtype"`

	// DOOR / CORNER-STRUCTURE
	DoorSystem *string  `json:"door_system"`
	CsShape    *string  `json:"cs_shape"`
	CsWidth2   *float64 `json:"cs_width2"`
}

// SectionPayload is the wire form of a create or full-replace update.
// Create ignores Order; an update replaces it like any other field, so an
// omitted order becomes 0.
type SectionPayload struct {
	Name   string      `json:"name" binding:"required,max=255"`
	Order  int         `json:"order"`
	System *SystemType `json:"system"`

	Width         *float64 `json:"width"`
	Height        *float64 `json:"height"`
	Panels        *int     `json:"panels"`
	Quantity      *int     `json:"quantity"`
	GlassType     *string  `json:"glass_type"`
	PaintingType  *string  `json:"painting_type"`
	RalColor      *string  `json:"ral_color"`
	CornerLeft    *bool    `json:"corner_left"`
	CornerRight   *bool    `json:"corner_right"`
	ExternalWidth *float64 `json:"external_width"`
	ExtraParts    *string  `json:"extra_parts"`
	Comments      *string  `json:"comments"`

	Rails                 *int    `json:"rails"`
	Threshold             *string `json:"threshold"`
	FirstPanelInside      *string `json:"first_panel_inside"`
	UnusedTrack           *string `json:"unused_track"`
	InterGlassProfile     *string `json:"inter_glass_profile"`
	ProfileLeft           *string `json:"profile_left"`
	ProfileRight          *string `json:"profile_right"`
	Lock                  *string `json:"lock"`
	Handle                *string `json:"handle"`
	FloorLatchesLeft      *bool   `json:"floor_latches_left"`
	FloorLatchesRight     *bool   `json:"floor_latches_right"`
	HandleOffset          *int    `json:"handle_offset"`
	ProfileLeftWall       *bool   `json:"profile_left_wall"`
	ProfileLeftLockBar    *bool   `json:"profile_left_lock_bar"`
	ProfileLeftPBar       *bool   `json:"profile_left_p_bar"`
	ProfileLeftHandleBar  *bool   `json:"profile_left_handle_bar"`
	ProfileLeftBubble     *bool   `json:"profile_left_bubble"`
	ProfileRightWall      *bool   `json:"profile_right_wall"`
	ProfileRightLockBar   *bool   `json:"profile_right_lock_bar"`
	ProfileRightPBar      *bool   `json:"profile_right_p_bar"`
	ProfileRightHandleBar *bool   `json:"profile_right_handle_bar"`
	ProfileRightBubble    *bool   `json:"profile_right_bubble"`
	LockLeft              *string `json:"lock_left"`
	LockRight             *string `json:"lock_right"`
	HandleLeft            *string `json:"handle_left"`
	HandleRight           *string `json:"handle_right"`

	Doors       *int     `json:"doors"`
	DoorSide    *string  `json:"door_side"`
	DoorType    *string  `json:"door_type"`
	DoorOpening *string  `json:"door_opening"`
	Compensator *string  `json:"compensator"`
	AngleLeft   *float64 `json:"angle_left"`
	AngleRight  *float64 `json:"angle_right"`
	BookSystem  *string  `json:"book_system"`
	BookSubtype *string  `json:"book_subtype"`

	DoorSystem *string  `json:"door_system"`
	CsShape    *string  `json:"cs_shape"`
	CsWidth2   *float64 `json:"cs_width2"`
}

// Fields maps the payload onto a complete stored configuration. Unset
// fields take the schema default, never a previously stored value.
func (p SectionPayload) Fields() SectionFields {
	return SectionFields{
		Name:   p.Name,
		System: p.System,

		Width:         or(p.Width, DefaultWidth),
		Height:        or(p.Height, DefaultHeight),
		Panels:        or(p.Panels, DefaultPanels),
		Quantity:      or(p.Quantity, DefaultQuantity),
		GlassType:     or(p.GlassType, DefaultGlassType),
		PaintingType:  or(p.PaintingType, DefaultPaintingType),
		RalColor:      p.RalColor,
		CornerLeft:    or(p.CornerLeft, false),
		CornerRight:   or(p.CornerRight, false),
		ExternalWidth: p.ExternalWidth,
		ExtraParts:    p.ExtraParts,
		Comments:      p.Comments,

		Rails:                 p.Rails,
		Threshold:             p.Threshold,
		FirstPanelInside:      p.FirstPanelInside,
		UnusedTrack:           p.UnusedTrack,
		InterGlassProfile:     p.InterGlassProfile,
		ProfileLeft:           p.ProfileLeft,
		ProfileRight:          p.ProfileRight,
		Lock:                  p.Lock,
		Handle:                p.Handle,
		FloorLatchesLeft:      or(p.FloorLatchesLeft, false),
		FloorLatchesRight:     or(p.FloorLatchesRight, false),
		HandleOffset:          p.HandleOffset,
		ProfileLeftWall:       or(p.ProfileLeftWall, false),
		ProfileLeftLockBar:    or(p.ProfileLeftLockBar, false),
		ProfileLeftPBar:       or(p.ProfileLeftPBar, false),
		ProfileLeftHandleBar:  or(p.ProfileLeftHandleBar, false),
		ProfileLeftBubble:     or(p.ProfileLeftBubble, false),
		ProfileRightWall:      or(p.ProfileRightWall, false),
		ProfileRightLockBar:   or(p.ProfileRightLockBar, false),
		ProfileRightPBar:      or(p.ProfileRightPBar, false),
		ProfileRightHandleBar: or(p.ProfileRightHandleBar, false),
		ProfileRightBubble:    or(p.ProfileRightBubble, false),
		LockLeft:              p.LockLeft,
		LockRight:             p.LockRight,
		HandleLeft:            p.HandleLeft,
		HandleRight:           p.HandleRight,

		Doors:       p.Doors,
		DoorSide:    p.DoorSide,
		DoorType:    p.DoorType,
		DoorOpening: p.DoorOpening,
		Compensator: p.Compensator,
		AngleLeft:   p.AngleLeft,
		AngleRight:  p.AngleRight,
		BookSystem:  p.BookSystem,
		BookSubtype: p.BookSubtype,

		DoorSystem: p.DoorSystem,
		CsShape:    p.CsShape,
		CsWidth2:   p.CsWidth2,
	}
}

func or[T any](v *T, def T) T {
	if v == nil {
		return def
	}
	return *v
}
