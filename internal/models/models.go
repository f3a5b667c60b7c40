package models

import (
	"errors"
	"fmt"
	"time"
)

// PourType identifies the kind of action a brewing stage represents.
// Beyond the built-in vocabulary, a stage may carry a custom equipment
// id as its pour type; unknown values are treated as regular pours.
type PourType string

const (
	PourCircle     PourType = "circle"
	PourCenter     PourType = "center"
	PourIce        PourType = "ice"
	PourBypass     PourType = "bypass"
	PourWait       PourType = "wait"
	PourExtraction PourType = "extraction"
	PourBeverage   PourType = "beverage"
	PourOther      PourType = "other"
)

// CountsTime reports whether stages of this pour type contribute to the
// total brew duration. Bypass and beverage stages happen outside the
// timed brew and carry no time cost.
func (t PourType) CountsTime() bool {
	return t != PourBypass && t != PourBeverage
}

// CountsWater reports whether stages of this pour type contribute to
// the total dispensed water. Wait stages dispense nothing.
func (t PourType) CountsWater() bool {
	return t != PourWait
}

// Stage is one ordered step of a brewing or roasting procedure.
// Duration and Water are optional: a wait stage carries a duration but
// no water, a bypass or beverage stage carries water but no duration.
type Stage struct {
	PourType    PourType `json:"pourType"`
	Label       string   `json:"label,omitempty"`
	Detail      string   `json:"detail,omitempty"`
	Duration    int      `json:"duration,omitempty"` // seconds
	Water       int      `json:"water,omitempty"`    // grams
	ValveStatus string   `json:"valveStatus,omitempty"`
}

// Valve status values for valve-equipped brewers (e.g. clever drippers).
const (
	ValveOpen   = "open"
	ValveClosed = "closed"
)

// Method is a saved brewing method: recipe parameters plus an ordered
// stage sequence. TotalSeconds and TotalWater are recomputed from the
// stages on every save.
type Method struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Equipment    string    `json:"equipment,omitempty"`
	CoffeeGrams  float64   `json:"coffeeGrams"`
	Ratio        float64   `json:"ratio"` // water:coffee, the N in 1:N
	GrindSize    string    `json:"grindSize,omitempty"`
	Temperature  float64   `json:"temperature,omitempty"` // °C
	Stages       []Stage   `json:"stages"`
	TotalSeconds int       `json:"totalSeconds"`
	TotalWater   int       `json:"totalWater"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Roast states for beans.
const (
	RoastStateGreen   = "green"
	RoastStateRoasted = "roasted"
)

// BlendComponent describes one component of a blend. Single-origin
// beans have exactly one component with no percentage.
type BlendComponent struct {
	Origin     string `json:"origin,omitempty"`
	Estate     string `json:"estate,omitempty"`
	Process    string `json:"process,omitempty"`
	Variety    string `json:"variety,omitempty"`
	Percentage int    `json:"percentage,omitempty"`
}

// Bean is a coffee bean inventory record. Quantities are grams.
// Dates are stored as YYYY-MM-DD strings, matching how the client
// records them (calendar dates, no time component).
type Bean struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	RoastState   string           `json:"roastState"`
	RoastLevel   string           `json:"roastLevel,omitempty"`
	Capacity     float64          `json:"capacity"`
	Remaining    float64          `json:"remaining"`
	RoastDate    string           `json:"roastDate,omitempty"`
	PurchaseDate string           `json:"purchaseDate,omitempty"`
	FlavorTags   []string         `json:"flavorTags,omitempty"`
	Blend        []BlendComponent `json:"blend,omitempty"`
	Rating       int              `json:"rating,omitempty"`

	// Freshness window overrides. Zero means "use the roast level default".
	StartDay int `json:"startDay,omitempty"`
	EndDay   int `json:"endDay,omitempty"`

	// Frozen or in-transit beans are exempt from freshness aging.
	IsFrozen    bool `json:"isFrozen,omitempty"`
	IsInTransit bool `json:"isInTransit,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NoteSource distinguishes how a journal entry was produced.
// The empty string is a regular brewing note.
type NoteSource string

const (
	SourceBrewing            NoteSource = ""
	SourceQuickDecrement     NoteSource = "quick-decrement"
	SourceCapacityAdjustment NoteSource = "capacity-adjustment"
	SourceRoasting           NoteSource = "roasting"
)

// IsInventoryAdjustment reports whether a note records an inventory
// correction rather than an actual brew or roast.
func (s NoteSource) IsInventoryAdjustment() bool {
	return s == SourceQuickDecrement || s == SourceCapacityAdjustment
}

// BrewNote is a journal record of a single brew, a roast event, or an
// inventory adjustment. Immutable once created except for Text.
type BrewNote struct {
	ID          string     `json:"id"`
	BeanID      string     `json:"beanId"`
	Source      NoteSource `json:"source,omitempty"`
	CoffeeGrams float64    `json:"coffeeGrams,omitempty"`
	WaterGrams  int        `json:"waterGrams,omitempty"`
	Ratio       float64    `json:"ratio,omitempty"`
	MethodName  string     `json:"methodName,omitempty"`
	Rating      int        `json:"rating,omitempty"`
	Text        string     `json:"text,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// ---- Request types ----

type CreateBeanRequest struct {
	Name         string           `json:"name"`
	RoastState   string           `json:"roastState"`
	RoastLevel   string           `json:"roastLevel"`
	Capacity     float64          `json:"capacity"`
	Remaining    float64          `json:"remaining"`
	RoastDate    string           `json:"roastDate"`
	PurchaseDate string           `json:"purchaseDate"`
	FlavorTags   []string         `json:"flavorTags"`
	Blend        []BlendComponent `json:"blend"`
	Rating       int              `json:"rating"`
	StartDay     int              `json:"startDay"`
	EndDay       int              `json:"endDay"`
	IsFrozen     bool             `json:"isFrozen"`
	IsInTransit  bool             `json:"isInTransit"`
}

func (r *CreateBeanRequest) Validate() error {
	if r.Name == "" {
		return errors.New("bean name is required")
	}
	if r.RoastState == "" {
		r.RoastState = RoastStateRoasted
	}
	if r.RoastState != RoastStateGreen && r.RoastState != RoastStateRoasted {
		return fmt.Errorf("invalid roast state: %s", r.RoastState)
	}
	if r.Capacity < 0 {
		return errors.New("capacity must not be negative")
	}
	if r.Remaining < 0 {
		return errors.New("remaining must not be negative")
	}
	if r.Remaining == 0 && r.Capacity > 0 {
		r.Remaining = r.Capacity
	}
	if r.Rating < 0 || r.Rating > 10 {
		return errors.New("rating must be between 0 and 10")
	}
	if r.StartDay < 0 || r.EndDay < 0 {
		return errors.New("freshness window days must not be negative")
	}
	if r.EndDay > 0 && r.StartDay > r.EndDay {
		return errors.New("freshness window start must not exceed end")
	}
	if err := validateDate(r.RoastDate); err != nil {
		return fmt.Errorf("invalid roast date: %w", err)
	}
	if err := validateDate(r.PurchaseDate); err != nil {
		return fmt.Errorf("invalid purchase date: %w", err)
	}
	return validateBlend(r.Blend)
}

// UpdateBeanRequest mirrors CreateBeanRequest; inline edits replace the
// whole record apart from ID and timestamps.
type UpdateBeanRequest = CreateBeanRequest

type CreateMethodRequest struct {
	Name        string  `json:"name"`
	Equipment   string  `json:"equipment"`
	CoffeeGrams float64 `json:"coffeeGrams"`
	Ratio       float64 `json:"ratio"`
	GrindSize   string  `json:"grindSize"`
	Temperature float64 `json:"temperature"`
	Stages      []Stage `json:"stages"`
}

// maxStages bounds the stage list on a single method.
const maxStages = 100

func (r *CreateMethodRequest) Validate() error {
	if r.Name == "" {
		return errors.New("method name is required")
	}
	if r.CoffeeGrams < 0 {
		return errors.New("coffee amount must not be negative")
	}
	if r.Ratio < 0 {
		return errors.New("ratio must not be negative")
	}
	if r.Temperature < 0 || r.Temperature > 100 {
		return errors.New("temperature must be between 0 and 100°C")
	}
	if len(r.Stages) > maxStages {
		return fmt.Errorf("too many stages (max %d)", maxStages)
	}
	for i, st := range r.Stages {
		if st.PourType == "" {
			return fmt.Errorf("stage %d: pour type is required", i+1)
		}
		if st.Duration < 0 {
			return fmt.Errorf("stage %d: duration must not be negative", i+1)
		}
		if st.Water < 0 {
			return fmt.Errorf("stage %d: water must not be negative", i+1)
		}
		if st.PourType == PourWait && st.Water != 0 {
			return fmt.Errorf("stage %d: wait stages carry no water", i+1)
		}
		if (st.PourType == PourBypass || st.PourType == PourBeverage) && st.Duration != 0 {
			return fmt.Errorf("stage %d: %s stages carry no duration", i+1, st.PourType)
		}
		if st.ValveStatus != "" && st.ValveStatus != ValveOpen && st.ValveStatus != ValveClosed {
			return fmt.Errorf("stage %d: invalid valve status", i+1)
		}
	}
	return nil
}

type UpdateMethodRequest = CreateMethodRequest

type CreateNoteRequest struct {
	BeanID      string     `json:"beanId"`
	Source      NoteSource `json:"source"`
	CoffeeGrams float64    `json:"coffeeGrams"`
	WaterGrams  int        `json:"waterGrams"`
	Ratio       float64    `json:"ratio"`
	MethodName  string     `json:"methodName"`
	Rating      int        `json:"rating"`
	Text        string     `json:"text"`
}

func (r *CreateNoteRequest) Validate() error {
	if r.BeanID == "" {
		return errors.New("bean id is required")
	}
	switch r.Source {
	case SourceBrewing, SourceQuickDecrement, SourceCapacityAdjustment, SourceRoasting:
	default:
		return fmt.Errorf("invalid note source: %s", r.Source)
	}
	if r.CoffeeGrams < 0 {
		return errors.New("coffee amount must not be negative")
	}
	if r.WaterGrams < 0 {
		return errors.New("water amount must not be negative")
	}
	if r.Rating < 0 || r.Rating > 10 {
		return errors.New("rating must be between 0 and 10")
	}
	return nil
}

func validateDate(s string) error {
	if s == "" {
		return nil
	}
	_, err := time.Parse("2006-01-02", s)
	return err
}

func validateBlend(blend []BlendComponent) error {
	total := 0
	for i, c := range blend {
		if c.Percentage < 0 || c.Percentage > 100 {
			return fmt.Errorf("blend component %d: percentage must be between 0 and 100", i+1)
		}
		total += c.Percentage
	}
	if total > 100 {
		return errors.New("blend percentages must not exceed 100")
	}
	return nil
}
