package model

// Patient is a tracked user of the nutrition service. The UserID is the
// WhatsApp account id (<phone>@<domain-suffix>) assigned by the ingestion
// pipeline on first contact; it is the foreign key for all child records.
type Patient struct {
	UserID         string  `json:"userId"`
	Name           string  `json:"name"`
	Height         float64 `json:"height"`
	Weight         float64 `json:"weight"`
	Age            int     `json:"age"`
	CaloriesTarget float64 `json:"caloriesTarget"`
	ProteinTarget  float64 `json:"proteinTarget"`
	CarbsTarget    float64 `json:"carbsTarget"`
	FatTarget      float64 `json:"fatTarget"`
	WeightTarget   float64 `json:"weightTarget"`
	Email          *string `json:"email,omitempty"`
	Password       *string `json:"-"`
	CreatedAt      string  `json:"createdAt"`
}

// Phone returns the bare phone number portion of the UserID.
func (p *Patient) Phone() string {
	for i := 0; i < len(p.UserID); i++ {
		if p.UserID[i] == '@' {
			return p.UserID[:i]
		}
	}
	return p.UserID
}

// Meal is an immutable food record. Dates arrive from the sheet in whatever
// format the ingestion pipeline wrote them, so they are carried as opaque
// strings and parsed only when bucketing by day.
type Meal struct {
	OwnerID     string  `json:"ownerId"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Calories    float64 `json:"calories"`
	Protein     float64 `json:"protein"`
	Carbs       float64 `json:"carbs"`
	Fat         float64 `json:"fat"`
	CategoryID  string  `json:"categoryId,omitempty"`
}

// WaterLog records a water intake in milliliters.
type WaterLog struct {
	OwnerID  string  `json:"ownerId"`
	Date     string  `json:"date"`
	AmountML float64 `json:"amountMl"`
}

// Alarm is a reminder scheduled for a patient. UniqueID is the business key
// used for lookup, edit and delete.
type Alarm struct {
	UniqueID        string `json:"uniqueId"`
	OwnerID         string `json:"ownerId"`
	Date            string `json:"date"`
	Text            string `json:"text"`
	TimeOfDay       string `json:"timeOfDay,omitempty"`
	IntervalMinutes int    `json:"intervalMinutes,omitempty"`
	Active          bool   `json:"active"`
	LastSent        string `json:"lastSent,omitempty"`
}

// CategoryRecord is an explicit named category persisted in its own tab and
// joined to meals by CategoryID.
type CategoryRecord struct {
	CategoryID  string `json:"categoryId"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CategoryKind discriminates the two category regimes.
type CategoryKind string

const (
	// CategoryDerived is computed from the meal description on the fly and
	// never persisted.
	CategoryDerived CategoryKind = "derived"
	// CategoryExplicit is backed by a CategoryRecord row.
	CategoryExplicit CategoryKind = "explicit"
)

// Category is the resolved category of a meal: explicit when the meal carries
// a stored category id, derived from the classifier otherwise.
type Category struct {
	Kind        CategoryKind `json:"kind"`
	ID          string       `json:"id,omitempty"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
}

// PatientPatch carries field-level updates for a patient row. Nil fields are
// left untouched.
type PatientPatch struct {
	Name           *string  `json:"name,omitempty"`
	Height         *float64 `json:"height,omitempty"`
	Weight         *float64 `json:"weight,omitempty"`
	Age            *int     `json:"age,omitempty"`
	CaloriesTarget *float64 `json:"caloriesTarget,omitempty"`
	ProteinTarget  *float64 `json:"proteinTarget,omitempty"`
	CarbsTarget    *float64 `json:"carbsTarget,omitempty"`
	FatTarget      *float64 `json:"fatTarget,omitempty"`
	WeightTarget   *float64 `json:"weightTarget,omitempty"`
	Email          *string  `json:"email,omitempty"`
}

// AlarmPatch carries field-level updates for an alarm row.
type AlarmPatch struct {
	Text            *string `json:"text,omitempty"`
	TimeOfDay       *string `json:"timeOfDay,omitempty"`
	IntervalMinutes *int    `json:"intervalMinutes,omitempty"`
	Active          *bool   `json:"active,omitempty"`
}
