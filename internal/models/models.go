package models

// PourType is the categorical style of water pour during a stage.
type PourType string

const (
	PourCenter PourType = "center"
	PourCircle PourType = "circle"
	PourIce    PourType = "ice"
	PourOther  PourType = "other"
)

// ParsePourType coerces an arbitrary string to a valid pour type.
// Unknown and legacy values (e.g. "spiral") map to circle.
func ParsePourType(s string) PourType {
	switch PourType(s) {
	case PourCenter, PourCircle, PourIce, PourOther:
		return PourType(s)
	default:
		return PourCircle
	}
}

// Label returns the fixed Chinese display label used in shared text.
func (p PourType) Label() string {
	switch p {
	case PourCenter:
		return "中心注水"
	case PourIce:
		return "冰块注水"
	case PourOther:
		return "其他方式"
	default:
		return "绕圈注水"
	}
}

// ValveStatus is the switch position on valve brewers (clever drippers etc).
type ValveStatus string

const (
	ValveOpen   ValveStatus = "open"
	ValveClosed ValveStatus = "closed"
	ValveNone   ValveStatus = ""
)

// ParseValveStatus coerces an arbitrary string to a valid valve status.
// Unknown non-empty values map to the empty status.
func ParseValveStatus(s string) ValveStatus {
	switch ValveStatus(s) {
	case ValveOpen, ValveClosed:
		return ValveStatus(s)
	default:
		return ValveNone
	}
}

// BlendComponent is one constituent origin bean within a multi-origin blend.
// Percentage is 1-100; components are not required to sum to 100.
type BlendComponent struct {
	Name       string `json:"name"`
	Percentage int    `json:"percentage"`
	Origin     string `json:"origin,omitempty"`
	Process    string `json:"process,omitempty"`
	Variety    string `json:"variety,omitempty"`
}

// CoffeeBean is one inventory entry. Capacity and remaining are
// decimal grams kept as text, matching the share format.
type CoffeeBean struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Image           string           `json:"image,omitempty"`
	Price           string           `json:"price,omitempty"`
	Capacity        string           `json:"capacity"`
	Remaining       string           `json:"remaining"`
	RoastLevel      string           `json:"roastLevel,omitempty"`
	RoastDate       string           `json:"roastDate,omitempty"`
	StartDay        int              `json:"startDay,omitempty"`
	EndDay          int              `json:"endDay,omitempty"`
	MaxDay          int              `json:"maxDay,omitempty"`
	Flavor          []string         `json:"flavor,omitempty"`
	Origin          string           `json:"origin,omitempty"`
	Process         string           `json:"process,omitempty"`
	Variety         string           `json:"variety,omitempty"`
	Type            string           `json:"type,omitempty"`
	Notes           string           `json:"notes,omitempty"`
	Timestamp       int64            `json:"timestamp"`
	BlendComponents []BlendComponent `json:"blendComponents,omitempty"`
}

// Stage is one discrete pour/action step of a brewing method.
// Time and Water are cumulative values at the end of the stage.
type Stage struct {
	Time        int         `json:"time"`
	PourTime    int         `json:"pourTime,omitempty"`
	Label       string      `json:"label"`
	Water       string      `json:"water"`
	Detail      string      `json:"detail"`
	PourType    PourType    `json:"pourType,omitempty"`
	ValveStatus ValveStatus `json:"valveStatus,omitempty"`
}

// MethodParams holds the brewing parameters of a method.
type MethodParams struct {
	Coffee    string  `json:"coffee"`
	Water     string  `json:"water"`
	Ratio     string  `json:"ratio"`
	GrindSize string  `json:"grindSize"`
	Temp      string  `json:"temp"`
	VideoURL  string  `json:"videoUrl"`
	Stages    []Stage `json:"stages"`
}

// Method is a brewing recipe.
type Method struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	Params MethodParams `json:"params"`
}

// NoteParams is the parameter snapshot stored with a brewing note.
type NoteParams struct {
	Coffee    string `json:"coffee"`
	Water     string `json:"water"`
	Ratio     string `json:"ratio"`
	GrindSize string `json:"grindSize"`
	Temp      string `json:"temp"`
}

// CoffeeBeanInfo is a point-in-time snapshot of the bean used for a brew,
// not a live reference to a CoffeeBean record.
type CoffeeBeanInfo struct {
	Name       string `json:"name"`
	RoastLevel string `json:"roastLevel"`
	RoastDate  string `json:"roastDate,omitempty"`
}

// TasteRatings are four 0-5 subjective flavor-axis scores.
type TasteRatings struct {
	Acidity    int `json:"acidity"`
	Sweetness  int `json:"sweetness"`
	Bitterness int `json:"bitterness"`
	Body       int `json:"body"`
}

// BrewingNote records one brew session.
type BrewingNote struct {
	ID             string         `json:"id"`
	Timestamp      int64          `json:"timestamp"`
	Equipment      string         `json:"equipment"`
	Method         string         `json:"method"`
	Params         NoteParams     `json:"params"`
	Stages         []Stage        `json:"stages,omitempty"`
	TotalTime      int            `json:"totalTime,omitempty"`
	CoffeeBeanInfo CoffeeBeanInfo `json:"coffeeBeanInfo"`
	Rating         int            `json:"rating"`
	Taste          TasteRatings   `json:"taste"`
	Notes          string         `json:"notes"`
}
