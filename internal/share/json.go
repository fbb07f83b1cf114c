package share

import (
	"encoding/json"
	"strconv"
	"strings"

	"brewshare/internal/models"
)

// Fixed defaults applied to method parameters missing from imported JSON.
const (
	defaultCoffee    = "15g"
	defaultWater     = "225g"
	defaultRatio     = "1:15"
	defaultGrindSize = "中细"
	defaultTemp      = "92°C"
)

// ParseMethodFromJSON parses an external or legacy JSON document into a
// Method. It returns nil rather than panicking when the document is
// malformed, when neither "method" nor "equipment" is present, or when the
// stage list is empty.
func ParseMethodFromJSON(raw string) *models.Method {
	var doc map[string]any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil
	}
	return MethodFromDocument(doc)
}

// MethodFromDocument builds a Method from an untrusted, already-decoded
// JSON document, applying field defaults and enum coercion. The document's
// own id, if any, is discarded in favor of a fresh one.
func MethodFromDocument(doc map[string]any) *models.Method {
	if doc == nil {
		return nil
	}
	name := docString(doc, "method")
	if name == "" {
		name = docString(doc, "equipment")
	}
	if name == "" {
		return nil
	}

	params, _ := doc["params"].(map[string]any)

	method := &models.Method{
		ID:   NewImportID(),
		Name: name,
	}
	method.Params.Coffee = docStringOr(params, "coffee", defaultCoffee)
	method.Params.Water = docStringOr(params, "water", defaultWater)
	method.Params.Ratio = docStringOr(params, "ratio", defaultRatio)
	method.Params.GrindSize = docStringOr(params, "grindSize", defaultGrindSize)
	method.Params.Temp = docStringOr(params, "temp", defaultTemp)
	method.Params.VideoURL = docString(params, "videoUrl")

	if params != nil {
		if rawStages, ok := params["stages"].([]any); ok {
			for _, rs := range rawStages {
				stageDoc, ok := rs.(map[string]any)
				if !ok {
					continue
				}
				method.Params.Stages = append(method.Params.Stages, stageFromDocument(stageDoc))
			}
		}
	}
	if len(method.Params.Stages) == 0 {
		return nil
	}
	return method
}

// stageFromDocument normalizes one stage entry, coercing enums to their
// safe defaults.
func stageFromDocument(doc map[string]any) models.Stage {
	return models.Stage{
		Time:        docInt(doc, "time"),
		PourTime:    docInt(doc, "pourTime"),
		Label:       docString(doc, "label"),
		Water:       docString(doc, "water"),
		Detail:      docString(doc, "detail"),
		PourType:    models.ParsePourType(docString(doc, "pourType")),
		ValveStatus: models.ParseValveStatus(docString(doc, "valveStatus")),
	}
}

// methodDocument is the canonical export shape. Key order is fixed by the
// field order here.
type methodDocument struct {
	Method string         `json:"method"`
	Params paramsDocument `json:"params"`
}

type paramsDocument struct {
	Coffee    string          `json:"coffee"`
	Water     string          `json:"water"`
	Ratio     string          `json:"ratio"`
	GrindSize string          `json:"grindSize"`
	Temp      string          `json:"temp"`
	VideoURL  string          `json:"videoUrl,omitempty"`
	Stages    []stageDocument `json:"stages"`
}

type stageDocument struct {
	Time        int    `json:"time"`
	PourTime    int    `json:"pourTime,omitempty"`
	Label       string `json:"label"`
	Water       string `json:"water"`
	Detail      string `json:"detail"`
	PourType    string `json:"pourType,omitempty"`
	ValveStatus string `json:"valveStatus,omitempty"`
}

// MethodToJSON serializes a Method as a canonical two-space indented JSON
// document suitable for sharing.
func MethodToJSON(m *models.Method) string {
	doc := methodDocument{
		Method: m.Name,
		Params: paramsDocument{
			Coffee:    m.Params.Coffee,
			Water:     m.Params.Water,
			Ratio:     m.Params.Ratio,
			GrindSize: m.Params.GrindSize,
			Temp:      m.Params.Temp,
			VideoURL:  m.Params.VideoURL,
			Stages:    make([]stageDocument, 0, len(m.Params.Stages)),
		},
	}
	for _, s := range m.Params.Stages {
		doc.Params.Stages = append(doc.Params.Stages, stageDocument{
			Time:        s.Time,
			PourTime:    s.PourTime,
			Label:       s.Label,
			Water:       s.Water,
			Detail:      s.Detail,
			PourType:    string(s.PourType),
			ValveStatus: string(s.ValveStatus),
		})
	}
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return ""
	}
	return string(b)
}

// cleanDocument is the optimization subset: only recognized keys, each
// omitted entirely when absent from the source.
type cleanDocument struct {
	Method *string      `json:"method,omitempty"`
	Params *cleanParams `json:"params,omitempty"`
}

type cleanParams struct {
	Coffee    *string      `json:"coffee,omitempty"`
	Water     *string      `json:"water,omitempty"`
	Ratio     *string      `json:"ratio,omitempty"`
	GrindSize *string      `json:"grindSize,omitempty"`
	Temp      *string      `json:"temp,omitempty"`
	Stages    []cleanStage `json:"stages,omitempty"`
}

type cleanStage struct {
	Time        *int    `json:"time,omitempty"`
	PourTime    *int    `json:"pourTime,omitempty"`
	Label       *string `json:"label,omitempty"`
	Water       *string `json:"water,omitempty"`
	Detail      *string `json:"detail,omitempty"`
	PourType    *string `json:"pourType,omitempty"`
	ValveStatus *string `json:"valveStatus,omitempty"`
}

// GenerateOptimizationJSON serializes a Method in the stripped-down shape
// consumed by recipe-optimization tools.
func GenerateOptimizationJSON(m *models.Method) string {
	doc := cleanDocument{
		Method: ptr(m.Name),
		Params: &cleanParams{
			Coffee:    ptr(m.Params.Coffee),
			Water:     ptr(m.Params.Water),
			Ratio:     ptr(m.Params.Ratio),
			GrindSize: ptr(m.Params.GrindSize),
			Temp:      ptr(m.Params.Temp),
		},
	}
	for _, s := range m.Params.Stages {
		doc.Params.Stages = append(doc.Params.Stages, cleanStage{
			Time:        ptr(s.Time),
			PourTime:    ptr(s.PourTime),
			Label:       ptr(s.Label),
			Water:       ptr(s.Water),
			Detail:      ptr(s.Detail),
			PourType:    ptr(string(s.PourType)),
			ValveStatus: ptr(string(s.ValveStatus)),
		})
	}
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return ""
	}
	return string(b)
}

// CleanJSONForOptimization strips an input JSON document down to the
// recognized optimization keys, omitting missing ones. Input that does not
// parse is returned unchanged.
func CleanJSONForOptimization(raw string) string {
	var doc map[string]any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return raw
	}

	out := cleanDocument{
		Method: docStringPtr(doc, "method"),
	}
	if params, ok := doc["params"].(map[string]any); ok {
		cp := &cleanParams{
			Coffee:    docStringPtr(params, "coffee"),
			Water:     docStringPtr(params, "water"),
			Ratio:     docStringPtr(params, "ratio"),
			GrindSize: docStringPtr(params, "grindSize"),
			Temp:      docStringPtr(params, "temp"),
		}
		if rawStages, ok := params["stages"].([]any); ok {
			for _, rs := range rawStages {
				stageDoc, ok := rs.(map[string]any)
				if !ok {
					continue
				}
				cp.Stages = append(cp.Stages, cleanStage{
					Time:        docIntPtr(stageDoc, "time"),
					PourTime:    docIntPtr(stageDoc, "pourTime"),
					Label:       docStringPtr(stageDoc, "label"),
					Water:       docStringPtr(stageDoc, "water"),
					Detail:      docStringPtr(stageDoc, "detail"),
					PourType:    docStringPtr(stageDoc, "pourType"),
					ValveStatus: docStringPtr(stageDoc, "valveStatus"),
				})
			}
		}
		out.Params = cp
	}

	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return raw
	}
	return string(b)
}

// ========== Untrusted-document field helpers ==========

// docString reads a string field, coercing JSON numbers to their decimal
// representation. Anything else reads as absent.
func docString(doc map[string]any, key string) string {
	if doc == nil {
		return ""
	}
	switch v := doc[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

func docStringOr(doc map[string]any, key, fallback string) string {
	if s := docString(doc, key); s != "" {
		return s
	}
	return fallback
}

// docInt reads a numeric field, tolerating numbers written as strings.
func docInt(doc map[string]any, key string) int {
	if doc == nil {
		return 0
	}
	switch v := doc[key].(type) {
	case float64:
		return int(v)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

func docStringPtr(doc map[string]any, key string) *string {
	if _, present := doc[key]; !present {
		return nil
	}
	return ptr(docString(doc, key))
}

func docIntPtr(doc map[string]any, key string) *int {
	if _, present := doc[key]; !present {
		return nil
	}
	return ptr(docInt(doc, key))
}

func ptr[T any](v T) *T {
	return &v
}
