package share

import (
	"encoding/json"
	"regexp"
	"strings"

	"brewshare/internal/models"
)

// Kind identifies which shape the dispatcher recognized.
type Kind string

const (
	KindRawJSON    Kind = "json"
	KindCoffeeBean Kind = "coffeeBean"
	KindMethod     Kind = "brewingMethod"
	KindNote       Kind = "brewingNote"
)

// Result is the dispatcher's tagged output: exactly one of the record
// fields is populated, matching Kind. Raw holds the decoded value for
// KindRawJSON.
type Result struct {
	Kind   Kind
	Bean   *models.CoffeeBean
	Method *models.Method
	Note   *models.BrewingNote
	Raw    any
}

var legacyJSONRe = regexp.MustCompile(`(?s)<!--JSON_DATA:(.*?)-->`)

// sniffer pairs a cheap predicate with a parser. Sniffers run in priority
// order; a predicate hit whose parse still fails falls through to the next
// sniffer.
type sniffer struct {
	match func(string) bool
	parse func(string) *Result
}

var sniffers = []sniffer{
	{matchRawJSON, parseRawJSON},
	{matchLegacyJSON, parseLegacyJSON},
	{containing(markerCoffeeBean), asBean},
	{containing(markerMethod), asMethod},
	{containing(markerNote), asNote},
	{containing("【咖啡豆】"), asBean},
	{containing("【冲煮方案】"), asMethod},
	{containing("【冲煮记录】"), asNote},
}

// ExtractFromText decides whether arbitrary pasted text is raw JSON,
// legacy embedded JSON, or one of the annotated-text formats, and routes
// it to the matching parser. Unrecognized input yields nil; no failure
// escapes as a panic.
func ExtractFromText(text string) (result *Result) {
	defer func() {
		if recover() != nil {
			result = nil
		}
	}()

	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	for _, s := range sniffers {
		if !s.match(text) {
			continue
		}
		if r := s.parse(text); r != nil {
			return r
		}
	}
	return nil
}

// matchRawJSON accepts only JSON objects and arrays. Bare scalars are
// valid JSON but indistinguishable from prose, so they fall through to
// marker sniffing.
func matchRawJSON(text string) bool {
	return strings.HasPrefix(text, "{") || strings.HasPrefix(text, "[")
}

func parseRawJSON(text string) *Result {
	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return nil
	}
	return &Result{Kind: KindRawJSON, Raw: v}
}

func matchLegacyJSON(text string) bool {
	return legacyJSONRe.MatchString(text)
}

func parseLegacyJSON(text string) *Result {
	m := legacyJSONRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	var v any
	if err := json.Unmarshal([]byte(strings.TrimSpace(m[1])), &v); err != nil {
		return nil
	}
	return &Result{Kind: KindRawJSON, Raw: v}
}

func containing(token string) func(string) bool {
	return func(text string) bool {
		return strings.Contains(text, token)
	}
}

func asBean(text string) *Result {
	return &Result{Kind: KindCoffeeBean, Bean: ParseCoffeeBeanText(text)}
}

func asMethod(text string) *Result {
	return &Result{Kind: KindMethod, Method: ParseMethodText(text)}
}

func asNote(text string) *Result {
	return &Result{Kind: KindNote, Note: ParseBrewingNoteText(text)}
}
