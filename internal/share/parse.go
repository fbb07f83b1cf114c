package share

import (
	"regexp"
	"strconv"
	"strings"

	"brewshare/internal/models"
)

// fieldRule is one "extract labeled value" lookup: a fixed label at the
// start of a line, value running to line end. Rules are independent and
// individually defaultable, so extraction order does not matter.
type fieldRule struct {
	re *regexp.Regexp
}

func newFieldRule(label string) fieldRule {
	return fieldRule{re: regexp.MustCompile(`(?m)^\s*` + regexp.QuoteMeta(label) + `[:：]\s*(.*)$`)}
}

// extract returns the first matched value, with placeholder sentinels
// mapped back to absent. A miss returns the empty string, never an error.
func (r fieldRule) extract(text string) string {
	m := r.re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	v := strings.TrimSpace(m[1])
	if v == sentinelUnset || v == sentinelUnknown {
		return ""
	}
	return v
}

var (
	beanHeaderRe   = regexp.MustCompile(`【咖啡豆】\s*(.*)`)
	methodHeaderRe = regexp.MustCompile(`【冲煮方案】\s*(.*)`)

	capacityRe  = regexp.MustCompile(`容量[:：]\s*(\d+)g`)
	remainingRe = regexp.MustCompile(`剩余[:：]\s*(\d+(?:\.\d+)?)g`)
	priceRe     = regexp.MustCompile(`价格[:：]\s*(\d+)`)
	blendLineRe = regexp.MustCompile(`^\s*\d+\.\s*(.+?)\s*[（(](\d+)%[)）]\s*$`)

	methodIDRe  = regexp.MustCompile(`@METHOD_ID:(method-[A-Za-z0-9_-]+)@`)
	stepHeadRe  = regexp.MustCompile(`^\s*(\d+)\.\s*\[(\d+)分(\d+)秒\]\s*(.*)$`)
	stepPourRe  = regexp.MustCompile(`^[（(]注水\d+秒[)）]\s*`)
	stepTypeRe  = regexp.MustCompile(`^\[[^\]]*\]\s*`)
	stepSplitRe = regexp.MustCompile(`^(.+?)\s+-\s+(.*)$`)

	noteNotesRe     = regexp.MustCompile(`(?s)笔记[:：]\s*(.*?)\s*\n\s*---`)
	noteNotesOpenRe = regexp.MustCompile(`(?s)笔记[:：]\s*(.*)$`)

	roastLevelRule = newFieldRule("烘焙度")
	roastDateRule  = newFieldRule("烘焙日期")
	originRule     = newFieldRule("产地")
	processRule    = newFieldRule("处理法")
	varietyRule    = newFieldRule("品种")
	beanTypeRule   = newFieldRule("类型")
	flavorRule     = newFieldRule("风味")
	beanNotesRule  = newFieldRule("备注")

	coffeeRule = newFieldRule("咖啡粉量")
	waterRule  = newFieldRule("水量")
	ratioRule  = newFieldRule("粉水比")
	grindRule  = newFieldRule("研磨度")
	tempRule   = newFieldRule("水温")

	equipmentRule = newFieldRule("器具")
	noteMethod    = newFieldRule("方案")
	noteBeanRule  = newFieldRule("咖啡豆")
)

// ParseCoffeeBeanText recovers a coffee bean from shared annotated text.
// Every field is extracted independently; a failed sub-pattern leaves that
// field at its default and never aborts the record.
func ParseCoffeeBeanText(text string) *models.CoffeeBean {
	bean := &models.CoffeeBean{
		ID:        NewBeanID(),
		Timestamp: now().UnixMilli(),
	}

	if m := beanHeaderRe.FindStringSubmatch(text); m != nil {
		bean.Name = strings.TrimSpace(m[1])
	}
	if m := capacityRe.FindStringSubmatch(text); m != nil {
		bean.Capacity = m[1]
		bean.Remaining = m[1]
	}
	if m := remainingRe.FindStringSubmatch(text); m != nil {
		bean.Remaining = m[1]
	}

	bean.RoastLevel = roastLevelRule.extract(text)
	bean.RoastDate = roastDateRule.extract(text)
	bean.Origin = originRule.extract(text)
	bean.Process = processRule.extract(text)
	bean.Variety = varietyRule.extract(text)
	bean.Type = beanTypeRule.extract(text)
	bean.Notes = beanNotesRule.extract(text)

	if m := priceRe.FindStringSubmatch(text); m != nil {
		bean.Price = m[1]
	}

	if flavors := flavorRule.extract(text); flavors != "" {
		for _, f := range strings.FieldsFunc(flavors, func(r rune) bool {
			return r == ',' || r == '，' || r == '、'
		}) {
			if f = strings.TrimSpace(f); f != "" {
				bean.Flavor = append(bean.Flavor, f)
			}
		}
	}

	bean.BlendComponents = parseBlendComponents(text)
	return bean
}

// parseBlendComponents reads "N. <name> (<pct>%)" lines following the
// 拼配成分 section marker. Without the marker no components are parsed.
func parseBlendComponents(text string) []models.BlendComponent {
	idx := strings.Index(text, "拼配成分")
	if idx < 0 {
		return nil
	}

	var components []models.BlendComponent
	for _, line := range strings.Split(text[idx:], "\n") {
		m := blendLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		pct, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		components = append(components, models.BlendComponent{
			Name:       strings.TrimSpace(m[1]),
			Percentage: pct,
		})
	}
	return components
}

// ParseMethodText recovers a brewing method from shared annotated text.
// The method keeps an embedded @METHOD_ID@ tag when present, otherwise a
// fresh legacy-shaped id is generated.
func ParseMethodText(text string) *models.Method {
	method := &models.Method{}

	if m := methodIDRe.FindStringSubmatch(text); m != nil {
		method.ID = m[1]
	} else {
		method.ID = newMethodID()
	}
	if m := methodHeaderRe.FindStringSubmatch(text); m != nil {
		method.Name = strings.TrimSpace(m[1])
	}

	method.Params.Coffee = coffeeRule.extract(text)
	method.Params.Water = waterRule.extract(text)
	method.Params.Ratio = ratioRule.extract(text)
	method.Params.GrindSize = grindRule.extract(text)
	method.Params.Temp = tempRule.extract(text)
	method.Params.Stages = parseStages(text)

	return method
}

// parseStages runs the two-pass step scan: a header line yields timing,
// label and water; the immediately following line, when indented, is
// consumed as the step's detail. Details are single-line by format design;
// later continuation lines are ignored.
func parseStages(text string) []models.Stage {
	lines := strings.Split(text, "\n")
	var stages []models.Stage

	for i := 0; i < len(lines); i++ {
		m := stepHeadRe.FindStringSubmatch(lines[i])
		if m == nil {
			continue
		}
		minutes, _ := strconv.Atoi(m[2])
		seconds, _ := strconv.Atoi(m[3])
		total := minutes*60 + seconds

		rest := stepPourRe.ReplaceAllString(m[4], "")
		rest = stepTypeRe.ReplaceAllString(rest, "")

		label := strings.TrimSpace(rest)
		water := ""
		if sm := stepSplitRe.FindStringSubmatch(rest); sm != nil {
			label = strings.TrimSpace(sm[1])
			water = strings.TrimSpace(sm[2])
		}

		detail := ""
		if i+1 < len(lines) {
			next := lines[i+1]
			indented := strings.HasPrefix(next, " ") || strings.HasPrefix(next, "\t")
			if indented && strings.TrimSpace(next) != "" && stepHeadRe.FindStringSubmatch(next) == nil {
				detail = strings.TrimSpace(next)
				i++
			}
		}

		stages = append(stages, models.Stage{
			Time: total,
			// Pour time is not carried by the text format; reconstruct it.
			PourTime: reconstructPourTime(total),
			Label:    label,
			Water:    water,
			Detail:   detail,
			PourType: inferPourType(detail, label),
		})
	}
	return stages
}

// reconstructPourTime approximates a pour duration as a quarter of the
// cumulative stage time, capped at 20 seconds.
func reconstructPourTime(total int) int {
	t := (total + 3) / 4
	if t > 20 {
		return 20
	}
	return t
}

// inferPourType checks detail keywords first, then the label, defaulting
// to circle.
func inferPourType(detail, label string) models.PourType {
	for _, s := range []string{detail, label} {
		if s == "" {
			continue
		}
		switch {
		case strings.Contains(s, "中心"), strings.Contains(s, "中央"):
			return models.PourCenter
		case strings.Contains(s, "冰"):
			return models.PourIce
		}
	}
	return models.PourCircle
}

// ParseBrewingNoteText recovers a brewing note from shared annotated text.
// A fresh note id is always generated.
func ParseBrewingNoteText(text string) *models.BrewingNote {
	note := &models.BrewingNote{
		ID:        newNoteID(),
		Timestamp: now().UnixMilli(),
	}

	note.Equipment = equipmentRule.extract(text)
	note.Method = noteMethod.extract(text)
	note.CoffeeBeanInfo.Name = noteBeanRule.extract(text)
	note.CoffeeBeanInfo.RoastLevel = roastLevelRule.extract(text)

	note.Params.Coffee = coffeeRule.extract(text)
	note.Params.Water = waterRule.extract(text)
	note.Params.Ratio = ratioRule.extract(text)
	note.Params.GrindSize = grindRule.extract(text)
	note.Params.Temp = tempRule.extract(text)

	note.Taste.Acidity = extractScore(text, "酸度")
	note.Taste.Sweetness = extractScore(text, "甜度")
	note.Taste.Bitterness = extractScore(text, "苦度")
	note.Taste.Body = extractScore(text, "醇厚度")
	note.Rating = extractScore(text, "综合评分")

	note.Notes = extractNoteBody(text)
	return note
}

const scorePattern = `[:：]\s*(\d+)/5`

// extractScore matches "<label>: <n>/5" and clamps the value to 0-5.
func extractScore(text, label string) int {
	re := regexp.MustCompile(regexp.QuoteMeta(label) + scorePattern)
	m := re.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 0 {
		return 0
	}
	if n > 5 {
		return 5
	}
	return n
}

// extractNoteBody returns the text between 笔记: and the next --- line.
// Without a terminator it runs to the end of the text, minus the footer
// and hidden marker.
func extractNoteBody(text string) string {
	if m := noteNotesRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	m := noteNotesOpenRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	var kept []string
	for _, line := range strings.Split(m[1], "\n") {
		if strings.Contains(line, "@DATA_TYPE:") || strings.Contains(line, copyFooter) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}
