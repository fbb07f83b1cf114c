package share

import (
	"fmt"
	"strings"

	"brewshare/internal/models"
)

// Hidden type markers appended to formatted text. The dispatcher keys on
// these, so they are part of the wire contract and must stay bit-exact.
const (
	markerCoffeeBean = "@DATA_TYPE:COFFEE_BEAN@"
	markerMethod     = "@DATA_TYPE:BREWING_METHOD@"
	markerNote       = "@DATA_TYPE:BREWING_NOTE@"
)

// Placeholder sentinels. Fields rendered with a sentinel parse back as
// absent, never as the literal sentinel text.
const (
	sentinelUnset   = "未设置"
	sentinelUnknown = "未知"
)

const copyFooter = "复制此文本后，在应用中粘贴即可导入"

// FormatCoffeeBean renders a bean as a shareable annotated text block.
// Formatting never fails; absent optional fields are omitted.
func FormatCoffeeBean(bean *models.CoffeeBean) string {
	var b strings.Builder

	fmt.Fprintf(&b, "【咖啡豆】%s\n", bean.Name)

	if bean.Capacity != "" {
		if bean.Remaining != "" && bean.Remaining != bean.Capacity {
			fmt.Fprintf(&b, "容量: %sg (剩余: %sg)\n", bean.Capacity, bean.Remaining)
		} else {
			fmt.Fprintf(&b, "容量: %sg\n", bean.Capacity)
		}
	}

	roast := bean.RoastLevel
	if roast == "" {
		roast = sentinelUnknown
	}
	fmt.Fprintf(&b, "烘焙度: %s\n", roast)

	writeOptionalLine(&b, "烘焙日期", bean.RoastDate)
	writeOptionalLine(&b, "产地", bean.Origin)
	writeOptionalLine(&b, "处理法", bean.Process)
	writeOptionalLine(&b, "品种", bean.Variety)
	writeOptionalLine(&b, "类型", bean.Type)
	if bean.Price != "" {
		fmt.Fprintf(&b, "价格: %s元\n", bean.Price)
	}
	if len(bean.Flavor) > 0 {
		fmt.Fprintf(&b, "风味: %s\n", strings.Join(bean.Flavor, ", "))
	}

	if len(bean.BlendComponents) > 0 {
		b.WriteString("拼配成分:\n")
		for i, c := range bean.BlendComponents {
			parts := make([]string, 0, 3)
			for _, p := range []string{c.Origin, c.Process, c.Variety} {
				if p != "" {
					parts = append(parts, p)
				}
			}
			fmt.Fprintf(&b, "%d. %d%% %s\n", i+1, c.Percentage, strings.Join(parts, "|"))
		}
	}

	writeOptionalLine(&b, "备注", bean.Notes)

	b.WriteString("\n")
	b.WriteString(copyFooter)
	b.WriteString("\n")
	b.WriteString(markerCoffeeBean)
	return b.String()
}

// FormatMethod renders a brewing method as a shareable annotated text block.
// Empty parameters are rendered with the 未设置 placeholder so the block
// keeps its fixed shape.
func FormatMethod(m *models.Method) string {
	var b strings.Builder

	fmt.Fprintf(&b, "【冲煮方案】%s\n\n", m.Name)

	fmt.Fprintf(&b, "咖啡粉量: %s\n", orUnset(m.Params.Coffee))
	fmt.Fprintf(&b, "水量: %s\n", orUnset(m.Params.Water))
	fmt.Fprintf(&b, "粉水比: %s\n", orUnset(m.Params.Ratio))
	fmt.Fprintf(&b, "研磨度: %s\n", orUnset(m.Params.GrindSize))
	fmt.Fprintf(&b, "水温: %s\n", orUnset(m.Params.Temp))

	if len(m.Params.Stages) > 0 {
		b.WriteString("\n冲煮步骤:\n\n")
		for i, stage := range m.Params.Stages {
			fmt.Fprintf(&b, "%d. [%d分%d秒]", i+1, stage.Time/60, stage.Time%60)
			if stage.PourTime > 0 {
				fmt.Fprintf(&b, " (注水%d秒)", stage.PourTime)
			}
			if stage.PourType != "" {
				fmt.Fprintf(&b, " [%s]", stage.PourType.Label())
			}
			fmt.Fprintf(&b, " %s - %s\n", stage.Label, stage.Water)
			if stage.Detail != "" {
				fmt.Fprintf(&b, "   %s\n", stage.Detail)
			}
			if i < len(m.Params.Stages)-1 {
				b.WriteString("\n")
			}
		}
	}

	b.WriteString("\n")
	b.WriteString(copyFooter)
	b.WriteString("\n")
	b.WriteString(markerMethod)
	return b.String()
}

// FormatBrewingNote renders a brewing note as a shareable annotated text
// block. Taste scores render as 0 when absent; the notes block is
// terminated by a --- line so the parser can find its end.
func FormatBrewingNote(n *models.BrewingNote) string {
	var b strings.Builder

	b.WriteString("【冲煮记录】\n")
	fmt.Fprintf(&b, "器具: %s\n", n.Equipment)
	fmt.Fprintf(&b, "方案: %s\n", n.Method)
	fmt.Fprintf(&b, "咖啡豆: %s\n", n.CoffeeBeanInfo.Name)
	fmt.Fprintf(&b, "烘焙度: %s\n", n.CoffeeBeanInfo.RoastLevel)

	if p := n.Params; p.Coffee != "" || p.Water != "" || p.Ratio != "" || p.GrindSize != "" || p.Temp != "" {
		b.WriteString("\n参数:\n")
		writeOptionalLine(&b, "咖啡粉量", p.Coffee)
		writeOptionalLine(&b, "水量", p.Water)
		writeOptionalLine(&b, "粉水比", p.Ratio)
		writeOptionalLine(&b, "研磨度", p.GrindSize)
		writeOptionalLine(&b, "水温", p.Temp)
	}

	if t := n.Taste; t.Acidity > 0 || t.Sweetness > 0 || t.Bitterness > 0 || t.Body > 0 {
		b.WriteString("\n风味评分:\n")
		fmt.Fprintf(&b, "酸度: %d/5\n", t.Acidity)
		fmt.Fprintf(&b, "甜度: %d/5\n", t.Sweetness)
		fmt.Fprintf(&b, "苦度: %d/5\n", t.Bitterness)
		fmt.Fprintf(&b, "醇厚度: %d/5\n", t.Body)
	}

	if n.Rating > 0 {
		fmt.Fprintf(&b, "\n综合评分: %d/5\n", n.Rating)
	}

	if n.Notes != "" {
		fmt.Fprintf(&b, "\n笔记:\n%s\n---\n", n.Notes)
	}

	b.WriteString("\n")
	b.WriteString(copyFooter)
	b.WriteString("\n")
	b.WriteString(markerNote)
	return b.String()
}

func writeOptionalLine(b *strings.Builder, label, value string) {
	if value != "" {
		fmt.Fprintf(b, "%s: %s\n", label, value)
	}
}

func orUnset(value string) string {
	if value == "" {
		return sentinelUnset
	}
	return value
}
