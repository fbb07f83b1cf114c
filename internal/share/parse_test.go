package share

import (
	"strings"
	"testing"

	"brewshare/internal/models"
)

func TestParseCoffeeBeanText(t *testing.T) {
	text := `【咖啡豆】耶加雪菲
容量: 200g (剩余: 150g)
烘焙度: 浅度烘焙
烘焙日期: 2026-08-01
产地: 埃塞俄比亚
处理法: 水洗
品种: 原生种
类型: 单品
价格: 128元
风味: 茉莉花, 柠檬, 蜂蜜
备注: 前段花香明显

复制此文本后，在应用中粘贴即可导入
@DATA_TYPE:COFFEE_BEAN@`

	bean := ParseCoffeeBeanText(text)

	if bean.Name != "耶加雪菲" {
		t.Errorf("Name = %q, want %q", bean.Name, "耶加雪菲")
	}
	if bean.Capacity != "200" {
		t.Errorf("Capacity = %q, want %q", bean.Capacity, "200")
	}
	if bean.Remaining != "150" {
		t.Errorf("Remaining = %q, want %q", bean.Remaining, "150")
	}
	if bean.RoastLevel != "浅度烘焙" {
		t.Errorf("RoastLevel = %q, want %q", bean.RoastLevel, "浅度烘焙")
	}
	if bean.RoastDate != "2026-08-01" {
		t.Errorf("RoastDate = %q, want %q", bean.RoastDate, "2026-08-01")
	}
	if bean.Origin != "埃塞俄比亚" || bean.Process != "水洗" || bean.Variety != "原生种" || bean.Type != "单品" {
		t.Errorf("origin metadata = %q/%q/%q/%q", bean.Origin, bean.Process, bean.Variety, bean.Type)
	}
	if bean.Price != "128" {
		t.Errorf("Price = %q, want %q", bean.Price, "128")
	}
	wantFlavor := []string{"茉莉花", "柠檬", "蜂蜜"}
	if len(bean.Flavor) != len(wantFlavor) {
		t.Fatalf("Flavor = %v, want %v", bean.Flavor, wantFlavor)
	}
	for i := range wantFlavor {
		if bean.Flavor[i] != wantFlavor[i] {
			t.Errorf("Flavor[%d] = %q, want %q", i, bean.Flavor[i], wantFlavor[i])
		}
	}
	if bean.Notes != "前段花香明显" {
		t.Errorf("Notes = %q, want %q", bean.Notes, "前段花香明显")
	}
	if bean.ID == "" {
		t.Error("ID should be generated")
	}
}

func TestParseCoffeeBeanTextDefaults(t *testing.T) {
	t.Run("remaining defaults to capacity", func(t *testing.T) {
		bean := ParseCoffeeBeanText("【咖啡豆】测试豆\n容量: 250g")
		if bean.Capacity != "250" || bean.Remaining != "250" {
			t.Errorf("capacity/remaining = %q/%q, want 250/250", bean.Capacity, bean.Remaining)
		}
	})

	t.Run("unknown roast sentinel parses as absent", func(t *testing.T) {
		bean := ParseCoffeeBeanText("【咖啡豆】测试豆\n烘焙度: 未知")
		if bean.RoastLevel != "" {
			t.Errorf("RoastLevel = %q, want empty", bean.RoastLevel)
		}
	})

	t.Run("garbled lines leave fields at defaults", func(t *testing.T) {
		bean := ParseCoffeeBeanText("【咖啡豆】测试豆\n容量: 很多g\n价格: 面议")
		if bean.Capacity != "" || bean.Price != "" {
			t.Errorf("capacity/price = %q/%q, want empty", bean.Capacity, bean.Price)
		}
		if bean.Name != "测试豆" {
			t.Errorf("Name = %q, want %q", bean.Name, "测试豆")
		}
	})
}

func TestParseCoffeeBeanBlendComponents(t *testing.T) {
	text := `【咖啡豆】招牌拼配
容量: 500g
拼配成分:
1. 耶加雪菲 (60%)
2. 曼特宁 (40%)
@DATA_TYPE:COFFEE_BEAN@`

	bean := ParseCoffeeBeanText(text)
	if len(bean.BlendComponents) != 2 {
		t.Fatalf("BlendComponents = %d, want 2", len(bean.BlendComponents))
	}
	if bean.BlendComponents[0].Name != "耶加雪菲" || bean.BlendComponents[0].Percentage != 60 {
		t.Errorf("component[0] = %+v, want 耶加雪菲/60", bean.BlendComponents[0])
	}
	if bean.BlendComponents[1].Name != "曼特宁" || bean.BlendComponents[1].Percentage != 40 {
		t.Errorf("component[1] = %+v, want 曼特宁/40", bean.BlendComponents[1])
	}

	t.Run("no marker means no components", func(t *testing.T) {
		bean := ParseCoffeeBeanText("【咖啡豆】单品\n1. 耶加雪菲 (60%)")
		if len(bean.BlendComponents) != 0 {
			t.Errorf("BlendComponents = %v, want none", bean.BlendComponents)
		}
	})
}

func TestParseMethodText(t *testing.T) {
	text := `【冲煮方案】三段式

咖啡粉量: 15g
水量: 225g
粉水比: 未设置
研磨度: 中细
水温: 92°C

冲煮步骤:

1. [0分30秒] (注水25秒) [绕圈注水] 焖蒸 - 30g
   缓慢绕圈注水，充分浸润

2. [1分20秒] 中心注水 - 120g

3. [2分15秒] 加冰滴滤 - 225g

@DATA_TYPE:BREWING_METHOD@`

	m := ParseMethodText(text)

	if m.Name != "三段式" {
		t.Errorf("Name = %q, want %q", m.Name, "三段式")
	}
	if m.Params.Coffee != "15g" || m.Params.Water != "225g" {
		t.Errorf("coffee/water = %q/%q", m.Params.Coffee, m.Params.Water)
	}
	if m.Params.Ratio != "" {
		t.Errorf("Ratio = %q, want empty for 未设置", m.Params.Ratio)
	}
	if m.Params.GrindSize != "中细" || m.Params.Temp != "92°C" {
		t.Errorf("grind/temp = %q/%q", m.Params.GrindSize, m.Params.Temp)
	}
	if !strings.HasPrefix(m.ID, "method-") {
		t.Errorf("ID = %q, want method- prefix", m.ID)
	}

	if len(m.Params.Stages) != 3 {
		t.Fatalf("stages = %d, want 3", len(m.Params.Stages))
	}

	s := m.Params.Stages[0]
	if s.Time != 30 || s.Label != "焖蒸" || s.Water != "30g" {
		t.Errorf("stage[0] = %d/%q/%q, want 30/焖蒸/30g", s.Time, s.Label, s.Water)
	}
	if s.Detail != "缓慢绕圈注水，充分浸润" {
		t.Errorf("stage[0].Detail = %q", s.Detail)
	}
	if s.PourTime != 8 { // ceil(30*0.25)
		t.Errorf("stage[0].PourTime = %d, want 8", s.PourTime)
	}
	if s.PourType != models.PourCircle {
		t.Errorf("stage[0].PourType = %q, want circle", s.PourType)
	}

	if got := m.Params.Stages[1]; got.Time != 80 || got.PourType != models.PourCenter {
		t.Errorf("stage[1] = %d/%q, want 80/center", got.Time, got.PourType)
	}
	if got := m.Params.Stages[2]; got.Time != 135 || got.PourType != models.PourIce {
		t.Errorf("stage[2] = %d/%q, want 135/ice", got.Time, got.PourType)
	}
	if got := m.Params.Stages[2]; got.PourTime != 20 { // capped
		t.Errorf("stage[2].PourTime = %d, want 20", got.PourTime)
	}
}

func TestParseMethodTextEmbeddedID(t *testing.T) {
	text := "【冲煮方案】老方案\n@METHOD_ID:method-1700000000000@\n1. [0分30秒] 焖蒸 - 30g"
	m := ParseMethodText(text)
	if m.ID != "method-1700000000000" {
		t.Errorf("ID = %q, want embedded method id", m.ID)
	}
}

func TestInferPourType(t *testing.T) {
	tests := []struct {
		name   string
		detail string
		label  string
		want   models.PourType
	}{
		{"center keyword in detail", "从中心向外", "第一段", models.PourCenter},
		{"central keyword in detail", "中央定点", "第一段", models.PourCenter},
		{"ice keyword in detail", "倒入冰块", "第一段", models.PourIce},
		{"detail wins over label", "中心注水", "加冰", models.PourCenter},
		{"label fallback", "", "冰滴", models.PourIce},
		{"default circle", "均匀注水", "第二段", models.PourCircle},
		{"empty strings", "", "", models.PourCircle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inferPourType(tt.detail, tt.label); got != tt.want {
				t.Errorf("inferPourType(%q, %q) = %q, want %q", tt.detail, tt.label, got, tt.want)
			}
		})
	}
}

func TestReconstructPourTime(t *testing.T) {
	tests := []struct {
		total int
		want  int
	}{
		{0, 0},
		{1, 1},
		{30, 8},
		{40, 10},
		{80, 20},
		{300, 20},
	}
	for _, tt := range tests {
		if got := reconstructPourTime(tt.total); got != tt.want {
			t.Errorf("reconstructPourTime(%d) = %d, want %d", tt.total, got, tt.want)
		}
	}
}

func TestParseBrewingNoteText(t *testing.T) {
	text := `【冲煮记录】
器具: V60
方案: 三段式
咖啡豆: 耶加雪菲
烘焙度: 浅度烘焙

参数:
咖啡粉量: 15g
水量: 225g

风味评分:
酸度: 4/5
甜度: 3/5
苦度: 1/5
醇厚度: 2/5

综合评分: 4/5

笔记:
酸质明亮
甜感稍弱
---
复制此文本后，在应用中粘贴即可导入
@DATA_TYPE:BREWING_NOTE@`

	n := ParseBrewingNoteText(text)

	if n.Equipment != "V60" || n.Method != "三段式" {
		t.Errorf("equipment/method = %q/%q", n.Equipment, n.Method)
	}
	if n.CoffeeBeanInfo.Name != "耶加雪菲" || n.CoffeeBeanInfo.RoastLevel != "浅度烘焙" {
		t.Errorf("bean info = %+v", n.CoffeeBeanInfo)
	}
	if n.Params.Coffee != "15g" || n.Params.Water != "225g" {
		t.Errorf("params = %+v", n.Params)
	}
	want := models.TasteRatings{Acidity: 4, Sweetness: 3, Bitterness: 1, Body: 2}
	if n.Taste != want {
		t.Errorf("Taste = %+v, want %+v", n.Taste, want)
	}
	if n.Rating != 4 {
		t.Errorf("Rating = %d, want 4", n.Rating)
	}
	if n.Notes != "酸质明亮\n甜感稍弱" {
		t.Errorf("Notes = %q", n.Notes)
	}
	if !strings.HasPrefix(n.ID, "note-") {
		t.Errorf("ID = %q, want note- prefix", n.ID)
	}
}

func TestParseBrewingNoteTextPartial(t *testing.T) {
	n := ParseBrewingNoteText("【冲煮记录】\n器具: 聪明杯")
	if n.Equipment != "聪明杯" {
		t.Errorf("Equipment = %q", n.Equipment)
	}
	if n.Rating != 0 {
		t.Errorf("Rating = %d, want 0", n.Rating)
	}
	if (n.Taste != models.TasteRatings{}) {
		t.Errorf("Taste = %+v, want zero", n.Taste)
	}
	if n.Notes != "" {
		t.Errorf("Notes = %q, want empty", n.Notes)
	}
}

// Round trip: formatting a method and parsing it back preserves the name
// and the ordered (time, label, water) triples. Ids and pour times are
// regenerated, so they may differ.
func TestMethodTextRoundTrip(t *testing.T) {
	orig := &models.Method{
		ID:   "method-original",
		Name: "四六冲煮法",
		Params: models.MethodParams{
			Coffee: "20g", Water: "300g", Ratio: "1:15", GrindSize: "中粗", Temp: "93°C",
			Stages: []models.Stage{
				{Time: 45, PourTime: 15, Label: "第一段", Water: "50g", Detail: "中心定点注水", PourType: models.PourCenter},
				{Time: 90, PourTime: 15, Label: "第二段", Water: "120g", PourType: models.PourCircle},
				{Time: 135, PourTime: 15, Label: "第三段", Water: "180g", Detail: "均匀绕圈", PourType: models.PourCircle},
				{Time: 210, PourTime: 20, Label: "第四段", Water: "300g", PourType: models.PourCircle},
			},
		},
	}

	parsed := ParseMethodText(FormatMethod(orig))

	if parsed.Name != orig.Name {
		t.Errorf("Name = %q, want %q", parsed.Name, orig.Name)
	}
	if parsed.ID == orig.ID {
		t.Error("parsed method should not reuse the original id")
	}
	if parsed.Params.Coffee != orig.Params.Coffee || parsed.Params.Water != orig.Params.Water ||
		parsed.Params.Ratio != orig.Params.Ratio || parsed.Params.GrindSize != orig.Params.GrindSize ||
		parsed.Params.Temp != orig.Params.Temp {
		t.Errorf("params = %+v, want %+v", parsed.Params, orig.Params)
	}
	if len(parsed.Params.Stages) != len(orig.Params.Stages) {
		t.Fatalf("stages = %d, want %d", len(parsed.Params.Stages), len(orig.Params.Stages))
	}
	for i, want := range orig.Params.Stages {
		got := parsed.Params.Stages[i]
		if got.Time != want.Time || got.Label != want.Label || got.Water != want.Water {
			t.Errorf("stage[%d] = (%d, %q, %q), want (%d, %q, %q)",
				i, got.Time, got.Label, got.Water, want.Time, want.Label, want.Water)
		}
	}
}

// Unset parameters survive the round trip as empty strings, not as the
// literal 未设置 placeholder.
func TestMethodTextRoundTripPlaceholders(t *testing.T) {
	orig := &models.Method{
		Name: "极简方案",
		Params: models.MethodParams{
			Stages: []models.Stage{{Time: 60, Label: "一刀流", Water: "225g"}},
		},
	}
	parsed := ParseMethodText(FormatMethod(orig))

	if parsed.Params.Coffee != "" {
		t.Errorf("Coffee = %q, want empty", parsed.Params.Coffee)
	}
	if parsed.Params.Temp != "" {
		t.Errorf("Temp = %q, want empty", parsed.Params.Temp)
	}
}
