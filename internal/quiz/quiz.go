// Package quiz flattens the catalog into a uniform question/answer
// pool and samples a randomized exam from it.
package quiz

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/starford/lingshu/internal/models"
)

// DefaultSize is the number of questions in a generated exam.
const DefaultSize = 10

// Item is one question/answer pair. SourceCategory names the
// collection the item was synthesized from; SubLabel carries the
// secondary display info (pinyin, acupoint code, or category).
type Item struct {
	ID             string          `json:"id"`
	SourceCategory models.Category `json:"source_category"`
	TypeLabel      string          `json:"type_label"`
	SubLabel       string          `json:"sub_label,omitempty"`
	Question       string          `json:"question"`
	Answer         string          `json:"answer"`
}

// Generate builds one item per record across all five collections,
// shuffles the pool with a fresh uniform permutation, and returns the
// first size items. size <= 0 falls back to DefaultSize; a pool
// smaller than size is returned whole, shuffled, with no padding.
// Sampling is without replacement: no record appears twice in a call.
func Generate(ds models.Dataset, size int) []Item {
	if size <= 0 {
		size = DefaultSize
	}

	pool := Pool(ds)
	rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	if size > len(pool) {
		size = len(pool)
	}
	return pool[:size]
}

// Pool synthesizes exactly one item per record, in collection order.
func Pool(ds models.Dataset) []Item {
	pool := make([]Item, 0, ds.Total())

	for _, h := range ds.Herbs {
		descs := make([]string, len(h.Effects))
		for i, e := range h.Effects {
			descs[i] = e.Description
		}
		pool = append(pool, Item{
			ID:             "herb-" + h.ID,
			SourceCategory: models.CategoryHerbs,
			TypeLabel:      "中药学",
			SubLabel:       h.Pinyin,
			Question:       fmt.Sprintf("请简述中药【%s】(%s，%s) 的主要功效。", h.Name, h.Nature, strings.Join(h.Flavor, ",")),
			Answer:         strings.Join(descs, "；"),
		})
	}

	for _, f := range ds.Formulas {
		pool = append(pool, Item{
			ID:             "formula-" + f.ID,
			SourceCategory: models.CategoryFormulas,
			TypeLabel:      "方剂学",
			SubLabel:       f.Category,
			Question:       fmt.Sprintf("请简述方剂【%s】的功用与主治。", f.Name),
			Answer:         "功用：" + f.Functions,
		})
	}

	for _, a := range ds.Acupoints {
		pool = append(pool, Item{
			ID:             "point-" + a.ID,
			SourceCategory: models.CategoryAcupoints,
			TypeLabel:      "经络穴位",
			SubLabel:       a.Code,
			Question:       fmt.Sprintf("请描述穴位【%s】的定位及主治。", a.Name),
			Answer:         fmt.Sprintf("定位：%s\n主治：%s", a.Location, strings.Join(a.Indications, "、")),
		})
	}

	for _, k := range ds.KnowledgePoints {
		pool = append(pool, Item{
			ID:             "kp-" + k.ID,
			SourceCategory: models.CategoryKnowledge,
			TypeLabel:      "重点考点",
			SubLabel:       k.Category,
			Question:       fmt.Sprintf("【%s】%s", k.Category, k.Title),
			Answer:         k.Content,
		})
	}

	for _, s := range ds.Skills {
		pool = append(pool, Item{
			ID:             "skill-" + s.ID,
			SourceCategory: models.CategorySkills,
			TypeLabel:      "技能操作",
			SubLabel:       s.Category,
			Question:       fmt.Sprintf("请简述【%s】的操作步骤。", s.Title),
			Answer:         strings.Join(s.Steps, "\n"),
		})
	}

	return pool
}
