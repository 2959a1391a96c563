package store

import "github.com/starford/lingshu/internal/models"

// Seed returns the built-in dataset the store is loaded with when no
// dataset override file is configured. This is the only "persisted
// state" in the system; admin edits live in memory until exit.
func Seed() models.Dataset {
	return models.Dataset{
		Formulas: []models.Formula{
			{
				ID:     "f1",
				Name:   "麻黄汤",
				Pinyin: "Ma Huang Tang",
				Ingredients: []models.Ingredient{
					{Name: "麻黄", Dosage: "9g"},
					{Name: "桂枝", Dosage: "6g"},
					{Name: "杏仁", Dosage: "6g"},
					{Name: "甘草", Dosage: "3g"},
				},
				Usage:     "水煎服。",
				Functions: "发汗解表，宣肺平喘。",
				Category:  "解表剂",
			},
			{
				ID:     "f2",
				Name:   "桂枝汤",
				Pinyin: "Gui Zhi Tang",
				Ingredients: []models.Ingredient{
					{Name: "桂枝", Dosage: "9g"},
					{Name: "芍药", Dosage: "9g"},
					{Name: "生姜", Dosage: "9g"},
					{Name: "大枣", Dosage: "3枚"},
					{Name: "甘草", Dosage: "6g"},
				},
				Usage:     "水煎服，啜热稀粥。",
				Functions: "解肌发表，调和营卫。",
				Category:  "解表剂",
			},
			{
				ID:     "f3",
				Name:   "四君子汤",
				Pinyin: "Si Jun Zi Tang",
				Ingredients: []models.Ingredient{
					{Name: "人参", Dosage: "10g"},
					{Name: "白术", Dosage: "9g"},
					{Name: "茯苓", Dosage: "9g"},
					{Name: "甘草", Dosage: "6g"},
				},
				Usage:     "水煎服。",
				Functions: "益气健脾。",
				Category:  "补益剂",
			},
		},
		Herbs: []models.Herb{
			{
				ID:       "h1",
				Name:     "麻黄",
				Pinyin:   "Ma Huang",
				Nature:   "温",
				Flavor:   []string{"辛", "微苦"},
				Channels: []string{"肺", "膀胱"},
				Category: "解表药",
				Effects: []models.HerbEffect{
					{Description: "发汗解表", RelatedFormulaID: "f1"},
					{Description: "宣肺平喘", RelatedFormulaID: "f1"},
					{Description: "利水消肿"},
				},
			},
			{
				ID:       "h2",
				Name:     "桂枝",
				Pinyin:   "Gui Zhi",
				Nature:   "温",
				Flavor:   []string{"辛", "甘"},
				Channels: []string{"心", "肺", "膀胱"},
				Category: "解表药",
				Effects: []models.HerbEffect{
					{Description: "发汗解肌", RelatedFormulaID: "f2"},
					{Description: "温通经脉"},
					{Description: "助阳化气"},
				},
			},
			{
				ID:       "h3",
				Name:     "人参",
				Pinyin:   "Ren Shen",
				Nature:   "微温",
				Flavor:   []string{"甘", "微苦"},
				Channels: []string{"肺", "脾"},
				Category: "补气药",
				Effects: []models.HerbEffect{
					{Description: "大补元气"},
					{Description: "补脾益肺", RelatedFormulaID: "f3"},
					{Description: "安神益智"},
				},
			},
		},
		Acupoints: []models.Acupoint{
			{
				ID:                "a1",
				Name:              "列缺",
				Code:              "LU7",
				Location:          "前臂桡侧缘，桡骨茎突上方，腕横纹上1.5寸，当肱桡肌与拇长展肌腱之间。",
				Functions:         []string{"宣肺解表", "通经活络"},
				Indications:       []string{"头痛", "咳嗽", "咽喉肿痛", "口眼歪斜"},
				RelatedHerbIDs:    []string{"h1", "h2"},
				RelatedFormulaIDs: []string{"f1"},
			},
			{
				ID:                "a2",
				Name:              "足三里",
				Code:              "ST36",
				Location:          "小腿外侧，犊鼻下3寸，犊鼻与解溪连线上。",
				Functions:         []string{"燥化脾湿", "生发胃气"},
				Indications:       []string{"胃痛", "呕吐", "腹胀", "虚劳"},
				RelatedHerbIDs:    []string{"h3"},
				RelatedFormulaIDs: []string{"f3"},
			},
		},
		KnowledgePoints: []models.KnowledgePoint{
			{
				ID:         "k1",
				Title:      "八纲辨证",
				Category:   "诊断学",
				Difficulty: models.DifficultyEasy,
				Content:    "八纲是指阴、阳、表、里、寒、热、虚、实。它是中医辨证的总纲。",
			},
			{
				ID:         "k2",
				Title:      "风寒感冒与风热感冒的区别",
				Category:   "诊断学",
				Difficulty: models.DifficultyMedium,
				Content:    "风寒：恶寒重发热轻，无汗，鼻塞流清涕，舌苔薄白，脉浮紧。风热：发热重恶寒轻，有汗，咽喉红肿疼痛，舌苔薄黄，脉浮数。",
			},
		},
		Skills: []models.Skill{
			{
				ID:          "s1",
				Title:       "脉诊：滑脉",
				Category:    "脉诊",
				Description: "往来流利，如盘走珠。",
				Steps: []string{
					"病人取坐位或正卧位，手臂放平，与心脏近于同一水平。",
					"医生用三指指目按压桡动脉。",
					"指下感觉脉气流畅，圆滑如珠。",
					"临床意义：主痰饮、食积、实热，亦见于青壮年或孕妇。",
				},
			},
			{
				ID:          "s2",
				Title:       "推拿：滚法",
				Category:    "手法",
				Description: "用手背近小指侧部分或小指、无名指、中指的掌指关节背侧附着于一定部位上。",
				Steps: []string{
					"沉肩，垂肘，松腕。",
					"以肘部为支点，前臂作主动摆动。",
					"带动腕关节作伸屈和前臂旋转的复合运动。",
					"频率每分钟120-160次，吸定于操作部位，不可跳动或摩擦。",
				},
			},
		},
	}
}
