package pages

import "slices"

// Theme is one block of the themes grid: a title and the lines listed
// under it, in order.
type Theme struct {
	Title string
	Lines []string
}

var themes = []Theme{
	{
		Title: "Capital",
		Lines: []string{"资产的分配", "风险的理解", "收益的结构", "长期的纪律"},
	},
	{
		Title: "Cognition",
		Lines: []string{"决策的形成", "偏见的识别", "情绪与判断", "系统的训练"},
	},
	{
		Title: "Sovereignty",
		Lines: []string{"时间与收入", "技术与能力", "结构与自由", "长期选择"},
	},
}

// essays are the selected essay titles. A title doubles as the essay's key.
var essays = []string{
	"长期投资的心理结构",
	"AI 时代的资本分配思考",
	"心理账户与风险认知",
	"收益结构的设计记录",
}

// Themes returns a copy of the themes shown on the home page.
func Themes() []Theme {
	out := make([]Theme, 0, len(themes))
	for _, theme := range themes {
		out = append(out, Theme{Title: theme.Title, Lines: slices.Clone(theme.Lines)})
	}
	return out
}

// Essays returns a copy of the selected essay titles.
func Essays() []string {
	return slices.Clone(essays)
}
