package domain

// MovieRecord 是一条国产电影的完整记录（单次遍历提取，字段不允许错位配对）。
//
// 约束：
// - Title 非空（来自条目的第一个标题 span）
// - Year 固定 4 个字符，从简介段第二行切片得到（不做数值校验，脏数据原样透传）
// - PosterURL 来自条目图片的 src 属性
type MovieRecord struct {
	Title     string
	Year      string
	PosterURL string
}

// MovieInfo 是（电影名称，上映年份）投影，供 CSV 行与测试使用。
type MovieInfo struct {
	Title string
	Year  string
}

// MoviePoster 是（电影名称，海报链接）投影，供海报下载使用。
type MoviePoster struct {
	Title string
	URL   string
}

// YearCount 是年份直方图的一项（按 Year 升序排列后对外输出）。
type YearCount struct {
	Year  int
	Count int
}
