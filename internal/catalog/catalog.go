package catalog

import (
	"strconv"
	"strings"

	"github.com/samber/lo"
)

type Style struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	NameEN     string   `json:"name_en"`
	Features   []string `json:"features"`
	KeywordsCN string   `json:"keywords_cn"`
	KeywordsEN string   `json:"keywords_en"`
	Lighting   string   `json:"lighting"`
	Texture    string   `json:"texture"`
}

type Size struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Dimensions string `json:"size"`
	Ratio      string `json:"ratio"`
}

type Purpose struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

const (
	DefaultSizeID = "square_medium"

	defaultWidth  = 1024
	defaultHeight = 1024
)

var styles = []Style{
	{
		ID:         "q_version",
		Name:       "Q版漫画",
		NameEN:     "Chibi/Q-version",
		Features:   []string{"3-5头身比例", "大头", "夸张表情", "简洁线条", "圆润轮廓"},
		KeywordsCN: "Q版, 大头身, 卡通, 可爱比例, 夸张表情, 简洁线条",
		KeywordsEN: "chibi, big head, cartoon style, cute proportion, exaggerated expression, simple lines",
		Lighting:   "柔和平光",
		Texture:    "平涂色块",
	},
	{
		ID:         "fluffy",
		Name:       "毛绒质感",
		NameEN:     "Fluffy/Plush",
		Features:   []string{"马卡龙色系", "蓬松触感", "棉花质感", "针脚缝线纹理", "柔软感"},
		KeywordsCN: "毛绒, 蓬松, 棉花质感, 针脚缝线, 马卡龙色, 柔软",
		KeywordsEN: "fluffy, plush, cotton texture, stitch details, macaron colors, soft",
		Lighting:   "暖光柔焦",
		Texture:    "毛绒蓬松触感",
	},
	{
		ID:         "ghibli",
		Name:       "吉卜力童话",
		NameEN:     "Ghibli Style",
		Features:   []string{"柔和水彩", "自然光影", "温暖色调", "手绘质感", "梦幻氛围"},
		KeywordsCN: "吉卜力风格, 宫崎骏, 手绘水彩, 温暖色调, 童话感, 自然光影",
		KeywordsEN: "Ghibli style, Miyazaki, hand-painted watercolor, warm tones, fairytale, natural lighting",
		Lighting:   "自然柔光",
		Texture:    "水彩晕染",
	},
	{
		ID:         "blind_box",
		Name:       "潮玩盲盒",
		NameEN:     "Designer Toy/Blind Box",
		Features:   []string{"PVC哑光质感", "立体感强", "饱和色彩", "光滑表面", "收藏级精致"},
		KeywordsCN: "盲盒, 潮玩, PVC材质, 哑光质感, 立体, 饱和色彩, 精致",
		KeywordsEN: "blind box, designer toy, PVC material, matte texture, 3D, saturated colors, exquisite",
		Lighting:   "摄影棚灯光",
		Texture:    "PVC哑光",
	},
	{
		ID:         "watercolor",
		Name:       "水彩晕染",
		NameEN:     "Watercolor",
		Features:   []string{"柔和边缘", "渐变过渡", "透明质感", "水痕效果", "清新感"},
		KeywordsCN: "水彩, 晕染, 渐变, 透明感, 水痕, 清新, 柔和边缘",
		KeywordsEN: "watercolor, gradient, transparent, water stain effect, fresh, soft edges",
		Lighting:   "自然散射光",
		Texture:    "水彩纸质感",
	},
	{
		ID:         "pixel",
		Name:       "像素风",
		NameEN:     "Pixel Art",
		Features:   []string{"8bit风格", "方块构成", "复古色彩", "锐利边缘", "怀旧感"},
		KeywordsCN: "像素, 8bit, 复古游戏风, 方块, 怀旧",
		KeywordsEN: "pixel art, 8-bit, retro game style, blocky, nostalgic",
		Lighting:   "平面光",
		Texture:    "像素方块",
	},
	{
		ID:         "clay",
		Name:       "黏土手工",
		NameEN:     "Clay/Plasticine",
		Features:   []string{"黏土质感", "手工痕迹", "圆润造型", "柔和色彩", "立体感"},
		KeywordsCN: "黏土, 橡皮泥, 手工, 圆润, 立体, 柔和色彩",
		KeywordsEN: "clay, plasticine, handmade, rounded, 3D, soft colors",
		Lighting:   "柔和顶光",
		Texture:    "黏土哑光",
	},
	{
		ID:         "pastel",
		Name:       "粉彩梦幻",
		NameEN:     "Pastel Dream",
		Features:   []string{"粉彩色系", "梦幻柔焦", "少女感", "甜美氛围", "柔光效果"},
		KeywordsCN: "粉彩, 梦幻, 柔焦, 少女风, 甜美, 柔光",
		KeywordsEN: "pastel colors, dreamy, soft focus, girly, sweet, soft glow",
		Lighting:   "梦幻柔光",
		Texture:    "朦胧柔和",
	},
	{
		ID:         "flat_design",
		Name:       "扁平插画",
		NameEN:     "Flat Illustration",
		Features:   []string{"几何形状", "纯色块", "简约线条", "现代感", "无阴影"},
		KeywordsCN: "扁平, 几何, 纯色块, 简约, 现代, 矢量风格",
		KeywordsEN: "flat design, geometric, solid colors, minimal, modern, vector style",
		Lighting:   "无阴影",
		Texture:    "纯色平涂",
	},
	{
		ID:         "anime",
		Name:       "日系动漫",
		NameEN:     "Anime Style",
		Features:   []string{"大眼睛", "精致发丝", "动态线条", "鲜艳色彩", "二次元"},
		KeywordsCN: "动漫, 日系, 大眼睛, 精致, 二次元, 鲜艳色彩",
		KeywordsEN: "anime, Japanese style, big eyes, detailed hair, vibrant colors, 2D",
		Lighting:   "动漫高光",
		Texture:    "赛璐璐质感",
	},
	{
		ID:         "sticker",
		Name:       "贴纸风格",
		NameEN:     "Sticker Style",
		Features:   []string{"白色描边", "简洁造型", "表情包风", "高对比", "圆角设计"},
		KeywordsCN: "贴纸, 表情包, 白色描边, 简洁, 高对比, 圆角",
		KeywordsEN: "sticker, emoji style, white outline, simple, high contrast, rounded corners",
		Lighting:   "平面光",
		Texture:    "光滑贴纸",
	},
	{
		ID:         "3d_render",
		Name:       "3D渲染",
		NameEN:     "3D Render",
		Features:   []string{"立体建模", "光影层次", "材质细节", "圆润造型", "高清渲染"},
		KeywordsCN: "3D渲染, 立体, Blender风格, 光影层次, 圆润, 高清",
		KeywordsEN: "3D render, Blender style, volumetric lighting, smooth, high quality render",
		Lighting:   "三点布光",
		Texture:    "光滑材质",
	},
}

var sizes = []Size{
	{ID: "square_small", Name: "小正方形", Dimensions: "512x512", Ratio: "1:1"},
	{ID: "square_medium", Name: "中正方形", Dimensions: "1024x1024", Ratio: "1:1"},
	{ID: "landscape_hd", Name: "横版高清", Dimensions: "1920x1080", Ratio: "16:9"},
	{ID: "portrait_hd", Name: "竖版高清", Dimensions: "1080x1920", Ratio: "9:16"},
	{ID: "landscape_2k", Name: "横版2K", Dimensions: "2560x1440", Ratio: "16:9"},
	{ID: "social_post", Name: "社交媒体", Dimensions: "1080x1080", Ratio: "1:1"},
	{ID: "avatar", Name: "头像", Dimensions: "512x512", Ratio: "1:1"},
}

var purposes = []Purpose{
	{ID: "social_media", Name: "社交媒体配图"},
	{ID: "avatar", Name: "头像/个人形象"},
	{ID: "sticker", Name: "表情包/贴纸"},
	{ID: "article", Name: "文章配图"},
	{ID: "product", Name: "产品宣传"},
	{ID: "gift", Name: "礼物/贺卡"},
	{ID: "print", Name: "印刷品"},
	{ID: "other", Name: "其他"},
}

var (
	styleIndex = lo.KeyBy(styles, func(s Style) string { return s.ID })
	sizeIndex  = lo.KeyBy(sizes, func(s Size) string { return s.ID })
)

func Styles() []Style {
	return styles
}

func Sizes() []Size {
	return sizes
}

func Purposes() []Purpose {
	return purposes
}

func StyleByID(id string) (Style, bool) {
	s, ok := styleIndex[id]
	return s, ok
}

func SizeByID(id string) (Size, bool) {
	s, ok := sizeIndex[id]
	return s, ok
}

// Dimensions resolves a size id to pixel width and height. Unknown ids fall
// back to the default size rather than failing.
func Dimensions(sizeID string) (int, int) {
	size, ok := sizeIndex[sizeID]
	if !ok {
		size = sizeIndex[DefaultSizeID]
	}

	w, h, ok := strings.Cut(size.Dimensions, "x")
	if !ok {
		return defaultWidth, defaultHeight
	}
	width, err := strconv.Atoi(w)
	if err != nil {
		return defaultWidth, defaultHeight
	}
	height, err := strconv.Atoi(h)
	if err != nil {
		return defaultWidth, defaultHeight
	}
	return width, height
}
