package server

import "math/rand/v2"

// 昵称词库
var (
	adjectives = []string{
		"灵巧的", "潦草的", "认真的", "抽象的", "写实的",
		"多彩的", "迷糊的", "机智的", "安静的", "手快的",
		"大胆的", "细心的", "随性的", "专注的", "神秘的",
	}

	nouns = []string{
		"画笔", "橡皮", "蜡笔", "铅笔", "水彩",
		"画板", "调色盘", "素描本", "马克笔", "粉笔",
		"钢笔", "毛笔", "油画棒", "颜料", "画布",
	}
)

// GenerateNickname 生成随机昵称
func GenerateNickname() string {
	adj := adjectives[rand.IntN(len(adjectives))]
	noun := nouns[rand.IntN(len(nouns))]
	return adj + noun
}
