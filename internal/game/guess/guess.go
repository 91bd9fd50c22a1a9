// Package guess 负责猜词比对：规范化、遮罩以及“接近答案”判断
package guess

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaskGlyph 遮罩占位符
const MaskGlyph = '_'

// Normalize 将文本转为可比较的规范形式：
// 按语言规则转小写、去掉首尾空白、去除变音符号。
// 无点 ı 没有分解形式，单独折叠为 i，这样 kapi 与 kapı 相等
func Normalize(text, lang string) string {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.Und
	}

	// Caser 和 transform 链都带状态，每次调用新建
	lowered := cases.Lower(tag).String(text)

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), runes.Map(foldDotless), norm.NFC)
	stripped, _, err := transform.String(t, lowered)
	if err != nil {
		stripped = lowered
	}

	return strings.TrimSpace(stripped)
}

func foldDotless(r rune) rune {
	if r == 'ı' {
		return 'i'
	}
	return r
}

// Matches 比较猜测与答案的规范形式是否完全一致
func Matches(guessText, secret, lang string) bool {
	g := Normalize(guessText, lang)
	if g == "" {
		return false
	}
	return g == Normalize(secret, lang)
}

// Mask 将所有非空白字符替换为占位符，保留词间空白
func Mask(word string) string {
	var b strings.Builder
	b.Grow(len(word))
	for _, r := range word {
		if unicode.IsSpace(r) {
			b.WriteRune(r)
			continue
		}
		b.WriteRune(MaskGlyph)
	}
	return b.String()
}

// IsClose 判断一个错误的猜测是否接近答案
// 短词（少于 5 个字符）只容忍 1 处编辑，其余容忍 2 处
func IsClose(guessText, secret, lang string) bool {
	g := Normalize(guessText, lang)
	s := Normalize(secret, lang)
	if g == "" || g == s {
		return false
	}

	limit := 2
	if utf8.RuneCountInString(s) < 5 {
		limit = 1
	}
	return levenshtein.ComputeDistance(g, s) <= limit
}
