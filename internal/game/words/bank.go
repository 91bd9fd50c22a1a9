// Package words 提供按语言和分类查找的静态词库
package words

import (
	"math/rand/v2"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/palemoky/draw-guess/internal/apperrors"
)

// Lists 语言 → 分类 → 候选词
type Lists map[string]map[string][]string

// Selector 语言与分类组合
type Selector struct {
	Language string `json:"language"`
	Category string `json:"category"`
}

// Bank 词库，创建后只读
type Bank struct {
	lists Lists

	rngMu sync.Mutex
	rng   *rand.Rand
}

// New 使用给定词表和随机源创建词库，rng 为 nil 时使用随机种子
func New(lists Lists, rng *rand.Rand) *Bank {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	b := &Bank{lists: make(Lists), rng: rng}
	b.merge(lists)
	return b
}

// NewDefault 使用内置词表创建词库
func NewDefault(rng *rand.Rand) *Bank {
	return New(builtin, rng)
}

// LoadFile 从 YAML 文件读取词表并合并到内置词表
//
// 文件格式：
//
//	tr:
//	  esyalar: [masa, sandalye]
func LoadFile(path string, rng *rand.Rand) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var extra Lists
	if err := yaml.Unmarshal(data, &extra); err != nil {
		return nil, err
	}

	b := NewDefault(rng)
	b.merge(extra)
	return b, nil
}

func (b *Bank) merge(lists Lists) {
	for lang, cats := range lists {
		if b.lists[lang] == nil {
			b.lists[lang] = make(map[string][]string)
		}
		for cat, words := range cats {
			// 空列表不算有效分类
			if len(words) == 0 {
				continue
			}
			b.lists[lang][cat] = append(b.lists[lang][cat], words...)
		}
	}
}

// Has 判断语言和分类是否存在
func (b *Bank) Has(language, category string) bool {
	return len(b.lists[language][category]) > 0
}

// Pick 从列表中等概率随机取一个词
func (b *Bank) Pick(language, category string) (string, error) {
	list := b.lists[language][category]
	if len(list) == 0 {
		return "", apperrors.ErrInvalidSelector
	}
	return list[b.intN(len(list))], nil
}

// PickExcept 同 Pick，但列表多于一个词时不会返回 prev
func (b *Bank) PickExcept(language, category, prev string) (string, error) {
	list := b.lists[language][category]
	if len(list) == 0 {
		return "", apperrors.ErrInvalidSelector
	}
	if len(list) == 1 || prev == "" {
		return list[b.intN(len(list))], nil
	}

	candidates := make([]string, 0, len(list))
	for _, w := range list {
		if w != prev {
			candidates = append(candidates, w)
		}
	}
	if len(candidates) == 0 {
		return prev, nil
	}
	return candidates[b.intN(len(candidates))], nil
}

// Words 返回分类下全部词（副本）
func (b *Bank) Words(language, category string) []string {
	list := b.lists[language][category]
	out := make([]string, len(list))
	copy(out, list)
	return out
}

// Selectors 返回所有可用的语言/分类组合，按字典序排列
func (b *Bank) Selectors() []Selector {
	var out []Selector
	for lang, cats := range b.lists {
		for cat, list := range cats {
			if len(list) > 0 {
				out = append(out, Selector{Language: lang, Category: cat})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Language != out[j].Language {
			return out[i].Language < out[j].Language
		}
		return out[i].Category < out[j].Category
	})
	return out
}

func (b *Bank) intN(n int) int {
	b.rngMu.Lock()
	defer b.rngMu.Unlock()
	return b.rng.IntN(n)
}
