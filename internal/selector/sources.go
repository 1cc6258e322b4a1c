// Package selector ranks stream sources so a session can start on the best
// variant instead of blindly taking index 0.
package selector

import (
	"strings"

	"github.com/streamnest/vod-catalog/internal/model"
)

type SourceSelector struct {
	// QualityPrior orders preferred quality labels, best first; matched as
	// case-insensitive substrings of the source label ("4k", "1080", "hd")
	QualityPrior []string
}

type rankFunc func(list []model.Source) []float32

// Select returns the index of the best source. With an empty priority list
// or no match the first source wins, keeping first-seen order meaningful.
func (s SourceSelector) Select(list []model.Source) int {
	if len(list) == 0 {
		return -1
	}
	if len(s.QualityPrior) == 0 {
		return 0
	}

	ranks := makeRankFunc(s.rankByQuality, rankByPosition)(list)
	best := 0
	for i, r := range ranks {
		if r > ranks[best] {
			best = i
		}
	}
	return best
}

func (s SourceSelector) rankByQuality(list []model.Source) []float32 {
	ranks := make([]float32, len(list))
	perQualityWeight := 1 / float32(len(s.QualityPrior))
	for i, src := range list {
		label := strings.ToLower(src.Label)
		for j, q := range s.QualityPrior {
			if strings.Contains(label, strings.ToLower(q)) {
				ranks[i] = float32(len(s.QualityPrior)-j) * perQualityWeight
				break
			}
		}
	}
	return ranks
}

// rankByPosition breaks quality ties in favor of earlier sources.
func rankByPosition(list []model.Source) []float32 {
	ranks := make([]float32, len(list))
	for i := range list {
		ranks[i] = float32(len(list)-i) / float32(len(list)) * 0.001
	}
	return ranks
}

func makeRankFunc(funcs ...rankFunc) rankFunc {
	return func(list []model.Source) []float32 {
		total := make([]float32, len(list))
		for _, fn := range funcs {
			for i, r := range fn(list) {
				total[i] += r
			}
		}
		return total
	}
}
