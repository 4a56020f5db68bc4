// Package sentiment scores news headlines with a keyword lexicon and
// aggregates them into a single polarity for the asset.
package sentiment

import (
	"strings"

	"github.com/rahulsm/coinsight/pkg/models"
)

// DefaultThreshold is the neutral band half-width for categorisation.
const DefaultThreshold = 0.1

// Polarity scores a single headline in [-1, 1] as the balance of bullish
// against bearish keyword hits. The second return is false when the
// headline contains no lexicon words at all; such headlines score a
// neutral 0.
func Polarity(title string) (float64, bool) {
	var bull, bear int
	for _, word := range tokenize(title) {
		if bullishWords[word] {
			bull++
		}
		if bearishWords[word] {
			bear++
		}
	}
	total := bull + bear
	if total == 0 {
		return 0, false
	}
	return float64(bull-bear) / float64(total), true
}

// Analyze scores each headline and averages over all of them. Headlines
// without lexicon hits count as neutral 0 and dilute the mean, so one loud
// title among many quiet ones stays a weak signal. With no headlines at
// all the category is the no-data neutral, which the scorer distinguishes
// from a genuinely balanced feed.
func Analyze(items []models.NewsItem, threshold float64) models.SentimentSnapshot {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if len(items) == 0 {
		return models.SentimentSnapshot{Category: models.SentimentNoData}
	}

	scored := make([]models.NewsItem, len(items))
	var sum float64
	for i, item := range items {
		p, _ := Polarity(item.Title)
		item.Polarity = p
		scored[i] = item
		sum += p
	}

	snap := models.SentimentSnapshot{
		Items: scored,
		Score: sum / float64(len(scored)),
	}
	snap.Category = categorise(snap.Score, threshold)
	return snap
}

func categorise(score, threshold float64) models.SentimentCategory {
	switch {
	case score > threshold:
		return models.SentimentBullish
	case score < -threshold:
		return models.SentimentBearish
	default:
		return models.SentimentNeutral
	}
}

// tokenize lower-cases a headline and splits it into words, stripping
// surrounding punctuation.
func tokenize(s string) []string {
	fields := strings.Fields(strings.ToLower(s))
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		w := strings.Trim(f, ".,!?:;'\"()[]$%&-")
		if w != "" {
			words = append(words, w)
		}
	}
	return words
}
