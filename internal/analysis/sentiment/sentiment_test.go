package sentiment

import (
	"math"
	"testing"

	"github.com/rahulsm/coinsight/pkg/models"
)

func newsItems(titles ...string) []models.NewsItem {
	items := make([]models.NewsItem, len(titles))
	for i, t := range titles {
		items[i] = models.NewsItem{Title: t}
	}
	return items
}

func TestPolarity(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		want     float64
		scorable bool
	}{
		{"pure bullish", "Bitcoin surges to record high", 1, true},
		{"pure bearish", "Exchange hack triggers panic selling", -1, true},
		{"mixed leaning bullish", "Rally extends gains after breakout despite regulation", 0.5, true},
		{"balanced", "Bull and bear camps split on outlook", 0, true},
		{"no signal", "Weekly market wrap for major assets", 0, false},
		{"case and punctuation", "BREAKOUT! Bitcoin RALLIES.", 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Polarity(tt.title)
			if ok != tt.scorable {
				t.Fatalf("Polarity(%q) scorable = %v, want %v", tt.title, ok, tt.scorable)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Polarity(%q) = %v, want %v", tt.title, got, tt.want)
			}
		})
	}
}

func TestAnalyzeNoData(t *testing.T) {
	snap := Analyze(nil, DefaultThreshold)
	if snap.Category != models.SentimentNoData {
		t.Errorf("expected no-data category, got %v", snap.Category)
	}
	if snap.Score != 0 {
		t.Errorf("expected zero score, got %v", snap.Score)
	}
}

func TestAnalyzeUnscorableHeadlinesAreNeutral(t *testing.T) {
	snap := Analyze(newsItems("Weekly wrap", "Podcast episode 12"), DefaultThreshold)
	if snap.Category != models.SentimentNeutral {
		t.Errorf("headlines without signal should be plain neutral, got %v", snap.Category)
	}
	if snap.Score != 0 {
		t.Errorf("expected zero score, got %v", snap.Score)
	}
	if len(snap.Items) != 2 {
		t.Errorf("items must be retained, got %d", len(snap.Items))
	}
}

func TestAnalyzeNeutralHeadlinesDilute(t *testing.T) {
	snap := Analyze(newsItems(
		"Bitcoin surges on ETF approval",
		"Weekly market wrap",
		"Podcast: talking charts",
		"Exchange lists two new pairs",
	), DefaultThreshold)
	// One bullish headline among four; the neutral three pull the mean down.
	want := 0.25
	if math.Abs(snap.Score-want) > 1e-9 {
		t.Errorf("score = %v, want %v (mean over all four headlines)", snap.Score, want)
	}
	if snap.Category != models.SentimentBullish {
		t.Errorf("expected bullish, got %v", snap.Category)
	}
}

func TestAnalyzeMeanOfHeadlines(t *testing.T) {
	snap := Analyze(newsItems(
		"Bitcoin rally gains momentum", // +1
		"Miners face bankruptcy risk",  // -1
		"ETF approval fuels optimism",  // +1
	), DefaultThreshold)
	want := 1.0 / 3.0
	if math.Abs(snap.Score-want) > 1e-9 {
		t.Errorf("score = %v, want %v", snap.Score, want)
	}
	if snap.Category != models.SentimentBullish {
		t.Errorf("expected bullish, got %v", snap.Category)
	}
}

func TestCategoriseThresholds(t *testing.T) {
	tests := []struct {
		score float64
		want  models.SentimentCategory
	}{
		{0.5, models.SentimentBullish},
		{0.11, models.SentimentBullish},
		{0.1, models.SentimentNeutral},
		{0, models.SentimentNeutral},
		{-0.1, models.SentimentNeutral},
		{-0.11, models.SentimentBearish},
		{-0.5, models.SentimentBearish},
	}
	for _, tt := range tests {
		if got := categorise(tt.score, DefaultThreshold); got != tt.want {
			t.Errorf("categorise(%v) = %v, want %v", tt.score, got, tt.want)
		}
	}
}

func TestAnalyzeSetsItemPolarity(t *testing.T) {
	snap := Analyze(newsItems("Exchange hack causes crash"), DefaultThreshold)
	if len(snap.Items) != 1 {
		t.Fatal("expected one item")
	}
	if snap.Items[0].Polarity != -1 {
		t.Errorf("item polarity = %v, want -1", snap.Items[0].Polarity)
	}
	if snap.Category != models.SentimentBearish {
		t.Errorf("expected bearish, got %v", snap.Category)
	}
}
