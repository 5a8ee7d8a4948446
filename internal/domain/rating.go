package domain

import "github.com/shopspring/decimal"

// ComputeScalar returns the mean of the five scores rounded half-up to one decimal.
func ComputeScalar(scores CategoryScores) float64 {
	sum := decimal.Zero
	fields := scores.fields()
	for _, f := range fields {
		sum = sum.Add(decimal.NewFromInt(int64(f.value)))
	}
	return roundTenth(sum.Div(decimal.NewFromInt(int64(len(fields)))))
}

// MeanRating divides a rating sum by count and rounds to one decimal. Zero count yields 0.
func MeanRating(sum float64, count int) float64 {
	if count <= 0 {
		return 0
	}
	return roundTenth(decimal.NewFromFloat(sum).Div(decimal.NewFromInt(int64(count))))
}

// StarBucket maps a scalar rating to its histogram key in [1,5].
func StarBucket(rating float64) int {
	bucket := int(decimal.NewFromFloat(rating).Round(0).IntPart())
	if bucket < MinScore {
		return MinScore
	}
	if bucket > MaxScore {
		return MaxScore
	}
	return bucket
}

func roundTenth(d decimal.Decimal) float64 {
	f, _ := d.Round(1).Float64()
	return f
}

// CategoryAverages holds per-category means.
type CategoryAverages struct {
	Attention     float64
	Cleanliness   float64
	Speed         float64
	MenuKnowledge float64
	Presentation  float64
}

// Summary is the roll-up of a set of reviews.
type Summary struct {
	Count        int
	Average      float64
	Categories   CategoryAverages
	Distribution map[int]int
}

// EmptyDistribution returns a histogram with every star key present.
func EmptyDistribution() map[int]int {
	dist := make(map[int]int, MaxScore)
	for star := MinScore; star <= MaxScore; star++ {
		dist[star] = 0
	}
	return dist
}

// Aggregate summarizes reviews. An empty set yields zeros, never an error.
func Aggregate(reviews []Review) Summary {
	summary := Summary{Distribution: EmptyDistribution()}
	if len(reviews) == 0 {
		return summary
	}

	ratingSum := decimal.Zero
	var attention, cleanliness, speed, menu, presentation int64
	for _, r := range reviews {
		ratingSum = ratingSum.Add(decimal.NewFromFloat(r.Rating))
		attention += int64(r.Scores.Attention)
		cleanliness += int64(r.Scores.Cleanliness)
		speed += int64(r.Scores.Speed)
		menu += int64(r.Scores.MenuKnowledge)
		presentation += int64(r.Scores.Presentation)
		summary.Distribution[StarBucket(r.Rating)]++
	}

	count := decimal.NewFromInt(int64(len(reviews)))
	mean := func(total int64) float64 {
		return roundTenth(decimal.NewFromInt(total).Div(count))
	}

	summary.Count = len(reviews)
	summary.Average = roundTenth(ratingSum.Div(count))
	summary.Categories = CategoryAverages{
		Attention:     mean(attention),
		Cleanliness:   mean(cleanliness),
		Speed:         mean(speed),
		MenuKnowledge: mean(menu),
		Presentation:  mean(presentation),
	}
	return summary
}
