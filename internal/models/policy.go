package models

import "sort"

// Policy scores available providers and picks the best one, per the
// scoring table in spec §4.5 (a direct port of router_policy.py's
// _score_provider).
type Policy struct {
	metrics *Metrics
}

// NewPolicy returns a Policy scoring over metrics.
func NewPolicy(metrics *Metrics) *Policy {
	return &Policy{metrics: metrics}
}

// SelectProvider scores every name in preferred that Metrics considers
// healthy and not in cooldown, and returns the highest scorer. Ties are
// broken by registration order (the order names appear in preferred).
func (p *Policy) SelectProvider(preferred []string, allowStreaming bool, supportsStreaming map[string]bool) (string, bool) {
	type scored struct {
		name  string
		score float64
	}
	var candidates []scored

	for _, name := range preferred {
		health, err := p.metrics.GetHealth(name)
		if err != nil || !health.Available || health.InCooldown {
			continue
		}
		candidates = append(candidates, scored{name: name, score: p.score(health, allowStreaming, supportsStreaming[name])})
	}

	if len(candidates) == 0 {
		return "", false
	}

	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].score > candidates[j].score })
	return candidates[0].name, true
}

func (p *Policy) score(health Health, allowStreaming, supportsStreaming bool) float64 {
	if !health.Available || health.InCooldown {
		return 0
	}

	score := health.HealthScore * 0.4

	switch {
	case health.AvgLatencyMS < 2000:
		score += 0.3
	case health.AvgLatencyMS < 5000:
		score += 0.2
	case health.AvgLatencyMS < 10000:
		score += 0.1
	}

	switch {
	case health.SuccessRate > 0.9:
		score += 0.2
	case health.SuccessRate > 0.7:
		score += 0.1
	}

	if allowStreaming && supportsStreaming {
		score += 0.1
	}

	if health.RateLimited {
		score -= 0.3
	}

	if score > 1.0 {
		score = 1.0
	}
	if score < 0 {
		score = 0
	}
	return score
}
