package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"recap/cmd/recap/ui"
	"recap/internal/channel"
	"recap/internal/studio"
)

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printSummary(a *studio.SummaryArtifact) {
	fmt.Println(a.Text)

	md := a.Metadata
	var details []string
	if md.WordCount > 0 {
		details = append(details, fmt.Sprintf("%d words", md.WordCount))
	}
	if md.MessageCount > 0 {
		details = append(details, fmt.Sprintf("%d messages", md.MessageCount))
	}
	if md.ParticipantCount > 0 {
		details = append(details, fmt.Sprintf("%d participants", md.ParticipantCount))
	}
	if md.Tone != "" {
		details = append(details, "tone: "+md.Tone)
	}
	if len(details) > 0 {
		fmt.Println()
		fmt.Println(strings.Join(details, ", "))
	}
	if len(md.KeyPoints) > 0 {
		fmt.Println("\nKey points:")
		for _, p := range md.KeyPoints {
			fmt.Println("  - " + p)
		}
	}
}

func printOutcome(out *studio.DistributionOutcome, channels []channel.Channel) {
	for _, ch := range channels {
		if !ch.Enabled {
			continue
		}
		res := out.Results[ch.ID]
		status := string(res.Status)
		if status == "" {
			status = "no report"
		}
		line := fmt.Sprintf("%s %-10s %s", ui.StatusGlyph(res.Status), ch.Name, status)
		if res.Message != "" {
			line += " (" + res.Message + ")"
		}
		if res.URL != "" {
			line += " " + res.URL
		}
		fmt.Println(line)
	}

	fmt.Printf("\nOverall: %s", valueOr(out.Overall, "unknown"))
	if out.Synthesized {
		fmt.Print(" (assumed; the agent reported no per-channel results)")
	}
	fmt.Println()
	if len(out.RetryChannels) > 0 {
		fmt.Printf("Worth retrying: %s\n", strings.Join(out.RetryChannels, ", "))
	}
}

func printSentiment(a *studio.SentimentArtifact) {
	r := a.Report

	fmt.Printf("Overall:    %s (%.2f)\n", valueOr(r.Overall.Label, "unknown"), r.Overall.Score)
	if r.Engagement.Level != "" || r.Engagement.Score > 0 {
		fmt.Printf("Engagement: %s (%.2f)\n", valueOr(r.Engagement.Level, "unknown"), r.Engagement.Score)
	}
	if r.Confidence > 0 {
		fmt.Printf("Confidence: %.2f\n", r.Confidence)
	}

	if len(r.Emotions) > 0 {
		fmt.Println("\nEmotions:")
		for _, name := range sortedEmotions(r.Emotions) {
			fmt.Printf("  %-12s %.2f\n", name, r.Emotions[name])
		}
	}

	if r.Quality != (studio.QualityMetrics{}) {
		fmt.Println("\nResponse quality:")
		fmt.Printf("  clarity        %.2f\n", r.Quality.Clarity)
		fmt.Printf("  responsiveness %.2f\n", r.Quality.Responsiveness)
		fmt.Printf("  depth          %.2f\n", r.Quality.Depth)
	}

	if len(r.Insights) > 0 {
		fmt.Println("\nInsights:")
		for _, in := range r.Insights {
			fmt.Println("  - " + in)
		}
	}
}

// sortedEmotions orders emotion names by descending score, breaking ties
// by name so output is stable.
func sortedEmotions(emotions map[string]float64) []string {
	names := make([]string, 0, len(emotions))
	for name := range emotions {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if emotions[names[i]] != emotions[names[j]] {
			return emotions[names[i]] > emotions[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}
