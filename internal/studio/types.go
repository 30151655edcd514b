package studio

import (
	"time"

	"github.com/google/uuid"

	"recap/internal/channel"
)

// SummaryMetadata is the flat record the summarize agent returns next
// to the summary text. Every field is optional; absent fields stay at
// their zero value.
type SummaryMetadata struct {
	WordCount        int      `json:"word_count,omitempty"`
	MessageCount     int      `json:"message_count,omitempty"`
	ParticipantCount int      `json:"participant_count,omitempty"`
	Tone             string   `json:"tone,omitempty"`
	Sentiment        string   `json:"sentiment,omitempty"`
	KeyPoints        []string `json:"key_points,omitempty"`
	Topics           []string `json:"topics,omitempty"`
}

// summaryEnvelope is the recognized field set of summarize and
// distribute replies. DistributionResults is a pointer so a reply that
// omits the field (nil) is distinguishable from one carrying an empty
// result set.
type summaryEnvelope struct {
	Summary             string             `json:"summary"`
	Metadata            SummaryMetadata    `json:"summary_metadata"`
	DistributionResults *channel.ResultSet `json:"distribution_results"`
	OverallStatus       string             `json:"overall_status"`
	RetryChannels       []string           `json:"retry_channels"`
}

// SummaryArtifact is the stored output of a summarization run. Text may
// be edited by the user before distribution; re-running summarization
// replaces the artifact wholesale.
type SummaryArtifact struct {
	ID        uuid.UUID
	Text      string
	Metadata  SummaryMetadata
	CreatedAt time.Time
}

// DistributionOutcome snapshots one distribution attempt. A new attempt
// replaces it wholesale; it is never merged with a previous outcome.
// Synthesized marks outcomes recap fabricated locally because the agent
// reply carried no distribution_results field.
type DistributionOutcome struct {
	Results       channel.ResultSet
	Overall       string
	RetryChannels []string
	Synthesized   bool
	At            time.Time
}

// SentimentScore is a labeled polarity with a numeric score.
type SentimentScore struct {
	Label string  `json:"label,omitempty"`
	Score float64 `json:"score,omitempty"`
}

// EngagementMetrics describes how actively the participants engaged.
type EngagementMetrics struct {
	Level            string  `json:"level,omitempty"`
	Score            float64 `json:"score,omitempty"`
	MessageFrequency string  `json:"message_frequency,omitempty"`
	ParticipantRatio float64 `json:"participant_ratio,omitempty"`
}

// QualityMetrics scores the conversational quality dimensions.
type QualityMetrics struct {
	Clarity        float64 `json:"clarity,omitempty"`
	Responsiveness float64 `json:"responsiveness,omitempty"`
	Depth          float64 `json:"depth,omitempty"`
}

// ScoringBreakdown aggregates polarity shares into a composite.
type ScoringBreakdown struct {
	Positive  float64 `json:"positive,omitempty"`
	Negative  float64 `json:"negative,omitempty"`
	Neutral   float64 `json:"neutral,omitempty"`
	Composite float64 `json:"composite,omitempty"`
}

// AnalysisMetadata carries the agent's own processing details.
type AnalysisMetadata struct {
	ModelVersion string `json:"model_version,omitempty"`
	ProcessedAt  string `json:"processed_at,omitempty"`
	DurationMs   int    `json:"duration_ms,omitempty"`
	MessageCount int    `json:"message_count,omitempty"`
}

// SentimentReport is the multi-section analysis object. The section set
// is fixed; individual sections tolerate missing fields.
type SentimentReport struct {
	Overall    SentimentScore     `json:"overall_sentiment"`
	Emotions   map[string]float64 `json:"emotions,omitempty"`
	Engagement EngagementMetrics  `json:"engagement,omitempty"`
	Quality    QualityMetrics     `json:"response_quality,omitempty"`
	Scoring    ScoringBreakdown   `json:"scoring,omitempty"`
	Insights   []string           `json:"insights,omitempty"`
	Confidence float64            `json:"confidence,omitempty"`
	Metadata   AnalysisMetadata   `json:"metadata,omitempty"`
}

// sentimentEnvelope is the recognized root of an analysis reply. The
// sentiment_analysis field is required; a reply without it is a
// failure, which the pointer makes detectable.
type sentimentEnvelope struct {
	Analysis *SentimentReport `json:"sentiment_analysis"`
}

// SentimentArtifact is the stored output of an analysis run, replaced
// wholesale on re-analysis.
type SentimentArtifact struct {
	ID        uuid.UUID
	Report    SentimentReport
	CreatedAt time.Time
}
