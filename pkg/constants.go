package shared

const (
	ProjectID = "runtimeexceptions-project" // Can be overridden by env var in main if needed

	// Enrichment job topics. Each webhook event fans out to all three.
	TopicWeatherUpdate        = "topic-weather-update"
	TopicComparisonUpdate     = "topic-comparison-update"
	TopicTriathlonScoreUpdate = "topic-triathlon-score-update"

	CollectionRunners    = "runners"
	CollectionActivities = "activities"
	CollectionEvents     = "events"
	CollectionWeather    = "weather"
	CollectionAnimals    = "animals"
)

// EnrichmentTopics lists every job topic in fan-out order.
var EnrichmentTopics = []string{
	TopicWeatherUpdate,
	TopicComparisonUpdate,
	TopicTriathlonScoreUpdate,
}
