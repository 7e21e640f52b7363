package connectors

const (
	TopicIndicatorState = "indicator.state"
	TopicInvalidLevel   = "indicator.invalid_level"
)
