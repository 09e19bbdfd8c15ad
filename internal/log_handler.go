package internal

type LogHandler interface {
	Debug(text string)
	Warn(text string)
	Error(text string, err error)
	FeatureEvent(feature, runId, text string)
}
