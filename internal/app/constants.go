package app

const (
	Name               = "signalbars"
	SourceURL          = "https://git.skobk.in/skobkin/signalbars"
	ConfigFilename     = "config.json"
	AttributesFilename = "indicator.yaml"
	DBFilename         = "app.db"
	LogFilename        = "app.log"
	StateHistoryLoad   = 50
	WriterQueueSize    = 256
)
