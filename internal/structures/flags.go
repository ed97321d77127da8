package structures

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
}

// ChartFlags are the options of a single chart-generation run.
type ChartFlags struct {
	Inverted   bool
	Detailed   bool
	Video      bool
	Duration   int
	Pin        bool
	Send       bool
	StartDate  string
	EndDate    string
	ZoomedIn   bool
	Backup     bool
	ForceFetch bool
	Notify     bool
}
