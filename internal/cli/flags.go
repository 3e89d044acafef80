package cli

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile       string
	FromLang      string
	ToLang        string
	BatchFile     string
	Provider      string
	DataDir       string
	MonthlyLimit  int
	ShowHistory   bool
	ShowUsage     bool
	ClearHistory  bool
	Archive       bool
	ListLanguages bool
	NoCache       bool
	GUIMode       bool
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		FromLang:     "en",
		ToLang:       "th",
		Provider:     "google",
		MonthlyLimit: 500000,
	}
}
