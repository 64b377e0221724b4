package config

const (
	defaultConfigPath         = "~/.config/moviediary/config.toml"
	projectConfigName         = "moviediary.toml"
	defaultStorageFormat      = FormatJSON
	defaultStorageDir         = "~/.local/share/moviediary"
	defaultSearchThreshold    = 2
	defaultOMDbBaseURL        = "https://www.omdbapi.com/"
	defaultOMDbTimeoutSeconds = 10
	defaultWebsiteOutputPath  = "~/.local/share/moviediary/movie_website.html"
	defaultWebsiteTitle       = "My Movie Diary"
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
	defaultLogDir             = "~/.local/share/moviediary/logs"
)

// Storage formats understood by the storage package.
const (
	FormatJSON   = "json"
	FormatCSV    = "csv"
	FormatSQLite = "sqlite"
)

// Default returns a Config populated with repository defaults.
// Storage.Path is left empty so normalization can derive it from the format.
func Default() Config {
	return Config{
		Storage: Storage{},
		Search: Search{
			Threshold: defaultSearchThreshold,
		},
		OMDb: OMDb{
			BaseURL:        defaultOMDbBaseURL,
			TimeoutSeconds: defaultOMDbTimeoutSeconds,
		},
		Website: Website{
			OutputPath: defaultWebsiteOutputPath,
			Title:      defaultWebsiteTitle,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
			Dir:    defaultLogDir,
		},
	}
}

func defaultFileName(format string) string {
	switch format {
	case FormatCSV:
		return "movies.csv"
	case FormatSQLite:
		return "movies.db"
	default:
		return "movies.json"
	}
}
