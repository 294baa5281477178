package config

//go:generate go run github.com/ecordell/optgen -output zz_generated.configuration.go . Configuration Server Agent Authentication

type Configuration struct {
	Server    Server         `debugmap:"visible"`
	Agent     Agent          `debugmap:"visible"`
	Auth      Authentication `debugmap:"visible"`
	LogFormat string         `debugmap:"visible" default:"console"`
	LogLevel  string         `debugmap:"visible" default:"info"`
}

type Server struct {
	ServerMode string `debugmap:"visible" default:"dev"`
	HTTPPort   int    `debugmap:"visible" default:"8089"`
}

type Agent struct {
	ID             string `debugmap:"visible"`
	Version        string `debugmap:"visible" default:"v0.0.0"`
	NumWorkers     int    `debugmap:"visible" default:"10"`
	DataFolder     string `debugmap:"visible"`
	FilesystemRoot string `debugmap:"visible"`
}

type Authentication struct {
	Enabled        bool   `debugmap:"visible" default:"false"`
	SecretFilePath string `debugmap:"hidden"`
}
