package config

import (
	"fmt"
	"io/ioutil"
	"os"

	"gopkg.in/yaml.v2"
)

var (
	// EnvVars holds the hub credentials expected in the environment
	EnvVars = []string{
		"DHUS_USER",
		"DHUS_PASSWORD",
	}
)

type hubConfig struct {
	URL      string `yaml:"url"`
	user     string
	password string
}

type searchConfig struct {
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
	DaysBack  int     `yaml:"daysBack"`
}

type downloadConfig struct {
	Dir   string `yaml:"dir"`
	Unzip bool   `yaml:"unzip"`
}

// File contains all settings for one invocation
type File struct {
	Hub      hubConfig      `yaml:"hub"`
	Search   searchConfig   `yaml:"search"`
	Download downloadConfig `yaml:"download"`
}

// Default returns the settings used when no config file is given
func Default() *File {
	return &File{
		Hub: hubConfig{
			URL: "https://scihub.copernicus.eu/dhus",
		},
		Search: searchConfig{
			Latitude:  62.00,
			Longitude: 15.00,
			DaysBack:  7,
		},
		Download: downloadConfig{
			Dir: ".",
		},
	}
}

// New returns a pointer to a config object; file values overlay the
// defaults, credentials are loaded separately
func New(filePath string) (cfg *File, err error) {
	cfg = Default()

	if filePath == "" {
		return cfg, nil
	}

	yamlFile, err := ioutil.ReadFile(filePath)
	if err != nil {
		return cfg, err
	}

	err = yaml.Unmarshal(yamlFile, &cfg)
	if err != nil {
		return cfg, err
	}

	return cfg, nil
}

// LoadCredentials pulls the hub credentials from the environment
func (cfg *File) LoadCredentials() error {
	envs, err := getEnvs(EnvVars)
	if err != nil {
		return err
	}

	cfg.Hub.user = envs["DHUS_USER"]
	cfg.Hub.password = envs["DHUS_PASSWORD"]

	return nil
}

// SetCredentials lets you override the environment credentials,
// e.g. from command line flags
func (cfg *File) SetCredentials(user, password string) {
	cfg.Hub.user = user
	cfg.Hub.password = password
}

// GetHub returns the hub domain and credentials -error if credentials
// were neither loaded nor set
func (cfg *File) GetHub() (domain, user, password string, err error) {
	if cfg.Hub.user == "" || cfg.Hub.password == "" {
		return cfg.Hub.URL, cfg.Hub.user, cfg.Hub.password, fmt.Errorf("Couldn't find hub credentials")
	}
	return cfg.Hub.URL, cfg.Hub.user, cfg.Hub.password, nil
}

// GetSearch returns the default search position and lookback window
func (cfg *File) GetSearch() (lat, lon float64, daysBack int) {
	return cfg.Search.Latitude, cfg.Search.Longitude, cfg.Search.DaysBack
}

// GetDownload returns the destination directory and the unzip switch
func (cfg *File) GetDownload() (dir string, unzip bool) {
	return cfg.Download.Dir, cfg.Download.Unzip
}

func getEnvs(names []string) (map[string]string, error) {
	variables := make(map[string]string, len(names))
	for _, n := range names {
		variables[n] = os.Getenv(n)
		if variables[n] == "" {
			return variables, fmt.Errorf("Couldn't find env variable: %s", n)
		}
	}
	return variables, nil
}
