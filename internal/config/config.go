package config

import (
	"flag"
	"os"
	"runtime"
	"strings"
	"time"

	"vimeo-albums/internal/api"
)

// TokenEnv names the environment variable holding the API access token.
const TokenEnv = "VIMEO_TOKEN"

// Config contains runtime options for the album browser.
type Config struct {
	BaseURL        string
	Token          string
	User           string
	Albums         string
	ChooseAlbums   bool
	RefreshAlbums  bool
	AlbumCachePath string
	AlbumCacheTTL  time.Duration
	StatePath      string
	PicturesDir    string
	Workers        int
	HTTPTimeout    time.Duration
	Verbose        bool
}

// Parse reads CLI flags into Config.
func Parse() Config {
	cfg, err := ParseArgs(os.Args[1:], os.Getenv)
	if err != nil {
		// The flag set has already printed the error and usage.
		os.Exit(2)
	}
	return cfg
}

// ParseArgs reads args into Config, consulting getenv for the token when the
// flag is not given.
func ParseArgs(args []string, getenv func(string) string) (Config, error) {
	fs := flag.NewFlagSet("albums", flag.ContinueOnError)

	defaultWorkers := runtime.NumCPU()
	if defaultWorkers < 2 {
		defaultWorkers = 2
	}

	baseURL := fs.String("base-url", api.DefaultBaseURL, "API base URL")
	token := fs.String("token", "", "API access token (default: $"+TokenEnv+")")
	user := fs.String("user", "/me", "URI of the user whose albums are listed")
	albums := fs.String("albums", "", "comma-separated album names or URIs to inspect")
	chooseAlbums := fs.Bool("choose-albums", false, "interactively choose albums to inspect")
	refreshAlbums := fs.Bool("refresh-albums", false, "fetch album list from API and update cache")
	albumCachePath := fs.String("album-cache", "", "album cache file path (default: <user-cache-dir>/vimeo-albums/albums_cache.json)")
	albumCacheTTL := fs.Duration("album-cache-ttl", 24*time.Hour, "reuse the cached album list for this long (0 disables expiry)")
	statePath := fs.String("state", "", "seen-albums state file (default: next to the album cache)")
	picturesDir := fs.String("pictures", "", "download the largest picture of each album into this directory")
	workers := fs.Int("workers", defaultWorkers, "number of concurrent album fetches")
	httpTimeout := fs.Duration("http-timeout", 30*time.Second, "HTTP request timeout")
	verbose := fs.Bool("verbose", false, "enable debug logging")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *workers < 1 {
		*workers = 1
	}
	if strings.TrimSpace(*token) == "" && getenv != nil {
		*token = getenv(TokenEnv)
	}

	return Config{
		BaseURL:        *baseURL,
		Token:          strings.TrimSpace(*token),
		User:           *user,
		Albums:         *albums,
		ChooseAlbums:   *chooseAlbums,
		RefreshAlbums:  *refreshAlbums,
		AlbumCachePath: *albumCachePath,
		AlbumCacheTTL:  *albumCacheTTL,
		StatePath:      *statePath,
		PicturesDir:    *picturesDir,
		Workers:        *workers,
		HTTPTimeout:    *httpTimeout,
		Verbose:        *verbose,
	}, nil
}
