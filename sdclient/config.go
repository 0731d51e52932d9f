package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/jrick/flagfile"
)

const (
	appName = "sdclient"
)

var (
	// Error to signal loadConfig() completed everything the cmd had to do
	// and main() should exit.
	errCmdDone = errors.New("cmd done")
)

type errConfigDoesNotExist struct {
	configPath string
}

func (err errConfigDoesNotExist) Error() string {
	return fmt.Sprintf("config file %q does not exist", err.configPath)
}

type config struct {
	ServerAddr  string
	Root        string
	LogFile     string
	MaxLogFiles int
	DebugLevel  string
	UserID      string
	Username    string
	RefreshSecs int
	PageLimit   int
}

func defaultAppDataDir(homeDir string) string {
	switch runtime.GOOS {
	// Attempt to use the LOCALAPPDATA or APPDATA environment variable on
	// Windows.
	case "windows":
		// Windows XP and before didn't have a LOCALAPPDATA, so fallback
		// to regular APPDATA when LOCALAPPDATA is not set.
		appData := os.Getenv("LOCALAPPDATA")
		if appData == "" {
			appData = os.Getenv("APPDATA")
		}

		if appData != "" {
			return filepath.Join(appData, appName)
		}

	case "darwin":
		if homeDir != "" {
			return filepath.Join(homeDir, "Library",
				"Application Support", appName)
		}

	case "plan9":
		if homeDir != "" {
			return filepath.Join(homeDir, appName)
		}

	default:
		if homeDir != "" {
			return filepath.Join(homeDir, "."+appName)
		}
	}

	return filepath.Join(".", appName)
}

func expandPath(homeDir, path string) string {
	if len(path) > 0 && path[0] == '~' {
		path = filepath.Join(homeDir, path[1:])
	}

	return path
}

// defaultRootDir returns the default root dir for data for the given
// cfgFilePath.
func defaultRootDir(cfgFilePath string) string {
	return filepath.Dir(cfgFilePath)
}

// sessionFilePath is where the restored session is persisted, given the root
// data dir.
func sessionFilePath(rootDir string) string {
	return filepath.Join(rootDir, "session.json")
}

func loadConfig() (*config, error) {
	// Setup defaults.
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	defaultAppDir := defaultAppDataDir(homeDir)
	defaultCfgFile := filepath.Join(defaultAppDir, appName+".conf")
	defaultLogFile := filepath.Join(defaultAppDir, "applogs", appName+".log")
	defaultDebugLevel := "info"

	// Parse CLI arguments.
	fs := flag.NewFlagSet("CLI Arguments", flag.ContinueOnError)
	flagVersion := fs.Bool("version", false, "Display current version and exit")
	flagCfgFile := fs.String("cfg", defaultCfgFile, "Config file to load")
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, errCmdDone
		}
		return nil, err
	}

	if *flagVersion {
		fmt.Println("Version: " + version())
		return nil, errCmdDone
	}

	// Make sure cfgFile is not empty.
	cfgFile := *flagCfgFile
	if cfgFile == "" {
		cfgFile = defaultCfgFile
	}
	cfgFile = expandPath(homeDir, cfgFile)

	// Open config file.
	f, err := os.Open(cfgFile)
	if os.IsNotExist(err) {
		return nil, errConfigDoesNotExist{configPath: cfgFile}
	} else if err != nil {
		return nil, err
	}
	defer f.Close()

	// Define config file flags.
	fs = flag.NewFlagSet("Config Options", flag.ContinueOnError)
	flagServerAddr := fs.String("server", "http://127.0.0.1:8080/api", "Address of the sales backend")
	flagRootDir := fs.String("root", defaultAppDir, "Root of all app data")
	flagLogFile := fs.String("logfile", defaultLogFile, "Log file location")
	flagMaxLogFiles := fs.Int("maxlogfiles", 0, "Max log files")
	flagDebugLevel := fs.String("debuglevel", defaultDebugLevel, "Debug level for logging")
	flagUserID := fs.String("userid", "", "Default user id for orders and cart")
	flagUsername := fs.String("username", "", "Username to offer at the login prompt")
	flagRefreshSecs := fs.Int("refreshsecs", 30, "Seconds between page refreshes (0 disables)")
	flagPageLimit := fs.Int("pagelimit", 50, "Max rows fetched per listing")

	// Load config from file.
	parser := flagfile.Parser{
		AllowUnknown: true,
	}
	if err := parser.Parse(f, fs); err != nil {
		return nil, fmt.Errorf("unable to parse config file %s: %w",
			cfgFile, err)
	}

	rootDir := expandPath(homeDir, *flagRootDir)
	logFile := expandPath(homeDir, *flagLogFile)

	if !strings.HasPrefix(*flagServerAddr, "http://") &&
		!strings.HasPrefix(*flagServerAddr, "https://") {
		return nil, fmt.Errorf("server address %q is not an http(s) URL",
			*flagServerAddr)
	}

	return &config{
		ServerAddr:  strings.TrimRight(*flagServerAddr, "/"),
		Root:        rootDir,
		LogFile:     logFile,
		MaxLogFiles: *flagMaxLogFiles,
		DebugLevel:  *flagDebugLevel,
		UserID:      *flagUserID,
		Username:    *flagUsername,
		RefreshSecs: *flagRefreshSecs,
		PageLimit:   *flagPageLimit,
	}, nil
}

// saveNewConfig writes a fresh config file with the passed settings filled
// in.
func saveNewConfig(cfgFile string, cfg *config) error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	defaultAppDir := defaultAppDataDir(homeDir)
	defaultCfgFile := filepath.Join(defaultAppDir, appName+".conf")

	if cfgFile == "" {
		cfgFile = defaultCfgFile
	}

	// Override the dirs when saving a new config. We also replace the home
	// dir prefix by "~" in the saved config.
	cfg.Root = defaultRootDir(cfgFile)
	if cfg.Root[0] != '~' && strings.HasPrefix(cfg.Root, homeDir) {
		cfg.Root = "~" + cfg.Root[len(homeDir):]
	}
	cfg.LogFile = filepath.Join(cfg.Root, "applogs", appName+".log")

	tmpl, err := template.New("configfile").Parse(defaultConfigFileContent)
	if err != nil {
		return err
	}

	var generated bytes.Buffer
	if err := tmpl.Execute(&generated, cfg); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(cfgFile), 0o700); err != nil {
		return fmt.Errorf("unable to create data dir: %v", err)
	}

	return os.WriteFile(cfgFile, generated.Bytes(), 0o600)
}

const defaultConfigFileContent = `
[default]

# Address of the sales backend API.
server = {{.ServerAddr}}

# Root of all app data.
root = {{.Root}}

# Default user id used by the orders and cart pages.
{{if .UserID}}userid = {{.UserID}}{{else}}# userid = {{end}}

# Username offered at the login prompt.
{{if .Username}}username = {{.Username}}{{else}}# username = {{end}}

# Seconds between automatic refreshes of the active page. 0 disables.
refreshsecs = {{.RefreshSecs}}

[log]

# Where to save log files.
logfile = {{.LogFile}}
maxlogfiles = {{.MaxLogFiles}}

# Log level of the subsystems.
debuglevel = {{.DebugLevel}}
`
