package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/salesdesk/salesdesk/client"
	"github.com/salesdesk/salesdesk/session"
)

func realMain() error {
	cfg, err := loadConfig()
	var errCfgNotExist errConfigDoesNotExist
	if errors.As(err, &errCfgNotExist) {
		// First run: write a default config and load it.
		defaults := &config{
			ServerAddr:  "http://127.0.0.1:8080/api",
			DebugLevel:  "info",
			RefreshSecs: 30,
			PageLimit:   50,
		}
		if err := saveNewConfig(errCfgNotExist.configPath, defaults); err != nil {
			return fmt.Errorf("unable to write default config: %w", err)
		}
		fmt.Println("Wrote default config to", errCfgNotExist.configPath)
		cfg, err = loadConfig()
	}
	if errors.Is(err, errCmdDone) {
		return nil
	}
	if err != nil {
		return err
	}

	var p *tea.Program
	sendMsg := func(msg tea.Msg) {
		go func() { p.Send(msg) }()
	}

	logBknd, err := newLogBackend(func(line string) {
		sendMsg(logUpdated{line: line})
	}, nil, cfg.LogFile, cfg.DebugLevel, cfg.MaxLogFiles)
	if err != nil {
		return err
	}
	defer logBknd.close()

	c, err := client.New(client.Config{
		BaseURL: cfg.ServerAddr,
		Log:     logBknd.logger("CLNT"),
	})
	if err != nil {
		return err
	}

	sess := session.NewStore(sessionFilePath(cfg.Root), logBknd.logger("SESS"))
	if err := sess.Load(); err != nil {
		// A corrupt session file shouldn't prevent startup.
		logBknd.logger("SESS").Warnf("Discarding saved session: %v", err)
	}

	as := newAppState(cfg, c, sess, logBknd)
	as.sendMsg = sendMsg
	logBknd.errorMsg = as.errorLogMsg
	defer as.cancel()

	cw, _ := newConsoleWindow(as)
	p = tea.NewProgram(cw, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func main() {
	if err := realMain(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
