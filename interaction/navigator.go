package interaction

//go:generate mockgen -destination navigator_mock.go -package interaction . Navigator

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Navigator opens the profile of a clicked user.
type Navigator interface {
	OpenProfile(id int64) error
}

func ProfilePath(id int64) string {
	return fmt.Sprintf("/internal/users/%d", id)
}

// BrowserNavigator opens profiles in the platform web browser.
type BrowserNavigator struct {
	BaseURL string
	// Command builds the opener command, exec.Command when nil.
	Command func(name string, arg ...string) *exec.Cmd
}

func (b BrowserNavigator) OpenProfile(id int64) error {
	url := b.BaseURL + ProfilePath(id)
	command := b.Command
	if command == nil {
		command = exec.Command
	}
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "linux", "freebsd", "openbsd":
		cmd = command("xdg-open", url)
	case "darwin":
		cmd = command("open", url)
	case "windows":
		cmd = command("cmd", "/c", "start", url)
	default:
		return errors.Errorf("unsupported platform: %s", runtime.GOOS)
	}
	log.Info().Msgf("opening profile %s", url)
	if err := cmd.Start(); err != nil {
		return errors.Wrapf(err, "open %s", url)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

// LogNavigator only logs the profile it would open, for headless runs.
type LogNavigator struct {
	BaseURL string
}

func (l LogNavigator) OpenProfile(id int64) error {
	log.Info().Msgf("profile %s%s", l.BaseURL, ProfilePath(id))
	return nil
}
