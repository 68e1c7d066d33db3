package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/oriumgames/psim"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var CLI struct {
	Debug bool `help:"Whether to enable debug logging."`

	Run struct {
		Configs  []string      `arg:"" optional:"" name:"configs" help:"Configuration files, applied in order over the defaults." type:"existingfile"`
		Level    string        `help:"Level file to harvest spawn points from. Defaults to the built-in hub." type:"existingfile"`
		Bots     int           `help:"Number of scripted actors to spawn." default:"4"`
		Duration time.Duration `help:"How long to run. Zero runs until interrupted." default:"10s"`
		Floor    float64       `help:"Half the side length of the floor." default:"8"`
		Seed     int64         `help:"Seed for the bots' input scripts." default:"1"`
	} `cmd:"" help:"Run a headless simulation with scripted bots."`

	Config struct {
	} `cmd:"" help:"Write the default configuration to standard output."`

	Version struct {
	} `cmd:"" help:"Print version information and exit."`
}

// writeConfig encodes the default configuration to w.
func writeConfig(w io.Writer) error {
	data, err := psim.DefaultConfig().Marshal()
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("could not write config: %w", err)
	}
	return nil
}

func writeError(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}

func main() {
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	log.Logger = log.Output(consoleWriter)

	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	ctx := kong.Parse(&CLI,
		kong.Name("psim"),
		kong.Description("headless player simulation"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	if CLI.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Warn().Msg("debug logging enabled")
	}

	switch ctx.Command() {
	case "run", "run <configs>":
		opts := runOptions{
			configs:  CLI.Run.Configs,
			level:    CLI.Run.Level,
			bots:     CLI.Run.Bots,
			duration: CLI.Run.Duration,
			floor:    CLI.Run.Floor,
			seed:     CLI.Run.Seed,
		}
		if err := runCommand(opts); err != nil {
			writeError(err)
		}
	case "config":
		if err := writeConfig(os.Stdout); err != nil {
			writeError(err)
		}
	case "version":
		fmt.Printf("psim %s\n", psim.Version)
	}
}
