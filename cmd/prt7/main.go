// Command prt7 is the PRT-7 decoding console: it attaches to the serial
// link carrying a rotor-ciphered transmission, decodes it frame by
// frame, and prints the recovered message when the sender signals the
// end of the transmission.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/banshee-data/prt7/internal/cliconfig"
	"github.com/banshee-data/prt7/internal/framelog"
	"github.com/banshee-data/prt7/internal/linemux"
	"github.com/banshee-data/prt7/internal/session"
)

const longHelp = `prt7 attaches to the serial port the PRT-7 sender is wired to, reads
the line-delimited frame stream, and decodes it through the rotating
substitution cipher. One invocation handles one transmission: the
session ends when the sender emits the FIN marker, and the decoded
message is printed to stdout.

Frames:
  L,<char>   decode <char> through the rotor and append it
  M,<int>    rotate the rotor by a signed amount
  I...       start-of-transmission marker
  FIN        end-of-transmission marker

Malformed frames are reported and skipped; they never end the session.`

const exampleUsage = `  prt7 --port /dev/ttyUSB0
  prt7 --port /dev/ttyUSB0 --baud 9600 --db frames.db
  prt7 --fixtures testdata/transmission.txt -q`

// replayDelay paces fixture replay so the console output is readable;
// it has no protocol meaning.
const replayDelay = 10 * time.Millisecond

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	log := cliconfig.Logger()

	root := &cobra.Command{
		Use:          "prt7",
		Short:        "Decode PRT-7 rotor-ciphered transmissions from a serial link",
		Long:         longHelp,
		Example:      exampleUsage,
		Version:      fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Build the set of flags the operator set explicitly; those
			// win over file and environment values.
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}
			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				cliconfig.ApplyFileConfig(&cfg, fc, changed)
			}
			cliconfig.ApplyEnvConfig(&cfg, changed)

			if err := cfg.Validate(); err != nil {
				return err
			}

			level, err := zerolog.ParseLevel(cfg.LogLevel)
			if err != nil {
				return err
			}
			log = log.Level(level)

			return run(cmd.Context(), log, cfg)
		},
	}

	flags := root.Flags()
	flags.StringVarP(&cfgPath, "config", "c", "", "path to config file (default $HOME/.prt7/config.toml)")
	flags.StringVar(&cfg.Port, "port", cfg.Port, "serial port the sender is attached to")
	flags.IntVar(&cfg.BaudRate, "baud", cfg.BaudRate, "baud rate (default 9600)")
	flags.IntVar(&cfg.DataBits, "data-bits", cfg.DataBits, "data bits, 5-8 (default 8)")
	flags.IntVar(&cfg.StopBits, "stop-bits", cfg.StopBits, "stop bits, 1 or 2 (default 1)")
	flags.StringVar(&cfg.Parity, "parity", cfg.Parity, "parity: N, E or O (default N)")
	flags.StringVar(&cfg.Fixtures, "fixtures", cfg.Fixtures, "replay a recorded transmission file instead of opening a port")
	flags.StringVar(&cfg.DBPath, "db", cfg.DBPath, "record a frame audit log in this sqlite database")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: trace, debug, info, warn, error")
	flags.BoolVarP(&cfg.Quiet, "quiet", "q", cfg.Quiet, "suppress per-frame trace output")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("prt7 failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, log zerolog.Logger, cfg cliconfig.Config) error {
	var mux linemux.Mux
	source := cfg.Port
	if cfg.Fixtures != "" {
		data, err := os.ReadFile(cfg.Fixtures)
		if err != nil {
			return fmt.Errorf("open fixtures file: %w", err)
		}
		mux = linemux.NewReplayLineMux(data, replayDelay)
		source = cfg.Fixtures
		log.Info().Str("fixtures", cfg.Fixtures).Msg("replaying recorded transmission")
	} else {
		m, err := linemux.NewRealLineMux(cfg.Port, cfg.PortOptions())
		if err != nil {
			return fmt.Errorf("open serial port %s: %w", cfg.Port, err)
		}
		mux = m
		log.Info().Str("port", cfg.Port).Msg("serial link open")
	}
	defer mux.Close()

	var flog *framelog.DB
	if cfg.DBPath != "" {
		var err error
		flog, err = framelog.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open frame log: %w", err)
		}
		defer flog.Close()
	}

	// The monitor gets its own cancel so a post-FIN delivery blocked on
	// a finished session cannot wedge shutdown.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var ctrl *session.Controller
	seq := 0
	trace := func(t session.Trace) {
		seq++
		if !cfg.Quiet {
			fmt.Println(t.String())
		}
		if flog != nil {
			if err := flog.RecordFrame(ctrl.ID, seq, t.RawLine, string(t.Kind), t.Detail()); err != nil {
				log.Warn().Err(err).Msg("failed to record frame")
			}
		}
	}
	end := func(message string, complete bool) {
		if !complete {
			log.Warn().Msg("transmission incomplete; rendering what was decoded")
		}
		fmt.Println("--- decoded message ---")
		fmt.Println(message)
	}
	ctrl = session.NewController(log, trace, end)

	if flog != nil {
		if err := flog.BeginSession(ctrl.ID, source); err != nil {
			return fmt.Errorf("begin session record: %w", err)
		}
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := mux.Monitor(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("serial monitor stopped")
		}
	}()

	id, lines := mux.Subscribe()

	err := ctrl.Run(ctx, lines)
	complete := err == nil

	// Stop the monitor before unsubscribing so a blocked delivery
	// releases the subscriber lock first.
	cancel()
	mux.Unsubscribe(id)
	wg.Wait()

	if flog != nil {
		linesSeen, framesOK, framesBad := ctrl.Stats()
		if e := flog.EndSession(ctrl.ID, complete, linesSeen, framesOK, framesBad); e != nil {
			log.Warn().Err(e).Msg("failed to finalize session record")
		}
	}

	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled):
		// operator interrupt: the partial message was already rendered
		return nil
	default:
		return err
	}
}
