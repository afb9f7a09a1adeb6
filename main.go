package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	_ "github.com/joho/godotenv/autoload" // .env feeds ${VAR} expansion in the config
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"go-pianoroll/config"
	"go-pianoroll/debug"
	"go-pianoroll/history"
	"go-pianoroll/interaction"
	"go-pianoroll/midi"
	"go-pianoroll/notes"
	"go-pianoroll/theme"
	"go-pianoroll/transport"
	"go-pianoroll/tui"
)

var (
	Version = "dev"

	// Command-line configuration
	flags struct {
		config   string
		log      string
		palette  string
		midiPort string
		midiIn   string
		measures int
		tempo    int
	}
)

var rootCmd = &cobra.Command{
	Use:   "go-pianoroll",
	Short: "A terminal piano roll editor",
	Long: `go-pianoroll is a mouse-driven piano roll for the terminal.

Place, select, drag, resize and transpose notes on a pitch/time grid,
preview them on a MIDI output and enter notes from a MIDI keyboard.`,
	Version:      Version,
	SilenceUsage: true,
	RunE:         runPianoRoll,
}

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List MIDI input and output ports",
	RunE: func(cmd *cobra.Command, args []string) error {
		defer midi.CloseDriver()
		outs, err := midi.OutPorts()
		if err != nil {
			return err
		}
		ins, err := midi.InPorts()
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		fmt.Fprintln(w, "outputs:")
		for _, name := range outs {
			fmt.Fprintf(w, "  %s\n", name)
		}
		fmt.Fprintln(w, "inputs:")
		for _, name := range ins {
			fmt.Fprintf(w, "  %s\n", name)
		}
		return nil
	},
}

var initConfigCmd = &cobra.Command{
	Use:   "init-config",
	Short: "Write the effective configuration to the config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		path := flags.config
		if path == "" {
			if path, err = config.ConfigPath(); err != nil {
				return err
			}
		}
		if err := cfg.Save(path); err != nil {
			return fmt.Errorf("write config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flags.config, "config", "c", "",
		"Config file (default ~/.config/go-pianoroll/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&flags.log, "log", "l", "",
		"Write debug logs to specified file (empty disables)")
	rootCmd.PersistentFlags().StringVar(&flags.palette, "palette", "",
		"GIMP .gpl palette file (default built-in plasma)")
	rootCmd.PersistentFlags().StringVarP(&flags.midiPort, "midi-port", "p", "",
		"MIDI output port for note previews")
	rootCmd.PersistentFlags().StringVarP(&flags.midiIn, "midi-in", "i", "",
		"MIDI input port for step entry")
	rootCmd.PersistentFlags().IntVarP(&flags.measures, "measures", "m", 0,
		"Song length in measures")
	rootCmd.PersistentFlags().IntVarP(&flags.tempo, "tempo", "t", 0,
		"Tempo in BPM")

	rootCmd.AddCommand(portsCmd, initConfigCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies explicitly set flags
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(flags.config)
	if err != nil {
		return nil, err
	}
	fl := cmd.Flags()
	if fl.Changed("midi-port") {
		cfg.MIDI.Port = flags.midiPort
	}
	if fl.Changed("midi-in") {
		cfg.MIDI.Input = flags.midiIn
	}
	if fl.Changed("measures") {
		cfg.Grid.TotalMeasures = flags.measures
	}
	if fl.Changed("tempo") {
		cfg.Transport.Tempo = flags.tempo
	}
	if fl.Changed("palette") {
		cfg.UI.Palette = flags.palette
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

func runPianoRoll(cmd *cobra.Command, args []string) error {
	if flags.log != "" {
		if err := debug.Enable(flags.log); err != nil {
			return err
		}
		defer debug.Disable()
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := cfg.Editor.Options()
	if err != nil {
		return err
	}

	palette := theme.DefaultPalette()
	if cfg.UI.Palette != "" {
		if palette, err = theme.LoadGPL(cfg.UI.Palette); err != nil {
			return err
		}
	}

	manager := notes.NewManager()
	tp := transport.New(cfg.Transport.Tempo, cfg.Grid.TotalBeats())
	defer midi.CloseDriver()

	// MIDI is optional: a missing port leaves the editor silent
	var output string
	if cfg.MIDI.Port != "" {
		aud, err := midi.Open(cfg.MIDI.Port, cfg.MIDI.Channel, tp.BeatDuration)
		if err != nil {
			debug.Log("midi", "preview disabled: %v", err)
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		} else {
			aud.SetGate(time.Duration(cfg.MIDI.PreviewMs) * time.Millisecond)
			manager.SetAuditioner(aud)
			defer aud.Silence()
			output = cfg.MIDI.Port
		}
	}

	var kb *midi.Keyboard
	if cfg.MIDI.Input != "" {
		if kb, err = midi.OpenKeyboard(cfg.MIDI.Input); err != nil {
			debug.Log("midi", "step input disabled: %v", err)
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		} else {
			defer kb.Close()
		}
	}

	log := history.New(history.DefaultLimit)
	ctrl, err := interaction.New(cfg.Grid, manager, opts)
	if err != nil {
		return err
	}
	ctrl.SetRecorder(log)
	ctrl.SetHistory(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	seek := interaction.NewSeekStrip(ctx, tp, ctrl)
	ctrl.Overlay().Register(seek)

	m := tui.NewModel(ctrl, tp, theme.New(palette))
	m.History = log
	m.Keyboard = kb
	m.Seek = seek
	m.Output = output
	m.SetConfig(cfg)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())

	// the watcher lives as long as the program
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("run: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		err := config.Watch(gctx, flags.config, func(c *config.Config) {
			p.Send(tui.ConfigMsg{Config: c})
		})
		if err != nil {
			debug.Log("config", "live reload off: %v", err)
		}
		return nil
	})
	return g.Wait()
}
