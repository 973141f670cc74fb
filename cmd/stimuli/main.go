// ABOUTME: Entry point for the stimuli CLI
// ABOUTME: Generates, plays and saves auditory stimuli from the terminal
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/viper"

	"github.com/mscheltienne/stimuli/internal/version"
	"github.com/mscheltienne/stimuli/pkg/audio"
	"github.com/mscheltienne/stimuli/pkg/audio/backend"
)

var (
	configPath = flag.String("config", "", "Optional YAML config file with defaults")
	logFile    = flag.String("log-file", "", "Log file path (default: stderr only)")
	deviceName = flag.String("device", "", "Output device: malgo, oto, portaudio")
	volume     = flag.Float64("volume", -1, "Volume in [0, 100]")
	sampleRate = flag.Int("sample-rate", 0, "Sample rate in Hz")
	duration   = flag.Float64("duration", 0, "Stimulus duration in seconds")
	when       = flag.Duration("when", 0, "Delay before audible onset, e.g. 200ms")
	savePath   = flag.String("save", "", "Write the stimulus to a WAV file instead of playing")

	frequency = flag.Float64("frequency", 0, "Tone frequency in Hz")
	color     = flag.String("color", "", "Noise color: white, pink, blue, violet, brown")
	seed      = flag.Uint64("seed", 0, "Noise generator seed (0: random)")
	fc        = flag.Float64("fc", 0, "AM carrier frequency in Hz")
	fm        = flag.Float64("fm", 0, "AM modulation frequency in Hz")
	method    = flag.String("method", "", "AM method: conventional, dsbsc")
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: stimuli [flags] <command> [args]

Commands:
  tone            play or save a pure tone
  noise           play or save a colored noise
  am              play or save an amplitude modulated sound
  play <file>     play an audio file (wav, mp3, flac, opus)
  devices         list playback devices
  version         print the version

Flags:
`)
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666)
		if err != nil {
			log.Fatalf("error opening log file: %v", err)
		}
		defer func() { _ = f.Close() }()
		log.SetOutput(io.MultiWriter(os.Stderr, f))
	}

	loadConfig(*configPath)

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	var err error
	switch flag.Arg(0) {
	case "tone":
		err = runStimulus(func(p audio.Player) (audio.Playable, error) {
			s, err := audio.NewTone(audio.ToneConfig{
				Volume:     []float64{volumeSetting()},
				SampleRate: int(setting(float64(*sampleRate), "sample-rate")),
				Duration:   setting(*duration, "duration"),
				Frequency:  *frequency,
				Player:     p,
			})
			return playableOrNil(s, err)
		})
	case "noise":
		err = runStimulus(func(p audio.Player) (audio.Playable, error) {
			s, err := audio.NewNoise(audio.NoiseConfig{
				Volume:     []float64{volumeSetting()},
				SampleRate: int(setting(float64(*sampleRate), "sample-rate")),
				Duration:   setting(*duration, "duration"),
				Color:      audio.Color(stringSetting(*color, "color")),
				Seed:       *seed,
				Player:     p,
			})
			return playableOrNil(s, err)
		})
	case "am":
		err = runStimulus(func(p audio.Player) (audio.Playable, error) {
			s, err := audio.NewSoundAM(audio.SoundAMConfig{
				Volume:              []float64{volumeSetting()},
				SampleRate:          int(setting(float64(*sampleRate), "sample-rate")),
				Duration:            setting(*duration, "duration"),
				FrequencyCarrier:    *fc,
				FrequencyModulation: *fm,
				Method:              audio.AMMethod(stringSetting(*method, "method")),
				Player:              p,
			})
			return playableOrNil(s, err)
		})
	case "play":
		if flag.NArg() < 2 {
			log.Fatal("play requires a file argument")
		}
		err = runStimulus(func(p audio.Player) (audio.Playable, error) {
			s, err := audio.NewSound(audio.SoundConfig{Path: flag.Arg(1), Player: p})
			return playableOrNil(s, err)
		})
	case "devices":
		err = listDevices()
	case "version":
		fmt.Printf("%s %s\n", version.Product, version.Version)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("stimuli: %v", err)
	}
}

// loadConfig sets the viper defaults and merges an optional config file.
func loadConfig(path string) {
	viper.SetDefault("volume", 70.0)
	viper.SetDefault("sample-rate", audio.DefaultSampleRate)
	viper.SetDefault("duration", audio.DefaultDuration)
	viper.SetDefault("color", string(audio.White))
	viper.SetDefault("method", string(audio.Conventional))
	viper.SetDefault("device", "malgo")
	if path == "" {
		return
	}
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("error reading config %s: %v", path, err)
	}
}

// setting resolves a numeric flag against the viper default: flags left at
// their sentinel fall back to the configured value.
func setting(flagValue float64, key string) float64 {
	if flagValue <= 0 {
		return viper.GetFloat64(key)
	}
	return flagValue
}

// volumeSetting resolves the volume flag, whose sentinel is negative since 0
// is a valid (silent) volume.
func volumeSetting() float64 {
	if *volume < 0 {
		return viper.GetFloat64("volume")
	}
	return *volume
}

// stringSetting resolves a string flag against the viper default.
func stringSetting(flagValue, key string) string {
	if flagValue == "" {
		return viper.GetString(key)
	}
	return flagValue
}

// playableOrNil keeps typed-nil pointers out of the Playable interface.
func playableOrNil(s audio.Playable, err error) (audio.Playable, error) {
	if err != nil {
		return nil, err
	}
	return s, nil
}

// runStimulus builds the stimulus against the configured backend, then plays
// it to completion or saves it.
func runStimulus(build func(audio.Player) (audio.Playable, error)) error {
	if *savePath != "" {
		s, err := build(nil)
		if err != nil {
			return err
		}
		return s.Save(*savePath, true)
	}

	dev, err := newDevice(stringSetting(*deviceName, "device"))
	if err != nil {
		return err
	}
	be, err := backend.New(backend.Config{Device: dev})
	if err != nil {
		return err
	}
	defer func() { _ = be.Close() }()

	s, err := build(be)
	if err != nil {
		return err
	}
	log.Printf("playing %s for %.2fs at %d Hz", s.Name(), s.Duration(), s.SampleRate())
	return s.Play(*when, true)
}

// newDevice maps a device name to an output device implementation.
func newDevice(name string) (backend.Device, error) {
	switch name {
	case "malgo":
		return backend.NewMalgoDevice(), nil
	case "oto":
		return backend.NewOtoDevice(), nil
	case "portaudio":
		return backend.NewPortAudioDevice(), nil
	default:
		return nil, fmt.Errorf("unknown device %q", name)
	}
}

// listDevices prints the host's playback devices.
func listDevices() error {
	names, err := backend.ListPlaybackDevices()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Println("no playback devices found")
		return nil
	}
	for i, name := range names {
		fmt.Printf("%d: %s\n", i, name)
	}
	return nil
}
