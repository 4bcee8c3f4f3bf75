package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/leandrodaf/midigate/internal/filter"
	"github.com/leandrodaf/midigate/internal/logger"
	"github.com/leandrodaf/midigate/internal/smffile"
	"github.com/leandrodaf/midigate/sdk/contracts"
	"github.com/leandrodaf/midigate/sdk/midi"
)

func main() {
	var (
		device  = flag.String("device", "", "input device name (default: first device)")
		mode    = flag.String("mode", "IGNORE", "gating mode: NOTE_ON, NOTE_OFF or IGNORE")
		channel = flag.String("channel", "", "admissible channels, e.g. \"0-3,9\"")
		control = flag.String("control", "", "admissible control numbers")
		note    = flag.String("note", "", "admissible note numbers")
		value   = flag.String("value", "", "admissible velocities or control values")
		normal  = flag.String("normalized", "", "admissible normalized values (0-1)")
		replay  = flag.String("replay", "", "filter the events of a MIDI file instead of a device")
		ez      = flag.Bool("ez", false, "treat channel, control, note and value as exact integers (EZ filter)")
	)
	flag.Parse()

	log := logger.NewZapLogger()
	defer log.Sync()

	gating, err := contracts.ParseGatingMode(*mode)
	if err != nil {
		log.Error("Invalid gating mode", log.Field().Error("error", err))
		os.Exit(2)
	}

	var (
		f         *filter.Filter
		filterOpt contracts.Option
	)
	if *ez {
		config, err := ezConfig(gating, *channel, *control, *note, *value)
		if err != nil {
			log.Error("Invalid EZ filter value", log.Field().Error("error", err))
			os.Exit(2)
		}
		f, filterOpt = filter.NewEZ(config), contracts.WithEZFilter(config)
	} else {
		config := contracts.FilterConfig{
			Mode:       gating,
			Channel:    *channel,
			Control:    *control,
			Note:       *note,
			Value:      *value,
			Normalized: *normal,
		}
		f, filterOpt = filter.NewRange(config), contracts.WithFilter(config)
	}

	if *replay != "" {
		events, err := smffile.Load(*replay)
		if err != nil {
			log.Error("Failed to load MIDI file", log.Field().Error("error", err))
			return
		}
		for _, ev := range smffile.Replay(events, f) {
			fmt.Printf("%d\t%v\n", ev.Tick, ev.Snapshot)
		}
		return
	}

	client, err := midi.NewMIDIClient(
		contracts.WithLogger(log),
		contracts.WithLogLevel(contracts.InfoLevel),
		filterOpt,
	)
	if err != nil {
		log.Error("Failed to initialize MIDI client", log.Field().Error("error", err))
		return
	}
	defer client.Stop()

	devices, err := client.ListDevices()
	if err != nil || len(devices) == 0 {
		log.Error("No MIDI devices found or error listing devices", log.Field().Error("error", err))
		return
	}
	fmt.Println("Available MIDI devices:", devices)

	name := *device
	if name == "" {
		name = devices[0].Name
	}
	if err = client.SelectDevice(name); err != nil {
		log.Error("Failed to select MIDI device", log.Field().Error("error", err))
		return
	}

	eventChannel := make(chan contracts.Trigger, 100)
	client.StartCapture(eventChannel)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	fmt.Println("Capturing MIDI events... Press Ctrl+C to exit.")
	for {
		select {
		case event := <-eventChannel:
			s := event.Snapshot
			log.Info("MIDI Event",
				log.Field().Uint64("Timestamp", event.Timestamp),
				log.Field().Bool("Trigger", event.Admit),
				log.Field().Bool("On", s.IsNoteOn()),
				log.Field().Int("Channel", s.Channel()),
				log.Field().Int("Control", s.Control()),
				log.Field().Int("Note", s.Note()),
				log.Field().Int("Value", s.Value()),
				log.Field().Float64("Normalized", s.Normalized()),
			)
		case <-interrupt:
			return
		}
	}
}

// ezConfig reads integer thresholds for the EZ filter. Empty text means
// don't care.
func ezConfig(mode contracts.GatingMode, channel, control, note, value string) (contracts.EZConfig, error) {
	config := contracts.EZConfig{Mode: mode}
	fields := []struct {
		name string
		text string
		dst  *int
	}{
		{"channel", channel, &config.Channel},
		{"control", control, &config.Control},
		{"note", note, &config.Note},
		{"value", value, &config.Value},
	}
	for _, fl := range fields {
		text := strings.TrimSpace(fl.text)
		if text == "" {
			*fl.dst = contracts.DontCare
			continue
		}
		n, err := strconv.Atoi(text)
		if err != nil {
			return contracts.EZConfig{}, fmt.Errorf("%s: %w", fl.name, err)
		}
		*fl.dst = n
	}
	return config, nil
}
