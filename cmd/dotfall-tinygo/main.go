//go:build tinygo && rp2040

// Command dotfall-tinygo runs the game on a Raspberry Pi Pico with a
// MAX7219 chain on SPI0 and four buttons to ground.
package main

import (
	"machine"
	"math/rand/v2"
	"time"

	"github.com/plus3/dotfall/game"
	"github.com/plus3/dotfall/input"
	"github.com/plus3/dotfall/matrix"
	"github.com/plus3/dotfall/matrix/tinygobus"
	"github.com/plus3/dotfall/tetromino"
)

const (
	panels   = 4
	tick     = 400 * time.Millisecond
	poll     = 10 * time.Millisecond
	debounce = 2
)

var (
	loadPin = machine.GP17
	// Button order matches buttonEvents.
	buttonPins   = []machine.Pin{machine.GP2, machine.GP3, machine.GP4, machine.GP5}
	buttonEvents = []input.Event{input.Left, input.Right, input.RotateCW, input.HardDrop}
)

func main() {
	machine.SPI0.Configure(machine.SPIConfig{
		SCK:       machine.SPI0_SCK_PIN,
		SDO:       machine.SPI0_SDO_PIN,
		SDI:       machine.SPI0_SDI_PIN,
		Frequency: 1e6,
	})
	loadPin.Configure(machine.PinConfig{Mode: machine.PinOutput})

	pins := make([]tinygobus.InputPin, len(buttonPins))
	for i, p := range buttonPins {
		p.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
		pins[i] = p
	}
	keys := tinygobus.NewKeys(pins...)
	keys.Debounce = debounce

	display, err := matrix.New(tinygobus.NewSPI(machine.SPI0), tinygobus.NewLatch(loadPin), panels)
	if err != nil {
		halt(err)
	}
	if err := display.Initialize(); err != nil {
		halt(err)
	}

	seed, _ := machine.GetRNG()
	cfg := game.DefaultConfig()
	cfg.Height = panels * matrix.PanelSize
	g, err := game.New(cfg, display, tetromino.NewBag(rand.New(rand.NewPCG(uint64(seed), uint64(seed)))))
	if err != nil {
		halt(err)
	}
	loop := game.NewLoop(g, display)

	var dispatcher input.Dispatcher
	dispatcher.Register(loop)

	last := time.Now()
	for {
		keys.Update(func(key int) {
			if err := dispatcher.Dispatch(buttonEvents[key]); err != nil {
				println("input:", err.Error())
			}
		})

		if time.Since(last) >= tick {
			last = time.Now()
			if err := loop.Step(); err != nil {
				println("flush:", err.Error())
			}
		}
		time.Sleep(poll)
	}
}

func halt(err error) {
	for {
		println("dotfall:", err.Error())
		time.Sleep(time.Second)
	}
}
