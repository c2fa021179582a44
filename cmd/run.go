package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/bradford-hamilton/chippy/internal/chip8"
	"github.com/spf13/cobra"
)

// timerHz is fixed at the real delay/sound timer rate; the cpu rate is
// configurable via --rate since ROMs vary widely in expected throughput.
const timerHz = 60

var (
	runRate   int
	runFrames int
)

// runCmd runs a rom to completion or until interrupted.
var runCmd = &cobra.Command{
	Use:   "run path/to/rom",
	Short: "run a rom in the chippy virtual machine",
	Args:  cobra.ExactArgs(1),
	RunE:  runChippy,
}

func init() {
	runCmd.Flags().IntVar(&runRate, "rate", 500, "instructions per second")
	runCmd.Flags().IntVar(&runFrames, "frames", 0, "print the framebuffer as ASCII art every N cpu steps (0 disables)")
}

func runChippy(cmd *cobra.Command, args []string) error {
	vm := chip8.NewVM()
	if err := vm.LoadROM(args[0]); err != nil {
		return fmt.Errorf("loading rom: %w", err)
	}

	sigC := make(chan os.Signal, 1)
	signal.Notify(sigC, os.Interrupt)

	cpuTicker := time.NewTicker(time.Second / time.Duration(runRate))
	defer cpuTicker.Stop()
	timerTicker := time.NewTicker(time.Second / timerHz)
	defer timerTicker.Stop()

	steps := 0
	for {
		select {
		case <-sigC:
			fmt.Println("exit signal detected, gracefully shutting down...")
			return nil
		case <-timerTicker.C:
			vm.DecTimers()
		case <-cpuTicker.C:
			vm.Step()
			steps++
			if vm.Status != chip8.StatusOK {
				fmt.Printf("vm stopped: %s\n", vm.Status)
				return nil
			}
			if runFrames > 0 && steps%runFrames == 0 {
				fmt.Println(renderFramebuffer(vm.Framebuffer))
			}
		}
	}
}

// renderFramebuffer draws fb as ASCII art, one character per pixel, for the
// headless --frames smoke-test path (no real graphical front-end).
func renderFramebuffer(fb *chip8.Framebuffer) string {
	var b strings.Builder
	for y := 0; y < fb.Height(); y++ {
		for x := 0; x < fb.Width(); x++ {
			if fb.IsOn(x, y) {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
