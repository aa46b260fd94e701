// This file is part of i2cslave.
//
// i2cslave is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// i2cslave is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with i2cslave.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"strings"

	"github.com/bradleyjkemp/memviz"
	"github.com/jetsetilly/i2cslave/capture"
	"github.com/jetsetilly/i2cslave/environment"
	"github.com/jetsetilly/i2cslave/hardware/master"
	"github.com/jetsetilly/i2cslave/hardware/memory"
	"github.com/jetsetilly/i2cslave/hardware/pins"
	"github.com/jetsetilly/i2cslave/hardware/preferences"
	"github.com/jetsetilly/i2cslave/hardware/slave"
	"github.com/jetsetilly/i2cslave/logger"
	"github.com/jetsetilly/i2cslave/modalflag"
	"github.com/jetsetilly/i2cslave/performance"
	"github.com/jetsetilly/i2cslave/prefs"
	"github.com/jetsetilly/i2cslave/resources"
	"github.com/jetsetilly/i2cslave/statsview"
	"github.com/jetsetilly/i2cslave/version"
	"periph.io/x/conn/v3/physic"
)

// the memory image used when the slave.memory.image preference is empty.
const defaultImage = "eeprom"

func main() {
	// #ctrlc cancels the context. real-time modes end gracefully and save the
	// memory image before returning
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	exitVal := launch(ctx, os.Stdout, os.Args[1:])

	stop()
	os.Exit(exitVal)
}

// launch returns the value to be used with os.Exit().
func launch(ctx context.Context, output io.Writer, args []string) int {
	md := &modalflag.Modes{Output: output}
	md.NewArgs(args)
	md.NewMode()
	md.AddSubModes("SIM", "REPLAY", "GPIO", "SERIAL", "PERFORMANCE", "DUMP", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return 0

	case modalflag.ParseError:
		fmt.Fprintf(output, "* error: %v\n", err)
		return 10
	}

	switch md.Mode() {
	case "SIM":
		err = sim(ctx, md)

	case "REPLAY":
		err = replay(md)

	case "GPIO":
		err = realtime(ctx, md, func(md *modalflag.Modes) opener {
			scl := md.AddString("scl", "GPIO3", "name of the SCL pin")
			sda := md.AddString("sda", "GPIO2", "name of the SDA pin")
			return func() (pins.Lines, error) {
				return pins.NewGPIO(*scl, *sda)
			}
		})

	case "SERIAL":
		err = realtime(ctx, md, func(md *modalflag.Modes) opener {
			dev := md.AddString("device", "/dev/ttyUSB0", "serial device")
			return func() (pins.Lines, error) {
				return pins.NewSerial(*dev)
			}
		})

	case "PERFORMANCE":
		err = perform(md)

	case "DUMP":
		err = dump(md)

	case "VERSION":
		err = showVersion(md)
	}

	if err != nil {
		fmt.Fprintf(output, "* error in %s mode: %s\n", md.String(), err)
		return 20
	}

	return 0
}

// slaveFlags are the flags shared by every mode that creates a slave. the
// flags override the preferences file for the duration of the program.
type slaveFlags struct {
	addr       *int
	size       *int
	divider    *int
	stretch    *bool
	writeCycle *int
	image      *string
	prefs      *string
	log        *bool
}

func addSlaveFlags(md *modalflag.Modes) *slaveFlags {
	return &slaveFlags{
		addr:       md.AddInt("addr", preferences.DefaultAddress, "7-bit address of the slave"),
		size:       md.AddInt("size", preferences.DefaultMemorySize, "size of memory in bytes"),
		divider:    md.AddInt("divider", preferences.DefaultDivider, "ticks between samples of the bus lines"),
		stretch:    md.AddBool("stretch", preferences.DefaultStretch, "hold SCL low while the memory is busy"),
		writeCycle: md.AddInt("writecycle", preferences.DefaultWriteCycle, "ticks the memory is busy after a write"),
		image:      md.AddString("image", "", "memory image file"),
		prefs:      md.AddString("prefs", "", "preferences for this run (eg. \"slave.divider::8; slave.stretch::false\")"),
		log:        md.AddBool("log", false, "echo log to stdout"),
	}
}

// commandLine converts the flags that were set into a string suitable for
// prefs.PushCommandLineStack(). flags take priority over the -prefs flag.
func (f *slaveFlags) commandLine(md *modalflag.Modes) string {
	s := []string{}
	if *f.prefs != "" {
		s = append(s, *f.prefs)
	}

	md.Visit(func(flg string) {
		switch flg {
		case "addr":
			s = append(s, fmt.Sprintf("slave.address::%d", *f.addr))
		case "size":
			s = append(s, fmt.Sprintf("slave.memory.size::%d", *f.size))
		case "divider":
			s = append(s, fmt.Sprintf("slave.divider::%d", *f.divider))
		case "stretch":
			s = append(s, fmt.Sprintf("slave.stretch::%v", *f.stretch))
		case "writecycle":
			s = append(s, fmt.Sprintf("slave.memory.writecycle::%d", *f.writeCycle))
		case "image":
			s = append(s, fmt.Sprintf("slave.memory.image::%s", *f.image))
		}
	})

	return strings.Join(s, "; ")
}

// bus is a slave and its memory, created from the preferences.
type bus struct {
	env   *environment.Environment
	sl    *slave.Slave
	ee    *memory.EEPROM
	image string
}

func newBus(md *modalflag.Modes, f *slaveFlags) (*bus, error) {
	if *f.log {
		logger.SetEcho(md.Output)
	} else {
		logger.SetEcho(nil)
	}

	prefs.PushCommandLineStack(f.commandLine(md))
	env, err := environment.NewEnvironment(environment.MainSlave, nil)
	if unused := prefs.PopCommandLineStack(); unused != "" {
		logger.Logf(logger.Allow, "prefs", "unused preferences: %s", unused)
	}
	if err != nil {
		return nil, err
	}

	cfg, err := slave.NewConfig(env.Prefs)
	if err != nil {
		return nil, err
	}

	b := &bus{env: env}

	b.ee, err = memory.NewEEPROM(env, env.Prefs.MemorySize.Get().(int), env.Prefs.WriteCycle.Get().(int))
	if err != nil {
		return nil, err
	}

	b.image = env.Prefs.Image.Get().(string)
	if b.image == "" {
		b.image, err = resources.JoinPath(defaultImage)
		if err != nil {
			return nil, err
		}

		// a missing default image is not an error
		if _, err := os.Stat(b.image); errors.Is(err, fs.ErrNotExist) {
			logger.Logf(env, "eeprom", "no image at %s", b.image)
		} else if err := b.ee.Load(b.image); err != nil {
			return nil, err
		}
	} else if err := b.ee.Load(b.image); err != nil {
		return nil, err
	}

	b.sl, err = slave.NewSlave(env, cfg, b.ee)
	if err != nil {
		return nil, err
	}

	return b, nil
}

// save the memory image if it has changed.
func (b *bus) save() error {
	if b.ee.IsSaved() {
		return nil
	}
	return b.ee.Save(b.image)
}

func sim(ctx context.Context, md *modalflag.Modes) (rerr error) {
	md.NewMode()

	f := addSlaveFlags(md)
	target := md.AddInt("target", -1, "address used by the master (default is the slave address)")
	half := md.AddInt("half", 0, "half period of the bus clock in ticks (default is four times the divider)")
	wav := md.AddString("wav", "", "record the bus to a wav file")
	viz := md.AddString("memviz", "", "write a graphviz description of the final slave state")
	nosave := md.AddBool("nosave", false, "do not save the memory image")

	md.AdditionalHelp(
		`Transactions are given as arguments and are run in order:

  w:OFFSET:BYTE,BYTE,...   write bytes starting at offset
  w:OFFSET                 set the offset without writing any data
  r:OFFSET:COUNT           read count bytes starting at offset
  r::COUNT                 read count bytes from the current offset`)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	trs := make([]transaction, 0, len(md.RemainingArgs()))
	for _, a := range md.RemainingArgs() {
		tr, err := parseTransaction(a)
		if err != nil {
			return err
		}
		trs = append(trs, tr)
	}
	if len(trs) == 0 {
		return fmt.Errorf("at least one transaction required for %s mode", md)
	}

	// the master sends the address in the upper seven bits of a byte
	if *target < -1 || *target > 0x7f {
		return fmt.Errorf("target address must be seven bits (%#02x)", *target)
	}

	b, err := newBus(md, f)
	if err != nil {
		return err
	}

	if !*nosave {
		defer func() {
			if err := b.save(); err != nil && rerr == nil {
				rerr = err
			}
		}()
	}

	if *half == 0 {
		*half = b.sl.Config().Divider * 4
	}
	m, err := master.NewMaster(b.sl, *half)
	if err != nil {
		return err
	}

	var rec *capture.Recorder
	if *wav != "" {
		rec = capture.NewRecorder(b.env, 0)
		m.AddProbe(rec)
	}

	addr := b.sl.Config().Address
	if *target >= 0 {
		addr = uint8(*target)
	}

	for _, tr := range trs {
		if ctx.Err() != nil {
			break // for loop
		}

		d, err := tr.run(m, addr)
		if err != nil {
			fmt.Fprintf(md.Output, "! %s: %v\n", tr, err)
			continue // for loop
		}

		if tr.read {
			fmt.Fprintf(md.Output, "%s: % 02x\n", tr, d)
		} else {
			fmt.Fprintf(md.Output, "%s\n", tr)
		}
	}

	fmt.Fprintf(md.Output, "%d ticks\n", m.Ticks)

	if rec != nil {
		if err := rec.Save(*wav); err != nil {
			return err
		}
	}

	if *viz != "" {
		vf, err := os.Create(*viz)
		if err != nil {
			return err
		}
		defer vf.Close()
		regs := b.sl.Registers()
		memviz.Map(vf, &regs)
	}

	return nil
}

func replay(md *modalflag.Modes) error {
	md.NewMode()
	f := addSlaveFlags(md)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("wav file required for %s mode", md)
	case 1:
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	b, err := newBus(md, f)
	if err != nil {
		return err
	}

	c, err := capture.LoadFile(b.env, md.RemainingArgs()[0])
	if err != nil {
		return err
	}

	res := c.Replay(b.sl)
	fmt.Fprintf(md.Output, "%d ticks replayed (%d conflicts)\n", res.Ticks, res.Conflicts)
	fmt.Fprintf(md.Output, "%s\n", b.sl)

	// the memory image is not saved after a replay
	return b.ee.Dump(md.Output)
}

// opener opens the physical lines. the addLines argument to realtime() adds the
// flags for the lines to the mode and returns an opener, which is called after
// the command line has been parsed.
type opener func() (pins.Lines, error)

func realtime(ctx context.Context, md *modalflag.Modes, addLines func(*modalflag.Modes) opener) (rerr error) {
	md.NewMode()

	f := addSlaveFlags(md)
	rate := md.AddString("rate", "100kHz", "tick rate. zero for no rate limit")
	stats := md.AddBool("statsview", false, "run stats server")

	open := addLines(md)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	var freq physic.Frequency
	if *rate != "0" {
		if err := freq.Set(*rate); err != nil {
			return fmt.Errorf("rate: %w", err)
		}
	}

	if *stats {
		if !statsview.Available() {
			return fmt.Errorf("stats server not available in this build")
		}
		statsview.Launch(md.Output)
	}

	b, err := newBus(md, f)
	if err != nil {
		return err
	}
	defer func() {
		if err := b.save(); err != nil && rerr == nil {
			rerr = err
		}
	}()

	l, err := open()
	if err != nil {
		return err
	}
	defer l.Close()

	fmt.Fprintf(md.Output, "%s on %v. ctrl-c to stop\n", b.sl, l)

	st, err := pins.Run(ctx, l, b.sl, freq)
	if err != nil {
		return err
	}

	fmt.Fprintf(md.Output, "\r%d ticks in %s (%d drive changes)\n", st.Ticks, st.Elapsed, st.Changes)

	return nil
}

func perform(md *modalflag.Modes) error {
	md.NewMode()

	f := addSlaveFlags(md)
	duration := md.AddString("duration", "5s", "run duration")
	profile := md.AddBool("profile", false, "produce cpu and memory profiling reports")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	b, err := newBus(md, f)
	if err != nil {
		return err
	}

	// the memory image is not saved because the check overwrites it
	return performance.Check(md.Output, *profile, b.sl, *duration)
}

func dump(md *modalflag.Modes) error {
	md.NewMode()
	size := md.AddInt("size", memory.MaxSize, "maximum number of bytes to dump")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("memory image required for %s mode", md)
	case 1:
		env, err := environment.NewEnvironment(environment.MainSlave, nil)
		if err != nil {
			return err
		}
		ee, err := memory.NewEEPROM(env, *size, 0)
		if err != nil {
			return err
		}
		if err := ee.Load(md.RemainingArgs()[0]); err != nil {
			return err
		}
		return ee.Dump(md.Output)
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	fmt.Fprintln(md.Output, version.String())
	return nil
}
