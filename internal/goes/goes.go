// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package goes runs the named command of a monolithic program.
package goes

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/platinasystems/flags"
	"github.com/platinasystems/log"

	"github.com/platinasystems/de1soc/lang"
)

const (
	DontFork Kind = 1 << iota
	Daemon
	Hidden
)

// InstallName is Prog when the executable can't be found.
const InstallName = "/usr/bin/goes-de1soc"

var Exit = os.Exit

var prog, progbase string

type ByName map[string]*Goes

type Goes struct {
	Name    string
	Close   func() error
	Main    func(...string) error
	Kind    Kind
	Usage   string
	Apropos lang.Alt
	Man     lang.Alt
}

type Kind uint16

type aproposer interface {
	Apropos() lang.Alt
}

type kinder interface {
	Kind() Kind
}

type mainer interface {
	Main(...string) error
}

type manner interface {
	Man() lang.Alt
}

type usager interface {
	Usage() string
}

// Prog is the executable path.
func Prog() string {
	if len(prog) == 0 {
		if s, err := os.Executable(); err == nil {
			prog = s
		} else {
			prog = InstallName
		}
	}
	return prog
}

// ProgBase is the executable name shown in the command listing.
func ProgBase() string {
	if len(progbase) == 0 {
		progbase = filepath.Base(Prog())
	}
	return progbase
}

// Names of the interactive commands.
func (byName ByName) Names() (ss []string) {
	for k, g := range byName {
		if g.Kind.IsInteractive() {
			ss = append(ss, k)
		}
	}
	sort.Strings(ss)
	return
}

// Main runs the arg[0] command in the current context.
// When run w/o args this uses os.Args and exits instead of returns on error.
//
// The first arg is skipped if it's the program name rather than a command,
// so the program may be linked by command name or run as "PROG COMMAND".
//
// If the args have "-apropos", "-man", or "-usage" this prints the
// respective command text instead of running it.
func (byName ByName) Main(args ...string) error {
	if len(args) == 0 {
		err := byName.Main(os.Args...)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			Exit(1)
		}
		return nil
	}
	if _, found := byName[filepath.Base(args[0])]; found {
		args[0] = filepath.Base(args[0])
	} else {
		args = args[1:]
	}
	if len(args) == 0 {
		fmt.Printf("usage: %s COMMAND [ARGS]...\n\t%s\n", ProgBase(),
			strings.Join(byName.Names(), "\n\t"))
		return nil
	}

	name := args[0]
	g := byName[name]
	if g == nil {
		return fmt.Errorf("%s: command not found", name)
	}
	flag, args := flags.New(args[1:],
		[]string{"-apropos", "--apropos"},
		[]string{"-man", "--man"},
		[]string{"-usage", "--usage"})
	switch {
	case flag.ByName["-apropos"]:
		fmt.Println(g.Apropos)
		return nil
	case flag.ByName["-man"]:
		fmt.Print("usage:\t", g.Usage, "\n", g.Man, "\n")
		return nil
	case flag.ByName["-usage"]:
		fmt.Println("usage:", g.Usage)
		return nil
	}
	if g.Kind.IsDaemon() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGTERM, syscall.SIGINT)
		defer func() {
			signal.Stop(sig)
			close(sig)
		}()
		go g.wait(sig)
	}
	err := g.Main(args...)
	if err == io.EOF {
		err = nil
	}
	if err != nil {
		err = fmt.Errorf("%s: %v", name, err)
		if g.Kind.IsDaemon() {
			log.Print("daemon", "err", err)
		}
	}
	return err
}

// Plot commands on map.
func (byName ByName) Plot(cmds ...interface{}) {
	for _, v := range cmds {
		g := new(Goes)
		if method, found := v.(fmt.Stringer); found {
			g.Name = method.String()
		} else {
			panic(fmt.Errorf("%T: doesn't have String method", v))
		}
		if _, found := byName[g.Name]; found {
			panic(fmt.Errorf("%s: duplicate", g.Name))
		}
		if method, found := v.(mainer); found {
			g.Main = method.Main
		} else {
			panic(fmt.Errorf("%s: doesn't have Main method",
				g.Name))
		}
		if method, found := v.(io.Closer); found {
			g.Close = method.Close
		}
		if method, found := v.(kinder); found {
			g.Kind = method.Kind()
		}
		if method, found := v.(usager); found {
			g.Usage = method.Usage()
		}
		if method, found := v.(aproposer); found {
			g.Apropos = method.Apropos()
		}
		if method, found := v.(manner); found {
			g.Man = method.Man()
		}
		byName[g.Name] = g
	}
}

// wait for a signal to Close the daemon so that its Main may return.
func (g *Goes) wait(ch chan os.Signal) {
	if _, ok := <-ch; !ok {
		return
	}
	if g.Close != nil {
		if err := g.Close(); err != nil {
			log.Print("daemon", "err", g.Name, ": ", err)
		}
	}
}

func (k Kind) IsDontFork() bool    { return (k & DontFork) == DontFork }
func (k Kind) IsDaemon() bool      { return (k & Daemon) == Daemon }
func (k Kind) IsHidden() bool      { return (k & Hidden) == Hidden }
func (k Kind) IsInteractive() bool { return (k & (Daemon | Hidden)) == 0 }

func (k Kind) String() string {
	s := "unknown"
	switch k {
	case 0:
		s = "command"
	case DontFork:
		s = "don't fork"
	case Daemon:
		s = "daemon"
	case Hidden:
		s = "hidden"
	}
	return s
}
