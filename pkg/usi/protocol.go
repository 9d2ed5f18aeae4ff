package usi

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"golang.org/x/exp/slices"
)

// Command is a long running job started from the shell with the current
// option values.
type Command func(ctx context.Context, options map[string]string) error

// Protocol is a line based shell in the style of USI: options are set
// with setoption and jobs run in the background until done or stopped.
type Protocol struct {
	name        string
	author      string
	optionNames []string
	commands    map[string]Command
	options     map[string]string
	out         io.Writer
	running     string
	done        chan error
	cancel      context.CancelFunc
}

func New(name, author string, optionNames []string, commands map[string]Command) *Protocol {
	var names = slices.Clone(optionNames)
	slices.Sort(names)
	return &Protocol{
		name:        name,
		author:      author,
		optionNames: names,
		commands:    commands,
		options:     make(map[string]string),
		out:         os.Stdout,
	}
}

func (p *Protocol) Run(logger *log.Logger) {
	var commands = make(chan string)

	go func() {
		defer close(commands)
		readCommands(os.Stdin, commands)
	}()

	for {
		select {
		case err := <-p.done:
			p.finish(logger, err)
		case commandLine, ok := <-commands:
			if !ok {
				if p.cancel != nil {
					p.cancel()
					p.finish(logger, <-p.done)
				}
				return
			}
			var err = p.handle(commandLine)
			if err != nil {
				logger.Println(err)
			}
		}
	}
}

func (p *Protocol) finish(logger *log.Logger, err error) {
	if err != nil {
		logger.Println(p.running, err)
	}
	fmt.Fprintf(p.out, "%v done\n", p.running)
	p.running = ""
	p.done = nil
	p.cancel = nil
}

func readCommands(r io.Reader, commands chan<- string) {
	var scanner = bufio.NewScanner(r)
	for scanner.Scan() {
		var commandLine = strings.TrimSpace(scanner.Text())
		if commandLine == "quit" {
			return
		}
		if commandLine != "" {
			commands <- commandLine
		}
	}
}

func (p *Protocol) handle(commandLine string) error {
	var fields = strings.Fields(commandLine)
	if len(fields) == 0 {
		return nil
	}
	var commandName = fields[0]
	fields = fields[1:]

	if p.running != "" {
		if commandName == "stop" {
			p.cancel()
			return nil
		}
		return fmt.Errorf("%v still running", p.running)
	}

	switch commandName {
	case "usi":
		return p.usiCommand()
	case "isready":
		fmt.Fprintln(p.out, "readyok")
		return nil
	case "setoption":
		return p.setOptionCommand(fields)
	case "stop":
		return nil
	}
	var command, found = p.commands[commandName]
	if !found {
		return errors.New("command not found")
	}
	p.start(commandName, command)
	return nil
}

func (p *Protocol) start(name string, command Command) {
	var options = make(map[string]string, len(p.options))
	for k, v := range p.options {
		options[k] = v
	}
	var ctx, cancel = context.WithCancel(context.Background())
	var done = make(chan error, 1)
	p.running = name
	p.cancel = cancel
	p.done = done
	go func() {
		defer cancel()
		done <- command(ctx, options)
	}()
}

func (p *Protocol) usiCommand() error {
	fmt.Fprintf(p.out, "id name %s\n", p.name)
	fmt.Fprintf(p.out, "id author %s\n", p.author)
	for _, name := range p.optionNames {
		fmt.Fprintf(p.out, "option name %s type string default %s\n", name, p.options[name])
	}
	fmt.Fprintln(p.out, "usiok")
	return nil
}

// setOptionCommand handles "setoption name <name> value <value>". The
// value may contain spaces.
func (p *Protocol) setOptionCommand(fields []string) error {
	if len(fields) < 3 || fields[0] != "name" {
		return errors.New("invalid setoption arguments")
	}
	var valueIndex = slices.Index(fields, "value")
	if valueIndex < 2 {
		return errors.New("invalid setoption arguments")
	}
	var name = strings.Join(fields[1:valueIndex], " ")
	var value = strings.Join(fields[valueIndex+1:], " ")
	var known = slices.IndexFunc(p.optionNames, func(s string) bool {
		return strings.EqualFold(s, name)
	})
	if known == -1 {
		return fmt.Errorf("unhandled option %v", name)
	}
	p.options[p.optionNames[known]] = value
	return nil
}

// Options returns a copy of the current option values.
func (p *Protocol) Options() map[string]string {
	var result = make(map[string]string, len(p.options))
	for k, v := range p.options {
		result[k] = v
	}
	return result
}
