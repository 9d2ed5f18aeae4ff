package usi

import (
	"bytes"
	"context"
	"io"
	"log"
	"strings"
	"testing"
)

func TestSetOption(t *testing.T) {
	var p = New("test", "author", []string{"KifuDir", "ElmoLambda"}, nil)
	p.out = &bytes.Buffer{}
	var tests = []struct {
		line  string
		ok    bool
		name  string
		value string
	}{
		{"setoption name ElmoLambda value 0.5", true, "ElmoLambda", "0.5"},
		{"setoption name kifudir value /data/my kifu", true, "KifuDir", "/data/my kifu"},
		{"setoption name Unknown value 1", false, "", ""},
		{"setoption ElmoLambda 1", false, "", ""},
	}
	for _, test := range tests {
		var err = p.handle(test.line)
		if (err == nil) != test.ok {
			t.Error(test.line, err)
			continue
		}
		if test.ok && p.Options()[test.name] != test.value {
			t.Error(test.line, p.Options())
		}
	}
}

func TestUsiCommand(t *testing.T) {
	var p = New("kpptlearn", "author", []string{"b", "a"}, nil)
	var out = &bytes.Buffer{}
	p.out = out
	if err := p.handle("usi"); err != nil {
		t.Fatal(err)
	}
	var lines = strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 5 || lines[0] != "id name kpptlearn" ||
		!strings.HasPrefix(lines[2], "option name a ") || lines[4] != "usiok" {
		t.Error(lines)
	}
}

func TestRunningCommand(t *testing.T) {
	var started = make(chan map[string]string, 1)
	var commands = map[string]Command{
		"learn": func(ctx context.Context, options map[string]string) error {
			started <- options
			<-ctx.Done()
			return ctx.Err()
		},
	}
	var p = New("test", "author", []string{"KifuDir"}, commands)
	p.out = &bytes.Buffer{}
	if err := p.handle("setoption name KifuDir value kifu"); err != nil {
		t.Fatal(err)
	}
	if err := p.handle("learn"); err != nil {
		t.Fatal(err)
	}
	if options := <-started; options["KifuDir"] != "kifu" {
		t.Error(options)
	}
	if err := p.handle("isready"); err == nil {
		t.Error("command accepted while running")
	}
	if err := p.handle("stop"); err != nil {
		t.Fatal(err)
	}
	var err = <-p.done
	if err != context.Canceled {
		t.Error(err)
	}
	p.finish(log.New(io.Discard, "", 0), err)
	if p.running != "" {
		t.Error("job not finished")
	}
	if err := p.handle("unknown"); err == nil {
		t.Error("unknown command accepted")
	}
}
