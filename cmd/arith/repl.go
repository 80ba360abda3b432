package main

import (
	"strings"

	"github.com/lmorg/readline"

	"github.com/zephyrtronium/arith"
)

// repl reads lines interactively until readline fails, usually on ^D. The
// returned count is the number of lines that failed.
func (c *calc[V]) repl() int {
	rl := readline.NewInstance()
	rl.SetPrompt("> ")
	rl.TabCompleter = func(line []rune, pos int, dtx readline.DelayedTabContext) (string, []string, map[string]string, readline.TabDisplayType) {
		prefix, suggestions := complete(c.names(), line, pos)
		return prefix, suggestions, nil, readline.TabDisplayGrid
	}
	var bad int
	for {
		line, err := rl.Readline()
		if err != nil {
			return bad
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !c.line(line) {
			bad++
		}
	}
}

// names lists completion candidates: function names, then variables.
func (c *calc[V]) names() []string {
	var r []string
	if fn, ok := c.typ.(arith.FuncNamer); ok {
		r = append(r, fn.FuncNames()...)
	}
	return append(r, c.env.Names()...)
}

// complete finds the word ending at pos in line and returns it along with the
// remainders of the candidates it prefixes.
func complete(names []string, line []rune, pos int) (string, []string) {
	if pos > len(line) {
		pos = len(line)
	}
	start := pos
	for start > 0 && isWordRune(line[start-1]) {
		start--
	}
	word := string(line[start:pos])
	if word == "" {
		return "", nil
	}
	var r []string
	for _, name := range names {
		if len(name) > len(word) && strings.HasPrefix(name, word) {
			r = append(r, name[len(word):])
		}
	}
	return word, r
}

func isWordRune(c rune) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9'
}
