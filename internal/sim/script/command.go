// Package script drives a robot from a fixed queue of commands, one per tick.
package script

import (
	"fmt"
	"strings"

	"profitcraft.ai/internal/sim/grid"
)

type Op string

const (
	OpMove    Op = "MOVE"
	OpProbe   Op = "PROBE"
	OpSell    Op = "SELL"
	OpCollect Op = "COLLECT"
	OpLook    Op = "LOOK"
	OpWait    Op = "WAIT"
)

type Command struct {
	Op  Op
	Dir grid.Direction // MOVE and COLLECT only
}

func Move(d grid.Direction) Command    { return Command{Op: OpMove, Dir: d} }
func Collect(d grid.Direction) Command { return Command{Op: OpCollect, Dir: d} }

func (c Command) String() string {
	if c.Op == OpMove || c.Op == OpCollect {
		return string(c.Op) + " " + c.Dir.String()
	}
	return string(c.Op)
}

// Queue is a FIFO of commands. The zero value is empty and ready to use.
type Queue struct {
	cmds []Command
}

func NewQueue(cmds ...Command) *Queue {
	return &Queue{cmds: append([]Command(nil), cmds...)}
}

func (q *Queue) Push(cmds ...Command) { q.cmds = append(q.cmds, cmds...) }
func (q *Queue) Len() int             { return len(q.cmds) }

func (q *Queue) Next() (Command, bool) {
	if len(q.cmds) == 0 {
		return Command{}, false
	}
	c := q.cmds[0]
	q.cmds = q.cmds[1:]
	return c, true
}

// Parse reads a whitespace or comma separated script. A bare direction
// ("R", "down") is a move; "collect:R" collects from a neighbour.
func Parse(src string) (*Queue, error) {
	fields := strings.FieldsFunc(src, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t' || r == '\n'
	})
	q := &Queue{}
	for i, f := range fields {
		cmd, err := parseOne(f)
		if err != nil {
			return nil, fmt.Errorf("script token %d: %w", i, err)
		}
		q.Push(cmd)
	}
	return q, nil
}

func parseOne(tok string) (Command, error) {
	op, arg, hasArg := strings.Cut(strings.ToLower(tok), ":")
	switch op {
	case "probe", "near":
		return Command{Op: OpProbe}, nil
	case "sell":
		return Command{Op: OpSell}, nil
	case "look":
		return Command{Op: OpLook}, nil
	case "wait", "-":
		return Command{Op: OpWait}, nil
	case "collect":
		if !hasArg {
			return Command{}, fmt.Errorf("collect needs a direction, e.g. collect:R")
		}
		d, err := grid.ParseDirection(arg)
		if err != nil {
			return Command{}, err
		}
		return Collect(d), nil
	}
	if hasArg {
		return Command{}, fmt.Errorf("unexpected argument in %q", tok)
	}
	d, err := grid.ParseDirection(op)
	if err != nil {
		return Command{}, fmt.Errorf("unknown command %q", tok)
	}
	return Move(d), nil
}
