package user

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"lwwgraph/packages/replica"
)

const help = `commands (replicas are numbered from 1, timestamps are integers):
  addv <replica> <vertex> <t>        add a vertex
  remv <replica> <vertex> <t>        remove a vertex
  adde <replica> <from> <to> <t>     add a directed edge
  reme <replica> <from> <to> <t>     remove a directed edge
  hasv <replica> <vertex>            is the vertex currently present?
  hase <replica> <from> <to>         is the edge currently valid?
  connected <replica> <vertex>       neighbors over valid edges, both directions
  path <replica> <from> <to>         shortest valid directed path
  merge <replica> <other>            fold other's state into replica
  sync <replica> <other>             merge both directions
  dot <replica>                      print the visible graph as DOT
  help                               this text
  exit                               quit`

// RunInput drives the given replicas from an interactive prompt until the
// user exits. Timestamps are typed in by the user, which makes it easy to
// replay the concurrent scenarios that make LWW semantics interesting.
func RunInput(replicas []*replica.Replica[string, int]) error {
	rl, err := readline.New("lwwgraph> ")
	if err != nil {
		return fmt.Errorf("open prompt: %w", err)
	}
	defer rl.Close()

	fmt.Println(help)

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}

		switch args[0] {
		case "exit", "quit":
			return nil
		case "help":
			fmt.Println(help)
		default:
			if err := run(replicas, args[0], args[1:]); err != nil {
				fmt.Println("error:", err)
			}
		}
	}
}

func run(replicas []*replica.Replica[string, int], cmd string, args []string) error {
	switch cmd {
	case "addv", "remv":
		r, err := pick(replicas, args, 3)
		if err != nil {
			return err
		}
		t, err := timestamp(args[2])
		if err != nil {
			return err
		}
		if cmd == "addv" {
			r.AddVertex(args[1], t)
		} else {
			r.RemoveVertex(args[1], t)
		}
	case "adde", "reme":
		r, err := pick(replicas, args, 4)
		if err != nil {
			return err
		}
		t, err := timestamp(args[3])
		if err != nil {
			return err
		}
		if cmd == "adde" {
			r.AddEdge(args[1], args[2], t)
		} else {
			r.RemoveEdge(args[1], args[2], t)
		}
	case "hasv":
		r, err := pick(replicas, args, 2)
		if err != nil {
			return err
		}
		fmt.Println(r.ContainsVertex(args[1]))
	case "hase":
		r, err := pick(replicas, args, 3)
		if err != nil {
			return err
		}
		fmt.Println(r.ContainsEdge(args[1], args[2]))
	case "connected":
		r, err := pick(replicas, args, 2)
		if err != nil {
			return err
		}
		fmt.Println(r.AllConnectedVertices(args[1]))
	case "path":
		r, err := pick(replicas, args, 3)
		if err != nil {
			return err
		}
		path := r.AnyPath(args[1], args[2])
		if len(path) == 0 {
			fmt.Println("no path")
		} else {
			fmt.Println(strings.Join(path, " -> "))
		}
	case "merge", "sync":
		r, err := pick(replicas, args, 2)
		if err != nil {
			return err
		}
		other, err := pick(replicas, args[1:], 1)
		if err != nil {
			return err
		}
		if cmd == "merge" {
			r.Merge(other)
		} else {
			r.Sync(other)
		}
	case "dot":
		r, err := pick(replicas, args, 1)
		if err != nil {
			return err
		}
		fmt.Println(r.DOT())
	default:
		return fmt.Errorf("unknown command %q, try help", cmd)
	}
	return nil
}

// pick resolves args[0] as a 1-based replica number after checking the
// argument count.
func pick(replicas []*replica.Replica[string, int], args []string, want int) (*replica.Replica[string, int], error) {
	if len(args) < want {
		return nil, fmt.Errorf("expected %d arguments, got %d", want, len(args))
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > len(replicas) {
		return nil, fmt.Errorf("invalid replica %q, have 1..%d", args[0], len(replicas))
	}
	return replicas[n-1], nil
}

func timestamp(s string) (int, error) {
	t, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp %q", s)
	}
	return t, nil
}
