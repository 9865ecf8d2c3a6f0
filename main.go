package main

import (
	"fmt"
	"log"

	"lwwgraph/packages/replica"
	"lwwgraph/packages/user"
)

const numReplicas = 3

// Interactive demo: a few independent in-memory replicas of an
// LWW-Element-Graph, mutated and merged from the prompt. Every operation
// takes an explicit timestamp, so divergent histories and their
// convergence after merging can be played through by hand.
func main() {
	replicas := make([]*replica.Replica[string, int], numReplicas)
	for i := range replicas {
		replicas[i] = replica.NewReplica[string, int](fmt.Sprint(i + 1))
	}

	if err := user.RunInput(replicas); err != nil {
		log.Fatal(err)
	}
}
