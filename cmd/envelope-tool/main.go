// Command envelope-tool builds a small Gordian Envelope, then demonstrates
// elision, unelision, and inclusion proofs against it.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/schjonhaug/dcbor-envelope/dcbor"
	"github.com/schjonhaug/dcbor-envelope/envelope"
	"github.com/spf13/pflag"
)

func main() {
	debug := pflag.BoolP("debug", "d", false, "enable debug logging")
	reveal := pflag.StringP("reveal", "r", "Bob", "object name whose assertion path to reveal in the proof")
	pflag.Parse()

	if *debug {
		enableDebugLogging()
	}

	alice := envelope.Leaf(dcbor.Text("Alice"))
	knows := envelope.Leaf(dcbor.Text("knows"))

	root := alice
	var assertions []*envelope.Envelope
	for _, name := range []string{"Bob", "Carol", "Dan"} {
		a := envelope.NewAssertion(knows, envelope.Leaf(dcbor.Text(name)))
		assertions = append(assertions, a)
		next, err := envelope.AddAssertion(root, a)
		if err != nil {
			fmt.Fprintln(os.Stderr, "add assertion:", err)
			os.Exit(1)
		}
		root = next
	}
	slog.Debug("built envelope", "assertions", len(assertions))

	fmt.Println("# Full tree")
	fmt.Println(envelope.FormatTree(root))

	var target *envelope.Envelope
	for _, a := range assertions {
		if a.Object().LeafValue().Equal(dcbor.Text(*reveal)) {
			target = a
		}
	}
	if target == nil {
		fmt.Fprintf(os.Stderr, "no assertion found for %q\n", *reveal)
		os.Exit(1)
	}

	proof, ok := envelope.ProofContainsSet(root, []envelope.Digest{target.Digest()})
	if !ok {
		fmt.Fprintln(os.Stderr, "could not construct an inclusion proof")
		os.Exit(1)
	}

	fmt.Printf("# Inclusion proof for %q\n", *reveal)
	fmt.Println(envelope.FormatTree(proof))

	confirmed := envelope.ConfirmContainsSet(root.Digest(), []envelope.Digest{target.Digest()}, proof)
	fmt.Printf("confirmed: %v\n", confirmed)

	elided := envelope.Elide(root)
	restored, err := envelope.Unelide(elided, root)
	if err != nil {
		fmt.Fprintln(os.Stderr, "unelide:", err)
		os.Exit(1)
	}
	fmt.Printf("round trip through full elision preserved digest: %v\n", restored.Equal(root))
}

func enableDebugLogging() {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	slog.SetDefault(slog.New(handler))
}
