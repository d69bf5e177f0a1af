package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/fwojciec/parkdir"
	"github.com/fwojciec/parkdir/session"
)

// Run executes the browse command, reading one line per prompt until the
// session ends or input runs out.
func (c *BrowseCmd) Run(deps *Dependencies) error {
	m := session.New(deps.Catalog, deps.Nearby)

	out, err := m.Start(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", parkdir.ErrorMessage(err))
		return err
	}

	scanner := bufio.NewScanner(deps.Stdin)
	for {
		render(deps.Stdout, out)
		if m.State() == session.Done {
			return nil
		}
		if err := deps.Ctx.Err(); err != nil {
			return err
		}
		if !scanner.Scan() {
			fmt.Fprintln(deps.Stdout)
			return scanner.Err()
		}
		out = m.Handle(deps.Ctx, scanner.Text())
	}
}

func render(w io.Writer, out session.Output) {
	for _, line := range out.Lines {
		fmt.Fprintln(w, line)
	}
	if out.Prompt != "" {
		fmt.Fprint(w, out.Prompt)
	}
}
