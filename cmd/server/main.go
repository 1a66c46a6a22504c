package main

import (
	"context"
	"fmt"
	"os"

	"yukyu/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "yukyu:", err)
		os.Exit(1)
	}
}
