// SPDX-License-Identifier: GPL-3.0-or-later
package main

import (
	"fmt"
	"os"
	"os/user"

	"elread/internal/options"
	"elread/repl"
)

func main() {
	if !options.StdinIsTerminal() {
		repl.Start(os.Stdin, os.Stdout)
		return
	}

	name := "there"
	if currentUser, err := user.Current(); err == nil {
		name = currentUser.Username
	}

	fmt.Printf("Welcome to the elread REPL, %s!\n", name)
	fmt.Println("Forms are echoed back as read. Ctrl-D exits.")
	if err := repl.StartInteractive(os.Stdout, options.StderrIsTerminal()); err != nil {
		fmt.Fprintf(os.Stderr, "repl: %v\n", err)
		os.Exit(1)
	}
}
