package main

import (
	"fmt"
	"os"

	cli "github.com/spf13/pflag"

	"braill/internal/ipc"
	"braill/pkg/protocol"
)

func main() {
	socket := cli.StringP("socket", "s", "/tmp/braill.sock", "Daemon socket path")
	contact := cli.StringP("contact", "c", "", "Contact name for call/message")
	cli.Parse()

	if cli.NArg() < 1 {
		fmt.Println("usage: braillctl [--socket path] [--contact name] <command>")
		fmt.Println("commands: start stop status emergency reminder note read_notes call message")
		os.Exit(2)
	}

	cmd := protocol.Command{
		Name:    protocol.CommandName(cli.Arg(0)),
		Contact: *contact,
	}

	reply, err := ipc.SendCommand(*socket, cmd)
	if err != nil {
		fmt.Println("brailld not running:", err)
		os.Exit(1)
	}

	if !reply.OK {
		fmt.Println("error:", reply.Message)
		os.Exit(1)
	}
	fmt.Println(reply.Message)
}
