package main

import (
	"log"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/viant/grocery/cli"
	_ "github.com/viant/scy/kms/blowfish"
)

func main() {
	if err := cli.Run(os.Args[1:]); err != nil {
		if flags.WroteHelp(err) {
			return
		}
		log.Fatal(err)
	}
}
