package main

import (
	"fmt"
	"os"

	"github.com/mwarren/crmapi/internal/cli"
)

//	@title			CRM API
//	@version		1.0
//	@description	Client Relationship Management API
//	@BasePath		/

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
