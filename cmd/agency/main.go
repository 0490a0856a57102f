// Command agency runs the casting agency API.
//
//	agency            serve the API (default)
//	agency serve      same as above
//	agency migrate    apply database migrations and exit
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
