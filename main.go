package main

import (
	"github.com/lehigh-university-libraries/soso/cmd"
)

func main() {
	cmd.Execute()
}
