package main

import "github.com/theirongolddev/tuitioncast/cmd"

func main() {
	cmd.Execute()
}
