package main

import "eduPlatformReco/app/cli/cmd"

func main() {
	cmd.Execute()
}
