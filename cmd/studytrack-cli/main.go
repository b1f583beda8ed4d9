package main

import "studytrack/cmd/studytrack-cli/cmd"

func main() {
	cmd.Execute()
}
