package main

import "personalportal/cmd"

func main() {
	cmd.Execute()
}
