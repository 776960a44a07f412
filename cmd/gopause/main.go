//go:build linux

// gopause toggles the suspended/running state of a process tree chosen by
// active window, pid, name, or an interactive window pick.
package main

import "os"

func main() {
	os.Exit(execute())
}
