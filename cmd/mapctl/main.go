// Command mapctl inspects GNU ld linker map files.
package main

func main() {
	execute()
}
