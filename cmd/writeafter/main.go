// The writeafter command demonstrates delayed message delivery driven by a
// wall clock, with optional monitoring and delivery recording.
package main

func main() {
	Execute()
}
